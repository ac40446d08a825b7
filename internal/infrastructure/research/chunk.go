// Package research 提供生成前的资料提取辅助功能
package research

import (
	"strings"
)

// chunk 切分时依次尝试的分隔符，从粗到细
var separators = []string{"\n\n", "\n", ". ", " "}

// ChunkText 将文本切分为带重叠的有序片段
// 片段按原文顺序排列，相邻片段重叠 overlap 个字符，输入有限则输出有限
func ChunkText(text string, size, overlap int) []string {
	if size <= 0 {
		return nil
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= size {
		overlap = size - 1
	}

	runes := []rune(text)
	if len(runes) == 0 {
		return nil
	}
	if len(runes) <= size {
		return []string{text}
	}

	step := size - overlap
	var chunks []string
	for start := 0; start < len(runes); start += step {
		end := start + size
		if end >= len(runes) {
			chunks = append(chunks, strings.TrimSpace(string(runes[start:])))
			break
		}

		// 尽量在自然边界处断开
		cut := findBreak(runes, start, end)
		chunk := strings.TrimSpace(string(runes[start:cut]))
		if chunk != "" {
			chunks = append(chunks, chunk)
		}
	}
	return chunks
}

// findBreak 在 [start, end) 的尾部寻找最近的分隔符位置
// 找不到时按 end 硬切
func findBreak(runes []rune, start, end int) int {
	window := string(runes[start:end])
	// 只在窗口后半段找边界，避免产生过短片段
	half := len(window) / 2
	for _, sep := range separators {
		if idx := strings.LastIndex(window, sep); idx > half {
			return start + len([]rune(window[:idx+len(sep)]))
		}
	}
	return end
}

// JoinChunks 取前 max 个片段拼接为研究输入
func JoinChunks(chunks []string, max int) string {
	if len(chunks) > max {
		chunks = chunks[:max]
	}
	return strings.Join(chunks, "\n\n---\n\n")
}
