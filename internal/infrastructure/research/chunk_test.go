package research

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChunkTextShortInput(t *testing.T) {
	assert.Nil(t, ChunkText("", 100, 10))
	assert.Nil(t, ChunkText("hola", 0, 0))
	assert.Equal(t, []string{"texto corto"}, ChunkText("texto corto", 100, 10))
}

func TestChunkTextOverlap(t *testing.T) {
	// 无分隔符时按硬切，相邻片段重叠 overlap 个字符
	got := ChunkText("abcdefghijklmnopqrst", 10, 5)
	assert.Equal(t, []string{"abcdefghij", "fghijklmno", "klmnopqrst"}, got)
}

func TestChunkTextNaturalBoundary(t *testing.T) {
	text := strings.Repeat("a", 40) + "\n\n" + strings.Repeat("b", 40)
	got := ChunkText(text, 60, 0)
	assert.Equal(t, []string{strings.Repeat("a", 40), strings.Repeat("b", 22)}, got)
}

func TestChunkTextTerminates(t *testing.T) {
	text := strings.Repeat("palabra interesante. ", 200)
	got := ChunkText(text, 300, 30)
	assert.NotEmpty(t, got)
	for _, chunk := range got {
		assert.NotEmpty(t, chunk)
		assert.Equal(t, strings.TrimSpace(chunk), chunk)
		assert.LessOrEqual(t, len([]rune(chunk)), 300)
	}
	// 末段保留原文结尾
	assert.True(t, strings.HasSuffix(got[len(got)-1], "palabra interesante."))
}

func TestJoinChunks(t *testing.T) {
	chunks := []string{"uno", "dos", "tres"}
	assert.Equal(t, "uno\n\n---\n\ndos", JoinChunks(chunks, 2))
	assert.Equal(t, "uno\n\n---\n\ndos\n\n---\n\ntres", JoinChunks(chunks, 5))
	assert.Equal(t, "", JoinChunks(nil, 3))
}
