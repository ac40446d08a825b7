// Package research 提供生成前的资料提取辅助功能
package research

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/ledongthuc/pdf"
	"go.opentelemetry.io/otel"

	"content-gen-api/pkg/metrics"
)

var tracer = otel.Tracer("research")

// ExtractPDF 从 PDF 中逐页提取文本并拼接
// 无法解析的文档返回错误，由调用方决定是否降级
func ExtractPDF(r io.ReaderAt, size int64) (string, error) {
	start := time.Now()

	reader, err := pdf.NewReader(r, size)
	if err != nil {
		metrics.ResearchExtractionTotal.WithLabelValues("pdf", "error").Inc()
		return "", fmt.Errorf("failed to open pdf: %w", err)
	}

	var sb strings.Builder
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			// 单页失败不中断整份文档
			continue
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}

	result := strings.TrimSpace(sb.String())
	if result == "" {
		metrics.ResearchExtractionTotal.WithLabelValues("pdf", "empty").Inc()
		return "", fmt.Errorf("no extractable text in pdf (%d pages)", numPages)
	}

	metrics.ResearchExtractionTotal.WithLabelValues("pdf", "ok").Inc()
	metrics.ResearchExtractionDuration.WithLabelValues("pdf").Observe(time.Since(start).Seconds())
	return result, nil
}
