// Package research 提供生成前的资料提取辅助功能
package research

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"content-gen-api/internal/config"
	"content-gen-api/pkg/metrics"
)

// 结构化提取产出低于该长度时退回正则剥离
const minStructuredLength = 100

var (
	tagPattern        = regexp.MustCompile(`<[^>]+>`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// WebExtractor 网页正文提取器
type WebExtractor struct {
	client    *http.Client
	userAgent string
}

// NewWebExtractor 创建网页正文提取器
func NewWebExtractor(cfg *config.ResearchConfig) *WebExtractor {
	return &WebExtractor{
		client: &http.Client{
			Timeout: cfg.FetchTimeout,
		},
		userAgent: cfg.UserAgent,
	}
}

// Extract 抓取 URL 并提取可读正文
// 网络失败返回错误，调用方记录后跳过该 URL，生成流程继续
func (e *WebExtractor) Extract(ctx context.Context, url string) (string, error) {
	ctx, span := tracer.Start(ctx, "research.WebExtractor.Extract",
		trace.WithAttributes(attribute.String("research.url", url)))
	defer span.End()

	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		metrics.ResearchExtractionTotal.WithLabelValues("url", "error").Inc()
		return "", fmt.Errorf("failed to build request for %s: %w", url, err)
	}
	req.Header.Set("User-Agent", e.userAgent)

	resp, err := e.client.Do(req)
	if err != nil {
		span.RecordError(err)
		metrics.ResearchExtractionTotal.WithLabelValues("url", "error").Inc()
		return "", fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.ResearchExtractionTotal.WithLabelValues("url", "error").Inc()
		return "", fmt.Errorf("unexpected status %d fetching %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		span.RecordError(err)
		metrics.ResearchExtractionTotal.WithLabelValues("url", "error").Inc()
		return "", fmt.Errorf("failed to read body of %s: %w", url, err)
	}

	text := extractStructured(body)
	if len(text) < minStructuredLength {
		text = stripTags(string(body))
	}

	metrics.ResearchExtractionTotal.WithLabelValues("url", "ok").Inc()
	metrics.ResearchExtractionDuration.WithLabelValues("url").Observe(time.Since(start).Seconds())
	return text, nil
}

// extractStructured 按内容标签提取文本
func extractStructured(body []byte) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(body)))
	if err != nil {
		return ""
	}

	var parts []string
	doc.Find("p, h1, h2, h3, h4, h5, h6, li, article, section").Each(func(_ int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		if text != "" {
			parts = append(parts, text)
		}
	})

	return normalizeWhitespace(strings.Join(parts, "\n"))
}

// stripTags 粗粒度剥离 HTML 标签的兜底方案
func stripTags(html string) string {
	return normalizeWhitespace(tagPattern.ReplaceAllString(html, " "))
}

// normalizeWhitespace 压缩连续空白
func normalizeWhitespace(s string) string {
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(s, " "))
}
