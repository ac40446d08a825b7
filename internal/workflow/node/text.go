// Package node 提供工作流中可复用的文本处理节点
package node

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	sentenceSpacing = regexp.MustCompile(`\.([A-ZÁÉÍÓÚÑ\d])`)
	newlineSpacing  = regexp.MustCompile(`[ \t]*\n[ \t]*`)
	excessNewlines  = regexp.MustCompile(`\n{3,}`)
	excessSpaces    = regexp.MustCompile(` {2,}`)
)

// FormatReadability 规范生成文本的可读性
// 对已规范文本再次调用不产生变化
func FormatReadability(content string) string {
	content = sentenceSpacing.ReplaceAllString(content, ". $1")
	content = newlineSpacing.ReplaceAllString(content, "\n")
	content = excessNewlines.ReplaceAllString(content, "\n\n")
	content = excessSpaces.ReplaceAllString(content, " ")
	return strings.TrimSpace(content)
}

// BuildResearchBlock 将研究摘要增补进人类提示词
func BuildResearchBlock(humanPrompt, researchSummary string) string {
	return fmt.Sprintf(
		"%s\n\n--- Resumen de Investigación Adicional ---\n%s\n--- Fin del Resumen de Investigación ---",
		humanPrompt, researchSummary,
	)
}

// BuildPDFBlock 将转写后的 PDF 文本增补进人类提示词
func BuildPDFBlock(humanPrompt, transformedPDFText string) string {
	return fmt.Sprintf(
		"Contexto principal del caso de éxito: %s\n\n--- Información Relevante del Documento Técnico (reescrita para un blog) ---\n%s\n--- Fin de la Información del Documento ---",
		humanPrompt, transformedPDFText,
	)
}

// BuildResearchHumanPrompt 构造研究摘要辅助调用的人类提示词
func BuildResearchHumanPrompt(topic, combinedURLText string) string {
	return fmt.Sprintf(
		"Tema principal: %s\n\nContenido extraído de URLs de referencia:\n%s\n\nPor favor, proporciona un resumen conciso y factual de la información más relevante de este contenido en relación con el tema principal, para ser usado en un artículo de blog.",
		topic, combinedURLText,
	)
}

// BuildSummaryHumanPrompt 构造成功案例摘要调用的人类提示词
func BuildSummaryHumanPrompt(articleText string) string {
	return fmt.Sprintf("Por favor, resume el siguiente artículo de caso de éxito:\n\n%s", articleText)
}

// Truncate 按字符数截断文本
func Truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) > limit {
		return string(runes[:limit])
	}
	return text
}
