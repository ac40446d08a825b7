package node

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatReadabilitySentenceSpacing(t *testing.T) {
	got := FormatReadability("Primera frase.Segunda frase.Ésta también.123 números.")
	assert.Equal(t, "Primera frase. Segunda frase. Ésta también. 123 números.", got)
}

func TestFormatReadabilityWhitespace(t *testing.T) {
	input := "línea uno   \n\t línea dos\n\n\n\n\nlínea    tres"
	got := FormatReadability(input)
	assert.Equal(t, "línea uno\nlínea dos\n\nlínea tres", got)
}

func TestFormatReadabilityTrims(t *testing.T) {
	got := FormatReadability("  \n hola \n  ")
	assert.Equal(t, "hola", got)
}

func TestFormatReadabilityIdempotent(t *testing.T) {
	inputs := []string{
		"Primera frase.Segunda.Última frase con Ñandú.Ñame",
		"texto  con   espacios\n\n\n\ny saltos",
		"Ya está. Bien formateado.\n\nSin cambios.",
	}
	for _, input := range inputs {
		once := FormatReadability(input)
		twice := FormatReadability(once)
		assert.Equal(t, once, twice)
	}
}

func TestFormatReadabilityKeepsLowercaseAfterPeriod(t *testing.T) {
	// 小写开头不视为新句，避免拆坏缩写或网址
	got := FormatReadability("visita example.com para más")
	assert.Equal(t, "visita example.com para más", got)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "hola", Truncate("hola", 10))
	assert.Equal(t, "hol", Truncate("hola", 3))
	assert.Equal(t, "áéí", Truncate("áéíóú", 3))
}

func TestBuildResearchBlock(t *testing.T) {
	got := BuildResearchBlock("tema", "resumen")
	assert.True(t, strings.HasPrefix(got, "tema\n\n--- Resumen de Investigación Adicional ---"))
	assert.Contains(t, got, "resumen")
	assert.True(t, strings.HasSuffix(got, "--- Fin del Resumen de Investigación ---"))
}

func TestBuildPDFBlock(t *testing.T) {
	got := BuildPDFBlock("contexto", "texto pdf")
	assert.True(t, strings.HasPrefix(got, "Contexto principal del caso de éxito: contexto"))
	assert.Contains(t, got, "texto pdf")
}
