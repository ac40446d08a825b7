package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"content-gen-api/internal/domain/entity"
)

func TestToGenerationResponseCarriesGenerationParams(t *testing.T) {
	maxTokens := 1200
	content := &entity.GeneratedContent{
		ID:          "c-1",
		ContentType: entity.ContentTypeLinkedInPost,
		StyleKey:    "Default",
		ModelUsed:   "gpt-4o",
		Temperature: 0.5,
		MaxTokens:   &maxTokens,
		CreatedAt:   time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC),
	}

	b, err := json.Marshal(ToGenerationResponse(content))
	require.NoError(t, err)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(b, &payload))
	assert.InDelta(t, 0.5, payload["temperature_used"].(float64), 0.001)
	assert.InDelta(t, 1200, payload["max_tokens_used"].(float64), 0.001)
	assert.Equal(t, "gpt-4o", payload["model_used"])
}

func TestToGenerationResponseOmitsUnsetMaxTokens(t *testing.T) {
	b, err := json.Marshal(ToGenerationResponse(&entity.GeneratedContent{ID: "c-2"}))
	require.NoError(t, err)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(b, &payload))
	assert.Contains(t, payload, "temperature_used")
	assert.NotContains(t, payload, "max_tokens_used")
}

func TestToGenerationResponseNil(t *testing.T) {
	assert.Nil(t, ToGenerationResponse(nil))
}
