package handler

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"content-gen-api/internal/infrastructure/persistence/postgres"
)

func newPromptTestRouter(t *testing.T, userID string) *gin.Engine {
	t.Helper()

	client := newTestClient(t)
	seedUserWithID(t, client, userID)
	h := NewCustomPromptHandler(postgres.NewCustomPromptRepository(client))

	r := gin.New()
	g := r.Group("/v1", asUser(userID))
	g.GET("/prompts", h.List)
	g.POST("/prompts", h.Create)
	g.GET("/prompts/:pid", h.Get)
	g.PUT("/prompts/:pid", h.Update)
	g.DELETE("/prompts/:pid", h.Delete)
	return r
}

func TestPromptCreateAndGet(t *testing.T) {
	r := newPromptTestRouter(t, "user-1")

	w := performJSON(r, http.MethodPost, "/v1/prompts", gin.H{
		"prompt_name":    "mi-prompt",
		"content_module": "linkedin",
		"prompt_text":    "Escribe un post sobre {topic}",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := dataField(t, w)
	assert.Equal(t, "mi-prompt", created["prompt_name"])

	id, _ := created["id"].(string)
	w = performJSON(r, http.MethodGet, "/v1/prompts/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Escribe un post sobre {topic}", dataField(t, w)["prompt_text"])

	w = performJSON(r, http.MethodGet, "/v1/prompts/missing-id", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "3004", errorCode(t, w))
}

func TestPromptCreateInvalidCombination(t *testing.T) {
	r := newPromptTestRouter(t, "user-1")

	// linkedin 模块不允许 article_type
	w := performJSON(r, http.MethodPost, "/v1/prompts", gin.H{
		"prompt_name":    "malo",
		"content_module": "linkedin",
		"article_type":   "general_interest",
		"prompt_text":    "texto",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "4002", errorCode(t, w))

	// 未知文章类型
	w = performJSON(r, http.MethodPost, "/v1/prompts", gin.H{
		"prompt_name":    "malo-2",
		"content_module": "blog",
		"article_type":   "fanfic",
		"prompt_text":    "texto",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestPromptCreateDuplicateName(t *testing.T) {
	r := newPromptTestRouter(t, "user-1")

	body := gin.H{
		"prompt_name":    "repetido",
		"content_module": "blog",
		"prompt_text":    "texto",
	}
	w := performJSON(r, http.MethodPost, "/v1/prompts", body)
	require.Equal(t, http.StatusCreated, w.Code)

	w = performJSON(r, http.MethodPost, "/v1/prompts", body)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestPromptUpdate(t *testing.T) {
	r := newPromptTestRouter(t, "user-1")

	w := performJSON(r, http.MethodPost, "/v1/prompts", gin.H{
		"prompt_name":    "original",
		"content_module": "blog",
		"article_type":   "success_case",
		"prompt_text":    "texto original",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	id, _ := dataField(t, w)["id"].(string)

	w = performJSON(r, http.MethodPut, "/v1/prompts/"+id, gin.H{
		"prompt_name":    "renombrado",
		"content_module": "blog",
		"prompt_text":    "texto nuevo",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := dataField(t, w)
	assert.Equal(t, "renombrado", updated["prompt_name"])
	assert.Equal(t, "texto nuevo", updated["prompt_text"])

	w = performJSON(r, http.MethodPut, "/v1/prompts/missing-id", gin.H{
		"prompt_name":    "x",
		"content_module": "blog",
		"prompt_text":    "y",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPromptDelete(t *testing.T) {
	r := newPromptTestRouter(t, "user-1")

	w := performJSON(r, http.MethodPost, "/v1/prompts", gin.H{
		"prompt_name":    "temporal",
		"content_module": "linkedin",
		"prompt_text":    "texto",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	id, _ := dataField(t, w)["id"].(string)

	w = performJSON(r, http.MethodDelete, "/v1/prompts/"+id, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = performJSON(r, http.MethodDelete, "/v1/prompts/"+id, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPromptList(t *testing.T) {
	r := newPromptTestRouter(t, "user-1")

	for _, name := range []string{"uno", "dos"} {
		w := performJSON(r, http.MethodPost, "/v1/prompts", gin.H{
			"prompt_name":    name,
			"content_module": "linkedin",
			"prompt_text":    "texto",
		})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := performJSON(r, http.MethodGet, "/v1/prompts", nil)
	require.Equal(t, http.StatusOK, w.Code)
	items, ok := decodeBody(t, w)["data"].([]any)
	require.True(t, ok)
	assert.Len(t, items, 2)
}
