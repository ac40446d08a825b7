package handler

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"content-gen-api/internal/domain/entity"
	"content-gen-api/internal/infrastructure/persistence/postgres"
)

type contentTestEnv struct {
	client   *postgres.Client
	contents *postgres.ContentRepository
	tags     *postgres.TagRepository
	handler  *ContentHandler
}

func newContentTestEnv(t *testing.T) *contentTestEnv {
	t.Helper()

	client := newTestClient(t)
	contents := postgres.NewContentRepository(client)
	tags := postgres.NewTagRepository(client)
	return &contentTestEnv{
		client:   client,
		contents: contents,
		tags:     tags,
		handler:  NewContentHandler(contents, tags),
	}
}

// routerFor 以指定用户身份挂载历史记录路由
func (env *contentTestEnv) routerFor(userID string) *gin.Engine {
	r := gin.New()
	g := r.Group("/v1", asUser(userID))
	g.GET("/content", env.handler.List)
	g.GET("/content/:cid", env.handler.Get)
	g.PUT("/content/:cid/title", env.handler.UpdateTitle)
	g.DELETE("/content/:cid", env.handler.Delete)
	g.POST("/content/:cid/tags/:tid", env.handler.AttachTag)
	g.DELETE("/content/:cid/tags/:tid", env.handler.DetachTag)
	return r
}

func (env *contentTestEnv) seedContent(t *testing.T, userID string, ctype entity.ContentType, createdAt time.Time) *entity.GeneratedContent {
	t.Helper()

	content := &entity.GeneratedContent{
		UserID:        userID,
		ContentType:   ctype,
		HumanPrompt:   "un post sobre liderazgo",
		SystemPrompt:  "system prompt",
		StyleKey:      "Default",
		ModelUsed:     "gpt-4o",
		Temperature:   0.7,
		GeneratedText: "texto generado",
		CreatedAt:     createdAt,
		UpdatedAt:     createdAt,
	}
	require.NoError(t, env.contents.Create(t.Context(), content))
	return content
}

func TestContentList(t *testing.T) {
	env := newContentTestEnv(t)
	user := seedUser(t, env.client, "alice@example.com")
	r := env.routerFor(user.ID)

	base := time.Now().Add(-time.Hour)
	env.seedContent(t, user.ID, entity.ContentTypeLinkedInPost, base)
	env.seedContent(t, user.ID, entity.ContentTypeBlogGeneralInterest, base.Add(time.Minute))
	env.seedContent(t, user.ID, entity.ContentTypeLinkedInPost, base.Add(2*time.Minute))

	w := performJSON(r, http.MethodGet, "/v1/content?limit=2", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body := decodeBody(t, w)
	meta, ok := body["meta"].(map[string]any)
	require.True(t, ok)
	assert.EqualValues(t, 3, meta["total"])
	items, ok := body["data"].([]any)
	require.True(t, ok)
	assert.Len(t, items, 2)

	// content_type 过滤
	w = performJSON(r, http.MethodGet, "/v1/content?content_type=blog_general_interest", nil)
	require.Equal(t, http.StatusOK, w.Code)
	items, _ = decodeBody(t, w)["data"].([]any)
	assert.Len(t, items, 1)

	// 非法 content_type
	w = performJSON(r, http.MethodGet, "/v1/content?content_type=tweet", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestContentGet(t *testing.T) {
	env := newContentTestEnv(t)
	user := seedUser(t, env.client, "alice@example.com")
	r := env.routerFor(user.ID)

	content := env.seedContent(t, user.ID, entity.ContentTypeLinkedInPost, time.Now())

	w := performJSON(r, http.MethodGet, "/v1/content/"+content.ID, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	data := dataField(t, w)
	assert.Equal(t, "texto generado", data["generated_text_main"])

	w = performJSON(r, http.MethodGet, "/v1/content/missing-id", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "3002", errorCode(t, w))
}

func TestContentCrossUserIsNotFound(t *testing.T) {
	env := newContentTestEnv(t)
	owner := seedUser(t, env.client, "owner@example.com")
	other := seedUser(t, env.client, "other@example.com")

	content := env.seedContent(t, owner.ID, entity.ContentTypeLinkedInPost, time.Now())
	r := env.routerFor(other.ID)

	w := performJSON(r, http.MethodGet, "/v1/content/"+content.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = performJSON(r, http.MethodDelete, "/v1/content/"+content.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = performJSON(r, http.MethodPut, "/v1/content/"+content.ID+"/title", gin.H{"custom_title": "robado"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestContentUpdateTitle(t *testing.T) {
	env := newContentTestEnv(t)
	user := seedUser(t, env.client, "alice@example.com")
	r := env.routerFor(user.ID)

	content := env.seedContent(t, user.ID, entity.ContentTypeLinkedInPost, time.Now())

	w := performJSON(r, http.MethodPut, "/v1/content/"+content.ID+"/title", gin.H{"custom_title": "Mi título"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Mi título", dataField(t, w)["custom_title"])

	// 缺少标题字段
	w = performJSON(r, http.MethodPut, "/v1/content/"+content.ID+"/title", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestContentSoftDelete(t *testing.T) {
	env := newContentTestEnv(t)
	user := seedUser(t, env.client, "alice@example.com")
	r := env.routerFor(user.ID)

	content := env.seedContent(t, user.ID, entity.ContentTypeLinkedInPost, time.Now())

	w := performJSON(r, http.MethodDelete, "/v1/content/"+content.ID, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	// 删除后对所有读路径不可见
	w = performJSON(r, http.MethodGet, "/v1/content/"+content.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// 重复删除
	w = performJSON(r, http.MethodDelete, "/v1/content/"+content.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestContentAttachDetachTag(t *testing.T) {
	env := newContentTestEnv(t)
	user := seedUser(t, env.client, "alice@example.com")
	r := env.routerFor(user.ID)

	content := env.seedContent(t, user.ID, entity.ContentTypeLinkedInPost, time.Now())
	tag := entity.NewTag(user.ID, "clientes")
	require.NoError(t, env.tags.Create(t.Context(), tag))

	w := performJSON(r, http.MethodPost, "/v1/content/"+content.ID+"/tags/"+tag.ID, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = performJSON(r, http.MethodGet, "/v1/content/"+content.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	tags, _ := dataField(t, w)["tags"].([]any)
	assert.Len(t, tags, 1)

	w = performJSON(r, http.MethodDelete, "/v1/content/"+content.ID+"/tags/"+tag.ID, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	// 不存在的标签
	w = performJSON(r, http.MethodPost, "/v1/content/"+content.ID+"/tags/missing-tag", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "3005", errorCode(t, w))
}
