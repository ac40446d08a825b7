package handler

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"content-gen-api/internal/application/generation"
	"content-gen-api/internal/config"
	"content-gen-api/internal/domain/entity"
	"content-gen-api/internal/infrastructure/persistence/postgres"
	"content-gen-api/internal/infrastructure/research"
	"content-gen-api/internal/workflow/chain"
	"content-gen-api/internal/workflow/prompt"
)

func newGenerationTestRouter(t *testing.T) (*gin.Engine, *postgres.PreferenceRepository) {
	t.Helper()

	client := newTestClient(t)
	cfg := testConfig()
	cfg.LLM = config.LLMConfig{
		Styles: map[string]config.StyleConfig{
			"Default": {Model: "gpt-4o", Temperature: 0.65},
		},
		DefaultStyle:     "Default",
		SummaryMaxTokens: 250,
	}
	cfg.Research = config.ResearchConfig{MaxPDFSizeMB: 1}

	// 无 LLM 工厂，只覆盖到达服务层之前的校验路径
	svc := generation.NewService(
		cfg,
		chain.NewGenerateChain(nil),
		prompt.NewRegistry(),
		research.NewWebExtractor(&cfg.Research),
		postgres.NewContentRepository(client),
	)
	prefs := postgres.NewPreferenceRepository(client)
	h := NewGenerationHandler(cfg, svc, prefs)

	r := gin.New()
	g := r.Group("/v1", asUser("user-1"))
	g.POST("/generate/linkedin", h.GenerateLinkedIn)
	g.POST("/generate/blog/general-interest", h.GenerateGeneralInterest)
	g.POST("/generate/blog/success-case", h.GenerateSuccessCase)
	return r, prefs
}

func successCaseForm(t *testing.T, requestData, filename string, fileData []byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if requestData != "" {
		require.NoError(t, w.WriteField("request_data", requestData))
	}
	if filename != "" {
		fw, err := w.CreateFormFile("pdf_file", filename)
		require.NoError(t, err)
		_, err = fw.Write(fileData)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func performForm(r http.Handler, path string, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGenerateLinkedInRejectsBadBody(t *testing.T) {
	r, _ := newGenerationTestRouter(t)

	// 缺少必填字段
	w := performJSON(r, http.MethodPost, "/v1/generate/linkedin", gin.H{"style_key": "Default"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGenerateLinkedInUnknownStyle(t *testing.T) {
	r, _ := newGenerationTestRouter(t)

	w := performJSON(r, http.MethodPost, "/v1/generate/linkedin", gin.H{
		"human_prompt":  "tema",
		"style_key":     "Nadie",
		"system_prompt": "sys",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "4004", errorCode(t, w))
}

func TestGenerateSuccessCaseMissingRequestData(t *testing.T) {
	r, _ := newGenerationTestRouter(t)

	body, contentType := successCaseForm(t, "", "caso.pdf", []byte("%PDF-1.4"))
	w := performForm(r, "/v1/generate/blog/success-case", body, contentType)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGenerateSuccessCaseMissingRequiredFields(t *testing.T) {
	r, _ := newGenerationTestRouter(t)

	body, contentType := successCaseForm(t, `{"human_prompt":"caso"}`, "caso.pdf", []byte("%PDF-1.4"))
	w := performForm(r, "/v1/generate/blog/success-case", body, contentType)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGenerateSuccessCaseMissingFile(t *testing.T) {
	r, _ := newGenerationTestRouter(t)

	body, contentType := successCaseForm(t, `{"human_prompt":"caso","system_prompt":"sys","style_key":"Default"}`, "", nil)
	w := performForm(r, "/v1/generate/blog/success-case", body, contentType)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGenerateSuccessCaseRejectsNonPDF(t *testing.T) {
	r, _ := newGenerationTestRouter(t)

	body, contentType := successCaseForm(t, `{"human_prompt":"caso","system_prompt":"sys","style_key":"Default"}`, "caso.docx", []byte("datos"))
	w := performForm(r, "/v1/generate/blog/success-case", body, contentType)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "4002", errorCode(t, w))
}

func TestGenerateSuccessCaseRejectsOversizedPDF(t *testing.T) {
	r, _ := newGenerationTestRouter(t)

	// 超出 1MB 限制
	big := bytes.Repeat([]byte("a"), (1<<20)+1)
	body, contentType := successCaseForm(t, `{"human_prompt":"caso","system_prompt":"sys","style_key":"Default"}`, "caso.pdf", big)
	w := performForm(r, "/v1/generate/blog/success-case", body, contentType)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGenerateLinkedInDefaultStyleFromPreferences(t *testing.T) {
	r, prefs := newGenerationTestRouter(t)

	pref := entity.NewUserPreference("user-1")
	pref.DefaultLinkedInStyle = "Inexistente"
	require.NoError(t, prefs.Create(t.Context(), pref))

	// 未指定 style_key 时取偏好中的默认风格
	w := performJSON(r, http.MethodPost, "/v1/generate/linkedin", gin.H{
		"human_prompt":  "tema",
		"system_prompt": "sys",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "4004", errorCode(t, w))
}

func TestResolveTemperature(t *testing.T) {
	cfg := testConfig()
	cfg.LLM = config.LLMConfig{Styles: map[string]config.StyleConfig{
		"Default": {Model: "gpt-4o", Temperature: 0.65},
		"Pablo":   {Model: "ft-model"},
	}}
	h := NewGenerationHandler(cfg, nil, nil)

	// 请求值优先
	requested := 0.2
	assert.Equal(t, 0.2, h.resolveTemperature(entity.ContentModuleLinkedIn, "Default", &requested, nil))

	// 其次取风格配置
	assert.Equal(t, 0.65, h.resolveTemperature(entity.ContentModuleLinkedIn, "Default", nil, nil))

	// 风格未配置温度时回落到 0.7
	assert.Equal(t, 0.7, h.resolveTemperature(entity.ContentModuleLinkedIn, "Pablo", nil, nil))
	assert.Equal(t, 0.7, h.resolveTemperature(entity.ContentModuleLinkedIn, "Nadie", nil, nil))
}

func TestResolveTemperatureFromPreferences(t *testing.T) {
	cfg := testConfig()
	cfg.LLM = config.LLMConfig{Styles: map[string]config.StyleConfig{
		"Default": {Model: "gpt-4o", Temperature: 0.65},
		"Pablo":   {Model: "ft-model"},
	}}
	h := NewGenerationHandler(cfg, nil, nil)

	pref := entity.NewUserPreference("user-1")
	pref.DefaultLinkedInTemp = 0.4
	pref.DefaultBlogTemperature = 0.9

	// 风格未配置温度时按模块取偏好温度
	assert.Equal(t, 0.4, h.resolveTemperature(entity.ContentModuleLinkedIn, "Pablo", nil, pref))
	assert.Equal(t, 0.9, h.resolveTemperature(entity.ContentModuleBlog, "Pablo", nil, pref))

	// 风格配置的温度优先于偏好
	assert.Equal(t, 0.65, h.resolveTemperature(entity.ContentModuleLinkedIn, "Default", nil, pref))

	// 请求值优先于一切
	requested := 0.1
	assert.Equal(t, 0.1, h.resolveTemperature(entity.ContentModuleBlog, "Pablo", &requested, pref))
}
