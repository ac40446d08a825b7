package dto

import (
	"content-gen-api/internal/domain/entity"
)

// GenerateLinkedInRequest LinkedIn 帖子生成请求
// style_key 缺省时取用户偏好中的默认风格
type GenerateLinkedInRequest struct {
	HumanPrompt  string   `json:"human_prompt" binding:"required"`
	SystemPrompt string   `json:"system_prompt" binding:"required"`
	StyleKey     string   `json:"style_key"`
	Temperature  *float64 `json:"temperature"`
}

// GenerateGeneralInterestRequest 通用兴趣博客文章生成请求
type GenerateGeneralInterestRequest struct {
	HumanPrompt    string                     `json:"human_prompt" binding:"required"`
	SystemPrompt   string                     `json:"system_prompt" binding:"required"`
	StyleKey       string                     `json:"style_key"`
	Temperature    *float64                   `json:"temperature"`
	MaxTokens      *int                       `json:"max_tokens"`
	URLsToResearch []string                   `json:"urls_to_research"`
	WebResearch    *entity.WebResearchOptions `json:"web_research_options"`
}

// GenerateSuccessCaseRequest 成功案例博客文章生成请求
// multipart 表单中随 PDF 一起以 request_data 字段提交
type GenerateSuccessCaseRequest struct {
	HumanPrompt      string   `json:"human_prompt" binding:"required"`
	SystemPrompt     string   `json:"system_prompt" binding:"required"`
	StyleKey         string   `json:"style_key"`
	Temperature      *float64 `json:"temperature"`
	MaxTokens        *int     `json:"max_tokens"`
	MaxTokensSummary *int     `json:"max_tokens_summary"`
}

// GenerationResponse 生成结果，含落库的历史记录 ID
type GenerationResponse struct {
	ID              string   `json:"id"`
	ContentType     string   `json:"content_type"`
	CustomTitle     string   `json:"custom_title"`
	GeneratedText   string   `json:"generated_text_main"`
	SummaryText     string   `json:"generated_text_summary,omitempty"`
	ResearchSummary string   `json:"researched_content_summary,omitempty"`
	ModelUsed       string   `json:"model_used"`
	StyleKey        string   `json:"style_key_selected"`
	Temperature     float64  `json:"temperature_used"`
	MaxTokens       *int     `json:"max_tokens_used,omitempty"`
	ResearchedURLs  []string `json:"urls_researched,omitempty"`
	CreatedAt       string   `json:"created_at"`
}

// ToGenerationResponse 实体转 DTO
func ToGenerationResponse(c *entity.GeneratedContent) *GenerationResponse {
	if c == nil {
		return nil
	}
	return &GenerationResponse{
		ID:              c.ID,
		ContentType:     string(c.ContentType),
		CustomTitle:     c.CustomTitle,
		GeneratedText:   c.GeneratedText,
		SummaryText:     c.SummaryText,
		ResearchSummary: c.ResearchSummary,
		ModelUsed:       c.ModelUsed,
		StyleKey:        c.StyleKey,
		Temperature:     c.Temperature,
		MaxTokens:       c.MaxTokens,
		ResearchedURLs:  c.ResearchedURLs,
		CreatedAt:       c.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
