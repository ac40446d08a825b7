package dto

import (
	"content-gen-api/internal/domain/entity"
)

// snippetLength 历史列表中正文片段的最大长度
const snippetLength = 200

// ContentSummaryDTO 历史记录列表项，正文只保留片段
type ContentSummaryDTO struct {
	ID          string    `json:"id"`
	ContentType string    `json:"content_type"`
	CustomTitle string    `json:"custom_title"`
	StyleKey    string    `json:"style_key_selected"`
	ModelUsed   string    `json:"model_used"`
	Snippet     string    `json:"snippet"`
	Tags        []*TagDTO `json:"tags,omitempty"`
	CreatedAt   string    `json:"created_at"`
}

// ToContentSummaryDTO 实体转列表项 DTO
func ToContentSummaryDTO(c *entity.GeneratedContent) *ContentSummaryDTO {
	if c == nil {
		return nil
	}
	return &ContentSummaryDTO{
		ID:          c.ID,
		ContentType: string(c.ContentType),
		CustomTitle: c.CustomTitle,
		StyleKey:    c.StyleKey,
		ModelUsed:   c.ModelUsed,
		Snippet:     c.Snippet(snippetLength),
		Tags:        ToTagDTOs(c.Tags),
		CreatedAt:   c.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// ToContentSummaryDTOs 批量转换
func ToContentSummaryDTOs(contents []*entity.GeneratedContent) []*ContentSummaryDTO {
	dtos := make([]*ContentSummaryDTO, 0, len(contents))
	for _, c := range contents {
		dtos = append(dtos, ToContentSummaryDTO(c))
	}
	return dtos
}

// ContentDetailDTO 历史记录详情，包含完整的生成元数据
type ContentDetailDTO struct {
	ID               string                     `json:"id"`
	ContentType      string                     `json:"content_type"`
	CustomTitle      string                     `json:"custom_title"`
	HumanPrompt      string                     `json:"human_prompt_used"`
	SystemPrompt     string                     `json:"system_prompt_used"`
	StyleKey         string                     `json:"style_key_selected"`
	ModelUsed        string                     `json:"model_used"`
	Temperature      float64                    `json:"temperature_used"`
	MaxTokens        *int                       `json:"max_tokens_used,omitempty"`
	SummaryMaxTokens *int                       `json:"summary_max_tokens_used,omitempty"`
	ResearchedURLs   []string                   `json:"urls_researched,omitempty"`
	WebResearch      *entity.WebResearchOptions `json:"web_research_options,omitempty"`
	PDFFilename      string                     `json:"pdf_filename_original,omitempty"`
	GeneratedText    string                     `json:"generated_text_main"`
	SummaryText      string                     `json:"generated_text_summary,omitempty"`
	ResearchSummary  string                     `json:"researched_content_summary,omitempty"`
	Tags             []*TagDTO                  `json:"tags,omitempty"`
	CreatedAt        string                     `json:"created_at"`
	UpdatedAt        string                     `json:"updated_at"`
}

// ToContentDetailDTO 实体转详情 DTO
func ToContentDetailDTO(c *entity.GeneratedContent) *ContentDetailDTO {
	if c == nil {
		return nil
	}
	return &ContentDetailDTO{
		ID:               c.ID,
		ContentType:      string(c.ContentType),
		CustomTitle:      c.CustomTitle,
		HumanPrompt:      c.HumanPrompt,
		SystemPrompt:     c.SystemPrompt,
		StyleKey:         c.StyleKey,
		ModelUsed:        c.ModelUsed,
		Temperature:      c.Temperature,
		MaxTokens:        c.MaxTokens,
		SummaryMaxTokens: c.SummaryMaxTokens,
		ResearchedURLs:   c.ResearchedURLs,
		WebResearch:      c.WebResearch,
		PDFFilename:      c.PDFFilename,
		GeneratedText:    c.GeneratedText,
		SummaryText:      c.SummaryText,
		ResearchSummary:  c.ResearchSummary,
		Tags:             ToTagDTOs(c.Tags),
		CreatedAt:        c.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:        c.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// UpdateTitleRequest 更新历史记录标题请求
type UpdateTitleRequest struct {
	CustomTitle string `json:"custom_title" binding:"required,max=255"`
}

// TagDTO 标签
type TagDTO struct {
	ID      string `json:"id"`
	TagName string `json:"tag_name"`
}

// ToTagDTO 实体转 DTO
func ToTagDTO(t *entity.Tag) *TagDTO {
	if t == nil {
		return nil
	}
	return &TagDTO{
		ID:      t.ID,
		TagName: t.TagName,
	}
}

// ToTagDTOs 批量转换
func ToTagDTOs(tags []*entity.Tag) []*TagDTO {
	if len(tags) == 0 {
		return nil
	}
	dtos := make([]*TagDTO, 0, len(tags))
	for _, t := range tags {
		dtos = append(dtos, ToTagDTO(t))
	}
	return dtos
}

// CreateTagRequest 创建标签请求
type CreateTagRequest struct {
	TagName string `json:"tag_name" binding:"required,max=100"`
}
