package dto

import (
	"content-gen-api/internal/domain/entity"
)

// TemplateDTO 系统提示词模板
type TemplateDTO struct {
	ID            string  `json:"id"`
	TemplateName  string  `json:"template_name"`
	ContentModule string  `json:"content_module"`
	ArticleType   *string `json:"article_type,omitempty"`
	StyleKey      string  `json:"style_key"`
	DisplayName   string  `json:"display_name"`
	PromptText    string  `json:"prompt_text"`
	IsActive      bool    `json:"is_active"`
}

// ToTemplateDTO 实体转 DTO
func ToTemplateDTO(t *entity.SystemPromptTemplate) *TemplateDTO {
	if t == nil {
		return nil
	}
	dto := &TemplateDTO{
		ID:            t.ID,
		TemplateName:  t.TemplateName,
		ContentModule: string(t.ContentModule),
		StyleKey:      t.StyleKey,
		DisplayName:   t.DisplayName,
		PromptText:    t.PromptText,
		IsActive:      t.IsActive,
	}
	if t.ArticleType != nil {
		at := string(*t.ArticleType)
		dto.ArticleType = &at
	}
	return dto
}

// ToTemplateDTOs 批量转换
func ToTemplateDTOs(templates []*entity.SystemPromptTemplate) []*TemplateDTO {
	dtos := make([]*TemplateDTO, 0, len(templates))
	for _, t := range templates {
		dtos = append(dtos, ToTemplateDTO(t))
	}
	return dtos
}

// CustomPromptRequest 创建或更新自定义提示词请求
type CustomPromptRequest struct {
	PromptName    string  `json:"prompt_name" binding:"required,max=255"`
	ContentModule string  `json:"content_module" binding:"required"`
	ArticleType   *string `json:"article_type"`
	PromptText    string  `json:"prompt_text" binding:"required"`
}

// CustomPromptDTO 自定义提示词
type CustomPromptDTO struct {
	ID            string  `json:"id"`
	PromptName    string  `json:"prompt_name"`
	ContentModule string  `json:"content_module"`
	ArticleType   *string `json:"article_type,omitempty"`
	PromptText    string  `json:"prompt_text"`
	CreatedAt     string  `json:"created_at"`
	UpdatedAt     string  `json:"updated_at"`
}

// ToCustomPromptDTO 实体转 DTO
func ToCustomPromptDTO(p *entity.UserCustomPrompt) *CustomPromptDTO {
	if p == nil {
		return nil
	}
	dto := &CustomPromptDTO{
		ID:            p.ID,
		PromptName:    p.PromptName,
		ContentModule: string(p.ContentModule),
		PromptText:    p.PromptText,
		CreatedAt:     p.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:     p.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	if p.ArticleType != nil {
		at := string(*p.ArticleType)
		dto.ArticleType = &at
	}
	return dto
}

// ToCustomPromptDTOs 批量转换
func ToCustomPromptDTOs(prompts []*entity.UserCustomPrompt) []*CustomPromptDTO {
	dtos := make([]*CustomPromptDTO, 0, len(prompts))
	for _, p := range prompts {
		dtos = append(dtos, ToCustomPromptDTO(p))
	}
	return dtos
}
