// Package entity 定义领域实体
package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ContentType 生成内容类型
type ContentType string

const (
	ContentTypeLinkedInPost        ContentType = "linkedin_post"
	ContentTypeBlogGeneralInterest ContentType = "blog_general_interest"
	ContentTypeBlogSuccessCase     ContentType = "blog_success_case"
)

// IsValid 检查内容类型是否合法
func (t ContentType) IsValid() bool {
	switch t {
	case ContentTypeLinkedInPost, ContentTypeBlogGeneralInterest, ContentTypeBlogSuccessCase:
		return true
	}
	return false
}

// Module 返回内容类型所属模块
func (t ContentType) Module() ContentModule {
	if t == ContentTypeLinkedInPost {
		return ContentModuleLinkedIn
	}
	return ContentModuleBlog
}

// WebResearchOptions 网络研究选项，原样随历史记录存档
type WebResearchOptions struct {
	SearchContextSize string `json:"search_context_size"` // low / medium / high
}

// GeneratedContent 生成内容历史记录
// 每次成功生成写入一行，保存完整的请求元数据
type GeneratedContent struct {
	ID               string              `json:"id" gorm:"type:uuid;primaryKey"`
	UserID           string              `json:"user_id" gorm:"type:uuid;not null;index"`
	ContentType      ContentType         `json:"content_type" gorm:"type:varchar(50);not null;index"`
	CustomTitle      string              `json:"custom_title,omitempty" gorm:"type:varchar(255)"`
	HumanPrompt      string              `json:"human_prompt_used" gorm:"column:human_prompt_used;type:text;not null"`
	SystemPrompt     string              `json:"system_prompt_used" gorm:"column:system_prompt_used;type:text;not null"`
	StyleKey         string              `json:"style_key_selected" gorm:"column:style_key_selected;type:varchar(50);not null"`
	ModelUsed        string              `json:"model_used" gorm:"type:varchar(100);not null"`
	Temperature      float64             `json:"temperature_used" gorm:"column:temperature_used;not null"`
	MaxTokens        *int                `json:"max_tokens_used,omitempty" gorm:"column:max_tokens_used"`
	SummaryMaxTokens *int                `json:"summary_max_tokens_used,omitempty" gorm:"column:summary_max_tokens_used"`
	ResearchedURLs   []string            `json:"urls_researched,omitempty" gorm:"column:urls_researched;type:jsonb;serializer:json"`
	WebResearch      *WebResearchOptions `json:"web_research_options,omitempty" gorm:"column:web_research_options;type:jsonb;serializer:json"`
	PDFFilename      string              `json:"pdf_filename_original,omitempty" gorm:"column:pdf_filename_original;type:varchar(255)"`
	GeneratedText    string              `json:"generated_text_main" gorm:"column:generated_text_main;type:text;not null"`
	SummaryText      string              `json:"generated_text_summary,omitempty" gorm:"column:generated_text_summary;type:text"`
	ResearchSummary  string              `json:"researched_content_summary,omitempty" gorm:"column:researched_content_summary;type:text"`
	IsDeleted        bool                `json:"-" gorm:"default:false;not null;index"`
	Tags             []*Tag              `json:"tags,omitempty" gorm:"many2many:content_tags"`
	CreatedAt        time.Time           `json:"created_at" gorm:"autoCreateTime;index"`
	UpdatedAt        time.Time           `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName 指定表名
func (GeneratedContent) TableName() string {
	return "generated_content"
}

// BeforeCreate 在插入前补全主键与默认标题
func (c *GeneratedContent) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.CustomTitle == "" {
		c.CustomTitle = DefaultTitle(c.HumanPrompt)
	}
	return nil
}

// DefaultTitle 从人类提示词生成默认标题，最多 100 个字符
func DefaultTitle(humanPrompt string) string {
	runes := []rune(humanPrompt)
	if len(runes) > 100 {
		return string(runes[:100])
	}
	return humanPrompt
}

// Snippet 返回正文摘要片段，最多 limit 个字符
func (c *GeneratedContent) Snippet(limit int) string {
	runes := []rune(c.GeneratedText)
	if len(runes) > limit {
		return string(runes[:limit]) + "..."
	}
	return c.GeneratedText
}

// SoftDelete 标记为已删除
func (c *GeneratedContent) SoftDelete() {
	c.IsDeleted = true
	c.UpdatedAt = time.Now()
}
