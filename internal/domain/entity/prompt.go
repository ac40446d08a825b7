// Package entity 定义领域实体
package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ContentModule 内容模块
type ContentModule string

const (
	ContentModuleLinkedIn ContentModule = "linkedin"
	ContentModuleBlog     ContentModule = "blog"
)

// ArticleType 博客文章类型，仅 blog 模块有效
type ArticleType string

const (
	ArticleTypeGeneralInterest ArticleType = "general_interest"
	ArticleTypeSuccessCase     ArticleType = "success_case"
)

// SystemPromptTemplate 全局系统提示词模板，由种子程序写入，API 只读
type SystemPromptTemplate struct {
	ID            string        `json:"id" gorm:"type:uuid;primaryKey"`
	TemplateName  string        `json:"template_name" gorm:"type:varchar(100);uniqueIndex;not null"`
	ContentModule ContentModule `json:"content_module" gorm:"type:varchar(50);not null;index"`
	ArticleType   *ArticleType  `json:"article_type,omitempty" gorm:"type:varchar(50)"`
	StyleKey      string        `json:"style_key" gorm:"type:varchar(100);not null"`
	DisplayName   string        `json:"display_name" gorm:"type:varchar(255);not null"`
	PromptText    string        `json:"prompt_text" gorm:"type:text;not null"`
	IsActive      bool          `json:"is_active" gorm:"default:true;not null"`
	CreatedAt     time.Time     `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt     time.Time     `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName 指定表名
func (SystemPromptTemplate) TableName() string {
	return "system_prompt_templates"
}

// BeforeCreate 在插入前补全主键
func (t *SystemPromptTemplate) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

// UserCustomPrompt 用户自定义提示词
type UserCustomPrompt struct {
	ID            string        `json:"id" gorm:"type:uuid;primaryKey"`
	UserID        string        `json:"user_id" gorm:"type:uuid;not null;index;uniqueIndex:idx_user_prompt_name"`
	PromptName    string        `json:"prompt_name" gorm:"type:varchar(255);not null;uniqueIndex:idx_user_prompt_name"`
	ContentModule ContentModule `json:"content_module" gorm:"type:varchar(50);not null"`
	ArticleType   *ArticleType  `json:"article_type,omitempty" gorm:"type:varchar(50)"`
	PromptText    string        `json:"prompt_text" gorm:"type:text;not null"`
	CreatedAt     time.Time     `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt     time.Time     `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName 指定表名
func (UserCustomPrompt) TableName() string {
	return "user_custom_prompts"
}

// NewUserCustomPrompt 创建用户自定义提示词
func NewUserCustomPrompt(userID, name string, module ContentModule, articleType *ArticleType, text string) *UserCustomPrompt {
	now := time.Now()
	return &UserCustomPrompt{
		UserID:        userID,
		PromptName:    name,
		ContentModule: module,
		ArticleType:   articleType,
		PromptText:    text,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// BeforeCreate 在插入前补全主键
func (p *UserCustomPrompt) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// Validate 校验模块和文章类型的组合
// article_type 仅对 blog 模块有效，linkedin 必须为空
func (p *UserCustomPrompt) Validate() bool {
	switch p.ContentModule {
	case ContentModuleLinkedIn:
		return p.ArticleType == nil
	case ContentModuleBlog:
		if p.ArticleType == nil {
			return true
		}
		return *p.ArticleType == ArticleTypeGeneralInterest || *p.ArticleType == ArticleTypeSuccessCase
	default:
		return false
	}
}
