// Package repository 定义数据访问层接口
package repository

import (
	"context"

	"content-gen-api/internal/domain/entity"
)

// TemplateFilter 系统模板过滤条件
type TemplateFilter struct {
	ContentModule entity.ContentModule
	ArticleType   *entity.ArticleType
	StyleKey      string
	OnlyActive    bool
}

// TemplateRepository 系统提示词模板仓储接口，API 侧只读
type TemplateRepository interface {
	// List 按过滤条件列出模板
	List(ctx context.Context, filter *TemplateFilter) ([]*entity.SystemPromptTemplate, error)

	// GetByID 根据 ID 获取模板
	GetByID(ctx context.Context, id string) (*entity.SystemPromptTemplate, error)

	// GetByName 根据唯一名称获取模板
	GetByName(ctx context.Context, name string) (*entity.SystemPromptTemplate, error)

	// Upsert 按名称插入或更新模板，供种子程序使用
	Upsert(ctx context.Context, template *entity.SystemPromptTemplate) error
}

// CustomPromptRepository 用户自定义提示词仓储接口
type CustomPromptRepository interface {
	// Create 创建自定义提示词
	Create(ctx context.Context, prompt *entity.UserCustomPrompt) error

	// GetByID 获取指定用户的自定义提示词
	GetByID(ctx context.Context, userID, id string) (*entity.UserCustomPrompt, error)

	// ListByUser 列出用户的全部自定义提示词
	ListByUser(ctx context.Context, userID string) ([]*entity.UserCustomPrompt, error)

	// Update 更新自定义提示词
	Update(ctx context.Context, prompt *entity.UserCustomPrompt) error

	// Delete 删除自定义提示词
	Delete(ctx context.Context, userID, id string) error
}
