// Package postgres 提供 PostgreSQL Repository 实现
package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"content-gen-api/internal/domain/entity"
	"content-gen-api/internal/domain/repository"
)

// TemplateRepository 系统提示词模板仓储实现
type TemplateRepository struct {
	client *Client
}

// NewTemplateRepository 创建系统提示词模板仓储
func NewTemplateRepository(client *Client) *TemplateRepository {
	return &TemplateRepository{client: client}
}

// List 按过滤条件列出模板
func (r *TemplateRepository) List(ctx context.Context, filter *repository.TemplateFilter) ([]*entity.SystemPromptTemplate, error) {
	ctx, span := tracer.Start(ctx, "postgres.TemplateRepository.List")
	defer span.End()

	db := getDB(ctx, r.client.db).Model(&entity.SystemPromptTemplate{})
	if filter != nil {
		if filter.ContentModule != "" {
			db = db.Where("content_module = ?", filter.ContentModule)
		}
		if filter.ArticleType != nil {
			db = db.Where("article_type = ?", *filter.ArticleType)
		}
		if filter.StyleKey != "" {
			db = db.Where("style_key = ?", filter.StyleKey)
		}
		if filter.OnlyActive {
			db = db.Where("is_active = ?", true)
		}
	}

	var templates []*entity.SystemPromptTemplate
	if err := db.Order("template_name ASC").Find(&templates).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	return templates, nil
}

// GetByID 根据 ID 获取模板
func (r *TemplateRepository) GetByID(ctx context.Context, id string) (*entity.SystemPromptTemplate, error) {
	ctx, span := tracer.Start(ctx, "postgres.TemplateRepository.GetByID")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var template entity.SystemPromptTemplate
	if err := db.First(&template, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get template: %w", err)
	}
	return &template, nil
}

// GetByName 根据唯一名称获取模板
func (r *TemplateRepository) GetByName(ctx context.Context, name string) (*entity.SystemPromptTemplate, error) {
	ctx, span := tracer.Start(ctx, "postgres.TemplateRepository.GetByName")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var template entity.SystemPromptTemplate
	if err := db.First(&template, "template_name = ?", name).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get template by name: %w", err)
	}
	return &template, nil
}

// Upsert 按名称插入或更新模板
func (r *TemplateRepository) Upsert(ctx context.Context, template *entity.SystemPromptTemplate) error {
	ctx, span := tracer.Start(ctx, "postgres.TemplateRepository.Upsert")
	defer span.End()

	db := getDB(ctx, r.client.db)
	err := db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "template_name"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"content_module", "article_type", "style_key", "display_name", "prompt_text", "is_active", "updated_at",
		}),
	}).Create(template).Error
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to upsert template: %w", err)
	}
	return nil
}
