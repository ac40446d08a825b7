// Package postgres 提供 PostgreSQL Repository 实现
package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"content-gen-api/internal/domain/entity"
)

// CustomPromptRepository 用户自定义提示词仓储实现
type CustomPromptRepository struct {
	client *Client
}

// NewCustomPromptRepository 创建用户自定义提示词仓储
func NewCustomPromptRepository(client *Client) *CustomPromptRepository {
	return &CustomPromptRepository{client: client}
}

// Create 创建自定义提示词
func (r *CustomPromptRepository) Create(ctx context.Context, prompt *entity.UserCustomPrompt) error {
	ctx, span := tracer.Start(ctx, "postgres.CustomPromptRepository.Create")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Create(prompt).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create custom prompt: %w", err)
	}
	return nil
}

// GetByID 获取指定用户的自定义提示词
func (r *CustomPromptRepository) GetByID(ctx context.Context, userID, id string) (*entity.UserCustomPrompt, error) {
	ctx, span := tracer.Start(ctx, "postgres.CustomPromptRepository.GetByID")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var prompt entity.UserCustomPrompt
	if err := db.First(&prompt, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get custom prompt: %w", err)
	}
	return &prompt, nil
}

// ListByUser 列出用户的全部自定义提示词
func (r *CustomPromptRepository) ListByUser(ctx context.Context, userID string) ([]*entity.UserCustomPrompt, error) {
	ctx, span := tracer.Start(ctx, "postgres.CustomPromptRepository.ListByUser")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var prompts []*entity.UserCustomPrompt
	if err := db.Where("user_id = ?", userID).Order("created_at DESC").Find(&prompts).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list custom prompts: %w", err)
	}
	return prompts, nil
}

// Update 更新自定义提示词
func (r *CustomPromptRepository) Update(ctx context.Context, prompt *entity.UserCustomPrompt) error {
	ctx, span := tracer.Start(ctx, "postgres.CustomPromptRepository.Update")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Save(prompt).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to update custom prompt: %w", err)
	}
	return nil
}

// Delete 删除自定义提示词
func (r *CustomPromptRepository) Delete(ctx context.Context, userID, id string) error {
	ctx, span := tracer.Start(ctx, "postgres.CustomPromptRepository.Delete")
	defer span.End()

	db := getDB(ctx, r.client.db)
	result := db.Delete(&entity.UserCustomPrompt{}, "id = ? AND user_id = ?", id, userID)
	if result.Error != nil {
		span.RecordError(result.Error)
		return fmt.Errorf("failed to delete custom prompt: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
