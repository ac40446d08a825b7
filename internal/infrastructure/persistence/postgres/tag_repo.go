// Package postgres 提供 PostgreSQL Repository 实现
package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"content-gen-api/internal/domain/entity"
)

// TagRepository 标签仓储实现
type TagRepository struct {
	client *Client
}

// NewTagRepository 创建标签仓储
func NewTagRepository(client *Client) *TagRepository {
	return &TagRepository{client: client}
}

// Create 创建标签
func (r *TagRepository) Create(ctx context.Context, tag *entity.Tag) error {
	ctx, span := tracer.Start(ctx, "postgres.TagRepository.Create")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Create(tag).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create tag: %w", err)
	}
	return nil
}

// GetByID 获取指定用户的标签
func (r *TagRepository) GetByID(ctx context.Context, userID, id string) (*entity.Tag, error) {
	ctx, span := tracer.Start(ctx, "postgres.TagRepository.GetByID")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var tag entity.Tag
	if err := db.First(&tag, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get tag: %w", err)
	}
	return &tag, nil
}

// ListByUser 列出用户的全部标签
func (r *TagRepository) ListByUser(ctx context.Context, userID string) ([]*entity.Tag, error) {
	ctx, span := tracer.Start(ctx, "postgres.TagRepository.ListByUser")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var tags []*entity.Tag
	if err := db.Where("user_id = ?", userID).Order("tag_name ASC").Find(&tags).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	return tags, nil
}

// Delete 删除标签
func (r *TagRepository) Delete(ctx context.Context, userID, id string) error {
	ctx, span := tracer.Start(ctx, "postgres.TagRepository.Delete")
	defer span.End()

	db := getDB(ctx, r.client.db)
	result := db.Delete(&entity.Tag{}, "id = ? AND user_id = ?", id, userID)
	if result.Error != nil {
		span.RecordError(result.Error)
		return fmt.Errorf("failed to delete tag: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ExistsByName 检查同名标签是否存在
func (r *TagRepository) ExistsByName(ctx context.Context, userID, name string) (bool, error) {
	ctx, span := tracer.Start(ctx, "postgres.TagRepository.ExistsByName")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var count int64
	if err := db.Model(&entity.Tag{}).Where("user_id = ? AND tag_name = ?", userID, name).Count(&count).Error; err != nil {
		span.RecordError(err)
		return false, fmt.Errorf("failed to check tag exists: %w", err)
	}
	return count > 0, nil
}
