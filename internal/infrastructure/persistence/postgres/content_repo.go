// Package postgres 提供 PostgreSQL Repository 实现
package postgres

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"content-gen-api/internal/domain/entity"
	"content-gen-api/internal/domain/repository"
)

// notDeleted 软删除统一作用域，所有读路径必须经过这里
func notDeleted(db *gorm.DB) *gorm.DB {
	return db.Where("is_deleted = ?", false)
}

// ContentRepository 生成内容历史仓储实现
type ContentRepository struct {
	client *Client
}

// NewContentRepository 创建生成内容历史仓储
func NewContentRepository(client *Client) *ContentRepository {
	return &ContentRepository{client: client}
}

// Create 写入一条历史记录
func (r *ContentRepository) Create(ctx context.Context, content *entity.GeneratedContent) error {
	ctx, span := tracer.Start(ctx, "postgres.ContentRepository.Create")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Create(content).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create content: %w", err)
	}
	return nil
}

// GetByID 获取指定用户的一条历史记录
func (r *ContentRepository) GetByID(ctx context.Context, userID, id string) (*entity.GeneratedContent, error) {
	ctx, span := tracer.Start(ctx, "postgres.ContentRepository.GetByID")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var content entity.GeneratedContent
	err := db.Scopes(notDeleted).
		Preload("Tags").
		First(&content, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get content: %w", err)
	}
	return &content, nil
}

// ListByUser 按 created_at 倒序分页列出历史记录
func (r *ContentRepository) ListByUser(ctx context.Context, userID string, filter *repository.ContentFilter, q repository.PageQuery) (*repository.PagedResult[*entity.GeneratedContent], error) {
	ctx, span := tracer.Start(ctx, "postgres.ContentRepository.ListByUser")
	defer span.End()

	db := getDB(ctx, r.client.db)
	query := db.Model(&entity.GeneratedContent{}).
		Scopes(notDeleted).
		Where("user_id = ?", userID)

	if filter != nil {
		if filter.ContentType != "" {
			query = query.Where("content_type = ?", filter.ContentType)
		}
		if filter.TagID != "" {
			query = query.Joins("JOIN content_tags ON content_tags.generated_content_id = generated_content.id").
				Where("content_tags.tag_id = ?", filter.TagID)
		}
	}

	// 获取总数
	var total int64
	if err := query.Count(&total).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to count content: %w", err)
	}

	// 获取列表
	var items []*entity.GeneratedContent
	if err := query.Preload("Tags").
		Order("created_at DESC").
		Offset(q.Skip).
		Limit(q.Limit).
		Find(&items).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list content: %w", err)
	}

	return repository.NewPagedResult(items, total, q), nil
}

// UpdateTitle 更新自定义标题
func (r *ContentRepository) UpdateTitle(ctx context.Context, userID, id, title string) error {
	ctx, span := tracer.Start(ctx, "postgres.ContentRepository.UpdateTitle")
	defer span.End()

	db := getDB(ctx, r.client.db)
	result := db.Model(&entity.GeneratedContent{}).
		Scopes(notDeleted).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(map[string]interface{}{
			"custom_title": title,
			"updated_at":   time.Now(),
		})
	if result.Error != nil {
		span.RecordError(result.Error)
		return fmt.Errorf("failed to update title: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SoftDelete 标记删除，行保留在表中
func (r *ContentRepository) SoftDelete(ctx context.Context, userID, id string) error {
	ctx, span := tracer.Start(ctx, "postgres.ContentRepository.SoftDelete")
	defer span.End()

	db := getDB(ctx, r.client.db)
	result := db.Model(&entity.GeneratedContent{}).
		Scopes(notDeleted).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(map[string]interface{}{
			"is_deleted": true,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		span.RecordError(result.Error)
		return fmt.Errorf("failed to soft delete content: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// AttachTag 给历史记录附加标签
func (r *ContentRepository) AttachTag(ctx context.Context, userID, contentID, tagID string) error {
	ctx, span := tracer.Start(ctx, "postgres.ContentRepository.AttachTag")
	defer span.End()

	content, err := r.GetByID(ctx, userID, contentID)
	if err != nil {
		return err
	}
	if content == nil {
		return gorm.ErrRecordNotFound
	}

	db := getDB(ctx, r.client.db)
	if err := db.Model(content).Association("Tags").Append(&entity.Tag{ID: tagID}); err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to attach tag: %w", err)
	}
	return nil
}

// DetachTag 移除历史记录上的标签
func (r *ContentRepository) DetachTag(ctx context.Context, userID, contentID, tagID string) error {
	ctx, span := tracer.Start(ctx, "postgres.ContentRepository.DetachTag")
	defer span.End()

	content, err := r.GetByID(ctx, userID, contentID)
	if err != nil {
		return err
	}
	if content == nil {
		return gorm.ErrRecordNotFound
	}

	db := getDB(ctx, r.client.db)
	if err := db.Model(content).Association("Tags").Delete(&entity.Tag{ID: tagID}); err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to detach tag: %w", err)
	}
	return nil
}
