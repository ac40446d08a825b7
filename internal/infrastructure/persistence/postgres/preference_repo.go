// Package postgres 提供 PostgreSQL Repository 实现
package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"content-gen-api/internal/domain/entity"
)

// PreferenceRepository 用户偏好仓储实现
type PreferenceRepository struct {
	client *Client
}

// NewPreferenceRepository 创建用户偏好仓储
func NewPreferenceRepository(client *Client) *PreferenceRepository {
	return &PreferenceRepository{client: client}
}

// Create 创建偏好
func (r *PreferenceRepository) Create(ctx context.Context, pref *entity.UserPreference) error {
	ctx, span := tracer.Start(ctx, "postgres.PreferenceRepository.Create")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Create(pref).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create preference: %w", err)
	}
	return nil
}

// GetByUserID 获取用户偏好
func (r *PreferenceRepository) GetByUserID(ctx context.Context, userID string) (*entity.UserPreference, error) {
	ctx, span := tracer.Start(ctx, "postgres.PreferenceRepository.GetByUserID")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var pref entity.UserPreference
	if err := db.First(&pref, "user_id = ?", userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get preference: %w", err)
	}
	return &pref, nil
}

// Update 更新偏好
func (r *PreferenceRepository) Update(ctx context.Context, pref *entity.UserPreference) error {
	ctx, span := tracer.Start(ctx, "postgres.PreferenceRepository.Update")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Save(pref).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to update preference: %w", err)
	}
	return nil
}
