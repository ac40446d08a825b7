// Package repository 定义数据访问层接口
package repository

import (
	"context"

	"content-gen-api/internal/domain/entity"
)

// ContentFilter 历史记录过滤条件
type ContentFilter struct {
	ContentType entity.ContentType
	TagID       string
}

// ContentRepository 生成内容历史仓储接口
// 所有读路径通过统一作用域排除软删除行
type ContentRepository interface {
	// Create 写入一条历史记录
	Create(ctx context.Context, content *entity.GeneratedContent) error

	// GetByID 获取指定用户的一条历史记录
	GetByID(ctx context.Context, userID, id string) (*entity.GeneratedContent, error)

	// ListByUser 按 created_at 倒序分页列出历史记录
	ListByUser(ctx context.Context, userID string, filter *ContentFilter, q PageQuery) (*PagedResult[*entity.GeneratedContent], error)

	// UpdateTitle 更新自定义标题，唯一可变的业务字段
	UpdateTitle(ctx context.Context, userID, id, title string) error

	// SoftDelete 标记删除
	SoftDelete(ctx context.Context, userID, id string) error

	// AttachTag 给历史记录附加标签
	AttachTag(ctx context.Context, userID, contentID, tagID string) error

	// DetachTag 移除历史记录上的标签
	DetachTag(ctx context.Context, userID, contentID, tagID string) error
}

// TagRepository 标签仓储接口
type TagRepository interface {
	// Create 创建标签
	Create(ctx context.Context, tag *entity.Tag) error

	// GetByID 获取指定用户的标签
	GetByID(ctx context.Context, userID, id string) (*entity.Tag, error)

	// ListByUser 列出用户的全部标签
	ListByUser(ctx context.Context, userID string) ([]*entity.Tag, error)

	// Delete 删除标签
	Delete(ctx context.Context, userID, id string) error

	// ExistsByName 检查同名标签是否存在
	ExistsByName(ctx context.Context, userID, name string) (bool, error)
}
