// Package entity 定义领域实体
package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Tag 用户标签，同一用户下名称唯一
type Tag struct {
	ID        string    `json:"id" gorm:"type:uuid;primaryKey"`
	UserID    string    `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_user_tag_name"`
	TagName   string    `json:"tag_name" gorm:"type:varchar(100);not null;uniqueIndex:idx_user_tag_name"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName 指定表名
func (Tag) TableName() string {
	return "tags"
}

// NewTag 创建标签
func NewTag(userID, name string) *Tag {
	return &Tag{
		UserID:    userID,
		TagName:   name,
		CreatedAt: time.Now(),
	}
}

// BeforeCreate 在插入前补全主键
func (t *Tag) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
