// Package entity 定义领域实体
package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserPreference 用户偏好，每个用户一行
type UserPreference struct {
	ID                     string    `json:"id" gorm:"type:uuid;primaryKey"`
	UserID                 string    `json:"user_id" gorm:"type:uuid;uniqueIndex;not null"`
	DefaultLinkedInStyle   string    `json:"default_linkedin_style" gorm:"type:varchar(50);default:'Default'"`
	DefaultLinkedInTemp    float64   `json:"default_linkedin_temperature" gorm:"default:0.7"`
	DefaultBlogStyle       string    `json:"default_blog_style" gorm:"type:varchar(50);default:'Default'"`
	DefaultBlogTemperature float64   `json:"default_blog_temperature" gorm:"default:0.7"`
	UpdatedAt              time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName 指定表名
func (UserPreference) TableName() string {
	return "user_preferences"
}

// NewUserPreference 创建带默认值的用户偏好
func NewUserPreference(userID string) *UserPreference {
	return &UserPreference{
		UserID:                 userID,
		DefaultLinkedInStyle:   "Default",
		DefaultLinkedInTemp:    0.7,
		DefaultBlogStyle:       "Default",
		DefaultBlogTemperature: 0.7,
		UpdatedAt:              time.Now(),
	}
}

// BeforeCreate 在插入前补全主键
func (p *UserPreference) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// StyleFor 返回指定模块的默认风格
func (p *UserPreference) StyleFor(module ContentModule) string {
	if module == ContentModuleLinkedIn {
		return p.DefaultLinkedInStyle
	}
	return p.DefaultBlogStyle
}

// TemperatureFor 返回指定模块的默认温度
func (p *UserPreference) TemperatureFor(module ContentModule) float64 {
	if module == ContentModuleLinkedIn {
		return p.DefaultLinkedInTemp
	}
	return p.DefaultBlogTemperature
}
