package dto

import (
	"content-gen-api/internal/domain/entity"
)

// RegisterRequest 注册请求
type RegisterRequest struct {
	Email         string `json:"email" binding:"required,email"`
	Password      string `json:"password" binding:"required,min=8"`
	PreferredName string `json:"preferred_name"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse 认证响应，RefreshToken 通过 Cookie 下发
type AuthResponse struct {
	AccessToken string   `json:"access_token"`
	TokenType   string   `json:"token_type"`
	ExpiresIn   int      `json:"expires_in"`
	User        *UserDTO `json:"user"`
}

// UserDTO 用户信息
type UserDTO struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	PreferredName string `json:"preferred_name,omitempty"`
	CreatedAt     string `json:"created_at"`
}

// ToUserDTO 实体转 DTO
func ToUserDTO(user *entity.User) *UserDTO {
	if user == nil {
		return nil
	}
	return &UserDTO{
		ID:            user.ID,
		Email:         user.Email,
		PreferredName: user.PreferredName,
		CreatedAt:     user.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// UpdateMeRequest 更新当前用户请求
type UpdateMeRequest struct {
	PreferredName *string `json:"preferred_name"`
}

// PreferenceDTO 用户偏好
type PreferenceDTO struct {
	DefaultLinkedInStyle       string  `json:"default_linkedin_style"`
	DefaultLinkedInTemperature float64 `json:"default_linkedin_temperature"`
	DefaultBlogStyle           string  `json:"default_blog_style"`
	DefaultBlogTemperature     float64 `json:"default_blog_temperature"`
}

// ToPreferenceDTO 实体转 DTO
func ToPreferenceDTO(pref *entity.UserPreference) *PreferenceDTO {
	if pref == nil {
		return nil
	}
	return &PreferenceDTO{
		DefaultLinkedInStyle:       pref.DefaultLinkedInStyle,
		DefaultLinkedInTemperature: pref.DefaultLinkedInTemp,
		DefaultBlogStyle:           pref.DefaultBlogStyle,
		DefaultBlogTemperature:     pref.DefaultBlogTemperature,
	}
}

// UpdatePreferencesRequest 更新偏好请求，仅提交的字段生效
type UpdatePreferencesRequest struct {
	DefaultLinkedInStyle       *string  `json:"default_linkedin_style"`
	DefaultLinkedInTemperature *float64 `json:"default_linkedin_temperature"`
	DefaultBlogStyle           *string  `json:"default_blog_style"`
	DefaultBlogTemperature     *float64 `json:"default_blog_temperature"`
}
