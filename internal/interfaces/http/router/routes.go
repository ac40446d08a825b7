// Package router 提供 HTTP 路由配置
package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterV1Routes 注册 v1 版本路由
func RegisterV1Routes(v1 *gin.RouterGroup, h Handlers) {
	// 认证管理
	auth := v1.Group("/auth")
	{
		auth.POST("/register", h.Auth.Register)
		auth.POST("/login", h.Auth.Login)
		auth.POST("/refresh", h.Auth.RefreshToken)
		auth.POST("/logout", h.Auth.Logout)
	}

	// 用户与偏好
	users := v1.Group("/users")
	{
		users.GET("/me", h.User.GetMe)
		users.PUT("/me", h.User.UpdateMe)
		users.GET("/me/preferences", h.User.GetPreferences)
		users.PUT("/me/preferences", h.User.UpdatePreferences)
	}

	// 系统提示词模板（只读）
	templates := v1.Group("/templates")
	{
		templates.GET("", h.Template.List)
		templates.GET("/:tid", h.Template.Get)
	}

	// 用户自定义提示词
	prompts := v1.Group("/prompts")
	{
		prompts.GET("", h.Prompt.List)
		prompts.POST("", h.Prompt.Create)
		prompts.GET("/:pid", h.Prompt.Get)
		prompts.PUT("/:pid", h.Prompt.Update)
		prompts.DELETE("/:pid", h.Prompt.Delete)
	}

	// 内容生成
	generate := v1.Group("/generate")
	{
		generate.POST("/linkedin", h.Generation.GenerateLinkedIn)
		generate.POST("/blog/general-interest", h.Generation.GenerateGeneralInterest)
		generate.POST("/blog/success-case", h.Generation.GenerateSuccessCase)
	}

	// 生成历史
	contents := v1.Group("/content")
	{
		contents.GET("", h.Content.List)
		contents.GET("/:cid", h.Content.Get)
		contents.PUT("/:cid/title", h.Content.UpdateTitle)
		contents.DELETE("/:cid", h.Content.Delete)
		contents.POST("/:cid/tags/:tid", h.Content.AttachTag)
		contents.DELETE("/:cid/tags/:tid", h.Content.DetachTag)
	}

	// 标签管理
	tags := v1.Group("/tags")
	{
		tags.GET("", h.Tag.List)
		tags.POST("", h.Tag.Create)
		tags.DELETE("/:tid", h.Tag.Delete)
	}
}
