// Package generation 提供内容生成应用服务
package generation

import (
	"content-gen-api/internal/domain/entity"
)

// BaseRequest 三类生成请求的公共字段
type BaseRequest struct {
	// HumanPrompt 主题或核心指令
	HumanPrompt string
	// StyleKey 作者风格键（Default / Pablo / Aitor）
	StyleKey string
	// SystemPrompt 前端下发的完整系统提示词
	SystemPrompt string
	// Temperature 采样温度
	Temperature float64
}

// LinkedInRequest LinkedIn 帖子生成请求
type LinkedInRequest struct {
	BaseRequest
}

// GeneralInterestRequest 通用兴趣博客文章生成请求
type GeneralInterestRequest struct {
	BaseRequest
	URLsToResearch   []string
	WebResearch      *entity.WebResearchOptions
	MaxTokensArticle *int
}

// SuccessCaseRequest 成功案例博客文章生成请求
type SuccessCaseRequest struct {
	BaseRequest
	MaxTokensArticle *int
	MaxTokensSummary *int
}

// PDFInput 随成功案例请求上传的 PDF
type PDFInput struct {
	Filename string
	Data     []byte
}
