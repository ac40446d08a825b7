// Package model 定义工作流层的输入输出结构
package model

// ChatInput 单次 LLM 调用的输入
type ChatInput struct {
	// SystemPrompt 最终系统提示词，已含作者风格前缀
	SystemPrompt string
	// HumanPrompt 最终人类提示词，已含研究或 PDF 增补
	HumanPrompt string
	// Model 具体模型名，风格键在上层解析
	Model string
	// Temperature 采样温度
	Temperature *float32
	// MaxTokens 输出 token 上限
	MaxTokens *int
}

// ChatOutput 单次 LLM 调用的输出与用量
type ChatOutput struct {
	Text             string
	Model            string
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}
