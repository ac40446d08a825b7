package llm

import (
	"context"
	"fmt"
	"sync"

	"content-gen-api/internal/config"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
)

// EinoFactory 管理多个 Eino ChatModel 客户端实例
// 每个具体模型名对应一个惰性创建的客户端
type EinoFactory struct {
	config *config.LLMConfig
	models map[string]model.BaseChatModel
	mu     sync.RWMutex
}

// NewEinoFactory 创建 Eino LLM 工厂
func NewEinoFactory(cfg *config.Config) *EinoFactory {
	return &EinoFactory{
		config: &cfg.LLM,
		models: make(map[string]model.BaseChatModel),
	}
}

// Get 获取指定模型名的 ChatModel，未指定时使用默认风格的模型
func (f *EinoFactory) Get(ctx context.Context, modelName string) (model.BaseChatModel, error) {
	if modelName == "" {
		defaultStyle, ok := f.config.Styles[f.config.DefaultStyle]
		if !ok {
			return nil, fmt.Errorf("default style %s not found in LLM config", f.config.DefaultStyle)
		}
		modelName = defaultStyle.Model
	}

	f.mu.RLock()
	m, ok := f.models[modelName]
	f.mu.RUnlock()
	if ok {
		return m, nil
	}

	// 惰性加载
	f.mu.Lock()
	defer f.mu.Unlock()

	// 再次检查防止竞态
	if m, ok = f.models[modelName]; ok {
		return m, nil
	}

	// 使用 Eino 的 OpenAI 适配器
	chatModel, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		APIKey:  f.config.APIKey,
		BaseURL: f.config.BaseURL,
		Model:   modelName,
		Timeout: f.config.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create eino chat model for %s: %w", modelName, err)
	}

	f.models[modelName] = chatModel
	return chatModel, nil
}
