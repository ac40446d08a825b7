// Package chain 提供基于 Eino 的 LLM 调用链
package chain

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	wfmodel "content-gen-api/internal/workflow/model"
	workflowport "content-gen-api/internal/workflow/port"
	"content-gen-api/pkg/metrics"
)

// GenerateChain 单次内容生成调用链
// 文章正文、研究摘要、PDF 转写和成功案例摘要共用同一条链
type GenerateChain struct {
	factory workflowport.ChatModelFactory

	chainOnce sync.Once
	chain     compose.Runnable[*wfmodel.ChatInput, *schema.Message]
	chainErr  error
}

// NewGenerateChain 创建生成调用链
func NewGenerateChain(factory workflowport.ChatModelFactory) *GenerateChain {
	return &GenerateChain{factory: factory}
}

// Invoke 执行一次 LLM 调用并返回文本与用量
// LLM 失败原样向上传播，不做重试
func (c *GenerateChain) Invoke(ctx context.Context, in *wfmodel.ChatInput) (*wfmodel.ChatOutput, error) {
	if c == nil || c.factory == nil {
		return nil, fmt.Errorf("llm factory not configured")
	}
	if in == nil {
		return nil, fmt.Errorf("input is nil")
	}

	chain, err := c.getChain()
	if err != nil {
		return nil, err
	}

	start := time.Now()
	msg, err := chain.Invoke(ctx, in)
	duration := time.Since(start).Seconds()

	if err != nil {
		metrics.LLMCallTotal.WithLabelValues("openai", in.Model, "error").Inc()
		return nil, err
	}

	metrics.LLMCallTotal.WithLabelValues("openai", in.Model, "ok").Inc()
	metrics.LLMCallDuration.WithLabelValues("openai", in.Model).Observe(duration)

	out := &wfmodel.ChatOutput{
		Text:  msg.Content,
		Model: in.Model,
	}
	if msg.ResponseMeta != nil && msg.ResponseMeta.Usage != nil {
		out.PromptTokens = msg.ResponseMeta.Usage.PromptTokens
		out.CompletionTokens = msg.ResponseMeta.Usage.CompletionTokens
		out.TotalTokens = msg.ResponseMeta.Usage.TotalTokens
		metrics.LLMTokensUsed.WithLabelValues("openai", in.Model, "prompt").Add(float64(out.PromptTokens))
		metrics.LLMTokensUsed.WithLabelValues("openai", in.Model, "completion").Add(float64(out.CompletionTokens))
	}
	return out, nil
}

type generateChainState struct {
	In       *wfmodel.ChatInput
	Messages []*schema.Message
	OutMsg   *schema.Message
}

func (c *GenerateChain) getChain() (compose.Runnable[*wfmodel.ChatInput, *schema.Message], error) {
	c.chainOnce.Do(func() {
		c.chain, c.chainErr = c.buildChain(context.Background())
	})
	return c.chain, c.chainErr
}

func (c *GenerateChain) buildChain(ctx context.Context) (compose.Runnable[*wfmodel.ChatInput, *schema.Message], error) {
	chain := compose.NewChain[*wfmodel.ChatInput, *schema.Message]()

	chain.AppendLambda(
		compose.InvokableLambda(func(_ context.Context, in *wfmodel.ChatInput) (*generateChainState, error) {
			if in == nil {
				return nil, fmt.Errorf("input is nil")
			}
			if strings.TrimSpace(in.HumanPrompt) == "" {
				return nil, fmt.Errorf("human prompt is empty")
			}
			return &generateChainState{In: in}, nil
		}),
		compose.WithNodeName("generate.init"),
	)

	chain.AppendLambda(
		compose.InvokableLambda(func(_ context.Context, st *generateChainState) (*generateChainState, error) {
			if st == nil || st.In == nil {
				return nil, fmt.Errorf("state is nil")
			}
			msgs := make([]*schema.Message, 0, 2)
			if strings.TrimSpace(st.In.SystemPrompt) != "" {
				msgs = append(msgs, schema.SystemMessage(st.In.SystemPrompt))
			}
			msgs = append(msgs, schema.UserMessage(st.In.HumanPrompt))
			st.Messages = msgs
			return st, nil
		}),
		compose.WithNodeName("generate.messages"),
	)

	chain.AppendLambda(
		compose.InvokableLambda(func(ctx context.Context, st *generateChainState) (*generateChainState, error) {
			if st == nil || st.In == nil {
				return nil, fmt.Errorf("state is nil")
			}
			if c.factory == nil {
				return nil, fmt.Errorf("llm factory not configured")
			}

			chatModel, err := c.factory.Get(ctx, strings.TrimSpace(st.In.Model))
			if err != nil {
				return nil, err
			}

			outMsg, err := chatModel.Generate(ctx, st.Messages, buildModelOptions(st.In)...)
			if err != nil {
				return nil, err
			}
			if outMsg == nil {
				return nil, fmt.Errorf("empty llm response")
			}
			st.OutMsg = outMsg
			return st, nil
		}),
		compose.WithNodeName("generate.llm"),
	)

	chain.AppendLambda(
		compose.InvokableLambda(func(_ context.Context, st *generateChainState) (*schema.Message, error) {
			if st == nil || st.OutMsg == nil {
				return nil, fmt.Errorf("state is nil")
			}
			return st.OutMsg, nil
		}),
		compose.WithNodeName("generate.finalize"),
	)

	return chain.Compile(ctx)
}

func buildModelOptions(in *wfmodel.ChatInput) []model.Option {
	opts := make([]model.Option, 0, 3)
	if in == nil {
		return opts
	}

	if in.Temperature != nil {
		opts = append(opts, model.WithTemperature(*in.Temperature))
	}
	if in.MaxTokens != nil {
		opts = append(opts, model.WithMaxTokens(*in.MaxTokens))
	}
	if strings.TrimSpace(in.Model) != "" {
		opts = append(opts, model.WithModel(strings.TrimSpace(in.Model)))
	}

	return opts
}
