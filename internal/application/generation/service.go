// Package generation 提供内容生成应用服务
package generation

import (
	"bytes"
	"context"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"content-gen-api/internal/config"
	"content-gen-api/internal/domain/entity"
	"content-gen-api/internal/domain/repository"
	"content-gen-api/internal/infrastructure/research"
	"content-gen-api/internal/workflow/chain"
	wfmodel "content-gen-api/internal/workflow/model"
	"content-gen-api/internal/workflow/node"
	"content-gen-api/internal/workflow/prompt"
	apperrors "content-gen-api/pkg/errors"
	"content-gen-api/pkg/logger"
	"content-gen-api/pkg/metrics"
)

var tracer = otel.Tracer("generation")

// Service 内容生成应用服务
// 负责风格解析、提示词组装、研究增补、LLM 调用编排与历史落库
type Service struct {
	cfg      *config.Config
	chain    *chain.GenerateChain
	prompts  *prompt.Registry
	web      *research.WebExtractor
	contents repository.ContentRepository
}

// NewService 创建内容生成服务
func NewService(
	cfg *config.Config,
	generateChain *chain.GenerateChain,
	registry *prompt.Registry,
	webExtractor *research.WebExtractor,
	contents repository.ContentRepository,
) *Service {
	return &Service{
		cfg:      cfg,
		chain:    generateChain,
		prompts:  registry,
		web:      webExtractor,
		contents: contents,
	}
}

// GenerateLinkedInPost 生成 LinkedIn 帖子，单次 LLM 调用
func (s *Service) GenerateLinkedInPost(ctx context.Context, userID string, req *LinkedInRequest) (*entity.GeneratedContent, error) {
	ctx, span := tracer.Start(ctx, "generation.Service.GenerateLinkedInPost")
	defer span.End()

	start := time.Now()

	modelName, err := s.resolveModel(req.StyleKey)
	if err != nil {
		return nil, err
	}

	systemPrompt, err := s.prompts.ApplyStylePreamble(req.StyleKey, entity.ContentModuleLinkedIn, req.SystemPrompt)
	if err != nil {
		return nil, apperrors.ErrGenerationFailed.WithError(err)
	}

	out, err := s.invoke(ctx, systemPrompt, req.HumanPrompt, modelName, req.Temperature, s.styleMaxTokens(req.StyleKey))
	if err != nil {
		metrics.ContentGenerationTotal.WithLabelValues(string(entity.ContentTypeLinkedInPost), req.StyleKey, "error").Inc()
		return nil, err
	}

	content := &entity.GeneratedContent{
		UserID:        userID,
		ContentType:   entity.ContentTypeLinkedInPost,
		HumanPrompt:   req.HumanPrompt,
		SystemPrompt:  systemPrompt,
		StyleKey:      req.StyleKey,
		ModelUsed:     modelName,
		Temperature:   req.Temperature,
		GeneratedText: out.Text,
	}
	s.persist(ctx, content)

	s.recordSuccess(entity.ContentTypeLinkedInPost, req.StyleKey, out.Text, start)
	span.SetAttributes(attribute.Int("llm.total_tokens", out.TotalTokens))
	return content, nil
}

// GenerateGeneralInterestArticle 生成通用兴趣博客文章
// 可选的 URL 研究先做辅助摘要调用，再做正文调用
func (s *Service) GenerateGeneralInterestArticle(ctx context.Context, userID string, req *GeneralInterestRequest) (*entity.GeneratedContent, error) {
	ctx, span := tracer.Start(ctx, "generation.Service.GenerateGeneralInterestArticle",
		trace.WithAttributes(attribute.Int("research.url_count", len(req.URLsToResearch))))
	defer span.End()

	start := time.Now()

	modelName, err := s.resolveModel(req.StyleKey)
	if err != nil {
		return nil, err
	}

	systemPrompt, err := s.prompts.ApplyStylePreamble(req.StyleKey, entity.ContentModuleBlog, req.SystemPrompt)
	if err != nil {
		return nil, apperrors.ErrGenerationFailed.WithError(err)
	}

	humanPrompt := req.HumanPrompt
	researchSummary := ""
	if len(req.URLsToResearch) > 0 {
		researchSummary = s.researchURLs(ctx, req.HumanPrompt, req.URLsToResearch)
		if researchSummary != "" {
			humanPrompt = node.BuildResearchBlock(req.HumanPrompt, researchSummary)
		}
	}

	out, err := s.invoke(ctx, systemPrompt, humanPrompt, modelName, req.Temperature, s.articleMaxTokens(req.StyleKey, req.MaxTokensArticle))
	if err != nil {
		metrics.ContentGenerationTotal.WithLabelValues(string(entity.ContentTypeBlogGeneralInterest), req.StyleKey, "error").Inc()
		return nil, err
	}

	article := node.FormatReadability(out.Text)

	content := &entity.GeneratedContent{
		UserID:          userID,
		ContentType:     entity.ContentTypeBlogGeneralInterest,
		HumanPrompt:     req.HumanPrompt,
		SystemPrompt:    systemPrompt,
		StyleKey:        req.StyleKey,
		ModelUsed:       modelName,
		Temperature:     req.Temperature,
		MaxTokens:       req.MaxTokensArticle,
		ResearchedURLs:  req.URLsToResearch,
		WebResearch:     req.WebResearch,
		GeneratedText:   article,
		ResearchSummary: researchSummary,
	}
	s.persist(ctx, content)

	s.recordSuccess(entity.ContentTypeBlogGeneralInterest, req.StyleKey, article, start)
	return content, nil
}

// GenerateSuccessCaseArticle 生成成功案例博客文章
// 可选的 PDF 先做转写调用，正文之后再做摘要调用
func (s *Service) GenerateSuccessCaseArticle(ctx context.Context, userID string, req *SuccessCaseRequest, pdf *PDFInput) (*entity.GeneratedContent, error) {
	ctx, span := tracer.Start(ctx, "generation.Service.GenerateSuccessCaseArticle",
		trace.WithAttributes(attribute.Bool("pdf.present", pdf != nil)))
	defer span.End()

	start := time.Now()

	modelName, err := s.resolveModel(req.StyleKey)
	if err != nil {
		return nil, err
	}

	systemPrompt, err := s.prompts.ApplyStylePreamble(req.StyleKey, entity.ContentModuleBlog, req.SystemPrompt)
	if err != nil {
		return nil, apperrors.ErrGenerationFailed.WithError(err)
	}

	humanPrompt := req.HumanPrompt
	pdfFilename := ""
	if pdf != nil && len(pdf.Data) > 0 {
		pdfFilename = pdf.Filename

		pdfText, err := research.ExtractPDF(bytes.NewReader(pdf.Data), int64(len(pdf.Data)))
		if err != nil {
			span.RecordError(err)
			return nil, apperrors.ErrExtractionFailed.WithError(err)
		}

		transformed, err := s.transformPDFText(ctx, pdfText, modelName, req.Temperature)
		if err != nil {
			metrics.ContentGenerationTotal.WithLabelValues(string(entity.ContentTypeBlogSuccessCase), req.StyleKey, "error").Inc()
			return nil, err
		}
		humanPrompt = node.BuildPDFBlock(req.HumanPrompt, transformed)
	}

	out, err := s.invoke(ctx, systemPrompt, humanPrompt, modelName, req.Temperature, s.articleMaxTokens(req.StyleKey, req.MaxTokensArticle))
	if err != nil {
		metrics.ContentGenerationTotal.WithLabelValues(string(entity.ContentTypeBlogSuccessCase), req.StyleKey, "error").Inc()
		return nil, err
	}
	article := node.FormatReadability(out.Text)

	summary, err := s.summarizeArticle(ctx, article, modelName, req.MaxTokensSummary)
	if err != nil {
		metrics.ContentGenerationTotal.WithLabelValues(string(entity.ContentTypeBlogSuccessCase), req.StyleKey, "error").Inc()
		return nil, err
	}

	summaryTokens := s.summaryMaxTokens(req.MaxTokensSummary)
	content := &entity.GeneratedContent{
		UserID:           userID,
		ContentType:      entity.ContentTypeBlogSuccessCase,
		HumanPrompt:      req.HumanPrompt,
		SystemPrompt:     systemPrompt,
		StyleKey:         req.StyleKey,
		ModelUsed:        modelName,
		Temperature:      req.Temperature,
		MaxTokens:        req.MaxTokensArticle,
		SummaryMaxTokens: &summaryTokens,
		PDFFilename:      pdfFilename,
		GeneratedText:    article,
		SummaryText:      summary,
	}
	s.persist(ctx, content)

	s.recordSuccess(entity.ContentTypeBlogSuccessCase, req.StyleKey, article, start)
	return content, nil
}

// researchURLs 抓取并切分 URL 内容，再做一次辅助摘要调用
// 单个 URL 失败只记录并跳过；辅助调用失败时放弃增补，正文流程继续
func (s *Service) researchURLs(ctx context.Context, topic string, urls []string) string {
	ctx, span := tracer.Start(ctx, "generation.Service.researchURLs")
	defer span.End()

	var chunks []string
	for _, url := range urls {
		text, err := s.web.Extract(ctx, url)
		if err != nil {
			logger.Warn(ctx, "url extraction failed, skipping", "url", url, "error", err.Error())
			continue
		}
		chunks = append(chunks, research.ChunkText(text, s.cfg.Research.ChunkSize, s.cfg.Research.ChunkOverlap)...)
	}

	if len(chunks) == 0 {
		logger.Info(ctx, "no content extracted from research urls")
		return ""
	}

	combined := research.JoinChunks(chunks, s.cfg.Research.MaxChunks)

	researchSystem, err := s.prompts.Text(prompt.PromptWebResearch)
	if err != nil {
		logger.Error(ctx, "failed to load research prompt", err)
		return ""
	}

	defaultModel := s.cfg.LLM.Styles[s.cfg.LLM.DefaultStyle].Model
	out, err := s.invoke(ctx, researchSystem, node.BuildResearchHumanPrompt(topic, combined), defaultModel, s.cfg.LLM.ResearchTemperature, nil)
	if err != nil {
		logger.Error(ctx, "web research summarization failed, continuing without enrichment", err)
		return ""
	}
	return out.Text
}

// transformPDFText 把技术性 PDF 文本转写为案例叙述
func (s *Service) transformPDFText(ctx context.Context, pdfText, modelName string, temperature float64) (string, error) {
	ctx, span := tracer.Start(ctx, "generation.Service.transformPDFText",
		trace.WithAttributes(attribute.Int("pdf.text_length", len(pdfText))))
	defer span.End()

	system, err := s.prompts.Text(prompt.PromptPDFTransformation)
	if err != nil {
		return "", apperrors.ErrGenerationFailed.WithError(err)
	}

	out, err := s.invoke(ctx, system, node.Truncate(pdfText, s.cfg.Research.PDFTextLimit), modelName, temperature, nil)
	if err != nil {
		return "", err
	}
	return out.Text, nil
}

// summarizeArticle 对成功案例正文做独立的摘要调用
func (s *Service) summarizeArticle(ctx context.Context, article, modelName string, maxTokens *int) (string, error) {
	ctx, span := tracer.Start(ctx, "generation.Service.summarizeArticle")
	defer span.End()

	system, err := s.prompts.Text(prompt.PromptSuccessCaseSummary)
	if err != nil {
		return "", apperrors.ErrGenerationFailed.WithError(err)
	}

	tokens := s.summaryMaxTokens(maxTokens)
	out, err := s.invoke(ctx, system, node.BuildSummaryHumanPrompt(article), modelName, s.cfg.LLM.ResearchTemperature, &tokens)
	if err != nil {
		return "", err
	}
	return node.FormatReadability(out.Text), nil
}

// invoke 执行一次链调用并统一错误包装
func (s *Service) invoke(ctx context.Context, systemPrompt, humanPrompt, modelName string, temperature float64, maxTokens *int) (*wfmodel.ChatOutput, error) {
	temp := float32(temperature)
	out, err := s.chain.Invoke(ctx, &wfmodel.ChatInput{
		SystemPrompt: systemPrompt,
		HumanPrompt:  humanPrompt,
		Model:        modelName,
		Temperature:  &temp,
		MaxTokens:    maxTokens,
	})
	if err != nil {
		return nil, apperrors.ErrLLMCallFailed.WithError(err)
	}
	if strings.TrimSpace(out.Text) == "" {
		return nil, apperrors.ErrGenerationFailed.WithDetail("empty completion")
	}
	return out, nil
}

// persist 历史落库，尽力而为
// 失败只记录 ERROR，不影响调用方拿到已生成的内容
func (s *Service) persist(ctx context.Context, content *entity.GeneratedContent) {
	if err := s.contents.Create(ctx, content); err != nil {
		logger.Error(ctx, "failed to persist generated content, result still returned", err,
			"content_type", string(content.ContentType),
			"user_id", content.UserID,
		)
	}
}

// resolveModel 把风格键解析为具体模型名
func (s *Service) resolveModel(styleKey string) (string, error) {
	modelName, ok := s.cfg.LLM.StyleModel(styleKey)
	if !ok {
		return "", apperrors.ErrUnknownStyle.WithDetail(styleKey)
	}
	return modelName, nil
}

// styleMaxTokens 返回风格配置的 token 上限
func (s *Service) styleMaxTokens(styleKey string) *int {
	style, ok := s.cfg.LLM.Styles[styleKey]
	if !ok || style.MaxTokens <= 0 {
		return nil
	}
	tokens := style.MaxTokens
	return &tokens
}

// articleMaxTokens 请求值优先，否则回落到风格配置
func (s *Service) articleMaxTokens(styleKey string, requested *int) *int {
	if requested != nil && *requested > 0 {
		return requested
	}
	return s.styleMaxTokens(styleKey)
}

// summaryMaxTokens 请求值优先，否则使用配置默认值
func (s *Service) summaryMaxTokens(requested *int) int {
	if requested != nil && *requested > 0 {
		return *requested
	}
	return s.cfg.LLM.SummaryMaxTokens
}

// recordSuccess 上报生成成功指标
func (s *Service) recordSuccess(contentType entity.ContentType, styleKey, text string, start time.Time) {
	metrics.ContentGenerationTotal.WithLabelValues(string(contentType), styleKey, "ok").Inc()
	metrics.ContentGenerationDuration.WithLabelValues(string(contentType)).Observe(time.Since(start).Seconds())
	metrics.ContentWordCount.WithLabelValues(string(contentType)).Observe(float64(len(strings.Fields(text))))
}
