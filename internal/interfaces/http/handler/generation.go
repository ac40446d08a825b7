package handler

import (
	"context"
	"encoding/json"
	"io"
	"strings"

	"content-gen-api/internal/application/generation"
	"content-gen-api/internal/config"
	"content-gen-api/internal/domain/entity"
	"content-gen-api/internal/domain/repository"
	"content-gen-api/internal/interfaces/http/dto"
	"content-gen-api/pkg/errors"
	"content-gen-api/pkg/logger"

	"github.com/gin-gonic/gin"
)

// GenerationHandler 内容生成处理器
type GenerationHandler struct {
	cfg      *config.Config
	svc      *generation.Service
	prefRepo repository.PreferenceRepository
}

// NewGenerationHandler 创建内容生成处理器
func NewGenerationHandler(cfg *config.Config, svc *generation.Service, prefRepo repository.PreferenceRepository) *GenerationHandler {
	return &GenerationHandler{
		cfg:      cfg,
		svc:      svc,
		prefRepo: prefRepo,
	}
}

// GenerateLinkedIn 生成 LinkedIn 帖子
// @Summary 生成 LinkedIn 帖子
// @Tags Generation
// @Accept json
// @Produce json
// @Param body body dto.GenerateLinkedInRequest true "生成参数"
// @Success 200 {object} dto.Response[dto.GenerationResponse]
// @Failure 422 {object} dto.ErrorResponse
// @Router /v1/generate/linkedin [post]
func (h *GenerationHandler) GenerateLinkedIn(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.GenerateLinkedInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	styleKey, temperature := h.resolveDefaults(ctx, currentUserID(c), entity.ContentModuleLinkedIn, req.StyleKey, req.Temperature)
	result, err := h.svc.GenerateLinkedInPost(ctx, currentUserID(c), &generation.LinkedInRequest{
		BaseRequest: generation.BaseRequest{
			HumanPrompt:  req.HumanPrompt,
			StyleKey:     styleKey,
			SystemPrompt: req.SystemPrompt,
			Temperature:  temperature,
		},
	})
	if err != nil {
		dto.AppError(c, err)
		return
	}

	dto.Success(c, dto.ToGenerationResponse(result))
}

// GenerateGeneralInterest 生成通用兴趣博客文章，可选 URL 研究增补
func (h *GenerationHandler) GenerateGeneralInterest(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.GenerateGeneralInterestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	styleKey, temperature := h.resolveDefaults(ctx, currentUserID(c), entity.ContentModuleBlog, req.StyleKey, req.Temperature)
	result, err := h.svc.GenerateGeneralInterestArticle(ctx, currentUserID(c), &generation.GeneralInterestRequest{
		BaseRequest: generation.BaseRequest{
			HumanPrompt:  req.HumanPrompt,
			StyleKey:     styleKey,
			SystemPrompt: req.SystemPrompt,
			Temperature:  temperature,
		},
		URLsToResearch:   req.URLsToResearch,
		WebResearch:      req.WebResearch,
		MaxTokensArticle: req.MaxTokens,
	})
	if err != nil {
		dto.AppError(c, err)
		return
	}

	dto.Success(c, dto.ToGenerationResponse(result))
}

// GenerateSuccessCase 生成成功案例博客文章
// multipart 表单：request_data 为 JSON 参数，pdf_file 为案例 PDF
func (h *GenerationHandler) GenerateSuccessCase(c *gin.Context) {
	ctx := c.Request.Context()

	requestData := c.PostForm("request_data")
	if requestData == "" {
		dto.BadRequest(c, "request_data form field is required")
		return
	}

	var req dto.GenerateSuccessCaseRequest
	if err := json.Unmarshal([]byte(requestData), &req); err != nil {
		dto.BadRequest(c, "invalid request_data: "+err.Error())
		return
	}
	if req.HumanPrompt == "" || req.SystemPrompt == "" {
		dto.BadRequest(c, "human_prompt and system_prompt are required")
		return
	}

	file, header, err := c.Request.FormFile("pdf_file")
	if err != nil {
		dto.BadRequest(c, "pdf_file is required")
		return
	}
	defer file.Close()

	if !strings.HasSuffix(strings.ToLower(header.Filename), ".pdf") {
		dto.UnprocessableEntity(c, "uploaded file must be a PDF", &dto.ErrorDetail{
			ErrorCode: string(errors.CodeValidationFailed),
			Details:   header.Filename,
		})
		return
	}

	maxSize := h.cfg.Research.MaxPDFSizeMB << 20
	if maxSize > 0 && header.Size > maxSize {
		dto.BadRequest(c, "pdf file exceeds the size limit")
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		logger.Error(ctx, "failed to read uploaded pdf", err, "filename", header.Filename)
		dto.InternalError(c, "failed to read uploaded file")
		return
	}

	styleKey, temperature := h.resolveDefaults(ctx, currentUserID(c), entity.ContentModuleBlog, req.StyleKey, req.Temperature)
	result, err := h.svc.GenerateSuccessCaseArticle(ctx, currentUserID(c), &generation.SuccessCaseRequest{
		BaseRequest: generation.BaseRequest{
			HumanPrompt:  req.HumanPrompt,
			StyleKey:     styleKey,
			SystemPrompt: req.SystemPrompt,
			Temperature:  temperature,
		},
		MaxTokensArticle: req.MaxTokens,
		MaxTokensSummary: req.MaxTokensSummary,
	}, &generation.PDFInput{
		Filename: header.Filename,
		Data:     data,
	})
	if err != nil {
		dto.AppError(c, err)
		return
	}

	dto.Success(c, dto.ToGenerationResponse(result))
}

// resolveDefaults 请求未指定风格或温度时回落到用户偏好
func (h *GenerationHandler) resolveDefaults(ctx context.Context, userID string, module entity.ContentModule, styleKey string, requested *float64) (string, float64) {
	var pref *entity.UserPreference
	if styleKey == "" || requested == nil {
		var err error
		pref, err = h.prefRepo.GetByUserID(ctx, userID)
		if err != nil {
			logger.Warn(ctx, "failed to load user preferences", "error", err.Error(), "user_id", userID)
		}
	}

	if styleKey == "" {
		styleKey = h.cfg.LLM.DefaultStyle
		if pref != nil {
			styleKey = pref.StyleFor(module)
		}
	}
	return styleKey, h.resolveTemperature(module, styleKey, requested, pref)
}

// resolveTemperature 请求值优先，其次风格配置，再次用户偏好
func (h *GenerationHandler) resolveTemperature(module entity.ContentModule, styleKey string, requested *float64, pref *entity.UserPreference) float64 {
	if requested != nil {
		return *requested
	}
	if style, ok := h.cfg.LLM.Styles[styleKey]; ok && style.Temperature > 0 {
		return style.Temperature
	}
	if pref != nil {
		return pref.TemperatureFor(module)
	}
	return 0.7
}
