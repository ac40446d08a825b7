package handler

import (
	stderrors "errors"

	"gorm.io/gorm"

	"content-gen-api/internal/domain/entity"
	"content-gen-api/internal/domain/repository"
	"content-gen-api/internal/interfaces/http/dto"
	"content-gen-api/pkg/errors"
	"content-gen-api/pkg/logger"

	"github.com/gin-gonic/gin"
)

// CustomPromptHandler 用户自定义提示词处理器
type CustomPromptHandler struct {
	prompts repository.CustomPromptRepository
}

// NewCustomPromptHandler 创建自定义提示词处理器
func NewCustomPromptHandler(prompts repository.CustomPromptRepository) *CustomPromptHandler {
	return &CustomPromptHandler{prompts: prompts}
}

// Create 创建自定义提示词
func (h *CustomPromptHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	prompt, ok := h.bindPrompt(c)
	if !ok {
		return
	}
	prompt.UserID = currentUserID(c)

	if err := h.prompts.Create(ctx, prompt); err != nil {
		if stderrors.Is(err, gorm.ErrDuplicatedKey) {
			dto.Conflict(c, "prompt name already exists")
			return
		}
		logger.Error(ctx, "failed to create custom prompt", err)
		dto.InternalError(c, "failed to create prompt")
		return
	}

	dto.Created(c, dto.ToCustomPromptDTO(prompt))
}

// List 列出当前用户的自定义提示词
func (h *CustomPromptHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	prompts, err := h.prompts.ListByUser(ctx, currentUserID(c))
	if err != nil {
		logger.Error(ctx, "failed to list custom prompts", err)
		dto.InternalError(c, "failed to list prompts")
		return
	}

	dto.Success(c, dto.ToCustomPromptDTOs(prompts))
}

// Get 获取单个自定义提示词
func (h *CustomPromptHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	prompt, err := h.prompts.GetByID(ctx, currentUserID(c), c.Param("pid"))
	if err != nil {
		logger.Error(ctx, "failed to get custom prompt", err)
		dto.InternalError(c, "failed to get prompt")
		return
	}
	if prompt == nil {
		dto.AppError(c, errors.ErrPromptNotFound)
		return
	}

	dto.Success(c, dto.ToCustomPromptDTO(prompt))
}

// Update 更新自定义提示词
func (h *CustomPromptHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	updated, ok := h.bindPrompt(c)
	if !ok {
		return
	}

	prompt, err := h.prompts.GetByID(ctx, currentUserID(c), c.Param("pid"))
	if err != nil {
		logger.Error(ctx, "failed to get custom prompt", err)
		dto.InternalError(c, "failed to update prompt")
		return
	}
	if prompt == nil {
		dto.AppError(c, errors.ErrPromptNotFound)
		return
	}

	prompt.PromptName = updated.PromptName
	prompt.ContentModule = updated.ContentModule
	prompt.ArticleType = updated.ArticleType
	prompt.PromptText = updated.PromptText

	if err := h.prompts.Update(ctx, prompt); err != nil {
		if stderrors.Is(err, gorm.ErrDuplicatedKey) {
			dto.Conflict(c, "prompt name already exists")
			return
		}
		logger.Error(ctx, "failed to update custom prompt", err)
		dto.InternalError(c, "failed to update prompt")
		return
	}

	dto.Success(c, dto.ToCustomPromptDTO(prompt))
}

// Delete 删除自定义提示词
func (h *CustomPromptHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	err := h.prompts.Delete(ctx, currentUserID(c), c.Param("pid"))
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			dto.AppError(c, errors.ErrPromptNotFound)
			return
		}
		logger.Error(ctx, "failed to delete custom prompt", err)
		dto.InternalError(c, "failed to delete prompt")
		return
	}

	dto.NoContent(c)
}

// bindPrompt 解析请求体并校验模块与文章类型组合
func (h *CustomPromptHandler) bindPrompt(c *gin.Context) (*entity.UserCustomPrompt, bool) {
	var req dto.CustomPromptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return nil, false
	}

	var articleType *entity.ArticleType
	if req.ArticleType != nil && *req.ArticleType != "" {
		at := entity.ArticleType(*req.ArticleType)
		articleType = &at
	}

	prompt := entity.NewUserCustomPrompt(
		"",
		req.PromptName,
		entity.ContentModule(req.ContentModule),
		articleType,
		req.PromptText,
	)

	if !prompt.Validate() {
		dto.UnprocessableEntity(c, "invalid content_module and article_type combination", &dto.ErrorDetail{
			ErrorCode: string(errors.CodeValidationFailed),
			Details:   "article_type is only valid for the blog module",
		})
		return nil, false
	}

	return prompt, true
}
