package handler

import (
	"encoding/json"
	"strings"
	"time"

	"content-gen-api/internal/config"
	"content-gen-api/internal/domain/entity"
	"content-gen-api/internal/domain/repository"
	"content-gen-api/internal/infrastructure/persistence/redis"
	"content-gen-api/internal/interfaces/http/dto"
	"content-gen-api/pkg/errors"
	"content-gen-api/pkg/logger"

	"github.com/gin-gonic/gin"
)

// TemplateHandler 系统提示词模板处理器，对 API 只读
type TemplateHandler struct {
	templates repository.TemplateRepository
	cache     *redis.Cache
	cacheTTL  time.Duration
}

// NewTemplateHandler 创建模板处理器
func NewTemplateHandler(cfg *config.Config, templates repository.TemplateRepository, cache *redis.Cache) *TemplateHandler {
	return &TemplateHandler{
		templates: templates,
		cache:     cache,
		cacheTTL:  cfg.Research.TemplateCache,
	}
}

// List 按模块/类型/风格列出激活的模板
func (h *TemplateHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	module := c.Query("content_module")
	articleType := c.Query("article_type")
	styleKey := c.Query("style_key")

	if module != "" && module != string(entity.ContentModuleLinkedIn) && module != string(entity.ContentModuleBlog) {
		dto.BadRequest(c, "invalid content_module")
		return
	}
	if articleType != "" && articleType != string(entity.ArticleTypeGeneralInterest) && articleType != string(entity.ArticleTypeSuccessCase) {
		dto.BadRequest(c, "invalid article_type")
		return
	}

	filter := &repository.TemplateFilter{
		ContentModule: entity.ContentModule(module),
		StyleKey:      styleKey,
		OnlyActive:    true,
	}
	if articleType != "" {
		at := entity.ArticleType(articleType)
		filter.ArticleType = &at
	}

	// 列表结果按过滤条件整体缓存，种子程序写入后统一失效
	cacheKey := templateCacheKey(module, articleType, styleKey)
	data, err := h.cache.GetOrLoadSafe(ctx, cacheKey, h.cacheTTL, func() (interface{}, error) {
		templates, err := h.templates.List(ctx, filter)
		if err != nil {
			return nil, err
		}
		return dto.ToTemplateDTOs(templates), nil
	})
	if err != nil {
		logger.Error(ctx, "failed to list templates", err)
		dto.InternalError(c, "failed to list templates")
		return
	}

	var dtos []*dto.TemplateDTO
	if err := json.Unmarshal(data, &dtos); err != nil {
		logger.Error(ctx, "failed to decode cached templates", err, "key", cacheKey)
		dto.InternalError(c, "failed to list templates")
		return
	}

	dto.Success(c, dtos)
}

// Get 获取单个模板
func (h *TemplateHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	template, err := h.templates.GetByID(ctx, c.Param("tid"))
	if err != nil {
		logger.Error(ctx, "failed to get template", err)
		dto.InternalError(c, "failed to get template")
		return
	}
	if template == nil || !template.IsActive {
		dto.AppError(c, errors.ErrTemplateNotFound)
		return
	}

	dto.Success(c, dto.ToTemplateDTO(template))
}

// templateCacheKey 构建模板列表缓存键
func templateCacheKey(parts ...string) string {
	for i, p := range parts {
		if p == "" {
			parts[i] = "all"
		}
	}
	return "templates:" + strings.Join(parts, ":")
}
