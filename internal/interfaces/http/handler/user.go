package handler

import (
	"content-gen-api/internal/config"
	"content-gen-api/internal/domain/entity"
	"content-gen-api/internal/domain/repository"
	"content-gen-api/internal/interfaces/http/dto"
	"content-gen-api/pkg/errors"
	"content-gen-api/pkg/logger"

	"github.com/gin-gonic/gin"
)

// UserHandler 用户处理器
type UserHandler struct {
	cfg      *config.Config
	userRepo repository.UserRepository
	prefRepo repository.PreferenceRepository
}

// NewUserHandler 创建用户处理器
func NewUserHandler(cfg *config.Config, userRepo repository.UserRepository, prefRepo repository.PreferenceRepository) *UserHandler {
	return &UserHandler{
		cfg:      cfg,
		userRepo: userRepo,
		prefRepo: prefRepo,
	}
}

// GetMe 获取当前用户信息
func (h *UserHandler) GetMe(c *gin.Context) {
	ctx := c.Request.Context()

	user, err := h.userRepo.GetByID(ctx, currentUserID(c))
	if err != nil {
		logger.Error(ctx, "failed to get user", err)
		dto.InternalError(c, "failed to get user")
		return
	}
	if user == nil {
		dto.AppError(c, errors.ErrUserNotFound)
		return
	}

	dto.Success(c, dto.ToUserDTO(user))
}

// UpdateMe 更新当前用户信息
func (h *UserHandler) UpdateMe(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.UpdateMeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	user, err := h.userRepo.GetByID(ctx, currentUserID(c))
	if err != nil {
		logger.Error(ctx, "failed to get user", err)
		dto.InternalError(c, "failed to update user")
		return
	}
	if user == nil {
		dto.AppError(c, errors.ErrUserNotFound)
		return
	}

	if req.PreferredName != nil {
		user.PreferredName = *req.PreferredName
	}

	if err := h.userRepo.Update(ctx, user); err != nil {
		logger.Error(ctx, "failed to update user", err)
		dto.InternalError(c, "failed to update user")
		return
	}

	dto.Success(c, dto.ToUserDTO(user))
}

// GetPreferences 获取当前用户偏好，不存在时按默认值创建
func (h *UserHandler) GetPreferences(c *gin.Context) {
	ctx := c.Request.Context()

	pref, err := h.loadOrCreatePreferences(c)
	if err != nil {
		logger.Error(ctx, "failed to get preferences", err)
		dto.InternalError(c, "failed to get preferences")
		return
	}

	dto.Success(c, dto.ToPreferenceDTO(pref))
}

// UpdatePreferences 更新当前用户偏好，仅提交的字段生效
func (h *UserHandler) UpdatePreferences(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.UpdatePreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	// 风格键必须在配置的风格映射表中
	for _, style := range []*string{req.DefaultLinkedInStyle, req.DefaultBlogStyle} {
		if style == nil {
			continue
		}
		if _, ok := h.cfg.LLM.Styles[*style]; !ok {
			dto.AppError(c, errors.ErrUnknownStyle.WithDetail(*style))
			return
		}
	}

	pref, err := h.loadOrCreatePreferences(c)
	if err != nil {
		logger.Error(ctx, "failed to load preferences", err)
		dto.InternalError(c, "failed to update preferences")
		return
	}

	if req.DefaultLinkedInStyle != nil {
		pref.DefaultLinkedInStyle = *req.DefaultLinkedInStyle
	}
	if req.DefaultLinkedInTemperature != nil {
		pref.DefaultLinkedInTemp = *req.DefaultLinkedInTemperature
	}
	if req.DefaultBlogStyle != nil {
		pref.DefaultBlogStyle = *req.DefaultBlogStyle
	}
	if req.DefaultBlogTemperature != nil {
		pref.DefaultBlogTemperature = *req.DefaultBlogTemperature
	}

	if err := h.prefRepo.Update(ctx, pref); err != nil {
		logger.Error(ctx, "failed to update preferences", err)
		dto.InternalError(c, "failed to update preferences")
		return
	}

	dto.Success(c, dto.ToPreferenceDTO(pref))
}

// loadOrCreatePreferences 获取用户偏好，首次访问时落默认行
func (h *UserHandler) loadOrCreatePreferences(c *gin.Context) (*entity.UserPreference, error) {
	ctx := c.Request.Context()
	userID := currentUserID(c)

	pref, err := h.prefRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if pref != nil {
		return pref, nil
	}

	pref = entity.NewUserPreference(userID)
	if err := h.prefRepo.Create(ctx, pref); err != nil {
		return nil, err
	}
	return pref, nil
}
