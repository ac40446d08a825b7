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

// TagHandler 标签处理器
type TagHandler struct {
	tags repository.TagRepository
}

// NewTagHandler 创建标签处理器
func NewTagHandler(tags repository.TagRepository) *TagHandler {
	return &TagHandler{tags: tags}
}

// List 列出当前用户的全部标签
func (h *TagHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	tags, err := h.tags.ListByUser(ctx, currentUserID(c))
	if err != nil {
		logger.Error(ctx, "failed to list tags", err)
		dto.InternalError(c, "failed to list tags")
		return
	}

	dto.Success(c, dto.ToTagDTOs(tags))
}

// Create 创建标签，同名冲突返回 409
func (h *TagHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	userID := currentUserID(c)

	exists, err := h.tags.ExistsByName(ctx, userID, req.TagName)
	if err != nil {
		logger.Error(ctx, "failed to check tag name", err)
		dto.InternalError(c, "failed to create tag")
		return
	}
	if exists {
		dto.AppError(c, errors.ErrTagConflict)
		return
	}

	tag := entity.NewTag(userID, req.TagName)
	if err := h.tags.Create(ctx, tag); err != nil {
		if stderrors.Is(err, gorm.ErrDuplicatedKey) {
			dto.AppError(c, errors.ErrTagConflict)
			return
		}
		logger.Error(ctx, "failed to create tag", err)
		dto.InternalError(c, "failed to create tag")
		return
	}

	dto.Created(c, dto.ToTagDTO(tag))
}

// Delete 删除标签，关联关系由外键级联清理
func (h *TagHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.tags.Delete(ctx, currentUserID(c), c.Param("tid")); err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			dto.AppError(c, errors.ErrTagNotFound)
			return
		}
		logger.Error(ctx, "failed to delete tag", err)
		dto.InternalError(c, "failed to delete tag")
		return
	}

	dto.NoContent(c)
}
