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

// ContentHandler 生成内容历史处理器
type ContentHandler struct {
	contents repository.ContentRepository
	tags     repository.TagRepository
}

// NewContentHandler 创建历史处理器
func NewContentHandler(contents repository.ContentRepository, tags repository.TagRepository) *ContentHandler {
	return &ContentHandler{
		contents: contents,
		tags:     tags,
	}
}

// List 分页列出当前用户的历史记录
// 支持 content_type 与 tag_id 过滤，按创建时间倒序
func (h *ContentHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	filter := &repository.ContentFilter{
		TagID: c.Query("tag_id"),
	}
	if v := c.Query("content_type"); v != "" {
		contentType := entity.ContentType(v)
		if !contentType.IsValid() {
			dto.BadRequest(c, "invalid content_type")
			return
		}
		filter.ContentType = contentType
	}

	q := pageQuery(c)
	result, err := h.contents.ListByUser(ctx, currentUserID(c), filter, q)
	if err != nil {
		logger.Error(ctx, "failed to list content history", err)
		dto.InternalError(c, "failed to list content history")
		return
	}

	dto.SuccessWithPage(c, dto.ToContentSummaryDTOs(result.Items), dto.NewPageMeta(result.Skip, result.Limit, result.Total))
}

// Get 获取单条历史记录详情
func (h *ContentHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	content, err := h.contents.GetByID(ctx, currentUserID(c), c.Param("cid"))
	if err != nil {
		logger.Error(ctx, "failed to get content", err)
		dto.InternalError(c, "failed to get content")
		return
	}
	if content == nil {
		dto.AppError(c, errors.ErrContentNotFound)
		return
	}

	dto.Success(c, dto.ToContentDetailDTO(content))
}

// UpdateTitle 更新历史记录标题
func (h *ContentHandler) UpdateTitle(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.UpdateTitleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	userID := currentUserID(c)
	id := c.Param("cid")

	if err := h.contents.UpdateTitle(ctx, userID, id, req.CustomTitle); err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			dto.AppError(c, errors.ErrContentNotFound)
			return
		}
		logger.Error(ctx, "failed to update content title", err)
		dto.InternalError(c, "failed to update title")
		return
	}

	content, err := h.contents.GetByID(ctx, userID, id)
	if err != nil || content == nil {
		dto.Success(c, gin.H{"id": id, "custom_title": req.CustomTitle})
		return
	}

	dto.Success(c, dto.ToContentDetailDTO(content))
}

// Delete 软删除历史记录，行保留但从所有读路径消失
func (h *ContentHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.contents.SoftDelete(ctx, currentUserID(c), c.Param("cid")); err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			dto.AppError(c, errors.ErrContentNotFound)
			return
		}
		logger.Error(ctx, "failed to delete content", err)
		dto.InternalError(c, "failed to delete content")
		return
	}

	dto.NoContent(c)
}

// AttachTag 为历史记录附加标签
func (h *ContentHandler) AttachTag(c *gin.Context) {
	ctx := c.Request.Context()
	userID := currentUserID(c)

	tag, err := h.tags.GetByID(ctx, userID, c.Param("tid"))
	if err != nil {
		logger.Error(ctx, "failed to get tag", err)
		dto.InternalError(c, "failed to attach tag")
		return
	}
	if tag == nil {
		dto.AppError(c, errors.ErrTagNotFound)
		return
	}

	if err := h.contents.AttachTag(ctx, userID, c.Param("cid"), tag.ID); err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			dto.AppError(c, errors.ErrContentNotFound)
			return
		}
		logger.Error(ctx, "failed to attach tag", err)
		dto.InternalError(c, "failed to attach tag")
		return
	}

	dto.NoContent(c)
}

// DetachTag 移除历史记录上的标签
func (h *ContentHandler) DetachTag(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.contents.DetachTag(ctx, currentUserID(c), c.Param("cid"), c.Param("tid")); err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			dto.AppError(c, errors.ErrContentNotFound)
			return
		}
		logger.Error(ctx, "failed to detach tag", err)
		dto.InternalError(c, "failed to detach tag")
		return
	}

	dto.NoContent(c)
}
