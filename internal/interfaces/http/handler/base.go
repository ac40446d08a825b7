// Package handler 提供 HTTP 请求处理器
package handler

import (
	"strconv"

	"content-gen-api/internal/domain/repository"

	"github.com/gin-gonic/gin"
)

// currentUserID 返回认证中间件注入的用户 ID
func currentUserID(c *gin.Context) string {
	return c.GetString("user_id")
}

// pageQuery 从查询参数解析 skip/limit 分页
func pageQuery(c *gin.Context) repository.PageQuery {
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	return repository.NewPageQuery(skip, limit)
}
