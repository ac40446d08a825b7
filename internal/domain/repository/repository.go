// Package repository 定义数据访问层接口
package repository

import (
	"context"
)

// TxKey 事务上下文键类型
type TxKey struct{}

// Transactor 事务管理接口
type Transactor interface {
	// WithTransaction 在事务中执行操作
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// PageQuery skip/limit 分页参数
type PageQuery struct {
	Skip  int `json:"skip"`
	Limit int `json:"limit"`
}

// NewPageQuery 创建分页参数并收敛边界
func NewPageQuery(skip, limit int) PageQuery {
	if skip < 0 {
		skip = 0
	}
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return PageQuery{Skip: skip, Limit: limit}
}

// PagedResult 分页结果
type PagedResult[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
	Skip  int   `json:"skip"`
	Limit int   `json:"limit"`
}

// NewPagedResult 创建分页结果
func NewPagedResult[T any](items []T, total int64, q PageQuery) *PagedResult[T] {
	return &PagedResult[T]{
		Items: items,
		Total: total,
		Skip:  q.Skip,
		Limit: q.Limit,
	}
}
