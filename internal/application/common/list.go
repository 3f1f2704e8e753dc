package common

import "github.com/workify/backend/internal/domain/shared"

// AutocompleteLimit caps autocomplete results
const AutocompleteLimit = 10

// ListQuery are the query parameters of list endpoints
type ListQuery struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	Search   string `form:"search" binding:"max=100"`
	All      bool   `form:"all"`
	OrderBy  string `form:"order_by" binding:"max=50"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc ASC DESC"`
}

// Filter converts the query into a normalized repository filter
func (q ListQuery) Filter() shared.Filter {
	f := shared.Filter{
		Page:            q.Page,
		PageSize:        q.PageSize,
		Search:          q.Search,
		IncludeInactive: q.All,
		OrderBy:         q.OrderBy,
		OrderDir:        q.OrderDir,
	}
	f.Normalize()
	return f
}

// ListResult is a page of items
type ListResult[T any] struct {
	Items    []T   `json:"items"`
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
}

// NewListResult builds a ListResult for filter
func NewListResult[T any](items []T, total int64, filter shared.Filter) ListResult[T] {
	if items == nil {
		items = make([]T, 0)
	}
	return ListResult[T]{Items: items, Total: total, Page: filter.Page, PageSize: filter.PageSize}
}

// AutocompleteItem is one autocomplete suggestion
type AutocompleteItem struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}
