package handler

import "socialmedia/backend/internal/repository"

// PaginationMeta defines the structure for pagination metadata.
type PaginationMeta struct {
	TotalItems  int64 `json:"total_items"`
	TotalPages  int   `json:"total_pages"`
	CurrentPage int   `json:"current_page"`
	PageSize    int   `json:"page_size"`
}

// PaginatedResponse defines the structure for a paginated list of any type.
type PaginatedResponse[T any] struct {
	Data []T            `json:"data"`
	Meta PaginationMeta `json:"meta"`
}

// NewPaginatedResponse creates a new PaginatedResponse. page is zero-based.
func NewPaginatedResponse[T any](data []T, totalItems int64, page, size int) PaginatedResponse[T] {
	if size <= 0 {
		size = 1
	}
	if data == nil {
		data = []T{}
	}
	return PaginatedResponse[T]{
		Data: data,
		Meta: PaginationMeta{
			TotalItems:  totalItems,
			TotalPages:  (int(totalItems) + size - 1) / size,
			CurrentPage: page,
			PageSize:    size,
		},
	}
}

// mapPage converts a repository page into a response, mapping every item.
func mapPage[T, R any](page *repository.Page[T], fn func(T) R) PaginatedResponse[R] {
	data := make([]R, 0, len(page.Items))
	for _, item := range page.Items {
		data = append(data, fn(item))
	}
	return NewPaginatedResponse(data, page.TotalItems, page.Page, page.Size)
}
