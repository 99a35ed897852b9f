package repository

import "gorm.io/gorm"

// Page is one page of a paginated query.
type Page[T any] struct {
	Items      []T
	TotalItems int64
	Page       int
	Size       int
}

// Paginate executes a paginated query and returns the results. page is
// zero-based; preloads are applied to the item query only.
func Paginate[T any](db *gorm.DB, page, size int, preloads ...string) (*Page[T], error) {
	db = db.Session(&gorm.Session{})

	var totalItems int64
	if err := db.Model(new(T)).Count(&totalItems).Error; err != nil {
		return nil, err
	}

	query := db.Offset(page * size).Limit(size)
	for _, p := range preloads {
		query = query.Preload(p)
	}

	var results []T
	if err := query.Find(&results).Error; err != nil {
		return nil, err
	}

	return &Page[T]{Items: results, TotalItems: totalItems, Page: page, Size: size}, nil
}
