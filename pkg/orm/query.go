// Package orm holds small gorm helpers shared by the repositories.
package orm

import (
	"gorm.io/gorm"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
	// MaxPage keeps (page-1)*limit far from int overflow.
	MaxPage = 100000
)

// Pagination describes one page of a listing.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// Page is a listing result in the {items, total, page, limit, totalPages} shape.
type Page[T any] struct {
	Items []T `json:"items"`
	Pagination
}

// NewPagination applies defaults: page 1, limit 10, limit capped at 100,
// page capped at MaxPage.
func NewPagination(page, limit int) Pagination {
	if page < 1 {
		page = DefaultPage
	}
	if page > MaxPage {
		page = MaxPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return Pagination{Page: page, Limit: limit}
}

// Offset is the number of rows to skip for the current page.
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}

// WithTotal records the total row count and derives TotalPages.
func (p Pagination) WithTotal(total int64) Pagination {
	p.Total = total
	p.TotalPages = int((total + int64(p.Limit) - 1) / int64(p.Limit))
	return p
}

// Paginate is a gorm scope applying LIMIT/OFFSET for p.
//
//	db.Scopes(orm.Paginate(p)).Find(&orders)
func Paginate(p Pagination) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(p.Offset()).Limit(p.Limit)
	}
}

// NewPage wraps items with their pagination, never returning a nil slice.
func NewPage[T any](items []T, p Pagination) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{Items: items, Pagination: p}
}
