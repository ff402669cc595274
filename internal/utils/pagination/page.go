package pagination

import "math"

const (
	// DefaultSize is used when a request does not ask for a page size.
	DefaultSize = 10
	// MaxSize caps the page size a client may request.
	MaxSize = 100
	// MaxPage keeps Page*Size well inside the range of an int and of a SQL OFFSET.
	MaxPage = math.MaxInt32 / MaxSize
)

// Params selects a zero-based page of a listing.
type Params struct {
	Page int `form:"page" json:"page"`
	Size int `form:"size" json:"size"`
}

// Normalize clamps the params into the accepted range.
func (p Params) Normalize() Params {
	if p.Page < 0 {
		p.Page = 0
	}
	if p.Page > MaxPage {
		p.Page = MaxPage
	}
	if p.Size <= 0 {
		p.Size = DefaultSize
	}
	if p.Size > MaxSize {
		p.Size = MaxSize
	}
	return p
}

// Limit is the number of rows to fetch for the page.
func (p Params) Limit() int {
	return p.Normalize().Size
}

// Offset is the number of rows to skip before the page.
func (p Params) Offset() int {
	n := p.Normalize()
	return n.Page * n.Size
}

// Page is one page of a listing along with the totals needed to navigate it.
type Page[T any] struct {
	Items      []T `json:"items"`
	Page       int `json:"page"`
	Size       int `json:"size"`
	TotalItems int `json:"totalItems"`
	TotalPages int `json:"totalPages"`
}

// NewPage wraps items fetched with params out of total matching rows.
func NewPage[T any](items []T, params Params, total int) Page[T] {
	n := params.Normalize()
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Items:      items,
		Page:       n.Page,
		Size:       n.Size,
		TotalItems: total,
		TotalPages: (total + n.Size - 1) / n.Size,
	}
}

// Map converts the items of a page while keeping its position.
func Map[T, U any](p Page[T], fn func(T) U) Page[U] {
	items := make([]U, len(p.Items))
	for i, item := range p.Items {
		items[i] = fn(item)
	}
	return Page[U]{
		Items:      items,
		Page:       p.Page,
		Size:       p.Size,
		TotalItems: p.TotalItems,
		TotalPages: p.TotalPages,
	}
}
