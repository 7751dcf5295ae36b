package ledger

import (
	"errors"

	"farmbook/internal/core"
)

// ErrInvalidPageSize is returned for a non-positive page size.
var ErrInvalidPageSize = errors.New("page size must be positive")

// PageSizes is the set the UI offers; Paginate itself accepts any positive
// size so hosts can generalize.
var PageSizes = []int{5, 10, 20, 50, 100}

// PageRequest is a 1-indexed page selection.
type PageRequest struct {
	Page     int
	PageSize int
}

// PageResult is one page of a sorted collection plus the bounds it was
// computed against. Page carries the effective page after clamping, which
// may be lower than the requested one when the collection shrank.
type PageResult struct {
	Items      []core.Transaction `json:"items"`
	Page       int                `json:"page"`
	PageSize   int                `json:"pageSize"`
	Total      int                `json:"total"`
	TotalPages int                `json:"totalPages"`
}

// TotalPages computes ceil(total/pageSize) for a positive page size.
func TotalPages(total, pageSize int) int {
	if pageSize <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}

// Paginate slices the collection into the requested page, clamped to the
// collection bounds. A request past the last page returns the last non-empty
// page rather than an empty one; pages below 1 clamp to 1.
func Paginate(records []core.Transaction, req PageRequest) (PageResult, error) {
	if req.PageSize <= 0 {
		return PageResult{}, ErrInvalidPageSize
	}

	total := len(records)
	totalPages := TotalPages(total, req.PageSize)

	page := req.Page
	if page < 1 {
		page = 1
	}
	if totalPages > 0 && page > totalPages {
		page = totalPages
	}

	start := (page - 1) * req.PageSize
	end := start + req.PageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	items := make([]core.Transaction, end-start)
	copy(items, records[start:end])

	return PageResult{
		Items:      items,
		Page:       page,
		PageSize:   req.PageSize,
		Total:      total,
		TotalPages: totalPages,
	}, nil
}
