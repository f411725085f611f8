package utils

import "strconv"

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// PageRef points at an adjacent page, carrying the limit so the client can
// replay the query unchanged.
type PageRef struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

type Pagination struct {
	Page  int      `json:"page"`
	Limit int      `json:"limit"`
	Total int      `json:"total"`
	Pages int      `json:"pages"`
	Next  *PageRef `json:"next,omitempty"`
	Prev  *PageRef `json:"prev,omitempty"`
}

// ParsePage clamps raw query values into a sane page/limit pair.
func ParsePage(pageStr, limitStr string) (page, limit int) {
	page = DefaultPage
	limit = DefaultLimit

	if v, err := strconv.Atoi(pageStr); err == nil && v > 0 {
		page = v
	}
	if v, err := strconv.Atoi(limitStr); err == nil && v > 0 {
		limit = v
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	return page, limit
}

// NewPagination derives the envelope pagination block from the total row
// count.
func NewPagination(page, limit, total int) Pagination {
	pages := 0
	if limit > 0 {
		pages = (total + limit - 1) / limit
	}

	p := Pagination{
		Page:  page,
		Limit: limit,
		Total: total,
		Pages: pages,
	}

	if page < pages {
		p.Next = &PageRef{Page: page + 1, Limit: limit}
	}
	if page > 1 && total > 0 {
		prev := page - 1
		if prev > pages {
			prev = pages
		}
		p.Prev = &PageRef{Page: prev, Limit: limit}
	}

	return p
}

func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}
