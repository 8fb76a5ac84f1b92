package domain

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// PaginationParams arrive as ?page=&limit= (or the same keys in a JSON body).
type PaginationParams struct {
	Page     int `json:"page"  query:"page"`
	PageSize int `json:"limit" query:"limit"`
}

func DefaultPagination() PaginationParams {
	return PaginationParams{Page: 1, PageSize: defaultPageSize}
}

// Validate clamps the params into a usable window.
func (p *PaginationParams) Validate() {
	switch {
	case p.PageSize < 1:
		p.PageSize = defaultPageSize
	case p.PageSize > maxPageSize:
		p.PageSize = maxPageSize
	}
	if p.Page < 1 {
		p.Page = 1
	}
}

func (p PaginationParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// Bounds returns the [start, end) slice window of this page over n in-memory items.
func (p PaginationParams) Bounds(n int) (start, end int) {
	start = min(p.Offset(), n)
	end = min(start+p.PageSize, n)
	return start, end
}

type PaginatedResponse[T any] struct {
	Data       []T   `json:"data"`
	Page       int   `json:"page"`
	PageSize   int   `json:"limit"`
	TotalItems int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

// NewPaginatedResponse never serializes data as null.
func NewPaginatedResponse[T any](data []T, page, pageSize int, totalItems int64) PaginatedResponse[T] {
	resp := PaginatedResponse[T]{
		Data:       data,
		Page:       page,
		PageSize:   pageSize,
		TotalItems: totalItems,
		HasPrev:    page > 1,
	}
	if resp.Data == nil {
		resp.Data = []T{}
	}
	if pageSize > 0 {
		resp.TotalPages = int((totalItems + int64(pageSize) - 1) / int64(pageSize))
	}
	resp.HasNext = page < resp.TotalPages
	return resp
}
