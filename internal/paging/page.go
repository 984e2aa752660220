package paging

// Page is the envelope returned by every search endpoint.
type Page[T any] struct {
	Items       []T  `json:"items"`
	PageNumber  int  `json:"pageNumber"`
	PageSize    int  `json:"pageSize"`
	TotalCount  int  `json:"totalCount"`
	TotalPages  int  `json:"totalPages"`
	HasPrevious bool `json:"hasPrevious"`
	HasNext     bool `json:"hasNext"`
}

// NewPage builds the envelope for items taken from a result of total rows.
func NewPage[T any](items []T, total int, p Params) Page[T] {
	if items == nil {
		items = []T{}
	}
	size := p.Limit()
	pages := 0
	if total > 0 {
		pages = (total + size - 1) / size
	}
	return Page[T]{
		Items:       items,
		PageNumber:  p.PageNumber,
		PageSize:    size,
		TotalCount:  total,
		TotalPages:  pages,
		HasPrevious: p.PageNumber > 1,
		HasNext:     p.PageNumber < pages,
	}
}

// Map converts the items of a page while keeping its counters.
func Map[T, U any](p Page[T], fn func(T) U) Page[U] {
	out := make([]U, 0, len(p.Items))
	for _, it := range p.Items {
		out = append(out, fn(it))
	}
	return Page[U]{
		Items:       out,
		PageNumber:  p.PageNumber,
		PageSize:    p.PageSize,
		TotalCount:  p.TotalCount,
		TotalPages:  p.TotalPages,
		HasPrevious: p.HasPrevious,
		HasNext:     p.HasNext,
	}
}
