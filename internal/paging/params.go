// Package paging shapes list queries: AND-combined filter predicates, a single
// allow-listed sort field and page slicing, returned in a page envelope.
package paging

import (
	"math"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/fmi-projects/project-management-api/internal/validation"
)

const (
	DefaultPageNumber = 1
	DefaultPageSize   = 10
	MaxPageSize       = 50
	// MaxPageNumber keeps (PageNumber-1)*MaxPageSize within a 64-bit int.
	MaxPageNumber = math.MaxInt32
	DefaultSortBy     = "Id"

	maxSortByLength = 50
)

const (
	Asc  = "asc"
	Desc = "desc"
)

// Params are the paging and sorting inputs common to every search endpoint.
type Params struct {
	PageNumber    int
	PageSize      int
	SortBy        string
	SortDirection string
}

func DefaultParams() Params {
	return Params{
		PageNumber:    DefaultPageNumber,
		PageSize:      DefaultPageSize,
		SortBy:        DefaultSortBy,
		SortDirection: Asc,
	}
}

// ParseParams reads pageNumber, pageSize, sortBy and sortDirection from query
// values. Missing values take defaults and pageSize is clamped to
// [1, MaxPageSize]. Malformed values are reported as validation errors.
func ParseParams(values url.Values) (Params, error) {
	var c validation.Checker
	p := ParseParamsInto(values, &c)
	return p, c.Err()
}

// ParseParamsInto is ParseParams for callers that also validate their own
// filters and want a single error list.
func ParseParamsInto(values url.Values, c *validation.Checker) Params {
	p := DefaultParams()

	if raw := strings.TrimSpace(values.Get("pageNumber")); raw != "" {
		n, err := strconv.Atoi(raw)
		switch {
		case err != nil:
			c.Add("pageNumber", "Page number must be an integer")
		case n < 1:
			c.Add("pageNumber", "Page number must be greater than 0")
		case n > MaxPageNumber:
			c.Add("pageNumber", "Page number is too large")
		default:
			p.PageNumber = n
		}
	}

	if raw := strings.TrimSpace(values.Get("pageSize")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			c.Add("pageSize", "Page size must be an integer")
		} else {
			p.PageSize = ClampPageSize(n)
		}
	}

	if raw, ok := values["sortBy"]; ok && len(raw) > 0 && strings.TrimSpace(raw[0]) != "" {
		s := strings.TrimSpace(raw[0])
		if len(s) > maxSortByLength {
			c.Add("sortBy", "Sort field cannot exceed 50 characters")
		} else {
			p.SortBy = s
		}
	}

	if raw, ok := values["sortDirection"]; ok && len(raw) > 0 && raw[0] != "" {
		switch raw[0] {
		case Asc, Desc:
			p.SortDirection = raw[0]
		default:
			c.Add("sortDirection", "Sort direction must be 'asc' or 'desc'")
		}
	}

	return p
}

// ClampPageSize forces n into [1, MaxPageSize].
func ClampPageSize(n int) int {
	if n > MaxPageSize {
		return MaxPageSize
	}
	if n < 1 {
		return 1
	}
	return n
}

// Offset is the number of rows skipped before this page.
func (p Params) Offset() int {
	n := p.PageNumber
	if n < 1 {
		return 0
	}
	if n > MaxPageNumber {
		n = MaxPageNumber
	}
	return (n - 1) * p.Limit()
}

// Limit is the maximum number of rows on this page.
func (p Params) Limit() int {
	return ClampPageSize(p.PageSize)
}

// OptionalInt64 parses key as an int64 filter; absent values yield nil.
func OptionalInt64(values url.Values, key string, c *validation.Checker) *int64 {
	raw := strings.TrimSpace(values.Get(key))
	if raw == "" {
		return nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		c.Add(key, "must be an integer")
		return nil
	}
	return &n
}

// OptionalBool parses key as a bool filter; absent values yield nil.
func OptionalBool(values url.Values, key string, c *validation.Checker) *bool {
	raw := strings.TrimSpace(values.Get(key))
	if raw == "" {
		return nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		c.Add(key, "must be true or false")
		return nil
	}
	return &b
}

// OptionalTime parses key as an RFC 3339 timestamp (or a plain date) filter;
// absent values yield nil.
func OptionalTime(values url.Values, key string, c *validation.Checker) *time.Time {
	raw := strings.TrimSpace(values.Get(key))
	if raw == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			t = t.UTC()
			return &t
		}
	}
	c.Add(key, "must be an RFC 3339 timestamp")
	return nil
}
