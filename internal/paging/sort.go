package paging

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownSortField is returned when sortBy names a field that is not in
// the endpoint's allow-list.
var ErrUnknownSortField = errors.New("unknown sort field")

// SortFields maps a client-facing sort key to the SQL expression it orders by.
// Keys match case-insensitively.
type SortFields map[string]string

func NewSortFields(fields map[string]string) SortFields {
	out := make(SortFields, len(fields))
	for k, v := range fields {
		out[strings.ToLower(k)] = v
	}
	return out
}

// OrderBy resolves p.SortBy and p.SortDirection into an ORDER BY body such as
// "c.created_at DESC". Equal keys are not tie-broken.
func (s SortFields) OrderBy(p Params) (string, error) {
	key := strings.TrimSpace(p.SortBy)
	if key == "" {
		key = DefaultSortBy
	}

	column, ok := s[strings.ToLower(key)]
	if !ok {
		return "", fmt.Errorf("%w %q", ErrUnknownSortField, key)
	}

	if strings.EqualFold(p.SortDirection, Desc) {
		return column + " DESC", nil
	}
	return column + " ASC", nil
}

// Keys lists the accepted sort keys.
func (s SortFields) Keys() []string {
	out := make([]string, 0, len(s))
	for k := range s {
		out = append(out, k)
	}
	return out
}
