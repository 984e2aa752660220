package paging

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// expectedLen is the number of items a page must hold for total matching rows.
func expectedLen(total int, p Params) int {
	n := total - p.Offset()
	if n < 0 {
		return 0
	}
	if n > p.Limit() {
		return p.Limit()
	}
	return n
}

// slice emulates LIMIT/OFFSET over an in-memory result.
func slice(all []int, p Params) []int {
	start := p.Offset()
	if start > len(all) {
		return nil
	}
	end := start + p.Limit()
	if end > len(all) {
		end = len(all)
	}
	return all[start:end]
}

func TestNewPage_Counters(t *testing.T) {
	tests := []struct {
		name      string
		total     int
		p         Params
		wantPages int
		wantPrev  bool
		wantNext  bool
	}{
		{"empty result", 0, Params{PageNumber: 1, PageSize: 10}, 0, false, false},
		{"single partial page", 7, Params{PageNumber: 1, PageSize: 10}, 1, false, false},
		{"exact multiple", 20, Params{PageNumber: 1, PageSize: 10}, 2, false, true},
		{"middle page", 25, Params{PageNumber: 2, PageSize: 10}, 3, true, true},
		{"last page", 25, Params{PageNumber: 3, PageSize: 10}, 3, true, false},
		{"past the end", 25, Params{PageNumber: 9, PageSize: 10}, 3, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := NewPage([]int{}, tt.total, tt.p)
			assert.Equal(t, tt.wantPages, page.TotalPages)
			assert.Equal(t, tt.wantPrev, page.HasPrevious)
			assert.Equal(t, tt.wantNext, page.HasNext)
			assert.Equal(t, tt.total, page.TotalCount)
		})
	}
}

func TestNewPage_ItemCountMatchesSlice(t *testing.T) {
	all := make([]int, 123)
	for i := range all {
		all[i] = i
	}

	for _, size := range []int{1, 7, 10, 50, 500} {
		for number := 1; number <= 20; number++ {
			p := Params{PageNumber: number, PageSize: ClampPageSize(size)}
			page := NewPage(slice(all, p), len(all), p)

			assert.LessOrEqual(t, page.PageSize, MaxPageSize)
			assert.Len(t, page.Items, expectedLen(len(all), p), "size=%d number=%d", size, number)
		}
	}
}

func TestNewPage_NilItemsEncodeAsEmptyList(t *testing.T) {
	page := NewPage[string](nil, 0, DefaultParams())
	raw, err := json.Marshal(page)
	require.NoError(t, err)
	assert.JSONEq(t, `{"items":[],"pageNumber":1,"pageSize":10,"totalCount":0,"totalPages":0,"hasPrevious":false,"hasNext":false}`, string(raw))
}

func TestMap(t *testing.T) {
	page := NewPage([]int{1, 2}, 12, Params{PageNumber: 2, PageSize: 2})
	out := Map(page, func(i int) string { return string(rune('a' + i)) })
	assert.Equal(t, []string{"b", "c"}, out.Items)
	assert.Equal(t, page.TotalPages, out.TotalPages)
	assert.True(t, out.HasNext)
}
