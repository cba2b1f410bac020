package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	allowed := []string{"created_at", "title"}

	tests := []struct {
		name     string
		in       Params
		expected Params
	}{
		{
			name:     "defaults applied when everything is zero",
			in:       Params{},
			expected: Params{Page: 1, Limit: DefaultLimit, SortBy: "created_at", SortOrder: "desc"},
		},
		{
			name:     "negative page clamped to 1",
			in:       Params{Page: -5, Limit: 10},
			expected: Params{Page: 1, Limit: 10, SortBy: "created_at", SortOrder: "desc"},
		},
		{
			name:     "limit above max clamped, not rejected",
			in:       Params{Page: 2, Limit: 500},
			expected: Params{Page: 2, Limit: MaxLimit, SortBy: "created_at", SortOrder: "desc"},
		},
		{
			name:     "unknown sort field falls back to default",
			in:       Params{Page: 1, Limit: 20, SortBy: "password; DROP TABLE users"},
			expected: Params{Page: 1, Limit: 20, SortBy: "created_at", SortOrder: "desc"},
		},
		{
			name:     "allowed sort field and asc order kept",
			in:       Params{Page: 3, Limit: 50, SortBy: "title", SortOrder: "asc"},
			expected: Params{Page: 3, Limit: 50, SortBy: "title", SortOrder: "asc"},
		},
		{
			name:     "invalid sort order falls back to desc",
			in:       Params{Page: 1, Limit: 20, SortBy: "title", SortOrder: "sideways"},
			expected: Params{Page: 1, Limit: 20, SortBy: "title", SortOrder: "desc"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.in, allowed, "created_at"))
		})
	}
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, Params{Page: 1, Limit: 20}.Offset())
	assert.Equal(t, 40, Params{Page: 3, Limit: 20}.Offset())
}

func TestNewMeta(t *testing.T) {
	tests := []struct {
		name     string
		params   Params
		total    int64
		expected Meta
	}{
		{
			name:     "zero total has no pages and no cursors",
			params:   Params{Page: 1, Limit: 20},
			total:    0,
			expected: Meta{Page: 1, Limit: 20},
		},
		{
			name:     "page 1 of 45 rows at limit 20",
			params:   Params{Page: 1, Limit: 20},
			total:    45,
			expected: Meta{Page: 1, Limit: 20, Total: 45, TotalPages: 3, HasNext: true, HasPrev: false},
		},
		{
			name:     "last partial page of 45 rows",
			params:   Params{Page: 3, Limit: 20},
			total:    45,
			expected: Meta{Page: 3, Limit: 20, Total: 45, TotalPages: 3, HasNext: false, HasPrev: true},
		},
		{
			name:     "exact multiple of limit",
			params:   Params{Page: 2, Limit: 10},
			total:    20,
			expected: Meta{Page: 2, Limit: 10, Total: 20, TotalPages: 2, HasNext: false, HasPrev: true},
		},
		{
			name:     "single row",
			params:   Params{Page: 1, Limit: 20},
			total:    1,
			expected: Meta{Page: 1, Limit: 20, Total: 1, TotalPages: 1, HasNext: false, HasPrev: false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NewMeta(tt.params, tt.total))
		})
	}
}

// items.length == min(limit, max(0, total - (page-1)*limit)) for every valid window
func TestPageWindowProperty(t *testing.T) {
	total := int64(45)
	limit := 20

	for page := 1; page <= 4; page++ {
		p := Normalize(Params{Page: page, Limit: limit}, nil, "created_at")
		remaining := int(total) - p.Offset()
		if remaining < 0 {
			remaining = 0
		}
		want := remaining
		if want > limit {
			want = limit
		}

		meta := NewMeta(p, total)
		switch page {
		case 1:
			assert.Equal(t, 20, want)
			assert.True(t, meta.HasNext)
			assert.False(t, meta.HasPrev)
		case 3:
			assert.Equal(t, 5, want)
			assert.False(t, meta.HasNext)
			assert.True(t, meta.HasPrev)
		case 4:
			assert.Equal(t, 0, want)
		}
	}
}
