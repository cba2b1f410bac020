package pagination

// Params carries the normalized paging and ordering inputs for a list query.
type Params struct {
	Page      int
	Limit     int
	SortBy    string
	SortOrder string // "asc" or "desc"
}

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Normalize clamps page and limit and restricts SortBy to the allowed field
// set. Out-of-range limits are clamped, not rejected. An unknown SortBy falls
// back to defaultSort so the column name is always safe to interpolate into
// an ORDER BY clause.
func Normalize(p Params, allowedSort []string, defaultSort string) Params {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}

	allowed := false
	for _, f := range allowedSort {
		if p.SortBy == f {
			allowed = true
			break
		}
	}
	if !allowed {
		p.SortBy = defaultSort
	}

	if p.SortOrder != "asc" && p.SortOrder != "desc" {
		p.SortOrder = "desc"
	}

	return p
}

// Offset returns the row offset for the current page.
func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// OrderClause returns the "column direction" string for the query builder.
// Only safe after Normalize.
func (p Params) OrderClause() string {
	return p.SortBy + " " + p.SortOrder
}

// Meta is the paging envelope returned next to every list result.
type Meta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

// NewMeta derives the paging envelope from the full match count. When total
// is zero, TotalPages is zero and both cursors are false regardless of page.
func NewMeta(p Params, total int64) Meta {
	if total == 0 {
		return Meta{Page: p.Page, Limit: p.Limit}
	}

	totalPages := int((total + int64(p.Limit) - 1) / int64(p.Limit))
	return Meta{
		Page:       p.Page,
		Limit:      p.Limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    p.Page < totalPages,
		HasPrev:    p.Page > 1,
	}
}
