package listview

import (
	"slices"
	"strings"
)

// DerivedView is the render-ready result of Derive.
// It is always recomputed from the backing collection and a ViewState.
type DerivedView[T any] struct {
	// Records is the visible slice for the current page.
	Records []T `json:"records"`

	// TotalMatching is the number of records that passed the search filter.
	TotalMatching int `json:"total_matching"`

	// TotalPages is ceil(TotalMatching / PageSize), or 0 when nothing matches.
	TotalPages int `json:"total_pages"`

	// Page and PageSize echo the state the view was derived from.
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
}

// HasPrevious reports whether a page before the current one exists.
func (v DerivedView[T]) HasPrevious() bool {
	return v.Page > 1 && v.TotalPages > 0
}

// HasNext reports whether a page after the current one exists.
func (v DerivedView[T]) HasNext() bool {
	return v.Page < v.TotalPages
}

// Derive computes the visible view of records under state.
// The pipeline is fixed: filter by search term, stable sort, then paginate.
// It never mutates records.
func Derive[T any](records []T, fields Fields[T], state ViewState) DerivedView[T] {
	matching := Filter(records, fields, state.SearchTerm)
	sorted := Sort(matching, fields, state.Sort)

	return DerivedView[T]{
		Records:       Paginate(sorted, state.Page, state.PageSize),
		TotalMatching: len(sorted),
		TotalPages:    TotalPages(len(sorted), state.PageSize),
		Page:          state.Page,
		PageSize:      state.PageSize,
	}
}

// Filter returns the records where any searchable field, lower-cased, contains
// the lower-cased term. An empty term keeps every record in its original order.
// The result never aliases records.
func Filter[T any](records []T, fields Fields[T], term string) []T {
	if term == "" {
		return slices.Clone(records)
	}

	needle := strings.ToLower(term)
	searchable := fields.searchable()

	out := make([]T, 0, len(records))
	for _, r := range records {
		if matches(r, searchable, needle) {
			out = append(out, r)
		}
	}
	return out
}

func matches[T any](r T, fields []Field[T], needle string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f.Text(r)), needle) {
			return true
		}
	}
	return false
}

// Sort returns a sorted copy of records.
// A nil spec, or a key with no declared field, keeps the input order.
// Ties keep their input order in both directions.
func Sort[T any](records []T, fields Fields[T], spec *SortSpec) []T {
	sorted := slices.Clone(records)
	if spec == nil {
		return sorted
	}

	field, ok := fields.Lookup(spec.Key)
	if !ok {
		return sorted
	}

	slices.SortStableFunc(sorted, func(a, b T) int {
		if spec.Direction == Descending {
			return field.Compare(b, a)
		}
		return field.Compare(a, b)
	})
	return sorted
}

// Paginate returns the slice [(page-1)*pageSize, page*pageSize) of records.
// Pages outside the range, including page < 1, yield an empty slice.
// A non-positive pageSize returns every record.
func Paginate[T any](records []T, page, pageSize int) []T {
	if pageSize <= 0 {
		return records
	}
	if page < 1 {
		return []T{}
	}

	start := (page - 1) * pageSize
	if start >= len(records) {
		return []T{}
	}
	end := min(start+pageSize, len(records))
	return records[start:end]
}

// TotalPages returns ceil(total / pageSize), 0 when total is 0.
// A non-positive pageSize counts everything as a single page.
func TotalPages(total, pageSize int) int {
	if total <= 0 {
		return 0
	}
	if pageSize <= 0 {
		return 1
	}
	pages := total / pageSize
	if total%pageSize > 0 {
		pages++
	}
	return pages
}
