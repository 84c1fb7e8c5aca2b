package pagination

import "github.com/quizgame/quizadmin/internal/listview"

// PaginationMeta contains metadata about paginated results.
//
//nolint:revive // PaginationMeta is the canonical name for this exported type.
type PaginationMeta struct {
	CurrentPage int    `json:"current_page"`
	PageSize    int    `json:"page_size"`
	TotalPages  int    `json:"total_pages"`
	TotalItems  int    `json:"total_items"`
	HasPrevious bool   `json:"has_previous"`
	HasNext     bool   `json:"has_next"`
	Search      string `json:"search,omitempty"`
	Sort        string `json:"sort,omitempty"`
}

// NewPaginationMeta describes view as derived from state.
func NewPaginationMeta[T any](view listview.DerivedView[T], state listview.ViewState) PaginationMeta {
	meta := PaginationMeta{
		CurrentPage: view.Page,
		PageSize:    view.PageSize,
		TotalPages:  view.TotalPages,
		TotalItems:  view.TotalMatching,
		HasPrevious: view.HasPrevious(),
		HasNext:     view.HasNext(),
		Search:      state.SearchTerm,
	}
	if state.Sort != nil {
		meta.Sort = state.Sort.String()
	}
	return meta
}
