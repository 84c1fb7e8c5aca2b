package pagination

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quizgame/quizadmin/internal/listview"
)

// Validation limits.
const (
	DefaultPage = listview.DefaultPage
	MinPage     = 1
	MinPageSize = 1
	MaxPageSize = 1000
)

// Common validation errors.
var (
	ErrInvalidPageSize   = errors.New("page-size must be between 1 and 1000")
	ErrInvalidPage       = errors.New("page must be >= 1")
	ErrInvalidSortOrder  = listview.ErrInvalidDirection
	ErrInvalidSortFormat = errors.New("invalid sort format: use 'field' or 'field:order' (e.g., 'score:desc')")
	ErrEmptySortField    = errors.New("sort field cannot be empty")
	ErrInvalidSortField  = errors.New("invalid sort field")
)

// PaginationParams holds the list flags of one command.
//
//nolint:revive // PaginationParams is the canonical name for this exported type.
type PaginationParams struct {
	// Search is the case-insensitive substring filter.
	Search string

	// Sort is a sort expression, see ParseSort. Empty keeps API order.
	Sort string

	// Page is the 1-based page number.
	Page int

	// PageSize is the number of rows per page.
	PageSize int
}

// NewPaginationParams returns params for page 1 with the given page size.
func NewPaginationParams(pageSize int) *PaginationParams {
	return &PaginationParams{Page: DefaultPage, PageSize: pageSize}
}

// AddFlags registers --search, --sort, --page and --page-size on cmd.
func (p *PaginationParams) AddFlags(cmd *cobra.Command, sortFields []string) {
	flags := cmd.Flags()
	flags.StringVarP(&p.Search, "search", "s", p.Search, "case-insensitive substring filter across searchable fields")
	flags.StringVar(&p.Sort, "sort", p.Sort,
		fmt.Sprintf("sort as field[:asc|desc] (fields: %s)", strings.Join(sortFields, ", ")))
	flags.IntVar(&p.Page, "page", p.Page, "page number, starting at 1")
	flags.IntVar(&p.PageSize, "page-size", p.PageSize, "rows per page")
}

// Validate checks page bounds. Pages past the last page are valid and
// render empty.
func (p PaginationParams) Validate() error {
	if p.Page < MinPage {
		return fmt.Errorf("%w: got %d", ErrInvalidPage, p.Page)
	}
	if p.PageSize < MinPageSize || p.PageSize > MaxPageSize {
		return fmt.Errorf("%w: got %d", ErrInvalidPageSize, p.PageSize)
	}
	return nil
}

// sortPartsMax is the maximum number of parts in a sort string (field:order).
const sortPartsMax = 2

// ParseSort parses "field" or "field:order". An empty string yields a nil
// spec (no sorting). The order defaults to ascending.
func ParseSort(sortStr string) (*listview.SortSpec, error) {
	if strings.TrimSpace(sortStr) == "" {
		return nil, nil //nolint:nilnil // No sort is a valid result.
	}

	parts := strings.Split(sortStr, ":")
	if len(parts) > sortPartsMax {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSortFormat, sortStr)
	}

	field := strings.TrimSpace(parts[0])
	if field == "" {
		return nil, ErrEmptySortField
	}

	order := listview.DirectionAsc
	if len(parts) == sortPartsMax {
		order = strings.ToLower(strings.TrimSpace(parts[1]))
	}
	dir, err := listview.ParseDirection(order)
	if err != nil {
		return nil, fmt.Errorf("invalid sort %q: %w", sortStr, err)
	}

	return &listview.SortSpec{Key: field, Direction: dir}, nil
}

// ViewState validates p against fields and returns the equivalent view
// state. Unknown sort fields are rejected with the list of valid ones.
func ViewState[T any](p PaginationParams, fields listview.Fields[T]) (listview.ViewState, error) {
	if err := p.Validate(); err != nil {
		return listview.ViewState{}, err
	}

	spec, err := ParseSort(p.Sort)
	if err != nil {
		return listview.ViewState{}, err
	}
	if spec != nil {
		if err = ValidateSortField(fields, spec.Key); err != nil {
			return listview.ViewState{}, err
		}
	}

	state := listview.NewViewState(p.PageSize)
	state.SearchTerm = p.Search
	state.Sort = spec
	state.Page = p.Page
	return state, nil
}
