package listview

import (
	"errors"
	"fmt"
	"strings"
)

// Direction is the ordering applied to the sort key.
type Direction int

const (
	// Ascending orders from smallest to largest.
	Ascending Direction = iota
	// Descending orders from largest to smallest.
	Descending
)

// Textual forms of Direction, as accepted on the command line.
const (
	DirectionAsc  = "asc"
	DirectionDesc = "desc"
)

// ErrInvalidDirection is returned by ParseDirection for anything other than asc/desc.
var ErrInvalidDirection = errors.New("sort direction must be 'asc' or 'desc'")

// String returns "asc" or "desc".
func (d Direction) String() string {
	if d == Descending {
		return DirectionDesc
	}
	return DirectionAsc
}

// ParseDirection parses "asc" or "desc" (case-insensitive).
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case DirectionAsc:
		return Ascending, nil
	case DirectionDesc:
		return Descending, nil
	default:
		return Ascending, fmt.Errorf("%w: got %q", ErrInvalidDirection, s)
	}
}

// SortSpec names the field to sort by and the direction.
// A nil *SortSpec means no explicit ordering.
type SortSpec struct {
	Key       string
	Direction Direction
}

// String renders the spec as "key:direction".
func (s SortSpec) String() string {
	return s.Key + ":" + s.Direction.String()
}

// NextSort returns the sort spec that results from requesting a sort on key.
//
// Requesting the current key while it is ascending flips it to descending.
// Every other case (different key, no current sort, current direction
// descending) yields key ascending. Repeated requests on the same key therefore
// cycle asc → desc → asc; there is no way back to unsorted.
func NextSort(current *SortSpec, key string) *SortSpec {
	if current != nil && current.Key == key && current.Direction == Ascending {
		return &SortSpec{Key: key, Direction: Descending}
	}
	return &SortSpec{Key: key, Direction: Ascending}
}

// DefaultPage is the first page; pages are 1-based.
const DefaultPage = 1

// ViewState is the complete presentation state of one list screen.
type ViewState struct {
	// SearchTerm is stored verbatim, without trimming.
	SearchTerm string

	// Sort is nil until a sort has been requested.
	Sort *SortSpec

	// Page is the 1-based page number. It is not range-checked; pages past the
	// end derive an empty slice.
	Page int

	// PageSize is fixed per screen. Non-positive values disable pagination.
	PageSize int
}

// NewViewState returns a state on page 1 with no search and no sort.
func NewViewState(pageSize int) ViewState {
	return ViewState{Page: DefaultPage, PageSize: pageSize}
}
