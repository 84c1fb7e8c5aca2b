package pagination

import (
	"fmt"
	"slices"
	"strings"

	"github.com/quizgame/quizadmin/internal/listview"
)

// ValidSortFields returns the sortable field names of a screen, sorted.
func ValidSortFields[T any](fields listview.Fields[T]) []string {
	names := fields.Names()
	slices.Sort(names)
	return names
}

// ValidateSortField reports ErrInvalidSortField, listing the valid fields,
// when key is not a field of the screen.
func ValidateSortField[T any](fields listview.Fields[T], key string) error {
	if fields.Has(key) {
		return nil
	}
	return fmt.Errorf("%w %q: valid fields are %s",
		ErrInvalidSortField, key, strings.Join(ValidSortFields(fields), ", "))
}
