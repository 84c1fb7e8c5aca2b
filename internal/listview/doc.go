// Package listview implements the client-side list view behind every management
// screen: free-text search, single-key sorting and fixed-size pagination over an
// in-memory collection.
//
// The package is built around one pure function, Derive, which turns a backing
// collection and a ViewState into a DerivedView. The pipeline always runs in the
// same order:
//   - filter: keep records where any searchable field contains the search term
//     (case-insensitive substring match)
//   - sort: stable sort by the current SortSpec, if any
//   - paginate: slice [(page-1)*pageSize, page*pageSize)
//
// Engine wraps a collection and a ViewState and exposes the mutation entry points
// used by front ends (SetSearchTerm, RequestSort, SetPage, ReplaceData). It holds
// no derived state: View recomputes from scratch on every call.
//
// Field access is declared once per screen through Fields, a table of typed
// accessors built with StringField, NumberField and TimeField.
package listview
