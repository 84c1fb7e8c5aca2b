// Package pagination turns list command flags into a listview.ViewState and
// describes the resulting page for machine-readable output.
//
// It contains:
//   - Params: --search, --sort, --page and --page-size parsing and validation
//   - ParseSort: "field" or "field:asc|desc" sort expressions
//   - PaginationMeta: page metadata emitted with json and ndjson output
package pagination
