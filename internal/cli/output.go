package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/quizgame/quizadmin/internal/cli/pagination"
	"github.com/quizgame/quizadmin/internal/listview"
	"github.com/quizgame/quizadmin/internal/quiz"
)

const tabPadding = 2

// listOutput is the JSON document written by --output json.
type listOutput[T any] struct {
	Items      []T                       `json:"items"`
	Pagination pagination.PaginationMeta `json:"pagination"`
}

// paginationLine is the first line written by --output ndjson.
type paginationLine struct {
	Pagination pagination.PaginationMeta `json:"pagination"`
}

// renderList writes one page of a list in format.
func renderList[T any](
	w io.Writer,
	format string,
	screen quiz.Screen[T],
	title string,
	view listview.DerivedView[T],
	state listview.ViewState,
) error {
	meta := pagination.NewPaginationMeta(view, state)
	records := view.Records
	if records == nil {
		records = []T{}
	}

	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(listOutput[T]{Items: records, Pagination: meta})

	case formatNDJSON:
		enc := json.NewEncoder(w)
		if err := enc.Encode(paginationLine{Pagination: meta}); err != nil {
			return err
		}
		for _, r := range records {
			if err := enc.Encode(r); err != nil {
				return err
			}
		}
		return nil

	default:
		return renderTable(w, screen, title, records, meta)
	}
}

func renderTable[T any](
	w io.Writer,
	screen quiz.Screen[T],
	title string,
	records []T,
	meta pagination.PaginationMeta,
) error {
	p := quiz.NewPrinter()

	if title != "" && title != screen.Title {
		fmt.Fprintln(w, title)
		fmt.Fprintln(w)
	}

	if len(records) == 0 {
		fmt.Fprintln(w, "No matching records.")
	} else {
		tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)
		headers := screen.Headers()
		fmt.Fprintln(tw, strings.Join(headers, "\t"))
		fmt.Fprintln(tw, strings.Join(dashes(headers), "\t"))
		for _, r := range records {
			fmt.Fprintln(tw, strings.Join(screen.Row(p, r), "\t"))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, p.Sprintf("page %d of %d (%d items)", meta.CurrentPage, meta.TotalPages, meta.TotalItems))
	return nil
}

func dashes(headers []string) []string {
	out := make([]string, len(headers))
	for i, h := range headers {
		out[i] = strings.Repeat("-", len(h))
	}
	return out
}

// writeJSON encodes v indented, for single-record commands.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
