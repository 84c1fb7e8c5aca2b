package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quizgame/quizadmin/internal/cli/pagination"
	"github.com/quizgame/quizadmin/internal/config"
	"github.com/quizgame/quizadmin/internal/listview"
	"github.com/quizgame/quizadmin/internal/quiz"
	"github.com/quizgame/quizadmin/internal/source"
)

// Output formats accepted by --output.
const (
	formatTable  = "table"
	formatJSON   = "json"
	formatNDJSON = "ndjson"
)

// ErrInteractiveFormat is returned when --interactive is combined with a
// machine-readable output format.
var ErrInteractiveFormat = errors.New("--interactive requires table output")

// listCommand holds the flags shared by every list subcommand.
type listCommand[T any] struct {
	screen      quiz.Screen[T]
	params      *pagination.PaginationParams
	output      string
	interactive bool
}

// newListCommand registers the search, sort, page, output and interactive
// flags for screen on cmd.
func newListCommand[T any](cmd *cobra.Command, screen quiz.Screen[T]) *listCommand[T] {
	lc := &listCommand[T]{
		screen: screen,
		params: pagination.NewPaginationParams(screen.PageSize),
	}
	lc.params.AddFlags(cmd, pagination.ValidSortFields(screen.Fields))
	cmd.Flags().StringVarP(&lc.output, "output", "o", "",
		"output format: table, json or ndjson (default from config)")
	cmd.Flags().BoolVarP(&lc.interactive, "interactive", "i", false,
		"browse the list interactively (default when stdout is a terminal and output is table)")
	return lc
}

// format resolves --output against the configured default.
func (lc *listCommand[T]) format() (string, error) {
	format := lc.output
	if format == "" {
		format = config.GetDefaultOutputFormat()
	}
	switch format {
	case formatTable, formatJSON, formatNDJSON:
		return format, nil
	default:
		return "", fmt.Errorf("unsupported output format: %s", format)
	}
}

// wantsInteractive reports whether to launch the interactive screen.
func (lc *listCommand[T]) wantsInteractive(cmd *cobra.Command, format string) (bool, error) {
	if cmd.Flags().Changed("interactive") {
		if lc.interactive && format != formatTable {
			return false, ErrInteractiveFormat
		}
		return lc.interactive, nil
	}
	if format != formatTable {
		return false, nil
	}
	out, ok := cmd.OutOrStdout().(*os.File)
	return ok && isTerminal(out) && isTerminal(os.Stdin), nil
}

// viewState validates the flags into an engine state. The configured page
// size applies when --page-size was not given.
func (lc *listCommand[T]) viewState(cmd *cobra.Command) (listview.ViewState, error) {
	params := *lc.params
	if !cmd.Flags().Changed("page-size") {
		params.PageSize = config.GetPageSize()
	}
	return pagination.ViewState(params, lc.screen.Fields)
}

// newLoader builds an engine seeded with state and a loader over src.
func (lc *listCommand[T]) newLoader(src source.DataSource[T], state listview.ViewState) *source.Loader[T] {
	engine := listview.New(lc.screen.Fields, state.PageSize)
	engine.SetSearchTerm(state.SearchTerm)
	engine.SetSort(state.Sort)
	engine.SetPage(state.Page)
	return source.NewLoader(src, engine)
}

// run executes a list command over src. When preload is non-nil its records
// are applied instead of a first fetch.
func (lc *listCommand[T]) run(
	cmd *cobra.Command,
	src source.DataSource[T],
	title string,
	preload func() ([]T, error),
) error {
	ctx := cmd.Context()

	format, err := lc.format()
	if err != nil {
		return err
	}
	interactive, err := lc.wantsInteractive(cmd, format)
	if err != nil {
		return err
	}
	state, err := lc.viewState(cmd)
	if err != nil {
		return err
	}

	loader := lc.newLoader(src, state)
	if preload != nil {
		records, preloadErr := preload()
		if applyErr := loader.Apply(ctx, loader.Begin(), records, preloadErr); applyErr != nil {
			return fmt.Errorf("fetching %s: %w", strings.ToLower(lc.screen.Title), applyErr)
		}
	}

	if interactive {
		return runInteractive(cmd, lc.screen, loader, title)
	}

	if !loader.Loaded() {
		if err = loader.Refresh(ctx); err != nil {
			return fmt.Errorf("fetching %s: %w", strings.ToLower(lc.screen.Title), err)
		}
	}

	engine := loader.Engine()
	view := engine.View()
	logger.Debug().Ctx(ctx).
		Str("operation", "list").
		Str("screen", lc.screen.Name).
		Int("total_matching", view.TotalMatching).
		Int("page", view.Page).
		Msg("list rendered")

	return renderList(cmd.OutOrStdout(), format, lc.screen, title, view, engine.State())
}
