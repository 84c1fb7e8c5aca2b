package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/quizgame/quizadmin/internal/quiz"
	"github.com/quizgame/quizadmin/internal/source"
	"github.com/quizgame/quizadmin/internal/tui"
)

// runInteractive launches the list screen for loader. Logs go to a file
// while the program owns the terminal.
func runInteractive[T any](
	cmd *cobra.Command,
	screen quiz.Screen[T],
	loader *source.Loader[T],
	title string,
) error {
	ctx, closeLog := fileOnlyLogging(cmd.Context())
	defer func() { _ = closeLog() }()

	model := tui.NewListModel(ctx, screen, loader)
	if title != "" {
		model.SetTitle(title)
	}

	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run interactive TUI: %w", err)
	}
	return nil
}
