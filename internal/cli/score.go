package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quizgame/quizadmin/internal/quiz"
)

func newScoreCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "score", Short: "Player score commands"}
	cmd.AddCommand(newScoreListCmd(), newScoreDeleteCmd())
	return cmd
}

func newScoreListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Search, sort and page through player scores",
		Example: `  # Best scores first
  quizadmin score list --sort score:desc

  # Scores of one player as JSON
  quizadmin score list --search alice --output json`,
		Args: cobra.NoArgs,
	}

	lc := newListCommand(cmd, quiz.ScoreScreen())
	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		d, err := newDeps()
		if err != nil {
			return err
		}
		return lc.run(cmd, d.scoreSource(), "", nil)
	}
	return cmd
}

func newScoreDeleteCmd() *cobra.Command {
	var flags *deleteFlags

	cmd := &cobra.Command{
		Use:   "delete <id>...",
		Short: "Delete one or more scores",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := newDeps()
			if err != nil {
				return err
			}
			src := d.scoreSource()
			if err = deleteMany(cmd, "score", args, flags, src.DeleteOne); err != nil {
				return fmt.Errorf("deleting scores: %w", err)
			}
			return nil
		},
	}
	flags = addDeleteFlags(cmd)
	return cmd
}
