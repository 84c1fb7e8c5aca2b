package cli

import (
	"github.com/spf13/cobra"

	"github.com/quizgame/quizadmin/internal/bulk"
)

// deleteFlags are shared by the delete subcommands.
type deleteFlags struct {
	concurrency int
}

func addDeleteFlags(cmd *cobra.Command) *deleteFlags {
	f := &deleteFlags{}
	cmd.Flags().IntVar(&f.concurrency, "concurrency", bulk.DefaultConcurrency,
		"number of deletes sent at once")
	return f
}

// deleteMany deletes every id with del and prints one line per success.
// All ids are attempted; the returned error lists the failures.
func deleteMany(cmd *cobra.Command, kind string, ids []string, f *deleteFlags, del bulk.Action) error {
	runner, err := bulk.NewRunner(bulk.DefaultBatchSize, f.concurrency)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	runner.WithProgress(func(p bulk.Progress) {
		logger.Debug().Ctx(ctx).
			Str("operation", "delete").
			Str("kind", kind).
			Int("done", p.Done).
			Int("failed", p.Failed).
			Int("total", p.Total).
			Msg("delete batch finished")
	})

	results, err := runner.Run(ctx, ids, del)
	for _, res := range results {
		if res.Err == nil {
			cmd.Printf("Deleted %s %s\n", kind, res.ID)
		}
	}
	if err != nil {
		logger.Error().Ctx(ctx).Err(err).Str("kind", kind).Msg("delete failed")
		return err
	}
	return nil
}
