package cli

import (
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/quizgame/quizadmin/internal/cache"
	"github.com/quizgame/quizadmin/internal/config"
	"github.com/quizgame/quizadmin/internal/quiz"
)

func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "cache", Short: "List cache commands"}
	cmd.AddCommand(newCacheStatusCmd(), newCacheClearCmd())
	return cmd
}

func newCacheStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the list cache location and contents",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := newCacheStore(config.GetGlobalConfig())
			if err != nil {
				return err
			}
			if !store.IsEnabled() {
				cmd.Println("Cache is disabled (set cache.enabled or pass --cache-ttl)")
				return nil
			}

			st, err := store.Stats()
			if err != nil {
				return fmt.Errorf("reading cache: %w", err)
			}

			p := quiz.NewPrinter()
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, tabPadding, ' ', 0)
			fmt.Fprintf(tw, "Directory:\t%s\n", st.Directory)
			fmt.Fprintf(tw, "TTL:\t%s\n", cache.FormatDuration(time.Duration(st.TTLSeconds)*time.Second))
			fmt.Fprintf(tw, "Entries:\t%s\n", p.Sprintf("%d (%d expired)", st.Entries, st.Expired))
			fmt.Fprintf(tw, "Size:\t%s\n", p.Sprintf("%d bytes", st.SizeBytes))
			return tw.Flush()
		},
	}
}

func newCacheClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := *config.GetGlobalConfig()
			cfg.Cache.Enabled = true
			store, err := newCacheStore(&cfg)
			if err != nil {
				return err
			}
			n, err := store.Clear()
			if err != nil && !errors.Is(err, cache.ErrDisabled) {
				return fmt.Errorf("clearing cache: %w", err)
			}
			cmd.Printf("Removed %d cached lists\n", n)
			return nil
		},
	}
}
