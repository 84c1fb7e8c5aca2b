package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/quizgame/quizadmin/internal/quiz"
)

// ErrNothingToUpdate is returned by update commands given no field flags.
var ErrNothingToUpdate = errors.New("nothing to update: pass at least one field flag")

func newTopicCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "topic", Short: "Quiz topic commands"}
	cmd.AddCommand(
		newTopicListCmd(), newTopicGetCmd(), newTopicCreateCmd(),
		newTopicUpdateCmd(), newTopicDeleteCmd(),
	)
	return cmd
}

func newTopicListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Search, sort and page through topics",
		Args:  cobra.NoArgs,
	}

	lc := newListCommand(cmd, quiz.TopicScreen())
	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		d, err := newDeps()
		if err != nil {
			return err
		}
		return lc.run(cmd, d.topicSource(), "", nil)
	}
	return cmd
}

func newTopicGetCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one topic",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := newDeps()
			if err != nil {
				return err
			}
			topic, err := d.client.GetTopic(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("getting topic %s: %w", args[0], err)
			}
			if output == formatJSON {
				return writeJSON(cmd.OutOrStdout(), topic)
			}
			return renderTopic(cmd.OutOrStdout(), topic)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", formatTable, "output format: table or json")
	return cmd
}

func newTopicCreateCmd() *cobra.Command {
	var (
		in     quiz.TopicInput
		output string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a topic",
		Example: `  quizadmin topic create --name "Solar System" --category Science`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(in.TopicName) == "" {
				return errors.New("--name is required")
			}
			d, err := newDeps()
			if err != nil {
				return err
			}
			topic, err := d.client.CreateTopic(cmd.Context(), in)
			if err != nil {
				return fmt.Errorf("creating topic: %w", err)
			}
			d.invalidate(quiz.ScreenTopic)
			return reportTopic(cmd, output, "Created", topic)
		},
	}
	cmd.Flags().StringVar(&in.TopicName, "name", "", "topic name (required)")
	cmd.Flags().StringVar(&in.Category, "category", "", "topic category")
	cmd.Flags().StringVarP(&output, "output", "o", formatTable, "output format: table or json")
	return cmd
}

func newTopicUpdateCmd() *cobra.Command {
	var (
		in     quiz.TopicInput
		output string
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Rename or recategorize a topic",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			nameSet, categorySet := cmd.Flags().Changed("name"), cmd.Flags().Changed("category")
			if !nameSet && !categorySet {
				return ErrNothingToUpdate
			}
			d, err := newDeps()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			current, err := d.client.GetTopic(ctx, args[0])
			if err != nil {
				return fmt.Errorf("getting topic %s: %w", args[0], err)
			}
			if !nameSet {
				in.TopicName = current.TopicName
			}
			if !categorySet {
				in.Category = current.Category
			}

			topic, err := d.client.UpdateTopic(ctx, args[0], in)
			if err != nil {
				return fmt.Errorf("updating topic %s: %w", args[0], err)
			}
			d.invalidate(quiz.ScreenTopic)
			return reportTopic(cmd, output, "Updated", topic)
		},
	}
	cmd.Flags().StringVar(&in.TopicName, "name", "", "new topic name")
	cmd.Flags().StringVar(&in.Category, "category", "", "new topic category")
	cmd.Flags().StringVarP(&output, "output", "o", formatTable, "output format: table or json")
	return cmd
}

func newTopicDeleteCmd() *cobra.Command {
	var flags *deleteFlags

	cmd := &cobra.Command{
		Use:   "delete <id>...",
		Short: "Delete one or more topics",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := newDeps()
			if err != nil {
				return err
			}
			src := d.topicSource()
			err = deleteMany(cmd, "topic", args, flags, func(ctx context.Context, id string) error {
				if delErr := src.DeleteOne(ctx, id); delErr != nil {
					return delErr
				}
				d.invalidate(quiz.ScreenSubtopic, id)
				return nil
			})
			if err != nil {
				return fmt.Errorf("deleting topics: %w", err)
			}
			return nil
		},
	}
	flags = addDeleteFlags(cmd)
	return cmd
}

func reportTopic(cmd *cobra.Command, output, verb string, t quiz.Topic) error {
	if output == formatJSON {
		return writeJSON(cmd.OutOrStdout(), t)
	}
	cmd.Printf("%s topic %q (%s)\n", verb, t.TopicName, t.ID)
	return nil
}

func renderTopic(w io.Writer, t quiz.Topic) error {
	tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)
	fmt.Fprintf(tw, "ID:\t%s\n", t.ID)
	fmt.Fprintf(tw, "Name:\t%s\n", t.TopicName)
	fmt.Fprintf(tw, "Category:\t%s\n", t.Category)
	if !t.CreateOn.IsZero() {
		fmt.Fprintf(tw, "Created:\t%s\n", t.CreateOn.Local().Format(quiz.DisplayTimeLayout))
	}
	return tw.Flush()
}
