package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quizgame/quizadmin/internal/api"
	"github.com/quizgame/quizadmin/internal/quiz"
	"github.com/quizgame/quizadmin/internal/source"
)

func newSubtopicCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "subtopic", Short: "Quiz subtopic commands"}
	cmd.AddCommand(
		newSubtopicListCmd(), newSubtopicCreateCmd(),
		newSubtopicUpdateCmd(), newSubtopicDeleteCmd(),
	)
	return cmd
}

func newSubtopicListCmd() *cobra.Command {
	var topicID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Search, sort and page through the subtopics of a topic",
		Example: `  quizadmin subtopic list --topic 64b7f0c2e4 --sort time:desc`,
		Args: cobra.NoArgs,
	}

	lc := newListCommand(cmd, quiz.SubtopicScreen())
	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		d, err := newDeps()
		if err != nil {
			return err
		}

		src := d.subtopicSource(topicID)
		topic, subs, err := source.TopicWithSubtopics(cmd.Context(), d.client, src, topicID)
		if err != nil {
			return fmt.Errorf("fetching topic %s: %w", topicID, err)
		}
		return lc.run(cmd, src, quiz.TopicTitle(topic), func() ([]quiz.Subtopic, error) {
			return subs, nil
		})
	}
	cmd.Flags().StringVar(&topicID, "topic", "", "id of the topic whose subtopics to list (required)")
	_ = cmd.MarkFlagRequired("topic")
	return cmd
}

func newSubtopicCreateCmd() *cobra.Command {
	var (
		in     quiz.SubtopicInput
		output string
	)

	cmd := &cobra.Command{
		Use:     "create",
		Short:   "Create a subtopic under a topic",
		Example: `  quizadmin subtopic create --topic 64b7f0c2e4 --name Planets --time 10`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(in.SubtopicName) == "" {
				return errors.New("--name is required")
			}
			if in.Time < 0 {
				return fmt.Errorf("--time must be >= 0, got %d", in.Time)
			}
			d, err := newDeps()
			if err != nil {
				return err
			}
			sub, err := d.client.CreateSubtopic(cmd.Context(), in)
			if err != nil {
				return fmt.Errorf("creating subtopic: %w", err)
			}
			d.invalidate(quiz.ScreenSubtopic, in.TopicID)
			return reportSubtopic(cmd, output, "Created", sub)
		},
	}
	cmd.Flags().StringVar(&in.TopicID, "topic", "", "id of the parent topic (required)")
	cmd.Flags().StringVar(&in.SubtopicName, "name", "", "subtopic name (required)")
	cmd.Flags().IntVar(&in.Time, "time", 0, "time limit in minutes")
	cmd.Flags().StringVarP(&output, "output", "o", formatTable, "output format: table or json")
	_ = cmd.MarkFlagRequired("topic")
	return cmd
}

func newSubtopicUpdateCmd() *cobra.Command {
	var (
		in     quiz.SubtopicInput
		output string
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Rename a subtopic or change its time limit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			nameSet, timeSet := cmd.Flags().Changed("name"), cmd.Flags().Changed("time")
			if !nameSet && !timeSet {
				return ErrNothingToUpdate
			}
			if timeSet && in.Time < 0 {
				return fmt.Errorf("--time must be >= 0, got %d", in.Time)
			}
			d, err := newDeps()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			siblings, err := d.client.ListSubtopics(ctx, in.TopicID)
			if err != nil {
				return fmt.Errorf("listing subtopics of topic %s: %w", in.TopicID, err)
			}
			current, ok := findSubtopic(siblings, args[0])
			if !ok {
				return fmt.Errorf("subtopic %s in topic %s: %w", args[0], in.TopicID, api.ErrNotFound)
			}
			if !nameSet {
				in.SubtopicName = current.SubtopicName
			}
			if !timeSet {
				in.Time = current.Time
			}

			sub, err := d.client.UpdateSubtopic(ctx, args[0], in)
			if err != nil {
				return fmt.Errorf("updating subtopic %s: %w", args[0], err)
			}
			d.invalidate(quiz.ScreenSubtopic, in.TopicID)
			return reportSubtopic(cmd, output, "Updated", sub)
		},
	}
	cmd.Flags().StringVar(&in.TopicID, "topic", "", "id of the parent topic (required)")
	cmd.Flags().StringVar(&in.SubtopicName, "name", "", "new subtopic name")
	cmd.Flags().IntVar(&in.Time, "time", 0, "new time limit in minutes")
	cmd.Flags().StringVarP(&output, "output", "o", formatTable, "output format: table or json")
	_ = cmd.MarkFlagRequired("topic")
	return cmd
}

func newSubtopicDeleteCmd() *cobra.Command {
	var (
		topicID string
		flags   *deleteFlags
	)

	cmd := &cobra.Command{
		Use:   "delete <id>...",
		Short: "Delete one or more subtopics",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := newDeps()
			if err != nil {
				return err
			}
			err = deleteMany(cmd, "subtopic", args, flags, d.client.DeleteSubtopic)
			if topicID != "" {
				d.invalidate(quiz.ScreenSubtopic, topicID)
			} else {
				d.invalidateScreen(quiz.ScreenSubtopic)
			}
			if err != nil {
				return fmt.Errorf("deleting subtopics: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&topicID, "topic", "", "id of the parent topic; without it every cached subtopic list is dropped")
	flags = addDeleteFlags(cmd)
	return cmd
}

func findSubtopic(subs []quiz.Subtopic, id string) (quiz.Subtopic, bool) {
	for _, s := range subs {
		if s.ID == id {
			return s, true
		}
	}
	return quiz.Subtopic{}, false
}

func reportSubtopic(cmd *cobra.Command, output, verb string, s quiz.Subtopic) error {
	if output == formatJSON {
		return writeJSON(cmd.OutOrStdout(), s)
	}
	cmd.Printf("%s subtopic %q (%s), %d min\n", verb, s.SubtopicName, s.ID, s.Time)
	return nil
}
