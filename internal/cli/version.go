package cli

import (
	"github.com/spf13/cobra"

	"github.com/quizgame/quizadmin/pkg/version"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("%s %s\n", version.Name, version.GetVersion())
			cmd.Printf("commit: %s\n", version.GetGitCommit())
			cmd.Printf("built:  %s\n", version.GetBuildDate())
		},
	}
}
