// Command quizadmin is the quiz game administration console.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/quizgame/quizadmin/internal/cli"
	"github.com/quizgame/quizadmin/pkg/version"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return cli.NewRootCmd(version.GetVersion()).ExecuteContext(ctx)
}
