package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/darianrosebrook/portfolio-sub007/internal/cli"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	err := cli.Execute(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		var exit *cli.ExitError
		if !errors.As(err, &exit) || !exit.Silent() {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
	}
	os.Exit(cli.ExitCode(err))
}
