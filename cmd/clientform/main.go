package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/fatih/color"

	"github.com/goliatone/go-clientform/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	root := cli.NewRootCmd(&cli.Env{})
	if err := root.ExecuteContext(ctx); err != nil {
		stop()
		color.New(color.FgRed).Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
