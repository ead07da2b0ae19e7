package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/trebuchet-org/tokendeploy/internal/cli"
	"github.com/trebuchet-org/tokendeploy/internal/cli/render"
	"github.com/trebuchet-org/tokendeploy/internal/config"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	config.SetBuildFlags(version, commit, date)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rootCmd := cli.NewRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, render.FormatError(err))
		stop()
		os.Exit(1)
	}
}
