package main

import (
	"context"
	"os"

	"github.com/desertthunder/evloca/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)
	runner := NewRunner(RunnerOpts{Logger: logger})

	if err := newApp(runner).Run(context.Background(), os.Args); err != nil {
		logger.Fatalf("application error: %v", err)
	}
}

func newApp(runner *Runner) *cli.Command {
	return &cli.Command{
		Name:     "evloca",
		Usage:    "Browse and manage events, places and tickets from the terminal",
		Version:  "0.3.0",
		Flags:    globalFlags(),
		Before:   runner.Bootstrap,
		After:    runner.Close,
		Commands: runner.register(),
	}
}

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to configuration file",
			Value:   "config.toml",
			Sources: cli.EnvVars("EVLOCA_CONFIG"),
		},
		&cli.BoolFlag{
			Name:  "verbose",
			Usage: "Enable debug logging",
		},
		&cli.BoolFlag{
			Name:  "ephemeral",
			Usage: "Keep the session in memory instead of the local database",
		},
		&cli.StringFlag{
			Name:  "format",
			Usage: "Output format: text, json or yaml",
			Value: "text",
		},
	}
}
