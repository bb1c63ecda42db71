// Package main provides the entry point for the application with CLI commands.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/reybeld94/terminal-api/cmd/app/commands"
)

var version = "1.0.0"

func main() {
	cmd := &cli.Command{
		Name:    "terminal-api",
		Usage:   "Shop-floor terminal clock-in/clock-out API",
		Version: version,
		Commands: []*cli.Command{
			{
				Name:  "server",
				Usage: "Start the HTTP server",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunServer(ctx, version)
				},
			},
			{
				Name:  "issue-token",
				Usage: "Issue a bearer token for a terminal or operator",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "subject",
						Aliases:  []string{"s"},
						Usage:    "Token subject (terminal or operator identifier)",
						Required: true,
					},
					&cli.DurationFlag{
						Name:    "ttl",
						Aliases: []string{"t"},
						Usage:   "Token lifetime (0 uses the configured default)",
						Value:   0,
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunIssueToken(
						cmd.String("subject"),
						cmd.Duration("ttl"),
					)
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
		logger.Error("command failed", slog.Any("error", err))
		os.Exit(1)
	}
}
