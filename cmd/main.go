package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newCommand(os.Stdout).Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "aiready: "+err.Error())
		stop()
		os.Exit(1)
	}
}

// newCommand builds the command tree writing command output to w.
func newCommand(w io.Writer) *cli.Command {
	return &cli.Command{
		Name:    "aiready",
		Writer:  w,
		Usage:   "Score an organization's repositories on AI-readiness conventions",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to YAML config file",
				Sources: cli.EnvVars("AIREADY_CONFIG"),
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Override log level: debug, info, warn, error",
			},
			&cli.StringFlag{
				Name:  "log-format",
				Usage: "Override log format: text or json",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "fetch",
				Usage:  "Fetch signals from GitHub, score every repository and persist the snapshot",
				Action: runFetch,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "org", Usage: "Organization to score (overrides org_name)"},
					&cli.IntFlag{Name: "min-stars", Usage: "Stop enumeration below this star count", Value: -1},
				},
			},
			{
				Name:   "serve",
				Usage:  "Serve the persisted snapshot over HTTP",
				Action: runServe,
			},
			{
				Name:   "leaderboard",
				Usage:  "Print the leaderboard",
				Action: runLeaderboard,
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "limit", Aliases: []string{"n"}, Usage: "Rows per page", Value: 25},
					&cli.IntFlag{Name: "page", Usage: "1-based page", Value: 1},
					&cli.StringFlag{Name: "search", Aliases: []string{"q"}, Usage: "Match name or description"},
					&cli.StringFlag{Name: "level", Usage: "Only this level"},
					&cli.StringFlag{Name: "language", Usage: "Only this primary language"},
					&cli.StringFlag{Name: "sort", Usage: "skillCount, stars, name or level", Value: "skillCount"},
				},
			},
			{
				Name:      "show",
				Usage:     "Print the skill tree of one repository",
				ArgsUsage: "<slug>",
				Action:    runShow,
			},
			{
				Name:   "stats",
				Usage:  "Print organization-wide statistics",
				Action: runStats,
			},
			{
				Name:   "history",
				Usage:  "List persisted runs (sqlite driver only)",
				Action: runHistory,
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "limit", Aliases: []string{"n"}, Usage: "Number of runs", Value: 10},
				},
			},
			{
				Name:   "mcp",
				Usage:  "Serve the persisted snapshot as MCP tools over stdio",
				Action: runMCP,
			},
		},
	}
}
