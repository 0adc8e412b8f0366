package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/robalyx/modlog/internal/clock"
	"github.com/robalyx/modlog/internal/engine"
	"github.com/robalyx/modlog/internal/setup"
	"github.com/robalyx/modlog/internal/tui"
	"github.com/robalyx/modlog/internal/types"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

const (
	// SearchCommand lists records of every kind matching a player name.
	SearchCommand = "search"

	// StatusCommand prints the live server summary.
	StatusCommand = "status"

	// DashboardCommand starts the interactive terminal dashboard.
	DashboardCommand = "dashboard"
)

func main() {
	if err := run(); err != nil {
		log.Printf("Error: %v", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := &cli.Command{
		Name:    "modlog",
		Usage:   "Browse the public moderation log of a game server",
		Version: setup.Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to the config file",
			},
			&cli.StringFlag{
				Name:  "api-url",
				Usage: "API base URL, overrides the configured one",
			},
			&cli.StringFlag{
				Name:  "page-url",
				Usage: "Page location used to pick the development API",
			},
			&cli.StringFlag{
				Name:  "lang",
				Usage: "Display language (en, uz)",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level (debug, info, warn, error)",
			},
		},
		Commands: []*cli.Command{
			kindCommand(types.KindBan, "List bans"),
			kindCommand(types.KindMute, "List mutes"),
			kindCommand(types.KindKick, "List kicks"),
			{
				Name:  SearchCommand,
				Usage: "Search every record kind by player name",
				Flags: listFlags(),
				Action: func(ctx context.Context, c *cli.Command) error {
					return withApp(ctx, c, func(app *setup.App) error {
						search, err := app.Engine.LoadAll(ctx)
						if err != nil {
							return fmt.Errorf("%s", app.Labels.Error(err))
						}

						now := time.Now()
						results := make(map[types.Kind][]engine.Entry, len(types.Kinds()))
						for _, kind := range types.Kinds() {
							results[kind] = search.Entries(kind, c.String("query"), now)
						}

						if c.Bool("json") {
							return printJSON(os.Stdout, results)
						}
						printSearch(os.Stdout, results, app.Labels, terminalWidth)
						return nil
					})
				},
			},
			{
				Name:  StatusCommand,
				Usage: "Show the live server summary",
				Flags: []cli.Flag{jsonFlag()},
				Action: func(ctx context.Context, c *cli.Command) error {
					return withApp(ctx, c, func(app *setup.App) error {
						status, err := app.Engine.Status(ctx)
						if err != nil {
							return fmt.Errorf("%s", app.Labels.Error(err))
						}

						if c.Bool("json") {
							return printJSON(os.Stdout, status)
						}
						printStatus(os.Stdout, &status, app.Labels)
						return nil
					})
				},
			},
			{
				Name:  DashboardCommand,
				Usage: "Start the interactive dashboard",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "tab",
						Aliases: []string{"t"},
						Value:   "bans",
						Usage:   "Initial tab (bans, mutes, kicks, search, status)",
					},
					&cli.StringFlag{
						Name:    "query",
						Aliases: []string{"q"},
						Usage:   "Initial search query",
					},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					tab, err := parseTab(c.String("tab"))
					if err != nil {
						return err
					}

					return withApp(ctx, c, func(app *setup.App) error {
						manager := tui.NewManager(
							app.Engine, app.Labels, clock.Real{}, app.Config.Dashboard.Interval(),
							app.LogManager.GetSessionLogger("dashboard"),
						)

						// Quit through the program on a shutdown signal so the terminal is restored
						stopOnSignal := context.AfterFunc(ctx, manager.Stop)
						defer stopOnSignal()

						app.Logger.Info("Starting dashboard", zap.Int("tab", int(tab)))
						return manager.Run(ctx, tui.Options{Tab: tab, Query: c.String("query")})
					})
				},
			},
		},
	}

	return app.Run(ctx, os.Args)
}

// parseTab maps a tab name to its dashboard tab.
func parseTab(name string) (tui.Tab, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case SearchCommand:
		return tui.TabSearch, nil
	case StatusCommand:
		return tui.TabStatus, nil
	}

	kind, err := types.ParseKind(name)
	if err != nil {
		return 0, err
	}
	return tui.TabForKind(kind), nil
}

// kindCommand builds the listing command for one record kind.
func kindCommand(kind types.Kind, usage string) *cli.Command {
	return &cli.Command{
		Name:  kind.Collection(),
		Usage: usage,
		Flags: listFlags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			return withApp(ctx, c, func(app *setup.App) error {
				collection, err := app.Engine.Load(ctx, kind)
				if err != nil {
					return fmt.Errorf("%s", app.Labels.Error(err))
				}

				entries := collection.Entries(c.String("query"), time.Now())
				if c.Bool("json") {
					return printJSON(os.Stdout, entries)
				}
				printEntries(os.Stdout, entries, app.Labels, terminalWidth)
				return nil
			})
		},
	}
}

func listFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "query",
			Aliases: []string{"q"},
			Usage:   "Only show records matching the query",
		},
		jsonFlag(),
	}
}

func jsonFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:  "json",
		Usage: "Print JSON instead of text",
	}
}

// withApp initializes the application from the root flags and cleans it up
// after fn returns.
func withApp(ctx context.Context, c *cli.Command, fn func(app *setup.App) error) error {
	app, err := setup.InitializeApp(ctx, setup.Overrides{
		ConfigPath: c.String("config"),
		APIURL:     c.String("api-url"),
		PageURL:    c.String("page-url"),
		Language:   c.String("lang"),
		LogLevel:   c.String("log-level"),
	})
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	defer app.Cleanup(context.WithoutCancel(ctx))

	return fn(app)
}
