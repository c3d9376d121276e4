// Package main is the entry point for hypersearch, an interactive command-line
// search tool that ranks web results by site popularity and lists local files
// whose names match the query.
package main

import (
	"fmt"
	"os"

	"github.com/f4ah6o/hypersearch-go/internal/config"
	"github.com/f4ah6o/hypersearch-go/internal/fetcher"
	"github.com/f4ah6o/hypersearch-go/internal/persist"
	"github.com/f4ah6o/hypersearch-go/internal/popularity"
	"github.com/f4ah6o/hypersearch-go/internal/render"
	"github.com/f4ah6o/hypersearch-go/internal/search"
	"github.com/f4ah6o/hypersearch-go/internal/session"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		logrus.WithError(err).Error("hypersearch failed")
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "hypersearch",
		Usage: "Search the web and local files from the terminal",
		Description: `Starts an interactive prompt. Each query prints a short description,
the web results ranked by site popularity, and local files whose names
match the query. Type 'save' to write the last web results to a file
and 'exit' to quit.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a TOML or YAML config file (default: ./" + config.DefaultFile + " if present)",
			},
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
			},
			&cli.StringFlag{
				Name:  "root",
				Usage: "Directory scanned for matching local files",
			},
			&cli.IntFlag{
				Name:    "max-results",
				Aliases: []string{"n"},
				Usage:   "Number of web results per query",
			},
			&cli.StringFlag{
				Name:  "save-dir",
				Usage: "Directory where saved results are written",
			},
			&cli.BoolFlag{
				Name:  "no-color",
				Usage: "Disable colored output",
			},
			&cli.BoolFlag{
				Name:  "no-animation",
				Usage: "Disable the loading animation",
			},
			&cli.BoolFlag{
				Name:  "list-popular",
				Usage: "Print the site popularity table and exit",
			},
		},
		Action: run,
	}
}

// loadConfig reads the config file and environment, then applies flags.
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.Load(config.LoadOptions{Path: c.String("config")})
	if err != nil {
		return nil, err
	}

	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	if c.IsSet("root") {
		cfg.Root = c.String("root")
	}
	if c.IsSet("max-results") {
		cfg.MaxResults = c.Int("max-results")
	}
	if c.IsSet("save-dir") {
		cfg.SaveDir = c.String("save-dir")
	}
	if c.Bool("no-color") {
		cfg.Color = false
	}
	if c.Bool("no-animation") {
		cfg.Animation = false
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setupLogger(level string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	logrus.SetOutput(os.Stderr)
	logrus.SetLevel(lvl)
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	return nil
}

func run(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	if err := setupLogger(cfg.LogLevel); err != nil {
		return err
	}

	table := popularity.New(cfg.Popularity)
	ui := render.New(c.App.Writer, render.Options{
		Color:     cfg.Color,
		Animation: cfg.Animation,
	})

	if c.Bool("list-popular") {
		ui.Popular(table.Entries())
		return nil
	}

	client := fetcher.New(fetcher.Options{
		Endpoint:  cfg.Search.Endpoint,
		Selector:  cfg.Search.Selector,
		UserAgent: cfg.Search.UserAgent,
		Timeout:   cfg.Search.Timeout,
	})
	ranker := search.NewRanker(client, table)
	scanner := search.NewScanner(search.ScannerOptions{
		MaxResults: cfg.LocalMaxResults,
		SkipDirs:   cfg.SkipDirs,
	})

	logrus.WithFields(logrus.Fields{
		"endpoint": cfg.Search.Endpoint,
		"root":     cfg.Root,
		"save_dir": cfg.SaveDir,
	}).Debug("Starting session")

	loop := session.New(c.App.Reader, ui, ranker, scanner, persist.New(cfg.SaveDir), session.Options{
		MaxResults: cfg.MaxResults,
		Root:       cfg.Root,
	})
	return loop.Run(c.Context)
}
