package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/reviewstats/internal/analyze"
	"github.com/dtnitsch/reviewstats/internal/fetch"
	"github.com/dtnitsch/reviewstats/internal/runs"
	"github.com/dtnitsch/reviewstats/models"
	"github.com/dtnitsch/reviewstats/pkg/help"
)

func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "YAML config file (default: " + models.DefaultConfigPath + " if present)",
		},
		&cli.BoolFlag{
			Name:    "quiet",
			Aliases: []string{"q"},
			Usage:   "Only log errors and skip the console summary",
		},
	}
}

func main() {
	app := &cli.App{
		Name:  "reviewstats",
		Usage: "Review length and n-gram statistics per star rating",
		Commands: []*cli.Command{
			{
				Name:   "analyze",
				Usage:  "Normalize reviews and write length histograms and n-gram tables",
				Action: analyze.AnalyzeAction,
				Flags: append(commonFlags(),
					&cli.StringFlag{Name: "input", Aliases: []string{"i"}, Usage: "Review table to read"},
					&cli.StringFlag{Name: "output-dir", Aliases: []string{"o"}, Usage: "Directory for the output tables"},
					&cli.StringFlag{Name: "encoding", Usage: "Input encoding: utf-16 or utf-8"},
					&cli.StringFlag{Name: "separator", Usage: "Input field separator"},
					&cli.StringFlag{Name: "stopwords", Usage: "Stopword file, one word per line (default: built-in English list)"},
					&cli.BoolFlag{Name: "stem", Usage: "Stem tokens with the Snowball English stemmer"},
					&cli.BoolFlag{Name: "english-only", Usage: "Drop reviews detected as another language"},
					&cli.BoolFlag{Name: "raw-lengths", Usage: "Write raw length counts instead of normalized frequencies"},
					&cli.IntFlag{Name: "top", Usage: "N-grams to print per class"},
					&cli.StringFlag{Name: "db", Usage: "Run history database path"},
					&cli.BoolFlag{Name: "no-db", Usage: "Do not record the run"},
					&cli.StringFlag{Name: "metrics-file", Usage: "Write a Prometheus textfile to this path"},
				),
			},
			{
				Name:   "fetch",
				Usage:  "Download a review page and save its reviews as a table",
				Action: fetch.FetchAction,
				Flags: append(commonFlags(),
					&cli.StringFlag{Name: "url", Aliases: []string{"u"}, Usage: "Review page URL"},
					&cli.StringFlag{Name: "out", Usage: "Table to write"},
					&cli.StringFlag{Name: "separator", Usage: "Output field separator"},
					&cli.StringFlag{Name: "cache-dir", Usage: "Page cache directory"},
					&cli.DurationFlag{Name: "max-age", Value: 24 * time.Hour, Usage: "Reuse a cached page younger than this"},
					&cli.DurationFlag{Name: "timeout", Value: 30 * time.Second, Usage: "HTTP timeout"},
					&cli.BoolFlag{Name: "force-fetch", Usage: "Ignore the cached page"},
					&cli.BoolFlag{Name: "no-cache", Usage: "Neither read nor write the page cache"},
					&cli.StringFlag{Name: "review-selector", Usage: "CSS selector of one review"},
					&cli.StringFlag{Name: "rating-selector", Usage: "CSS selector of the rating inside a review"},
					&cli.StringFlag{Name: "rating-attr", Usage: "Attribute holding the star rating"},
					&cli.StringFlag{Name: "text-selector", Usage: "CSS selector of the review text"},
				),
			},
			{
				Name:   "runs",
				Usage:  "List recorded analyze runs",
				Action: runs.RunsAction,
				Flags: append(commonFlags(),
					&cli.IntFlag{Name: "limit", Value: 20, Usage: "Runs to list (0 for all)"},
					&cli.StringFlag{Name: "db", Usage: "Run history database path"},
				),
			},
			{
				Name:      "run",
				Usage:     "Show a recorded run (default: latest)",
				ArgsUsage: "[run_id]",
				Action:    runs.RunAction,
				Flags: append(commonFlags(),
					&cli.StringFlag{Name: "class", Usage: "Only show this rating class"},
					&cli.IntFlag{Name: "n", Value: 1, Usage: "N-gram size to show"},
					&cli.IntFlag{Name: "limit", Value: 25, Usage: "N-grams to show per class (0 for all)"},
					&cli.BoolFlag{Name: "lengths", Usage: "Also print the length histogram"},
					&cli.StringFlag{Name: "db", Usage: "Run history database path"},
				),
			},
			{
				Name:  "coldstart",
				Usage: "Print a quick start guide",
				Action: func(c *cli.Context) error {
					fmt.Print(help.ColdstartYAML)
					return nil
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		slog.New(slog.NewJSONHandler(os.Stderr, nil)).Error("command failed", "error", err)
		os.Exit(1)
	}
}
