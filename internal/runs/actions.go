package runs

import (
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/reviewstats/internal/common"
	dbpkg "github.com/dtnitsch/reviewstats/pkg/db"
	"github.com/dtnitsch/reviewstats/pkg/mapreduce"
	"github.com/dtnitsch/reviewstats/pkg/report"
)

// RunsAction lists recorded analyze runs, newest first.
func RunsAction(c *cli.Context) error {
	database, err := openDB(c)
	if err != nil {
		return err
	}
	defer database.Close()

	runs, err := database.ListRuns(c.Int("limit"))
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("No runs found")
		return nil
	}

	fmt.Printf("%-6s %-20s %-8s %-8s %-8s %-8s %-30s\n",
		"ID", "Created", "Reviews", "Ignored", "Dropped", "N", "Source")
	fmt.Println(strings.Repeat("-", 100))

	for _, r := range runs {
		fmt.Printf("%-6d %-20s %-8d %-8d %-8d %-8s %-30s\n",
			r.RunID,
			r.CreatedAt.Format("2006-01-02 15:04:05"),
			r.TotalReviews,
			r.Ignored,
			r.DroppedLanguage,
			formatSizes(r.NgramSizes),
			r.Source,
		)
	}

	fmt.Printf("\nTotal: %d runs\n", len(runs))
	fmt.Printf("\nTip: Use 'reviewstats run <id>' to see details\n")

	return nil
}

// RunAction shows one run: its classes, length histogram and top n-grams.
// Without an argument the latest run is shown.
func RunAction(c *cli.Context) error {
	database, err := openDB(c)
	if err != nil {
		return err
	}
	defer database.Close()

	runID, err := GetRunIDOrLatest(c, database)
	if err != nil {
		return err
	}

	run, err := database.GetRunByID(runID)
	if err != nil {
		return err
	}
	classes, err := database.GetRunClasses(runID)
	if err != nil {
		return err
	}

	fmt.Printf("Run %d (%s)\n", run.RunID, run.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("  Source:     %s\n", run.Source)
	fmt.Printf("  Output dir: %s\n", run.OutputDir)
	fmt.Printf("  Reviews:    %d (%d ignored, %d dropped as non-English)\n",
		run.TotalReviews, run.Ignored, run.DroppedLanguage)
	fmt.Printf("  N-grams:    %s\n", formatSizes(run.NgramSizes))

	n := c.Int("n")
	limit := c.Int("limit")
	only := c.String("class")

	for _, class := range classes {
		if only != "" && class.Label != only {
			continue
		}

		fmt.Printf("\n%s: %d reviews, longest %d tokens\n", class.Label, class.ReviewCount, class.MaxLength)

		if c.Bool("lengths") {
			bins, err := database.LengthBins(runID, class.Label)
			if err != nil {
				return err
			}
			for _, row := range report.LengthRows(bins, run.NormalizedLengths) {
				fmt.Printf("  %4s  %s\n", row.Key, row.Value)
			}
		}

		rows, err := database.TopNgrams(runID, class.Label, n, limit)
		if err != nil {
			return err
		}
		ranked := make([]mapreduce.KeyCount, len(rows))
		for i, r := range rows {
			ranked[i] = mapreduce.KeyCount{Key: r.Ngram, Count: r.Frequency}
		}
		mapreduce.PrintTopKeywords(os.Stdout, fmt.Sprintf("%s %d-grams", class.Label, n), ranked, len(ranked))
	}

	return nil
}

func openDB(c *cli.Context) (*dbpkg.DB, error) {
	cfg, err := common.LoadConfig(c)
	if err != nil {
		return nil, err
	}
	path := cfg.DB.Path
	if c.IsSet("db") {
		path = c.String("db")
	}

	database, err := dbpkg.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return database, nil
}
