package analyze

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/reviewstats/internal/common"
	"github.com/dtnitsch/reviewstats/models"
	"github.com/dtnitsch/reviewstats/pkg/mapreduce"
)

func AnalyzeAction(c *cli.Context) error {
	logger := common.NewLogger(c)

	cfg, err := common.LoadConfig(c)
	if err != nil {
		return err
	}
	ApplyFlags(c, cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger.Info("Analyzing reviews", "input", cfg.Input.Path, "output_dir", cfg.Output.Dir,
		"classes", len(cfg.Classes), "ngram_sizes", cfg.Ngrams.Sizes)

	outcome, err := Run(logger, cfg)
	if err != nil {
		return err
	}

	if c.Bool("quiet") {
		return nil
	}

	fmt.Printf("Analyzed %d reviews (%d ignored, %d dropped as non-English)\n",
		outcome.Result.TotalReviews, outcome.Result.Ignored, outcome.Result.DroppedLanguage)
	fmt.Printf("Wrote %d tables under %s\n", len(outcome.Files), cfg.Output.Dir)
	if outcome.ManifestPath != "" {
		fmt.Printf("Summary manifest saved to: %s\n", outcome.ManifestPath)
	}

	n := outcome.Result.NgramSizes[0]
	for _, class := range outcome.Result.Classes {
		fmt.Println()
		title := fmt.Sprintf("%s %d-grams", class.Class.Name(), n)
		mapreduce.PrintTopKeywords(os.Stdout, title, class.Ranked(n), cfg.Output.Top)
	}

	if outcome.RunID > 0 {
		fmt.Printf("\nTip: Use 'reviewstats run %d' to see this run again\n", outcome.RunID)
	}
	return nil
}

// ApplyFlags overrides config values with flags the user set.
func ApplyFlags(c *cli.Context, cfg *models.Config) {
	if c.IsSet("input") {
		cfg.Input.Path = c.String("input")
	}
	if c.IsSet("encoding") {
		cfg.Input.Encoding = c.String("encoding")
	}
	if c.IsSet("separator") {
		cfg.Input.Separator = c.String("separator")
	}
	if c.IsSet("output-dir") {
		cfg.Output.Dir = c.String("output-dir")
	}
	if c.IsSet("top") {
		cfg.Output.Top = c.Int("top")
	}
	if c.IsSet("stopwords") {
		cfg.Normalizer.Stopwords = c.String("stopwords")
	}
	if c.IsSet("stem") {
		cfg.Normalizer.Stem = c.Bool("stem")
	}
	if c.IsSet("english-only") {
		cfg.Language.EnglishOnly = c.Bool("english-only")
	}
	if c.IsSet("raw-lengths") {
		cfg.Lengths.Normalize = !c.Bool("raw-lengths")
	}
	if c.IsSet("db") {
		cfg.DB.Path = c.String("db")
	}
	if c.Bool("no-db") {
		cfg.DB.Enabled = false
	}
	if c.IsSet("metrics-file") {
		cfg.Metrics.File = c.String("metrics-file")
	}
}
