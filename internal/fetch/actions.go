package fetch

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/reviewstats/internal/common"
	"github.com/dtnitsch/reviewstats/models"
	"github.com/dtnitsch/reviewstats/pkg/caching"
	"github.com/dtnitsch/reviewstats/pkg/fetcher"
	"github.com/dtnitsch/reviewstats/pkg/source"
	"github.com/dtnitsch/reviewstats/pkg/storage"
)

// FetchAction downloads a review page, extracts its reviews and writes them
// as a UTF-8 table that analyze can read with --encoding utf-8.
func FetchAction(c *cli.Context) error {
	logger := common.NewLogger(c)

	cfg, err := common.LoadConfig(c)
	if err != nil {
		return err
	}
	ApplyFlags(c, cfg)
	if cfg.Fetch.URL == "" {
		return errors.New("no URL to fetch: pass --url or set fetch.url in the config")
	}
	sep, err := cfg.SeparatorRune()
	if err != nil {
		return err
	}

	var opts []fetcher.Option
	if !c.Bool("no-cache") {
		cache, err := caching.NewPageCache(cfg.Fetch.CacheDir, cfg.Fetch.MaxAge)
		if err != nil {
			return err
		}
		if c.Bool("force-fetch") {
			if err := cache.Remove(cfg.Fetch.URL); err != nil {
				return err
			}
		}
		opts = append(opts, fetcher.WithCache(cache))
	}
	f := fetcher.NewFetcher(cfg.Fetch.Timeout, opts...)

	logger.Info("Fetching review page", "url", cfg.Fetch.URL)
	doc, page, err := f.GetHtml(c.Context, cfg.Fetch.URL)
	if err != nil {
		return fmt.Errorf("failed to fetch %s: %w", cfg.Fetch.URL, err)
	}
	logger.Info("Fetched review page", "bytes", len(page.Body), "from_cache", page.FromCache)

	reviews, err := source.ParseHTML(doc, source.SelectorsFromConfig(cfg))
	if err != nil {
		return err
	}
	if len(reviews) == 0 {
		logger.Warn("No reviews matched the selectors", "review_selector", cfg.Fetch.ReviewSelector)
	}

	tableOpts := source.TableOptions{
		Encoding:     "utf-8",
		Separator:    sep,
		RatingColumn: cfg.Input.RatingColumn,
		TextColumn:   cfg.Input.TextColumn,
	}
	var buf bytes.Buffer
	if err := source.WriteTable(&buf, reviews, tableOpts); err != nil {
		return fmt.Errorf("failed to render review table: %w", err)
	}
	s := storage.NewStorage(filepath.Dir(cfg.Fetch.Out))
	if err := s.SaveFile(filepath.Base(cfg.Fetch.Out), buf.Bytes()); err != nil {
		return err
	}
	logger.Info("Review table written", "path", cfg.Fetch.Out, "reviews", len(reviews))

	if c.Bool("quiet") {
		return nil
	}

	fmt.Printf("Saved %d reviews to %s\n", len(reviews), cfg.Fetch.Out)
	for _, rc := range countByRating(reviews) {
		fmt.Printf("  %s: %d\n", models.ClassLabel(rc.rating), rc.count)
	}
	fmt.Printf("\nTip: Use 'reviewstats analyze --input %s --encoding utf-8' to analyze them\n", cfg.Fetch.Out)
	return nil
}

type ratingCount struct {
	rating int
	count  int
}

func countByRating(reviews []models.Review) []ratingCount {
	counts := make(map[int]int)
	for _, r := range reviews {
		counts[r.Rating]++
	}
	out := make([]ratingCount, 0, len(counts))
	for rating, count := range counts {
		out = append(out, ratingCount{rating: rating, count: count})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].rating < out[j].rating })
	return out
}

// ApplyFlags overrides the fetch section of the config with flags the user set.
func ApplyFlags(c *cli.Context, cfg *models.Config) {
	if c.IsSet("url") {
		cfg.Fetch.URL = c.String("url")
	}
	if c.IsSet("out") {
		cfg.Fetch.Out = c.String("out")
	}
	if c.IsSet("cache-dir") {
		cfg.Fetch.CacheDir = c.String("cache-dir")
	}
	if c.IsSet("max-age") {
		cfg.Fetch.MaxAge = c.Duration("max-age")
	}
	if c.IsSet("timeout") {
		cfg.Fetch.Timeout = c.Duration("timeout")
	}
	if c.IsSet("separator") {
		cfg.Input.Separator = c.String("separator")
	}
	if c.IsSet("review-selector") {
		cfg.Fetch.ReviewSelector = c.String("review-selector")
	}
	if c.IsSet("rating-selector") {
		cfg.Fetch.RatingSelector = c.String("rating-selector")
	}
	if c.IsSet("rating-attr") {
		cfg.Fetch.RatingAttr = c.String("rating-attr")
	}
	if c.IsSet("text-selector") {
		cfg.Fetch.TextSelector = c.String("text-selector")
	}
}
