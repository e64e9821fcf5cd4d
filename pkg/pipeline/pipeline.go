// Package pipeline partitions reviews by rating and computes the length
// histogram and n-gram tables of each partition.
package pipeline

import (
	"errors"
	"fmt"
	"sort"

	"github.com/dtnitsch/reviewstats/models"
	"github.com/dtnitsch/reviewstats/pkg/analytics"
	"github.com/dtnitsch/reviewstats/pkg/mapreduce"
)

var ErrInvalidOptions = errors.New("invalid pipeline options")

// LanguageFilter decides which reviews enter the analysis.
type LanguageFilter interface {
	Filter(reviews []models.Review) ([]models.Review, int)
}

// Options configures a run.
type Options struct {
	Classes         []models.RatingClass
	NgramSizes      []int
	NormalizeLength bool
	Stopwords       analytics.StopwordSet
	Stem            bool
	Language        LanguageFilter // nil keeps every review
}

// OptionsFromConfig maps a config onto Options. The stopword set and
// language filter are built by the caller.
func OptionsFromConfig(cfg *models.Config, stopwords analytics.StopwordSet, lang LanguageFilter) Options {
	return Options{
		Classes:         cfg.Classes,
		NgramSizes:      cfg.Ngrams.Sizes,
		NormalizeLength: cfg.Lengths.Normalize,
		Stopwords:       stopwords,
		Stem:            cfg.Normalizer.Stem,
		Language:        lang,
	}
}

// ClassResult holds the statistics of one rating class.
type ClassResult struct {
	Class       models.RatingClass
	ReviewCount int
	Texts       []string // normalized
	Lengths     []float64
	Ngrams      map[int]map[string]int
}

// Ranked returns the n-gram table of size n ranked by frequency.
func (c *ClassResult) Ranked(n int) []mapreduce.KeyCount {
	return mapreduce.RankByFrequencyDescending(c.Ngrams[n])
}

// MaxLength is the longest review length in tokens, or 0 for an empty class.
func (c *ClassResult) MaxLength() int {
	if len(c.Lengths) == 0 {
		return 0
	}
	return len(c.Lengths) - 1
}

// Result is the outcome of a run, classes in configured order.
type Result struct {
	TotalReviews    int
	DroppedLanguage int
	Ignored         int // reviews whose rating is not a configured class
	NormalizeLength bool
	NgramSizes      []int
	Classes         []*ClassResult
}

// Aggregate merges the n-gram tables of size n across all classes.
func (r *Result) Aggregate(n int) map[string]int {
	tables := make([]map[string]int, 0, len(r.Classes))
	for _, c := range r.Classes {
		tables = append(tables, c.Ngrams[n])
	}
	return mapreduce.Reduce(tables)
}

func (o Options) validate() error {
	if len(o.Classes) == 0 {
		return fmt.Errorf("%w: no rating classes", ErrInvalidOptions)
	}
	labels := make(map[string]bool, len(o.Classes))
	for _, c := range o.Classes {
		if labels[c.Name()] {
			return fmt.Errorf("%w: duplicate class label %q", ErrInvalidOptions, c.Name())
		}
		labels[c.Name()] = true
	}
	if len(o.NgramSizes) == 0 {
		return fmt.Errorf("%w: no n-gram sizes", ErrInvalidOptions)
	}
	for _, n := range o.NgramSizes {
		if n < 1 {
			return fmt.Errorf("%w: n-gram size %d", ErrInvalidOptions, n)
		}
	}
	return nil
}

// Partition groups review texts by rating, keeping input order within a
// rating.
func Partition(reviews []models.Review) map[int][]string {
	parts := make(map[int][]string)
	for _, r := range reviews {
		parts[r.Rating] = append(parts[r.Rating], r.Text)
	}
	return parts
}

// Run computes every class's statistics. The input slice is not modified.
func Run(reviews []models.Review, opts Options) (*Result, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	result := &Result{
		TotalReviews:    len(reviews),
		NormalizeLength: opts.NormalizeLength,
		NgramSizes:      sortedSizes(opts.NgramSizes),
	}

	if opts.Language != nil {
		reviews, result.DroppedLanguage = opts.Language.Filter(reviews)
	}

	parts := Partition(reviews)
	normalizer := analytics.NewNormalizer(opts.Stopwords)

	used := 0
	seen := make(map[int]bool)
	for _, class := range opts.Classes {
		raw := parts[class.Rating]
		if !seen[class.Rating] {
			used += len(raw)
			seen[class.Rating] = true
		}

		texts := normalizer.NormalizeAll(raw)
		if opts.Stem {
			texts = analytics.StemAll(texts)
		}

		cr := &ClassResult{
			Class:       class,
			ReviewCount: len(raw),
			Texts:       texts,
			Lengths:     analytics.BuildLengthHistogram(texts, opts.NormalizeLength),
			Ngrams:      make(map[int]map[string]int, len(result.NgramSizes)),
		}
		for _, n := range result.NgramSizes {
			cr.Ngrams[n] = mapreduce.CountNgrams(texts, n)
		}
		result.Classes = append(result.Classes, cr)
	}
	result.Ignored = len(reviews) - used

	return result, nil
}

func sortedSizes(sizes []int) []int {
	out := make([]int, 0, len(sizes))
	seen := make(map[int]bool, len(sizes))
	for _, n := range sizes {
		if !seen[n] {
			out = append(out, n)
			seen[n] = true
		}
	}
	sort.Ints(out)
	return out
}
