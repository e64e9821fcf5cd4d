package manifest

import "github.com/dtnitsch/reviewstats/pkg/report"

// FileName is written at the root of the output directory.
const FileName = "summary.yaml"

// SummaryManifest gives a lightweight overview of a run: what went in, what
// was written and the top unigrams, without reading every table.
type SummaryManifest struct {
	GeneratedAt       string         `yaml:"generated_at"`
	Source            string         `yaml:"source"`
	RunID             int64          `yaml:"run_id,omitempty"`
	TotalReviews      int            `yaml:"total_reviews"`
	DroppedLanguage   int            `yaml:"dropped_language,omitempty"`
	Ignored           int            `yaml:"ignored"`
	NgramSizes        []int          `yaml:"ngram_sizes"`
	AggregateKeywords []string       `yaml:"aggregate_keywords"`
	Classes           []ClassSummary `yaml:"classes"`
	Files             []report.File  `yaml:"files"`
}

// ClassSummary is the per-class part of the manifest.
type ClassSummary struct {
	Label       string   `yaml:"label"`
	Rating      int      `yaml:"rating"`
	ReviewCount int      `yaml:"review_count"`
	MaxLength   int      `yaml:"max_length"`
	TopKeywords []string `yaml:"top_keywords,omitempty"`
}
