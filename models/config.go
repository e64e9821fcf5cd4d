// Package models defines the review records and run configuration.
package models

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// DefaultConfigPath is read by the CLI when --config is not given.
// A missing file at this path is not an error.
const DefaultConfigPath = "reviewstats.yaml"

// Config holds everything a run needs. Values come from an optional YAML
// file layered over DefaultConfig, then CLI flags.
type Config struct {
	Input      InputConfig      `yaml:"input"`
	Output     OutputConfig     `yaml:"output"`
	Classes    []RatingClass    `yaml:"classes"`
	Ngrams     NgramConfig      `yaml:"ngrams"`
	Lengths    LengthsConfig    `yaml:"lengths"`
	Normalizer NormalizerConfig `yaml:"normalizer"`
	Language   LanguageConfig   `yaml:"language"`
	DB         DBConfig         `yaml:"db"`
	Metrics    MetricsConfig    `yaml:"metrics"`
	Fetch      FetchConfig      `yaml:"fetch"`
}

// InputConfig describes the review table.
type InputConfig struct {
	Path         string `yaml:"path"`
	Encoding     string `yaml:"encoding"` // utf-16 or utf-8
	Separator    string `yaml:"separator"`
	RatingColumn string `yaml:"ratingColumn"`
	TextColumn   string `yaml:"textColumn"`
}

// OutputConfig controls where tables go and how much is echoed to the console.
type OutputConfig struct {
	Dir string `yaml:"dir"`
	Top int    `yaml:"top"`
}

// NgramConfig lists the n-gram sizes to count.
type NgramConfig struct {
	Sizes []int `yaml:"sizes"`
}

// LengthsConfig controls the length histogram.
type LengthsConfig struct {
	Normalize bool `yaml:"normalize"`
}

// NormalizerConfig selects the stopword list and optional stemming.
// An empty Stopwords path means the built-in English list.
type NormalizerConfig struct {
	Stopwords string `yaml:"stopwords"`
	Stem      bool   `yaml:"stem"`
}

// LanguageConfig enables dropping reviews detected as non-English.
type LanguageConfig struct {
	EnglishOnly bool `yaml:"englishOnly"`
}

// DBConfig controls the run history database.
type DBConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// MetricsConfig names the Prometheus textfile to write; empty disables it.
type MetricsConfig struct {
	File string `yaml:"file"`
}

// FetchConfig drives the fetch command.
type FetchConfig struct {
	URL      string        `yaml:"url"`
	Out      string        `yaml:"out"`
	CacheDir string        `yaml:"cacheDir"`
	MaxAge   time.Duration `yaml:"maxAge"`
	Timeout  time.Duration `yaml:"timeout"`

	ReviewSelector string `yaml:"reviewSelector"`
	RatingSelector string `yaml:"ratingSelector"`
	RatingAttr     string `yaml:"ratingAttr"`
	TextSelector   string `yaml:"textSelector"`
}

// DefaultConfig reproduces the original analysis: data/reviews.csv in
// UTF-16 with '|' separators, 1 and 5 star classes, 1- to 3-grams, and
// normalized length histograms under output/.
func DefaultConfig() *Config {
	return &Config{
		Input: InputConfig{
			Path:         filepath.Join("data", "reviews.csv"),
			Encoding:     "utf-16",
			Separator:    "|",
			RatingColumn: "Stars",
			TextColumn:   "Comment",
		},
		Output: OutputConfig{
			Dir: "output",
			Top: 10,
		},
		Classes: []RatingClass{
			{Rating: 1, Label: "1star"},
			{Rating: 5, Label: "5star"},
		},
		Ngrams:  NgramConfig{Sizes: []int{1, 2, 3}},
		Lengths: LengthsConfig{Normalize: true},
		DB: DBConfig{
			Enabled: true,
			Path:    filepath.Join("output", "reviewstats.db"),
		},
		Fetch: FetchConfig{
			Out:            filepath.Join("data", "reviews.csv"),
			CacheDir:       filepath.Join(".cache", "pages"),
			MaxAge:         24 * time.Hour,
			Timeout:        30 * time.Second,
			ReviewSelector: "div.RHo1pe",
			RatingSelector: "div[role=img]",
			RatingAttr:     "aria-label",
			TextSelector:   "div.h3YV2d",
		},
	}
}

// LoadConfig reads a YAML file over DefaultConfig. The returned error wraps
// os.ErrNotExist when the file is missing.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadConfigOrDefault is LoadConfig, except that a missing file yields
// DefaultConfig.
func LoadConfigOrDefault(path string) (*Config, error) {
	cfg, err := LoadConfig(path)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}
	return cfg, err
}

// SeparatorRune returns the single-character input separator.
func (c *Config) SeparatorRune() (rune, error) {
	if utf8.RuneCountInString(c.Input.Separator) != 1 {
		return 0, fmt.Errorf("separator must be a single character, got %q", c.Input.Separator)
	}
	r, _ := utf8.DecodeRuneInString(c.Input.Separator)
	return r, nil
}

// Validate checks the values a run depends on.
func (c *Config) Validate() error {
	if c.Input.Path == "" {
		return errors.New("input path is required")
	}
	switch c.Input.Encoding {
	case "utf-16", "utf-8":
	default:
		return fmt.Errorf("unsupported encoding %q (use utf-16 or utf-8)", c.Input.Encoding)
	}
	if _, err := c.SeparatorRune(); err != nil {
		return err
	}
	if c.Input.RatingColumn == "" || c.Input.TextColumn == "" {
		return errors.New("rating and text column names are required")
	}
	if c.Output.Dir == "" {
		return errors.New("output dir is required")
	}
	if len(c.Classes) == 0 {
		return errors.New("at least one rating class is required")
	}
	seen := make(map[string]bool, len(c.Classes))
	for _, class := range c.Classes {
		if class.Rating < MinRating || class.Rating > MaxRating {
			return fmt.Errorf("class rating %d out of range %d-%d", class.Rating, MinRating, MaxRating)
		}
		if seen[class.Name()] {
			return fmt.Errorf("duplicate class label %q", class.Name())
		}
		seen[class.Name()] = true
	}
	if len(c.Ngrams.Sizes) == 0 {
		return errors.New("at least one n-gram size is required")
	}
	for _, n := range c.Ngrams.Sizes {
		if n < 1 {
			return fmt.Errorf("n-gram size must be at least 1, got %d", n)
		}
	}
	if c.DB.Enabled && c.DB.Path == "" {
		return errors.New("db path is required when the database is enabled")
	}
	return nil
}
