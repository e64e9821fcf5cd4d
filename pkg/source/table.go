// Package source loads review records from delimited tables and HTML pages.
package source

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/dtnitsch/reviewstats/models"
)

var (
	ErrMissingColumn       = errors.New("missing column")
	ErrInvalidRating       = errors.New("invalid rating")
	ErrUnsupportedEncoding = errors.New("unsupported encoding")
)

// TableOptions describes the layout of a review table.
type TableOptions struct {
	Encoding     string // "utf-16" or "utf-8"
	Separator    rune
	RatingColumn string
	TextColumn   string
}

// DefaultTableOptions matches the scraper output: UTF-16, '|' separated,
// header "Stars|Comment".
func DefaultTableOptions() TableOptions {
	return TableOptions{
		Encoding:     "utf-16",
		Separator:    '|',
		RatingColumn: "Stars",
		TextColumn:   "Comment",
	}
}

// TableOptionsFromConfig builds options from the input section of a config.
func TableOptionsFromConfig(cfg *models.Config) (TableOptions, error) {
	sep, err := cfg.SeparatorRune()
	if err != nil {
		return TableOptions{}, err
	}
	return TableOptions{
		Encoding:     cfg.Input.Encoding,
		Separator:    sep,
		RatingColumn: cfg.Input.RatingColumn,
		TextColumn:   cfg.Input.TextColumn,
	}, nil
}

// decoderFor returns the decoder for a named encoding. UTF-16 honors a byte
// order mark and assumes little endian without one; UTF-8 strips a BOM.
func decoderFor(name string) (*encoding.Decoder, error) {
	switch strings.ToLower(name) {
	case "utf-16", "utf16":
		return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder(), nil
	case "utf-8", "utf8", "":
		return unicode.UTF8BOM.NewDecoder(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedEncoding, name)
	}
}

// ReadFile loads reviews from a table on disk.
func ReadFile(path string, opts TableOptions) ([]models.Review, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open review table: %w", err)
	}
	defer f.Close()

	reviews, err := ReadTable(f, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return reviews, nil
}

// ReadTable decodes and parses a delimited review table with a header row.
// Every rating must be an integer from 1 to 5; empty text cells are kept as
// empty reviews. A table with only a header yields no reviews.
func ReadTable(r io.Reader, opts TableOptions) ([]models.Review, error) {
	dec, err := decoderFor(opts.Encoding)
	if err != nil {
		return nil, err
	}

	cr := csv.NewReader(transform.NewReader(r, dec))
	cr.Comma = opts.Separator
	cr.LazyQuotes = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse review table: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: empty table has no header", ErrMissingColumn)
	}

	header := records[0]
	for _, col := range []string{opts.RatingColumn, opts.TextColumn} {
		if !containsString(header, col) {
			return nil, fmt.Errorf("%w: %q (header is %q)", ErrMissingColumn, col, header)
		}
	}
	if len(records) == 1 {
		return []models.Review{}, nil
	}

	// Every cell stays a string: no type detection and no NaN markers, so a
	// review reading "NA" keeps its text.
	df := dataframe.LoadRecords(records,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.NaNValues([]string{}),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("failed to load review table: %w", df.Err)
	}

	ratings := df.Col(opts.RatingColumn).Records()
	texts := df.Col(opts.TextColumn).Records()

	reviews := make([]models.Review, len(ratings))
	for i, raw := range ratings {
		rating, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil || rating < models.MinRating || rating > models.MaxRating {
			// Record numbers count the header as record 1.
			return nil, fmt.Errorf("record %d: %w %q", i+2, ErrInvalidRating, raw)
		}
		reviews[i] = models.Review{Rating: rating, Text: texts[i]}
	}
	return reviews, nil
}

// WriteTable writes reviews as a UTF-8 table with a "Stars|Comment" style
// header using the given separator.
func WriteTable(w io.Writer, reviews []models.Review, opts TableOptions) error {
	cw := csv.NewWriter(w)
	cw.Comma = opts.Separator
	if err := cw.Write([]string{opts.RatingColumn, opts.TextColumn}); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, rev := range reviews {
		if err := cw.Write([]string{strconv.Itoa(rev.Rating), rev.Text}); err != nil {
			return fmt.Errorf("failed to write review: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
