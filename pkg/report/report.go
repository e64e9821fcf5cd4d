// Package report renders length histograms and ranked n-gram tables as
// ordered rows and writes them as CSV.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dtnitsch/reviewstats/pkg/mapreduce"
)

const (
	LengthsDir = "review_lengths"
	NgramsDir  = "ngrams"
)

var (
	LengthHeader = []string{"length", "frequency"}
	NgramHeader  = []string{"ngram", "frequency"}
)

// Row is one key/value line of an output table.
type Row struct {
	Key   string
	Value string
}

// LengthRows renders one row per histogram index. Normalized values are
// written as decimals, raw counts as integers.
func LengthRows(hist []float64, normalized bool) []Row {
	rows := make([]Row, len(hist))
	for i, v := range hist {
		value := strconv.FormatInt(int64(v), 10)
		if normalized {
			value = FormatFrequency(v)
		}
		rows[i] = Row{Key: strconv.Itoa(i), Value: value}
	}
	return rows
}

// NgramRows renders ranked n-grams in rank order.
func NgramRows(ranked []mapreduce.KeyCount) []Row {
	rows := make([]Row, len(ranked))
	for i, kc := range ranked {
		rows[i] = Row{Key: kc.Key, Value: strconv.Itoa(kc.Count)}
	}
	return rows
}

// FormatFrequency writes v with the fewest digits that round-trip and always
// keeps a fractional part or exponent: 1 -> "1.0", 0.5 -> "0.5",
// 0.00005 -> "5e-05".
func FormatFrequency(v float64) string {
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eIN") {
		s += ".0"
	}
	return s
}

// WriteCSV writes the header followed by rows.
func WriteCSV(w io.Writer, header []string, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, r := range rows {
		if err := cw.Write([]string{r.Key, r.Value}); err != nil {
			return fmt.Errorf("failed to write row %q: %w", r.Key, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	return nil
}

// LengthsPath is the output path of a class's length histogram, relative to
// the output directory.
func LengthsPath(label string, normalized bool) string {
	name := label + "_lengths.csv"
	if normalized {
		name = label + "_lengths_norm.csv"
	}
	return filepath.Join(LengthsDir, name)
}

// NgramsPath is the output path of a class's n-gram table, relative to the
// output directory.
func NgramsPath(label string, n int) string {
	return filepath.Join(NgramsDir, fmt.Sprintf("%s_%dgrams.csv", label, n))
}
