package report

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/dtnitsch/reviewstats/pkg/mapreduce"
)

func TestFormatFrequency(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{1, "1.0"},
		{0, "0.0"},
		{0.5, "0.5"},
		{0.25, "0.25"},
		{1.0 / 3.0, "0.3333333333333333"},
		{0.0001, "0.0001"},
		{0.00005, "5e-05"},
	}

	for _, tt := range tests {
		if got := FormatFrequency(tt.in); got != tt.want {
			t.Errorf("FormatFrequency(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLengthRows(t *testing.T) {
	rows := LengthRows([]float64{0, 0.5, 1, 0.5}, true)

	want := []Row{{"0", "0.0"}, {"1", "0.5"}, {"2", "1.0"}, {"3", "0.5"}}
	if len(rows) != len(want) {
		t.Fatalf("LengthRows() returned %d rows, want %d", len(rows), len(want))
	}
	for i := range want {
		if rows[i] != want[i] {
			t.Errorf("rows[%d] = %v, want %v", i, rows[i], want[i])
		}
	}

	raw := LengthRows([]float64{0, 3, 7}, false)
	if raw[2].Value != "7" {
		t.Errorf("raw rows[2].Value = %q, want %q", raw[2].Value, "7")
	}
}

func TestWriteCSV_Ngrams(t *testing.T) {
	ranked := mapreduce.RankByFrequencyDescending(map[string]int{"great app": 3, "app love": 1, "bad": 3})

	var buf bytes.Buffer
	if err := WriteCSV(&buf, NgramHeader, NgramRows(ranked)); err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}

	want := "ngram,frequency\nbad,3\ngreat app,3\napp love,1\n"
	if buf.String() != want {
		t.Errorf("WriteCSV() = %q, want %q", buf.String(), want)
	}
}

func TestWriteCSV_HeaderOnly(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, LengthHeader, LengthRows(nil, true)); err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}
	if buf.String() != "length,frequency\n" {
		t.Errorf("WriteCSV() = %q, want header only", buf.String())
	}
}

func TestPaths(t *testing.T) {
	if got, want := LengthsPath("1star", true), filepath.Join("review_lengths", "1star_lengths_norm.csv"); got != want {
		t.Errorf("LengthsPath() = %q, want %q", got, want)
	}
	if got, want := LengthsPath("5star", false), filepath.Join("review_lengths", "5star_lengths.csv"); got != want {
		t.Errorf("LengthsPath() = %q, want %q", got, want)
	}
	if got, want := NgramsPath("5star", 2), filepath.Join("ngrams", "5star_2grams.csv"); got != want {
		t.Errorf("NgramsPath() = %q, want %q", got, want)
	}
}
