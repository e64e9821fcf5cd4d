package report

import (
	"bytes"
	"fmt"

	"github.com/dtnitsch/reviewstats/pkg/pipeline"
	"github.com/dtnitsch/reviewstats/pkg/storage"
)

// File describes one written table.
type File struct {
	Class string `yaml:"class"`
	Kind  string `yaml:"kind"` // "lengths" or "ngrams"
	N     int    `yaml:"n,omitempty"`
	Path  string `yaml:"path"`
	Rows  int    `yaml:"rows"`
}

// WriteResult writes the length histogram and every n-gram table of every
// class. Paths in the returned Files are relative to the storage base.
func WriteResult(s *storage.Storage, result *pipeline.Result) ([]File, error) {
	var files []File
	for _, c := range result.Classes {
		label := c.Class.Name()

		rows := LengthRows(c.Lengths, result.NormalizeLength)
		path := LengthsPath(label, result.NormalizeLength)
		if err := writeTable(s, path, LengthHeader, rows); err != nil {
			return files, err
		}
		files = append(files, File{Class: label, Kind: "lengths", Path: path, Rows: len(rows)})

		for _, n := range result.NgramSizes {
			rows := NgramRows(c.Ranked(n))
			path := NgramsPath(label, n)
			if err := writeTable(s, path, NgramHeader, rows); err != nil {
				return files, err
			}
			files = append(files, File{Class: label, Kind: "ngrams", N: n, Path: path, Rows: len(rows)})
		}
	}
	return files, nil
}

func writeTable(s *storage.Storage, path string, header []string, rows []Row) error {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, header, rows); err != nil {
		return fmt.Errorf("failed to render %s: %w", path, err)
	}
	if err := s.SaveFile(path, buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
