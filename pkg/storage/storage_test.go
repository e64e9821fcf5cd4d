package storage

import (
	"path/filepath"
	"testing"
)

func TestSaveFile_CreatesDirectories(t *testing.T) {
	s := NewStorage(t.TempDir())
	rel := filepath.Join("ngrams", "1star_1grams.csv")

	if s.HasFile(rel) {
		t.Fatal("HasFile() = true before SaveFile")
	}
	if err := s.SaveFile(rel, []byte("ngram,frequency\n")); err != nil {
		t.Fatalf("SaveFile() error = %v", err)
	}
	if !s.HasFile(rel) {
		t.Error("HasFile() = false after SaveFile")
	}

	data, err := s.ReadFile(rel)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(data) != "ngram,frequency\n" {
		t.Errorf("ReadFile() = %q", data)
	}

	stats, err := s.GetFileStats(rel)
	if err != nil {
		t.Fatalf("GetFileStats() error = %v", err)
	}
	if stats.SizeBytes != int64(len("ngram,frequency\n")) {
		t.Errorf("SizeBytes = %d", stats.SizeBytes)
	}
}

func TestReadFile_Missing(t *testing.T) {
	s := NewStorage(t.TempDir())
	if _, err := s.ReadFile("nope.csv"); err == nil {
		t.Error("ReadFile() error = nil, want error")
	}
	if _, err := s.GetFileStats("nope.csv"); err == nil {
		t.Error("GetFileStats() error = nil, want error")
	}
}
