package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Storage writes and reads files below a base directory.
type Storage struct {
	baseDir string
}

// FileStats holds metadata about a file without reading its contents.
type FileStats struct {
	SizeBytes int64
	ModTime   time.Time
}

func NewStorage(baseDir string) *Storage {
	return &Storage{baseDir: baseDir}
}

// Path resolves a path relative to the base directory.
func (s *Storage) Path(rel string) string {
	return filepath.Join(s.baseDir, rel)
}

// SaveFile writes content to rel, creating parent directories as needed.
func (s *Storage) SaveFile(rel string, content []byte) error {
	filePath := s.Path(rel)
	if err := os.MkdirAll(filepath.Dir(filePath), 0750); err != nil {
		return fmt.Errorf("error creating directory for %s: %w", rel, err)
	}
	if err := os.WriteFile(filePath, content, 0644); err != nil {
		return fmt.Errorf("error saving file %s: %w", rel, err)
	}

	return nil
}

func (s *Storage) ReadFile(rel string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Clean(s.Path(rel)))
	if err != nil {
		return nil, fmt.Errorf("error reading file: %w", err)
	}
	return data, nil
}

func (s *Storage) HasFile(rel string) bool {
	_, err := os.Stat(s.Path(rel))
	return err == nil
}

// GetFileStats returns metadata about a file using os.Stat (no I/O overhead).
func (s *Storage) GetFileStats(rel string) (*FileStats, error) {
	info, err := os.Stat(s.Path(rel))
	if err != nil {
		return nil, fmt.Errorf("error getting file stats: %w", err)
	}

	return &FileStats{
		SizeBytes: info.Size(),
		ModTime:   info.ModTime(),
	}, nil
}
