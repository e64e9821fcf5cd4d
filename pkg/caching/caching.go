// Package caching keeps downloaded review pages on disk so repeated fetches
// of the same listing inside the max age skip the network.
package caching

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const pageExt = ".html"

// PageCache stores page bodies keyed by URL. A zero maxAge disables expiry.
type PageCache struct {
	dir    string
	maxAge time.Duration
	now    func() time.Time
}

// NewPageCache creates the cache directory if needed.
func NewPageCache(dir string, maxAge time.Duration) (*PageCache, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	return &PageCache{dir: dir, maxAge: maxAge, now: time.Now}, nil
}

// Path returns the file a URL is cached in.
func (c *PageCache) Path(url string) string {
	return filepath.Join(c.dir, fmt.Sprintf("%x%s", sha256.Sum256([]byte(url)), pageExt))
}

// Get returns the cached page for url and its age. Missing, expired and
// unreadable entries are misses.
func (c *PageCache) Get(url string) ([]byte, time.Duration, bool) {
	path := c.Path(url)

	info, err := os.Stat(path)
	if err != nil {
		return nil, 0, false
	}
	age := c.now().Sub(info.ModTime())
	if c.maxAge > 0 && age > c.maxAge {
		return nil, age, false
	}

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, 0, false
	}
	return data, age, true
}

// Set stores a page, replacing any previous entry.
func (c *PageCache) Set(url string, page []byte) error {
	if err := os.WriteFile(c.Path(url), page, 0600); err != nil {
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	return nil
}

// Remove drops the entry for url. Removing a missing entry is not an error.
func (c *PageCache) Remove(url string) error {
	if err := os.Remove(c.Path(url)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove cache entry: %w", err)
	}
	return nil
}
