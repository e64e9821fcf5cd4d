package analytics

import (
	"bufio"
	_ "embed"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

//go:embed stopwords_english.txt
var englishStopwords string

// StopwordSet is an immutable set of lowercase words removed during normalization.
type StopwordSet struct {
	words map[string]struct{}
}

// NewStopwordSet builds a set from the given words. Words are lowercased and
// surrounding whitespace is dropped; empty entries are ignored.
func NewStopwordSet(words []string) StopwordSet {
	set := StopwordSet{words: make(map[string]struct{}, len(words))}
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		set.words[w] = struct{}{}
	}
	return set
}

// DefaultStopwords returns the NLTK English stopword list.
func DefaultStopwords() StopwordSet {
	set, err := ReadStopwords(strings.NewReader(englishStopwords))
	if err != nil {
		// The embedded list is read from memory and cannot fail.
		panic(err)
	}
	return set
}

// ReadStopwords reads one word per line. Blank lines and lines starting
// with '#' are skipped.
func ReadStopwords(r io.Reader) (StopwordSet, error) {
	var words []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, line)
	}
	if err := scanner.Err(); err != nil {
		return StopwordSet{}, fmt.Errorf("failed to read stopwords: %w", err)
	}
	return NewStopwordSet(words), nil
}

// LoadStopwords reads a stopword file from disk.
func LoadStopwords(path string) (StopwordSet, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return StopwordSet{}, fmt.Errorf("failed to open stopword file: %w", err)
	}
	defer f.Close()

	return ReadStopwords(f)
}

// Contains reports whether word is a stopword. The lookup is case-sensitive;
// callers pass lowercased text.
func (s StopwordSet) Contains(word string) bool {
	_, ok := s.words[word]
	return ok
}

// Len returns the number of stopwords.
func (s StopwordSet) Len() int {
	return len(s.words)
}

// Words returns the stopwords in sorted order.
func (s StopwordSet) Words() []string {
	words := make([]string, 0, len(s.words))
	for w := range s.words {
		words = append(words, w)
	}
	sort.Strings(words)
	return words
}
