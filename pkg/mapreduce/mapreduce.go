package mapreduce

import (
	"fmt"
	"strings"
)

// DroppedTrailingWindows is how many windows at the end of each text are not
// counted. Windows start at 0 through len(words)-n-DroppedTrailingWindows,
// so with the value 1 the last n-gram of every text is skipped. Set it to 0
// to count every window.
const DroppedTrailingWindows = 1

// Tokens splits a normalized text on single spaces and drops empty tokens.
func Tokens(text string) []string {
	parts := strings.Split(text, " ")
	words := parts[:0]
	for _, p := range parts {
		if p != "" {
			words = append(words, p)
		}
	}
	return words
}

// Map counts the n-grams of a single normalized text.
func Map(text string, n int) map[string]int {
	counts := make(map[string]int)
	addNgrams(counts, text, n)
	return counts
}

// CountNgrams counts n-gram occurrences across texts. Texts with fewer than n
// tokens contribute nothing. n must be at least 1.
func CountNgrams(texts []string, n int) map[string]int {
	ngrams := make(map[string]int)
	for _, text := range texts {
		addNgrams(ngrams, text, n)
	}
	return ngrams
}

func addNgrams(counts map[string]int, text string, n int) {
	if n < 1 {
		panic(fmt.Sprintf("mapreduce: n-gram size must be at least 1, got %d", n))
	}
	words := Tokens(text)
	if len(words) < n {
		return
	}
	for i := 0; i+n+DroppedTrailingWindows <= len(words); i++ {
		counts[strings.Join(words[i:i+n], " ")]++
	}
}

// Reduce aggregates a slice of frequency maps into a single map.
func Reduce(intermediate []map[string]int) map[string]int {
	finalResults := make(map[string]int)

	for _, counts := range intermediate {
		for key, count := range counts {
			finalResults[key] += count
		}
	}

	return finalResults
}
