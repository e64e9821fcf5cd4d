package mapreduce

import (
	"fmt"
	"io"
	"sort"

	"github.com/fatih/color"
)

// KeyCount is one ranked entry.
type KeyCount struct {
	Key   string
	Count int
}

// RankByFrequencyDescending orders the table by count, highest first.
// Equal counts are ordered by key so output is reproducible.
func RankByFrequencyDescending(table map[string]int) []KeyCount {
	ranked := make([]KeyCount, 0, len(table))
	for k, v := range table {
		ranked = append(ranked, KeyCount{Key: k, Count: v})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Key < ranked[j].Key
	})

	return ranked
}

// TopKeywords returns the top n entries of a table as "key:count" strings
// (e.g. "great app:42").
func TopKeywords(table map[string]int, n int) []string {
	ranked := RankByFrequencyDescending(table)

	limit := n
	if len(ranked) < n {
		limit = len(ranked)
	}
	if limit < 0 {
		limit = 0
	}

	keywords := make([]string, limit)
	for i := 0; i < limit; i++ {
		keywords[i] = fmt.Sprintf("%s:%d", ranked[i].Key, ranked[i].Count)
	}

	return keywords
}

var (
	titleColor = color.New(color.FgCyan, color.Bold)
	keyColor   = color.New(color.FgGreen)
	countColor = color.New(color.FgYellow)
)

// PrintTopKeywords writes a numbered list of the first n ranked entries.
func PrintTopKeywords(w io.Writer, title string, ranked []KeyCount, n int) {
	titleColor.Fprintf(w, "--- %s ---\n", title)

	limit := n
	if len(ranked) < n {
		limit = len(ranked)
	}
	if limit <= 0 {
		fmt.Fprintln(w, "(none)")
		return
	}

	for i := 0; i < limit; i++ {
		fmt.Fprintf(w, "%d. %s: %s\n", i+1, keyColor.Sprint(ranked[i].Key), countColor.Sprint(ranked[i].Count))
	}
}
