package analytics

import "strings"

// TokenCount returns the number of tokens produced by splitting text on
// single spaces. Empty tokens count, so "" has one token and " app" has two.
func TokenCount(text string) int {
	return strings.Count(text, " ") + 1
}

// BuildLengthHistogram returns a slice where index i holds the number of
// texts with i tokens. The slice has one entry per length from 0 up to the
// longest text; lengths nobody had are zero. When normalize is set, every
// entry is divided by the largest bin so values fall in [0,1].
//
// Empty input yields an empty histogram.
func BuildLengthHistogram(texts []string, normalize bool) []float64 {
	if len(texts) == 0 {
		return []float64{}
	}

	lengths := make(map[int]int)
	longest := 0
	highestFreq := 0
	for _, text := range texts {
		length := TokenCount(text)
		lengths[length]++
		if length > longest {
			longest = length
		}
		if lengths[length] > highestFreq {
			highestFreq = lengths[length]
		}
	}

	hist := make([]float64, longest+1)
	for length, count := range lengths {
		hist[length] = float64(count)
	}

	if normalize {
		for i := range hist {
			hist[i] /= float64(highestFreq)
		}
	}
	return hist
}
