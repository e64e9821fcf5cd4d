package analytics

import (
	"strings"

	"github.com/kljensen/snowball/english"
)

// StemText runs the Snowball English stemmer over each space-separated token
// of an already normalized text. Spacing is preserved so token counts do not
// change.
func StemText(text string) string {
	tokens := strings.Split(text, " ")
	for i, tok := range tokens {
		if tok == "" {
			continue
		}
		tokens[i] = english.Stem(tok, false)
	}
	return strings.Join(tokens, " ")
}

// StemAll stems every text into a new slice.
func StemAll(texts []string) []string {
	out := make([]string, len(texts))
	for i, t := range texts {
		out[i] = StemText(t)
	}
	return out
}
