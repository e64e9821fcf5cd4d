package analytics

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Punctuation lists the characters deleted from review text. They are removed
// outright, not replaced with a space, so "don't" becomes "dont".
const Punctuation = ".,!?:;'\"-_+=@()*"

// Normalizer cleans review text before counting.
type Normalizer struct {
	stopwords StopwordSet
}

// NewNormalizer returns a Normalizer that removes the given stopwords.
func NewNormalizer(stopwords StopwordSet) *Normalizer {
	return &Normalizer{stopwords: stopwords}
}

// Normalize strips punctuation, lowercases, removes whole-word stopwords and
// collapses whitespace, in that order. Stopwords are deleted without
// inserting a space, and leading or trailing whitespace collapses to a single
// space rather than being trimmed. The result for empty or all-stopword input
// is "" or " ".
func (n *Normalizer) Normalize(text string) string {
	text = stripPunctuation(text)
	text = strings.ToLower(text)
	text = n.removeStopwords(text)
	return collapseWhitespace(text)
}

// NormalizeAll returns a new slice holding the normalized form of each text.
func (n *Normalizer) NormalizeAll(texts []string) []string {
	out := make([]string, len(texts))
	for i, t := range texts {
		out[i] = n.Normalize(t)
	}
	return out
}

func stripPunctuation(text string) string {
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(Punctuation, r) {
			return -1
		}
		return r
	}, text)
}

// isWordRune matches the characters that make up a word for stopword
// matching: letters, digits and underscore.
func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

// removeStopwords deletes every maximal word that is in the stopword set.
// Everything between words is copied through untouched.
func (n *Normalizer) removeStopwords(text string) string {
	if n.stopwords.Len() == 0 {
		return text
	}

	var b strings.Builder
	b.Grow(len(text))
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		if !isWordRune(r) {
			b.WriteString(text[i : i+size])
			i += size
			continue
		}

		j := i + size
		for j < len(text) {
			r, size = utf8.DecodeRuneInString(text[j:])
			if !isWordRune(r) {
				break
			}
			j += size
		}
		if word := text[i:j]; !n.stopwords.Contains(word) {
			b.WriteString(word)
		}
		i = j
	}
	return b.String()
}

func collapseWhitespace(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	inSpace := false
	for _, r := range text {
		if unicode.IsSpace(r) {
			if !inSpace {
				b.WriteByte(' ')
			}
			inSpace = true
			continue
		}
		inSpace = false
		b.WriteRune(r)
	}
	return b.String()
}
