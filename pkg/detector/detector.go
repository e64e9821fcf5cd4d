// Package detector screens review text by language.
package detector

import (
	"github.com/pemistahl/lingua-go"

	"github.com/dtnitsch/reviewstats/models"
)

// candidates are the languages app-store reviews most often arrive in.
// Restricting the detector keeps its models small and its answers stable
// for short texts.
var candidates = []lingua.Language{
	lingua.English,
	lingua.Spanish,
	lingua.Portuguese,
	lingua.French,
	lingua.German,
	lingua.Italian,
}

// EnglishFilter drops reviews that are confidently not English.
type EnglishFilter struct {
	detector lingua.LanguageDetector
}

// NewEnglishFilter builds a detector over the candidate languages.
func NewEnglishFilter() *EnglishFilter {
	d := lingua.NewLanguageDetectorBuilder().
		FromLanguages(candidates...).
		WithMinimumRelativeDistance(0.1).
		Build()
	return &EnglishFilter{detector: d}
}

// IsEnglish reports whether text should be kept. Text the detector cannot
// decide on, such as "ok" or an empty review, is kept.
func (f *EnglishFilter) IsEnglish(text string) bool {
	lang, reliable := f.detector.DetectLanguageOf(text)
	if !reliable {
		return true
	}
	return lang == lingua.English
}

// Filter returns the reviews that pass IsEnglish and the number dropped.
func (f *EnglishFilter) Filter(reviews []models.Review) ([]models.Review, int) {
	kept := make([]models.Review, 0, len(reviews))
	for _, r := range reviews {
		if f.IsEnglish(r.Text) {
			kept = append(kept, r)
		}
	}
	return kept, len(reviews) - len(kept)
}
