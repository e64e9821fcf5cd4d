package models

import "fmt"

const (
	MinRating = 1
	MaxRating = 5
)

// Review is a single rated review as acquired from a source. It is never
// modified after loading; normalization produces new strings.
type Review struct {
	Rating int    `yaml:"rating" json:"rating"`
	Text   string `yaml:"text" json:"text"`
}

// RatingClass selects the reviews with one star rating. Label names the
// class in output files, e.g. "1star".
type RatingClass struct {
	Rating int    `yaml:"rating"`
	Label  string `yaml:"label,omitempty"`
}

// ClassLabel returns the default label for a rating.
func ClassLabel(rating int) string {
	return fmt.Sprintf("%dstar", rating)
}

// Name returns the label, falling back to the default for the rating.
func (c RatingClass) Name() string {
	if c.Label != "" {
		return c.Label
	}
	return ClassLabel(c.Rating)
}
