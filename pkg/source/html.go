package source

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/dtnitsch/reviewstats/models"
)

// Selectors locate reviews in a saved review page. Rating is searched inside
// each Review node and RatingAttr is read from it; the first integer in the
// attribute is the star rating ("Rated 4 stars out of five stars").
// An empty Rating selector reads the attribute from the Review node itself.
type Selectors struct {
	Review     string
	Rating     string
	RatingAttr string
	Text       string
}

// SelectorsFromConfig builds selectors from the fetch section of a config.
func SelectorsFromConfig(cfg *models.Config) Selectors {
	return Selectors{
		Review:     cfg.Fetch.ReviewSelector,
		Rating:     cfg.Fetch.RatingSelector,
		RatingAttr: cfg.Fetch.RatingAttr,
		Text:       cfg.Fetch.TextSelector,
	}
}

var firstInt = regexp.MustCompile(`\d+`)

// ReadHTML parses an HTML document and extracts its reviews.
func ReadHTML(r io.Reader, sel Selectors) ([]models.Review, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return ParseHTML(doc, sel)
}

// ParseHTML extracts reviews from a parsed document. Review nodes without a
// rating from 1 to 5 are skipped.
func ParseHTML(doc *goquery.Document, sel Selectors) ([]models.Review, error) {
	if sel.Review == "" || sel.RatingAttr == "" || sel.Text == "" {
		return nil, fmt.Errorf("review, rating attribute and text selectors are required")
	}

	reviews := []models.Review{}
	doc.Find(sel.Review).Each(func(i int, s *goquery.Selection) {
		ratingNode := s
		if sel.Rating != "" {
			ratingNode = s.Find(sel.Rating).First()
		}
		label, ok := ratingNode.Attr(sel.RatingAttr)
		if !ok {
			return
		}
		rating, err := strconv.Atoi(firstInt.FindString(label))
		if err != nil || rating < models.MinRating || rating > models.MaxRating {
			return
		}

		text := strings.TrimSpace(s.Find(sel.Text).First().Text())
		reviews = append(reviews, models.Review{Rating: rating, Text: text})
	})

	return reviews, nil
}
