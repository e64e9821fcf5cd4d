package pipeline

import (
	"errors"
	"reflect"
	"testing"

	"github.com/dtnitsch/reviewstats/models"
	"github.com/dtnitsch/reviewstats/pkg/analytics"
)

func defaultOptions() Options {
	return OptionsFromConfig(models.DefaultConfig(), analytics.DefaultStopwords(), nil)
}

func sampleReviews() []models.Review {
	return []models.Review{
		{Rating: 5, Text: "Great app, love it!"},
		{Rating: 1, Text: "Crashes every time I open it."},
		{Rating: 5, Text: "Great app"},
		{Rating: 3, Text: "It's okay"},
		{Rating: 1, Text: "Terrible support. Terrible app."},
	}
}

func TestRun(t *testing.T) {
	reviews := sampleReviews()
	before := append([]models.Review(nil), reviews...)

	result, err := Run(reviews, defaultOptions())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if !reflect.DeepEqual(reviews, before) {
		t.Error("Run() modified its input")
	}
	if result.TotalReviews != 5 || result.Ignored != 1 {
		t.Errorf("TotalReviews = %d, Ignored = %d, want 5 and 1", result.TotalReviews, result.Ignored)
	}
	if len(result.Classes) != 2 {
		t.Fatalf("len(Classes) = %d, want 2", len(result.Classes))
	}

	one, five := result.Classes[0], result.Classes[1]
	if one.Class.Name() != "1star" || five.Class.Name() != "5star" {
		t.Errorf("classes = %q, %q", one.Class.Name(), five.Class.Name())
	}

	// "great app love " and "great app"
	wantTexts := []string{"great app love ", "great app"}
	if !reflect.DeepEqual(five.Texts, wantTexts) {
		t.Errorf("5star texts = %q, want %q", five.Texts, wantTexts)
	}
	// "it" is already gone, so "love" is the dropped final window.
	if want := map[string]int{"great": 2, "app": 1}; !reflect.DeepEqual(five.Ngrams[1], want) {
		t.Errorf("5star unigrams = %v, want %v", five.Ngrams[1], want)
	}
	// Lengths are 4 and 2, one review each.
	if want := []float64{0, 0, 1, 0, 1}; !reflect.DeepEqual(five.Lengths, want) {
		t.Errorf("5star lengths = %v, want %v", five.Lengths, want)
	}
	if five.MaxLength() != 4 {
		t.Errorf("5star MaxLength() = %d, want 4", five.MaxLength())
	}

	// "crashes every time open " and "terrible support terrible app"
	if want := map[string]int{"crashes": 1, "every": 1, "time": 1, "terrible": 2, "support": 1}; !reflect.DeepEqual(one.Ngrams[1], want) {
		t.Errorf("1star unigrams = %v, want %v", one.Ngrams[1], want)
	}
	ranked := one.Ranked(1)
	if ranked[0].Key != "terrible" || ranked[0].Count != 2 {
		t.Errorf("1star top unigram = %v, want terrible:2", ranked[0])
	}

	agg := result.Aggregate(1)
	if agg["great"] != 2 || agg["terrible"] != 2 {
		t.Errorf("Aggregate(1) = %v", agg)
	}
}

func TestRun_EmptyPartition(t *testing.T) {
	result, err := Run([]models.Review{{Rating: 5, Text: "fine"}}, defaultOptions())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	one := result.Classes[0]
	if one.ReviewCount != 0 || len(one.Lengths) != 0 {
		t.Errorf("1star = %+v, want empty", one)
	}
	for _, n := range []int{1, 2, 3} {
		if len(one.Ngrams[n]) != 0 {
			t.Errorf("1star %d-grams = %v, want empty", n, one.Ngrams[n])
		}
	}
	if one.MaxLength() != 0 {
		t.Errorf("MaxLength() = %d, want 0", one.MaxLength())
	}
}

func TestRun_Stem(t *testing.T) {
	opts := defaultOptions()
	opts.Stem = true

	result, err := Run([]models.Review{{Rating: 1, Text: "Crashes, crashing, crashed and more"}}, opts)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got := result.Classes[0].Ngrams[1]["crash"]; got != 2 {
		t.Errorf("stemmed count of crash = %d, want 2 (last window dropped)", got)
	}
}

type dropAll struct{}

func (dropAll) Filter(reviews []models.Review) ([]models.Review, int) {
	return nil, len(reviews)
}

func TestRun_LanguageFilter(t *testing.T) {
	opts := defaultOptions()
	opts.Language = dropAll{}

	result, err := Run(sampleReviews(), opts)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if result.DroppedLanguage != 5 || result.Ignored != 0 {
		t.Errorf("DroppedLanguage = %d, Ignored = %d, want 5 and 0", result.DroppedLanguage, result.Ignored)
	}
	for _, c := range result.Classes {
		if c.ReviewCount != 0 {
			t.Errorf("%s ReviewCount = %d, want 0", c.Class.Name(), c.ReviewCount)
		}
	}
}

func TestRun_NgramSizesSortedAndDeduplicated(t *testing.T) {
	opts := defaultOptions()
	opts.NgramSizes = []int{3, 1, 3}

	result, err := Run(sampleReviews(), opts)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !reflect.DeepEqual(result.NgramSizes, []int{1, 3}) {
		t.Errorf("NgramSizes = %v, want [1 3]", result.NgramSizes)
	}
}

func TestRun_InvalidOptions(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Options)
	}{
		{"no classes", func(o *Options) { o.Classes = nil }},
		{"no sizes", func(o *Options) { o.NgramSizes = nil }},
		{"zero size", func(o *Options) { o.NgramSizes = []int{0} }},
		{"duplicate label", func(o *Options) {
			o.Classes = []models.RatingClass{{Rating: 1}, {Rating: 2, Label: "1star"}}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := defaultOptions()
			tt.mutate(&opts)
			if _, err := Run(sampleReviews(), opts); !errors.Is(err, ErrInvalidOptions) {
				t.Errorf("Run() error = %v, want ErrInvalidOptions", err)
			}
		})
	}
}

func TestPartition(t *testing.T) {
	parts := Partition(sampleReviews())

	if want := []string{"Crashes every time I open it.", "Terrible support. Terrible app."}; !reflect.DeepEqual(parts[1], want) {
		t.Errorf("parts[1] = %q, want %q", parts[1], want)
	}
	if len(parts[5]) != 2 || len(parts[3]) != 1 || len(parts[2]) != 0 {
		t.Errorf("Partition() = %v", parts)
	}
}
