package manifest

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dtnitsch/reviewstats/pkg/mapreduce"
	"github.com/dtnitsch/reviewstats/pkg/pipeline"
	"github.com/dtnitsch/reviewstats/pkg/report"
	"github.com/dtnitsch/reviewstats/pkg/storage"
)

// TopKeywordCount is how many unigrams the manifest lists per class.
const TopKeywordCount = 25

// Build assembles the manifest for a run. Keywords come from the smallest
// configured n-gram size.
func Build(source string, runID int64, result *pipeline.Result, files []report.File) SummaryManifest {
	m := SummaryManifest{
		GeneratedAt:     time.Now().Format(time.RFC3339),
		Source:          source,
		RunID:           runID,
		TotalReviews:    result.TotalReviews,
		DroppedLanguage: result.DroppedLanguage,
		Ignored:         result.Ignored,
		NgramSizes:      result.NgramSizes,
		Files:           files,
	}

	n := 0
	if len(result.NgramSizes) > 0 {
		n = result.NgramSizes[0]
	}
	if n > 0 {
		m.AggregateKeywords = mapreduce.TopKeywords(result.Aggregate(n), TopKeywordCount)
	}

	for _, c := range result.Classes {
		summary := ClassSummary{
			Label:       c.Class.Name(),
			Rating:      c.Class.Rating,
			ReviewCount: c.ReviewCount,
			MaxLength:   c.MaxLength(),
		}
		if n > 0 {
			summary.TopKeywords = mapreduce.TopKeywords(c.Ngrams[n], TopKeywordCount)
		}
		m.Classes = append(m.Classes, summary)
	}
	return m
}

// GenerateSummary writes the manifest to the storage root and returns its
// path.
func GenerateSummary(m SummaryManifest, s *storage.Storage) (string, error) {
	data, err := yaml.Marshal(m)
	if err != nil {
		return "", fmt.Errorf("error marshalling manifest: %w", err)
	}

	if err := s.SaveFile(FileName, data); err != nil {
		return "", fmt.Errorf("error saving manifest: %w", err)
	}

	return s.Path(FileName), nil
}
