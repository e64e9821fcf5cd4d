// Package metrics exports run statistics as a Prometheus textfile for the
// node_exporter textfile collector.
package metrics

import (
	"fmt"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dtnitsch/reviewstats/pkg/pipeline"
)

// Collect builds a registry holding the gauges of one run.
func Collect(result *pipeline.Result) (*prometheus.Registry, error) {
	reg := prometheus.NewRegistry()

	reviews := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "reviewstats",
		Name:      "class_reviews",
		Help:      "Reviews analyzed per rating class.",
	}, []string{"class"})
	maxLength := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "reviewstats",
		Name:      "class_max_length_tokens",
		Help:      "Longest normalized review per rating class, in tokens.",
	}, []string{"class"})
	ngrams := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "reviewstats",
		Name:      "ngram_distinct",
		Help:      "Distinct n-grams per rating class and size.",
	}, []string{"class", "n"})
	input := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "reviewstats",
		Name:      "input_reviews",
		Help:      "Input reviews by outcome.",
	}, []string{"outcome"})

	for _, c := range []prometheus.Collector{reviews, maxLength, ngrams, input} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("failed to register collector: %w", err)
		}
	}

	used := result.TotalReviews - result.DroppedLanguage - result.Ignored
	input.WithLabelValues("analyzed").Set(float64(used))
	input.WithLabelValues("dropped_language").Set(float64(result.DroppedLanguage))
	input.WithLabelValues("ignored").Set(float64(result.Ignored))

	for _, c := range result.Classes {
		label := c.Class.Name()
		reviews.WithLabelValues(label).Set(float64(c.ReviewCount))
		maxLength.WithLabelValues(label).Set(float64(c.MaxLength()))
		for _, n := range result.NgramSizes {
			ngrams.WithLabelValues(label, strconv.Itoa(n)).Set(float64(len(c.Ngrams[n])))
		}
	}
	return reg, nil
}

// WriteTextfile writes the run's gauges to path in the Prometheus text format.
func WriteTextfile(path string, result *pipeline.Result) error {
	reg, err := Collect(result)
	if err != nil {
		return err
	}
	if err := prometheus.WriteToTextfile(path, reg); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}
