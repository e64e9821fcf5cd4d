package analyze

import (
	"fmt"
	"log/slog"

	"github.com/dtnitsch/reviewstats/models"
	"github.com/dtnitsch/reviewstats/pkg/analytics"
	"github.com/dtnitsch/reviewstats/pkg/db"
	"github.com/dtnitsch/reviewstats/pkg/detector"
	"github.com/dtnitsch/reviewstats/pkg/manifest"
	"github.com/dtnitsch/reviewstats/pkg/metrics"
	"github.com/dtnitsch/reviewstats/pkg/pipeline"
	"github.com/dtnitsch/reviewstats/pkg/report"
	"github.com/dtnitsch/reviewstats/pkg/source"
	"github.com/dtnitsch/reviewstats/pkg/storage"
)

// Outcome is what one analyze run produced.
type Outcome struct {
	Result       *pipeline.Result
	Files        []report.File
	RunID        int64 // 0 when the run was not recorded
	ManifestPath string
}

// Run loads the review table, computes every class's statistics and writes
// the tables. Failing to record the run, write the manifest or write the
// metrics textfile is logged and does not fail the run.
func Run(logger *slog.Logger, cfg *models.Config) (*Outcome, error) {
	stopwords := analytics.DefaultStopwords()
	if cfg.Normalizer.Stopwords != "" {
		var err error
		stopwords, err = analytics.LoadStopwords(cfg.Normalizer.Stopwords)
		if err != nil {
			return nil, err
		}
		logger.Info("Loaded stopwords", "path", cfg.Normalizer.Stopwords, "count", stopwords.Len())
	}

	var lang pipeline.LanguageFilter
	if cfg.Language.EnglishOnly {
		lang = detector.NewEnglishFilter()
	}

	opts, err := source.TableOptionsFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	reviews, err := source.ReadFile(cfg.Input.Path, opts)
	if err != nil {
		return nil, err
	}
	logger.Info("Loaded reviews", "count", len(reviews))

	result, err := pipeline.Run(reviews, pipeline.OptionsFromConfig(cfg, stopwords, lang))
	if err != nil {
		return nil, err
	}
	for _, c := range result.Classes {
		logger.Info("Class analyzed", "class", c.Class.Name(), "reviews", c.ReviewCount, "max_length", c.MaxLength())
	}

	s := storage.NewStorage(cfg.Output.Dir)
	files, err := report.WriteResult(s, result)
	if err != nil {
		return nil, fmt.Errorf("failed to write report: %w", err)
	}

	outcome := &Outcome{Result: result, Files: files}

	if cfg.DB.Enabled {
		outcome.RunID = recordRun(logger, cfg, result)
	}

	m := manifest.Build(cfg.Input.Path, outcome.RunID, result, files)
	if path, err := manifest.GenerateSummary(m, s); err != nil {
		logger.Warn("Failed to write summary manifest", "error", err)
	} else {
		outcome.ManifestPath = path
	}

	if cfg.Metrics.File != "" {
		if err := metrics.WriteTextfile(cfg.Metrics.File, result); err != nil {
			logger.Warn("Failed to write metrics textfile", "path", cfg.Metrics.File, "error", err)
		}
	}

	return outcome, nil
}

func recordRun(logger *slog.Logger, cfg *models.Config, result *pipeline.Result) int64 {
	database, err := db.Open(cfg.DB.Path)
	if err != nil {
		logger.Warn("Failed to open run history", "path", cfg.DB.Path, "error", err)
		return 0
	}
	defer database.Close()

	runID, err := database.InsertRun(cfg.Input.Path, cfg.Output.Dir, result)
	if err != nil {
		logger.Warn("Failed to record run", "error", err)
		return 0
	}
	logger.Info("Run recorded", "run_id", runID, "db", cfg.DB.Path)
	return runID
}
