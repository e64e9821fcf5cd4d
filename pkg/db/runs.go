package db

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dtnitsch/reviewstats/pkg/pipeline"
)

// ErrRunNotFound is returned when a run ID does not exist.
var ErrRunNotFound = errors.New("run not found")

// Run is one recorded analyze run.
type Run struct {
	RunID             int64
	CreatedAt         time.Time
	Source            string
	OutputDir         string
	TotalReviews      int
	DroppedLanguage   int
	Ignored           int
	NormalizedLengths bool
	NgramSizes        []int
}

// RunClass is one rating class of a run.
type RunClass struct {
	ClassID     int64
	RunID       int64
	Label       string
	Rating      int
	ReviewCount int
	MaxLength   int
}

// NgramRow is one ranked n-gram. Position starts at 1.
type NgramRow struct {
	Position  int
	Ngram     string
	Frequency int
}

// InsertRun records a run with all its classes, histogram bins and ranked
// n-gram rows in one transaction, returning the run_id.
func (db *DB) InsertRun(source, outputDir string, result *pipeline.Result) (int64, error) {
	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }() // no-op after commit

	res, err := tx.Exec(`
		INSERT INTO runs (source, output_dir, total_reviews, dropped_language, ignored, normalized_lengths, ngram_sizes)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, source, outputDir, result.TotalReviews, result.DroppedLanguage, result.Ignored,
		result.NormalizeLength, joinSizes(result.NgramSizes))
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run ID: %w", err)
	}

	binStmt, err := tx.Prepare("INSERT INTO length_bins (class_id, length, frequency) VALUES (?, ?, ?)")
	if err != nil {
		return 0, fmt.Errorf("failed to prepare length insert: %w", err)
	}
	defer binStmt.Close()

	ngramStmt, err := tx.Prepare("INSERT INTO ngram_rows (class_id, n, position, ngram, frequency) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return 0, fmt.Errorf("failed to prepare n-gram insert: %w", err)
	}
	defer ngramStmt.Close()

	for _, c := range result.Classes {
		res, err := tx.Exec(`
			INSERT INTO run_classes (run_id, label, rating, review_count, max_length)
			VALUES (?, ?, ?, ?, ?)
		`, runID, c.Class.Name(), c.Class.Rating, c.ReviewCount, c.MaxLength())
		if err != nil {
			return 0, fmt.Errorf("failed to insert class %s: %w", c.Class.Name(), err)
		}
		classID, err := res.LastInsertId()
		if err != nil {
			return 0, fmt.Errorf("failed to get class ID: %w", err)
		}

		for length, freq := range c.Lengths {
			if _, err := binStmt.Exec(classID, length, freq); err != nil {
				return 0, fmt.Errorf("failed to insert length bin: %w", err)
			}
		}

		for _, n := range result.NgramSizes {
			for i, kc := range c.Ranked(n) {
				if _, err := ngramStmt.Exec(classID, n, i+1, kc.Key, kc.Count); err != nil {
					return 0, fmt.Errorf("failed to insert n-gram row: %w", err)
				}
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit run: %w", err)
	}
	return runID, nil
}

const runColumns = `run_id, created_at, source, output_dir, total_reviews,
	dropped_language, ignored, normalized_lengths, ngram_sizes`

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(s scanner) (Run, error) {
	var r Run
	var sizes string
	err := s.Scan(&r.RunID, &r.CreatedAt, &r.Source, &r.OutputDir, &r.TotalReviews,
		&r.DroppedLanguage, &r.Ignored, &r.NormalizedLengths, &sizes)
	if err != nil {
		return r, err
	}
	r.NgramSizes, err = splitSizes(sizes)
	return r, err
}

// ListRuns returns recent runs, newest first. limit <= 0 returns all.
func (db *DB) ListRuns(limit int) ([]Run, error) {
	query := "SELECT " + runColumns + " FROM runs ORDER BY run_id DESC"
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// GetRunByID returns one run.
func (db *DB) GetRunByID(runID int64) (*Run, error) {
	r, err := scanRun(db.QueryRow("SELECT "+runColumns+" FROM runs WHERE run_id = ?", runID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", ErrRunNotFound, runID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return &r, nil
}

// LatestRunID returns the newest run_id.
func (db *DB) LatestRunID() (int64, error) {
	var id int64
	err := db.QueryRow("SELECT run_id FROM runs ORDER BY run_id DESC LIMIT 1").Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrRunNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get latest run: %w", err)
	}
	return id, nil
}

// GetRunClasses returns the classes of a run in insertion order.
func (db *DB) GetRunClasses(runID int64) ([]RunClass, error) {
	rows, err := db.Query(`
		SELECT class_id, run_id, label, rating, review_count, max_length
		FROM run_classes
		WHERE run_id = ?
		ORDER BY class_id
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get run classes: %w", err)
	}
	defer rows.Close()

	var classes []RunClass
	for rows.Next() {
		var c RunClass
		if err := rows.Scan(&c.ClassID, &c.RunID, &c.Label, &c.Rating, &c.ReviewCount, &c.MaxLength); err != nil {
			return nil, fmt.Errorf("failed to scan run class: %w", err)
		}
		classes = append(classes, c)
	}
	return classes, rows.Err()
}

// TopNgrams returns the first limit ranked n-grams of a class in a run.
// limit <= 0 returns all rows.
func (db *DB) TopNgrams(runID int64, label string, n, limit int) ([]NgramRow, error) {
	query := `
		SELECT r.position, r.ngram, r.frequency
		FROM ngram_rows r
		JOIN run_classes c ON c.class_id = r.class_id
		WHERE c.run_id = ? AND c.label = ? AND r.n = ?
		ORDER BY r.position
	`
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := db.Query(query, runID, label, n)
	if err != nil {
		return nil, fmt.Errorf("failed to query n-grams: %w", err)
	}
	defer rows.Close()

	var out []NgramRow
	for rows.Next() {
		var r NgramRow
		if err := rows.Scan(&r.Position, &r.Ngram, &r.Frequency); err != nil {
			return nil, fmt.Errorf("failed to scan n-gram row: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// LengthBins returns the stored histogram of a class in a run.
func (db *DB) LengthBins(runID int64, label string) ([]float64, error) {
	rows, err := db.Query(`
		SELECT b.frequency
		FROM length_bins b
		JOIN run_classes c ON c.class_id = b.class_id
		WHERE c.run_id = ? AND c.label = ?
		ORDER BY b.length
	`, runID, label)
	if err != nil {
		return nil, fmt.Errorf("failed to query length bins: %w", err)
	}
	defer rows.Close()

	bins := []float64{}
	for rows.Next() {
		var f float64
		if err := rows.Scan(&f); err != nil {
			return nil, fmt.Errorf("failed to scan length bin: %w", err)
		}
		bins = append(bins, f)
	}
	return bins, rows.Err()
}

func joinSizes(sizes []int) string {
	parts := make([]string, len(sizes))
	for i, n := range sizes {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ",")
}

func splitSizes(s string) ([]int, error) {
	if s == "" {
		return nil, nil
	}
	var sizes []int
	for _, part := range strings.Split(s, ",") {
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid n-gram sizes %q: %w", s, err)
		}
		sizes = append(sizes, n)
	}
	return sizes, nil
}
