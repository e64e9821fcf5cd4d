package db

const schema = `
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA foreign_keys = ON;

-- One row per analyze run
CREATE TABLE IF NOT EXISTS runs (
    run_id INTEGER PRIMARY KEY AUTOINCREMENT,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    source TEXT NOT NULL,
    output_dir TEXT NOT NULL,
    total_reviews INTEGER NOT NULL,
    dropped_language INTEGER NOT NULL DEFAULT 0,
    ignored INTEGER NOT NULL DEFAULT 0,
    normalized_lengths BOOLEAN NOT NULL DEFAULT 1,
    ngram_sizes TEXT NOT NULL -- comma separated, e.g. "1,2,3"
);

CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);

-- Rating classes analyzed in a run
CREATE TABLE IF NOT EXISTS run_classes (
    class_id INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id INTEGER NOT NULL,
    label TEXT NOT NULL,
    rating INTEGER NOT NULL,
    review_count INTEGER NOT NULL,
    max_length INTEGER NOT NULL,
    FOREIGN KEY (run_id) REFERENCES runs(run_id) ON DELETE CASCADE,
    UNIQUE(run_id, label)
);

-- Length histogram bins
CREATE TABLE IF NOT EXISTS length_bins (
    class_id INTEGER NOT NULL,
    length INTEGER NOT NULL,
    frequency REAL NOT NULL,
    FOREIGN KEY (class_id) REFERENCES run_classes(class_id) ON DELETE CASCADE,
    PRIMARY KEY (class_id, length)
);

-- Ranked n-gram rows
CREATE TABLE IF NOT EXISTS ngram_rows (
    class_id INTEGER NOT NULL,
    n INTEGER NOT NULL,
    position INTEGER NOT NULL,
    ngram TEXT NOT NULL,
    frequency INTEGER NOT NULL,
    FOREIGN KEY (class_id) REFERENCES run_classes(class_id) ON DELETE CASCADE,
    PRIMARY KEY (class_id, n, position)
);

CREATE INDEX IF NOT EXISTS idx_ngram_rows_ngram ON ngram_rows(ngram);
`
