package help

const ColdstartYAML = `# reviewstats Quick Start

input:
  default_table: "data/reviews.csv (UTF-16, '|' separated, header Stars|Comment)"
  config_file: "reviewstats.yaml in the working directory (optional)"

commands:
  fetch_reviews: |
    reviewstats fetch --url "https://play.google.com/store/apps/details?id=com.venmo&hl=en_US"

  analyze_default: |
    reviewstats analyze

  analyze_fetched: |
    reviewstats analyze --input data/reviews.csv --encoding utf-8

  analyze_custom: |
    reviewstats analyze --stopwords my-stopwords.txt --stem --english-only --top 20

  list_runs: |
    reviewstats runs

  run_details: |
    reviewstats run 3 --class 1star --n 2 --limit 10

output_files:
  - "output/review_lengths/<class>_lengths_norm.csv (length,frequency)"
  - "output/ngrams/<class>_<n>grams.csv (ngram,frequency)"
  - "output/summary.yaml (counts, files, top unigrams)"
  - "output/reviewstats.db (run history, SQLite)"

normalization:
  - "Delete . , ! ? : ; ' \" - _ + = @ ( ) *"
  - "Lowercase"
  - "Delete whole-word English stopwords (NLTK list)"
  - "Collapse whitespace runs to one space"

counting_rules:
  - "Review length = tokens split on single spaces, empty tokens included"
  - "Histogram has one row per length from 0 to the longest review"
  - "Normalized histogram divides every bin by the largest bin"
  - "N-grams skip reviews with fewer than n words"
  - "The last n-gram of every review is not counted"
  - "Ranking: frequency descending, then n-gram ascending"

error_behavior:
  - "Missing or malformed input table: fatal, exit code 1"
  - "Empty rating class: header-only output files"
  - "Run history, manifest and metrics failures: logged, run still succeeds"
`
