package runs

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"

	dbpkg "github.com/dtnitsch/reviewstats/pkg/db"
)

// GetRunIDOrLatest returns the run ID from args, or the latest run if not provided
func GetRunIDOrLatest(c *cli.Context, database *dbpkg.DB) (int64, error) {
	return ResolveRunID(c.Args().First(), database)
}

// ResolveRunID parses arg as a run ID. An empty arg means the latest run.
func ResolveRunID(arg string, database *dbpkg.DB) (int64, error) {
	if arg == "" {
		id, err := database.LatestRunID()
		if errors.Is(err, dbpkg.ErrRunNotFound) {
			return 0, fmt.Errorf("no runs found. Run 'reviewstats analyze' first")
		}
		if err != nil {
			return 0, err
		}
		return id, nil
	}

	runID, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || runID < 1 {
		return 0, fmt.Errorf("invalid run ID: %s", arg)
	}
	return runID, nil
}

func formatSizes(sizes []int) string {
	parts := make([]string, len(sizes))
	for i, n := range sizes {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ",")
}
