package common

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/reviewstats/models"
)

// NewLogger returns the JSON stderr logger every command uses. --quiet
// only lets errors through.
func NewLogger(c *cli.Context) *slog.Logger {
	logLevel := slog.LevelInfo
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
}

// LoadConfig reads --config. Without the flag a missing reviewstats.yaml
// falls back to the defaults; an explicitly named file must exist.
func LoadConfig(c *cli.Context) (*models.Config, error) {
	if c.IsSet("config") {
		cfg, err := models.LoadConfig(c.String("config"))
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		return cfg, nil
	}

	cfg, err := models.LoadConfigOrDefault(models.DefaultConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}
