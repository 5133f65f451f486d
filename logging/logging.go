// Package logging builds the zap loggers used by cmdlet hosts.
package logging

import (
	"fmt"

	"go.uber.org/zap"
)

// New returns a development logger for the "local" environment and a
// production (JSON) logger otherwise, at the given level.
func New(level, env string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("logging: %w", err)
	}

	cfg := zap.NewProductionConfig()
	if env == "local" {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = lvl
	cfg.InitialFields = map[string]any{"env": env}
	return cfg.Build()
}
