// Package logging builds the process-wide zap logger.
package logging

import (
	"go.uber.org/zap"

	"github.com/joblane/joblane-api/internal/config"
)

// New returns a logger tuned to the runtime environment: JSON output in
// production, human-readable output everywhere else.
func New(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
