package logger

import (
	"go.uber.org/zap"

	"corpoleve/internal/config"
)

// New returns a production logger in production and a development logger otherwise.
func New(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}

	return zap.NewDevelopment()
}
