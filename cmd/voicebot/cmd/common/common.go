// Package common holds the flags and setup shared by all commands.
package common

import (
	"go.uber.org/zap"
	"voice-digest/internal/app/logging"
	"voice-digest/internal/config"
)

var (
	Verbose    bool
	ConfigFile string
)

// Setup loads the configuration and builds a logger for it. Verbose or a
// development environment selects the console encoder.
func Setup() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(ConfigFile)
	if err != nil {
		return nil, nil, err
	}

	logger, err := logging.NewLogger(Verbose || cfg.Development())
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("configuration loaded",
		zap.String("config_file", ConfigFile),
		zap.String("environment", cfg.Environment),
		zap.Any("credentials", cfg.Credentials.Redacted()),
	)
	return cfg, logger, nil
}
