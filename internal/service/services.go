package service

import (
	"log/slog"
	"time"

	"github.com/xolan/tt/internal/config"
	"github.com/xolan/tt/internal/journal"
	"github.com/xolan/tt/internal/storage"
)

// Services holds all service instances used by the application
type Services struct {
	Journal *JournalService
	Config  *ConfigService
}

// NewServices creates a new Services instance with default paths.
// The journal path comes from the config file when it sets one.
func NewServices(logger *slog.Logger) (*Services, error) {
	configPath, err := config.GetConfigPath()
	if err != nil {
		return nil, err
	}

	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return nil, err
	}

	journalPath := cfg.JournalPath
	if journalPath == "" {
		journalPath, err = storage.GetStoragePath()
		if err != nil {
			return nil, err
		}
	}

	return NewServicesWithPaths(journalPath, configPath, cfg, logger)
}

// NewServicesWithPaths creates a new Services instance with custom paths (useful for testing)
func NewServicesWithPaths(journalPath, configPath string, cfg config.Config, logger *slog.Logger) (*Services, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	store := journal.Open(journalPath, journal.WithLogger(logger), journal.WithLocation(loc))

	return &Services{
		Journal: NewJournalService(store, time.Now),
		Config:  NewConfigService(configPath, cfg),
	}, nil
}
