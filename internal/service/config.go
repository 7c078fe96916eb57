package service

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/xolan/tt/internal/config"
)

// ErrConfigExists is returned by Init when the config file is already present
var ErrConfigExists = errors.New("config file already exists")

// ConfigService reads and writes the config file
type ConfigService struct {
	path string
	cfg  config.Config
}

// NewConfigService creates a ConfigService for the file at path, starting from cfg
func NewConfigService(path string, cfg config.Config) *ConfigService {
	return &ConfigService{path: path, cfg: cfg}
}

// Get returns the current configuration
func (s *ConfigService) Get() config.Config {
	return s.cfg
}

// GetPath returns the path to the config file
func (s *ConfigService) GetPath() string {
	return s.path
}

// Exists reports whether the config file is present
func (s *ConfigService) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Update normalizes and validates cfg, then writes it as the whole config file
func (s *ConfigService) Update(cfg config.Config) error {
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	content, err := config.Encode(cfg)
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	s.cfg = cfg
	return nil
}

// SetTheme saves the theme of the interactive browser.
// The file is read again first so settings edited in the meantime are kept.
func (s *ConfigService) SetTheme(name string) error {
	if err := s.Reload(); err != nil {
		return err
	}
	cfg := s.cfg
	cfg.Theme = name
	return s.Update(cfg)
}

// Init writes the commented sample config. An existing file is never overwritten.
func (s *ConfigService) Init() error {
	f, err := os.OpenFile(s.path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if errors.Is(err, fs.ErrExist) {
		return fmt.Errorf("%w: %s", ErrConfigExists, s.path)
	}
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}

	_, err = io.WriteString(f, config.GenerateSampleConfig())
	if err = errors.Join(err, f.Close()); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Reload reads the config file again. A missing file means the defaults.
func (s *ConfigService) Reload() error {
	cfg, err := config.LoadOrDefault(s.path)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	s.cfg = cfg
	return nil
}
