// Package config loads the optional TOML configuration file.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/xolan/tt/internal/osutil"
)

const (
	// AppName is the application name used for config directory
	AppName = "tt"
	// ConfigFile is the name of the TOML configuration file
	ConfigFile = "config.toml"
)

// LogLevels are the valid values for LogLevel
var LogLevels = []string{"debug", "info", "warn", "error"}

// Config represents the application configuration
type Config struct {
	// JournalPath overrides the journal file location. Empty means the default
	// journal.txt in the config directory.
	JournalPath string `toml:"journal_path"`
	// Timezone defines the timezone record start times are read and written in
	// (IANA timezone name, e.g., "America/New_York", or "Local")
	Timezone string `toml:"timezone"`
	// LogLevel is the minimum level of diagnostic output on stderr
	LogLevel string `toml:"log_level"`
	// Theme selects the color scheme of the interactive browser: "default",
	// "mono" or a bubbletint theme id such as "nord". Unknown ids fall back
	// to the default scheme when the browser starts.
	Theme string `toml:"theme"`
}

// DefaultConfig returns a Config with sensible defaults.
// - journal_path: "" (journal.txt next to the config file)
// - timezone: "Local" (use system local timezone)
// - log_level: "warn"
// - theme: "default"
func DefaultConfig() Config {
	return Config{
		JournalPath: "",
		Timezone:    "Local",
		LogLevel:    "warn",
		Theme:       "default",
	}
}

// GetConfigPath returns the path of config.toml in the tt directory under
// os.UserConfigDir(), creating the directory if needed.
func GetConfigPath() (string, error) {
	dir, err := osutil.AppDir(AppName)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigFile), nil
}

// Load reads and validates the config file at path.
// Keys missing from the file keep their default values.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadOrDefault loads the config file at path, or returns DefaultConfig if it
// does not exist. Any other error (unreadable, invalid) is returned.
func LoadOrDefault(path string) (Config, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return DefaultConfig(), err
	}
	return Load(path)
}

// Normalize trims whitespace and lowercases the enumerated fields.
// Empty fields are reset to their defaults.
func (c *Config) Normalize() {
	defaults := DefaultConfig()

	c.JournalPath = strings.TrimSpace(c.JournalPath)
	c.Timezone = strings.TrimSpace(c.Timezone)
	if c.Timezone == "" {
		c.Timezone = defaults.Timezone
	}
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	if c.LogLevel == "" {
		c.LogLevel = defaults.LogLevel
	}
	c.Theme = strings.ToLower(strings.TrimSpace(c.Theme))
	if c.Theme == "" {
		c.Theme = defaults.Theme
	}
}

// Validate checks the configuration values.
func (c Config) Validate() error {
	if !slices.Contains(LogLevels, c.LogLevel) {
		return fmt.Errorf("invalid log_level %q: must be one of %s", c.LogLevel, strings.Join(LogLevels, ", "))
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location returns the configured timezone
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// SlogLevel returns the configured log level for log/slog.
// Unknown levels fall back to warn.
func (c Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// GenerateSampleConfig returns a commented sample configuration file.
// Every setting is commented out so that the defaults apply until edited.
func GenerateSampleConfig() string {
	return `# tt configuration file

# Journal file location. Defaults to journal.txt next to this file.
# journal_path = "/home/me/notes/journal.txt"

# Timezone record start times are read and written in:
# IANA timezone name or "Local" (system timezone)
# Examples: "Local", "America/New_York", "Europe/London", "Asia/Tokyo"
# timezone = "Local"

# Diagnostic output on stderr: "debug", "info", "warn" or "error"
# log_level = "warn"

# Color scheme of the interactive browser: "default", "mono" or a
# theme id such as "nord", "dracula" or "gruvbox_dark"
# theme = "default"
`
}

// Encode renders cfg as a TOML document.
func Encode(cfg Config) (string, error) {
	var b strings.Builder
	b.WriteString("# tt configuration file\n\n")
	if err := toml.NewEncoder(&b).Encode(cfg); err != nil {
		return "", fmt.Errorf("failed to encode config: %w", err)
	}
	return b.String(), nil
}
