package cli

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/xolan/tt/internal/config"
	"github.com/xolan/tt/internal/service"
	"github.com/xolan/tt/internal/storage"
)

// Deps contains all dependencies for CLI operations
type Deps struct {
	Stdout io.Writer
	Stderr io.Writer
	Stdin  io.Reader
	Exit   func(code int)

	// Services is set by Load, or directly by tests
	Services *service.Services
	Logger   *slog.Logger
	Config   config.Config

	// ConfigPath locates the config file; the default journal lives next to it
	ConfigPath func() (string, error)
	// Now is the clock used for start and stop times; nil means time.Now
	Now func() time.Time
}

// DefaultDeps creates a new Deps with default values.
// Services are not built until Load is called.
func DefaultDeps() *Deps {
	return &Deps{
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
		Stdin:      os.Stdin,
		Exit:       os.Exit,
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		Config:     config.DefaultConfig(),
		ConfigPath: config.GetConfigPath,
	}
}

// NewDeps creates a new Deps with the given services
func NewDeps(services *service.Services, cfg config.Config) *Deps {
	d := DefaultDeps()
	d.Services = services
	d.Config = cfg
	return d
}

// Load reads the config file and builds the services.
// journalPath overrides the configured journal location when not empty, and
// verbose lowers the log level to debug.
func (d *Deps) Load(journalPath string, verbose bool) error {
	configPath, err := d.ConfigPath()
	if err != nil {
		return err
	}

	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return err
	}

	level := cfg.SlogLevel()
	if verbose {
		level = slog.LevelDebug
	}
	d.Logger = slog.New(slog.NewTextHandler(d.Stderr, &slog.HandlerOptions{Level: level}))

	if journalPath == "" {
		journalPath = cfg.JournalPath
	}
	if journalPath == "" {
		journalPath = filepath.Join(filepath.Dir(configPath), storage.JournalFile)
	}

	services, err := service.NewServicesWithPaths(journalPath, configPath, cfg, d.Logger)
	if err != nil {
		return err
	}
	if d.Now != nil {
		services.Journal = service.NewJournalService(services.Journal.Store(), d.Now)
	}

	d.Logger.Debug("services loaded", "config", configPath, "journal", journalPath)
	d.Services = services
	d.Config = cfg
	return nil
}

// Global deps instance for CLI
var deps = DefaultDeps()

// SetDeps sets the global deps (for testing)
func SetDeps(d *Deps) {
	deps = d
}

// ResetDeps resets to default deps
func ResetDeps() {
	deps = DefaultDeps()
}

// GetDeps returns the current deps
func GetDeps() *Deps {
	return deps
}
