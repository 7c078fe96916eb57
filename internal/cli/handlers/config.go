package handlers

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xolan/tt/internal/cli"
	"github.com/xolan/tt/internal/config"
	"github.com/xolan/tt/internal/service"
	"github.com/xolan/tt/internal/storage"
)

// setting is one line of the config listing
type setting struct {
	key    string
	value  string
	source string
}

// ShowConfig displays the settings in effect and where each one comes from
func ShowConfig(deps *cli.Deps) {
	svc := deps.Services.Config
	cfg := svc.Get()
	defaults := config.DefaultConfig()

	_, _ = fmt.Fprintln(deps.Stdout, "Configuration:")
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("=", 50))
	_, _ = fmt.Fprintf(deps.Stdout, "Config file: %s\n", svc.GetPath())
	if svc.Exists() {
		_, _ = fmt.Fprintln(deps.Stdout, "Status: File exists")
	} else {
		_, _ = fmt.Fprintln(deps.Stdout, "Status: Using defaults (no config file)")
	}
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 50))

	settings := []setting{
		journalSetting(deps),
		{"timezone", cfg.Timezone, sourceOf(cfg.Timezone, defaults.Timezone)},
		{"log_level", cfg.LogLevel, sourceOf(cfg.LogLevel, defaults.LogLevel)},
		{"theme", cfg.Theme, sourceOf(cfg.Theme, defaults.Theme)},
	}
	for _, s := range settings {
		_, _ = fmt.Fprintf(deps.Stdout, "%-13s %s  (%s)\n", s.key+":", s.value, s.source)
	}
}

// journalSetting reports the journal in use, which --journal may override
func journalSetting(deps *cli.Deps) setting {
	path := deps.Services.Journal.Store().Path()
	configured := deps.Services.Config.Get().JournalPath
	switch {
	case configured != "" && configured == path:
		return setting{"journal_path", path, "config file"}
	case configured == "" && path == filepath.Join(filepath.Dir(deps.Services.Config.GetPath()), storage.JournalFile):
		return setting{"journal_path", path, "default"}
	default:
		return setting{"journal_path", path, "--journal"}
	}
}

func sourceOf(value, def string) string {
	if value == def {
		return "default"
	}
	return "config file"
}

// ShowConfigPath prints the path of the config file
func ShowConfigPath(deps *cli.Deps) {
	_, _ = fmt.Fprintln(deps.Stdout, deps.Services.Config.GetPath())
}

// InitConfig writes a commented sample config file
func InitConfig(deps *cli.Deps) {
	svc := deps.Services.Config
	err := svc.Init()
	switch {
	case errors.Is(err, service.ErrConfigExists):
		deps.Fail("Config file already exists",
			fmt.Sprintf("Path: %s", svc.GetPath()),
			"Hint: Run 'tt config' to see the settings in effect")
		return
	case err != nil:
		deps.Fail("Failed to create config file", fmt.Sprintf("Details: %v", err))
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Created config file: %s\n", svc.GetPath())
	_, _ = fmt.Fprintln(deps.Stdout, "Every setting is commented out; uncomment a line to change it.")
}
