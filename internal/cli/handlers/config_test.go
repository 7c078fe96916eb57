package handlers

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xolan/tt/internal/service"
)

func TestShowConfig(t *testing.T) {
	deps, stdout, _, exitCode := setupTestDeps(t)

	ShowConfig(deps)

	if *exitCode != 0 {
		t.Errorf("expected exit code 0, got %d", *exitCode)
	}
	out := stdout.String()
	for _, want := range []string{
		"Configuration:",
		"Config file: " + deps.Services.Config.GetPath(),
		"Using defaults",
		"journal_path: " + journalPath(deps) + "  (default)",
		"timezone:     UTC  (config file)",
		"log_level:    warn  (default)",
		"theme:        default  (default)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output, got %q", want, out)
		}
	}
}

func TestShowConfig_JournalSource(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	tests := []struct {
		name       string
		journal    string
		configured string
		want       string
	}{
		{"default", filepath.Join(tmpDir, "journal.txt"), "", "(default)"},
		{"config file", filepath.Join(tmpDir, "work.txt"), filepath.Join(tmpDir, "work.txt"), "(config file)"},
		{"flag", filepath.Join(tmpDir, "other.txt"), "", "(--journal)"},
		{"flag over config file", filepath.Join(tmpDir, "other.txt"), filepath.Join(tmpDir, "work.txt"), "(--journal)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deps, stdout, _, _ := newTestDeps(t, tt.journal, configPath)
			cfg := deps.Services.Config.Get()
			cfg.JournalPath = tt.configured
			deps.Services.Config = service.NewConfigService(configPath, cfg)

			ShowConfig(deps)

			want := "journal_path: " + tt.journal + "  " + tt.want
			if !strings.Contains(stdout.String(), want) {
				t.Errorf("expected %q in output, got %q", want, stdout.String())
			}
		})
	}
}

func TestShowConfig_WithFile(t *testing.T) {
	deps, stdout, _, exitCode := setupTestDeps(t)

	InitConfig(deps)
	stdout.Reset()

	ShowConfig(deps)

	if *exitCode != 0 {
		t.Errorf("expected exit code 0, got %d", *exitCode)
	}
	if !strings.Contains(stdout.String(), "File exists") {
		t.Errorf("expected 'File exists' in output, got %q", stdout.String())
	}
}

func TestInitConfig(t *testing.T) {
	deps, stdout, _, exitCode := setupTestDeps(t)

	InitConfig(deps)

	if *exitCode != 0 {
		t.Errorf("expected exit code 0, got %d", *exitCode)
	}
	if !strings.Contains(stdout.String(), "Created config file: "+deps.Services.Config.GetPath()) {
		t.Errorf("unexpected output %q", stdout.String())
	}
	if _, err := os.Stat(deps.Services.Config.GetPath()); err != nil {
		t.Errorf("expected config file: %v", err)
	}
}

func TestInitConfig_AlreadyExists(t *testing.T) {
	deps, _, stderr, exitCode := setupTestDeps(t)
	if err := os.WriteFile(deps.Services.Config.GetPath(), []byte("theme = \"nord\"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	InitConfig(deps)

	if *exitCode != 1 {
		t.Errorf("expected exit code 1, got %d", *exitCode)
	}
	if !strings.Contains(stderr.String(), "Error: Config file already exists") {
		t.Errorf("unexpected stderr %q", stderr.String())
	}
	if !strings.Contains(stderr.String(), "tt config") {
		t.Errorf("expected a hint, got %q", stderr.String())
	}
}

func TestInitConfig_Error(t *testing.T) {
	deps, _, stderr, exitCode := setupBrokenConfigDeps(t)

	InitConfig(deps)

	if *exitCode != 1 {
		t.Errorf("expected exit code 1, got %d", *exitCode)
	}
	if !strings.Contains(stderr.String(), "Error: Failed to create config file") {
		t.Errorf("unexpected stderr %q", stderr.String())
	}
}

func TestShowConfigPath(t *testing.T) {
	deps, stdout, _, _ := setupTestDeps(t)

	ShowConfigPath(deps)

	expected := deps.Services.Config.GetPath() + "\n"
	if stdout.String() != expected {
		t.Errorf("expected %q, got %q", expected, stdout.String())
	}
}
