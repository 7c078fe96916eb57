package cmd

import (
	"slices"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func TestCompletionCommand(t *testing.T) {
	tests := []struct {
		shell string
		want  string
	}{
		{"bash", "bash completion V2 for tt"},
		{"zsh", "#compdef tt"},
		{"fish", "fish completion for tt"},
		{"powershell", "powershell completion for tt"},
	}

	for _, tt := range tests {
		t.Run(tt.shell, func(t *testing.T) {
			env := setupTest(t, "")
			if err := env.run("completion", tt.shell); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !strings.Contains(env.stdout.String(), tt.want) {
				t.Errorf("expected %q in the script", tt.want)
			}
		})
	}
}

func TestCompletionCommand_InvalidShell(t *testing.T) {
	env := setupTest(t, "")

	if err := env.run("completion", "tcsh"); err == nil {
		t.Error("expected an error for an unsupported shell")
	}
	if env.stdout.Len() != 0 {
		t.Errorf("expected no script, got %q", env.stdout.String())
	}
}

func TestCompleteNotes(t *testing.T) {
	content := "[2024-01-15 08:00:00, 30 ()] review code\n" +
		"free text\n" +
		"[2024-01-15 09:00:00, 45 ()] write docs\n" +
		"[2024-01-15 10:00:00, 15 ()] review code\n" +
		"[2024-01-15 10:15:00, 15 ()]\n"

	tests := []struct {
		prefix string
		want   []string
	}{
		{"", []string{"review code", "write docs"}},
		{"re", []string{"review code"}},
		{"x", nil},
	}

	for _, tt := range tests {
		t.Run(tt.prefix, func(t *testing.T) {
			setupTest(t, content)
			resetFlags(rootCmd)

			notes, directive := completeNotes(showCmd, nil, tt.prefix)
			if !slices.Equal(notes, tt.want) {
				t.Errorf("notes = %q, want %q", notes, tt.want)
			}
			if directive != cobra.ShellCompDirectiveNoFileComp {
				t.Errorf("unexpected directive %v", directive)
			}
		})
	}
}

func TestCompleteNotes_ThroughShellRequest(t *testing.T) {
	env := setupTest(t, "[2024-01-15 08:00:00, 30 ()] standup\n")

	if err := env.run("__complete", "rm", "--note", "st"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(env.stdout.String(), "standup") {
		t.Errorf("expected the note to be offered, got %q", env.stdout.String())
	}
}
