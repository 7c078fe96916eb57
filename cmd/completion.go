package cmd

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/xolan/tt/internal/service"
)

// completionGenerators writes the completion script of each supported shell
var completionGenerators = map[string]func(w io.Writer) error{
	"bash":       func(w io.Writer) error { return rootCmd.GenBashCompletionV2(w, true) },
	"zsh":        func(w io.Writer) error { return rootCmd.GenZshCompletion(w) },
	"fish":       func(w io.Writer) error { return rootCmd.GenFishCompletion(w, true) },
	"powershell": func(w io.Writer) error { return rootCmd.GenPowerShellCompletionWithDesc(w) },
}

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion scripts",
	Long: `Generate a shell completion script for tt.

Besides commands and flags, --note on show, edit and rm completes the notes
found in the journal.

  bash:        source <(tt completion bash)
  zsh:         tt completion zsh > "${fpath[1]}/_tt"
  fish:        tt completion fish > ~/.config/fish/completions/tt.fish
  powershell:  tt completion powershell | Out-String | Invoke-Expression`,
	ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	// Completion scripts need neither the config nor the journal
	PersistentPreRun: func(cmd *cobra.Command, args []string) {},
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := completionGenerators[args[0]](deps().Stdout); err != nil {
			return fmt.Errorf("failed to generate %s completion: %w", args[0], err)
		}
		return nil
	},
}

// completeNotes offers the distinct notes of the journal that start with toComplete.
// Hooks do not run for completion requests, so the journal is loaded here.
func completeNotes(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	d := deps()
	if err := d.Load(journalFlag, false); err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	result, err := d.Services.Journal.List(service.ListOptions{})
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	var notes []string
	for _, line := range result.Lines {
		note := line.Record.Note
		if note != "" && strings.HasPrefix(note, toComplete) && !slices.Contains(notes, note) {
			notes = append(notes, note)
		}
	}
	return notes, cobra.ShellCompDirectiveNoFileComp
}

func init() {
	rootCmd.AddCommand(completionCmd)
}
