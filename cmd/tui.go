package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xolan/tt/internal/tui"
)

// tuiCmd represents the tui command
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Browse the journal interactively",
	Long: `Launch the interactive Terminal User Interface for tt.

The browser walks the lines of the journal. Lines that are not records are
shown as they are and cannot be edited.

Keyboard shortcuts:
  - j/k or arrows: Move between lines
  - pgup/pgdn, g/G: Page up/down, first/last line
  - s: Start a record, x: Stop the running record
  - e: Edit the note of the selected record
  - d: Delete the selected record
  - r: Reload the journal
  - t: Next color theme (saved to the config file)
  - ?: Show help
  - q: Quit`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		d := deps()
		if err := tui.Run(d.Services); err != nil {
			d.Fail("Failed to run the interactive browser", fmt.Sprintf("Details: %v", err))
		}
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}
