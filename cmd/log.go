package cmd

import (
	"github.com/spf13/cobra"

	"github.com/xolan/tt/internal/cli/handlers"
)

// logCmd represents the log command
var logCmd = &cobra.Command{
	Use:   "log",
	Short: "List records with totals",
	Long: `List the records of the journal in file order with their line numbers,
followed by the total activity and rest. Lines that are not records are
reported on stderr.

Examples:
  tt log                             All records
  tt log --last 7                    Records started in the last 7 days
  tt log --from 2024-01-01 --to 2024-01-31
  tt log --match '*review*'          Records whose note matches a glob`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		flags := handlers.ListFlags{}
		flags.Match, _ = cmd.Flags().GetString("match")
		flags.From, _ = cmd.Flags().GetString("from")
		flags.To, _ = cmd.Flags().GetString("to")
		flags.Last, _ = cmd.Flags().GetInt("last")
		handlers.List(deps(), flags)
	},
}

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check journal file health",
	Long:  `Report how many lines of the journal are records, list the others, and warn about a backup left by an interrupted write.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		handlers.Validate(deps())
	},
}

// restoreCmd represents the restore command
var restoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Restore the journal after an interrupted write",
	Long: `Replace the journal with the backup taken before the last write, when that
write was interrupted and left the backup behind. Asks for confirmation unless -y is given.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		yes, _ := cmd.Flags().GetBool("yes")
		handlers.Restore(deps(), yes)
	},
}

func init() {
	rootCmd.AddCommand(logCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(restoreCmd)

	logCmd.Flags().String("match", "", "only records whose note matches this glob")
	logCmd.Flags().String("from", "", "earliest start date (YYYY-MM-DD or DD/MM/YYYY)")
	logCmd.Flags().String("to", "", "latest start date (YYYY-MM-DD or DD/MM/YYYY)")
	logCmd.Flags().Int("last", 0, "only records started in the last N days")

	restoreCmd.Flags().BoolP("yes", "y", false, "skip the confirmation prompt")
}
