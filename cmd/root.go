package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xolan/tt/internal/cli/handlers"
)

var (
	journalFlag string
	verboseFlag bool
)

var rootCmd = &cobra.Command{
	Use:   "tt",
	Short: "A plain-text time tracking journal",
	Long: `tt keeps a journal of time records in a plain text file, one record per line:

  [2024-01-15 09:00:00, 45 (5)] write docs

Each record has an optional start time, activity and rest in minutes, and a note.
Lines that are not records are kept as they are and ignored.

Usage:
  tt                                 List today's records
  tt start <note>                    Start a record now
  tt stop                            Stop the running record
  tt rest <minutes>                  Set the rest of the last record
  tt note <text>                     Set the note of the last record
  tt add --start 09:00 --activity 45 <note>
                                     Add a record by hand
  tt show|edit|rm [query flags]      Work on one record
  tt log [--match GLOB] [--last N]   List records with totals
  tt validate                        Check journal file health
  tt restore                         Restore the journal after an interrupted write
  tt tui                             Browse the journal interactively`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := deps().Load(journalFlag, verboseFlag); err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		handlers.List(deps(), handlers.ListFlags{Last: 1})
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&journalFlag, "journal", "", "journal file to use instead of the configured one")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "log debug messages to stderr")
}

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(version, commit, date string) {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(
		"tt version {{.Version}}\n" +
			"commit: " + commit + "\n" +
			"built: " + date + "\n",
	)
}

// SetArgs sets the arguments used by Execute instead of os.Args
func SetArgs(args []string) {
	rootCmd.SetArgs(args)
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}
