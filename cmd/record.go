package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/xolan/tt/internal/cli/handlers"
)

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start [note...]",
	Short: "Start a record now",
	Long: `Append a record starting now with the given note.
If the last record is still running it is stopped first.

Examples:
  tt start fixing authentication bug
  tt start`,
	Args: cobra.ArbitraryArgs,
	Run: func(cmd *cobra.Command, args []string) {
		handlers.Start(deps(), strings.Join(args, " "))
	},
}

// stopCmd represents the stop command
var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the running record",
	Long: `Set the activity of the last record to the whole minutes elapsed since its start.
The last line of the journal must be a record that has a start and no activity yet.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		handlers.Stop(deps())
	},
}

// restCmd represents the rest command
var restCmd = &cobra.Command{
	Use:   "rest <minutes>",
	Short: "Set the rest of the last record",
	Long: `Set the rest (correction) of the last record in minutes.
Negative values need '--' so they are not read as flags.

Examples:
  tt rest 15
  tt rest 1h30m
  tt rest -- -5`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		handlers.Rest(deps(), args[0])
	},
}

// noteCmd represents the note command
var noteCmd = &cobra.Command{
	Use:   "note [text...]",
	Short: "Set the note of the last record",
	Long: `Replace the note of the last record. Without text the note is removed.

Example:
  tt note code review for the parser`,
	Args: cobra.ArbitraryArgs,
	Run: func(cmd *cobra.Command, args []string) {
		handlers.Note(deps(), strings.Join(args, " "))
	},
}

// addCmd represents the add command
var addCmd = &cobra.Command{
	Use:   "add [flags] [note...]",
	Short: "Add a record by hand",
	Long: `Append a record built from the flags and the note. Fields without a flag stay empty.

Start accepts 'YYYY-MM-DD HH:MM[:SS]' or 'HH:MM[:SS]' for today.
Activity and rest accept minutes ('45', '-5') or durations ('1h30m').

Examples:
  tt add --start 09:00 --activity 45 standup and email
  tt add --start '2024-01-14 13:00' --activity 2h --rest 10 workshop`,
	Args: cobra.ArbitraryArgs,
	Run: func(cmd *cobra.Command, args []string) {
		handlers.Add(deps(), fieldFlags(cmd, "start", "activity", "rest", ""), strings.Join(args, " "))
	},
}

func init() {
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(stopCmd)
	rootCmd.AddCommand(restCmd)
	rootCmd.AddCommand(noteCmd)
	rootCmd.AddCommand(addCmd)

	addCmd.Flags().String("start", "", "start time")
	addCmd.Flags().String("activity", "", "activity in minutes or as a duration")
	addCmd.Flags().String("rest", "", "rest in minutes or as a duration")
}
