package cmd

import (
	"github.com/spf13/cobra"

	"github.com/xolan/tt/internal/cli"
	"github.com/xolan/tt/internal/cli/handlers"
)

const queryHelp = `
A record is located by the query flags and --offset. The first record whose
fields equal every given flag is the anchor and --offset moves from it by
lines. When the anchor is the first record of the journal, a negative offset
counts back from the end instead, so --offset -1 without a query is the last
line. Landing on a line that is not a record finds nothing.
Use 'none' to match a record without that field.
Without query flags and --offset the last record is used.`

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show [query flags]",
	Short: "Show one record",
	Long: `Print the located record and its journal line.
` + queryHelp + `

Examples:
  tt show
  tt show --note 'write docs'
  tt show --start '2024-01-15 09:00' --offset 1`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		handlers.Show(deps(), queryFlags(cmd), offsetFlag(cmd))
	},
}

// editCmd represents the edit command
var editCmd = &cobra.Command{
	Use:   "edit [query flags] --set-<field> <value>",
	Short: "Edit one record",
	Long: `Change fields of the located record. 'none' clears a field.
` + queryHelp + `

Examples:
  tt edit --set-activity 45
  tt edit --note 'old note' --set-note 'new note'
  tt edit --offset -2 --set-rest none`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		set := fieldFlags(cmd, "set-start", "set-activity", "set-rest", "set-note")
		handlers.Edit(deps(), queryFlags(cmd), offsetFlag(cmd), set)
	},
}

// rmCmd represents the rm command
var rmCmd = &cobra.Command{
	Use:     "rm [query flags]",
	Aliases: []string{"delete"},
	Short:   "Delete one record",
	Long: `Delete the located record after confirmation.
` + queryHelp + `

Examples:
  tt rm
  tt rm --note 'duplicate' -y`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		yes, _ := cmd.Flags().GetBool("yes")
		handlers.Remove(deps(), queryFlags(cmd), offsetFlag(cmd), yes)
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(rmCmd)

	for _, c := range []*cobra.Command{showCmd, editCmd, rmCmd} {
		addQueryFlags(c)
	}

	editCmd.Flags().String("set-start", "", "new start time, or 'none'")
	editCmd.Flags().String("set-activity", "", "new activity, or 'none'")
	editCmd.Flags().String("set-rest", "", "new rest, or 'none'")
	editCmd.Flags().String("set-note", "", "new note, or 'none'")

	rmCmd.Flags().BoolP("yes", "y", false, "skip the confirmation prompt")
}

func addQueryFlags(c *cobra.Command) {
	c.Flags().String("start", "", "match the start time, or 'none'")
	c.Flags().String("activity", "", "match the activity, or 'none'")
	c.Flags().String("rest", "", "match the rest, or 'none'")
	c.Flags().String("note", "", "match the note exactly, or 'none'")
	c.Flags().Int("offset", 0, "lines to move from the matching record")
	_ = c.RegisterFlagCompletionFunc("note", completeNotes)
}

// fieldFlags collects the flags that were given on the command line.
// An empty name skips that field.
func fieldFlags(cmd *cobra.Command, start, activity, rest, note string) cli.FieldFlags {
	return cli.FieldFlags{
		Start:    changedString(cmd, start),
		Activity: changedString(cmd, activity),
		Rest:     changedString(cmd, rest),
		Note:     changedString(cmd, note),
	}
}

func queryFlags(cmd *cobra.Command) cli.FieldFlags {
	return fieldFlags(cmd, "start", "activity", "rest", "note")
}

// offsetFlag returns --offset, or -1 for the last record when no query flag is given
func offsetFlag(cmd *cobra.Command) int {
	if !cmd.Flags().Changed("offset") && queryFlags(cmd).IsEmpty() {
		return -1
	}
	offset, _ := cmd.Flags().GetInt("offset")
	return offset
}

func changedString(cmd *cobra.Command, name string) *string {
	if name == "" || !cmd.Flags().Changed(name) {
		return nil
	}
	value, _ := cmd.Flags().GetString(name)
	return &value
}
