package views

import (
	"fmt"

	"github.com/xolan/tt/internal/cli"
	"github.com/xolan/tt/internal/journal"
	"github.com/xolan/tt/internal/service"
	"github.com/xolan/tt/internal/tui/ui"
)

// timesWidth aligns the note column of record lines
const timesWidth = 18

// RenderLine renders one journal line with its 1-based line number.
// Lines that are not records are shown as they are in the file.
func RenderLine(number int, item journal.Item, styles ui.Styles, selected bool) string {
	num := styles.LineNumber.Render(fmt.Sprintf("%d", number))

	var body string
	if item.Opaque {
		body = styles.LineOpaque.Render(item.Raw)
	} else {
		r := item.Record
		timesStyle := styles.LineTimes
		if r.IsRunning() {
			timesStyle = styles.Running
		}
		body = fmt.Sprintf("%s  %s  %s",
			styles.LineStart.Render(cli.FormatStart(r.Start)),
			timesStyle.Render(fmt.Sprintf("%-*s", timesWidth, cli.FormatTimes(r))),
			cli.FormatNote(r.Note))
	}

	line := num + body
	if selected {
		return styles.LineSelected.Render(line)
	}
	return styles.LineNormal.Render(line)
}

// RenderTotals renders the totals footer of a journal listing
func RenderTotals(result *service.ListResult, styles ui.Styles) string {
	n := len(result.Lines)
	s := fmt.Sprintf("%s%s (%d %s)",
		styles.Label.Render("Total:"),
		styles.Value.Render(cli.FormatDuration(result.Activity)),
		n, cli.Pluralize("record", n))
	if result.Rest != 0 {
		s += ", rest " + cli.FormatDuration(result.Rest)
	}
	switch w := len(result.Warnings); {
	case w == 1:
		s += "\n" + styles.Warning.Render("1 line is not a record")
	case w > 1:
		s += "\n" + styles.Warning.Render(fmt.Sprintf("%d lines are not records", w))
	}
	return s
}
