package ui

import (
	"strings"
	"testing"
)

func TestMonoStyles(t *testing.T) {
	styles := MonoStyles()

	if !styles.LineSelected.GetReverse() {
		t.Error("expected selected line to use reverse video")
	}
	if !styles.Title.GetBold() {
		t.Error("expected title to be bold")
	}
	if styles.LineNumber.GetWidth() != 6 {
		t.Errorf("expected line number width 6, got %d", styles.LineNumber.GetWidth())
	}
}

func TestStylesRenderText(t *testing.T) {
	tp := NewThemeProvider("nord")
	for name, styles := range map[string]Styles{"mono": MonoStyles(), "nord": tp.Styles()} {
		t.Run(name, func(t *testing.T) {
			if got := styles.Error.Render("Error message"); !strings.Contains(got, "Error message") {
				t.Errorf("Error style lost its text: %q", got)
			}
			if got := styles.App.Render("content"); !strings.Contains(got, "content") {
				t.Errorf("App style lost its text: %q", got)
			}
			if got := styles.LineOpaque.Render("junk line"); !strings.Contains(got, "junk line") {
				t.Errorf("LineOpaque style lost its text: %q", got)
			}
		})
	}
}
