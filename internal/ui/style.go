// Package ui holds terminal styling helpers for the CLI output.
package ui

import (
	"fmt"

	"github.com/fatih/color"
)

// Sprint color functions for building styled strings.
var (
	Bold     = color.New(color.Bold).SprintFunc()
	Dim      = color.New(color.Faint).SprintFunc()
	Cyan     = color.New(color.FgCyan).SprintFunc()
	Green    = color.New(color.FgGreen).SprintFunc()
	Red      = color.New(color.FgRed).SprintFunc()
	Yellow   = color.New(color.FgYellow).SprintFunc()
	BoldCyan = color.New(color.Bold, color.FgCyan).SprintFunc()
	BoldRed  = color.New(color.Bold, color.FgRed).SprintFunc()
)

// BoardLine formats a per-board progress line, e.g.
// "✓ Household (12 projects, 4 notes)".
func BoardLine(title string, projects, notes int) string {
	counts := fmt.Sprintf("(%s, %s)", plural(projects, "project"), plural(notes, "note"))
	return Green("✓") + " " + Bold(title) + " " + Dim(counts)
}

// FailLine formats a per-board failure line.
func FailLine(title string, err error) string {
	return Red("✗") + " " + Bold(title) + " " + Red(err.Error())
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
