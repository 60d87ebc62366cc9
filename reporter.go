package neur

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/charmbracelet/lipgloss"
)

// linterName is the suffix appended to printed issues.
const linterName = "neur"

// Terminal styles shared by the check reporter and the CLI. Lipgloss
// degrades colors based on terminal capabilities.
var (
	// StyleLocation is used for file positions.
	StyleLocation = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	// StyleFailure is used for error counts and failure messages.
	StyleFailure = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))
	// StyleWarning is used for warning counts.
	StyleWarning = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("3"))
	// StyleSuccess is used for clean results and build summaries.
	StyleSuccess = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
	// StyleMuted is used for the linter-name suffix and hints.
	StyleMuted = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// RenderStyle applies a lipgloss style when colors are enabled.
func RenderStyle(style lipgloss.Style, text string, useColors bool) string {
	if !useColors {
		return text
	}
	return style.Render(text)
}

// ShouldUseColors decides whether to colorize output: an explicit flag
// wins, then CI conventions, then TTY detection.
func ShouldUseColors(force bool) bool {
	if force {
		return true
	}
	if os.Getenv("FORCE_COLOR") != "" {
		return true
	}
	if os.Getenv("GITHUB_ACTIONS") == "true" {
		return true
	}
	if info, _ := os.Stdout.Stat(); info != nil && (info.Mode()&os.ModeCharDevice) != 0 {
		return true
	}
	return false
}

// Reporter formats check results for humans.
type Reporter struct {
	w         io.Writer
	useColors bool
}

// NewReporter creates a reporter writing to w.
func NewReporter(w io.Writer, useColors bool) *Reporter {
	return &Reporter{w: w, useColors: useColors}
}

// PrintIssues outputs issues sorted by file, line, and column, one per
// line in "file:line:col: message (neur)" form.
func (r *Reporter) PrintIssues(issues []Issue) {
	sort.Slice(issues, func(i, j int) bool {
		if issues[i].Pos.Filename != issues[j].Pos.Filename {
			return issues[i].Pos.Filename < issues[j].Pos.Filename
		}
		if issues[i].Pos.Line != issues[j].Pos.Line {
			return issues[i].Pos.Line < issues[j].Pos.Line
		}
		return issues[i].Pos.Column < issues[j].Pos.Column
	})

	for _, issue := range issues {
		location := fmt.Sprintf("%s:%d:%d:", issue.Pos.Filename, issue.Pos.Line, issue.Pos.Column)
		fmt.Fprintf(r.w, "%s %s%s\n",
			RenderStyle(StyleLocation, location, r.useColors),
			issue.Text,
			RenderStyle(StyleMuted, " ("+linterName+")", r.useColors))
	}
}

// PrintSummary outputs the closing count line.
func (r *Reporter) PrintSummary(res CheckResult) {
	if len(res.Issues) == 0 {
		fmt.Fprintf(r.w, "%s %d files checked\n",
			RenderStyle(StyleSuccess, "no issues found:", r.useColors), res.FilesChecked)
		return
	}

	style := StyleWarning
	if res.ErrorCount > 0 {
		style = StyleFailure
	}
	summary := fmt.Sprintf("%d issues (%d errors, %d warnings)",
		len(res.Issues), res.ErrorCount, res.WarningCount)
	fmt.Fprintf(r.w, "\n%s across %d files\n",
		RenderStyle(style, summary, r.useColors), res.FilesChecked)
}
