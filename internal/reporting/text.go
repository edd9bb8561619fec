// Package reporting renders check summaries as text, JSON, markdown and JUnit XML.
package reporting

import (
	"fmt"
	"strings"

	"github.com/gatoreducator/gatorgrade/internal/models"
	"github.com/mattn/go-runewidth"
)

const (
	GlyphPassed = "✔"
	GlyphFailed = "✘"
)

// NoChecksMessage is the report body for an empty batch.
const NoChecksMessage = "No checks were found."

// TextOptions control the optional parts of the text report.
type TextOptions struct {
	// Target names what was checked (usually the repository directory name) and
	// is appended to the summary line.
	Target string
	// Border frames the summary line in a box.
	Border bool
}

// Render produces the plain text report for summary.
func Render(summary models.Summary) string {
	return RenderText(summary, TextOptions{})
}

// RenderText produces the text report for summary: one line per check in
// order, a FAILURES section with the details of every failed check, and a
// final summary line. The output depends only on its arguments.
func RenderText(summary models.Summary, opts TextOptions) string {
	var b strings.Builder

	if summary.TotalCount == 0 {
		b.WriteString(NoChecksMessage + "\n")
	}

	for _, o := range summary.Outcomes {
		b.WriteString(outcomeLine(o))
		b.WriteString("\n")
	}

	if failed := summary.Failed(); len(failed) > 0 {
		b.WriteString("\n-~-  FAILURES  -~-\n\n")
		for _, o := range failed {
			fmt.Fprintf(&b, "%s  %s\n", GlyphFailed, o.Spec.DisplayName())
			if details := o.Details(); details != "" {
				fmt.Fprintf(&b, "   → %s\n", details)
			}
		}
	}

	b.WriteString("\n")
	line := SummaryLine(summary, opts.Target)
	if opts.Border {
		b.WriteString(Border(line))
	} else {
		b.WriteString(line + "\n")
	}

	return b.String()
}

// outcomeLine is the single report line for o. Errors are shown inline;
// diagnostics of plain failures are left for the FAILURES section.
func outcomeLine(o models.Outcome) string {
	if o.Passed {
		return GlyphPassed + "  " + o.Spec.DisplayName()
	}

	line := GlyphFailed + "  " + o.Spec.DisplayName()
	if o.Errored() {
		line += " (" + o.Details() + ")"
	}
	return line
}

// SummaryLine is the "Passed P/T (X.X%) of checks" line, with " for <target>!"
// appended when target is set.
func SummaryLine(summary models.Summary, target string) string {
	line := fmt.Sprintf("Passed %d/%d (%.1f%%) of checks", summary.PassedCount, summary.TotalCount, summary.Percentage)
	if target != "" {
		line += " for " + target + "!"
	}
	return line
}

// Border frames text in a heavy box. The width is measured in terminal
// cells so wide characters in the text keep the box aligned.
func Border(text string) string {
	horizontal := strings.Repeat("━", runewidth.StringWidth(text)+2)

	var b strings.Builder
	b.WriteString("┏" + horizontal + "┓\n")
	b.WriteString("┃ " + text + " ┃\n")
	b.WriteString("┗" + horizontal + "┛\n")
	return b.String()
}
