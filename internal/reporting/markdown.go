package reporting

import (
	"fmt"
	"os"
	"strings"

	"github.com/gatoreducator/gatorgrade/internal/checks"
	"github.com/gatoreducator/gatorgrade/internal/models"
)

// GitHubStepSummaryEnv names the file GitHub Actions renders as the job summary.
const GitHubStepSummaryEnv = "GITHUB_STEP_SUMMARY"

// FormatMarkdown renders summary as a markdown "insights" document. Passing
// checks get a short entry; failing checks include what was checked and why
// it failed so the reader doesn't need the configuration file.
func FormatMarkdown(summary models.Summary) string {
	var b strings.Builder

	b.WriteString("# Gatorgrade Insights\n\n")
	fmt.Fprintf(&b, "**Amount Correct:** %d/%d\n", summary.PassedCount, summary.TotalCount)
	fmt.Fprintf(&b, "**Percentage Correct:** %.1f%%\n", summary.Percentage)

	if summary.TotalCount == 0 {
		b.WriteString("\n" + NoChecksMessage + "\n")
		return b.String()
	}

	b.WriteString("\n## Passing Checks\n")
	for _, o := range summary.Outcomes {
		if !o.Passed {
			continue
		}
		fmt.Fprintf(&b, "\n### %s %s\n", GlyphPassed, o.Spec.DisplayName())
	}

	b.WriteString("\n## Failing Checks\n")
	for _, o := range summary.Outcomes {
		if o.Passed {
			continue
		}

		fmt.Fprintf(&b, "\n### %s %s\n\n", GlyphFailed, o.Spec.DisplayName())

		if o.Spec.CheckType == checks.ExecuteCommandName {
			fmt.Fprintf(&b, "- **Command:** `%s`\n", o.Spec.Argument("--command"))
		} else {
			fmt.Fprintf(&b, "- **Check:** `%s`\n", o.Spec.CheckType)
			if fragment := firstArgument(o.Spec, "--fragment", "--regex", "--tag"); fragment != "" {
				fmt.Fprintf(&b, "- **Keyword:** `%s`\n", fragment)
			}
			if count := o.Spec.Argument("--count"); count != "" {
				fmt.Fprintf(&b, "- **Amount:** %s\n", count)
			}
			if o.Spec.FileContext != "" {
				fmt.Fprintf(&b, "- **File:** `%s`\n", o.Spec.FileContext)
			}
		}

		if details := o.Details(); details != "" {
			fmt.Fprintf(&b, "- **Diagnostic:**\n\n```\n%s\n```\n", details)
		}
	}

	return b.String()
}

func firstArgument(spec models.CheckSpec, flags ...string) string {
	for _, f := range flags {
		if v := spec.Argument(f); v != "" {
			return v
		}
	}
	return ""
}

// WriteMarkdown writes the markdown insights for summary to path.
func WriteMarkdown(summary models.Summary, path string) error {
	if err := os.WriteFile(path, []byte(FormatMarkdown(summary)), 0644); err != nil {
		return fmt.Errorf("writing markdown report: %w", err)
	}
	return nil
}

// AppendGitHubStepSummary appends the markdown insights to the file named by
// $GITHUB_STEP_SUMMARY. It returns false, without error, when the variable
// isn't set (ie, not running in GitHub Actions).
func AppendGitHubStepSummary(summary models.Summary) (bool, error) {
	path := os.Getenv(GitHubStepSummaryEnv)
	if path == "" {
		return false, nil
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return false, fmt.Errorf("opening %s: %w", GitHubStepSummaryEnv, err)
	}
	defer f.Close() //nolint:errcheck

	if _, err := f.WriteString(FormatMarkdown(summary) + "\n"); err != nil {
		return false, fmt.Errorf("writing %s: %w", GitHubStepSummaryEnv, err)
	}

	return true, nil
}
