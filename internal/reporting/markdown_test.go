package reporting

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gatoreducator/gatorgrade/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatMarkdown(t *testing.T) {
	summary := models.Aggregate([]models.Outcome{
		models.NewOutcome(todoSpec(), false, `Found 1 fragment(s) "TODO" in src/hello.py, expected exactly 0`),
		models.NewOutcome(ifSpec(), true, ""),
		models.NewOutcome(commandSpec(), false, ""),
	})

	want := "# Gatorgrade Insights\n\n" +
		"**Amount Correct:** 1/3\n" +
		"**Percentage Correct:** 33.3%\n" +
		"\n## Passing Checks\n" +
		"\n### ✔ Has if-statement\n" +
		"\n## Failing Checks\n" +
		"\n### ✘ Match TODO count 0\n\n" +
		"- **Check:** `MatchFileFragment`\n" +
		"- **Keyword:** `TODO`\n" +
		"- **Amount:** 0\n" +
		"- **File:** `src/hello.py`\n" +
		"- **Diagnostic:**\n\n```\nFound 1 fragment(s) \"TODO\" in src/hello.py, expected exactly 0\n```\n" +
		"\n### ✘ Pass flake8\n\n" +
		"- **Command:** `flake8 .`\n"

	assert.Equal(t, want, FormatMarkdown(summary))
}

func TestFormatMarkdownEmpty(t *testing.T) {
	got := FormatMarkdown(models.Aggregate(nil))

	assert.Contains(t, got, "**Amount Correct:** 0/0")
	assert.Contains(t, got, NoChecksMessage)
	assert.NotContains(t, got, "## Passing Checks")
}

func TestWriteMarkdown(t *testing.T) {
	path := filepath.Join(t.TempDir(), "insights.md")
	summary := sampleSummary()

	require.NoError(t, WriteMarkdown(summary, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, FormatMarkdown(summary), string(data))
}

func TestAppendGitHubStepSummary(t *testing.T) {
	t.Run("not in GitHub Actions", func(t *testing.T) {
		t.Setenv(GitHubStepSummaryEnv, "")

		ok, err := AppendGitHubStepSummary(sampleSummary())
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("appends to existing summary", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "step_summary.md")
		require.NoError(t, os.WriteFile(path, []byte("previous step\n"), 0644))
		t.Setenv(GitHubStepSummaryEnv, path)

		summary := sampleSummary()
		ok, err := AppendGitHubStepSummary(summary)
		require.NoError(t, err)
		assert.True(t, ok)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "previous step\n"+FormatMarkdown(summary)+"\n", string(data))
	})

	t.Run("unwritable path", func(t *testing.T) {
		t.Setenv(GitHubStepSummaryEnv, filepath.Join(t.TempDir(), "missing", "summary.md"))

		ok, err := AppendGitHubStepSummary(sampleSummary())
		assert.False(t, ok)
		assert.ErrorContains(t, err, GitHubStepSummaryEnv)
	})
}
