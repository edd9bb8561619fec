package validation

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const validConfigYAML = `setup: |
  pip install -r requirements.txt
---
- src:
    - hello.py:
        - description: Complete all TODOs
          check: MatchFileFragment
          options:
            fragment: TODO
            count: 0
            exact: true
        - description: Define a main function
          check: MatchFileRegex
          options:
            regex: "def main"
            count: 1
- description: Pass flake8
  command: flake8 src
  timeout: 60
- description: Have at least 8 commits
  check: CountCommits
  options:
    count: 8
`

const checksOnlyYAML = `- description: Pass flake8
  command: flake8 .
`

const invalidChecksYAML = `- description: Has both
  check: MatchFileFragment
  command: echo hi
- description: Bad option value
  check: CountCommits
  options:
    count: [1, 2]
- description: No check
`

func TestValidateConfigBytes_Valid(t *testing.T) {
	errs := ValidateConfigBytes([]byte(validConfigYAML))
	require.Empty(t, errs, "valid config should have no errors")
}

func TestValidateConfigBytes_ChecksOnly(t *testing.T) {
	errs := ValidateConfigBytes([]byte(checksOnlyYAML))
	require.Empty(t, errs)
}

func TestValidateConfigBytes_Empty(t *testing.T) {
	require.Empty(t, ValidateConfigBytes([]byte("")))
	require.Empty(t, ValidateConfigBytes([]byte("# nothing yet\n")))
}

func TestValidateConfigBytes_Invalid(t *testing.T) {
	errs := ValidateConfigBytes([]byte(invalidChecksYAML))
	require.NotEmpty(t, errs, "invalid config should have errors")

	joined := strings.Join(errs, "\n")
	require.Contains(t, joined, "checks /0")
	require.Contains(t, joined, "checks /1")
	require.Contains(t, joined, "checks /2")
}

func TestValidateConfigBytes_BadSetup(t *testing.T) {
	errs := ValidateConfigBytes([]byte("setup: [1, 2]\n---\n" + checksOnlyYAML))
	require.NotEmpty(t, errs)
	require.True(t, strings.HasPrefix(errs[0], "setup /setup"), errs[0])
}

func TestValidateConfigBytes_TooManyDocuments(t *testing.T) {
	errs := ValidateConfigBytes([]byte("setup: echo\n---\n" + checksOnlyYAML + "---\n" + checksOnlyYAML))
	require.Len(t, errs, 1)
	require.Contains(t, errs[0], "at most 2 YAML documents")
}

func TestValidateConfigBytes_ParseError(t *testing.T) {
	errs := ValidateConfigBytes([]byte("- description: [broken\n"))
	require.Len(t, errs, 1)
	require.Contains(t, errs[0], "YAML parse error")
}

func TestDocuments(t *testing.T) {
	docs, err := Documents([]byte("setup: echo\n---\n~\n---\n" + checksOnlyYAML))
	require.NoError(t, err)
	require.Len(t, docs, 2, "null document should be dropped")
}

func TestSplit(t *testing.T) {
	tests := []struct {
		name       string
		content    string
		wantSetup  bool
		wantChecks bool
	}{
		{name: "empty", content: ""},
		{name: "checks only", content: checksOnlyYAML, wantChecks: true},
		{name: "setup and checks", content: "setup: echo\n---\n" + checksOnlyYAML, wantSetup: true, wantChecks: true},
		{name: "setup and empty checks", content: "setup: echo\n---\n", wantSetup: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			docs, err := Documents([]byte(tt.content))
			require.NoError(t, err)

			setup, checks := Split(docs)
			require.Equal(t, tt.wantSetup, setup != nil)
			require.Equal(t, tt.wantChecks, checks != nil)
		})
	}
}

func TestValidateConfigBytes_SetupWithEmptyChecks(t *testing.T) {
	require.Empty(t, ValidateConfigBytes([]byte("setup: echo\n---\n")))

	// a lone mapping is held to the setup schema
	errs := ValidateConfigBytes([]byte("src: []\n"))
	require.NotEmpty(t, errs)
	require.True(t, strings.HasPrefix(errs[0], "setup "), errs[0])
}

func TestValidateConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gatorgrade.yml")
	require.NoError(t, os.WriteFile(path, []byte(validConfigYAML), 0644))

	errs, err := ValidateConfigFile(path)
	require.NoError(t, err)
	require.Empty(t, errs)
}

func TestValidateConfigFile_NotFound(t *testing.T) {
	_, err := ValidateConfigFile("/nonexistent/gatorgrade.yml")
	require.Error(t, err)
}
