package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChecksCommand(t *testing.T) {
	stdout, _, err := runRoot(t, "checks")
	require.NoError(t, err)

	names := strings.Fields(stdout)
	assert.Equal(t, []string{
		"ConfirmFileExists",
		"CountCommits",
		"CountFileLines",
		"CountFileParagraphs",
		"CountMarkdownTags",
		"ExecuteCommand",
		"MatchFileFragment",
		"MatchFileRegex",
	}, names)
}
