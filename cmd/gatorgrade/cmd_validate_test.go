package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCommand_Valid(t *testing.T) {
	setupRepo(t, passingConfig)

	stdout, _, err := runRoot(t, "validate")
	require.NoError(t, err)
	assert.Contains(t, stdout, "gatorgrade.yml is valid (2 check(s))")
}

func TestValidateCommand_SchemaProblems(t *testing.T) {
	setupRepo(t, `- description: Both
  check: MatchFileFragment
  command: echo hi
`)

	stdout, _, err := runRoot(t, "validate")
	require.Error(t, err)
	assert.Equal(t, ExitError, exitCode(err))
	assert.Contains(t, stdout, "gatorgrade.yml has")
	assert.Contains(t, stdout, "checks /0")
}

func TestValidateCommand_UnknownCheckType(t *testing.T) {
	setupRepo(t, `- description: Typo
  check: CountCommitts
`)

	stdout, _, err := runRoot(t, "validate", "-c", "gatorgrade.yml")
	require.Error(t, err)
	assert.Contains(t, stdout, "Typo: invalid check")
}

func TestValidateCommand_MissingFile(t *testing.T) {
	setupRepo(t, "")

	_, _, err := runRoot(t, "validate", "--config", "nope.yml")
	require.Error(t, err)
}
