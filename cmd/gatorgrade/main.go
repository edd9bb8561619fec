package main

import (
	"errors"
	"fmt"
	"os"
)

// Exit codes for different failure modes
const (
	ExitSuccess      = 0 // All checks passed
	ExitChecksFailed = 1 // One or more checks failed, or there were none
	ExitError        = 2 // Setup or runtime error
)

// ChecksFailedError indicates that the checks ran but did not all pass.
type ChecksFailedError struct {
	Message string
}

func (e *ChecksFailedError) Error() string {
	return e.Message
}

func main() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps an error returned by the root command to a process exit code.
func exitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var checksFailedErr *ChecksFailedError
	if errors.As(err, &checksFailedErr) {
		return ExitChecksFailed
	}

	// All other errors are setup/runtime errors
	return ExitError
}
