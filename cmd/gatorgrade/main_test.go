package main

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChecksFailedError(t *testing.T) {
	err := &ChecksFailedError{
		Message: "2 of 5 check(s) failed",
	}

	assert.Equal(t, "2 of 5 check(s) failed", err.Error())
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{
			name: "success",
			err:  nil,
			want: ExitSuccess,
		},
		{
			name: "ChecksFailedError",
			err:  &ChecksFailedError{Message: "check failure"},
			want: ExitChecksFailed,
		},
		{
			name: "wrapped ChecksFailedError",
			err:  fmt.Errorf("run: %w", &ChecksFailedError{Message: "check failure"}),
			want: ExitChecksFailed,
		},
		{
			name: "joined ChecksFailedError",
			err:  errors.Join(&ChecksFailedError{Message: "check failure"}, errors.New("additional context")),
			want: ExitChecksFailed,
		},
		{
			name: "regular error",
			err:  errors.New("setup error"),
			want: ExitError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitCode(tt.err))
		})
	}
}
