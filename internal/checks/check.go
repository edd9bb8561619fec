// Package checks provides the Check interface, the registry that maps check
// type names to implementations, and the built-in checks.
package checks

import (
	"context"
	"errors"
	"time"
)

// Errors returned by checks. Implementations wrap these with %w so callers can
// classify failures with [errors.Is].
var (
	// ErrInvalidArguments means the check's own arguments are malformed (wrong
	// count, wrong type, missing required flag).
	ErrInvalidArguments = errors.New("invalid check arguments")

	// ErrInvalidSystemArguments means an argument that refers to the filesystem
	// or environment is invalid (ex: a directory that doesn't exist).
	ErrInvalidSystemArguments = errors.New("invalid system arguments")

	// ErrInvalidCheck means no check is registered under the requested name.
	ErrInvalidCheck = errors.New("invalid check")
)

// Result holds the verdict of a check that ran to completion.
type Result struct {
	// Passed indicates whether the check met its acceptance criteria.
	Passed bool
	// Diagnostic explains a failure. Checks may leave it empty on success.
	Diagnostic string
}

//go:generate go tool mockgen -source check.go -destination mocks/mock_check.go -package mocks

// Check is a single named probe against the target repository.
type Check interface {
	// Name is the check type used in configuration files (ex: "MatchFileFragment").
	Name() string

	// Run parses args and performs the check. A non-nil error means the check
	// couldn't produce a verdict.
	Run(ctx context.Context, args []string) (Result, error)
}

// Options configure the built-in checks.
type Options struct {
	// RootDir is the directory relative --directory arguments are resolved
	// against. Defaults to the current directory.
	RootDir string

	// CommandTimeout bounds ExecuteCommand checks that don't pass --timeout.
	CommandTimeout time.Duration
}

// DefaultCommandTimeout is used when [Options.CommandTimeout] is not set.
const DefaultCommandTimeout = 300 * time.Second

func (o Options) withDefaults() Options {
	if o.RootDir == "" {
		o.RootDir = "."
	}
	if o.CommandTimeout <= 0 {
		o.CommandTimeout = DefaultCommandTimeout
	}
	return o
}

// funcCheck adapts a plain function to the [Check] interface.
type funcCheck struct {
	name string
	fn   func(ctx context.Context, args []string) (Result, error)
}

// NewFunc creates a [Check] named name that calls fn.
func NewFunc(name string, fn func(ctx context.Context, args []string) (Result, error)) Check {
	return &funcCheck{name: name, fn: fn}
}

func (fc *funcCheck) Name() string { return fc.name }

func (fc *funcCheck) Run(ctx context.Context, args []string) (Result, error) {
	return fc.fn(ctx, args)
}
