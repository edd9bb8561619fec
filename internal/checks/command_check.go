package checks

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"time"
)

// ExecuteCommandName is the check type used for shell command entries in the
// configuration file.
const ExecuteCommandName = "ExecuteCommand"

// executeCommand runs --command through the shell. Exit code 0 passes; on
// failure the combined stdout/stderr becomes the diagnostic.
type executeCommand struct {
	opts Options
}

func (c *executeCommand) Name() string { return ExecuteCommandName }

func (c *executeCommand) Run(ctx context.Context, args []string) (Result, error) {
	var (
		command        string
		directory      string
		timeoutSeconds int
	)

	fs := newFlagSet(c.Name())
	fs.StringVar(&command, "command", "", "shell command to run")
	fs.StringVar(&directory, "directory", ".", "working directory for the command")
	fs.IntVar(&timeoutSeconds, "timeout", 0, "timeout in seconds")

	if err := parseArgs(fs, args, "command"); err != nil {
		return Result{}, err
	}
	if strings.TrimSpace(command) == "" {
		return Result{}, fmt.Errorf("%w: --command must not be empty", ErrInvalidArguments)
	}
	if timeoutSeconds < 0 {
		return Result{}, fmt.Errorf("%w: --timeout must not be negative, got %d", ErrInvalidArguments, timeoutSeconds)
	}

	dir, err := resolveDir(c.opts, directory)
	if err != nil {
		return Result{}, err
	}

	timeout := c.opts.CommandTimeout
	if timeoutSeconds > 0 {
		timeout = time.Duration(timeoutSeconds) * time.Second
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	//nolint:gosec // commands come from the user's own configuration file
	cmd := shellCommand(timeoutCtx, command)
	cmd.Dir = dir
	// children of the shell can hold the output pipe open after it is killed
	cmd.WaitDelay = time.Second

	// stderr is merged into stdout so both can be reported together
	output, err := cmd.CombinedOutput()
	if err == nil {
		return Result{Passed: true}, nil
	}

	if errors.Is(timeoutCtx.Err(), context.DeadlineExceeded) {
		return Result{
			Passed:     false,
			Diagnostic: fmt.Sprintf("Command timed out after %s", timeout),
		}, nil
	}

	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return Result{}, fmt.Errorf("%w: running %q: %v", ErrInvalidSystemArguments, command, err)
	}

	diagnostic := indentDiagnostic(string(output))
	if diagnostic == "" {
		diagnostic = fmt.Sprintf("Command exited with code %d", exitErr.ExitCode())
	}

	return Result{Passed: false, Diagnostic: diagnostic}, nil
}

func shellCommand(ctx context.Context, command string) *exec.Cmd {
	if runtime.GOOS == "windows" {
		return exec.CommandContext(ctx, "cmd", "/C", command)
	}
	return exec.CommandContext(ctx, "sh", "-c", command)
}

// indentDiagnostic trims output and indents continuation lines so multi-line
// output lines up under the first line in the report.
func indentDiagnostic(output string) string {
	return strings.ReplaceAll(strings.TrimSpace(output), "\n", "\n     ")
}
