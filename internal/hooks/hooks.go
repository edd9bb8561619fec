// Package hooks runs the setup commands declared at the top of a check
// configuration before any check is invoked.
package hooks

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"runtime"
	"strings"
)

// ErrSetupFailed is wrapped by every error Execute returns for a command that
// ran and failed.
var ErrSetupFailed = errors.New("setup command failed")

// FromLines converts a setup script into commands, one per non-blank line.
// Lines starting with "#" are comments.
func FromLines(script string) []string {
	var cmds []string
	for _, line := range strings.Split(script, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		cmds = append(cmds, line)
	}
	return cmds
}

// Runner executes setup commands through the shell.
type Runner struct {
	// Dir is the working directory. Empty means the current directory.
	Dir string
	// Output receives the combined output of every command. Nil discards it.
	Output io.Writer
}

// Execute runs cmds in order and stops at the first one that exits non-zero.
// name identifies the group of commands (e.g. "setup") for logging and error context.
func (r *Runner) Execute(ctx context.Context, name string, cmds []string) error {
	for i, c := range cmds {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("%s: context canceled: %w", name, err)
		}

		if err := r.run(ctx, name, i, c); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) run(ctx context.Context, name string, index int, command string) error {
	slog.Debug("Running setup command", "group", name, "index", index, "command", command)

	//nolint:gosec // setup commands are user-configured in gatorgrade.yml, not untrusted input
	cmd := shellCommand(ctx, command)
	cmd.Dir = r.Dir

	output, err := cmd.CombinedOutput()

	if r.Output != nil && len(output) > 0 {
		fmt.Fprintf(r.Output, "[%s] %s", name, output)
		if !strings.HasSuffix(string(output), "\n") {
			fmt.Fprintln(r.Output)
		}
	}

	if err == nil {
		return nil
	}

	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		// Non-exit error (e.g. shell not found)
		return fmt.Errorf("%w: %s[%d] %q: %v", ErrSetupFailed, name, index, command, err)
	}

	slog.Error("Setup command failed", "group", name, "command", command, "exitCode", exitErr.ExitCode(), "output", string(output))
	return fmt.Errorf("%w: %s[%d] %q exited with code %d", ErrSetupFailed, name, index, command, exitErr.ExitCode())
}

func shellCommand(ctx context.Context, command string) *exec.Cmd {
	if runtime.GOOS == "windows" {
		return exec.CommandContext(ctx, "cmd", "/C", command)
	}
	return exec.CommandContext(ctx, "sh", "-c", command)
}
