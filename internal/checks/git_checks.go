package checks

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// countCommits counts the commits reachable from HEAD in the repository at
// --directory.
type countCommits struct {
	opts Options
}

func (c *countCommits) Name() string { return "CountCommits" }

func (c *countCommits) Run(ctx context.Context, args []string) (Result, error) {
	var (
		ca        countArgs
		directory string
	)

	fs := newFlagSet(c.Name())
	ca.register(fs)
	fs.StringVar(&directory, "directory", ".", "directory inside the git repository")

	if err := parseArgs(fs, args, "count"); err != nil {
		return Result{}, err
	}
	if err := ca.validate(); err != nil {
		return Result{}, err
	}

	dir, err := resolveDir(c.opts, directory)
	if err != nil {
		return Result{}, err
	}

	actual, err := commitCount(ctx, dir)
	if err != nil {
		return Result{}, err
	}

	return ca.result(actual, "commit(s)", "the repository"), nil
}

// commitCount runs "git rev-list --count HEAD". A repository without commits
// has a count of 0.
func commitCount(ctx context.Context, dir string) (int, error) {
	cmd := exec.CommandContext(ctx, "git", "-C", dir, "rev-list", "--count", "HEAD")
	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			stderr := string(exitErr.Stderr)
			if strings.Contains(stderr, "unknown revision") || strings.Contains(stderr, "ambiguous argument 'HEAD'") {
				return 0, nil
			}
			return 0, fmt.Errorf("%w: %q is not a git repository: %s", ErrInvalidSystemArguments, dir, strings.TrimSpace(stderr))
		}
		return 0, fmt.Errorf("%w: running git: %v", ErrInvalidSystemArguments, err)
	}

	n, err := strconv.Atoi(strings.TrimSpace(string(out)))
	if err != nil {
		return 0, fmt.Errorf("parsing git rev-list output %q: %w", out, err)
	}
	return n, nil
}
