package checks

import (
	"context"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
)

// confirmFileExists passes when --file exists in --directory.
type confirmFileExists struct {
	opts Options
}

func (c *confirmFileExists) Name() string { return "ConfirmFileExists" }

func (c *confirmFileExists) Run(ctx context.Context, args []string) (Result, error) {
	var fa fileArgs
	fs := newFlagSet(c.Name())
	fa.register(fs)

	if err := parseArgs(fs, args, "file"); err != nil {
		return Result{}, err
	}

	path, err := fa.resolve(c.opts)
	if err != nil {
		return Result{}, err
	}

	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return Result{Passed: false, Diagnostic: fmt.Sprintf("File %s does not exist", displayPath(&fa))}, nil
	} else if err != nil {
		return Result{}, fmt.Errorf("%w: checking %s: %v", ErrInvalidSystemArguments, displayPath(&fa), err)
	}

	if info.IsDir() {
		return Result{Passed: false, Diagnostic: fmt.Sprintf("%s is a directory, not a file", displayPath(&fa))}, nil
	}

	return Result{Passed: true}, nil
}

// matchFileFragment counts the non-overlapping occurrences of --fragment.
type matchFileFragment struct {
	opts Options
}

func (c *matchFileFragment) Name() string { return "MatchFileFragment" }

func (c *matchFileFragment) Run(ctx context.Context, args []string) (Result, error) {
	var (
		fa       fileArgs
		ca       countArgs
		fragment string
	)

	fs := newFlagSet(c.Name())
	fa.register(fs)
	ca.register(fs)
	fs.StringVar(&fragment, "fragment", "", "text fragment to search for")

	if err := parseArgs(fs, args, "file", "fragment", "count"); err != nil {
		return Result{}, err
	}
	if err := ca.validate(); err != nil {
		return Result{}, err
	}
	if fragment == "" {
		return Result{}, fmt.Errorf("%w: --fragment must not be empty", ErrInvalidArguments)
	}

	content, failure, err := readTarget(c.opts, &fa)
	if err != nil || failure != nil {
		return derefResult(failure), err
	}

	actual := strings.Count(string(content), fragment)
	return ca.result(actual, fmt.Sprintf("fragment(s) %q", fragment), displayPath(&fa)), nil
}

// matchFileRegex counts the matches of --regex.
type matchFileRegex struct {
	opts Options
}

func (c *matchFileRegex) Name() string { return "MatchFileRegex" }

func (c *matchFileRegex) Run(ctx context.Context, args []string) (Result, error) {
	var (
		fa      fileArgs
		ca      countArgs
		pattern string
	)

	fs := newFlagSet(c.Name())
	fa.register(fs)
	ca.register(fs)
	fs.StringVar(&pattern, "regex", "", "regular expression to search for")

	if err := parseArgs(fs, args, "file", "regex", "count"); err != nil {
		return Result{}, err
	}
	if err := ca.validate(); err != nil {
		return Result{}, err
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return Result{}, fmt.Errorf("%w: invalid --regex %q: %v", ErrInvalidArguments, pattern, err)
	}

	content, failure, err := readTarget(c.opts, &fa)
	if err != nil || failure != nil {
		return derefResult(failure), err
	}

	actual := len(re.FindAllIndex(content, -1))
	return ca.result(actual, fmt.Sprintf("match(es) of %q", pattern), displayPath(&fa)), nil
}

// countFileLines counts the non-blank lines of --file.
type countFileLines struct {
	opts Options
}

func (c *countFileLines) Name() string { return "CountFileLines" }

func (c *countFileLines) Run(ctx context.Context, args []string) (Result, error) {
	var (
		fa fileArgs
		ca countArgs
	)

	fs := newFlagSet(c.Name())
	fa.register(fs)
	ca.register(fs)

	if err := parseArgs(fs, args, "file", "count"); err != nil {
		return Result{}, err
	}
	if err := ca.validate(); err != nil {
		return Result{}, err
	}

	content, failure, err := readTarget(c.opts, &fa)
	if err != nil || failure != nil {
		return derefResult(failure), err
	}

	actual := 0
	for _, line := range strings.Split(string(content), "\n") {
		if strings.TrimSpace(line) != "" {
			actual++
		}
	}

	return ca.result(actual, "line(s)", displayPath(&fa)), nil
}

func derefResult(r *Result) Result {
	if r == nil {
		return Result{}
	}
	return *r
}
