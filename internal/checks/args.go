package checks

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
)

// newFlagSet creates a quiet flag set for parsing a check's arguments.
func newFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.SortFlags = false
	return fs
}

// parseArgs parses args into fs, rejecting positional arguments and any of
// required that weren't set.
func parseArgs(fs *pflag.FlagSet, args []string, required ...string) error {
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidArguments, fs.Name(), err)
	}

	if fs.NArg() > 0 {
		return fmt.Errorf("%w: %s: unexpected arguments %q", ErrInvalidArguments, fs.Name(), fs.Args())
	}

	var missing []string
	for _, name := range required {
		if !fs.Changed(name) {
			missing = append(missing, "--"+name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s: missing required %s", ErrInvalidArguments, fs.Name(), strings.Join(missing, ", "))
	}

	return nil
}

// fileArgs are the --directory/--file arguments shared by the file checks.
type fileArgs struct {
	directory string
	file      string
}

func (fa *fileArgs) register(fs *pflag.FlagSet) {
	fs.StringVar(&fa.directory, "directory", ".", "directory containing the file")
	fs.StringVar(&fa.file, "file", "", "name of the file to check")
}

// resolve returns the full path of the file. The directory must exist; the
// file itself may not.
func (fa *fileArgs) resolve(opts Options) (string, error) {
	dir, err := resolveDir(opts, fa.directory)
	if err != nil {
		return "", err
	}

	if strings.TrimSpace(fa.file) == "" {
		return "", fmt.Errorf("%w: --file must not be empty", ErrInvalidArguments)
	}

	return filepath.Join(dir, fa.file), nil
}

// resolveDir resolves dir against the root directory and confirms it exists.
func resolveDir(opts Options, dir string) (string, error) {
	if dir == "" {
		dir = "."
	}
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(opts.RootDir, dir)
	}

	info, err := os.Stat(dir)
	if errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("%w: directory %q does not exist", ErrInvalidSystemArguments, dir)
	} else if err != nil {
		return "", fmt.Errorf("%w: checking directory %q: %v", ErrInvalidSystemArguments, dir, err)
	}

	if !info.IsDir() {
		return "", fmt.Errorf("%w: %q is not a directory", ErrInvalidSystemArguments, dir)
	}

	return dir, nil
}

// countArgs are the --count/--exact arguments shared by the counting checks.
// Without --exact the actual count must be at least --count.
type countArgs struct {
	count int
	exact bool
}

func (ca *countArgs) register(fs *pflag.FlagSet) {
	fs.IntVar(&ca.count, "count", 0, "expected count")
	fs.BoolVar(&ca.exact, "exact", false, "require the count to match exactly")
}

func (ca *countArgs) validate() error {
	if ca.count < 0 {
		return fmt.Errorf("%w: --count must not be negative, got %d", ErrInvalidArguments, ca.count)
	}
	return nil
}

func (ca *countArgs) satisfied(actual int) bool {
	if ca.exact {
		return actual == ca.count
	}
	return actual >= ca.count
}

// result builds the Result for an actual count of things in where.
func (ca *countArgs) result(actual int, things, where string) Result {
	if ca.satisfied(actual) {
		return Result{Passed: true}
	}

	qualifier := "at least"
	if ca.exact {
		qualifier = "exactly"
	}

	return Result{
		Passed:     false,
		Diagnostic: fmt.Sprintf("Found %d %s in %s, expected %s %d", actual, things, where, qualifier, ca.count),
	}
}

// readTarget reads the file named by fa. A missing file is a failed check,
// reported through the returned Result, not an error.
func readTarget(opts Options, fa *fileArgs) (content []byte, failure *Result, err error) {
	path, err := fa.resolve(opts)
	if err != nil {
		return nil, nil, err
	}

	content, err = os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, &Result{Passed: false, Diagnostic: fmt.Sprintf("File %s does not exist", displayPath(fa))}, nil
	} else if err != nil {
		return nil, nil, fmt.Errorf("%w: reading %s: %v", ErrInvalidSystemArguments, displayPath(fa), err)
	}

	return content, nil, nil
}

// displayPath is the path as written in the configuration, for diagnostics.
func displayPath(fa *fileArgs) string {
	return filepath.ToSlash(filepath.Join(fa.directory, fa.file))
}
