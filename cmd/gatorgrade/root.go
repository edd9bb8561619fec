package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gatoreducator/gatorgrade/internal/checks"
	"github.com/gatoreducator/gatorgrade/internal/config"
	"github.com/gatoreducator/gatorgrade/internal/hooks"
	"github.com/gatoreducator/gatorgrade/internal/models"
	"github.com/gatoreducator/gatorgrade/internal/orchestration"
	"github.com/gatoreducator/gatorgrade/internal/projectconfig"
	"github.com/gatoreducator/gatorgrade/internal/reporting"
	"github.com/gatoreducator/gatorgrade/internal/spinner"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var version = "dev"

// runOptions holds the flags of the root command.
type runOptions struct {
	configPath    string
	parallel      bool
	workers       int
	filters       []string
	verbose       bool
	jsonPath      string
	markdownPath  string
	junitPath     string
	githubSummary bool
}

func newRootCommand() *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "gatorgrade",
		Short: "GatorGrade - run the checks in a gatorgrade.yml file",
		Long: `GatorGrade runs the checks listed in a configuration file against the
current repository and reports which of them pass.

Checks either inspect files (fragments, regular expressions, line and
paragraph counts, markdown structure), count commits, or run a shell command.
The exit code is 0 only when every check passes.`,
		Version:      version,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runChecks(cmd, opts)
		},
	}

	debugLogging := cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if *debugLogging {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}
	}

	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", projectconfig.DefaultConfigFile, "Name of the YAML configuration file")
	cmd.Flags().BoolVar(&opts.parallel, "parallel", false, "Run checks concurrently")
	cmd.Flags().IntVar(&opts.workers, "workers", 0, "Number of concurrent workers (default: number of CPUs, requires --parallel)")
	cmd.Flags().StringArrayVar(&opts.filters, "filter", nil, "Only run checks whose description or type matches this glob pattern (can be repeated)")
	cmd.Flags().BoolVar(&opts.verbose, "verbose", false, "Print each check as it starts")
	cmd.Flags().StringVar(&opts.jsonPath, "report-json", "", "Write a JSON report to this file")
	cmd.Flags().StringVar(&opts.markdownPath, "report-md", "", "Write a markdown report to this file")
	cmd.Flags().StringVar(&opts.junitPath, "junit", "", "Write a JUnit XML report to this file")
	cmd.Flags().BoolVar(&opts.githubSummary, "github-summary", true, "Append the markdown report to $GITHUB_STEP_SUMMARY when it is set")

	cmd.AddCommand(newChecksCommand())
	cmd.AddCommand(newValidateCommand())

	return cmd
}

func execute() error {
	rootCmd := newRootCommand()
	return rootCmd.Execute()
}

// applySettings fills options the user didn't pass on the command line from
// the project settings file.
func applySettings(cmd *cobra.Command, opts *runOptions, settings *projectconfig.ProjectConfig) {
	flags := cmd.Flags()

	if !flags.Changed("config") {
		opts.configPath = settings.Config
	}
	if !flags.Changed("parallel") && settings.Run.Parallel != nil {
		opts.parallel = *settings.Run.Parallel
	}
	if !flags.Changed("workers") && settings.Path() != "" {
		opts.workers = settings.Run.Workers
	}
	if !flags.Changed("report-json") {
		opts.jsonPath = settings.Reports.JSON
	}
	if !flags.Changed("report-md") {
		opts.markdownPath = settings.Reports.Markdown
	}
	if !flags.Changed("junit") {
		opts.junitPath = settings.Reports.JUnit
	}
	if !flags.Changed("github-summary") && settings.Reports.GitHubSummary != nil {
		opts.githubSummary = *settings.Reports.GitHubSummary
	}
}

func (o *runOptions) workerCount() int {
	if !o.parallel {
		return 1
	}
	if o.workers > 0 {
		return o.workers
	}
	return runtime.NumCPU()
}

func runChecks(cmd *cobra.Command, opts *runOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	stdout := cmd.OutOrStdout()
	stderr := cmd.ErrOrStderr()

	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting working directory: %w", err)
	}

	settings, err := projectconfig.Load(wd)
	if err != nil {
		return err
	}
	applySettings(cmd, opts, settings)

	if opts.workers < 0 {
		return fmt.Errorf("--workers must not be negative, got %d", opts.workers)
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		slog.Warn("Could not load configuration", "path", opts.configPath, "error", err)
		fmt.Fprintf(stderr, "The file %s either does not exist or is not valid.\n", opts.configPath)
		cfg = &config.Config{Path: opts.configPath}
	}

	if setup := hooks.FromLines(cfg.Setup); len(setup) > 0 {
		setupRunner := &hooks.Runner{Dir: wd, Output: stderr}
		if err := setupRunner.Execute(ctx, "setup", setup); err != nil {
			return fmt.Errorf("running setup commands: %w", err)
		}
	}

	specs, err := orchestration.FilterSpecs(cfg.Checks, opts.filters)
	if err != nil {
		return err
	}

	registry := checks.NewDefaultRegistry(checks.Options{
		RootDir:        wd,
		CommandTimeout: settings.CommandTimeout(),
	})

	target := filepath.Base(wd)
	runner := orchestration.NewRunner(registry,
		orchestration.WithWorkers(opts.workerCount()),
		orchestration.WithTextOptions(reporting.TextOptions{
			Target: target,
			Border: isTerminal(stdout),
		}),
	)
	var sp *spinner.Spinner
	if opts.verbose {
		runner.OnProgress(newProgressListener(stderr))
	} else if isTerminal(stderr) && len(specs) > 0 {
		sp = spinner.Start(stderr, fmt.Sprintf("Running %d check(s)", len(specs)))
		runner.OnProgress(newSpinnerListener(sp))
	}

	result := runner.Run(ctx, specs)
	if sp != nil {
		sp.Stop()
	}
	fmt.Fprint(stdout, result.Report)

	if err := writeReports(opts, result.Summary, target, stderr); err != nil {
		return err
	}

	if !result.OverallPass {
		return &ChecksFailedError{Message: failureMessage(result.Summary, opts.configPath)}
	}
	return nil
}

// writeReports writes every report file that was asked for.
func writeReports(opts *runOptions, summary models.Summary, target string, stderr io.Writer) error {
	if opts.jsonPath != "" {
		if err := reporting.WriteJSON(summary, opts.jsonPath); err != nil {
			return err
		}
		slog.Debug("Wrote JSON report", "path", opts.jsonPath)
	}

	if opts.markdownPath != "" {
		if err := reporting.WriteMarkdown(summary, opts.markdownPath); err != nil {
			return err
		}
		slog.Debug("Wrote markdown report", "path", opts.markdownPath)
	}

	if opts.junitPath != "" {
		if err := reporting.WriteJUnitXML(summary, target, time.Now(), opts.junitPath); err != nil {
			return fmt.Errorf("writing JUnit report: %w", err)
		}
		slog.Debug("Wrote JUnit report", "path", opts.junitPath)
	}

	if opts.githubSummary {
		// step summary problems are only warnings
		if _, err := reporting.AppendGitHubStepSummary(summary); err != nil {
			fmt.Fprintf(stderr, "warning: %v\n", err)
		}
	}

	return nil
}

func failureMessage(summary models.Summary, configPath string) string {
	if summary.TotalCount == 0 {
		return fmt.Sprintf("no checks were found in %s", configPath)
	}
	failed := summary.TotalCount - summary.PassedCount
	return fmt.Sprintf("%d of %d check(s) failed", failed, summary.TotalCount)
}

// newProgressListener prints a line to w as each check starts. Listeners may
// be called concurrently, so writes are serialized.
func newProgressListener(w io.Writer) orchestration.ProgressListener {
	var mu sync.Mutex
	return func(event orchestration.ProgressEvent) {
		if event.EventType != orchestration.EventCheckStart {
			return
		}
		mu.Lock()
		defer mu.Unlock()
		fmt.Fprintf(w, "[%d/%d] %s\n", event.CheckNum, event.TotalChecks, event.Description)
	}
}

// newSpinnerListener updates sp with the number of completed checks.
func newSpinnerListener(sp *spinner.Spinner) orchestration.ProgressListener {
	var completed atomic.Int32
	return func(event orchestration.ProgressEvent) {
		if event.EventType != orchestration.EventCheckComplete {
			return
		}
		n := completed.Add(1)
		sp.Update(fmt.Sprintf("Running checks [%d/%d]", n, event.TotalChecks))
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
