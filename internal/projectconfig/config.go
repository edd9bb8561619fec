// Package projectconfig provides the ProjectConfig struct and loader for
// .gatorgrade.yaml project-level settings files.
package projectconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// FileName is the name of the project settings file.
const FileName = ".gatorgrade.yaml"

// maxSearchDepth bounds how many directories Load walks up.
const maxSearchDepth = 10

// Default values for project configuration. New() references them and no
// other code should duplicate them.
const (
	DefaultConfigFile     = "gatorgrade.yml"
	DefaultCommandTimeout = 300
	DefaultWorkers        = 4
)

// RunConfig holds how checks are executed.
type RunConfig struct {
	Parallel *bool `yaml:"parallel,omitempty"`
	Workers  int   `yaml:"workers,omitempty"`
	// CommandTimeout is the ExecuteCommand timeout, in seconds.
	CommandTimeout int `yaml:"command_timeout,omitempty"`
}

// ReportsConfig holds the report files written after a run. Empty paths
// disable the report.
type ReportsConfig struct {
	JSON          string `yaml:"json,omitempty"`
	Markdown      string `yaml:"markdown,omitempty"`
	JUnit         string `yaml:"junit,omitempty"`
	GitHubSummary *bool  `yaml:"github_summary,omitempty"`
}

// ProjectConfig is the top-level configuration loaded from .gatorgrade.yaml.
type ProjectConfig struct {
	// Config is the check configuration file, relative to the directory the
	// command runs in.
	Config  string        `yaml:"config,omitempty"`
	Run     RunConfig     `yaml:"run,omitempty"`
	Reports ReportsConfig `yaml:"reports,omitempty"`

	// path is where the settings were loaded from. Empty when only defaults
	// are in use.
	path string
}

// New returns a ProjectConfig with all hard-coded defaults populated.
func New() *ProjectConfig {
	return &ProjectConfig{
		Config: DefaultConfigFile,
		Run: RunConfig{
			Parallel:       boolPtr(false),
			Workers:        DefaultWorkers,
			CommandTimeout: DefaultCommandTimeout,
		},
		Reports: ReportsConfig{
			GitHubSummary: boolPtr(true),
		},
	}
}

// Path returns the file the settings were loaded from, or "" for defaults.
func (c *ProjectConfig) Path() string {
	return c.path
}

// CommandTimeout returns Run.CommandTimeout as a duration.
func (c *ProjectConfig) CommandTimeout() time.Duration {
	return time.Duration(c.Run.CommandTimeout) * time.Second
}

// Load finds .gatorgrade.yaml by walking up from startDir (max 10 levels),
// unmarshals it, and fills in missing fields with defaults.
// If no settings file is found, returns defaults with a nil error.
// Real I/O errors (e.g. permission denied) are returned to the caller.
func Load(startDir string) (*ProjectConfig, error) {
	cfg := New()

	path, data, err := findConfigFile(startDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("loading %s: %w", FileName, err)
	}

	var fileCfg ProjectConfig
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	mergeConfig(cfg, &fileCfg)
	cfg.path = path

	if cfg.Run.Workers < 1 {
		return nil, fmt.Errorf("%s: run.workers must be at least 1, got %d", path, cfg.Run.Workers)
	}
	if cfg.Run.CommandTimeout < 0 {
		return nil, fmt.Errorf("%s: run.command_timeout must not be negative, got %d", path, cfg.Run.CommandTimeout)
	}
	return cfg, nil
}

// findConfigFile walks up from dir looking for .gatorgrade.yaml. Returns
// os.ErrNotExist if no settings file is found.
func findConfigFile(dir string) (string, []byte, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", nil, fmt.Errorf("resolving path %q: %w", dir, err)
	}
	dir = absDir

	for range maxSearchDepth {
		p := filepath.Join(dir, FileName)
		data, err := os.ReadFile(p)
		if err == nil {
			return p, data, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return "", nil, fmt.Errorf("reading %q: %w", p, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break // reached filesystem root
		}
		dir = parent
	}
	return "", nil, os.ErrNotExist
}

// mergeConfig overlays non-zero values from src onto dst.
func mergeConfig(dst, src *ProjectConfig) {
	if src.Config != "" {
		dst.Config = src.Config
	}

	// Run
	if src.Run.Parallel != nil {
		dst.Run.Parallel = src.Run.Parallel
	}
	if src.Run.Workers != 0 {
		dst.Run.Workers = src.Run.Workers
	}
	if src.Run.CommandTimeout != 0 {
		dst.Run.CommandTimeout = src.Run.CommandTimeout
	}

	// Reports
	if src.Reports.JSON != "" {
		dst.Reports.JSON = src.Reports.JSON
	}
	if src.Reports.Markdown != "" {
		dst.Reports.Markdown = src.Reports.Markdown
	}
	if src.Reports.JUnit != "" {
		dst.Reports.JUnit = src.Reports.JUnit
	}
	if src.Reports.GitHubSummary != nil {
		dst.Reports.GitHubSummary = src.Reports.GitHubSummary
	}
}

func boolPtr(b bool) *bool {
	return &b
}
