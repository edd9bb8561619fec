// Package config loads gatorgrade.yml files and turns them into check specs.
//
// A file holds one or two YAML documents. When there are two, the first is a
// setup document ("setup: <shell commands>") and the second lists the checks.
// Checks can be grouped under paths:
//
//	- src:
//	    - hello.py:
//	        - description: Complete all TODOs
//	          check: MatchFileFragment
//	          options:
//	            fragment: TODO
//	            count: 0
//
// which gives the check the file context "src/hello.py".
package config

import (
	"errors"
	"fmt"
	"os"
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/gatoreducator/gatorgrade/internal/checks"
	"github.com/gatoreducator/gatorgrade/internal/models"
	"github.com/gatoreducator/gatorgrade/internal/validation"
	"github.com/go-viper/mapstructure/v2"
	"gopkg.in/yaml.v3"
)

// ErrConfigNotFound is returned by Load when the configuration file doesn't exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// ValidationError reports a configuration file that doesn't match the schema.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s", strings.Join(e.Problems, "; "))
}

// Config is a parsed gatorgrade.yml file.
type Config struct {
	// Path is the file the configuration was loaded from.
	Path string
	// Setup holds the shell commands to run before the checks, one per line.
	Setup string
	// Checks are in file order.
	Checks []models.CheckSpec
}

// entry is a single check in the check document.
type entry struct {
	Description string         `mapstructure:"description"`
	Check       string         `mapstructure:"check"`
	Command     string         `mapstructure:"command"`
	Timeout     int            `mapstructure:"timeout"`
	Options     map[string]any `mapstructure:"options"`
}

// Load reads and parses the configuration file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	cfg.Path = path
	return cfg, nil
}

// Parse parses configuration file content. An empty file yields a config
// with no checks.
func Parse(data []byte) (*Config, error) {
	docs, err := validation.Documents(data)
	if err != nil {
		return nil, err
	}

	if problems := validation.ValidateDocuments(docs); len(problems) > 0 {
		return nil, &ValidationError{Problems: problems}
	}

	cfg := &Config{}
	setupDoc, checksDoc := validation.Split(docs)

	if setupDoc != nil {
		var setup struct {
			Setup string `yaml:"setup"`
		}
		if err := setupDoc.Decode(&setup); err != nil {
			return nil, fmt.Errorf("decoding setup document: %w", err)
		}
		cfg.Setup = setup.Setup
	}

	if checksDoc == nil {
		return cfg, nil
	}

	root := checksDoc
	if root.Kind == yaml.DocumentNode {
		root = root.Content[0]
	}

	if err := addChecks(&cfg.Checks, root, ""); err != nil {
		return nil, err
	}
	return cfg, nil
}

// addChecks walks a sequence of entries, descending into path groups, and
// appends a spec for every check in document order.
func addChecks(specs *[]models.CheckSpec, seq *yaml.Node, context string) error {
	for _, item := range seq.Content {
		if isGroup(item) {
			for i := 0; i+1 < len(item.Content); i += 2 {
				key, value := item.Content[i], item.Content[i+1]
				if err := addChecks(specs, value, path.Join(context, key.Value)); err != nil {
					return err
				}
			}
			continue
		}

		spec, err := decodeEntry(item, context)
		if err != nil {
			return err
		}
		*specs = append(*specs, spec)
	}
	return nil
}

// isGroup reports whether a mapping groups entries under a path rather than
// describing a check.
func isGroup(n *yaml.Node) bool {
	if n.Kind != yaml.MappingNode {
		return false
	}
	for i := 1; i < len(n.Content); i += 2 {
		if n.Content[i].Kind == yaml.SequenceNode {
			return true
		}
	}
	return false
}

func decodeEntry(n *yaml.Node, context string) (models.CheckSpec, error) {
	var raw map[string]any
	if err := n.Decode(&raw); err != nil {
		return models.CheckSpec{}, fmt.Errorf("line %d: %w", n.Line, err)
	}

	var e entry
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &e,
		ErrorUnused: true,
	})
	if err != nil {
		return models.CheckSpec{}, err
	}
	if err := dec.Decode(raw); err != nil {
		return models.CheckSpec{}, fmt.Errorf("line %d: %w", n.Line, err)
	}

	if e.Command != "" {
		return commandSpec(e, context), nil
	}
	return checkSpec(e, context), nil
}

func commandSpec(e entry, context string) models.CheckSpec {
	args := []string{"--command", e.Command}
	if e.Timeout > 0 {
		args = append(args, "--timeout", strconv.Itoa(e.Timeout))
	}

	return models.CheckSpec{
		Description: e.Description,
		CheckType:   checks.ExecuteCommandName,
		Arguments:   args,
		FileContext: context,
	}
}

// checkSpec builds the arguments for a named check: the file context as
// --directory and --file, then the options sorted by name.
func checkSpec(e entry, context string) models.CheckSpec {
	var args []string

	if context != "" {
		if _, ok := e.Options["directory"]; !ok {
			args = append(args, "--directory", path.Dir(context))
		}
		if _, ok := e.Options["file"]; !ok {
			args = append(args, "--file", path.Base(context))
		}
	}

	args = append(args, optionArgs(e.Options)...)

	return models.CheckSpec{
		Description: e.Description,
		CheckType:   e.Check,
		Arguments:   args,
		FileContext: context,
	}
}

// optionArgs converts options to flags. true becomes a bare flag and false
// drops the flag.
func optionArgs(options map[string]any) []string {
	keys := make([]string, 0, len(options))
	for k := range options {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var args []string
	for _, k := range keys {
		flag := "--" + k
		switch v := options[k].(type) {
		case bool:
			if v {
				args = append(args, flag)
			}
		case float64:
			args = append(args, flag, strconv.FormatFloat(v, 'f', -1, 64))
		default:
			args = append(args, flag, fmt.Sprint(v))
		}
	}
	return args
}
