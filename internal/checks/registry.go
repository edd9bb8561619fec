package checks

import (
	"fmt"
	"sort"
	"sync"
)

// Registry holds the available checks, keyed by check type name. It is safe
// for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	checks map[string]Check
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		checks: make(map[string]Check),
	}
}

// NewDefaultRegistry creates a registry with all of the built-in checks.
func NewDefaultRegistry(opts Options) *Registry {
	opts = opts.withDefaults()
	r := NewRegistry()

	for _, c := range []Check{
		&confirmFileExists{opts: opts},
		&matchFileFragment{opts: opts},
		&matchFileRegex{opts: opts},
		&countFileLines{opts: opts},
		&countFileParagraphs{opts: opts},
		&countMarkdownTags{opts: opts},
		&countCommits{opts: opts},
		&executeCommand{opts: opts},
	} {
		if err := r.Register(c); err != nil {
			// built-in names are unique
			panic(err)
		}
	}

	return r
}

// Register adds a check. Returns an error if a check with the same name is
// already registered.
func (r *Registry) Register(c Check) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := c.Name()
	if name == "" {
		return fmt.Errorf("check has no name")
	}
	if _, exists := r.checks[name]; exists {
		return fmt.Errorf("check already registered: %s", name)
	}
	r.checks[name] = c
	return nil
}

// Resolve looks up a check by name. The returned error wraps [ErrInvalidCheck]
// when nothing is registered under that name.
func (r *Registry) Resolve(name string) (Check, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.checks[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q is not a registered check type", ErrInvalidCheck, name)
	}
	return c, nil
}

// Names returns all registered check names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.checks))
	for name := range r.checks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
