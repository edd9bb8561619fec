package orchestration

import (
	"fmt"
	"path/filepath"
	"slices"

	"github.com/gatoreducator/gatorgrade/internal/models"
)

// FilterSpecs keeps the checks selected by --filter. A check is kept when a
// glob matches its description, its check type or its file context. Order is
// preserved and no patterns keeps every check.
func FilterSpecs(specs []models.CheckSpec, patterns []string) ([]models.CheckSpec, error) {
	if len(patterns) == 0 {
		return specs, nil
	}

	for _, p := range patterns {
		if _, err := filepath.Match(p, ""); err != nil {
			return nil, fmt.Errorf("invalid check filter pattern %q: %w", p, err)
		}
	}

	var kept []models.CheckSpec
	for _, spec := range specs {
		if selected(spec, patterns) {
			kept = append(kept, spec)
		}
	}
	return kept, nil
}

// patterns are already known to be well formed here.
func selected(spec models.CheckSpec, patterns []string) bool {
	fields := []string{spec.Description, spec.CheckType, spec.FileContext}
	return slices.ContainsFunc(patterns, func(p string) bool {
		return slices.ContainsFunc(fields, func(field string) bool {
			if field == "" {
				return false
			}
			ok, _ := filepath.Match(p, field)
			return ok
		})
	})
}
