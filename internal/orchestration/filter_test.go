package orchestration

import (
	"testing"

	"github.com/gatoreducator/gatorgrade/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterSpecs(t *testing.T) {
	specs := []models.CheckSpec{
		{Description: "Complete all TODOs", CheckType: "MatchFileFragment", FileContext: "src/hello.py"},
		{Description: "Pass flake8", CheckType: "ExecuteCommand"},
		{Description: "Have 8 commits", CheckType: "CountCommits"},
	}

	tests := []struct {
		name     string
		patterns []string
		want     []string
	}{
		{name: "no patterns", patterns: nil, want: []string{"Complete all TODOs", "Pass flake8", "Have 8 commits"}},
		{name: "description glob", patterns: []string{"Pass *"}, want: []string{"Pass flake8"}},
		{name: "check type glob", patterns: []string{"Count*"}, want: []string{"Have 8 commits"}},
		{name: "multiple patterns", patterns: []string{"*TODOs", "ExecuteCommand"}, want: []string{"Complete all TODOs", "Pass flake8"}},
		{name: "file context glob", patterns: []string{"src/*.py"}, want: []string{"Complete all TODOs"}},
		{name: "nothing matches", patterns: []string{"Lint*"}, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FilterSpecs(specs, tt.patterns)
			require.NoError(t, err)

			var names []string
			for _, s := range got {
				names = append(names, s.Description)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestFilterSpecsBadPattern(t *testing.T) {
	_, err := FilterSpecs([]models.CheckSpec{{Description: "x"}}, []string{"[bad"})
	assert.ErrorContains(t, err, "invalid check filter pattern")

	// a bad pattern is reported even when an earlier pattern already matched
	_, err = FilterSpecs([]models.CheckSpec{{Description: "x"}}, []string{"x", "[bad"})
	assert.ErrorContains(t, err, "invalid check filter pattern")
}
