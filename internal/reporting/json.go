package reporting

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/gatoreducator/gatorgrade/internal/checks"
	"github.com/gatoreducator/gatorgrade/internal/models"
)

// JSONReport is the machine readable form of a [models.Summary].
type JSONReport struct {
	AmountCorrect   int         `json:"amount_correct"`
	Total           int         `json:"total"`
	PercentageScore float64     `json:"percentage_score"`
	Passed          bool        `json:"passed"`
	Checks          []JSONCheck `json:"checks"`
}

// JSONCheck describes one check in a [JSONReport].
type JSONCheck struct {
	Description string   `json:"description"`
	Check       string   `json:"check"`
	Command     string   `json:"command,omitempty"`
	Arguments   []string `json:"arguments,omitempty"`
	Status      bool     `json:"status"`
	ErrorKind   string   `json:"error_kind,omitempty"`
	Diagnostic  string   `json:"diagnostic,omitempty"`
}

// NewJSONReport converts summary into a [JSONReport]. The percentage is
// rounded to one decimal place, matching the text report.
func NewJSONReport(summary models.Summary) JSONReport {
	report := JSONReport{
		AmountCorrect:   summary.PassedCount,
		Total:           summary.TotalCount,
		PercentageScore: math.Round(summary.Percentage*10) / 10,
		Passed:          summary.OverallPass,
		Checks:          make([]JSONCheck, 0, len(summary.Outcomes)),
	}

	for _, o := range summary.Outcomes {
		jc := JSONCheck{
			Description: o.Spec.DisplayName(),
			Check:       o.Spec.CheckType,
			Status:      o.Passed,
		}

		if o.Spec.CheckType == checks.ExecuteCommandName {
			jc.Command = o.Spec.Argument("--command")
		} else {
			jc.Arguments = o.Spec.Arguments
		}

		if !o.Passed {
			if o.Errored() {
				jc.ErrorKind = o.ErrorKind.String()
			}
			jc.Diagnostic = o.Details()
		}

		report.Checks = append(report.Checks, jc)
	}

	return report
}

// WriteJSON writes the JSON report for summary to path.
func WriteJSON(summary models.Summary, path string) error {
	data, err := json.MarshalIndent(NewJSONReport(summary), "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON report: %w", err)
	}

	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("writing JSON report: %w", err)
	}
	return nil
}
