package reporting

import (
	"encoding/xml"
	"fmt"
	"os"
	"time"

	"github.com/gatoreducator/gatorgrade/internal/models"
)

// JUnit XML schema types

// JUnitTestSuites is the top-level container.
type JUnitTestSuites struct {
	XMLName    xml.Name         `xml:"testsuites"`
	Tests      int              `xml:"tests,attr"`
	Failures   int              `xml:"failures,attr"`
	Errors     int              `xml:"errors,attr"`
	Time       float64          `xml:"time,attr"`
	TestSuites []JUnitTestSuite `xml:"testsuite"`
}

// JUnitTestSuite maps to one run of the checks.
type JUnitTestSuite struct {
	XMLName    xml.Name        `xml:"testsuite"`
	Name       string          `xml:"name,attr"`
	Tests      int             `xml:"tests,attr"`
	Failures   int             `xml:"failures,attr"`
	Errors     int             `xml:"errors,attr"`
	Time       float64         `xml:"time,attr"`
	Timestamp  string          `xml:"timestamp,attr"`
	Properties []JUnitProperty `xml:"properties>property,omitempty"`
	TestCases  []JUnitTestCase `xml:"testcase"`
}

// JUnitTestCase maps to one check.
type JUnitTestCase struct {
	XMLName   xml.Name      `xml:"testcase"`
	Name      string        `xml:"name,attr"`
	Classname string        `xml:"classname,attr"`
	Time      float64       `xml:"time,attr"`
	Failure   *JUnitFailure `xml:"failure,omitempty"`
	Error     *JUnitError   `xml:"error,omitempty"`
}

// JUnitFailure represents a check that ran and did not pass.
type JUnitFailure struct {
	Message string `xml:"message,attr"`
	Type    string `xml:"type,attr"`
	Body    string `xml:",chardata"`
}

// JUnitError represents a check that could not run.
type JUnitError struct {
	Message string `xml:"message,attr"`
	Type    string `xml:"type,attr"`
}

// JUnitProperty is a key-value metadata entry.
type JUnitProperty struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value,attr"`
}

// ConvertToJUnit converts a summary to JUnit XML format. Checks that failed
// with an error become <error> elements typed with their error kind.
func ConvertToJUnit(summary models.Summary, suiteName string, timestamp time.Time) *JUnitTestSuites {
	durationSec := float64(summary.DurationMs()) / 1000.0
	errors := summary.ErrorCount()
	failures := summary.TotalCount - summary.PassedCount - errors

	suite := JUnitTestSuite{
		Name:      suiteName,
		Tests:     summary.TotalCount,
		Failures:  failures,
		Errors:    errors,
		Time:      durationSec,
		Timestamp: timestamp.Format(time.RFC3339),
		Properties: []JUnitProperty{
			{Name: "passed", Value: fmt.Sprintf("%d", summary.PassedCount)},
			{Name: "percentage", Value: fmt.Sprintf("%.1f", summary.Percentage)},
		},
	}

	for _, o := range summary.Outcomes {
		suite.TestCases = append(suite.TestCases, convertOutcome(o))
	}

	return &JUnitTestSuites{
		Tests:      summary.TotalCount,
		Failures:   failures,
		Errors:     errors,
		Time:       durationSec,
		TestSuites: []JUnitTestSuite{suite},
	}
}

func convertOutcome(o models.Outcome) JUnitTestCase {
	tc := JUnitTestCase{
		Name:      o.Spec.DisplayName(),
		Classname: o.Spec.CheckType,
		Time:      float64(o.DurationMs) / 1000.0,
	}

	switch {
	case o.Passed:
	case o.Errored():
		tc.Error = &JUnitError{
			Message: o.ErrorMessage,
			Type:    o.ErrorKind.String(),
		}
	default:
		tc.Failure = &JUnitFailure{
			Message: o.Spec.DisplayName(),
			Type:    "CheckFailure",
			Body:    o.Diagnostic,
		}
	}

	return tc
}

// WriteJUnitXML writes JUnit XML to the specified file path.
func WriteJUnitXML(summary models.Summary, suiteName string, timestamp time.Time, path string) error {
	suites := ConvertToJUnit(summary, suiteName, timestamp)

	data, err := xml.MarshalIndent(suites, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JUnit XML: %w", err)
	}

	output := append([]byte(xml.Header), data...)
	return os.WriteFile(path, output, 0644)
}
