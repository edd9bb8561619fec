package reporting

import (
	"encoding/xml"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gatoreducator/gatorgrade/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var junitTimestamp = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func TestConvertToJUnit(t *testing.T) {
	outcomes := []models.Outcome{
		models.NewOutcome(todoSpec(), false, "found TODO"),
		models.NewOutcome(ifSpec(), true, ""),
		models.NewErrorOutcome(models.CheckSpec{Description: "Have 8 commits", CheckType: "CountCommitts"},
			models.ErrorKindInvalidCheck, "not a registered check type"),
	}
	outcomes[0].DurationMs = 1500
	outcomes[1].DurationMs = 500

	suites := ConvertToJUnit(models.Aggregate(outcomes), "lab-1", junitTimestamp)

	assert.Equal(t, 3, suites.Tests)
	assert.Equal(t, 1, suites.Failures)
	assert.Equal(t, 1, suites.Errors)
	assert.InDelta(t, 2.0, suites.Time, 0.001)
	require.Len(t, suites.TestSuites, 1)

	suite := suites.TestSuites[0]
	assert.Equal(t, "lab-1", suite.Name)
	assert.Equal(t, "2026-03-01T12:00:00Z", suite.Timestamp)
	assert.Contains(t, suite.Properties, JUnitProperty{Name: "passed", Value: "1"})
	assert.Contains(t, suite.Properties, JUnitProperty{Name: "percentage", Value: "33.3"})
	require.Len(t, suite.TestCases, 3)

	failed := suite.TestCases[0]
	assert.Equal(t, "Match TODO count 0", failed.Name)
	assert.Equal(t, "MatchFileFragment", failed.Classname)
	assert.InDelta(t, 1.5, failed.Time, 0.001)
	require.NotNil(t, failed.Failure)
	assert.Equal(t, "CheckFailure", failed.Failure.Type)
	assert.Equal(t, "found TODO", failed.Failure.Body)
	assert.Nil(t, failed.Error)

	passed := suite.TestCases[1]
	assert.Nil(t, passed.Failure)
	assert.Nil(t, passed.Error)

	errored := suite.TestCases[2]
	assert.Nil(t, errored.Failure)
	require.NotNil(t, errored.Error)
	assert.Equal(t, "InvalidCheck", errored.Error.Type)
	assert.Equal(t, "not a registered check type", errored.Error.Message)
}

func TestConvertToJUnitEmpty(t *testing.T) {
	suites := ConvertToJUnit(models.Aggregate(nil), "empty", junitTimestamp)

	assert.Equal(t, 0, suites.Tests)
	assert.Equal(t, 0, suites.Failures)
	assert.Equal(t, 0, suites.Errors)
	assert.Empty(t, suites.TestSuites[0].TestCases)
}

func TestWriteJUnitXML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.xml")

	err := WriteJUnitXML(sampleSummary(), "lab-1", junitTimestamp, path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), xml.Header))

	var decoded JUnitTestSuites
	require.NoError(t, xml.Unmarshal(data, &decoded))
	assert.Equal(t, 3, decoded.Tests)
	require.Len(t, decoded.TestSuites, 1)
	assert.Len(t, decoded.TestSuites[0].TestCases, 3)
}
