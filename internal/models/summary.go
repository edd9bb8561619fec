package models

// Summary is the aggregated result of a batch of outcomes. Build it with
// [Aggregate]; the counts are never updated independently of Outcomes.
type Summary struct {
	Outcomes    []Outcome
	PassedCount int
	TotalCount  int
	Percentage  float64
	OverallPass bool
}

// Aggregate reduces outcomes into a [Summary], preserving their order.
//
// The percentage is count based (passed/total * 100) and is 0 for an empty
// batch. An empty batch never passes.
func Aggregate(outcomes []Outcome) Summary {
	summary := Summary{
		Outcomes:   outcomes,
		TotalCount: len(outcomes),
	}

	for _, o := range outcomes {
		if o.Passed {
			summary.PassedCount++
		}
	}

	if summary.TotalCount > 0 {
		summary.Percentage = 100 * float64(summary.PassedCount) / float64(summary.TotalCount)
	}

	summary.OverallPass = summary.TotalCount > 0 && summary.PassedCount == summary.TotalCount
	return summary
}

// Failed returns the outcomes that did not pass, in order.
func (s Summary) Failed() []Outcome {
	var failed []Outcome
	for _, o := range s.Outcomes {
		if !o.Passed {
			failed = append(failed, o)
		}
	}
	return failed
}

// ErrorCount is the number of outcomes that failed with an error.
func (s Summary) ErrorCount() int {
	n := 0
	for _, o := range s.Outcomes {
		if o.Errored() {
			n++
		}
	}
	return n
}

// DurationMs is the sum of the outcome durations.
func (s Summary) DurationMs() int64 {
	var total int64
	for _, o := range s.Outcomes {
		total += o.DurationMs
	}
	return total
}
