package harness

import (
	"fmt"

	"github.com/google/go-cmp/cmp"

	"github.com/roach88/cutoff/internal/sum"
)

// Run executes a scenario and checks every expectation it declares.
// Mismatches are collected on the result rather than returned as errors.
func Run(s *Scenario) *Result {
	threshold := s.ThresholdOrDefault()
	items := []int64(s.Items)

	result := NewResult()
	result.Outcome = sum.Accumulate(items, threshold)
	result.Trace = sum.Trace(items, threshold)

	if s.Expect == nil {
		return result
	}

	if s.Expect.Total != nil && *s.Expect.Total != result.Outcome.Total {
		result.AddError(fmt.Sprintf("total: expected %d, got %d", *s.Expect.Total, result.Outcome.Total))
	}

	if s.Expect.Consumed != nil && *s.Expect.Consumed != result.Outcome.Consumed {
		result.AddError(fmt.Sprintf("consumed: expected %d, got %d", *s.Expect.Consumed, result.Outcome.Consumed))
	}

	if s.Expect.Crossed != nil && *s.Expect.Crossed != result.Outcome.Crossed {
		result.AddError(fmt.Sprintf("crossed: expected %t, got %t", *s.Expect.Crossed, result.Outcome.Crossed))
	}

	if s.Expect.Trace != nil {
		if diff := cmp.Diff(s.Expect.Trace, result.RunningTotals()); diff != "" {
			result.AddError(fmt.Sprintf("trace mismatch (-expected +got):\n%s", diff))
		}
	}

	return result
}
