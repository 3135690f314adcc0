package harness

import "github.com/roach88/cutoff/internal/sum"

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true if every expectation matched.
	Pass bool `json:"pass"`

	// Outcome is the computed summation result.
	Outcome sum.Result `json:"outcome"`

	// Trace contains one step per consumed item, in order.
	Trace []sum.Step `json:"trace"`

	// Errors contains expectation mismatches. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []sum.Step{},
		Errors: []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// RunningTotals returns the Total of every trace step.
func (r *Result) RunningTotals() []int64 {
	totals := make([]int64, len(r.Trace))
	for i, step := range r.Trace {
		totals[i] = step.Total
	}
	return totals
}
