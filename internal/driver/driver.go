// Package driver evaluates labeled sequences and formats their sums.
//
// The default driver reproduces the fixture output:
//
//	Sum: 150
//	Large sum: 150
package driver

import (
	"fmt"
	"io"

	"github.com/roach88/cutoff/internal/sum"
)

// Sequence is a labeled input to the summation routine.
type Sequence struct {
	Label string  `json:"label"`
	Items []int64 `json:"items"`
}

// Outcome is the evaluation of a single Sequence.
type Outcome struct {
	Label  string     `json:"label"`
	Items  []int64    `json:"items"`
	Result sum.Result `json:"result"`
	Steps  []sum.Step `json:"steps"`
}

// Driver evaluates its sequences in order against one threshold.
type Driver struct {
	Threshold int64      `json:"threshold"`
	Sequences []Sequence `json:"sequences"`
}

// Default returns the driver with the two literal sequences.
func Default() *Driver {
	return &Driver{
		Threshold: sum.DefaultThreshold,
		Sequences: []Sequence{
			{Label: "Sum", Items: []int64{10, 20, 30, 40, 50}},
			{Label: "Large sum", Items: []int64{25, 50, 75, 100}},
		},
	}
}

// Evaluate computes every sequence. Outcomes are returned in sequence order.
func (d *Driver) Evaluate() []Outcome {
	outcomes := make([]Outcome, 0, len(d.Sequences))
	for _, seq := range d.Sequences {
		outcomes = append(outcomes, Outcome{
			Label:  seq.Label,
			Items:  seq.Items,
			Result: sum.Accumulate(seq.Items, d.Threshold),
			Steps:  sum.Trace(seq.Items, d.Threshold),
		})
	}
	return outcomes
}

// Run evaluates the driver and writes one "<label>: <total>" line per sequence.
func (d *Driver) Run(w io.Writer) error {
	return WriteOutcomes(w, d.Evaluate(), false)
}

// WriteOutcomes writes outcomes as text. With trace set, each result line is
// preceded by one "Running total: N" line per consumed item.
func WriteOutcomes(w io.Writer, outcomes []Outcome, trace bool) error {
	for _, o := range outcomes {
		if trace {
			for _, step := range o.Steps {
				if _, err := fmt.Fprintf(w, "Running total: %d\n", step.Total); err != nil {
					return err
				}
			}
		}
		if _, err := fmt.Fprintf(w, "%s: %d\n", o.Label, o.Result.Total); err != nil {
			return err
		}
	}
	return nil
}
