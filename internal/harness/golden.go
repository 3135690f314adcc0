package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/cutoff/internal/ir"
)

// Snapshot encodes a scenario execution as canonical JSON.
// Identical inputs always produce byte-identical snapshots.
func Snapshot(s *Scenario, result *Result) ([]byte, error) {
	steps := make([]any, len(result.Trace))
	for i, step := range result.Trace {
		steps[i] = map[string]any{
			"index":   step.Index,
			"item":    step.Item,
			"total":   step.Total,
			"crossed": step.Crossed,
		}
	}

	items := []int64(s.Items)
	if items == nil {
		items = []int64{}
	}

	return ir.MarshalCanonical(map[string]any{
		"scenario_name": s.Name,
		"threshold":     result.Outcome.Threshold,
		"items":         items,
		"trace":         steps,
		"total":         result.Outcome.Total,
		"consumed":      result.Outcome.Consumed,
		"crossed":       result.Outcome.Crossed,
	})
}

// RunWithGolden executes a scenario and compares its snapshot against
// testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns the result so callers can also check expectations. Test failure
// (via goldie) occurs if the snapshot doesn't match the golden file.
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result := Run(scenario)
	if err := AssertGolden(t, scenario, result); err != nil {
		return nil, err
	}
	return result, nil
}

// AssertGolden compares an existing result against its golden file without
// re-running the scenario.
func AssertGolden(t *testing.T, scenario *Scenario, result *Result) error {
	t.Helper()

	data, err := Snapshot(scenario, result)
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, data)

	return nil
}
