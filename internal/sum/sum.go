package sum

import (
	"fmt"
	"math"
	"strconv"
)

// DefaultThreshold is the bound used by WithCutoff.
const DefaultThreshold int64 = 100

// Result describes a completed scan.
type Result struct {
	// Total is the sum of the consumed prefix.
	Total int64 `json:"total"`

	// Consumed is the number of items added before the scan stopped.
	Consumed int `json:"consumed"`

	// Crossed reports whether the scan stopped because Total > Threshold.
	Crossed bool `json:"crossed"`

	// Threshold is the bound the scan was run against.
	Threshold int64 `json:"threshold"`
}

// Step records a single accumulation.
type Step struct {
	Index   int   `json:"index"`
	Item    int64 `json:"item"`
	Total   int64 `json:"total"`
	Crossed bool  `json:"crossed"`
}

// WithCutoff sums items, stopping once the running total exceeds
// DefaultThreshold.
//
//	WithCutoff([]int64{10, 20, 30, 40, 50}) // 150
//	WithCutoff([]int64{25, 50, 75, 100})    // 150
//	WithCutoff([]int64{90, -50, 70})        // 110
func WithCutoff(items []int64) int64 {
	return Accumulate(items, DefaultThreshold).Total
}

// Accumulate sums items against an explicit threshold.
// The comparison is strict: a total equal to the threshold keeps scanning.
// Totals are exact only for sequences accepted by CheckRange.
func Accumulate(items []int64, threshold int64) Result {
	res := Result{Threshold: threshold}
	for _, item := range items {
		res.Total += item
		res.Consumed++
		if res.Total > threshold {
			res.Crossed = true
			break
		}
	}
	return res
}

// Trace performs the same scan as Accumulate and returns one Step per
// consumed item. Only the final step can have Crossed set.
func Trace(items []int64, threshold int64) []Step {
	steps := make([]Step, 0, len(items))
	var total int64
	for i, item := range items {
		total += item
		step := Step{Index: i, Item: item, Total: total}
		if total > threshold {
			step.Crossed = true
			steps = append(steps, step)
			break
		}
		steps = append(steps, step)
	}
	return steps
}

// CheckRange reports the first item whose addition would overflow int64
// before the scan stops. Sequences it accepts are summed exactly by
// Accumulate and Trace.
func CheckRange(source string, items []int64, threshold int64) error {
	var total int64
	for i, item := range items {
		if (item > 0 && total > math.MaxInt64-item) || (item < 0 && total < math.MinInt64-item) {
			return &InvalidInputError{
				Source: source,
				Index:  i,
				Value:  strconv.FormatInt(item, 10),
				Reason: "sum out of int64 range",
			}
		}
		total += item
		if total > threshold {
			return nil
		}
	}
	return nil
}

// String renders the result for verbose logs, e.g. "total=150 consumed=3 crossed".
func (r Result) String() string {
	state := "complete"
	if r.Crossed {
		state = "crossed"
	}
	return fmt.Sprintf("total=%d consumed=%d %s", r.Total, r.Consumed, state)
}
