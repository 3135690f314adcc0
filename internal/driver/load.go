package driver

import (
	"errors"
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"

	"github.com/roach88/cutoff/internal/sum"
)

// ErrNoSequences is returned when a definition has no sequences to evaluate.
var ErrNoSequences = errors.New("no sequences defined")

// LoadError reports a driver definition that could not be read or parsed.
// It wraps the cause, so sum.InvalidInputError, ErrNoSequences and
// fs.ErrNotExist remain visible to errors.As and errors.Is.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Load reads a driver definition from a CUE file.
//
//	threshold: 100 // optional
//	sequences: [
//		{label: "Sum", items: [10, 20, 30, 40, 50]},
//	]
func Load(path string) (*Driver, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: fmt.Errorf("failed to read driver file: %w", err)}
	}
	return Parse(path, data)
}

// Parse builds a driver from CUE source. Every item is checked before the
// driver is returned; the first non-integer item, or the first item whose
// running total would overflow int64, yields a sum.InvalidInputError
// carrying its CUE position. All errors are *LoadError.
func Parse(filename string, src []byte) (*Driver, error) {
	d, err := parse(filename, src)
	if err != nil {
		return nil, &LoadError{Path: filename, Err: err}
	}
	return d, nil
}

func parse(filename string, src []byte) (*Driver, error) {
	ctx := cuecontext.New()
	value := ctx.CompileBytes(src, cue.Filename(filename))
	if err := value.Err(); err != nil {
		return nil, fmt.Errorf("compiling CUE: %w", err)
	}

	d := &Driver{Threshold: sum.DefaultThreshold}

	thresholdVal := value.LookupPath(cue.ParsePath("threshold"))
	if thresholdVal.Exists() {
		threshold, err := thresholdVal.Int64()
		if err != nil {
			return nil, &sum.InvalidInputError{
				Source: position(thresholdVal, filename),
				Index:  -1,
				Value:  fmt.Sprint(thresholdVal),
				Reason: "threshold must be an integer",
			}
		}
		d.Threshold = threshold
	}

	seqsVal := value.LookupPath(cue.ParsePath("sequences"))
	if !seqsVal.Exists() {
		return nil, ErrNoSequences
	}
	if seqsVal.Kind() != cue.ListKind {
		return nil, &sum.InvalidInputError{
			Source: position(seqsVal, filename),
			Index:  -1,
			Reason: "sequences must be a list",
		}
	}

	iter, err := seqsVal.List()
	if err != nil {
		return nil, fmt.Errorf("iterating sequences: %w", err)
	}
	for i := 0; iter.Next(); i++ {
		seq, err := parseSequence(iter.Value(), filename, i)
		if err != nil {
			return nil, err
		}
		source := position(iter.Value().LookupPath(cue.ParsePath("items")), filename)
		if err := sum.CheckRange(source, seq.Items, d.Threshold); err != nil {
			return nil, err
		}
		d.Sequences = append(d.Sequences, seq)
	}

	if len(d.Sequences) == 0 {
		return nil, ErrNoSequences
	}
	return d, nil
}

func parseSequence(v cue.Value, filename string, index int) (Sequence, error) {
	labelVal := v.LookupPath(cue.ParsePath("label"))
	if !labelVal.Exists() {
		return Sequence{}, fmt.Errorf("sequences[%d]: label is required", index)
	}
	label, err := labelVal.String()
	if err != nil {
		return Sequence{}, fmt.Errorf("sequences[%d]: label must be a string: %w", index, err)
	}
	if label == "" {
		return Sequence{}, fmt.Errorf("sequences[%d]: label must be non-empty", index)
	}

	seq := Sequence{Label: label, Items: []int64{}}

	itemsVal := v.LookupPath(cue.ParsePath("items"))
	if !itemsVal.Exists() {
		return seq, nil
	}
	if itemsVal.Kind() != cue.ListKind {
		return Sequence{}, &sum.InvalidInputError{
			Source: position(itemsVal, filename),
			Index:  -1,
			Reason: fmt.Sprintf("sequences[%d].items must be a list", index),
		}
	}

	iter, err := itemsVal.List()
	if err != nil {
		return Sequence{}, fmt.Errorf("sequences[%d]: iterating items: %w", index, err)
	}
	for i := 0; iter.Next(); i++ {
		item := iter.Value()
		n, err := item.Int64()
		if err != nil {
			return Sequence{}, &sum.InvalidInputError{
				Source: position(item, filename),
				Index:  i,
				Value:  fmt.Sprint(item),
				Reason: "not an integer",
			}
		}
		seq.Items = append(seq.Items, n)
	}
	return seq, nil
}

// position returns "file:line:col" for v, falling back to the file name.
func position(v cue.Value, filename string) string {
	if pos := v.Pos(); pos.IsValid() {
		return pos.String()
	}
	return filename
}
