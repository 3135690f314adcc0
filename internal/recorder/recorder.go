package recorder

import (
	"context"
	"fmt"

	"github.com/roach88/cutoff/internal/driver"
	"github.com/roach88/cutoff/internal/ir"
)

// RunStore is the subset of store.Store the recorder needs.
type RunStore interface {
	RecordRun(ctx context.Context, run ir.Run) (bool, error)
	MaxSeq(ctx context.Context) (int64, error)
}

// Recorded is the result of recording one outcome.
type Recorded struct {
	Run ir.Run `json:"run"`

	// Inserted is false when an identical run was already in the log.
	Inserted bool `json:"inserted"`
}

// Recorder stamps outcomes and writes them to a RunStore.
type Recorder struct {
	store    RunStore
	sessions SessionGenerator
}

// New creates a recorder. A nil generator defaults to UUIDv7Generator.
func New(st RunStore, sessions SessionGenerator) *Recorder {
	if sessions == nil {
		sessions = UUIDv7Generator{}
	}
	return &Recorder{store: st, sessions: sessions}
}

// Record writes outcomes in order under a single new session token.
// The clock resumes from the store's highest seq, so seq values stay
// monotonic across processes sharing one database.
func (r *Recorder) Record(ctx context.Context, threshold int64, outcomes []driver.Outcome) ([]Recorded, error) {
	start, err := r.store.MaxSeq(ctx)
	if err != nil {
		return nil, fmt.Errorf("resume clock: %w", err)
	}
	clock := NewClockAt(start)
	session := r.sessions.Generate()

	recorded := make([]Recorded, 0, len(outcomes))
	for _, o := range outcomes {
		run, err := NewRun(session, threshold, o)
		if err != nil {
			return recorded, err
		}
		run.Seq = clock.Next()

		inserted, err := r.store.RecordRun(ctx, run)
		if err != nil {
			return recorded, fmt.Errorf("record %q: %w", o.Label, err)
		}
		recorded = append(recorded, Recorded{Run: run, Inserted: inserted})
	}
	return recorded, nil
}

// NewRun converts an outcome into an unsequenced run record. The label is
// stored in NFC, matching the form its ID is computed from.
func NewRun(session string, threshold int64, o driver.Outcome) (ir.Run, error) {
	label := ir.NormalizeLabel(o.Label)
	id, err := ir.RunID(label, o.Items, threshold)
	if err != nil {
		return ir.Run{}, fmt.Errorf("run id for %q: %w", o.Label, err)
	}

	items := o.Items
	if items == nil {
		items = []int64{}
	}

	return ir.Run{
		ID:            id,
		Session:       session,
		Label:         label,
		Items:         items,
		Threshold:     threshold,
		Total:         o.Result.Total,
		Consumed:      o.Result.Consumed,
		Crossed:       o.Result.Crossed,
		ToolVersion:   ir.ToolVersion,
		FormatVersion: ir.FormatVersion,
	}, nil
}
