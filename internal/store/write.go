package store

import (
	"context"
	"fmt"

	"github.com/roach88/cutoff/internal/ir"
)

// RecordRun inserts a run into the log.
// Uses ON CONFLICT(id) DO NOTHING for idempotency: returns inserted=false
// when a run with the same content ID was already recorded.
func (s *Store) RecordRun(ctx context.Context, run ir.Run) (bool, error) {
	itemsJSON, err := marshalItems(run.Items)
	if err != nil {
		return false, fmt.Errorf("record run: %w", err)
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO runs
		(id, session, label, items, threshold, total, consumed, crossed, seq, tool_version, format_version)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		run.ID,
		run.Session,
		run.Label,
		itemsJSON,
		run.Threshold,
		run.Total,
		run.Consumed,
		boolToInt(run.Crossed),
		run.Seq,
		run.ToolVersion,
		run.FormatVersion,
	)
	if err != nil {
		return false, fmt.Errorf("record run: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("record run: %w", err)
	}
	return n > 0, nil
}
