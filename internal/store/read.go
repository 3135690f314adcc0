package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/cutoff/internal/ir"
)

// ErrRunNotFound is returned by ReadRun when no run has the given ID.
var ErrRunNotFound = errors.New("run not found")

const runColumns = `id, session, label, items, threshold, total, consumed, crossed, seq, tool_version, format_version`

// ReadRun returns the run with the given content ID.
func (s *Store) ReadRun(ctx context.Context, id string) (ir.Run, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return ir.Run{}, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return ir.Run{}, err
	}
	return run, nil
}

// ListRuns returns recorded runs ordered by seq ASC, id ASC COLLATE BINARY.
// An empty label returns every run.
//
// Returns an empty slice (not nil) if nothing matches.
func (s *Store) ListRuns(ctx context.Context, label string) ([]ir.Run, error) {
	query := `SELECT ` + runColumns + ` FROM runs`
	var args []any
	if label != "" {
		query += ` WHERE label = ?`
		args = append(args, label)
	}
	query += ` ORDER BY seq ASC, id COLLATE BINARY ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []ir.Run{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}

	return runs, nil
}

// MaxSeq returns the highest recorded seq, or 0 for an empty log.
func (s *Store) MaxSeq(ctx context.Context) (int64, error) {
	var seq int64
	if err := s.db.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) FROM runs`).Scan(&seq); err != nil {
		return 0, fmt.Errorf("query max seq: %w", err)
	}
	return seq, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (ir.Run, error) {
	var (
		run       ir.Run
		itemsJSON string
		crossed   int
	)
	err := row.Scan(
		&run.ID,
		&run.Session,
		&run.Label,
		&itemsJSON,
		&run.Threshold,
		&run.Total,
		&run.Consumed,
		&crossed,
		&run.Seq,
		&run.ToolVersion,
		&run.FormatVersion,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return ir.Run{}, err
	}
	if err != nil {
		return ir.Run{}, fmt.Errorf("scan run: %w", err)
	}

	items, err := unmarshalItems(itemsJSON)
	if err != nil {
		return ir.Run{}, err
	}
	run.Items = items
	run.Crossed = crossed == 1

	return run, nil
}
