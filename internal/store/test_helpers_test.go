package store

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/roach88/cutoff/internal/ir"
)

// createTestStore creates a new store in a temp directory for testing.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestRun creates a run with a content-addressed ID and minimal fields.
func createTestRun(label string, items []int64, total int64, seq int64) ir.Run {
	return ir.Run{
		ID:            ir.MustRunID(label, items, 100),
		Session:       "test-session",
		Label:         label,
		Items:         items,
		Threshold:     100,
		Total:         total,
		Consumed:      len(items),
		Crossed:       total > 100,
		Seq:           seq,
		ToolVersion:   ir.ToolVersion,
		FormatVersion: ir.FormatVersion,
	}
}

// verifyPragma checks that a pragma is set to the expected value.
func (s *Store) verifyPragma(name, expected string) error {
	var value string
	query := fmt.Sprintf("PRAGMA %s", name)
	if err := s.db.QueryRow(query).Scan(&value); err != nil {
		return fmt.Errorf("failed to query %s: %w", name, err)
	}
	if value != expected {
		return fmt.Errorf("%s = %q, expected %q", name, value, expected)
	}
	return nil
}
