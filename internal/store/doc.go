// Package store provides SQLite-backed durable storage for cutoff runs.
//
// The store is an append-only run log. Each row records one evaluation of a
// labeled sequence: its items, threshold, and result.
//
// # Patterns
//
// Idempotency
//   - runs.id is content-addressed (ir.RunID)
//   - INSERT ... ON CONFLICT(id) DO NOTHING: recording the same run twice is a no-op
//
// Logical time
//   - All ordering uses seq INTEGER, NEVER timestamps
//
// Deterministic query results
//   - All queries include: ORDER BY seq ASC, id ASC COLLATE BINARY
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
package store
