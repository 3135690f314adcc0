// Package recorder writes driver outcomes to the run log.
//
// Every outcome becomes one ir.Run stamped with:
//   - a content-addressed ID (ir.RunID), so re-recording is a no-op
//   - a session token shared by all runs of one invocation (UUIDv7 by default)
//   - a seq from a logical clock resumed from the store's highest seq
//
// Wall-clock time is never used for ordering.
package recorder
