// Package ir provides canonical serialization and content-addressed identity
// for cutoff runs.
//
// All other internal packages may import ir; ir imports nothing internal.
//
// Key constraints:
//   - NO floats - sequence items are int64
//   - NO null values
//   - Object keys sorted by UTF-16 code units, strings NFC normalized
//   - Identity is computed from content only, never from wall-clock time
package ir
