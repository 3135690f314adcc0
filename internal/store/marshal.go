package store

import (
	"encoding/json"
	"fmt"

	"github.com/roach88/cutoff/internal/ir"
)

// marshalItems converts items to canonical JSON TEXT for storage.
func marshalItems(items []int64) (string, error) {
	if items == nil {
		items = []int64{}
	}
	data, err := ir.MarshalCanonical(items)
	if err != nil {
		return "", fmt.Errorf("marshal items: %w", err)
	}
	return string(data), nil
}

// unmarshalItems parses a canonical JSON array. Decoding into []int64
// directly keeps values above 2^53 exact.
func unmarshalItems(data string) ([]int64, error) {
	items := []int64{}
	if data == "" || data == "[]" {
		return items, nil
	}
	if err := json.Unmarshal([]byte(data), &items); err != nil {
		return nil, fmt.Errorf("unmarshal items: %w", err)
	}
	return items, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
