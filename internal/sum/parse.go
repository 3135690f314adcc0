package sum

import (
	"errors"
	"strconv"
	"strings"
)

// ParseItems converts textual items to a sequence.
// The first item that is not a base-10 integer yields an InvalidInputError
// and no partial sequence is returned.
func ParseItems(source string, raw []string) ([]int64, error) {
	items := make([]int64, 0, len(raw))
	for i, r := range raw {
		v, err := strconv.ParseInt(strings.TrimSpace(r), 10, 64)
		if err != nil {
			reason := "not an integer"
			if errors.Is(err, strconv.ErrRange) {
				reason = "out of int64 range"
			}
			return nil, &InvalidInputError{
				Source: source,
				Index:  i,
				Value:  r,
				Reason: reason,
			}
		}
		items = append(items, v)
	}
	return items, nil
}
