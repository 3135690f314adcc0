package ir

// Run is one recorded evaluation of a labeled sequence (store-layer).
//
// ID is content-addressed (see RunID). Seq is a logical clock value; runs
// are ordered by Seq, never by wall time.
type Run struct {
	ID        string  `json:"id"`
	Session   string  `json:"session"`
	Label     string  `json:"label"`
	Items     []int64 `json:"items"`
	Threshold int64   `json:"threshold"`
	Total     int64   `json:"total"`
	Consumed  int     `json:"consumed"`
	Crossed   bool    `json:"crossed"`
	Seq       int64   `json:"seq"`

	ToolVersion   string `json:"tool_version"`
	FormatVersion string `json:"format_version"`
}
