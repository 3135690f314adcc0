package ir

// Version constants recorded alongside stored runs.
const (
	// FormatVersion is the canonical encoding version used for RunID.
	FormatVersion = "1"

	// ToolVersion is the cutoff release version.
	ToolVersion = "0.1.0"
)
