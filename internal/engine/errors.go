package engine

import "fmt"

// InvalidConfigError reports an out-of-range threshold or unknown model.
// The caller must fix the request; nothing was computed.
type InvalidConfigError struct {
	Field  string
	Reason string
}

func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config: %s: %s", e.Field, e.Reason)
}

// MalformedHistoryError reports a structurally invalid history snapshot
// (unsorted sessions, negative weights, out-of-range RPE). Insufficient but
// valid data is never an error; it degrades to conservative defaults with
// low confidence instead.
type MalformedHistoryError struct {
	Reason string
}

func (e *MalformedHistoryError) Error() string {
	return fmt.Sprintf("malformed history: %s", e.Reason)
}
