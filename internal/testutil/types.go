package testutil

import (
	"time"

	"github.com/specialistvlad/bridgego/internal/value"
)

// ExecutionRecord holds the start and end times for a single Process call.
type ExecutionRecord struct {
	Input value.Value
	Start time.Time
	End   time.Time
}

// Duration returns how long the call ran.
func (r ExecutionRecord) Duration() time.Duration {
	return r.End.Sub(r.Start)
}
