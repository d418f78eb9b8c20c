// Package session defines the interfaces for running a loaded session model
// against a component host. It abstracts away how calls are scheduled.
package session

import (
	"context"
	"time"

	"github.com/specialistvlad/bridgego/internal/config"
	"github.com/specialistvlad/bridgego/internal/host"
	"github.com/zclconf/go-cty/cty"
)

// SessionFactory creates a Session for a model. Implementations decide how
// calls are scheduled.
type SessionFactory interface {
	NewSession(ctx context.Context, model *config.Model, h *host.Host) (Session, error)
}

// Session represents a single run of a model and owns the handles it creates.
type Session interface {
	// Run initializes every component and performs every call. It fails only
	// when the session cannot start; failed calls are reported in the Report.
	Run(ctx context.Context) (*Report, error)
	// Close cleans up every handle the session still holds. It accepts a
	// context to allow for graceful cleanup operations.
	Close(ctx context.Context) error
}

// ResultStore holds call results while a session runs. Implementations must
// be safe for concurrent use.
type ResultStore interface {
	SetResult(ctx context.Context, res *Result) error
	GetResult(ctx context.Context, callID string) (*Result, bool, error)
}

// Result is the outcome of one call.
type Result struct {
	Call *config.Call
	// Handle is the ID of the handle the call ran on.
	Handle   string
	Output   cty.Value
	Err      error
	Duration time.Duration
}

// Report lists call results in declaration order.
type Report struct {
	Results []*Result
}

// Failed returns the number of calls that returned an error.
func (r *Report) Failed() int {
	n := 0
	for _, res := range r.Results {
		if res.Err != nil {
			n++
		}
	}
	return n
}
