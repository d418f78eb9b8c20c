package host

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/specialistvlad/bridgego/internal/component"
	"github.com/specialistvlad/bridgego/internal/execctx"
)

// State is the lifecycle state of a Handle.
type State int32

const (
	Ready State = iota + 1
	Closed
)

func (s State) String() string {
	switch s {
	case Ready:
		return "ready"
	case Closed:
		return "closed"
	default:
		return fmt.Sprintf("State(%d)", int32(s))
	}
}

// Handle is an opaque reference to a live component instance and the
// execution context it runs in. It is only valid for the Host that issued it.
type Handle struct {
	id   uuid.UUID
	name string

	// mu guards everything below and is held for the whole of every
	// operation on the handle.
	mu        sync.Mutex
	state     State
	component component.Component
	exec      *execctx.Context
	dropped   runtime.Cleanup
	live      *atomic.Int64
}

// ID returns the handle's unique identifier.
func (h *Handle) ID() uuid.UUID {
	return h.id
}

// Component returns the registry name the handle was created from.
func (h *Handle) Component() string {
	return h.name
}

// State returns the current state. It waits for any running operation on the
// handle to finish.
func (h *Handle) State() State {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

func (h *Handle) String() string {
	return fmt.Sprintf("%s(%s)", h.name, h.id)
}

// dropState is what a runtime cleanup needs to release a handle's resources.
// It must not point back at the Handle.
type dropState struct {
	exec *execctx.Context
	live *atomic.Int64
}

func releaseDropped(s dropState) {
	if !s.exec.Closed() {
		s.exec.Shutdown()
		s.live.Add(-1)
	}
}

// track arranges for the handle's context to be shut down if the handle is
// garbage collected while still Ready.
func (h *Handle) track() {
	h.dropped = runtime.AddCleanup(h, releaseDropped, dropState{exec: h.exec, live: h.live})
}

// close moves the handle to Closed and releases its execution context. The
// caller must hold h.mu.
func (h *Handle) close() {
	h.state = Closed
	h.dropped.Stop()
	h.exec.Shutdown()
	h.live.Add(-1)
	h.component = nil
}
