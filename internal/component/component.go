// Package component defines the capability contract every pluggable
// processing unit implements.
package component

import (
	"context"

	"github.com/specialistvlad/bridgego/internal/value"
)

// Component is a pluggable unit driven by the host.
//
// Initialize is called exactly once, before any Process call. Process may be
// called any number of times afterwards. Cleanup is called at most once, and
// the instance is never used again after it.
//
// The host never runs two methods of the same instance at the same time, and
// it never cancels the context it passes in: a call runs until it returns.
type Component interface {
	Initialize(ctx context.Context) error
	Process(ctx context.Context, input value.Value) (value.Value, error)
	Cleanup(ctx context.Context) error
}

// Constructor builds a component from its configuration value. It should not
// perform side effects; those belong in Initialize.
type Constructor func(config value.Value) (Component, error)
