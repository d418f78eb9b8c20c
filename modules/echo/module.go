// Package echo provides the reference component: it keeps its configuration
// and returns every input unchanged.
package echo

import (
	"context"

	"github.com/specialistvlad/bridgego/internal/component"
	"github.com/specialistvlad/bridgego/internal/ctxlog"
	"github.com/specialistvlad/bridgego/internal/registry"
	"github.com/specialistvlad/bridgego/internal/value"
)

// Name is the registry name of the echo component.
const Name = "echo"

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the echo constructor with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.Register(Name, New)
}

// Echo is a stateless identity component.
type Echo struct {
	config value.Value
}

// New builds an Echo that holds on to config. Any config is accepted.
func New(config value.Value) (component.Component, error) {
	return &Echo{config: config}, nil
}

// Config returns the configuration the component was built with.
func (e *Echo) Config() value.Value {
	return e.config
}

func (e *Echo) Initialize(ctx context.Context) error {
	ctxlog.FromContext(ctx).Debug("Echo component initialized.", "config", e.config.String())
	return nil
}

// Process returns input as is.
func (e *Echo) Process(_ context.Context, input value.Value) (value.Value, error) {
	return input, nil
}

func (e *Echo) Cleanup(context.Context) error {
	return nil
}
