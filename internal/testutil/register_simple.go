package testutil

import (
	"context"

	"github.com/specialistvlad/bridgego/internal/component"
	"github.com/specialistvlad/bridgego/internal/registry"
	"github.com/specialistvlad/bridgego/internal/value"
)

// SimpleModule is a test helper for registering a single component whose
// Process step is a plain function.
type SimpleModule struct {
	Name    string
	Process func(ctx context.Context, input value.Value) (value.Value, error)
}

// Register implements the registry.Module interface.
func (m *SimpleModule) Register(r *registry.Registry) {
	r.Register(m.Name, func(value.Value) (component.Component, error) {
		return &funcComponent{process: m.Process}, nil
	})
}

type funcComponent struct {
	process func(ctx context.Context, input value.Value) (value.Value, error)
}

func (c *funcComponent) Initialize(context.Context) error { return nil }

func (c *funcComponent) Process(ctx context.Context, input value.Value) (value.Value, error) {
	if c.process == nil {
		return input, nil
	}
	return c.process(ctx, input)
}

func (c *funcComponent) Cleanup(context.Context) error { return nil }
