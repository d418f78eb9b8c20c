package host

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/specialistvlad/bridgego/internal/bridge"
	"github.com/specialistvlad/bridgego/internal/component"
	"github.com/specialistvlad/bridgego/internal/ctxlog"
	"github.com/specialistvlad/bridgego/internal/execctx"
	"github.com/specialistvlad/bridgego/internal/registry"
	"github.com/specialistvlad/bridgego/internal/value"
	"github.com/zclconf/go-cty/cty"
)

// ComponentConfig is the input to Initialize.
type ComponentConfig struct {
	// Name is the registry name of the component to create.
	Name string
	// Config is handed to the component constructor after conversion. Its
	// shape is up to the component.
	Config cty.Value
}

// Host creates and drives component handles.
type Host struct {
	registry  *registry.Registry
	converter *bridge.Converter
	contexts  *execctx.Factory
	live      atomic.Int64
}

// Option configures a Host.
type Option func(*Host)

// WithConverter sets the term converter. The default uses the zero fallback
// for undecodable numbers.
func WithConverter(c *bridge.Converter) Option {
	return func(h *Host) {
		h.converter = c
	}
}

// WithContextFactory sets the factory handles draw their execution contexts
// from. The default is unbounded.
func WithContextFactory(f *execctx.Factory) Option {
	return func(h *Host) {
		h.contexts = f
	}
}

// New creates a Host that resolves component names against r.
func New(r *registry.Registry, opts ...Option) *Host {
	h := &Host{
		registry:  r,
		converter: bridge.New(),
		contexts:  execctx.NewFactory(0),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Live returns the number of handles currently Ready.
func (h *Host) Live() int64 {
	return h.live.Load()
}

// Initialize creates a component and runs its Initialize step in a fresh
// execution context. On any failure nothing is kept and no handle is returned.
func (h *Host) Initialize(ctx context.Context, cfg ComponentConfig) (*Handle, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate handle id: %w", err)
	}
	compCtx, logger := ctxlog.With(context.WithoutCancel(ctx), "handle", id.String(), "component", cfg.Name)
	logger.Debug("Initializing component.")

	exec, err := h.contexts.New()
	if err != nil {
		logger.Warn("Could not create execution context.", "error", err)
		return nil, &ExecutionContextError{Err: err}
	}

	comp, err := h.build(cfg)
	if err != nil {
		exec.Shutdown()
		logger.Debug("Component could not be built.", "error", err)
		return nil, err
	}

	err = exec.Run(compCtx, func() error {
		return comp.Initialize(compCtx)
	})
	if err != nil {
		exec.Shutdown()
		logger.Debug("Component initialize failed.", "error", err)
		return nil, &ComponentError{Op: OpInitialize, Component: cfg.Name, Err: err}
	}

	handle := &Handle{
		id:        id,
		name:      cfg.Name,
		state:     Ready,
		component: comp,
		exec:      exec,
		live:      &h.live,
	}
	h.live.Add(1)
	handle.track()
	logger.Info("Component ready.")
	return handle, nil
}

func (h *Host) build(cfg ComponentConfig) (component.Component, error) {
	config, err := h.converter.ToValue(cfg.Config)
	if err != nil {
		return nil, fmt.Errorf("failed to convert config for component '%s': %w", cfg.Name, err)
	}
	return h.registry.Create(cfg.Name, config)
}

// Process converts input, runs the component's Process step in the handle's
// execution context, and converts the result back. Concurrent calls on the
// same handle wait for each other. A failed call leaves the handle Ready.
func (h *Host) Process(ctx context.Context, handle *Handle, input cty.Value) (cty.Value, error) {
	if handle == nil {
		return cty.NilVal, ErrInvalidHandle
	}
	handle.mu.Lock()
	defer handle.mu.Unlock()

	if handle.state != Ready {
		return cty.NilVal, fmt.Errorf("process %s: %w", handle, ErrClosed)
	}

	in, err := h.converter.ToValue(input)
	if err != nil {
		return cty.NilVal, fmt.Errorf("process %s: %w", handle, err)
	}

	compCtx, logger := ctxlog.With(context.WithoutCancel(ctx), "handle", handle.id.String(), "component", handle.name)

	var out value.Value
	err = handle.exec.Run(compCtx, func() error {
		var err error
		out, err = handle.component.Process(compCtx, in)
		return err
	})
	if err != nil {
		logger.Debug("Component process failed.", "error", err)
		return cty.NilVal, &ComponentError{Op: OpProcess, Component: handle.name, Err: err}
	}
	return h.converter.FromValue(out), nil
}

// Cleanup runs the component's Cleanup step and closes the handle. The handle
// is Closed afterwards even when Cleanup fails; it is never retried.
func (h *Host) Cleanup(ctx context.Context, handle *Handle) error {
	if handle == nil {
		return ErrInvalidHandle
	}
	handle.mu.Lock()
	defer handle.mu.Unlock()

	if handle.state != Ready {
		return fmt.Errorf("cleanup %s: %w", handle, ErrClosed)
	}

	compCtx, logger := ctxlog.With(context.WithoutCancel(ctx), "handle", handle.id.String(), "component", handle.name)

	comp := handle.component
	err := handle.exec.Run(compCtx, func() error {
		return comp.Cleanup(compCtx)
	})
	handle.close()

	if err != nil {
		logger.Warn("Component cleanup failed.", "error", err)
		return &ComponentError{Op: OpCleanup, Component: handle.name, Err: err}
	}
	logger.Info("Component closed.")
	return nil
}

// IsClosed reports whether err means the handle was already closed.
func IsClosed(err error) bool {
	return errors.Is(err, ErrClosed)
}
