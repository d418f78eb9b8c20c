// Package print provides a component that writes every input it receives
// and passes it through unchanged.
package print

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/specialistvlad/bridgego/internal/component"
	"github.com/specialistvlad/bridgego/internal/ctxlog"
	"github.com/specialistvlad/bridgego/internal/registry"
	"github.com/specialistvlad/bridgego/internal/value"
)

// Name is the registry name of the print component.
const Name = "print"

// Module implements the registry.Module interface for this package.
type Module struct {
	// Out receives printed values. Defaults to os.Stdout.
	Out io.Writer

	mu sync.Mutex
}

// Register registers the print constructor with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.Register(Name, m.newPrinter)
}

// newPrinter reads an optional string "prefix" from config.
func (m *Module) newPrinter(config value.Value) (component.Component, error) {
	p := &printer{module: m}
	if config.Kind() == value.KindObject {
		if prefix, ok := config.Get("prefix"); ok {
			if prefix.Kind() != value.KindString {
				return nil, fmt.Errorf("print: prefix must be a string, got %s", prefix.Kind())
			}
			p.prefix = prefix.AsString()
		}
	}
	return p, nil
}

func (m *Module) write(line string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := m.Out
	if out == nil {
		out = os.Stdout
	}
	_, err := fmt.Fprintln(out, line)
	return err
}

type printer struct {
	module *Module
	prefix string
}

func (p *printer) Initialize(context.Context) error { return nil }

// Process prints input as JSON on one line and returns it.
func (p *printer) Process(ctx context.Context, input value.Value) (value.Value, error) {
	ctxlog.FromContext(ctx).Info("Printing input", "kind", input.Kind().String())

	encoded, err := input.MarshalJSON()
	if err != nil {
		return value.Value{}, fmt.Errorf("print: %w", err)
	}
	if err := p.module.write(p.prefix + string(encoded)); err != nil {
		return value.Value{}, fmt.Errorf("print: failed to write: %w", err)
	}
	return input, nil
}

func (p *printer) Cleanup(context.Context) error { return nil }
