package config

import (
	"context"
	"errors"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
)

// Loader is the interface for a format-specific session loader.
type Loader interface {
	// Load reads every session file under paths and merges them into one
	// validated Model.
	Load(ctx context.Context, paths ...string) (*Model, error)
}

// Model is the unified representation of a session.
type Model struct {
	// Components are in declaration order.
	Components []*Component
	// Calls are in declaration order.
	Calls []*Call
}

// Component declares one component instance.
type Component struct {
	// Type is the registry name of the component.
	Type string
	// Name identifies the instance within the session.
	Name string
	// Config is null when the block has no config attribute.
	Config    cty.Value
	DeclRange hcl.Range
}

// Call declares one Process call against a component instance.
type Call struct {
	// Component is the instance name the call targets.
	Component string
	Name      string
	// Input is null when the block has no input attribute.
	Input     cty.Value
	DeclRange hcl.Range
}

// ID returns the address used for the call in output, e.g. "call.greeter.first".
func (c *Call) ID() string {
	return fmt.Sprintf("call.%s.%s", c.Component, c.Name)
}

// Component returns the instance with the given name.
func (m *Model) Component(name string) (*Component, bool) {
	for _, c := range m.Components {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}

// CallsFor returns the calls that target the named instance, in declaration
// order.
func (m *Model) CallsFor(name string) []*Call {
	var calls []*Call
	for _, c := range m.Calls {
		if c.Component == name {
			calls = append(calls, c)
		}
	}
	return calls
}

// Validate checks that instance names are unique, call names are unique per
// instance, and every call targets a declared instance. Component types are
// not checked here.
func (m *Model) Validate() error {
	var errs []error

	components := make(map[string]*Component, len(m.Components))
	for _, c := range m.Components {
		if prev, exists := components[c.Name]; exists {
			errs = append(errs, fmt.Errorf("%s: duplicate component '%s', first declared at %s", c.DeclRange, c.Name, prev.DeclRange))
			continue
		}
		components[c.Name] = c
	}

	calls := make(map[string]*Call, len(m.Calls))
	for _, c := range m.Calls {
		if _, exists := components[c.Component]; !exists {
			errs = append(errs, fmt.Errorf("%s: call '%s' targets undeclared component '%s'", c.DeclRange, c.Name, c.Component))
		}
		if prev, exists := calls[c.ID()]; exists {
			errs = append(errs, fmt.Errorf("%s: duplicate call '%s', first declared at %s", c.DeclRange, c.ID(), prev.DeclRange))
			continue
		}
		calls[c.ID()] = c
	}

	return errors.Join(errs...)
}
