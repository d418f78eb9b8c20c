package testutil

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/specialistvlad/bridgego/internal/component"
	"github.com/specialistvlad/bridgego/internal/registry"
	"github.com/specialistvlad/bridgego/internal/value"
)

// FaultyName is the registry name used by FaultyModule.
const FaultyName = "faulty"

// ErrInjected is the error a faulty component returns from its failing step.
var ErrInjected = errors.New("injected failure")

// FaultyModule registers a "faulty" component that fails one lifecycle step on
// request. The step is chosen by the "fail" field of the component config:
// "initialize", "process" or "cleanup". Process otherwise echoes its input.
// The module counts how often each step was entered.
type FaultyModule struct {
	Initializes atomic.Int32
	Processes   atomic.Int32
	Cleanups    atomic.Int32
}

// Register registers the faulty constructor.
func (m *FaultyModule) Register(r *registry.Registry) {
	r.Register(FaultyName, func(config value.Value) (component.Component, error) {
		f := &faulty{module: m}
		if config.Kind() == value.KindObject {
			if step, ok := config.Get("fail"); ok && step.Kind() == value.KindString {
				f.failOn = step.AsString()
			}
		}
		return f, nil
	})
}

type faulty struct {
	module *FaultyModule
	failOn string
}

func (f *faulty) Initialize(context.Context) error {
	f.module.Initializes.Add(1)
	if f.failOn == "initialize" {
		return ErrInjected
	}
	return nil
}

func (f *faulty) Process(_ context.Context, input value.Value) (value.Value, error) {
	f.module.Processes.Add(1)
	if f.failOn == "process" {
		return value.Value{}, ErrInjected
	}
	return input, nil
}

func (f *faulty) Cleanup(context.Context) error {
	f.module.Cleanups.Add(1)
	if f.failOn == "cleanup" {
		return ErrInjected
	}
	return nil
}
