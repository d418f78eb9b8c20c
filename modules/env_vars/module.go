package env_vars

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/specialistvlad/bridgego/internal/component"
	"github.com/specialistvlad/bridgego/internal/registry"
	"github.com/specialistvlad/bridgego/internal/value"
)

// Name is the registry name of the env_vars component.
const Name = "env_vars"

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the env_vars constructor with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.Register(Name, New)
}

// EnvVars reads process environment variables. An optional string "prefix"
// in the config restricts which variables are visible.
type EnvVars struct {
	prefix string
}

// New builds an EnvVars component.
func New(config value.Value) (component.Component, error) {
	e := &EnvVars{}
	if config.Kind() == value.KindObject {
		if prefix, ok := config.Get("prefix"); ok {
			if prefix.Kind() != value.KindString {
				return nil, fmt.Errorf("env_vars: prefix must be a string, got %s", prefix.Kind())
			}
			e.prefix = prefix.AsString()
		}
	}
	return e, nil
}

func (e *EnvVars) Initialize(context.Context) error { return nil }

// Process looks variables up. A null input returns every visible variable as
// an object. A string returns that variable, or null when unset. An array of
// strings returns an object with one field per name.
func (e *EnvVars) Process(_ context.Context, input value.Value) (value.Value, error) {
	switch input.Kind() {
	case value.KindNull:
		return value.Object(e.all()), nil
	case value.KindString:
		return e.lookup(input.AsString()), nil
	case value.KindArray:
		fields := make(map[string]value.Value, input.Len())
		for i, elem := range input.Elements() {
			if elem.Kind() != value.KindString {
				return value.Value{}, fmt.Errorf("env_vars: element %d must be a string, got %s", i, elem.Kind())
			}
			fields[elem.AsString()] = e.lookup(elem.AsString())
		}
		return value.Object(fields), nil
	default:
		return value.Value{}, fmt.Errorf("env_vars: unsupported input of kind %s", input.Kind())
	}
}

func (e *EnvVars) Cleanup(context.Context) error { return nil }

func (e *EnvVars) lookup(name string) value.Value {
	if !strings.HasPrefix(name, e.prefix) {
		return value.Null()
	}
	v, ok := os.LookupEnv(name)
	if !ok {
		return value.Null()
	}
	return value.String(v)
}

func (e *EnvVars) all() map[string]value.Value {
	envMap := make(map[string]value.Value)
	for _, kv := range os.Environ() {
		pair := strings.SplitN(kv, "=", 2)
		if len(pair) == 2 && strings.HasPrefix(pair[0], e.prefix) {
			envMap[pair[0]] = value.String(pair[1])
		}
	}
	return envMap
}
