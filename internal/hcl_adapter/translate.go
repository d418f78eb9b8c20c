// This file translates decoded HCL blocks into the format-agnostic session
// model, evaluating their expressions on the way.

package hcl_adapter

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/bridgego/internal/config"
	"github.com/specialistvlad/bridgego/internal/ctxlog"
)

func (l *Loader) translateComponent(ctx context.Context, b *componentBlock, evalCtx *hcl.EvalContext) (*config.Component, error) {
	logger := ctxlog.FromContext(ctx).With("component_type", b.Type, "component_name", b.Name)
	ctx = ctxlog.WithLogger(ctx, logger)
	logger.Debug("Translating HCL component to internal config model.")

	val, err := evaluate(ctx, b.Config, evalCtx, "config")
	if err != nil {
		return nil, fmt.Errorf("component '%s': %w", b.Name, err)
	}
	return &config.Component{
		Type:      b.Type,
		Name:      b.Name,
		Config:    val,
		DeclRange: b.DeclRange,
	}, nil
}

func (l *Loader) translateCall(ctx context.Context, b *callBlock, evalCtx *hcl.EvalContext) (*config.Call, error) {
	logger := ctxlog.FromContext(ctx).With("call_component", b.Component, "call_name", b.Name)
	ctx = ctxlog.WithLogger(ctx, logger)
	logger.Debug("Translating HCL call to internal config model.")

	val, err := evaluate(ctx, b.Input, evalCtx, "input")
	if err != nil {
		return nil, fmt.Errorf("call '%s.%s': %w", b.Component, b.Name, err)
	}
	return &config.Call{
		Component: b.Component,
		Name:      b.Name,
		Input:     val,
		DeclRange: b.DeclRange,
	}, nil
}
