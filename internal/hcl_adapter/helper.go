package hcl_adapter

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/bridgego/internal/ctxlog"
	"github.com/specialistvlad/bridgego/internal/term"
	"github.com/zclconf/go-cty/cty"
)

// isExprDefined checks if an HCL expression was actually present in the source
// code. gohcl fills omitted optional expressions with a zero-width static
// null, so a nil check is not enough.
func isExprDefined(expr hcl.Expression) bool {
	if expr == nil {
		return false
	}
	r := expr.Range()
	return r.End.Byte > r.Start.Byte
}

// newEvalContext builds the context every session expression is evaluated
// in: the term functions plus local.<name> for each evaluated local.
func newEvalContext(locals map[string]cty.Value) *hcl.EvalContext {
	vars := map[string]cty.Value{}
	if len(locals) > 0 {
		vars["local"] = cty.ObjectVal(locals)
	}
	return &hcl.EvalContext{
		Variables: vars,
		Functions: term.Functions(),
	}
}

// evaluate returns the value of expr, or the canonical null when the
// attribute was omitted.
func evaluate(ctx context.Context, expr hcl.Expression, evalCtx *hcl.EvalContext, attrName string) (cty.Value, error) {
	if !isExprDefined(expr) {
		ctxlog.FromContext(ctx).Debug("Attribute not set, using null.", "attribute", attrName)
		return term.Null(), nil
	}
	val, diags := expr.Value(evalCtx)
	if diags.HasErrors() {
		return cty.NilVal, fmt.Errorf("invalid %s: %w", attrName, diags)
	}
	if !val.IsWhollyKnown() {
		return cty.NilVal, fmt.Errorf("%s: %s must be known at load time", expr.Range(), attrName)
	}
	return val, nil
}

// evaluateLocals resolves locals that may refer to each other in any order.
// It makes passes over the pending set until nothing more can be evaluated.
func evaluateLocals(ctx context.Context, attrs []*hcl.Attribute) (map[string]cty.Value, error) {
	logger := ctxlog.FromContext(ctx)
	values := make(map[string]cty.Value, len(attrs))
	pending := make(map[string]*hcl.Attribute, len(attrs))
	for _, attr := range attrs {
		if prev, exists := pending[attr.Name]; exists {
			return nil, fmt.Errorf("%s: duplicate local '%s', first declared at %s", attr.NameRange, attr.Name, prev.NameRange)
		}
		pending[attr.Name] = attr
	}

	for len(pending) > 0 {
		progressed := false
		for _, name := range slices.Sorted(maps.Keys(pending)) {
			attr := pending[name]
			if !localsReady(attr.Expr, values) {
				continue
			}
			val, err := evaluate(ctx, attr.Expr, newEvalContext(values), "local."+name)
			if err != nil {
				return nil, err
			}
			values[name] = val
			delete(pending, name)
			progressed = true
			logger.Debug("Evaluated local.", "name", name)
		}
		if !progressed {
			names := slices.Sorted(maps.Keys(pending))
			return nil, fmt.Errorf("cannot resolve locals %s: cyclic or undefined reference", strings.Join(names, ", "))
		}
	}
	return values, nil
}

// localsReady reports whether every local.<name> that expr refers to has a
// value already.
func localsReady(expr hcl.Expression, values map[string]cty.Value) bool {
	for _, traversal := range expr.Variables() {
		if traversal.RootName() != "local" || len(traversal) < 2 {
			continue
		}
		step, ok := traversal[1].(hcl.TraverseAttr)
		if !ok {
			continue
		}
		if _, done := values[step.Name]; !done {
			return false
		}
	}
	return true
}

func sortedAttributes(attrs hcl.Attributes) []*hcl.Attribute {
	out := make([]*hcl.Attribute, 0, len(attrs))
	for _, attr := range attrs {
		out = append(out, attr)
	}
	slices.SortFunc(out, func(a, b *hcl.Attribute) int {
		return a.Range.Start.Byte - b.Range.Start.Byte
	})
	return out
}
