package bridge

import (
	"math"
	"math/big"
	"strconv"

	"github.com/specialistvlad/bridgego/internal/term"
	"github.com/specialistvlad/bridgego/internal/value"
	"github.com/zclconf/go-cty/cty"
)

// NumberPolicy decides what happens to a number that decodes neither as an
// int64 nor as a finite float64.
type NumberPolicy int

const (
	// NumberZero replaces the number with Number(0).
	NumberZero NumberPolicy = iota
	// NumberStrict fails the conversion with a *ConversionError.
	NumberStrict
)

// String returns the flag spelling of the policy.
func (p NumberPolicy) String() string {
	switch p {
	case NumberZero:
		return "zero"
	case NumberStrict:
		return "strict"
	default:
		return "policy(" + strconv.Itoa(int(p)) + ")"
	}
}

// Converter converts terms to values and back.
type Converter struct {
	numbers NumberPolicy
}

// Option configures a Converter.
type Option func(*Converter)

// WithNumberPolicy sets the policy for numbers that cannot be decoded.
func WithNumberPolicy(p NumberPolicy) Option {
	return func(c *Converter) {
		c.numbers = p
	}
}

// New creates a Converter. Without options it uses NumberZero.
func New(opts ...Option) *Converter {
	c := &Converter{numbers: NumberZero}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NumberPolicy returns the converter's policy.
func (c *Converter) NumberPolicy() NumberPolicy {
	return c.numbers
}

var defaultConverter = New()

// ToValue converts a term with the default NumberZero policy. It never fails.
func ToValue(t cty.Value) value.Value {
	// The NumberZero converter has no error path.
	v, _ := defaultConverter.ToValue(t)
	return v
}

// FromValue converts a value to a term.
func FromValue(v value.Value) cty.Value {
	return defaultConverter.FromValue(v)
}

// ToValue converts a term into a Value. Marks are discarded. The only error
// is a *ConversionError from the NumberStrict policy.
func (c *Converter) ToValue(t cty.Value) (value.Value, error) {
	if t == cty.NilVal {
		return value.Null(), nil
	}
	t, _ = t.UnmarkDeep()
	return c.toValue(t, nil)
}

func (c *Converter) toValue(t cty.Value, path []string) (value.Value, error) {
	switch {
	case isMapping(t):
		fields := make(map[string]value.Value, t.LengthInt())
		it := t.ElementIterator()
		for it.Next() {
			k, elem := it.Element()
			key := k.AsString()
			v, err := c.toValue(elem, append(path, key))
			if err != nil {
				return value.Value{}, err
			}
			fields[key] = v
		}
		return value.Object(fields), nil

	case isSequence(t):
		elems := make([]value.Value, 0, t.LengthInt())
		it := t.ElementIterator()
		for i := 0; it.Next(); i++ {
			_, elem := it.Element()
			v, err := c.toValue(elem, append(path, strconv.Itoa(i)))
			if err != nil {
				return value.Value{}, err
			}
			elems = append(elems, v)
		}
		return value.Array(elems...), nil

	case isPrimitive(t, cty.Number):
		return c.number(t, path)
	}

	if s, ok := decodeString(t); ok {
		return value.String(s), nil
	}
	if b, ok := decodeBool(t); ok {
		return value.Bool(b), nil
	}
	if name, ok := term.AtomName(t); ok {
		if name == term.NilName {
			return value.Null(), nil
		}
		return value.String(name), nil
	}
	// Nulls of any type, unknowns and foreign capsules.
	return value.Null(), nil
}

func (c *Converter) number(t cty.Value, path []string) (value.Value, error) {
	if n, ok := decodeNumber(t.AsBigFloat()); ok {
		return value.NumberValue(n), nil
	}
	if c.numbers == NumberStrict {
		return value.Value{}, &ConversionError{
			Path:   clonePath(path),
			Detail: "number " + t.AsBigFloat().Text('g', 10) + " is out of range for int64 and float64",
		}
	}
	return value.Int(0), nil
}

// decodeNumber tries an exact int64 first, then a finite float64.
func decodeNumber(bf *big.Float) (value.Number, bool) {
	if bf.IsInt() {
		if i, acc := bf.Int64(); acc == big.Exact {
			return value.IntNumber(i), true
		}
	}
	f, _ := bf.Float64()
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return value.Number{}, false
	}
	return value.FloatNumber(f), true
}

func decodeString(t cty.Value) (string, bool) {
	if !isPrimitive(t, cty.String) {
		return "", false
	}
	return t.AsString(), true
}

func decodeBool(t cty.Value) (bool, bool) {
	if !isPrimitive(t, cty.Bool) {
		return false, false
	}
	return t.True(), true
}

func isMapping(t cty.Value) bool {
	if !t.IsKnown() || t.IsNull() {
		return false
	}
	ty := t.Type()
	return ty.IsObjectType() || ty.IsMapType()
}

func isSequence(t cty.Value) bool {
	if !t.IsKnown() || t.IsNull() {
		return false
	}
	ty := t.Type()
	return ty.IsListType() || ty.IsTupleType() || ty.IsSetType()
}

func isPrimitive(t cty.Value, ty cty.Type) bool {
	return t.IsKnown() && !t.IsNull() && t.Type().Equals(ty)
}

// FromValue converts a Value into a term. Objects become cty objects and
// arrays become tuples, so heterogeneous elements are preserved.
func (c *Converter) FromValue(v value.Value) cty.Value {
	switch v.Kind() {
	case value.KindObject:
		if v.Len() == 0 {
			return cty.EmptyObjectVal
		}
		attrs := make(map[string]cty.Value, v.Len())
		for k, f := range v.Fields() {
			attrs[k] = c.FromValue(f)
		}
		return cty.ObjectVal(attrs)

	case value.KindArray:
		if v.Len() == 0 {
			return cty.EmptyTupleVal
		}
		elems := make([]cty.Value, 0, v.Len())
		for _, e := range v.Elements() {
			elems = append(elems, c.FromValue(e))
		}
		return cty.TupleVal(elems)

	case value.KindString:
		return cty.StringVal(v.AsString())

	case value.KindNumber:
		n := v.AsNumber()
		if i, ok := n.Int64(); ok {
			return cty.NumberIntVal(i)
		}
		f := n.Float64()
		if math.IsNaN(f) {
			return cty.NumberIntVal(0)
		}
		return cty.NumberFloatVal(f)

	case value.KindBool:
		return cty.BoolVal(v.AsBool())

	default:
		return term.Null()
	}
}

func clonePath(path []string) []string {
	out := make([]string, len(path))
	copy(out, path)
	return out
}
