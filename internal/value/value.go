package value

import (
	"fmt"
	"maps"
	"slices"

	"golang.org/x/text/unicode/norm"
)

// Kind identifies which variant a Value holds.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Value is the canonical structured value. The zero Value is Null.
type Value struct {
	kind Kind
	b    bool
	n    Number
	s    string
	arr  []Value
	obj  map[string]Value
}

// Null returns the null value.
func Null() Value {
	return Value{}
}

// Bool wraps a boolean.
func Bool(b bool) Value {
	return Value{kind: KindBool, b: b}
}

// Int wraps an integer number.
func Int(i int64) Value {
	return Value{kind: KindNumber, n: IntNumber(i)}
}

// Float wraps a floating-point number.
func Float(f float64) Value {
	return Value{kind: KindNumber, n: FloatNumber(f)}
}

// NumberValue wraps an already built Number.
func NumberValue(n Number) Value {
	return Value{kind: KindNumber, n: n}
}

// String wraps a text value. Text is stored in Unicode NFC, the form host
// terms hold, so it survives a trip through a term unchanged.
func String(s string) Value {
	return Value{kind: KindString, s: norm.NFC.String(s)}
}

// Array builds an ordered sequence. The slice is copied.
func Array(elems ...Value) Value {
	return Value{kind: KindArray, arr: slices.Clone(elems)}
}

// Object builds a string-keyed mapping. The map is copied and keys are
// stored in Unicode NFC. When several keys normalize to the same text, a key
// already in NFC wins, otherwise the one that sorts first.
func Object(fields map[string]Value) Value {
	obj := make(map[string]Value, len(fields))
	var denormal []string
	for k, f := range fields {
		if norm.NFC.IsNormalString(k) {
			obj[k] = f
		} else {
			denormal = append(denormal, k)
		}
	}
	slices.Sort(denormal)
	for _, k := range denormal {
		nk := norm.NFC.String(k)
		if _, taken := obj[nk]; !taken {
			obj[nk] = fields[k]
		}
	}
	return Value{kind: KindObject, obj: obj}
}

// Kind reports which variant v holds.
func (v Value) Kind() Kind {
	return v.kind
}

// IsNull reports whether v is Null.
func (v Value) IsNull() bool {
	return v.kind == KindNull
}

// AsBool returns the boolean held by v. It panics if v is not a Bool.
func (v Value) AsBool() bool {
	v.mustBe(KindBool)
	return v.b
}

// AsNumber returns the number held by v. It panics if v is not a Number.
func (v Value) AsNumber() Number {
	v.mustBe(KindNumber)
	return v.n
}

// AsString returns the text held by v. It panics if v is not a String.
func (v Value) AsString() string {
	v.mustBe(KindString)
	return v.s
}

// Len returns the number of elements of an Array or fields of an Object,
// and 0 for every other kind.
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.arr)
	case KindObject:
		return len(v.obj)
	default:
		return 0
	}
}

// Elements returns a copy of the elements of an Array. It panics if v is not
// an Array.
func (v Value) Elements() []Value {
	v.mustBe(KindArray)
	return slices.Clone(v.arr)
}

// Index returns the i-th element of an Array.
func (v Value) Index(i int) Value {
	v.mustBe(KindArray)
	return v.arr[i]
}

// Fields returns a copy of the fields of an Object. It panics if v is not an
// Object.
func (v Value) Fields() map[string]Value {
	v.mustBe(KindObject)
	return maps.Clone(v.obj)
}

// Get looks up a field of an Object.
func (v Value) Get(key string) (Value, bool) {
	v.mustBe(KindObject)
	f, ok := v.obj[key]
	return f, ok
}

// Keys returns the field names of an Object in sorted order.
func (v Value) Keys() []string {
	v.mustBe(KindObject)
	return slices.Sorted(maps.Keys(v.obj))
}

// Equal reports whether v and other are structurally equal. Numbers compare
// by numeric value and object field order is ignored.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == other.b
	case KindNumber:
		return v.n.Equal(other.n)
	case KindString:
		return v.s == other.s
	case KindArray:
		return slices.EqualFunc(v.arr, other.arr, Value.Equal)
	case KindObject:
		return maps.EqualFunc(v.obj, other.obj, Value.Equal)
	default:
		return false
	}
}

// String renders v as compact JSON. Non-finite numbers render as null.
func (v Value) String() string {
	return string(v.appendJSON(nil))
}

// GoString makes %#v output readable in test failures.
func (v Value) GoString() string {
	return fmt.Sprintf("value.%s(%s)", v.kind, v.String())
}

func (v Value) mustBe(k Kind) {
	if v.kind != k {
		panic(fmt.Sprintf("value: %s used as %s", v.kind, k))
	}
}
