// Package term holds the host-side helpers for cty terms: the atom capsule
// type used for symbolic terms, the canonical "nothing" term, and the function
// table session expressions are evaluated with.
package term

import (
	"reflect"
	"strconv"

	"github.com/zclconf/go-cty/cty"
)

// NilName is the atom name that denotes "nothing".
const NilName = "nil"

// Atom is a symbolic term: a name with no further structure.
type Atom string

// AtomType is the cty capsule type wrapping an Atom.
var AtomType = cty.CapsuleWithOps("atom", reflect.TypeOf(Atom("")), &cty.CapsuleOps{
	GoString: func(val any) string {
		return "term.AtomVal(" + strconv.Quote(string(*val.(*Atom))) + ")"
	},
	TypeGoString: func(reflect.Type) string {
		return "term.AtomType"
	},
	Equals: func(a, b any) cty.Value {
		return cty.BoolVal(*a.(*Atom) == *b.(*Atom))
	},
	RawEquals: func(a, b any) bool {
		return *a.(*Atom) == *b.(*Atom)
	},
	HashKey: func(v any) string {
		return string(*v.(*Atom))
	},
})

// Nil is the atom that denotes "nothing".
var Nil = AtomVal(NilName)

// AtomVal builds an atom term.
func AtomVal(name string) cty.Value {
	a := Atom(name)
	return cty.CapsuleVal(AtomType, &a)
}

// AtomName returns the name of an atom term. It reports false for anything
// that is not a known, non-null atom.
func AtomName(v cty.Value) (string, bool) {
	if !IsAtom(v) {
		return "", false
	}
	return string(*v.EncapsulatedValue().(*Atom)), true
}

// IsAtom reports whether v is a known, non-null atom.
func IsAtom(v cty.Value) bool {
	return v.IsKnown() && !v.IsNull() && v.Type().Equals(AtomType)
}

// Null returns the canonical "nothing" term.
func Null() cty.Value {
	return cty.NullVal(cty.DynamicPseudoType)
}
