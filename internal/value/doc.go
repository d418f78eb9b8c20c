// Package value defines the canonical structured value that every component
// consumes and produces.
//
// A Value is one of Null, Bool, Number, String, Array or Object. Values are
// immutable once built: constructors copy the slices and maps they are given,
// so a Value tree is always finite and acyclic.
//
// Numbers keep track of whether they were built from an integer or a float,
// but equality is numeric: Int(2) and Float(2) are equal. This mirrors the
// host side, where a number is a single arbitrary precision kind.
package value
