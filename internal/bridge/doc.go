// Package bridge converts between host terms (cty.Value) and the canonical
// value.Value model that components operate on.
//
// ToValue classifies a term by probing its shape in a fixed order, and the
// first predicate that matches wins:
//
//  1. mapping (object or map)        -> Object
//  2. sequence (list, tuple or set)  -> Array
//  3. number                         -> Number (integer first, then float)
//  4. string                         -> String
//  5. bool                           -> Bool
//  6. atom, or a null of any type    -> Null for nil/null, String(name) otherwise
//  7. anything else                  -> Null
//
// A number that is neither an exact int64 nor a finite float64 (for example
// 1e400 or infinity) becomes Number(0) under the default NumberZero policy.
// A Converter built with NumberStrict reports a *ConversionError instead.
//
// FromValue maps every Value back to a term and never fails.
package bridge
