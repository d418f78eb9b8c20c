// Package host drives component instances on behalf of a caller that speaks in
// cty terms.
//
// A Host turns Initialize calls into Handles. Every Handle owns one component
// instance and one private execution context, and serializes every operation
// on that pair behind its own mutex. Handles move from Ready to Closed exactly
// once; operations on a Closed handle fail with ErrClosed.
//
// Handles that are dropped without Cleanup still have their execution context
// torn down once the garbage collector notices. The component's Cleanup is not
// run in that case.
package host
