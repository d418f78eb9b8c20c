// Package registry maps symbolic component names to the Go constructors that
// build them.
//
// The registry is populated once at startup, usually by passing a set of
// Modules to the app, and is read-only afterwards. Looking up a name that was
// never registered is not a programmer error: hosts pass arbitrary names, so
// Create reports ErrNotImplemented instead of panicking. Registering the same
// name twice is a programmer error and panics.
package registry
