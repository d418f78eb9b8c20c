// Package inmemorystore provides an ephemeral, thread-safe, in-memory
// implementation of the session.ResultStore interface.
package inmemorystore
