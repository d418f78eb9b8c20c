package host

import (
	"errors"
	"fmt"
)

var (
	// ErrClosed is returned for any operation on a handle that was cleaned up.
	ErrClosed = errors.New("handle is closed")
	// ErrInvalidHandle is returned when a nil handle is passed in.
	ErrInvalidHandle = errors.New("invalid handle")
)

// Op names the component lifecycle step that failed.
type Op string

const (
	OpInitialize Op = "initialize"
	OpProcess    Op = "process"
	OpCleanup    Op = "cleanup"
)

// ComponentError wraps an error raised by a component during one of its
// lifecycle steps. The wrapped error is whatever the component returned.
type ComponentError struct {
	Op        Op
	Component string
	Err       error
}

func (e *ComponentError) Error() string {
	return fmt.Sprintf("component '%s' failed to %s: %v", e.Component, e.Op, e.Err)
}

func (e *ComponentError) Unwrap() error {
	return e.Err
}

// ExecutionContextError reports that a handle's execution context could not be
// created, typically because the configured limit is reached.
type ExecutionContextError struct {
	Err error
}

func (e *ExecutionContextError) Error() string {
	return fmt.Sprintf("failed to create execution context: %v", e.Err)
}

func (e *ExecutionContextError) Unwrap() error {
	return e.Err
}
