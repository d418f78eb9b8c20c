package execctx

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"sync"

	"golang.org/x/sync/semaphore"
)

var (
	// ErrExhausted is returned by Factory.New when the context limit is reached.
	ErrExhausted = errors.New("execution context limit reached")
	// ErrShutdown is returned by Run after Shutdown.
	ErrShutdown = errors.New("execution context is shut down")
)

// Factory creates Contexts, optionally bounded by a limit on live ones.
type Factory struct {
	sem   *semaphore.Weighted
	limit int64
}

// NewFactory returns a Factory that allows at most limit live contexts.
// A limit of 0 or less means unbounded.
func NewFactory(limit int64) *Factory {
	f := &Factory{limit: limit}
	if limit > 0 {
		f.sem = semaphore.NewWeighted(limit)
	}
	return f
}

// Limit returns the configured bound, 0 when unbounded.
func (f *Factory) Limit() int64 {
	if f.limit < 0 {
		return 0
	}
	return f.limit
}

// New starts a Context. It never waits for a slot to free up.
func (f *Factory) New() (*Context, error) {
	if f.sem != nil && !f.sem.TryAcquire(1) {
		return nil, fmt.Errorf("%w (limit %d)", ErrExhausted, f.limit)
	}

	c := &Context{
		tasks: make(chan task),
		done:  make(chan struct{}),
	}
	if f.sem != nil {
		c.release = func() { f.sem.Release(1) }
	}
	go c.loop()
	return c, nil
}

type task struct {
	fn     func() error
	result chan error
}

// Context is a dedicated executor. All work submitted through Run executes on
// the same goroutine, one piece at a time.
type Context struct {
	tasks    chan task
	done     chan struct{}
	stopOnce sync.Once
	release  func()
}

func (c *Context) loop() {
	for {
		select {
		case t := <-c.tasks:
			t.result <- invoke(t.fn)
		case <-c.done:
			return
		}
	}
}

func invoke(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in execution context: %v\n%s", r, debug.Stack())
		}
	}()
	return fn()
}

// Run executes fn on the context's goroutine and blocks until it returns.
// A panic in fn is recovered and returned as an error.
//
// ctx only bounds the wait for the context to accept the work; once fn has
// started, Run waits for it to finish.
func (c *Context) Run(ctx context.Context, fn func() error) error {
	t := task{fn: fn, result: make(chan error, 1)}

	select {
	case <-c.done:
		return ErrShutdown
	default:
	}

	select {
	case c.tasks <- t:
	case <-c.done:
		return ErrShutdown
	case <-ctx.Done():
		return ctx.Err()
	}
	return <-t.result
}

// Shutdown stops the context's goroutine and frees its factory slot. Work
// already running is not interrupted. It is safe to call more than once.
func (c *Context) Shutdown() {
	c.stopOnce.Do(func() {
		close(c.done)
		if c.release != nil {
			c.release()
		}
	})
}

// Closed reports whether Shutdown has been called.
func (c *Context) Closed() bool {
	select {
	case <-c.done:
		return true
	default:
		return false
	}
}
