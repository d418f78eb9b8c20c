// Package localsession provides a concrete implementation of the
// session.Session and session.SessionFactory interfaces for in-process runs.
package localsession

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/specialistvlad/bridgego/internal/config"
	"github.com/specialistvlad/bridgego/internal/ctxlog"
	"github.com/specialistvlad/bridgego/internal/host"
	"github.com/specialistvlad/bridgego/internal/inmemorystore"
	"github.com/specialistvlad/bridgego/internal/session"
	"golang.org/x/sync/errgroup"
)

// SessionFactory implements session.SessionFactory for local runs.
type SessionFactory struct {
	// Workers bounds how many component instances run calls at the same time.
	// Zero or less means one worker per instance.
	Workers int
	// NewStore creates the result store for each session. Defaults to
	// inmemorystore.New.
	NewStore func() session.ResultStore
}

// NewSession creates a new local session. No component is created until Run.
func (f *SessionFactory) NewSession(ctx context.Context, model *config.Model, h *host.Host) (session.Session, error) {
	if model == nil {
		return nil, errors.New("session model is nil")
	}
	if err := model.Validate(); err != nil {
		return nil, fmt.Errorf("invalid session: %w", err)
	}
	newStore := f.NewStore
	if newStore == nil {
		newStore = inmemorystore.New
	}
	ctxlog.FromContext(ctx).Debug("Created local session.", "components", len(model.Components), "calls", len(model.Calls), "workers", f.Workers)
	return &Session{
		model:   model,
		host:    h,
		store:   newStore(),
		workers: f.Workers,
		handles: make(map[string]*host.Handle, len(model.Components)),
	}, nil
}

// Session implements session.Session for local runs. Calls on the same
// component instance run in declaration order; different instances run in
// parallel.
type Session struct {
	model   *config.Model
	host    *host.Host
	store   session.ResultStore
	workers int

	mu      sync.Mutex
	order   []string
	handles map[string]*host.Handle
}

// Run initializes every declared component in order, then performs every
// call. If any component fails to initialize, the handles created so far are
// cleaned up and the error is returned.
func (s *Session) Run(ctx context.Context) (*session.Report, error) {
	logger := ctxlog.FromContext(ctx)

	if err := s.initialize(ctx); err != nil {
		if cerr := s.Close(ctx); cerr != nil {
			logger.Warn("Cleanup after failed initialization reported errors.", "error", cerr)
		}
		return nil, err
	}

	g, gctx := errgroup.WithContext(ctx)
	if s.workers > 0 {
		g.SetLimit(s.workers)
	}
	for _, comp := range s.model.Components {
		calls := s.model.CallsFor(comp.Name)
		if len(calls) == 0 {
			continue
		}
		handle := s.handle(comp.Name)
		g.Go(func() error {
			for _, call := range calls {
				if err := s.store.SetResult(gctx, s.call(gctx, handle, call)); err != nil {
					return fmt.Errorf("failed to record result of %s: %w", call.ID(), err)
				}
			}
			return nil
		})
	}
	// Call failures live in the results; only the store can fail the group.
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &session.Report{Results: make([]*session.Result, 0, len(s.model.Calls))}
	for _, call := range s.model.Calls {
		res, ok, err := s.store.GetResult(ctx, call.ID())
		if err != nil {
			return nil, fmt.Errorf("failed to read result of %s: %w", call.ID(), err)
		}
		if !ok {
			return nil, fmt.Errorf("no result recorded for %s", call.ID())
		}
		report.Results = append(report.Results, res)
	}
	logger.Info("Session calls finished.", "calls", len(report.Results), "failed", report.Failed())
	return report, nil
}

func (s *Session) initialize(ctx context.Context) error {
	for _, comp := range s.model.Components {
		handle, err := s.host.Initialize(ctx, host.ComponentConfig{Name: comp.Type, Config: comp.Config})
		if err != nil {
			return fmt.Errorf("%s: failed to initialize component '%s' of type '%s': %w", comp.DeclRange, comp.Name, comp.Type, err)
		}
		s.mu.Lock()
		s.order = append(s.order, comp.Name)
		s.handles[comp.Name] = handle
		s.mu.Unlock()
	}
	return nil
}

func (s *Session) handle(name string) *host.Handle {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.handles[name]
}

func (s *Session) call(ctx context.Context, handle *host.Handle, call *config.Call) *session.Result {
	logger := ctxlog.FromContext(ctx).With("call", call.ID())
	res := &session.Result{Call: call, Handle: handle.ID().String()}

	if err := ctx.Err(); err != nil {
		res.Err = err
		return res
	}

	start := time.Now()
	out, err := s.host.Process(ctx, handle, call.Input)
	res.Duration = time.Since(start)
	if err != nil {
		logger.Warn("Call failed.", "error", err)
		res.Err = err
		return res
	}
	logger.Debug("Call succeeded.", "duration", res.Duration)
	res.Output = out
	return res
}

// Close cleans up handles in reverse creation order. Every handle is tried;
// the errors are joined. Calling Close again is a no-op.
func (s *Session) Close(ctx context.Context) error {
	s.mu.Lock()
	order := s.order
	handles := s.handles
	s.order = nil
	s.handles = make(map[string]*host.Handle)
	s.mu.Unlock()

	var errs []error
	for i := len(order) - 1; i >= 0; i-- {
		name := order[i]
		if err := s.host.Cleanup(ctx, handles[name]); err != nil && !host.IsClosed(err) {
			errs = append(errs, fmt.Errorf("component '%s': %w", name, err))
		}
	}
	return errors.Join(errs...)
}
