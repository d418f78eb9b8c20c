package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/specialistvlad/bridgego/internal/ctxlog"
	"github.com/specialistvlad/bridgego/internal/localsession"
)

// ErrCallsFailed is returned by Run when at least one call failed.
var ErrCallsFailed = errors.New("session calls failed")

// Run executes the loaded session: it creates every component, performs every
// call, writes one output line per call, and cleans everything up.
func (a *App) Run(ctx context.Context) (err error) {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	if a.config.HealthcheckPort > 0 {
		a.healthCheckServer()
		defer func() {
			if cerr := a.closeHealthCheckServer(); cerr != nil {
				err = errors.Join(err, cerr)
			}
		}()
	}

	if len(a.session.Components) == 0 {
		a.logger.Warn("No components found in session, execution not required.")
		return nil
	}

	factory := &localsession.SessionFactory{Workers: a.config.WorkerCount}
	s, err := factory.NewSession(ctx, a.session, a.host)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	defer func() {
		if cerr := s.Close(ctx); cerr != nil {
			err = errors.Join(err, fmt.Errorf("cleanup failed: %w", cerr))
		}
	}()

	a.logger.Info("Starting session.", "components", len(a.session.Components), "calls", len(a.session.Calls))
	report, err := s.Run(ctx)
	if err != nil {
		return fmt.Errorf("session failed: %w", err)
	}

	failed := 0
	for _, res := range report.Results {
		line, ok := a.formatResult(res)
		if !ok {
			failed++
		}
		fmt.Fprintln(a.outW, line)
	}
	a.logger.Info("Session finished.", "calls", len(report.Results), "failed", failed)

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d", ErrCallsFailed, failed, len(report.Results))
	}
	return nil
}
