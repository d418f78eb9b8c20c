package app

import (
	"fmt"

	"github.com/specialistvlad/bridgego/internal/config"
)

// loadSession reads the session model. A failure to load is a fatal startup
// error, so it panics.
func (a *App) loadSession(loader config.Loader) *config.Model {
	a.logger.Debug("Loading session...", "session_path", a.config.SessionPath)

	model, err := loader.Load(a.ctx, a.config.SessionPath)
	if err != nil {
		panic(fmt.Errorf("failed to load session: %w", err))
	}

	a.logger.Info("Session loaded successfully.", "components", len(model.Components), "calls", len(model.Calls))
	return model
}
