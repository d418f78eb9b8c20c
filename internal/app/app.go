package app

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/specialistvlad/bridgego/internal/bridge"
	"github.com/specialistvlad/bridgego/internal/config"
	"github.com/specialistvlad/bridgego/internal/ctxlog"
	"github.com/specialistvlad/bridgego/internal/execctx"
	"github.com/specialistvlad/bridgego/internal/host"
	"github.com/specialistvlad/bridgego/internal/registry"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	ctx        context.Context
	outW       io.Writer
	logger     *slog.Logger
	config     *Config
	registry   *registry.Registry
	converter  *bridge.Converter
	host       *host.Host
	session    *config.Model
	httpServer *http.Server
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance, including its own isolated logger, registry and
// host. It panics if the session cannot be loaded.
func NewApp(outW io.Writer, appConfig *Config, loader config.Loader, modules ...registry.Module) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	a := &App{
		ctx:    ctx,
		outW:   outW,
		logger: logger,
		config: appConfig,
	}

	a.session = a.loadSession(loader)

	// Create and populate the registry with Go constructors.
	a.registry = registry.New()
	if len(modules) == 0 {
		modules = coreModules(outW)
	}
	for _, mod := range modules {
		mod.Register(a.registry)
	}
	logger.Debug("All Go modules registered.", "count", len(modules), "components", a.registry.Names())

	policy := bridge.NumberZero
	if appConfig.StrictNumbers {
		policy = bridge.NumberStrict
	}
	a.converter = bridge.New(bridge.WithNumberPolicy(policy))
	a.host = host.New(a.registry,
		host.WithConverter(a.converter),
		host.WithContextFactory(execctx.NewFactory(int64(appConfig.MaxContexts))),
	)
	logger.Debug("Host configured.", "number_policy", policy.String(), "max_contexts", appConfig.MaxContexts)

	return a
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Host returns the application's component host.
func (a *App) Host() *host.Host {
	return a.host
}

// Session returns the loaded session model.
func (a *App) Session() *config.Model {
	return a.session
}
