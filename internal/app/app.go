// Package app provides the application context for gate-ctl.
// It allows dependency injection for testing.
package app

import (
	"github.com/openclaw/gate-ctl/internal/audit"
	"github.com/openclaw/gate-ctl/internal/config"
	"github.com/openclaw/gate-ctl/internal/haproxy"
	"github.com/openclaw/gate-ctl/internal/health"
	"github.com/openclaw/gate-ctl/internal/logging"
	"github.com/openclaw/gate-ctl/internal/process"
	"github.com/openclaw/gate-ctl/internal/promotion"
	"github.com/openclaw/gate-ctl/internal/startall"
	"github.com/openclaw/gate-ctl/internal/status"
	"github.com/openclaw/gate-ctl/internal/system"
)

// App holds the application dependencies
type App struct {
	Config *config.Config
	FS     system.FileSystem
	Exec   system.CommandExecutor
	Router process.Router
	Audit  *audit.Logger

	// LoadErr records a config load failure. Config then holds the
	// defaults so read-only commands keep working; commands that mutate
	// gateway state must refuse to run against a fallback config.
	LoadErr error
}

// Option is a function that configures the App
type Option func(*App)

// WithConfig sets a custom config
func WithConfig(cfg *config.Config) Option {
	return func(a *App) {
		a.Config = cfg
	}
}

// WithFS sets a custom filesystem
func WithFS(fs system.FileSystem) Option {
	return func(a *App) {
		a.FS = fs
	}
}

// WithExecutor sets a custom command executor
func WithExecutor(exec system.CommandExecutor) Option {
	return func(a *App) {
		a.Exec = exec
	}
}

// WithRouter sets a custom router handle
func WithRouter(r process.Router) Option {
	return func(a *App) {
		a.Router = r
	}
}

// New creates a new App. Unless overridden, the config is loaded from
// its default path and real OS implementations are used. A broken
// config file falls back to defaults and the failure is kept in
// LoadErr for commands to surface.
func New(opts ...Option) *App {
	a := &App{
		FS:   system.DefaultFS(),
		Exec: system.DefaultExecutor(),
	}

	for _, opt := range opts {
		opt(a)
	}

	if a.Config == nil {
		cfg, err := config.Load(config.DefaultPath(), a.FS)
		if err != nil {
			logging.Debug("failed to load config, using defaults", "error", err)
			a.LoadErr = err
			cfg = config.Default()
		}
		a.Config = cfg
	}

	if a.Router == nil {
		a.Router = process.New(a.Config.RouterPidFile, a.FS)
	}
	if a.Audit == nil {
		a.Audit = audit.NewLogger(a.Config.StateDir)
	}

	return a
}

// Store returns the router config store.
func (a *App) Store() *haproxy.Store {
	return haproxy.NewStore(a.Config.RouterConfig, a.FS)
}

// Prober returns a health prober with the configured timeout.
func (a *App) Prober() *health.Prober {
	return health.NewProber(a.Config.ProbeTimeout())
}

// Controller returns a promotion controller wired to this app.
func (a *App) Controller() *promotion.Controller {
	c := promotion.New(
		a.Config.Backends(),
		a.Store(),
		a.Router,
		promotion.NewLog(a.Config.PromotionLog, a.FS),
		a.Audit,
	)
	c.Prober = a.Prober()
	c.RouterHealthURL = a.Config.HealthURL(a.Config.RouterPort)
	return c
}

// Reporter returns a status reporter wired to this app.
func (a *App) Reporter() *status.Reporter {
	return status.New(a.Config, a.Store(), a.Router, a.Prober())
}

// Orchestrator returns a start-all orchestrator wired to this app.
func (a *App) Orchestrator() *startall.Orchestrator {
	return startall.New(a.Config, a.FS, a.Exec, a.Audit)
}

// Default is the default application instance
var Default = New()

// SetDefault sets the default application instance (used for testing)
func SetDefault(app *App) {
	Default = app
}

// ResetDefault resets to the default application instance
func ResetDefault() {
	Default = New()
}
