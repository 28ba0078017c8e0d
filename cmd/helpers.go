package cmd

import (
	"github.com/openclaw/gate-ctl/internal/app"
	"github.com/openclaw/gate-ctl/internal/audit"
	"github.com/openclaw/gate-ctl/internal/config"
	"github.com/openclaw/gate-ctl/internal/promotion"
	"github.com/openclaw/gate-ctl/internal/status"
)

// cfg returns the active configuration.
// This is a helper to reduce repetition in commands.
func cfg() *config.Config {
	return app.Default.Config
}

// requireConfig refuses to touch gateway state when the config file
// failed to load. Promoting against fallback defaults would rewrite
// the wrong artifact on the wrong ports; read-only commands may still
// run on the defaults.
func requireConfig() error {
	return app.Default.LoadErr
}

// getController returns a promotion controller for the default app.
func getController() *promotion.Controller {
	return app.Default.Controller()
}

// getReporter returns a status reporter for the default app.
func getReporter() *status.Reporter {
	return app.Default.Reporter()
}

// getAuditLogger returns the default app's audit logger.
func getAuditLogger() *audit.Logger {
	return app.Default.Audit
}

// reportOutcome prints the user-facing result of a promotion or
// rollback. Degraded outcomes still exit zero; the config artifact is
// correct and the router will adopt it on next start.
func reportOutcome(verb string, o *promotion.Outcome) {
	if o.Degraded() {
		if o.ReloadErr != nil {
			logError("%s to %s recorded, but reload signal failed: %v", verb, o.Target, o.ReloadErr)
		} else {
			logWarning("%s to %s recorded, but router is not running", verb, o.Target)
		}
		logWarning("config updated, not applied until the router starts")
		return
	}
	logSuccess("%s to %s (port %d), router reloading gracefully", verb, o.Target, o.Port)
}
