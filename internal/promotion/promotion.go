// Package promotion implements the blue/green traffic switch: atomically
// rewrite the router config to a new active backend, then signal the
// router to adopt it gracefully.
package promotion

import (
	"fmt"
	"time"

	"github.com/openclaw/gate-ctl/internal/audit"
	"github.com/openclaw/gate-ctl/internal/backend"
	"github.com/openclaw/gate-ctl/internal/errors"
	"github.com/openclaw/gate-ctl/internal/haproxy"
	"github.com/openclaw/gate-ctl/internal/health"
	"github.com/openclaw/gate-ctl/internal/logging"
	"github.com/openclaw/gate-ctl/internal/process"
)

// Confirmation polling bounds for --confirm promotions.
const (
	confirmAttempts = 5
	confirmInterval = 500 * time.Millisecond
)

// Outcome describes what a promotion actually did. A promotion can
// succeed at the config level while the router was not reloaded; the
// caller must be able to tell the difference.
type Outcome struct {
	Target backend.Backend
	Port   int

	// Applied is true when the reload signal was delivered.
	Applied bool

	// ReloadErr holds the signal delivery failure when the router was
	// alive but could not be signalled. The config write already
	// succeeded, so this is a degraded outcome, not a failed one.
	ReloadErr error

	// Confirmed is true when a post-reload probe saw the router healthy.
	// Only meaningful if confirmation was requested.
	Confirmed bool
}

// Degraded reports whether the config was written but not adopted.
func (o *Outcome) Degraded() bool {
	return !o.Applied
}

// Controller performs promotions and rollbacks against the router
// config store and process handle.
type Controller struct {
	Backends backend.Set
	Store    *haproxy.Store
	Router   process.Router
	Log      *Log
	Audit    *audit.Logger

	// Prober and RouterHealthURL drive optional post-reload
	// confirmation.
	Prober          *health.Prober
	RouterHealthURL string

	// sleep is swappable for tests.
	sleep func(time.Duration)
}

// New returns a Controller wired to the given collaborators. Audit may
// be nil; Log may be nil (no promotion log written).
func New(backends backend.Set, store *haproxy.Store, router process.Router, log *Log, auditLog *audit.Logger) *Controller {
	return &Controller{
		Backends: backends,
		Store:    store,
		Router:   router,
		Log:      log,
		Audit:    auditLog,
		sleep:    time.Sleep,
	}
}

// PromoteLabel validates an external label and promotes it. Callers
// holding a Backend already should call Promote directly.
func (c *Controller) PromoteLabel(label string) (*Outcome, error) {
	target, err := backend.Parse(label)
	if err != nil {
		return nil, errors.InvalidTarget(label)
	}
	return c.Promote(target)
}

// Promote designates target as the active backend.
//
// The config artifact is durably written before any signal is sent;
// signalling against a stale or partial config is the failure mode this
// ordering exists to prevent. Promotion of the already-active backend
// is idempotent: the artifact converges and the router drains nothing.
func (c *Controller) Promote(target backend.Backend) (*Outcome, error) {
	port := c.Backends.Port(target)
	outcome := &Outcome{Target: target, Port: port}

	logging.Debug("promoting backend", "label", target.String(), "port", port)

	// Step 1: durable config mutation. Failure here means traffic is
	// untouched; nothing else may run.
	if err := c.Store.SetActivePort(port); err != nil {
		return nil, errors.ConfigWriteFailure(err)
	}

	// Step 2: graceful reload, only against a live router.
	if c.Router == nil || !c.Router.IsAlive() {
		logging.Warn("router not running, config updated but not applied", "port", port)
		c.auditEvent(audit.EventDegraded, target.String()+" (router not running)")
		return outcome, nil
	}

	if err := c.Router.Reload(); err != nil {
		logging.Warn("router reload signal failed", "error", err)
		outcome.ReloadErr = err
		c.auditEvent(audit.EventDegraded, target.String()+" (reload signal failed)")
		return outcome, nil
	}

	outcome.Applied = true

	// The promotion log records traffic changes only: applied reloads,
	// not config-only writes.
	if c.Log != nil {
		if err := c.Log.Append(target, port); err != nil {
			logging.Warn("failed to append promotion log", "error", err)
		}
	}
	c.auditEvent(audit.EventPromote, outcome.auditDetails())

	return outcome, nil
}

// PromoteConfirmed promotes target and, when the reload was applied,
// polls the router health endpoint until it answers or attempts are
// exhausted. A promotion that cannot be confirmed is still a successful
// promotion; Confirmed simply stays false.
func (c *Controller) PromoteConfirmed(target backend.Backend) (*Outcome, error) {
	outcome, err := c.Promote(target)
	if err != nil {
		return nil, err
	}
	if !outcome.Applied || c.Prober == nil || c.RouterHealthURL == "" {
		return outcome, nil
	}

	for attempt := 0; attempt < confirmAttempts; attempt++ {
		if attempt > 0 {
			c.sleep(confirmInterval)
		}
		if c.Prober.Probe(c.RouterHealthURL) == health.StatusHealthy {
			outcome.Confirmed = true
			break
		}
	}

	if !outcome.Confirmed {
		logging.Warn("promotion applied but router health not confirmed", "url", c.RouterHealthURL)
	}
	return outcome, nil
}

// Rollback reads the active backend from the config artifact and
// promotes the other one. It mutates nothing when the artifact's
// active port maps to no known backend.
func (c *Controller) Rollback() (*Outcome, error) {
	activePort, err := c.Store.ActivePort()
	if err != nil {
		return nil, errors.ConfigReadFailure(err)
	}

	active, ok := c.Backends.ByPort(activePort)
	if !ok {
		return nil, errors.UnknownActiveBackend(activePort)
	}

	target := active.Other()
	logging.Debug("rolling back", "from", active.String(), "to", target.String())

	outcome, err := c.Promote(target)
	if err != nil {
		return nil, err
	}
	c.auditEvent(audit.EventRollback, outcome.auditDetails())
	return outcome, nil
}

func (o *Outcome) auditDetails() string {
	return fmt.Sprintf("%s (port %d)", o.Target, o.Port)
}

func (c *Controller) auditEvent(t audit.EventType, details string) {
	if c.Audit == nil {
		return
	}
	if err := c.Audit.LogEvent(t, audit.GatewayComponent, details); err != nil {
		logging.Warn("failed to write audit event", "error", err)
	}
}
