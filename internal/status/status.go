// Package status aggregates a read-only view of the gateway: the active
// backend per the router config, live health of both upstreams and the
// router, and router process liveness. Reporting never mutates state
// and never fails; every error degrades to a reported field.
package status

import (
	"fmt"
	"strings"

	"github.com/openclaw/gate-ctl/internal/backend"
	"github.com/openclaw/gate-ctl/internal/config"
	"github.com/openclaw/gate-ctl/internal/haproxy"
	"github.com/openclaw/gate-ctl/internal/health"
	"github.com/openclaw/gate-ctl/internal/process"
)

// BackendStatus is the reported state of one upstream instance.
type BackendStatus struct {
	Label  string        `json:"label"`
	Port   int           `json:"port"`
	Active bool          `json:"active"`
	Health health.Status `json:"health"`
}

// RouterStatus is the reported state of the router.
type RouterStatus struct {
	Port    int           `json:"port"`
	Health  health.Status `json:"health"`
	Running bool          `json:"running"`
	PID     int           `json:"pid,omitempty"`
}

// Report is the full gateway status. Given identical inputs the report
// is identical, both as a struct and rendered.
type Report struct {
	// Active is the label of the active backend, or
	// "unknown (port <raw>)" when the config names a port outside the
	// known set, or "unknown (config unreadable)" when the artifact
	// cannot be parsed at all.
	Active     string          `json:"active"`
	ActivePort int             `json:"activePort,omitempty"`
	Backends   []BackendStatus `json:"backends"`
	Router     RouterStatus    `json:"router"`
}

// Reporter produces gateway status reports.
type Reporter struct {
	Config *config.Config
	Store  *haproxy.Store
	Router process.Router
	Prober *health.Prober
}

// New returns a Reporter over the given collaborators.
func New(cfg *config.Config, store *haproxy.Store, router process.Router, prober *health.Prober) *Reporter {
	return &Reporter{Config: cfg, Store: store, Router: router, Prober: prober}
}

// Report gathers the full status. All probe and read failures are
// absorbed into the report.
func (r *Reporter) Report() *Report {
	report := &Report{}
	set := r.Config.Backends()

	activePort, err := r.Store.ActivePort()
	switch {
	case err != nil:
		report.Active = "unknown (config unreadable)"
	default:
		report.ActivePort = activePort
		if active, ok := set.ByPort(activePort); ok {
			report.Active = active.String()
		} else {
			report.Active = fmt.Sprintf("unknown (port %d)", activePort)
		}
	}

	for _, b := range []backend.Backend{backend.Primary, backend.Secondary} {
		port := set.Port(b)
		report.Backends = append(report.Backends, BackendStatus{
			Label:  b.String(),
			Port:   port,
			Active: err == nil && port == activePort,
			Health: r.Prober.Probe(r.Config.HealthURL(port)),
		})
	}

	report.Router = RouterStatus{
		Port:   r.Config.RouterPort,
		Health: r.Prober.Probe(r.Config.HealthURL(r.Config.RouterPort)),
	}
	// A missing pid file means not running, never a failed report.
	if r.Router != nil && r.Router.IsAlive() {
		report.Router.Running = true
		if pid, err := r.Router.PID(); err == nil {
			report.Router.PID = pid
		}
	}

	return report
}

// Render returns the human-readable report.
func (r *Report) Render() string {
	var b strings.Builder

	fmt.Fprintf(&b, "Active backend: %s\n", r.Active)
	b.WriteString("\nBackends:\n")
	for _, be := range r.Backends {
		marker := " "
		if be.Active {
			marker = "*"
		}
		fmt.Fprintf(&b, "  %s %-9s port %d  %s\n", marker, be.Label, be.Port, be.Health)
	}

	b.WriteString("\nRouter:\n")
	fmt.Fprintf(&b, "    port %d  %s\n", r.Router.Port, r.Router.Health)
	if r.Router.Running {
		fmt.Fprintf(&b, "    process: running (pid %d)\n", r.Router.PID)
	} else {
		b.WriteString("    process: not running\n")
	}

	return b.String()
}
