// Package startall brings up the full gateway stack in order: both
// upstream proxy instances, a settle delay, then the router. The
// sequence is fail-fast; a failed step aborts the rest rather than
// continuing into a partial startup.
package startall

import (
	"fmt"
	"path/filepath"
	"time"

	shellquote "github.com/kballard/go-shellquote"

	"github.com/openclaw/gate-ctl/internal/audit"
	"github.com/openclaw/gate-ctl/internal/backend"
	"github.com/openclaw/gate-ctl/internal/config"
	"github.com/openclaw/gate-ctl/internal/errors"
	"github.com/openclaw/gate-ctl/internal/haproxy"
	"github.com/openclaw/gate-ctl/internal/logging"
	"github.com/openclaw/gate-ctl/internal/system"
)

// Orchestrator runs the startup sequence.
type Orchestrator struct {
	Config *config.Config
	FS     system.FileSystem
	Exec   system.CommandExecutor
	Audit  *audit.Logger

	// sleep is swappable for tests.
	sleep func(time.Duration)
}

// New returns an Orchestrator. Audit may be nil.
func New(cfg *config.Config, fs system.FileSystem, exec system.CommandExecutor, auditLog *audit.Logger) *Orchestrator {
	return &Orchestrator{
		Config: cfg,
		FS:     fs,
		Exec:   exec,
		Audit:  auditLog,
		sleep:  time.Sleep,
	}
}

// Run executes the startup sequence. The returned error names the step
// that failed; steps after it were not attempted.
func (o *Orchestrator) Run() error {
	if err := o.prepare(); err != nil {
		return errors.StartupStepFailed("prepare", err)
	}

	for _, b := range []backend.Backend{backend.Primary, backend.Secondary} {
		if err := o.startUpstream(b); err != nil {
			return errors.StartupStepFailed(b.String(), err)
		}
	}

	logging.Debug("waiting for upstreams to settle", "delay", o.Config.SettleDelay())
	o.sleep(o.Config.SettleDelay())

	if err := o.startRouter(); err != nil {
		return errors.StartupStepFailed("router", err)
	}

	return nil
}

// prepare creates the state layout and bootstraps a missing router
// config artifact with primary active.
func (o *Orchestrator) prepare() error {
	if err := o.FS.MkdirAll(filepath.Join(o.Config.StateDir, "logs"), 0755); err != nil {
		return fmt.Errorf("failed to create state dir: %w", err)
	}

	if o.FS.Exists(o.Config.RouterConfig) {
		return nil
	}

	logging.Info("router config missing, writing initial artifact", "path", o.Config.RouterConfig)
	content := haproxy.Render(
		o.Config.RouterPort,
		o.Config.PrimaryPort,
		o.Config.SecondaryPort,
		o.Config.PrimaryPort,
	)
	if err := o.FS.WriteFileAtomic(o.Config.RouterConfig, content, 0644); err != nil {
		return fmt.Errorf("failed to write router config: %w", err)
	}
	return nil
}

// startUpstream launches one proxy instance in the background,
// persisting its pid and redirecting its output.
func (o *Orchestrator) startUpstream(b backend.Backend) error {
	command := o.Config.Commands.Primary
	if b == backend.Secondary {
		command = o.Config.Commands.Secondary
	}

	pid, err := o.launch(b.String(), command)
	if err != nil {
		return err
	}

	pidPath := o.Config.InstancePidPath(b.String())
	if err := o.FS.WriteFile(pidPath, []byte(fmt.Sprintf("%d\n", pid)), 0644); err != nil {
		return fmt.Errorf("failed to persist pid for %s: %w", b, err)
	}

	o.auditStart(b.String(), pid)
	logging.Info("started upstream", "label", b.String(), "pid", pid, "port", o.Config.Backends().Port(b))
	return nil
}

// startRouter launches the router against the config artifact and
// persists its pid. Promotion and status read this pid file to decide
// whether a reload signal has somewhere to go.
func (o *Orchestrator) startRouter() error {
	pid, err := o.launch("router", o.Config.Commands.Router)
	if err != nil {
		return err
	}

	if err := o.FS.WriteFile(o.Config.RouterPidFile, []byte(fmt.Sprintf("%d\n", pid)), 0644); err != nil {
		return fmt.Errorf("failed to persist router pid: %w", err)
	}

	o.auditStart(audit.GatewayComponent, pid)
	logging.Info("started router", "pid", pid, "port", o.Config.RouterPort)
	return nil
}

func (o *Orchestrator) launch(name, command string) (int, error) {
	argv, err := shellquote.Split(command)
	if err != nil {
		return 0, fmt.Errorf("invalid command for %s: %w", name, err)
	}
	if len(argv) == 0 {
		return 0, fmt.Errorf("empty command for %s", name)
	}

	logPath := o.Config.InstanceLogPath(name)
	pid, err := o.Exec.StartBackground(logPath, argv[0], argv[1:]...)
	if err != nil {
		return 0, fmt.Errorf("failed to start %s: %w", name, err)
	}
	return pid, nil
}

func (o *Orchestrator) auditStart(component string, pid int) {
	if o.Audit == nil {
		return
	}
	if err := o.Audit.LogEvent(audit.EventStart, component, fmt.Sprintf("pid=%d", pid)); err != nil {
		logging.Warn("failed to write audit event", "error", err)
	}
}
