// Package process tracks the router process and delivers its graceful
// reload signal.
package process

import (
	"fmt"
	"strconv"
	"strings"
	"syscall"

	"github.com/openclaw/gate-ctl/internal/system"
)

// ReloadSignal asks the router to re-read its config, drain connections
// on the previously active backend, and serve new connections per the
// updated config, all without closing its listening socket.
const ReloadSignal = syscall.SIGUSR2

// Router is the handle to the running router process. Implementations
// must keep reload graceful: drain old, serve new, keep the listener
// open.
type Router interface {
	// IsAlive reports whether the router process is running.
	IsAlive() bool

	// PID returns the router's process id from its pid file.
	PID() (int, error)

	// Reload delivers the graceful reconfiguration signal.
	Reload() error
}

// PidFileRouter implements Router against a pid file written by the
// router on startup. Liveness is signal 0; reload is SIGUSR2.
type PidFileRouter struct {
	PidFile string
	FS      system.FileSystem

	// kill is swappable for tests.
	kill func(pid int, sig syscall.Signal) error
}

// New returns a PidFileRouter reading the given pid file.
func New(pidFile string, fs system.FileSystem) *PidFileRouter {
	return &PidFileRouter{
		PidFile: pidFile,
		FS:      fs,
		kill:    syscall.Kill,
	}
}

// PID reads the pid file. A missing pid file is an error the callers
// treat as "not running", never as fatal.
func (r *PidFileRouter) PID() (int, error) {
	data, err := r.FS.ReadFile(r.PidFile)
	if err != nil {
		return 0, fmt.Errorf("failed to read pid file %s: %w", r.PidFile, err)
	}

	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, fmt.Errorf("invalid pid file %s: %w", r.PidFile, err)
	}
	if pid <= 0 {
		return 0, fmt.Errorf("invalid pid %d in %s", pid, r.PidFile)
	}
	return pid, nil
}

// IsAlive reports whether the pid from the pid file is a live process.
func (r *PidFileRouter) IsAlive() bool {
	pid, err := r.PID()
	if err != nil {
		return false
	}
	return r.kill(pid, 0) == nil
}

// Reload sends the graceful reload signal to the router.
func (r *PidFileRouter) Reload() error {
	pid, err := r.PID()
	if err != nil {
		return err
	}
	if err := r.kill(pid, ReloadSignal); err != nil {
		return fmt.Errorf("failed to signal router pid %d: %w", pid, err)
	}
	return nil
}
