package cmd

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/openclaw/gate-ctl/internal/app"
	"github.com/openclaw/gate-ctl/internal/audit"
	"github.com/openclaw/gate-ctl/internal/config"
	"github.com/openclaw/gate-ctl/internal/errors"
	"github.com/openclaw/gate-ctl/internal/haproxy"
	"github.com/openclaw/gate-ctl/internal/process"
	"github.com/openclaw/gate-ctl/internal/status"
	"github.com/openclaw/gate-ctl/internal/system"
)

// testEnv holds the mocked application state behind app.Default.
type testEnv struct {
	cfg    *config.Config
	fs     *system.MockFS
	exec   *system.MockExecutor
	router *process.MockRouter
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	stateDir := t.TempDir()

	cfg := config.Default()
	cfg.StateDir = stateDir
	cfg.RouterConfig = filepath.Join(stateDir, "haproxy.cfg")
	cfg.RouterPidFile = filepath.Join(stateDir, "router.pid")
	cfg.PromotionLog = filepath.Join(stateDir, "promotions.log")

	env := &testEnv{
		cfg:    cfg,
		fs:     system.NewMockFS(),
		exec:   system.NewMockExecutor(),
		router: &process.MockRouter{Alive: true, Pid: 4242},
	}

	content := haproxy.Render(cfg.RouterPort, cfg.PrimaryPort, cfg.SecondaryPort, cfg.PrimaryPort)
	env.fs.AddFile(cfg.RouterConfig, content, 0644)

	app.SetDefault(app.New(
		app.WithConfig(cfg),
		app.WithFS(env.fs),
		app.WithExecutor(env.exec),
		app.WithRouter(env.router),
	))
	t.Cleanup(app.ResetDefault)

	return env
}

func executeCommand(args ...string) (string, error) {
	// Reset flag values before each test
	promoteConfirm = false
	statusJSON = false
	eventsJSON = false
	eventsCount = 0
	verbose = false
	jsonOutput = false

	cmd := rootCmd
	cmd.SetArgs(args)

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	err := cmd.Execute()

	cmd.SetArgs(nil)
	cmd.SetOut(nil)
	cmd.SetErr(nil)

	return out.String(), err
}

func (e *testEnv) activePort(t *testing.T) int {
	t.Helper()

	data, ok := e.fs.GetFile(e.cfg.RouterConfig)
	if !ok {
		t.Fatal("router config missing")
	}
	port, err := haproxy.ActivePort(data)
	if err != nil {
		t.Fatalf("ActivePort: %v", err)
	}
	return port
}

func TestPromote(t *testing.T) {
	env := setupTestEnv(t)

	_, err := executeCommand("promote", "secondary")
	if err != nil {
		t.Fatalf("promote failed: %v", err)
	}

	if got := env.activePort(t); got != env.cfg.SecondaryPort {
		t.Errorf("active port = %d, want %d", got, env.cfg.SecondaryPort)
	}
	if env.router.Reloads != 1 {
		t.Errorf("reloads = %d, want 1", env.router.Reloads)
	}
}

func TestPromote_InvalidTarget(t *testing.T) {
	env := setupTestEnv(t)

	_, err := executeCommand("promote", "canary")
	if err == nil {
		t.Fatal("expected error for invalid target")
	}
	if code := errors.GetExitCode(err); code != errors.ExitInvalidTarget {
		t.Errorf("exit code = %d, want %d", code, errors.ExitInvalidTarget)
	}
	if env.router.Reloads != 0 {
		t.Error("invalid target must not signal the router")
	}
	if got := env.activePort(t); got != env.cfg.PrimaryPort {
		t.Errorf("active port changed to %d", got)
	}
}

func TestPromote_RouterDown(t *testing.T) {
	env := setupTestEnv(t)
	env.router.Alive = false

	_, err := executeCommand("promote", "secondary")
	if err != nil {
		t.Fatalf("degraded promotion must exit zero, got %v", err)
	}

	if got := env.activePort(t); got != env.cfg.SecondaryPort {
		t.Errorf("active port = %d, want %d", got, env.cfg.SecondaryPort)
	}
	if env.router.Reloads != 0 {
		t.Error("dead router must not be signalled")
	}
}

func TestRollback(t *testing.T) {
	env := setupTestEnv(t)

	if _, err := executeCommand("promote", "secondary"); err != nil {
		t.Fatalf("promote failed: %v", err)
	}
	if _, err := executeCommand("rollback"); err != nil {
		t.Fatalf("rollback failed: %v", err)
	}

	if got := env.activePort(t); got != env.cfg.PrimaryPort {
		t.Errorf("active port = %d, want %d", got, env.cfg.PrimaryPort)
	}
	if env.router.Reloads != 2 {
		t.Errorf("reloads = %d, want 2", env.router.Reloads)
	}
}

func TestStatus(t *testing.T) {
	setupTestEnv(t)

	out, err := executeCommand("status")
	if err != nil {
		t.Fatalf("status failed: %v", err)
	}

	if !strings.Contains(out, "Active backend: primary") {
		t.Errorf("missing active backend line:\n%s", out)
	}
	if !strings.Contains(out, "running (pid 4242)") {
		t.Errorf("missing router process line:\n%s", out)
	}
}

func TestStatus_JSON(t *testing.T) {
	env := setupTestEnv(t)

	out, err := executeCommand("status", "--json")
	if err != nil {
		t.Fatalf("status --json failed: %v", err)
	}

	var report status.Report
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, out)
	}
	if report.Active != "primary" {
		t.Errorf("active = %q, want primary", report.Active)
	}
	if report.ActivePort != env.cfg.PrimaryPort {
		t.Errorf("activePort = %d, want %d", report.ActivePort, env.cfg.PrimaryPort)
	}
}

func TestStartAll(t *testing.T) {
	env := setupTestEnv(t)

	out, err := executeCommand("start-all")
	if err != nil {
		t.Fatalf("start-all failed: %v", err)
	}

	if len(env.exec.Commands) != 3 {
		t.Fatalf("launched %d commands, want 3", len(env.exec.Commands))
	}
	if !strings.Contains(out, "Active backend: primary") {
		t.Errorf("start-all should print the status report:\n%s", out)
	}
}

func TestEvents_Empty(t *testing.T) {
	setupTestEnv(t)

	_, err := executeCommand("events")
	if err != nil {
		t.Fatalf("events failed: %v", err)
	}
}

func TestEvents_AfterPromote(t *testing.T) {
	setupTestEnv(t)

	if _, err := executeCommand("promote", "secondary"); err != nil {
		t.Fatalf("promote failed: %v", err)
	}

	events, err := app.Default.Audit.Events(audit.GatewayComponent)
	if err != nil {
		t.Fatalf("Events: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	if events[0].Type != audit.EventPromote {
		t.Errorf("event type = %s, want %s", events[0].Type, audit.EventPromote)
	}

	out, err := executeCommand("events")
	if err != nil {
		t.Fatalf("events failed: %v", err)
	}
	if !strings.Contains(out, string(audit.EventPromote)) {
		t.Errorf("missing promote event:\n%s", out)
	}
}

func TestEvents_JSON(t *testing.T) {
	setupTestEnv(t)

	if _, err := executeCommand("promote", "secondary"); err != nil {
		t.Fatalf("promote failed: %v", err)
	}

	out, err := executeCommand("events", "--json")
	if err != nil {
		t.Fatalf("events --json failed: %v", err)
	}

	var event audit.Event
	line := strings.SplitN(strings.TrimSpace(out), "\n", 2)[0]
	if err := json.Unmarshal([]byte(line), &event); err != nil {
		t.Fatalf("output is not JSON lines: %v\n%s", err, out)
	}
	if event.Component != audit.GatewayComponent {
		t.Errorf("component = %q", event.Component)
	}
}

func setupBrokenConfigEnv(t *testing.T) (*system.MockFS, *process.MockRouter) {
	t.Helper()

	fs := system.NewMockFS()
	fs.AddFile(config.DefaultPath(), []byte("primary_port = ["), 0644)
	fs.AddFile(config.Default().RouterConfig, haproxy.Render(4000, 4001, 4002, 4001), 0644)

	router := &process.MockRouter{Alive: true}
	app.SetDefault(app.New(
		app.WithFS(fs),
		app.WithExecutor(system.NewMockExecutor()),
		app.WithRouter(router),
	))
	t.Cleanup(app.ResetDefault)

	return fs, router
}

func TestPromote_ConfigError(t *testing.T) {
	fs, router := setupBrokenConfigEnv(t)

	_, err := executeCommand("promote", "secondary")
	if err == nil {
		t.Fatal("promote must refuse to run on a broken config")
	}
	if code := errors.GetExitCode(err); code != errors.ExitConfigError {
		t.Errorf("exit code = %d, want %d", code, errors.ExitConfigError)
	}

	// Nothing may be mutated or signalled on fallback defaults.
	data, _ := fs.GetFile(config.Default().RouterConfig)
	if port, _ := haproxy.ActivePort(data); port != 4001 {
		t.Errorf("active port = %d, artifact must be untouched", port)
	}
	if router.Reloads != 0 {
		t.Error("no reload may be sent on a broken config")
	}
}

func TestRollback_ConfigError(t *testing.T) {
	_, router := setupBrokenConfigEnv(t)

	_, err := executeCommand("rollback")
	if err == nil {
		t.Fatal("rollback must refuse to run on a broken config")
	}
	if code := errors.GetExitCode(err); code != errors.ExitConfigError {
		t.Errorf("exit code = %d, want %d", code, errors.ExitConfigError)
	}
	if router.Reloads != 0 {
		t.Error("no reload may be sent on a broken config")
	}
}

func TestStartAll_ConfigError(t *testing.T) {
	setupBrokenConfigEnv(t)

	_, err := executeCommand("start-all")
	if err == nil {
		t.Fatal("start-all must refuse to run on a broken config")
	}
	if code := errors.GetExitCode(err); code != errors.ExitConfigError {
		t.Errorf("exit code = %d, want %d", code, errors.ExitConfigError)
	}
}

func TestStatus_ConfigErrorStillRuns(t *testing.T) {
	setupBrokenConfigEnv(t)

	out, err := executeCommand("status")
	if err != nil {
		t.Fatalf("status must stay read-only and exit zero, got %v", err)
	}
	if !strings.Contains(out, "Active backend") {
		t.Errorf("status should still report on defaults:\n%s", out)
	}
}

func TestUnknownCommand(t *testing.T) {
	setupTestEnv(t)

	_, err := executeCommand("does-not-exist")
	if err == nil {
		t.Fatal("expected error for unknown command")
	}
}
