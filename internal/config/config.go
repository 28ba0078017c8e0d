package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/openclaw/gate-ctl/internal/backend"
	"github.com/openclaw/gate-ctl/internal/errors"
	"github.com/openclaw/gate-ctl/internal/system"
)

const (
	DefaultConfigDir = "/etc/openclaw"
	DefaultStateDir  = "/var/lib/openclaw"

	// ConfigFileName is the gate-ctl config file under the config dir.
	ConfigFileName = "gate-ctl.toml"
)

// Commands holds the launch command lines for the gateway processes.
// Each is a full shell-quoted command string; start-all splits it into
// argv before launching.
type Commands struct {
	Primary   string `toml:"primary"`
	Secondary string `toml:"secondary"`
	Router    string `toml:"router"`
}

// Config is the gate-ctl configuration loaded from gate-ctl.toml.
type Config struct {
	StateDir      string `toml:"state_dir"`
	RouterConfig  string `toml:"router_config"`
	RouterPidFile string `toml:"router_pid_file"`
	PromotionLog  string `toml:"promotion_log"`

	RouterPort    int `toml:"router_port"`
	PrimaryPort   int `toml:"primary_port"`
	SecondaryPort int `toml:"secondary_port"`

	HealthPath          string `toml:"health_path"`
	ProbeTimeoutSeconds int    `toml:"probe_timeout_seconds"`
	SettleDelaySeconds  int    `toml:"settle_delay_seconds"`

	Commands Commands `toml:"commands"`
}

// Default returns a Config with every field set to its conventional
// value for a single-host gateway deployment.
func Default() *Config {
	return &Config{
		StateDir:            DefaultStateDir,
		RouterConfig:        filepath.Join(DefaultConfigDir, "haproxy.cfg"),
		RouterPidFile:       filepath.Join(DefaultStateDir, "router.pid"),
		PromotionLog:        filepath.Join(DefaultStateDir, "promotions.log"),
		RouterPort:          backend.RouterPort,
		PrimaryPort:         backend.PrimaryPort,
		SecondaryPort:       backend.SecondaryPort,
		HealthPath:          "/health",
		ProbeTimeoutSeconds: 2,
		SettleDelaySeconds:  2,
		Commands: Commands{
			Primary:   fmt.Sprintf("openclaw-proxy --port %d", backend.PrimaryPort),
			Secondary: fmt.Sprintf("openclaw-proxy --port %d", backend.SecondaryPort),
			Router:    fmt.Sprintf("haproxy -f %s", filepath.Join(DefaultConfigDir, "haproxy.cfg")),
		},
	}
}

// Load reads the config file at path, applying defaults for any field
// the file leaves unset. A missing file yields the full defaults.
func Load(path string, fs system.FileSystem) (*Config, error) {
	cfg := Default()

	if !fs.Exists(path) {
		return cfg, nil
	}

	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, errors.ConfigError(fmt.Sprintf("failed to read config %s", path), err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, errors.ConfigError(fmt.Sprintf("failed to parse config %s", path), err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.ConfigError(fmt.Sprintf("invalid config %s", path), err)
	}

	return cfg, nil
}

// Validate checks that the Config is usable.
func (c *Config) Validate() error {
	if c.RouterConfig == "" {
		return fmt.Errorf("router_config is required")
	}
	if c.RouterPidFile == "" {
		return fmt.Errorf("router_pid_file is required")
	}
	if c.RouterPort <= 0 {
		return fmt.Errorf("router_port must be positive, got %d", c.RouterPort)
	}
	if err := c.Backends().Validate(); err != nil {
		return err
	}
	if c.RouterPort == c.PrimaryPort || c.RouterPort == c.SecondaryPort {
		return fmt.Errorf("router_port %d collides with a backend port", c.RouterPort)
	}
	if c.ProbeTimeoutSeconds <= 0 {
		return fmt.Errorf("probe_timeout_seconds must be positive, got %d", c.ProbeTimeoutSeconds)
	}
	if c.SettleDelaySeconds < 0 {
		return fmt.Errorf("settle_delay_seconds must not be negative, got %d", c.SettleDelaySeconds)
	}
	return nil
}

// Backends returns the backend port set.
func (c *Config) Backends() backend.Set {
	return backend.Set{PrimaryPort: c.PrimaryPort, SecondaryPort: c.SecondaryPort}
}

// ProbeTimeout returns the health probe timeout.
func (c *Config) ProbeTimeout() time.Duration {
	return time.Duration(c.ProbeTimeoutSeconds) * time.Second
}

// SettleDelay returns the start-all settle delay between starting the
// upstreams and starting the router.
func (c *Config) SettleDelay() time.Duration {
	return time.Duration(c.SettleDelaySeconds) * time.Second
}

// HealthURL returns the loopback health endpoint for a port.
func (c *Config) HealthURL(port int) string {
	return fmt.Sprintf("http://127.0.0.1:%d%s", port, c.HealthPath)
}

// InstanceLogPath returns the log file for a named gateway process
// under the state dir.
func (c *Config) InstanceLogPath(name string) string {
	return filepath.Join(c.StateDir, "logs", name+".log")
}

// InstancePidPath returns the pid file for a named upstream instance
// under the state dir. The router's pid file location is RouterPidFile,
// configured separately because promote and status read it.
func (c *Config) InstancePidPath(name string) string {
	return filepath.Join(c.StateDir, name+".pid")
}

// DefaultPath returns the conventional config file location.
func DefaultPath() string {
	return filepath.Join(DefaultConfigDir, ConfigFileName)
}
