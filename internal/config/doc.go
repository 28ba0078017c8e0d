// Package config loads the gate-ctl configuration.
//
// Configuration lives at /etc/openclaw/gate-ctl.toml. Every field has a
// default, so an absent file is valid and yields the conventional
// single-host layout:
//
//	state_dir       = "/var/lib/openclaw"
//	router_config   = "/etc/openclaw/haproxy.cfg"
//	router_pid_file = "/var/lib/openclaw/router.pid"
//	promotion_log   = "/var/lib/openclaw/promotions.log"
//
//	router_port    = 4000
//	primary_port   = 4001
//	secondary_port = 4002
//
//	health_path           = "/health"
//	probe_timeout_seconds = 2
//	settle_delay_seconds  = 2
//
//	[commands]
//	primary   = "openclaw-proxy --port 4001"
//	secondary = "openclaw-proxy --port 4002"
//	router    = "haproxy -f /etc/openclaw/haproxy.cfg"
//
// The command strings are shell-quoted; start-all splits them with
// shellquote before launching.
package config
