// Package haproxy reads and mutates the gateway router configuration
// artifact. The artifact is a plain HAProxy config whose single mutable
// fact is the port in the "server active" directive; everything else is
// left byte-for-byte untouched by promotion.
package haproxy

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/openclaw/gate-ctl/internal/system"
)

// activeDirective matches the one line naming the active backend, e.g.
//
//	server active 127.0.0.1:4001 check
//
// Capture groups: everything through the colon, the port, the rest of
// the line.
var activeDirective = regexp.MustCompile(`(?m)^(\s*server\s+active\s+[\w.\-]+:)(\d+)(.*)$`)

// ActivePort parses the active backend port out of the artifact.
func ActivePort(content []byte) (int, error) {
	matches := activeDirective.FindAllSubmatch(content, -1)
	if len(matches) == 0 {
		return 0, fmt.Errorf("no active server directive found")
	}
	if len(matches) > 1 {
		return 0, fmt.Errorf("%d active server directives found, want exactly one", len(matches))
	}

	port, err := strconv.Atoi(string(matches[0][2]))
	if err != nil {
		return 0, fmt.Errorf("invalid active port %q: %w", matches[0][2], err)
	}
	return port, nil
}

// SetActivePort rewrites the active directive's port in place. The
// substitution is idempotent: applying the same port twice yields
// identical content.
func SetActivePort(content []byte, port int) ([]byte, error) {
	if _, err := ActivePort(content); err != nil {
		return nil, err
	}
	replaced := activeDirective.ReplaceAll(content, []byte(fmt.Sprintf("${1}%d${3}", port)))
	return replaced, nil
}

// Store is the durable router configuration artifact.
type Store struct {
	Path string
	FS   system.FileSystem
}

// NewStore returns a Store for the artifact at path.
func NewStore(path string, fs system.FileSystem) *Store {
	return &Store{Path: path, FS: fs}
}

// ActivePort reads the artifact and returns the active backend port.
func (s *Store) ActivePort() (int, error) {
	content, err := s.FS.ReadFile(s.Path)
	if err != nil {
		return 0, fmt.Errorf("failed to read %s: %w", s.Path, err)
	}
	return ActivePort(content)
}

// SetActivePort rewrites the artifact's active directive. The write is
// atomic and durable: a temp file in the same directory is synced and
// renamed over the artifact, so the router can never observe a partial
// config and a racing writer cannot corrupt the directive.
func (s *Store) SetActivePort(port int) error {
	content, err := s.FS.ReadFile(s.Path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", s.Path, err)
	}

	updated, err := SetActivePort(content, port)
	if err != nil {
		return fmt.Errorf("failed to rewrite %s: %w", s.Path, err)
	}

	if err := s.FS.WriteFileAtomic(s.Path, updated, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", s.Path, err)
	}
	return nil
}

// Render produces a complete router config for a fresh deployment:
// a frontend on routerPort, both upstream servers declared as backends,
// and the active directive pointing at activePort. Used by start-all to
// bootstrap a missing artifact.
func Render(routerPort, primaryPort, secondaryPort, activePort int) []byte {
	return []byte(fmt.Sprintf(`global
    maxconn 256

defaults
    mode http
    timeout connect 5s
    timeout client 300s
    timeout server 300s

frontend llm_gateway
    bind *:%d
    default_backend active_proxy

# primary 127.0.0.1:%d  secondary 127.0.0.1:%d
backend active_proxy
    server active 127.0.0.1:%d
`, routerPort, primaryPort, secondaryPort, activePort))
}
