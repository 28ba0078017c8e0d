// Package backend defines the two redundant gateway upstreams and the
// total mapping between their labels and ports.
package backend

import (
	"fmt"
)

// Backend identifies one of the two redundant upstream proxy instances
// behind the gateway router. Exactly two values exist; internal callers
// can never hold an invalid Backend, so only CLI input needs runtime
// validation (via Parse).
type Backend int

const (
	// Primary is the blue instance, the default active backend.
	Primary Backend = iota
	// Secondary is the green instance.
	Secondary
)

// Default ports for the gateway deployment. The router itself listens
// on RouterPort; the upstreams bind PrimaryPort and SecondaryPort.
const (
	RouterPort    = 4000
	PrimaryPort   = 4001
	SecondaryPort = 4002
)

// Set holds the concrete port assignment for both backends. Ports are
// fixed at configuration time and immutable for the process lifetime.
type Set struct {
	PrimaryPort   int
	SecondaryPort int
}

// DefaultSet returns the conventional port assignment.
func DefaultSet() Set {
	return Set{PrimaryPort: PrimaryPort, SecondaryPort: SecondaryPort}
}

// String returns the backend label.
func (b Backend) String() string {
	if b == Secondary {
		return "secondary"
	}
	return "primary"
}

// Other returns the opposite backend. With exactly two backends this is
// a total function.
func (b Backend) Other() Backend {
	if b == Primary {
		return Secondary
	}
	return Primary
}

// Port resolves the backend's port within the set.
func (s Set) Port(b Backend) int {
	if b == Secondary {
		return s.SecondaryPort
	}
	return s.PrimaryPort
}

// ByPort maps a port back to its backend. The second return is false
// when the port belongs to neither backend (corrupted or hand-edited
// router config).
func (s Set) ByPort(port int) (Backend, bool) {
	switch port {
	case s.PrimaryPort:
		return Primary, true
	case s.SecondaryPort:
		return Secondary, true
	}
	return Primary, false
}

// Validate checks that the set is usable: both ports positive and
// distinct.
func (s Set) Validate() error {
	if s.PrimaryPort <= 0 || s.SecondaryPort <= 0 {
		return fmt.Errorf("backend ports must be positive, got %d and %d", s.PrimaryPort, s.SecondaryPort)
	}
	if s.PrimaryPort == s.SecondaryPort {
		return fmt.Errorf("backend ports must differ, both are %d", s.PrimaryPort)
	}
	return nil
}

// Parse validates an external label. Only "primary" and "secondary" are
// accepted; anything else is a user error.
func Parse(label string) (Backend, error) {
	switch label {
	case "primary":
		return Primary, nil
	case "secondary":
		return Secondary, nil
	}
	return Primary, fmt.Errorf("unknown backend label %q", label)
}
