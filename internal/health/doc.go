// Package health probes gateway endpoints over loopback HTTP.
//
// Each upstream proxy instance and the router expose a liveness
// endpoint on their fixed port. A probe is a single bounded-timeout
// GET classified as healthy or unreachable; probes never fail the
// caller, so status reporting stays total even under partial outage.
package health
