package health

import (
	"net/http"
	"time"
)

// Status represents the probed health of a gateway endpoint.
type Status string

const (
	StatusHealthy     Status = "healthy"
	StatusUnreachable Status = "unreachable"
)

// DefaultTimeout bounds a single probe when no timeout is configured.
const DefaultTimeout = 2 * time.Second

// Prober performs bounded-timeout HTTP liveness probes.
type Prober struct {
	client *http.Client
}

// NewProber returns a Prober whose probes are bounded by timeout.
func NewProber(timeout time.Duration) *Prober {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Prober{
		client: &http.Client{Timeout: timeout},
	}
}

// Probe GETs the url and classifies the endpoint. Any response is
// proof of liveness as long as the server itself is not failing;
// connection refusal, timeout, or a 5xx all classify as unreachable.
// Probe never returns an error: failures downgrade the status.
func (p *Prober) Probe(url string) Status {
	resp, err := p.client.Get(url)
	if err != nil {
		return StatusUnreachable
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return StatusUnreachable
	}
	return StatusHealthy
}
