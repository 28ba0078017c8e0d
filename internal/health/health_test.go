package health

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestProbe(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   Status
	}{
		{"ok", http.StatusOK, StatusHealthy},
		{"no content", http.StatusNoContent, StatusHealthy},
		{"not found still live", http.StatusNotFound, StatusHealthy},
		{"server error", http.StatusInternalServerError, StatusUnreachable},
		{"bad gateway", http.StatusBadGateway, StatusUnreachable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			p := NewProber(time.Second)
			if got := p.Probe(srv.URL); got != tt.want {
				t.Errorf("Probe() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestProbe_ConnectionRefused(t *testing.T) {
	// Grab a port that is definitely closed
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	p := NewProber(time.Second)
	if got := p.Probe(url); got != StatusUnreachable {
		t.Errorf("Probe(closed port) = %v, want %v", got, StatusUnreachable)
	}
}

func TestProbe_Timeout(t *testing.T) {
	done := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-done
	}))
	defer func() {
		close(done)
		srv.Close()
	}()

	p := NewProber(50 * time.Millisecond)

	start := time.Now()
	got := p.Probe(srv.URL)
	elapsed := time.Since(start)

	if got != StatusUnreachable {
		t.Errorf("Probe(hanging server) = %v, want %v", got, StatusUnreachable)
	}
	if elapsed > time.Second {
		t.Errorf("probe took %v, timeout not enforced", elapsed)
	}
}

func TestNewProber_ZeroTimeout(t *testing.T) {
	p := NewProber(0)
	if p.client.Timeout != DefaultTimeout {
		t.Errorf("zero timeout should fall back to default, got %v", p.client.Timeout)
	}
}
