package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"

	applog "woodenmart/internal/log"
)

// BreakerSettings tune the circuit breaker around the transport.
type BreakerSettings struct {
	// Failures is the number of consecutive failures that opens the circuit.
	Failures uint32
	// Cooldown is how long the circuit stays open before letting a probe through.
	Cooldown time.Duration
}

// errServer marks 5xx responses as failures for the breaker only; the response itself
// is still handed back to the caller.
type errServer struct{ status int }

func (e errServer) Error() string { return fmt.Sprintf("server error %d", e.status) }

type breakerTransport struct {
	next http.RoundTripper
	cb   *gobreaker.CircuitBreaker[*http.Response]
}

func newBreakerTransport(s BreakerSettings, next http.RoundTripper) *breakerTransport {
	if s.Failures == 0 {
		s.Failures = 5
	}
	return &breakerTransport{
		next: next,
		cb: gobreaker.NewCircuitBreaker[*http.Response](gobreaker.Settings{
			Name:        "catalog",
			MaxRequests: 1,
			Timeout:     s.Cooldown,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= s.Failures
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				applog.Security(nil, "api.breaker.state", map[string]any{"breaker": name, "from": from.String(), "to": to.String()})
			},
		}),
	}
}

func (t *breakerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.cb.Execute(func() (*http.Response, error) {
		resp, err := t.next.RoundTrip(req)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode >= 500 {
			return resp, errServer{status: resp.StatusCode}
		}
		return resp, nil
	})
	var se errServer
	if errors.As(err, &se) {
		return resp, nil
	}
	return resp, err
}
