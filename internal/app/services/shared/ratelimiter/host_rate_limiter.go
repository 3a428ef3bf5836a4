package ratelimiter

import (
	"context"
	"net/http"
	"smartrx-service/internal/pkg/exceptions"
	"strings"
	"sync"

	"golang.org/x/time/rate"
)

// HostLimiter throttles outbound calls per remote host. One instance is shared
// by every browser session so a single EHR is never flooded by this process.
type HostLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
	burst    int
}

func NewHostLimiter(requestsPerSecond, burst int) *HostLimiter {
	limit := rate.Inf
	if requestsPerSecond > 0 {
		limit = rate.Limit(requestsPerSecond)
	}
	if burst <= 0 {
		burst = 1
	}
	return &HostLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    limit,
		burst:    burst,
	}
}

func (l *HostLimiter) limiterFor(host string) *rate.Limiter {
	host = strings.ToLower(host)

	l.mu.Lock()
	defer l.mu.Unlock()

	limiter, exists := l.limiters[host]
	if !exists {
		limiter = rate.NewLimiter(l.limit, l.burst)
		l.limiters[host] = limiter
	}
	return limiter
}

// Wait blocks until a call to host is allowed or ctx is done.
func (l *HostLimiter) Wait(ctx context.Context, host string) error {
	err := l.limiterFor(host).Wait(ctx)
	if err != nil {
		return exceptions.ErrFHIRRateLimited(err, host)
	}
	return nil
}

// Transport wraps base so every request waits for its host's limiter first.
func (l *HostLimiter) Transport(base http.RoundTripper) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	return &limitedTransport{limiter: l, base: base}
}

type limitedTransport struct {
	limiter *HostLimiter
	base    http.RoundTripper
}

func (t *limitedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	err := t.limiter.Wait(req.Context(), req.URL.Host)
	if err != nil {
		return nil, err
	}
	return t.base.RoundTrip(req)
}
