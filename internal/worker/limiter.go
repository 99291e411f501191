package worker

import (
	"net"
	"net/http"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

// Limiter rate-limits requests per client. Idle client limiters expire so
// the table does not grow with every address ever seen.
type Limiter struct {
	limiters     *cache.Cache
	defaultRate  rate.Limit
	defaultBurst int
}

// NewLimiter creates a new per-client rate limiter
func NewLimiter(requestsPerSecond float64, burst int, idle time.Duration) *Limiter {
	if burst <= 0 {
		burst = 5
	}
	if idle <= 0 {
		idle = 10 * time.Minute
	}

	return &Limiter{
		limiters:     cache.New(idle, idle),
		defaultRate:  rate.Limit(requestsPerSecond),
		defaultBurst: burst,
	}
}

// Allow reports whether the client may make a request now
func (l *Limiter) Allow(client string) bool {
	return l.getLimiter(client).Allow()
}

// getLimiter returns the client's limiter, creating it on first use and
// refreshing its expiry on every use
func (l *Limiter) getLimiter(client string) *rate.Limiter {
	if v, ok := l.limiters.Get(client); ok {
		limiter := v.(*rate.Limiter)
		l.limiters.SetDefault(client, limiter)
		return limiter
	}

	limiter := rate.NewLimiter(l.defaultRate, l.defaultBurst)
	if err := l.limiters.Add(client, limiter, cache.DefaultExpiration); err != nil {
		// Another request created it first
		if v, ok := l.limiters.Get(client); ok {
			return v.(*rate.Limiter)
		}
	}
	return limiter
}

// Clients returns the number of tracked clients
func (l *Limiter) Clients() int {
	return l.limiters.ItemCount()
}

// ClientKey identifies the client of r by its remote IP
func ClientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
