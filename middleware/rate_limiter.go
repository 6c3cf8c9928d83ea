package middleware

import (
	"fmt"
	"net"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/mo-sami19/zynk/utils"
)

// IPRateLimiter applies a per-IP sliding-window limit. It protects the
// write endpoints (contact, chatbot) from spam; content GETs are cached and
// left unlimited.
type IPRateLimiter struct {
	max         int
	window      time.Duration
	trustedCIDR []string

	mu    sync.Mutex
	state map[string][]time.Time
}

// NewIPRateLimiter builds a limiter allowing max requests per window per IP.
// TRUSTED_PROXIES (comma-separated IPs or CIDRs) controls whether forwarded
// headers are honored. A cleanup loop prunes idle entries.
func NewIPRateLimiter(max int, window time.Duration) *IPRateLimiter {
	l := &IPRateLimiter{
		max:    max,
		window: window,
		state:  make(map[string][]time.Time),
	}
	if v := os.Getenv("TRUSTED_PROXIES"); v != "" {
		l.trustedCIDR = strings.Split(v, ",")
	}
	go l.cleanupLoop()
	return l
}

// clientIP returns the caller's IP. X-Forwarded-For and X-Real-IP are only
// honored when the remote address is inside one of the trusted proxy ranges;
// otherwise a client could spoof its way past the limit.
func clientIP(r *http.Request, trustedCIDR []string) string {
	remoteHost, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		remoteHost = r.RemoteAddr
	}
	remoteIP := net.ParseIP(remoteHost)

	trusted := false
	for _, cidr := range trustedCIDR {
		cidr = strings.TrimSpace(cidr)
		if cidr == "" {
			continue
		}
		if strings.Contains(cidr, "/") {
			if _, ipnet, err := net.ParseCIDR(cidr); err == nil && remoteIP != nil && ipnet.Contains(remoteIP) {
				trusted = true
				break
			}
			continue
		}
		if ip := net.ParseIP(cidr); ip != nil && remoteIP != nil && ip.Equal(remoteIP) {
			trusted = true
			break
		}
	}

	if trusted {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			parts := strings.Split(xff, ",")
			return strings.TrimSpace(parts[0])
		}
		if xr := r.Header.Get("X-Real-IP"); xr != "" {
			return strings.TrimSpace(xr)
		}
	}
	return remoteHost
}

// Middleware enforces the limit and sets the standard rate-limit headers.
func (l *IPRateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r, l.trustedCIDR)
		now := time.Now()
		cutoff := now.Add(-l.window)

		l.mu.Lock()
		kept := l.state[ip][:0]
		for _, ts := range l.state[ip] {
			if ts.After(cutoff) {
				kept = append(kept, ts)
			}
		}
		kept = append(kept, now)
		l.state[ip] = kept
		count := len(kept)
		oldest := kept[0]
		l.mu.Unlock()

		remaining := l.max - count
		if remaining < 0 {
			remaining = 0
		}
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", l.max))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", remaining))

		if count > l.max {
			retryAfter := int(oldest.Add(l.window).Sub(now).Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			w.Header().Set("Retry-After", fmt.Sprintf("%d", retryAfter))
			utils.WriteJSON(w, http.StatusTooManyRequests, utils.APIResponse{
				Success: false,
				Message: "Too many requests",
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (l *IPRateLimiter) cleanupLoop() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		cutoff := time.Now().Add(-l.window)
		l.mu.Lock()
		for ip, arr := range l.state {
			if len(arr) == 0 || !arr[len(arr)-1].After(cutoff) {
				delete(l.state, ip)
			}
		}
		l.mu.Unlock()
	}
}
