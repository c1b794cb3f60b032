package api

import (
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/gameshubapp/gameshub-server/internal/ratelimit"
)

// RateLimiter limits credential-guessing endpoints per client IP.
type RateLimiter = ratelimit.KeyedRateLimiter

// NewRateLimiter creates a new rate limiter.
// ratePerInterval requests are allowed per interval, with the given burst.
func NewRateLimiter(ratePerInterval int, interval time.Duration, burst int) *RateLimiter {
	rps := float64(ratePerInterval) / interval.Seconds()
	return ratelimit.New(rps, burst)
}

// checkAuthRateLimit enforces the shared auth limiter for one client IP.
func (s *Server) checkAuthRateLimit(ip, path string) error {
	if ip == "" {
		ip = "unknown"
	}
	if !s.authRateLimiter.Allow(ip) {
		s.logger.Warn("rate limit exceeded", "ip", ip, "path", path)
		return huma.Error429TooManyRequests("Too many requests. Please try again later.")
	}
	return nil
}

// extractIP picks the client IP out of the forwarding headers.
func extractIP(xForwardedFor, xRealIP string) string {
	if xForwardedFor != "" {
		for i := 0; i < len(xForwardedFor); i++ {
			if xForwardedFor[i] == ',' {
				return xForwardedFor[:i]
			}
		}
		return xForwardedFor
	}
	return xRealIP
}
