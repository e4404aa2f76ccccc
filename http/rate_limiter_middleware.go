package http

import (
	"net"
	"net/http"

	"getloanoffer/logger"
)

func RateLimitMiddleware(
	limiter *RateLimiter,
	next http.Handler,
) http.Handler {

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !limiter.Allow(clientIP(r)) {
			logger.Warn("rate limit exceeded", "path", r.URL.Path, "client", clientIP(r))
			respondError(w, http.StatusTooManyRequests, "rate limit exceeded", nil)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RateLimit adapts RateLimitMiddleware to chi's middleware signature.
func RateLimit(limiter *RateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return RateLimitMiddleware(limiter, next)
	}
}

// clientIP strips the port when present; RealIP may already have replaced
// RemoteAddr with a bare address.
func clientIP(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
