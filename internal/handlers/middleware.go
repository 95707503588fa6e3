package handlers

import (
	"log"
	"net/http"
	"strings"
	"time"

	"doorman/internal/security"
	"doorman/internal/service"
)

// Middleware holds dependencies for middleware functions
type Middleware struct {
	override  *service.OverrideService
	issuer    *security.TokenIssuer
	limiter   *security.RateLimiter
	trustedIP string
}

// NewMiddleware creates a new middleware instance
func NewMiddleware(override *service.OverrideService, issuer *security.TokenIssuer, trustedIP string) *Middleware {
	return &Middleware{
		override:  override,
		issuer:    issuer,
		limiter:   security.NewRateLimiter(10, time.Minute),
		trustedIP: trustedIP,
	}
}

// Lockdown refuses every guest-facing request while the override switch is
// active, before any authenticator is consulted. 418 is deliberately not a
// credential failure code so a locked-down door is distinguishable from a
// bad credential.
func (m *Middleware) Lockdown(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if m.override.Active() {
			w.WriteHeader(http.StatusTeapot)
			return
		}
		next(w, r)
	}
}

// RateLimit throttles a handler per client IP
func (m *Middleware) RateLimit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !m.limiter.Allow(security.GetClientIP(r)) {
			respondWithError(w, http.StatusTooManyRequests, "Too many requests", "", nil)
			return
		}
		next(w, r)
	}
}

// RequireTrustedIP only admits requests from the configured caller address.
// The platform is expected to report the client address in X-Forwarded-For.
func (m *Middleware) RequireTrustedIP(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ip := security.GetClientIP(r)
		log.Printf("Secret knock request from %s", ip)
		if ip != m.trustedIP {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		next(w, r)
	}
}

// RequireAdmin validates the bearer token on privileged endpoints
func (m *Middleware) RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			respondWithError(w, http.StatusUnauthorized, "Unauthorized", "", nil)
			return
		}
		if err := m.issuer.Verify(token); err != nil {
			respondWithError(w, http.StatusUnauthorized, "Unauthorized", "invalid admin token", err)
			return
		}
		next(w, r)
	}
}

// Logging logs every request with its duration
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}
