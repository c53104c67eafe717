package api

import (
	"context"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"hotelier/internal/config"
	"hotelier/internal/metrics"
	"hotelier/internal/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

type ctxKey int

const profileKey ctxKey = iota

// profileFrom returns the authenticated profile, or nil.
func profileFrom(ctx context.Context) *models.Profile {
	profile, _ := ctx.Value(profileKey).(*models.Profile)
	return profile
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func requestLogger(logger *zerolog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := uuid.NewString()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(recorder, r)

		endpoint := r.Pattern
		if endpoint == "" {
			endpoint = r.URL.Path
		}
		metrics.IncHTTP(endpoint)

		logger.Info().
			Str("request_id", requestID).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", recorder.status).
			Dur("duration", time.Since(start)).
			Msg("http request")
	})
}

// authenticate restores the session from the bearer token and attaches the
// profile to the request context. Missing or dead tokens are a 401.
func (s *Server) authenticate(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			writeError(w, http.StatusUnauthorized, "authorization required")
			return
		}

		sess, err := s.sessions.Restore(r.Context(), token)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		ctx := context.WithValue(r.Context(), profileKey, sess.Profile)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

// requireRole gates a handler on role. A signed-in user of the wrong role is
// silently redirected to their own home, never told what they hit.
func (s *Server) requireRole(role models.Role, next http.HandlerFunc) http.HandlerFunc {
	return s.authenticate(func(w http.ResponseWriter, r *http.Request) {
		profile := profileFrom(r.Context())
		if profile.Role != role {
			w.Header().Set("Location", roleHome(profile.Role))
			w.WriteHeader(http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if after, ok := strings.CutPrefix(header, "Bearer "); ok {
		return strings.TrimSpace(after)
	}
	return ""
}

// signinLimiter rate limits sign-in attempts per client IP.
type signinLimiter struct {
	limiters sync.Map
	cfg      config.RateLimitConfig
}

func newSigninLimiter(cfg config.RateLimitConfig) *signinLimiter {
	return &signinLimiter{cfg: cfg}
}

func (l *signinLimiter) allow(r *http.Request) bool {
	if l.cfg.SignInRPS <= 0 {
		return true
	}
	return l.getLimiter(clientIP(r)).Allow()
}

func (l *signinLimiter) getLimiter(key string) *rate.Limiter {
	if v, ok := l.limiters.Load(key); ok {
		return v.(*rate.Limiter)
	}

	burst := l.cfg.SignInBurst
	if burst <= 0 {
		burst = 5
	}

	lim := rate.NewLimiter(rate.Limit(l.cfg.SignInRPS), burst)
	actual, loaded := l.limiters.LoadOrStore(key, lim)
	if loaded {
		return actual.(*rate.Limiter)
	}
	return lim
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && host != "" {
		return host
	}
	return "unknown"
}
