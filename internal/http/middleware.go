package http

import (
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rogerio-castellano/product-console/internal/auth"
	rl "github.com/rogerio-castellano/product-console/internal/http/rate_limiter"
	"github.com/rogerio-castellano/product-console/internal/session"
	"go.uber.org/zap"
)

// SessionMiddleware attaches a session id to every request. The id travels
// in a signed cookie; a missing or invalid cookie starts a new session, and a
// cookie past half its lifetime is reissued for the same session.
func SessionMiddleware(signer *auth.Signer, cookieName string, ttl time.Duration, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var id string
			issue := true
			if c, err := r.Cookie(cookieName); err == nil {
				if tok, err := signer.Verify(c.Value); err == nil {
					id = tok.SessionID
					issue = signer.NeedsRenewal(tok)
				} else {
					logger.Debug("discarding session cookie", zap.Error(err))
				}
			}
			if id == "" {
				id = uuid.NewString()
			}

			if issue {
				token, err := signer.Issue(id)
				if err != nil {
					logger.Error("could not issue session token", zap.Error(err))
					http.Error(w, "could not start session", http.StatusInternalServerError)
					return
				}
				http.SetCookie(w, &http.Cookie{
					Name:     cookieName,
					Value:    token,
					Path:     "/",
					MaxAge:   int(ttl.Seconds()),
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}

			next.ServeHTTP(w, r.WithContext(session.NewContext(r.Context(), id)))
		})
	}
}

// RateLimitMiddleware answers 429 to clients over their per-IP rate.
func RateLimitMiddleware(limiter *rl.Limiter, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r)
			if !limiter.Allow(ip) {
				logger.Warn("rate limit exceeded", zap.String("ip", ip), zap.String("path", r.URL.Path))
				http.Error(w, "too many requests", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequestLogger logs one line per request.
func RequestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Info("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.String("remote", r.RemoteAddr),
				zap.Duration("elapsed", time.Since(start)))
		})
	}
}

// Recoverer turns a panic into a logged 500.
func Recoverer(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}
					logger.Error("panic serving request",
						zap.Any("panic", rec), zap.String("path", r.URL.Path), zap.Stack("stack"))
					w.Header().Set("Connection", "close")
					http.Error(w, "internal server error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
