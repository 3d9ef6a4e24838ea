package rest

import (
	"context"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/dmitrijs2005/qaforum/internal/common"
	"github.com/dmitrijs2005/qaforum/internal/server/auth"
)

const requestIDHeader = "X-Request-ID"

type claimsKey struct{}

// claimsFrom returns the verified claims of the current request.
func claimsFrom(ctx context.Context) (*auth.Claims, bool) {
	c, ok := ctx.Value(claimsKey{}).(*auth.Claims)
	return c, ok
}

// authenticate is the gate in front of every protected route. It accepts
// "Authorization: Bearer <token>", verifies the token, rejects revoked ones
// and attaches the caller identity. No storage lookup happens here.
func (s *Server) authenticate(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		fields := strings.Fields(r.Header.Get(common.AuthorizationHeaderName))
		if len(fields) != 2 || !strings.EqualFold(fields[0], common.BearerScheme) {
			s.deps.Metrics.AuthFailure("header")
			writeErrorMessage(w, http.StatusUnauthorized, common.AuthInvalidMessage)
			return
		}

		claims, err := s.deps.Tokens.Verify(fields[1])
		if err != nil {
			s.deps.Metrics.AuthFailure("token")
			writeErrorMessage(w, http.StatusUnauthorized, common.AuthInvalidMessage)
			return
		}

		if s.deps.Denylist != nil {
			revoked, err := s.deps.Denylist.IsRevoked(ctx, claims.ID)
			if err != nil {
				s.logger.Error(ctx, "denylist lookup failed", "error", err)
			}
			if err != nil || revoked {
				s.deps.Metrics.AuthFailure("revoked")
				writeErrorMessage(w, http.StatusUnauthorized, common.AuthInvalidMessage)
				return
			}
		}

		ctx = auth.WithIdentity(ctx, claims.Identity())
		ctx = context.WithValue(ctx, claimsKey{}, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rw *statusRecorder) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

// requestLogger tags every request with an id and logs its outcome.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		reqID := r.Header.Get(requestIDHeader)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, reqID)

		rw := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rw, r)

		s.logger.Info(r.Context(), "request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.status,
			"duration_ms", time.Since(start).Milliseconds(),
			"request_id", reqID,
		)
	})
}

// instrument records per-route metrics. It runs inside the router so the
// route template is known.
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rw, r)

		route := "unknown"
		if cur := mux.CurrentRoute(r); cur != nil {
			if tpl, err := cur.GetPathTemplate(); err == nil {
				route = tpl
			}
		}
		s.deps.Metrics.ObserveRequest(r.Method, route, rw.status, time.Since(start))
	})
}

func (s *Server) timeout(next http.Handler) http.Handler {
	if s.requestTimeout <= 0 {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), s.requestTimeout)
		defer cancel()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if p := recover(); p != nil {
				s.logger.Error(r.Context(), "panic in handler", "panic", p, "stack", string(debug.Stack()))
				writeErrorMessage(w, http.StatusInternalServerError, "internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// cors lets the browser client call the API from another origin.
func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin == "" {
			origin = "*"
		}

		h := w.Header()
		h.Set("Access-Control-Allow-Origin", origin)
		h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		h.Add("Vary", "Origin")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
