package http

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/stazhbg/internship-portal/internal/authz"
	"github.com/stazhbg/internship-portal/internal/domain"
)

type contextKey string

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = contextKey("requestID")

	identityKey = contextKey("identity")
	tokenKey    = contextKey("sessionToken")
)

func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		w.Header().Set(requestIDHeader, requestID)

		ctx := context.WithValue(r.Context(), requestIDKey, requestID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func getRequestID(ctx context.Context) string {
	if reqID, ok := ctx.Value(requestIDKey).(string); ok {
		return reqID
	}

	return ""
}

func (s *Server) logRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := getRequestID(r.Context())

		log := s.log.With(
			slog.String("request_id", requestID),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("remote_addr", r.RemoteAddr),
		)
		log.Info("request started")

		t1 := time.Now()

		next.ServeHTTP(w, r)

		log.Info("request completed",
			slog.String("duration", time.Since(t1).String()),
		)
	})
}

// withIdentity resolves the bearer token into the signed-in identity and
// stores it in the request context. Missing or unknown tokens leave the
// identity nil; the guard decides what that means per route.
func (s *Server) withIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			next.ServeHTTP(w, r)
			return
		}

		user, err := s.identityService.Resume(r.Context(), token)
		if err != nil {
			// Stale tokens behave like no session at all.
			next.ServeHTTP(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), identityKey, user)
		ctx = context.WithValue(ctx, tokenKey, token)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireIdentity rejects requests without a resolved session.
func (s *Server) requireIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if identityFrom(r.Context()) == nil {
			s.respond(w, http.StatusUnauthorized, map[string]string{
				"error":    "no active session",
				"redirect": authz.LoginPath,
			})
			return
		}

		next.ServeHTTP(w, r)
	})
}

// guard applies the role-gated router to every request in the group.
// Redirect decisions surface as JSON bodies with the target path, since an
// API cannot navigate on the caller's behalf.
func (s *Server) guard(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := identityFrom(r.Context())

		decision := authz.Authorize(user, r.URL.Path)
		if decision.Allowed {
			next.ServeHTTP(w, r)
			return
		}

		code := http.StatusForbidden
		if decision.Redirect == authz.LoginPath {
			code = http.StatusUnauthorized
		}

		s.respond(w, code, map[string]string{
			"error":    "not allowed",
			"redirect": decision.Redirect,
		})
	})
}

func identityFrom(ctx context.Context) *domain.User {
	if user, ok := ctx.Value(identityKey).(*domain.User); ok {
		return user
	}

	return nil
}

func tokenFrom(ctx context.Context) string {
	if token, ok := ctx.Value(tokenKey).(string); ok {
		return token
	}

	return ""
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}

	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}

	return strings.TrimPrefix(header, prefix)
}
