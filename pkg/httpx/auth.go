package httpx

import (
	"context"
	"net/http"
	"slices"
	"strings"

	"github.com/keelhaven/clientreg/pkg/authx"
	"github.com/keelhaven/clientreg/pkg/slogx"
)

// AuthnMiddleware verifies the bearer token on every request and injects the
// caller's subject and scopes into the request context.
func AuthnMiddleware(v authx.Verifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			header := r.Header.Get("Authorization")
			if header == "" || !strings.HasPrefix(header, "Bearer ") {
				writeBearerError(w, "missing bearer token")
				return
			}
			raw := strings.TrimSpace(strings.TrimPrefix(header, "Bearer"))

			claims, err := v.Verify(raw)
			if err != nil {
				log.Warn("token verification failed", "err", err)
				writeBearerError(w, "token verification failed")
				return
			}

			ctx = contextWithAuth(ctx, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAnyScope admits the request when the caller holds at least one of
// the listed scopes. Must run after AuthnMiddleware.
func RequireAnyScope(required ...string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			have := scopesFromCtx(r.Context())
			for _, s := range required {
				if slices.Contains(have, s) {
					next.ServeHTTP(w, r)
					return
				}
			}
			writeBearerScopeError(w, required...)
		})
	}
}

// RequireAllScopes admits the request only when the caller holds every
// listed scope. Must run after AuthnMiddleware.
func RequireAllScopes(required ...string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			have := scopesFromCtx(r.Context())
			for _, s := range required {
				if !slices.Contains(have, s) {
					writeBearerScopeError(w, required...)
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

func contextWithAuth(ctx context.Context, c authx.Claims) context.Context {
	ctx = context.WithValue(ctx, CtxKeySubject, c.Subject)
	ctx = context.WithValue(ctx, CtxKeyScopes, c.ScopeList())
	ctx = context.WithValue(ctx, CtxKeyClaims, c)
	return ctx
}

// RFC 6750 error response for a missing or invalid bearer token.
func writeBearerError(w http.ResponseWriter, desc string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token", error_description="`+desc+`"`)
	Error(w, http.StatusUnauthorized, desc)
}

// RFC 6750 error response for a token lacking the required scope.
func writeBearerScopeError(w http.ResponseWriter, required ...string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="insufficient_scope", scope="`+strings.Join(required, " ")+`"`)
	Error(w, http.StatusForbidden, "insufficient scope")
}
