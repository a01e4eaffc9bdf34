package httpx

import (
	"context"
	"net/http"
	"strings"

	"github.com/painelhq/painel/pkg/jwtx"
	"github.com/painelhq/painel/pkg/slogx"
)

// AccessTokenCookie is the HttpOnly cookie carrying the access JWT for
// browser sessions. API callers may send the same token as a Bearer
// header instead; the cookie is the canonical transport.
const AccessTokenCookie = "painel_access"

// AuthnMiddleware verifies the access token on each request, preferring
// the session cookie and falling back to an Authorization header.
// Unauthenticated requests get a 401 {detail} body, which the client SDK
// turns into its global redirect-to-login side effect.
func AuthnMiddleware(v jwtx.Verifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			raw := bearerOrCookie(r)
			if raw == "" {
				WriteError(w, http.StatusUnauthorized, "Não autenticado")
				return
			}

			claims, err := v.Verify(raw)
			if err != nil {
				log.Warn("access token rejected", "err", err)
				WriteError(w, http.StatusUnauthorized, "Token inválido")
				return
			}

			next.ServeHTTP(w, r.WithContext(contextWithAuth(ctx, claims)))
		})
	}
}

func bearerOrCookie(r *http.Request) string {
	if c, err := r.Cookie(AccessTokenCookie); err == nil && c.Value != "" {
		return c.Value
	}
	if authz := r.Header.Get("Authorization"); strings.HasPrefix(authz, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(authz, "Bearer"))
	}
	return ""
}

func contextWithAuth(ctx context.Context, c jwtx.AccessClaims) context.Context {
	ctx = context.WithValue(ctx, CtxKeyUserID, c.Subject)
	return context.WithValue(ctx, CtxKeyClaims, c)
}
