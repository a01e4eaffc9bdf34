package httpx

import (
	"net/http"
	"strings"
)

// RequirePerfil gates a handler behind one of the allowed profile
// labels. Comparison is case-insensitive since the source data mixes
// "Administrador" and "administrador". 403 failures are surfaced to the
// user as a global notification, not a field error.
func RequirePerfil(allowed ...string) Middleware {
	want := make(map[string]struct{}, len(allowed))
	for _, p := range allowed {
		want[strings.ToLower(p)] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				WriteError(w, http.StatusUnauthorized, "Não autenticado")
				return
			}
			if _, ok := want[strings.ToLower(claims.Perfil)]; !ok {
				WriteError(w, http.StatusForbidden, "Acesso negado")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin is shorthand for the administrator profiles recognised
// across the system.
func RequireAdmin() Middleware {
	return RequirePerfil("Administrador", "admin", "superuser")
}
