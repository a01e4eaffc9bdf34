package http

import (
	"net/http"
	"time"

	"github.com/painelhq/painel/internal/painel/domain"
	"github.com/painelhq/painel/pkg/httpx"
	"github.com/painelhq/painel/pkg/painelsdk"
)

const (
	// RefreshTokenCookie holds the opaque rotating refresh token. Scoped
	// to the auth endpoints so it is not sent with every API call.
	RefreshTokenCookie = "painel_refresh"

	// MFACookie references a pending second-factor challenge.
	MFACookie = "painel_mfa"

	authCookiePath = "/api/v1/auth"
)

// CookieConfig controls the attributes of every cookie the service sets.
type CookieConfig struct {
	Secure bool
	Domain string
}

// setAuthCookies installs the three session cookies: the access token
// JWT, the refresh token, and the non-HttpOnly marker the frontend uses
// to decide whether a startup auth probe is worth making.
func (c CookieConfig) setAuthCookies(w http.ResponseWriter, pair *domain.TokenPair, now time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     httpx.AccessTokenCookie,
		Value:    pair.AccessToken,
		Path:     "/",
		Domain:   c.Domain,
		MaxAge:   int(pair.AccessExpiresAt.Sub(now).Seconds()),
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     RefreshTokenCookie,
		Value:    pair.RefreshToken,
		Path:     authCookiePath,
		Domain:   c.Domain,
		MaxAge:   int(pair.RefreshExpiresAt.Sub(now).Seconds()),
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     painelsdk.SessionCookie,
		Value:    "1",
		Path:     "/",
		Domain:   c.Domain,
		MaxAge:   int(pair.RefreshExpiresAt.Sub(now).Seconds()),
		HttpOnly: false, // frontend reads this to skip the startup probe
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// clearAuthCookies expires every session cookie, marker included.
func (c CookieConfig) clearAuthCookies(w http.ResponseWriter) {
	for _, cookie := range []http.Cookie{
		{Name: httpx.AccessTokenCookie, Path: "/", HttpOnly: true},
		{Name: RefreshTokenCookie, Path: authCookiePath, HttpOnly: true},
		{Name: painelsdk.SessionCookie, Path: "/"},
	} {
		cookie.Domain = c.Domain
		cookie.Value = ""
		cookie.MaxAge = -1
		cookie.Secure = c.Secure
		cookie.SameSite = http.SameSiteLaxMode
		http.SetCookie(w, &cookie)
	}
}

// setMFACookie parks the challenge reference between the password step
// and the code step.
func (c CookieConfig) setMFACookie(w http.ResponseWriter, challengeID string, expiresAt, now time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     MFACookie,
		Value:    challengeID,
		Path:     authCookiePath,
		Domain:   c.Domain,
		MaxAge:   int(expiresAt.Sub(now).Seconds()),
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (c CookieConfig) clearMFACookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     MFACookie,
		Value:    "",
		Path:     authCookiePath,
		Domain:   c.Domain,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
