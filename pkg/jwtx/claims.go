package jwtx

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/painelhq/painel/pkg/idx"
)

// AccessClaims are the claims carried by painel access tokens. The
// session ID (sid) survives refresh-token rotation so a browser session
// stays traceable across renewals.
type AccessClaims struct {
	Usuario string `json:"usuario,omitempty"` // login username
	Perfil  string `json:"perfil,omitempty"`  // profile/role label
	SID     string `json:"sid"`
	jwt.RegisteredClaims
}

// NewAccessClaims builds the claim set for a freshly issued access token.
func NewAccessClaims(userID, usuario, perfil, sessionID, issuer string, ttl time.Duration, now time.Time) AccessClaims {
	now = now.UTC()
	return AccessClaims{
		Usuario: usuario,
		Perfil:  perfil,
		SID:     sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        idx.New().String(),
			Subject:   userID,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now.Add(-5 * time.Second)),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
}
