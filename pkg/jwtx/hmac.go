package jwtx

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("jwtx: invalid token")

// Signer signs access claims into compact JWTs.
type Signer interface {
	Sign(claims AccessClaims) (string, error)
}

// Verifier parses and validates a compact JWT, returning its claims.
type Verifier interface {
	Verify(token string) (AccessClaims, error)
}

// HMAC is an HS256 Signer/Verifier sharing a single secret. Suitable
// for a single-service deployment where issuer and verifier are the
// same process.
type HMAC struct {
	secret []byte
	issuer string
}

func NewHMAC(secret, issuer string) *HMAC {
	return &HMAC{secret: []byte(secret), issuer: issuer}
}

func (h *HMAC) Sign(claims AccessClaims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(h.secret)
	if err != nil {
		return "", fmt.Errorf("sign jwt: %w", err)
	}
	return signed, nil
}

func (h *HMAC) Verify(raw string) (AccessClaims, error) {
	token, err := jwt.ParseWithClaims(raw, &AccessClaims{},
		func(t *jwt.Token) (any, error) {
			if t.Method != jwt.SigningMethodHS256 {
				return nil, ErrInvalidToken
			}
			return h.secret, nil
		},
		jwt.WithIssuer(h.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(10*time.Second),
	)
	if err != nil {
		return AccessClaims{}, ErrInvalidToken
	}

	claims, ok := token.Claims.(*AccessClaims)
	if !ok || !token.Valid {
		return AccessClaims{}, ErrInvalidToken
	}
	if claims.Subject == "" || claims.SID == "" {
		return AccessClaims{}, ErrInvalidToken
	}
	return *claims, nil
}
