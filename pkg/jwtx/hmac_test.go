package jwtx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSignAndVerify(t *testing.T) {
	h := NewHMAC("test-secret", "painel-api")

	claims := NewAccessClaims("01HQ7T3Z1MZ0JQ3M6MZQ1FQ3ZV", "maria.silva", "Administrador", "sid-1", "painel-api", 15*time.Minute, time.Now())
	token, err := h.Sign(claims)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	got, err := h.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "01HQ7T3Z1MZ0JQ3M6MZQ1FQ3ZV", got.Subject)
	require.Equal(t, "maria.silva", got.Usuario)
	require.Equal(t, "Administrador", got.Perfil)
	require.Equal(t, "sid-1", got.SID)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	issuerA := NewHMAC("secret-a", "painel-api")
	issuerB := NewHMAC("secret-b", "painel-api")

	token, err := issuerA.Sign(NewAccessClaims("u1", "u", "Operador", "sid", "painel-api", time.Minute, time.Now()))
	require.NoError(t, err)

	_, err = issuerB.Verify(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsWrongIssuer(t *testing.T) {
	signer := NewHMAC("secret", "other-service")
	verifier := NewHMAC("secret", "painel-api")

	token, err := signer.Sign(NewAccessClaims("u1", "u", "Operador", "sid", "other-service", time.Minute, time.Now()))
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsExpired(t *testing.T) {
	h := NewHMAC("secret", "painel-api")

	token, err := h.Sign(NewAccessClaims("u1", "u", "Operador", "sid", "painel-api", time.Minute, time.Now().Add(-time.Hour)))
	require.NoError(t, err)

	_, err = h.Verify(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	h := NewHMAC("secret", "painel-api")
	_, err := h.Verify("not.a.jwt")
	require.ErrorIs(t, err, ErrInvalidToken)
}
