package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidatePassword(t *testing.T) {
	t.Run("strong password passes", func(t *testing.T) {
		v := ValidatePassword("SenhaForte123!")
		require.True(t, v.Valid)
		require.Empty(t, v.Errors)
		require.Greater(t, v.Score, 60)
	})

	t.Run("short password fails", func(t *testing.T) {
		v := ValidatePassword("Ab1")
		require.False(t, v.Valid)
		require.NotEmpty(t, v.Errors)
	})

	t.Run("missing classes are reported", func(t *testing.T) {
		v := ValidatePassword("somenteminusculas")
		require.False(t, v.Valid)
		require.Len(t, v.Errors, 2) // no uppercase, no digit
	})

	t.Run("no symbol is a warning, not an error", func(t *testing.T) {
		v := ValidatePassword("SenhaForte123")
		require.True(t, v.Valid)
		require.NotEmpty(t, v.Warnings)
	})

	t.Run("score is capped at 100", func(t *testing.T) {
		v := ValidatePassword("Uma$enhaMuitoLongaMesmo123456")
		require.True(t, v.Valid)
		require.LessOrEqual(t, v.Score, 100)
	})
}

func TestPasswordResetFlow(t *testing.T) {
	ctx := context.Background()
	svc := newAuthService(newTestStore(t))

	_, err := svc.Register(ctx, validRegister)
	require.NoError(t, err)

	res, err := svc.Login(ctx, validRegister.Email, validRegister.Password)
	require.NoError(t, err)

	token, err := svc.RequestPasswordReset(ctx, validRegister.Email)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	t.Run("unknown email yields no token and no error", func(t *testing.T) {
		tok, err := svc.RequestPasswordReset(ctx, "nao.existe@empresa.com.br")
		require.NoError(t, err)
		require.Empty(t, tok)
	})

	t.Run("weak replacement password rejected", func(t *testing.T) {
		err := svc.ConfirmPasswordReset(ctx, token, "fraca")
		require.ErrorIs(t, err, ErrWeakPassword)
	})

	t.Run("confirm sets new password and revokes sessions", func(t *testing.T) {
		require.NoError(t, svc.ConfirmPasswordReset(ctx, token, "NovaSenha456"))

		_, err := svc.Login(ctx, validRegister.Email, validRegister.Password)
		require.ErrorIs(t, err, ErrInvalidCredentials, "old password no longer works")

		_, err = svc.Login(ctx, validRegister.Email, "NovaSenha456")
		require.NoError(t, err)

		_, err = svc.Refresh(ctx, res.Tokens.RefreshToken)
		require.ErrorIs(t, err, ErrInvalidRefresh, "pre-reset sessions are revoked")
	})

	t.Run("token is single-use", func(t *testing.T) {
		err := svc.ConfirmPasswordReset(ctx, token, "OutraSenha789")
		require.ErrorIs(t, err, ErrInvalidResetToken)
	})

	t.Run("garbage token rejected", func(t *testing.T) {
		err := svc.ConfirmPasswordReset(ctx, "nonsense", "NovaSenha456")
		require.ErrorIs(t, err, ErrInvalidResetToken)
		err = svc.ConfirmPasswordReset(ctx, "", "NovaSenha456")
		require.ErrorIs(t, err, ErrInvalidResetToken)
	})
}
