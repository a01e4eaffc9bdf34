package service

import (
	"context"
	"testing"
	"time"

	"github.com/painelhq/painel/internal/painel/domain"
	"github.com/painelhq/painel/internal/painel/store/drivers/sqlite"
	"github.com/painelhq/painel/pkg/cryptox"
	"github.com/painelhq/painel/pkg/jwtx"
	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()

	cryptox.SetPepperPath(t.TempDir() + "/pepper")

	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func newAuthService(s *sqlite.Store) *AuthService {
	return &AuthService{
		Signer:     jwtx.NewHMAC("test-secret-test-secret-test-1234", "painel-test"),
		Store:      s,
		Issuer:     "painel-test",
		AccessTTL:  15 * time.Minute,
		RefreshTTL: 7 * 24 * time.Hour,
		MFATTL:     5 * time.Minute,
		ResetTTL:   time.Hour,
	}
}

var validRegister = RegisterInput{
	Nome:        "Maria Silva",
	CPF:         "529.982.247-25",
	Funcao:      "Analista",
	Email:       "maria@empresa.com.br",
	Usuario:     "maria.silva",
	Password:    "SenhaForte123",
	Perfil:      "Administrador",
	Cadastrante: "Sistema",
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	svc := newAuthService(newTestStore(t))

	u, err := svc.Register(ctx, validRegister)
	require.NoError(t, err)
	require.NotEmpty(t, u.ID)
	require.Equal(t, "52998224725", u.CPF)
	require.Equal(t, "maria@empresa.com.br", u.Email)

	t.Run("login succeeds with correct password", func(t *testing.T) {
		res, err := svc.Login(ctx, "maria@empresa.com.br", "SenhaForte123")
		require.NoError(t, err)
		require.Nil(t, res.Challenge)
		require.NotNil(t, res.Tokens)
		require.NotEmpty(t, res.Tokens.AccessToken)
		require.NotEmpty(t, res.Tokens.RefreshToken)
		require.Equal(t, u.ID, res.User.ID)
	})

	t.Run("login is case-insensitive on email", func(t *testing.T) {
		res, err := svc.Login(ctx, "Maria@Empresa.COM.BR", "SenhaForte123")
		require.NoError(t, err)
		require.NotNil(t, res.Tokens)
	})

	t.Run("login accepts the usuario name", func(t *testing.T) {
		res, err := svc.Login(ctx, "maria.silva", "SenhaForte123")
		require.NoError(t, err)
		require.NotNil(t, res.Tokens)
		require.Equal(t, u.ID, res.User.ID)
	})

	t.Run("login accepts a formatted CPF", func(t *testing.T) {
		res, err := svc.Login(ctx, "529.982.247-25", "SenhaForte123")
		require.NoError(t, err)
		require.NotNil(t, res.Tokens)
		require.Equal(t, u.ID, res.User.ID)
	})

	t.Run("wrong password fails", func(t *testing.T) {
		_, err := svc.Login(ctx, "maria@empresa.com.br", "errada")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown usuario fails with same error", func(t *testing.T) {
		_, err := svc.Login(ctx, "joao.souza", "SenhaForte123")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email fails with same error", func(t *testing.T) {
		_, err := svc.Login(ctx, "ninguem@empresa.com.br", "SenhaForte123")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestRegisterValidation(t *testing.T) {
	ctx := context.Background()
	svc := newAuthService(newTestStore(t))

	t.Run("rejects invalid CPF", func(t *testing.T) {
		in := validRegister
		in.CPF = "111.111.111-11"
		_, err := svc.Register(ctx, in)
		require.ErrorIs(t, err, ErrInvalidRegister)
	})

	t.Run("rejects invalid usuario", func(t *testing.T) {
		in := validRegister
		in.Usuario = "maria silva"
		_, err := svc.Register(ctx, in)
		require.ErrorIs(t, err, ErrInvalidRegister)
	})

	t.Run("rejects weak password", func(t *testing.T) {
		in := validRegister
		in.Password = "curta"
		_, err := svc.Register(ctx, in)
		require.ErrorIs(t, err, ErrWeakPassword)
	})

	t.Run("rejects duplicates", func(t *testing.T) {
		_, err := svc.Register(ctx, validRegister)
		require.NoError(t, err)

		// Same email, different usuario and CPF.
		in := validRegister
		in.Usuario = "maria.silva2"
		in.CPF = "111.444.777-35"
		_, err = svc.Register(ctx, in)
		require.ErrorIs(t, err, ErrDuplicateUser)
	})
}

func TestFirstUserBecomesAdmin(t *testing.T) {
	ctx := context.Background()
	svc := newAuthService(newTestStore(t))

	first := validRegister
	first.Perfil = "Operador"
	u, err := svc.Register(ctx, first)
	require.NoError(t, err)
	require.Equal(t, "Administrador", u.Perfil)
	require.True(t, u.IsAdmin())

	second := validRegister
	second.Perfil = "Operador"
	second.Email = "joao@empresa.com.br"
	second.Usuario = "joao.souza"
	second.CPF = "111.444.777-35"
	u2, err := svc.Register(ctx, second)
	require.NoError(t, err)
	require.Equal(t, "Operador", u2.Perfil)
	require.False(t, u2.IsAdmin())
}

func TestRefreshRotation(t *testing.T) {
	ctx := context.Background()
	svc := newAuthService(newTestStore(t))

	_, err := svc.Register(ctx, validRegister)
	require.NoError(t, err)

	res, err := svc.Login(ctx, validRegister.Email, validRegister.Password)
	require.NoError(t, err)
	first := res.Tokens

	rotated, err := svc.Refresh(ctx, first.RefreshToken)
	require.NoError(t, err)
	require.NotEqual(t, first.RefreshToken, rotated.Tokens.RefreshToken)
	require.Equal(t, first.SessionID, rotated.Tokens.SessionID, "session ID survives rotation")

	t.Run("old token cannot be reused", func(t *testing.T) {
		_, err := svc.Refresh(ctx, first.RefreshToken)
		require.ErrorIs(t, err, ErrInvalidRefresh)
	})

	t.Run("rotated token still works", func(t *testing.T) {
		_, err := svc.Refresh(ctx, rotated.Tokens.RefreshToken)
		require.NoError(t, err)
	})

	t.Run("garbage token fails", func(t *testing.T) {
		_, err := svc.Refresh(ctx, "not-a-token")
		require.ErrorIs(t, err, ErrInvalidRefresh)
	})
}

func TestLogout(t *testing.T) {
	ctx := context.Background()
	svc := newAuthService(newTestStore(t))

	_, err := svc.Register(ctx, validRegister)
	require.NoError(t, err)

	res, err := svc.Login(ctx, validRegister.Email, validRegister.Password)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, res.Tokens.RefreshToken))

	_, err = svc.Refresh(ctx, res.Tokens.RefreshToken)
	require.ErrorIs(t, err, ErrInvalidRefresh)

	t.Run("logout is idempotent", func(t *testing.T) {
		require.NoError(t, svc.Logout(ctx, res.Tokens.RefreshToken))
		require.NoError(t, svc.Logout(ctx, "unknown-token"))
		require.NoError(t, svc.Logout(ctx, ""))
	})
}

func TestLoginMFAFlow(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	svc := newAuthService(s)
	mfaSvc := &MFAService{Store: s, Issuer: "painel-test"}

	u, err := svc.Register(ctx, validRegister)
	require.NoError(t, err)

	enrollment, err := mfaSvc.EnrollTOTP(ctx, u.ID)
	require.NoError(t, err)
	require.NotEmpty(t, enrollment.Secret)
	require.Contains(t, enrollment.QRCode, "otpauth://")

	code, err := totp.GenerateCode(enrollment.Secret, time.Now())
	require.NoError(t, err)
	require.NoError(t, mfaSvc.VerifyTOTP(ctx, u.ID, code))

	res, err := svc.Login(ctx, validRegister.Email, validRegister.Password)
	require.NoError(t, err)
	require.Nil(t, res.Tokens, "no tokens while MFA pending")
	require.NotNil(t, res.Challenge)

	t.Run("wrong code increments attempts", func(t *testing.T) {
		_, err := svc.LoginMFA(ctx, res.Challenge.ID, "000000")
		require.ErrorIs(t, err, ErrInvalidMFACode)
	})

	t.Run("valid code issues tokens and burns the challenge", func(t *testing.T) {
		code, err := totp.GenerateCode(enrollment.Secret, time.Now())
		require.NoError(t, err)

		done, err := svc.LoginMFA(ctx, res.Challenge.ID, code)
		require.NoError(t, err)
		require.NotNil(t, done.Tokens)
		require.Equal(t, res.Challenge.SessionID, done.Tokens.SessionID)

		// Challenge is single-use.
		_, err = svc.LoginMFA(ctx, res.Challenge.ID, code)
		require.ErrorIs(t, err, ErrInvalidChallenge)
	})

	t.Run("bogus challenge id rejected", func(t *testing.T) {
		_, err := svc.LoginMFA(ctx, "01HQ7T3Z1MZ0JQ3M6MZQ1FQ3ZV", "123456")
		require.ErrorIs(t, err, ErrInvalidChallenge)
	})
}

func TestLoginMFAMaxAttempts(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	svc := newAuthService(s)
	mfaSvc := &MFAService{Store: s, Issuer: "painel-test"}

	u, err := svc.Register(ctx, validRegister)
	require.NoError(t, err)

	enrollment, err := mfaSvc.EnrollTOTP(ctx, u.ID)
	require.NoError(t, err)
	code, err := totp.GenerateCode(enrollment.Secret, time.Now())
	require.NoError(t, err)
	require.NoError(t, mfaSvc.VerifyTOTP(ctx, u.ID, code))

	res, err := svc.Login(ctx, validRegister.Email, validRegister.Password)
	require.NoError(t, err)
	require.NotNil(t, res.Challenge)

	for i := range domain.MFAMaxAttempts - 1 {
		_, err := svc.LoginMFA(ctx, res.Challenge.ID, "000000")
		require.ErrorIs(t, err, ErrInvalidMFACode, "attempt %d", i+1)
	}

	// Final failed attempt destroys the challenge.
	_, err = svc.LoginMFA(ctx, res.Challenge.ID, "000000")
	require.ErrorIs(t, err, ErrTooManyAttempts)

	// Even a valid code is now useless.
	code, err = totp.GenerateCode(enrollment.Secret, time.Now())
	require.NoError(t, err)
	_, err = svc.LoginMFA(ctx, res.Challenge.ID, code)
	require.ErrorIs(t, err, ErrInvalidChallenge)
}
