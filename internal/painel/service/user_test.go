package service

import (
	"context"
	"testing"

	"github.com/painelhq/painel/internal/painel/domain"
	"github.com/painelhq/painel/internal/painel/store"
	"github.com/stretchr/testify/require"
)

func TestUserServiceCRUD(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	auth := newAuthService(s)
	users := &UserService{Store: s}

	u, err := auth.Register(ctx, validRegister)
	require.NoError(t, err)

	second := validRegister
	second.Email = "joao@empresa.com.br"
	second.Usuario = "joao.souza"
	second.CPF = "111.444.777-35"
	u2, err := auth.Register(ctx, second)
	require.NoError(t, err)

	t.Run("get by id", func(t *testing.T) {
		got, err := users.GetUserByID(ctx, u.ID)
		require.NoError(t, err)
		require.Equal(t, u.Email, got.Email)
	})

	t.Run("list returns everyone", func(t *testing.T) {
		all, err := users.ListUsers(ctx)
		require.NoError(t, err)
		require.Len(t, all, 2)
	})

	t.Run("update profile", func(t *testing.T) {
		require.NoError(t, users.UpdateProfile(ctx, u2.ID, "João Souza", "Gerente", "Operador"))

		got, err := users.GetUserByID(ctx, u2.ID)
		require.NoError(t, err)
		require.Equal(t, "Gerente", got.Funcao)
		require.Equal(t, "Operador", got.Perfil)
	})

	t.Run("update unknown user", func(t *testing.T) {
		err := users.UpdateProfile(ctx, "01HQ7T3Z1MZ0JQ3M6MZQ1FQ3ZV", "Nome", "Funcao", "Perfil")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("change password revokes sessions", func(t *testing.T) {
		res, err := auth.Login(ctx, second.Email, second.Password)
		require.NoError(t, err)

		require.ErrorIs(t,
			users.ChangePassword(ctx, u2.ID, "errada", "NovaSenha456"),
			ErrInvalidCredentials,
		)
		require.NoError(t, users.ChangePassword(ctx, u2.ID, second.Password, "NovaSenha456"))

		_, err = auth.Refresh(ctx, res.Tokens.RefreshToken)
		require.ErrorIs(t, err, ErrInvalidRefresh)

		_, err = auth.Login(ctx, second.Email, "NovaSenha456")
		require.NoError(t, err)
	})

	t.Run("delete cascades", func(t *testing.T) {
		res, err := auth.Login(ctx, second.Email, "NovaSenha456")
		require.NoError(t, err)

		require.NoError(t, users.DeleteUser(ctx, u2.ID))

		_, err = users.GetUserByID(ctx, u2.ID)
		require.ErrorIs(t, err, store.ErrNotFound)

		_, err = auth.Refresh(ctx, res.Tokens.RefreshToken)
		require.ErrorIs(t, err, ErrInvalidRefresh)
	})
}

func TestDashboardService(t *testing.T) {
	svc := &DashboardService{Provider: StaticDashboardProvider{}}
	ctx := context.Background()

	for _, name := range []string{"financeiro", "vendas", "clientes", "operacional"} {
		t.Run(name, func(t *testing.T) {
			summary, err := svc.Summary(ctx, name)
			require.NoError(t, err)
			require.Equal(t, domain.Dashboard(name), summary.Dashboard)
			require.NotEmpty(t, summary.KPIs)
		})
	}

	t.Run("unknown dashboard", func(t *testing.T) {
		_, err := svc.Summary(ctx, "inexistente")
		require.ErrorIs(t, err, domain.ErrUnknownDashboard)
	})
}
