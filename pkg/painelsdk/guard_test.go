package painelsdk_test

import (
	"testing"

	"github.com/painelhq/painel/pkg/painelsdk"
	"github.com/stretchr/testify/require"
)

func snap(state painelsdk.State, user *painelsdk.UserResponse) painelsdk.Snapshot {
	return painelsdk.Snapshot{State: state, User: user}
}

func TestGuardPendingWhileLoading(t *testing.T) {
	res := painelsdk.Guard(snap(painelsdk.StateLoading, nil), painelsdk.Route{RequiresAuth: true})
	require.Equal(t, painelsdk.GuardPending, res.Decision)

	res = painelsdk.Guard(snap(painelsdk.StateLoading, nil), painelsdk.Route{GuestOnly: true})
	require.Equal(t, painelsdk.GuardPending, res.Decision, "even guest routes wait for the probe")
}

func TestGuardProtectedRoutes(t *testing.T) {
	protected := painelsdk.Route{RequiresAuth: true}

	t.Run("unauthenticated redirects to login", func(t *testing.T) {
		res := painelsdk.Guard(snap(painelsdk.StateUnauthenticated, nil), protected)
		require.Equal(t, painelsdk.GuardRedirect, res.Decision)
		require.Equal(t, painelsdk.LoginPath, res.RedirectTo)
	})

	t.Run("mfa-pending counts as not signed in", func(t *testing.T) {
		res := painelsdk.Guard(snap(painelsdk.StateMFAPending, nil), protected)
		require.Equal(t, painelsdk.GuardRedirect, res.Decision)
		require.Equal(t, painelsdk.LoginPath, res.RedirectTo)
	})

	t.Run("authenticated passes", func(t *testing.T) {
		res := painelsdk.Guard(snap(painelsdk.StateAuthenticated, &testUser), protected)
		require.Equal(t, painelsdk.GuardAllow, res.Decision)
	})
}

func TestGuardGuestOnlyRoutes(t *testing.T) {
	login := painelsdk.Route{GuestOnly: true}

	res := painelsdk.Guard(snap(painelsdk.StateAuthenticated, &testUser), login)
	require.Equal(t, painelsdk.GuardRedirect, res.Decision)
	require.Equal(t, painelsdk.HomePath, res.RedirectTo)

	res = painelsdk.Guard(snap(painelsdk.StateUnauthenticated, nil), login)
	require.Equal(t, painelsdk.GuardAllow, res.Decision)

	res = painelsdk.Guard(snap(painelsdk.StateMFAPending, nil), login)
	require.Equal(t, painelsdk.GuardAllow, res.Decision, "second factor happens on the login page")
}

func TestGuardAdminRoutes(t *testing.T) {
	admin := painelsdk.Route{RequiresAuth: true, AdminOnly: true}

	t.Run("admin perfil passes", func(t *testing.T) {
		res := painelsdk.Guard(snap(painelsdk.StateAuthenticated, &testUser), admin)
		require.Equal(t, painelsdk.GuardAllow, res.Decision)
	})

	t.Run("operador is bounced home", func(t *testing.T) {
		operador := testUser
		operador.Perfil = "Operador"
		res := painelsdk.Guard(snap(painelsdk.StateAuthenticated, &operador), admin)
		require.Equal(t, painelsdk.GuardRedirect, res.Decision)
		require.Equal(t, painelsdk.HomePath, res.RedirectTo)
	})

	t.Run("unauthenticated goes to login first", func(t *testing.T) {
		res := painelsdk.Guard(snap(painelsdk.StateUnauthenticated, nil), admin)
		require.Equal(t, painelsdk.GuardRedirect, res.Decision)
		require.Equal(t, painelsdk.LoginPath, res.RedirectTo)
	})
}

func TestStateString(t *testing.T) {
	require.Equal(t, "loading", painelsdk.StateLoading.String())
	require.Equal(t, "unauthenticated", painelsdk.StateUnauthenticated.String())
	require.Equal(t, "mfa-pending", painelsdk.StateMFAPending.String())
	require.Equal(t, "authenticated", painelsdk.StateAuthenticated.String())
}
