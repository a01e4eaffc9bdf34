package painelsdk_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/painelhq/painel/pkg/painelsdk"
	"github.com/stretchr/testify/require"
)

// fakeService is a scripted backend that counts calls per endpoint.
type fakeService struct {
	mu       sync.Mutex
	calls    map[string]int
	handlers map[string]http.HandlerFunc
}

func newFakeService() *fakeService {
	return &fakeService{
		calls:    map[string]int{},
		handlers: map[string]http.HandlerFunc{},
	}
}

func (f *fakeService) on(pattern string, h http.HandlerFunc) {
	f.handlers[pattern] = h
}

func (f *fakeService) count(pattern string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[pattern]
}

func (f *fakeService) total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

func (f *fakeService) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	key := r.Method + " " + r.URL.Path
	f.mu.Lock()
	f.calls[key]++
	h, ok := f.handlers[key]
	f.mu.Unlock()

	if !ok {
		http.NotFound(w, r)
		return
	}
	h(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

var testUser = painelsdk.UserResponse{
	ID:      "01HQ7T3Z1MZ0JQ3M6MZQ1FQ3ZV",
	Email:   "maria@empresa.com.br",
	Name:    "Maria Silva",
	Perfil:  "Administrador",
	Funcao:  "Analista",
	Usuario: "maria.silva",
}

func newTestSession(t *testing.T, f *fakeService) (*painelsdk.Client, *painelsdk.SessionStore, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(f)
	t.Cleanup(srv.Close)

	client := painelsdk.NewClient(srv.URL)
	session := painelsdk.NewSessionStore(client)
	return client, session, srv
}

// plantSessionMarker drops the marker cookie into the jar as a previous
// login would have.
func plantSessionMarker(t *testing.T, client *painelsdk.Client, serverURL string) {
	t.Helper()
	u, err := url.Parse(serverURL)
	require.NoError(t, err)
	client.HTTPClient.Jar.SetCookies(u, []*http.Cookie{
		{Name: painelsdk.SessionCookie, Value: "1", Path: "/"},
	})
}

func TestCheckAuthWithoutMarkerSkipsNetwork(t *testing.T) {
	f := newFakeService()
	_, session, _ := newTestSession(t, f)

	require.Equal(t, painelsdk.StateLoading, session.Snapshot().State)

	session.CheckAuth(context.Background())

	require.Equal(t, painelsdk.StateUnauthenticated, session.Snapshot().State)
	require.Zero(t, f.total(), "no marker means no requests at all")
}

func TestCheckAuthWithMarkerAndValidSession(t *testing.T) {
	f := newFakeService()
	f.on("GET /api/v1/auth/profile", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, testUser)
	})
	client, session, srv := newTestSession(t, f)
	plantSessionMarker(t, client, srv.URL)

	session.CheckAuth(context.Background())

	snap := session.Snapshot()
	require.Equal(t, painelsdk.StateAuthenticated, snap.State)
	require.NotNil(t, snap.User)
	require.Equal(t, testUser.Email, snap.User.Email)
	require.Zero(t, f.count("POST /api/v1/auth/refresh"), "no refresh when profile succeeds")
}

func TestCheckAuthFallsBackToSingleRefresh(t *testing.T) {
	t.Run("refresh rescues the session", func(t *testing.T) {
		f := newFakeService()
		f.on("GET /api/v1/auth/profile", func(w http.ResponseWriter, r *http.Request) {
			writeDetail(w, http.StatusUnauthorized, "Não autenticado")
		})
		f.on("POST /api/v1/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, testUser)
		})
		client, session, srv := newTestSession(t, f)
		plantSessionMarker(t, client, srv.URL)

		session.CheckAuth(context.Background())

		require.Equal(t, painelsdk.StateAuthenticated, session.Snapshot().State)
		require.Equal(t, 1, f.count("POST /api/v1/auth/refresh"), "exactly one refresh attempt")
	})

	t.Run("server error also falls back to refresh", func(t *testing.T) {
		f := newFakeService()
		f.on("GET /api/v1/auth/profile", func(w http.ResponseWriter, r *http.Request) {
			writeDetail(w, http.StatusInternalServerError, "Erro interno do servidor")
		})
		f.on("POST /api/v1/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, testUser)
		})
		client, session, srv := newTestSession(t, f)
		plantSessionMarker(t, client, srv.URL)

		session.CheckAuth(context.Background())

		require.Equal(t, painelsdk.StateAuthenticated, session.Snapshot().State)
		require.Equal(t, 1, f.count("POST /api/v1/auth/refresh"),
			"any profile failure earns exactly one refresh attempt")
	})

	t.Run("failed refresh settles on unauthenticated", func(t *testing.T) {
		f := newFakeService()
		f.on("GET /api/v1/auth/profile", func(w http.ResponseWriter, r *http.Request) {
			writeDetail(w, http.StatusUnauthorized, "Não autenticado")
		})
		f.on("POST /api/v1/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
			writeDetail(w, http.StatusUnauthorized, "Sessão expirada")
		})
		client, session, srv := newTestSession(t, f)
		plantSessionMarker(t, client, srv.URL)

		session.CheckAuth(context.Background())

		require.Equal(t, painelsdk.StateUnauthenticated, session.Snapshot().State)
		require.Equal(t, 1, f.count("POST /api/v1/auth/refresh"))
	})
}

func TestLoginTransitions(t *testing.T) {
	t.Run("success authenticates", func(t *testing.T) {
		f := newFakeService()
		f.on("POST /api/v1/auth/login", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, painelsdk.LoginResponse{
				Message: "Login realizado com sucesso",
				User:    &testUser,
			})
		})
		_, session, _ := newTestSession(t, f)

		requiresMFA, err := session.Login(context.Background(), testUser.Email, "SenhaForte123")
		require.NoError(t, err)
		require.False(t, requiresMFA)

		snap := session.Snapshot()
		require.Equal(t, painelsdk.StateAuthenticated, snap.State)
		require.Equal(t, testUser.ID, snap.User.ID)
	})

	t.Run("bad credentials settle on unauthenticated", func(t *testing.T) {
		f := newFakeService()
		f.on("POST /api/v1/auth/login", func(w http.ResponseWriter, r *http.Request) {
			writeDetail(w, http.StatusUnauthorized, "Credenciais inválidas")
		})
		_, session, _ := newTestSession(t, f)

		_, err := session.Login(context.Background(), testUser.Email, "errada")
		require.Error(t, err)
		require.True(t, painelsdk.IsUnauthorized(err))
		require.Equal(t, painelsdk.StateUnauthenticated, session.Snapshot().State)
	})

	t.Run("MFA account parks in mfa-pending", func(t *testing.T) {
		f := newFakeService()
		f.on("POST /api/v1/auth/login", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, painelsdk.LoginResponse{
				Message:     "Código MFA necessário",
				RequiresMFA: true,
			})
		})
		f.on("POST /api/v1/auth/login/mfa", func(w http.ResponseWriter, r *http.Request) {
			var req painelsdk.MFARequest
			_ = json.NewDecoder(r.Body).Decode(&req)
			if req.Code != "123456" {
				writeDetail(w, http.StatusBadRequest, "Código MFA inválido")
				return
			}
			writeJSON(w, http.StatusOK, painelsdk.LoginResponse{
				Message: "Login realizado com sucesso",
				User:    &testUser,
			})
		})
		_, session, _ := newTestSession(t, f)

		requiresMFA, err := session.Login(context.Background(), testUser.Email, "SenhaForte123")
		require.NoError(t, err)
		require.True(t, requiresMFA)
		require.Equal(t, painelsdk.StateMFAPending, session.Snapshot().State)

		// Wrong code keeps the challenge alive.
		err = session.LoginMFA(context.Background(), "000000")
		require.Error(t, err)
		require.Equal(t, painelsdk.StateMFAPending, session.Snapshot().State)

		// Right code completes the login.
		require.NoError(t, session.LoginMFA(context.Background(), "123456"))
		require.Equal(t, painelsdk.StateAuthenticated, session.Snapshot().State)
	})
}

func TestLogoutAlwaysClears(t *testing.T) {
	t.Run("server acknowledges", func(t *testing.T) {
		f := newFakeService()
		f.on("POST /api/v1/auth/login", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, painelsdk.LoginResponse{User: &testUser})
		})
		f.on("POST /api/v1/auth/logout", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, painelsdk.MessageResponse{Message: "Logout realizado"})
		})
		_, session, _ := newTestSession(t, f)

		_, err := session.Login(context.Background(), testUser.Email, "x")
		require.NoError(t, err)

		require.NoError(t, session.Logout(context.Background()))
		require.Equal(t, painelsdk.StateUnauthenticated, session.Snapshot().State)
	})

	t.Run("server unreachable still clears", func(t *testing.T) {
		f := newFakeService()
		f.on("POST /api/v1/auth/login", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, painelsdk.LoginResponse{User: &testUser})
		})
		_, session, srv := newTestSession(t, f)

		_, err := session.Login(context.Background(), testUser.Email, "x")
		require.NoError(t, err)

		srv.Close()

		err = session.Logout(context.Background())
		require.Error(t, err, "network failure is reported")
		require.Equal(t, painelsdk.StateUnauthenticated, session.Snapshot().State,
			"but the local session is gone regardless")
	})
}

func TestStray401CollapsesSession(t *testing.T) {
	f := newFakeService()
	f.on("POST /api/v1/auth/login", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, painelsdk.LoginResponse{User: &testUser})
	})
	f.on("GET /api/v1/users", func(w http.ResponseWriter, r *http.Request) {
		writeDetail(w, http.StatusUnauthorized, "Token inválido")
	})
	client, session, _ := newTestSession(t, f)

	_, err := session.Login(context.Background(), testUser.Email, "x")
	require.NoError(t, err)
	require.Equal(t, painelsdk.StateAuthenticated, session.Snapshot().State)

	_, err = client.ListUsers(context.Background())
	require.True(t, painelsdk.IsUnauthorized(err))
	require.Equal(t, painelsdk.StateUnauthenticated, session.Snapshot().State,
		"401 on any API call tears the session down")
}

func TestStaleOperationIsDiscarded(t *testing.T) {
	profileArrived := make(chan struct{})
	slowRelease := make(chan struct{})
	f := newFakeService()
	f.on("GET /api/v1/auth/profile", func(w http.ResponseWriter, r *http.Request) {
		close(profileArrived)
		select {
		case <-slowRelease:
		case <-r.Context().Done():
			return
		}
		writeDetail(w, http.StatusUnauthorized, "Não autenticado")
	})
	f.on("POST /api/v1/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-slowRelease:
		case <-r.Context().Done():
			return
		}
		writeDetail(w, http.StatusUnauthorized, "Sessão expirada")
	})
	f.on("POST /api/v1/auth/login", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, painelsdk.LoginResponse{User: &testUser})
	})
	client, session, srv := newTestSession(t, f)
	plantSessionMarker(t, client, srv.URL)

	// Start a slow CheckAuth that will eventually conclude "unauthenticated".
	done := make(chan struct{})
	go func() {
		defer close(done)
		session.CheckAuth(context.Background())
	}()

	// Only log in once CheckAuth is parked inside the profile handler, so
	// the login is guaranteed to be the newer operation.
	<-profileArrived
	_, err := session.Login(context.Background(), testUser.Email, "SenhaForte123")
	require.NoError(t, err)
	require.Equal(t, painelsdk.StateAuthenticated, session.Snapshot().State)

	// Let the stale CheckAuth finish; its verdict must be discarded.
	close(slowRelease)
	<-done

	require.Equal(t, painelsdk.StateAuthenticated, session.Snapshot().State,
		"a superseded operation cannot clobber newer state")
}

func TestSubscribeNotifiesOnCommit(t *testing.T) {
	f := newFakeService()
	f.on("POST /api/v1/auth/login", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, painelsdk.LoginResponse{User: &testUser})
	})
	_, session, _ := newTestSession(t, f)

	var notified atomic.Int32
	var last painelsdk.Snapshot
	unsubscribe := session.Subscribe(func(snap painelsdk.Snapshot) {
		notified.Add(1)
		last = snap
	})

	_, err := session.Login(context.Background(), testUser.Email, "x")
	require.NoError(t, err)
	require.Equal(t, int32(1), notified.Load())
	require.Equal(t, painelsdk.StateAuthenticated, last.State)

	unsubscribe()
	session.CheckAuth(context.Background())
	require.Equal(t, int32(1), notified.Load(), "no notifications after unsubscribe")
}

func TestRefreshUserToken(t *testing.T) {
	f := newFakeService()
	refreshOK := true
	f.on("POST /api/v1/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		if refreshOK {
			writeJSON(w, http.StatusOK, testUser)
			return
		}
		writeDetail(w, http.StatusUnauthorized, "Sessão expirada")
	})
	_, session, _ := newTestSession(t, f)

	require.True(t, session.RefreshUserToken(context.Background()))
	require.Equal(t, painelsdk.StateAuthenticated, session.Snapshot().State)

	refreshOK = false
	require.False(t, session.RefreshUserToken(context.Background()))
	require.Equal(t, painelsdk.StateUnauthenticated, session.Snapshot().State)
}
