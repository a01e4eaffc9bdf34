package painelsdk

import (
	"context"
	"errors"
	"net/http"
	"sync"
)

// State is the authentication lifecycle phase of a SessionStore.
type State int

const (
	// StateLoading means the startup probe has not finished yet. UI code
	// should hold rendering decisions until it resolves.
	StateLoading State = iota

	// StateUnauthenticated means there is no session.
	StateUnauthenticated

	// StateMFAPending means the password was accepted but the session is
	// parked until a valid TOTP code arrives.
	StateMFAPending

	// StateAuthenticated means a session exists and User is populated.
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateUnauthenticated:
		return "unauthenticated"
	case StateMFAPending:
		return "mfa-pending"
	case StateAuthenticated:
		return "authenticated"
	}
	return "unknown"
}

// Snapshot is an immutable view of the session at a point in time.
type Snapshot struct {
	State State
	User  *UserResponse
}

// SessionStore tracks the authentication lifecycle against a Client. All
// transitions are serialized through an internal sequence number: an
// operation only commits its result if no newer operation started while
// it was in flight, so a slow response can never clobber fresher state.
type SessionStore struct {
	client *Client

	mu        sync.Mutex
	state     State
	user      *UserResponse
	seq       uint64
	nextSub   int
	listeners map[int]func(Snapshot)
}

// NewSessionStore wires a store to a client, starting in StateLoading.
// It installs the client's OnUnauthenticated hook so any stray 401 from
// an API call collapses the session.
func NewSessionStore(client *Client) *SessionStore {
	s := &SessionStore{
		client:    client,
		state:     StateLoading,
		listeners: map[int]func(Snapshot){},
	}
	client.OnUnauthenticated = s.forceUnauthenticated
	return s
}

// Snapshot returns the current state and user.
func (s *SessionStore) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{State: s.state, User: s.user}
}

// Subscribe registers a listener for state changes and returns an
// unsubscribe function. The listener is invoked synchronously from the
// committing goroutine.
func (s *SessionStore) Subscribe(fn func(Snapshot)) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.listeners[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// begin marks the start of an async operation and returns its token.
// Starting a new operation supersedes every older in-flight one.
func (s *SessionStore) begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	return s.seq
}

// commit applies a result only if op is still the newest operation.
// Returns false when the result was discarded as stale.
func (s *SessionStore) commit(op uint64, state State, user *UserResponse) bool {
	s.mu.Lock()
	if op != s.seq {
		s.mu.Unlock()
		return false
	}
	s.state = state
	s.user = user
	snap := Snapshot{State: state, User: user}
	listeners := make([]func(Snapshot), 0, len(s.listeners))
	for _, fn := range s.listeners {
		listeners = append(listeners, fn)
	}
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(snap)
	}
	return true
}

// forceUnauthenticated is the 401 hook: the server has spoken, so this
// bypasses the supersede guard by becoming the newest operation itself.
func (s *SessionStore) forceUnauthenticated() {
	op := s.begin()
	s.commit(op, StateUnauthenticated, nil)
}

// CheckAuth is the startup check. Without a session marker cookie it
// resolves to unauthenticated immediately, with zero network calls. With
// a marker it asks for the profile and, should that fail for any reason,
// makes exactly one refresh attempt before giving up.
func (s *SessionStore) CheckAuth(ctx context.Context) {
	op := s.begin()

	if !s.client.HasSessionMarker() {
		s.commit(op, StateUnauthenticated, nil)
		return
	}

	user, err := s.client.profile(ctx, false)
	if err == nil {
		s.commit(op, StateAuthenticated, &user)
		return
	}

	refreshed, err := s.client.Refresh(ctx)
	if err != nil {
		s.commit(op, StateUnauthenticated, nil)
		return
	}
	s.commit(op, StateAuthenticated, &refreshed)
}

// Login submits credentials. It reports whether a second factor is still
// required; in that case the store parks in StateMFAPending.
func (s *SessionStore) Login(ctx context.Context, email, password string) (requiresMFA bool, err error) {
	op := s.begin()

	resp, err := s.client.Login(ctx, email, password)
	if err != nil {
		s.commit(op, StateUnauthenticated, nil)
		return false, err
	}

	if resp.RequiresMFA {
		s.commit(op, StateMFAPending, nil)
		return true, nil
	}

	s.commit(op, StateAuthenticated, resp.User)
	return false, nil
}

// LoginMFA completes a parked login with a TOTP code.
func (s *SessionStore) LoginMFA(ctx context.Context, code string) error {
	op := s.begin()

	resp, err := s.client.LoginMFA(ctx, code)
	if err != nil {
		// A wrong code keeps the challenge alive; anything else (expired
		// challenge, too many attempts) collapses it server-side.
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusBadRequest {
			s.commit(op, StateMFAPending, nil)
		} else {
			s.commit(op, StateUnauthenticated, nil)
		}
		return err
	}

	s.commit(op, StateAuthenticated, resp.User)
	return nil
}

// Logout tears the session down. The local state always ends up
// unauthenticated, even when the revocation call fails: the user asked
// to leave and stale cookies are the server's problem.
func (s *SessionStore) Logout(ctx context.Context) error {
	op := s.begin()
	err := s.client.Logout(ctx)
	s.commit(op, StateUnauthenticated, nil)
	return err
}

// RefreshUserToken rotates the session cookies in place. Reports whether
// the session survived.
func (s *SessionStore) RefreshUserToken(ctx context.Context) bool {
	op := s.begin()

	user, err := s.client.Refresh(ctx)
	if err != nil {
		s.commit(op, StateUnauthenticated, nil)
		return false
	}
	return s.commit(op, StateAuthenticated, &user)
}
