package painelsdk

import "strings"

// Default navigation targets used by guard redirects.
const (
	LoginPath = "/login"
	HomePath  = "/"
)

// Route describes the access requirements of a navigation target.
type Route struct {
	// RequiresAuth marks protected routes: visitors get sent to login.
	RequiresAuth bool

	// GuestOnly marks pages like the login form that an authenticated
	// user has no business visiting.
	GuestOnly bool

	// AdminOnly additionally demands an administrator perfil.
	AdminOnly bool
}

// GuardDecision is the outcome of evaluating a route against a session
// snapshot.
type GuardDecision int

const (
	// GuardPending means the session is still resolving; render nothing
	// and re-evaluate on the next snapshot.
	GuardPending GuardDecision = iota

	// GuardAllow lets the navigation through.
	GuardAllow

	// GuardRedirect sends the visitor to RedirectTo instead.
	GuardRedirect
)

// GuardResult pairs a decision with its redirect target.
type GuardResult struct {
	Decision   GuardDecision
	RedirectTo string
}

// Guard is a pure function from session snapshot and route requirements
// to a navigation decision. It never touches the network, so it is safe
// to call on every render.
func Guard(snap Snapshot, route Route) GuardResult {
	if snap.State == StateLoading {
		return GuardResult{Decision: GuardPending}
	}

	authenticated := snap.State == StateAuthenticated

	if route.GuestOnly && authenticated {
		return GuardResult{Decision: GuardRedirect, RedirectTo: HomePath}
	}

	if route.RequiresAuth && !authenticated {
		// MFA-pending counts as not signed in: the second factor happens
		// on the login page.
		return GuardResult{Decision: GuardRedirect, RedirectTo: LoginPath}
	}

	if route.AdminOnly && !isAdminPerfil(snap.User) {
		return GuardResult{Decision: GuardRedirect, RedirectTo: HomePath}
	}

	return GuardResult{Decision: GuardAllow}
}

func isAdminPerfil(u *UserResponse) bool {
	if u == nil {
		return false
	}
	switch strings.ToLower(u.Perfil) {
	case "administrador", "admin", "superuser":
		return true
	}
	return false
}
