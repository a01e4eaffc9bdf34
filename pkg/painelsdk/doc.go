/*
Package painelsdk provides a client SDK for the painel service.

# Overview

The package is organized around three types:

  - Client: cookie-based HTTP client for every service endpoint
  - SessionStore: tracks the authentication lifecycle as a state machine
  - Guard: pure navigation decisions from a session snapshot

Create a Client and a SessionStore, then run the startup probe:

	client := painelsdk.NewClient("https://painel.example.com")
	session := painelsdk.NewSessionStore(client)

	session.CheckAuth(ctx)

	switch session.Snapshot().State {
	case painelsdk.StateAuthenticated:
		// render the app
	case painelsdk.StateUnauthenticated:
		// render the login page
	}

# Authentication Lifecycle

A SessionStore starts in StateLoading. CheckAuth resolves it: without a
session marker cookie it settles on StateUnauthenticated without touching
the network; with one it probes the profile endpoint and falls back to a
single refresh attempt before giving up.

Login moves the store to StateAuthenticated, or to StateMFAPending when
the account has a second factor:

	requiresMFA, err := session.Login(ctx, email, password)
	if requiresMFA {
		err = session.LoginMFA(ctx, code)
	}

Every transition is guarded by a sequence number: a response from an
operation that has since been superseded by a newer one is discarded, so
out-of-order completions cannot corrupt the state.

# Route Guarding

Guard evaluates a Snapshot against a Route without any I/O:

	result := painelsdk.Guard(session.Snapshot(), painelsdk.Route{RequiresAuth: true})
	switch result.Decision {
	case painelsdk.GuardPending:
		// still resolving, render nothing yet
	case painelsdk.GuardRedirect:
		// navigate to result.RedirectTo
	case painelsdk.GuardAllow:
		// render the page
	}

# Errors

Every non-2xx response surfaces as *APIError carrying the HTTP status and
the server's detail message. IsUnauthorized and IsMFARequired answer the
common cases.
*/
package painelsdk
