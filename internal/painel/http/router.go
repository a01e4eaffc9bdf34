package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/painelhq/painel/internal/painel/service"
	"github.com/painelhq/painel/internal/painel/store"
	"github.com/painelhq/painel/pkg/httpx"
	"github.com/painelhq/painel/pkg/jwtx"
	"github.com/painelhq/painel/pkg/slogx"

	_ "github.com/painelhq/painel/api/painel" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	cookies      CookieConfig
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store            store.Store
	AuthService      *service.AuthService
	UserService      *service.UserService
	MFAService       *service.MFAService
	DashboardService *service.DashboardService
}

func NewRouter(
	verifier jwtx.Verifier,
	cookies CookieConfig,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		cookies:      cookies,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerPassword()
	r.registerMFA()
	r.registerUsers()
	r.registerDashboards()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Painel Admin API
//	@version		0.1.0
//	@description	Session and account management backend for the Painel admin
//	@description	dashboard. Authentication is cookie based: a short-lived JWT
//	@description	access cookie plus a rotating opaque refresh cookie, with an
//	@description	optional TOTP second factor.
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	CookieAuth
//	@in							cookie
//	@name						painel_access
//	@description				HttpOnly access token cookie set by the login endpoints.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	login := &LoginHandler{AuthService: r.AuthService, Cookies: r.cookies}
	register := &RegisterHandler{AuthService: r.AuthService}
	refresh := &RefreshHandler{AuthService: r.AuthService, Cookies: r.cookies}
	logout := &LogoutHandler{AuthService: r.AuthService, Cookies: r.cookies}
	profile := &ProfileHandler{UserService: r.UserService}

	// POST /login - strict rate limit by IP (credential guessing)
	r.Mux.Handle("POST /api/v1/auth/login",
		httpx.Chain(http.HandlerFunc(login.HandleLogin),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /login/mfa - strict rate limit by IP (code guessing, on top of
	// the per-challenge attempt cap)
	r.Mux.Handle("POST /api/v1/auth/login/mfa",
		httpx.Chain(http.HandlerFunc(login.HandleLoginMFA),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /register - strict rate limit by IP (public signup endpoint)
	r.Mux.Handle("POST /api/v1/auth/register",
		httpx.Chain(http.HandlerFunc(register.HandleRegister),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /refresh - moderate; every open tab refreshes on the same IP
	r.Mux.Handle("POST /api/v1/auth/refresh",
		httpx.Chain(http.HandlerFunc(refresh.HandleRefresh),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	// POST /logout - moderate rate limit by IP
	r.Mux.Handle("POST /api/v1/auth/logout",
		httpx.Chain(http.HandlerFunc(logout.HandleLogout),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	// GET /profile - the frontend polls this on startup; lenient by user
	r.Mux.Handle("GET /api/v1/auth/profile",
		httpx.Chain(http.HandlerFunc(profile.HandleProfile),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerPassword() {
	h := &PasswordHandler{AuthService: r.AuthService, UserService: r.UserService}

	// Reset endpoints are unauthenticated - strict by IP
	r.Mux.Handle("POST /api/v1/auth/password/reset",
		httpx.Chain(http.HandlerFunc(h.HandleResetRequest),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /api/v1/auth/password/reset/confirm",
		httpx.Chain(http.HandlerFunc(h.HandleResetConfirm),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /password/validate - live form feedback, moderate by IP
	r.Mux.Handle("POST /api/v1/auth/password/validate",
		httpx.Chain(http.HandlerFunc(h.HandleValidatePassword),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	// POST /password/change - authenticated, strict by user (verifies the
	// current password, so it is a guessing surface)
	r.Mux.Handle("POST /api/v1/auth/password/change",
		httpx.Chain(http.HandlerFunc(h.HandleChangePassword),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerMFA() {
	h := &MFAHandler{MFAService: r.MFAService}

	// POST /mfa/enroll - moderate rate limit by user
	r.Mux.Handle("POST /api/v1/auth/mfa/enroll",
		httpx.Chain(http.HandlerFunc(h.HandleEnroll),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)

	// POST /mfa/verify - strict rate limit by user (prevent brute force of TOTP codes)
	r.Mux.Handle("POST /api/v1/auth/mfa/verify",
		httpx.Chain(http.HandlerFunc(h.HandleVerify),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.StrictLimit),
		),
	)

	// POST /mfa/disable - strict rate limit by user
	r.Mux.Handle("POST /api/v1/auth/mfa/disable",
		httpx.Chain(http.HandlerFunc(h.HandleDisable),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerUsers() {
	h := &UsersHandler{AuthService: r.AuthService, UserService: r.UserService}

	adminChain := func(fn http.HandlerFunc) http.Handler {
		return httpx.Chain(fn,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAdmin(),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		)
	}

	r.Mux.Handle("GET /api/v1/users", adminChain(h.HandleList))
	r.Mux.Handle("POST /api/v1/users", adminChain(h.HandleCreate))
	r.Mux.Handle("GET /api/v1/users/{id}", adminChain(h.HandleGet))
	r.Mux.Handle("PUT /api/v1/users/{id}", adminChain(h.HandleUpdate))
	r.Mux.Handle("DELETE /api/v1/users/{id}", adminChain(h.HandleDelete))
}

func (r *Router) registerDashboards() {
	h := &DashboardsHandler{DashboardService: r.DashboardService}

	// GET /dashboards/{name} - any authenticated user, lenient by user
	r.Mux.Handle("GET /api/v1/dashboards/{name}",
		httpx.Chain(http.HandlerFunc(h.HandleSummary),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
