package http

import (
	"net/http"

	"github.com/painelhq/painel/internal/painel/service"
	"github.com/painelhq/painel/pkg/httpx"
	"github.com/painelhq/painel/pkg/painelsdk"
	"github.com/painelhq/painel/pkg/slogx"
)

// LogoutHandler tears sessions down.
type LogoutHandler struct {
	AuthService *service.AuthService
	Cookies     CookieConfig
}

// HandleLogout handles POST /api/v1/auth/logout
//
//	@Summary		End the session
//	@Description	Revokes the refresh token and expires every session cookie. Always
//	@Description	answers 200: a logout cannot fail from the client's perspective.
//	@Tags			Auth
//	@Produce		json
//	@Success		200	{object}	painelsdk.MessageResponse
//	@Router			/api/v1/auth/logout [post].
func (h *LogoutHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var refreshOpaque string
	if cookie, err := r.Cookie(RefreshTokenCookie); err == nil {
		refreshOpaque = cookie.Value
	}

	if err := h.AuthService.Logout(ctx, refreshOpaque); err != nil {
		// Revocation trouble is our problem, not the user's.
		log.Error("failed to revoke refresh token on logout", "err", err)
	}

	httpx.NoCache(w)
	h.Cookies.clearAuthCookies(w)
	h.Cookies.clearMFACookie(w)
	httpx.WriteJSON(w, http.StatusOK, painelsdk.MessageResponse{Message: "Logout realizado com sucesso"})
}
