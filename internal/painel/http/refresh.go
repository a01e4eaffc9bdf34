package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/painelhq/painel/internal/painel/service"
	"github.com/painelhq/painel/pkg/httpx"
	"github.com/painelhq/painel/pkg/slogx"
)

// RefreshHandler rotates the session cookies.
type RefreshHandler struct {
	AuthService *service.AuthService
	Cookies     CookieConfig
}

// HandleRefresh handles POST /api/v1/auth/refresh
//
//	@Summary		Rotate the session
//	@Description	Redeems the refresh cookie for a fresh access token and a fresh refresh
//	@Description	token. The old refresh token is revoked; replaying it fails.
//	@Tags			Auth
//	@Produce		json
//	@Success		200	{object}	painelsdk.UserResponse
//	@Failure		401	{object}	httpx.ErrorBody	"missing, expired or revoked refresh token"
//	@Router			/api/v1/auth/refresh [post].
func (h *RefreshHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	cookie, err := r.Cookie(RefreshTokenCookie)
	if err != nil || cookie.Value == "" {
		h.Cookies.clearAuthCookies(w)
		httpx.WriteError(w, http.StatusUnauthorized, "Sessão expirada")
		return
	}

	res, err := h.AuthService.Refresh(ctx, cookie.Value)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRefresh) {
			h.Cookies.clearAuthCookies(w)
			httpx.WriteError(w, http.StatusUnauthorized, "Sessão expirada")
			return
		}
		log.Error("refresh failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "Erro interno do servidor")
		return
	}

	httpx.NoCache(w)
	h.Cookies.setAuthCookies(w, res.Tokens, time.Now())
	httpx.WriteJSON(w, http.StatusOK, toUserResponse(res.User))
}
