package http

import (
	"net/http"

	"github.com/painelhq/painel/internal/painel/service"
	"github.com/painelhq/painel/pkg/httpx"
	"github.com/painelhq/painel/pkg/slogx"
)

// ProfileHandler serves the authenticated user's own record.
type ProfileHandler struct {
	UserService *service.UserService
}

// HandleProfile handles GET /api/v1/auth/profile
//
//	@Summary		Current user profile
//	@Description	Returns the authenticated user. The frontend calls this on startup to
//	@Description	validate the session cookies.
//	@Tags			Auth
//	@Produce		json
//	@Success		200	{object}	painelsdk.UserResponse
//	@Failure		401	{object}	httpx.ErrorBody	"not authenticated"
//	@Router			/api/v1/auth/profile [get].
func (h *ProfileHandler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID := httpx.UserIDFromContext(ctx)
	if userID == "" {
		httpx.WriteError(w, http.StatusUnauthorized, "Não autenticado")
		return
	}

	u, err := h.UserService.GetUserByID(ctx, userID)
	if err != nil {
		// Token valid but user gone: treat as an expired session.
		log.Warn("profile lookup failed", "user_id", userID, "err", err)
		httpx.WriteError(w, http.StatusUnauthorized, "Sessão inválida")
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, toUserResponse(u))
}
