package http

import (
	"errors"
	"net/http"

	"github.com/painelhq/painel/internal/painel/service"
	"github.com/painelhq/painel/pkg/httpx"
	"github.com/painelhq/painel/pkg/painelsdk"
	"github.com/painelhq/painel/pkg/slogx"
)

// PasswordHandler covers reset, strength validation and authenticated
// password changes.
type PasswordHandler struct {
	AuthService *service.AuthService
	UserService *service.UserService
}

// HandleResetRequest handles POST /api/v1/auth/password/reset
//
//	@Summary		Request a password reset
//	@Description	Issues a single-use reset token for the account behind the given
//	@Description	email. The response is the same whether or not the account exists,
//	@Description	so the endpoint cannot be used to enumerate users.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		painelsdk.PasswordResetRequest	true	"account email"
//	@Success		200		{object}	painelsdk.MessageResponse
//	@Failure		400		{object}	httpx.ErrorBody	"malformed body"
//	@Router			/api/v1/auth/password/reset [post].
func (h *PasswordHandler) HandleResetRequest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req painelsdk.PasswordResetRequest
	if err := decodeJSON(r, &req); err != nil {
		writeMalformedBody(w)
		return
	}
	if req.Email == "" {
		httpx.WriteError(w, http.StatusBadRequest, "Email é obrigatório")
		return
	}

	token, err := h.AuthService.RequestPasswordReset(ctx, req.Email)
	if err != nil {
		log.Error("password reset request failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "Erro interno do servidor")
		return
	}
	if token != "" {
		// Delivery is out of band. Until a mailer is wired up the token
		// is only surfaced through the logs.
		log.Info("password reset token issued", "email", req.Email)
	}

	httpx.WriteJSON(w, http.StatusOK, painelsdk.MessageResponse{
		Message: "Se o email estiver cadastrado, as instruções de recuperação foram enviadas",
	})
}

// HandleResetConfirm handles POST /api/v1/auth/password/reset/confirm
//
//	@Summary		Confirm a password reset
//	@Description	Consumes a reset token and replaces the account password. All
//	@Description	refresh tokens of the account are revoked.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		painelsdk.PasswordResetConfirm	true	"token and new password"
//	@Success		200		{object}	painelsdk.MessageResponse
//	@Failure		400		{object}	httpx.ErrorBody	"invalid or expired token"
//	@Failure		422		{object}	httpx.ErrorBody	"new password too weak"
//	@Router			/api/v1/auth/password/reset/confirm [post].
func (h *PasswordHandler) HandleResetConfirm(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req painelsdk.PasswordResetConfirm
	if err := decodeJSON(r, &req); err != nil {
		writeMalformedBody(w)
		return
	}
	if req.Token == "" || req.NewPassword == "" {
		httpx.WriteError(w, http.StatusBadRequest, "Token e nova senha são obrigatórios")
		return
	}

	err := h.AuthService.ConfirmPasswordReset(ctx, req.Token, req.NewPassword)
	switch {
	case err == nil:
		httpx.WriteJSON(w, http.StatusOK, painelsdk.MessageResponse{Message: "Senha redefinida com sucesso"})
	case errors.Is(err, service.ErrInvalidResetToken):
		httpx.WriteError(w, http.StatusBadRequest, "Token de recuperação inválido ou expirado")
	case errors.Is(err, service.ErrWeakPassword):
		v := service.ValidatePassword(req.NewPassword)
		httpx.WriteValidationError(w, "Senha fraca", v.Errors)
	default:
		log.Error("password reset confirm failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "Erro interno do servidor")
	}
}

// HandleValidatePassword handles POST /api/v1/auth/password/validate
//
//	@Summary		Check password strength
//	@Description	Runs the server-side strength rules against a candidate password
//	@Description	without storing anything. Used by registration forms for live
//	@Description	feedback that matches what the server will enforce.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		painelsdk.PasswordValidateRequest	true	"candidate password"
//	@Success		200		{object}	painelsdk.PasswordValidationResponse
//	@Failure		400		{object}	httpx.ErrorBody	"malformed body"
//	@Router			/api/v1/auth/password/validate [post].
func (h *PasswordHandler) HandleValidatePassword(w http.ResponseWriter, r *http.Request) {
	var req painelsdk.PasswordValidateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeMalformedBody(w)
		return
	}

	v := service.ValidatePassword(req.Password)
	httpx.WriteJSON(w, http.StatusOK, painelsdk.PasswordValidationResponse{
		Valid:    v.Valid,
		Errors:   v.Errors,
		Warnings: v.Warnings,
		Score:    v.Score,
	})
}

// HandleChangePassword handles POST /api/v1/auth/password/change
//
//	@Summary		Change the current user's password
//	@Description	Verifies the current password before applying the new one. Every
//	@Description	other session of the account is revoked on success.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		painelsdk.ChangePasswordRequest	true	"current and new password"
//	@Success		200		{object}	painelsdk.MessageResponse
//	@Failure		401		{object}	httpx.ErrorBody	"not authenticated or wrong current password"
//	@Failure		422		{object}	httpx.ErrorBody	"new password too weak"
//	@Security		CookieAuth
//	@Router			/api/v1/auth/password/change [post].
func (h *PasswordHandler) HandleChangePassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID := httpx.UserIDFromContext(ctx)
	if userID == "" {
		httpx.WriteError(w, http.StatusUnauthorized, "Não autenticado")
		return
	}

	var req painelsdk.ChangePasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		writeMalformedBody(w)
		return
	}
	if req.CurrentPassword == "" || req.NewPassword == "" {
		httpx.WriteError(w, http.StatusBadRequest, "Senha atual e nova senha são obrigatórias")
		return
	}

	err := h.UserService.ChangePassword(ctx, userID, req.CurrentPassword, req.NewPassword)
	switch {
	case err == nil:
		httpx.WriteJSON(w, http.StatusOK, painelsdk.MessageResponse{Message: "Senha alterada com sucesso"})
	case errors.Is(err, service.ErrInvalidCredentials):
		httpx.WriteError(w, http.StatusUnauthorized, "Senha atual incorreta")
	case errors.Is(err, service.ErrWeakPassword):
		v := service.ValidatePassword(req.NewPassword)
		httpx.WriteValidationError(w, "Senha fraca", v.Errors)
	default:
		log.Error("change password failed", "err", err, "user_id", userID)
		httpx.WriteError(w, http.StatusInternalServerError, "Erro interno do servidor")
	}
}
