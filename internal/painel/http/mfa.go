package http

import (
	"errors"
	"net/http"

	"github.com/painelhq/painel/internal/painel/service"
	"github.com/painelhq/painel/pkg/httpx"
	"github.com/painelhq/painel/pkg/painelsdk"
	"github.com/painelhq/painel/pkg/slogx"
)

// MFAHandler manages TOTP enrollment for the authenticated user. The
// login-time challenge flow lives in LoginHandler.
type MFAHandler struct {
	MFAService *service.MFAService
}

// HandleEnroll handles POST /api/v1/auth/mfa/enroll
//
//	@Summary		Start TOTP enrollment
//	@Description	Generates a TOTP secret for the current user and returns the
//	@Description	provisioning material. MFA stays off until a code is verified.
//	@Tags			MFA
//	@Produce		json
//	@Success		200	{object}	painelsdk.MFAEnrollResponse
//	@Failure		401	{object}	httpx.ErrorBody	"not authenticated"
//	@Failure		409	{object}	httpx.ErrorBody	"MFA already enabled"
//	@Security		CookieAuth
//	@Router			/api/v1/auth/mfa/enroll [post].
func (h *MFAHandler) HandleEnroll(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID := httpx.UserIDFromContext(ctx)
	if userID == "" {
		httpx.WriteError(w, http.StatusUnauthorized, "Não autenticado")
		return
	}

	enrollment, err := h.MFAService.EnrollTOTP(ctx, userID)
	switch {
	case err == nil:
		httpx.NoCache(w)
		httpx.WriteJSON(w, http.StatusOK, painelsdk.MFAEnrollResponse{
			Secret:  enrollment.Secret,
			QRCode:  enrollment.QRCode,
			Issuer:  enrollment.Issuer,
			Account: enrollment.Account,
		})
	case errors.Is(err, service.ErrMFAAlreadyEnabled):
		httpx.WriteError(w, http.StatusConflict, "MFA já está habilitado para esta conta")
	default:
		log.Error("mfa enroll failed", "err", err, "user_id", userID)
		httpx.WriteError(w, http.StatusInternalServerError, "Erro interno do servidor")
	}
}

// HandleVerify handles POST /api/v1/auth/mfa/verify
//
//	@Summary		Confirm TOTP enrollment
//	@Description	Verifies a code against the pending secret and turns MFA on.
//	@Tags			MFA
//	@Accept			json
//	@Produce		json
//	@Param			request	body		painelsdk.MFARequest	true	"six digit TOTP code"
//	@Success		200		{object}	painelsdk.MessageResponse
//	@Failure		400		{object}	httpx.ErrorBody	"invalid code or no pending enrollment"
//	@Failure		401		{object}	httpx.ErrorBody	"not authenticated"
//	@Failure		409		{object}	httpx.ErrorBody	"MFA already enabled"
//	@Security		CookieAuth
//	@Router			/api/v1/auth/mfa/verify [post].
func (h *MFAHandler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID := httpx.UserIDFromContext(ctx)
	if userID == "" {
		httpx.WriteError(w, http.StatusUnauthorized, "Não autenticado")
		return
	}

	var req painelsdk.MFARequest
	if err := decodeJSON(r, &req); err != nil {
		writeMalformedBody(w)
		return
	}

	err := h.MFAService.VerifyTOTP(ctx, userID, req.Code)
	switch {
	case err == nil:
		httpx.WriteJSON(w, http.StatusOK, painelsdk.MessageResponse{Message: "MFA habilitado com sucesso"})
	case errors.Is(err, service.ErrInvalidTOTPCode):
		httpx.WriteError(w, http.StatusBadRequest, "Código MFA inválido")
	case errors.Is(err, service.ErrMFANotEnrolled):
		httpx.WriteError(w, http.StatusBadRequest, "Nenhuma inscrição MFA pendente")
	case errors.Is(err, service.ErrMFAAlreadyEnabled):
		httpx.WriteError(w, http.StatusConflict, "MFA já está habilitado para esta conta")
	default:
		log.Error("mfa verify failed", "err", err, "user_id", userID)
		httpx.WriteError(w, http.StatusInternalServerError, "Erro interno do servidor")
	}
}

// HandleDisable handles POST /api/v1/auth/mfa/disable
//
//	@Summary		Disable MFA
//	@Description	Removes the TOTP factor after one final valid code.
//	@Tags			MFA
//	@Accept			json
//	@Produce		json
//	@Param			request	body		painelsdk.MFARequest	true	"six digit TOTP code"
//	@Success		200		{object}	painelsdk.MessageResponse
//	@Failure		400		{object}	httpx.ErrorBody	"invalid code or MFA not enabled"
//	@Failure		401		{object}	httpx.ErrorBody	"not authenticated"
//	@Security		CookieAuth
//	@Router			/api/v1/auth/mfa/disable [post].
func (h *MFAHandler) HandleDisable(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID := httpx.UserIDFromContext(ctx)
	if userID == "" {
		httpx.WriteError(w, http.StatusUnauthorized, "Não autenticado")
		return
	}

	var req painelsdk.MFARequest
	if err := decodeJSON(r, &req); err != nil {
		writeMalformedBody(w)
		return
	}

	err := h.MFAService.DisableTOTP(ctx, userID, req.Code)
	switch {
	case err == nil:
		httpx.WriteJSON(w, http.StatusOK, painelsdk.MessageResponse{Message: "MFA desabilitado com sucesso"})
	case errors.Is(err, service.ErrInvalidTOTPCode):
		httpx.WriteError(w, http.StatusBadRequest, "Código MFA inválido")
	case errors.Is(err, service.ErrMFANotEnabled):
		httpx.WriteError(w, http.StatusBadRequest, "MFA não está habilitado para esta conta")
	default:
		log.Error("mfa disable failed", "err", err, "user_id", userID)
		httpx.WriteError(w, http.StatusInternalServerError, "Erro interno do servidor")
	}
}
