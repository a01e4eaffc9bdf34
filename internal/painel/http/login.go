package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/painelhq/painel/internal/painel/service"
	"github.com/painelhq/painel/pkg/httpx"
	"github.com/painelhq/painel/pkg/painelsdk"
	"github.com/painelhq/painel/pkg/slogx"
)

// LoginHandler drives the credential and MFA steps of authentication.
type LoginHandler struct {
	AuthService *service.AuthService
	Cookies     CookieConfig
}

// HandleLogin handles POST /api/v1/auth/login
//
//	@Summary		Authenticate with email and password
//	@Description	Verifies credentials and establishes the session cookies. The email field
//	@Description	also accepts a CPF or the usuario login name. Accounts with
//	@Description	MFA enabled receive requires_mfa=true and must call the MFA endpoint next.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		painelsdk.LoginRequest	true	"credentials"
//	@Success		200		{object}	painelsdk.LoginResponse
//	@Failure		400		{object}	httpx.ErrorBody	"malformed body"
//	@Failure		401		{object}	httpx.ErrorBody	"invalid credentials"
//	@Router			/api/v1/auth/login [post].
func (h *LoginHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req painelsdk.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeMalformedBody(w)
		return
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		httpx.WriteError(w, http.StatusBadRequest, "Email e senha são obrigatórios")
		return
	}

	res, err := h.AuthService.Login(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			httpx.WriteError(w, http.StatusUnauthorized, "Credenciais inválidas")
			return
		}
		log.Error("login failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "Erro interno do servidor")
		return
	}

	now := time.Now()
	httpx.NoCache(w)

	if res.Challenge != nil {
		h.Cookies.setMFACookie(w, res.Challenge.ID, res.Challenge.ExpiresAt, now)
		httpx.WriteJSON(w, http.StatusOK, painelsdk.LoginResponse{
			Message:     "Código MFA necessário",
			RequiresMFA: true,
		})
		return
	}

	h.Cookies.setAuthCookies(w, res.Tokens, now)
	user := toUserResponse(res.User)
	httpx.WriteJSON(w, http.StatusOK, painelsdk.LoginResponse{
		Message: "Login realizado com sucesso",
		User:    &user,
	})
}

// HandleLoginMFA handles POST /api/v1/auth/login/mfa
//
//	@Summary		Complete login with a TOTP code
//	@Description	Answers the pending challenge referenced by the MFA cookie. Five failed
//	@Description	attempts destroy the challenge and force a fresh login.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		painelsdk.MFARequest	true	"six-digit code"
//	@Success		200		{object}	painelsdk.LoginResponse
//	@Failure		400		{object}	httpx.ErrorBody	"invalid code"
//	@Failure		401		{object}	httpx.ErrorBody	"no pending challenge"
//	@Failure		429		{object}	httpx.ErrorBody	"too many attempts"
//	@Router			/api/v1/auth/login/mfa [post].
func (h *LoginHandler) HandleLoginMFA(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	cookie, err := r.Cookie(MFACookie)
	if err != nil || cookie.Value == "" {
		httpx.WriteError(w, http.StatusUnauthorized, "Nenhum desafio MFA pendente")
		return
	}

	var req painelsdk.MFARequest
	if err := decodeJSON(r, &req); err != nil {
		writeMalformedBody(w)
		return
	}
	if len(req.Code) != 6 {
		httpx.WriteError(w, http.StatusBadRequest, "Código MFA inválido")
		return
	}

	res, err := h.AuthService.LoginMFA(ctx, cookie.Value, req.Code)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidMFACode):
			httpx.WriteError(w, http.StatusBadRequest, "Código MFA inválido")
		case errors.Is(err, service.ErrTooManyAttempts):
			h.Cookies.clearMFACookie(w)
			httpx.WriteError(w, http.StatusTooManyRequests, "Muitas tentativas. Faça login novamente.")
		case errors.Is(err, service.ErrInvalidChallenge):
			h.Cookies.clearMFACookie(w)
			httpx.WriteError(w, http.StatusUnauthorized, "Desafio MFA expirado. Faça login novamente.")
		default:
			log.Error("mfa login failed", "err", err)
			httpx.WriteError(w, http.StatusInternalServerError, "Erro interno do servidor")
		}
		return
	}

	now := time.Now()
	httpx.NoCache(w)
	h.Cookies.clearMFACookie(w)
	h.Cookies.setAuthCookies(w, res.Tokens, now)

	user := toUserResponse(res.User)
	httpx.WriteJSON(w, http.StatusOK, painelsdk.LoginResponse{
		Message: "Login realizado com sucesso",
		User:    &user,
	})
}
