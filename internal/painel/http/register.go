package http

import (
	"errors"
	"net/http"

	"github.com/painelhq/painel/internal/painel/service"
	"github.com/painelhq/painel/pkg/httpx"
	"github.com/painelhq/painel/pkg/painelsdk"
	"github.com/painelhq/painel/pkg/slogx"
)

// RegisterHandler creates new accounts.
type RegisterHandler struct {
	AuthService *service.AuthService
}

// HandleRegister handles POST /api/v1/auth/register
//
//	@Summary		Register a new user
//	@Description	Validates the payload (CPF check digits included) and creates the
//	@Description	account. Registration does not log the account in.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		painelsdk.RegisterRequest	true	"registration payload"
//	@Success		201		{object}	painelsdk.RegisterResponse
//	@Failure		400		{object}	httpx.ErrorBody	"validation failure"
//	@Failure		409		{object}	httpx.ErrorBody	"email, usuario or CPF already taken"
//	@Failure		422		{object}	httpx.ErrorBody	"weak password"
//	@Router			/api/v1/auth/register [post].
func (h *RegisterHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req painelsdk.RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		writeMalformedBody(w)
		return
	}

	u, err := h.AuthService.Register(ctx, service.RegisterInput{
		Nome:        req.Nome,
		CPF:         req.CPF,
		Funcao:      req.Funcao,
		Email:       req.Email,
		Usuario:     req.Usuario,
		Password:    req.Password,
		Perfil:      req.Perfil,
		Cadastrante: req.Cadastrante,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRegister):
			httpx.WriteError(w, http.StatusBadRequest, "Dados de cadastro inválidos")
		case errors.Is(err, service.ErrWeakPassword):
			v := service.ValidatePassword(req.Password)
			httpx.WriteValidationError(w, "Senha fraca", v.Errors)
		case errors.Is(err, service.ErrDuplicateUser):
			httpx.WriteError(w, http.StatusConflict, "Email, usuário ou CPF já cadastrado")
		default:
			log.Error("register failed", "err", err)
			httpx.WriteError(w, http.StatusInternalServerError, "Erro interno do servidor")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, painelsdk.RegisterResponse{
		ID:      u.ID,
		Email:   u.Email,
		Name:    u.Nome,
		Message: "Usuário cadastrado com sucesso",
	})
}
