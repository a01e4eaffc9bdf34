package http

import (
	"errors"
	"net/http"

	"github.com/painelhq/painel/internal/painel/service"
	"github.com/painelhq/painel/internal/painel/store"
	"github.com/painelhq/painel/pkg/httpx"
	"github.com/painelhq/painel/pkg/painelsdk"
	"github.com/painelhq/painel/pkg/slogx"
)

// UsersHandler exposes the admin-only account management endpoints.
type UsersHandler struct {
	AuthService *service.AuthService
	UserService *service.UserService
}

// HandleCreate handles POST /api/v1/users
//
//	@Summary		Create a user
//	@Description	Same validation as self-registration, but performed by an
//	@Description	administrator from the user management page.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			request	body		painelsdk.RegisterRequest	true	"account payload"
//	@Success		201		{object}	painelsdk.RegisterResponse
//	@Failure		400		{object}	httpx.ErrorBody	"validation failure"
//	@Failure		409		{object}	httpx.ErrorBody	"email, usuario or CPF already taken"
//	@Failure		422		{object}	httpx.ErrorBody	"weak password"
//	@Security		CookieAuth
//	@Router			/api/v1/users [post].
func (h *UsersHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req painelsdk.RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		writeMalformedBody(w)
		return
	}

	// Record which admin created the account.
	if claims, ok := httpx.ClaimsFromContext(ctx); ok && req.Cadastrante == "" {
		req.Cadastrante = claims.Usuario
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
	switch {
	case err == nil:
		httpx.WriteJSON(w, http.StatusCreated, painelsdk.RegisterResponse{
			ID:      u.ID,
			Email:   u.Email,
			Name:    u.Nome,
			Message: "Usuário cadastrado com sucesso",
		})
	case errors.Is(err, service.ErrInvalidRegister):
		httpx.WriteError(w, http.StatusBadRequest, "Dados de cadastro inválidos")
	case errors.Is(err, service.ErrWeakPassword):
		v := service.ValidatePassword(req.Password)
		httpx.WriteValidationError(w, "Senha fraca", v.Errors)
	case errors.Is(err, service.ErrDuplicateUser):
		httpx.WriteError(w, http.StatusConflict, "Email, usuário ou CPF já cadastrado")
	default:
		log.Error("create user failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "Erro interno do servidor")
	}
}

// HandleList handles GET /api/v1/users
//
//	@Summary		List users
//	@Tags			Users
//	@Produce		json
//	@Success		200	{array}		painelsdk.UserResponse
//	@Failure		401	{object}	httpx.ErrorBody	"not authenticated"
//	@Failure		403	{object}	httpx.ErrorBody	"not an administrator"
//	@Security		CookieAuth
//	@Router			/api/v1/users [get].
func (h *UsersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	users, err := h.UserService.ListUsers(ctx)
	if err != nil {
		log.Error("list users failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "Erro interno do servidor")
		return
	}

	out := make([]painelsdk.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleGet handles GET /api/v1/users/{id}
//
//	@Summary		Fetch a user
//	@Tags			Users
//	@Produce		json
//	@Param			id	path		string	true	"user id"
//	@Success		200	{object}	painelsdk.UserResponse
//	@Failure		404	{object}	httpx.ErrorBody	"unknown user"
//	@Security		CookieAuth
//	@Router			/api/v1/users/{id} [get].
func (h *UsersHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	id := r.PathValue("id")
	u, err := h.UserService.GetUserByID(ctx, id)
	switch {
	case err == nil:
		httpx.NoCache(w)
		httpx.WriteJSON(w, http.StatusOK, toUserResponse(u))
	case errors.Is(err, store.ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, "Usuário não encontrado")
	default:
		log.Error("get user failed", "err", err, "target_id", id)
		httpx.WriteError(w, http.StatusInternalServerError, "Erro interno do servidor")
	}
}

// HandleUpdate handles PUT /api/v1/users/{id}
//
//	@Summary		Update a user's profile fields
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string						true	"user id"
//	@Param			request	body		painelsdk.UpdateUserRequest	true	"fields to apply"
//	@Success		200		{object}	painelsdk.UserResponse
//	@Failure		400		{object}	httpx.ErrorBody	"invalid fields"
//	@Failure		404		{object}	httpx.ErrorBody	"unknown user"
//	@Security		CookieAuth
//	@Router			/api/v1/users/{id} [put].
func (h *UsersHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	id := r.PathValue("id")

	var req painelsdk.UpdateUserRequest
	if err := decodeJSON(r, &req); err != nil {
		writeMalformedBody(w)
		return
	}

	err := h.UserService.UpdateProfile(ctx, id, req.Nome, req.Funcao, req.Perfil)
	switch {
	case err == nil:
	case errors.Is(err, service.ErrInvalidRegister):
		httpx.WriteError(w, http.StatusBadRequest, "Campos de perfil inválidos")
		return
	case errors.Is(err, store.ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, "Usuário não encontrado")
		return
	default:
		log.Error("update user failed", "err", err, "target_id", id)
		httpx.WriteError(w, http.StatusInternalServerError, "Erro interno do servidor")
		return
	}

	u, err := h.UserService.GetUserByID(ctx, id)
	if err != nil {
		log.Error("reload updated user failed", "err", err, "target_id", id)
		httpx.WriteError(w, http.StatusInternalServerError, "Erro interno do servidor")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toUserResponse(u))
}

// HandleDelete handles DELETE /api/v1/users/{id}
//
//	@Summary		Delete a user
//	@Description	Removes the account. Sessions and pending resets cascade.
//	@Description	Administrators cannot delete their own account.
//	@Tags			Users
//	@Produce		json
//	@Param			id	path		string	true	"user id"
//	@Success		200	{object}	painelsdk.MessageResponse
//	@Failure		400	{object}	httpx.ErrorBody	"self deletion"
//	@Failure		404	{object}	httpx.ErrorBody	"unknown user"
//	@Security		CookieAuth
//	@Router			/api/v1/users/{id} [delete].
func (h *UsersHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	id := r.PathValue("id")
	if id == httpx.UserIDFromContext(ctx) {
		httpx.WriteError(w, http.StatusBadRequest, "Não é possível excluir a própria conta")
		return
	}

	err := h.UserService.DeleteUser(ctx, id)
	switch {
	case err == nil:
		httpx.WriteJSON(w, http.StatusOK, painelsdk.MessageResponse{Message: "Usuário excluído com sucesso"})
	case errors.Is(err, store.ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, "Usuário não encontrado")
	default:
		log.Error("delete user failed", "err", err, "target_id", id)
		httpx.WriteError(w, http.StatusInternalServerError, "Erro interno do servidor")
	}
}
