package http

import (
	"encoding/json"
	"net/http"

	"github.com/painelhq/painel/internal/painel/domain"
	"github.com/painelhq/painel/pkg/httpx"
	"github.com/painelhq/painel/pkg/painelsdk"
)

// decodeJSON parses a request body, rejecting unknown garbage early.
func decodeJSON(r *http.Request, dst any) error {
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	return dec.Decode(dst)
}

func toUserResponse(u domain.User) painelsdk.UserResponse {
	return painelsdk.UserResponse{
		ID:         u.ID,
		Email:      u.Email,
		Name:       u.Nome,
		Perfil:     u.Perfil,
		Funcao:     u.Funcao,
		Usuario:    u.Usuario,
		MFAEnabled: u.MFAEnabled != nil,
	}
}

// writeMalformedBody is the shared 400 for undecodable JSON.
func writeMalformedBody(w http.ResponseWriter) {
	httpx.WriteError(w, http.StatusBadRequest, "Corpo da requisição inválido")
}
