package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/painelhq/painel/internal/painel/domain"
	"github.com/painelhq/painel/internal/painel/store"
	"github.com/painelhq/painel/pkg/cryptox"
	"github.com/painelhq/painel/pkg/idx"
)

// RegisterInput is the full registration payload. Cadastrante records who
// created the account.
type RegisterInput struct {
	Nome        string
	CPF         string
	Funcao      string
	Email       string
	Usuario     string
	Password    string
	Perfil      string
	Cadastrante string
}

// Register validates the payload, hashes the password and inserts the
// user. Duplicate email, usuario or CPF yields ErrDuplicateUser.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (domain.User, error) {
	now := time.Now().UTC()

	trimFields(&in.Nome, &in.CPF, &in.Funcao, &in.Email, &in.Usuario, &in.Perfil, &in.Cadastrante)

	if err := validateRegister(in); err != nil {
		return domain.User{}, err
	}

	if v := ValidatePassword(in.Password); !v.Valid {
		return domain.User{}, ErrWeakPassword
	}

	hash, err := cryptox.HashPassword(in.Password)
	if err != nil {
		return domain.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	// The very first account bootstraps the installation and must be
	// able to manage the rest, whatever perfil the form asked for.
	empty, err := s.Store.Users().IsEmpty(ctx)
	if err != nil {
		return domain.User{}, err
	}
	if empty {
		in.Perfil = "Administrador"
	}

	u := domain.User{
		ID:           idx.New().String(),
		Nome:         in.Nome,
		CPF:          domain.NormalizeCPF(in.CPF),
		Funcao:       in.Funcao,
		Email:        domain.NormalizeEmail(in.Email),
		Usuario:      in.Usuario,
		PasswordHash: hash,
		Perfil:       in.Perfil,
		Cadastrante:  in.Cadastrante,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.Store.Users().CreateUser(ctx, u); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, ErrDuplicateUser
		}
		return domain.User{}, err
	}

	return u, nil
}

func validateRegister(in RegisterInput) error {
	if len(in.Nome) < 2 || len(in.Nome) > 300 {
		return fmt.Errorf("%w: nome", ErrInvalidRegister)
	}
	if err := domain.ValidateCPF(in.CPF); err != nil {
		return fmt.Errorf("%w: cpf", ErrInvalidRegister)
	}
	if len(in.Funcao) < 2 || len(in.Funcao) > 300 {
		return fmt.Errorf("%w: funcao", ErrInvalidRegister)
	}
	if err := domain.ValidateEmail(in.Email); err != nil {
		return fmt.Errorf("%w: email", ErrInvalidRegister)
	}
	if err := domain.ValidateUsuario(in.Usuario); err != nil {
		return fmt.Errorf("%w: usuario", ErrInvalidRegister)
	}
	if len(in.Perfil) < 2 || len(in.Perfil) > 300 {
		return fmt.Errorf("%w: perfil", ErrInvalidRegister)
	}
	if len(in.Cadastrante) < 2 || len(in.Cadastrante) > 400 {
		return fmt.Errorf("%w: cadastrante", ErrInvalidRegister)
	}
	return nil
}
