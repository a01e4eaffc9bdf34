package domain

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

var (
	ErrInvalidCPF     = errors.New("cpf inválido")
	ErrInvalidUsuario = errors.New("nome de usuário inválido")
	ErrInvalidEmail   = errors.New("email inválido")
)

var (
	usuarioPattern = regexp.MustCompile(`^[a-zA-Z0-9._-]+$`)
	emailPattern   = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

type User struct {
	ID           string
	Nome         string
	CPF          string // digits only, 11 chars
	Funcao       string
	Email        string // lowercased
	Usuario      string
	PasswordHash string     // argon2 encoded
	Perfil       string
	Cadastrante  string
	MFAEnabled   *time.Time // timestamp when MFA was enabled (nullable)
	MFASecret    *string    // TOTP secret (nullable, base32 encoded)
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin reports whether the user's perfil grants management access.
func (u User) IsAdmin() bool {
	switch strings.ToLower(u.Perfil) {
	case "administrador", "admin", "superuser":
		return true
	}
	return false
}

// NormalizeCPF strips formatting (dots, dash) and returns digits only.
func NormalizeCPF(cpf string) string {
	var b strings.Builder
	for _, r := range cpf {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FormatCPF renders an 11-digit CPF as 000.000.000-00. Anything else is
// returned unchanged.
func FormatCPF(cpf string) string {
	digits := NormalizeCPF(cpf)
	if len(digits) != 11 {
		return cpf
	}
	return digits[:3] + "." + digits[3:6] + "." + digits[6:9] + "-" + digits[9:]
}

// ValidateCPF checks the 11-digit length, rejects repeated-digit CPFs and
// verifies both check digits.
func ValidateCPF(cpf string) error {
	digits := NormalizeCPF(cpf)
	if len(digits) != 11 {
		return ErrInvalidCPF
	}
	if strings.Count(digits, string(digits[0])) == 11 {
		return ErrInvalidCPF
	}

	sum := 0
	for i := range 9 {
		sum += int(digits[i]-'0') * (10 - i)
	}
	d1 := 11 - sum%11
	if d1 >= 10 {
		d1 = 0
	}

	sum = 0
	for i := range 10 {
		sum += int(digits[i]-'0') * (11 - i)
	}
	d2 := 11 - sum%11
	if d2 >= 10 {
		d2 = 0
	}

	if int(digits[9]-'0') != d1 || int(digits[10]-'0') != d2 {
		return ErrInvalidCPF
	}
	return nil
}

// ValidateUsuario allows letters, digits, dots, hyphens and underscores,
// 3 to 200 chars.
func ValidateUsuario(usuario string) error {
	if len(usuario) < 3 || len(usuario) > 200 {
		return ErrInvalidUsuario
	}
	if !usuarioPattern.MatchString(usuario) {
		return ErrInvalidUsuario
	}
	return nil
}

// ValidateEmail does a shallow syntactic check. Deliverability is out of
// scope here.
func ValidateEmail(email string) error {
	if len(email) > 400 || !emailPattern.MatchString(email) {
		return ErrInvalidEmail
	}
	return nil
}

// NormalizeEmail lowercases and trims an email address for lookups.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
