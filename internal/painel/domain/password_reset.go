package domain

import "time"

// PasswordReset models a single-use reset token record. Only the
// fingerprint of the token is stored.
type PasswordReset struct {
	ID        string
	UserID    string
	TokenHash string // deterministic fingerprint (base64url SHA-256)
	Used      bool
	ExpiresAt time.Time
	CreatedAt time.Time
}
