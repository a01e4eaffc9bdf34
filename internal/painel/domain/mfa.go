package domain

import "time"

// MFAChallenge represents a pending second-factor step between a valid
// password login and token issuance.
type MFAChallenge struct {
	ID        string // ULID, doubles as the challenge cookie value
	UserID    string
	SessionID string // session ID reserved for the eventual token pair
	Attempts  int    // failed code submissions, capped at MFAMaxAttempts
	CreatedAt time.Time
	ExpiresAt time.Time
}

// MFAMaxAttempts caps failed code submissions per challenge.
const MFAMaxAttempts = 5

// MFAEnrollment is handed back by MFA setup so the client can render a
// QR code.
type MFAEnrollment struct {
	Secret  string // base32 encoded TOTP secret
	QRCode  string // otpauth:// provisioning URL
	Issuer  string
	Account string // user email
}
