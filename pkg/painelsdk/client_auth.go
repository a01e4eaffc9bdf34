package painelsdk

import (
	"context"
	"net/http"
)

// Login submits credentials. On success the token cookies land in the
// jar. When the account has MFA enabled the response carries
// RequiresMFA=true and no session exists yet.
func (c *Client) Login(ctx context.Context, email, password string) (LoginResponse, error) {
	var out LoginResponse
	err := c.doJSON(ctx, http.MethodPost, "/api/v1/auth/login", LoginRequest{
		Email:    email,
		Password: password,
	}, &out, false)
	return out, err
}

// LoginMFA answers the pending challenge with a TOTP code and completes
// the session.
func (c *Client) LoginMFA(ctx context.Context, code string) (LoginResponse, error) {
	var out LoginResponse
	err := c.doJSON(ctx, http.MethodPost, "/api/v1/auth/login/mfa", MFARequest{Code: code}, &out, false)
	return out, err
}

// Register creates a new account. It does not log the account in.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (RegisterResponse, error) {
	var out RegisterResponse
	err := c.doJSON(ctx, http.MethodPost, "/api/v1/auth/register", req, &out, false)
	return out, err
}

// Logout revokes the session server-side and clears the cookies. The
// server treats logout as always-successful.
func (c *Client) Logout(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodPost, "/api/v1/auth/logout", nil, nil, false)
}

// Profile returns the authenticated user. A 401 here fires the
// OnUnauthenticated hook.
func (c *Client) Profile(ctx context.Context) (UserResponse, error) {
	return c.profile(ctx, true)
}

// profile lets the session store probe the endpoint without triggering
// the hook; its startup flow handles the failure itself.
func (c *Client) profile(ctx context.Context, fireHook bool) (UserResponse, error) {
	var out UserResponse
	err := c.doJSON(ctx, http.MethodGet, "/api/v1/auth/profile", nil, &out, fireHook)
	return out, err
}

// Refresh rotates the refresh token cookie and mints a new access token.
// Deliberately does not fire the hook: the caller decides what a failed
// refresh means.
func (c *Client) Refresh(ctx context.Context) (UserResponse, error) {
	var out UserResponse
	err := c.doJSON(ctx, http.MethodPost, "/api/v1/auth/refresh", nil, &out, false)
	return out, err
}

// RequestPasswordReset starts the reset flow. The server answers the
// same way whether or not the email exists.
func (c *Client) RequestPasswordReset(ctx context.Context, email string) error {
	return c.doJSON(ctx, http.MethodPost, "/api/v1/auth/password/reset", PasswordResetRequest{Email: email}, nil, false)
}

// ConfirmPasswordReset redeems a reset token with a new password.
func (c *Client) ConfirmPasswordReset(ctx context.Context, token, newPassword string) error {
	return c.doJSON(ctx, http.MethodPost, "/api/v1/auth/password/reset/confirm", PasswordResetConfirm{
		Token:       token,
		NewPassword: newPassword,
	}, nil, false)
}

// ValidatePassword grades a candidate password without storing anything.
func (c *Client) ValidatePassword(ctx context.Context, password string) (PasswordValidationResponse, error) {
	var out PasswordValidationResponse
	err := c.doJSON(ctx, http.MethodPost, "/api/v1/auth/password/validate", PasswordValidateRequest{Password: password}, &out, false)
	return out, err
}

// ChangePassword rotates the password of the authenticated user.
func (c *Client) ChangePassword(ctx context.Context, current, next string) error {
	return c.doJSON(ctx, http.MethodPost, "/api/v1/auth/password/change", ChangePasswordRequest{
		CurrentPassword: current,
		NewPassword:     next,
	}, nil, true)
}

// EnrollMFA generates the TOTP secret and provisioning URL for the
// authenticated user. MFA stays disabled until VerifyMFA succeeds.
func (c *Client) EnrollMFA(ctx context.Context) (MFAEnrollResponse, error) {
	var out MFAEnrollResponse
	err := c.doJSON(ctx, http.MethodPost, "/api/v1/auth/mfa/enroll", nil, &out, true)
	return out, err
}

// VerifyMFA confirms the enrollment with a first valid code and turns
// MFA on.
func (c *Client) VerifyMFA(ctx context.Context, code string) error {
	return c.doJSON(ctx, http.MethodPost, "/api/v1/auth/mfa/verify", MFARequest{Code: code}, nil, true)
}

// DisableMFA turns MFA off after a final valid code.
func (c *Client) DisableMFA(ctx context.Context, code string) error {
	return c.doJSON(ctx, http.MethodPost, "/api/v1/auth/mfa/disable", MFARequest{Code: code}, nil, true)
}
