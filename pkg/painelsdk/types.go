package painelsdk

// UserResponse is the wire shape of a user as consumed by the dashboard.
type UserResponse struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	Perfil     string `json:"perfil"`
	Funcao     string `json:"funcao"`
	Usuario    string `json:"usuario"`
	MFAEnabled bool   `json:"mfa_enabled"`
}

// LoginRequest is the credentials payload for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse reports the outcome of a login attempt. When RequiresMFA
// is true the session is not established yet and LoginMFA must follow.
type LoginResponse struct {
	Message     string        `json:"message"`
	User        *UserResponse `json:"user,omitempty"`
	RequiresMFA bool          `json:"requires_mfa"`
}

// MFARequest carries the six-digit TOTP code for POST /auth/login/mfa
// and the MFA management endpoints.
type MFARequest struct {
	Code string `json:"code"`
}

// RegisterRequest is the full registration payload.
type RegisterRequest struct {
	Nome        string `json:"nome"`
	CPF         string `json:"cpf"`
	Funcao      string `json:"funcao"`
	Email       string `json:"email"`
	Usuario     string `json:"usuario"`
	Password    string `json:"password"`
	Perfil      string `json:"perfil"`
	Cadastrante string `json:"cadastrante"`
}

// RegisterResponse confirms account creation.
type RegisterResponse struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Message string `json:"message"`
}

// MessageResponse is the generic acknowledgement body.
type MessageResponse struct {
	Message string `json:"message"`
}

// PasswordResetRequest starts the reset flow for an email.
type PasswordResetRequest struct {
	Email string `json:"email"`
}

// PasswordResetConfirm redeems a reset token.
type PasswordResetConfirm struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

// PasswordValidateRequest asks the server to grade a candidate password.
type PasswordValidateRequest struct {
	Password string `json:"password"`
}

// PasswordValidationResponse grades a candidate password.
type PasswordValidationResponse struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
	Score    int      `json:"score"`
}

// ChangePasswordRequest rotates the password of the authenticated user.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// MFAEnrollResponse carries the TOTP provisioning material. Shown once.
type MFAEnrollResponse struct {
	Secret  string `json:"secret"`
	QRCode  string `json:"qr_code"`
	Issuer  string `json:"issuer"`
	Account string `json:"account"`
}

// UpdateUserRequest mutates a user's editable profile fields.
type UpdateUserRequest struct {
	Nome   string `json:"nome"`
	Funcao string `json:"funcao"`
	Perfil string `json:"perfil"`
}

// KPI is a headline dashboard figure.
type KPI struct {
	Title string  `json:"title"`
	Value string  `json:"value"`
	Desc  string  `json:"desc,omitempty"`
	Delta float64 `json:"delta,omitempty"`
}

// Series is a named sequence of data points.
type Series struct {
	Label  string    `json:"label"`
	Points []float64 `json:"points"`
}

// DashboardResponse is the payload behind a dashboard page.
type DashboardResponse struct {
	Dashboard string   `json:"dashboard"`
	KPIs      []KPI    `json:"kpis"`
	Series    []Series `json:"series,omitempty"`
	Labels    []string `json:"labels,omitempty"`
}

// HealthResponse is returned by the livez and readyz probes.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks details per-dependency readiness.
type HealthChecks struct {
	Database string `json:"database"`
}
