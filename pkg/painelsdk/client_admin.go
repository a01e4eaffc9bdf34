package painelsdk

import (
	"context"
	"net/http"
)

// ListUsers returns every account. Admin only.
func (c *Client) ListUsers(ctx context.Context) ([]UserResponse, error) {
	var out []UserResponse
	err := c.doJSON(ctx, http.MethodGet, "/api/v1/users", nil, &out, true)
	return out, err
}

// CreateUser registers an account on behalf of an administrator.
func (c *Client) CreateUser(ctx context.Context, req RegisterRequest) (RegisterResponse, error) {
	var out RegisterResponse
	err := c.doJSON(ctx, http.MethodPost, "/api/v1/users", req, &out, true)
	return out, err
}

// GetUser fetches one account by id. Admin only.
func (c *Client) GetUser(ctx context.Context, id string) (UserResponse, error) {
	var out UserResponse
	err := c.doJSON(ctx, http.MethodGet, "/api/v1/users/"+id, nil, &out, true)
	return out, err
}

// UpdateUser mutates nome, funcao and perfil. Admin only.
func (c *Client) UpdateUser(ctx context.Context, id string, req UpdateUserRequest) error {
	return c.doJSON(ctx, http.MethodPut, "/api/v1/users/"+id, req, nil, true)
}

// DeleteUser removes an account. Admin only.
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/v1/users/"+id, nil, nil, true)
}

// Dashboard fetches the summary for one of the panel views
// (financeiro, vendas, clientes, operacional).
func (c *Client) Dashboard(ctx context.Context, name string) (DashboardResponse, error) {
	var out DashboardResponse
	err := c.doJSON(ctx, http.MethodGet, "/api/v1/dashboards/"+name, nil, &out, true)
	return out, err
}

// Livez checks liveness.
func (c *Client) Livez(ctx context.Context) (HealthResponse, error) {
	var out HealthResponse
	err := c.doJSON(ctx, http.MethodGet, "/livez", nil, &out, false)
	return out, err
}

// Readyz checks readiness including the database.
func (c *Client) Readyz(ctx context.Context) (HealthResponse, error) {
	var out HealthResponse
	err := c.doJSON(ctx, http.MethodGet, "/readyz", nil, &out, false)
	return out, err
}
