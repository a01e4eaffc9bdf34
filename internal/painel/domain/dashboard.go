package domain

import "errors"

// Dashboard identifies one of the panel views.
type Dashboard string

const (
	DashboardFinanceiro  Dashboard = "financeiro"
	DashboardVendas      Dashboard = "vendas"
	DashboardClientes    Dashboard = "clientes"
	DashboardOperacional Dashboard = "operacional"
)

var ErrUnknownDashboard = errors.New("painel desconhecido")

// ParseDashboard validates a dashboard name from a URL path segment.
func ParseDashboard(name string) (Dashboard, error) {
	switch Dashboard(name) {
	case DashboardFinanceiro, DashboardVendas, DashboardClientes, DashboardOperacional:
		return Dashboard(name), nil
	}
	return "", ErrUnknownDashboard
}

// KPI is a single headline figure on a dashboard.
type KPI struct {
	Title string  `json:"title"`
	Value string  `json:"value"`
	Desc  string  `json:"desc,omitempty"`
	Delta float64 `json:"delta,omitempty"` // percent change vs previous period
}

// Series is a named sequence of monthly data points.
type Series struct {
	Label  string    `json:"label"`
	Points []float64 `json:"points"`
}

// DashboardSummary is the payload rendered by a dashboard page.
type DashboardSummary struct {
	Dashboard Dashboard `json:"dashboard"`
	KPIs      []KPI     `json:"kpis"`
	Series    []Series  `json:"series,omitempty"`
	Labels    []string  `json:"labels,omitempty"` // x axis labels for the series
}
