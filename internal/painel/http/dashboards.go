package http

import (
	"errors"
	"net/http"

	"github.com/painelhq/painel/internal/painel/domain"
	"github.com/painelhq/painel/internal/painel/service"
	"github.com/painelhq/painel/pkg/httpx"
	"github.com/painelhq/painel/pkg/painelsdk"
	"github.com/painelhq/painel/pkg/slogx"
)

// DashboardsHandler serves the aggregated figures behind each admin page.
type DashboardsHandler struct {
	DashboardService *service.DashboardService
}

// HandleSummary handles GET /api/v1/dashboards/{name}
//
//	@Summary		Dashboard summary
//	@Description	Returns the KPIs and series for one of the known dashboards:
//	@Description	financeiro, vendas, clientes or operacional.
//	@Tags			Dashboards
//	@Produce		json
//	@Param			name	path		string	true	"dashboard name"
//	@Success		200		{object}	painelsdk.DashboardResponse
//	@Failure		404		{object}	httpx.ErrorBody	"unknown dashboard"
//	@Security		CookieAuth
//	@Router			/api/v1/dashboards/{name} [get].
func (h *DashboardsHandler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	name := r.PathValue("name")
	summary, err := h.DashboardService.Summary(ctx, name)
	if err != nil {
		if errors.Is(err, domain.ErrUnknownDashboard) {
			httpx.WriteError(w, http.StatusNotFound, "Dashboard não encontrado")
			return
		}
		log.Error("dashboard summary failed", "err", err, "dashboard", name)
		httpx.WriteError(w, http.StatusInternalServerError, "Erro interno do servidor")
		return
	}

	out := painelsdk.DashboardResponse{
		Dashboard: string(summary.Dashboard),
		KPIs:      make([]painelsdk.KPI, 0, len(summary.KPIs)),
		Labels:    summary.Labels,
	}
	for _, k := range summary.KPIs {
		out.KPIs = append(out.KPIs, painelsdk.KPI{Title: k.Title, Value: k.Value, Desc: k.Desc, Delta: k.Delta})
	}
	for _, s := range summary.Series {
		out.Series = append(out.Series, painelsdk.Series{Label: s.Label, Points: s.Points})
	}

	httpx.WriteJSON(w, http.StatusOK, out)
}
