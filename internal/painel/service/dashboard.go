package service

import (
	"context"
	"fmt"

	"github.com/painelhq/painel/internal/painel/domain"
)

// DashboardProvider supplies the figures behind a dashboard view. The
// static provider below ships as the default; a real data warehouse
// integration implements the same interface.
type DashboardProvider interface {
	Summary(ctx context.Context, d domain.Dashboard) (domain.DashboardSummary, error)
}

type DashboardService struct {
	Provider DashboardProvider
}

// Summary resolves a dashboard by name and fetches its figures.
func (s *DashboardService) Summary(ctx context.Context, name string) (domain.DashboardSummary, error) {
	d, err := domain.ParseDashboard(name)
	if err != nil {
		return domain.DashboardSummary{}, err
	}
	summary, err := s.Provider.Summary(ctx, d)
	if err != nil {
		return domain.DashboardSummary{}, fmt.Errorf("dashboard %s: %w", d, err)
	}
	return summary, nil
}

// StaticDashboardProvider serves fixed monthly figures. It keeps the API
// usable before a data source is wired in.
type StaticDashboardProvider struct{}

var monthLabels = []string{"Jan", "Fev", "Mar", "Abr", "Mai", "Jun", "Jul", "Ago", "Set", "Out", "Nov", "Dez"}

func (StaticDashboardProvider) Summary(_ context.Context, d domain.Dashboard) (domain.DashboardSummary, error) {
	switch d {
	case domain.DashboardFinanceiro:
		receita := []float64{12000, 15000, 18000, 16000, 22000, 25000, 28000, 32000, 35000, 38000, 42000, 45000}
		custos := []float64{8000, 9000, 10000, 9500, 12000, 13000, 14000, 15000, 16000, 17000, 18000, 19000}
		return domain.DashboardSummary{
			Dashboard: d,
			KPIs: []domain.KPI{
				{Title: "Receita Total", Value: "R$ 328.000", Desc: "Acumulado no ano", Delta: 275},
				{Title: "Custos Totais", Value: "R$ 160.500", Desc: "Acumulado no ano"},
				{Title: "Lucro", Value: "R$ 167.500", Desc: "Receita menos custos"},
				{Title: "Margem Média", Value: "51,1%", Desc: "Lucro sobre receita"},
			},
			Series: []domain.Series{
				{Label: "Receita", Points: receita},
				{Label: "Custos", Points: custos},
			},
			Labels: monthLabels,
		}, nil
	case domain.DashboardVendas:
		return domain.DashboardSummary{
			Dashboard: d,
			KPIs: []domain.KPI{
				{Title: "Vendas no Mês", Value: "1.245", Delta: 12.4},
				{Title: "Ticket Médio", Value: "R$ 312,00"},
				{Title: "Taxa de Conversão", Value: "3,8%"},
			},
			Series: []domain.Series{
				{Label: "Vendas", Points: []float64{820, 932, 901, 934, 1290, 1330, 1320, 1190, 1280, 1245, 1310, 1402}},
			},
			Labels: monthLabels,
		}, nil
	case domain.DashboardClientes:
		return domain.DashboardSummary{
			Dashboard: d,
			KPIs: []domain.KPI{
				{Title: "Clientes Ativos", Value: "3.482", Delta: 4.2},
				{Title: "Novos Clientes", Value: "186", Desc: "Últimos 30 dias"},
				{Title: "Churn", Value: "1,9%"},
			},
			Series: []domain.Series{
				{Label: "Novos Clientes", Points: []float64{120, 132, 101, 134, 90, 230, 210, 186, 195, 204, 178, 186}},
			},
			Labels: monthLabels,
		}, nil
	case domain.DashboardOperacional:
		return domain.DashboardSummary{
			Dashboard: d,
			KPIs: []domain.KPI{
				{Title: "Pedidos Processados", Value: "8.921"},
				{Title: "SLA Cumprido", Value: "97,2%", Delta: 0.8},
				{Title: "Tempo Médio", Value: "2,4 dias"},
			},
			Series: []domain.Series{
				{Label: "Pedidos", Points: []float64{620, 680, 710, 690, 750, 790, 810, 760, 820, 780, 760, 751}},
			},
			Labels: monthLabels,
		}, nil
	}
	return domain.DashboardSummary{}, domain.ErrUnknownDashboard
}
