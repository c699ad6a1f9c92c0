package portal

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/gasable-portal/internal/domain/entity"
	"github.com/jhoicas/gasable-portal/internal/domain/query"
	"github.com/jhoicas/gasable-portal/internal/domain/repository"
	"github.com/jhoicas/gasable-portal/internal/fixtures"
)

// DefaultDashboardDays período por defecto del dashboard.
const DefaultDashboardDays = 30

// DashboardMetrics métricas del período actual frente al anterior de igual duración.
type DashboardMetrics struct {
	PeriodDays        int             `json:"period_days"`
	PeriodStart       time.Time       `json:"period_start"`
	PeriodEnd         time.Time       `json:"period_end"`
	TotalOrders       int             `json:"total_orders"`
	PendingOrders     int             `json:"pending_orders"`
	Revenue           decimal.Decimal `json:"revenue"`
	AverageOrderValue decimal.Decimal `json:"average_order_value"`
	ActiveLocations   int             `json:"active_locations"`
	OrdersChange      float64         `json:"orders_change"`  // % vs período anterior
	RevenueChange     float64         `json:"revenue_change"` // % vs período anterior
	Partial           bool            `json:"partial"`        // alguna sub-consulta falló
}

// Dashboard calcula las métricas con tres consultas en paralelo (pedidos del período, pedidos
// del período anterior y sucursales activas). Cada consulta fallida aporta un parcial vacío.
func (p *Portal) Dashboard(ctx context.Context, days int) DashboardMetrics {
	if days <= 0 {
		days = DefaultDashboardDays
	}
	end := p.now()
	start := end.Add(-time.Duration(days) * 24 * time.Hour)
	prevStart := start.Add(-time.Duration(days) * 24 * time.Hour)

	type ordersResult struct {
		orders []*entity.Order
		err    error
	}
	type branchesResult struct {
		branches []*entity.Branch
		err      error
	}

	currentCh := make(chan ordersResult, 1)
	previousCh := make(chan ordersResult, 1)
	branchesCh := make(chan branchesResult, 1)

	go func() {
		q := query.New().Where("created_at", query.OpGte, start)
		rows, err := fetch(ctx, p, repository.TableOrders, q, fixtures.Orders)
		currentCh <- ordersResult{rows, err}
	}()
	go func() {
		q := query.New().
			Where("created_at", query.OpGte, prevStart).
			Where("created_at", query.OpLt, start)
		rows, err := fetch(ctx, p, repository.TableOrders, q, fixtures.Orders)
		previousCh <- ordersResult{rows, err}
	}()
	go func() {
		q := query.New().Eq("status", entity.BranchStatusActive)
		rows, err := fetch(ctx, p, repository.TableBranches, q, fixtures.Branches)
		branchesCh <- branchesResult{rows, err}
	}()

	current := <-currentCh
	previous := <-previousCh
	branches := <-branchesCh

	m := DashboardMetrics{PeriodDays: days, PeriodStart: start, PeriodEnd: end}
	for name, err := range map[string]error{
		"pedidos del período":  current.err,
		"pedidos del anterior": previous.err,
		"sucursales":           branches.err,
	} {
		if err != nil {
			m.Partial = true
			p.log.Warn().Err(err).Str("subquery", name).Msg("dashboard: sub-consulta fallida")
		}
	}

	curRevenue, curPaid := revenue(current.orders)
	prevRevenue, _ := revenue(previous.orders)

	m.TotalOrders = len(current.orders)
	m.ActiveLocations = len(branches.branches)
	m.Revenue = curRevenue
	for _, o := range current.orders {
		if o.Status == entity.OrderStatusPending {
			m.PendingOrders++
		}
	}
	if curPaid > 0 {
		m.AverageOrderValue = curRevenue.Div(decimal.NewFromInt(int64(curPaid))).Round(2)
	}
	m.OrdersChange = percentChange(decimal.NewFromInt(int64(len(previous.orders))), decimal.NewFromInt(int64(m.TotalOrders)))
	m.RevenueChange = percentChange(prevRevenue, curRevenue)
	return m
}

// revenue suma total_amount de los pedidos no cancelados y devuelve cuántos suman.
func revenue(orders []*entity.Order) (decimal.Decimal, int) {
	total := decimal.Zero
	n := 0
	for _, o := range orders {
		if o.Status == entity.OrderStatusCancelled {
			continue
		}
		total = total.Add(o.TotalAmount)
		n++
	}
	return total, n
}

// percentChange variación porcentual redondeada a un decimal. Sin base: 100 si hay actividad, 0 si no.
func percentChange(prev, cur decimal.Decimal) float64 {
	if prev.IsZero() {
		if cur.IsPositive() {
			return 100
		}
		return 0
	}
	pct, _ := cur.Sub(prev).Div(prev).Mul(decimal.NewFromInt(100)).Round(1).Float64()
	return pct
}
