package portal

import (
	"context"
	"fmt"

	"github.com/jhoicas/gasable-portal/internal/domain/entity"
	"github.com/jhoicas/gasable-portal/internal/domain/repository"
	"github.com/jhoicas/gasable-portal/internal/fixtures"
)

// DefaultPerformanceDays ventana por defecto de las métricas de desempeño.
const DefaultPerformanceDays = 30

// Performance indicadores de desempeño de los últimos days días (RPC get_performance_metrics).
func (p *Portal) Performance(ctx context.Context, days int) (*entity.PerformanceMetrics, error) {
	if days <= 0 {
		days = DefaultPerformanceDays
	}
	tenant, err := p.Tenant(ctx)
	if err != nil {
		return nil, err
	}
	if p.sc.Demo {
		m := fixtures.PerformanceMetrics(days)
		m.CompanyID = tenant
		return m, nil
	}
	var m entity.PerformanceMetrics
	if err := p.callScoped(ctx, repository.ProcGetPerformanceMetrics, map[string]any{"p_days": days}, &m); err != nil {
		return nil, fmt.Errorf("get_performance_metrics: %w", err)
	}
	if m.CompanyID == "" {
		m.CompanyID = tenant
	}
	if m.PeriodDays == 0 {
		m.PeriodDays = days
	}
	return &m, nil
}
