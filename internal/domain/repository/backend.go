package repository

import (
	"context"

	"github.com/jhoicas/gasable-portal/internal/domain/query"
)

// Tablas y vistas del backend remoto.
const (
	TableStores         = "stores"
	TableBranches       = "branches"
	TableProducts       = "products"
	TableOrders         = "orders"
	TableInvoices       = "invoices"
	TableTickets        = "tickets"
	TableTicketMessages = "ticket_messages"
	TableCampaigns      = "campaigns"
	TableCertifications = "certifications"
	TableEmployees      = "company_members"
	TableCompanies      = "companies"
	TableUsers          = "users"
	TableSubscriptions  = "subscriptions"
	TablePlans          = "subscription_plans"
	TableTiers          = "subscription_tiers"
	TableUsage          = "usage_records"

	ViewActiveProducts  = "active_products"
	ViewOrderSummaries  = "order_summaries"
	ViewTicketSummaries = "ticket_summaries"
)

// Procedimientos remotos (RPC).
const (
	ProcAddCompanyMember      = "add_company_member"
	ProcGetPerformanceMetrics = "get_performance_metrics"
	ProcTrackDemoSignup       = "track_demo_signup"
)

// Backend define el puerto hacia el backend relacional remoto (PostgREST o Postgres directo).
// dest siempre es un puntero a slice: las filas se decodifican desde su forma JSON.
// El backend no conoce tenants: el filtro company_id lo agrega quien llama, también en escrituras.
type Backend interface {
	// Select ejecuta filtros, orden y límite del descriptor sobre la tabla o vista.
	Select(ctx context.Context, table string, q query.Query, dest any) error
	// Insert inserta una fila y devuelve la representación almacenada en dest.
	Insert(ctx context.Context, table string, row any, dest any) error
	// Update aplica patch a las filas que cumplen todos los filtros de match y devuelve su
	// representación en dest (vacío si ninguna cumple). match sin filtros es un error.
	Update(ctx context.Context, table string, match query.Query, patch any, dest any) error
	// Delete borra las filas que cumplen match; domain.ErrNotFound si no borró ninguna.
	Delete(ctx context.Context, table string, match query.Query) error
	// Call invoca un procedimiento remoto; dest puede ser nil si no interesa el resultado.
	Call(ctx context.Context, procedure string, args map[string]any, dest any) error
}
