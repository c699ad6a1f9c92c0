package portal

import (
	"github.com/jhoicas/gasable-portal/internal/domain/entity"
	"github.com/jhoicas/gasable-portal/internal/domain/repository"
	"github.com/jhoicas/gasable-portal/internal/fixtures"
)

// Filtros reconocidos por entidad; status siempre primero.
var (
	StoreSpec = Spec[*entity.Store]{
		Table:    repository.TableStores,
		Filters:  []string{"status", "category", "city"},
		Fixtures: fixtures.Stores,
	}
	BranchSpec = Spec[*entity.Branch]{
		Table:    repository.TableBranches,
		Filters:  []string{"status", "store_id", "city"},
		Fixtures: fixtures.Branches,
	}
	ProductSpec = Spec[*entity.Product]{
		Table:    repository.TableProducts,
		Filters:  []string{"status", "category", "store_id"},
		Fixtures: fixtures.Products,
	}
	OrderSpec = Spec[*entity.Order]{
		Table:    repository.TableOrders,
		Filters:  []string{"status", "payment_status", "store_id", "branch_id"},
		Fixtures: fixtures.Orders,
	}
	InvoiceSpec = Spec[*entity.Invoice]{
		Table:    repository.TableInvoices,
		Filters:  []string{"status", "order_id"},
		Fixtures: fixtures.Invoices,
	}
	TicketSpec = Spec[*entity.Ticket]{
		Table:    repository.TableTickets,
		Filters:  []string{"status", "priority", "category"},
		Fixtures: fixtures.Tickets,
	}
	CampaignSpec = Spec[*entity.Campaign]{
		Table:    repository.TableCampaigns,
		Filters:  []string{"status", "type"},
		Fixtures: fixtures.Campaigns,
	}
	CertificationSpec = Spec[*entity.Certification]{
		Table:    repository.TableCertifications,
		Filters:  []string{"status", "type"},
		Fixtures: fixtures.Certifications,
	}
	EmployeeSpec = Spec[*entity.Employee]{
		Table:    repository.TableEmployees,
		Filters:  []string{"status", "role", "branch_id"},
		Fixtures: fixtures.Employees,
	}

	ActiveProductSpec = Spec[*entity.Product]{
		Table:    repository.ViewActiveProducts,
		Filters:  []string{"category", "store_id"},
		Fixtures: func() []*entity.Product { return fixtures.ActiveProducts(fixtures.Products()) },
		ReadOnly: true,
	}
	OrderSummarySpec = Spec[*entity.OrderSummary]{
		Table:   repository.ViewOrderSummaries,
		Filters: []string{"status", "payment_status", "store_id"},
		Fixtures: func() []*entity.OrderSummary {
			return fixtures.OrderSummaries(fixtures.Orders(), fixtures.Stores())
		},
		ReadOnly: true,
	}
	TicketSummarySpec = Spec[*entity.TicketSummary]{
		Table:   repository.ViewTicketSummaries,
		Filters: []string{"status", "priority", "category"},
		Fixtures: func() []*entity.TicketSummary {
			return fixtures.TicketSummaries(fixtures.Tickets(), fixtures.TicketMessages())
		},
		ReadOnly: true,
	}
)

func (p *Portal) Stores(opts Options) *Collection[*entity.Store] {
	return NewCollection(p, StoreSpec, opts)
}

func (p *Portal) Branches(opts Options) *Collection[*entity.Branch] {
	return NewCollection(p, BranchSpec, opts)
}

func (p *Portal) Products(opts Options) *Collection[*entity.Product] {
	return NewCollection(p, ProductSpec, opts)
}

func (p *Portal) Orders(opts Options) *Collection[*entity.Order] {
	return NewCollection(p, OrderSpec, opts)
}

func (p *Portal) Invoices(opts Options) *Collection[*entity.Invoice] {
	return NewCollection(p, InvoiceSpec, opts)
}

func (p *Portal) Tickets(opts Options) *Collection[*entity.Ticket] {
	return NewCollection(p, TicketSpec, opts)
}

func (p *Portal) Campaigns(opts Options) *Collection[*entity.Campaign] {
	return NewCollection(p, CampaignSpec, opts)
}

func (p *Portal) Certifications(opts Options) *Collection[*entity.Certification] {
	return NewCollection(p, CertificationSpec, opts)
}

func (p *Portal) Employees(opts Options) *Collection[*entity.Employee] {
	return NewCollection(p, EmployeeSpec, opts)
}

// ActiveProducts vista de productos activos.
func (p *Portal) ActiveProducts(opts Options) *Collection[*entity.Product] {
	return NewCollection(p, ActiveProductSpec, opts)
}

// OrderSummaries vista de pedidos con nombre de tienda y número de líneas.
func (p *Portal) OrderSummaries(opts Options) *Collection[*entity.OrderSummary] {
	return NewCollection(p, OrderSummarySpec, opts)
}

// TicketSummaries vista de tickets con conteo de mensajes.
func (p *Portal) TicketSummaries(opts Options) *Collection[*entity.TicketSummary] {
	return NewCollection(p, TicketSummarySpec, opts)
}
