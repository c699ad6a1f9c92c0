package http

import (
	nethttp "net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/jhoicas/gasable-portal/internal/application/billing"
	"github.com/jhoicas/gasable-portal/internal/application/dto"
	"github.com/jhoicas/gasable-portal/internal/application/portal"
	"github.com/jhoicas/gasable-portal/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Session   SessionDeps
	Documents *billing.DocumentsUseCase
	Metrics   nethttp.Handler // opcional; expone /metrics
	Service   string
	Backend   string // driver configurado, informado en /health
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(dto.HealthResponse{Status: "ok", Service: deps.Service, Backend: deps.Backend})
	})
	if deps.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics))
	}

	api := app.Group("/api", SessionMiddleware(deps.Session))

	// Sesión y modo demo
	sessionHandler := NewSessionHandler(deps.Session.Resolver, deps.Session.Portal.Tenants)
	sess := api.Group("/session")
	sess.Get("/", sessionHandler.Get)
	sess.Post("/demo", sessionHandler.EnableDemo)
	sess.Delete("/demo", sessionHandler.DisableDemo)
	sess.Post("/demo/register", sessionHandler.Register)
	sess.Post("/demo/sign-in", sessionHandler.SignIn)
	sess.Post("/sign-out", sessionHandler.SignOut)

	// Colecciones tenant-scoped
	NewCollectionHandler("store", (*portal.Portal).Stores, func() *entity.Store { return &entity.Store{} }).Mount(api, "/stores", false)
	NewCollectionHandler("branch", (*portal.Portal).Branches, func() *entity.Branch { return &entity.Branch{} }).Mount(api, "/branches", false)
	NewCollectionHandler("product", (*portal.Portal).Products, func() *entity.Product { return &entity.Product{} }).Mount(api, "/products", false)
	NewCollectionHandler("order", (*portal.Portal).Orders, func() *entity.Order { return &entity.Order{} }).Mount(api, "/orders", false)
	NewCollectionHandler("invoice", (*portal.Portal).Invoices, func() *entity.Invoice { return &entity.Invoice{} }).Mount(api, "/invoices", false)
	NewCollectionHandler("ticket", (*portal.Portal).Tickets, func() *entity.Ticket { return &entity.Ticket{} }).Mount(api, "/tickets", false)
	NewCollectionHandler("campaign", (*portal.Portal).Campaigns, func() *entity.Campaign { return &entity.Campaign{} }).Mount(api, "/campaigns", false)
	NewCollectionHandler("certification", (*portal.Portal).Certifications, func() *entity.Certification { return &entity.Certification{} }).Mount(api, "/certifications", false)
	NewCollectionHandler("employee", (*portal.Portal).Employees, func() *entity.Employee { return &entity.Employee{} }).Mount(api, "/employees", false)

	// Vistas (solo lectura)
	views := api.Group("/views")
	NewCollectionHandler("active_product", (*portal.Portal).ActiveProducts, func() *entity.Product { return &entity.Product{} }).Mount(views, "/active-products", true)
	NewCollectionHandler("order_summary", (*portal.Portal).OrderSummaries, func() *entity.OrderSummary { return &entity.OrderSummary{} }).Mount(views, "/order-summaries", true)
	NewCollectionHandler("ticket_summary", (*portal.Portal).TicketSummaries, func() *entity.TicketSummary { return &entity.TicketSummary{} }).Mount(views, "/ticket-summaries", true)

	portalHandler := NewPortalHandler()
	api.Get("/company", portalHandler.Company)
	api.Put("/company", portalHandler.UpdateCompany)
	api.Get("/tickets/:id/messages", portalHandler.TicketMessages)
	api.Post("/tickets/:id/messages", portalHandler.PostTicketMessage)
	api.Post("/employees/invite", portalHandler.InviteEmployee)
	api.Get("/subscription", portalHandler.Subscription)
	api.Get("/subscription/banner", portalHandler.Banner)
	api.Get("/subscription/tiers", portalHandler.Tiers)
	api.Get("/dashboard/metrics", portalHandler.Dashboard)
	api.Get("/performance", portalHandler.Performance)

	// Facturas: detalle y exportación
	invoiceHandler := NewInvoiceHandler(deps.Documents)
	api.Get("/invoices/:id", invoiceHandler.GetByID)
	api.Get("/invoices/:id/pdf", invoiceHandler.PDF)
	api.Get("/invoices/:id/xml", invoiceHandler.XML)
}
