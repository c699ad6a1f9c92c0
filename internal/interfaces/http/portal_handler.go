package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gasable-portal/internal/application/dto"
	"github.com/jhoicas/gasable-portal/internal/application/portal"
	"github.com/jhoicas/gasable-portal/internal/domain/entity"
)

// PortalHandler rutas de la capa de datos que no son colecciones simples.
type PortalHandler struct{}

// NewPortalHandler construye el handler.
func NewPortalHandler() *PortalHandler { return &PortalHandler{} }

// Company godoc
// @Summary      Perfil de la empresa
// @Tags         company
// @Produce      json
// @Success      200  {object}  entity.Company
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/company [get]
func (h *PortalHandler) Company(c *fiber.Ctx) error {
	out, err := GetPortal(c).Company(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdateCompany godoc
// @Summary      Editar el perfil de la empresa
// @Tags         company
// @Accept       json
// @Produce      json
// @Param        body  body  entity.CompanyUpdate  true  "Campos a cambiar"
// @Success      200   {object}  entity.Company
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/company [put]
func (h *PortalHandler) UpdateCompany(c *fiber.Ctx) error {
	var in entity.CompanyUpdate
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := GetPortal(c).UpdateCompany(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// TicketMessages godoc
// @Summary      Mensajes de un ticket
// @Tags         tickets
// @Produce      json
// @Param        id   path  string  true  "ID del ticket"
// @Success      200  {object}  portal.MessagesResult
// @Failure      502  {object}  portal.MessagesResult
// @Router       /api/tickets/{id}/messages [get]
func (h *PortalHandler) TicketMessages(c *fiber.Ctx) error {
	id := c.Params("id")
	res := GetPortal(c).TicketMessages(c.UserContext(), &id)
	if res.Error != nil {
		return c.Status(fiber.StatusBadGateway).JSON(res)
	}
	return c.JSON(res)
}

// PostTicketMessage godoc
// @Summary      Responder un ticket
// @Tags         tickets
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID del ticket"
// @Param        body  body  dto.PostMessageRequest  true  "Mensaje"
// @Success      201   {object}  entity.TicketMessage
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/tickets/{id}/messages [post]
func (h *PortalHandler) PostTicketMessage(c *fiber.Ctx) error {
	var in dto.PostMessageRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := GetPortal(c).PostTicketMessage(c.UserContext(), c.Params("id"), in.Message)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// InviteEmployee godoc
// @Summary      Invitar a un miembro del equipo
// @Tags         employees
// @Accept       json
// @Produce      json
// @Param        body  body  dto.InviteEmployeeRequest  true  "Invitación"
// @Success      201   {object}  entity.Employee
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/employees/invite [post]
func (h *PortalHandler) InviteEmployee(c *fiber.Ctx) error {
	var in dto.InviteEmployeeRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := GetPortal(c).InviteEmployee(c.UserContext(), portal.InviteInput{
		Email:    in.Email,
		FullName: in.FullName,
		Role:     in.Role,
		BranchID: in.BranchID,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Subscription godoc
// @Summary      Suscripción vigente con uso del mes
// @Tags         subscription
// @Produce      json
// @Success      200  {object}  portal.SubscriptionView
// @Router       /api/subscription [get]
func (h *PortalHandler) Subscription(c *fiber.Ctx) error {
	view, err := GetPortal(c).Subscription(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(view)
}

// Banner godoc
// @Summary      Aviso de uso alto
// @Tags         subscription
// @Produce      json
// @Success      200  {object}  subscription.Banner
// @Router       /api/subscription/banner [get]
func (h *PortalHandler) Banner(c *fiber.Ctx) error {
	view, err := GetPortal(c).Subscription(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(view.Banner())
}

// Tiers godoc
// @Summary      Catálogo de tiers para comparar planes
// @Tags         subscription
// @Produce      json
// @Success      200  {array}  subscription.DisplayTier
// @Router       /api/subscription/tiers [get]
func (h *PortalHandler) Tiers(c *fiber.Ctx) error {
	return c.JSON(GetPortal(c).Tiers(c.UserContext()))
}

// Dashboard godoc
// @Summary      Métricas del dashboard
// @Tags         dashboard
// @Produce      json
// @Param        days  query  int  false  "Días del período"  default(30)
// @Success      200   {object}  portal.DashboardMetrics
// @Router       /api/dashboard/metrics [get]
func (h *PortalHandler) Dashboard(c *fiber.Ctx) error {
	return c.JSON(GetPortal(c).Dashboard(c.UserContext(), c.QueryInt("days", portal.DefaultDashboardDays)))
}

// Performance godoc
// @Summary      Indicadores de desempeño
// @Tags         dashboard
// @Produce      json
// @Param        days  query  int  false  "Ventana en días"  default(30)
// @Success      200   {object}  entity.PerformanceMetrics
// @Router       /api/performance [get]
func (h *PortalHandler) Performance(c *fiber.Ctx) error {
	out, err := GetPortal(c).Performance(c.UserContext(), c.QueryInt("days", portal.DefaultPerformanceDays))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
