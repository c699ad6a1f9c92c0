package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gasable-portal/internal/application/dto"
	"github.com/jhoicas/gasable-portal/internal/application/portal"
	"github.com/jhoicas/gasable-portal/internal/application/session"
	"github.com/jhoicas/gasable-portal/internal/domain/entity"
)

// SessionHandler alterna el modo demo y gestiona las cuentas demo de la sesión.
type SessionHandler struct {
	resolver *session.Resolver
	tenants  *portal.TenantCache
}

// NewSessionHandler construye el handler.
func NewSessionHandler(resolver *session.Resolver, tenants *portal.TenantCache) *SessionHandler {
	return &SessionHandler{resolver: resolver, tenants: tenants}
}

func sessionResponse(c *fiber.Ctx, demo bool, id *entity.Identity) dto.SessionResponse {
	return dto.SessionResponse{SessionID: GetSessionID(c), Demo: demo, Identity: dto.NewIdentityResponse(id)}
}

// stored vuelve a resolver la sesión tras un cambio de modo: informa lo que quedó guardado,
// que es lo que verá la próxima petición (modo real si el almacenamiento falló).
func (h *SessionHandler) stored(c *fiber.Ctx) dto.SessionResponse {
	sc := h.resolver.Context(c.UserContext(), GetSessionID(c), GetIdentity(c))
	return sessionResponse(c, sc.Demo, sc.Identity)
}

// Get godoc
// @Summary      Estado de la sesión
// @Tags         session
// @Produce      json
// @Success      200  {object}  dto.SessionResponse
// @Router       /api/session [get]
func (h *SessionHandler) Get(c *fiber.Ctx) error {
	sc := GetSession(c)
	return c.JSON(sessionResponse(c, sc.Demo, sc.Identity))
}

// EnableDemo godoc
// @Summary      Activar modo demo
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body  dto.EnableDemoRequest  false  "Semilla de la identidad demo"
// @Success      200   {object}  dto.SessionResponse
// @Router       /api/session/demo [post]
func (h *SessionHandler) EnableDemo(c *fiber.Ctx) error {
	var seed *session.Seed
	if len(c.Body()) > 0 {
		var in dto.EnableDemoRequest
		if err := c.BodyParser(&in); err != nil {
			return badBody(c)
		}
		seed = &session.Seed{FullName: in.FullName, Email: in.Email, CompanyID: in.CompanyID, CompanyName: in.CompanyName}
	}
	if _, err := h.resolver.SetDemoMode(c.UserContext(), GetSessionID(c), true, seed); err != nil {
		return writeError(c, err)
	}
	return c.JSON(h.stored(c))
}

// DisableDemo godoc
// @Summary      Desactivar modo demo
// @Tags         session
// @Produce      json
// @Success      200  {object}  dto.SessionResponse
// @Router       /api/session/demo [delete]
func (h *SessionHandler) DisableDemo(c *fiber.Ctx) error {
	if _, err := h.resolver.SetDemoMode(c.UserContext(), GetSessionID(c), false, nil); err != nil {
		return writeError(c, err)
	}
	return c.JSON(h.stored(c))
}

// Register godoc
// @Summary      Registrar cuenta demo
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterDemoRequest  true  "Datos de la cuenta"
// @Success      201   {object}  dto.SessionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/session/demo/register [post]
func (h *SessionHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterDemoRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	id, err := h.resolver.RegisterDemo(c.UserContext(), GetSessionID(c), session.RegisterInput{
		Email:           in.Email,
		FullName:        in.FullName,
		CompanyName:     in.CompanyName,
		Password:        in.Password,
		ConfirmPassword: in.ConfirmPassword,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(sessionResponse(c, true, id))
}

// SignIn godoc
// @Summary      Ingresar con una cuenta demo
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SignInRequest  true  "Credenciales"
// @Success      200   {object}  dto.SessionResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/session/demo/sign-in [post]
func (h *SessionHandler) SignIn(c *fiber.Ctx) error {
	var in dto.SignInRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	id, err := h.resolver.SignInDemo(c.UserContext(), GetSessionID(c), in.Email, in.Password)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(sessionResponse(c, true, id))
}

// SignOut godoc
// @Summary      Cerrar sesión
// @Tags         session
// @Success      204
// @Router       /api/session/sign-out [post]
func (h *SessionHandler) SignOut(c *fiber.Ctx) error {
	if err := h.resolver.SignOut(c.UserContext(), GetSessionID(c)); err != nil {
		return writeError(c, err)
	}
	if id := GetSession(c).Identity; id != nil && h.tenants != nil {
		h.tenants.Forget(id.ID)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
