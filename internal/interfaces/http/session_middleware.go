package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/gasable-portal/internal/application/dto"
	"github.com/jhoicas/gasable-portal/internal/application/portal"
	"github.com/jhoicas/gasable-portal/internal/application/session"
	"github.com/jhoicas/gasable-portal/internal/domain/entity"
	"github.com/jhoicas/gasable-portal/internal/domain/repository"
	"github.com/jhoicas/gasable-portal/pkg/jwt"
)

// Locals keys de la sesión en Fiber.
const (
	LocalSessionID = "session_id"
	LocalIdentity  = "identity" // identidad real del token (nil si no hay)
	LocalSession   = "session"
	LocalPortal    = "portal"
)

// HeaderSessionID alternativa a la cookie para clientes sin cookies.
const HeaderSessionID = "X-Session-ID"

// DefaultCookieName nombre de la cookie de sesión si no se configura otro.
const DefaultCookieName = "gasable_session"

// SessionDeps dependencias del middleware de sesión.
type SessionDeps struct {
	Resolver   *session.Resolver
	Portal     portal.Deps
	JWTSecret  string
	CookieName string
	// BackendFor devuelve el backend que actúa con el token del usuario (RLS). Opcional.
	BackendFor func(accessToken string) repository.Backend
	Log        zerolog.Logger
}

// SessionMiddleware identifica la sesión (cookie o X-Session-ID; se crea si falta), valida el
// Bearer opcional y deja en Locals el session.Context y el Portal de la petición.
func SessionMiddleware(deps SessionDeps) fiber.Handler {
	cookieName := deps.CookieName
	if cookieName == "" {
		cookieName = DefaultCookieName
	}
	return func(c *fiber.Ctx) error {
		sid := c.Cookies(cookieName)
		if sid == "" {
			sid = strings.TrimSpace(c.Get(HeaderSessionID))
		}
		if sid == "" {
			sid = uuid.NewString()
			c.Cookie(&fiber.Cookie{
				Name:     cookieName,
				Value:    sid,
				Path:     "/",
				HTTPOnly: true,
				SameSite: fiber.CookieSameSiteLaxMode,
			})
		}

		current, token, err := bearerIdentity(c.Get(fiber.HeaderAuthorization), deps.JWTSecret)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: err.Error()})
		}

		sc := deps.Resolver.Context(c.UserContext(), sid, current)
		pd := deps.Portal
		if !sc.Demo && token != "" && deps.BackendFor != nil {
			pd.Backend = deps.BackendFor(token)
		}
		pd.Log = deps.Log.With().Str("session_id", sid).Bool("demo", sc.Demo).Logger()

		c.Locals(LocalSessionID, sid)
		c.Locals(LocalIdentity, current)
		c.Locals(LocalSession, sc)
		c.Locals(LocalPortal, portal.New(sc, pd))
		return c.Next()
	}
}

type tokenError string

func (e tokenError) Error() string { return string(e) }

// bearerIdentity sin cabecera no hay identidad real (y no es error).
func bearerIdentity(header, secret string) (*entity.Identity, string, error) {
	if header == "" {
		return nil, "", nil
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil, "", tokenError("formato: Bearer <token>")
	}
	tok := strings.TrimSpace(parts[1])
	if tok == "" {
		return nil, "", tokenError("token vacío")
	}
	claims, err := jwt.Parse(secret, tok)
	if err != nil {
		return nil, "", tokenError("token inválido o expirado")
	}
	id := &entity.Identity{
		ID:    claims.Subject,
		Email: claims.Email,
		Metadata: entity.IdentityMetadata{
			FullName:    claims.UserMetadata.FullName,
			CompanyID:   claims.UserMetadata.CompanyID,
			CompanyName: claims.UserMetadata.CompanyName,
			Demo:        claims.UserMetadata.Demo,
		},
		Session: &entity.SessionToken{AccessToken: tok, TokenType: "bearer"},
	}
	if claims.ExpiresAt != nil {
		id.Session.ExpiresAt = claims.ExpiresAt.Time
	}
	if claims.IssuedAt != nil {
		id.CreatedAt = claims.IssuedAt.Time
	}
	return id, tok, nil
}

// GetSessionID id de la sesión (después de SessionMiddleware).
func GetSessionID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalSessionID).(string)
	return s
}

// GetIdentity identidad real del token, nil si la petición no trae Bearer.
func GetIdentity(c *fiber.Ctx) *entity.Identity {
	id, _ := c.Locals(LocalIdentity).(*entity.Identity)
	return id
}

// GetSession contexto de sesión resuelto.
func GetSession(c *fiber.Ctx) session.Context {
	sc, _ := c.Locals(LocalSession).(session.Context)
	return sc
}

// GetPortal capa de datos de la petición.
func GetPortal(c *fiber.Ctx) *portal.Portal {
	p, _ := c.Locals(LocalPortal).(*portal.Portal)
	return p
}
