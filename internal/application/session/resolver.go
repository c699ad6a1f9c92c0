// Package session resuelve el modo (demo o real) y la identidad activa de cada sesión.
// El resultado es un Context explícito que se inyecta en la capa de datos.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/gasable-portal/internal/domain"
	"github.com/jhoicas/gasable-portal/internal/domain/entity"
	"github.com/jhoicas/gasable-portal/internal/domain/repository"
	"github.com/jhoicas/gasable-portal/internal/fixtures"
	"github.com/jhoicas/gasable-portal/pkg/jwt"
)

// Claves persistidas (sufijo ":" + id de sesión).
const (
	KeyDemoMode    = "gasable_demo_mode"
	KeyDemoSession = "gasable_demo_session"
	KeyDemoAccount = "gasable_demo_account" // sufijo ":" + email; no depende de la sesión
)

// DefaultDemoTTL vigencia de la sesión simulada si no se configura otra.
const DefaultDemoTTL = 24 * time.Hour

// Context modo e identidad de una sesión. Se construye una vez por petición.
type Context struct {
	Demo     bool
	Identity *entity.Identity
}

// CompanyID id de empresa declarado en los metadatos de la identidad ("" si no hay).
func (c Context) CompanyID() string {
	if c.Identity == nil {
		return ""
	}
	return c.Identity.Metadata.CompanyID
}

// Seed datos opcionales para sintetizar la identidad demo.
type Seed struct {
	FullName    string `json:"full_name"`
	Email       string `json:"email"`
	CompanyID   string `json:"company_id"`
	CompanyName string `json:"company_name"`
}

// Options configuración del resolver.
type Options struct {
	JWTSecret string
	Issuer    string
	DemoTTL   time.Duration
}

// Resolver lee y escribe las banderas de sesión. backend es opcional (solo track_demo_signup).
type Resolver struct {
	store   repository.FlagStore
	backend repository.Backend
	opts    Options
	log     zerolog.Logger
	now     func() time.Time
}

// NewResolver construye el resolver.
func NewResolver(store repository.FlagStore, backend repository.Backend, opts Options, log zerolog.Logger) *Resolver {
	if opts.DemoTTL <= 0 {
		opts.DemoTTL = DefaultDemoTTL
	}
	return &Resolver{store: store, backend: backend, opts: opts, log: log, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (r *Resolver) WithClock(now func() time.Time) *Resolver {
	r.now = now
	return r
}

func scoped(key, sessionID string) string { return key + ":" + sessionID }

// IsDemoMode bandera persistida, o identidad actual marcada como demo.
// Un fallo del almacenamiento se registra y cuenta como bandera ausente.
func (r *Resolver) IsDemoMode(ctx context.Context, sessionID string, current *entity.Identity) bool {
	if current.IsDemo() {
		return true
	}
	if sessionID == "" {
		return false
	}
	v, found, err := r.store.Get(ctx, scoped(KeyDemoMode, sessionID))
	if err != nil {
		r.log.Warn().Err(err).Str("session_id", sessionID).Msg("no se pudo leer la bandera demo")
		return false
	}
	return found && string(v) == "true"
}

// SimulatedIdentity identidad demo guardada para la sesión, si existe y es legible.
func (r *Resolver) SimulatedIdentity(ctx context.Context, sessionID string) (*entity.Identity, bool) {
	if sessionID == "" {
		return nil, false
	}
	v, found, err := r.store.Get(ctx, scoped(KeyDemoSession, sessionID))
	if err != nil {
		r.log.Warn().Err(err).Str("session_id", sessionID).Msg("no se pudo leer la sesión demo")
		return nil, false
	}
	if !found {
		return nil, false
	}
	var id entity.Identity
	if err := json.Unmarshal(v, &id); err != nil {
		r.log.Warn().Err(err).Str("session_id", sessionID).Msg("sesión demo ilegible")
		return nil, false
	}
	return &id, true
}

// Context combina bandera e identidades: en modo demo prevalece la identidad simulada.
func (r *Resolver) Context(ctx context.Context, sessionID string, current *entity.Identity) Context {
	if !r.IsDemoMode(ctx, sessionID, current) {
		return Context{Demo: false, Identity: current}
	}
	if sim, ok := r.SimulatedIdentity(ctx, sessionID); ok {
		return Context{Demo: true, Identity: sim}
	}
	return Context{Demo: true, Identity: current}
}

// SetDemoMode activa o desactiva el modo demo de la sesión.
// Al activar sin identidad simulada previa, sintetiza una (la síntesis nunca falla) y la guarda.
// Al desactivar borra la bandera y la identidad simulada.
// Los fallos de almacenamiento se registran; el modo queda efectivamente en false.
func (r *Resolver) SetDemoMode(ctx context.Context, sessionID string, enable bool, seed *Seed) (*entity.Identity, error) {
	if sessionID == "" {
		return nil, domain.NewValidationError("session_id", "sesión requerida")
	}
	logger := r.log.With().Str("session_id", sessionID).Bool("enable", enable).Logger()

	if !enable {
		if err := r.store.Delete(ctx, scoped(KeyDemoMode, sessionID)); err != nil {
			logger.Error().Err(err).Msg("no se pudo borrar la bandera demo")
		}
		if err := r.store.Delete(ctx, scoped(KeyDemoSession, sessionID)); err != nil {
			logger.Error().Err(err).Msg("no se pudo borrar la sesión demo")
		}
		return nil, nil
	}

	identity, ok := r.SimulatedIdentity(ctx, sessionID)
	if !ok {
		identity = r.synthesize(seed)
		if err := r.saveIdentity(ctx, sessionID, identity); err != nil {
			logger.Error().Err(err).Msg("no se pudo guardar la sesión demo")
			return identity, nil
		}
	}
	if err := r.store.Set(ctx, scoped(KeyDemoMode, sessionID), []byte("true")); err != nil {
		logger.Error().Err(err).Msg("no se pudo guardar la bandera demo")
	}
	logger.Info().Str("identity_id", identity.ID).Msg("modo demo activado")
	return identity, nil
}

func (r *Resolver) saveIdentity(ctx context.Context, sessionID string, id *entity.Identity) error {
	b, err := json.Marshal(id)
	if err != nil {
		return err
	}
	return r.store.Set(ctx, scoped(KeyDemoSession, sessionID), b)
}

// synthesize crea una identidad simulada completa a partir de la semilla (opcional).
func (r *Resolver) synthesize(seed *Seed) *entity.Identity {
	var s Seed
	if seed != nil {
		s = *seed
	}
	id := uuid.NewString()
	if strings.TrimSpace(s.Email) == "" {
		s.Email = "demo-" + id[:8] + entity.DemoEmailMarker
	}
	if strings.TrimSpace(s.FullName) == "" {
		s.FullName = "Demo Supplier"
	}
	if s.CompanyID == "" {
		s.CompanyID = uuid.NewString()
	}
	if strings.TrimSpace(s.CompanyName) == "" {
		s.CompanyName = fixtures.DemoCompanyName
	}
	now := r.now()
	identity := &entity.Identity{
		ID:    id,
		Email: strings.ToLower(strings.TrimSpace(s.Email)),
		Metadata: entity.IdentityMetadata{
			FullName:    s.FullName,
			CompanyID:   s.CompanyID,
			CompanyName: s.CompanyName,
			Demo:        true,
		},
		CreatedAt: now,
	}
	identity.Session = r.issueToken(identity, now)
	return identity
}

// issueToken firma un token con el mismo formato que los reales. Sin secreto configurado se usa
// un token opaco aleatorio.
func (r *Resolver) issueToken(id *entity.Identity, now time.Time) *entity.SessionToken {
	meta := jwt.UserMetadata{
		FullName:    id.Metadata.FullName,
		CompanyID:   id.Metadata.CompanyID,
		CompanyName: id.Metadata.CompanyName,
		Demo:        true,
	}
	token, exp, err := jwt.Generate(r.opts.JWTSecret, r.opts.Issuer, id.ID, id.Email, meta, r.opts.DemoTTL)
	if err != nil {
		if !errors.Is(err, jwt.ErrEmptySecret) {
			r.log.Warn().Err(err).Msg("firma de token demo fallida; se usa token opaco")
		}
		token, exp = "demo-"+uuid.NewString(), now.Add(r.opts.DemoTTL)
	}
	return &entity.SessionToken{AccessToken: token, TokenType: "bearer", ExpiresAt: exp}
}
