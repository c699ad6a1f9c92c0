// Package portal expone la capa de datos de doble origen: con el modo demo activo sirve los
// fixtures estáticos; en modo real resuelve el tenant y consulta el backend remoto. Ambos
// caminos devuelven exactamente las mismas formas de registro.
package portal

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/gasable-portal/internal/application/session"
	"github.com/jhoicas/gasable-portal/internal/domain"
	"github.com/jhoicas/gasable-portal/internal/domain/entity"
	"github.com/jhoicas/gasable-portal/internal/domain/query"
	"github.com/jhoicas/gasable-portal/internal/domain/repository"
	"github.com/jhoicas/gasable-portal/internal/fixtures"
)

// Deps dependencias compartidas entre peticiones.
type Deps struct {
	Backend repository.Backend
	Tenants *TenantCache // opcional; sin caché cada Portal resuelve una vez
	Log     zerolog.Logger
	Clock   func() time.Time
}

// Portal punto de entrada de la capa de datos para una sesión. El modo se recibe explícito
// (session.Context) y no se consulta de ningún estado global.
type Portal struct {
	sc      session.Context
	backend repository.Backend
	tenants *TenantCache
	log     zerolog.Logger
	clock   func() time.Time

	mu     sync.Mutex
	tenant string
}

// New crea el portal de una sesión.
func New(sc session.Context, deps Deps) *Portal {
	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}
	tenants := deps.Tenants
	if tenants == nil {
		tenants = NewTenantCache()
	}
	return &Portal{
		sc:      sc,
		backend: deps.Backend,
		tenants: tenants,
		log:     deps.Log,
		clock:   clock,
	}
}

// Demo informa si la sesión está en modo demo.
func (p *Portal) Demo() bool { return p.sc.Demo }

// Session contexto de sesión con el que se creó el portal.
func (p *Portal) Session() session.Context { return p.sc }

// now en modo demo el reloj se ancla a la fecha de referencia de los fixtures.
func (p *Portal) now() time.Time {
	if p.sc.Demo {
		return fixtures.ReferenceTime
	}
	return p.clock()
}

// TenantCache caché de tenant por identidad, válida durante la vida del proceso.
type TenantCache struct {
	mu sync.RWMutex
	m  map[string]string
}

// NewTenantCache crea una caché vacía.
func NewTenantCache() *TenantCache {
	return &TenantCache{m: make(map[string]string)}
}

func (c *TenantCache) get(identityID string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.m[identityID]
	return v, ok
}

func (c *TenantCache) put(identityID, companyID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m[identityID] = companyID
}

// Forget elimina la entrada de una identidad (cierre de sesión).
func (c *TenantCache) Forget(identityID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.m, identityID)
}

type userCompany struct {
	CompanyID *string `json:"company_id"`
}

// Tenant id de empresa de la sesión.
//
// Demo: el de la identidad simulada (o el de los fixtures). Real: el de los metadatos de la
// identidad y, si falta, la columna company_id de la fila users de la identidad. El resultado
// se cachea. Errores: ErrNotAuthenticated sin identidad, ErrCompanyNotFound sin empresa.
func (p *Portal) Tenant(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.tenant != "" {
		return p.tenant, nil
	}

	if p.sc.Demo {
		p.tenant = p.sc.CompanyID()
		if p.tenant == "" {
			p.tenant = fixtures.DemoCompanyID
		}
		return p.tenant, nil
	}

	id := p.sc.Identity
	if id == nil || id.ID == "" {
		return "", domain.ErrNotAuthenticated
	}
	if id.Metadata.CompanyID != "" {
		p.tenant = id.Metadata.CompanyID
		return p.tenant, nil
	}
	if cached, ok := p.tenants.get(id.ID); ok {
		p.tenant = cached
		return p.tenant, nil
	}

	var rows []userCompany
	q := query.New().Eq("id", id.ID).WithLimit(1)
	if err := p.backend.Select(ctx, repository.TableUsers, q, &rows); err != nil {
		return "", fmt.Errorf("buscar empresa del usuario: %w", err)
	}
	if len(rows) == 0 || rows[0].CompanyID == nil || *rows[0].CompanyID == "" {
		return "", domain.ErrCompanyNotFound
	}
	p.tenant = *rows[0].CompanyID
	p.tenants.put(id.ID, p.tenant)
	return p.tenant, nil
}

// tenantColumn columna de tenant en todas las tablas y vistas de colecciones.
const tenantColumn = "company_id"

// ownedBy condición de escritura sobre un registro del tenant.
func ownedBy(tenant, id string) query.Query {
	return query.New().Eq("id", id).Scope(tenantColumn, tenant)
}

// fetch lectura tenant-scoped común a todas las colecciones y agregados.
// Sin tenant resoluble el resultado es vacío y sin error.
func fetch[T entity.Record](ctx context.Context, p *Portal, table string, q query.Query, demo func() []T) ([]T, error) {
	tenant, err := p.Tenant(ctx)
	if err != nil {
		p.log.Warn().Err(err).Str("table", table).Msg("tenant no resuelto; resultado vacío")
		return []T{}, nil
	}
	if p.sc.Demo {
		return query.Apply(fixtures.Stamp(demo(), tenant), q)
	}
	rows := []T{}
	if err := p.backend.Select(ctx, table, q.Scope(tenantColumn, tenant), &rows); err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []T{}
	}
	return rows, nil
}

// callScoped invoca un RPC en nombre del tenant. Un tenant no resoluble es un error.
func (p *Portal) callScoped(ctx context.Context, proc string, args map[string]any, dest any) error {
	tenant, err := p.Tenant(ctx)
	if err != nil {
		return err
	}
	if args == nil {
		args = map[string]any{}
	}
	args["p_company_id"] = tenant
	return p.backend.Call(ctx, proc, args, dest)
}
