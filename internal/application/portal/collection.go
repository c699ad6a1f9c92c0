package portal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/jhoicas/gasable-portal/internal/domain/entity"
	"github.com/jhoicas/gasable-portal/internal/domain/query"
)

// Spec describe una colección: tabla remota, filtros reconocidos (en orden de aplicación,
// status primero) y su fuente demo.
type Spec[T entity.Record] struct {
	Table    string
	Filters  []string
	Fixtures func() []T
	ReadOnly bool // vistas: sin Create/Update/Delete
}

// Options opciones de lectura de una colección.
type Options struct {
	Filters       map[string]string
	Limit         int
	SortBy        string
	SortDirection query.Direction
}

// Query traduce las opciones al descriptor: solo filtros reconocidos y no vacíos, en el orden
// de la definición; orden solo si hay sort_by (dirección desc por defecto); límite al final.
func (o Options) Query(recognized []string) query.Query {
	q := query.New()
	for _, field := range recognized {
		if v := strings.TrimSpace(o.Filters[field]); v != "" {
			q = q.Eq(field, v)
		}
	}
	if o.SortBy != "" {
		dir := o.SortDirection
		if dir == "" {
			dir = query.Desc
		}
		q = q.OrderBy(o.SortBy, dir)
	}
	return q.WithLimit(o.Limit)
}

// Result estado observable de una colección: registros, carga y error (nil si no hay).
type Result[T any] struct {
	Records []T     `json:"records"`
	Loading bool    `json:"loading"`
	Error   *string `json:"error"`
}

// Collection lista tenant-scoped de un tipo de entidad. Cada instancia consulta por su cuenta
// (no hay caché compartida). Un contador de generación descarta resultados obsoletos: un fetch
// solo se aplica si ningún fetch posterior empezó y la colección no fue cerrada.
type Collection[T entity.Record] struct {
	p    *Portal
	spec Spec[T]
	opts Options

	mu      sync.Mutex
	gen     uint64
	closed  bool
	records []T
	loading bool
	err     *string
}

// NewCollection crea una colección sin cargar.
func NewCollection[T entity.Record](p *Portal, spec Spec[T], opts Options) *Collection[T] {
	return &Collection[T]{p: p, spec: spec, opts: opts, records: []T{}}
}

// Load primera carga; equivale a Refresh.
func (c *Collection[T]) Load(ctx context.Context) Result[T] {
	return c.Refresh(ctx)
}

// Refresh vuelve a consultar y devuelve el estado resultante.
func (c *Collection[T]) Refresh(ctx context.Context) Result[T] {
	token, ok := c.begin()
	if !ok {
		return c.Snapshot()
	}
	rows, err := fetch(ctx, c.p, c.spec.Table, c.opts.Query(c.spec.Filters), c.spec.Fixtures)
	if !c.commit(token, rows, err) {
		c.p.log.Debug().Str("table", c.spec.Table).Uint64("generation", token).Msg("resultado obsoleto descartado")
	}
	return c.Snapshot()
}

func (c *Collection[T]) begin() (uint64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return 0, false
	}
	c.gen++
	c.loading = true
	return c.gen, true
}

// commit aplica el resultado si token sigue siendo la generación vigente.
func (c *Collection[T]) commit(token uint64, rows []T, err error) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || token != c.gen {
		return false
	}
	c.loading = false
	if err != nil {
		msg := err.Error()
		c.err = &msg
		c.records = []T{}
		c.p.log.Error().Err(err).Str("table", c.spec.Table).Msg("consulta fallida")
		return true
	}
	c.err = nil
	c.records = rows
	return true
}

// Snapshot copia del estado actual.
func (c *Collection[T]) Snapshot() Result[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	records := make([]T, len(c.records))
	copy(records, c.records)
	var errCopy *string
	if c.err != nil {
		e := *c.err
		errCopy = &e
	}
	return Result[T]{Records: records, Loading: c.loading, Error: errCopy}
}

// Close invalida los fetch en curso; sus resultados ya no se aplican.
func (c *Collection[T]) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

// ErrReadOnly escritura sobre una vista.
var ErrReadOnly = errors.New("colección de solo lectura")

// Create inserta un registro. En demo no toca fixtures ni la lista: devuelve el registro con
// id y tenant asignados. En real sella company_id, inserta y agrega el resultado a la lista.
func (c *Collection[T]) Create(ctx context.Context, rec T) (T, error) {
	var zero T
	if c.spec.ReadOnly {
		return zero, ErrReadOnly
	}
	tenant, err := c.p.Tenant(ctx)
	if err != nil {
		return zero, err
	}
	base := rec.Base()
	if base.ID == "" {
		base.ID = uuid.NewString()
	}
	now := c.p.now()
	base.CompanyID = tenant
	base.CreatedAt, base.UpdatedAt = now, now
	if c.p.sc.Demo {
		return rec, nil
	}

	var out []T
	if err := c.p.backend.Insert(ctx, c.spec.Table, rec, &out); err != nil {
		return zero, err
	}
	created := rec
	if len(out) > 0 {
		created = out[0]
	}
	c.mu.Lock()
	if !c.closed {
		c.records = append(c.records, created)
	}
	c.mu.Unlock()
	return created, nil
}

// Update aplica patch al registro id. En demo devuelve una copia fusionada (si el registro
// existe en la lista o en los fixtures) sin persistir nada.
func (c *Collection[T]) Update(ctx context.Context, id string, patch map[string]any) (T, error) {
	var zero T
	if c.spec.ReadOnly {
		return zero, ErrReadOnly
	}
	tenant, err := c.p.Tenant(ctx)
	if err != nil {
		return zero, err
	}
	clean := make(map[string]any, len(patch)+1)
	for k, v := range patch {
		switch k {
		case "id", "company_id", "created_at":
			continue
		}
		clean[k] = v
	}
	clean["updated_at"] = c.p.now()

	if c.p.sc.Demo {
		current, ok := c.findDemo(id, tenant)
		if !ok {
			return zero, nil
		}
		return merge(current, clean)
	}

	var out []T
	if err := c.p.backend.Update(ctx, c.spec.Table, ownedBy(tenant, id), clean, &out); err != nil {
		return zero, err
	}
	if len(out) == 0 {
		return zero, nil
	}
	updated := out[0]
	c.mu.Lock()
	if !c.closed {
		for i, r := range c.records {
			if r.Base().ID == id {
				c.records[i] = updated
			}
		}
	}
	c.mu.Unlock()
	return updated, nil
}

// Delete borra el registro id. En demo es un no-op exitoso.
func (c *Collection[T]) Delete(ctx context.Context, id string) error {
	if c.spec.ReadOnly {
		return ErrReadOnly
	}
	tenant, err := c.p.Tenant(ctx)
	if err != nil {
		return err
	}
	if c.p.sc.Demo {
		return nil
	}
	if err := c.p.backend.Delete(ctx, c.spec.Table, ownedBy(tenant, id)); err != nil {
		return err
	}
	c.mu.Lock()
	kept := c.records[:0:0]
	for _, r := range c.records {
		if r.Base().ID != id {
			kept = append(kept, r)
		}
	}
	c.records = kept
	c.mu.Unlock()
	return nil
}

func (c *Collection[T]) findDemo(id, tenant string) (T, bool) {
	c.mu.Lock()
	for _, r := range c.records {
		if r.Base().ID == id {
			c.mu.Unlock()
			return r, true
		}
	}
	c.mu.Unlock()
	rows, err := query.Apply(c.spec.Fixtures(), query.New().Eq("id", id).WithLimit(1))
	if err != nil || len(rows) == 0 {
		var zero T
		return zero, false
	}
	rows[0].Base().CompanyID = tenant
	return rows[0], true
}

// merge fusiona patch sobre la forma JSON de rec y decodifica un registro nuevo.
func merge[T any](rec T, patch map[string]any) (T, error) {
	var out T
	raw, err := json.Marshal(rec)
	if err != nil {
		return out, err
	}
	fields := map[string]any{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return out, err
	}
	for k, v := range patch {
		fields[k] = v
	}
	merged, err := json.Marshal(fields)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(merged, &out); err != nil {
		return out, fmt.Errorf("patch inválido: %w", err)
	}
	return out, nil
}
