package http

import (
	"reflect"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gasable-portal/internal/application/dto"
	"github.com/jhoicas/gasable-portal/internal/application/portal"
	"github.com/jhoicas/gasable-portal/internal/domain/entity"
	"github.com/jhoicas/gasable-portal/internal/domain/query"
)

// Parámetros de listado que no son filtros.
var reservedParams = map[string]bool{"limit": true, "sort_by": true, "sort_direction": true}

// CollectionHandler CRUD genérico sobre una colección tenant-scoped del portal.
type CollectionHandler[T entity.Record] struct {
	name  string
	open  func(p *portal.Portal, opts portal.Options) *portal.Collection[T]
	blank func() T
}

// NewCollectionHandler open es el método del Portal que abre la colección, ej. (*portal.Portal).Stores.
func NewCollectionHandler[T entity.Record](name string, open func(*portal.Portal, portal.Options) *portal.Collection[T], blank func() T) *CollectionHandler[T] {
	return &CollectionHandler[T]{name: name, open: open, blank: blank}
}

// listOptions filtros = cualquier query param no reservado; la colección ignora los no reconocidos.
func listOptions(c *fiber.Ctx) portal.Options {
	opts := portal.Options{
		Filters: map[string]string{},
		Limit:   c.QueryInt("limit", 0),
		SortBy:  strings.TrimSpace(c.Query("sort_by")),
	}
	if d := c.Query("sort_direction"); d != "" {
		opts.SortDirection = query.ParseDirection(d)
	}
	for k, v := range c.Queries() {
		if !reservedParams[k] {
			opts.Filters[k] = v
		}
	}
	return opts
}

// List godoc
// @Summary      Listar registros de la colección
// @Description  Filtros por query param (status, category, store_id...), sort_by, sort_direction y limit.
// @Tags         collections
// @Produce      json
// @Param        limit           query  int     false  "Límite"
// @Param        sort_by         query  string  false  "Columna de orden"
// @Param        sort_direction  query  string  false  "asc | desc"  default(desc)
// @Success      200  {object}  map[string]interface{}
// @Failure      502  {object}  map[string]interface{}
// @Router       /api/{collection} [get]
func (h *CollectionHandler[T]) List(c *fiber.Ctx) error {
	res := h.open(GetPortal(c), listOptions(c)).Load(c.UserContext())
	if res.Error != nil {
		return c.Status(fiber.StatusBadGateway).JSON(res)
	}
	return c.JSON(res)
}

// Create godoc
// @Summary      Crear registro
// @Tags         collections
// @Accept       json
// @Produce      json
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/{collection} [post]
func (h *CollectionHandler[T]) Create(c *fiber.Ctx) error {
	rec := h.blank()
	if err := c.BodyParser(rec); err != nil {
		return badBody(c)
	}
	out, err := h.open(GetPortal(c), portal.Options{}).Create(c.UserContext(), rec)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar registro
// @Tags         collections
// @Accept       json
// @Produce      json
// @Param        id   path  string  true  "ID del registro"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/{collection}/{id} [put]
func (h *CollectionHandler[T]) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	var patch map[string]any
	if err := c.BodyParser(&patch); err != nil || len(patch) == 0 {
		return badBody(c)
	}
	out, err := h.open(GetPortal(c), portal.Options{}).Update(c.UserContext(), id, patch)
	if err != nil {
		return writeError(c, err)
	}
	if isNil(out) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: h.name + " no encontrado"})
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar registro
// @Tags         collections
// @Param        id   path  string  true  "ID del registro"
// @Success      204
// @Router       /api/{collection}/{id} [delete]
func (h *CollectionHandler[T]) Delete(c *fiber.Ctx) error {
	if err := h.open(GetPortal(c), portal.Options{}).Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Mount registra las rutas; las vistas solo exponen el listado.
func (h *CollectionHandler[T]) Mount(r fiber.Router, path string, readOnly bool) {
	g := r.Group(path)
	g.Get("/", h.List)
	if readOnly {
		return
	}
	g.Post("/", h.Create)
	g.Put("/:id", h.Update)
	g.Delete("/:id", h.Delete)
}

func isNil[T any](v T) bool {
	rv := reflect.ValueOf(v)
	return !rv.IsValid() || (rv.Kind() == reflect.Pointer && rv.IsNil())
}
