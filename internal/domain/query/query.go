// Package query define el descriptor tipado de consultas (filtros, orden, límite) que
// interpretan por igual el evaluador en memoria (fixtures demo) y los backends remotos.
package query

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Direction sentido de ordenamiento.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// ParseDirection interpreta "asc"/"desc"; cualquier otro valor es Desc (default del portal).
func ParseDirection(s string) Direction {
	if strings.EqualFold(strings.TrimSpace(s), string(Asc)) {
		return Asc
	}
	return Desc
}

// Operator operador de comparación soportado (subconjunto de PostgREST).
type Operator string

const (
	OpEq  Operator = "eq"
	OpNeq Operator = "neq"
	OpGt  Operator = "gt"
	OpGte Operator = "gte"
	OpLt  Operator = "lt"
	OpLte Operator = "lte"
)

// Filter condición (campo, operador, valor).
type Filter struct {
	Field string
	Op    Operator
	Value any
}

// ValueString representación textual del valor tal como la espera PostgREST/SQL.
func (f Filter) ValueString() string {
	return FormatValue(f.Value)
}

// Order columna y sentido.
type Order struct {
	Field     string
	Direction Direction
}

// Query descriptor inmutable: cada método devuelve una copia.
type Query struct {
	Filters []Filter
	Order   *Order
	Limit   int // 0 = sin límite
}

// New devuelve una consulta vacía.
func New() Query { return Query{} }

// Where agrega una condición.
func (q Query) Where(field string, op Operator, value any) Query {
	filters := make([]Filter, 0, len(q.Filters)+1)
	filters = append(filters, q.Filters...)
	q.Filters = append(filters, Filter{Field: field, Op: op, Value: value})
	return q
}

// Eq agrega un filtro de igualdad.
func (q Query) Eq(field string, value any) Query {
	return q.Where(field, OpEq, value)
}

// Scope antepone un filtro de igualdad (p. ej. company_id) a los ya declarados.
func (q Query) Scope(field string, value any) Query {
	filters := make([]Filter, 0, len(q.Filters)+1)
	filters = append(filters, Filter{Field: field, Op: OpEq, Value: value})
	q.Filters = append(filters, q.Filters...)
	return q
}

// OrderBy fija la columna de orden.
func (q Query) OrderBy(field string, dir Direction) Query {
	if field == "" {
		q.Order = nil
		return q
	}
	q.Order = &Order{Field: field, Direction: dir}
	return q
}

// WithLimit fija el límite de filas (n <= 0 elimina el límite).
func (q Query) WithLimit(n int) Query {
	if n < 0 {
		n = 0
	}
	q.Limit = n
	return q
}

// Fields devuelve los nombres de columna referenciados (filtros + orden), para validación.
func (q Query) Fields() []string {
	out := make([]string, 0, len(q.Filters)+1)
	for _, f := range q.Filters {
		out = append(out, f.Field)
	}
	if q.Order != nil {
		out = append(out, q.Order.Field)
	}
	return out
}

// FormatValue serializa un valor de filtro: tiempos en RFC3339Nano, decimales sin notación
// exponencial, punteros desreferenciados.
func FormatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case string:
		return x
	case *string:
		if x == nil {
			return "null"
		}
		return *x
	case time.Time:
		return x.UTC().Format(time.RFC3339Nano)
	case *time.Time:
		if x == nil {
			return "null"
		}
		return x.UTC().Format(time.RFC3339Nano)
	case decimal.Decimal:
		return x.String()
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(v)
	}
}
