package query

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Apply evalúa q en memoria sobre filas serializables a JSON: filtros en el orden declarado,
// orden estable y límite como prefijo. Devuelve copias nuevas (decodificadas), nunca alias
// de las filas de entrada, de modo que los fixtures no pueden mutarse desde fuera.
//
// La semántica replica la del servidor: igualdad exacta, NULL nunca coincide, NULL va al final
// en orden ascendente y al principio en descendente.
func Apply[T any](rows []T, q Query) ([]T, error) {
	raws := make([][]byte, 0, len(rows))
	for _, r := range rows {
		raw, err := json.Marshal(r)
		if err != nil {
			return nil, fmt.Errorf("query: serializar fila: %w", err)
		}
		ok, err := matchesAll(raw, q.Filters)
		if err != nil {
			return nil, err
		}
		if ok {
			raws = append(raws, raw)
		}
	}

	if q.Order != nil && q.Order.Field != "" {
		cmp := newComparator()
		field := q.Order.Field
		desc := q.Order.Direction == Desc
		sort.SliceStable(raws, func(i, j int) bool {
			c := cmp.compare(gjson.GetBytes(raws[i], field), gjson.GetBytes(raws[j], field))
			if desc {
				return c > 0
			}
			return c < 0
		})
	}

	if q.Limit > 0 && len(raws) > q.Limit {
		raws = raws[:q.Limit]
	}

	out := make([]T, 0, len(raws))
	for _, raw := range raws {
		var v T
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, fmt.Errorf("query: decodificar fila: %w", err)
		}
		out = append(out, v)
	}
	return out, nil
}

func matchesAll(raw []byte, filters []Filter) (bool, error) {
	if len(filters) == 0 {
		return true, nil
	}
	cmp := newComparator()
	for _, f := range filters {
		want, err := json.Marshal(f.Value)
		if err != nil {
			return false, fmt.Errorf("query: serializar filtro %s: %w", f.Field, err)
		}
		got := gjson.GetBytes(raw, f.Field)
		if !cmp.matches(got, gjson.ParseBytes(want), f.Op) {
			return false, nil
		}
	}
	return true, nil
}

// comparator no es seguro para uso concurrente (collate.Collator guarda buffers internos).
type comparator struct {
	col *collate.Collator
}

func newComparator() *comparator {
	return &comparator{col: collate.New(language.English)}
}

func (c *comparator) matches(got, want gjson.Result, op Operator) bool {
	if isNull(got) || isNull(want) {
		return false
	}
	switch op {
	case OpEq:
		return c.equal(got, want)
	case OpNeq:
		return !c.equal(got, want)
	case OpGt:
		return c.compare(got, want) > 0
	case OpGte:
		return c.compare(got, want) >= 0
	case OpLt:
		return c.compare(got, want) < 0
	case OpLte:
		return c.compare(got, want) <= 0
	default:
		return false
	}
}

func (c *comparator) equal(a, b gjson.Result) bool {
	if x, ok := numeric(a); ok {
		if y, ok := numeric(b); ok {
			return x.Equal(y)
		}
	}
	if x, ok := timestamp(a); ok {
		if y, ok := timestamp(b); ok {
			return x.Equal(y)
		}
	}
	return a.String() == b.String()
}

// compare devuelve <0, 0, >0. NULL/ausente es mayor que cualquier valor.
func (c *comparator) compare(a, b gjson.Result) int {
	an, bn := isNull(a), isNull(b)
	switch {
	case an && bn:
		return 0
	case an:
		return 1
	case bn:
		return -1
	}
	if x, ok := numeric(a); ok {
		if y, ok := numeric(b); ok {
			return x.Cmp(y)
		}
	}
	if x, ok := timestamp(a); ok {
		if y, ok := timestamp(b); ok {
			return x.Compare(y)
		}
	}
	if isBool(a) && isBool(b) {
		switch {
		case a.Bool() == b.Bool():
			return 0
		case b.Bool():
			return -1
		default:
			return 1
		}
	}
	return c.col.CompareString(a.String(), b.String())
}

func isNull(r gjson.Result) bool {
	return !r.Exists() || r.Type == gjson.Null
}

func isBool(r gjson.Result) bool {
	return r.Type == gjson.True || r.Type == gjson.False
}

// numeric acepta números JSON y strings numéricos (decimal.Decimal se serializa como string).
func numeric(r gjson.Result) (decimal.Decimal, bool) {
	switch r.Type {
	case gjson.Number:
		d, err := decimal.NewFromString(r.Raw)
		return d, err == nil
	case gjson.String:
		d, err := decimal.NewFromString(r.Str)
		return d, err == nil
	default:
		return decimal.Decimal{}, false
	}
}

func timestamp(r gjson.Result) (time.Time, bool) {
	if r.Type != gjson.String || len(r.Str) < len("2006-01-02") {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339Nano, r.Str)
	return t, err == nil
}
