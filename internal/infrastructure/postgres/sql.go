package postgres

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/gasable-portal/internal/domain"
	"github.com/jhoicas/gasable-portal/internal/domain/query"
)

var operators = map[query.Operator]string{
	query.OpEq:  "=",
	query.OpNeq: "<>",
	query.OpGt:  ">",
	query.OpGte: ">=",
	query.OpLt:  "<",
	query.OpLte: "<=",
}

// Statement sentencia SQL parametrizada. Cada fila del resultado es un único valor jsonb.
type Statement struct {
	SQL  string
	Args []any
}

func ident(name string) string {
	return pgx.Identifier{name}.Sanitize()
}

// SelectSQL traduce el descriptor a SELECT to_jsonb(t) con los mismos operadores que PostgREST.
// NULL va al final en ascendente y al principio en descendente.
func SelectSQL(table string, q query.Query) (Statement, error) {
	var b strings.Builder
	args := make([]any, 0, len(q.Filters))

	b.WriteString("SELECT to_jsonb(t) FROM ")
	b.WriteString(ident(table))
	b.WriteString(" AS t")

	where, args, err := whereSQL(q.Filters, args)
	if err != nil {
		return Statement{}, err
	}
	b.WriteString(where)

	if q.Order != nil && q.Order.Field != "" {
		b.WriteString(" ORDER BY t.")
		b.WriteString(ident(q.Order.Field))
		if q.Order.Direction == query.Asc {
			b.WriteString(" ASC NULLS LAST")
		} else {
			b.WriteString(" DESC NULLS FIRST")
		}
	}
	if q.Limit > 0 {
		b.WriteString(" LIMIT ")
		b.WriteString(strconv.Itoa(q.Limit))
	}
	return Statement{SQL: b.String(), Args: args}, nil
}

// whereSQL arma " WHERE t.a = $n AND ..." continuando la numeración de args.
func whereSQL(filters []query.Filter, args []any) (string, []any, error) {
	var b strings.Builder
	for i, f := range filters {
		op, ok := operators[f.Op]
		if !ok {
			return "", nil, fmt.Errorf("postgres: operador no soportado %q", f.Op)
		}
		if i == 0 {
			b.WriteString(" WHERE ")
		} else {
			b.WriteString(" AND ")
		}
		args = append(args, f.ValueString())
		fmt.Fprintf(&b, "t.%s %s $%d", ident(f.Field), op, len(args))
	}
	return b.String(), args, nil
}

// matchSQL condición de una escritura: al menos un filtro.
func matchSQL(match query.Query, args []any) (string, []any, error) {
	if len(match.Filters) == 0 {
		return "", nil, fmt.Errorf("%w: escritura sin filtros", domain.ErrInvalidInput)
	}
	return whereSQL(match.Filters, args)
}

// InsertSQL inserta la fila desde su forma JSON; las columnas ausentes quedan en NULL.
func InsertSQL(table string, row any) (Statement, error) {
	payload, err := json.Marshal(row)
	if err != nil {
		return Statement{}, fmt.Errorf("postgres: serializar fila: %w", err)
	}
	t := ident(table)
	sql := fmt.Sprintf(
		"INSERT INTO %s SELECT * FROM jsonb_populate_record(NULL::%s, $1::jsonb) RETURNING to_jsonb(%s.*)",
		t, t, t,
	)
	return Statement{SQL: sql, Args: []any{string(payload)}}, nil
}

// UpdateSQL actualiza solo las columnas presentes en patch, en las filas que cumplen match.
func UpdateSQL(table string, match query.Query, patch any) (Statement, error) {
	payload, err := json.Marshal(patch)
	if err != nil {
		return Statement{}, fmt.Errorf("postgres: serializar cambios: %w", err)
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(payload, &fields); err != nil {
		return Statement{}, fmt.Errorf("postgres: los cambios deben ser un objeto: %w", err)
	}
	if len(fields) == 0 {
		return Statement{}, fmt.Errorf("postgres: sin columnas para actualizar")
	}
	where, args, err := matchSQL(match, []any{string(payload)})
	if err != nil {
		return Statement{}, err
	}
	cols := make([]string, 0, len(fields))
	for c := range fields {
		cols = append(cols, c)
	}
	sort.Strings(cols)

	sets := make([]string, 0, len(cols))
	for _, c := range cols {
		sets = append(sets, fmt.Sprintf("%s = r.%s", ident(c), ident(c)))
	}
	t := ident(table)
	sql := fmt.Sprintf(
		"UPDATE %s AS t SET %s FROM jsonb_populate_record(NULL::%s, $1::jsonb) AS r%s RETURNING to_jsonb(t.*)",
		t, strings.Join(sets, ", "), t, where,
	)
	return Statement{SQL: sql, Args: args}, nil
}

// DeleteSQL borra las filas que cumplen match.
func DeleteSQL(table string, match query.Query) (Statement, error) {
	where, args, err := matchSQL(match, nil)
	if err != nil {
		return Statement{}, err
	}
	return Statement{SQL: fmt.Sprintf("DELETE FROM %s AS t%s", ident(table), where), Args: args}, nil
}

// CallSQL invoca la función con notación nombrada (p_x => $n), argumentos en orden alfabético.
func CallSQL(procedure string, args map[string]any) (Statement, error) {
	names := make([]string, 0, len(args))
	for k := range args {
		names = append(names, k)
	}
	sort.Strings(names)

	params := make([]string, 0, len(names))
	values := make([]any, 0, len(names))
	for _, n := range names {
		v, err := callArg(args[n])
		if err != nil {
			return Statement{}, fmt.Errorf("postgres: argumento %s: %w", n, err)
		}
		values = append(values, v)
		params = append(params, fmt.Sprintf("%s => $%d", ident(n), len(values)))
	}
	sql := fmt.Sprintf("SELECT to_jsonb(r) FROM %s(%s) AS r", ident(procedure), strings.Join(params, ", "))
	return Statement{SQL: sql, Args: values}, nil
}

// callArg deja pasar escalares; mapas y slices viajan como jsonb.
func callArg(v any) (any, error) {
	switch v.(type) {
	case map[string]any, []any:
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		return string(raw), nil
	default:
		return v, nil
	}
}
