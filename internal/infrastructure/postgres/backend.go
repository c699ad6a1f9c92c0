package postgres

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/gasable-portal/internal/domain"
	"github.com/jhoicas/gasable-portal/internal/domain/query"
	"github.com/jhoicas/gasable-portal/internal/domain/repository"
)

// querier lo cumplen *pgxpool.Pool y pgx.Tx.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Asegura que Backend implementa repository.Backend.
var _ repository.Backend = (*Backend)(nil)

// Backend implementación del puerto Backend con conexión directa a PostgreSQL.
type Backend struct {
	db querier
}

// NewBackend construye el adaptador sobre el pool.
func NewBackend(pool *pgxpool.Pool) *Backend {
	return &Backend{db: pool}
}

// Select ejecuta el descriptor y decodifica las filas en dest (puntero a slice).
func (b *Backend) Select(ctx context.Context, table string, q query.Query, dest any) error {
	st, err := SelectSQL(table, q)
	if err != nil {
		return err
	}
	rows, err := b.rows(ctx, st)
	if err != nil {
		return fmt.Errorf("select %s: %w", table, err)
	}
	return decodeArray(rows, dest)
}

// Insert inserta la fila y devuelve la representación almacenada.
func (b *Backend) Insert(ctx context.Context, table string, row any, dest any) error {
	st, err := InsertSQL(table, row)
	if err != nil {
		return err
	}
	rows, err := b.rows(ctx, st)
	if err != nil {
		return fmt.Errorf("insert %s: %w", table, err)
	}
	return decodeArray(rows, dest)
}

// Update aplica patch a las filas que cumplen match.
func (b *Backend) Update(ctx context.Context, table string, match query.Query, patch any, dest any) error {
	st, err := UpdateSQL(table, match, patch)
	if err != nil {
		return err
	}
	rows, err := b.rows(ctx, st)
	if err != nil {
		return fmt.Errorf("update %s: %w", table, err)
	}
	return decodeArray(rows, dest)
}

// Delete borra las filas que cumplen match; sin filas afectadas devuelve domain.ErrNotFound.
func (b *Backend) Delete(ctx context.Context, table string, match query.Query) error {
	st, err := DeleteSQL(table, match)
	if err != nil {
		return err
	}
	tag, err := b.db.Exec(ctx, st.SQL, st.Args...)
	if err != nil {
		return fmt.Errorf("delete %s: %w", table, mapError(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete %s: %w", table, domain.ErrNotFound)
	}
	return nil
}

// Call invoca la función; una sola fila se decodifica tal cual, varias como arreglo.
func (b *Backend) Call(ctx context.Context, procedure string, args map[string]any, dest any) error {
	st, err := CallSQL(procedure, args)
	if err != nil {
		return err
	}
	rows, err := b.rows(ctx, st)
	if err != nil {
		return fmt.Errorf("call %s: %w", procedure, err)
	}
	if dest == nil {
		return nil
	}
	if len(rows) == 1 {
		if err := json.Unmarshal(rows[0], dest); err == nil {
			return nil
		}
	}
	return decodeArray(rows, dest)
}

func (b *Backend) rows(ctx context.Context, st Statement) ([][]byte, error) {
	rows, err := b.db.Query(ctx, st.SQL, st.Args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var out [][]byte
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		out = append(out, raw)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}
	return out, nil
}

func decodeArray(rows [][]byte, dest any) error {
	if dest == nil {
		return nil
	}
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, r := range rows {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.Write(r)
	}
	buf.WriteByte(']')
	if err := json.Unmarshal(buf.Bytes(), dest); err != nil {
		return fmt.Errorf("decodificar filas: %w", err)
	}
	return nil
}

func mapError(err error) error {
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %v", domain.ErrDuplicate, err)
	}
	return err
}
