package postgres_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gasable-portal/internal/domain"
	"github.com/jhoicas/gasable-portal/internal/domain/query"
	"github.com/jhoicas/gasable-portal/internal/infrastructure/postgres"
)

func TestSelectSQL_FiltrosOrdenYLimite(t *testing.T) {
	q := query.New().
		Eq("status", "pending").
		Where("created_at", query.OpGte, "2025-03-01T00:00:00Z").
		OrderBy("total_amount", query.Asc).
		WithLimit(10).
		Scope("company_id", "co-1")

	st, err := postgres.SelectSQL("orders", q)
	require.NoError(t, err)
	assert.Equal(t,
		`SELECT to_jsonb(t) FROM "orders" AS t WHERE t."company_id" = $1 AND t."status" = $2 AND t."created_at" >= $3 ORDER BY t."total_amount" ASC NULLS LAST LIMIT 10`,
		st.SQL)
	assert.Equal(t, []any{"co-1", "pending", "2025-03-01T00:00:00Z"}, st.Args)
}

func TestSelectSQL_DescendentePoneNullsPrimero(t *testing.T) {
	st, err := postgres.SelectSQL("products", query.New().OrderBy("price", query.Desc))
	require.NoError(t, err)
	assert.Equal(t, `SELECT to_jsonb(t) FROM "products" AS t ORDER BY t."price" DESC NULLS FIRST`, st.SQL)
	assert.Empty(t, st.Args)
}

func TestSelectSQL_EscapaIdentificadores(t *testing.T) {
	st, err := postgres.SelectSQL(`stores"; drop table x; --`, query.New().Eq(`na"me`, "x"))
	require.NoError(t, err)
	assert.Contains(t, st.SQL, `FROM "stores""; drop table x; --" AS t`)
	assert.Contains(t, st.SQL, `t."na""me" = $1`)
}

func TestSelectSQL_OperadorDesconocido(t *testing.T) {
	_, err := postgres.SelectSQL("orders", query.New().Where("status", query.Operator("like"), "x"))
	assert.Error(t, err)
}

func TestInsertSQL_UsaLaFormaJSON(t *testing.T) {
	st, err := postgres.InsertSQL("branches", map[string]any{"name": "Olaya"})
	require.NoError(t, err)
	assert.Equal(t,
		`INSERT INTO "branches" SELECT * FROM jsonb_populate_record(NULL::"branches", $1::jsonb) RETURNING to_jsonb("branches".*)`,
		st.SQL)
	require.Len(t, st.Args, 1)
	assert.JSONEq(t, `{"name":"Olaya"}`, st.Args[0].(string))
}

func TestUpdateSQL_SoloColumnasDelPatch(t *testing.T) {
	match := query.New().Eq("id", "p1").Scope("company_id", "co-1")
	st, err := postgres.UpdateSQL("products", match, map[string]any{"price": "12.50", "name": "Cilindro"})
	require.NoError(t, err)
	assert.Equal(t,
		`UPDATE "products" AS t SET "name" = r."name", "price" = r."price" FROM jsonb_populate_record(NULL::"products", $1::jsonb) AS r WHERE t."company_id" = $2 AND t."id" = $3 RETURNING to_jsonb(t.*)`,
		st.SQL)
	require.Len(t, st.Args, 3)
	assert.Equal(t, []any{"co-1", "p1"}, st.Args[1:])
}

func TestUpdateSQL_PatchVacio(t *testing.T) {
	byID := query.New().Eq("id", "p1")
	_, err := postgres.UpdateSQL("products", byID, map[string]any{})
	assert.Error(t, err)

	_, err = postgres.UpdateSQL("products", byID, []string{"no-es-objeto"})
	assert.Error(t, err)
}

func TestEscrituras_SinFiltrosSeRechazan(t *testing.T) {
	_, err := postgres.UpdateSQL("products", query.New(), map[string]any{"name": "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = postgres.DeleteSQL("products", query.New())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDeleteSQL_FiltraPorTenant(t *testing.T) {
	st, err := postgres.DeleteSQL("tickets", query.New().Eq("id", "t1").Scope("company_id", "co-1"))
	require.NoError(t, err)
	assert.Equal(t, `DELETE FROM "tickets" AS t WHERE t."company_id" = $1 AND t."id" = $2`, st.SQL)
	assert.Equal(t, []any{"co-1", "t1"}, st.Args)
}

func TestCallSQL_NotacionNombradaOrdenada(t *testing.T) {
	st, err := postgres.CallSQL("get_performance_metrics", map[string]any{"p_days": 30, "p_company_id": "co-1"})
	require.NoError(t, err)
	assert.Equal(t,
		`SELECT to_jsonb(r) FROM "get_performance_metrics"("p_company_id" => $1, "p_days" => $2) AS r`,
		st.SQL)
	assert.Equal(t, []any{"co-1", 30}, st.Args)
}

func TestCallSQL_MapasViajanComoJSON(t *testing.T) {
	st, err := postgres.CallSQL("track_demo_signup", map[string]any{"p_meta": map[string]any{"source": "portal"}})
	require.NoError(t, err)
	require.Len(t, st.Args, 1)
	assert.JSONEq(t, `{"source":"portal"}`, st.Args[0].(string))
}
