package metrics_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gasable-portal/internal/domain"
	"github.com/jhoicas/gasable-portal/internal/domain/query"
	"github.com/jhoicas/gasable-portal/internal/infrastructure/metrics"
)

type stubBackend struct {
	err error
}

func (s stubBackend) Select(context.Context, string, query.Query, any) error { return s.err }
func (s stubBackend) Insert(context.Context, string, any, any) error { return s.err }
func (s stubBackend) Update(context.Context, string, query.Query, any, any) error { return s.err }
func (s stubBackend) Delete(context.Context, string, query.Query) error { return s.err }
func (s stubBackend) Call(context.Context, string, map[string]any, any) error {
	return s.err
}

const callsMetric = "gasable_backend_calls_total"

func TestInstrumentedBackend_CuentaPorResultado(t *testing.T) {
	c := metrics.NewCollector("")
	ok := c.Instrument(stubBackend{})
	dup := c.Instrument(stubBackend{err: fmt.Errorf("insert: %w", domain.ErrDuplicate)})
	broken := c.Instrument(stubBackend{err: errors.New("boom")})

	ctx := context.Background()
	require.NoError(t, ok.Select(ctx, "orders", query.New(), nil))
	require.NoError(t, ok.Select(ctx, "orders", query.New(), nil))
	require.Error(t, dup.Insert(ctx, "company_members", nil, nil))
	require.Error(t, broken.Call(ctx, "get_performance_metrics", nil, nil))

	expected := `
# HELP gasable_backend_calls_total Llamadas al backend remoto por operación, tabla y resultado
# TYPE gasable_backend_calls_total counter
gasable_backend_calls_total{operation="insert",result="duplicate",table="company_members"} 1
gasable_backend_calls_total{operation="rpc",result="error",table="get_performance_metrics"} 1
gasable_backend_calls_total{operation="select",result="ok",table="orders"} 2
`
	assert.NoError(t, testutil.GatherAndCompare(c.Registry(), strings.NewReader(expected), callsMetric))
}

func TestInstrumentedBackend_PropagaElError(t *testing.T) {
	c := metrics.NewCollector("portal")
	want := errors.New("remote down")
	b := c.Instrument(stubBackend{err: want})

	err := b.Delete(context.Background(), "stores", query.New().Eq("id", "s1"))
	assert.ErrorIs(t, err, want)
	assert.Equal(t, 1, testutil.CollectAndCount(c.Registry(), "portal_backend_call_duration_seconds"))
}

func TestHandler_ExponeLasMetricas(t *testing.T) {
	c := metrics.NewCollector("")
	require.NoError(t, c.Instrument(stubBackend{}).Update(context.Background(), "products", query.New().Eq("id", "p1"), nil, nil))

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `gasable_backend_calls_total{operation="update",result="ok",table="products"} 1`)
}
