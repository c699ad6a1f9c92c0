// Package metrics expone telemetría Prometheus de las llamadas al backend remoto.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/gasable-portal/internal/domain"
	"github.com/jhoicas/gasable-portal/internal/domain/query"
	"github.com/jhoicas/gasable-portal/internal/domain/repository"
)

// Resultados registrados por llamada.
const (
	ResultOK        = "ok"
	ResultError     = "error"
	ResultDuplicate = "duplicate"
	ResultCanceled  = "canceled"
)

// Collector agrupa los colectores en un registry propio (no el global).
type Collector struct {
	registry *prometheus.Registry

	calls    *prometheus.CounterVec
	latency  *prometheus.HistogramVec
	inFlight prometheus.Gauge
}

// NewCollector registra los colectores bajo namespace (por defecto "gasable").
func NewCollector(namespace string) *Collector {
	if namespace == "" {
		namespace = "gasable"
	}
	c := &Collector{registry: prometheus.NewRegistry()}

	c.calls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "backend",
			Name:      "calls_total",
			Help:      "Llamadas al backend remoto por operación, tabla y resultado",
		},
		[]string{"operation", "table", "result"},
	)
	c.latency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "backend",
			Name:      "call_duration_seconds",
			Help:      "Latencia de las llamadas al backend remoto",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12), // 5ms a ~10s
		},
		[]string{"operation", "table"},
	)
	c.inFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "backend",
		Name:      "in_flight",
		Help:      "Llamadas al backend en curso",
	})

	c.registry.MustRegister(
		c.calls,
		c.latency,
		c.inFlight,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return c
}

// Registry devuelve el registry para pruebas o para colectores adicionales.
func (c *Collector) Registry() *prometheus.Registry { return c.registry }

// Handler sirve el formato de exposición de Prometheus.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

func (c *Collector) observe(op, table string, start time.Time, err error) {
	c.calls.WithLabelValues(op, table, classify(err)).Inc()
	c.latency.WithLabelValues(op, table).Observe(time.Since(start).Seconds())
}

func classify(err error) string {
	switch {
	case err == nil:
		return ResultOK
	case errors.Is(err, domain.ErrDuplicate):
		return ResultDuplicate
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return ResultCanceled
	default:
		return ResultError
	}
}

// InstrumentedBackend decora un repository.Backend con contadores e histogramas.
type InstrumentedBackend struct {
	next repository.Backend
	c    *Collector
}

var _ repository.Backend = (*InstrumentedBackend)(nil)

// Instrument envuelve next.
func (c *Collector) Instrument(next repository.Backend) *InstrumentedBackend {
	return &InstrumentedBackend{next: next, c: c}
}

func (b *InstrumentedBackend) track(op, table string, fn func() error) error {
	b.c.inFlight.Inc()
	defer b.c.inFlight.Dec()
	start := time.Now()
	err := fn()
	b.c.observe(op, table, start, err)
	return err
}

func (b *InstrumentedBackend) Select(ctx context.Context, table string, q query.Query, dest any) error {
	return b.track("select", table, func() error { return b.next.Select(ctx, table, q, dest) })
}

func (b *InstrumentedBackend) Insert(ctx context.Context, table string, row any, dest any) error {
	return b.track("insert", table, func() error { return b.next.Insert(ctx, table, row, dest) })
}

func (b *InstrumentedBackend) Update(ctx context.Context, table string, match query.Query, patch any, dest any) error {
	return b.track("update", table, func() error { return b.next.Update(ctx, table, match, patch, dest) })
}

func (b *InstrumentedBackend) Delete(ctx context.Context, table string, match query.Query) error {
	return b.track("delete", table, func() error { return b.next.Delete(ctx, table, match) })
}

// Call registra el procedimiento en la etiqueta table.
func (b *InstrumentedBackend) Call(ctx context.Context, procedure string, args map[string]any, dest any) error {
	return b.track("rpc", procedure, func() error { return b.next.Call(ctx, procedure, args, dest) })
}
