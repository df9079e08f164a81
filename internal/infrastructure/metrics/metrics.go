// Package metrics expone las métricas Prometheus del servicio en un registry propio.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"

	"github.com/merchbydz/backoffice/internal/application/dto"
)

const namespace = "merchbydz"

// Metrics agrupa los colectores. Seguro para uso concurrente.
type Metrics struct {
	registry *prometheus.Registry

	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	importedRows    *prometheus.CounterVec

	netPosition prometheus.Gauge
	recognized  prometheus.Gauge
	expected    prometheus.Gauge
	loss        prometheus.Gauge
}

// New registra los colectores; withRuntime añade los de proceso y Go.
func New(withRuntime bool) *Metrics {
	m := &Metrics{registry: prometheus.NewRegistry()}

	m.requestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total de requests HTTP por método, ruta y status.",
	}, []string{"method", "route", "status"})

	m.requestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Latencia de los requests HTTP.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	m.importedRows = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "import_rows_total",
		Help:      "Filas CSV procesadas por colección y resultado.",
	}, []string{"collection", "result"})

	gauge := func(name, help string) prometheus.Gauge {
		return prometheus.NewGauge(prometheus.GaugeOpts{Namespace: namespace, Subsystem: "ledger", Name: name, Help: help})
	}
	m.netPosition = gauge("net_position", "Posición neta del último resumen calculado.")
	m.recognized = gauge("recognized_profit", "Beneficio cobrado del último resumen calculado.")
	m.expected = gauge("expected_profit", "Beneficio esperado del último resumen calculado.")
	m.loss = gauge("loss", "Pérdida por devoluciones del último resumen calculado.")

	m.registry.MustRegister(
		m.requestsTotal, m.requestDuration, m.importedRows,
		m.netPosition, m.recognized, m.expected, m.loss,
	)
	if withRuntime {
		m.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	return m
}

// Registry expone el registry (tests, colectores adicionales).
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler handler HTTP en formato de exposición de Prometheus.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveRequest route es el patrón de la ruta ("/api/orders/:id"), no la URL, para acotar la cardinalidad.
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	m.requestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// ObserveImport cuenta filas importadas y rechazadas.
func (m *Metrics) ObserveImport(collection string, imported, rejected int) {
	m.importedRows.WithLabelValues(collection, "imported").Add(float64(imported))
	m.importedRows.WithLabelValues(collection, "rejected").Add(float64(rejected))
}

// ObserveSummary implementa analytics.SummaryObserver.
func (m *Metrics) ObserveSummary(s dto.SummaryDTO) {
	m.netPosition.Set(toFloat(s.NetPosition))
	m.recognized.Set(toFloat(s.Recognized))
	m.expected.Set(toFloat(s.Expected))
	m.loss.Set(toFloat(s.Loss))
}

func toFloat(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}
