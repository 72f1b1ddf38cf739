// Package metrics agrupa las métricas Prometheus del servicio: decisiones
// por flujo, llamadas a servicios externos, rate limit y HTTP.
//
// Todos los métodos aceptan receptor nil (métricas deshabilitadas).
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "dcd_auth"

type Metrics struct {
	registry *prometheus.Registry

	flowDecisions    *prometheus.CounterVec
	upstreamRequests *prometheus.CounterVec
	upstreamDuration *prometheus.HistogramVec
	rateLimited      *prometheus.CounterVec

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	httpInflight        prometheus.Gauge
}

// New registra las métricas en reg. Con reg nil se crea un registry propio
// con los collectors de Go y de proceso.
func New(reg *prometheus.Registry) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	m := &Metrics{
		registry: reg,
		flowDecisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "flow_decisions_total",
			Help:      "Decisiones terminales o renders por flujo",
		}, []string{"flow", "decision"}), // decision: accept|reject|skip|render|invalid_credentials
		upstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_requests_total",
			Help:      "Requests a servicios externos por código",
		}, []string{"service", "code", "method"}),
		upstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upstream_request_duration_seconds",
			Help:      "Latencia de requests a servicios externos",
			Buckets:   []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"service", "method"}),
		rateLimited: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_limited_total",
			Help:      "Requests rechazadas por rate limit",
		}, []string{"route"}),
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Número total de requests procesadas",
		}, []string{"method", "path", "status"}),
		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Latencia de los requests HTTP",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
		httpInflight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "http_inflight_requests",
			Help: "Requests en vuelo",
		}),
	}

	for _, c := range []prometheus.Collector{
		m.flowDecisions, m.upstreamRequests, m.upstreamDuration, m.rateLimited,
		m.httpRequestsTotal, m.httpRequestDuration, m.httpInflight,
	} {
		if err := registerCollector(reg, c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// registerCollector registra el collector ignorando duplicados.
func registerCollector(reg prometheus.Registerer, collector prometheus.Collector) error {
	if err := reg.Register(collector); err != nil {
		if _, ok := err.(prometheus.AlreadyRegisteredError); ok {
			return nil
		}
		return err
	}
	return nil
}

// Handler expone /metrics.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Decision implementa flow.Recorder.
func (m *Metrics) Decision(flow, decision string) {
	if m == nil {
		return
	}
	m.flowDecisions.WithLabelValues(flow, decision).Inc()
}

// RateLimited cuenta un rechazo por rate limit.
func (m *Metrics) RateLimited(route string) {
	if m == nil {
		return
	}
	m.rateLimited.WithLabelValues(route).Inc()
}

// InstrumentTransport envuelve rt con contadores y latencia por servicio.
func (m *Metrics) InstrumentTransport(service string, rt http.RoundTripper) http.RoundTripper {
	if m == nil {
		return rt
	}
	if rt == nil {
		rt = http.DefaultTransport
	}
	labels := prometheus.Labels{"service": service}
	counter := m.upstreamRequests.MustCurryWith(labels)
	duration := m.upstreamDuration.MustCurryWith(labels)
	return promhttp.InstrumentRoundTripperCounter(counter,
		promhttp.InstrumentRoundTripperDuration(duration, rt))
}

// ObserveHTTP registra un request servido. path debe ser de baja cardinalidad.
func (m *Metrics) ObserveHTTP(method, path string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.httpRequestDuration.WithLabelValues(method, path).Observe(d.Seconds())
	m.httpRequestsTotal.WithLabelValues(method, path, statusLabel(status)).Inc()
}

// Inflight ajusta el gauge de requests en vuelo (+1 / -1).
func (m *Metrics) Inflight(delta float64) {
	if m == nil {
		return
	}
	m.httpInflight.Add(delta)
}
