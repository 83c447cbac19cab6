package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yakumwamba/lpg-delivery-access/internal/application/access"
)

// Metrics contadores del edge sobre un registry propio (los tests crean uno por app).
// Un *Metrics nil es válido y no registra nada.
type Metrics struct {
	registry *prometheus.Registry
	guard    *prometheus.CounterVec
	access   *prometheus.CounterVec
	shell    *prometheus.CounterVec
	signIn   *prometheus.CounterVec
	limited  prometheus.Counter
}

// NewMetrics registra los contadores y los colectores de proceso y runtime.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		guard: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "zamgas_edge",
			Name:      "route_guard_total",
			Help:      "Decisiones del perímetro por resultado",
		}, []string{"outcome"}),
		access: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "zamgas_edge",
			Name:      "access_decisions_total",
			Help:      "Decisiones del evaluador de permisos",
		}, []string{"granted", "reason"}),
		shell: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "zamgas_edge",
			Name:      "identity_resolutions_total",
			Help:      "Resolución de identidad desde la cookie",
		}, []string{"outcome"}),
		signIn: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "zamgas_edge",
			Name:      "signin_total",
			Help:      "Intentos de inicio de sesión",
		}, []string{"audience", "outcome"}),
		limited: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "zamgas_edge",
			Name:      "signin_rate_limited_total",
			Help:      "Intentos rechazados por límite de tasa",
		}),
	}
	reg.MustRegister(
		m.guard, m.access, m.shell, m.signIn, m.limited,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler expone /metrics.
func (m *Metrics) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}

func (m *Metrics) guardOutcome(outcome GuardOutcome) {
	if m != nil {
		m.guard.WithLabelValues(string(outcome)).Inc()
	}
}

func (m *Metrics) accessDecision(d access.Decision) {
	if m == nil {
		return
	}
	granted := "false"
	if d.Granted {
		granted = "true"
	}
	m.access.WithLabelValues(granted, d.Reason).Inc()
}

func (m *Metrics) resolution(outcome string) {
	if m != nil {
		m.shell.WithLabelValues(outcome).Inc()
	}
}

func (m *Metrics) signInAttempt(audience, outcome string) {
	if m != nil {
		m.signIn.WithLabelValues(audience, outcome).Inc()
	}
}

func (m *Metrics) rateLimited() {
	if m != nil {
		m.limited.Inc()
	}
}
