// Package metrics implementa ports.MetricsRecorder con Prometheus.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/swifthomes-api/internal/application/ports"
)

const namespace = "swifthomes"

var _ ports.MetricsRecorder = (*Recorder)(nil)

// Recorder contadores de negocio y latencia HTTP sobre un registry propio.
//
// Métricas:
//   - swifthomes_auth_logins_total{result}
//   - swifthomes_guard_decisions_total{outcome}
//   - swifthomes_registrations_total{role}
//   - swifthomes_onboarding_completed_total{plan}
//   - swifthomes_http_request_duration_seconds{method,route,status}
type Recorder struct {
	registry *prometheus.Registry

	logins        *prometheus.CounterVec
	guard         *prometheus.CounterVec
	registrations *prometheus.CounterVec
	onboarding    *prometheus.CounterVec
	httpDuration  *prometheus.HistogramVec
}

// NewRecorder registra las métricas en un registry nuevo (más los collectors de proceso y runtime).
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)
	return &Recorder{
		registry: reg,
		logins: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "auth_logins_total",
			Help:      "Intentos de login por resultado",
		}, []string{"result"}),
		guard: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "guard_decisions_total",
			Help:      "Decisiones del guard de rutas por resultado",
		}, []string{"outcome"}),
		registrations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "registrations_total",
			Help:      "Usuarios registrados por rol",
		}, []string{"role"}),
		onboarding: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "onboarding_completed_total",
			Help:      "Onboardings completados por plan",
		}, []string{"plan"}),
		httpDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Latencia de las peticiones HTTP",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
}

func (r *Recorder) LoginAttempt(result string)      { r.logins.WithLabelValues(result).Inc() }
func (r *Recorder) GuardDecision(outcome string)    { r.guard.WithLabelValues(outcome).Inc() }
func (r *Recorder) Registration(role string)        { r.registrations.WithLabelValues(role).Inc() }
func (r *Recorder) OnboardingCompleted(plan string) { r.onboarding.WithLabelValues(plan).Inc() }

// ObserveRequest registra la latencia de una petición. route es el patrón, no el path crudo.
func (r *Recorder) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	r.httpDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(elapsed.Seconds())
}

// Registry expone el registry (tests y exportadores adicionales).
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler handler HTTP de exposición en formato Prometheus.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}
