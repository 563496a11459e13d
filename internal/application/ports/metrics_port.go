package ports

// Resultados de login registrados en métricas.
const (
	LoginSucceeded          = "success"
	LoginInvalidCredentials = "invalid_credentials"
	LoginForbidden          = "forbidden"
)

// Resultados del guard registrados en métricas.
const (
	GuardAllowed         = "allowed"
	GuardUnauthenticated = "unauthenticated"
	GuardForbidden       = "forbidden"
)

// MetricsRecorder puerto de salida para contadores de negocio.
// El adaptador Prometheus vive en infrastructure/metrics.
type MetricsRecorder interface {
	LoginAttempt(result string)
	GuardDecision(outcome string)
	Registration(role string)
	OnboardingCompleted(plan string)
}

// NopMetrics descarta todas las métricas.
type NopMetrics struct{}

func (NopMetrics) LoginAttempt(string)        {}
func (NopMetrics) GuardDecision(string)       {}
func (NopMetrics) Registration(string)        {}
func (NopMetrics) OnboardingCompleted(string) {}
