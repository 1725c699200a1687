package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	UsersCreated       prometheus.Counter
	UsersDeleted       prometheus.Counter
	Logins             *prometheus.CounterVec
	AuthFailures       prometheus.Counter
	ForbiddenMutations *prometheus.CounterVec
	RequestLatency     *prometheus.HistogramVec
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		UsersCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "pawboard_users_created_total",
			Help: "Total number of accounts created.",
		}),
		UsersDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "pawboard_users_deleted_total",
			Help: "Total number of accounts withdrawn.",
		}),
		Logins: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "pawboard_logins_total",
			Help: "Login attempts by outcome.",
		}, []string{"outcome"}),
		AuthFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "pawboard_auth_failures_total",
			Help: "Requests rejected by the auth middleware.",
		}),
		ForbiddenMutations: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "pawboard_forbidden_mutations_total",
			Help: "Mutations rejected by the ownership guard, by resource.",
		}, []string{"resource"}),
		RequestLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "pawboard_request_duration_seconds",
			Help:    "HTTP request latency by route and status.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "status"}),
	}
}

// IncrementUsersCreated increments the users created counter by 1.
func (m *Metrics) IncrementUsersCreated() {
	if m != nil {
		m.UsersCreated.Inc()
	}
}

// IncrementUsersDeleted increments the users deleted counter by 1.
func (m *Metrics) IncrementUsersDeleted() {
	if m != nil {
		m.UsersDeleted.Inc()
	}
}

// IncrementLogin records a login attempt outcome (success, email_not_found,
// password_mismatch).
func (m *Metrics) IncrementLogin(outcome string) {
	if m != nil {
		m.Logins.WithLabelValues(outcome).Inc()
	}
}

// IncrementAuthFailure records a request rejected by RequireAuth.
func (m *Metrics) IncrementAuthFailure() {
	if m != nil {
		m.AuthFailures.Inc()
	}
}

// IncrementForbidden records an ownership guard rejection.
func (m *Metrics) IncrementForbidden(resource string) {
	if m != nil {
		m.ForbiddenMutations.WithLabelValues(resource).Inc()
	}
}

// ObserveRequest records a completed request's latency.
func (m *Metrics) ObserveRequest(route, status string, seconds float64) {
	if m != nil {
		m.RequestLatency.WithLabelValues(route, status).Observe(seconds)
	}
}
