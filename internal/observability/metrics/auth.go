package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	domainauth "github.com/target/penuel-portal/internal/domain/auth"
	obserrors "github.com/target/penuel-portal/internal/observability/errors"
)

// Result constants for metric labels.
const (
	ResultSuccess = "success"
	ResultInvalid = "invalid_credentials"
	ResultError   = "error"
)

const namespace = "penuel"

// AuthMetrics holds the portal's Prometheus collectors.
// A nil *AuthMetrics is valid and records nothing.
type AuthMetrics struct {
	logins       *prometheus.CounterVec
	decisions    *prometheus.CounterVec
	selfHeals    *prometheus.CounterVec
	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
}

// NewAuthMetrics registers the collectors with reg.
func NewAuthMetrics(reg prometheus.Registerer) *AuthMetrics {
	f := promauto.With(reg)
	return &AuthMetrics{
		logins: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "login_attempts_total",
			Help:      "Login attempts by result.",
		}, []string{"result", "error_class"}),
		decisions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "access_decisions_total",
			Help:      "Route guard decisions by tier and outcome.",
		}, []string{"tier", "outcome"}),
		selfHeals: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "session_self_heals_total",
			Help:      "Partial sessions cleared on read.",
		}, []string{"source"}),
		httpRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}

// ObserveLogin counts one login attempt.
func (m *AuthMetrics) ObserveLogin(result string, err error) {
	if m == nil {
		return
	}
	class := ""
	if result == ResultError {
		class = obserrors.Classify(err)
	}
	m.logins.WithLabelValues(result, class).Inc()
}

// ObserveDecision counts one access decision.
func (m *AuthMetrics) ObserveDecision(tier domainauth.Tier, d domainauth.Decision) {
	if m == nil {
		return
	}
	outcome := "deny"
	if d.Allowed {
		outcome = "allow"
	}
	m.decisions.WithLabelValues(string(tier), outcome).Inc()
}

// ObserveSelfHeal counts one cleared partial session.
func (m *AuthMetrics) ObserveSelfHeal(source string) {
	if m == nil {
		return
	}
	m.selfHeals.WithLabelValues(source).Inc()
}

// ObserveHTTP records one served request. route must be a bounded label
// (a registered pattern, not the raw path).
func (m *AuthMetrics) ObserveHTTP(method, route string, status int, dur time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(dur.Seconds())
}
