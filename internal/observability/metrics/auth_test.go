package metrics

import (
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	domainauth "github.com/target/penuel-portal/internal/domain/auth"
)

func TestAuthMetrics_Counters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewAuthMetrics(reg)

	m.ObserveLogin(ResultSuccess, nil)
	m.ObserveLogin(ResultInvalid, nil)
	m.ObserveLogin(ResultInvalid, nil)
	m.ObserveDecision(domainauth.TierOwnerOnly, domainauth.Deny("/dashboard/operations"))
	m.ObserveDecision(domainauth.TierAnyStaff, domainauth.Allow())
	m.ObserveSelfHeal("route_guard")
	m.ObserveHTTP(http.MethodGet, "/gate", http.StatusOK, 5*time.Millisecond)

	assert.InDelta(t, 1, testutil.ToFloat64(m.logins.WithLabelValues(ResultSuccess, "")), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(m.logins.WithLabelValues(ResultInvalid, "")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.decisions.WithLabelValues("owner_only", "deny")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.decisions.WithLabelValues("any_staff", "allow")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.selfHeals.WithLabelValues("route_guard")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "/gate", "200")), 0)
}

func TestAuthMetrics_NilSafe(t *testing.T) {
	var m *AuthMetrics
	assert.NotPanics(t, func() {
		m.ObserveLogin(ResultError, nil)
		m.ObserveDecision(domainauth.TierDepartmentScoped, domainauth.Allow())
		m.ObserveSelfHeal("x")
		m.ObserveHTTP("GET", "/", 200, time.Millisecond)
	})
}
