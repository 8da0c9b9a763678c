package metrics

import (
	"testing"
	"time"

	"github.com/dmitrijs2005/authkernel/internal/server/services"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ services.Recorder = (*Metrics)(nil)

func TestMetrics_Operations(t *testing.T) {
	m := New()

	m.ObserveRegister(services.OutcomeSuccess)
	m.ObserveRegister(services.OutcomeDuplicate)
	m.ObserveLogin(services.OutcomeInvalidCredentials)
	m.ObserveLogin(services.OutcomeInvalidCredentials)
	m.ObserveVerify(services.OutcomeExpired)
	m.ObserveProfile(services.OutcomeNotFound)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.operations.WithLabelValues("register", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.operations.WithLabelValues("register", "duplicate")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.operations.WithLabelValues("login", "invalid_credentials")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.operations.WithLabelValues("verify", "expired")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.operations.WithLabelValues("profile", "not_found")))
}

func TestMetrics_Registered(t *testing.T) {
	m := New()
	m.ObserveRegister(services.OutcomeSuccess)
	m.ObserveHash(20 * time.Millisecond)

	families, err := m.Registry().Gather()
	require.NoError(t, err)

	registered := make(map[string]bool)
	for _, family := range families {
		registered[family.GetName()] = true
	}

	for _, name := range []string{
		"authkernel_operations_total",
		"authkernel_password_hash_duration_seconds",
		"go_goroutines",
	} {
		assert.True(t, registered[name], "metric %q should be registered", name)
	}

	assert.Equal(t, 1, testutil.CollectAndCount(m.hashTime))
}

func TestMetrics_SeparateRegistries(t *testing.T) {
	a, b := New(), New()
	a.ObserveVerify(services.OutcomeSuccess)

	assert.Equal(t, 0.0, testutil.ToFloat64(b.operations.WithLabelValues("verify", "success")))
}
