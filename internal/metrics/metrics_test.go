package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestNewMetricsForTesting_Independent(t *testing.T) {
	a := NewMetricsForTesting()
	b := NewMetricsForTesting()

	a.AlertsSent.Inc()
	a.SafePoints.WithLabelValues("last_resort").Inc()

	assert.Equal(t, 1.0, testutil.ToFloat64(a.AlertsSent))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.AlertsSent))
	assert.Equal(t, 1.0, testutil.ToFloat64(a.SafePoints.WithLabelValues("last_resort")))
}

func TestMetrics_RegisterInFreshRegistry(t *testing.T) {
	m := NewMetricsForTesting()
	reg := prometheus.NewRegistry()

	assert.NotPanics(t, func() {
		reg.MustRegister(m.ConnectedClients, m.Sweeps, m.SweepDuration)
	})

	m.ConnectedClients.Set(3)
	m.Sweeps.WithLabelValues("ok").Inc()

	count, err := testutil.GatherAndCount(reg)
	assert.NoError(t, err)
	assert.Equal(t, 3, count)
}
