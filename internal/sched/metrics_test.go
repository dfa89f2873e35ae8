package sched

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsRecord(t *testing.T) {
	m, err := NewMetrics("test", prometheus.NewRegistry())
	require.NoError(t, err)

	m.taskSubmitted(High)
	m.taskSubmitted(High)
	m.taskSubmitted(Low)
	m.taskCompleted("intake", 10*time.Millisecond)
	m.taskFailed("dispatcher")
	m.taskDropped()
	m.setQueueDepth(3)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.submitted.WithLabelValues("high")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.submitted.WithLabelValues("low")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.completed.WithLabelValues("intake")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.failures.WithLabelValues("dispatcher")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.dropped))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.queueDepth))
}

func TestMetricsDoubleRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewMetrics("test", reg)
	require.NoError(t, err)

	_, err = NewMetrics("test", reg)
	assert.Error(t, err)
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *Metrics
	m.taskSubmitted(High)
	m.taskCompleted("intake", time.Second)
	m.taskFailed("intake")
	m.taskDropped()
	m.setQueueDepth(1)
}
