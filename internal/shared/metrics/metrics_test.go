package metrics_test

import (
	"testing"

	"go-absensi/internal/shared/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_ObserveSubmission(t *testing.T) {
	m := metrics.New()

	m.ObserveSubmission(metrics.ResultSuccess)
	m.ObserveSubmission(metrics.ResultSuccess)
	m.ObserveSubmission(metrics.ResultConflict)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Submissions.WithLabelValues(metrics.ResultSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Submissions.WithLabelValues(metrics.ResultConflict)))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *metrics.Metrics
	assert.NotPanics(t, func() {
		m.ObserveSubmission(metrics.ResultError)
		m.ObserveLogin(metrics.ResultError)
	})
}
