package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counterValue(t *testing.T, reg *prometheus.Registry, name string, labels map[string]string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			if matches(m, labels) {
				return m.GetCounter().GetValue()
			}
		}
	}
	return 0
}

func matches(m *dto.Metric, labels map[string]string) bool {
	for _, lp := range m.GetLabel() {
		if want, ok := labels[lp.GetName()]; ok && want != lp.GetValue() {
			return false
		}
	}
	return true
}

func TestRecorderCounts(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := NewWithRegisterer(reg)

	r.RecordActivity("fund_viewed", "kafka")
	r.RecordActivity("fund_viewed", "kafka")
	r.RecordActivityDropped("buffer_full")
	r.RecordCacheLookup("screener", true)
	r.RecordCacheLookup("screener", false)
	r.RecordVerification("pan", true)
	r.RecordError("clickhouse_insert")
	r.RecordLatency("screen", 0.01)

	assert.Equal(t, 2.0, counterValue(t, reg, "tickfunds_activity_events_total", map[string]string{"kind": "fund_viewed"}))
	assert.Equal(t, 1.0, counterValue(t, reg, "tickfunds_activity_dropped_total", nil))
	assert.Equal(t, 1.0, counterValue(t, reg, "tickfunds_cache_lookups_total", map[string]string{"result": "hit"}))
	assert.Equal(t, 1.0, counterValue(t, reg, "tickfunds_kyc_verifications_total", map[string]string{"step": "pan", "result": "verified"}))
	assert.Equal(t, 1.0, counterValue(t, reg, "tickfunds_errors_total", map[string]string{"type": "clickhouse_insert"}))
}
