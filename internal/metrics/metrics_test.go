package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Counters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveHTTPRequest("/api/leads", "POST", 201, 15*time.Millisecond)
	m.ObserveHTTPRequest("/api/leads", "POST", 201, 20*time.Millisecond)
	m.ObservePartnerRequest("GET", "401", time.Second)
	m.ObservePartnerRequest("GET", "200", time.Second)
	m.LeadCaptured("duplicate")

	require.Equal(t, 2.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("/api/leads", "POST", "201")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.partnerRequests.WithLabelValues("GET", "401")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.leadsCaptured.WithLabelValues("duplicate")))
	require.Equal(t, 1, testutil.CollectAndCount(m.partnerDuration))
}

func TestNew_DuplicateRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg)

	require.Panics(t, func() { New(reg) })
}
