package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWithRegistry("barberflow", reg)

	m.BookingConflicts.WithLabelValues("create_booking").Inc()
	m.BookingConflicts.WithLabelValues("create_booking").Inc()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.BookingConflicts.WithLabelValues("create_booking")))

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.IncBookingCreated(1)
		m.IncBookingConflict("reschedule_booking")
	})
}
