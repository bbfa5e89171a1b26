package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	require.NotPanics(t, func() { RegisterCollectors(reg) })
	assert.Panics(t, func() { RegisterCollectors(reg) })

	before := testutil.ToFloat64(Comparisons.WithLabelValues("available"))
	Comparisons.WithLabelValues("available").Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(Comparisons.WithLabelValues("available")))
}
