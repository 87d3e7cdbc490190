package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"
)

func TestObserveCommandExecutedIncrementsCounter(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveCommandExecuted("CreateEpoch", "ok")
	m.ObserveCommandExecuted("CreateEpoch", "ok")

	families, err := reg.Gather()
	require.NoError(t, err)

	var found *dto.MetricFamily
	for _, f := range families {
		if f.GetName() == "governance_commands_executed_total" {
			found = f
		}
	}
	require.NotNil(t, found)
	require.EqualValues(t, 2, found.Metric[0].GetCounter().GetValue())
}

func TestNilMetricsAreSafeToCall(t *testing.T) {
	var m *Metrics
	require.NotPanics(t, func() {
		m.ObserveCommandExecuted("x", "y")
		m.ObserveEpochClosed()
		m.SetCurrentEpochSeats(5)
	})
}
