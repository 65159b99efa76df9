package telemetry_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/ledger/telemetry"
)

func TestEngineMetrics_Snapshot(t *testing.T) {
	m := telemetry.NewEngineMetrics()
	m.EventsProcessed.Inc()
	m.EventsProcessed.Inc()
	m.AccountsFrozen.Inc()

	snap := m.Snapshot()
	require.Equal(t, float64(2), snap["ledger_events_processed_total"])
	require.Equal(t, float64(1), snap["ledger_accounts_frozen_total"])
	require.Equal(t, float64(0), snap["ledger_parse_errors_total"])
}

func TestEngineMetrics_IndependentRegistries(t *testing.T) {
	a := telemetry.NewEngineMetrics()
	b := telemetry.NewEngineMetrics()
	a.EventsProcessed.Inc()

	require.Equal(t, float64(1), a.Snapshot()["ledger_events_processed_total"])
	require.Equal(t, float64(0), b.Snapshot()["ledger_events_processed_total"])
}
