package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
)

// EngineMetrics are the Prometheus counters an Engine updates as it
// dispatches events. They are gathered in-process and logged as a
// one-line summary at the end of a run (Snapshot); this CLI never
// serves a /metrics endpoint, since network transport is out of scope.
type EngineMetrics struct {
	registry        *prometheus.Registry
	EventsProcessed prometheus.Counter
	AccountsFrozen  prometheus.Counter
	ParseErrors     prometheus.Counter
}

// NewEngineMetrics builds a fresh, independent metric set backed by its
// own registry so concurrent test runs never collide on prometheus's
// global default registry.
func NewEngineMetrics() *EngineMetrics {
	reg := prometheus.NewRegistry()
	m := &EngineMetrics{
		registry: reg,
		EventsProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ledger_events_processed_total",
			Help: "Events that reached Account.Apply.",
		}),
		AccountsFrozen: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ledger_accounts_frozen_total",
			Help: "Accounts that transitioned to Frozen via Chargeback.",
		}),
		ParseErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ledger_parse_errors_total",
			Help: "Malformed input rows that terminated the source stream.",
		}),
	}
	reg.MustRegister(m.EventsProcessed, m.AccountsFrozen, m.ParseErrors)
	return m
}

// Snapshot gathers the current counter values for a single structured
// log line.
func (m *EngineMetrics) Snapshot() map[string]float64 {
	mfs, err := m.registry.Gather()
	if err != nil {
		return nil
	}
	out := make(map[string]float64, len(mfs))
	for _, mf := range mfs {
		for _, metric := range mf.GetMetric() {
			if c := metric.GetCounter(); c != nil {
				out[mf.GetName()] = c.GetValue()
			}
		}
	}
	return out
}
