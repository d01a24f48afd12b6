package metrics

import "github.com/prometheus/client_golang/prometheus"

// Dispatch holds the counters the command dispatcher reports into.
// All observe helpers are nil-safe so instrumentation stays optional.
type Dispatch struct {
	Commands   *prometheus.CounterVec
	Retries    *prometheus.CounterVec
	Reconnects *prometheus.CounterVec
}

func NewDispatch(reg prometheus.Registerer) *Dispatch {
	d := &Dispatch{
		Commands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "redisreg",
			Name:      "commands_total",
			Help:      "Commands dispatched, by connection and outcome.",
		}, []string{"conn", "status"}),
		Retries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "redisreg",
			Name:      "transient_retries_total",
			Help:      "Commands retried after a transient disconnect.",
		}, []string{"conn"}),
		Reconnects: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "redisreg",
			Name:      "reconnects_total",
			Help:      "Forced handle rebuilds, by connection.",
		}, []string{"conn"}),
	}
	if reg != nil {
		registerCollector(reg, d.Commands)
		registerCollector(reg, d.Retries)
		registerCollector(reg, d.Reconnects)
	}
	return d
}

func (d *Dispatch) ObserveCommand(conn, status string) {
	if d == nil {
		return
	}
	d.Commands.WithLabelValues(conn, status).Inc()
}

func (d *Dispatch) ObserveRetry(conn string) {
	if d == nil {
		return
	}
	d.Retries.WithLabelValues(conn).Inc()
}

func (d *Dispatch) ObserveReconnect(conn string) {
	if d == nil {
		return
	}
	d.Reconnects.WithLabelValues(conn).Inc()
}
