package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/kilianp07/mentormatch/core/metrics"
)

// PromSink records scheduling events in Prometheus metrics.
type PromSink struct {
	solves   *prometheus.CounterVec
	duration *prometheus.HistogramVec
	repairs  *prometheus.CounterVec
	moves    prometheus.Counter
}

// NewPromSink registers scheduling metrics on the provided Prometheus
// registerer. If reg is nil, the default registerer is used. If the
// collectors are already registered, the existing ones are reused.
func NewPromSink(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	solves := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "schedule_solves_total",
		Help: "Total number of solver invocations",
	}, []string{"component", "status"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "schedule_solve_duration_seconds",
		Help:    "Wall time of one solver invocation",
		Buckets: prometheus.DefBuckets,
	}, []string{"component", "status"})
	repairs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "schedule_repairs_total",
		Help: "Total number of auto-repair attempts",
	}, []string{"mode", "resolved"})
	moves := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "schedule_repair_moves_total",
		Help: "Total number of committed repair moves",
	})

	for _, c := range []prometheus.Collector{solves, duration, repairs, moves} {
		if err := reg.Register(c); err != nil {
			are, ok := err.(prometheus.AlreadyRegisteredError)
			if !ok {
				return nil, err
			}
			switch existing := are.ExistingCollector.(type) {
			case *prometheus.CounterVec:
				if c == solves {
					solves = existing
				} else {
					repairs = existing
				}
			case *prometheus.HistogramVec:
				duration = existing
			case prometheus.Counter:
				moves = existing
			}
		}
	}

	return &PromSink{solves: solves, duration: duration, repairs: repairs, moves: moves}, nil
}

// RecordSolve increments the solve counter and observes the duration.
func (s *PromSink) RecordSolve(ev coremetrics.SolveEvent) error {
	s.solves.WithLabelValues(ev.Component, ev.Status).Inc()
	s.duration.WithLabelValues(ev.Component, ev.Status).Observe(ev.Duration.Seconds())
	return nil
}

// RecordRepair increments the repair counters.
func (s *PromSink) RecordRepair(ev coremetrics.RepairEvent) error {
	resolved := "false"
	if ev.Resolved {
		resolved = "true"
	}
	s.repairs.WithLabelValues(ev.Mode, resolved).Inc()
	s.moves.Add(float64(ev.Moves))
	return nil
}
