package service

import "github.com/prometheus/client_golang/prometheus"

var (
	challengeTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "calixo_challenge_transitions_total",
			Help: "User challenge status transitions",
		},
		[]string{"status"},
	)
	coinsCredited = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "calixo_coins_credited_total",
			Help: "Coins credited through reward claims",
		},
	)
	reportsSubmitted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "calixo_reports_submitted_total",
			Help: "Reports accepted, by target type",
		},
		[]string{"target_type"},
	)
)

// RegisterMetrics exposes the domain counters on reg.
func RegisterMetrics(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{challengeTransitions, coinsCredited, reportsSubmitted} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}
