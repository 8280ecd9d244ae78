package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Join outcomes used as metric labels.
const (
	OutcomeJoined      = "joined"
	OutcomeNotFound    = "not_found"
	OutcomeUnsatisfied = "condition_unsatisfied"
	OutcomeExhausted   = "capacity_exhausted"
	OutcomeLockTimeout = "lock_timeout"
	OutcomeError       = "error"
)

var (
	// JoinDuration tracks the latency of join attempts by outcome.
	JoinDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "campaign_join_duration_seconds",
			Help: "Duration of campaign join attempts in seconds",
			Buckets: []float64{
				0.001, // 1ms
				0.005, // 5ms
				0.01,  // 10ms
				0.025, // 25ms
				0.05,  // 50ms
				0.1,   // 100ms
				0.25,  // 250ms
				0.5,   // 500ms
				1.0,   // 1s
				2.5,   // 2.5s
				5.0,   // 5s
			},
		},
		[]string{"outcome"},
	)

	// RewardDispatches counts reward hand-offs by result.
	RewardDispatches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reward_dispatch_total",
			Help: "Reward disbursement calls by result",
		},
		[]string{"result"}, // success, failure or dropped
	)

	// RewardQueueDepth reports events waiting for a reward worker.
	RewardQueueDepth = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "reward_queue_depth",
			Help: "Joined events waiting for reward disbursement",
		},
	)
)

// RecordJoinDuration records the duration of a join attempt.
func RecordJoinDuration(outcome string, seconds float64) {
	JoinDuration.WithLabelValues(outcome).Observe(seconds)
}

// RecordRewardDispatch counts one reward hand-off result.
func RecordRewardDispatch(result string) {
	RewardDispatches.WithLabelValues(result).Inc()
}
