package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const Namespace = "bed_caller"

var (
	AlarmsFiredTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "alarms_fired_total",
			Help:      "Total number of alarm rings started",
		},
	)

	AlarmsResolvedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "alarms_resolved_total",
			Help:      "Total number of alarms resolved by cause",
		},
		[]string{"cause"},
	)

	CallsPlacedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "calls_placed_total",
			Help:      "Total number of outbound wake-up calls placed",
		},
	)

	CallEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "call_events_total",
			Help:      "Total number of inbound call state events",
		},
		[]string{"state"},
	)

	ChallengesIssuedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "challenges_issued_total",
			Help:      "Total number of strict mode challenges issued",
		},
	)

	CommandsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "commands_total",
			Help:      "Total number of user commands processed",
		},
		[]string{"command"},
	)

	TicksTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "ticks_total",
			Help:      "Total number of scheduler ticks",
		},
	)
)

func RecordAlarmFired() {
	AlarmsFiredTotal.Inc()
}

func RecordAlarmResolved(cause string) {
	AlarmsResolvedTotal.WithLabelValues(cause).Inc()
}

func RecordCallPlaced() {
	CallsPlacedTotal.Inc()
}

func RecordCallEvent(state string) {
	CallEventsTotal.WithLabelValues(state).Inc()
}

func RecordChallengeIssued() {
	ChallengesIssuedTotal.Inc()
}

func RecordCommand(command string) {
	CommandsTotal.WithLabelValues(command).Inc()
}

func RecordTick() {
	TicksTotal.Inc()
}
