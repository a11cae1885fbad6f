package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TransitionsTotal counts committed report status transitions by new status.
	TransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "report_transitions_total",
		Help: "Committed report status transitions, labeled by new status.",
	}, []string{"status"})

	// AssignConflictsTotal counts dispatch attempts lost to the invariant checks.
	AssignConflictsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "assignment_conflicts_total",
		Help: "Dispatch attempts rejected by the exclusivity invariants.",
	}, []string{"reason"})

	// NotificationFailuresTotal counts notification writes that exhausted retries.
	NotificationFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "notification_failures_total",
		Help: "Notification rows that could not be written after retries.",
	})

	// EventsDroppedTotal counts status events dropped by a full dispatch queue.
	EventsDroppedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "status_events_dropped_total",
		Help: "Status-change events dropped because the dispatch queue was full.",
	})
)
