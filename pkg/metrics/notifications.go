package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// NotificationMetrics tracks the toast queue lifecycle.
type NotificationMetrics struct {
	pushed  *prometheus.CounterVec
	removed *prometheus.CounterVec
	live    prometheus.Gauge
}

// NewNotificationMetrics registers the notification metrics on the provided registerer.
func NewNotificationMetrics(reg prometheus.Registerer) *NotificationMetrics {
	if reg == nil {
		return &NotificationMetrics{}
	}
	pushed := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "notifications_pushed_total",
		Help: "Notifications pushed by kind.",
	}, []string{"kind"})
	removed := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "notifications_removed_total",
		Help: "Notifications removed by reason.",
	}, []string{"reason"})
	live := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "notifications_live",
		Help: "Notifications currently live across all queues.",
	})
	reg.MustRegister(pushed, removed, live)
	return &NotificationMetrics{
		pushed:  pushed,
		removed: removed,
		live:    live,
	}
}

// ObservePush records a pushed notification.
func (n *NotificationMetrics) ObservePush(kind string) {
	if n == nil || n.pushed == nil {
		return
	}
	n.pushed.WithLabelValues(normalizeLabel(kind)).Inc()
	n.live.Inc()
}

// ObserveRemoval records a removed notification.
func (n *NotificationMetrics) ObserveRemoval(reason string) {
	if n == nil || n.removed == nil {
		return
	}
	n.removed.WithLabelValues(normalizeLabel(reason)).Inc()
	n.live.Dec()
}
