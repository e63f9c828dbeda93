package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds the application counters. A nil *Registry is valid and
// records nothing, which keeps tests free of metric wiring.
type Registry struct {
	reg *prometheus.Registry

	OrdersCreated      prometheus.Counter
	OrdersRejected     *prometheus.CounterVec
	NotificationsSent  *prometheus.CounterVec
	NotificationsFail  *prometheus.CounterVec
	NotificationsEmpty *prometheus.CounterVec
	PushLatencySec     prometheus.Histogram
}

func NewRegistry() *Registry {
	r := prometheus.NewRegistry()

	ordersCreated := prometheus.NewCounter(prometheus.CounterOpts{Name: "cafe_orders_created_total"})
	ordersRejected := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "cafe_orders_rejected_total"}, []string{"code"})
	sent := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "cafe_notifications_sent_total"}, []string{"kind"})
	failed := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "cafe_notifications_failed_total"}, []string{"kind"})
	skipped := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "cafe_notifications_skipped_total"}, []string{"kind"})
	latency := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "cafe_notification_push_seconds",
		Buckets: prometheus.DefBuckets,
	})

	r.MustRegister(
		collectors.NewGoCollector(),
		ordersCreated, ordersRejected, sent, failed, skipped, latency,
	)
	return &Registry{
		reg:                r,
		OrdersCreated:      ordersCreated,
		OrdersRejected:     ordersRejected,
		NotificationsSent:  sent,
		NotificationsFail:  failed,
		NotificationsEmpty: skipped,
		PushLatencySec:     latency,
	}
}

func (r *Registry) Handler() http.Handler { return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{}) }

func (r *Registry) OrderCreated() {
	if r == nil {
		return
	}
	r.OrdersCreated.Inc()
}

func (r *Registry) OrderRejected(code string) {
	if r == nil {
		return
	}
	r.OrdersRejected.WithLabelValues(code).Inc()
}

func (r *Registry) PushSent(kind string, seconds float64) {
	if r == nil {
		return
	}
	r.NotificationsSent.WithLabelValues(kind).Inc()
	r.PushLatencySec.Observe(seconds)
}

func (r *Registry) PushFailed(kind string, seconds float64) {
	if r == nil {
		return
	}
	r.NotificationsFail.WithLabelValues(kind).Inc()
	r.PushLatencySec.Observe(seconds)
}

func (r *Registry) DispatchSkipped(kind string) {
	if r == nil {
		return
	}
	r.NotificationsEmpty.WithLabelValues(kind).Inc()
}
