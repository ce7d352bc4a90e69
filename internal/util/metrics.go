package util

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CartItemsAddedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cart_items_added_total",
		Help: "Total number of add-to-cart operations",
	})

	OrdersPlacedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orders_placed_total",
		Help: "Total number of buyer orders placed at checkout",
	})

	OrdersCancelledTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orders_cancelled_total",
		Help: "Total number of cancelled orders",
	})

	OrderTransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "order_status_transitions_total",
		Help: "Total number of order lifecycle transitions",
	}, []string{"status"})

	OrderTransitionsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "order_status_transitions_rejected_total",
		Help: "Total number of rejected order lifecycle transitions",
	}, []string{"reason"})

	OrderMirrorSkippedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "order_mirror_skipped_total",
		Help: "Total number of vendor order transitions without a linked buyer order",
	})

	OnboardingCommittedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "onboarding_committed_total",
		Help: "Total number of vendor businesses created through onboarding",
	})

	OnboardingRejectedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "onboarding_rejected_total",
		Help: "Total number of onboarding steps rejected by validation",
	}, []string{"step"})

	ReviewsSubmittedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "reviews_submitted_total",
		Help: "Total number of reviews submitted",
	})

	NotificationsCreatedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "notifications_created_total",
		Help: "Total number of notifications created",
	}, []string{"type"})

	SnapshotWritesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "snapshot_writes_total",
		Help: "Total number of state snapshots persisted",
	})

	SnapshotWriteFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "snapshot_write_failures_total",
		Help: "Total number of failed snapshot writes",
	})

	SnapshotWriteLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "snapshot_write_latency_seconds",
		Help:    "Latency of snapshot persistence",
		Buckets: prometheus.DefBuckets,
	})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
)
