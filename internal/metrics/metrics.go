// Package metrics exposes the Prometheus instrumentation for the
// reconciliation pipeline. All collectors are registered on the default
// registry and served via /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WebhooksReceived = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pix_webhooks_received_total",
		Help: "Total inbound webhook deliveries, labelled by outcome.",
	}, []string{"outcome"})

	WebhooksRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pix_webhooks_rejected_total",
		Help: "Total webhook deliveries rejected before auditing, labelled by reason.",
	}, []string{"reason"})

	CredentialRefreshes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pix_credential_refreshes_total",
		Help: "Total OAuth token exchanges against the provider, labelled by status.",
	}, []string{"status"})

	TokenCacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pix_token_cache_lookups_total",
		Help: "Token cache lookups, labelled hit or miss.",
	}, []string{"result"})

	ProviderQueryDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "pix_provider_query_duration_seconds",
		Help:    "Latency of authoritative payment detail queries.",
		Buckets: prometheus.DefBuckets,
	})

	NotificationsSent = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pix_notifications_sent_total",
		Help: "Per-destination notification dispatch attempts, labelled by status.",
	}, []string{"status"})

	ReconcileDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "pix_reconcile_duration_seconds",
		Help:    "End-to-end webhook processing latency after authentication.",
		Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	})
)
