package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// AppMetrics records request handling and identity-sync activity.
type AppMetrics struct {
	httpDuration  *prometheus.HistogramVec
	webhookEvents *prometheus.CounterVec
	verifications *prometheus.CounterVec
	keyRefreshes  *prometheus.CounterVec
}

// NewAppMetrics registers the application metrics on the provided registerer.
func NewAppMetrics(reg prometheus.Registerer) *AppMetrics {
	if reg == nil {
		return &AppMetrics{}
	}
	httpDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route", "method", "status"})
	webhookEvents := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "webhook_events_total",
		Help: "Identity webhook events received, by type and outcome.",
	}, []string{"type", "outcome"})
	verifications := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "credential_verifications_total",
		Help: "Bearer credential verification attempts, by outcome.",
	}, []string{"outcome"})
	keyRefreshes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "signing_key_refreshes_total",
		Help: "Signing key cache refreshes, by outcome.",
	}, []string{"outcome"})
	reg.MustRegister(httpDuration, webhookEvents, verifications, keyRefreshes)
	return &AppMetrics{
		httpDuration:  httpDuration,
		webhookEvents: webhookEvents,
		verifications: verifications,
		keyRefreshes:  keyRefreshes,
	}
}

// ObserveHTTPRequest records the duration of a handled request.
func (m *AppMetrics) ObserveHTTPRequest(route, method string, status int, duration time.Duration) {
	if m == nil || m.httpDuration == nil {
		return
	}
	m.httpDuration.WithLabelValues(normalizeLabel(route), normalizeLabel(method), strconv.Itoa(status)).Observe(duration.Seconds())
}

// IncWebhookEvent increments the webhook event counter for the given type and outcome.
func (m *AppMetrics) IncWebhookEvent(eventType, outcome string) {
	if m == nil || m.webhookEvents == nil {
		return
	}
	m.webhookEvents.WithLabelValues(normalizeLabel(eventType), normalizeLabel(outcome)).Inc()
}

// IncVerification increments the credential verification counter for the given outcome.
func (m *AppMetrics) IncVerification(outcome string) {
	if m == nil || m.verifications == nil {
		return
	}
	m.verifications.WithLabelValues(normalizeLabel(outcome)).Inc()
}

// IncKeyRefresh increments the signing key refresh counter for the given outcome.
func (m *AppMetrics) IncKeyRefresh(outcome string) {
	if m == nil || m.keyRefreshes == nil {
		return
	}
	m.keyRefreshes.WithLabelValues(normalizeLabel(outcome)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}

// Outcome labels shared by the counters above.
const (
	OutcomeOK       = "ok"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
	OutcomeIgnored  = "ignored"
	OutcomeReplay   = "replay"
)
