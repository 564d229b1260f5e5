// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package metrics holds the prometheus collectors for the cache layer and
// upstream Zotero calls.
package metrics

import (
	"net/http"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "papers_list"

// Metrics holds the application collectors.
type Metrics struct {
	// CacheEvents counts cache outcomes by event (hit, miss, expired,
	// decode_failed) and keyspace (list, item).
	CacheEvents *prometheus.CounterVec

	// UpstreamRequests counts Zotero API calls by status code and method.
	UpstreamRequests *prometheus.CounterVec

	// UpstreamLatency observes Zotero API call duration.
	UpstreamLatency *prometheus.HistogramVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		CacheEvents: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_events_total",
			Help:      "Cache lookups by outcome",
		}, []string{"event", "keyspace"}),

		UpstreamRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_requests_total",
			Help:      "Requests sent to the Zotero API",
		}, []string{"code", "method"}),

		UpstreamLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upstream_request_duration_seconds",
			Help:      "Zotero API request latency in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
		}, []string{"code", "method"}),
	}
}

// Hit records a live cache entry.
func (m *Metrics) Hit(key string) { m.record("hit", key) }

// Miss records a missing cache entry.
func (m *Metrics) Miss(key string) { m.record("miss", key) }

// Expired records an entry found past its TTL.
func (m *Metrics) Expired(key string) { m.record("expired", key) }

// DecodeFailed records an entry that could not be decoded.
func (m *Metrics) DecodeFailed(key string) { m.record("decode_failed", key) }

func (m *Metrics) record(event, key string) {
	m.CacheEvents.WithLabelValues(event, keyspace(key)).Inc()
}

// keyspace collapses cache keys to a bounded label: "papers:list" is
// "list", every other key is "item".
func keyspace(key string) string {
	if strings.HasSuffix(key, ":list") {
		return "list"
	}
	return "item"
}

// InstrumentTransport wraps next so every upstream round trip is counted
// and timed. A nil next uses http.DefaultTransport.
func (m *Metrics) InstrumentTransport(next http.RoundTripper) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	return promhttp.InstrumentRoundTripperCounter(m.UpstreamRequests,
		promhttp.InstrumentRoundTripperDuration(m.UpstreamLatency, next))
}
