// Package metrics defines the Prometheus metrics of the site backend. All
// metrics register with the default registry, which /metrics exposes.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "seltronik"

// ── HTTP ──────────────────────────────────────────────────────────────────────

// HTTPRequestsTotal counts handled requests.
// Labels:
//   - method: HTTP method
//   - route: the gin route template (e.g. "/produk/:slug"), "unmatched" otherwise
//   - status: response status code
var HTTPRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests, by method, route and status.",
	},
	[]string{"method", "route", "status"},
)

// HTTPRequestDuration measures request latency.
var HTTPRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests, by method and route.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method", "route"},
)

// ── Edge ──────────────────────────────────────────────────────────────────────

// GuardDecisionsTotal counts route guard outcomes.
// Labels:
//   - class: public, auth-only, admin-only, admin-login
//   - outcome: "allow" or the redirect destination
var GuardDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_decisions_total",
		Help:      "Total number of route guard decisions, by route class and outcome.",
	},
	[]string{"class", "outcome"},
)

// SessionResolutionsTotal counts how sessions were resolved at the edge.
// Label:
//   - source: "access", "refresh", "firebase", "anonymous"
var SessionResolutionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_resolutions_total",
		Help:      "Total number of session resolutions, by credential source.",
	},
	[]string{"source"},
)

// RoleLookupsTotal counts profile role lookups.
// Label:
//   - result: "ok" or "error"
var RoleLookupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "role_lookups_total",
		Help:      "Total number of profile role lookups made by the route guard.",
	},
	[]string{"result"},
)

// RateLimitedTotal counts requests rejected by the rate limiter.
var RateLimitedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_limited_total",
		Help:      "Total number of requests rejected by the per-IP rate limiter.",
	},
)

// ── Catalog ───────────────────────────────────────────────────────────────────

// CatalogSearchesTotal counts catalog searches.
// Label:
//   - backend: "elasticsearch" or "database"
var CatalogSearchesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "catalog_searches_total",
		Help:      "Total number of catalog searches, by backend.",
	},
	[]string{"backend"},
)

// CatalogReindexTotal counts full index rebuilds.
// Label:
//   - result: "success", "partial" or "error"
var CatalogReindexTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "catalog_reindex_total",
		Help:      "Total number of catalog index rebuilds, by result.",
	},
	[]string{"result"},
)

// ContactMessagesTotal counts stored contact messages.
var ContactMessagesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "contact_messages_total",
		Help:      "Total number of contact messages received.",
	},
)
