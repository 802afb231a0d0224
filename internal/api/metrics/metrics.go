// Package metrics defines and registers all custom Prometheus metrics for
// the staff portal gateway. It is the single source of truth for metric
// names, labels, and help strings; metrics register with the default
// registry at package init via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "portal"

// LoginsTotal counts login attempts against the directory backend.
// Label:
//   - outcome: "ok" or "failed"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by outcome.",
	},
	[]string{"outcome"},
)

// RosterOpsTotal counts roster row operations.
// Labels:
//   - op: "save" or "delete"
//   - outcome: "ok" or "failed"
var RosterOpsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "roster_ops_total",
		Help:      "Total number of roster save/delete operations, by outcome.",
	},
	[]string{"op", "outcome"},
)

// DirectoryRequestDuration measures outbound directory backend calls.
// Labels:
//   - operation: login, logout, list_users, create_user, update_user, delete_user, csrf
//   - outcome: "ok", "http_error", or "network_error"
var DirectoryRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "directory_request_duration_seconds",
		Help:      "Duration of requests to the directory backend.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"operation", "outcome"},
)

// AuditQueueDepth tracks entries waiting in each audit worker channel.
// Label:
//   - worker_id: numeric worker index
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of audit entries pending per worker channel.",
	},
	[]string{"worker_id"},
)
