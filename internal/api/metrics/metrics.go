// Package metrics defines and registers all custom Prometheus metrics for
// the process tracker API. It is the single source of truth for metric
// names, labels, and help strings.
//
// Metrics register with the default Prometheus registry at import time via
// promauto; the /metrics endpoint exposes them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "tracker"

// ── Sync metrics ─────────────────────────────────────────────────────────────

// ProcessSyncsTotal counts process create/upsert submissions by outcome.
// Labels:
//   - outcome: "created", "updated", "stale" (write silently discarded),
//     "rejected_deleted" (tombstoned id), "error"
var ProcessSyncsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "process_syncs_total",
		Help:      "Total number of process sync submissions, by outcome.",
	},
	[]string{"outcome"},
)

// StaleWritesDroppedTotal counts conditional updates whose editAt predicate
// failed. The caller sees success; this counter is the only visible trace.
var StaleWritesDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "stale_writes_dropped_total",
		Help:      "Total number of writes silently discarded because the stored editAt was newer.",
	},
)

// BatchItemsTotal counts per-element outcomes of bulk operations.
// Labels:
//   - op: "create", "update_steps", "delete"
//   - result: "ok" or "error"
var BatchItemsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "batch_items_total",
		Help:      "Total number of bulk operation elements processed, by operation and result.",
	},
	[]string{"op", "result"},
)

// TombstonesCreatedTotal counts process deletions that recorded a new
// tombstone (repeat deletes are not counted).
var TombstonesCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tombstones_created_total",
		Help:      "Total number of tombstones recorded for deleted processes.",
	},
)

// ── Read-side metrics ────────────────────────────────────────────────────────

// SummaryCacheTotal counts edit-summary cache lookups.
// Label:
//   - result: "hit" or "miss"
var SummaryCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "summary_cache_total",
		Help:      "Total number of edit-summary cache lookups, by result (hit/miss).",
	},
	[]string{"result"},
)

// InvalidationQueueDepth tracks pending cache invalidations per dispatcher
// worker channel.
var InvalidationQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "invalidation_queue_depth",
		Help:      "Current number of cache invalidations pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
