package game

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus series backing PerformanceMetrics(). Bounded cardinality
// throughout, no per-entity labels: only what the engine's own tick loop
// produces, since the core ships no network surface of its own.
var (
	physicsDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "wolfpack_physics_duration_seconds",
		Help:    "Time spent in the physics-integration phase of a tick",
		Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025},
	})

	collisionDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "wolfpack_collision_duration_seconds",
		Help:    "Time spent in the collision phase of a tick",
		Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025},
	})

	collisionChecks = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "wolfpack_collision_checks",
		Help: "Narrow-phase collision checks performed in the last tick",
	})

	entityCount = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "wolfpack_entity_count",
		Help: "Entities tracked by the store (active + not-yet-compacted)",
	})

	activeEntityCount = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "wolfpack_active_entity_count",
		Help: "Currently active entities",
	})

	eventLogTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wolfpack_event_log_total",
		Help: "Total diagnostic events logged",
	})

	eventLogDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wolfpack_event_log_dropped_total",
		Help: "Diagnostic events dropped by rate limiting or buffer backpressure",
	})
)

// PerformanceMetrics is the snapshot returned by Engine.PerformanceMetrics().
type PerformanceMetrics struct {
	PhysicsTimeMs    float64
	CollisionTimeMs  float64
	CollisionChecks  int
	EntityCount      int
	ActiveEntities   int
}

// RecordPhysics records one tick's physics-phase duration.
func RecordPhysics(d time.Duration) { physicsDuration.Observe(d.Seconds()) }

// RecordCollision records one tick's collision-phase duration and the
// number of narrow-phase checks it performed.
func RecordCollision(d time.Duration, checks int) {
	collisionDuration.Observe(d.Seconds())
	collisionChecks.Set(float64(checks))
}

// UpdateEntityCounts refreshes the entity-count gauges.
func UpdateEntityCounts(total, active int) {
	entityCount.Set(float64(total))
	activeEntityCount.Set(float64(active))
}

// UpdateEventLogStats mirrors the event log's running totals onto the
// prometheus counters. Counters only move forward, so the caller passes
// cumulative totals and this adds the delta since the last call.
var lastEventTotal, lastEventDropped uint64

func UpdateEventLogStats(total, dropped uint64) {
	if total > lastEventTotal {
		eventLogTotal.Add(float64(total - lastEventTotal))
		lastEventTotal = total
	}
	if dropped > lastEventDropped {
		eventLogDropped.Add(float64(dropped - lastEventDropped))
		lastEventDropped = dropped
	}
}

// The prometheus registry populated above is read by
// internal/observability's debug server, a separate host-level process
// that the core never starts itself.
