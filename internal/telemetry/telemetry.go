// Package telemetry exposes Prometheus metrics for game sessions.
package telemetry

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vovakirdan/tui-2048/internal/engine"
)

// DefaultNamespace prefixes every metric name.
const DefaultNamespace = "tui2048"

// Collector owns a registry and the session metrics registered in it.
type Collector struct {
	registry *prometheus.Registry

	moves          *prometheus.CounterVec
	points         *prometheus.CounterVec
	targetsReached *prometheus.CounterVec
	gamesOver      *prometheus.CounterVec
	spawnDefects   *prometheus.CounterVec
	activeSessions prometheus.Gauge
	finalScore     *prometheus.HistogramVec
}

// NewCollector creates a collector with its own registry. An empty
// namespace falls back to DefaultNamespace.
func NewCollector(namespace string) *Collector {
	if namespace == "" {
		namespace = DefaultNamespace
	}

	c := &Collector{
		registry: prometheus.NewRegistry(),
		moves: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "session",
				Name:      "moves_total",
				Help:      "Move commands by variant, direction and result.",
			},
			[]string{"variant", "direction", "result"},
		),
		points: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "session",
				Name:      "points_total",
				Help:      "Points scored from merges.",
			},
			[]string{"variant"},
		),
		targetsReached: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "session",
				Name:      "targets_reached_total",
				Help:      "Sessions that reached their target tile.",
			},
			[]string{"variant"},
		),
		gamesOver: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "session",
				Name:      "games_over_total",
				Help:      "Sessions that ran out of moves.",
			},
			[]string{"variant"},
		),
		spawnDefects: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "session",
				Name:      "spawn_defects_total",
				Help:      "Moves whose tile spawn was skipped.",
			},
			[]string{"variant"},
		),
		activeSessions: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "server",
				Name:      "active_sessions",
				Help:      "Connected SSH sessions.",
			},
		),
		finalScore: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "session",
				Name:      "final_score",
				Help:      "Score of each finished or abandoned game.",
				Buckets:   prometheus.ExponentialBuckets(64, 2, 12), // 64 to ~131k
			},
			[]string{"variant"},
		),
	}

	c.registry.MustRegister(
		c.moves,
		c.points,
		c.targetsReached,
		c.gamesOver,
		c.spawnDefects,
		c.activeSessions,
		c.finalScore,
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)
	return c
}

// Registry returns the underlying Prometheus registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// SessionStarted increments the active session gauge.
func (c *Collector) SessionStarted() {
	c.activeSessions.Inc()
}

// SessionEnded decrements the active session gauge.
func (c *Collector) SessionEnded() {
	c.activeSessions.Dec()
}

// ObserveFinalScore records the score of a game that is being discarded.
func (c *Collector) ObserveFinalScore(variant string, score int) {
	c.finalScore.WithLabelValues(variant).Observe(float64(score))
}

// Recorder returns an engine.Observer that records under the given variant.
func (c *Collector) Recorder(variant string) *Recorder {
	return &Recorder{c: c, variant: variant}
}

// Recorder feeds one session's commands into a Collector.
type Recorder struct {
	c       *Collector
	variant string

	targetSeen bool
	overSeen   bool
}

var _ engine.Observer = (*Recorder)(nil)

// Move results used as the "result" label.
const (
	ResultMoved      = "moved"
	ResultNoop       = "noop"
	ResultRejected   = "rejected"
	ResultTerminated = "terminated"
	ResultDefect     = "defect"
)

// ObserveApply implements engine.Observer.
func (r *Recorder) ObserveApply(d engine.Direction, out engine.Outcome, err error) {
	r.c.moves.WithLabelValues(r.variant, d.String(), moveResult(out, err)).Inc()

	if engine.IsDefect(err) {
		r.c.spawnDefects.WithLabelValues(r.variant).Inc()
	}
	if out.Points > 0 {
		r.c.points.WithLabelValues(r.variant).Add(float64(out.Points))
	}
	// Flags are latched per game, count each transition once
	if out.ReachedTarget && !r.targetSeen {
		r.targetSeen = true
		r.c.targetsReached.WithLabelValues(r.variant).Inc()
	}
	if out.GameOver && !r.overSeen {
		r.overSeen = true
		r.c.gamesOver.WithLabelValues(r.variant).Inc()
	}
}

// ObserveReset implements engine.Observer.
func (r *Recorder) ObserveReset(final engine.Snapshot) {
	r.c.ObserveFinalScore(r.variant, final.Score)
	r.targetSeen = false
	r.overSeen = false
}

func moveResult(out engine.Outcome, err error) string {
	switch {
	case engine.IsDefect(err):
		return ResultDefect
	case err == nil && out.Moved:
		return ResultMoved
	case err == nil:
		return ResultNoop
	case out.GameOver:
		return ResultTerminated
	default:
		return ResultRejected
	}
}
