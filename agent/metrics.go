package agent

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("dstarlite/agent")

var (
	// agentSteps counts controller steps by outcome
	agentSteps = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dstarlite_agent_steps_total",
		Help: "Total agent steps by outcome",
	}, []string{"outcome"})

	// replanExpansions tracks vertices expanded per step
	replanExpansions = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "dstarlite_replan_expansions",
		Help:    "Vertices expanded by the planner per agent step",
		Buckets: prometheus.ExponentialBuckets(1, 2, 14), // 1 to ~8k
	})

	// cellsDiscovered counts cells whose obstacle status an agent newly observed
	cellsDiscovered = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dstarlite_cells_discovered_total",
		Help: "Total cells whose obstacle status changed in an agent's belief",
	})

	// simulationTicks counts completed simulation ticks
	simulationTicks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dstarlite_simulation_ticks_total",
		Help: "Total simulation ticks",
	})
)
