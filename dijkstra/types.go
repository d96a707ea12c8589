// Package dijkstra defines core types and configuration options
// for Dijkstra's shortest-path algorithm on weighted grids.
//
// Dijkstra computes the minimum-cost path from a single source cell to all
// other reachable cells. Edge costs come from gridgraph.Grid.Cost and are
// non-negative by construction; blocked cells cost +Inf to enter.
//
// Complexity:
//
//	– Time:  O((V + E) log V)   where V = W×H cells, E = V×d moves
//	– Space: O(V + E)           (lazy decrease-key may hold up to E heap entries)
//
// Options:
//
//	– Source:           starting cell (required; must lie inside the grid).
//	– ReturnPath:       if true, return the predecessor map for path reconstruction.
//	– MaxDistance:      optional cap on distances to explore; cells beyond this are skipped.
//	– InfEdgeThreshold: moves with cost >= this threshold are treated as impassable.
//	– Reverse:          compute cost-to-source instead of cost-from-source.
//
// Errors (sentinel):
//
//	– ErrEmptySource     if no Source option was given.
//	– ErrNilGraph        if the provided grid pointer is nil.
//	– ErrVertexNotFound  if the source cell lies outside the grid.
//	– ErrBadMaxDistance  if MaxDistance < 0 (panic value).
//	– ErrBadInfThreshold if InfEdgeThreshold <= 0 (panic value).
package dijkstra

import (
	"errors"
	"math"

	"github.com/katalvlaran/dstarlite/gridgraph"
)

// Sentinel errors returned by the Dijkstra implementation.
var (
	// ErrEmptySource indicates that no source cell was provided.
	ErrEmptySource = errors.New("dijkstra: source vertex is not set")

	// ErrNilGraph indicates that a nil *gridgraph.Grid was passed to Dijkstra.
	ErrNilGraph = errors.New("dijkstra: graph is nil")

	// ErrVertexNotFound indicates that the source cell lies outside the grid.
	ErrVertexNotFound = errors.New("dijkstra: source vertex not found in graph")

	// ErrBadMaxDistance indicates that MaxDistance was set to a negative value,
	// which is not meaningful for a distance threshold.
	ErrBadMaxDistance = errors.New("dijkstra: MaxDistance must be non-negative")

	// ErrBadInfThreshold indicates that InfEdgeThreshold was set to zero or negative,
	// which would treat every move as impassable.
	ErrBadInfThreshold = errors.New("dijkstra: InfEdgeThreshold must be positive")
)

// MemoryMode controls how predecessor information is stored during Dijkstra's execution.
//
// MemoryModeFull    – store complete predecessor map for immediate path reconstruction.
// MemoryModeCompact – skip predecessor bookkeeping unless ReturnPath is requested.
type MemoryMode int

const (
	// MemoryModeFull stores all predecessors to allow direct path recovery.
	MemoryModeFull MemoryMode = iota

	// MemoryModeCompact keeps only distances when ReturnPath is false.
	MemoryModeCompact
)

// Options configures the behavior of the Dijkstra algorithm.
//
// Source           – starting cell (must lie inside the grid).
// ReturnPath       – if true, return the predecessor map; otherwise prev map is nil.
// MaxDistance      – optional cap on distances to explore (cells beyond are skipped).
//
//	Must be ≥ 0. Default is +Inf (no cap).
//
// InfEdgeThreshold – treat moves with cost ≥ this threshold as impassable obstacles.
//
//	Must be > 0. Default is +Inf (only blocked cells are impassable).
//
// Reverse          – if true, dist[v] is the cost of the cheapest path from v to
// Source, and prev[v] is the next cell on that path. Grid costs depend on the
// destination cell only, so forward and reverse distances differ near walls.
type Options struct {
	Source           gridgraph.Cell // The source cell
	MemoryMode       MemoryMode     // Controls how predecessors are stored (Full or Compact)
	ReturnPath       bool           // Whether to return the predecessor map
	MaxDistance      float64        // Maximum distance to explore
	InfEdgeThreshold float64        // Cost threshold above which moves are non-traversable
	Reverse          bool           // Search towards Source instead of away from it

	hasSource bool
}

// Option represents a functional option for configuring Dijkstra.
type Option func(*Options)

// WithMemoryMode sets the memory mode for storing predecessor information.
func WithMemoryMode(mode MemoryMode) Option {
	return func(o *Options) {
		o.MemoryMode = mode
	}
}

// Source sets the Source field of Options to the given cell.
// Must be called to specify the starting cell.
func Source(c gridgraph.Cell) Option {
	return func(o *Options) {
		o.Source = c
		o.hasSource = true
	}
}

// WithReturnPath enables generation of the predecessor map in the result.
// If false (default), the predecessor map is not returned (prev == nil).
func WithReturnPath() Option {
	return func(o *Options) {
		o.ReturnPath = true
	}
}

// WithReverse computes distances towards Source, i.e. the cost-to-goal
// field an incremental planner maintains when Source is its goal.
func WithReverse() Option {
	return func(o *Options) {
		o.Reverse = true
	}
}

// WithMaxDistance sets a maximum distance threshold.
// Cells whose shortest distance would exceed this value are not explored.
// Negative values panic with ErrBadMaxDistance.
func WithMaxDistance(max float64) Option {
	return func(o *Options) {
		if max < 0 || math.IsNaN(max) {
			panic(ErrBadMaxDistance.Error())
		}
		o.MaxDistance = max
	}
}

// WithInfEdgeThreshold defines a cost threshold above which moves are
// considered non-traversable. Zero or negative values panic with ErrBadInfThreshold.
func WithInfEdgeThreshold(threshold float64) Option {
	return func(o *Options) {
		if threshold <= 0 || math.IsNaN(threshold) {
			panic(ErrBadInfThreshold.Error())
		}
		o.InfEdgeThreshold = threshold
	}
}

// DefaultOptions returns an Options struct initialized with sensible defaults
// for the given source cell.
//
// Defaults:
//   - MemoryMode:       MemoryModeFull (predecessor map fully stored).
//   - ReturnPath:       false (predecessor map not returned).
//   - MaxDistance:      +Inf (no distance limit; explore all reachable).
//   - InfEdgeThreshold: +Inf (only blocked cells are impassable).
//   - Reverse:          false.
func DefaultOptions(source gridgraph.Cell) Options {
	return Options{
		Source:           source,
		MemoryMode:       MemoryModeFull,
		ReturnPath:       false,
		MaxDistance:      math.Inf(1),
		InfEdgeThreshold: math.Inf(1),
	}
}
