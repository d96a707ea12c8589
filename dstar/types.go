package dstar

import (
	"context"
	"errors"
	"fmt"

	"github.com/katalvlaran/dstarlite/gridgraph"
)

// Sentinel errors returned by the planner.
var (
	// ErrNilGrid indicates that a nil *gridgraph.Grid was passed to New.
	ErrNilGrid = errors.New("dstar: grid is nil")

	// ErrNilSensor indicates that MoveAndRescan was called without a sensor.
	ErrNilSensor = errors.New("dstar: sensor is nil")

	// ErrBadSensorRadius indicates a negative sensing radius.
	ErrBadSensorRadius = errors.New("dstar: sensor radius must be non-negative")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("dstar: invalid option supplied")

	// ErrNoPath is returned by CurrentPath when the goal is unreachable
	// under the planner's current knowledge.
	ErrNoPath = errors.New("dstar: no path to goal")

	// ErrEmptyQueuePop is the panic value of popping an empty open queue.
	// It signals a broken loop condition, never a recoverable situation.
	ErrEmptyQueuePop = errors.New("dstar: pop on empty queue")
)

// Heuristic estimates the cost between two cells. It must be admissible and
// consistent for the grid's connectivity.
type Heuristic func(a, b gridgraph.Cell) float64

// Sensor reports the true obstacle status of a cell. *gridgraph.Grid
// satisfies it, so a shared ground-truth grid can be sensed directly.
// A nil *gridgraph.Grid is rejected with ErrNilSensor; other Sensor
// implementations must be usable as given.
type Sensor interface {
	Blocked(c gridgraph.Cell) bool
}

// SensorFunc adapts a plain function to the Sensor interface.
type SensorFunc func(c gridgraph.Cell) bool

// Blocked calls f(c).
func (f SensorFunc) Blocked(c gridgraph.Cell) bool { return f(c) }

// Status is the outcome of one MoveAndRescan call.
type Status int

const (
	// StatusMoved means Next holds the cell the agent should step to.
	StatusMoved Status = iota
	// StatusGoalReached means the agent stands on the goal.
	StatusGoalReached
	// StatusUnreachable means no finite-cost path exists under current knowledge.
	StatusUnreachable
)

// String returns a lower-case name for s.
func (s Status) String() string {
	switch s {
	case StatusMoved:
		return "moved"
	case StatusGoalReached:
		return "goal_reached"
	case StatusUnreachable:
		return "unreachable"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// StepResult is returned by MoveAndRescan.
//   - Status: what happened.
//   - Next: the next cell on the path (StatusMoved only).
//   - Changed: number of cells whose obstacle status was newly observed.
//   - Expanded: vertices expanded by the ComputeShortestPath of this step.
type StepResult struct {
	Status   Status
	Next     gridgraph.Cell
	Changed  int
	Expanded int
}

// State is the global planner state.
type State int

const (
	// StateIdle means the last ComputeShortestPath finished with a finite g(start).
	StateIdle State = iota
	// StateComputing is reported while ComputeShortestPath runs (visible to hooks).
	StateComputing
	// StateBlocked means the queue is exhausted and g(start) is +Inf.
	StateBlocked
)

// String returns a lower-case name for s.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateComputing:
		return "computing"
	case StateBlocked:
		return "blocked"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Stats counts planner work since creation.
type Stats struct {
	// Expanded is the total number of vertices popped and processed.
	Expanded int
	// LastExpanded is the number expanded by the most recent ComputeShortestPath.
	LastExpanded int
	// Updates is the total number of UpdateVertex calls.
	Updates int
	// Computes is the number of ComputeShortestPath calls.
	Computes int
	// Replans is the number of rescans that observed at least one change.
	Replans int
	// CellsChanged is the total number of cells flipped by rescans.
	CellsChanged int
}

// Option configures the planner via functional arguments.
// Invalid options are recorded and surfaced as ErrOptionViolation by New.
type Option func(*Options)

// Options holds planner parameters and hooks.
type Options struct {
	// Ctx allows cancellation of ComputeShortestPath; checked once per expansion.
	Ctx context.Context

	// Heuristic overrides the grid's own heuristic. Nil means grid.Heuristic.
	Heuristic Heuristic

	// OnExpand is called for every vertex processed by ComputeShortestPath,
	// with the key it was popped with.
	OnExpand func(c gridgraph.Cell, k Key)

	// OnUpdate is called after every UpdateVertex.
	OnUpdate func(c gridgraph.Cell)

	// internal error recorded during option parsing
	err error
}

// DefaultOptions returns Options with:
//   - context.Background()
//   - the grid's heuristic
//   - no-op hooks
func DefaultOptions() Options {
	return Options{
		Ctx:      context.Background(),
		OnExpand: func(gridgraph.Cell, Key) {},
		OnUpdate: func(gridgraph.Cell) {},
	}
}

// WithContext sets a custom context for cancellation.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithHeuristic replaces the grid heuristic. A nil h is an ErrOptionViolation.
func WithHeuristic(h Heuristic) Option {
	return func(o *Options) {
		if h == nil {
			o.err = fmt.Errorf("%w: heuristic cannot be nil", ErrOptionViolation)
			return
		}
		o.Heuristic = h
	}
}

// WithOnExpand registers a callback run on every expansion.
func WithOnExpand(fn func(c gridgraph.Cell, k Key)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnExpand = fn
		}
	}
}

// WithOnUpdate registers a callback run after every UpdateVertex.
func WithOnUpdate(fn func(c gridgraph.Cell)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnUpdate = fn
		}
	}
}
