// Package agent defines options, summaries and sentinel errors for agents
// and simulations built on the dstar planner.
package agent

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/katalvlaran/dstarlite/dstar"
	"github.com/katalvlaran/dstarlite/gridgraph"
)

// Sentinel errors returned by controllers and simulations.
var (
	// ErrOverlap indicates that a start or goal is already used by another agent.
	ErrOverlap = errors.New("agent: start or goal overlaps another agent")

	// ErrCellOccupied indicates that a cell holds an agent or an agent's goal
	// and cannot be turned into an obstacle.
	ErrCellOccupied = errors.New("agent: cell is occupied")

	// ErrUnknownAgent indicates that no agent with the given ID exists.
	ErrUnknownAgent = errors.New("agent: unknown agent")

	// ErrStartBlocked indicates that an agent would start inside an obstacle.
	ErrStartBlocked = errors.New("agent: start cell is blocked")

	// ErrNotReachable indicates that the goal cannot be reached on the world
	// grid and the simulation requires reachable goals.
	ErrNotReachable = errors.New("agent: goal not reachable from start")

	// ErrOptionViolation is returned when an invalid Option or SimOption is supplied.
	ErrOptionViolation = errors.New("agent: invalid option supplied")

	// ErrNoRoom indicates that the grid has too few free cells for a placement.
	ErrNoRoom = errors.New("agent: not enough free cells")

	// ErrTickLimit is returned by Tick once the configured tick limit is reached.
	ErrTickLimit = errors.New("agent: tick limit reached")
)

// DefaultSensorRadius is the viewing range used when none is configured.
const DefaultSensorRadius = 2

// Option configures a Controller via functional arguments.
// Invalid options are recorded and surfaced as ErrOptionViolation by NewController.
type Option func(*Options)

// Options holds controller parameters.
type Options struct {
	// ID names the agent in logs, metrics and spans. Empty means a random UUID.
	ID string

	// SensorRadius is the half-width of the square scanned around the agent.
	SensorRadius int

	// PriorKnowledge starts the belief as a full copy of the world instead
	// of an obstacle-free grid.
	PriorKnowledge bool

	// Logger receives step events. Nil means slog.Default().
	Logger *slog.Logger

	// PlannerOptions are passed through to dstar.New.
	PlannerOptions []dstar.Option

	err error
}

// DefaultOptions returns Options with a random ID, radius
// DefaultSensorRadius, no prior knowledge and slog.Default().
func DefaultOptions() Options {
	return Options{SensorRadius: DefaultSensorRadius}
}

// WithID sets the agent ID.
func WithID(id string) Option {
	return func(o *Options) {
		if id != "" {
			o.ID = id
		}
	}
}

// WithSensorRadius sets the viewing range. r < 1 is an ErrOptionViolation.
func WithSensorRadius(r int) Option {
	return func(o *Options) {
		if r < 1 {
			o.err = fmt.Errorf("%w: sensor radius must be at least 1 (%d)", ErrOptionViolation, r)
			return
		}
		o.SensorRadius = r
	}
}

// WithPriorKnowledge gives the agent the full world map upfront.
func WithPriorKnowledge() Option {
	return func(o *Options) {
		o.PriorKnowledge = true
	}
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithPlannerOptions appends options for the underlying planner.
func WithPlannerOptions(opts ...dstar.Option) Option {
	return func(o *Options) {
		o.PlannerOptions = append(o.PlannerOptions, opts...)
	}
}

// SimOption configures a Simulation.
type SimOption func(*SimOptions)

// SimOptions holds simulation parameters.
type SimOptions struct {
	// Parallelism > 1 steps up to that many agents concurrently per tick.
	Parallelism int

	// MaxTicks > 0 bounds the number of ticks; 0 means unbounded.
	MaxTicks int

	// RequireReachable rejects agents whose goal is unreachable on the world.
	RequireReachable bool

	// Logger receives simulation events and is the default for agents.
	Logger *slog.Logger

	// AgentOptions are applied to every agent before its own options.
	AgentOptions []Option

	err error
}

// DefaultSimOptions returns sequential stepping, no tick limit,
// no reachability requirement and slog.Default().
func DefaultSimOptions() SimOptions {
	return SimOptions{Parallelism: 1}
}

// WithParallelism sets the number of agents stepped concurrently.
// n < 1 is an ErrOptionViolation.
func WithParallelism(n int) SimOption {
	return func(o *SimOptions) {
		if n < 1 {
			o.err = fmt.Errorf("%w: parallelism must be at least 1 (%d)", ErrOptionViolation, n)
			return
		}
		o.Parallelism = n
	}
}

// WithMaxTicks bounds the simulation length. n < 0 is an ErrOptionViolation.
func WithMaxTicks(n int) SimOption {
	return func(o *SimOptions) {
		if n < 0 {
			o.err = fmt.Errorf("%w: max ticks cannot be negative (%d)", ErrOptionViolation, n)
			return
		}
		o.MaxTicks = n
	}
}

// WithRequireReachable makes AddAgent fail with ErrNotReachable when the
// goal cannot be reached on the world grid.
func WithRequireReachable() SimOption {
	return func(o *SimOptions) {
		o.RequireReachable = true
	}
}

// WithSimulationLogger sets the simulation logger.
func WithSimulationLogger(l *slog.Logger) SimOption {
	return func(o *SimOptions) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithAgentOptions sets options shared by every agent of the simulation.
func WithAgentOptions(opts ...Option) SimOption {
	return func(o *SimOptions) {
		o.AgentOptions = append(o.AgentOptions, opts...)
	}
}

// Placement is a start/goal pair for one agent.
type Placement struct {
	Start, Goal gridgraph.Cell
}

// TickReport lists the step results of one tick, keyed by agent ID.
// Agents that were already done are not stepped and do not appear.
type TickReport struct {
	Tick    int
	Results map[string]dstar.StepResult
}

// Stalled reports whether every stepped agent was boxed in, so the tick
// changed nothing.
func (r TickReport) Stalled() bool {
	for _, res := range r.Results {
		if res.Status != dstar.StatusUnreachable {
			return false
		}
	}
	return true
}

// AgentSummary compares what an agent did with what it could have done.
//   - Cost: cost of the realised trail.
//   - Optimal: shortest start→goal cost on the current world, +Inf if none.
type AgentSummary struct {
	ID       string
	Start    gridgraph.Cell
	Goal     gridgraph.Cell
	Position gridgraph.Cell
	Status   dstar.Status
	Steps    int
	Cost     float64
	Optimal  float64
	Expanded int
	Replans  int
}

// Summary describes the whole simulation.
type Summary struct {
	Ticks  int
	Done   bool
	Agents []AgentSummary
}
