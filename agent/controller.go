package agent

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/katalvlaran/dstarlite/dstar"
	"github.com/katalvlaran/dstarlite/gridgraph"
)

// Controller drives one agent through the world: each Step senses the
// surroundings, replans, and moves one cell.
//
// The world grid is only read (through its RWMutex); the belief grid and
// planner are owned by the controller. A Controller is not safe for
// concurrent use, but distinct controllers may step concurrently.
type Controller struct {
	id      string
	world   *gridgraph.Grid
	planner *dstar.Planner
	opts    Options
	logger  *slog.Logger

	start  gridgraph.Cell
	goal   gridgraph.Cell
	pos    gridgraph.Cell
	status dstar.Status
	trail  []gridgraph.Cell
}

// NewController creates an agent at start heading for goal on world.
// Returns dstar.ErrNilGrid, gridgraph.ErrInvalidVertex, ErrStartBlocked or
// ErrOptionViolation.
func NewController(world *gridgraph.Grid, start, goal gridgraph.Cell, opts ...Option) (*Controller, error) {
	if world == nil {
		return nil, fmt.Errorf("%w: world", dstar.ErrNilGrid)
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	if err := world.Validate(start); err != nil {
		return nil, fmt.Errorf("agent %s start: %w", o.ID, err)
	}
	if err := world.Validate(goal); err != nil {
		return nil, fmt.Errorf("agent %s goal: %w", o.ID, err)
	}
	if world.Blocked(start) {
		return nil, fmt.Errorf("%w: %v", ErrStartBlocked, start)
	}

	belief := world.Empty()
	if o.PriorKnowledge {
		belief = world.Clone()
	}
	p, err := dstar.New(belief, start, goal, o.PlannerOptions...)
	if err != nil {
		return nil, fmt.Errorf("agent %s: %w", o.ID, err)
	}

	c := &Controller{
		id:      o.ID,
		world:   world,
		planner: p,
		opts:    o,
		logger:  o.Logger.With(slog.String("agent_id", o.ID)),
		start:   start,
		goal:    goal,
		pos:     start,
		status:  dstar.StatusMoved,
		trail:   []gridgraph.Cell{start},
	}
	if start == goal {
		c.status = dstar.StatusGoalReached
	}

	return c, nil
}

// Step performs one move-and-rescan cycle and moves the agent to the next
// cell when the planner returns StatusMoved. Once the agent stands on its
// goal every further call reports StatusGoalReached without replanning.
// StatusUnreachable is re-evaluated on every call.
func (c *Controller) Step(ctx context.Context) (dstar.StepResult, error) {
	if c.status == dstar.StatusGoalReached {
		return dstar.StepResult{Status: dstar.StatusGoalReached}, nil
	}

	ctx, span := tracer.Start(ctx, "agent.Controller.Step",
		trace.WithAttributes(
			attribute.String("agent_id", c.id),
			attribute.String("position", c.pos.String()),
		),
	)
	defer span.End()

	if err := ctx.Err(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "cancelled")
		return dstar.StepResult{}, err
	}

	res, err := c.planner.MoveAndRescan(c.pos, c.opts.SensorRadius, c.world)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "move and rescan failed")
		return dstar.StepResult{}, fmt.Errorf("agent %s at %v: %w", c.id, c.pos, err)
	}

	agentSteps.WithLabelValues(res.Status.String()).Inc()
	replanExpansions.Observe(float64(res.Expanded))
	cellsDiscovered.Add(float64(res.Changed))

	c.status = res.Status
	switch res.Status {
	case dstar.StatusMoved:
		c.pos = res.Next
		c.trail = append(c.trail, res.Next)
		c.logger.Debug("agent_moved",
			slog.String("to", res.Next.String()),
			slog.Int("changed", res.Changed),
			slog.Int("expanded", res.Expanded),
		)
		if c.pos == c.goal {
			c.status = dstar.StatusGoalReached
			c.logger.Info("agent_goal_reached", slog.Int("steps", c.Steps()))
		}
	case dstar.StatusGoalReached:
		c.logger.Info("agent_goal_reached", slog.Int("steps", c.Steps()))
	case dstar.StatusUnreachable:
		c.logger.Warn("agent_unreachable",
			slog.String("position", c.pos.String()),
			slog.String("goal", c.goal.String()),
		)
	}

	span.SetAttributes(
		attribute.String("outcome", res.Status.String()),
		attribute.Int("changed", res.Changed),
		attribute.Int("expanded", res.Expanded),
	)
	span.SetStatus(codes.Ok, res.Status.String())

	return res, nil
}

// ID returns the agent ID.
func (c *Controller) ID() string { return c.id }

// Position returns the current cell.
func (c *Controller) Position() gridgraph.Cell { return c.pos }

// Start returns the initial cell.
func (c *Controller) Start() gridgraph.Cell { return c.start }

// Goal returns the target cell.
func (c *Controller) Goal() gridgraph.Cell { return c.goal }

// Status returns the outcome of the latest Step, StatusMoved before the
// first one. Arriving on the goal turns it into StatusGoalReached.
func (c *Controller) Status() dstar.Status { return c.status }

// Done reports whether the agent stands on its goal.
func (c *Controller) Done() bool { return c.status == dstar.StatusGoalReached }

// Steps returns the number of moves made.
func (c *Controller) Steps() int { return len(c.trail) - 1 }

// Trail returns every cell the agent occupied, start first.
func (c *Controller) Trail() []gridgraph.Cell {
	return append([]gridgraph.Cell(nil), c.trail...)
}

// Path returns the planned route from the current position to the goal
// under the agent's current knowledge. Returns dstar.ErrNoPath when the
// goal is unreachable.
func (c *Controller) Path() ([]gridgraph.Cell, error) {
	if c.pos == c.goal {
		return []gridgraph.Cell{c.goal}, nil
	}
	path, err := c.planner.CurrentPath()
	if err != nil {
		return nil, err
	}
	// the planner's start lags one move behind until the next Step
	if len(path) > 1 && path[0] != c.pos && path[1] == c.pos {
		path = path[1:]
	}
	return path, nil
}

// PlannerStats returns the planner's work counters.
func (c *Controller) PlannerStats() dstar.Stats { return c.planner.Stats() }

// Belief returns the agent's map of the world. Callers must not modify it.
func (c *Controller) Belief() *gridgraph.Grid { return c.planner.Belief() }

// SensorRadius returns the viewing range.
func (c *Controller) SensorRadius() int { return c.opts.SensorRadius }
