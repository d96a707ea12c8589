package agent

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"sync"

	"github.com/zyedidia/generic/mapset"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/dstarlite/bfs"
	"github.com/katalvlaran/dstarlite/dijkstra"
	"github.com/katalvlaran/dstarlite/dstar"
	"github.com/katalvlaran/dstarlite/gridgraph"
)

// Simulation advances a set of agents over one shared world grid.
// All methods are safe for concurrent use.
type Simulation struct {
	mu     sync.Mutex
	world  *gridgraph.Grid
	opts   SimOptions
	logger *slog.Logger
	agents []*Controller
	ticks  int
}

// NewSimulation creates an empty simulation over world.
// Returns dstar.ErrNilGrid or ErrOptionViolation.
func NewSimulation(world *gridgraph.Grid, opts ...SimOption) (*Simulation, error) {
	if world == nil {
		return nil, fmt.Errorf("%w: world", dstar.ErrNilGrid)
	}
	o := DefaultSimOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}

	return &Simulation{world: world, opts: o, logger: o.Logger}, nil
}

// World returns the shared ground-truth grid.
func (s *Simulation) World() *gridgraph.Grid { return s.world }

// AddAgent creates a controller for start→goal and registers it.
// Starts and goals of all agents must be pairwise distinct (ErrOverlap) and
// start must not hold another agent (ErrCellOccupied). With
// WithRequireReachable the goal must be reachable on the world (ErrNotReachable).
func (s *Simulation) AddAgent(start, goal gridgraph.Cell, opts ...Option) (*Controller, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if start == goal {
		return nil, fmt.Errorf("%w: start equals goal %v", ErrOverlap, start)
	}
	ends := s.endpoints()
	if ends.Has(start) || ends.Has(goal) {
		return nil, fmt.Errorf("%w: %v→%v", ErrOverlap, start, goal)
	}
	if s.occupied().Has(start) {
		return nil, fmt.Errorf("%w: %v", ErrCellOccupied, start)
	}
	if s.opts.RequireReachable {
		if _, ok, err := bfs.Distance(s.world, start, goal); err != nil {
			return nil, err
		} else if !ok {
			return nil, fmt.Errorf("%w: %v→%v", ErrNotReachable, start, goal)
		}
	}

	all := make([]Option, 0, len(s.opts.AgentOptions)+len(opts)+1)
	all = append(all, WithLogger(s.logger))
	all = append(all, s.opts.AgentOptions...)
	all = append(all, opts...)
	c, err := NewController(s.world, start, goal, all...)
	if err != nil {
		return nil, err
	}
	for _, other := range s.agents {
		if other.ID() == c.ID() {
			return nil, fmt.Errorf("%w: duplicate id %q", ErrOverlap, c.ID())
		}
	}
	s.agents = append(s.agents, c)
	s.logger.Info("agent_added",
		slog.String("agent_id", c.ID()),
		slog.String("start", start.String()),
		slog.String("goal", goal.String()),
	)

	return c, nil
}

// RemoveAgent drops the agent with the given ID. Returns ErrUnknownAgent.
func (s *Simulation) RemoveAgent(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, c := range s.agents {
		if c.ID() == id {
			s.agents = append(s.agents[:i], s.agents[i+1:]...)
			s.logger.Info("agent_removed", slog.String("agent_id", id))
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownAgent, id)
}

// Agent returns the agent with the given ID.
func (s *Simulation) Agent(id string) (*Controller, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.agents {
		if c.ID() == id {
			return c, true
		}
	}
	return nil, false
}

// Agents returns the agents in insertion order.
func (s *Simulation) Agents() []*Controller {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*Controller(nil), s.agents...)
}

// ToggleObstacle flips the obstacle status of c on the world grid and
// returns the new status. Agents notice the change when it enters their
// viewing range. Cells holding an agent or an agent's goal are refused
// with ErrCellOccupied.
func (s *Simulation) ToggleObstacle(c gridgraph.Cell) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.world.Validate(c); err != nil {
		return false, err
	}
	if s.occupied().Has(c) {
		return false, fmt.Errorf("%w: agent at %v", ErrCellOccupied, c)
	}
	for _, a := range s.agents {
		if a.Goal() == c {
			return false, fmt.Errorf("%w: goal of %s at %v", ErrCellOccupied, a.ID(), c)
		}
	}
	blocked, err := s.world.Toggle(c)
	if err != nil {
		return false, err
	}
	s.logger.Info("obstacle_toggled", slog.String("cell", c.String()), slog.Bool("blocked", blocked))

	return blocked, nil
}

// Tick steps every agent that has not reached its goal once. With
// parallelism > 1 agents are stepped concurrently; the first error cancels
// the others and is returned. Returns ErrTickLimit once MaxTicks ticks ran.
//
// A failed step does not roll back the agents that already moved: the tick
// still counts, and the report carries the results of the successful steps.
func (s *Simulation) Tick(ctx context.Context) (TickReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.opts.MaxTicks > 0 && s.ticks >= s.opts.MaxTicks {
		return TickReport{Tick: s.ticks}, ErrTickLimit
	}

	ctx, span := tracer.Start(ctx, "agent.Simulation.Tick",
		trace.WithAttributes(
			attribute.Int("tick", s.ticks+1),
			attribute.Int("agents", len(s.agents)),
		),
	)
	defer span.End()

	active := make([]*Controller, 0, len(s.agents))
	for _, c := range s.agents {
		if !c.Done() {
			active = append(active, c)
		}
	}
	results := make([]dstar.StepResult, len(active))
	stepped := make([]bool, len(active))

	var err error
	if s.opts.Parallelism > 1 {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(s.opts.Parallelism)
		for i, c := range active {
			i, c := i, c
			g.Go(func() error {
				res, err := c.Step(gctx)
				if err != nil {
					return err
				}
				results[i], stepped[i] = res, true
				return nil
			})
		}
		err = g.Wait()
	} else {
		for i, c := range active {
			if results[i], err = c.Step(ctx); err != nil {
				break
			}
			stepped[i] = true
		}
	}

	s.ticks++
	simulationTicks.Inc()
	report := TickReport{Tick: s.ticks, Results: make(map[string]dstar.StepResult, len(active))}
	for i, c := range active {
		if stepped[i] {
			report.Results[c.ID()] = results[i]
		}
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "agent step failed")
		return report, err
	}
	span.SetStatus(codes.Ok, "tick complete")
	s.logger.Debug("simulation_tick", slog.Int("tick", s.ticks), slog.Int("active", len(active)))

	return report, nil
}

// Run ticks until every agent reached its goal, the tick limit is hit, or a
// tick makes no progress because every remaining agent is boxed in.
func (s *Simulation) Run(ctx context.Context) (Summary, error) {
	for !s.Done() {
		report, err := s.Tick(ctx)
		if errors.Is(err, ErrTickLimit) {
			s.logger.Warn("simulation_tick_limit", slog.Int("ticks", report.Tick))
			break
		}
		if err != nil {
			return s.Summary(), err
		}
		if report.Stalled() {
			s.logger.Warn("simulation_stalled", slog.Int("ticks", report.Tick))
			break
		}
	}
	sum := s.Summary()
	s.logger.Info("simulation_finished", slog.Int("ticks", sum.Ticks), slog.Bool("done", sum.Done))

	return sum, nil
}

// Ticks returns the number of completed ticks.
func (s *Simulation) Ticks() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ticks
}

// Done reports whether every agent stands on its goal.
func (s *Simulation) Done() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.agents {
		if !c.Done() {
			return false
		}
	}
	return true
}

// Summary reports per-agent progress and the full-knowledge optimum.
func (s *Simulation) Summary() Summary {
	s.mu.Lock()
	defer s.mu.Unlock()

	sum := Summary{Ticks: s.ticks, Done: true, Agents: make([]AgentSummary, 0, len(s.agents))}
	for _, c := range s.agents {
		_, opt, ok, err := dijkstra.ShortestPath(s.world, c.Start(), c.Goal())
		if err != nil || !ok {
			opt = math.Inf(1)
		}
		st := c.PlannerStats()
		sum.Agents = append(sum.Agents, AgentSummary{
			ID:       c.ID(),
			Start:    c.Start(),
			Goal:     c.Goal(),
			Position: c.Position(),
			Status:   c.Status(),
			Steps:    c.Steps(),
			Cost:     trailCost(s.world.Options(), c.trail),
			Optimal:  opt,
			Expanded: st.Expanded,
			Replans:  st.Replans,
		})
		sum.Done = sum.Done && c.Done()
	}

	return sum
}

// Render draws the world as text: '#' obstacle, '.' free, agents as
// 'A', 'B', ... and their goals as 'a', 'b', ... in insertion order.
// Agents beyond the 26th are drawn as '@' and their goals as '*'.
func (s *Simulation) Render() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows := make([][]byte, s.world.Height)
	for y := range rows {
		rows[y] = make([]byte, s.world.Width)
		for x := range rows[y] {
			rows[y][x] = '.'
			if s.world.Blocked(gridgraph.Cell{X: x, Y: y}) {
				rows[y][x] = '#'
			}
		}
	}
	for i, c := range s.agents {
		g := c.Goal()
		rows[g.Y][g.X] = goalGlyph(i)
	}
	for i, c := range s.agents {
		p := c.Position()
		rows[p.Y][p.X] = agentGlyph(i)
	}

	var b strings.Builder
	for _, r := range rows {
		b.Write(r)
		b.WriteByte('\n')
	}
	return b.String()
}

func agentGlyph(i int) byte {
	if i < 26 {
		return byte('A' + i)
	}
	return '@'
}

func goalGlyph(i int) byte {
	if i < 26 {
		return byte('a' + i)
	}
	return '*'
}

// endpoints returns every start and goal in use. Caller holds s.mu.
func (s *Simulation) endpoints() mapset.Set[gridgraph.Cell] {
	set := mapset.New[gridgraph.Cell]()
	for _, c := range s.agents {
		set.Put(c.Start())
		set.Put(c.Goal())
	}
	return set
}

// occupied returns the current agent positions. Caller holds s.mu.
func (s *Simulation) occupied() mapset.Set[gridgraph.Cell] {
	set := mapset.New[gridgraph.Cell]()
	for _, c := range s.agents {
		set.Put(c.Position())
	}
	return set
}

// trailCost sums the move costs along trail, ignoring obstacles that
// appeared after the agent passed.
func trailCost(o gridgraph.GridOptions, trail []gridgraph.Cell) float64 {
	var total float64
	for i := 1; i < len(trail); i++ {
		a, b := trail[i-1], trail[i]
		if a.X != b.X && a.Y != b.Y {
			total += o.DiagonalCost
		} else {
			total += o.MoveCost
		}
	}
	return total
}
