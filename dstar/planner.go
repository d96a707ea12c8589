// Package dstar implements D* Lite, an incremental shortest-path planner for
// agents that discover obstacles while moving.
//
// The planner searches backwards from the goal: g(v) is the best known cost
// from v to the goal and rhs(v) its one-step lookahead. A vertex sits in the
// open queue exactly when it is locally inconsistent (g != rhs). When the
// agent learns new edge costs only the affected vertices are repaired.
//
// Notes on implementation choices:
//
//   - Vertex state lives in slices indexed by the grid's row-major index;
//     neighbours are derived from the grid on every call.
//   - Keys are re-checked lazily: a vertex whose stored key is stale is
//     re-inserted with its fresh key instead of being processed.
//   - km grows by h(last, start) whenever a rescan observes changes, so
//     queued keys stay lower bounds without re-keying the whole queue.
package dstar

import (
	"math"

	"github.com/katalvlaran/dstarlite/gridgraph"
)

// Planner holds the mutable state of one agent's D* Lite search.
// It is not safe for concurrent use; give every agent its own Planner.
type Planner struct {
	grid  *gridgraph.Grid // belief grid; owned by the planner once passed to New
	opts  Options
	h     Heuristic
	store *vertexStore
	queue *keyQueue

	km    float64
	start gridgraph.Cell
	last  gridgraph.Cell
	goal  gridgraph.Cell
	state State
	stats Stats
}

// New creates a planner over grid and runs the D* Lite initialisation:
// g = rhs = +Inf everywhere, rhs(goal) = 0, goal queued with key
// (h(goal, start), 0), km = 0. No search is performed yet.
//
// grid is the planner's belief about the world. MoveAndRescan flips its
// cells as obstacles are sensed, so callers should not share it with
// another planner.
//
// Returns ErrNilGrid, ErrOptionViolation, or gridgraph.ErrInvalidVertex
// when start or goal lie outside the grid.
func New(grid *gridgraph.Grid, start, goal gridgraph.Cell, opts ...Option) (*Planner, error) {
	if grid == nil {
		return nil, ErrNilGrid
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if err := grid.Validate(start); err != nil {
		return nil, err
	}
	if err := grid.Validate(goal); err != nil {
		return nil, err
	}

	h := o.Heuristic
	if h == nil {
		h = grid.Heuristic
	}
	p := &Planner{
		grid:  grid,
		opts:  o,
		h:     h,
		store: newVertexStore(grid.Size()),
		queue: newKeyQueue(grid.Size()),
		start: start,
		last:  start,
		goal:  goal,
		state: StateIdle,
	}
	gi := grid.Index(goal)
	p.store.rhs[gi] = 0
	p.queue.insertOrUpdate(gi, Key{K1: h(goal, start), K2: 0})

	return p, nil
}

// calculateKey returns the current key of vertex v.
func (p *Planner) calculateKey(v int) Key {
	m := p.store.minGRHS(v)
	return Key{K1: m + p.h(p.grid.CellAt(v), p.start) + p.km, K2: m}
}

// updateVertex recomputes rhs(v) from v's successors and re-queues v if it
// is inconsistent. rhs(goal) is pinned to 0.
func (p *Planner) updateVertex(v int) {
	if v != p.grid.Index(p.goal) {
		c := p.grid.CellAt(v)
		best := math.Inf(1)
		for _, s := range p.grid.Adjacent(c) {
			if cost := p.grid.Cost(c, s) + p.store.g[p.grid.Index(s)]; cost < best {
				best = cost
			}
		}
		p.store.rhs[v] = best
	}
	p.queue.remove(v)
	if !p.store.consistent(v) {
		p.queue.insertOrUpdate(v, p.calculateKey(v))
	}
	p.stats.Updates++
	p.opts.OnUpdate(p.grid.CellAt(v))
}

// UpdateVertex is the exported form of the D* Lite UpdateVertex routine.
// Returns gridgraph.ErrInvalidVertex for cells outside the grid.
func (p *Planner) UpdateVertex(c gridgraph.Cell) error {
	if err := p.grid.Validate(c); err != nil {
		return err
	}
	p.updateVertex(p.grid.Index(c))
	return nil
}

// ComputeShortestPath expands vertices until the start is consistent and no
// queued key sorts before the start's key, or until the queue is exhausted
// (the goal is then unreachable and State reports StateBlocked).
//
// Returns the context error if the configured context is cancelled.
func (p *Planner) ComputeShortestPath() error {
	p.state = StateComputing
	p.stats.Computes++
	p.stats.LastExpanded = 0
	s := p.grid.Index(p.start)

	for p.queue.Len() > 0 &&
		(p.queue.topKey().Less(p.calculateKey(s)) || !p.store.consistent(s)) {
		// cancellation check (once per expansion)
		select {
		case <-p.opts.Ctx.Done():
			p.state = StateIdle
			return p.opts.Ctx.Err()
		default:
		}

		u, kOld := p.queue.top()
		kNew := p.calculateKey(u)
		if kOld.Less(kNew) {
			// stale key, left behind by a km increase
			p.queue.insertOrUpdate(u, kNew)
			continue
		}
		p.queue.pop()
		p.stats.Expanded++
		p.stats.LastExpanded++
		uc := p.grid.CellAt(u)
		p.opts.OnExpand(uc, kOld)

		if p.store.g[u] > p.store.rhs[u] {
			// overconsistent: settle g
			p.store.g[u] = p.store.rhs[u]
			for _, pred := range p.grid.Adjacent(uc) {
				p.updateVertex(p.grid.Index(pred))
			}
			continue
		}
		// underconsistent: invalidate g and let rhs values be rebuilt
		p.store.g[u] = math.Inf(1)
		p.updateVertex(u)
		for _, pred := range p.grid.Adjacent(uc) {
			p.updateVertex(p.grid.Index(pred))
		}
	}

	if math.IsInf(p.store.g[s], 1) {
		p.state = StateBlocked
	} else {
		p.state = StateIdle
	}
	return nil
}

// OnEdgeCostChange calls UpdateVertex for every cell whose outgoing edge
// costs changed. Cells outside the grid are ignored.
func (p *Planner) OnEdgeCostChange(cells ...gridgraph.Cell) {
	for _, c := range cells {
		if !p.grid.Contains(c) {
			continue
		}
		p.updateVertex(p.grid.Index(c))
	}
}

// NotifyCellChanged reports that the obstacle status of c flipped in the
// planner's grid. Every edge into c changed, so c and all its adjacent
// cells are updated.
func (p *Planner) NotifyCellChanged(c gridgraph.Cell) {
	if !p.grid.Contains(c) {
		return
	}
	p.OnEdgeCostChange(append([]gridgraph.Cell{c}, p.grid.Adjacent(c)...)...)
}

// G returns g(c), +Inf for unvisited or out-of-bounds cells.
func (p *Planner) G(c gridgraph.Cell) float64 {
	if !p.grid.Contains(c) {
		return math.Inf(1)
	}
	return p.store.g[p.grid.Index(c)]
}

// RHS returns rhs(c), +Inf for unvisited or out-of-bounds cells.
func (p *Planner) RHS(c gridgraph.Cell) float64 {
	if !p.grid.Contains(c) {
		return math.Inf(1)
	}
	return p.store.rhs[p.grid.Index(c)]
}

// Key returns the key c would be queued with right now.
func (p *Planner) Key(c gridgraph.Cell) Key {
	if !p.grid.Contains(c) {
		return InfKey
	}
	return p.calculateKey(p.grid.Index(c))
}

// QueuedKey returns the key c is stored with in the open queue.
func (p *Planner) QueuedKey(c gridgraph.Cell) (Key, bool) {
	if !p.grid.Contains(c) {
		return Key{}, false
	}
	return p.queue.keyOf(p.grid.Index(c))
}

// Consistent reports g(c) == rhs(c).
func (p *Planner) Consistent(c gridgraph.Cell) bool {
	return p.G(c) == p.RHS(c)
}

// InQueue reports whether c is in the open queue.
func (p *Planner) InQueue(c gridgraph.Cell) bool {
	return p.grid.Contains(c) && p.queue.contains(p.grid.Index(c))
}

// QueueLen returns the number of queued vertices.
func (p *Planner) QueueLen() int { return p.queue.Len() }

// Km returns the accumulated key offset.
func (p *Planner) Km() float64 { return p.km }

// Start returns the current start (the agent's position).
func (p *Planner) Start() gridgraph.Cell { return p.start }

// Goal returns the fixed goal.
func (p *Planner) Goal() gridgraph.Cell { return p.goal }

// Belief returns the planner's grid. Mutating it directly bypasses the
// planner; report such changes with NotifyCellChanged.
func (p *Planner) Belief() *gridgraph.Grid { return p.grid }

// State returns the global planner state.
func (p *Planner) State() State { return p.state }

// Stats returns a copy of the work counters.
func (p *Planner) Stats() Stats { return p.stats }
