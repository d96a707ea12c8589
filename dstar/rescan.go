package dstar

import (
	"fmt"
	"math"

	"github.com/zyedidia/generic/mapset"

	"github.com/katalvlaran/dstarlite/gridgraph"
)

// MoveAndRescan performs one step of the move-and-rescan loop for an agent
// standing on pos:
//
//  1. pos becomes the new start.
//  2. Every cell in the square of the given radius around pos is compared
//     against sensor; cells whose status differs from the planner's belief
//     are flipped in the belief grid.
//  3. If anything changed, km grows by h(last, pos), last becomes pos and
//     every vertex with a changed outgoing edge is updated.
//  4. ComputeShortestPath runs.
//  5. The result is StatusGoalReached if pos is the goal, StatusUnreachable
//     if g(pos) is +Inf, otherwise StatusMoved with the successor that
//     minimises cost(pos, s) + g(s).
//
// Returns gridgraph.ErrInvalidVertex for an out-of-bounds pos,
// ErrBadSensorRadius, ErrNilSensor, or the context error.
func (p *Planner) MoveAndRescan(pos gridgraph.Cell, radius int, sensor Sensor) (StepResult, error) {
	if err := p.grid.Validate(pos); err != nil {
		return StepResult{}, err
	}
	if radius < 0 {
		return StepResult{}, fmt.Errorf("%w: %d", ErrBadSensorRadius, radius)
	}
	if sensor == nil {
		return StepResult{}, ErrNilSensor
	}
	if g, ok := sensor.(*gridgraph.Grid); ok && g == nil {
		return StepResult{}, ErrNilSensor
	}

	p.start = pos
	changed := p.scan(pos, radius, sensor)
	if len(changed) > 0 {
		p.km += p.h(p.last, pos)
		p.last = pos
		p.stats.Replans++
		p.stats.CellsChanged += len(changed)
		p.OnEdgeCostChange(affected(p.grid, changed)...)
	}

	if err := p.ComputeShortestPath(); err != nil {
		return StepResult{}, err
	}

	res := StepResult{Changed: len(changed), Expanded: p.stats.LastExpanded}
	switch {
	case pos == p.goal:
		res.Status = StatusGoalReached
	case math.IsInf(p.G(pos), 1):
		res.Status = StatusUnreachable
	default:
		next, ok := p.nextStep(pos)
		if !ok {
			res.Status = StatusUnreachable
			break
		}
		res.Status = StatusMoved
		res.Next = next
	}
	return res, nil
}

// scan flips every cell within radius (Chebyshev distance) of pos whose
// sensed status differs from the belief grid, in row-major order, and
// returns the flipped cells.
func (p *Planner) scan(pos gridgraph.Cell, radius int, sensor Sensor) []gridgraph.Cell {
	var changed []gridgraph.Cell
	for y := pos.Y - radius; y <= pos.Y+radius; y++ {
		for x := pos.X - radius; x <= pos.X+radius; x++ {
			c := gridgraph.Cell{X: x, Y: y}
			if !p.grid.Contains(c) {
				continue
			}
			truth := sensor.Blocked(c)
			if truth == p.grid.Blocked(c) {
				continue
			}
			if _, err := p.grid.SetBlocked(c, truth); err == nil {
				changed = append(changed, c)
			}
		}
	}
	return changed
}

// affected lists every cell with an outgoing edge into one of changed,
// plus the changed cells themselves, without duplicates and in first-seen order.
func affected(g *gridgraph.Grid, changed []gridgraph.Cell) []gridgraph.Cell {
	seen := mapset.New[gridgraph.Cell]()
	out := make([]gridgraph.Cell, 0, len(changed)*5)
	add := func(c gridgraph.Cell) {
		if seen.Has(c) {
			return
		}
		seen.Put(c)
		out = append(out, c)
	}
	for _, c := range changed {
		add(c)
		for _, n := range g.Adjacent(c) {
			add(n)
		}
	}
	return out
}

// nextStep returns the successor of c minimising cost(c, s) + g(s).
// Ties go to the first candidate in neighbour-offset order.
func (p *Planner) nextStep(c gridgraph.Cell) (gridgraph.Cell, bool) {
	best := math.Inf(1)
	var next gridgraph.Cell
	for _, s := range p.grid.Adjacent(c) {
		if v := p.grid.Cost(c, s) + p.G(s); v < best {
			best, next = v, s
		}
	}
	return next, !math.IsInf(best, 1)
}

// Next returns the cell the agent should step to from the current start,
// without sensing or replanning. ok is false at the goal or when unreachable.
func (p *Planner) Next() (gridgraph.Cell, bool) {
	if p.start == p.goal || math.IsInf(p.G(p.start), 1) {
		return gridgraph.Cell{}, false
	}
	return p.nextStep(p.start)
}

// CurrentPath walks the greedy successor chain from the start to the goal
// under the latest g values. It does not mutate the planner.
// Returns ErrNoPath if the goal cannot be reached from the start.
func (p *Planner) CurrentPath() ([]gridgraph.Cell, error) {
	if p.start == p.goal {
		return []gridgraph.Cell{p.start}, nil
	}
	if math.IsInf(p.G(p.start), 1) {
		return nil, ErrNoPath
	}
	path := []gridgraph.Cell{p.start}
	limit := p.grid.Size()
	for cur := p.start; cur != p.goal; {
		next, ok := p.nextStep(cur)
		if !ok || len(path) > limit {
			return nil, fmt.Errorf("%w: stuck at %v", ErrNoPath, cur)
		}
		path = append(path, next)
		cur = next
	}
	return path, nil
}
