package agent

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/zyedidia/generic/mapset"

	"github.com/katalvlaran/dstarlite/gridgraph"
)

// ScatterObstacles blocks round(fraction × cells) randomly chosen free
// cells of world, never one listed in keep, and returns how many were
// placed. fraction must lie in [0, 1).
func ScatterObstacles(rng *rand.Rand, world *gridgraph.Grid, fraction float64, keep ...gridgraph.Cell) (int, error) {
	if fraction < 0 || fraction >= 1 || math.IsNaN(fraction) {
		return 0, fmt.Errorf("%w: obstacle fraction %v", ErrOptionViolation, fraction)
	}
	kept := mapset.New[gridgraph.Cell]()
	for _, c := range keep {
		kept.Put(c)
	}
	candidates := make([]gridgraph.Cell, 0, world.Size())
	for i := 0; i < world.Size(); i++ {
		c := world.CellAt(i)
		if !kept.Has(c) && !world.Blocked(c) {
			candidates = append(candidates, c)
		}
	}
	want := int(math.Round(fraction * float64(world.Size())))
	if want > len(candidates) {
		want = len(candidates)
	}
	rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	for _, c := range candidates[:want] {
		if _, err := world.SetBlocked(c, true); err != nil {
			return 0, err
		}
	}

	return want, nil
}

// RandomPlacements draws n start/goal pairs on free cells of world. All
// starts and goals are pairwise distinct and avoid the cells in taken.
func RandomPlacements(rng *rand.Rand, world *gridgraph.Grid, n int, taken ...gridgraph.Cell) ([]Placement, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: agent count %d", ErrOptionViolation, n)
	}
	used := mapset.New[gridgraph.Cell]()
	for _, c := range taken {
		used.Put(c)
	}
	free := make([]gridgraph.Cell, 0, world.Size())
	for i := 0; i < world.Size(); i++ {
		c := world.CellAt(i)
		if !used.Has(c) && !world.Blocked(c) {
			free = append(free, c)
		}
	}
	if len(free) < 2*n {
		return nil, fmt.Errorf("%w: need %d, have %d", ErrNoRoom, 2*n, len(free))
	}
	rng.Shuffle(len(free), func(i, j int) { free[i], free[j] = free[j], free[i] })

	out := make([]Placement, n)
	for i := range out {
		out[i] = Placement{Start: free[2*i], Goal: free[2*i+1]}
	}
	return out, nil
}

// AddRandomAgents adds n agents with random non-overlapping endpoints.
// With WithRequireReachable, pairs whose goal is unreachable are redrawn
// up to 50 times per agent before ErrNotReachable is returned.
func (s *Simulation) AddRandomAgents(rng *rand.Rand, n int, opts ...Option) ([]*Controller, error) {
	added := make([]*Controller, 0, n)
	for len(added) < n {
		var (
			c   *Controller
			err error
		)
		for attempt := 0; attempt < 50; attempt++ {
			var ps []Placement
			ps, err = RandomPlacements(rng, s.world, 1, s.takenCells()...)
			if err != nil {
				return added, err
			}
			c, err = s.AddAgent(ps[0].Start, ps[0].Goal, opts...)
			if !errors.Is(err, ErrNotReachable) {
				break
			}
		}
		if err != nil {
			return added, err
		}
		added = append(added, c)
	}
	return added, nil
}

// takenCells lists the endpoints and positions of all agents.
func (s *Simulation) takenCells() []gridgraph.Cell {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]gridgraph.Cell, 0, 3*len(s.agents))
	for _, c := range s.agents {
		out = append(out, c.Start(), c.Goal(), c.Position())
	}
	return out
}
