// Package gridgraph provides a mutable 2D grid that planners query as a graph.
//
//   - Four- or eight-connectivity (Conn4 or Conn8)
//   - Destination-dependent edge costs, +Inf into blocked cells
//   - Heuristics matched to the connectivity
//   - Identification of connected components of free cells
package gridgraph

import (
	"fmt"
	"math"
)

// NewGrid constructs an obstacle-free width×height Grid.
// Returns ErrBadDimensions if either dimension is not positive and
// ErrBadCost if a move cost is not positive and finite.
// Zero costs in opts fall back to DefaultGridOptions values.
// Algorithmic complexity: O(W×H) time and memory.
func NewGrid(width, height int, opts GridOptions) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrBadDimensions, width, height)
	}
	def := DefaultGridOptions()
	if opts.MoveCost == 0 {
		opts.MoveCost = def.MoveCost
	}
	if opts.DiagonalCost == 0 {
		opts.DiagonalCost = def.DiagonalCost
	}
	if !validCost(opts.MoveCost) || !validCost(opts.DiagonalCost) {
		return nil, fmt.Errorf("%w: move=%v diagonal=%v", ErrBadCost, opts.MoveCost, opts.DiagonalCost)
	}
	// Precompute neighbor offsets based on connectivity
	offsets := offsets4
	if opts.Conn == Conn8 {
		offsets = offsets8
	}

	return &Grid{
		Width:           width,
		Height:          height,
		blocked:         make([]bool, width*height),
		opts:            opts,
		neighborOffsets: offsets,
	}, nil
}

// From2D builds a Grid from a non-empty, rectangular 2D slice where
// values[y][x] != 0 marks an obstacle. Default costs are used.
// Returns ErrEmptyGrid or ErrNonRectangular for malformed input.
func From2D(values [][]int, conn Connectivity) (*Grid, error) {
	if len(values) == 0 || len(values[0]) == 0 {
		return nil, ErrEmptyGrid
	}
	h, w := len(values), len(values[0])
	for _, row := range values {
		if len(row) != w {
			return nil, ErrNonRectangular
		}
	}
	opts := DefaultGridOptions()
	opts.Conn = conn
	g, err := NewGrid(w, h, opts)
	if err != nil {
		return nil, err
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			g.blocked[g.index(x, y)] = values[y][x] != 0
		}
	}

	return g, nil
}

func validCost(c float64) bool {
	return c > 0 && !math.IsInf(c, 0) && !math.IsNaN(c)
}

// Options returns the options the grid was built with.
func (g *Grid) Options() GridOptions {
	return g.opts
}

// Size returns the number of cells, Width×Height.
func (g *Grid) Size() int {
	return g.Width * g.Height
}

// InBounds reports whether (x,y) lies within the grid boundaries.
// Complexity: O(1).
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.Width && y >= 0 && y < g.Height
}

// Contains reports whether c lies within the grid boundaries.
func (g *Grid) Contains(c Cell) bool {
	return g.InBounds(c.X, c.Y)
}

// Validate returns ErrInvalidVertex (wrapped with the coordinate) if c is out of bounds.
func (g *Grid) Validate(c Cell) error {
	if !g.Contains(c) {
		return fmt.Errorf("%w: %v not in %dx%d", ErrInvalidVertex, c, g.Width, g.Height)
	}
	return nil
}

// NeighborOffsets returns the precomputed neighbor offsets slice.
// The order is N, E, S, W followed by NE, SE, SW, NW for Conn8.
// Callers must not modify it.
func (g *Grid) NeighborOffsets() [][2]int {
	return g.neighborOffsets
}

// Adjacent returns every in-bounds neighbour of c, blocked or not,
// in NeighborOffsets order. Blockage is expressed through Cost.
func (g *Grid) Adjacent(c Cell) []Cell {
	out := make([]Cell, 0, len(g.neighborOffsets))
	for _, d := range g.neighborOffsets {
		n := c.Add(d[0], d[1])
		if g.Contains(n) {
			out = append(out, n)
		}
	}
	return out
}

// Neighbors returns the in-bounds neighbours of c. When the grid was built
// with HideBlocked, blocked neighbours are omitted.
func (g *Grid) Neighbors(c Cell) []Cell {
	if !g.opts.HideBlocked {
		return g.Adjacent(c)
	}
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]Cell, 0, len(g.neighborOffsets))
	for _, d := range g.neighborOffsets {
		n := c.Add(d[0], d[1])
		if g.Contains(n) && !g.blocked[g.index(n.X, n.Y)] {
			out = append(out, n)
		}
	}
	return out
}

// Blocked reports whether c is an obstacle. Out-of-bounds cells count as blocked.
func (g *Grid) Blocked(c Cell) bool {
	if !g.Contains(c) {
		return true
	}
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.blocked[g.index(c.X, c.Y)]
}

// Cost returns the cost of moving from u to the adjacent cell v:
// MoveCost for orthogonal steps, DiagonalCost for diagonal ones,
// +Inf if v is blocked, out of bounds, or not adjacent to u.
func (g *Grid) Cost(u, v Cell) float64 {
	if !g.Contains(v) {
		return math.Inf(1)
	}
	dx, dy := abs(v.X-u.X), abs(v.Y-u.Y)
	var step float64
	switch {
	case dx+dy == 1:
		step = g.opts.MoveCost
	case dx == 1 && dy == 1 && g.opts.Conn == Conn8:
		step = g.opts.DiagonalCost
	default:
		return math.Inf(1)
	}
	g.mu.RLock()
	defer g.mu.RUnlock()
	if g.blocked[g.index(v.X, v.Y)] {
		return math.Inf(1)
	}
	return step
}

// SetBlocked sets the obstacle status of c and reports whether it changed.
// Returns ErrInvalidVertex for out-of-bounds cells.
func (g *Grid) SetBlocked(c Cell, blocked bool) (bool, error) {
	if err := g.Validate(c); err != nil {
		return false, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	i := g.index(c.X, c.Y)
	if g.blocked[i] == blocked {
		return false, nil
	}
	g.blocked[i] = blocked

	return true, nil
}

// Toggle flips the obstacle status of c and returns the new status.
func (g *Grid) Toggle(c Cell) (bool, error) {
	if err := g.Validate(c); err != nil {
		return false, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	i := g.index(c.X, c.Y)
	g.blocked[i] = !g.blocked[i]

	return g.blocked[i], nil
}

// BlockedCells returns all obstacles in row-major order.
func (g *Grid) BlockedCells() []Cell {
	g.mu.RLock()
	defer g.mu.RUnlock()
	var out []Cell
	for i, b := range g.blocked {
		if b {
			x, y := g.Coordinate(i)
			out = append(out, Cell{X: x, Y: y})
		}
	}
	return out
}

// Clone returns a deep copy sharing nothing with g.
func (g *Grid) Clone() *Grid {
	g.mu.RLock()
	defer g.mu.RUnlock()
	c := g.Empty()
	copy(c.blocked, g.blocked)
	return c
}

// Empty returns a grid with the same shape and options but no obstacles.
func (g *Grid) Empty() *Grid {
	return &Grid{
		Width:           g.Width,
		Height:          g.Height,
		blocked:         make([]bool, len(g.blocked)),
		opts:            g.opts,
		neighborOffsets: g.neighborOffsets,
	}
}

// Heuristic estimates the cost between a and b: Manhattan distance on Conn4,
// octile distance on Conn8, both scaled by the grid's costs.
// It never overestimates Cost-based path lengths on this grid.
func (g *Grid) Heuristic(a, b Cell) float64 {
	dx, dy := abs(a.X-b.X), abs(a.Y-b.Y)
	if g.opts.Conn != Conn8 {
		return g.opts.MoveCost * float64(dx+dy)
	}
	lo, hi := dx, dy
	if lo > hi {
		lo, hi = hi, lo
	}
	diag := math.Min(g.opts.DiagonalCost, 2*g.opts.MoveCost)
	return g.opts.MoveCost*float64(hi-lo) + diag*float64(lo)
}

// Index maps c to its row-major index y*Width + x.
// The caller must make sure c is in bounds.
func (g *Grid) Index(c Cell) int {
	return g.index(c.X, c.Y)
}

// index maps (x,y) to a row‑major index: y*Width + x.
// Complexity: O(1).
func (g *Grid) index(x, y int) int {
	return y*g.Width + x
}

// Coordinate converts a row‑major index back to (x,y).
// Complexity: O(1).
func (g *Grid) Coordinate(idx int) (x, y int) {
	return idx % g.Width, idx / g.Width
}

// CellAt converts a row-major index back to a Cell.
func (g *Grid) CellAt(idx int) Cell {
	x, y := g.Coordinate(idx)
	return Cell{X: x, Y: y}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
