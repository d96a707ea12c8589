// Package gridgraph defines core types and options for the mutable grid model.
package gridgraph

import (
	"fmt"
	"math"
	"sync"
)

// Connectivity selects neighbor connectivity: orthogonal (Conn4) or including diagonals (Conn8).
type Connectivity int

const (
	// Conn4 uses 4-directional connectivity: N, E, S, W.
	Conn4 Connectivity = iota
	// Conn8 adds the diagonals: N, E, S, W, then NE, SE, SW, NW.
	Conn8
)

// String returns "4" or "8".
func (c Connectivity) String() string {
	if c == Conn8 {
		return "8"
	}
	return "4"
}

// Cell is a grid coordinate. It doubles as the vertex identity of the graph.
type Cell struct {
	X, Y int
}

// String formats the cell as "(x,y)".
func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Add returns c shifted by (dx, dy).
func (c Cell) Add(dx, dy int) Cell {
	return Cell{X: c.X + dx, Y: c.Y + dy}
}

// GridOptions contains tunable parameters for a Grid.
type GridOptions struct {
	// Conn chooses 4- or 8-directional connectivity.
	Conn Connectivity
	// MoveCost is the cost of an orthogonal step into a free cell.
	MoveCost float64
	// DiagonalCost is the cost of a diagonal step into a free cell (Conn8 only).
	DiagonalCost float64
	// HideBlocked makes Neighbors skip blocked cells. Adjacent is unaffected.
	HideBlocked bool
}

// DefaultGridOptions returns GridOptions with default settings:
// Conn=Conn4, MoveCost=1, DiagonalCost=√2, HideBlocked=false.
func DefaultGridOptions() GridOptions {
	return GridOptions{
		Conn:         Conn4,
		MoveCost:     1,
		DiagonalCost: math.Sqrt2,
		HideBlocked:  false,
	}
}

// Grid is a bounded lattice with a mutable obstacle set.
// Width and Height are fixed at construction; blocked[y*Width+x] reports
// whether the cell is an obstacle. Options are fixed at construction.
type Grid struct {
	Width, Height int

	mu              sync.RWMutex
	blocked         []bool
	opts            GridOptions
	neighborOffsets [][2]int
}

var (
	offsets4 = [][2]int{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}
	offsets8 = [][2]int{{0, -1}, {1, 0}, {0, 1}, {-1, 0}, {1, -1}, {1, 1}, {-1, 1}, {-1, -1}}
)
