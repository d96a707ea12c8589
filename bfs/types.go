package bfs

import (
	"context"
	"errors"
	"fmt"

	"github.com/katalvlaran/dstarlite/gridgraph"
)

var (
	// ErrStartVertexNotFound: the start cell lies outside the grid.
	ErrStartVertexNotFound = errors.New("bfs: start vertex not found")
	// ErrGraphNil: BFS was called with a nil grid.
	ErrGraphNil = errors.New("bfs: graph is nil")
	// ErrOptionViolation wraps every rejected Option.
	ErrOptionViolation = errors.New("bfs: invalid option supplied")
)

// Option mutates BFSOptions. A rejected value is remembered and BFS fails
// with ErrOptionViolation before touching the grid.
type Option func(*BFSOptions)

// BFSOptions is the resolved configuration of one search. Hooks receive a
// cell together with its move count from the start.
type BFSOptions struct {
	Ctx context.Context // checked before every dequeue

	OnEnqueue func(c gridgraph.Cell, depth int)
	OnDequeue func(c gridgraph.Cell, depth int)
	// OnVisit may stop the search; BFS wraps and returns its error.
	OnVisit func(c gridgraph.Cell, depth int) error

	// MaxDepth caps the move count of discovered cells; 0 means unlimited.
	MaxDepth int

	// FilterNeighbor vetoes single moves between free cells, e.g. to
	// forbid cells reserved by other agents.
	FilterNeighbor func(curr, neighbor gridgraph.Cell) bool

	err error
}

// DefaultOptions searches the whole free region with no-op hooks.
func DefaultOptions() BFSOptions {
	return BFSOptions{
		Ctx:            context.Background(),
		OnEnqueue:      func(gridgraph.Cell, int) {},
		OnDequeue:      func(gridgraph.Cell, int) {},
		OnVisit:        func(gridgraph.Cell, int) error { return nil },
		FilterNeighbor: func(_, _ gridgraph.Cell) bool { return true },
	}
}

// WithContext ignores a nil ctx.
func WithContext(ctx context.Context) Option {
	return func(o *BFSOptions) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithOnEnqueue fires when a cell is first discovered.
func WithOnEnqueue(fn func(c gridgraph.Cell, depth int)) Option {
	return func(o *BFSOptions) {
		if fn != nil {
			o.OnEnqueue = fn
		}
	}
}

// WithOnDequeue fires just before the cell is visited.
func WithOnDequeue(fn func(c gridgraph.Cell, depth int)) Option {
	return func(o *BFSOptions) {
		if fn != nil {
			o.OnDequeue = fn
		}
	}
}

func WithOnVisit(fn func(c gridgraph.Cell, depth int) error) Option {
	return func(o *BFSOptions) {
		if fn != nil {
			o.OnVisit = fn
		}
	}
}

// WithMaxDepth limits the search to cells at most d moves away
// (0 = unlimited). A negative d is an ErrOptionViolation.
func WithMaxDepth(d int) Option {
	return func(o *BFSOptions) {
		if d < 0 {
			o.err = fmt.Errorf("%w: MaxDepth cannot be negative (%d)", ErrOptionViolation, d)
			return
		}
		o.MaxDepth = d
	}
}

// WithFilterNeighbor drops the move curr→neighbor when fn returns false.
func WithFilterNeighbor(fn func(curr, neighbor gridgraph.Cell) bool) Option {
	return func(o *BFSOptions) {
		if fn != nil {
			o.FilterNeighbor = fn
		}
	}
}

// BFSResult is the search tree rooted at the start cell.
type BFSResult struct {
	Order  []gridgraph.Cell                  // visit order
	Depth  map[gridgraph.Cell]int            // move count from the start
	Parent map[gridgraph.Cell]gridgraph.Cell // start has no entry
}

// Reached reports whether dest was discovered.
func (r *BFSResult) Reached(dest gridgraph.Cell) bool {
	_, ok := r.Depth[dest]
	return ok
}

// PathTo walks Parent back from dest and returns start..dest, one cell per
// move. dest must have been reached.
func (r *BFSResult) PathTo(dest gridgraph.Cell) ([]gridgraph.Cell, error) {
	d, ok := r.Depth[dest]
	if !ok {
		return nil, fmt.Errorf("bfs: no path to %v", dest)
	}
	path := make([]gridgraph.Cell, d+1)
	for cur := dest; d >= 0; d-- {
		path[d] = cur
		cur = r.Parent[cur]
	}

	return path, nil
}
