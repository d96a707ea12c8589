// Package bfs provides breadth-first search over a gridgraph.Grid,
// returning move-count shortest-path distances, parent links, and visit order.
//
// BFS explores cells in increasing number of moves from a start cell. Blocked
// cells are never entered, matching the +Inf cost the grid reports for them.
package bfs

import (
	"context"
	"fmt"

	"github.com/katalvlaran/dstarlite/gridgraph"
)

// queueItem pairs a cell with its BFS depth.
type queueItem struct {
	cell  gridgraph.Cell
	depth int
}

// walker encapsulates mutable BFS state.
type walker struct {
	grid    *gridgraph.Grid
	opts    BFSOptions
	ctx     context.Context
	queue   []queueItem
	visited []bool
	res     *BFSResult
}

// BFS runs breadth-first search on g starting from start,
// applying any number of functional Options.
// Returns ErrGraphNil or ErrStartVertexNotFound for invalid input,
// ErrOptionViolation for bad options, the context error on cancellation,
// or any user-supplied hook error.
func BFS(g *gridgraph.Grid, start gridgraph.Cell, opts ...Option) (*BFSResult, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	// Build options and catch any invalid ones immediately
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}

	// Validate start cell
	if !g.Contains(start) {
		return nil, fmt.Errorf("%w: %v", ErrStartVertexNotFound, start)
	}

	// Prepare walker
	n := g.Size()
	w := &walker{
		grid:    g,
		opts:    o,
		ctx:     o.Ctx,
		queue:   make([]queueItem, 0, n),
		visited: make([]bool, n),
		res: &BFSResult{
			Order:  make([]gridgraph.Cell, 0, n),
			Depth:  make(map[gridgraph.Cell]int, n),
			Parent: make(map[gridgraph.Cell]gridgraph.Cell, n),
		},
	}

	// Seed queue with start cell (no parent)
	w.enqueue(start, 0, nil)
	// Main loop
	return w.res, w.loop()
}

// enqueue marks c visited at depth d, records its parent,
// calls OnEnqueue, and adds it to the queue.
func (w *walker) enqueue(c gridgraph.Cell, d int, parent *gridgraph.Cell) {
	w.visited[w.grid.Index(c)] = true
	w.res.Depth[c] = d
	if parent != nil {
		w.res.Parent[c] = *parent
	}
	w.opts.OnEnqueue(c, d)
	w.queue = append(w.queue, queueItem{cell: c, depth: d})
}

// loop processes the queue until empty, error, or cancellation.
func (w *walker) loop() error {
	for len(w.queue) > 0 {
		// cancellation check (once per loop)
		select {
		case <-w.ctx.Done():
			return w.ctx.Err()
		default:
		}

		item := w.dequeue()
		if err := w.visit(item); err != nil {
			return err
		}
		w.enqueueNeighbors(item)
	}
	return nil
}

// dequeue pops the first item, invokes OnDequeue, and returns it.
func (w *walker) dequeue() queueItem {
	item := w.queue[0]
	w.queue = w.queue[1:]
	w.opts.OnDequeue(item.cell, item.depth)
	return item
}

// visit records the cell in Order and calls OnVisit.
func (w *walker) visit(item queueItem) error {
	w.res.Order = append(w.res.Order, item.cell)
	if err := w.opts.OnVisit(item.cell, item.depth); err != nil {
		return fmt.Errorf("bfs: OnVisit error at %v: %w", item.cell, err)
	}
	return nil
}

// enqueueNeighbors applies blockage, filtering and MaxDepth,
// and enqueues each unseen neighbor.
func (w *walker) enqueueNeighbors(item queueItem) {
	nextDepth := item.depth + 1
	if w.opts.MaxDepth > 0 && nextDepth > w.opts.MaxDepth {
		return
	}
	for _, nbr := range w.grid.Adjacent(item.cell) {
		if w.visited[w.grid.Index(nbr)] || w.grid.Blocked(nbr) {
			continue
		}
		if !w.opts.FilterNeighbor(item.cell, nbr) {
			continue
		}
		parent := item.cell
		w.enqueue(nbr, nextDepth, &parent)
	}
}

// Distance returns the fewest moves from start to goal on g, treating
// blocked cells as impassable. ok is false if goal is unreachable.
func Distance(g *gridgraph.Grid, start, goal gridgraph.Cell) (int, bool, error) {
	res, err := BFS(g, start)
	if err != nil {
		return 0, false, err
	}
	d, ok := res.Depth[goal]
	return d, ok, nil
}
