// Package dijkstra implements Dijkstra's shortest-path algorithm on weighted grids.
//
// It processes cells in order of increasing distance using a min-heap priority
// queue, relaxing moves and updating distances accordingly.
//
// Notes on implementation choices:
//
//   - Move costs are read from gridgraph.Grid.Cost, so blocked cells and
//     non-adjacent pairs are +Inf and never relaxed.
//   - We stop exploring once the minimum distance in the heap exceeds MaxDistance.
//   - We use a “lazy” decrease-key strategy: pushing duplicates into the heap and ignoring stale entries.
//   - Ties are broken by row-major cell index so results are deterministic.
package dijkstra

import (
	"container/heap"
	"fmt"
	"math"

	"github.com/katalvlaran/dstarlite/gridgraph"
)

// Dijkstra computes shortest distances from the source cell (Options.Source)
// to all other cells of g.
//
// Returns:
//
//   - dist: map from cell to minimum distance (+Inf if unreachable).
//   - prev: optional predecessor map if ReturnPath=true (nil otherwise).
//     prev[v] == u means the shortest path to v goes through u; with
//     WithReverse, u is the next cell after v on the way to Source.
//     Source and unreachable cells have no entry.
//   - err:  ErrEmptySource, ErrNilGraph or ErrVertexNotFound.
//
// Complexity:
//
//   - Time:  O((V + E) log V)
//   - Space: O(V + E)
func Dijkstra(g *gridgraph.Grid, opts ...Option) (map[gridgraph.Cell]float64, map[gridgraph.Cell]gridgraph.Cell, error) {
	// 1) Build and validate Options
	cfg := DefaultOptions(gridgraph.Cell{})
	for _, opt := range opts {
		opt(&cfg)
	}
	if !cfg.hasSource {
		return nil, nil, ErrEmptySource
	}
	if g == nil {
		return nil, nil, ErrNilGraph
	}
	if !g.Contains(cfg.Source) {
		return nil, nil, fmt.Errorf("%w: %v", ErrVertexNotFound, cfg.Source)
	}

	// 2) Prepare data structures for the algorithm.
	V := g.Size()
	var prev []int
	if cfg.ReturnPath || cfg.MemoryMode == MemoryModeFull {
		prev = make([]int, V)
	}
	r := &runner{
		g:       g,
		options: cfg,
		dist:    make([]float64, V),
		prev:    prev,
		visited: make([]bool, V),
		pq:      make(nodePQ, 0, V),
	}

	// 3) Initialize algorithm state and run main loop.
	r.init()
	r.process()

	// 4) Convert index-addressed state into cell-keyed maps.
	dist := make(map[gridgraph.Cell]float64, V)
	for i, d := range r.dist {
		dist[g.CellAt(i)] = d
	}
	if !cfg.ReturnPath {
		return dist, nil, nil
	}
	pm := make(map[gridgraph.Cell]gridgraph.Cell, V)
	for i, p := range r.prev {
		if p >= 0 {
			pm[g.CellAt(i)] = g.CellAt(p)
		}
	}

	return dist, pm, nil
}

// ShortestPath returns the cheapest route from src to dst on g and its cost.
// ok is false if dst cannot be reached.
func ShortestPath(g *gridgraph.Grid, src, dst gridgraph.Cell) ([]gridgraph.Cell, float64, bool, error) {
	if g != nil && !g.Contains(dst) {
		return nil, 0, false, fmt.Errorf("%w: %v", ErrVertexNotFound, dst)
	}
	dist, prev, err := Dijkstra(g, Source(src), WithReturnPath())
	if err != nil {
		return nil, 0, false, err
	}
	d := dist[dst]
	if math.IsInf(d, 1) {
		return nil, d, false, nil
	}
	path := []gridgraph.Cell{dst}
	for cur := dst; cur != src; {
		cur = prev[cur]
		path = append(path, cur)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return path, d, true, nil
}

// runner holds the mutable state for a single Dijkstra execution.
type runner struct {
	g       *gridgraph.Grid // The input grid; read-only within Dijkstra.
	options Options         // Configuration options (Source, thresholds, etc.).
	dist    []float64       // Cell index → current best distance.
	prev    []int           // Cell index → predecessor index, -1 if none.
	visited []bool          // Tracks if a cell's distance is finalized.
	pq      nodePQ          // Min-heap of *nodeItem for lazy priority queue.
}

// init sets dist to +Inf everywhere except the source and pushes it onto the heap.
func (r *runner) init() {
	for i := range r.dist {
		r.dist[i] = math.Inf(1)
		if r.prev != nil {
			r.prev[i] = -1
		}
	}
	src := r.g.Index(r.options.Source)
	r.dist[src] = 0
	heap.Init(&r.pq)
	heap.Push(&r.pq, &nodeItem{id: src, dist: 0})
}

// process is the core loop of Dijkstra's algorithm. It repeatedly extracts the
// cell with the minimum distance and relaxes its moves, until the heap is empty
// or the minimum distance exceeds MaxDistance.
func (r *runner) process() {
	for r.pq.Len() > 0 {
		item := heap.Pop(&r.pq).(*nodeItem)
		u, d := item.id, item.dist

		// skip stale heap entries
		if r.visited[u] {
			continue
		}
		if d > r.options.MaxDistance {
			break
		}
		r.visited[u] = true
		r.relax(u)
	}
}

// relax tries to improve every neighbour of u. In forward mode the move is
// u→v; in reverse mode it is v→u, so the cost is that of entering u.
func (r *runner) relax(u int) {
	uc := r.g.CellAt(u)
	for _, vc := range r.g.Adjacent(uc) {
		var w float64
		if r.options.Reverse {
			w = r.g.Cost(vc, uc)
		} else {
			w = r.g.Cost(uc, vc)
		}
		if math.IsInf(w, 1) || w >= r.options.InfEdgeThreshold {
			continue
		}
		v := r.g.Index(vc)
		newDist := r.dist[u] + w
		if newDist > r.options.MaxDistance || newDist >= r.dist[v] {
			continue
		}
		r.dist[v] = newDist
		if r.prev != nil {
			r.prev[v] = u
		}
		heap.Push(&r.pq, &nodeItem{id: v, dist: newDist})
	}
}

// nodeItem represents a cell index and its current distance from the source.
type nodeItem struct {
	id   int     // row-major cell index
	dist float64 // distance from source
}

// nodePQ is a min-heap of *nodeItem ordered by dist, then by id.
type nodePQ []*nodeItem

// Len returns the number of items in the heap.
func (pq nodePQ) Len() int { return len(pq) }

// Less defines the comparison: smaller dist → higher priority.
func (pq nodePQ) Less(i, j int) bool {
	if pq[i].dist != pq[j].dist {
		return pq[i].dist < pq[j].dist
	}
	return pq[i].id < pq[j].id
}

// Swap swaps two elements in the heap.
func (pq nodePQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

// Push adds a new element x onto the heap.
func (pq *nodePQ) Push(x interface{}) { *pq = append(*pq, x.(*nodeItem)) }

// Pop removes and returns the smallest element from the heap.
func (pq *nodePQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]

	return item
}
