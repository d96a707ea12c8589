package dstar

import "math"

// vertexStore is the per-vertex g/rhs arena, indexed by the grid's
// row-major cell index. Adjacency is never stored; it is derived from the
// grid on demand.
type vertexStore struct {
	g   []float64
	rhs []float64
}

func newVertexStore(n int) *vertexStore {
	s := &vertexStore{
		g:   make([]float64, n),
		rhs: make([]float64, n),
	}
	s.reset()
	return s
}

// reset marks every vertex unvisited (g = rhs = +Inf).
func (s *vertexStore) reset() {
	inf := math.Inf(1)
	for i := range s.g {
		s.g[i] = inf
		s.rhs[i] = inf
	}
}

// consistent reports g(v) == rhs(v).
func (s *vertexStore) consistent(v int) bool {
	return s.g[v] == s.rhs[v]
}

// minGRHS returns min(g(v), rhs(v)).
func (s *vertexStore) minGRHS(v int) float64 {
	return math.Min(s.g[v], s.rhs[v])
}
