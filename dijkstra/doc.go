// Package dijkstra provides Dijkstra's shortest-path algorithm on
// gridgraph.Grid, with float64 move costs and +Inf for blocked cells.
//
// Overview:
//
//   - Dijkstra computes the minimum-cost path from a single source cell to all
//     reachable cells in O((V + E) log V) time, where V = W×H and E = V×d.
//   - It relies on a min-heap (priority queue) to always expand the next-closest cell.
//   - Supports optional path reconstruction, distance caps, “impassable”
//     cost thresholds and a reverse mode.
//
// When to use:
//
//   - As the full-knowledge reference for incremental planners: the optimal
//     cost an agent could have achieved had it known every obstacle upfront.
//   - In tests, WithReverse reproduces the cost-to-goal field g(v) that an
//     incremental planner converges to.
//
// Key features:
//
//   - ReturnPath: if enabled, returns a “predecessor” map, so you can rebuild each path.
//   - MaxDistance: aborts exploration beyond a specified distance.
//   - InfEdgeThreshold: treats any move with cost ≥ threshold as impassable.
//   - MemoryModeCompact: skips predecessor storage when no path is requested.
//   - Reverse: edge costs depend on the destination cell, so cost(u,v) and
//     cost(v,u) differ when exactly one of u, v is blocked; Reverse relaxes
//     moves towards the source instead of away from it.
//
// Error handling (sentinel errors):
//
//   - ErrEmptySource:     no Source option was passed.
//   - ErrNilGraph:        nil *gridgraph.Grid.
//   - ErrVertexNotFound:  the source cell lies outside the grid.
//   - ErrBadMaxDistance:  panic value for a negative MaxDistance.
//   - ErrBadInfThreshold: panic value for a non-positive InfEdgeThreshold.
//
// API reference:
//
//	dist, prev, err := dijkstra.Dijkstra(g, dijkstra.Source(c), dijkstra.WithReturnPath())
//	path, cost, ok, err := dijkstra.ShortestPath(g, src, dst)
package dijkstra
