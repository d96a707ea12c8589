// Package bfs provides breadth-first search over a gridgraph.Grid,
// returning move-count shortest-path distances, parent links, and visit order.
//
// What
//
//   - Explore free cells in non-decreasing number of moves from a start cell.
//   - Returns a BFSResult containing:
//   - Order: visit sequence
//   - Depth: map from cell → moves from start
//   - Parent: map from cell → its predecessor in the BFS tree
//   - Supports functional hooks at three stages:
//   - OnEnqueue (before a cell is enqueued)
//   - OnDequeue (immediately before visiting)
//   - OnVisit   (when visiting; may abort with an error)
//   - Allows filtering of individual moves via WithFilterNeighbor.
//   - Honors MaxDepth limit (d>0) or explicit “no limit” (d==0).
//
// Why
//
//   - Reachability checks before an agent is admitted to a simulation.
//   - Reference distances for unit-cost 4-connected grids, where the
//     move count equals the path cost.
//
// Determinism
//
//	Neighbours are produced in the grid's fixed offset order
//	(N, E, S, W, then NE, SE, SW, NW on 8-connected grids), so the visit
//	sequence is fully reproducible.
//
// Blocked cells
//
//	A blocked cell has +Inf entry cost on the grid and is never enqueued.
//	The start cell is visited even if it is blocked itself.
//
// Complexity (V = W×H cells, d = neighbours per cell)
//
//   - Time:   O(V·d)
//   - Memory: O(V) for the visited table, queue and result maps.
//
// Errors
//
//   - ErrGraphNil: nil grid pointer.
//   - ErrStartVertexNotFound: start outside the grid.
//   - ErrOptionViolation: invalid option (e.g. negative MaxDepth).
//   - ctx.Err(): context cancelled or deadline exceeded.
//   - OnVisit error: wrapped and returned immediately.
package bfs
