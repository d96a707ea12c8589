// Package gridgraph treats a bounded 2D lattice of cells as a directed,
// weighted graph whose obstacle layout can change at run time.
//
// What:
//
//   - Grid holds a Width×Height lattice with a mutable set of blocked cells.
//   - Neighbours follow Conn4 (N, E, S, W) or Conn8 (plus the four diagonals).
//   - Cost(u, v) is the move cost into v: MoveCost for orthogonal steps,
//     DiagonalCost for diagonal ones, +Inf when v is blocked or out of bounds.
//     Because the cost depends on the destination only, it is not symmetric
//     around blocked cells.
//   - Heuristic(a, b) returns Manhattan (Conn4) or octile (Conn8) distance
//     scaled by the configured costs. It is admissible and consistent for the
//     grid's own neighbour function, so planners never pair a heuristic with
//     the wrong connectivity.
//   - ConnectedComponents groups free cells into contiguous regions.
//
// Why:
//
//   - Path planners that discover obstacles while moving need a cheap,
//     mutable world model with on-demand adjacency instead of a linked node
//     graph with back-references.
//   - One Grid can serve as the shared ground truth of a simulation while each
//     agent keeps its own partially observed copy (see Clone and Empty).
//
// Mutation:
//
//   - SetBlocked and Toggle only change the obstacle set. The Grid never
//     notifies anybody; whoever flips a cell is responsible for telling the
//     planners that depend on it.
//
// Concurrency:
//
//   - Every read takes a read lock and every mutation a write lock, so a
//     single Grid can be toggled while other goroutines query it.
//
// Complexity:
//
//   - Neighbors, Adjacent, Cost, Blocked, SetBlocked: O(1).
//   - ConnectedComponents: O(W×H×d), Memory: O(W×H)   (d = 4 or 8).
//   - Clone: O(W×H).
//
// Errors:
//
//   - ErrEmptyGrid: input grid has no rows or no columns.
//   - ErrNonRectangular: rows have differing lengths.
//   - ErrBadDimensions: width or height is not positive.
//   - ErrBadCost: a move cost is not positive and finite.
//   - ErrInvalidVertex: a coordinate lies outside the grid.
//   - ErrComponentIndex: requested component index out of range.
package gridgraph
