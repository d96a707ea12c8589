// Package dstar provides D* Lite, an incremental replanning engine for agents
// moving on a gridgraph.Grid whose obstacles are discovered on the way.
//
// Overview:
//
//   - The search runs backwards from the goal. g(v) is the best known
//     cost-to-goal of v and rhs(v) = min over successors s of cost(v,s)+g(s).
//   - A vertex is consistent when g == rhs. The open queue holds exactly the
//     inconsistent vertices, ordered by the key
//     (min(g,rhs) + h(v,start) + km, min(g,rhs)).
//   - When a rescan reveals new obstacles (or removes old ones) only the
//     vertices next to the changed cells are updated; ComputeShortestPath then
//     repairs as much of the search as the start's key requires.
//   - km accumulates h(last, start) each time changes are observed after the
//     agent moved, so old queue entries keep comparable keys without re-keying.
//
// When to use:
//
//   - Robots, game units or simulated agents that re-plan after every step
//     with a small sensing radius.
//   - Any shortest-path workload where the graph changes near the searcher
//     and a full search per change is too expensive.
//
// API reference:
//
//	p, err := dstar.New(belief, start, goal, opts...)       // initialise
//	res, err := p.MoveAndRescan(pos, radius, truth)         // one step
//	path, err := p.CurrentPath()                            // read-only path
//	p.NotifyCellChanged(c); err = p.ComputeShortestPath()   // manual updates
//
// Results:
//
//   - StatusMoved: res.Next is the next cell on the current shortest path.
//   - StatusGoalReached: the agent is on the goal.
//   - StatusUnreachable: g(start) is +Inf; this is a normal outcome, the agent
//     is boxed in under current knowledge. A later rescan may open a path.
//
// Options:
//
//   - WithContext(ctx):   cancel a long ComputeShortestPath.
//   - WithHeuristic(h):   replace the grid's heuristic (must stay admissible).
//   - WithOnExpand(fn):   observe every expansion, e.g. for visualisation.
//   - WithOnUpdate(fn):   observe every UpdateVertex.
//
// Errors (sentinel):
//
//   - ErrNilGrid, ErrNilSensor, ErrBadSensorRadius, ErrOptionViolation.
//   - gridgraph.ErrInvalidVertex for coordinates outside the grid.
//   - ErrNoPath from CurrentPath when no path exists.
//   - ErrEmptyQueuePop is a panic value; it can only appear if the
//     ComputeShortestPath loop condition is broken.
//
// Complexity:
//
//   - Initialisation: O(W×H) memory for g, rhs and the queue index.
//   - ComputeShortestPath: O(k·d·log n) for k expansions, d neighbours.
//     The first call is comparable to A*; later calls usually expand only
//     vertices near the changed cells.
//
// Thread safety:
//
//   - A Planner is single-goroutine. Run one Planner per agent; only the
//     ground-truth grid passed as Sensor may be shared (it is RWMutex-guarded).
package dstar
