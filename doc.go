// Package dstarlite is an incremental path replanner for agents moving on
// 2D grids whose obstacles are only discovered as they come into view.
//
// What is inside?
//
//	gridgraph/  - mutable 4- or 8-connected grid, destination-dependent move
//	              costs, matching heuristics, connected components
//	dstar/      - D* Lite: g/rhs store, indexed key queue, ComputeShortestPath,
//	              move-and-rescan stepping, current path extraction
//	agent/      - controllers that sense, replan and move; multi-agent
//	              simulations with metrics, tracing and structured logs
//	bfs/        - breadth-first search (reachability, move counts)
//	dijkstra/   - full-knowledge weighted shortest paths (offline optimum)
//	cmd/dstarsim - headless YAML-driven simulation runner
//
// Quick start:
//
//	world, _ := gridgraph.NewGrid(15, 15, gridgraph.DefaultGridOptions())
//	c, _ := agent.NewController(world, gridgraph.Cell{X: 0, Y: 0}, gridgraph.Cell{X: 14, Y: 14})
//	for !c.Done() {
//		res, err := c.Step(ctx)
//		if err != nil || res.Status == dstar.StatusUnreachable {
//			break
//		}
//	}
//
// Why D* Lite?
//
//   - An agent with a small viewing range replans after almost every step.
//     D* Lite repairs only the part of the search the new obstacles touch,
//     instead of searching from scratch.
//   - The search runs from the goal towards the agent, so moving the agent
//     only shifts the heuristic (tracked by km) and keeps earlier work valid.
package dstarlite
