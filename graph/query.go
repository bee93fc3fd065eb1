package graph

import (
	"fmt"
	"slices"
	"strings"

	"github.com/albertocavalcante/go-depset/coordinate"
)

// Get returns the node for a coordinate, or nil if not found.
func (g *Graph) Get(c coordinate.Coordinate) *Node {
	return g.Nodes[c]
}

// Contains returns true if the graph contains the given coordinate.
func (g *Graph) Contains(c coordinate.Coordinate) bool {
	_, ok := g.Nodes[c]
	return ok
}

// ByModule returns every node of a module in breadth-first order from the
// declared coordinates, nearest first.
func (g *Graph) ByModule(moduleID coordinate.ModuleID) []*Node {
	var nodes []*Node
	for _, c := range g.breadthFirst() {
		if c.ModuleID() == moduleID {
			nodes = append(nodes, g.Nodes[c])
		}
	}
	return nodes
}

// ContainsModule returns true if any version of the module is in the graph.
func (g *Graph) ContainsModule(moduleID coordinate.ModuleID) bool {
	for c := range g.Nodes {
		if c.ModuleID() == moduleID {
			return true
		}
	}
	return false
}

// DirectDeps returns the coordinates c pulled in.
func (g *Graph) DirectDeps(c coordinate.Coordinate) []coordinate.Coordinate {
	if node := g.Nodes[c]; node != nil {
		return node.Dependencies
	}
	return nil
}

// Dependents returns the coordinates that directly pulled c in.
func (g *Graph) Dependents(c coordinate.Coordinate) []coordinate.Coordinate {
	if node := g.Nodes[c]; node != nil {
		return node.Dependents
	}
	return nil
}

// TransitiveDeps returns all transitive dependencies of c in breadth-first order.
func (g *Graph) TransitiveDeps(c coordinate.Coordinate) []coordinate.Coordinate {
	return g.walk([]coordinate.Coordinate{c}, func(n *Node) []coordinate.Coordinate { return n.Dependencies })
}

// TransitiveDependents returns all coordinates that transitively depend on c,
// closest first.
func (g *Graph) TransitiveDependents(c coordinate.Coordinate) []coordinate.Coordinate {
	return g.walk([]coordinate.Coordinate{c}, func(n *Node) []coordinate.Coordinate { return n.Dependents })
}

// breadthFirst lists every node reachable from the declared coordinates,
// declared ones first.
func (g *Graph) breadthFirst() []coordinate.Coordinate {
	reached := g.walk(g.Direct, func(n *Node) []coordinate.Coordinate { return n.Dependencies })
	return append(slices.Clone(g.Direct), reached...)
}

// walk returns the nodes reachable from start, excluding start itself.
func (g *Graph) walk(start []coordinate.Coordinate, next func(*Node) []coordinate.Coordinate) []coordinate.Coordinate {
	result := make([]coordinate.Coordinate, 0)
	visited := make(map[coordinate.Coordinate]bool, len(start))
	for _, c := range start {
		visited[c] = true
	}

	queue := slices.Clone(start)
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		node := g.Nodes[current]
		if node == nil {
			continue
		}

		for _, dep := range next(node) {
			if !visited[dep] {
				visited[dep] = true
				result = append(result, dep)
				queue = append(queue, dep)
			}
		}
	}

	return result
}

// Path finds the shortest dependency path from one coordinate to another.
// Returns nil if no path exists.
func (g *Graph) Path(from, to coordinate.Coordinate) []coordinate.Coordinate {
	if from == to {
		if g.Contains(from) {
			return []coordinate.Coordinate{from}
		}
		return nil
	}

	type queueItem struct {
		c    coordinate.Coordinate
		path []coordinate.Coordinate
	}

	visited := map[coordinate.Coordinate]bool{from: true}
	queue := []queueItem{{c: from, path: []coordinate.Coordinate{from}}}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		node := g.Nodes[current.c]
		if node == nil {
			continue
		}

		for _, dep := range node.Dependencies {
			if visited[dep] {
				continue
			}
			visited[dep] = true
			path := append(slices.Clone(current.path), dep)
			if dep == to {
				return path
			}
			queue = append(queue, queueItem{c: dep, path: path})
		}
	}

	return nil
}

// PathToModule finds the shortest path from any declared coordinate to any
// version of moduleID.
func (g *Graph) PathToModule(moduleID coordinate.ModuleID) []coordinate.Coordinate {
	var best []coordinate.Coordinate
	for _, target := range g.ByModule(moduleID) {
		for _, root := range g.Direct {
			p := g.Path(root, target.Coordinate)
			if p != nil && (best == nil || len(p) < len(best)) {
				best = p
			}
		}
	}
	return best
}

// AllPaths finds all dependency paths from one coordinate to another.
// This can be expensive for large graphs with many paths.
func (g *Graph) AllPaths(from, to coordinate.Coordinate) [][]coordinate.Coordinate {
	var result [][]coordinate.Coordinate
	g.findAllPaths(from, to, []coordinate.Coordinate{from}, make(map[coordinate.Coordinate]bool), &result)
	return result
}

func (g *Graph) findAllPaths(current, target coordinate.Coordinate, path []coordinate.Coordinate, visited map[coordinate.Coordinate]bool, result *[][]coordinate.Coordinate) {
	if current == target {
		*result = append(*result, slices.Clone(path))
		return
	}

	visited[current] = true
	defer func() { visited[current] = false }()

	node := g.Nodes[current]
	if node == nil {
		return
	}

	for _, dep := range node.Dependencies {
		if !visited[dep] {
			g.findAllPaths(dep, target, append(path, dep), visited, result)
		}
	}
}

// Explain lists the versions of a module present in the tree, who asked for
// each, and which one strategy selects. A strategy that rejects the versions
// present sets Conflict instead of failing. Versions are folded nearest first, so
// [coordinate.TakeFirst] behaves as nearest-wins.
func (g *Graph) Explain(moduleID coordinate.ModuleID, strategy coordinate.ConflictStrategy) (*Explanation, error) {
	nodes := g.ByModule(moduleID)
	if len(nodes) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrModuleNotFound, moduleID)
	}

	explanation := &Explanation{
		Module:   moduleID,
		Strategy: strategy,
	}

	var selected coordinate.Version
	for i, node := range nodes {
		v := node.Coordinate.Version()
		if i == 0 {
			selected = v
			continue
		}
		resolved, err := coordinate.ResolveVersionConflict(selected, v, strategy)
		if err != nil {
			// Under FailOnConflict nothing is selected; the candidates still explain why.
			explanation.Conflict = true
			selected = coordinate.Unspecified
			break
		}
		selected = resolved
	}
	explanation.Selected = selected

	for _, node := range nodes {
		v := node.Coordinate.Version()
		i := slices.IndexFunc(explanation.Candidates, func(c VersionCandidate) bool { return c.Version == v })
		if i < 0 {
			explanation.Candidates = append(explanation.Candidates, VersionCandidate{Version: v, Selected: !explanation.Conflict && v == selected})
			i = len(explanation.Candidates) - 1
		}
		cand := &explanation.Candidates[i]
		cand.Declared = cand.Declared || node.IsDirect
		cand.RequestedBy = append(cand.RequestedBy, node.Dependents...)

		for _, root := range g.Direct {
			for _, path := range g.AllPaths(root, node.Coordinate) {
				chain := DependencyChain{Path: path}
				if len(path) >= 2 {
					chain.RequestedVersion = node.RequestedVersions[path[len(path)-2]]
				}
				explanation.DependencyChains = append(explanation.DependencyChains, chain)
			}
		}
	}
	slices.SortStableFunc(explanation.Candidates, func(a, b VersionCandidate) int {
		return a.Version.Compare(b.Version)
	})

	return explanation, nil
}

// Stats returns statistics about the graph.
func (g *Graph) Stats() GraphStats {
	stats := GraphStats{
		TotalNodes:         len(g.Nodes),
		DirectDependencies: len(g.Direct),
	}
	stats.TransitiveDependencies = stats.TotalNodes - stats.DirectDependencies

	versions := make(map[coordinate.ModuleID]map[coordinate.Version]bool)
	for c := range g.Nodes {
		if versions[c.ModuleID()] == nil {
			versions[c.ModuleID()] = make(map[coordinate.Version]bool)
		}
		versions[c.ModuleID()][c.Version()] = true
	}
	stats.TotalModules = len(versions)
	for _, vs := range versions {
		if len(vs) > 1 {
			stats.Conflicts++
		}
	}

	stats.MaxDepth = g.calculateMaxDepth()
	return stats
}

func (g *Graph) calculateMaxDepth() int {
	depths := make(map[coordinate.Coordinate]int)
	onPath := make(map[coordinate.Coordinate]bool)
	var maxDepth int

	var dfs func(c coordinate.Coordinate, depth int)
	dfs = func(c coordinate.Coordinate, depth int) {
		// A node already on the current path is a cycle back-edge.
		if onPath[c] {
			return
		}
		if existing, ok := depths[c]; ok && existing >= depth {
			return
		}
		depths[c] = depth
		maxDepth = max(maxDepth, depth)

		node := g.Nodes[c]
		if node == nil {
			return
		}

		onPath[c] = true
		for _, dep := range node.Dependencies {
			dfs(dep, depth+1)
		}
		delete(onPath, c)
	}

	for _, root := range g.Direct {
		dfs(root, 0)
	}
	return maxDepth
}

// Leaves returns all nodes without dependencies, sorted.
func (g *Graph) Leaves() []coordinate.Coordinate {
	var leaves []coordinate.Coordinate
	for c, node := range g.Nodes {
		if len(node.Dependencies) == 0 {
			leaves = append(leaves, c)
		}
	}
	sortCoordinates(leaves)
	return leaves
}

// FindCycles returns the cycles reachable from the declared coordinates.
func (g *Graph) FindCycles() [][]coordinate.Coordinate {
	var cycles [][]coordinate.Coordinate
	visited := make(map[coordinate.Coordinate]bool)
	recStack := make(map[coordinate.Coordinate]bool)
	path := make([]coordinate.Coordinate, 0)

	var findCycles func(c coordinate.Coordinate)
	findCycles = func(c coordinate.Coordinate) {
		visited[c] = true
		recStack[c] = true
		path = append(path, c)

		if node := g.Nodes[c]; node != nil {
			for _, dep := range node.Dependencies {
				if !visited[dep] {
					findCycles(dep)
				} else if recStack[dep] {
					if start := slices.Index(path, dep); start >= 0 {
						cycles = append(cycles, slices.Clone(path[start:]))
					}
				}
			}
		}

		path = path[:len(path)-1]
		recStack[c] = false
	}

	for _, root := range g.Direct {
		if !visited[root] {
			findCycles(root)
		}
	}

	return cycles
}

// HasCycles returns true if a cycle is reachable from the declared coordinates.
func (g *Graph) HasCycles() bool {
	return len(g.FindCycles()) > 0
}

func sortCoordinates(cs []coordinate.Coordinate) {
	slices.SortFunc(cs, func(a, b coordinate.Coordinate) int {
		if c := a.ModuleID().Compare(b.ModuleID()); c != 0 {
			return c
		}
		if c := a.Version().Compare(b.Version()); c != 0 {
			return c
		}
		return strings.Compare(a.String(), b.String())
	})
}
