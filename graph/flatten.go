package graph

import (
	"fmt"

	depset "github.com/albertocavalcante/go-depset"
	"github.com/albertocavalcante/go-depset/coordinate"
)

// Flatten walks g breadth first from the coordinate entries of set and returns
// the classpath they produce, deduplicated and conflict resolved with strategy.
//
// Declared entries come first and are never dropped. Each pulled coordinate
// inherits the transitivity of the declaration that reached it; declarations
// with [depset.TransitivityNone] pull in nothing. Coordinates matching a global
// exclusion of set are dropped together with everything reachable only through
// them. Versions are folded nearest first, so [coordinate.TakeFirst] keeps the
// version closest to the declarations. File and computed entries pass through.
func Flatten(g *Graph, set depset.DependencySet, strategy coordinate.ConflictStrategy) (depset.DependencySet, error) {
	vp := set.VersionProvider()

	type item struct {
		c coordinate.Coordinate
		t depset.Transitivity
	}
	var (
		entries []depset.Dependency
		queue   []item
		reached = make(map[coordinate.Coordinate]depset.Transitivity)
	)

	for _, e := range set.Entries() {
		cd, ok := e.(depset.CoordinateDependency)
		if !ok {
			entries = append(entries, e)
			continue
		}
		if cd.Version().IsUnspecified() {
			cd = cd.WithVersion(vp.VersionOfOrUnspecified(cd.ModuleID()))
		}
		node := g.lookup(cd.Coordinate())
		if node != nil && cd.Version().IsUnspecified() {
			cd = cd.WithVersion(node.Coordinate.Version())
		}
		entries = append(entries, cd)

		if node == nil || cd.Transitivity() == depset.TransitivityNone {
			continue
		}
		t := cd.Transitivity()
		if t.IsUnspecified() {
			t = depset.TransitivityRuntime
		}
		if prev, ok := reached[node.Coordinate]; ok && prev >= t {
			continue
		}
		reached[node.Coordinate] = t
		queue = append(queue, item{c: node.Coordinate, t: t})
	}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, dep := range g.DirectDeps(current.c) {
			if set.IsExcluded(dep) {
				continue
			}
			if prev, ok := reached[dep]; ok && prev >= current.t {
				continue
			}
			reached[dep] = current.t
			entries = append(entries, depset.NewCoordinateDependency(dep, current.t))
			queue = append(queue, item{c: dep, t: current.t})
		}
	}

	flat, err := depset.Of(entries...).
		WithGlobalExclusions(set.GlobalExclusions()...).
		WithVersionProvider(vp).
		Normalised(strategy)
	if err != nil {
		return depset.DependencySet{}, fmt.Errorf("flatten: %w", err)
	}
	return flat, nil
}

// lookup finds the node answering a declaration: the exact coordinate, else
// the nearest node of the same module and artifact.
func (g *Graph) lookup(c coordinate.Coordinate) *Node {
	if node := g.Nodes[c]; node != nil {
		return node
	}
	for _, node := range g.ByModule(c.ModuleID()) {
		if node.Coordinate.ArtifactSpecification() == c.ArtifactSpecification() {
			return node
		}
	}
	return nil
}
