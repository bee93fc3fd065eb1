package graph

import (
	"errors"
	"fmt"

	"github.com/albertocavalcante/go-depset/coordinate"
)

// ErrModuleNotFound is returned by queries naming a module absent from the tree.
var ErrModuleNotFound = errors.New("module not found in graph")

// Graph is a resolved dependency tree.
// It supports traversal in both directions (dependencies and dependents).
type Graph struct {
	// Direct lists the declared coordinates the tree was resolved from, in declaration order.
	Direct []coordinate.Coordinate

	// Nodes contains every coordinate in the tree.
	Nodes map[coordinate.Coordinate]*Node
}

// Node is one resolved coordinate of the tree.
type Node struct {
	// Coordinate is the resolved coordinate.
	Coordinate coordinate.Coordinate

	// Dependencies are the coordinates this one pulled in, in resolver order.
	Dependencies []coordinate.Coordinate

	// Dependents are the coordinates that pulled this one in (reverse edges).
	Dependents []coordinate.Coordinate

	// RequestedVersions maps a dependent to the version it asked for when the
	// resolver answered with a different one, e.g. a range or a "latest.release".
	RequestedVersions map[coordinate.Coordinate]coordinate.Version

	// IsDirect is true for declared coordinates.
	IsDirect bool
}

// Explanation describes how a module ended up at its version.
type Explanation struct {
	// Module is the module being explained.
	Module coordinate.ModuleID

	// Strategy is the conflict strategy the selection was computed with.
	Strategy coordinate.ConflictStrategy

	// Selected is the version the strategy picks among the candidates.
	Selected coordinate.Version

	// Conflict is true when the strategy rejects the versions present.
	Conflict bool

	// Candidates are the versions present in the tree, lowest first.
	Candidates []VersionCandidate

	// DependencyChains shows every path from a declared coordinate to the module.
	DependencyChains []DependencyChain
}

// VersionCandidate is one version of a module present in the tree.
type VersionCandidate struct {
	Version coordinate.Version

	// RequestedBy lists the dependents that pulled this version in.
	RequestedBy []coordinate.Coordinate

	// Declared is true if the version is declared directly.
	Declared bool

	Selected bool
}

// DependencyChain is a path of coordinates from a declared one to a target.
type DependencyChain struct {
	Path []coordinate.Coordinate

	// RequestedVersion is the version the last hop asked for, when it differs
	// from the resolved one.
	RequestedVersion coordinate.Version
}

// String returns a human-readable representation of the chain.
func (c DependencyChain) String() string {
	if len(c.Path) == 0 {
		return ""
	}
	result := c.Path[0].String()
	for i := 1; i < len(c.Path); i++ {
		result += " -> " + c.Path[i].String()
	}
	if !c.RequestedVersion.IsUnspecified() {
		result += fmt.Sprintf(" (requested %s)", c.RequestedVersion)
	}
	return result
}

// GraphStats provides statistics about the graph.
type GraphStats struct {
	// TotalNodes is the number of resolved coordinates.
	TotalNodes int

	// TotalModules counts distinct modules, whatever their versions.
	TotalModules int

	DirectDependencies int

	// TransitiveDependencies counts nodes that are not declared.
	TransitiveDependencies int

	// MaxDepth is the length of the longest chain below a declared coordinate.
	MaxDepth int

	// Conflicts counts modules present in more than one version.
	Conflicts int
}
