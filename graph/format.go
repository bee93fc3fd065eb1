package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/albertocavalcante/go-depset/coordinate"
)

const separatorWidth = 60 // Width of separator lines in text output

// JSONNode is one coordinate in the ToJSON output.
type JSONNode struct {
	Coordinate   string     `json:"coordinate"`
	Requested    string     `json:"requested,omitempty"`
	Dependencies []JSONNode `json:"dependencies,omitempty"`

	// Unexpanded marks a coordinate already expanded elsewhere in the output.
	Unexpanded bool `json:"unexpanded,omitempty"`
}

// ToJSON outputs the tree below the declared coordinates as nested JSON.
// Each coordinate is expanded once; later occurrences are marked unexpanded.
func (g *Graph) ToJSON() ([]byte, error) {
	visited := make(map[coordinate.Coordinate]bool)
	roots := make([]JSONNode, 0, len(g.Direct))
	for _, c := range g.Direct {
		roots = append(roots, g.jsonNode(coordinate.Coordinate{}, c, visited))
	}
	return json.MarshalIndent(roots, "", "  ")
}

func (g *Graph) jsonNode(parent, c coordinate.Coordinate, visited map[coordinate.Coordinate]bool) JSONNode {
	out := JSONNode{Coordinate: c.String()}
	node := g.Nodes[c]
	if node != nil {
		if v, ok := node.RequestedVersions[parent]; ok {
			out.Requested = v.String()
		}
	}
	if visited[c] {
		out.Unexpanded = len(g.DirectDeps(c)) > 0
		return out
	}
	visited[c] = true
	if node == nil {
		return out
	}
	for _, dep := range node.Dependencies {
		out.Dependencies = append(out.Dependencies, g.jsonNode(c, dep, visited))
	}
	return out
}

// ToDOT outputs the graph in Graphviz DOT format. Nodes and edges are sorted.
func (g *Graph) ToDOT() string {
	var buf bytes.Buffer

	buf.WriteString("digraph dependencies {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  node [shape=box];\n\n")

	keys := slices.Collect(maps.Keys(g.Nodes))
	sortCoordinates(keys)

	for _, c := range keys {
		label := fmt.Sprintf("%s\\n%s", c.ModuleID(), c.Version())
		attrs := fmt.Sprintf(`label="%s"`, label) //nolint:gocritic // DOT format requires this quote style
		if g.Nodes[c].IsDirect {
			attrs += ", style=bold"
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", c.String(), attrs)
	}

	buf.WriteString("\n")

	for _, c := range keys {
		for _, dep := range g.Nodes[c].Dependencies {
			fmt.Fprintf(&buf, "  %q -> %q;\n", c.String(), dep.String())
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// ToText outputs a human-readable text representation of the graph.
func (g *Graph) ToText() string {
	var buf bytes.Buffer

	buf.WriteString("Dependency Tree\n")
	buf.WriteString(strings.Repeat("=", separatorWidth) + "\n\n")

	stats := g.Stats()
	fmt.Fprintf(&buf, "Total coordinates: %d\n", stats.TotalNodes)
	fmt.Fprintf(&buf, "Modules: %d\n", stats.TotalModules)
	fmt.Fprintf(&buf, "Direct dependencies: %d\n", stats.DirectDependencies)
	fmt.Fprintf(&buf, "Transitive dependencies: %d\n", stats.TransitiveDependencies)
	fmt.Fprintf(&buf, "Max depth: %d\n", stats.MaxDepth)
	if stats.Conflicts > 0 {
		fmt.Fprintf(&buf, "Modules with several versions: %d\n", stats.Conflicts)
	}
	buf.WriteString("\n")

	visited := make(map[coordinate.Coordinate]bool)
	for _, c := range g.Direct {
		g.printTree(&buf, coordinate.Coordinate{}, c, "", true, visited)
	}

	return buf.String()
}

func (g *Graph) printTree(buf *bytes.Buffer, parent, c coordinate.Coordinate, prefix string, isLast bool, visited map[coordinate.Coordinate]bool) {
	connector := "├── "
	if isLast {
		connector = "└── "
	}
	if parent.IsEmpty() {
		buf.WriteString(c.String())
	} else {
		buf.WriteString(prefix + connector + c.String())
	}

	node := g.Nodes[c]
	if node != nil {
		if v, ok := node.RequestedVersions[parent]; ok {
			fmt.Fprintf(buf, " (requested %s)", v)
		}
	}

	if visited[c] {
		buf.WriteString(" (circular)\n")
		return
	}
	buf.WriteString("\n")

	visited[c] = true
	defer func() { visited[c] = false }()

	if node == nil {
		return
	}

	for i, dep := range node.Dependencies {
		childPrefix := prefix
		if !parent.IsEmpty() {
			if isLast {
				childPrefix += "    "
			} else {
				childPrefix += "│   "
			}
		}
		g.printTree(buf, c, dep, childPrefix, i == len(node.Dependencies)-1, visited)
	}
}

// ToExplainText outputs a human-readable explanation for a module.
func (g *Graph) ToExplainText(moduleID coordinate.ModuleID, strategy coordinate.ConflictStrategy) (string, error) {
	explanation, err := g.Explain(moduleID, strategy)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer

	fmt.Fprintf(&buf, "Explanation for: %s\n", explanation.Module)
	buf.WriteString(strings.Repeat("=", separatorWidth) + "\n\n")

	buf.WriteString("Version Selection:\n")
	if explanation.Conflict {
		fmt.Fprintf(&buf, "  Conflict: strategy %s rejects the versions below\n", explanation.Strategy)
	} else {
		fmt.Fprintf(&buf, "  Selected version: %s\n", explanation.Selected)
		fmt.Fprintf(&buf, "  Strategy: %s\n", explanation.Strategy)
	}

	buf.WriteString("\n  Candidates considered:\n")
	for _, c := range explanation.Candidates {
		status := "  "
		if c.Selected {
			status = "✓ "
		}
		requesters := make([]string, 0, len(c.RequestedBy)+1)
		if c.Declared {
			requesters = append(requesters, "declarations")
		}
		for _, r := range c.RequestedBy {
			requesters = append(requesters, r.String())
		}
		fmt.Fprintf(&buf, "    %s%s - requested by: %s\n", status, c.Version, strings.Join(requesters, ", "))
	}

	if len(explanation.DependencyChains) > 0 {
		buf.WriteString("\nDependency Chains (paths from declarations):\n")
		for i, chain := range explanation.DependencyChains {
			fmt.Fprintf(&buf, "  %d. %s\n", i+1, chain.String())
		}
	}

	return buf.String(), nil
}
