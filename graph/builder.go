package graph

import (
	"fmt"
	"slices"

	"github.com/albertocavalcante/go-depset/coordinate"
)

// Builder accumulates a resolver's answer and constructs a Graph from it.
// The zero value is not usable; call NewBuilder.
type Builder struct {
	direct []coordinate.Coordinate
	order  []coordinate.Coordinate
	edges  map[coordinate.Coordinate][]coordinate.Coordinate

	// requests maps a dependency to its requesters and the version each asked for.
	requests map[coordinate.Coordinate]map[coordinate.Coordinate]coordinate.Version
}

// NewBuilder creates a new graph builder.
func NewBuilder() *Builder {
	return &Builder{
		edges:    make(map[coordinate.Coordinate][]coordinate.Coordinate),
		requests: make(map[coordinate.Coordinate]map[coordinate.Coordinate]coordinate.Version),
	}
}

func (b *Builder) addNode(c coordinate.Coordinate) {
	if _, ok := b.edges[c]; ok {
		return
	}
	b.edges[c] = nil
	b.order = append(b.order, c)
}

// AddDirect records a declared coordinate. Adding the same coordinate twice is a no-op.
func (b *Builder) AddDirect(c coordinate.Coordinate) {
	b.addNode(c)
	if !slices.Contains(b.direct, c) {
		b.direct = append(b.direct, c)
	}
}

// AddEdge records that from pulled in to.
func (b *Builder) AddEdge(from, to coordinate.Coordinate) {
	b.addNode(from)
	b.addNode(to)
	if !slices.Contains(b.edges[from], to) {
		b.edges[from] = append(b.edges[from], to)
	}
}

// RecordRequest records that from asked for requested and was given to.
// Call it for edges whose requested version differs from the resolved one.
func (b *Builder) RecordRequest(from, to coordinate.Coordinate, requested coordinate.Version) {
	if b.requests[to] == nil {
		b.requests[to] = make(map[coordinate.Coordinate]coordinate.Version)
	}
	b.requests[to][from] = requested
}

// Build constructs the Graph. Every coordinate must carry a resolved version and
// every recorded request must match an edge.
func (b *Builder) Build() (*Graph, error) {
	g := &Graph{
		Direct: slices.Clone(b.direct),
		Nodes:  make(map[coordinate.Coordinate]*Node, len(b.order)),
	}

	for _, c := range b.order {
		if c.Version().IsUnspecified() {
			return nil, fmt.Errorf("resolved tree node %s: %w", c.ModuleID(), coordinate.ErrUnspecifiedVersion)
		}
		g.Nodes[c] = &Node{
			Coordinate:        c,
			Dependencies:      slices.Clone(b.edges[c]),
			RequestedVersions: make(map[coordinate.Coordinate]coordinate.Version),
		}
	}
	for _, c := range g.Direct {
		g.Nodes[c].IsDirect = true
	}

	// Reverse edges, in node order so dependents are deterministic.
	for _, c := range b.order {
		for _, dep := range g.Nodes[c].Dependencies {
			depNode := g.Nodes[dep]
			depNode.Dependents = append(depNode.Dependents, c)
		}
	}

	for to, byRequester := range b.requests {
		node := g.Nodes[to]
		for from, v := range byRequester {
			if node == nil || !slices.Contains(node.Dependents, from) {
				return nil, fmt.Errorf("request of %s by %s does not match an edge of the tree", to, from)
			}
			node.RequestedVersions[from] = v
		}
	}

	return g, nil
}
