package graph

import (
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/albertocavalcante/go-depset/coordinate"
)

type yamlTree struct {
	Direct []string   `yaml:"direct"`
	Nodes  []yamlNode `yaml:"nodes"`
}

type yamlNode struct {
	Coordinate   string     `yaml:"coordinate"`
	Dependencies []yamlEdge `yaml:"dependencies,omitempty"`
}

// yamlEdge is written either as a bare coordinate or as a mapping carrying
// the version the dependent asked for.
type yamlEdge struct {
	Coordinate string `yaml:"coordinate"`
	Requested  string `yaml:"requested,omitempty"`
}

func (e *yamlEdge) UnmarshalYAML(unmarshal func(any) error) error {
	var raw any
	if err := unmarshal(&raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case string:
		e.Coordinate = v
		return nil
	case map[string]any:
		e.Coordinate = fmt.Sprint(v["coordinate"])
		if req, ok := v["requested"]; ok {
			e.Requested = fmt.Sprint(req)
		}
		if _, ok := v["coordinate"]; !ok {
			return fmt.Errorf("dependency mapping without coordinate")
		}
		return nil
	default:
		return fmt.Errorf("dependency must be a coordinate or a mapping, got %T", raw)
	}
}

func (e yamlEdge) MarshalYAML() (any, error) {
	if e.Requested == "" {
		return e.Coordinate, nil
	}
	type plain yamlEdge
	return plain(e), nil
}

// ReadYAMLFile reads a resolved tree from a YAML file.
func ReadYAMLFile(path string) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open resolved tree: %w", err)
	}
	defer f.Close()
	g, err := ReadYAML(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

// ReadYAML reads a resolved tree exported by a resolver. Coordinates listed
// only as dependencies become leaves.
func ReadYAML(r io.Reader) (*Graph, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read resolved tree: %w", err)
	}

	var tree yamlTree
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("decode resolved tree: %w", err)
	}

	b := NewBuilder()
	for _, desc := range tree.Direct {
		c, err := coordinate.Parse(desc)
		if err != nil {
			return nil, fmt.Errorf("direct: %w", err)
		}
		b.AddDirect(c)
	}
	for _, n := range tree.Nodes {
		from, err := coordinate.Parse(n.Coordinate)
		if err != nil {
			return nil, fmt.Errorf("node: %w", err)
		}
		b.addNode(from)
		for _, e := range n.Dependencies {
			to, err := coordinate.Parse(e.Coordinate)
			if err != nil {
				return nil, fmt.Errorf("dependency of %s: %w", from, err)
			}
			b.AddEdge(from, to)
			if e.Requested != "" {
				b.RecordRequest(from, to, coordinate.NewVersion(e.Requested))
			}
		}
	}
	return b.Build()
}

// ToYAML writes the graph in the format ReadYAML accepts. Nodes are sorted.
func (g *Graph) ToYAML() ([]byte, error) {
	tree := yamlTree{Direct: make([]string, 0, len(g.Direct))}
	for _, c := range g.Direct {
		tree.Direct = append(tree.Direct, c.String())
	}

	keys := make([]coordinate.Coordinate, 0, len(g.Nodes))
	for c, node := range g.Nodes {
		if len(node.Dependencies) > 0 {
			keys = append(keys, c)
		}
	}
	sortCoordinates(keys)

	for _, c := range keys {
		node := g.Nodes[c]
		yn := yamlNode{Coordinate: c.String()}
		for _, dep := range node.Dependencies {
			edge := yamlEdge{Coordinate: dep.String()}
			if v, ok := g.Nodes[dep].RequestedVersions[c]; ok {
				edge.Requested = v.String()
			}
			yn.Dependencies = append(yn.Dependencies, edge)
		}
		tree.Nodes = append(tree.Nodes, yn)
	}
	return yaml.Marshal(tree)
}
