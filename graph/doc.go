// Package graph represents the dependency tree an external resolver produced
// for a set of declarations, and answers questions about it.
//
// Nodes are keyed by resolved coordinate, so two versions of one module can
// coexist in a tree until [Flatten] reconciles them. The package supports:
//
//   - Querying direct and transitive dependencies and their dependents
//   - Explaining which versions of a module were requested, and by whom
//   - Finding dependency paths between coordinates
//   - Flattening the tree into a classpath [depset.DependencySet]
//
// # Building a Graph
//
// Resolvers either feed a [Builder] directly:
//
//	b := graph.NewBuilder()
//	b.AddDirect(app)
//	b.AddEdge(app, guava)
//	g, err := b.Build()
//
// or export the tree as YAML for [ReadYAML]:
//
//	direct:
//	  - com.example:app-lib:1.0
//	nodes:
//	  - coordinate: com.example:app-lib:1.0
//	    dependencies:
//	      - com.google.guava:guava:31.1-jre
//	      - coordinate: org.slf4j:slf4j-api:2.0.9
//	        requested: "[2.0,3.0)"
//
// # Output Formats
//
//	jsonBytes, _ := g.ToJSON()
//	dotString := g.ToDOT()
//	textString := g.ToText()
package graph
