package cmd

import (
	"fmt"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	depset "github.com/albertocavalcante/go-depset"
	"github.com/albertocavalcante/go-depset/coordinate"
	"github.com/albertocavalcante/go-depset/graph"
	"github.com/albertocavalcante/go-depset/internal/config"
)

func classpathCmd(opts *globalOptions) *cobra.Command {
	var (
		phase string
		files bool
	)
	cmd := &cobra.Command{
		Use:   "classpath <declarations> <tree.yaml>",
		Short: "flatten a resolved dependency tree into a classpath",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := opts.loadPhases(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			declared, err := p.byName(phase)
			if err != nil {
				return err
			}
			g, err := graph.ReadYAMLFile(args[1])
			if err != nil {
				return err
			}

			flat, err := graph.Flatten(g, declared, opts.strategy)
			if err != nil {
				return err
			}

			lines := dependencyLines(flat)
			if files {
				if lines, err = opts.cacheFiles(flat); err != nil {
					return err
				}
			}
			return opts.writeSections(cmd.OutOrStdout(), []section{{Title: phase, Lines: lines}})
		},
	}
	cmd.Flags().StringVar(&phase, "phase", "runtime", "phase to flatten: compile, runtime, test")
	cmd.Flags().BoolVar(&files, "files", false, "print cache file locations instead of coordinates")
	return cmd
}

// cacheFiles maps each entry to files: cache locations for coordinates, paths as declared otherwise.
func (o *globalOptions) cacheFiles(s depset.DependencySet) ([]string, error) {
	var out []string
	for _, e := range s.Entries() {
		switch d := e.(type) {
		case depset.CoordinateDependency:
			f, err := d.Coordinate().CacheFile(o.repoRoot)
			if err != nil {
				return nil, err
			}
			out = append(out, f)
		case depset.FileDependency:
			out = append(out, d.Paths()...)
		case depset.ComputedDependency:
			out = append(out, d.Files()...)
		}
	}
	return out, nil
}

func treeCmd(opts *globalOptions) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "tree <tree.yaml>",
		Short: "render a resolved dependency tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := graph.ReadYAMLFile(args[0])
			if err != nil {
				return err
			}

			var out []byte
			switch format {
			case "text":
				out = []byte(g.ToText())
			case "dot":
				out = []byte(g.ToDOT())
			case "json":
				out, err = g.ToJSON()
			case "yaml":
				out, err = g.ToYAML()
			default:
				return fmt.Errorf("tree format not supported: %s", format)
			}
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "text", "tree format: text, dot, json, yaml")
	return cmd
}

func explainCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "explain <tree.yaml> <group:name>",
		Short: "explain which versions of a module the tree holds and which one wins",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := graph.ReadYAMLFile(args[0])
			if err != nil {
				return err
			}
			moduleID, err := coordinate.ParseModuleID(args[1])
			if err != nil {
				return err
			}

			if opts.output == config.OutputYAML {
				e, err := g.Explain(moduleID, opts.strategy)
				if err != nil {
					return err
				}
				return writeYAML(cmd.OutOrStdout(), explanationView(e))
			}
			text, err := g.ToExplainText(moduleID, opts.strategy)
			if err != nil {
				return err
			}
			cmd.Print(text)
			return nil
		},
	}
}

type candidateView struct {
	Version     string   `yaml:"version"`
	Selected    bool     `yaml:"selected,omitempty"`
	Declared    bool     `yaml:"declared,omitempty"`
	RequestedBy []string `yaml:"requested_by,omitempty"`
}

type explanationOutput struct {
	Module     string          `yaml:"module"`
	Strategy   string          `yaml:"strategy"`
	Selected   string          `yaml:"selected,omitempty"`
	Conflict   bool            `yaml:"conflict,omitempty"`
	Candidates []candidateView `yaml:"candidates"`
	Chains     []string        `yaml:"chains,omitempty"`
}

func explanationView(e *graph.Explanation) explanationOutput {
	return explanationOutput{
		Module:   e.Module.String(),
		Strategy: e.Strategy.String(),
		Selected: e.Selected.String(),
		Conflict: e.Conflict,
		Candidates: lo.Map(e.Candidates, func(c graph.VersionCandidate, _ int) candidateView {
			return candidateView{
				Version:     c.Version.String(),
				Selected:    c.Selected,
				Declared:    c.Declared,
				RequestedBy: lo.Map(c.RequestedBy, func(r coordinate.Coordinate, _ int) string { return r.String() }),
			}
		}),
		Chains: lo.Map(e.DependencyChains, func(c graph.DependencyChain, _ int) string { return c.String() }),
	}
}
