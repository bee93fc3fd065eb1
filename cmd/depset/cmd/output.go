package cmd

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/goccy/go-yaml"
	"github.com/samber/lo"

	depset "github.com/albertocavalcante/go-depset"
	"github.com/albertocavalcante/go-depset/internal/config"
)

var (
	headerColor    = color.New(color.FgCyan, color.Bold)
	qualifierColor = color.New(color.FgYellow)
	addedColor     = color.New(color.FgGreen)
	removedColor   = color.New(color.FgRed)
)

// section is one titled list of lines in text output, one key in yaml output.
type section struct {
	Title string   `yaml:"title"`
	Lines []string `yaml:"entries"`
}

type qualifiedEntry struct {
	Qualifier  string `yaml:"qualifier"`
	Dependency string `yaml:"dependency"`
}

func writeYAML(w io.Writer, v any) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func (o *globalOptions) writeSections(w io.Writer, sections []section) error {
	if o.output == config.OutputYAML {
		return writeYAML(w, sections)
	}
	for _, s := range sections {
		headerColor.Fprintf(w, "%s:\n", s.Title)
		for _, l := range s.Lines {
			fmt.Fprintf(w, "  %s\n", l)
		}
	}
	return nil
}

func (o *globalOptions) writeQualified(w io.Writer, q depset.QualifiedDependencySet) error {
	entries := lo.Map(q.Entries(), func(e depset.QualifiedDependency, _ int) qualifiedEntry {
		return qualifiedEntry{Qualifier: e.Qualifier, Dependency: e.Dependency.String()}
	})
	if o.output == config.OutputYAML {
		return writeYAML(w, entries)
	}
	for _, e := range entries {
		fmt.Fprintf(w, "%s %s\n", qualifierColor.Sprintf("%-12s", e.Qualifier), e.Dependency)
	}
	return nil
}

func dependencyLines(s depset.DependencySet) []string {
	return lo.Map(s.Entries(), func(d depset.Dependency, _ int) string { return d.String() })
}
