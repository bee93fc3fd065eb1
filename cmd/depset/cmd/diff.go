package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	depset "github.com/albertocavalcante/go-depset"
	"github.com/albertocavalcante/go-depset/internal/config"
)

func (p phases) byName(name string) (depset.DependencySet, error) {
	switch name {
	case "compile":
		return p.compile, nil
	case "runtime":
		return p.runtime, nil
	case "test":
		return p.test, nil
	}
	return depset.DependencySet{}, fmt.Errorf("unknown phase %q: must be one of compile, runtime, test", name)
}

func (o *globalOptions) resolvedPhase(cmd *cobra.Command, path, phase string) (depset.DependencySet, error) {
	p, err := o.loadPhases(cmd.Context(), path)
	if err != nil {
		return depset.DependencySet{}, err
	}
	s, err := p.byName(phase)
	if err != nil {
		return depset.DependencySet{}, err
	}
	n, err := s.Normalised(o.strategy)
	if err != nil {
		return depset.DependencySet{}, fmt.Errorf("%s: %w", path, err)
	}
	return n.ToResolvedModuleVersions(), nil
}

func diffCmd(opts *globalOptions) *cobra.Command {
	var phase string
	cmd := &cobra.Command{
		Use:   "diff <old-declarations> <new-declarations>",
		Short: "compare the resolved module versions of two declaration files",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			before, err := opts.resolvedPhase(cmd, args[0], phase)
			if err != nil {
				return err
			}
			after, err := opts.resolvedPhase(cmd, args[1], phase)
			if err != nil {
				return err
			}

			d := depset.Diff(before, after)
			if opts.output == config.OutputYAML {
				return writeYAML(cmd.OutOrStdout(), d)
			}
			writeDiffText(cmd.OutOrStdout(), d)
			return nil
		},
	}
	cmd.Flags().StringVar(&phase, "phase", "runtime", "phase to compare: compile, runtime, test")
	return cmd
}

func writeDiffText(w io.Writer, d *depset.SetDiff) {
	if d.IsEmpty() {
		fmt.Fprintln(w, "no changes")
		return
	}
	for _, c := range d.Added {
		addedColor.Fprintf(w, "+ %s %s\n", c.Module, c.Version)
	}
	for _, c := range d.Removed {
		removedColor.Fprintf(w, "- %s %s\n", c.Module, c.Version)
	}
	for _, u := range d.Upgraded {
		fmt.Fprintf(w, "↑ %s %s -> %s\n", u.Module, u.OldVersion, u.NewVersion)
	}
	for _, u := range d.Downgraded {
		fmt.Fprintf(w, "↓ %s %s -> %s\n", u.Module, u.OldVersion, u.NewVersion)
	}
	fmt.Fprintf(w, "%d changes\n", d.TotalChanges())
}
