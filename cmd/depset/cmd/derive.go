package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	depset "github.com/albertocavalcante/go-depset"
)

const (
	formatIvy   = "ivy"
	formatMaven = "maven"
)

func (o *globalOptions) deriveOptions(strict bool) []depset.Option {
	opts := []depset.Option{depset.WithLogger(o.logger)}
	if strict {
		opts = append(opts, depset.WithStrictVersions())
	}
	return opts
}

func ideCmd(opts *globalOptions) *cobra.Command {
	var strict bool
	cmd := &cobra.Command{
		Use:   "ide <declarations>",
		Short: "print the IDE classpath scope of every dependency",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := opts.loadPhases(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			q, err := depset.ComputeIDEDependencies(p.compile, p.runtime, p.test, opts.strategy, opts.deriveOptions(strict)...)
			if err != nil {
				return err
			}
			return opts.writeQualified(cmd.OutOrStdout(), q)
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "fail on dependencies without a resolvable version")
	return cmd
}

func publishCmd(opts *globalOptions) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "publish <declarations>",
		Short: "print the publish configuration of every published dependency",
		Long: `print the publish configuration of every published dependency

	ivy prints "source -> targets" configuration mappings, maven prints POM scopes.
	Only coordinate dependencies are published and each needs a version.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := opts.loadPhases(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			var q depset.QualifiedDependencySet
			switch format {
			case formatIvy:
				q, err = depset.ComputeIvyPublishDependencies(p.compile, p.runtime, p.test, opts.strategy, opts.deriveOptions(true)...)
			case formatMaven:
				q, err = depset.ComputeMavenPublishDependencies(p.compile, p.runtime, opts.strategy, opts.deriveOptions(true)...)
			default:
				return fmt.Errorf("publish format not supported: %s", format)
			}
			if err != nil {
				return err
			}
			return opts.writeQualified(cmd.OutOrStdout(), q)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", formatMaven, "publish format: ivy, maven")
	return cmd
}

func normaliseCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "normalise <declarations>",
		Aliases: []string{"normalize"},
		Short:   "print the compile, runtime and test sets with conflicts resolved",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := opts.loadPhases(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			var sections []section
			for _, phase := range []struct {
				name string
				set  depset.DependencySet
			}{
				{"compile", p.compile},
				{"runtime", p.runtime},
				{"test", p.test},
			} {
				n, err := phase.set.Normalised(opts.strategy)
				if err != nil {
					return fmt.Errorf("%s: %w", phase.name, err)
				}
				sections = append(sections, section{Title: phase.name, Lines: dependencyLines(n.ToResolvedModuleVersions())})
			}
			return opts.writeSections(cmd.OutOrStdout(), sections)
		},
	}
}
