package cmd

import (
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	depset "github.com/albertocavalcante/go-depset"
	"github.com/albertocavalcante/go-depset/coordinate"
	"github.com/albertocavalcante/go-depset/declfile"
)

func parseCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "parse <declarations>",
		Short: "print the declared dependencies by bucket",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := loadDeclarations(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			sections := lo.FilterMap(declfile.Buckets, func(b declfile.Bucket, _ int) (section, bool) {
				s := d.Bucket(b)
				return section{Title: b.String(), Lines: dependencyLines(s)}, !s.IsEmpty()
			})

			vp := d.VersionProvider()
			if !vp.IsEmpty() {
				sections = append(sections, section{
					Title: "versions",
					Lines: lo.Map(vp.ModuleIDs(), func(id coordinate.ModuleID, _ int) string {
						return id.String() + ":" + vp.VersionOfOrUnspecified(id).String()
					}),
				})
			}
			if boms := vp.BOMs(); len(boms) > 0 {
				sections = append(sections, section{
					Title: "boms",
					Lines: lo.Map(boms, func(c coordinate.Coordinate, _ int) string { return c.String() }),
				})
			}
			if excl := d.GlobalExclusions(); len(excl) > 0 {
				sections = append(sections, section{
					Title: "exclusions",
					Lines: lo.Map(excl, func(e depset.DependencyExclusion, _ int) string { return e.String() }),
				})
			}
			return opts.writeSections(cmd.OutOrStdout(), sections)
		},
	}
}
