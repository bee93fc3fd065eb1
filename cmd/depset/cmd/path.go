package cmd

import (
	"github.com/spf13/cobra"

	"github.com/albertocavalcante/go-depset/coordinate"
)

func pathCmd(opts *globalOptions) *cobra.Command {
	var relative bool
	cmd := &cobra.Command{
		Use:   "path <coordinate>",
		Short: "print where an artifact lives in the local cache",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := coordinate.Parse(args[0])
			if err != nil {
				return err
			}
			var p string
			if relative {
				p, err = c.CachePath()
			} else {
				p, err = c.CacheFile(opts.repoRoot)
			}
			if err != nil {
				return err
			}
			cmd.Println(p)
			return nil
		},
	}
	cmd.Flags().BoolVar(&relative, "relative", false, "print the path relative to the cache root")
	return cmd
}
