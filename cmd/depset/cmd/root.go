package cmd

import (
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/albertocavalcante/go-depset/coordinate"
	"github.com/albertocavalcante/go-depset/internal/config"
	"github.com/albertocavalcante/go-depset/internal/logging"
)

const Name = "depset"

// App carries the process streams and arguments, so tests can run the CLI in-process.
type App struct {
	Stdout io.Writer
	Stderr io.Writer
	OsArgs []string
}

// globalOptions are the persistent flags, defaulted from the environment configuration.
type globalOptions struct {
	cfg *config.Config

	strategyFlag string
	output       string
	logLevel     string
	repoRoot     string
	bomFile      string
	noColor      bool

	strategy coordinate.ConflictStrategy
	logger   *slog.Logger
}

func RootCmd(app *App) (*cobra.Command, error) {
	if len(app.OsArgs) == 0 {
		return nil, errors.New("App.OsArgs must contain at least one entry similar to os.Args")
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	opts := &globalOptions{cfg: cfg}

	cmd := &cobra.Command{
		Use:   Name,
		Short: "inspect and derive JVM dependency sets",
		Long: `depset reads dependency declarations and derives IDE scopes, publish
configurations and classpaths from them.

Declarations are read as Starlark (.star, .bzl), as a directory of
<bucket>/*.jar files, or as a flat text file with == section == headers.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.apply(cmd)
		},
	}
	cmd.SetArgs(app.OsArgs[1:])
	cmd.SetOut(app.Stdout)
	cmd.SetErr(app.Stderr)

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.strategyFlag, "strategy", cfg.ConflictStrategy.String(),
		"version conflict strategy: take-first, take-highest, take-lowest, fail")
	flags.StringVarP(&opts.output, "output", "o", cfg.Output, "output format: text, yaml")
	flags.StringVar(&opts.logLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn, error")
	flags.StringVar(&opts.repoRoot, "repo-root", cfg.RepoRoot, "root of the local artifact cache")
	flags.StringVar(&opts.bomFile, "boms", "", "YAML file mapping BOM coordinates to the versions they pin")
	flags.BoolVar(&opts.noColor, "no-color", false, "disable colored output")

	cmd.AddCommand(
		parseCmd(opts),
		ideCmd(opts),
		publishCmd(opts),
		normaliseCmd(opts),
		diffCmd(opts),
		pathCmd(opts),
		classpathCmd(opts),
		treeCmd(opts),
		explainCmd(opts),
	)

	return cmd, nil
}

func (o *globalOptions) apply(cmd *cobra.Command) error {
	logger, err := logging.Init(cmd.ErrOrStderr(), o.logLevel)
	if err != nil {
		return err
	}
	o.logger = logger

	if o.strategy, err = coordinate.ParseConflictStrategy(o.strategyFlag); err != nil {
		return err
	}
	if err := config.ValidateOutput(o.output); err != nil {
		return err
	}
	o.output = strings.ToLower(o.output)
	if o.noColor {
		color.NoColor = true
	}

	slog.DebugContext(cmd.Context(), "options", "strategy", o.strategy, "output", o.output, "repo_root", o.repoRoot)
	return nil
}
