package main

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/toyz/navgen/internal/config"
	"github.com/toyz/navgen/internal/utils"
)

// app holds the state shared by every command of one invocation
type app struct {
	configFile string
	verbose    bool
	quiet      bool
	noColor    bool

	stdin          io.Reader
	stdout, stderr io.Writer

	cfg         *config.Config
	diagnostics *utils.DiagnosticSystem
}

// execute runs the command line and returns the process exit code
func execute(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	a := &app{stdin: stdin, stdout: stdout, stderr: stderr}
	root := a.newRootCommand()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.ExecuteContext(ctx); err != nil {
		if a.diagnostics == nil {
			a.diagnostics = utils.NewDiagnosticSystemWithWriters(utils.DiagnosticError, stdout, stderr)
		}
		a.diagnostics.ReportError(err)
		return 1
	}
	return 0
}

func (a *app) newRootCommand() *cobra.Command {
	opts := &generateOptions{}

	root := &cobra.Command{
		Use:   "navgen [patterns...]",
		Short: "Generate Swift navigation path reducers and destination views",
		Long: `navgen expands navigation macros written as comments in Swift sources.

A directive such as

    // #NavigationPath([HomeFeature.self, SettingsFeature.self])

is followed by a generated region holding the Path reducer, and

    // #NavigationPathView(AppFeature.self, [HomeFeature.self, SettingsFeature.self])

by a private destination(state:) function. Regions sit between
"// navgen:begin" and "// navgen:end" lines and are rewritten in place.

Patterns are files, directories, or directories followed by /... for
recursive scanning. Without patterns navgen scans ./... .`,
		Example: `  navgen                      # same as: navgen generate ./...
  navgen generate Sources/... # expand every directive under Sources
  navgen --check ./...        # fail when a generated region is out of date
  navgen clean ./...          # remove generated regions, keep directives
  echo '#NavigationPath([A.self])' | navgen expand`,
		Args:              cobra.ArbitraryArgs,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runGenerate(cmd, args, opts)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "config file (default is ./"+config.FileName+")")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "enable verbose output")
	flags.BoolVarP(&a.quiet, "quiet", "q", false, "only show errors")
	flags.BoolVar(&a.noColor, "no-color", false, "disable colored output")
	root.MarkFlagsMutuallyExclusive("verbose", "quiet")

	addGenerateFlags(root, opts)

	root.AddCommand(
		a.newGenerateCommand(),
		a.newCleanCommand(),
		a.newExpandCommand(),
		a.newVersionCommand(),
	)
	return root
}

// setup loads configuration and creates the diagnostic system
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	level := utils.DiagnosticLevelFor(a.quiet, a.verbose)
	a.diagnostics = utils.NewDiagnosticSystemWithWriters(level, a.stdout, a.stderr)
	if a.noColor {
		a.diagnostics.SetColors(false)
	}

	overrides := map[string]any{}
	if f := cmd.Flags().Lookup("jobs"); f != nil && f.Changed {
		overrides["jobs"] = f.Value.String()
	}

	cfg, err := config.Load(config.LoadOptions{ConfigFile: a.configFile, Overrides: overrides})
	if err != nil {
		return err
	}
	a.cfg = cfg

	if cfg.File != "" {
		a.diagnostics.Verbose("using config %s", cfg.File)
	}
	return nil
}
