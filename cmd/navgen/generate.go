package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/toyz/navgen/internal/cli"
)

type generateOptions struct {
	check bool
	jobs  int
}

func addGenerateFlags(cmd *cobra.Command, opts *generateOptions) {
	cmd.Flags().BoolVar(&opts.check, "check", false, "report out-of-date files without writing them")
	cmd.Flags().IntVarP(&opts.jobs, "jobs", "j", 0, "files expanded concurrently (default GOMAXPROCS)")
}

func (a *app) newGenerateCommand() *cobra.Command {
	opts := &generateOptions{}
	cmd := &cobra.Command{
		Use:     "generate [patterns...]",
		Aliases: []string{"gen"},
		Short:   "Expand every directive and rewrite the generated regions",
		Args:    cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runGenerate(cmd, args, opts)
		},
	}
	addGenerateFlags(cmd, opts)
	return cmd
}

func (a *app) runGenerate(cmd *cobra.Command, patterns []string, opts *generateOptions) error {
	d := a.diagnostics
	d.Section("navgen")
	if len(patterns) > 0 {
		d.Verbose("patterns: %s", strings.Join(patterns, ", "))
	}

	scanner := cli.NewDirectoryScannerWith(a.cfg.FileProcessor())
	expander := cli.NewFileExpander(a.cfg.GenerationOptions(), a.cfg.Indent)
	generator := cli.NewGenerator(scanner, expander, d)

	err := generator.Run(cmd.Context(), cli.Options{
		Patterns: patterns,
		Check:    opts.check,
		Jobs:     a.cfg.Workers(),
	})

	summary := generator.GetSummary()
	changedLabel := "Files changed"
	if opts.check {
		changedLabel = "Files out of date"
	}
	d.Summary("Summary", map[string]interface{}{
		"Files scanned":  summary.FilesScanned,
		changedLabel:     len(summary.FilesChanged),
		"Directives":     summary.Directives,
		"Stale regions":  summary.StaleRegions,
		"Edited regions": summary.EditedRegions,
	})
	if err != nil {
		return err
	}

	if opts.check {
		d.Success("generated regions are up to date")
	} else {
		d.Success("generation complete")
	}
	return nil
}
