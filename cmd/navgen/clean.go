package main

import (
	"github.com/spf13/cobra"

	"github.com/toyz/navgen/internal/cli"
)

func (a *app) newCleanCommand() *cobra.Command {
	var check bool
	cmd := &cobra.Command{
		Use:   "clean [patterns...]",
		Short: "Remove generated regions, keeping the directives",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cleaner := cli.NewCleaner(cli.NewDirectoryScannerWith(a.cfg.FileProcessor()), a.diagnostics)
			cleaned, err := cleaner.CleanGeneratedRegions(args, check)
			if err != nil {
				return err
			}
			if check {
				a.diagnostics.Info("%d file(s) carry generated regions", len(cleaned))
				return nil
			}
			a.diagnostics.Success("removed generated regions from %d file(s)", len(cleaned))
			return nil
		},
	}
	cmd.Flags().BoolVar(&check, "dry-run", false, "list files with generated regions without writing them")
	return cmd
}
