package cli

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/toyz/navgen/internal/errors"
	"github.com/toyz/navgen/internal/models"
	"github.com/toyz/navgen/internal/utils"
)

// Options configures one generation run
type Options struct {
	Patterns []string // directories, files or dir/... patterns
	Check    bool     // report stale files without writing them
	Jobs     int      // files expanded concurrently, at least one
}

// Generator coordinates scanning, expansion and writing of source files
type Generator struct {
	scanner     *DirectoryScanner
	expander    *FileExpander
	diagnostics *utils.DiagnosticSystem
	summary     models.GenerationSummary
}

// NewGenerator creates a CLI generator
func NewGenerator(scanner *DirectoryScanner, expander *FileExpander, diagnostics *utils.DiagnosticSystem) *Generator {
	if diagnostics == nil {
		diagnostics = utils.NewDiagnosticSystem(utils.DiagnosticSilent)
	}
	return &Generator{
		scanner:     scanner,
		expander:    expander,
		diagnostics: diagnostics,
	}
}

// GetSummary returns the summary of the last run
func (g *Generator) GetSummary() models.GenerationSummary {
	return g.summary
}

// Run expands every matched file. Files are expanded concurrently and
// written only once all of them expanded cleanly, so a failure in one file
// leaves every file untouched. In check mode a StaleOutput error is returned
// when any file would change.
func (g *Generator) Run(ctx context.Context, opts Options) error {
	startTime := time.Now()
	g.summary = models.GenerationSummary{FilesChanged: make([]string, 0)}

	g.diagnostics.StartProgress("Scanning for sources")
	files, err := g.scanner.ScanSources(opts.Patterns)
	if err != nil {
		g.diagnostics.EndProgress(false, "")
		return err
	}
	g.diagnostics.EndProgress(true, pluralize(len(files), "file"))
	g.summary.FilesScanned = len(files)

	results, err := g.expandAll(ctx, files, opts.Jobs)
	if err != nil {
		return err
	}

	for _, result := range results {
		g.summary.Directives += len(result.Expansions)
		for _, exp := range result.Expansions {
			switch exp.Status {
			case models.RegionStale:
				g.summary.StaleRegions++
			case models.RegionEdited:
				g.summary.EditedRegions++
				g.diagnostics.Warn("%s: generated region for #%s was edited by hand and will be regenerated", exp.Location, exp.Macro)
			}
			g.diagnostics.Debug("%s: #%s %s", exp.Location, exp.Macro, exp.Status)
		}
		if !result.Changed {
			continue
		}

		g.summary.FilesChanged = append(g.summary.FilesChanged, result.Path)
		g.diagnostics.FileChanged(result.Path, opts.Check)
		if opts.Check {
			continue
		}
		if err := g.scanner.FileProcessor().WriteSource(result.Path, result.Content); err != nil {
			return err
		}
	}

	stats := g.expander.CacheStats()
	g.diagnostics.Verbose("expansion cache: %d rendered, %d reused", stats.Misses, stats.Hits)
	g.diagnostics.Verbose("finished in %s", time.Since(startTime).Round(time.Millisecond))

	if opts.Check && len(g.summary.FilesChanged) > 0 {
		return errors.StaleOutput(g.summary.FilesChanged)
	}
	return nil
}

// expandAll expands files with at most jobs in flight. Every expansion
// failure is collected; a read failure cancels the remaining work.
func (g *Generator) expandAll(ctx context.Context, files []string, jobs int) ([]*models.FileResult, error) {
	if jobs < 1 {
		jobs = 1
	}

	results := make([]*models.FileResult, len(files))
	failures := make([]error, len(files))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(jobs)

	fp := g.scanner.FileProcessor()
	for i, path := range files {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			content, err := fp.ReadSource(path)
			if err != nil {
				return err
			}

			g.diagnostics.Debug("expanding %s", path)
			result, err := g.expander.ExpandFile(path, content)
			if err != nil {
				failures[i] = err
				return nil
			}
			results[i] = result
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	var errs *errors.MultipleErrors
	for _, err := range failures {
		if err != nil {
			addError(&errs, err)
		}
	}
	if err := errs.ErrOrNil(); err != nil {
		g.diagnostics.Verbose("expansion failed with %s; no files were written", pluralize(errs.Count(), "error"))
		return nil, err
	}
	return results, nil
}

func pluralize(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
