package cli

import (
	"io"
	"sort"
	"strings"

	"golang.org/x/mod/sumdb/dirhash"

	"github.com/toyz/navgen/internal/errors"
	"github.com/toyz/navgen/internal/generator"
	"github.com/toyz/navgen/internal/macro"
	"github.com/toyz/navgen/internal/models"
	"github.com/toyz/navgen/internal/parser"
	"github.com/toyz/navgen/internal/templates"
	"github.com/toyz/navgen/internal/utils"
)

// stampVersion changes whenever the emitted code changes for identical
// input, forcing every region to be regenerated
const stampVersion = "navgen/1"

// FileExpander rewrites the generated regions of a source file
type FileExpander struct {
	registry macro.Registry
	renderer *templates.Renderer
	options  models.GenerationOptions
	indent   string
	cache    *utils.Cache[string, string]
}

// NewFileExpander creates an expander over the built-in macros
func NewFileExpander(options models.GenerationOptions, indent string) *FileExpander {
	return NewFileExpanderWithRegistry(generator.NewBuiltinRegistry(), options, indent)
}

// NewFileExpanderWithRegistry creates an expander over a custom registry
func NewFileExpanderWithRegistry(registry macro.Registry, options models.GenerationOptions, indent string) *FileExpander {
	if indent == "" {
		indent = templates.DefaultIndent
	}
	return &FileExpander{
		registry: registry,
		renderer: templates.NewRenderer(indent),
		options:  options.WithDefaults(),
		indent:   indent,
		cache:    utils.NewCache[string, string](),
	}
}

// CacheStats reports how often identical invocations were rendered once and reused
func (e *FileExpander) CacheStats() utils.CacheStats {
	return e.cache.GetStats()
}

// ExpandInvocation parses, expands and renders a single invocation
func (e *FileExpander) ExpandInvocation(text string, loc errors.SourceLocation) (string, error) {
	inv, err := macro.ParseInvocation(text, loc)
	if err != nil {
		return "", err
	}
	text, _, err = e.expand(inv)
	return text, err
}

// expand renders inv, reusing the result of an identical earlier invocation
func (e *FileExpander) expand(inv *macro.Invocation) (string, string, error) {
	stamp, err := e.Stamp(inv)
	if err != nil {
		return "", "", err
	}

	text, err := e.cache.GetOrCompute(stamp, func() (string, error) {
		decls, err := e.registry.Expand(macro.ExpansionContext{Location: inv.Location, Options: e.options}, inv)
		if err != nil {
			return "", err
		}
		return e.renderer.RenderAll(decls)
	})
	return text, stamp, err
}

// Stamp hashes everything that determines an expansion's output: the
// canonical invocation, the generation options and the indent unit
func (e *FileExpander) Stamp(inv *macro.Invocation) (string, error) {
	inputs := map[string]string{
		"invocation": inv.String(),
		"options":    strings.Join([]string{e.options.Wrapper, e.options.ViewSuffix, e.options.ViewInitializer}, "\n"),
		"indent":     e.indent,
		"version":    stampVersion,
	}

	names := make([]string, 0, len(inputs))
	for name := range inputs {
		names = append(names, name)
	}
	sort.Strings(names)

	stamp, err := dirhash.Hash1(names, func(name string) (io.ReadCloser, error) {
		return io.NopCloser(strings.NewReader(inputs[name])), nil
	})
	if err != nil {
		return "", errors.Wrap(errors.UnknownErrorCode, "failed to hash expansion input", err)
	}
	return stamp, nil
}

// ExpandFile expands every directive in content. Expansion is all-or-nothing:
// when any directive fails the returned result is nil and every failure is
// reported in the error.
func (e *FileExpander) ExpandFile(path string, content []byte) (*models.FileResult, error) {
	src := parser.NewSource(path, content)

	directives, err := parser.ScanDirectives(src)
	if err != nil {
		return nil, err
	}

	var errs *errors.MultipleErrors
	expansions := make([]models.Expansion, 0, len(directives))
	for _, d := range directives {
		inv, err := macro.ParseInvocation(d.Invocation, d.Location)
		if err != nil {
			addError(&errs, err)
			continue
		}

		text, stamp, err := e.expand(inv)
		if err != nil {
			addError(&errs, err)
			continue
		}

		body := templates.IndentBlock(text, d.Indent)
		expansions = append(expansions, models.Expansion{
			Macro:    inv.Name,
			Location: d.Location,
			Text:     text,
			Stamp:    stamp,
			Status:   regionStatus(d.Region, stamp, body),
		})
	}
	if err := errs.ErrOrNil(); err != nil {
		return nil, err
	}

	lines := rewrite(src.Lines, directives, func(i int, d parser.Directive) []string {
		exp := expansions[i]
		region := []string{d.Indent + "// " + parser.BeginMarker + " " + exp.Stamp}
		region = append(region, strings.Split(templates.IndentBlock(exp.Text, d.Indent), "\n")...)
		return append(region, d.Indent+"// "+parser.EndMarker)
	})

	changed := false
	for _, exp := range expansions {
		if exp.Status != models.RegionUpToDate {
			changed = true
		}
	}

	out := &parser.Source{Path: path, Lines: lines, TrailingNewline: src.TrailingNewline}
	return &models.FileResult{
		Path:       path,
		Content:    out.Bytes(),
		Changed:    changed,
		Expansions: expansions,
	}, nil
}

// regionStatus compares an existing region with a fresh expansion.
// The stamp does not cover the directive's indentation, so a body that
// differs only in leading whitespace was moved, not edited.
func regionStatus(region *parser.Region, stamp, body string) models.RegionStatus {
	switch {
	case region == nil:
		return models.RegionMissing
	case region.Stamp != stamp:
		return models.RegionStale
	case region.Body == body:
		return models.RegionUpToDate
	case sameIgnoringIndent(region.Body, body):
		return models.RegionStale
	default:
		return models.RegionEdited
	}
}

func sameIgnoringIndent(a, b string) bool {
	al, bl := strings.Split(a, "\n"), strings.Split(b, "\n")
	if len(al) != len(bl) {
		return false
	}
	for i := range al {
		if strings.TrimLeft(al[i], " \t") != strings.TrimLeft(bl[i], " \t") {
			return false
		}
	}
	return true
}

// rewrite copies lines, replacing each directive's region (or inserting one
// after the directive) with the lines produced by region
func rewrite(lines []string, directives []parser.Directive, region func(int, parser.Directive) []string) []string {
	out := make([]string, 0, len(lines))
	next := 0
	for i, d := range directives {
		out = append(out, lines[next:d.EndLine+1]...)
		if region != nil {
			out = append(out, region(i, d)...)
		}
		next = d.EndLine + 1
		if d.Region != nil {
			next = d.Region.EndLine + 1
		}
	}
	return append(out, lines[next:]...)
}

func addError(errs **errors.MultipleErrors, err error) {
	if multi, ok := err.(*errors.MultipleErrors); ok {
		for _, e := range multi.Errors {
			errors.AddToMultiple(errs, e)
		}
		return
	}
	if nerr, ok := err.(errors.NavgenError); ok {
		errors.AddToMultiple(errs, nerr)
		return
	}
	errors.AddToMultiple(errs, errors.Wrap(errors.UnknownErrorCode, "expansion failed", err))
}
