package models

import "github.com/toyz/navgen/internal/errors"

// GenerationOptions tunes the names the generators emit
type GenerationOptions struct {
	Wrapper         string // view wrapping one union case, default CaseLet
	ViewSuffix      string // appended to a module name to name its view, default View
	ViewInitializer string // view initializer reference, default init
}

// DefaultGenerationOptions returns the options used when nothing is configured
func DefaultGenerationOptions() GenerationOptions {
	return GenerationOptions{
		Wrapper:         "CaseLet",
		ViewSuffix:      "View",
		ViewInitializer: "init",
	}
}

// WithDefaults fills empty fields from DefaultGenerationOptions
func (o GenerationOptions) WithDefaults() GenerationOptions {
	defaults := DefaultGenerationOptions()
	if o.Wrapper == "" {
		o.Wrapper = defaults.Wrapper
	}
	if o.ViewSuffix == "" {
		o.ViewSuffix = defaults.ViewSuffix
	}
	if o.ViewInitializer == "" {
		o.ViewInitializer = defaults.ViewInitializer
	}
	return o
}

// Expansion is the rendered output of one directive
type Expansion struct {
	Macro    string                // macro name, e.g. NavigationPath
	Location errors.SourceLocation // where the directive starts
	Text     string                // rendered declarations, unindented
	Stamp    string                // hash of the expansion input
	Status   RegionStatus          // state of the region before this run
}

// RegionStatus describes a generated region found before expansion
type RegionStatus int

const (
	RegionMissing  RegionStatus = iota // no region followed the directive
	RegionUpToDate                     // stamp and content matched
	RegionStale                        // stamp differs, the input changed
	RegionEdited                       // stamp matches but the content was edited
)

// String returns the string representation of the region status
func (s RegionStatus) String() string {
	switch s {
	case RegionMissing:
		return "missing"
	case RegionUpToDate:
		return "up-to-date"
	case RegionStale:
		return "stale"
	case RegionEdited:
		return "edited"
	default:
		return "unknown"
	}
}

// FileResult is the outcome of expanding every directive in one file
type FileResult struct {
	Path       string      // path of the processed file
	Content    []byte      // resulting file content
	Changed    bool        // whether Content differs from the input
	Expansions []Expansion // expansions in source order
}

// GenerationSummary provides statistics about a generation run
type GenerationSummary struct {
	FilesScanned  int      // files inspected
	FilesChanged  []string // files whose content changed (or would change in check mode)
	Directives    int      // directives expanded
	StaleRegions  int      // regions whose input changed
	EditedRegions int      // regions edited by hand
}
