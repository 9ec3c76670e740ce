package cli

import (
	"github.com/toyz/navgen/internal/parser"
	"github.com/toyz/navgen/internal/utils"
)

// Cleaner removes generated regions while keeping their directives
type Cleaner struct {
	scanner     *DirectoryScanner
	diagnostics *utils.DiagnosticSystem
}

// NewCleaner creates a new cleaner
func NewCleaner(scanner *DirectoryScanner, diagnostics *utils.DiagnosticSystem) *Cleaner {
	if scanner == nil {
		scanner = NewDirectoryScanner()
	}
	if diagnostics == nil {
		diagnostics = utils.NewDiagnosticSystem(utils.DiagnosticSilent)
	}
	return &Cleaner{scanner: scanner, diagnostics: diagnostics}
}

// CleanSource strips every generated region from content. The second
// result reports whether anything was removed.
func CleanSource(path string, content []byte) ([]byte, bool, error) {
	src := parser.NewSource(path, content)

	directives, err := parser.ScanDirectives(src)
	if err != nil {
		return nil, false, err
	}

	removed := false
	for _, d := range directives {
		if d.Region != nil {
			removed = true
		}
	}
	if !removed {
		return content, false, nil
	}

	src.Lines = rewrite(src.Lines, directives, nil)
	return src.Bytes(), true, nil
}

// CleanGeneratedRegions strips generated regions from every matched file and
// returns the files that were rewritten. In check mode nothing is written.
func (c *Cleaner) CleanGeneratedRegions(patterns []string, check bool) ([]string, error) {
	files, err := c.scanner.ScanSources(patterns)
	if err != nil {
		return nil, err
	}

	fp := c.scanner.FileProcessor()
	var cleaned []string
	for _, path := range files {
		content, err := fp.ReadSource(path)
		if err != nil {
			return cleaned, err
		}

		stripped, removed, err := CleanSource(path, content)
		if err != nil {
			return cleaned, err
		}
		if !removed {
			continue
		}

		cleaned = append(cleaned, path)
		if check {
			c.diagnostics.List("%s", path)
			continue
		}
		c.diagnostics.FileChanged(path, false)
		if err := fp.WriteSource(path, stripped); err != nil {
			return cleaned, err
		}
	}

	return cleaned, nil
}
