package cli

import (
	"github.com/toyz/navgen/internal/utils"
)

// DirectoryScanner resolves command-line patterns to source files
type DirectoryScanner struct {
	fileProcessor *utils.FileProcessor
}

// NewDirectoryScanner creates a scanner for Swift sources with the default skip list
func NewDirectoryScanner() *DirectoryScanner {
	return NewDirectoryScannerWith(utils.NewFileProcessor())
}

// NewDirectoryScannerWith creates a scanner over a configured file processor
func NewDirectoryScannerWith(fp *utils.FileProcessor) *DirectoryScanner {
	return &DirectoryScanner{fileProcessor: fp}
}

// ScanSources returns the sorted source files matched by patterns.
// Supports Go-style patterns like "./..." for recursive scanning; no
// patterns means the current directory, recursively.
func (s *DirectoryScanner) ScanSources(patterns []string) ([]string, error) {
	if len(patterns) == 0 {
		patterns = []string{"./..."}
	}
	return s.fileProcessor.FindSources(patterns)
}

// FileProcessor returns the processor used to read and write sources
func (s *DirectoryScanner) FileProcessor() *utils.FileProcessor {
	return s.fileProcessor
}
