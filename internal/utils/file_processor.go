package utils

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/toyz/navgen/internal/errors"
)

// DefaultSkipDirs are directory names never scanned for sources
var DefaultSkipDirs = []string{".build", "Pods", "DerivedData", "vendor", "node_modules", "Carthage"}

// DefaultExtensions are the file extensions scanned for directives
var DefaultExtensions = []string{".swift"}

// FileProcessor finds source files and writes generated results back
type FileProcessor struct {
	extensions []string
	skipDirs   map[string]bool
}

// NewFileProcessor creates a file processor for Swift sources
func NewFileProcessor() *FileProcessor {
	return NewFileProcessorWith(DefaultExtensions, DefaultSkipDirs)
}

// NewFileProcessorWith creates a file processor with custom extensions and skip list
func NewFileProcessorWith(extensions, skipDirs []string) *FileProcessor {
	skip := make(map[string]bool, len(skipDirs))
	for _, d := range skipDirs {
		skip[d] = true
	}
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}
	return &FileProcessor{extensions: extensions, skipDirs: skip}
}

// FileFilter defines a function that determines whether a file should be processed
type FileFilter func(path string, info fs.DirEntry) bool

// DirectoryFilter defines a function that determines whether a directory should be entered
type DirectoryFilter func(path string, info fs.DirEntry) bool

// SourceFileFilter accepts regular files carrying one of the configured extensions
func (fp *FileProcessor) SourceFileFilter() FileFilter {
	return func(path string, info fs.DirEntry) bool {
		if info.IsDir() {
			return false
		}
		for _, ext := range fp.extensions {
			if strings.HasSuffix(info.Name(), ext) {
				return true
			}
		}
		return false
	}
}

// DirectoryFilter skips hidden directories and the configured skip list.
// The walk root itself is never skipped.
func (fp *FileProcessor) DirectoryFilter() DirectoryFilter {
	return func(path string, info fs.DirEntry) bool {
		name := info.Name()
		if strings.HasPrefix(name, ".") && name != "." && name != ".." {
			return false
		}
		return !fp.skipDirs[name]
	}
}

// FindSources resolves directory patterns into a sorted, de-duplicated list
// of source files. "dir/..." walks recursively, a plain directory is read
// without recursion, and a file path is taken as is.
func (fp *FileProcessor) FindSources(patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string

	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, pattern := range patterns {
		root, recursive := SplitPattern(pattern)

		info, err := os.Stat(root)
		if err != nil {
			return nil, errors.WrapFileSystemError("stat", root, err)
		}
		if !info.IsDir() {
			add(filepath.Clean(root))
			continue
		}

		found, err := fp.walk(root, recursive)
		if err != nil {
			return nil, err
		}
		for _, f := range found {
			add(f)
		}
	}

	sort.Strings(files)
	return files, nil
}

func (fp *FileProcessor) walk(root string, recursive bool) ([]string, error) {
	fileFilter := fp.SourceFileFilter()
	dirFilter := fp.DirectoryFilter()
	var matched []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return errors.WrapFileSystemError("walk", path, err)
		}
		if d.IsDir() {
			if path == root {
				return nil
			}
			if !recursive || !dirFilter(path, d) {
				return filepath.SkipDir
			}
			return nil
		}
		if fileFilter(path, d) {
			matched = append(matched, path)
		}
		return nil
	})

	return matched, err
}

// SplitPattern separates a "dir/..." pattern into its root and a recursion flag
func SplitPattern(pattern string) (string, bool) {
	if pattern == "..." {
		return ".", true
	}
	if strings.HasSuffix(pattern, "/...") {
		root := strings.TrimSuffix(pattern, "/...")
		if root == "" {
			root = "/"
		}
		return root, true
	}
	return pattern, false
}

// ReadSource reads a source file
func (fp *FileProcessor) ReadSource(path string) ([]byte, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapFileSystemError("read", path, err)
	}
	return content, nil
}

// WriteSource replaces a file's content, keeping its permissions.
// The content goes to a temporary sibling first and is renamed into place.
func (fp *FileProcessor) WriteSource(path string, content []byte) error {
	mode := fs.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".navgen-*")
	if err != nil {
		return errors.WrapFileSystemError("create", path, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		return errors.WrapFileSystemError("write", path, err)
	}
	if err := tmp.Close(); err != nil {
		return errors.WrapFileSystemError("write", path, err)
	}
	if err := os.Chmod(tmpName, mode); err != nil {
		return errors.WrapFileSystemError("chmod", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return errors.WrapFileSystemError("rename", path, err)
	}
	return nil
}
