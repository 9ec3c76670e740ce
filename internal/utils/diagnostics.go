package utils

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/fatih/color"

	"github.com/toyz/navgen/internal/errors"
)

// DiagnosticLevel represents the level of diagnostic output
type DiagnosticLevel int

const (
	DiagnosticSilent DiagnosticLevel = iota
	DiagnosticError
	DiagnosticWarn
	DiagnosticInfo
	DiagnosticVerbose
	DiagnosticDebug
)

// DiagnosticSystem provides structured, user-friendly output.
// Level-tagged messages may be written from several goroutines.
type DiagnosticSystem struct {
	level     DiagnosticLevel
	useColors bool
	output    io.Writer
	errorOut  io.Writer
	indent    int
	progress  string
	mu        sync.Mutex
}

// NewDiagnosticSystem creates a new diagnostic system writing to stdout and stderr
func NewDiagnosticSystem(level DiagnosticLevel) *DiagnosticSystem {
	return NewDiagnosticSystemWithWriters(level, os.Stdout, os.Stderr)
}

// NewDiagnosticSystemWithWriters creates a diagnostic system with explicit writers.
// Colors follow the terminal environment.
func NewDiagnosticSystemWithWriters(level DiagnosticLevel, output, errorOut io.Writer) *DiagnosticSystem {
	return &DiagnosticSystem{
		level:     level,
		useColors: shouldUseColors(),
		output:    output,
		errorOut:  errorOut,
	}
}

// DiagnosticLevelFor maps the quiet and verbose flags to a level
func DiagnosticLevelFor(quiet, verbose bool) DiagnosticLevel {
	switch {
	case quiet:
		return DiagnosticError
	case verbose:
		return DiagnosticVerbose
	default:
		return DiagnosticInfo
	}
}

// SetColors overrides terminal color detection, e.g. for --no-color
func (d *DiagnosticSystem) SetColors(enabled bool) {
	d.useColors = enabled
}

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warnColor    = color.New(color.FgYellow)
	infoColor    = color.New(color.FgBlue)
	successColor = color.New(color.FgGreen)
	verboseColor = color.New(color.FgHiBlack)
	debugColor   = color.New(color.FgMagenta)
	headerColor  = color.New(color.FgCyan, color.Bold)
)

// Error outputs error messages (always shown unless silent)
func (d *DiagnosticSystem) Error(format string, args ...interface{}) {
	if d.level >= DiagnosticError {
		d.writeMessage(d.errorOut, "ERROR", errorColor, format, args...)
	}
}

// Warn outputs warning messages
func (d *DiagnosticSystem) Warn(format string, args ...interface{}) {
	if d.level >= DiagnosticWarn {
		d.writeMessage(d.output, "WARN", warnColor, format, args...)
	}
}

// Info outputs informational messages
func (d *DiagnosticSystem) Info(format string, args ...interface{}) {
	if d.level >= DiagnosticInfo {
		d.writeMessage(d.output, "INFO", infoColor, format, args...)
	}
}

// Success outputs success messages with emphasis
func (d *DiagnosticSystem) Success(format string, args ...interface{}) {
	if d.level >= DiagnosticInfo {
		d.writeMessage(d.output, "SUCCESS", successColor, format, args...)
	}
}

// Verbose outputs detailed messages (verbose mode only)
func (d *DiagnosticSystem) Verbose(format string, args ...interface{}) {
	if d.level >= DiagnosticVerbose {
		d.writeMessage(d.output, "VERBOSE", verboseColor, format, args...)
	}
}

// Debug outputs debug messages (highest verbosity)
func (d *DiagnosticSystem) Debug(format string, args ...interface{}) {
	if d.level >= DiagnosticDebug {
		d.writeMessage(d.output, "DEBUG", debugColor, format, args...)
	}
}

// ReportError prints an error and its suggestions.
// Collections are expanded so every entry gets its own line.
func (d *DiagnosticSystem) ReportError(err error) {
	if err == nil || d.level < DiagnosticError {
		return
	}

	if multi, ok := err.(*errors.MultipleErrors); ok {
		for _, e := range multi.Errors {
			d.ReportError(e)
		}
		return
	}

	nerr, ok := err.(errors.NavgenError)
	if !ok {
		d.Error("%v", err)
		return
	}

	d.Error("%s", nerr.Error())

	d.Indent()
	for _, s := range nerr.Suggestions() {
		d.writeLine(d.errorOut, "hint: "+s)
	}
	d.Unindent()
}

// StartProgress begins a progress line that EndProgress completes
func (d *DiagnosticSystem) StartProgress(message string) {
	d.progress = message
	if d.level >= DiagnosticVerbose {
		d.writeLine(d.output, message+"...")
	}
}

// EndProgress completes the current progress line
func (d *DiagnosticSystem) EndProgress(success bool, detail string) {
	message := d.progress
	d.progress = ""
	if message == "" || d.level < DiagnosticInfo {
		return
	}
	if detail != "" {
		message = fmt.Sprintf("%s (%s)", message, detail)
	}
	if success {
		d.Progress("%s", message)
	} else {
		d.writeLine(d.errorOut, d.paint(errorColor, "✗ ")+message)
	}
}

// Progress shows progress without a level prefix
func (d *DiagnosticSystem) Progress(format string, args ...interface{}) {
	if d.level >= DiagnosticInfo {
		d.writeLine(d.output, d.paint(successColor, "✓ ")+fmt.Sprintf(format, args...))
	}
}

// Section creates a prominent section header
func (d *DiagnosticSystem) Section(title string) {
	if d.level >= DiagnosticInfo {
		fmt.Fprintf(d.output, "%s\n", d.paint(headerColor, title))
	}
}

// List outputs a bulleted list item
func (d *DiagnosticSystem) List(format string, args ...interface{}) {
	if d.level >= DiagnosticInfo {
		d.writeLine(d.output, "- "+fmt.Sprintf(format, args...))
	}
}

// Indent increases the indentation level
func (d *DiagnosticSystem) Indent() {
	d.indent++
}

// Unindent decreases the indentation level
func (d *DiagnosticSystem) Unindent() {
	if d.indent > 0 {
		d.indent--
	}
}

// Summary outputs a final summary with statistics, keys in sorted order
func (d *DiagnosticSystem) Summary(title string, stats map[string]interface{}) {
	if d.level < DiagnosticInfo {
		return
	}

	keys := make([]string, 0, len(stats))
	for key := range stats {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	fmt.Fprintf(d.output, "\n%s\n", d.paint(headerColor, title))
	for _, key := range keys {
		fmt.Fprintf(d.output, "   %s: %v\n", key, stats[key])
	}
	fmt.Fprintln(d.output)
}

// FileChanged reports a rewritten (or, in check mode, stale) file
func (d *DiagnosticSystem) FileChanged(path string, check bool) {
	if d.level < DiagnosticInfo {
		return
	}
	if check {
		d.writeLine(d.output, d.paint(warnColor, "! ")+path+" is out of date")
		return
	}
	d.writeLine(d.output, d.paint(debugColor, "✏ ")+"Writing "+path)
}

func (d *DiagnosticSystem) writeMessage(writer io.Writer, level string, c *color.Color, format string, args ...interface{}) {
	var output strings.Builder

	output.WriteString(d.paint(c, "["+level+"]"))
	output.WriteString(" ")
	output.WriteString(fmt.Sprintf(format, args...))

	d.writeLine(writer, output.String())
}

func (d *DiagnosticSystem) writeLine(writer io.Writer, line string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	fmt.Fprintf(writer, "%s%s\n", d.getIndent(), line)
}

// paint applies c when colors are enabled, independent of color.NoColor
func (d *DiagnosticSystem) paint(c *color.Color, text string) string {
	if !d.useColors {
		return text
	}
	painted := *c
	painted.EnableColor()
	return painted.Sprint(text)
}

// getIndent returns the current indentation string
func (d *DiagnosticSystem) getIndent() string {
	return strings.Repeat("  ", d.indent)
}

// shouldUseColors determines if colors should be used
func shouldUseColors() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("FORCE_COLOR") != "" {
		return true
	}
	return !color.NoColor
}
