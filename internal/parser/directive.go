package parser

import (
	"regexp"
	"strings"

	"github.com/toyz/navgen/internal/errors"
)

// Region markers written around generated code
const (
	BeginMarker = "navgen:begin"
	EndMarker   = "navgen:end"
)

var invocationStart = regexp.MustCompile(`^#[\p{L}_][\p{L}\p{N}_]*\s*\(`)

// Directive is a macro invocation written in a line comment, e.g.
//
//	// #NavigationPath([ReducerA.self, ReducerB.self])
type Directive struct {
	Invocation string                // invocation text with comment markers removed
	Location   errors.SourceLocation // position of the leading #
	Indent     string                // whitespace before the comment marker
	StartLine  int                   // first directive line (0-based)
	EndLine    int                   // last directive line (0-based, inclusive)
	Region     *Region               // generated region following the directive, if any
}

// Region is a generated block delimited by begin and end marker comments
type Region struct {
	BeginLine int    // line holding the begin marker (0-based)
	EndLine   int    // line holding the end marker (0-based)
	Stamp     string // stamp recorded on the begin marker
	Body      string // lines between the markers, joined by newlines
}

// Source is a file split into lines for directive processing
type Source struct {
	Path            string
	Lines           []string
	TrailingNewline bool
}

// NewSource splits content into lines, keeping track of the final newline
func NewSource(path string, content []byte) *Source {
	text := strings.ReplaceAll(string(content), "\r\n", "\n")
	trailing := strings.HasSuffix(text, "\n")
	text = strings.TrimSuffix(text, "\n")
	lines := []string{}
	if text != "" || trailing {
		lines = strings.Split(text, "\n")
	}
	return &Source{Path: path, Lines: lines, TrailingNewline: trailing}
}

// Bytes joins the lines back into file content
func (s *Source) Bytes() []byte {
	text := strings.Join(s.Lines, "\n")
	if s.TrailingNewline {
		text += "\n"
	}
	return []byte(text)
}

// ScanDirectives finds every directive and its generated region.
// Syntax problems are collected so one run reports all of them.
func ScanDirectives(src *Source) ([]Directive, error) {
	var directives []Directive
	var errs *errors.MultipleErrors

	for i := 0; i < len(src.Lines); i++ {
		indent, body, ok := commentBody(src.Lines[i])
		if !ok {
			continue
		}
		if isMarker(body, EndMarker) {
			errors.AddToMultiple(&errs, errors.SyntaxError(location(src, i, indent), "%s without a matching directive", EndMarker))
			continue
		}
		if isMarker(body, BeginMarker) {
			errors.AddToMultiple(&errs, errors.SyntaxError(location(src, i, indent), "%s without a preceding directive", BeginMarker))
			if end := findEnd(src, i+1); end >= 0 {
				i = end
			}
			continue
		}
		if !invocationStart.MatchString(body) {
			continue
		}

		directive, err := readDirective(src, i, indent)
		if err != nil {
			errors.AddToMultiple(&errs, err)
			continue
		}

		region, err := readRegion(src, directive.EndLine+1)
		if err != nil {
			// an unclosed region swallows the rest of the file
			errors.AddToMultiple(&errs, err)
			break
		}
		directive.Region = region
		directives = append(directives, directive)

		i = directive.EndLine
		if region != nil {
			i = region.EndLine
		}
	}

	return directives, errs.ErrOrNil()
}

// readDirective collects comment lines from start until the invocation's
// parentheses balance
func readDirective(src *Source, start int, indent string) (Directive, *errors.BaseError) {
	hashCol := strings.IndexByte(src.Lines[start], '#')

	directive := Directive{
		Location:  errors.SourceLocation{File: src.Path, Line: start + 1, Column: hashCol + 1},
		Indent:    indent,
		StartLine: start,
	}

	var parts []string
	depth := 0
	for i := start; i < len(src.Lines); i++ {
		_, body, ok := commentBody(src.Lines[i])
		if !ok {
			break
		}
		parts = append(parts, body)
		depth += parenDelta(body)
		if depth <= 0 {
			directive.Invocation = strings.Join(parts, "\n")
			directive.EndLine = i
			return directive, nil
		}
	}

	return Directive{}, errors.SyntaxError(directive.Location, "unterminated invocation: parentheses never close").
		WithSuggestion("continue a multi-line invocation on consecutive // comment lines")
}

// readRegion reads a generated region starting at line, if one is there
func readRegion(src *Source, line int) (*Region, *errors.BaseError) {
	if line >= len(src.Lines) {
		return nil, nil
	}
	indent, body, ok := commentBody(src.Lines[line])
	if !ok || !isMarker(body, BeginMarker) {
		return nil, nil
	}

	end := findEnd(src, line+1)
	if end < 0 {
		return nil, errors.SyntaxError(location(src, line, indent), "%s is never closed by %s", BeginMarker, EndMarker).
			WithSuggestion("restore the // " + EndMarker + " line or delete the generated region")
	}

	return &Region{
		BeginLine: line,
		EndLine:   end,
		Stamp:     strings.TrimSpace(strings.TrimPrefix(body, BeginMarker)),
		Body:      strings.Join(src.Lines[line+1:end], "\n"),
	}, nil
}

func findEnd(src *Source, from int) int {
	for i := from; i < len(src.Lines); i++ {
		if _, body, ok := commentBody(src.Lines[i]); ok && isMarker(body, EndMarker) {
			return i
		}
	}
	return -1
}

// commentBody returns the text of a // line comment with the marker removed
func commentBody(line string) (indent, body string, ok bool) {
	trimmed := strings.TrimLeft(line, " \t")
	if !strings.HasPrefix(trimmed, "//") {
		return "", "", false
	}
	indent = line[:len(line)-len(trimmed)]
	return indent, strings.TrimSpace(strings.TrimPrefix(trimmed, "//")), true
}

func isMarker(body, marker string) bool {
	if !strings.HasPrefix(body, marker) {
		return false
	}
	rest := body[len(marker):]
	return rest == "" || rest[0] == ' ' || rest[0] == '\t'
}

// parenDelta counts parentheses outside string literals
func parenDelta(s string) int {
	delta := 0
	inString := false
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c == '\\' && inString:
			i++
		case c == '"':
			inString = !inString
		case c == '(' && !inString:
			delta++
		case c == ')' && !inString:
			delta--
		}
	}
	return delta
}

func location(src *Source, line int, indent string) errors.SourceLocation {
	return errors.SourceLocation{File: src.Path, Line: line + 1, Column: len(indent) + 1}
}
