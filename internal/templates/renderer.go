package templates

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/toyz/navgen/internal/errors"
	"github.com/toyz/navgen/internal/models"
)

// DefaultIndent is the indent unit used when none is configured
const DefaultIndent = "    "

// Renderer serializes declarations to Swift source
type Renderer struct {
	registry *TemplateRegistry
	indent   string
}

// NewRenderer creates a renderer using the default registry
func NewRenderer(indent string) *Renderer {
	return NewRendererWithRegistry(DefaultTemplateRegistry, indent)
}

// NewRendererWithRegistry creates a renderer over a specific registry
func NewRendererWithRegistry(registry *TemplateRegistry, indent string) *Renderer {
	if indent == "" {
		indent = DefaultIndent
	}
	return &Renderer{registry: registry, indent: indent}
}

// Render renders a single declaration without a trailing newline
func (r *Renderer) Render(decl models.Decl) (string, error) {
	name, err := templateFor(decl)
	if err != nil {
		return "", err
	}

	set, err := r.registry.Compiled()
	if err != nil {
		return "", errors.WrapTemplateError(name, "parse", err)
	}

	var buf bytes.Buffer
	if err := set.ExecuteTemplate(&buf, name, decl); err != nil {
		return "", errors.WrapTemplateError(name, "execute", err)
	}

	return r.reindent(strings.TrimRight(buf.String(), "\n")), nil
}

// RenderAll renders declarations in order, separated by a blank line
func (r *Renderer) RenderAll(decls []models.Decl) (string, error) {
	parts := make([]string, 0, len(decls))
	for _, decl := range decls {
		text, err := r.Render(decl)
		if err != nil {
			return "", err
		}
		parts = append(parts, text)
	}
	return strings.Join(parts, "\n\n"), nil
}

func templateFor(decl models.Decl) (string, error) {
	switch decl.(type) {
	case *models.StructDecl:
		return StructTemplate, nil
	case *models.FuncDecl:
		return FuncTemplate, nil
	default:
		return "", errors.New(errors.TemplateErrorCode, fmt.Sprintf("no template for declaration %T", decl))
	}
}

// reindent replaces each leading tab with the indent unit
func (r *Renderer) reindent(text string) string {
	if r.indent == "\t" {
		return text
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		trimmed := strings.TrimLeft(line, "\t")
		depth := len(line) - len(trimmed)
		if depth > 0 {
			lines[i] = strings.Repeat(r.indent, depth) + trimmed
		}
	}
	return strings.Join(lines, "\n")
}

// IndentBlock prefixes every non-empty line of text with prefix
func IndentBlock(text, prefix string) string {
	if prefix == "" {
		return text
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = prefix + line
		}
	}
	return strings.Join(lines, "\n")
}
