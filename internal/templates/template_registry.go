package templates

import (
	"strings"
	"sync"
	"text/template"
)

// Templates are written with tab indentation; the renderer rewrites leading
// tabs into the configured indent unit.

// TemplateRegistry provides a centralized way to access all templates
type TemplateRegistry struct {
	templates map[string]string
	once      sync.Once
	compiled  *template.Template
	err       error
}

// NewTemplateRegistry creates a new template registry with all templates
func NewTemplateRegistry() *TemplateRegistry {
	registry := &TemplateRegistry{
		templates: make(map[string]string),
	}

	registry.registerUnionPathTemplates()
	registry.registerDispatchTemplates()

	return registry
}

// Compiled parses every registered template once into a single set.
// The returned set is only ever executed, so it is safe for concurrent use.
func (tr *TemplateRegistry) Compiled() (*template.Template, error) {
	tr.once.Do(func() {
		root := template.New("navgen").Funcs(FuncMap())
		for name, text := range tr.templates {
			if _, err := root.New(name).Parse(text); err != nil {
				tr.err = err
				return
			}
		}
		tr.compiled = root
	})
	return tr.compiled, tr.err
}

// FuncMap returns the helpers available to every template
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"conformances": conformances,
	}
}

// conformances renders an inheritance clause such as ": Reducer"
func conformances(protocols []string) string {
	if len(protocols) == 0 {
		return ""
	}
	return ": " + strings.Join(protocols, ", ")
}

// registerUnionPathTemplates registers the Path aggregate templates
func (tr *TemplateRegistry) registerUnionPathTemplates() {
	tr.templates[StructTemplate] = `struct {{.Name}}{{conformances .Conformances}} {
{{template "` + UnionTemplate + `" .State}}{{template "` + UnionTemplate + `" .Action}}{{template "` + BodyTemplate + `" .Body}}}
`

	tr.templates[UnionTemplate] = `	enum {{.Name}}{{conformances .Conformances}} {
{{range .Cases}}		case {{.Tag}}({{.Payload}})
{{end}}	}
`

	tr.templates[BodyTemplate] = `	var {{.Name}}: {{.Type}} {
{{range .Bindings}}		Scope(state: /{{.StateUnion}}.{{.Tag}}, action: /{{.ActionUnion}}.{{.Tag}}) {
			{{.Constructor}}()
		}
{{end}}	}
`
}

// registerDispatchTemplates registers the destination function templates
func (tr *TemplateRegistry) registerDispatchTemplates() {
	tr.templates[FuncTemplate] = `{{range .Modifiers}}{{.}} {{end}}func {{.Name}}({{range $i, $p := .Params}}{{if $i}}, {{end}}{{$p.Label}}: {{$p.Type}}{{end}}) -> {{.Result}} {
	switch {{.Subject}} {
{{range .Arms}}{{template "` + ArmTemplate + `" .}}{{end}}	}
}
`

	tr.templates[ArmTemplate] = `	case .{{.Tag}}:
		return {{.Wrapper}}(
			/{{.StatePath}},
			action: {{.ActionPath}},
			then: {{.ViewConstructor}})
`
}

// Template names
const (
	StructTemplate = "struct"
	UnionTemplate  = "union"
	BodyTemplate   = "body"
	FuncTemplate   = "func"
	ArmTemplate    = "arm"
)

// DefaultTemplateRegistry is the shared registry instance
var DefaultTemplateRegistry = NewTemplateRegistry()
