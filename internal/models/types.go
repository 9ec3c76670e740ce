package models

import "strings"

// TypeRef is a structured reference to a Swift type as written in a macro argument
type TypeRef struct {
	Path     []string  // dotted path segments, e.g. ["Feature", "ReducerA"]
	Generics []TypeRef // generic arguments applied to the last segment
	Self     bool      // whether a trailing .self marker was stripped
}

// NewTypeRef creates a reference from a dotted name such as "Feature.ReducerA"
func NewTypeRef(name string) TypeRef {
	return TypeRef{Path: strings.Split(name, ".")}
}

// String renders the reference without the .self marker
func (t TypeRef) String() string {
	var b strings.Builder
	b.WriteString(strings.Join(t.Path, "."))
	if len(t.Generics) > 0 {
		b.WriteString("<")
		for i, g := range t.Generics {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(g.String())
		}
		b.WriteString(">")
	}
	return b.String()
}

// Source renders the reference the way it appeared in the invocation
func (t TypeRef) Source() string {
	if t.Self {
		return t.String() + ".self"
	}
	return t.String()
}

// BaseName returns the last path segment, which names the module itself
func (t TypeRef) BaseName() string {
	if len(t.Path) == 0 {
		return ""
	}
	return t.Path[len(t.Path)-1]
}

// IsZero reports whether the reference names nothing
func (t TypeRef) IsZero() bool {
	return len(t.Path) == 0
}

// Member returns a path to a nested member, e.g. ReducerA.State
func (t TypeRef) Member(name string) string {
	return t.String() + "." + name
}

// WithSuffix returns a copy whose last segment carries suffix, keeping generics.
// ReducerA with suffix "View" becomes ReducerAView.
func (t TypeRef) WithSuffix(suffix string) TypeRef {
	path := make([]string, len(t.Path))
	copy(path, t.Path)
	if len(path) > 0 {
		path[len(path)-1] += suffix
	}
	return TypeRef{Path: path, Generics: t.Generics}
}

// ModuleList is the ordered list of feature modules named by an invocation.
// Order is significant and duplicates are kept.
type ModuleList []TypeRef

// Names returns the rendered module names in order
func (l ModuleList) Names() []string {
	names := make([]string, len(l))
	for i, ref := range l {
		names[i] = ref.String()
	}
	return names
}
