package macro

import (
	"strings"

	"github.com/toyz/navgen/internal/errors"
	"github.com/toyz/navgen/internal/models"
)

// Invocation is a parsed freestanding macro call such as
// #NavigationPath([ReducerA.self, ReducerB.self])
type Invocation struct {
	Name      string                // macro name without the leading #
	Arguments []Argument            // arguments in call order
	Location  errors.SourceLocation // position of the leading #
	Raw       string                // invocation text as written
}

// Argument is one, optionally labelled, argument of an invocation
type Argument struct {
	Label    string                // argument label, empty when unlabelled
	Expr     Expr                  // argument expression
	Location errors.SourceLocation // position of the argument
}

// ExprKind identifies which alternative an Expr holds
type ExprKind int

const (
	ExprType ExprKind = iota
	ExprArray
	ExprLiteral
)

// String returns the string representation of the expression kind
func (k ExprKind) String() string {
	switch k {
	case ExprType:
		return "type reference"
	case ExprArray:
		return "list literal"
	case ExprLiteral:
		return "literal"
	default:
		return "unknown expression"
	}
}

// Expr is an argument expression: a type reference, a list literal or a
// string/number literal. Only the first two are ever accepted by a macro.
type Expr struct {
	Kind     ExprKind
	Type     models.TypeRef        // set for ExprType
	Elements []Expr                // set for ExprArray
	Literal  string                // set for ExprLiteral
	Location errors.SourceLocation // position of the expression
}

// String renders the expression back to source form
func (e Expr) String() string {
	switch e.Kind {
	case ExprType:
		return e.Type.Source()
	case ExprArray:
		parts := make([]string, len(e.Elements))
		for i, el := range e.Elements {
			parts[i] = el.String()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return e.Literal
	}
}

// String renders the invocation in canonical form: no comment markers,
// single spaces after commas and labels, .self markers kept as parsed
func (inv *Invocation) String() string {
	parts := make([]string, len(inv.Arguments))
	for i, arg := range inv.Arguments {
		if arg.Label != "" {
			parts[i] = arg.Label + ": " + arg.Expr.String()
		} else {
			parts[i] = arg.Expr.String()
		}
	}
	return "#" + inv.Name + "(" + strings.Join(parts, ", ") + ")"
}
