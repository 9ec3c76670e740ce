package macro

import (
	stderrors "errors"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/toyz/navgen/internal/errors"
	"github.com/toyz/navgen/internal/models"
)

// invocationNode is the grammar root of a macro invocation
type invocationNode struct {
	Pos  lexer.Position
	Name string          `parser:"'#' @Ident"`
	Args []*argumentNode `parser:"'(' ( @@ ( ',' @@ )* ','? )? ')'"`
}

type argumentNode struct {
	Pos   lexer.Position
	Label string    `parser:"( @Ident ':' )?"`
	Expr  *exprNode `parser:"@@"`
}

type exprNode struct {
	Pos     lexer.Position
	Array   *arrayNode   `parser:"  @@"`
	Type    *typeRefNode `parser:"| @@"`
	Literal *string      `parser:"| @(String | Number)"`
}

type arrayNode struct {
	Elements []*exprNode `parser:"'[' ( @@ ( ',' @@ )* ','? )? ']'"`
}

// typeRefNode covers Name, A.B.C, Generic<X, Y> and any of those followed by .self.
// A trailing self segment is folded into the Self flag after parsing.
type typeRefNode struct {
	Pos      lexer.Position
	Segments []string       `parser:"@Ident ( '.' @Ident )*"`
	Generics []*typeRefNode `parser:"( '<' @@ ( ',' @@ )* '>' )?"`
	Trailer  []string       `parser:"( '.' @Ident )*"`
}

// Parser parses macro invocations
type Parser struct {
	parser *participle.Parser[invocationNode]
}

// NewParser creates a new invocation parser
func NewParser() *Parser {
	lex := lexer.MustSimple([]lexer.SimpleRule{
		{Name: "String", Pattern: `"(\\"|[^"])*"`},
		{Name: "Number", Pattern: `[0-9]+(\.[0-9]+)?`},
		{Name: "Ident", Pattern: `[\p{L}_][\p{L}\p{N}_]*`},
		{Name: "Punct", Pattern: `[#()\[\],:.<>]`},
		{Name: "Whitespace", Pattern: `\s+`},
	})

	return &Parser{
		parser: participle.MustBuild[invocationNode](
			participle.Lexer(lex),
			participle.Elide("Whitespace"),
			participle.UseLookahead(2),
		),
	}
}

var defaultParser = NewParser()

// ParseInvocation parses src with the shared parser. loc is the position of
// the leading # in the surrounding file; it anchors all reported positions.
func ParseInvocation(src string, loc errors.SourceLocation) (*Invocation, error) {
	return defaultParser.Parse(src, loc)
}

// Parse parses one invocation. Any failure is an InvalidMacroArgument error,
// since nothing can be expanded from arguments that do not parse.
func (p *Parser) Parse(src string, loc errors.SourceLocation) (*Invocation, error) {
	if loc.Line == 0 {
		loc.Line, loc.Column = 1, 1
	}

	node, err := p.parser.ParseString(loc.File, src)
	if err != nil {
		return nil, p.convertError(src, loc, err)
	}

	inv := &Invocation{
		Name:     node.Name,
		Location: loc,
		Raw:      strings.TrimSpace(src),
	}
	for _, arg := range node.Args {
		expr, err := convertExpr(arg.Expr, loc)
		if err != nil {
			return nil, errors.InvalidMacroArgument(node.Name, err.Error()).
				WithLocation(position(loc, arg.Pos))
		}
		inv.Arguments = append(inv.Arguments, Argument{
			Label:    arg.Label,
			Expr:     expr,
			Location: position(loc, arg.Pos),
		})
	}

	return inv, nil
}

// convertError maps a participle error onto the invocation's source location
func (p *Parser) convertError(src string, loc errors.SourceLocation, err error) error {
	name := invocationName(src)
	result := errors.InvalidMacroArgument(name, "malformed invocation").
		WithCause(err).
		WithLocation(loc).
		WithSuggestion("arguments must be type references such as ReducerA.self or a list literal of them")

	var perr participle.Error
	if stderrors.As(err, &perr) {
		result.Cause = stderrors.New(perr.Message())
		result.WithLocation(position(loc, perr.Position()))
	}
	return result
}

func convertExpr(node *exprNode, loc errors.SourceLocation) (Expr, error) {
	at := position(loc, node.Pos)
	switch {
	case node.Array != nil:
		expr := Expr{Kind: ExprArray, Location: at, Elements: make([]Expr, 0, len(node.Array.Elements))}
		for _, el := range node.Array.Elements {
			converted, err := convertExpr(el, loc)
			if err != nil {
				return Expr{}, err
			}
			expr.Elements = append(expr.Elements, converted)
		}
		return expr, nil
	case node.Type != nil:
		ref, err := convertTypeRef(node.Type)
		if err != nil {
			return Expr{}, err
		}
		return Expr{Kind: ExprType, Type: ref, Location: at}, nil
	default:
		return Expr{Kind: ExprLiteral, Literal: *node.Literal, Location: at}, nil
	}
}

func convertTypeRef(node *typeRefNode) (models.TypeRef, error) {
	ref := models.TypeRef{}
	segments := node.Segments
	trailer := node.Trailer

	// Without generics the participle loop swallows .self into Segments.
	if len(node.Generics) == 0 && len(segments) > 1 && segments[len(segments)-1] == "self" {
		segments = segments[:len(segments)-1]
		ref.Self = true
	}
	for _, g := range node.Generics {
		converted, err := convertTypeRef(g)
		if err != nil {
			return models.TypeRef{}, err
		}
		if converted.Self {
			return models.TypeRef{}, stderrors.New("generic argument " + converted.Source() + " cannot carry .self")
		}
		ref.Generics = append(ref.Generics, converted)
	}
	switch {
	case len(trailer) == 0:
	case len(trailer) == 1 && trailer[0] == "self":
		ref.Self = true
	default:
		return models.TypeRef{}, stderrors.New("unexpected member ." + strings.Join(trailer, ".") + " after generic arguments")
	}
	if segments[0] == "self" {
		return models.TypeRef{}, stderrors.New("self is not a type reference")
	}
	for _, seg := range segments {
		if seg == "self" {
			return models.TypeRef{}, stderrors.New(".self may only appear once, at the end of " + strings.Join(node.Segments, "."))
		}
	}

	ref.Path = append([]string(nil), segments...)
	return ref, nil
}

func position(base errors.SourceLocation, pos lexer.Position) errors.SourceLocation {
	if pos.Line == 0 {
		return base
	}
	return base.Offset(pos.Line, pos.Column)
}

// invocationName extracts the macro name from possibly malformed source
func invocationName(src string) string {
	src = strings.TrimSpace(src)
	src = strings.TrimPrefix(src, "#")
	end := strings.IndexAny(src, "( \t\n")
	if end < 0 {
		end = len(src)
	}
	if end == 0 {
		return "?"
	}
	return src[:end]
}
