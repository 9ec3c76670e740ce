package macro

import (
	"fmt"

	"github.com/toyz/navgen/internal/errors"
	"github.com/toyz/navgen/internal/models"
)

// ModuleListArgument validates the argument at index as a non-empty list
// literal of type references and returns the modules in written order.
// A negative index counts from the end, so -1 selects the last argument.
func ModuleListArgument(inv *Invocation, index int) (models.ModuleList, error) {
	arg, err := argumentAt(inv, index, "module list")
	if err != nil {
		return nil, err
	}

	if arg.Expr.Kind != ExprArray {
		return nil, invalid(inv, arg.Expr.Location,
			fmt.Sprintf("module list must be a list literal, got %s %s", arg.Expr.Kind, arg.Expr.String())).
			WithSuggestion(fmt.Sprintf("wrap the modules in brackets: [%s]", arg.Expr.String()))
	}
	if len(arg.Expr.Elements) == 0 {
		return nil, invalid(inv, arg.Expr.Location, "module list is empty").
			WithSuggestion("list at least one module, e.g. [ReducerA.self]")
	}

	modules := make(models.ModuleList, 0, len(arg.Expr.Elements))
	for i, el := range arg.Expr.Elements {
		if el.Kind != ExprType {
			return nil, invalid(inv, el.Location,
				fmt.Sprintf("module list element %d must be a type reference, got %s %s", i+1, el.Kind, el.String()))
		}
		if reason := typeRefProblem(el.Type); reason != "" {
			return nil, invalid(inv, el.Location, fmt.Sprintf("module list element %d %s", i+1, reason))
		}
		modules = append(modules, el.Type)
	}

	return modules, nil
}

// RootArgument validates that the first argument is a single type reference
// distinct from the module list, which is always the last argument.
func RootArgument(inv *Invocation) (models.TypeRef, error) {
	if len(inv.Arguments) < 2 {
		return models.TypeRef{}, invalid(inv, inv.Location, "missing root argument").
			WithSuggestion(fmt.Sprintf("pass the root reducer first: #%s(root: RootReducer.self, [ReducerA.self])", inv.Name))
	}

	arg := inv.Arguments[0]
	if arg.Expr.Kind != ExprType {
		return models.TypeRef{}, invalid(inv, arg.Expr.Location,
			fmt.Sprintf("root must be a single type reference, got %s %s", arg.Expr.Kind, arg.Expr.String()))
	}

	if reason := typeRefProblem(arg.Expr.Type); reason != "" {
		return models.TypeRef{}, invalid(inv, arg.Expr.Location, "root "+reason)
	}

	return arg.Expr.Type, nil
}

// typeRefProblem describes why ref cannot name a module, or returns "".
// A .self marker lives only in the Self flag, never in the path.
func typeRefProblem(ref models.TypeRef) string {
	if ref.IsZero() {
		return "names no type"
	}
	for _, seg := range ref.Path {
		if seg == "self" || seg == "" {
			return fmt.Sprintf("%q is not a valid type reference", ref.Source())
		}
	}
	for _, g := range ref.Generics {
		if reason := typeRefProblem(g); reason != "" {
			return reason
		}
	}
	return ""
}

func argumentAt(inv *Invocation, index int, what string) (Argument, error) {
	if inv == nil {
		return Argument{}, errors.InvalidMacroArgument("?", "missing invocation")
	}
	if index < 0 {
		index += len(inv.Arguments)
	}
	if index < 0 || index >= len(inv.Arguments) {
		return Argument{}, invalid(inv, inv.Location, "missing "+what+" argument")
	}
	return inv.Arguments[index], nil
}

func invalid(inv *Invocation, loc errors.SourceLocation, reason string) *errors.BaseError {
	return errors.InvalidMacroArgument(inv.Name, reason).
		WithLocation(loc).
		WithContext("invocation", inv.Raw)
}
