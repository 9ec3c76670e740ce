package macro

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/navgen/internal/errors"
	"github.com/toyz/navgen/internal/models"
)

func mustParse(t *testing.T, src string) *Invocation {
	t.Helper()
	inv, err := ParseInvocation(src, errors.SourceLocation{File: "Root.swift", Line: 1, Column: 1})
	require.NoError(t, err)
	return inv
}

func TestModuleListArgument(t *testing.T) {
	inv := mustParse(t, "#NavigationPath([ReducerA.self, ReducerB.self, ReducerA.self])")

	modules, err := ModuleListArgument(inv, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"ReducerA", "ReducerB", "ReducerA"}, modules.Names())

	last, err := ModuleListArgument(inv, -1)
	require.NoError(t, err)
	assert.Equal(t, modules, last)
}

func TestModuleListArgumentErrors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		index  int
		reason string
	}{
		{"missing argument", "#NavigationPath()", 0, "missing module list argument"},
		{"empty list", "#NavigationPath([])", 0, "module list is empty"},
		{"not a list", "#NavigationPath(ReducerA.self)", 0, "must be a list literal"},
		{"literal element", `#NavigationPath([ReducerA.self, "ReducerB"])`, 0, "element 2 must be a type reference"},
		{"nested list", "#NavigationPath([[ReducerA.self]])", 0, "element 1 must be a type reference"},
		{"index out of range", "#NavigationPath([ReducerA.self])", 3, "missing module list argument"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			modules, err := ModuleListArgument(mustParse(t, tt.input), tt.index)
			require.Error(t, err)
			assert.Nil(t, modules)
			assert.True(t, stderrors.Is(err, errors.ErrInvalidMacroArgument))
			assert.Contains(t, err.Error(), tt.reason)
		})
	}
}

func listOf(refs ...models.TypeRef) *Invocation {
	elements := make([]Expr, len(refs))
	for i, ref := range refs {
		elements[i] = Expr{Kind: ExprType, Type: ref}
	}
	return &Invocation{
		Name:      "NavigationPath",
		Arguments: []Argument{{Expr: Expr{Kind: ExprArray, Elements: elements}}},
	}
}

func TestModuleListArgumentRejectsMalformedTypeRefs(t *testing.T) {
	tests := []struct {
		name   string
		ref    models.TypeRef
		reason string
	}{
		{"repeated self", models.TypeRef{Path: []string{"A", "self"}, Self: true}, `"A.self.self" is not a valid type reference`},
		{"self inside path", models.TypeRef{Path: []string{"A", "self", "B"}}, `"A.self.B" is not a valid type reference`},
		{"empty segment", models.TypeRef{Path: []string{"A", ""}}, "is not a valid type reference"},
		{"no path", models.TypeRef{Self: true}, "names no type"},
		{"bad generic argument", models.TypeRef{Path: []string{"Detail"}, Generics: []models.TypeRef{{Path: []string{"self"}}}}, `"self" is not a valid type reference`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			modules, err := ModuleListArgument(listOf(models.NewTypeRef("Home"), tt.ref), 0)
			require.Error(t, err)
			assert.Nil(t, modules)
			assert.True(t, stderrors.Is(err, errors.ErrInvalidMacroArgument))
			assert.Contains(t, err.Error(), "element 2 "+tt.reason)
		})
	}
}

func TestRootArgumentRejectsSelfInsidePath(t *testing.T) {
	inv := listOf(models.NewTypeRef("Home"))
	inv.Name = "NavigationPathView"
	inv.Arguments = append([]Argument{{Expr: Expr{Kind: ExprType, Type: models.TypeRef{Path: []string{"Root", "self"}, Self: true}}}}, inv.Arguments...)

	root, err := RootArgument(inv)
	require.Error(t, err)
	assert.True(t, root.IsZero())
	assert.True(t, stderrors.Is(err, errors.ErrInvalidMacroArgument))
	assert.Contains(t, err.Error(), `root "Root.self.self" is not a valid type reference`)
}

func TestModuleListArgumentNilInvocation(t *testing.T) {
	_, err := ModuleListArgument(nil, 0)
	assert.True(t, stderrors.Is(err, errors.ErrInvalidMacroArgument))
}

func TestRootArgument(t *testing.T) {
	root, err := RootArgument(mustParse(t, "#NavigationPathView(root: RootReducer.self, [ReducerA.self])"))
	require.NoError(t, err)
	assert.Equal(t, "RootReducer", root.String())
	assert.True(t, root.Self)
}

func TestRootArgumentErrors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		reason string
	}{
		{"only the list", "#NavigationPathView([ReducerA.self])", "missing root argument"},
		{"no arguments", "#NavigationPathView()", "missing root argument"},
		{"root is a list", "#NavigationPathView([Root.self], [ReducerA.self])", "root must be a single type reference"},
		{"root is a literal", `#NavigationPathView("Root", [ReducerA.self])`, "root must be a single type reference"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, err := RootArgument(mustParse(t, tt.input))
			require.Error(t, err)
			assert.True(t, root.IsZero())
			assert.True(t, stderrors.Is(err, errors.ErrInvalidMacroArgument))
			assert.Contains(t, err.Error(), tt.reason)
		})
	}
}

func TestValidationErrorPointsAtArgument(t *testing.T) {
	inv, err := ParseInvocation("#NavigationPath(ReducerA.self)", errors.SourceLocation{File: "Root.swift", Line: 9, Column: 5})
	require.NoError(t, err)

	_, err = ModuleListArgument(inv, 0)
	require.Error(t, err)

	var coded errors.NavgenError
	require.True(t, stderrors.As(err, &coded))
	assert.Equal(t, errors.SourceLocation{File: "Root.swift", Line: 9, Column: 21}, coded.Location())
	assert.NotEmpty(t, coded.Suggestions())
}
