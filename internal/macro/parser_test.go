package macro

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/navgen/internal/errors"
	"github.com/toyz/navgen/internal/models"
)

func TestParseInvocation(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		macro    string
		labels   []string
		rendered []string
	}{
		{
			name:     "path macro",
			input:    "#NavigationPath([ReducerA.self, ReducerB.self])",
			macro:    "NavigationPath",
			labels:   []string{""},
			rendered: []string{"[ReducerA.self, ReducerB.self]"},
		},
		{
			name:     "labelled root spanning lines",
			input:    "#NavigationPathView(\n    root: RootReducer.self,\n    [ReducerA.self]\n)",
			macro:    "NavigationPathView",
			labels:   []string{"root", ""},
			rendered: []string{"RootReducer.self", "[ReducerA.self]"},
		},
		{
			name:     "no self marker",
			input:    "#NavigationPathView(path: RootReducer, [ReducerA, ReducerB])",
			macro:    "NavigationPathView",
			labels:   []string{"path", ""},
			rendered: []string{"RootReducer", "[ReducerA, ReducerB]"},
		},
		{
			name:     "qualified and generic references",
			input:    "#NavigationPath([Feature.List.self, Detail<Int, Foundation.URL>.self])",
			macro:    "NavigationPath",
			labels:   []string{""},
			rendered: []string{"[Feature.List.self, Detail<Int, Foundation.URL>.self]"},
		},
		{
			name:     "nested generics",
			input:    "#NavigationPath([Box<Array<Int>>.self])",
			macro:    "NavigationPath",
			labels:   []string{""},
			rendered: []string{"[Box<Array<Int>>.self]"},
		},
		{
			name:     "trailing comma and odd whitespace",
			input:    "  #NavigationPath( [ ReducerA . self ,\tReducerB.self , ] )  ",
			macro:    "NavigationPath",
			labels:   []string{""},
			rendered: []string{"[ReducerA.self, ReducerB.self]"},
		},
		{
			name:     "empty list still parses",
			input:    "#NavigationPath([])",
			macro:    "NavigationPath",
			labels:   []string{""},
			rendered: []string{"[]"},
		},
		{
			name:     "literal elements still parse",
			input:    `#NavigationPath(["ReducerA", 42])`,
			macro:    "NavigationPath",
			labels:   []string{""},
			rendered: []string{`["ReducerA", 42]`},
		},
		{
			name:     "no arguments",
			input:    "#NavigationPath()",
			macro:    "NavigationPath",
			labels:   nil,
			rendered: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv, err := ParseInvocation(tt.input, errors.SourceLocation{File: "Root.swift", Line: 1, Column: 1})
			require.NoError(t, err)

			assert.Equal(t, tt.macro, inv.Name)
			require.Len(t, inv.Arguments, len(tt.rendered))
			for i, arg := range inv.Arguments {
				assert.Equal(t, tt.labels[i], arg.Label)
				assert.Equal(t, tt.rendered[i], arg.Expr.String())
			}
		})
	}
}

func TestParseInvocationTypeRefs(t *testing.T) {
	inv, err := ParseInvocation("#NavigationPath([ReducerA.self, Feature.Settings, Detail<Int>.self])", errors.SourceLocation{})
	require.NoError(t, err)

	elements := inv.Arguments[0].Expr.Elements
	require.Len(t, elements, 3)

	assert.Equal(t, models.TypeRef{Path: []string{"ReducerA"}, Self: true}, elements[0].Type)
	assert.Equal(t, models.TypeRef{Path: []string{"Feature", "Settings"}}, elements[1].Type)
	assert.Equal(t, models.TypeRef{
		Path:     []string{"Detail"},
		Generics: []models.TypeRef{{Path: []string{"Int"}}},
		Self:     true,
	}, elements[2].Type)
}

func TestParseInvocationLocations(t *testing.T) {
	base := errors.SourceLocation{File: "Root.swift", Line: 5, Column: 8}

	inv, err := ParseInvocation("#NavigationPath(42)", base)
	require.NoError(t, err)

	assert.Equal(t, base, inv.Location)
	require.Len(t, inv.Arguments, 1)
	assert.Equal(t, errors.SourceLocation{File: "Root.swift", Line: 5, Column: 24}, inv.Arguments[0].Location)
	assert.Equal(t, ExprLiteral, inv.Arguments[0].Expr.Kind)

	inv, err = ParseInvocation("#NavigationPathView(\n  Root.self,\n  [A.self]\n)", base)
	require.NoError(t, err)
	assert.Equal(t, errors.SourceLocation{File: "Root.swift", Line: 6, Column: 3}, inv.Arguments[0].Location)
	assert.Equal(t, errors.SourceLocation{File: "Root.swift", Line: 7, Column: 3}, inv.Arguments[1].Location)
}

func TestParseInvocationErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		macro string
	}{
		{"unclosed list", "#NavigationPath([ReducerA.self", "NavigationPath"},
		{"missing hash", "NavigationPath([ReducerA.self])", "NavigationPath"},
		{"trailing tokens", "#NavigationPath([ReducerA.self]) extra", "NavigationPath"},
		{"member after generics", "#NavigationPath([Detail<Int>.Nested])", "NavigationPath"},
		{"self generic argument", "#NavigationPath([Detail<Int.self>])", "NavigationPath"},
		{"bare self", "#NavigationPath([self])", "NavigationPath"},
		{"repeated self", "#NavigationPath([A.self.self])", "NavigationPath"},
		{"self inside path", "#NavigationPath([A.self.B])", "NavigationPath"},
		{"self before generics", "#NavigationPath([A.self.Detail<Int>])", "NavigationPath"},
		{"root with repeated self", "#NavigationPathView(Root.self.self, [A.self])", "NavigationPathView"},
		{"unknown punctuation", "#NavigationPath([ReducerA.self; ReducerB.self])", "NavigationPath"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv, err := ParseInvocation(tt.input, errors.SourceLocation{File: "Root.swift", Line: 3, Column: 5})
			require.Error(t, err)
			assert.Nil(t, inv)
			assert.True(t, stderrors.Is(err, errors.ErrInvalidMacroArgument), "got %v", err)
			assert.Contains(t, err.Error(), "#"+tt.macro)
			assert.Contains(t, err.Error(), "Root.swift:3:")
		})
	}
}

func TestInvocation_StringIsCanonical(t *testing.T) {
	compact, err := ParseInvocation("#NavigationPathView(root:Root.self,[A.self,B<C>.self])", errors.SourceLocation{})
	require.NoError(t, err)
	spread, err := ParseInvocation("#NavigationPathView(\n  root: Root.self,\n  [ A.self , B< C >.self ]\n)", errors.SourceLocation{})
	require.NoError(t, err)

	assert.Equal(t, "#NavigationPathView(root: Root.self, [A.self, B<C>.self])", compact.String())
	assert.Equal(t, compact.String(), spread.String())
}
