package generator

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/navgen/internal/errors"
	"github.com/toyz/navgen/internal/macro"
	"github.com/toyz/navgen/internal/models"
)

func parse(t *testing.T, src string) *macro.Invocation {
	t.Helper()
	inv, err := macro.ParseInvocation(src, errors.SourceLocation{File: "Root.swift", Line: 1, Column: 1})
	require.NoError(t, err)
	return inv
}

func TestGenerateUnionPath(t *testing.T) {
	decls, err := NewGenerator().GenerateUnionPath(parse(t, "#NavigationPath([ReducerA.self, ReducerB.self])"))
	require.NoError(t, err)
	require.Len(t, decls, 1)

	decl, ok := decls[0].(*models.StructDecl)
	require.True(t, ok)
	assert.Equal(t, models.DeclKindStruct, decl.DeclKind())
	assert.Equal(t, "Path", decl.DeclName())
	assert.Equal(t, []string{"ReducerA.State", "ReducerB.State"},
		[]string{decl.State.Cases[0].Payload, decl.State.Cases[1].Payload})
}

func TestGenerateDispatch(t *testing.T) {
	decls, err := NewGenerator().GenerateDispatch(parse(t, "#NavigationPathView(root: Root.self, [ReducerA.self])"))
	require.NoError(t, err)
	require.Len(t, decls, 1)

	decl, ok := decls[0].(*models.FuncDecl)
	require.True(t, ok)
	assert.Equal(t, models.DeclKindFunc, decl.DeclKind())
	assert.Equal(t, "Root.Path.State", decl.Params[0].Type)
	require.Len(t, decl.Arms, 1)
	assert.Equal(t, "reducerA", decl.Arms[0].Tag)
}

func TestGenerateRejectsInvalidArguments(t *testing.T) {
	gen := NewGenerator()
	tests := []struct {
		name     string
		input    string
		generate func(*macro.Invocation) ([]models.Decl, error)
	}{
		{"union path empty list", "#NavigationPath([])", gen.GenerateUnionPath},
		{"union path no argument", "#NavigationPath()", gen.GenerateUnionPath},
		{"union path not a list", "#NavigationPath(ReducerA.self)", gen.GenerateUnionPath},
		{"dispatch empty list", "#NavigationPathView(root: Root.self, [])", gen.GenerateDispatch},
		{"dispatch missing root", "#NavigationPathView([ReducerA.self])", gen.GenerateDispatch},
		{"dispatch list as root", "#NavigationPathView([Root.self], [ReducerA.self])", gen.GenerateDispatch},
		{"dispatch list not last", "#NavigationPathView([ReducerA.self], Root.self)", gen.GenerateDispatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decls, err := tt.generate(parse(t, tt.input))
			require.Error(t, err)
			assert.Nil(t, decls)
			assert.True(t, stderrors.Is(err, errors.ErrInvalidMacroArgument))
		})
	}
}

func TestGenerateUnionPathAcceptsDuplicates(t *testing.T) {
	decls, err := NewGenerator().GenerateUnionPath(parse(t, "#NavigationPath([ReducerA.self, ReducerA.self])"))
	require.NoError(t, err)

	decl := decls[0].(*models.StructDecl)
	require.Len(t, decl.State.Cases, 2)
	assert.Equal(t, decl.State.Cases[0], decl.State.Cases[1])
}

func TestBuiltinRegistry(t *testing.T) {
	r := NewBuiltinRegistry()
	assert.Equal(t, []string{PathMacro, PathViewMacro}, r.Names())

	ctx := macro.ExpansionContext{Options: models.GenerationOptions{ViewInitializer: "init(store:)"}}
	decls, err := r.Expand(ctx, parse(t, "#NavigationPathView(path: Root, [ReducerA.self])"))
	require.NoError(t, err)
	assert.Equal(t, "ReducerAView.init(store:)", decls[0].(*models.FuncDecl).Arms[0].ViewConstructor)

	decls, err = r.Expand(ctx, parse(t, "#NavigationPath([ReducerA.self])"))
	require.NoError(t, err)
	assert.Equal(t, "Path", decls[0].DeclName())

	assert.Error(t, RegisterBuiltinMacros(r))
}

func TestVariantTag(t *testing.T) {
	assert.Equal(t, "reducerA", VariantTag(models.NewTypeRef("ReducerA")))
	assert.Equal(t, "settings", VariantTag(models.NewTypeRef("Feature.Settings")))
	assert.Equal(t, "already", VariantTag(models.NewTypeRef("already")))
}
