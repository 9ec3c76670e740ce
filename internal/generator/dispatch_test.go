package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/navgen/internal/models"
	"github.com/toyz/navgen/internal/naming"
)

func TestBuildDispatchSingleArm(t *testing.T) {
	decl := BuildDispatch(models.NewTypeRef("Root"), modulesOf("ReducerA"), models.DefaultGenerationOptions())

	assert.Equal(t, []string{"private"}, decl.Modifiers)
	assert.Equal(t, "destination", decl.Name)
	assert.Equal(t, "Root", decl.Root.String())
	assert.Equal(t, []models.Param{{Label: "state", Type: "Root.Path.State"}}, decl.Params)
	assert.Equal(t, "some View", decl.Result)
	assert.Equal(t, "state", decl.Subject)
	assert.Equal(t, []models.SwitchArm{{
		Tag:             "reducerA",
		Wrapper:         "CaseLet",
		StatePath:       "Root.Path.State.reducerA",
		ActionPath:      "Root.Path.Action.reducerA",
		ViewConstructor: "ReducerAView.init",
	}}, decl.Arms)
}

func TestBuildDispatchArmOrder(t *testing.T) {
	names := []string{"Search", "feed", "Profile", "Search"}
	decl := BuildDispatch(models.NewTypeRef("RootReducer"), modulesOf(names...), models.GenerationOptions{})

	require.Len(t, decl.Arms, len(names))
	for i, name := range names {
		assert.Equal(t, naming.LowercaseFirst(name), decl.Arms[i].Tag)
		assert.Equal(t, name+"View.init", decl.Arms[i].ViewConstructor)
	}
}

func TestBuildDispatchCustomOptions(t *testing.T) {
	opts := models.GenerationOptions{
		Wrapper:         "SwitchStore",
		ViewSuffix:      "Screen",
		ViewInitializer: "init(store:)",
	}
	decl := BuildDispatch(models.NewTypeRef("App.Root"), modulesOf("ReducerA"), opts)

	require.Len(t, decl.Arms, 1)
	assert.Equal(t, "SwitchStore", decl.Arms[0].Wrapper)
	assert.Equal(t, "App.Root.Path.State.reducerA", decl.Arms[0].StatePath)
	assert.Equal(t, "App.Root.Path.Action.reducerA", decl.Arms[0].ActionPath)
	assert.Equal(t, "ReducerAScreen.init(store:)", decl.Arms[0].ViewConstructor)
	assert.Equal(t, "App.Root.Path.State", decl.Params[0].Type)
}

func TestBuildDispatchGenericModuleView(t *testing.T) {
	module := models.TypeRef{Path: []string{"Feature", "Detail"}, Generics: []models.TypeRef{models.NewTypeRef("Int")}}
	decl := BuildDispatch(models.NewTypeRef("Root"), models.ModuleList{module}, models.DefaultGenerationOptions())

	assert.Equal(t, "detail", decl.Arms[0].Tag)
	assert.Equal(t, "Feature.DetailView<Int>.init", decl.Arms[0].ViewConstructor)
}
