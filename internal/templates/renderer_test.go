package templates

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/navgen/internal/errors"
	"github.com/toyz/navgen/internal/models"
)

func unionPathDecl() *models.StructDecl {
	return &models.StructDecl{
		Name:         "Path",
		Conformances: []string{"Reducer"},
		State: models.UnionDecl{
			Name:         "State",
			Conformances: []string{"Equatable"},
			Cases: []models.UnionCase{
				{Tag: "reducerA", Payload: "ReducerA.State"},
				{Tag: "reducerB", Payload: "ReducerB.State"},
			},
		},
		Action: models.UnionDecl{
			Name: "Action",
			Cases: []models.UnionCase{
				{Tag: "reducerA", Payload: "ReducerA.Action"},
				{Tag: "reducerB", Payload: "ReducerB.Action"},
			},
		},
		Body: models.ComputedProperty{
			Name: "body",
			Type: "some ReducerOf<Self>",
			Bindings: []models.ScopeBinding{
				{Tag: "reducerA", StateUnion: "State", ActionUnion: "Action", Constructor: "ReducerA"},
				{Tag: "reducerB", StateUnion: "State", ActionUnion: "Action", Constructor: "ReducerB"},
			},
		},
	}
}

func dispatchDecl() *models.FuncDecl {
	return &models.FuncDecl{
		Modifiers: []string{"private"},
		Name:      "destination",
		Root:      models.NewTypeRef("Root"),
		Params:    []models.Param{{Label: "state", Type: "Root.Path.State"}},
		Result:    "some View",
		Subject:   "state",
		Arms: []models.SwitchArm{{
			Tag:             "reducerA",
			Wrapper:         "CaseLet",
			StatePath:       "Root.Path.State.reducerA",
			ActionPath:      "Root.Path.Action.reducerA",
			ViewConstructor: "ReducerAView.init",
		}},
	}
}

const expectedUnionPath = `struct Path: Reducer {
    enum State: Equatable {
        case reducerA(ReducerA.State)
        case reducerB(ReducerB.State)
    }
    enum Action {
        case reducerA(ReducerA.Action)
        case reducerB(ReducerB.Action)
    }
    var body: some ReducerOf<Self> {
        Scope(state: /State.reducerA, action: /Action.reducerA) {
            ReducerA()
        }
        Scope(state: /State.reducerB, action: /Action.reducerB) {
            ReducerB()
        }
    }
}`

const expectedDispatch = `private func destination(state: Root.Path.State) -> some View {
    switch state {
    case .reducerA:
        return CaseLet(
            /Root.Path.State.reducerA,
            action: Root.Path.Action.reducerA,
            then: ReducerAView.init)
    }
}`

func TestRenderUnionPath(t *testing.T) {
	text, err := NewRenderer("").Render(unionPathDecl())
	require.NoError(t, err)
	assert.Equal(t, expectedUnionPath, text)
}

func TestRenderDispatch(t *testing.T) {
	text, err := NewRenderer(DefaultIndent).Render(dispatchDecl())
	require.NoError(t, err)
	assert.Equal(t, expectedDispatch, text)
}

func TestRenderWithTabs(t *testing.T) {
	text, err := NewRenderer("\t").Render(dispatchDecl())
	require.NoError(t, err)
	assert.Equal(t, "private func destination(state: Root.Path.State) -> some View {\n"+
		"\tswitch state {\n"+
		"\tcase .reducerA:\n"+
		"\t\treturn CaseLet(\n"+
		"\t\t\t/Root.Path.State.reducerA,\n"+
		"\t\t\taction: Root.Path.Action.reducerA,\n"+
		"\t\t\tthen: ReducerAView.init)\n"+
		"\t}\n"+
		"}", text)
}

func TestRenderAll(t *testing.T) {
	text, err := NewRenderer("  ").RenderAll([]models.Decl{dispatchDecl(), dispatchDecl()})
	require.NoError(t, err)

	single, err := NewRenderer("  ").Render(dispatchDecl())
	require.NoError(t, err)
	assert.Equal(t, single+"\n\n"+single, text)
	assert.Contains(t, single, "\n  switch state {")
}

type unknownDecl struct{}

func (unknownDecl) DeclKind() models.DeclKind { return models.DeclKind(9) }
func (unknownDecl) DeclName() string          { return "unknown" }

func TestRenderUnknownDecl(t *testing.T) {
	_, err := NewRenderer("").Render(unknownDecl{})
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.TemplateErrorCode))
}

func TestRenderBrokenRegistry(t *testing.T) {
	registry := &TemplateRegistry{templates: map[string]string{StructTemplate: "{{.Name"}}

	_, err := NewRendererWithRegistry(registry, "").Render(unionPathDecl())
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.TemplateErrorCode))
}

func TestRenderConcurrent(t *testing.T) {
	renderer := NewRenderer("")
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			text, err := renderer.Render(unionPathDecl())
			assert.NoError(t, err)
			assert.Equal(t, expectedUnionPath, text)
		}()
	}
	wg.Wait()
}

func TestIndentBlock(t *testing.T) {
	assert.Equal(t, "  a\n\n  b", IndentBlock("a\n\nb", "  "))
	assert.Equal(t, "a\nb", IndentBlock("a\nb", ""))
}

func TestTemplateRegistryCompiled(t *testing.T) {
	registry := NewTemplateRegistry()

	set, err := registry.Compiled()
	require.NoError(t, err)
	for _, name := range []string{StructTemplate, UnionTemplate, BodyTemplate, FuncTemplate, ArmTemplate} {
		assert.NotNil(t, set.Lookup(name), name)
	}
	assert.Nil(t, set.Lookup("missing"))
}
