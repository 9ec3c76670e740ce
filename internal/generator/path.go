package generator

import (
	"github.com/toyz/navgen/internal/models"
	"github.com/toyz/navgen/internal/naming"
)

// BuildUnionPath builds the Path aggregate for modules, keeping their order.
// Duplicate modules produce duplicate cases; the Swift compiler rejects those.
func BuildUnionPath(modules models.ModuleList) *models.StructDecl {
	decl := &models.StructDecl{
		Name:         pathName,
		Conformances: []string{"Reducer"},
		State: models.UnionDecl{
			Name:         stateUnionName,
			Conformances: []string{"Equatable"},
			Cases:        make([]models.UnionCase, 0, len(modules)),
		},
		Action: models.UnionDecl{
			Name:  actionUnionName,
			Cases: make([]models.UnionCase, 0, len(modules)),
		},
		Body: models.ComputedProperty{
			Name:     bodyName,
			Type:     "some ReducerOf<Self>",
			Bindings: make([]models.ScopeBinding, 0, len(modules)),
		},
	}

	for _, module := range modules {
		tag := VariantTag(module)
		decl.State.Cases = append(decl.State.Cases, models.UnionCase{
			Tag:     tag,
			Payload: module.Member(stateUnionName),
		})
		decl.Action.Cases = append(decl.Action.Cases, models.UnionCase{
			Tag:     tag,
			Payload: module.Member(actionUnionName),
		})
		decl.Body.Bindings = append(decl.Body.Bindings, models.ScopeBinding{
			Tag:         tag,
			StateUnion:  stateUnionName,
			ActionUnion: actionUnionName,
			Constructor: naming.CapitalizeFirst(module.String()),
		})
	}

	return decl
}
