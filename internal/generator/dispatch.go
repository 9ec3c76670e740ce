package generator

import (
	"github.com/toyz/navgen/internal/models"
)

// BuildDispatch builds the destination function switching over root's
// Path.State, one arm per module in input order.
func BuildDispatch(root models.TypeRef, modules models.ModuleList, options models.GenerationOptions) *models.FuncDecl {
	options = options.WithDefaults()
	statePath := root.Member(pathName) + "." + stateUnionName
	actionPath := root.Member(pathName) + "." + actionUnionName

	decl := &models.FuncDecl{
		Modifiers: []string{"private"},
		Name:      destinationName,
		Root:      root,
		Params:    []models.Param{{Label: destinationParam, Type: statePath}},
		Result:    "some View",
		Subject:   destinationParam,
		Arms:      make([]models.SwitchArm, 0, len(modules)),
	}

	for _, module := range modules {
		tag := VariantTag(module)
		decl.Arms = append(decl.Arms, models.SwitchArm{
			Tag:             tag,
			Wrapper:         options.Wrapper,
			StatePath:       statePath + "." + tag,
			ActionPath:      actionPath + "." + tag,
			ViewConstructor: module.WithSuffix(options.ViewSuffix).Member(options.ViewInitializer),
		})
	}

	return decl
}
