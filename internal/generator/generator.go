package generator

import (
	"github.com/toyz/navgen/internal/macro"
	"github.com/toyz/navgen/internal/models"
	"github.com/toyz/navgen/internal/naming"
)

// Macro names handled by the generator
const (
	PathMacro     = "NavigationPath"
	PathViewMacro = "NavigationPathView"
)

// Names used in the generated declarations
const (
	pathName         = "Path"
	stateUnionName   = "State"
	actionUnionName  = "Action"
	bodyName         = "body"
	destinationName  = "destination"
	destinationParam = "state"
)

// Generator implements the CodeGenerator interface
type Generator struct {
	options models.GenerationOptions
}

var _ CodeGenerator = (*Generator)(nil)

// NewGenerator creates a generator using the default options
func NewGenerator() *Generator {
	return NewGeneratorWithOptions(models.DefaultGenerationOptions())
}

// NewGeneratorWithOptions creates a generator with custom naming options
func NewGeneratorWithOptions(options models.GenerationOptions) *Generator {
	return &Generator{options: options.WithDefaults()}
}

// GenerateUnionPath validates the invocation and builds the Path aggregate
func (g *Generator) GenerateUnionPath(inv *macro.Invocation) ([]models.Decl, error) {
	modules, err := macro.ModuleListArgument(inv, 0)
	if err != nil {
		return nil, err
	}
	return []models.Decl{BuildUnionPath(modules)}, nil
}

// GenerateDispatch validates the invocation and builds the destination function
func (g *Generator) GenerateDispatch(inv *macro.Invocation) ([]models.Decl, error) {
	root, err := macro.RootArgument(inv)
	if err != nil {
		return nil, err
	}
	modules, err := macro.ModuleListArgument(inv, -1)
	if err != nil {
		return nil, err
	}
	return []models.Decl{BuildDispatch(root, modules, g.options)}, nil
}

// RegisterBuiltinMacros registers the NavigationPath and NavigationPathView
// expanders. Each expansion uses the options carried by its context.
func RegisterBuiltinMacros(r macro.Registry) error {
	if err := r.Register(PathMacro, macro.ExpanderFunc(func(ctx macro.ExpansionContext, inv *macro.Invocation) ([]models.Decl, error) {
		return NewGeneratorWithOptions(ctx.Options).GenerateUnionPath(inv)
	})); err != nil {
		return err
	}
	return r.Register(PathViewMacro, macro.ExpanderFunc(func(ctx macro.ExpansionContext, inv *macro.Invocation) ([]models.Decl, error) {
		return NewGeneratorWithOptions(ctx.Options).GenerateDispatch(inv)
	}))
}

// NewBuiltinRegistry returns a registry holding the built-in macros
func NewBuiltinRegistry() macro.Registry {
	r := macro.NewRegistry()
	if err := RegisterBuiltinMacros(r); err != nil {
		// a fresh registry cannot hold duplicates
		panic(err)
	}
	return r
}

// VariantTag derives the union case name for a module: its own type name
// with the first letter lowercased. Qualified references use only the last
// segment, so Feature.Home becomes home; lowercasing the whole dotted name
// would give feature.Home, which Swift rejects as a case name.
func VariantTag(module models.TypeRef) string {
	return naming.LowercaseFirst(module.BaseName())
}
