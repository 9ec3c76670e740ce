package generator

import (
	"github.com/toyz/navgen/internal/macro"
	"github.com/toyz/navgen/internal/models"
)

// CodeGenerator defines the two declaration-producing entry points
type CodeGenerator interface {
	GenerateUnionPath(inv *macro.Invocation) ([]models.Decl, error)
	GenerateDispatch(inv *macro.Invocation) ([]models.Decl, error)
}
