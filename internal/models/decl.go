package models

// DeclKind identifies the shape of a synthesized declaration
type DeclKind int

const (
	DeclKindStruct DeclKind = iota
	DeclKindFunc
)

// String returns the string representation of the declaration kind
func (k DeclKind) String() string {
	switch k {
	case DeclKindStruct:
		return "struct"
	case DeclKindFunc:
		return "func"
	default:
		return "unknown"
	}
}

// Decl is a synthesized declaration ready to be rendered
type Decl interface {
	DeclKind() DeclKind
	DeclName() string
}

// UnionCase is one variant of a tagged union
type UnionCase struct {
	Tag     string // variant tag, e.g. reducerA
	Payload string // payload type, e.g. ReducerA.State
}

// UnionDecl represents a tagged union (a Swift enum with associated values)
type UnionDecl struct {
	Name         string      // name of the union
	Conformances []string    // protocols the union conforms to
	Cases        []UnionCase // variants in declaration order
}

// ScopeBinding wires one union variant to its module's default-constructed reducer
type ScopeBinding struct {
	Tag         string // variant tag shared by both unions
	StateUnion  string // name of the state union
	ActionUnion string // name of the action union
	Constructor string // type whose default initializer is called
}

// ComputedProperty is the composition body of the aggregate
type ComputedProperty struct {
	Name     string         // property name, e.g. body
	Type     string         // declared type, e.g. some ReducerOf<Self>
	Bindings []ScopeBinding // bindings in input order
}

// StructDecl is the aggregate declaration produced by the union path generator
type StructDecl struct {
	Name         string           // name of the aggregate, always Path
	Conformances []string         // protocols the aggregate conforms to
	State        UnionDecl        // state union, one variant per module
	Action       UnionDecl        // action union, one variant per module
	Body         ComputedProperty // composition body
}

// DeclKind implements Decl
func (d *StructDecl) DeclKind() DeclKind { return DeclKindStruct }

// DeclName implements Decl
func (d *StructDecl) DeclName() string { return d.Name }

// Param is a labelled function parameter
type Param struct {
	Label string // argument label and parameter name
	Type  string // parameter type
}

// SwitchArm is one conditional arm of the dispatch function
type SwitchArm struct {
	Tag             string // variant tag matched by the arm
	Wrapper         string // wrapping view, e.g. CaseLet
	StatePath       string // state case path, rendered after a leading slash
	ActionPath      string // action case constructor
	ViewConstructor string // view initializer reference
}

// FuncDecl is the dispatch function produced by the dispatch generator
type FuncDecl struct {
	Modifiers []string    // declaration modifiers, e.g. private
	Name      string      // function name, always destination
	Root      TypeRef     // root module whose Path.State is switched over
	Params    []Param     // parameters
	Result    string      // result type
	Subject   string      // expression switched over
	Arms      []SwitchArm // arms in input order
}

// DeclKind implements Decl
func (d *FuncDecl) DeclKind() DeclKind { return DeclKindFunc }

// DeclName implements Decl
func (d *FuncDecl) DeclName() string { return d.Name }
