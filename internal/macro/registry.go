package macro

import (
	"fmt"
	"sort"
	"sync"

	"github.com/toyz/navgen/internal/errors"
	"github.com/toyz/navgen/internal/models"
)

// ExpansionContext carries what an expander may know about its call site
type ExpansionContext struct {
	Location errors.SourceLocation   // position of the invocation
	Options  models.GenerationOptions // naming options for the emitted code
}

// Expander turns a validated invocation into declarations
type Expander interface {
	Expand(ctx ExpansionContext, inv *Invocation) ([]models.Decl, error)
}

// ExpanderFunc adapts a function to the Expander interface
type ExpanderFunc func(ctx ExpansionContext, inv *Invocation) ([]models.Decl, error)

// Expand implements Expander
func (f ExpanderFunc) Expand(ctx ExpansionContext, inv *Invocation) ([]models.Decl, error) {
	return f(ctx, inv)
}

// Registry maps macro names to their expanders
type Registry interface {
	// Register adds an expander for a macro name
	Register(name string, expander Expander) error

	// Lookup returns the expander registered for name
	Lookup(name string) (Expander, bool)

	// Names returns all registered macro names, sorted
	Names() []string

	// Expand dispatches an invocation to its expander
	Expand(ctx ExpansionContext, inv *Invocation) ([]models.Decl, error)
}

// registry is the concrete implementation of Registry
type registry struct {
	mu        sync.RWMutex
	expanders map[string]Expander
}

// NewRegistry creates an empty macro registry
func NewRegistry() Registry {
	return &registry{
		expanders: make(map[string]Expander),
	}
}

// Register adds an expander for a macro name
func (r *registry) Register(name string, expander Expander) error {
	if name == "" {
		return errors.New(errors.RegistrationErrorCode, "macro name cannot be empty")
	}
	if expander == nil {
		return errors.Newf(errors.RegistrationErrorCode, "expander for #%s cannot be nil", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.expanders[name]; exists {
		return errors.Newf(errors.RegistrationErrorCode, "macro #%s is already registered", name)
	}

	r.expanders[name] = expander
	return nil
}

// Lookup returns the expander registered for name
func (r *registry) Lookup(name string) (Expander, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	expander, exists := r.expanders[name]
	return expander, exists
}

// Names returns all registered macro names, sorted
func (r *registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.expanders))
	for name := range r.expanders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Expand dispatches an invocation to its expander. Emission is all-or-nothing:
// on error no declarations are returned.
func (r *registry) Expand(ctx ExpansionContext, inv *Invocation) ([]models.Decl, error) {
	expander, ok := r.Lookup(inv.Name)
	if !ok {
		return nil, errors.UnknownMacro(inv.Name, r.Names()).WithLocation(inv.Location)
	}

	if ctx.Location.IsEmpty() {
		ctx.Location = inv.Location
	}
	ctx.Options = ctx.Options.WithDefaults()

	decls, err := expander.Expand(ctx, inv)
	if err != nil {
		return nil, err
	}
	if len(decls) == 0 {
		return nil, errors.InvalidMacroArgument(inv.Name, fmt.Sprintf("expander for #%s produced no declaration", inv.Name)).
			WithLocation(inv.Location)
	}
	return decls, nil
}
