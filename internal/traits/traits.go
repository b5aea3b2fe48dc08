// Package traits implements the trait/impl registry: registration of
// trait declarations and their implementations, method resolution for
// receiver.method(args...) calls, and generic bound satisfaction. It
// deliberately has no notion of a global constraint solver — every
// question it answers (does T implement Trait? which FuncDecl backs
// this call?) is a direct lookup or a short, fixed traversal of
// super-traits, matching the local bottom-up design internal/check
// relies on.
package traits

import (
	"fmt"

	"github.com/tocin-lang/tocin/internal/ast"
	"github.com/tocin-lang/tocin/internal/diag"
	"github.com/tocin-lang/tocin/internal/types"
)

// Trait is a registered trait declaration: its super-traits (by name)
// and its method signatures, some of which may carry a default body.
type Trait struct {
	Name        string
	TypeParam   string
	SuperTraits []string
	Methods     map[string]*ast.TraitMethod
	Decl        *ast.TraitDecl
}

// Impl is a registered `impl Trait for Target`.
type Impl struct {
	Trait   string
	Target  types.Type
	Methods map[string]*ast.FuncDecl
	Decl    *ast.ImplDecl
}

// Registry holds every trait, impl, and extension method known to a
// compilation unit, and answers resolution/bound-satisfaction queries
// against them.
type Registry struct {
	traits map[string]*Trait
	// impls is keyed by target-type string then trait name, mirroring
	// the teacher's typeName -> traitName -> impl nesting.
	impls map[string]map[string]*Impl
	// extensions is keyed by target-type string then method name; these
	// participate in ordinary method-call resolution only, never in
	// bound satisfaction (Open Question resolution 3).
	extensions map[string]map[string]*ast.FuncDecl
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		traits:     make(map[string]*Trait),
		impls:      make(map[string]map[string]*Impl),
		extensions: make(map[string]map[string]*ast.FuncDecl),
	}
}

// RegisterTrait adds decl to the registry. A duplicate name is a T004
// (undefined/conflicting type reference) diagnostic on sink; the
// earlier registration is kept.
func (r *Registry) RegisterTrait(decl *ast.TraitDecl, sink *diag.Sink) bool {
	if _, exists := r.traits[decl.Name]; exists {
		sink.Emit(diag.New("T004", fmt.Sprintf("trait %q already defined", decl.Name), diag.At("", decl.Pos.Line, decl.Pos.Column)))
		return false
	}
	methods := make(map[string]*ast.TraitMethod, len(decl.Methods))
	for _, m := range decl.Methods {
		methods[m.Name] = m
	}
	r.traits[decl.Name] = &Trait{
		Name:        decl.Name,
		TypeParam:   decl.TypeParam,
		SuperTraits: decl.SuperTraits,
		Methods:     methods,
		Decl:        decl,
	}
	return true
}

// RegisterImpl adds decl's implementation of decl.Trait for decl.Target.
// It fails (emitting a diagnostic) if the trait is undefined (T004), if
// the type already implements that trait (T001, coherence), or if the
// implementation is missing a non-defaulted method (T003).
func (r *Registry) RegisterImpl(decl *ast.ImplDecl, target types.Type, sink *diag.Sink) bool {
	trait, ok := r.traits[decl.Trait]
	if !ok {
		sink.Emit(diag.New("T004", fmt.Sprintf("cannot implement undefined trait %q", decl.Trait), diag.At("", decl.Pos.Line, decl.Pos.Column)))
		return false
	}

	key := target.String()
	if r.impls[key] == nil {
		r.impls[key] = make(map[string]*Impl)
	}
	if _, exists := r.impls[key][decl.Trait]; exists {
		sink.Emit(diag.New("T001", fmt.Sprintf("type %q already implements trait %q", key, decl.Trait), diag.At("", decl.Pos.Line, decl.Pos.Column)))
		return false
	}

	methods := make(map[string]*ast.FuncDecl, len(decl.Methods))
	for _, m := range decl.Methods {
		methods[m.Name] = m
	}
	if !r.verifyComplete(trait, methods, decl, sink) {
		return false
	}

	r.impls[key][decl.Trait] = &Impl{
		Trait:   decl.Trait,
		Target:  target,
		Methods: methods,
		Decl:    decl,
	}
	return true
}

// verifyComplete checks that every trait method lacking a default body
// has a matching implementation with a structurally identical signature
// (types.Equal on each parameter and the return type).
func (r *Registry) verifyComplete(trait *Trait, implMethods map[string]*ast.FuncDecl, decl *ast.ImplDecl, sink *diag.Sink) bool {
	ok := true
	for name, sig := range trait.allMethods(r) {
		impl, has := implMethods[name]
		if !has {
			if sig.Default != nil {
				continue
			}
			sink.Emit(diag.New("T003", fmt.Sprintf("impl %s for %s is missing method %q", decl.Trait, decl.Target, name), diag.At("", decl.Pos.Line, decl.Pos.Column)))
			ok = false
			continue
		}
		if !signaturesMatch(sig, impl) {
			sink.Emit(diag.New("T001", fmt.Sprintf("method %q of impl %s for %s does not match the trait's signature", name, decl.Trait, decl.Target), diag.At("", impl.Pos.Line, impl.Pos.Column)))
			ok = false
		}
	}
	return ok
}

// allMethods collects trait's own methods plus every super-trait's,
// recursively, so a sub-trait impl is checked against the full set it
// must satisfy.
func (t *Trait) allMethods(r *Registry) map[string]*ast.TraitMethod {
	all := make(map[string]*ast.TraitMethod, len(t.Methods))
	for name, m := range t.Methods {
		all[name] = m
	}
	for _, superName := range t.SuperTraits {
		super, ok := r.traits[superName]
		if !ok {
			continue
		}
		for name, m := range super.allMethods(r) {
			if _, exists := all[name]; !exists {
				all[name] = m
			}
		}
	}
	return all
}

// signaturesMatch reports whether impl's parameter/return shape matches
// sig's declared arity. Types are compared positionally by their surface
// ast.Type.String() form, since the ast-level TraitMethod predates any
// resolved types.Type; internal/check re-validates with resolved types
// once it has them in scope.
func signaturesMatch(sig *ast.TraitMethod, impl *ast.FuncDecl) bool {
	if len(sig.Params) != len(impl.Params) {
		return false
	}
	for i, p := range sig.Params {
		if p.Type != nil && impl.Params[i].Type != nil && p.Type.String() != impl.Params[i].Type.String() {
			return false
		}
	}
	if sig.Return != nil && impl.ReturnType != nil && sig.Return.String() != impl.ReturnType.String() {
		return false
	}
	return true
}

// RegisterExtension adds an extension method to the registry. Extension
// methods are consulted only by Resolve (method-call resolution), never
// by Satisfies (bound discharge) — see DESIGN.md Open Question 3.
func (r *Registry) RegisterExtension(decl *ast.ExtensionDecl, target types.Type) {
	key := target.String()
	if r.extensions[key] == nil {
		r.extensions[key] = make(map[string]*ast.FuncDecl)
	}
	for _, m := range decl.Methods {
		r.extensions[key][m.Name] = m
	}
}

// Implements reports whether t has a registered impl of trait (directly
// or via a super-trait of that impl's trait chain is not considered —
// an impl is registered against the trait it names, and a sub-trait impl
// does not automatically make its target implement the super-trait;
// callers that need "implements Display because it implements
// PrettyDisplay: Display" should register both impls explicitly, matching
// how original_source/traits_*.h keeps impls keyed strictly by the
// trait named in the impl header).
func (r *Registry) Implements(t types.Type, trait string) bool {
	byTrait, ok := r.impls[t.String()]
	if !ok {
		return false
	}
	_, ok = byTrait[trait]
	return ok
}

// Satisfies discharges a single TraitBoundConstraint against a concrete
// argument type, returning the name of the first unmet trait (for a
// T001 diagnostic) or "" if every bound is met.
func (r *Registry) Satisfies(arg types.Type, bound *types.TraitBoundConstraint) string {
	for _, trait := range bound.Traits {
		if !r.Implements(arg, trait) {
			return trait
		}
	}
	return ""
}

// Lookup returns the registered Impl of trait for t, if any.
func (r *Registry) Lookup(t types.Type, trait string) (*Impl, bool) {
	byTrait, ok := r.impls[t.String()]
	if !ok {
		return nil, false
	}
	impl, ok := byTrait[trait]
	return impl, ok
}

// Trait returns the registered trait declaration by name.
func (r *Registry) Trait(name string) (*Trait, bool) {
	tr, ok := r.traits[name]
	return tr, ok
}
