package traits

import (
	"github.com/tocin-lang/tocin/internal/ast"
	"github.com/tocin-lang/tocin/internal/types"
)

// Source identifies where a resolved method body came from, so
// internal/lower can decide whether a call needs dictionary-passing
// (SourceSuperDefault/SourceDynamic) or is a plain static call
// (SourceDirectImpl/SourceExtension).
type Source int

const (
	// SourceDirectImpl is a method found on a direct `impl Trait for
	// Target` (no super-trait traversal needed).
	SourceDirectImpl Source = iota
	// SourceSuperDefault is a trait's own default body, inherited
	// because the concrete impl left it unimplemented.
	SourceSuperDefault
	// SourceDynamic is a method found through a TraitObject's dynamic
	// dispatch table (the method's home trait, resolved at runtime by
	// the dictionary matching the object's concrete type).
	SourceDynamic
	// SourceExtension is an extension method, never eligible to satisfy
	// a generic trait bound.
	SourceExtension
)

// Resolution is the result of resolving receiver.method(args...).
type Resolution struct {
	Source Source
	Trait  string // "" for SourceExtension
	Method *ast.FuncDecl
	// Default is set instead of Method when the trait method body is a
	// default expression rather than a full func decl (SourceSuperDefault
	// with no concrete override).
	Default *ast.TraitMethod
}

// Resolve implements the four-step method resolution order:
//  1. Concrete-type direct impls, then that impl's trait's super-trait
//     defaults recursively.
//  2. TraitObject(Tr) receivers: the trait's own method table (dynamic
//     dispatch) — resolved to a Source of SourceDynamic; the concrete
//     call target is filled in at runtime from the object's carried
//     impl, not here.
//  3. The extension-method registry.
//  4. Otherwise, ok is false and the caller reports T003
//     (UNDEFINED_FUNCTION_OR_METHOD).
func (r *Registry) Resolve(receiver types.Type, method string) (Resolution, bool) {
	if trObj, isTrait := receiver.(*types.TraitObject); isTrait {
		if res, ok := r.resolveDynamic(trObj.Trait, method); ok {
			return res, true
		}
	} else if res, ok := r.resolveConcrete(receiver, method); ok {
		return res, true
	}

	if byName, ok := r.extensions[receiver.String()]; ok {
		if m, ok := byName[method]; ok {
			return Resolution{Source: SourceExtension, Method: m}, true
		}
	}

	return Resolution{}, false
}

// resolveConcrete walks every trait the concrete type has a registered
// impl for, preferring a direct method override before falling back to
// that trait's (or its super-traits') default body.
func (r *Registry) resolveConcrete(t types.Type, method string) (Resolution, bool) {
	byTrait, ok := r.impls[t.String()]
	if !ok {
		return Resolution{}, false
	}
	for traitName, impl := range byTrait {
		if fn, ok := impl.Methods[method]; ok {
			return Resolution{Source: SourceDirectImpl, Trait: traitName, Method: fn}, true
		}
		if trait, ok := r.traits[traitName]; ok {
			if res, ok := r.resolveDefault(trait, method); ok {
				return res, true
			}
		}
	}
	return Resolution{}, false
}

// resolveDefault searches trait and its super-traits (depth-first) for a
// method with a default body.
func (r *Registry) resolveDefault(trait *Trait, method string) (Resolution, bool) {
	if m, ok := trait.Methods[method]; ok && m.Default != nil {
		return Resolution{Source: SourceSuperDefault, Trait: trait.Name, Default: m}, true
	}
	for _, superName := range trait.SuperTraits {
		if super, ok := r.traits[superName]; ok {
			if res, ok := r.resolveDefault(super, method); ok {
				return res, true
			}
		}
	}
	return Resolution{}, false
}

// resolveDynamic looks up method on traitName's own table (and its
// super-traits), for a TraitObject receiver. The actual call still
// dispatches through whichever concrete impl backs the object at
// runtime; this only confirms the trait defines (or defaults) the
// method being called, which is what static checking needs.
func (r *Registry) resolveDynamic(traitName, method string) (Resolution, bool) {
	trait, ok := r.traits[traitName]
	if !ok {
		return Resolution{}, false
	}
	if m, ok := trait.Methods[method]; ok {
		return Resolution{Source: SourceDynamic, Trait: traitName, Default: m}, true
	}
	for _, superName := range trait.SuperTraits {
		if res, ok := r.resolveDynamic(superName, method); ok {
			return res, true
		}
	}
	return Resolution{}, false
}
