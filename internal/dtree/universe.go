package dtree

import "github.com/tocin-lang/tocin/internal/ast"

// Universe is the full set of constructors a scrutinee type can take.
// Infinite domains (int, float, string, bytes) have no enumerable
// constructor set; only a wildcard or variable pattern can cover them.
type Universe struct {
	Constructors map[string]int // constructor name -> arity
	Infinite     bool
}

// Registry maps a scrutinee type name to its Universe. Built-in Bool,
// Option, and Result universes are seeded by NewRegistry; user
// algebraic types are added via RegisterAlgebraic as their TypeDecls
// are processed.
type Registry struct {
	universes map[string]Universe
}

// NewRegistry returns a Registry seeded with the built-in finite
// universes: bool (true/false), Option (Some/None), Result (Ok/Err).
func NewRegistry() *Registry {
	r := &Registry{universes: make(map[string]Universe)}
	r.universes["bool"] = Universe{Constructors: map[string]int{"true": 0, "false": 0}}
	r.universes["Option"] = Universe{Constructors: map[string]int{"Some": 1, "None": 0}}
	r.universes["Result"] = Universe{Constructors: map[string]int{"Ok": 1, "Err": 1}}
	for _, name := range []string{"int", "float", "string", "bytes"} {
		r.universes[name] = Universe{Infinite: true}
	}
	return r
}

// RegisterAlgebraic adds the constructor universe declared by an
// AlgebraicType TypeDecl (`type Name = C1(..) | C2(..) | ...`).
func (r *Registry) RegisterAlgebraic(name string, def *ast.AlgebraicType) {
	cons := make(map[string]int, len(def.Constructors))
	for _, c := range def.Constructors {
		cons[c.Name] = len(c.Fields)
	}
	r.universes[name] = Universe{Constructors: cons}
}

// Universe returns the registered universe for typeName, if any.
func (r *Registry) Universe(typeName string) (Universe, bool) {
	u, ok := r.universes[typeName]
	return u, ok
}
