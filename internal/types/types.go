// Package types implements the canonical type representation the
// middle-end reasons about: the Type sum, equality, substitution,
// canonicalization, and assignability. Hindley-Milner-style unification
// and typeclass dictionary resolution are deliberately not here — this
// package is a data model, not a solver; internal/check does local,
// bottom-up synthesis directly over this sum (see DESIGN.md).
package types

import (
	"sort"
	"strings"
)

// Type is implemented by every member of the canonical type sum:
// Primitive, Named, Function, Generic, Union, TypeParameter, TraitObject,
// RValueRef.
type Type interface {
	String() string
	Equal(other Type) bool
	typeNode()
}

// Primitive is a built-in scalar or unit type.
type Primitive struct {
	Name string
}

var (
	Int    = &Primitive{Name: "int"}
	Float  = &Primitive{Name: "float"}
	String = &Primitive{Name: "string"}
	Bool   = &Primitive{Name: "bool"}
	Unit   = &Primitive{Name: "unit"}
	Bytes  = &Primitive{Name: "bytes"}
	Nil    = &Primitive{Name: "nil"}
	// Invalid is the sentinel type the checker assigns to an expression
	// whose real type could not be determined, so that checking of the
	// rest of the unit can continue after an ERROR-severity diagnostic.
	Invalid = &Primitive{Name: "<invalid>"}
)

func (p *Primitive) String() string { return p.Name }
func (p *Primitive) typeNode()      {}
func (p *Primitive) Equal(other Type) bool {
	o, ok := other.(*Primitive)
	return ok && o.Name == p.Name
}

// Named is a reference to a user-declared, non-generic type (a record
// type, a zero-parameter algebraic type, or a type alias target).
type Named struct {
	Name string
}

func (n *Named) String() string { return n.Name }
func (n *Named) typeNode()      {}
func (n *Named) Equal(other Type) bool {
	o, ok := other.(*Named)
	return ok && o.Name == n.Name
}

// Function is a function type: parameter types, return type, the effect
// set the body may perform, and whether it is async (an async function's
// static type always returns Future<Return>, wrapped at the call site —
// see internal/lower/async.go).
type Function struct {
	Params  []Type
	Return  Type
	Effects EffectSet
	IsAsync bool
}

func (f *Function) String() string {
	parts := make([]string, len(f.Params))
	for i, p := range f.Params {
		parts[i] = p.String()
	}
	s := "(" + strings.Join(parts, ", ") + ") -> " + f.Return.String()
	if len(f.Effects) > 0 {
		s += " ! {" + f.Effects.String() + "}"
	}
	return s
}
func (f *Function) typeNode() {}
func (f *Function) Equal(other Type) bool {
	o, ok := other.(*Function)
	if !ok || len(o.Params) != len(f.Params) || o.IsAsync != f.IsAsync {
		return false
	}
	for i, p := range f.Params {
		if !p.Equal(o.Params[i]) {
			return false
		}
	}
	return f.Return.Equal(o.Return) && f.Effects.Equal(o.Effects)
}

// Generic is an instantiation of a generic type constructor, e.g.
// list<int> or Result<T, string>. Arity is len(Args); Equal requires
// exact argument-wise equality (no variance — see DESIGN.md Open
// Question 1 discussion).
type Generic struct {
	Name string
	Args []Type
}

func (g *Generic) String() string {
	parts := make([]string, len(g.Args))
	for i, a := range g.Args {
		parts[i] = a.String()
	}
	return g.Name + "<" + strings.Join(parts, ", ") + ">"
}
func (g *Generic) typeNode() {}
func (g *Generic) Equal(other Type) bool {
	o, ok := other.(*Generic)
	if !ok || o.Name != g.Name || len(o.Args) != len(g.Args) {
		return false
	}
	for i, a := range g.Args {
		if !a.Equal(o.Args[i]) {
			return false
		}
	}
	return true
}

// Union is a sum of member types, e.g. int | string. Canonicalize sorts
// Members by name, removes duplicates, and flattens nested unions; a
// Union built any other way is not in canonical form until Canonicalize
// is called on it.
type Union struct {
	Members []Type
}

func (u *Union) String() string {
	parts := make([]string, len(u.Members))
	for i, m := range u.Members {
		parts[i] = m.String()
	}
	return strings.Join(parts, " | ")
}
func (u *Union) typeNode() {}
func (u *Union) Equal(other Type) bool {
	cu := Canonicalize(u)
	co := Canonicalize(other)
	cuUnion, cuIsUnion := cu.(*Union)
	coUnion, coIsUnion := co.(*Union)
	if cuIsUnion != coIsUnion {
		return false
	}
	if !cuIsUnion {
		// Canonicalization collapsed a single-member union to that member.
		return cu.Equal(co)
	}
	if len(cuUnion.Members) != len(coUnion.Members) {
		return false
	}
	for i, m := range cuUnion.Members {
		if !m.Equal(coUnion.Members[i]) {
			return false
		}
	}
	return true
}

// TypeParameter is a reference to a generic type parameter, valid only
// within the scope of the declaration that introduced it (a FuncDecl's
// TypeParams or a TypeDecl's TypeParams). FreeTypeParams reports escapes.
type TypeParameter struct {
	Name string
}

func (t *TypeParameter) String() string { return t.Name }
func (t *TypeParameter) typeNode()      {}
func (t *TypeParameter) Equal(other Type) bool {
	o, ok := other.(*TypeParameter)
	return ok && o.Name == t.Name
}

// TraitObject is an existential "dyn Trait" type: any value whose
// concrete type implements Trait, dispatched dynamically through the
// trait's vtable (internal/traits).
type TraitObject struct {
	Trait string
}

func (t *TraitObject) String() string { return "dyn " + t.Trait }
func (t *TraitObject) typeNode()      {}
func (t *TraitObject) Equal(other Type) bool {
	o, ok := other.(*TraitObject)
	return ok && o.Trait == t.Trait
}

// RValueRef marks a move-only binding's declared type, e.g. a moved-in
// parameter (&&T in the surface syntax, ast.RValueRefType).
type RValueRef struct {
	Inner Type
}

func (r *RValueRef) String() string { return "&&" + r.Inner.String() }
func (r *RValueRef) typeNode()      {}
func (r *RValueRef) Equal(other Type) bool {
	o, ok := other.(*RValueRef)
	return ok && r.Inner.Equal(o.Inner)
}

// TraitBoundConstraint is not itself a value type; it appears only in
// generic-parameter declarations (Scheme.Bounds), recording that a
// TypeParameter must be discharged against one or more traits at
// instantiation time (internal/traits.Registry.Satisfies).
type TraitBoundConstraint struct {
	Param  string
	Traits []string
}

func (c *TraitBoundConstraint) String() string {
	return c.Param + ": " + strings.Join(c.Traits, " + ")
}

// Substitute replaces every TypeParameter named in subst with its mapped
// Type, recursively. Types with no TypeParameter occurrence are returned
// unchanged (by reference) as an optimization; callers must not rely on
// that for identity comparisons.
func Substitute(t Type, subst map[string]Type) Type {
	switch v := t.(type) {
	case *Primitive, *Named, *TraitObject:
		return t
	case *TypeParameter:
		if repl, ok := subst[v.Name]; ok {
			return repl
		}
		return t
	case *Function:
		params := make([]Type, len(v.Params))
		for i, p := range v.Params {
			params[i] = Substitute(p, subst)
		}
		return &Function{Params: params, Return: Substitute(v.Return, subst), Effects: v.Effects, IsAsync: v.IsAsync}
	case *Generic:
		args := make([]Type, len(v.Args))
		for i, a := range v.Args {
			args[i] = Substitute(a, subst)
		}
		return &Generic{Name: v.Name, Args: args}
	case *Union:
		members := make([]Type, len(v.Members))
		for i, m := range v.Members {
			members[i] = Substitute(m, subst)
		}
		return &Union{Members: members}
	case *RValueRef:
		return &RValueRef{Inner: Substitute(v.Inner, subst)}
	default:
		return t
	}
}

// FreeTypeParams returns the set of TypeParameter names occurring in t,
// sorted, with duplicates removed.
func FreeTypeParams(t Type) []string {
	seen := make(map[string]bool)
	collectFreeTypeParams(t, seen)
	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func collectFreeTypeParams(t Type, seen map[string]bool) {
	switch v := t.(type) {
	case *TypeParameter:
		seen[v.Name] = true
	case *Function:
		for _, p := range v.Params {
			collectFreeTypeParams(p, seen)
		}
		collectFreeTypeParams(v.Return, seen)
	case *Generic:
		for _, a := range v.Args {
			collectFreeTypeParams(a, seen)
		}
	case *Union:
		for _, m := range v.Members {
			collectFreeTypeParams(m, seen)
		}
	case *RValueRef:
		collectFreeTypeParams(v.Inner, seen)
	}
}
