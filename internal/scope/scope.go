// Package scope implements the nested lexical scopes shared by every
// middle-end pass that needs name resolution: the type checker binding
// variables and functions, the module loader binding imports, and the
// trait registry binding trait/impl names.
package scope

import (
	"fmt"

	"github.com/tocin-lang/tocin/internal/ast"
)

// Kind classifies what a Binding names.
type Kind int

const (
	VarKind Kind = iota
	FuncKind
	TypeKind
	TraitKind
	ModuleKind
)

func (k Kind) String() string {
	switch k {
	case VarKind:
		return "var"
	case FuncKind:
		return "func"
	case TypeKind:
		return "type"
	case TraitKind:
		return "trait"
	case ModuleKind:
		return "module"
	default:
		return "unknown"
	}
}

// Binding is one entry in a Scope: a name bound to a Kind-tagged value.
// Value is left untyped (interface{}) so this package has no dependency
// on internal/types or internal/check; callers type-assert on the Kind.
type Binding struct {
	Name    string
	Kind    Kind
	Value   interface{}
	Mutable bool
	Pos     ast.Pos
}

// reservedName is never an admissible binding name: it is reserved so
// that tooling can walk a serialized scope chain without a name
// collision with the parent pointer itself.
const reservedName = "__parent"

// DuplicateDefinitionError reports a second declaration of Name in a
// scope that already has one. Its Code is the diagnostic code the
// checker surfaces this as (M001).
type DuplicateDefinitionError struct {
	Name    string
	Pos     ast.Pos
	PriorAt ast.Pos
}

const DuplicateDefinitionCode = "M001"

func (e *DuplicateDefinitionError) Error() string {
	return fmt.Sprintf("%s: duplicate definition of %q (first declared at %s)", DuplicateDefinitionCode, e.Name, e.PriorAt)
}

// ReservedNameError reports an attempt to declare the reserved name.
type ReservedNameError struct {
	Pos ast.Pos
}

func (e *ReservedNameError) Error() string {
	return fmt.Sprintf("%q is a reserved name and cannot be declared (at %s)", reservedName, e.Pos)
}

// Scope is one node of the lexical scope tree. A Scope with a non-empty
// Qualifier is a module scope: every name it declares is additionally
// exposed in the root scope under "Qualifier$name", so ResolveQualified
// can find it from any other scope in the same compilation unit.
type Scope struct {
	Qualifier string
	bindings  map[string]*Binding
	parent    *Scope
	root      *Scope
}

// NewGlobal creates the single global scope for a compilation unit.
func NewGlobal() *Scope {
	s := &Scope{bindings: make(map[string]*Binding)}
	s.root = s
	return s
}

// Push opens an unnamed child scope (function body, block, lambda).
func (s *Scope) Push() *Scope {
	return &Scope{
		bindings: make(map[string]*Binding),
		parent:   s,
		root:     s.root,
	}
}

// PushModule opens a named child scope for a module body. Its bindings
// are mirrored into the root scope under "name$binding".
func (s *Scope) PushModule(name string) *Scope {
	return &Scope{
		Qualifier: name,
		bindings:  make(map[string]*Binding),
		parent:    s,
		root:      s.root,
	}
}

// Pop returns the parent scope, or nil if s is the global scope.
func (s *Scope) Pop() *Scope {
	return s.parent
}

// Parent exposes the parent scope without consuming it, for callers that
// want to inspect the chain without "popping".
func (s *Scope) Parent() *Scope {
	return s.parent
}

// Declare adds b to s. It fails if s already has a binding for b.Name, or
// if b.Name is the reserved parent-pointer name.
func (s *Scope) Declare(b *Binding) error {
	if b.Name == reservedName {
		return &ReservedNameError{Pos: b.Pos}
	}
	if prior, exists := s.bindings[b.Name]; exists {
		return &DuplicateDefinitionError{Name: b.Name, Pos: b.Pos, PriorAt: prior.Pos}
	}
	s.bindings[b.Name] = b
	if s.Qualifier != "" && s.root != nil {
		qualified := s.Qualifier + "$" + b.Name
		// A qualified mirror binding never collides under its own name,
		// since "$" cannot appear in a surface identifier.
		s.root.bindings[qualified] = b
	}
	return nil
}

// Resolve walks s and its ancestors, returning the closest binding for
// name, or (nil, false) if none exists.
func (s *Scope) Resolve(name string) (*Binding, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if b, ok := cur.bindings[name]; ok {
			return b, true
		}
	}
	return nil, false
}

// ResolveQualified resolves "module.name" via the root scope's
// "module$name" mirror bindings.
func (s *Scope) ResolveQualified(module, name string) (*Binding, bool) {
	if s.root == nil {
		return nil, false
	}
	b, ok := s.root.bindings[module+"$"+name]
	return b, ok
}

// Depth counts how many ancestors s has (0 for the global scope).
func (s *Scope) Depth() int {
	depth := 0
	for cur := s.parent; cur != nil; cur = cur.parent {
		depth++
	}
	return depth
}

// Names returns the names declared directly in s (not ancestors), in no
// particular order. Qualified mirror entries created by a module scope's
// child (e.g. "M$f") are excluded; use ResolveQualified for those.
func (s *Scope) Names() []string {
	names := make([]string, 0, len(s.bindings))
	for name, b := range s.bindings {
		if b != nil && name != b.Name {
			continue
		}
		names = append(names, name)
	}
	return names
}
