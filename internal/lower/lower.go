// Package lower implements the symbolic lowering pass described in
// SPEC_FULL.md §4.7: generic instantiation, the async transform,
// method/extension-call rewriting, module linking, and dictionary
// passing for trait bounds. It is the last pass in the fixed pipeline
// order (internal/pipeline), run only after type-checking, ownership
// analysis, and pattern-compilation have already reported whatever
// diagnostics they found against the surface ast.File.
//
// Lowering produces a Program of named, Core-ANF-shaped declarations
// (internal/core's node set), reusing internal/core's DictAbs/DictApp/
// DictRef nodes directly for dictionary passing rather than inventing a
// parallel representation.
package lower

import (
	"fmt"

	"github.com/tocin-lang/tocin/internal/ast"
	"github.com/tocin-lang/tocin/internal/core"
	"github.com/tocin-lang/tocin/internal/diag"
	"github.com/tocin-lang/tocin/internal/traits"
	"github.com/tocin-lang/tocin/internal/types"
)

// Decl is one lowered top-level binding: a name plus its Core-ANF body.
// internal/core.Program models a bare list of decls with no names
// attached; lowering needs the surface name preserved (module linking
// and the REPL's ShowCore output both key off it), so this package defines its own
// named Program rather than overloading core.Program for that.
type Decl struct {
	Name string
	Body core.CoreExpr
}

// Program is the full lowered output of one compilation unit.
type Program struct {
	Decls []*Decl
}

// Lowerer holds the state shared across every declaration lowered in
// one compilation unit: the trait registry dictionary resolution and
// method-call rewriting consult, the generic-instantiation cache, and a
// fresh-name counter for synthesized bindings (discarded statement
// results, loop bindings).
type Lowerer struct {
	Traits *traits.Registry
	Cache  *InstantiationCache

	// TypeOf optionally resolves the static type of a receiver
	// expression in a method call x.method(args), the same injected-
	// callback pattern internal/types.Assignable and internal/ownership
	// already use to avoid a hard package dependency (here, on
	// internal/check). When nil, method calls lower to a plain
	// record-field invocation instead of a resolved trait/extension
	// dispatch (see dispatch.go).
	TypeOf func(ast.Expr) types.Type

	sink  *diag.Sink
	fresh int
}

// New creates a Lowerer. traitRegistry may be nil (an empty registry is
// used), but should normally be the same *traits.Registry the checker
// populated while checking the same compilation unit.
func New(traitRegistry *traits.Registry, sink *diag.Sink) *Lowerer {
	if traitRegistry == nil {
		traitRegistry = traits.NewRegistry()
	}
	return &Lowerer{Traits: traitRegistry, Cache: NewInstantiationCache(), sink: sink}
}

func (l *Lowerer) report(code, message string, pos ast.Pos) {
	l.sink.Emit(diag.New(code, message, diag.At(pos.File, pos.Line, pos.Column)))
}

func (l *Lowerer) freshName(prefix string) string {
	l.fresh++
	return fmt.Sprintf("%s$%d", prefix, l.fresh)
}

func nodeOf(pos ast.Pos) core.CoreNode {
	return core.CoreNode{CoreSpan: pos, OrigSpan: pos}
}

// LowerFile lowers every function declaration in f. An async function
// expands to its f/f$async pair (async.go); a function whose type
// parameters carry trait bounds is wrapped in a dictionary abstraction
// (dictionaries.go).
func (l *Lowerer) LowerFile(f *ast.File) *Program {
	prog := &Program{}
	for _, fn := range f.Funcs {
		prog.Decls = append(prog.Decls, l.lowerFuncDecl(fn)...)
	}
	return prog
}

func (l *Lowerer) lowerFuncDecl(fn *ast.FuncDecl) []*Decl {
	if fn.IsAsync {
		asyncFn, wrapper := SplitAsync(fn, l)
		return []*Decl{l.toDecl(asyncFn), l.toDecl(wrapper)}
	}
	return []*Decl{l.toDecl(fn)}
}

func (l *Lowerer) toDecl(fn *ast.FuncDecl) *Decl {
	lambda := &core.Lambda{CoreNode: nodeOf(fn.Pos), Params: paramNames(fn.Params), Body: l.toCore(fn.Body)}
	bounds := traitBounds(fn.TypeParams)
	if len(bounds) == 0 {
		return &Decl{Name: fn.Name, Body: lambda}
	}
	return &Decl{Name: fn.Name, Body: l.abstractDictionaries(bounds, lambda)}
}

func paramNames(params []*ast.Param) []string {
	names := make([]string, len(params))
	for i, p := range params {
		names[i] = p.Name
	}
	return names
}

// traitBounds collects every (param, trait) bound declared across fn's
// type parameters, in declaration order, so DictAbs's parameter list is
// deterministic run to run (SPEC_FULL.md §8 property 6 depends on
// lowering being a pure function of the input, not registration order).
func traitBounds(tps []*ast.TypeParam) []types.TraitBoundConstraint {
	var out []types.TraitBoundConstraint
	for _, tp := range tps {
		if len(tp.Bounds) == 0 {
			continue
		}
		out = append(out, types.TraitBoundConstraint{Param: tp.Name, Traits: tp.Bounds})
	}
	return out
}
