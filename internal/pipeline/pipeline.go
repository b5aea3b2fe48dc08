// Package pipeline runs the middle-end's fixed pass order over one
// already-parsed compilation unit: type-check, then ownership/move
// analysis, then symbolic lowering, checking diag.Sink.HasErrors()
// between every stage so an Error- or Fatal-severity diagnostic from an
// earlier pass stops later passes from running against a file they now
// can't trust (SPEC_FULL.md §4.8) — lowering in particular assumes a
// clean ast.File and has no diagnostic-recovery path of its own.
// Pattern-match exhaustiveness runs inside type-checking itself
// (internal/check.synthMatch delegates straight to internal/dtree), so
// it has no separate stage here.
package pipeline

import (
	"github.com/tocin-lang/tocin/internal/ast"
	"github.com/tocin-lang/tocin/internal/check"
	"github.com/tocin-lang/tocin/internal/diag"
	"github.com/tocin-lang/tocin/internal/lower"
	"github.com/tocin-lang/tocin/internal/ownership"
	"github.com/tocin-lang/tocin/internal/scope"
	"github.com/tocin-lang/tocin/internal/traits"
)

// Result is the middle-end's output for one compilation unit: the
// diagnostics every stage produced, plus the lowered program if
// lowering ran at all (it is skipped once an earlier stage reported an
// Error- or Fatal-severity diagnostic).
type Result struct {
	Diagnostics []diag.Diagnostic
	Lowered     *lower.Program
}

// Run type-checks, analyzes, and lowers f in the fixed order, stopping
// early once sink.HasErrors() reports an Error- or Fatal-severity
// diagnostic.
// traitRegistry may already hold trait/impl/extension declarations
// pulled in from f's imports (see internal/lower.LinkModules for
// multi-file ordering); runCheck registers everything f declares
// itself into the same registry before checking any function body, so
// a call to one of f's own methods resolves correctly regardless of
// declaration order within the file.
func Run(f *ast.File, traitRegistry *traits.Registry) Result {
	sink := diag.NewSink()

	runCheck(f, traitRegistry, sink)
	if sink.HasErrors() {
		return Result{Diagnostics: sink.Diagnostics()}
	}

	runOwnership(f, sink)
	if sink.HasErrors() {
		return Result{Diagnostics: sink.Diagnostics()}
	}

	lowered := runLower(f, traitRegistry, sink)
	return Result{Diagnostics: sink.Diagnostics(), Lowered: lowered}
}

func runCheck(f *ast.File, traitRegistry *traits.Registry, sink *diag.Sink) {
	c := check.New(traitRegistry, sink)
	for _, decl := range f.Types {
		c.RegisterTypeDeclKind(decl)
	}
	// Traits first: RegisterImplDecl/RegisterExtensionDecl below both
	// resolve their target type and look the named trait up, so every
	// trait this file declares has to already be in the registry.
	for _, decl := range f.Traits {
		c.RegisterTraitDecl(decl)
	}
	for _, decl := range f.Impls {
		c.RegisterImplDecl(decl)
	}
	for _, decl := range f.Extensions {
		c.RegisterExtensionDecl(decl)
	}
	global := scope.NewGlobal()
	for _, fn := range f.Funcs {
		c.CheckFunction(fn, global)
	}
}

// runOwnership analyzes every function's moves/borrows against the same
// parameter lists check.go already validated. resolveParams only needs
// to look at top-level functions in this file: the injected-callback
// pattern (rather than a direct import of internal/check) keeps
// ownership analysis decoupled from the checker the way internal/types.
// Assignable is decoupled from internal/traits.
func runOwnership(f *ast.File, sink *diag.Sink) {
	byName := make(map[string][]*ast.Param, len(f.Funcs))
	for _, fn := range f.Funcs {
		byName[fn.Name] = fn.Params
	}
	resolveParams := func(callee ast.Expr) []*ast.Param {
		id, ok := callee.(*ast.Ident)
		if !ok {
			return nil
		}
		return byName[id.Name]
	}
	analyzer := ownership.NewAnalyzer(resolveParams)
	for _, fn := range f.Funcs {
		analyzer.AnalyzeFunction(fn, sink)
	}
}

func runLower(f *ast.File, traitRegistry *traits.Registry, sink *diag.Sink) *lower.Program {
	l := lower.New(traitRegistry, sink)
	return l.LowerFile(f)
}
