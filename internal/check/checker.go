package check

import (
	"fmt"

	"github.com/tocin-lang/tocin/internal/ast"
	"github.com/tocin-lang/tocin/internal/diag"
	"github.com/tocin-lang/tocin/internal/dtree"
	"github.com/tocin-lang/tocin/internal/scope"
	"github.com/tocin-lang/tocin/internal/traits"
	"github.com/tocin-lang/tocin/internal/types"
)

// Checker holds the cross-function state of one compilation unit: the
// trait registry consulted for bound discharge and method resolution,
// and the sink every diagnostic is reported to.
type Checker struct {
	Traits *traits.Registry
	sink   *diag.Sink

	// patterns is the shared dtree.Registry every match expression
	// synthesizes exhaustiveness against; lazily built (see decls.go).
	patterns *dtree.Registry

	// funcStack tracks the enclosing function(s) being checked, innermost
	// last, so `return`, `await`, and effect propagation can see the
	// current function's declared result type, async-ness, and effects
	// without threading them through every synth call explicitly.
	funcStack []*funcContext
}

type funcContext struct {
	Result    types.Type
	IsAsync   bool
	Declared  types.EffectSet
	performed types.EffectSet
}

func New(traitRegistry *traits.Registry, sink *diag.Sink) *Checker {
	if traitRegistry == nil {
		traitRegistry = traits.NewRegistry()
	}
	return &Checker{Traits: traitRegistry, sink: sink}
}

func (c *Checker) report(code, message string, pos ast.Pos, opts ...diag.Option) {
	all := append([]diag.Option{diag.At(pos.File, pos.Line, pos.Column)}, opts...)
	c.sink.Emit(diag.New(code, message, all...))
}

func (c *Checker) current() *funcContext {
	if len(c.funcStack) == 0 {
		return nil
	}
	return c.funcStack[len(c.funcStack)-1]
}

// recordEffect marks that the function currently being checked performs
// the named effect, for the unhandled-effect check at function exit.
func (c *Checker) recordEffect(name string) {
	fc := c.current()
	if fc == nil {
		return
	}
	fc.performed = fc.performed.Union(types.NewEffectSet(name))
}

// CheckFunction type-checks one function declaration's body, verifying
// every performed effect is covered by its declared effect set and
// reporting an unhandled-effect diagnostic (T009 family) otherwise.
func (c *Checker) CheckFunction(fn *ast.FuncDecl, parent *scope.Scope) {
	fnScope := parent.Push()
	tp := typeParams{}
	for _, p := range fn.TypeParams {
		tp[p.Name] = true
	}
	for _, p := range fn.Params {
		pt := c.resolveType(p.Type, tp)
		if p.MovedIn {
			pt = &types.RValueRef{Inner: pt}
		}
		if err := fnScope.Declare(&scope.Binding{Name: p.Name, Kind: scope.VarKind, Value: pt, Mutable: false, Pos: p.Pos}); err != nil {
			c.reportDuplicate(err, p.Pos)
		}
	}
	result := c.resolveType(fn.ReturnType, tp)
	fc := &funcContext{Result: result, IsAsync: fn.IsAsync, Declared: types.NewEffectSet(fn.Effects...)}
	c.funcStack = append(c.funcStack, fc)
	defer func() { c.funcStack = c.funcStack[:len(c.funcStack)-1] }()

	if body, ok := fn.Body.(*ast.BlockExpr); ok {
		c.checkBlockExpr(body, fnScope, tp)
	} else {
		c.synth(fn.Body, fnScope, tp)
	}

	if unhandled := fc.performed.Subtract(fc.Declared); len(unhandled) > 0 {
		c.report("T009", fmt.Sprintf("function %q performs undeclared effect(s): %s", fn.Name, unhandled.String()), fn.Pos)
	}
}

func (c *Checker) reportDuplicate(err error, pos ast.Pos) {
	if dup, ok := err.(*scope.DuplicateDefinitionError); ok {
		c.report(scope.DuplicateDefinitionCode, dup.Error(), pos)
		return
	}
	c.report("M001", err.Error(), pos)
}

// ---------------------------------------------------------------------
// Statements
// ---------------------------------------------------------------------

func (c *Checker) checkBlockExpr(b *ast.BlockExpr, s *scope.Scope, tp typeParams) types.Type {
	inner := s.Push()
	for _, st := range b.Stmts {
		c.checkStmt(st, inner, tp)
	}
	if b.Result != nil {
		return c.synth(b.Result, inner, tp)
	}
	return types.Unit
}

func (c *Checker) checkBlockStmt(b *ast.BlockStmt, s *scope.Scope, tp typeParams) {
	if b == nil {
		return
	}
	inner := s.Push()
	for _, st := range b.Stmts {
		c.checkStmt(st, inner, tp)
	}
}

func (c *Checker) checkStmt(st ast.Stmt, s *scope.Scope, tp typeParams) {
	switch v := st.(type) {
	case *ast.ExprStmt:
		c.synth(v.Expr, s, tp)
	case *ast.VarDecl:
		c.checkVarDecl(v, s, tp)
	case *ast.ReturnStmt:
		c.checkReturn(v, s, tp)
	case *ast.IfStmt:
		c.checkCond(v.Cond, s, tp)
		c.checkBlockStmt(v.Then, s, tp)
		for _, elif := range v.Elifs {
			c.checkCond(elif.Cond, s, tp)
			c.checkBlockStmt(elif.Body, s, tp)
		}
		c.checkBlockStmt(v.Else, s, tp)
	case *ast.WhileStmt:
		c.checkCond(v.Cond, s, tp)
		c.checkBlockStmt(v.Body, s, tp)
	case *ast.ForInStmt:
		c.checkForIn(v, s, tp)
	case *ast.MatchStmt:
		c.synth(v.Match, s, tp)
	case *ast.BlockStmt:
		c.checkBlockStmt(v, s, tp)
	case *ast.GoStmt:
		c.recordEffect("Async")
		c.synth(v.Call, s, tp)
	case *ast.DeferStmt:
		c.synth(v.Call, s, tp)
	case *ast.BreakStmt, *ast.ContinueStmt:
		// no type obligations
	case *ast.FuncDecl:
		c.CheckFunction(v, s)
	}
}

func (c *Checker) checkCond(cond ast.Expr, s *scope.Scope, tp typeParams) {
	t := c.synth(cond, s, tp)
	if !types.Bool.Equal(t) && t != types.Invalid {
		c.report("T001", fmt.Sprintf("condition must be bool, got %s", t), cond.Position())
	}
}

func (c *Checker) checkVarDecl(v *ast.VarDecl, s *scope.Scope, tp typeParams) {
	var declared types.Type
	if v.Type != nil {
		declared = c.resolveType(v.Type, tp)
	}
	var actual types.Type = types.Invalid
	if v.Value != nil {
		actual = c.synth(v.Value, s, tp)
	}
	final := declared
	if final == nil {
		if v.Value == nil {
			c.report("T009", fmt.Sprintf("cannot infer type of %q without an initializer or annotation", v.Name), v.Pos)
			final = types.Invalid
		} else {
			final = actual
		}
	} else if v.Value != nil && !types.Assignable(actual, declared, c.implementsTrait) {
		c.report("T001", fmt.Sprintf("cannot assign %s to %s in declaration of %q", actual, declared, v.Name), v.Pos)
	}
	if err := s.Declare(&scope.Binding{Name: v.Name, Kind: scope.VarKind, Value: final, Mutable: v.Mutable, Pos: v.Pos}); err != nil {
		c.reportDuplicate(err, v.Pos)
	}
}

func (c *Checker) checkReturn(r *ast.ReturnStmt, s *scope.Scope, tp typeParams) {
	fc := c.current()
	if fc == nil {
		return
	}
	if r.Value == nil {
		if fc.Result != nil && !fc.Result.Equal(types.Unit) && fc.Result != types.Invalid {
			c.report("T001", fmt.Sprintf("missing return value, expected %s", fc.Result), r.Pos)
		}
		return
	}
	actual := c.synth(r.Value, s, tp)
	if fc.Result != nil && fc.Result != types.Invalid && !types.Assignable(actual, fc.Result, c.implementsTrait) {
		c.report("T001", fmt.Sprintf("return type mismatch: expected %s, got %s", fc.Result, actual), r.Pos)
	}
}

func (c *Checker) checkForIn(f *ast.ForInStmt, s *scope.Scope, tp typeParams) {
	iterTy := c.synth(f.Iterable, s, tp)
	elem := types.Type(types.Invalid)
	if g, ok := iterTy.(*types.Generic); ok && g.Name == "list" && len(g.Args) == 1 {
		elem = g.Args[0]
	}
	inner := s.Push()
	if err := inner.Declare(&scope.Binding{Name: f.Var, Kind: scope.VarKind, Value: elem, Mutable: false, Pos: f.Pos}); err != nil {
		c.reportDuplicate(err, f.Pos)
	}
	for _, st := range f.Body.Stmts {
		c.checkStmt(st, inner, tp)
	}
}

func (c *Checker) implementsTrait(t types.Type, trait string) bool {
	return c.Traits.Implements(t, trait)
}
