package check

import (
	"fmt"

	"github.com/tocin-lang/tocin/internal/ast"
	"github.com/tocin-lang/tocin/internal/dtree"
	"github.com/tocin-lang/tocin/internal/scope"
	"github.com/tocin-lang/tocin/internal/traits"
	"github.com/tocin-lang/tocin/internal/types"
)

// synth computes the type of expr by combining the already-synthesized
// types of its immediate subexpressions; it never looks further out
// than expr's own children (no global solver).
func (c *Checker) synth(expr ast.Expr, s *scope.Scope, tp typeParams) types.Type {
	switch e := expr.(type) {
	case nil:
		return types.Invalid
	case *ast.Literal:
		return c.synthLiteral(e)
	case *ast.Ident:
		return c.synthIdent(e, s)
	case *ast.BinaryExpr:
		return c.synthBinary(e, s, tp)
	case *ast.UnaryExpr:
		return c.synthUnary(e, s, tp)
	case *ast.Grouping:
		return c.synth(e.Inner, s, tp)
	case *ast.AssignExpr:
		return c.synthAssign(e, s, tp)
	case *ast.CallExpr:
		return c.synthCall(e, s, tp)
	case *ast.GetExpr:
		// A bare field read (not the callee of a CallExpr, which
		// synthCall intercepts separately for method resolution) needs
		// struct layout to resolve, so it's deferred to internal/lower.
		return c.synth(e.Target, s, tp)
	case *ast.SetExpr:
		c.synth(e.Target, s, tp)
		return c.synth(e.Value, s, tp)
	case *ast.IndexExpr:
		return c.synthIndex(e, s, tp)
	case *ast.ListLit:
		return c.synthList(e, s, tp)
	case *ast.DictLit:
		return c.synthDict(e, s, tp)
	case *ast.TupleLit:
		elems := make([]types.Type, len(e.Elements))
		for i, el := range e.Elements {
			elems[i] = c.synth(el, s, tp)
		}
		return &types.Generic{Name: "tuple", Args: elems}
	case *ast.Lambda:
		return c.synthLambda(e, s, tp)
	case *ast.Await:
		return c.synthAwait(e, s, tp)
	case *ast.Send:
		c.synth(e.Channel, s, tp)
		return c.synth(e.Value, s, tp)
	case *ast.Recv:
		ch := c.synth(e.Channel, s, tp)
		if g, ok := ch.(*types.Generic); ok && g.Name == "Channel" && len(g.Args) == 1 {
			return g.Args[0]
		}
		return types.Invalid
	case *ast.MoveExpr:
		return c.synth(e.Value, s, tp)
	case *ast.NewExpr:
		for _, a := range e.Args {
			c.synth(a, s, tp)
		}
		return c.resolveType(e.Type, tp)
	case *ast.DeleteExpr:
		c.synth(e.Value, s, tp)
		return types.Unit
	case *ast.StringInterp:
		for _, part := range e.Parts {
			if part.Expr != nil {
				c.synth(part.Expr, s, tp)
			}
		}
		return types.String
	case *ast.BlockExpr:
		return c.checkBlockExpr(e, s, tp)
	case *ast.IfExpr:
		return c.synthIfExpr(e, s, tp)
	case *ast.MatchExpr:
		return c.synthMatch(e, s, tp)
	case *ast.ErrorExpr:
		return types.Invalid
	default:
		return types.Invalid
	}
}

func (c *Checker) synthLiteral(l *ast.Literal) types.Type {
	switch l.Kind {
	case ast.IntLit:
		return types.Int
	case ast.FloatLit:
		return types.Float
	case ast.StringLit:
		return types.String
	case ast.BoolLit:
		return types.Bool
	case ast.NilLit:
		return types.Nil
	default:
		return types.Invalid
	}
}

func (c *Checker) synthIdent(id *ast.Ident, s *scope.Scope) types.Type {
	b, ok := s.Resolve(id.Name)
	if !ok {
		c.report("T002", fmt.Sprintf("undefined reference to %q", id.Name), id.Pos)
		return types.Invalid
	}
	t, ok := b.Value.(types.Type)
	if !ok {
		return types.Invalid
	}
	return t
}

// synthBinary dispatches +,-,*,/,% on {int,int}/{float,float} (and +
// on {string,string}), comparisons to bool, and equality on any
// Equal-compatible pair, per SPEC_FULL.md's operator table.
func (c *Checker) synthBinary(e *ast.BinaryExpr, s *scope.Scope, tp typeParams) types.Type {
	l := c.synth(e.Left, s, tp)
	r := c.synth(e.Right, s, tp)
	if l == types.Invalid || r == types.Invalid {
		return types.Invalid
	}
	switch e.Op {
	case "+", "-", "*", "/", "%":
		if e.Op == "+" && l.Equal(types.String) && r.Equal(types.String) {
			return types.String
		}
		if l.Equal(types.Int) && r.Equal(types.Int) {
			return types.Int
		}
		if (l.Equal(types.Int) || l.Equal(types.Float)) && (r.Equal(types.Int) || r.Equal(types.Float)) {
			return types.Float
		}
		c.report("T006", fmt.Sprintf("operator %q not defined for %s and %s", e.Op, l, r), e.Pos)
		return types.Invalid
	case "<", "<=", ">", ">=":
		if (l.Equal(types.Int) || l.Equal(types.Float)) && (r.Equal(types.Int) || r.Equal(types.Float)) {
			return types.Bool
		}
		c.report("T006", fmt.Sprintf("operator %q not defined for %s and %s", e.Op, l, r), e.Pos)
		return types.Invalid
	case "==", "!=":
		if !l.Equal(r) {
			c.report("T006", fmt.Sprintf("cannot compare %s and %s for equality", l, r), e.Pos)
			return types.Invalid
		}
		return types.Bool
	case "&&", "||":
		if l.Equal(types.Bool) && r.Equal(types.Bool) {
			return types.Bool
		}
		c.report("T006", fmt.Sprintf("operator %q requires bool operands, got %s and %s", e.Op, l, r), e.Pos)
		return types.Invalid
	default:
		c.report("T006", fmt.Sprintf("unknown operator %q", e.Op), e.Pos)
		return types.Invalid
	}
}

func (c *Checker) synthUnary(e *ast.UnaryExpr, s *scope.Scope, tp typeParams) types.Type {
	operand := c.synth(e.Expr, s, tp)
	switch e.Op {
	case "-":
		if operand.Equal(types.Int) || operand.Equal(types.Float) {
			return operand
		}
	case "!":
		if operand.Equal(types.Bool) {
			return types.Bool
		}
	}
	if operand != types.Invalid {
		c.report("T006", fmt.Sprintf("operator %q not defined for %s", e.Op, operand), e.Pos)
	}
	return types.Invalid
}

// synthAssign requires the target resolve to a mutable, declared
// binding; assigning to a const binding is folded under T001 per
// SPEC_FULL.md §4.3 (spec.md's error table has no dedicated code).
func (c *Checker) synthAssign(e *ast.AssignExpr, s *scope.Scope, tp typeParams) types.Type {
	valueTy := c.synth(e.Value, s, tp)
	id, ok := e.Target.(*ast.Ident)
	if !ok {
		c.synth(e.Target, s, tp)
		return valueTy
	}
	b, found := s.Resolve(id.Name)
	if !found {
		c.report("T002", fmt.Sprintf("undefined reference to %q", id.Name), id.Pos)
		return types.Invalid
	}
	if !b.Mutable {
		c.report("T001", fmt.Sprintf("cannot assign to immutable binding %q", id.Name), e.Pos)
	}
	targetTy, _ := b.Value.(types.Type)
	if targetTy != nil && targetTy != types.Invalid && valueTy != types.Invalid && !types.Assignable(valueTy, targetTy, c.implementsTrait) {
		c.report("T001", fmt.Sprintf("cannot assign %s to %q of type %s", valueTy, id.Name, targetTy), e.Pos)
	}
	return valueTy
}

func (c *Checker) synthIndex(e *ast.IndexExpr, s *scope.Scope, tp typeParams) types.Type {
	target := c.synth(e.Target, s, tp)
	c.synth(e.Index, s, tp)
	switch g := target.(type) {
	case *types.Generic:
		switch g.Name {
		case "list":
			return g.Args[0]
		case "dict":
			return g.Args[1]
		}
	}
	return types.Invalid
}

func (c *Checker) synthList(e *ast.ListLit, s *scope.Scope, tp typeParams) types.Type {
	if len(e.Elements) == 0 {
		return &types.Generic{Name: "list", Args: []types.Type{types.Invalid}}
	}
	elem := c.synth(e.Elements[0], s, tp)
	for _, rest := range e.Elements[1:] {
		t := c.synth(rest, s, tp)
		if t != types.Invalid && elem != types.Invalid && !t.Equal(elem) {
			c.report("T001", fmt.Sprintf("list element type mismatch: %s and %s", elem, t), rest.Position())
		}
	}
	return &types.Generic{Name: "list", Args: []types.Type{elem}}
}

func (c *Checker) synthDict(e *ast.DictLit, s *scope.Scope, tp typeParams) types.Type {
	if len(e.Entries) == 0 {
		return &types.Generic{Name: "dict", Args: []types.Type{types.Invalid, types.Invalid}}
	}
	keyTy := c.synth(e.Entries[0].Key, s, tp)
	valTy := c.synth(e.Entries[0].Value, s, tp)
	for _, entry := range e.Entries[1:] {
		k := c.synth(entry.Key, s, tp)
		v := c.synth(entry.Value, s, tp)
		if keyTy != types.Invalid && k != types.Invalid && !k.Equal(keyTy) {
			c.report("T001", fmt.Sprintf("dict key type mismatch: %s and %s", keyTy, k), entry.Key.Position())
		}
		if valTy != types.Invalid && v != types.Invalid && !v.Equal(valTy) {
			c.report("T001", fmt.Sprintf("dict value type mismatch: %s and %s", valTy, v), entry.Value.Position())
		}
	}
	return &types.Generic{Name: "dict", Args: []types.Type{keyTy, valTy}}
}

func (c *Checker) synthLambda(e *ast.Lambda, s *scope.Scope, tp typeParams) types.Type {
	inner := s.Push()
	params := make([]types.Type, len(e.Params))
	for i, p := range e.Params {
		pt := c.resolveType(p.Type, tp)
		params[i] = pt
		if err := inner.Declare(&scope.Binding{Name: p.Name, Kind: scope.VarKind, Value: pt, Pos: p.Pos}); err != nil {
			c.reportDuplicate(err, p.Pos)
		}
	}
	result := c.resolveType(e.ReturnType, tp)
	fc := &funcContext{Result: result, IsAsync: e.IsAsync, Declared: types.NewEffectSet(e.Effects...)}
	c.funcStack = append(c.funcStack, fc)
	bodyTy := c.synth(e.Body, inner, tp)
	c.funcStack = c.funcStack[:len(c.funcStack)-1]
	if result == nil || result == types.Invalid {
		result = bodyTy
	}
	return &types.Function{Params: params, Return: result, Effects: fc.Declared, IsAsync: e.IsAsync}
}

// synthAwait requires the enclosing function to be async; its result
// is the T inside the awaited Future<T>/Promise<T>.
func (c *Checker) synthAwait(e *ast.Await, s *scope.Scope, tp typeParams) types.Type {
	fc := c.current()
	if fc == nil || !fc.IsAsync {
		c.report("T001", "await is only valid inside an async function", e.Pos)
	}
	operand := c.synth(e.Value, s, tp)
	if g, ok := operand.(*types.Generic); ok && (g.Name == "Future" || g.Name == "Promise") && len(g.Args) == 1 {
		return g.Args[0]
	}
	if operand != types.Invalid {
		c.report("T001", fmt.Sprintf("await requires a Future or Promise, got %s", operand), e.Pos)
	}
	return types.Invalid
}

// synthCall requires the callee synthesize to a Function and matches
// arity and per-argument assignability. Trait bounds on a generic
// callee's type parameters are not checked here.
// A GetExpr callee (receiver.method(args)) is a method call, not an
// ordinary value call, so it's resolved separately by synthMethodCall:
// the receiver's own type is never itself a *types.Function.
func (c *Checker) synthCall(e *ast.CallExpr, s *scope.Scope, tp typeParams) types.Type {
	if get, ok := e.Callee.(*ast.GetExpr); ok {
		return c.synthMethodCall(get, e, s, tp)
	}
	calleeTy := c.synth(e.Callee, s, tp)
	argTys := make([]types.Type, len(e.Args))
	for i, a := range e.Args {
		argTys[i] = c.synth(a, s, tp)
	}
	fn, ok := calleeTy.(*types.Function)
	if !ok {
		if calleeTy != types.Invalid {
			c.report("T003", fmt.Sprintf("%s is not callable", calleeTy), e.Pos)
		}
		return types.Invalid
	}
	if len(fn.Params) != len(e.Args) {
		c.report("T007", fmt.Sprintf("expected %d argument(s), got %d", len(fn.Params), len(e.Args)), e.Pos)
		return fn.Return
	}
	for i, want := range fn.Params {
		if argTys[i] == types.Invalid || want == types.Invalid {
			continue
		}
		if !types.Assignable(argTys[i], want, c.implementsTrait) {
			c.report("T001", fmt.Sprintf("argument %d: cannot assign %s to %s", i+1, argTys[i], want), e.Args[i].Position())
		}
	}
	for _, eff := range fn.Effects {
		c.recordEffect(eff)
	}
	return fn.Return
}

// synthMethodCall resolves get.Target.get.Name(args) through
// internal/traits.Registry's four-step lookup instead of synthesizing
// a value type for the callee: a receiver's own type is never callable,
// so running the ordinary call path against it would always misreport
// a resolvable method as "not callable". T003 is reported only when
// Resolve itself finds no method, trait default, or extension.
func (c *Checker) synthMethodCall(get *ast.GetExpr, e *ast.CallExpr, s *scope.Scope, tp typeParams) types.Type {
	receiverTy := c.synth(get.Target, s, tp)
	argTys := make([]types.Type, len(e.Args))
	for i, a := range e.Args {
		argTys[i] = c.synth(a, s, tp)
	}
	if receiverTy == types.Invalid {
		return types.Invalid
	}
	res, ok := c.Traits.Resolve(receiverTy, get.Name)
	if !ok {
		c.report("T003", fmt.Sprintf("%s has no method %q", receiverTy, get.Name), e.Pos)
		return types.Invalid
	}
	params, result, effects := c.methodSignature(res, tp)
	if len(params) != len(e.Args) {
		c.report("T007", fmt.Sprintf("expected %d argument(s), got %d", len(params), len(e.Args)), e.Pos)
		return result
	}
	for i, want := range params {
		if argTys[i] == types.Invalid || want == types.Invalid {
			continue
		}
		if !types.Assignable(argTys[i], want, c.implementsTrait) {
			c.report("T001", fmt.Sprintf("argument %d: cannot assign %s to %s", i+1, argTys[i], want), e.Args[i].Position())
		}
	}
	for _, eff := range effects {
		c.recordEffect(eff)
	}
	return result
}

// methodSignature converts the declaration behind a Resolution (a
// concrete method, or a trait's own default body inherited because the
// impl left it unimplemented) into the params/return/effects shape
// synthMethodCall checks a call's arguments against. Receiver params
// aren't part of either ast.FuncDecl.Params or ast.TraitMethod.Params
// (see internal/traits.signaturesMatch), so they line up 1:1 with a
// CallExpr's own Args.
func (c *Checker) methodSignature(res traits.Resolution, tp typeParams) ([]types.Type, types.Type, []string) {
	if res.Method != nil {
		params := make([]types.Type, len(res.Method.Params))
		for i, p := range res.Method.Params {
			params[i] = c.resolveType(p.Type, tp)
		}
		return params, c.resolveType(res.Method.ReturnType, tp), res.Method.Effects
	}
	if res.Default != nil {
		params := make([]types.Type, len(res.Default.Params))
		for i, p := range res.Default.Params {
			params[i] = c.resolveType(p.Type, tp)
		}
		return params, c.resolveType(res.Default.Return, tp), nil
	}
	return nil, types.Invalid, nil
}

func (c *Checker) synthIfExpr(e *ast.IfExpr, s *scope.Scope, tp typeParams) types.Type {
	c.checkCond(e.Cond, s, tp)
	thenTy := c.synth(e.Then, s, tp)
	if e.Else == nil {
		return types.Unit
	}
	elseTy := c.synth(e.Else, s, tp)
	if thenTy != types.Invalid && elseTy != types.Invalid && !thenTy.Equal(elseTy) {
		return types.Canonicalize(&types.Union{Members: []types.Type{thenTy, elseTy}})
	}
	return thenTy
}

// synthMatch binds each arm's pattern variables at the scrutinee's own
// type and hands exhaustiveness/reachability to internal/dtree, keyed by
// the scrutinee type's name (the constructor name for a generic type,
// e.g. "Option" for Option<int>); pattern types are not compared against
// the scrutinee type. The arm bodies' own types join the same way an
// if-expression's branches do.
func (c *Checker) synthMatch(e *ast.MatchExpr, s *scope.Scope, tp typeParams) types.Type {
	scrutineeTy := c.synth(e.Scrutinee, s, tp)
	var result types.Type
	arms := make([]dtree.Arm, len(e.Arms))
	for i, arm := range e.Arms {
		armScope := s.Push()
		for _, name := range arm.Pattern.BoundVars() {
			if err := armScope.Declare(&scope.Binding{Name: name, Kind: scope.VarKind, Value: scrutineeTy, Pos: arm.Pos}); err != nil {
				c.reportDuplicate(err, arm.Pos)
			}
		}
		if arm.Guard != nil {
			c.checkCond(arm.Guard, armScope, tp)
		}
		bodyTy := c.synth(arm.Body, armScope, tp)
		arms[i] = dtree.Arm{Pattern: arm.Pattern, Guard: arm.Guard}
		if result == nil {
			result = bodyTy
		} else if result != types.Invalid && bodyTy != types.Invalid && !result.Equal(bodyTy) {
			result = types.Canonicalize(&types.Union{Members: []types.Type{result, bodyTy}})
		}
	}
	typeName := ""
	if g, ok := scrutineeTy.(*types.Generic); ok {
		typeName = g.Name
	} else if scrutineeTy != nil {
		typeName = scrutineeTy.String()
	}
	for _, d := range dtree.CheckExhaustiveness(c.dtreeRegistry(), typeName, arms, e.Pos) {
		c.sink.Emit(d)
	}
	if result == nil {
		return types.Unit
	}
	return result
}
