package ownership

import (
	"fmt"

	"github.com/tocin-lang/tocin/internal/ast"
	"github.com/tocin-lang/tocin/internal/diag"
)

// copyPrimitives names the primitive type spellings whose values are
// duplicated on every use rather than moved. This runs directly over
// the syntactic ast.Type (ownership analysis has no dependency on
// internal/check's resolved internal/types.Type); a "small struct is
// Copy" extension is deferred since neither representation carries
// layout/size information to decide it from.
var copyPrimitives = map[string]bool{
	"int": true, "float": true, "bool": true, "unit": true,
}

// IsCopy reports whether a type's values are duplicated on every use
// rather than moved.
func IsCopy(t ast.Type) bool {
	st, ok := t.(*ast.SimpleType)
	return ok && copyPrimitives[st.Name]
}

// Analyzer walks one function body tracking the ownership state of
// its locals. ResolveParams looks up a callee's declared parameters
// so moved-in arguments can be checked at call sites without
// internal/ownership depending on internal/scope or internal/check.
type Analyzer struct {
	ResolveParams func(callee ast.Expr) []*ast.Param
}

func NewAnalyzer(resolveParams func(callee ast.Expr) []*ast.Param) *Analyzer {
	return &Analyzer{ResolveParams: resolveParams}
}

// AnalyzeFunction checks one function's body and emits diagnostics to
// sink for every use-after-move (B001) and invalid moved-in argument
// (B002) it finds.
func (a *Analyzer) AnalyzeFunction(fn *ast.FuncDecl, sink *diag.Sink) {
	e := env{}
	for _, p := range fn.Params {
		e[p.Name] = binding{State: Owned, Pos: p.Pos, Copy: p.Type != nil && IsCopy(p.Type)}
	}
	body, ok := fn.Body.(*ast.BlockExpr)
	if !ok {
		return
	}
	a.walkBlockExpr(body, e, sink)
}

// ---------------------------------------------------------------------
// Statements
// ---------------------------------------------------------------------

func (a *Analyzer) walkStmts(stmts []ast.Stmt, e env, sink *diag.Sink) env {
	for _, s := range stmts {
		e = a.walkStmt(s, e, sink)
	}
	return e
}

func (a *Analyzer) walkStmt(s ast.Stmt, e env, sink *diag.Sink) env {
	switch st := s.(type) {
	case *ast.ExprStmt:
		a.walkExpr(st.Expr, e, sink)
	case *ast.VarDecl:
		if st.Value != nil {
			a.consumeRHS(st.Value, e, sink)
		}
		e[st.Name] = binding{State: Owned, Pos: st.Pos, Copy: st.Type != nil && IsCopy(st.Type)}
	case *ast.ReturnStmt:
		if st.Value != nil {
			a.consumeRHS(st.Value, e, sink)
		}
	case *ast.IfStmt:
		return a.walkIf(st, e, sink)
	case *ast.WhileStmt:
		return a.walkLoop(e, sink, func(in env, s *diag.Sink) env {
			a.walkExpr(st.Cond, in, s)
			return a.walkBlock(st.Body, in, s)
		})
	case *ast.ForInStmt:
		a.walkExpr(st.Iterable, e, sink)
		return a.walkLoop(e, sink, func(in env, s *diag.Sink) env {
			in = in.clone()
			in[st.Var] = binding{State: Owned, Pos: st.Pos}
			return a.walkBlock(st.Body, in, s)
		})
	case *ast.MatchStmt:
		return a.walkMatch(st.Match, e, sink)
	case *ast.BlockStmt:
		return a.walkBlock(st, e, sink)
	case *ast.GoStmt:
		a.walkExpr(st.Call, e, sink)
	case *ast.DeferStmt:
		a.checkDeferRegistration(st.Call, e, sink)
	case *ast.BreakStmt, *ast.ContinueStmt:
		// no state effect; the enclosing loop's join absorbs both exits
	}
	return e
}

func (a *Analyzer) walkBlock(b *ast.BlockStmt, e env, sink *diag.Sink) env {
	if b == nil {
		return e
	}
	return a.walkStmts(b.Stmts, e.clone(), sink)
}

func (a *Analyzer) walkBlockExpr(b *ast.BlockExpr, e env, sink *diag.Sink) env {
	e = a.walkStmts(b.Stmts, e, sink)
	if b.Result != nil {
		a.walkExpr(b.Result, e, sink)
	}
	return e
}

func (a *Analyzer) walkIf(st *ast.IfStmt, e env, sink *diag.Sink) env {
	a.walkExpr(st.Cond, e, sink)
	merged := a.walkBlock(st.Then, e, sink)
	for _, elif := range st.Elifs {
		a.walkExpr(elif.Cond, e, sink)
		merged = joinEnv(merged, a.walkBlock(elif.Body, e, sink))
	}
	if st.Else != nil {
		merged = joinEnv(merged, a.walkBlock(st.Else, e, sink))
	} else {
		merged = joinEnv(merged, e)
	}
	return merged
}

// walkLoop analyzes a loop body against a fixed point of the state
// lattice before emitting any diagnostics. Join only ever moves a
// binding toward Moved across iterations, so two silent dry runs are
// enough to settle: the env entering iteration N+1 already equals the
// env entering iteration N+2. Only the final, real pass over that
// settled env reports diagnostics, so a use that's only unsound on a
// second-or-later trip around the loop is still caught exactly once.
func (a *Analyzer) walkLoop(e env, sink *diag.Sink, body func(env, *diag.Sink) env) env {
	discard := diag.NewSink()
	settled := joinEnv(e, body(e.clone(), discard))
	settled = joinEnv(settled, body(settled.clone(), discard))
	after := body(settled.clone(), sink)
	return joinEnv(settled, after)
}

func (a *Analyzer) walkMatch(m *ast.MatchExpr, e env, sink *diag.Sink) env {
	a.walkExpr(m.Scrutinee, e, sink)
	var merged env
	for _, arm := range m.Arms {
		armEnv := e.clone()
		for _, name := range arm.Pattern.BoundVars() {
			armEnv[name] = binding{State: Owned, Pos: arm.Pos}
		}
		if arm.Guard != nil {
			a.walkExpr(arm.Guard, armEnv, sink)
		}
		a.walkExpr(arm.Body, armEnv, sink)
		if merged == nil {
			merged = armEnv
		} else {
			merged = joinEnv(merged, armEnv)
		}
	}
	if merged == nil {
		return e
	}
	return merged
}

// ---------------------------------------------------------------------
// Expressions
// ---------------------------------------------------------------------

// walkExpr visits e purely as a read: every Ident it finds is checked
// against e's current state, never transitioned. Callers that need a
// move (consumeRHS, the move operand of MoveExpr) handle that ident
// specially before falling back here for everything else.
func (a *Analyzer) walkExpr(expr ast.Expr, e env, sink *diag.Sink) {
	switch ex := expr.(type) {
	case nil:
	case *ast.Ident:
		a.checkUse(ex, e, sink)
	case *ast.BinaryExpr:
		a.walkExpr(ex.Left, e, sink)
		a.walkExpr(ex.Right, e, sink)
	case *ast.UnaryExpr:
		a.walkExpr(ex.Expr, e, sink)
	case *ast.Grouping:
		a.walkExpr(ex.Inner, e, sink)
	case *ast.AssignExpr:
		a.walkLValue(ex.Target, e, sink)
		a.consumeRHS(ex.Value, e, sink)
	case *ast.CallExpr:
		a.walkExpr(ex.Callee, e, sink)
		a.walkCallArgs(ex, e, sink)
	case *ast.GetExpr:
		a.walkExpr(ex.Target, e, sink)
	case *ast.SetExpr:
		a.walkExpr(ex.Target, e, sink)
		a.walkExpr(ex.Value, e, sink)
	case *ast.IndexExpr:
		a.walkExpr(ex.Target, e, sink)
		a.walkExpr(ex.Index, e, sink)
	case *ast.ListLit:
		for _, el := range ex.Elements {
			a.walkExpr(el, e, sink)
		}
	case *ast.DictLit:
		for _, entry := range ex.Entries {
			a.walkExpr(entry.Key, e, sink)
			a.walkExpr(entry.Value, e, sink)
		}
	case *ast.TupleLit:
		for _, el := range ex.Elements {
			a.walkExpr(el, e, sink)
		}
	case *ast.Lambda:
		// A closure's body runs later, possibly more than once, against
		// whatever it captured by reference. It is analyzed against an
		// isolated clone so its own moves don't leak into the enclosing
		// function's flow; any capture-by-move would need the parser to
		// mark captured names explicitly, which this AST does not do.
		inner := e.clone()
		for _, p := range ex.Params {
			inner[p.Name] = binding{State: Owned, Pos: p.Pos, Copy: p.Type != nil && IsCopy(p.Type)}
		}
		a.walkExpr(ex.Body, inner, sink)
	case *ast.Await:
		a.walkExpr(ex.Value, e, sink)
	case *ast.Send:
		a.walkExpr(ex.Channel, e, sink)
		a.walkExpr(ex.Value, e, sink)
	case *ast.Recv:
		a.walkExpr(ex.Channel, e, sink)
	case *ast.MoveExpr:
		if id, ok := ex.Value.(*ast.Ident); ok {
			a.moveOut(id.Name, ex.Pos, e, sink)
		} else {
			a.walkExpr(ex.Value, e, sink)
		}
	case *ast.NewExpr:
		for _, arg := range ex.Args {
			a.walkExpr(arg, e, sink)
		}
	case *ast.DeleteExpr:
		a.walkExpr(ex.Value, e, sink)
	case *ast.StringInterp:
		for _, part := range ex.Parts {
			if part.Expr != nil {
				a.walkExpr(part.Expr, e, sink)
			}
		}
	case *ast.BlockExpr:
		a.walkBlockExpr(ex, e.clone(), sink)
	case *ast.IfExpr:
		a.walkExpr(ex.Cond, e, sink)
		thenEnv := e.clone()
		a.walkExpr(ex.Then, thenEnv, sink)
		merged := thenEnv
		if ex.Else != nil {
			elseEnv := e.clone()
			a.walkExpr(ex.Else, elseEnv, sink)
			merged = joinEnv(thenEnv, elseEnv)
		} else {
			merged = joinEnv(thenEnv, e)
		}
		for k, v := range merged {
			e[k] = v
		}
	case *ast.MatchExpr:
		result := a.walkMatch(ex, e, sink)
		for k, v := range result {
			e[k] = v
		}
	case *ast.ErrorExpr:
		// parser already reported this subtree; nothing to check
	}
}

// walkLValue visits an assignment target. A bare identifier is the
// binding being overwritten, not read, so it is not checked for
// use-after-move; anything more structured (field/index target) does
// read its base expression first.
func (a *Analyzer) walkLValue(target ast.Expr, e env, sink *diag.Sink) {
	switch t := target.(type) {
	case *ast.Ident:
		// overwritten, not read
	case *ast.GetExpr:
		a.walkExpr(t.Target, e, sink)
	case *ast.IndexExpr:
		a.walkExpr(t.Target, e, sink)
		a.walkExpr(t.Index, e, sink)
	default:
		a.walkExpr(target, e, sink)
	}
}

// consumeRHS handles the one spot a move actually happens without an
// explicit `move` keyword: a bare identifier read into a non-Copy
// destination (let binding, assignment, or return) moves its source.
func (a *Analyzer) consumeRHS(value ast.Expr, e env, sink *diag.Sink) {
	id, ok := value.(*ast.Ident)
	if !ok {
		a.walkExpr(value, e, sink)
		return
	}
	if b, tracked := e[id.Name]; tracked && b.Copy {
		a.checkUse(id, e, sink)
		return
	}
	a.moveOut(id.Name, id.Pos, e, sink)
}

func (a *Analyzer) checkUse(id *ast.Ident, e env, sink *diag.Sink) {
	b, ok := e[id.Name]
	if !ok || b.State != Moved {
		return
	}
	sink.Emit(diag.New("B001",
		fmt.Sprintf("use of moved value %q", id.Name),
		diag.At(id.Pos.File, id.Pos.Line, id.Pos.Column),
		diag.WithData("movedAt", fmt.Sprintf("%d:%d", b.Pos.Line, b.Pos.Column)),
	))
}

func (a *Analyzer) moveOut(name string, pos ast.Pos, e env, sink *diag.Sink) {
	b, ok := e[name]
	if !ok {
		return
	}
	if b.Copy {
		return
	}
	if b.State == Moved {
		sink.Emit(diag.New("B001",
			fmt.Sprintf("use of moved value %q", name),
			diag.At(pos.File, pos.Line, pos.Column),
			diag.WithData("movedAt", fmt.Sprintf("%d:%d", b.Pos.Line, b.Pos.Column)),
		))
		return
	}
	e[name] = binding{State: Moved, Pos: pos, Copy: b.Copy}
}

// walkCallArgs checks ordinary argument reads, then separately checks
// every moved-in parameter's argument: it must itself be movable right
// now, and moving it is the call's effect on the caller's binding.
func (a *Analyzer) walkCallArgs(call *ast.CallExpr, e env, sink *diag.Sink) {
	var params []*ast.Param
	if a.ResolveParams != nil {
		params = a.ResolveParams(call.Callee)
	}
	for i, arg := range call.Args {
		if i < len(params) && params[i] != nil && params[i].MovedIn {
			a.consumeMovedInArg(arg, e, sink)
			continue
		}
		a.walkExpr(arg, e, sink)
	}
}

func (a *Analyzer) consumeMovedInArg(arg ast.Expr, e env, sink *diag.Sink) {
	id, ok := arg.(*ast.Ident)
	if !ok {
		a.walkExpr(arg, e, sink)
		return
	}
	b, tracked := e[id.Name]
	if !tracked || b.Copy {
		return
	}
	if b.State == Moved {
		sink.Emit(diag.New("B002",
			fmt.Sprintf("argument %q is already moved and cannot be moved into a moved-in parameter", id.Name),
			diag.At(id.Pos.File, id.Pos.Line, id.Pos.Column),
			diag.WithData("movedAt", fmt.Sprintf("%d:%d", b.Pos.Line, b.Pos.Column)),
		))
		return
	}
	e[id.Name] = binding{State: Moved, Pos: id.Pos, Copy: b.Copy}
}

// checkDeferRegistration validates a deferred call's argument idents at
// the moment `defer` runs, not when the deferred call itself executes:
// the call body closes over whatever state existed at registration, so
// a variable already moved at that point can never be safely read later.
func (a *Analyzer) checkDeferRegistration(call ast.Expr, e env, sink *diag.Sink) {
	for _, id := range collectIdents(call) {
		a.checkUse(id, e, sink)
	}
}

func collectIdents(expr ast.Expr) []*ast.Ident {
	var out []*ast.Ident
	var visit func(ast.Expr)
	visit = func(ex ast.Expr) {
		switch v := ex.(type) {
		case nil:
		case *ast.Ident:
			out = append(out, v)
		case *ast.BinaryExpr:
			visit(v.Left)
			visit(v.Right)
		case *ast.UnaryExpr:
			visit(v.Expr)
		case *ast.Grouping:
			visit(v.Inner)
		case *ast.CallExpr:
			visit(v.Callee)
			for _, a := range v.Args {
				visit(a)
			}
		case *ast.GetExpr:
			visit(v.Target)
		case *ast.IndexExpr:
			visit(v.Target)
			visit(v.Index)
		case *ast.ListLit:
			for _, el := range v.Elements {
				visit(el)
			}
		case *ast.TupleLit:
			for _, el := range v.Elements {
				visit(el)
			}
		case *ast.Await:
			visit(v.Value)
		}
	}
	visit(expr)
	return out
}
