package lower

import (
	"github.com/tocin-lang/tocin/internal/ast"
	"github.com/tocin-lang/tocin/internal/core"
)

// toCore translates one surface expression into internal/core's ANF
// node set. Nested complex subexpressions are not hoisted into
// intermediate let-bindings (a full ANF normalizer, as the teacher's
// internal/elaborate/expressions.go runs as a second desugaring pass);
// this pass only needs to preserve the shape generics/async/dictionary
// lowering act on, so it builds the (non-strict) Core tree directly.
func (l *Lowerer) toCore(expr ast.Expr) core.CoreExpr {
	if expr == nil {
		return &core.Lit{CoreNode: nodeOf(ast.Pos{}), Kind: core.UnitLit, Value: nil}
	}
	pos := expr.Position()
	switch e := expr.(type) {
	case *ast.Literal:
		return l.toCoreLiteral(e)
	case *ast.Ident:
		return &core.Var{CoreNode: nodeOf(pos), Name: e.Name}
	case *ast.BinaryExpr:
		return &core.BinOp{CoreNode: nodeOf(pos), Op: e.Op, Left: l.toCore(e.Left), Right: l.toCore(e.Right)}
	case *ast.UnaryExpr:
		return &core.UnOp{CoreNode: nodeOf(pos), Op: e.Op, Operand: l.toCore(e.Expr)}
	case *ast.Grouping:
		return l.toCore(e.Inner)
	case *ast.AssignExpr:
		return &core.App{CoreNode: nodeOf(pos), Func: &core.Var{CoreNode: nodeOf(pos), Name: "$assign"}, Args: []core.CoreExpr{l.toCore(e.Target), l.toCore(e.Value)}}
	case *ast.CallExpr:
		return l.toCoreCall(e)
	case *ast.GetExpr:
		return &core.RecordAccess{CoreNode: nodeOf(pos), Record: l.toCore(e.Target), Field: e.Name}
	case *ast.SetExpr:
		return &core.App{CoreNode: nodeOf(pos), Func: &core.Var{CoreNode: nodeOf(pos), Name: "$setField"}, Args: []core.CoreExpr{l.toCore(e.Target), &core.Lit{CoreNode: nodeOf(pos), Kind: core.StringLit, Value: e.Name}, l.toCore(e.Value)}}
	case *ast.IndexExpr:
		return &core.App{CoreNode: nodeOf(pos), Func: &core.Var{CoreNode: nodeOf(pos), Name: "$index"}, Args: []core.CoreExpr{l.toCore(e.Target), l.toCore(e.Index)}}
	case *ast.ListLit:
		elems := make([]core.CoreExpr, len(e.Elements))
		for i, el := range e.Elements {
			elems[i] = l.toCore(el)
		}
		return &core.List{CoreNode: nodeOf(pos), Elements: elems}
	case *ast.DictLit:
		fields := make(map[string]core.CoreExpr, len(e.Entries))
		for i, entry := range e.Entries {
			fields[dictKeyName(i, entry)] = l.toCore(entry.Value)
		}
		return &core.Record{CoreNode: nodeOf(pos), Fields: fields}
	case *ast.TupleLit:
		elems := make([]core.CoreExpr, len(e.Elements))
		for i, el := range e.Elements {
			elems[i] = l.toCore(el)
		}
		return &core.List{CoreNode: nodeOf(pos), Elements: elems}
	case *ast.Lambda:
		return &core.Lambda{CoreNode: nodeOf(pos), Params: paramNames(e.Params), Body: l.toCore(e.Body)}
	case *ast.Await:
		return &core.App{CoreNode: nodeOf(pos), Func: &core.Var{CoreNode: nodeOf(pos), Name: "$await"}, Args: []core.CoreExpr{l.toCore(e.Value)}}
	case *ast.Send:
		return &core.App{CoreNode: nodeOf(pos), Func: &core.Var{CoreNode: nodeOf(pos), Name: "$send"}, Args: []core.CoreExpr{l.toCore(e.Channel), l.toCore(e.Value)}}
	case *ast.Recv:
		return &core.App{CoreNode: nodeOf(pos), Func: &core.Var{CoreNode: nodeOf(pos), Name: "$recv"}, Args: []core.CoreExpr{l.toCore(e.Channel)}}
	case *ast.MoveExpr:
		return l.toCore(e.Value)
	case *ast.NewExpr:
		args := make([]core.CoreExpr, len(e.Args))
		for i, a := range e.Args {
			args[i] = l.toCore(a)
		}
		return &core.App{CoreNode: nodeOf(pos), Func: &core.Var{CoreNode: nodeOf(pos), Name: "new_" + sanitize(e.Type.String())}, Args: args}
	case *ast.DeleteExpr:
		return &core.App{CoreNode: nodeOf(pos), Func: &core.Var{CoreNode: nodeOf(pos), Name: "$delete"}, Args: []core.CoreExpr{l.toCore(e.Value)}}
	case *ast.StringInterp:
		return l.toCoreStringInterp(e)
	case *ast.BlockExpr:
		return l.toCoreBlock(e)
	case *ast.IfExpr:
		return &core.If{CoreNode: nodeOf(pos), Cond: l.toCore(e.Cond), Then: l.toCore(e.Then), Else: l.toCore(e.Else)}
	case *ast.MatchExpr:
		return l.toCoreMatch(e)
	case *ast.ErrorExpr:
		return &core.Lit{CoreNode: nodeOf(pos), Kind: core.UnitLit, Value: nil}
	default:
		return &core.Lit{CoreNode: nodeOf(pos), Kind: core.UnitLit, Value: nil}
	}
}

func dictKeyName(i int, entry ast.DictEntry) string {
	if lit, ok := entry.Key.(*ast.Literal); ok {
		if s, ok := lit.Value.(string); ok {
			return s
		}
	}
	return core_itoa(i)
}

func core_itoa(i int) string {
	if i == 0 {
		return "0"
	}
	digits := []byte{}
	n := i
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	return string(digits)
}

func (l *Lowerer) toCoreLiteral(lit *ast.Literal) core.CoreExpr {
	var kind core.LitKind
	switch lit.Kind {
	case ast.IntLit:
		kind = core.IntLit
	case ast.FloatLit:
		kind = core.FloatLit
	case ast.StringLit:
		kind = core.StringLit
	case ast.BoolLit:
		kind = core.BoolLit
	case ast.NilLit:
		kind = core.UnitLit
	}
	return &core.Lit{CoreNode: nodeOf(lit.Pos), Kind: kind, Value: lit.Value}
}

// toCoreCall lowers a call expression, dispatching to method-call
// rewriting (dispatch.go) when the callee is a field access, and
// resolving a generic instantiation (TypeArgs) through the shared
// InstantiationCache otherwise.
func (l *Lowerer) toCoreCall(call *ast.CallExpr) core.CoreExpr {
	if get, ok := call.Callee.(*ast.GetExpr); ok {
		return l.lowerMethodCall(get, call.Args, call.Pos)
	}
	args := make([]core.CoreExpr, len(call.Args))
	for i, a := range call.Args {
		args[i] = l.toCore(a)
	}
	if ident, ok := call.Callee.(*ast.Ident); ok && len(call.TypeArgs) > 0 {
		mangled := l.instantiateCallee(ident.Name, call.TypeArgs)
		return &core.App{CoreNode: nodeOf(call.Pos), Func: &core.Var{CoreNode: nodeOf(call.Pos), Name: mangled}, Args: args}
	}
	return &core.App{CoreNode: nodeOf(call.Pos), Func: l.toCore(call.Callee), Args: args}
}
