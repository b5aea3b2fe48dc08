package lower

import "github.com/tocin-lang/tocin/internal/ast"

// SplitAsync implements SPEC_FULL.md §4.7's async transform: `async fn
// f(args) -> T` becomes `f$async(args) -> Future<T>` (the original body,
// still containing its `await` suspension points) plus a synchronous
// wrapper `f` that calls f$async and awaits its Future — preserving
// every existing call site of f, which now resolves to the blocking
// wrapper rather than the raw async entry point.
//
// The wrapper's own `await` is a lowering-internal construct, not
// surface syntax the checker would reject for living outside an async
// function: SplitAsync runs after checking, over an already-validated
// FuncDecl, and only toCore (not internal/check) ever sees the
// synthesized wrapper body.
func SplitAsync(fn *ast.FuncDecl, l *Lowerer) (asyncFn, wrapper *ast.FuncDecl) {
	asyncName := fn.Name + "$async"

	futureReturn := &ast.GenericType{Name: "Future", Args: []ast.Type{fn.ReturnType}, Pos: fn.Pos}
	asyncFn = &ast.FuncDecl{
		Name:       asyncName,
		TypeParams: fn.TypeParams,
		Params:     fn.Params,
		ReturnType: futureReturn,
		Effects:    fn.Effects,
		Body:       fn.Body,
		IsAsync:    true,
		IsPure:     fn.IsPure,
		Pos:        fn.Pos,
	}

	args := make([]ast.Expr, len(fn.Params))
	for i, p := range fn.Params {
		args[i] = &ast.Ident{Name: p.Name, Pos: p.Pos}
	}
	call := &ast.CallExpr{Callee: &ast.Ident{Name: asyncName, Pos: fn.Pos}, Args: args, Pos: fn.Pos}

	wrapper = &ast.FuncDecl{
		Name:       fn.Name,
		TypeParams: fn.TypeParams,
		Params:     fn.Params,
		ReturnType: fn.ReturnType,
		Effects:    fn.Effects,
		Body:       &ast.BlockExpr{Result: &ast.Await{Value: call, Pos: fn.Pos}, Pos: fn.Pos},
		IsAsync:    false,
		IsPure:     fn.IsPure,
		IsExport:   fn.IsExport,
		Pos:        fn.Pos,
	}
	return asyncFn, wrapper
}
