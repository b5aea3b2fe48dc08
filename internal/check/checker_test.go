package check

import (
	"testing"

	"github.com/tocin-lang/tocin/internal/ast"
	"github.com/tocin-lang/tocin/internal/diag"
	"github.com/tocin-lang/tocin/internal/scope"
)

func ident(name string) *ast.Ident { return &ast.Ident{Name: name} }
func lit(kind ast.LiteralKind, v interface{}) *ast.Literal {
	return &ast.Literal{Kind: kind, Value: v}
}

func hasCode(diags []diag.Diagnostic, code string) bool {
	for _, d := range diags {
		if d.Code == code {
			return true
		}
	}
	return false
}

func checkFn(t *testing.T, fn *ast.FuncDecl) []diag.Diagnostic {
	t.Helper()
	sink := diag.NewSink()
	c := New(nil, sink)
	c.CheckFunction(fn, scope.NewGlobal())
	return sink.Diagnostics()
}

func block(stmts ...ast.Stmt) *ast.BlockExpr { return &ast.BlockExpr{Stmts: stmts} }

func TestCheckFunction_UndefinedReferenceIsT002(t *testing.T) {
	fn := &ast.FuncDecl{Name: "f", Body: block(&ast.ExprStmt{Expr: ident("nope")})}
	diags := checkFn(t, fn)
	if !hasCode(diags, "T002") {
		t.Fatal("expected T002 for an undefined identifier")
	}
}

func TestCheckFunction_IntPlusStringIsT006(t *testing.T) {
	fn := &ast.FuncDecl{Name: "f", Body: block(&ast.ExprStmt{Expr: &ast.BinaryExpr{
		Left: lit(ast.IntLit, int64(1)), Op: "+", Right: lit(ast.StringLit, "x"),
	}})}
	diags := checkFn(t, fn)
	if !hasCode(diags, "T006") {
		t.Fatal("expected T006 for int + string")
	}
}

func TestCheckFunction_IntPlusFloatWidens(t *testing.T) {
	fn := &ast.FuncDecl{Name: "f", Body: block(&ast.ExprStmt{Expr: &ast.BinaryExpr{
		Left: lit(ast.IntLit, int64(1)), Op: "+", Right: lit(ast.FloatLit, 2.0),
	}})}
	diags := checkFn(t, fn)
	if hasCode(diags, "T006") {
		t.Error("int + float should widen, not error")
	}
}

func TestCheckFunction_AssignToImmutableIsT001(t *testing.T) {
	fn := &ast.FuncDecl{Name: "f", Body: block(
		&ast.VarDecl{Name: "x", Type: &ast.SimpleType{Name: "int"}, Value: lit(ast.IntLit, int64(1)), Mutable: false},
		&ast.ExprStmt{Expr: &ast.AssignExpr{Target: ident("x"), Value: lit(ast.IntLit, int64(2))}},
	)}
	diags := checkFn(t, fn)
	if !hasCode(diags, "T001") {
		t.Fatal("expected T001 assigning to a const binding")
	}
}

func TestCheckFunction_AssignToMutableIsFine(t *testing.T) {
	fn := &ast.FuncDecl{Name: "f", Body: block(
		&ast.VarDecl{Name: "x", Type: &ast.SimpleType{Name: "int"}, Value: lit(ast.IntLit, int64(1)), Mutable: true},
		&ast.ExprStmt{Expr: &ast.AssignExpr{Target: ident("x"), Value: lit(ast.IntLit, int64(2))}},
	)}
	diags := checkFn(t, fn)
	if hasCode(diags, "T001") {
		t.Error("assigning to a mutable binding of the same type should be fine")
	}
}

func TestCheckFunction_CallArityMismatchIsT007(t *testing.T) {
	fn := &ast.FuncDecl{Name: "f", Params: []*ast.Param{{Name: "g", Type: &ast.FuncType{
		Params: []ast.Type{&ast.SimpleType{Name: "int"}}, Return: &ast.SimpleType{Name: "int"},
	}}}, Body: block(&ast.ExprStmt{Expr: &ast.CallExpr{Callee: ident("g"), Args: nil}})}
	diags := checkFn(t, fn)
	if !hasCode(diags, "T007") {
		t.Fatal("expected T007 for a zero-arg call to a one-arg function")
	}
}

func TestCheckFunction_CallWrongArgTypeIsT001(t *testing.T) {
	fn := &ast.FuncDecl{Name: "f", Params: []*ast.Param{{Name: "g", Type: &ast.FuncType{
		Params: []ast.Type{&ast.SimpleType{Name: "int"}}, Return: &ast.SimpleType{Name: "int"},
	}}}, Body: block(&ast.ExprStmt{Expr: &ast.CallExpr{Callee: ident("g"), Args: []ast.Expr{lit(ast.StringLit, "x")}}})}
	diags := checkFn(t, fn)
	if !hasCode(diags, "T001") {
		t.Fatal("expected T001 passing a string where an int is expected")
	}
}

func TestCheckFunction_AwaitOutsideAsyncIsT001(t *testing.T) {
	fn := &ast.FuncDecl{Name: "f", IsAsync: false, Body: block(&ast.ExprStmt{Expr: &ast.Await{Value: ident("x")}})}
	diags := checkFn(t, fn)
	if !hasCode(diags, "T001") {
		t.Fatal("expected T001 for await outside an async function")
	}
}

func TestCheckFunction_ListElementMismatchIsT001(t *testing.T) {
	fn := &ast.FuncDecl{Name: "f", Body: block(&ast.ExprStmt{Expr: &ast.ListLit{
		Elements: []ast.Expr{lit(ast.IntLit, int64(1)), lit(ast.StringLit, "x")},
	}})}
	diags := checkFn(t, fn)
	if !hasCode(diags, "T001") {
		t.Fatal("expected T001 for a list literal mixing int and string")
	}
}

func TestCheckFunction_ReturnTypeMismatchIsT001(t *testing.T) {
	fn := &ast.FuncDecl{Name: "f", ReturnType: &ast.SimpleType{Name: "int"}, Body: block(
		&ast.ReturnStmt{Value: lit(ast.StringLit, "x")},
	)}
	diags := checkFn(t, fn)
	if !hasCode(diags, "T001") {
		t.Fatal("expected T001 returning a string from an int-returning function")
	}
}

func TestCheckFunction_UnhandledEffectIsT009(t *testing.T) {
	fn := &ast.FuncDecl{Name: "f", Params: []*ast.Param{{Name: "g", Type: &ast.FuncType{
		Return: &ast.SimpleType{Name: "unit"}, Effects: []string{"IO"},
	}}}, Body: block(&ast.ExprStmt{Expr: &ast.CallExpr{Callee: ident("g")}})}
	diags := checkFn(t, fn)
	if !hasCode(diags, "T009") {
		t.Fatal("expected T009: f performs IO without declaring it")
	}
}

func TestCheckFunction_DeclaredEffectIsFine(t *testing.T) {
	fn := &ast.FuncDecl{Name: "f", Effects: []string{"IO"}, Params: []*ast.Param{{Name: "g", Type: &ast.FuncType{
		Return: &ast.SimpleType{Name: "unit"}, Effects: []string{"IO"},
	}}}, Body: block(&ast.ExprStmt{Expr: &ast.CallExpr{Callee: ident("g")}})}
	diags := checkFn(t, fn)
	if hasCode(diags, "T009") {
		t.Error("f declares IO, so performing it should not be flagged")
	}
}

func TestCheckFunction_MatchNonExhaustiveReportsP001(t *testing.T) {
	fn := &ast.FuncDecl{Name: "f", Body: block(&ast.MatchStmt{Match: &ast.MatchExpr{
		Scrutinee: lit(ast.BoolLit, true),
		Arms:      []*ast.MatchArm{{Pattern: &ast.LiteralPattern{Kind: ast.BoolLit, Value: true}, Body: lit(ast.IntLit, int64(1))}},
	}})}
	diags := checkFn(t, fn)
	if !hasCode(diags, "P001") {
		t.Fatal("expected P001: the match only covers true")
	}
}
