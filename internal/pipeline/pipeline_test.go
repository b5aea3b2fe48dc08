package pipeline

import (
	"testing"

	"github.com/tocin-lang/tocin/internal/ast"
	"github.com/tocin-lang/tocin/internal/traits"
)

func TestRun_TypeErrorHaltsBeforeLowering(t *testing.T) {
	fn := &ast.FuncDecl{
		Name: "bad",
		Body: &ast.BlockExpr{
			Result: &ast.BinaryExpr{
				Op:    "+",
				Left:  &ast.Literal{Kind: ast.IntLit, Value: int64(1)},
				Right: &ast.Literal{Kind: ast.StringLit, Value: "x"},
			},
		},
	}
	f := &ast.File{Funcs: []*ast.FuncDecl{fn}}

	result := Run(f, traits.NewRegistry())
	if len(result.Diagnostics) == 0 {
		t.Fatalf("expected a diagnostic for int + string")
	}
	if result.Lowered != nil {
		t.Fatalf("lowering should not run once checking reports an error")
	}
}

func TestRun_CleanFunctionLowers(t *testing.T) {
	fn := &ast.FuncDecl{
		Name:       "identity",
		Params:     []*ast.Param{{Name: "x", Type: &ast.SimpleType{Name: "int"}}},
		ReturnType: &ast.SimpleType{Name: "int"},
		Body:       &ast.BlockExpr{Result: &ast.Ident{Name: "x"}},
	}
	f := &ast.File{Funcs: []*ast.FuncDecl{fn}}

	result := Run(f, traits.NewRegistry())
	if result.Lowered == nil {
		t.Fatalf("expected a lowered program for a clean function")
	}
	if len(result.Lowered.Decls) != 1 {
		t.Fatalf("expected one lowered decl, got %d", len(result.Lowered.Decls))
	}
	if result.Lowered.Decls[0].Name != "identity" {
		t.Fatalf("expected decl named identity, got %q", result.Lowered.Decls[0].Name)
	}
}

func TestRun_MoveViolationHaltsBeforeLowering(t *testing.T) {
	fn := &ast.FuncDecl{
		Name: "useTwice",
		Params: []*ast.Param{
			{Name: "v", Type: &ast.SimpleType{Name: "Widget"}, MovedIn: true},
		},
		Body: &ast.BlockExpr{
			Stmts: []ast.Stmt{
				&ast.ExprStmt{Expr: &ast.MoveExpr{Value: &ast.Ident{Name: "v"}}},
			},
			Result: &ast.MoveExpr{Value: &ast.Ident{Name: "v"}},
		},
	}
	f := &ast.File{Funcs: []*ast.FuncDecl{fn}}

	result := Run(f, traits.NewRegistry())
	if len(result.Diagnostics) == 0 {
		t.Fatalf("expected an ownership diagnostic for the second move of v")
	}
}
