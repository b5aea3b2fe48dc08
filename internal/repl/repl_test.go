package repl

import (
	"bytes"
	"strings"
	"testing"

	"github.com/tocin-lang/tocin/internal/ast"
	"github.com/tocin-lang/tocin/internal/diag"
)

func parseIdentityFn(line string) (*ast.FuncDecl, []diag.Diagnostic) {
	return &ast.FuncDecl{
		Name:       "_repl",
		Params:     []*ast.Param{{Name: "x", Type: &ast.SimpleType{Name: "int"}}},
		ReturnType: &ast.SimpleType{Name: "int"},
		Body:       &ast.BlockExpr{Result: &ast.Ident{Name: "x"}},
	}, nil
}

func parseBadFn(line string) (*ast.FuncDecl, []diag.Diagnostic) {
	return nil, []diag.Diagnostic{diag.New("S001", "unexpected token")}
}

func TestEvalLine_CleanFunctionShowsCore(t *testing.T) {
	var out bytes.Buffer
	r := New(parseIdentityFn, Config{ShowCore: true}, &out)

	r.EvalLine("fn _repl(x: int) -> int { x }")

	if !strings.Contains(out.String(), "_repl = ") {
		t.Errorf("expected lowered decl name in output, got: %s", out.String())
	}
}

func TestEvalLine_ParseErrorPrintsDiagnostic(t *testing.T) {
	var out bytes.Buffer
	r := New(parseBadFn, Config{}, &out)

	r.EvalLine("???")

	if !strings.Contains(out.String(), "S001") {
		t.Errorf("expected S001 in output, got: %s", out.String())
	}
}

func TestEvalLine_WithoutShowCoreStaysQuietOnSuccess(t *testing.T) {
	var out bytes.Buffer
	r := New(parseIdentityFn, Config{ShowCore: false}, &out)

	r.EvalLine("fn _repl(x: int) -> int { x }")

	if out.Len() != 0 {
		t.Errorf("expected no output without ShowCore, got: %s", out.String())
	}
}
