package lower

import (
	"testing"

	"github.com/tocin-lang/tocin/internal/ast"
	"github.com/tocin-lang/tocin/internal/core"
	"github.com/tocin-lang/tocin/internal/diag"
	"github.com/tocin-lang/tocin/internal/traits"
	"github.com/tocin-lang/tocin/internal/types"
)

func TestInstantiationCache_SameArgsReuseMangledName(t *testing.T) {
	c := NewInstantiationCache()
	first, isNew := c.Instantiate("f", []types.Type{types.Int})
	if !isNew {
		t.Fatalf("first instantiation should be new")
	}
	second, isNew := c.Instantiate("f", []types.Type{types.Int})
	if isNew {
		t.Fatalf("second identical instantiation should not be new")
	}
	if first != second {
		t.Fatalf("mangled names diverged: %q vs %q", first, second)
	}
	if first != "f_int" {
		t.Fatalf("expected f_int, got %q", first)
	}
}

func TestInstantiationCache_DifferentArgsDistinctNames(t *testing.T) {
	c := NewInstantiationCache()
	a, _ := c.Instantiate("f", []types.Type{types.Int})
	b, _ := c.Instantiate("f", []types.Type{types.String})
	if a == b {
		t.Fatalf("distinct type arguments mangled to the same name: %q", a)
	}
}

func TestSplitAsync_ProducesDualEntryPoints(t *testing.T) {
	fn := &ast.FuncDecl{
		Name:       "fetch",
		Params:     []*ast.Param{{Name: "url"}},
		ReturnType: &ast.SimpleType{Name: "string"},
		Body:       &ast.BlockExpr{Result: &ast.Literal{Kind: ast.StringLit, Value: "x"}},
		IsAsync:    true,
	}
	l := New(nil, diag.NewSink())
	asyncFn, wrapper := SplitAsync(fn, l)

	if asyncFn.Name != "fetch$async" {
		t.Fatalf("expected async entry point named fetch$async, got %q", asyncFn.Name)
	}
	if !asyncFn.IsAsync {
		t.Fatalf("async entry point must stay async")
	}
	if _, ok := asyncFn.ReturnType.(*ast.GenericType); !ok {
		t.Fatalf("async entry point's return type should wrap in Future, got %T", asyncFn.ReturnType)
	}

	if wrapper.Name != "fetch" {
		t.Fatalf("wrapper must keep the original call-site name, got %q", wrapper.Name)
	}
	if wrapper.IsAsync {
		t.Fatalf("wrapper must be synchronous")
	}
	block, ok := wrapper.Body.(*ast.BlockExpr)
	if !ok {
		t.Fatalf("wrapper body should be a block, got %T", wrapper.Body)
	}
	await, ok := block.Result.(*ast.Await)
	if !ok {
		t.Fatalf("wrapper should await the async call, got %T", block.Result)
	}
	call, ok := await.Value.(*ast.CallExpr)
	if !ok {
		t.Fatalf("await should wrap a call, got %T", await.Value)
	}
	callee, ok := call.Callee.(*ast.Ident)
	if !ok || callee.Name != "fetch$async" {
		t.Fatalf("wrapper should call fetch$async, got %#v", call.Callee)
	}
}

func TestLowerMethodCall_DirectImplIsPlainCall(t *testing.T) {
	reg := traits.NewRegistry()
	sink := diag.NewSink()
	reg.RegisterTrait(&ast.TraitDecl{
		Name:    "Show",
		Methods: []*ast.TraitMethod{{Name: "show"}},
	}, sink)
	reg.RegisterImpl(&ast.ImplDecl{
		Trait:   "Show",
		Target:  &ast.SimpleType{Name: "Point"},
		Methods: []*ast.FuncDecl{{Name: "show"}},
	}, &types.Named{Name: "Point"}, sink)
	if sink.HasErrors() {
		t.Fatalf("unexpected registration errors: %v", sink.Diagnostics())
	}

	l := New(reg, diag.NewSink())
	l.TypeOf = func(e ast.Expr) types.Type { return &types.Named{Name: "Point"} }

	get := &ast.GetExpr{Target: &ast.Ident{Name: "p"}, Name: "show"}
	result := l.lowerMethodCall(get, nil, ast.Pos{})

	app, ok := result.(*core.App)
	if !ok {
		t.Fatalf("direct impl call should lower to a plain App, got %T", result)
	}
	fn, ok := app.Func.(*core.Var)
	if !ok || fn.Name != "Point_show" {
		t.Fatalf("expected mangled call to Point_show, got %#v", app.Func)
	}
}

func TestLowerMethodCall_DynamicDispatchUsesDictApp(t *testing.T) {
	reg := traits.NewRegistry()
	sink := diag.NewSink()
	reg.RegisterTrait(&ast.TraitDecl{
		Name:    "Show",
		Methods: []*ast.TraitMethod{{Name: "show"}},
	}, sink)

	l := New(reg, diag.NewSink())
	l.TypeOf = func(e ast.Expr) types.Type { return &types.TraitObject{Trait: "Show"} }

	get := &ast.GetExpr{Target: &ast.Ident{Name: "p"}, Name: "show"}
	result := l.lowerMethodCall(get, nil, ast.Pos{})

	app, ok := result.(*core.DictApp)
	if !ok {
		t.Fatalf("dynamic dispatch call should lower to a DictApp, got %T", result)
	}
	if app.Method != "show" {
		t.Fatalf("expected method show, got %q", app.Method)
	}
	if _, ok := app.Dict.(*core.DictRef); !ok {
		t.Fatalf("expected a DictRef dictionary, got %T", app.Dict)
	}
}

func TestLowerMethodCall_NoTypeInfoFallsBackToFieldCall(t *testing.T) {
	l := New(nil, diag.NewSink())
	get := &ast.GetExpr{Target: &ast.Ident{Name: "p"}, Name: "show"}
	result := l.lowerMethodCall(get, nil, ast.Pos{})

	app, ok := result.(*core.App)
	if !ok {
		t.Fatalf("fallback should still produce an App, got %T", result)
	}
	if _, ok := app.Func.(*core.RecordAccess); !ok {
		t.Fatalf("fallback should call through a RecordAccess, got %T", app.Func)
	}
}

func TestAbstractDictionaries_OneParamPerBound(t *testing.T) {
	l := New(nil, diag.NewSink())
	bounds := []types.TraitBoundConstraint{
		{Param: "T", Traits: []string{"Eq", "Ord"}},
	}
	body := &core.Lambda{Params: []string{"x"}, Body: &core.Var{Name: "x"}}

	result := l.abstractDictionaries(bounds, body)
	abs, ok := result.(*core.DictAbs)
	if !ok {
		t.Fatalf("expected DictAbs, got %T", result)
	}
	if len(abs.Params) != 2 {
		t.Fatalf("expected one dict param per trait bound, got %d", len(abs.Params))
	}
	if abs.Params[0].ClassName != "Eq" || abs.Params[1].ClassName != "Ord" {
		t.Fatalf("expected deterministic Eq,Ord order, got %#v", abs.Params)
	}
}

func TestLinkModules_OrdersDependenciesFirst(t *testing.T) {
	files := map[ModuleID]*ast.File{
		"app":  {Imports: []*ast.ImportDecl{{Path: "util"}}},
		"util": {},
	}
	order, err := LinkModules("app", files)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(order) != 2 || order[0] != "util" || order[1] != "app" {
		t.Fatalf("expected [util app], got %v", order)
	}
}

func TestLinkModules_CycleIsReported(t *testing.T) {
	files := map[ModuleID]*ast.File{
		"a": {Imports: []*ast.ImportDecl{{Path: "b"}}},
		"b": {Imports: []*ast.ImportDecl{{Path: "a"}}},
	}
	_, err := LinkModules("a", files)
	if err == nil {
		t.Fatalf("expected a cycle error")
	}
	if _, ok := err.(*CycleError); !ok {
		t.Fatalf("expected *CycleError, got %T", err)
	}
}

func TestMangle_SanitizesGenericSyntax(t *testing.T) {
	got := Mangle("f", []types.Type{&types.Generic{Name: "List", Args: []types.Type{types.Int}}})
	for _, r := range got {
		if r == '<' || r == '>' || r == ',' {
			t.Fatalf("mangled name still contains raw generic syntax: %q", got)
		}
	}
}
