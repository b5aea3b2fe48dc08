package dtree

import (
	"testing"

	"github.com/tocin-lang/tocin/internal/ast"
	"github.com/tocin-lang/tocin/internal/diag"
)

func TestCheckExhaustiveness_BoolComplete(t *testing.T) {
	reg := NewRegistry()
	arms := []Arm{
		{Pattern: lit(ast.BoolLit, true)},
		{Pattern: lit(ast.BoolLit, false)},
	}
	diags := CheckExhaustiveness(reg, "bool", arms, ast.Pos{})
	for _, d := range diags {
		if d.Code == "P001" {
			t.Errorf("unexpected P001 for a complete bool match: %s", d.Message)
		}
	}
}

func TestCheckExhaustiveness_BoolMissingFalse(t *testing.T) {
	reg := NewRegistry()
	arms := []Arm{{Pattern: lit(ast.BoolLit, true)}}
	diags := CheckExhaustiveness(reg, "bool", arms, ast.Pos{})
	if !hasCode(diags, "P001") {
		t.Fatal("expected P001 for a bool match missing false")
	}
}

func TestCheckExhaustiveness_OptionComplete(t *testing.T) {
	reg := NewRegistry()
	arms := []Arm{
		{Pattern: &ast.ConstructorPattern{Name: "Some", Patterns: []ast.Pattern{&ast.VarPattern{Name: "x"}}}},
		{Pattern: &ast.ConstructorPattern{Name: "None"}},
	}
	diags := CheckExhaustiveness(reg, "Option", arms, ast.Pos{})
	if hasCode(diags, "P001") {
		t.Error("unexpected P001 for a complete Option match")
	}
}

func TestCheckExhaustiveness_UserAlgebraicType(t *testing.T) {
	reg := NewRegistry()
	reg.RegisterAlgebraic("Shape", &ast.AlgebraicType{
		Constructors: []*ast.Constructor{
			{Name: "Circle", Fields: []ast.Type{&ast.SimpleType{Name: "float"}}},
			{Name: "Square", Fields: []ast.Type{&ast.SimpleType{Name: "float"}}},
		},
	})
	arms := []Arm{{Pattern: &ast.ConstructorPattern{Name: "Circle", Patterns: []ast.Pattern{&ast.VarPattern{Name: "r"}}}}}
	diags := CheckExhaustiveness(reg, "Shape", arms, ast.Pos{})
	if !hasCode(diags, "P001") {
		t.Fatal("expected P001: Square is not covered")
	}
}

func TestCheckExhaustiveness_WildcardCoversEverything(t *testing.T) {
	reg := NewRegistry()
	arms := []Arm{{Pattern: &ast.WildcardPattern{}}}
	diags := CheckExhaustiveness(reg, "int", arms, ast.Pos{})
	if hasCode(diags, "P001") {
		t.Error("a trailing wildcard should always make the match exhaustive")
	}
}

func TestCheckExhaustiveness_InfiniteDomainNeedsWildcard(t *testing.T) {
	reg := NewRegistry()
	arms := []Arm{{Pattern: lit(ast.IntLit, 1)}}
	diags := CheckExhaustiveness(reg, "int", arms, ast.Pos{})
	if !hasCode(diags, "P001") {
		t.Fatal("expected P001: int literals alone never cover the whole int domain")
	}
}

func TestCheckExhaustiveness_UnreachableAfterWildcard(t *testing.T) {
	reg := NewRegistry()
	arms := []Arm{
		{Pattern: &ast.WildcardPattern{}},
		{Pattern: lit(ast.BoolLit, true)},
	}
	diags := CheckExhaustiveness(reg, "bool", arms, ast.Pos{})
	if !hasCode(diags, "P002") {
		t.Fatal("expected P002: the true arm is unreachable after a leading wildcard")
	}
}

func TestCheckExhaustiveness_DuplicateConstructorUnreachable(t *testing.T) {
	reg := NewRegistry()
	arms := []Arm{
		{Pattern: &ast.ConstructorPattern{Name: "None"}},
		{Pattern: &ast.ConstructorPattern{Name: "None"}},
		{Pattern: &ast.ConstructorPattern{Name: "Some", Patterns: []ast.Pattern{&ast.WildcardPattern{}}}},
	}
	diags := CheckExhaustiveness(reg, "Option", arms, ast.Pos{})
	if !hasCode(diags, "P002") {
		t.Fatal("expected P002: the second None arm duplicates the first")
	}
}

func TestCheckExhaustiveness_GuardedArmDoesNotCover(t *testing.T) {
	reg := NewRegistry()
	arms := []Arm{
		{Pattern: lit(ast.BoolLit, true), Guard: &ast.Ident{Name: "cond"}},
		{Pattern: lit(ast.BoolLit, false)},
	}
	diags := CheckExhaustiveness(reg, "bool", arms, ast.Pos{})
	if !hasCode(diags, "P001") {
		t.Fatal("expected P001: a guarded true arm does not guarantee coverage of true")
	}
}

func hasCode(diags []diag.Diagnostic, code string) bool {
	for _, d := range diags {
		if d.Code == code {
			return true
		}
	}
	return false
}
