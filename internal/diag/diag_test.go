package diag

import "testing"

func TestRegistry_CoversEveryErrorTableCode(t *testing.T) {
	codes := []string{
		"L001", "L002", "L003",
		"S001", "S002",
		"T001", "T002", "T003", "T004", "T006", "T007", "T009",
		"B001", "B002",
		"M001",
		"P001", "P002",
		"C001", "C002", "C003", "C004",
	}
	for _, code := range codes {
		if _, ok := GetCodeInfo(code); !ok {
			t.Errorf("Registry is missing code %s", code)
		}
	}
}

func TestRegistry_C004AlwaysFatal(t *testing.T) {
	info, ok := GetCodeInfo("C004")
	if !ok {
		t.Fatal("C004 missing from registry")
	}
	if info.Severity != Fatal {
		t.Errorf("C004 severity = %s, want FATAL (spec.md §7: internal invariant violations are always FATAL)", info.Severity)
	}
}

func TestIsTypeError(t *testing.T) {
	if !IsTypeError("T001") {
		t.Error("T001 should be classified as a type error")
	}
	if IsTypeError("B001") {
		t.Error("B001 should not be classified as a type error")
	}
}

func TestNew_DefaultsSeverityFromRegistry(t *testing.T) {
	d := New("P002", "pattern is unreachable")
	if d.Severity != Warning {
		t.Errorf("severity = %s, want WARNING (P002's registry default)", d.Severity)
	}
}

func TestNew_WithOptionsOverride(t *testing.T) {
	d := New("T001", "type mismatch", At("main.tc", 4, 2), WithSeverity(Fatal), WithData("expected", "int"))
	if d.File != "main.tc" || d.Line != 4 || d.Column != 2 {
		t.Errorf("position not applied: %+v", d)
	}
	if d.Severity != Fatal {
		t.Errorf("severity override not applied: %s", d.Severity)
	}
	if d.Data["expected"] != "int" {
		t.Errorf("data not applied: %+v", d.Data)
	}
}
