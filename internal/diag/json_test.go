package diag

import (
	"encoding/json"
	"testing"
)

func TestDiagnostic_ToJSON_Deterministic(t *testing.T) {
	d := New("T001", "type mismatch", At("main.tc", 3, 5),
		WithData("zebra", 1), WithData("alpha", 2), WithData("mike", 3))

	var outputs []string
	for i := 0; i < 20; i++ {
		out, err := d.ToJSON(true)
		if err != nil {
			t.Fatalf("ToJSON: %v", err)
		}
		outputs = append(outputs, out)
	}
	for i, out := range outputs[1:] {
		if out != outputs[0] {
			t.Fatalf("iteration %d differs:\n%s\nvs\n%s", i+1, outputs[0], out)
		}
	}
}

func TestDiagnostic_ToJSON_FieldsRoundTrip(t *testing.T) {
	d := New("B001", "use after move", At("a.tc", 1, 1))
	out, err := d.ToJSON(true)
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}
	var decoded map[string]interface{}
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded["code"] != "B001" {
		t.Errorf("code = %v, want B001", decoded["code"])
	}
	if decoded["phase"] != "ownership" {
		t.Errorf("phase = %v, want ownership", decoded["phase"])
	}
	if decoded["schema"] != schema {
		t.Errorf("schema = %v, want %s", decoded["schema"], schema)
	}
}

func TestSink_ToJSON_ArrayOrder(t *testing.T) {
	s := NewSink()
	s.Emit(New("T002", "first"))
	s.Emit(New("T003", "second"))
	out, err := s.ToJSON(true)
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}
	var decoded []map[string]interface{}
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(decoded) != 2 || decoded[0]["message"] != "first" || decoded[1]["message"] != "second" {
		t.Errorf("unexpected order: %v", decoded)
	}
}

func TestWrapDiagnostic_AsDiagnostic(t *testing.T) {
	d := New("T001", "type mismatch")
	err := WrapDiagnostic(d)
	got, ok := AsDiagnostic(err)
	if !ok {
		t.Fatal("expected AsDiagnostic to recover the wrapped diagnostic")
	}
	if got.Code != "T001" {
		t.Errorf("recovered code = %s, want T001", got.Code)
	}
}
