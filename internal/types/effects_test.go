package types

import "testing"

func TestNewEffectSet_SortsAndDedups(t *testing.T) {
	e := NewEffectSet("Net", "IO", "Net")
	if e.String() != "IO, Net" {
		t.Errorf("got %q, want %q", e.String(), "IO, Net")
	}
}

func TestEffectSet_Union(t *testing.T) {
	a := NewEffectSet("IO")
	b := NewEffectSet("FS", "IO")
	got := a.Union(b)
	want := NewEffectSet("FS", "IO")
	if !got.Equal(want) {
		t.Errorf("Union = %v, want %v", got, want)
	}
}

func TestEffectSet_Subtract(t *testing.T) {
	declared := NewEffectSet("IO", "FS")
	performed := NewEffectSet("IO", "Net")
	got := performed.Subtract(declared)
	want := NewEffectSet("Net")
	if !got.Equal(want) {
		t.Errorf("Subtract = %v, want %v (undeclared effects)", got, want)
	}
}

func TestEffectSet_Contains(t *testing.T) {
	e := NewEffectSet("Async", "IO")
	if !e.Contains("Async") {
		t.Error("expected Contains(Async) to be true")
	}
	if e.Contains("Net") {
		t.Error("expected Contains(Net) to be false")
	}
}

func TestKnownEffects_IncludesAsync(t *testing.T) {
	if !KnownEffects["Async"] {
		t.Error("Async must be a known effect for the concurrency-model extension")
	}
}
