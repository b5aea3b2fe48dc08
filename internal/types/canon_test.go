package types

import "testing"

func TestCanonicalize_SortsUnionMembers(t *testing.T) {
	u := &Union{Members: []Type{String, Int, Bool}}
	got := Canonicalize(u)
	want := "bool | int | string"
	if got.String() != want {
		t.Errorf("Canonicalize(%s) = %s, want %s", u, got, want)
	}
}

func TestCanonicalize_FlattensNestedUnions(t *testing.T) {
	inner := &Union{Members: []Type{Int, String}}
	outer := &Union{Members: []Type{inner, Bool}}
	got, ok := Canonicalize(outer).(*Union)
	if !ok {
		t.Fatalf("expected *Union, got %T", Canonicalize(outer))
	}
	if len(got.Members) != 3 {
		t.Errorf("expected 3 flattened members, got %d: %s", len(got.Members), got)
	}
	for _, m := range got.Members {
		if _, nested := m.(*Union); nested {
			t.Errorf("found nested union in canonical form: %s", got)
		}
	}
}

func TestCanonicalize_DedupsMembers(t *testing.T) {
	u := &Union{Members: []Type{Int, Int, String}}
	got := Canonicalize(u).(*Union)
	if len(got.Members) != 2 {
		t.Errorf("expected dedup to 2 members, got %d: %s", len(got.Members), got)
	}
}

func TestCanonicalize_SingleMemberCollapses(t *testing.T) {
	u := &Union{Members: []Type{Int, Int}}
	got := Canonicalize(u)
	if _, isUnion := got.(*Union); isUnion {
		t.Errorf("expected collapse to bare member, got union: %s", got)
	}
	if !got.Equal(Int) {
		t.Errorf("got %s, want int", got)
	}
}

func TestCanonicalize_Idempotent(t *testing.T) {
	u := &Union{Members: []Type{&Union{Members: []Type{String, Int}}, Int, Bool}}
	once := Canonicalize(u)
	twice := Canonicalize(once)
	if once.String() != twice.String() {
		t.Errorf("canonicalization not idempotent: once=%s twice=%s", once, twice)
	}
}

func TestCanonicalize_RecursesIntoFunctionAndGeneric(t *testing.T) {
	fn := &Function{
		Params: []Type{&Union{Members: []Type{Int, Int}}},
		Return: &Generic{Name: "list", Args: []Type{&Union{Members: []Type{Bool, Bool}}}},
	}
	got := Canonicalize(fn).(*Function)
	if !got.Params[0].Equal(Int) {
		t.Errorf("expected param to collapse to int, got %s", got.Params[0])
	}
	retGen := got.Return.(*Generic)
	if !retGen.Args[0].Equal(Bool) {
		t.Errorf("expected nested generic arg to collapse to bool, got %s", retGen.Args[0])
	}
}

func TestIsCanonical(t *testing.T) {
	if !IsCanonical(Int) {
		t.Error("Int should already be canonical")
	}
	messy := &Union{Members: []Type{Int, Int, String}}
	if IsCanonical(messy) {
		t.Error("union with duplicates should not be canonical")
	}
}
