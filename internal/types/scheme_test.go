package types

import "testing"

func TestScheme_Instantiate(t *testing.T) {
	// func identity<T>(x: T) -> T
	s := &Scheme{
		Params: []string{"T"},
		Bounds: map[string][]string{},
		Type:   &Function{Params: []Type{&TypeParameter{Name: "T"}}, Return: &TypeParameter{Name: "T"}},
	}
	got := s.Instantiate([]Type{Int})
	want := &Function{Params: []Type{Int}, Return: Int}
	if !got.Equal(want) {
		t.Errorf("Instantiate = %s, want %s", got, want)
	}
}

func TestScheme_InstantiatePreservesUnboundParts(t *testing.T) {
	s := &Scheme{
		Params: []string{"T"},
		Type:   &Function{Params: []Type{&TypeParameter{Name: "T"}, Bool}, Return: Unit},
	}
	got := s.Instantiate([]Type{String}).(*Function)
	if !got.Params[1].Equal(Bool) {
		t.Errorf("expected unbound param to survive instantiation unchanged, got %s", got.Params[1])
	}
}

func TestGeneralize_ClosesOverFreeParams(t *testing.T) {
	t1 := &TypeParameter{Name: "A"}
	t2 := &TypeParameter{Name: "B"}
	fn := &Function{Params: []Type{t1, t2}, Return: t1}
	s := Generalize(fn)
	if len(s.Params) != 2 || s.Params[0] != "A" || s.Params[1] != "B" {
		t.Errorf("Generalize params = %v, want [A B]", s.Params)
	}
}

func TestFreeTypeParams_Nested(t *testing.T) {
	g := &Generic{Name: "Result", Args: []Type{&TypeParameter{Name: "T"}, &TypeParameter{Name: "E"}}}
	fn := &Function{Params: []Type{g}, Return: &TypeParameter{Name: "T"}}
	got := FreeTypeParams(fn)
	if len(got) != 2 || got[0] != "E" || got[1] != "T" {
		t.Errorf("FreeTypeParams = %v, want [E T] (sorted)", got)
	}
}

func TestSubstitute_Recursive(t *testing.T) {
	fn := &Function{
		Params: []Type{&TypeParameter{Name: "T"}},
		Return: &Generic{Name: "Option", Args: []Type{&TypeParameter{Name: "T"}}},
	}
	got := Substitute(fn, map[string]Type{"T": String})
	want := &Function{Params: []Type{String}, Return: &Generic{Name: "Option", Args: []Type{String}}}
	if !got.Equal(want) {
		t.Errorf("Substitute = %s, want %s", got, want)
	}
}
