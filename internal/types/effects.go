package types

import (
	"sort"
	"strings"
)

// EffectSet is a sorted, deduplicated set of effect names a function
// body may perform. The empty set denotes a pure function. Grounded on
// the teacher's effect-row canonicalization (internal/types/effects.go:
// ElaborateEffectRow sorts labels for determinism); this is a flat sorted
// slice rather than a row with a polymorphic tail, since Tocin's effect
// system (an additive extension past spec.md) has no row polymorphism.
type EffectSet []string

// KnownEffects lists the built-in effect vocabulary, plus Async for the
// concurrency-model extension in SPEC_FULL §5; the checker does not
// reject effect names outside it.
var KnownEffects = map[string]bool{
	"IO":    true,
	"FS":    true,
	"Net":   true,
	"Clock": true,
	"Rand":  true,
	"DB":    true,
	"Trace": true,
	"Async": true,
}

// NewEffectSet builds a canonical EffectSet from possibly-duplicated,
// unordered names.
func NewEffectSet(names ...string) EffectSet {
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		seen[n] = true
	}
	out := make(EffectSet, 0, len(seen))
	for n := range seen {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

func (e EffectSet) String() string { return strings.Join(e, ", ") }

func (e EffectSet) Contains(name string) bool {
	for _, n := range e {
		if n == name {
			return true
		}
	}
	return false
}

func (e EffectSet) Equal(other EffectSet) bool {
	if len(e) != len(other) {
		return false
	}
	for i, n := range e {
		if other[i] != n {
			return false
		}
	}
	return true
}

// Union returns the canonical union of e and other.
func (e EffectSet) Union(other EffectSet) EffectSet {
	return NewEffectSet(append(append([]string{}, e...), other...)...)
}

// Subtract returns the effects in e not present in other — used to find
// which of a function body's performed effects are not covered by its
// declared effect set or an available capability.
func (e EffectSet) Subtract(other EffectSet) EffectSet {
	var out EffectSet
	for _, n := range e {
		if !other.Contains(n) {
			out = append(out, n)
		}
	}
	return out
}
