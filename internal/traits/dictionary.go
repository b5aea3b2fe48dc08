package traits

import "strings"

// DictKey names the dictionary internal/lower synthesizes for a single
// (trait, concrete type) pair, in the same namespaced form as the
// teacher's dictionaries.go ("namespace::ClassName::TypeNF::method"),
// minus the per-method suffix since one dictionary here carries the
// whole trait's method table rather than one entry per method.
func DictKey(trait string, target string) string {
	return "trait::" + trait + "::" + normalizeTypeName(target)
}

// normalizeTypeName strips generic argument lists so Option[int] and
// Option[string] share a dictionary-key prefix family
// ("Option[int]" -> "Option"), matching the teacher's TypeNF
// (type-normal-form) idea: dictionaries are keyed by the type
// constructor, with the instantiation threaded separately by the
// lowering pass's generic-instantiation cache.
func normalizeTypeName(t string) string {
	if i := strings.IndexByte(t, '['); i >= 0 {
		return t[:i]
	}
	return t
}

// Dictionaries returns the DictKey for every bound a generic function
// must be passed at a call site instantiating typeParam with target,
// given the bounds recorded for typeParam. internal/lower calls this
// once per bound parameter when synthesizing the extra dictionary
// arguments a monomorphized call site passes.
func Dictionaries(target string, bounds []string) []string {
	keys := make([]string, len(bounds))
	for i, trait := range bounds {
		keys[i] = DictKey(trait, target)
	}
	return keys
}
