package lower

import (
	"strings"

	"github.com/tocin-lang/tocin/internal/types"
)

// Mangle produces the specialized name for a generic function applied
// to concrete type arguments, e.g. Mangle("f", []types.Type{types.Int})
// is "f_int". Each argument is rendered through its canonical
// String() form so two calls that denote the same type (however the
// surface syntax spelled it) mangle identically.
func Mangle(name string, args []types.Type) string {
	if len(args) == 0 {
		return name
	}
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = sanitize(types.Canonicalize(a).String())
	}
	return name + "_" + strings.Join(parts, "_")
}

// sanitize replaces characters a mangled identifier cannot contain
// (generic brackets, union bars, tuple punctuation) with underscores.
func sanitize(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}

// InstantiationCache ensures one specialization body is produced per
// (original name, canonical type-argument list) key: a second call site
// that instantiates f<int> reuses the first's mangled name rather than
// emitting a duplicate declaration (SPEC_FULL.md §4.7, §8 property 6).
type InstantiationCache struct {
	seen map[string]string // cache key -> mangled name
}

// NewInstantiationCache returns an empty cache.
func NewInstantiationCache() *InstantiationCache {
	return &InstantiationCache{seen: make(map[string]string)}
}

// key builds the cache key from the original name and canonical type
// arguments; two argument lists that canonicalize to the same String()
// sequence collide on the same key by construction.
func key(name string, args []types.Type) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = types.Canonicalize(a).String()
	}
	return name + "(" + strings.Join(parts, ",") + ")"
}

// Instantiate returns the mangled name for one concrete use of a
// generic function, and whether this is the first time that exact key
// has been seen (the caller should only emit a new specialized Decl
// when isNew is true).
func (c *InstantiationCache) Instantiate(name string, args []types.Type) (mangled string, isNew bool) {
	k := key(name, args)
	if existing, ok := c.seen[k]; ok {
		return existing, false
	}
	mangled = Mangle(name, args)
	c.seen[k] = mangled
	return mangled, true
}
