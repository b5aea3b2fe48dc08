package types

import "sort"

// Canonicalize rewrites t into the canonical form the data model
// requires: Union members sorted by String() and deduplicated, nested
// Unions flattened, and every nested Type canonicalized recursively.
// Canonicalize is idempotent: Canonicalize(Canonicalize(t)).Equal(t)'s
// canonical form always holds (internal/types/canon_test.go).
func Canonicalize(t Type) Type {
	switch v := t.(type) {
	case *Union:
		return canonicalizeUnion(v)
	case *Function:
		params := make([]Type, len(v.Params))
		for i, p := range v.Params {
			params[i] = Canonicalize(p)
		}
		return &Function{Params: params, Return: Canonicalize(v.Return), Effects: v.Effects, IsAsync: v.IsAsync}
	case *Generic:
		args := make([]Type, len(v.Args))
		for i, a := range v.Args {
			args[i] = Canonicalize(a)
		}
		return &Generic{Name: v.Name, Args: args}
	case *RValueRef:
		return &RValueRef{Inner: Canonicalize(v.Inner)}
	default:
		return t
	}
}

func canonicalizeUnion(u *Union) Type {
	var flat []Type
	flattenUnion(u, &flat)

	for i := range flat {
		flat[i] = Canonicalize(flat[i])
	}

	sort.Slice(flat, func(i, j int) bool { return flat[i].String() < flat[j].String() })

	deduped := flat[:0]
	for i, m := range flat {
		if i == 0 || m.String() != flat[i-1].String() {
			deduped = append(deduped, m)
		}
	}

	if len(deduped) == 1 {
		return deduped[0]
	}
	return &Union{Members: deduped}
}

func flattenUnion(t Type, out *[]Type) {
	if u, ok := t.(*Union); ok {
		for _, m := range u.Members {
			flattenUnion(m, out)
		}
		return
	}
	*out = append(*out, t)
}

// IsCanonical reports whether t is already in canonical form.
func IsCanonical(t Type) bool {
	return Canonicalize(t).String() == t.String()
}
