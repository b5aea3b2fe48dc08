package types

// Assignable reports whether a value of type from can be used where a
// value of type to is expected: `let x: to = <from-typed expr>`. It is
// reflexive (Assignable(t, t) always holds) and the relation this
// implements is transitive modulo the one narrowing exception in rule 2
// below.
//
// Rules, in order:
//  1. Equal types are always assignable.
//  2. int widens to float. There is no implicit narrowing in the other
//     direction (Design Notes §9, Open Question 1).
//  3. Nil is assignable to any Generic named "Option" or "Result", and to
//     any type already known to be nilable (RValueRef is never nilable).
//  4. A concrete Named/Generic type is assignable to a TraitObject(Tr) if
//     the registry says it implements Tr — that check needs
//     internal/traits, so Assignable takes an optional `implements`
//     predicate; when nil, TraitObject targets only accept an exact
//     TraitObject(Tr) match.
//  5. from is assignable to a Union if it is assignable to at least one
//     canonicalized member.
//  6. A Union is assignable to to if every one of its members is
//     assignable to to.
//  7. Generic type arguments must be Equal (no variance). A Function is
//     assignable when its parameters are assignable contravariantly and
//     its return type covariantly, via Assignable.
func Assignable(from, to Type, implementsTrait func(t Type, trait string) bool) bool {
	if from.Equal(to) {
		return true
	}

	if fp, ok := from.(*Primitive); ok && fp.Name == "int" {
		if tp, ok := to.(*Primitive); ok && tp.Name == "float" {
			return true
		}
	}

	if fp, ok := from.(*Primitive); ok && fp.Name == "nil" {
		switch t := to.(type) {
		case *Generic:
			if t.Name == "Option" || t.Name == "Result" {
				return true
			}
		}
		return false
	}

	if toUnion, ok := Canonicalize(to).(*Union); ok {
		for _, m := range toUnion.Members {
			if Assignable(from, m, implementsTrait) {
				return true
			}
		}
		return false
	}

	if fromUnion, ok := Canonicalize(from).(*Union); ok {
		for _, m := range fromUnion.Members {
			if !Assignable(m, to, implementsTrait) {
				return false
			}
		}
		return true
	}

	if toTrait, ok := to.(*TraitObject); ok {
		if fromTrait, ok := from.(*TraitObject); ok {
			return fromTrait.Trait == toTrait.Trait
		}
		if implementsTrait != nil {
			return implementsTrait(from, toTrait.Trait)
		}
		return false
	}

	if fromGen, ok := from.(*Generic); ok {
		toGen, ok := to.(*Generic)
		if !ok || fromGen.Name != toGen.Name || len(fromGen.Args) != len(toGen.Args) {
			return false
		}
		for i, a := range fromGen.Args {
			if !a.Equal(toGen.Args[i]) {
				return false
			}
		}
		return true
	}

	if fromFn, ok := from.(*Function); ok {
		toFn, ok := to.(*Function)
		if !ok || len(fromFn.Params) != len(toFn.Params) {
			return false
		}
		for i, p := range fromFn.Params {
			// Parameters are contravariant: the target's parameter type
			// must be assignable to the source's (a narrower caller-side
			// requirement accepts any function that demands no more).
			if !Assignable(toFn.Params[i], p, implementsTrait) {
				return false
			}
		}
		return Assignable(fromFn.Return, toFn.Return, implementsTrait)
	}

	return false
}
