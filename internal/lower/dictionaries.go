package lower

import (
	"github.com/tocin-lang/tocin/internal/core"
	"github.com/tocin-lang/tocin/internal/types"
)

// abstractDictionaries wraps a lowered function body in a DictAbs
// carrying one dictionary parameter per trait bound declared on the
// function's type parameters, in the deterministic order traitBounds
// already produced. This is dictionary passing in the classic
// typeclass-elaboration sense: a call to a bounded generic no longer
// needs monomorphization (lower.go's generics.go path handles that
// case separately for a fully concrete instantiation) because the
// trait's method table arrives as an ordinary extra argument,
// resolved the same way internal/traits.Resolve already describes
// dynamic dispatch (see dispatch.go) — grounded on the teacher's
// internal/elaborate/dictionaries.go, which built DictAbs nodes the
// same way but over AST node names this package no longer has.
func (l *Lowerer) abstractDictionaries(bounds []types.TraitBoundConstraint, body core.CoreExpr) core.CoreExpr {
	params := make([]core.DictParam, 0, len(bounds))
	for _, b := range bounds {
		for _, trait := range b.Traits {
			params = append(params, core.DictParam{
				Name:      dictParamName(trait, b.Param),
				ClassName: trait,
				Type:      b.Param,
			})
		}
	}
	return &core.DictAbs{CoreNode: nodeOf(body.Span()), Params: params, Body: body}
}

func dictParamName(trait, param string) string {
	return "dict_" + sanitize(trait) + "_" + sanitize(param)
}
