// Package check implements the bottom-up, locally-inferring type
// checker: one synthesis method per ast.Expr/ast.Stmt case, reporting
// through internal/diag rather than returning Go errors. There is no
// global constraint solver — every expression's type is computed from
// its immediate subexpressions' already-computed types.
package check

import (
	"github.com/tocin-lang/tocin/internal/ast"
	"github.com/tocin-lang/tocin/internal/types"
)

var primitiveNames = map[string]*types.Primitive{
	"int":    types.Int,
	"float":  types.Float,
	"string": types.String,
	"bool":   types.Bool,
	"unit":   types.Unit,
	"bytes":  types.Bytes,
	"nil":    types.Nil,
}

// typeParams is the set of generic parameter names currently in scope
// (a FuncDecl's or TypeDecl's TypeParams), so a bare name like `T`
// resolves to a TypeParameter rather than an unknown Named type.
type typeParams map[string]bool

// resolveType converts a surface ast.Type into its canonical
// internal/types.Type. Tuples have no dedicated types.Type member;
// they are represented as a Generic named "tuple" (matching the
// "#tuple" grouping key internal/dtree already uses for the same
// shape), avoiding a new member of the Type sum for a shape internal/
// types never needed until tuples entered the surface language.
func (c *Checker) resolveType(t ast.Type, tp typeParams) types.Type {
	switch v := t.(type) {
	case nil:
		return types.Invalid
	case *ast.SimpleType:
		if tp[v.Name] {
			return &types.TypeParameter{Name: v.Name}
		}
		if p, ok := primitiveNames[v.Name]; ok {
			return p
		}
		if trait, ok := c.Traits.Trait(v.Name); ok {
			_ = trait
			return &types.TraitObject{Trait: v.Name}
		}
		return &types.Named{Name: v.Name}
	case *ast.GenericType:
		args := make([]types.Type, len(v.Args))
		for i, a := range v.Args {
			args[i] = c.resolveType(a, tp)
		}
		g := &types.Generic{Name: v.Name, Args: args}
		if err := types.CheckKind(g); err != nil {
			c.report("T001", err.Error(), v.Pos)
		}
		return g
	case *ast.FuncType:
		params := make([]types.Type, len(v.Params))
		for i, p := range v.Params {
			params[i] = c.resolveType(p, tp)
		}
		return &types.Function{
			Params:  params,
			Return:  c.resolveType(v.Return, tp),
			Effects: types.NewEffectSet(v.Effects...),
			IsAsync: v.IsAsync,
		}
	case *ast.UnionType:
		members := make([]types.Type, len(v.Members))
		for i, m := range v.Members {
			members[i] = c.resolveType(m, tp)
		}
		return types.Canonicalize(&types.Union{Members: members})
	case *ast.TupleType:
		elems := make([]types.Type, len(v.Elements))
		for i, e := range v.Elements {
			elems[i] = c.resolveType(e, tp)
		}
		return &types.Generic{Name: "tuple", Args: elems}
	case *ast.RValueRefType:
		return &types.RValueRef{Inner: c.resolveType(v.Inner, tp)}
	default:
		return types.Invalid
	}
}

