package lower

import (
	"github.com/tocin-lang/tocin/internal/ast"
	"github.com/tocin-lang/tocin/internal/core"
	"github.com/tocin-lang/tocin/internal/traits"
)

// lowerMethodCall rewrites `target.method(args)` per SPEC_FULL.md §4.7's
// "extension calls" and §4.4's dispatch discrimination: a statically
// resolved method (a direct impl or an extension) becomes a plain
// mangled-name call, while a method only reachable through a trait's
// own table (an inherited default, or a TraitObject's dynamic dispatch)
// becomes a DictApp carrying the receiver's own dictionary — the same
// split internal/traits.Resolve already encodes in its Source tag, so
// lowering does no resolution logic of its own beyond interpreting that
// tag.
func (l *Lowerer) lowerMethodCall(get *ast.GetExpr, args []ast.Expr, pos ast.Pos) core.CoreExpr {
	coreArgs := make([]core.CoreExpr, 0, len(args)+1)
	coreArgs = append(coreArgs, l.toCore(get.Target))
	for _, a := range args {
		coreArgs = append(coreArgs, l.toCore(a))
	}

	if l.TypeOf == nil {
		return l.fallbackFieldCall(get, coreArgs, pos)
	}
	receiverTy := l.TypeOf(get.Target)
	if receiverTy == nil {
		return l.fallbackFieldCall(get, coreArgs, pos)
	}
	res, ok := l.Traits.Resolve(receiverTy, get.Name)
	if !ok {
		return l.fallbackFieldCall(get, coreArgs, pos)
	}

	switch res.Source {
	case traits.SourceDirectImpl, traits.SourceExtension:
		mangled := sanitize(receiverTy.String()) + "_" + get.Name
		return &core.App{CoreNode: nodeOf(pos), Func: &core.Var{CoreNode: nodeOf(pos), Name: mangled}, Args: coreArgs}
	default: // SourceSuperDefault, SourceDynamic: the method only exists on
		// the trait's own table, so the call needs the receiver's
		// dictionary rather than a statically known function name.
		dict := &core.DictRef{CoreNode: nodeOf(pos), ClassName: res.Trait, TypeName: receiverTy.String()}
		return &core.DictApp{CoreNode: nodeOf(pos), Dict: dict, Method: get.Name, Args: coreArgs}
	}
}

// fallbackFieldCall lowers a method call whose receiver type could not
// be determined (no TypeOf resolver wired, or the type wasn't found in
// the trait registry) to an ordinary record-field invocation: the
// field is assumed to hold a callable value. internal/check already
// reports an unresolved method as T003 before lowering ever runs, so
// this path only has to produce a structurally valid Core form, not
// diagnose anything.
func (l *Lowerer) fallbackFieldCall(get *ast.GetExpr, args []core.CoreExpr, pos ast.Pos) core.CoreExpr {
	receiver := args[0]
	return &core.App{
		CoreNode: nodeOf(pos),
		Func:     &core.RecordAccess{CoreNode: nodeOf(pos), Record: receiver, Field: get.Name},
		Args:     args[1:],
	}
}
