package check

import (
	"github.com/tocin-lang/tocin/internal/ast"
	"github.com/tocin-lang/tocin/internal/dtree"
	"github.com/tocin-lang/tocin/internal/types"
)

// dtreeRegistry lazily creates the pattern-compiler's constructor
// universe registry, shared by every match expression this Checker
// synthesizes.
func (c *Checker) dtreeRegistry() *dtree.Registry {
	if c.patterns == nil {
		c.patterns = dtree.NewRegistry()
	}
	return c.patterns
}

// RegisterTypeDeclKind records a type declaration's arity and, if
// algebraic, its constructor universe. Call this for every TypeDecl in
// a compilation unit before checking any function bodies that use it.
func (c *Checker) RegisterTypeDeclKind(decl *ast.TypeDecl) {
	if len(decl.TypeParams) > 0 {
		types.RegisterArity(decl.Name, len(decl.TypeParams))
	}
	if alg, ok := decl.Def.(*ast.AlgebraicType); ok {
		c.dtreeRegistry().RegisterAlgebraic(decl.Name, alg)
	}
}

// RegisterTraitDecl adds decl to the trait registry. Call this for
// every TraitDecl in a compilation unit before registering any impl or
// extension, since RegisterImplDecl rejects an impl naming a trait
// that hasn't been registered yet.
func (c *Checker) RegisterTraitDecl(decl *ast.TraitDecl) {
	c.Traits.RegisterTrait(decl, c.sink)
}

// RegisterImplDecl resolves decl's target type through the same
// resolveType path function signatures use, then registers the impl
// against it. Call this for every ImplDecl after every TraitDecl in
// the compilation unit has already gone through RegisterTraitDecl.
func (c *Checker) RegisterImplDecl(decl *ast.ImplDecl) {
	target := c.resolveType(decl.Target, typeParams{})
	c.Traits.RegisterImpl(decl, target, c.sink)
}

// RegisterExtensionDecl resolves decl's target type and registers its
// methods as extension methods, never eligible to satisfy a trait
// bound (see internal/traits.Registry.RegisterExtension).
func (c *Checker) RegisterExtensionDecl(decl *ast.ExtensionDecl) {
	target := c.resolveType(decl.Target, typeParams{})
	c.Traits.RegisterExtension(decl, target)
}
