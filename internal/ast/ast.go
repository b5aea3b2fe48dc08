// Package ast defines the Tocin abstract syntax tree.
//
// Nodes are immutable after construction: a pass that wants a modified tree
// builds a new node rather than mutating one in place. This keeps every
// downstream pass (type checker, ownership analyzer, pattern compiler,
// lowering) free to hold references into an older tree while a later pass
// builds its own.
package ast

import (
	"fmt"
	"strings"
)

// Node is the base interface implemented by every AST node.
type Node interface {
	String() string
	Position() Pos
}

// Pos is a single point in source: file, line, column, and byte offset.
// Offset is kept alongside line/column because stable-ID computation and
// span arithmetic want a byte-addressable position.
type Pos struct {
	File   string
	Line   int
	Column int
	Offset int
}

func (p Pos) String() string { return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column) }

// Span is a half-open source range [Start, End).
type Span struct {
	Start Pos
	End   Pos
}

// Expr is implemented by every expression node.
type Expr interface {
	Node
	exprNode()
}

// Stmt is implemented by every statement node.
type Stmt interface {
	Node
	stmtNode()
}

// Type is implemented by every type-annotation node (surface syntax for
// types, as opposed to internal/types.Type which is the checker's
// canonical representation).
type Type interface {
	Node
	typeNode()
}

// Pattern is implemented by every pattern node used in match arms,
// function parameters that destructure, and for-in bindings.
type Pattern interface {
	Node
	patternNode()
	// BoundVars returns the set of variable names this pattern binds,
	// computed recursively. Alternatives of an OrPattern must agree on
	// this set; NewOrPattern enforces that at construction time.
	BoundVars() []string
}

// File is a single parsed compilation unit.
type File struct {
	Module     *ModuleDecl
	Imports    []*ImportDecl
	Types      []*TypeDecl
	Traits     []*TraitDecl
	Impls      []*ImplDecl
	Extensions []*ExtensionDecl
	Funcs      []*FuncDecl
	Pos        Pos
}

func (f *File) Position() Pos { return f.Pos }
func (f *File) String() string {
	var parts []string
	if f.Module != nil {
		parts = append(parts, f.Module.String())
	}
	for _, d := range f.Funcs {
		parts = append(parts, d.String())
	}
	return strings.Join(parts, "\n")
}

// ModuleDecl names the module a file belongs to.
type ModuleDecl struct {
	Path string
	Pos  Pos
	Span Span
}

func (m *ModuleDecl) Position() Pos  { return m.Pos }
func (m *ModuleDecl) String() string { return fmt.Sprintf("module %s", m.Path) }

// ImportDecl brings names from another module into scope. Symbols is empty
// for a whole-module import; otherwise each entry is "name" or "name as
// alias".
type ImportDecl struct {
	Path    string
	Symbols []ImportedSymbol
	Pos     Pos
	Span    Span
}

// ImportedSymbol is one selectively-imported name, with its binding alias.
type ImportedSymbol struct {
	Name  string
	Alias string // equal to Name when there is no "as" clause
}

func (i *ImportDecl) Position() Pos { return i.Pos }
func (i *ImportDecl) String() string {
	if len(i.Symbols) == 0 {
		return fmt.Sprintf("import %s", i.Path)
	}
	names := make([]string, len(i.Symbols))
	for idx, s := range i.Symbols {
		if s.Alias != "" && s.Alias != s.Name {
			names[idx] = fmt.Sprintf("%s as %s", s.Name, s.Alias)
		} else {
			names[idx] = s.Name
		}
	}
	return fmt.Sprintf("import %s.{%s}", i.Path, strings.Join(names, ", "))
}

// ExportDecl records the set of names a module exposes.
type ExportDecl struct {
	Names []string
	Pos   Pos
}

func (e *ExportDecl) Position() Pos  { return e.Pos }
func (e *ExportDecl) String() string { return fmt.Sprintf("export {%s}", strings.Join(e.Names, ", ")) }
func (e *ExportDecl) stmtNode()      {}

// ---------------------------------------------------------------------
// Expressions
// ---------------------------------------------------------------------

// LiteralKind distinguishes the five literal token kinds from the data
// model (INT, FLOAT, STRING, BOOL, NIL).
type LiteralKind int

const (
	IntLit LiteralKind = iota
	FloatLit
	StringLit
	BoolLit
	NilLit
)

type Literal struct {
	Kind  LiteralKind
	Value interface{}
	Pos   Pos
}

func (l *Literal) Position() Pos  { return l.Pos }
func (l *Literal) String() string { return fmt.Sprintf("%v", l.Value) }
func (l *Literal) exprNode()      {}

// Ident is a variable or function reference.
type Ident struct {
	Name string
	Pos  Pos
}

func (i *Ident) Position() Pos  { return i.Pos }
func (i *Ident) String() string { return i.Name }
func (i *Ident) exprNode()      {}

type BinaryExpr struct {
	Left  Expr
	Op    string
	Right Expr
	Pos   Pos
}

func (b *BinaryExpr) Position() Pos  { return b.Pos }
func (b *BinaryExpr) String() string { return fmt.Sprintf("(%s %s %s)", b.Left, b.Op, b.Right) }
func (b *BinaryExpr) exprNode()      {}

type UnaryExpr struct {
	Op   string
	Expr Expr
	Pos  Pos
}

func (u *UnaryExpr) Position() Pos  { return u.Pos }
func (u *UnaryExpr) String() string { return fmt.Sprintf("(%s%s)", u.Op, u.Expr) }
func (u *UnaryExpr) exprNode()      {}

type Grouping struct {
	Inner Expr
	Pos   Pos
}

func (g *Grouping) Position() Pos  { return g.Pos }
func (g *Grouping) String() string { return fmt.Sprintf("(%s)", g.Inner) }
func (g *Grouping) exprNode()      {}

// AssignExpr assigns Value to Target, which must resolve to a mutable
// binding (checked in internal/check, not here).
type AssignExpr struct {
	Target Expr
	Value  Expr
	Pos    Pos
}

func (a *AssignExpr) Position() Pos  { return a.Pos }
func (a *AssignExpr) String() string { return fmt.Sprintf("%s = %s", a.Target, a.Value) }
func (a *AssignExpr) exprNode()      {}

// CallExpr is a function application. TypeArgs holds an explicit generic
// instantiation such as the <int> in f<int>(3).
type CallExpr struct {
	Callee   Expr
	Args     []Expr
	TypeArgs []Type
	Pos      Pos
}

func (c *CallExpr) Position() Pos { return c.Pos }
func (c *CallExpr) String() string {
	args := make([]string, len(c.Args))
	for i, a := range c.Args {
		args[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", c.Callee, strings.Join(args, ", "))
}
func (c *CallExpr) exprNode() {}

// GetExpr is field/member access: target.name
type GetExpr struct {
	Target Expr
	Name   string
	Pos    Pos
}

func (g *GetExpr) Position() Pos  { return g.Pos }
func (g *GetExpr) String() string { return fmt.Sprintf("%s.%s", g.Target, g.Name) }
func (g *GetExpr) exprNode()      {}

// SetExpr is field/member assignment: target.name = value
type SetExpr struct {
	Target Expr
	Name   string
	Value  Expr
	Pos    Pos
}

func (s *SetExpr) Position() Pos  { return s.Pos }
func (s *SetExpr) String() string { return fmt.Sprintf("%s.%s = %s", s.Target, s.Name, s.Value) }
func (s *SetExpr) exprNode()      {}

type IndexExpr struct {
	Target Expr
	Index  Expr
	Pos    Pos
}

func (i *IndexExpr) Position() Pos  { return i.Pos }
func (i *IndexExpr) String() string { return fmt.Sprintf("%s[%s]", i.Target, i.Index) }
func (i *IndexExpr) exprNode()      {}

type ListLit struct {
	Elements []Expr
	Pos      Pos
}

func (l *ListLit) Position() Pos { return l.Pos }
func (l *ListLit) String() string {
	elems := make([]string, len(l.Elements))
	for i, e := range l.Elements {
		elems[i] = e.String()
	}
	return fmt.Sprintf("[%s]", strings.Join(elems, ", "))
}
func (l *ListLit) exprNode() {}

// DictEntry is one key/value pair of a DictLit.
type DictEntry struct {
	Key   Expr
	Value Expr
}

type DictLit struct {
	Entries []DictEntry
	Pos     Pos
}

func (d *DictLit) Position() Pos { return d.Pos }
func (d *DictLit) String() string {
	parts := make([]string, len(d.Entries))
	for i, e := range d.Entries {
		parts[i] = fmt.Sprintf("%s: %s", e.Key, e.Value)
	}
	return fmt.Sprintf("{%s}", strings.Join(parts, ", "))
}
func (d *DictLit) exprNode() {}

type TupleLit struct {
	Elements []Expr
	Pos      Pos
}

func (t *TupleLit) Position() Pos { return t.Pos }
func (t *TupleLit) String() string {
	elems := make([]string, len(t.Elements))
	for i, e := range t.Elements {
		elems[i] = e.String()
	}
	return fmt.Sprintf("(%s)", strings.Join(elems, ", "))
}
func (t *TupleLit) exprNode() {}

// Lambda is an anonymous function expression.
type Lambda struct {
	Params     []*Param
	ReturnType Type
	Effects    []string
	Body       Expr
	IsAsync    bool
	Pos        Pos
}

// Param is one function parameter; Type is nil when unannotated.
type Param struct {
	Name string
	Type Type
	// MovedIn marks a parameter the callee takes ownership of: the
	// caller's argument must itself be movable (internal/ownership),
	// and the callee may freely move it further without a use-after-move
	// diagnostic on the parameter itself.
	MovedIn bool
	Pos     Pos
}

func (l *Lambda) Position() Pos { return l.Pos }
func (l *Lambda) String() string {
	params := make([]string, len(l.Params))
	for i, p := range l.Params {
		params[i] = p.Name
	}
	return fmt.Sprintf("\\(%s) -> %s", strings.Join(params, ", "), l.Body)
}
func (l *Lambda) exprNode() {}

// Await suspends the enclosing async function until the operand's
// Future/Promise resolves.
type Await struct {
	Value Expr
	Pos   Pos
}

func (a *Await) Position() Pos  { return a.Pos }
func (a *Await) String() string { return fmt.Sprintf("await %s", a.Value) }
func (a *Await) exprNode()      {}

// Send transmits Value on Channel; it suspends until a matching receive.
type Send struct {
	Channel Expr
	Value   Expr
	Pos     Pos
}

func (s *Send) Position() Pos  { return s.Pos }
func (s *Send) String() string { return fmt.Sprintf("%s <- %s", s.Channel, s.Value) }
func (s *Send) exprNode()      {}

// Recv reads the next value from Channel; it suspends until one is ready.
type Recv struct {
	Channel Expr
	Pos     Pos
}

func (r *Recv) Position() Pos  { return r.Pos }
func (r *Recv) String() string { return fmt.Sprintf("<-%s", r.Channel) }
func (r *Recv) exprNode()      {}

// MoveExpr explicitly transfers ownership of Value out of its binding.
type MoveExpr struct {
	Value Expr
	Pos   Pos
}

func (m *MoveExpr) Position() Pos  { return m.Pos }
func (m *MoveExpr) String() string { return fmt.Sprintf("move %s", m.Value) }
func (m *MoveExpr) exprNode()      {}

// NewExpr heap-allocates a value of Type, optionally calling a
// constructor-style initializer with Args.
type NewExpr struct {
	Type Type
	Args []Expr
	Pos  Pos
}

func (n *NewExpr) Position() Pos { return n.Pos }
func (n *NewExpr) String() string {
	return fmt.Sprintf("new %s(%d args)", n.Type, len(n.Args))
}
func (n *NewExpr) exprNode() {}

// DeleteExpr releases a heap allocation obtained via NewExpr.
type DeleteExpr struct {
	Value Expr
	Pos   Pos
}

func (d *DeleteExpr) Position() Pos  { return d.Pos }
func (d *DeleteExpr) String() string { return fmt.Sprintf("delete %s", d.Value) }
func (d *DeleteExpr) exprNode()      {}

// StringInterp is a string literal containing `${expr}` splices.
type StringInterp struct {
	Parts []StringInterpPart
	Pos   Pos
}

// StringInterpPart is either a literal chunk (Expr == nil) or a splice.
type StringInterpPart struct {
	Literal string
	Expr    Expr
}

func (s *StringInterp) Position() Pos { return s.Pos }
func (s *StringInterp) String() string {
	var b strings.Builder
	b.WriteByte('"')
	for _, p := range s.Parts {
		if p.Expr != nil {
			fmt.Fprintf(&b, "${%s}", p.Expr)
		} else {
			b.WriteString(p.Literal)
		}
	}
	b.WriteByte('"')
	return b.String()
}
func (s *StringInterp) exprNode() {}

type BlockExpr struct {
	Stmts  []Stmt
	Result Expr // may be nil (block evaluates to unit)
	Pos    Pos
}

func (b *BlockExpr) Position() Pos  { return b.Pos }
func (b *BlockExpr) String() string { return fmt.Sprintf("{ %d stmts }", len(b.Stmts)) }
func (b *BlockExpr) exprNode()      {}

type IfExpr struct {
	Cond Expr
	Then Expr
	Else Expr // nil for a statement-flavored `if` with no else branch
	Pos  Pos
}

func (i *IfExpr) Position() Pos { return i.Pos }
func (i *IfExpr) String() string {
	return fmt.Sprintf("(if %s then %s else %s)", i.Cond, i.Then, i.Else)
}
func (i *IfExpr) exprNode() {}

// MatchArm is one `pattern [if guard] => body` arm of a match expression.
type MatchArm struct {
	Pattern Pattern
	Guard   Expr // nil when unguarded
	Body    Expr
	Pos     Pos
}

type MatchExpr struct {
	Scrutinee Expr
	Arms      []*MatchArm
	Pos       Pos
}

func (m *MatchExpr) Position() Pos { return m.Pos }
func (m *MatchExpr) String() string {
	arms := make([]string, len(m.Arms))
	for i, a := range m.Arms {
		arms[i] = fmt.Sprintf("%s => %s", a.Pattern, a.Body)
	}
	return fmt.Sprintf("match %s { %s }", m.Scrutinee, strings.Join(arms, "; "))
}
func (m *MatchExpr) exprNode() {}

// ErrorExpr is a parser error-recovery placeholder. The checker treats any
// subtree containing one as already diagnosed and skips re-reporting it.
type ErrorExpr struct {
	Msg string
	Pos Pos
}

func (e *ErrorExpr) Position() Pos  { return e.Pos }
func (e *ErrorExpr) String() string { return fmt.Sprintf("<error: %s>", e.Msg) }
func (e *ErrorExpr) exprNode()      {}

// ---------------------------------------------------------------------
// Statements
// ---------------------------------------------------------------------

type BlockStmt struct {
	Stmts []Stmt
	Pos   Pos
}

func (b *BlockStmt) Position() Pos  { return b.Pos }
func (b *BlockStmt) String() string { return fmt.Sprintf("{ %d stmts }", len(b.Stmts)) }
func (b *BlockStmt) stmtNode()      {}

type ExprStmt struct {
	Expr Expr
	Pos  Pos
}

func (e *ExprStmt) Position() Pos  { return e.Pos }
func (e *ExprStmt) String() string { return e.Expr.String() }
func (e *ExprStmt) stmtNode()      {}

// VarDecl is `let name: Type = value` (Mutable) or `const name: Type =
// value` (!Mutable). MovedIn marks a binding that accepts a moved-in value
// (used on function parameters; see internal/ownership).
type VarDecl struct {
	Name    string
	Type    Type
	Value   Expr
	Mutable bool
	MovedIn bool
	Pos     Pos
}

func (v *VarDecl) Position() Pos { return v.Pos }
func (v *VarDecl) String() string {
	kw := "const"
	if v.Mutable {
		kw = "let"
	}
	return fmt.Sprintf("%s %s = %s", kw, v.Name, v.Value)
}
func (v *VarDecl) stmtNode() {}

type ReturnStmt struct {
	Value Expr // nil for `return` with no value
	Pos   Pos
}

func (r *ReturnStmt) Position() Pos  { return r.Pos }
func (r *ReturnStmt) String() string { return fmt.Sprintf("return %s", r.Value) }
func (r *ReturnStmt) stmtNode()      {}

type ElifClause struct {
	Cond Expr
	Body *BlockStmt
	Pos  Pos
}

type IfStmt struct {
	Cond  Expr
	Then  *BlockStmt
	Elifs []*ElifClause
	Else  *BlockStmt // nil if no else
	Pos   Pos
}

func (i *IfStmt) Position() Pos  { return i.Pos }
func (i *IfStmt) String() string { return fmt.Sprintf("if %s {...}", i.Cond) }
func (i *IfStmt) stmtNode()      {}

type WhileStmt struct {
	Cond Expr
	Body *BlockStmt
	Pos  Pos
}

func (w *WhileStmt) Position() Pos  { return w.Pos }
func (w *WhileStmt) String() string { return fmt.Sprintf("while %s {...}", w.Cond) }
func (w *WhileStmt) stmtNode()      {}

type ForInStmt struct {
	Var      string
	Iterable Expr
	Body     *BlockStmt
	Pos      Pos
}

func (f *ForInStmt) Position() Pos  { return f.Pos }
func (f *ForInStmt) String() string { return fmt.Sprintf("for %s in %s {...}", f.Var, f.Iterable) }
func (f *ForInStmt) stmtNode()      {}

type MatchStmt struct {
	Match *MatchExpr
	Pos   Pos
}

func (m *MatchStmt) Position() Pos  { return m.Pos }
func (m *MatchStmt) String() string { return m.Match.String() }
func (m *MatchStmt) stmtNode()      {}

// BreakStmt and ContinueStmt exit loops; both are scope-exit points that
// deferred actions must run at (internal/ownership).
type BreakStmt struct{ Pos Pos }

func (b *BreakStmt) Position() Pos  { return b.Pos }
func (b *BreakStmt) String() string { return "break" }
func (b *BreakStmt) stmtNode()      {}

type ContinueStmt struct{ Pos Pos }

func (c *ContinueStmt) Position() Pos  { return c.Pos }
func (c *ContinueStmt) String() string { return "continue" }
func (c *ContinueStmt) stmtNode()      {}

// GoStmt spawns Call as a lightweight task and does not suspend.
type GoStmt struct {
	Call *CallExpr
	Pos  Pos
}

func (g *GoStmt) Position() Pos  { return g.Pos }
func (g *GoStmt) String() string { return fmt.Sprintf("go %s", g.Call) }
func (g *GoStmt) stmtNode()      {}

// DeferStmt registers Call to run when the enclosing scope exits, in
// reverse registration order relative to sibling defers.
type DeferStmt struct {
	Call Expr
	Pos  Pos
}

func (d *DeferStmt) Position() Pos  { return d.Pos }
func (d *DeferStmt) String() string { return fmt.Sprintf("defer %s", d.Call) }
func (d *DeferStmt) stmtNode()      {}

// PropertyDecl declares a computed member with explicit get/set bodies.
type PropertyDecl struct {
	Name   string
	Type   Type
	Getter *BlockStmt
	Setter *BlockStmt // nil for a read-only property
	Pos    Pos
}

func (p *PropertyDecl) Position() Pos  { return p.Pos }
func (p *PropertyDecl) String() string { return fmt.Sprintf("property %s: %s", p.Name, p.Type) }
func (p *PropertyDecl) stmtNode()      {}

// ---------------------------------------------------------------------
// Top-level declarations
// ---------------------------------------------------------------------

// TypeParam is a generic parameter with optional trait bounds,
// e.g. the `T: Display + Clone` in `fn f<T: Display + Clone>(...)`.
type TypeParam struct {
	Name   string
	Bounds []string // trait names
	Pos    Pos
}

type FuncDecl struct {
	Name       string
	TypeParams []*TypeParam
	Params     []*Param
	ReturnType Type
	Effects    []string
	Body       Expr
	IsAsync    bool
	IsPure     bool
	IsExport   bool
	Pos        Pos
	Span       Span
	SID        string // stable ID assigned post-parse
}

func (f *FuncDecl) Position() Pos { return f.Pos }
func (f *FuncDecl) String() string {
	params := make([]string, len(f.Params))
	for i, p := range f.Params {
		params[i] = p.Name
	}
	async := ""
	if f.IsAsync {
		async = "async "
	}
	return fmt.Sprintf("%sfunc %s(%s)", async, f.Name, strings.Join(params, ", "))
}
func (f *FuncDecl) stmtNode() {}

// TypeDef is the sum of things a TypeDecl can define.
type TypeDef interface {
	typeDefNode()
}

type AlgebraicType struct {
	Constructors []*Constructor
	Pos          Pos
}

type Constructor struct {
	Name   string
	Fields []Type
	Pos    Pos
}

func (a *AlgebraicType) typeDefNode() {}

type RecordTypeDef struct {
	Fields []*RecordField
	Pos    Pos
}

type RecordField struct {
	Name string
	Type Type
	Pos  Pos
}

func (r *RecordTypeDef) typeDefNode() {}

type TypeAliasDef struct {
	Target Type
	Pos    Pos
}

func (t *TypeAliasDef) typeDefNode() {}

type TypeDecl struct {
	Name       string
	TypeParams []string
	Def        TypeDef
	Exported   bool
	Pos        Pos
}

func (t *TypeDecl) Position() Pos  { return t.Pos }
func (t *TypeDecl) String() string { return fmt.Sprintf("type %s", t.Name) }
func (t *TypeDecl) stmtNode()      {}

// TraitDecl declares a trait: a set of method signatures plus optional
// default bodies.
type TraitDecl struct {
	Name        string
	TypeParam   string
	SuperTraits []string
	Methods     []*TraitMethod
	Pos         Pos
}

// TraitMethod is one method signature in a trait; Default is nil when the
// trait leaves the method to be supplied by every implementor.
type TraitMethod struct {
	Name    string
	Params  []*Param
	Return  Type
	Default Expr
	Pos     Pos
}

func (t *TraitDecl) Position() Pos  { return t.Pos }
func (t *TraitDecl) String() string { return fmt.Sprintf("trait %s", t.Name) }
func (t *TraitDecl) stmtNode()      {}

// ImplDecl implements Trait for Target.
type ImplDecl struct {
	Trait   string
	Target  Type
	Methods []*FuncDecl
	Pos     Pos
}

func (i *ImplDecl) Position() Pos  { return i.Pos }
func (i *ImplDecl) String() string { return fmt.Sprintf("impl %s for %s", i.Trait, i.Target) }
func (i *ImplDecl) stmtNode()      {}

// ExtensionDecl adds a method to Target without an intervening trait.
type ExtensionDecl struct {
	Target  Type
	Methods []*FuncDecl
	Pos     Pos
}

func (e *ExtensionDecl) Position() Pos  { return e.Pos }
func (e *ExtensionDecl) String() string { return fmt.Sprintf("extension %s", e.Target) }
func (e *ExtensionDecl) stmtNode()      {}

// Program is a whole compilation unit ready for the middle-end.
type Program struct {
	File *File
}

func (p *Program) String() string {
	if p.File != nil {
		return p.File.String()
	}
	return "empty program"
}

// ---------------------------------------------------------------------
// Surface type annotations
// ---------------------------------------------------------------------

type SimpleType struct {
	Name string
	Pos  Pos
}

func (s *SimpleType) Position() Pos  { return s.Pos }
func (s *SimpleType) String() string { return s.Name }
func (s *SimpleType) typeNode()      {}

type GenericType struct {
	Name string
	Args []Type
	Pos  Pos
}

func (g *GenericType) Position() Pos { return g.Pos }
func (g *GenericType) String() string {
	args := make([]string, len(g.Args))
	for i, a := range g.Args {
		args[i] = a.String()
	}
	return fmt.Sprintf("%s<%s>", g.Name, strings.Join(args, ", "))
}
func (g *GenericType) typeNode() {}

type FuncType struct {
	Params  []Type
	Return  Type
	Effects []string
	IsAsync bool
	Pos     Pos
}

func (f *FuncType) Position() Pos { return f.Pos }
func (f *FuncType) String() string {
	params := make([]string, len(f.Params))
	for i, p := range f.Params {
		params[i] = p.String()
	}
	return fmt.Sprintf("(%s) -> %s", strings.Join(params, ", "), f.Return)
}
func (f *FuncType) typeNode() {}

type UnionType struct {
	Members []Type
	Pos     Pos
}

func (u *UnionType) Position() Pos { return u.Pos }
func (u *UnionType) String() string {
	members := make([]string, len(u.Members))
	for i, m := range u.Members {
		members[i] = m.String()
	}
	return strings.Join(members, " | ")
}
func (u *UnionType) typeNode() {}

type TupleType struct {
	Elements []Type
	Pos      Pos
}

func (t *TupleType) Position() Pos { return t.Pos }
func (t *TupleType) String() string {
	elems := make([]string, len(t.Elements))
	for i, e := range t.Elements {
		elems[i] = e.String()
	}
	return fmt.Sprintf("(%s)", strings.Join(elems, ", "))
}
func (t *TupleType) typeNode() {}

// RValueRefType marks a move-only binding target, e.g. a moved-in
// parameter's declared type.
type RValueRefType struct {
	Inner Type
	Pos   Pos
}

func (r *RValueRefType) Position() Pos  { return r.Pos }
func (r *RValueRefType) String() string { return fmt.Sprintf("&&%s", r.Inner) }
func (r *RValueRefType) typeNode()      {}
