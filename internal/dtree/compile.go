package dtree

import (
	"fmt"
	"sort"

	"github.com/tocin-lang/tocin/internal/ast"
)

// Arm is one row of a match expression being compiled: its pattern and
// an optional guard. Guard evaluation itself is not modeled by the
// decision tree (Leaf only carries a CaseIndex) — the pass that
// consumes the compiled tree re-runs the arm's own guard expression
// when it reaches a Leaf, and falls through to the tree's remaining
// coverage for that scrutinee on failure. CheckExhaustiveness already
// treats a guarded arm conservatively (it does not count as covering
// anything), so a guard never causes the tree itself to miscompile.
type Arm struct {
	Pattern ast.Pattern
	Guard   ast.Expr
}

// Compiler builds a Node from a set of Arms via ML-style matrix
// decomposition: always split on the leftmost column, grouping rows by
// their column-0 pattern's constructor/literal/shape key, and
// recursively compiling each group's specialization (the matched
// column's sub-patterns spliced in as new columns).
type Compiler struct{}

// NewCompiler returns a Compiler. It carries no state; all context for
// a single match lives in the Arm list passed to Compile.
func NewCompiler() *Compiler { return &Compiler{} }

// Compile builds the decision tree for arms, scrutinizing path [] (the
// match's own scrutinee).
func (c *Compiler) Compile(arms []Arm) Node {
	rows := make([]row, len(arms))
	for i, a := range arms {
		rows[i] = row{
			columns:  []column{{path: nil, pattern: a.Pattern}},
			armIndex: i,
			bindings: map[string][]int{},
		}
	}
	return c.compileMatrix(rows)
}

type column struct {
	path    []int
	pattern ast.Pattern
}

// row is one pattern-matrix row. bindings accumulates name -> path for
// every variable pattern already consumed by a prior specialization
// step (column 0 of earlier iterations); columns holds what remains to
// be discriminated.
type row struct {
	columns  []column
	armIndex int
	bindings map[string][]int
}

func (c *Compiler) compileMatrix(rows []row) Node {
	rows = expandOrRows(rows)
	if len(rows) == 0 {
		return &Fail{}
	}
	if isDefaultRow(rows[0]) {
		return &Leaf{CaseIndex: rows[0].armIndex, Bindings: finalBindings(rows[0])}
	}
	return c.buildSwitch(rows)
}

// expandOrRows replaces any row whose first column is an *ast.OrPattern
// with two rows, one per alternative, repeating until no OrPattern
// remains in column 0. NewOrPattern/CheckOrPatternBindings already
// guarantee both alternatives bind the same variable set, so either
// expansion produces identical bindings for the row's other columns.
func expandOrRows(rows []row) []row {
	var out []row
	changed := false
	for _, r := range rows {
		if len(r.columns) == 0 {
			out = append(out, r)
			continue
		}
		if or, ok := r.columns[0].pattern.(*ast.OrPattern); ok {
			changed = true
			left := r
			left.columns = append([]column{{path: r.columns[0].path, pattern: or.Left}}, r.columns[1:]...)
			right := r
			right.columns = append([]column{{path: r.columns[0].path, pattern: or.Right}}, r.columns[1:]...)
			out = append(out, left, right)
			continue
		}
		out = append(out, r)
	}
	if changed {
		return expandOrRows(out)
	}
	return out
}

func isDefaultRow(r row) bool {
	for _, col := range r.columns {
		switch col.pattern.(type) {
		case *ast.WildcardPattern, *ast.VarPattern:
			continue
		default:
			return false
		}
	}
	return true
}

// finalBindings merges a leaf row's already-accumulated bindings with
// any variable patterns still sitting in its remaining columns.
func finalBindings(r row) map[string][]int {
	out := make(map[string][]int, len(r.bindings))
	for k, v := range r.bindings {
		out[k] = v
	}
	for _, col := range r.columns {
		if v, ok := col.pattern.(*ast.VarPattern); ok {
			out[v.Name] = col.path
		}
	}
	return out
}

// groupKey classifies a pattern for matrix-column grouping: the key
// used for the Switch arm, the sub-patterns it specializes into
// (spliced in as new columns), and whether it is a default
// (wildcard/variable) pattern instead.
func groupKey(pat ast.Pattern) (key interface{}, sub []ast.Pattern, isDefault bool) {
	switch p := pat.(type) {
	case *ast.WildcardPattern, *ast.VarPattern:
		return nil, nil, true
	case *ast.LiteralPattern:
		return p.Value, nil, false
	case *ast.ConstructorPattern:
		return p.Name, p.Patterns, false
	case *ast.TuplePattern:
		return "#tuple", p.Elements, false
	case *ast.StructPattern:
		fields := append([]*ast.FieldPattern(nil), p.Fields...)
		sort.Slice(fields, func(i, j int) bool { return fields[i].Name < fields[j].Name })
		sub := make([]ast.Pattern, len(fields))
		for i, f := range fields {
			sub[i] = f.Pattern
		}
		return "#struct:" + p.TypeName, sub, false
	case *ast.ListPattern:
		key := fmt.Sprintf("#list:%d:%v", len(p.Elements), p.Rest != nil)
		sub := append([]ast.Pattern(nil), p.Elements...)
		if p.Rest != nil {
			sub = append(sub, p.Rest)
		}
		return key, sub, false
	default:
		return nil, nil, true
	}
}

func (c *Compiler) buildSwitch(rows []row) Node {
	const colIndex = 0
	path := rows[0].columns[colIndex].path

	type group struct {
		key   interface{}
		arity int
		rows  []row
	}
	var order []interface{}
	groups := make(map[interface{}]*group)
	var defaultRows []row

	for _, r := range rows {
		col := r.columns[colIndex]
		key, sub, isDefault := groupKey(col.pattern)
		if isDefault {
			nb := copyBindings(r.bindings)
			if v, ok := col.pattern.(*ast.VarPattern); ok {
				nb[v.Name] = col.path
			}
			defaultRows = append(defaultRows, row{
				columns:  removeColumn(r.columns, colIndex),
				armIndex: r.armIndex,
				bindings: nb,
			})
			continue
		}
		g, ok := groups[key]
		if !ok {
			g = &group{key: key, arity: len(sub)}
			groups[key] = g
			order = append(order, key)
		}
		g.rows = append(g.rows, specialize(r, colIndex, sub))
	}

	if len(groups) == 0 {
		return c.compileMatrix(defaultRows)
	}

	sw := &Switch{ScrutineePath: path}
	for _, key := range order {
		g := groups[key]
		specializedRows := append(append([]row(nil), g.rows...), withDefaultsFor(defaultRows, path, g.arity)...)
		sw.Arms = append(sw.Arms, SwitchArm{Key: g.key, Arity: g.arity, Next: c.compileMatrix(specializedRows)})
	}
	if len(defaultRows) > 0 {
		sw.Default = c.compileMatrix(defaultRows)
	} else {
		sw.Default = &Fail{}
	}
	return sw
}

func copyBindings(b map[string][]int) map[string][]int {
	out := make(map[string][]int, len(b))
	for k, v := range b {
		out[k] = v
	}
	return out
}

func removeColumn(cols []column, i int) []column {
	out := make([]column, 0, len(cols)-1)
	out = append(out, cols[:i]...)
	out = append(out, cols[i+1:]...)
	return out
}

// specialize removes column colIndex from r, splicing in sub as new
// leading columns with paths extended by field index.
func specialize(r row, colIndex int, sub []ast.Pattern) row {
	col := r.columns[colIndex]
	newCols := make([]column, 0, len(r.columns)-1+len(sub))
	for i, sp := range sub {
		newCols = append(newCols, column{path: append(append([]int{}, col.path...), i), pattern: sp})
	}
	newCols = append(newCols, removeColumn(r.columns, colIndex)...)
	return row{columns: newCols, armIndex: r.armIndex, bindings: r.bindings}
}

// withDefaultsFor folds each already-stripped default row into a
// specific constructor group by prepending `arity` fresh wildcard
// columns rooted at discriminantPath. The default row's own binding (if
// its original pattern was a variable) was already captured into its
// bindings map before stripping, so it correctly binds to the whole
// scrutinee rather than to one of the synthesized field columns —
// exactly the behavior `match opt { Some(x) => .., y => .. }` needs
// when y's row is folded into the Some group.
func withDefaultsFor(defaultRows []row, discriminantPath []int, arity int) []row {
	if arity == 0 {
		return defaultRows
	}
	out := make([]row, len(defaultRows))
	for i, r := range defaultRows {
		extra := make([]column, arity)
		for j := range extra {
			extra[j] = column{path: append(append([]int{}, discriminantPath...), j), pattern: &ast.WildcardPattern{}}
		}
		out[i] = row{columns: append(extra, r.columns...), armIndex: r.armIndex, bindings: r.bindings}
	}
	return out
}
