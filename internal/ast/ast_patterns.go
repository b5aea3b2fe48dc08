package ast

import (
	"fmt"
	"sort"
	"strings"
)

// WildcardPattern matches any value and binds nothing.
type WildcardPattern struct {
	Pos Pos
}

func (w *WildcardPattern) Position() Pos      { return w.Pos }
func (w *WildcardPattern) String() string     { return "_" }
func (w *WildcardPattern) patternNode()       {}
func (w *WildcardPattern) BoundVars() []string { return nil }

// LiteralPattern matches a specific literal value.
type LiteralPattern struct {
	Kind  LiteralKind
	Value interface{}
	Pos   Pos
}

func (l *LiteralPattern) Position() Pos      { return l.Pos }
func (l *LiteralPattern) String() string     { return fmt.Sprintf("%v", l.Value) }
func (l *LiteralPattern) patternNode()       {}
func (l *LiteralPattern) BoundVars() []string { return nil }

// VarPattern binds the scrutinee (or substructure) to Name.
type VarPattern struct {
	Name string
	Pos  Pos
}

func (v *VarPattern) Position() Pos       { return v.Pos }
func (v *VarPattern) String() string      { return v.Name }
func (v *VarPattern) patternNode()        {}
func (v *VarPattern) BoundVars() []string { return []string{v.Name} }

// ConstructorPattern matches an algebraic-type constructor application,
// e.g. Some(x) or Cons(head, tail).
type ConstructorPattern struct {
	Name     string
	Patterns []Pattern
	Pos      Pos
}

func (c *ConstructorPattern) Position() Pos { return c.Pos }
func (c *ConstructorPattern) String() string {
	if len(c.Patterns) == 0 {
		return c.Name
	}
	parts := make([]string, len(c.Patterns))
	for i, p := range c.Patterns {
		parts[i] = p.String()
	}
	return fmt.Sprintf("%s(%s)", c.Name, strings.Join(parts, ", "))
}
func (c *ConstructorPattern) patternNode() {}
func (c *ConstructorPattern) BoundVars() []string {
	return unionBoundVars(c.Patterns)
}

// TuplePattern matches a tuple element-wise.
type TuplePattern struct {
	Elements []Pattern
	Pos      Pos
}

func (t *TuplePattern) Position() Pos { return t.Pos }
func (t *TuplePattern) String() string {
	parts := make([]string, len(t.Elements))
	for i, e := range t.Elements {
		parts[i] = e.String()
	}
	return fmt.Sprintf("(%s)", strings.Join(parts, ", "))
}
func (t *TuplePattern) patternNode()        {}
func (t *TuplePattern) BoundVars() []string { return unionBoundVars(t.Elements) }

// ListPattern matches a list by elements plus an optional rest binding,
// e.g. [a, b, ...rest].
type ListPattern struct {
	Elements []Pattern
	Rest     Pattern // nil when there is no ...rest
	Pos      Pos
}

func (l *ListPattern) Position() Pos { return l.Pos }
func (l *ListPattern) String() string {
	parts := make([]string, len(l.Elements))
	for i, e := range l.Elements {
		parts[i] = e.String()
	}
	if l.Rest != nil {
		parts = append(parts, "..."+l.Rest.String())
	}
	return fmt.Sprintf("[%s]", strings.Join(parts, ", "))
}
func (l *ListPattern) patternNode() {}
func (l *ListPattern) BoundVars() []string {
	vars := unionBoundVars(l.Elements)
	if l.Rest != nil {
		vars = append(vars, l.Rest.BoundVars()...)
	}
	return dedupSorted(vars)
}

// FieldPattern is one `name: pattern` entry of a StructPattern.
type FieldPattern struct {
	Name    string
	Pattern Pattern
	Pos     Pos
}

// StructPattern matches a record/struct value field-by-field, e.g.
// T{field: p, ...}. Rest indicates a trailing `...` that permits
// unmatched fields.
type StructPattern struct {
	TypeName string
	Fields   []*FieldPattern
	Rest     bool
	Pos      Pos
}

func (s *StructPattern) Position() Pos { return s.Pos }
func (s *StructPattern) String() string {
	parts := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		parts[i] = fmt.Sprintf("%s: %s", f.Name, f.Pattern)
	}
	if s.Rest {
		parts = append(parts, "...")
	}
	name := s.TypeName
	if name != "" {
		name += " "
	}
	return fmt.Sprintf("%s{%s}", name, strings.Join(parts, ", "))
}
func (s *StructPattern) patternNode() {}
func (s *StructPattern) BoundVars() []string {
	var vars []string
	for _, f := range s.Fields {
		vars = append(vars, f.Pattern.BoundVars()...)
	}
	return dedupSorted(vars)
}

// OrPattern matches if Left or Right matches: p | q. Both sides must bind
// exactly the same variable set, matching the data model invariant
// "mismatched sets are a compile error"; NewOrPattern enforces this by
// returning CheckOrPatternBindings' error instead of building the pattern.
type OrPattern struct {
	Left  Pattern
	Right Pattern
	Pos   Pos
}

// NewOrPattern builds an OrPattern, returning an error instead of
// constructing it when the two sides disagree on bound variables.
func NewOrPattern(left, right Pattern, pos Pos) (*OrPattern, error) {
	if err := CheckOrPatternBindings(left, right); err != nil {
		return nil, err
	}
	return &OrPattern{Left: left, Right: right, Pos: pos}, nil
}

// CheckOrPatternBindings reports a mismatch between the two alternatives'
// bound-variable sets without constructing a pattern.
func CheckOrPatternBindings(left, right Pattern) error {
	l := dedupSorted(left.BoundVars())
	r := dedupSorted(right.BoundVars())
	if !equalStringSlices(l, r) {
		return fmt.Errorf("or-pattern alternatives bind different variables: %v vs %v", l, r)
	}
	return nil
}

func (o *OrPattern) Position() Pos       { return o.Pos }
func (o *OrPattern) String() string      { return fmt.Sprintf("%s | %s", o.Left, o.Right) }
func (o *OrPattern) patternNode()        {}
func (o *OrPattern) BoundVars() []string { return dedupSorted(o.Left.BoundVars()) }

func unionBoundVars(pats []Pattern) []string {
	var vars []string
	for _, p := range pats {
		vars = append(vars, p.BoundVars()...)
	}
	return dedupSorted(vars)
}

func dedupSorted(vars []string) []string {
	if len(vars) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(vars))
	out := make([]string, 0, len(vars))
	for _, v := range vars {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}

func equalStringSlices(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
