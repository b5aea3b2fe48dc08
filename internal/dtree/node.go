// Package dtree compiles a match expression's pattern matrix into a
// decision tree (an ordered sequence of discriminator switches) and
// checks it for exhaustiveness and reachability, grounded on the
// teacher's internal/dtree/decision_tree.go matrix-decomposition
// structure but generalized from a Bool-only exhaustiveness special
// case to the full constructor universe of any user-declared algebraic
// type, Option<T>, and Result<T,E>.
package dtree

// Node is the compiled decision-tree sum: Leaf, Switch, or Fail.
type Node interface {
	isNode()
	String() string
}

// Leaf is a successful match: CaseIndex names the original arm, and
// Bindings records, for every variable the arm's pattern bound, the
// path into the scrutinee its value came from.
type Leaf struct {
	CaseIndex int
	Bindings  map[string][]int
}

func (*Leaf) isNode() {}

// SwitchArm is one discriminated case of a Switch: the constructor or
// literal key that selects it, the arity consumed (number of new
// columns it introduces), and the subtree to descend into.
type SwitchArm struct {
	Key   interface{} // constructor name (string) or literal value
	Arity int
	Next  Node
}

// Switch tests the value at ScrutineePath against each arm's Key,
// falling back to Default when nothing matches (a wildcard/variable
// pattern, or Fail if none was given).
type Switch struct {
	ScrutineePath []int
	Arms          []SwitchArm
	Default       Node
}

func (*Switch) isNode() {}

// Fail marks an unreachable point in the tree: every row that could
// have reached it was already exhausted. A well-formed exhaustive match
// never actually runs into one at evaluation time. The P001
// non-exhaustive diagnostic comes from CheckExhaustiveness, which works
// from the arm list and does not build a tree.
type Fail struct{}

func (*Fail) isNode() {}

func (l *Leaf) String() string   { return "Leaf" }
func (s *Switch) String() string { return "Switch" }
func (f *Fail) String() string   { return "Fail" }
