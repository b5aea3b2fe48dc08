// Package ownership performs per-function move analysis over the
// already-parsed AST: every local starts Uninitialized, becomes Owned
// on first assignment, and transitions to Moved when explicitly moved,
// returned, or read as the bare source of an assignment to a
// non-Copy-typed destination. A later read of a Moved binding is a
// USE_AFTER_MOVE diagnostic (B001); passing an already-unmovable
// argument to a moved-in parameter is B002.
package ownership

import "github.com/tocin-lang/tocin/internal/ast"

// State is a binding's ownership state at a given program point.
type State int

const (
	Uninitialized State = iota
	Owned
	Moved
	BorrowedShared
	BorrowedUnique
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Owned:
		return "owned"
	case Moved:
		return "moved"
	case BorrowedShared:
		return "borrowed-shared"
	case BorrowedUnique:
		return "borrowed-unique"
	default:
		return "unknown"
	}
}

// binding is one local's tracked state plus the position of its most
// recent transition, for diagnostic messages ("moved here"). Copy
// marks a binding whose type never transitions to Moved at all
// (primitives): reads and re-reads stay Owned forever.
type binding struct {
	State State
	Pos   ast.Pos
	Copy  bool
}

// env is the flow-sensitive state of every local at one program point.
// It is copied (not shared) across branches so each arm of an if/while
// can be analyzed independently before being joined back together.
type env map[string]binding

func (e env) clone() env {
	out := make(env, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}

// join merges the states of a variable across two predecessor paths,
// conservatively: Owned only if both predecessors agree it is Owned,
// Moved if either predecessor says Moved, matching spec.md §4.6's CFG
// join rule ("Owned only if Owned on every predecessor, else Moved").
// Borrowed states join only with themselves; any disagreement falls
// back to Moved, the conservative choice that forces a use to be
// re-validated rather than silently trusting a stale borrow.
func join(a, b binding) binding {
	if a.State == b.State {
		return a
	}
	if a.State == Owned && b.State == Owned {
		return a
	}
	later := a
	if laterPos(b.Pos, a.Pos) {
		later = b
	}
	return binding{State: Moved, Pos: later.Pos}
}

func laterPos(a, b ast.Pos) bool {
	if a.Line != b.Line {
		return a.Line > b.Line
	}
	return a.Column > b.Column
}

// joinEnv merges two environments produced by independent branches of
// the same CFG split. A variable missing from one side (declared only
// inside that branch) does not survive the join — it is out of scope
// afterward either way.
func joinEnv(a, b env) env {
	out := make(env, len(a))
	for name, av := range a {
		if bv, ok := b[name]; ok {
			out[name] = join(av, bv)
		}
	}
	return out
}
