package types

import "fmt"

// Arity is the number of type arguments a generic type constructor
// expects. Built-in container constructors are registered here; a
// checker building from a TypeDecl registers user-defined constructors
// with RegisterArity before checking any use of them.
var builtinArity = map[string]int{
	"list":    1,
	"dict":    2,
	"Option":  1,
	"Result":  2,
	"Future":  1,
	"Promise": 1,
	"Channel": 1,
}

// userArity holds arities registered for user-declared generic types,
// separate from the builtin table so a fresh compilation unit can reset
// it without losing the builtins.
var userArity = map[string]int{}

// RegisterArity records the arity of a user-declared generic type
// constructor, e.g. from `type Pair<a, b> = {...}` it would be called
// RegisterArity("Pair", 2).
func RegisterArity(name string, arity int) {
	userArity[name] = arity
}

// ResetUserArities clears registrations from a prior compilation unit.
func ResetUserArities() {
	userArity = map[string]int{}
}

// ArityOf returns the expected argument count for a generic type
// constructor name, and whether it is known at all.
func ArityOf(name string) (int, bool) {
	if a, ok := builtinArity[name]; ok {
		return a, true
	}
	a, ok := userArity[name]
	return a, ok
}

// KindError reports a generic type used with the wrong number of type
// arguments, e.g. `list<int, string>`. spec.md's error table (§7) has no
// dedicated kind-mismatch code, so this is folded into T001 at the call
// site in internal/check (see SPEC_FULL.md §4.2 [EXPANSION]); KindError
// itself only carries the structural facts, not a diagnostic code.
type KindError struct {
	Name     string
	Got      int
	Expected int
}

func (e *KindError) Error() string {
	return fmt.Sprintf("%s expects %d type argument(s), got %d", e.Name, e.Expected, e.Got)
}

// CheckKind validates a Generic's arity against its registered
// constructor, returning a *KindError if it is unknown or mismatched.
func CheckKind(g *Generic) error {
	expected, ok := ArityOf(g.Name)
	if !ok {
		return &KindError{Name: g.Name, Got: len(g.Args), Expected: -1}
	}
	if len(g.Args) != expected {
		return &KindError{Name: g.Name, Got: len(g.Args), Expected: expected}
	}
	return nil
}
