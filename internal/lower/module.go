package lower

import (
	"fmt"
	"strings"

	"github.com/tocin-lang/tocin/internal/ast"
)

// ModuleID is a canonical module path, as written in a ModuleDecl or
// referenced by an ImportDecl.
type ModuleID string

// LinkModules orders a set of parsed files into dependency order
// (imports before importers) so lowering and final assembly can process
// each file's declarations only after everything it imports is already
// available. The traversal itself is grounded on the teacher's
// internal/link/topo.go DFS+cycle-detection shape; it now walks
// *ast.File/*ast.ImportDecl directly rather than an internal/loader
// module map, since internal/loader's LoadedModule/CanonicalModuleID
// shapes were never adapted past the teacher's pre-rename AST (see
// DESIGN.md).
func LinkModules(root ModuleID, files map[ModuleID]*ast.File) ([]ModuleID, error) {
	visited := make(map[ModuleID]bool)
	inPath := make(map[ModuleID]bool)
	var sorted []ModuleID
	var path []ModuleID

	var dfs func(id ModuleID) error
	dfs = func(id ModuleID) error {
		if visited[id] {
			return nil
		}
		if inPath[id] {
			cycle := append(append([]ModuleID{}, path...), id)
			return &CycleError{Code: "M010", Cycle: cycle}
		}

		inPath[id] = true
		path = append(path, id)

		f, ok := files[id]
		if !ok {
			return fmt.Errorf("M011: module not found: %s", id)
		}
		for _, imp := range f.Imports {
			dep := ModuleID(imp.Path)
			if err := dfs(dep); err != nil {
				return err
			}
		}

		inPath[id] = false
		path = path[:len(path)-1]
		visited[id] = true
		sorted = append(sorted, id)
		return nil
	}

	if err := dfs(root); err != nil {
		return nil, err
	}
	return sorted, nil
}

// CycleError reports an import cycle found while ordering modules.
type CycleError struct {
	Code  string
	Cycle []ModuleID
}

func (e *CycleError) Error() string {
	parts := make([]string, len(e.Cycle))
	for i, m := range e.Cycle {
		parts[i] = string(m)
	}
	return fmt.Sprintf("%s: import cycle: %s", e.Code, strings.Join(parts, " -> "))
}

// LowerProgram lowers every file in dependency order, in a single
// shared Lowerer so generic instantiations and dictionary parameter
// names stay unique across the whole linked program rather than just
// within one file.
func (l *Lowerer) LowerProgram(root ModuleID, files map[ModuleID]*ast.File) (*Program, error) {
	order, err := LinkModules(root, files)
	if err != nil {
		return nil, err
	}
	prog := &Program{}
	for _, id := range order {
		sub := l.LowerFile(files[id])
		prog.Decls = append(prog.Decls, sub.Decls...)
	}
	return prog, nil
}
