package module

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tocin-lang/tocin/internal/ast"
	"github.com/tocin-lang/tocin/internal/diag"
)

// stubParse is a ParseFunc good enough to exercise the loader without a
// real front end: it ignores source text and returns a fixed file, unless
// the filename is registered in fail to simulate a parse failure.
func stubParse(files map[string]*ast.File, fail map[string]bool) ParseFunc {
	return func(source, filename string) (*ast.File, []diag.Diagnostic) {
		if fail[filename] {
			return nil, []diag.Diagnostic{diag.New("S001", "unexpected token")}
		}
		if f, ok := files[filename]; ok {
			return f, nil
		}
		return &ast.File{}, nil
	}
}

func newTestLoader() *Loader {
	return NewLoader(stubParse(nil, nil))
}

func TestNewLoader(t *testing.T) {
	loader := newTestLoader()

	if loader.cache == nil {
		t.Error("cache should be initialized")
	}

	if loader.searchPaths == nil {
		t.Error("searchPaths should be initialized")
	}

	if loader.stdlibPath == "" {
		t.Error("stdlibPath should not be empty")
	}
}

func TestNormalizeModulePath(t *testing.T) {
	loader := newTestLoader()

	tests := []struct {
		input    string
		expected string
	}{
		{"module.toc", "module"},
		{"path/to/module.toc", "path/to/module"},
		{"path\\to\\module", "path/to/module"},
		{"module", "module"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := loader.normalizeModulePath(tt.input)
			if result != tt.expected {
				t.Errorf("normalizeModulePath(%s) = %s, want %s", tt.input, result, tt.expected)
			}
		})
	}
}

func TestCycleDetection(t *testing.T) {
	loader := newTestLoader()

	// Create a cycle: A -> B -> C -> A
	loader.loadStack = []string{"modules/a", "modules/b", "modules/c"}

	err := loader.checkCycle("modules/a")
	if err == nil {
		t.Fatal("expected cycle detection error")
	}

	modErr, ok := err.(*ModuleError)
	if !ok {
		t.Fatal("expected ModuleError type")
	}

	if modErr.Code != "M011" {
		t.Errorf("error code = %s, want M011", modErr.Code)
	}

	if len(modErr.Cycle) != 4 {
		t.Errorf("cycle length = %d, want 4", len(modErr.Cycle))
	}

	// No cycle case
	if err := loader.checkCycle("modules/d"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestExtractDependencies(t *testing.T) {
	loader := newTestLoader()

	f := &ast.File{
		Imports: []*ast.ImportDecl{
			{Path: "std/list"},
			{Path: "./utils"},
			{Path: "data/tree"},
		},
	}

	deps := loader.extractDependencies(f)

	expected := []string{"std/list", "./utils", "data/tree"}
	if len(deps) != len(expected) {
		t.Fatalf("dependencies count = %d, want %d", len(deps), len(expected))
	}
	for i, dep := range deps {
		if dep != expected[i] {
			t.Errorf("dependency[%d] = %s, want %s", i, dep, expected[i])
		}
	}
}

func TestExtractExportsExplicit(t *testing.T) {
	loader := newTestLoader()

	f := &ast.File{
		Funcs: []*ast.FuncDecl{
			{Name: "add", IsExport: true},
			{Name: "multiply", IsExport: true},
			{Name: "internal"}, // not exported
		},
	}

	exports := loader.extractExports(f)

	if len(exports) != 2 {
		t.Fatalf("exports count = %d, want 2", len(exports))
	}
	if _, ok := exports["add"]; !ok {
		t.Error("'add' should be exported")
	}
	if _, ok := exports["multiply"]; !ok {
		t.Error("'multiply' should be exported")
	}
	if _, ok := exports["internal"]; ok {
		t.Error("'internal' should not be exported")
	}
}

func TestExtractExportsImplicit(t *testing.T) {
	loader := newTestLoader()

	// When nothing in the file is marked exported, every top-level
	// declaration is exported.
	f := &ast.File{
		Funcs: []*ast.FuncDecl{
			{Name: "add"},
			{Name: "multiply"},
		},
		Types: []*ast.TypeDecl{
			{Name: "Widget"},
		},
	}

	exports := loader.extractExports(f)

	if len(exports) != 3 {
		t.Fatalf("exports count = %d, want 3", len(exports))
	}
	for _, name := range []string{"add", "multiply", "Widget"} {
		if _, ok := exports[name]; !ok {
			t.Errorf("%q should be exported", name)
		}
	}
}

func TestModuleErrorTypes(t *testing.T) {
	loader := newTestLoader()

	err := loader.moduleNotFoundError("missing/module", nil)
	modErr, ok := err.(*ModuleError)
	if !ok {
		t.Fatal("expected ModuleError type")
	}
	if modErr.Code != "M010" {
		t.Errorf("error code = %s, want M010", modErr.Code)
	}

	err = loader.circularDependencyError([]string{"a", "b", "c", "a"})
	modErr, ok = err.(*ModuleError)
	if !ok {
		t.Fatal("expected ModuleError type")
	}
	if modErr.Code != "M011" {
		t.Errorf("error code = %s, want M011", modErr.Code)
	}

	err = loader.duplicateExportError("name", "module")
	modErr, ok = err.(*ModuleError)
	if !ok {
		t.Fatal("expected ModuleError type")
	}
	if modErr.Code != "M012" {
		t.Errorf("error code = %s, want M012", modErr.Code)
	}

	err = loader.importNotExportedError("item", "from", "in")
	modErr, ok = err.(*ModuleError)
	if !ok {
		t.Fatal("expected ModuleError type")
	}
	if modErr.Code != "M013" {
		t.Errorf("error code = %s, want M013", modErr.Code)
	}
}

func TestLoadStack(t *testing.T) {
	loader := newTestLoader()

	loader.pushStack("module1")
	loader.pushStack("module2")

	if len(loader.loadStack) != 2 {
		t.Errorf("load stack size = %d, want 2", len(loader.loadStack))
	}

	loader.popStack()
	if len(loader.loadStack) != 1 {
		t.Errorf("load stack size after pop = %d, want 1", len(loader.loadStack))
	}
	if loader.loadStack[0] != "module1" {
		t.Errorf("remaining item = %s, want module1", loader.loadStack[0])
	}

	// Popping past empty must not panic.
	loader.popStack()
	loader.popStack()
	if len(loader.loadStack) != 0 {
		t.Error("load stack should be empty")
	}
}

func TestIsStdlib(t *testing.T) {
	loader := newTestLoader()

	tests := []struct {
		identity string
		expected bool
	}{
		{"std/list", true},
		{"std/prelude", true},
		{"std/io/file", true},
		{"list", false},
		{"mymodule", false},
		{"stdlib/fake", false},
	}

	for _, tt := range tests {
		t.Run(tt.identity, func(t *testing.T) {
			if result := loader.isStdlib(tt.identity); result != tt.expected {
				t.Errorf("isStdlib(%s) = %v, want %v", tt.identity, result, tt.expected)
			}
		})
	}
}

func TestBuildResolutionTrace(t *testing.T) {
	loader := newTestLoader()
	loader.loadStack = []string{"main", "utils", "helpers"}

	trace := loader.buildResolutionTrace()

	if len(trace) != 3 {
		t.Fatalf("trace length = %d, want 3", len(trace))
	}
	if !strings.Contains(trace[0], "Resolving main") {
		t.Errorf("first trace should mention main, got: %s", trace[0])
	}
	if !strings.Contains(trace[1], "-> import utils") {
		t.Errorf("second trace should show utils import, got: %s", trace[1])
	}
	if !strings.Contains(trace[2], "-> import helpers") {
		t.Errorf("third trace should show helpers import, got: %s", trace[2])
	}
}

func TestTopologicalSort(t *testing.T) {
	loader := newTestLoader()

	// A depends on B, B depends on C, C has no dependencies.
	loader.cache = map[string]*Module{
		"A": {Identity: "A", Dependencies: []string{"B"}},
		"B": {Identity: "B", Dependencies: []string{"C"}},
		"C": {Identity: "C", Dependencies: []string{}},
	}

	sorted, err := loader.TopologicalSort()
	if err != nil {
		t.Fatalf("TopologicalSort failed: %v", err)
	}

	indexOf := func(s []string, item string) int {
		for i, v := range s {
			if v == item {
				return i
			}
		}
		return -1
	}

	cIndex, bIndex, aIndex := indexOf(sorted, "C"), indexOf(sorted, "B"), indexOf(sorted, "A")
	if cIndex > bIndex {
		t.Errorf("C should come before B in topological order: %v", sorted)
	}
	if bIndex > aIndex {
		t.Errorf("B should come before A in topological order: %v", sorted)
	}
}

func TestTopologicalSortCycle(t *testing.T) {
	loader := newTestLoader()

	loader.cache = map[string]*Module{
		"A": {Identity: "A", Dependencies: []string{"B"}},
		"B": {Identity: "B", Dependencies: []string{"A"}},
	}

	_, err := loader.TopologicalSort()
	if err == nil {
		t.Fatal("expected cycle detection error")
	}
	if !strings.Contains(err.Error(), "circular") {
		t.Errorf("error should mention circular dependency: %v", err)
	}
}

func TestGetDependencyGraph(t *testing.T) {
	loader := newTestLoader()

	loader.cache = map[string]*Module{
		"A": {Identity: "A", Dependencies: []string{"B", "C"}},
		"B": {Identity: "B", Dependencies: []string{"D"}},
		"C": {Identity: "C", Dependencies: []string{}},
		"D": {Identity: "D", Dependencies: []string{}},
	}

	graph := loader.GetDependencyGraph()

	if len(graph) != 4 {
		t.Errorf("graph size = %d, want 4", len(graph))
	}
	if len(graph["A"]) != 2 {
		t.Errorf("A dependencies = %d, want 2", len(graph["A"]))
	}
	if len(graph["B"]) != 1 {
		t.Errorf("B dependencies = %d, want 1", len(graph["B"]))
	}
}

func TestCache(t *testing.T) {
	loader := newTestLoader()

	mod := &Module{
		Identity: "test/module",
		FilePath: "/path/to/module.toc",
	}

	loader.cacheModule(mod)

	cached := loader.getCached("test/module")
	if cached == nil {
		t.Fatal("module should be in cache")
	}
	if cached.Identity != "test/module" {
		t.Errorf("cached module identity = %s, want test/module", cached.Identity)
	}

	if loader.getCached("non/existent") != nil {
		t.Error("non-existent module should not be in cache")
	}
}

// TestLoadFileIntegration exercises Load through the real filesystem with
// a stub parser standing in for the surface grammar.
func TestLoadFileIntegration(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "module_test")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(tmpDir)

	modulePath := filepath.Join(tmpDir, "test.toc")
	if err := os.WriteFile(modulePath, []byte("fn main() -> int { 42 }"), 0644); err != nil {
		t.Fatal(err)
	}

	loader := NewLoader(stubParse(map[string]*ast.File{
		modulePath: {Funcs: []*ast.FuncDecl{{Name: "main"}}},
	}, nil))

	mod, err := loader.LoadFile(modulePath)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}

	if mod.FilePath != modulePath {
		t.Errorf("module file path = %s, want %s", mod.FilePath, modulePath)
	}
	if _, ok := mod.Exports["main"]; !ok {
		t.Error("expected main to be exported implicitly")
	}

	cached := loader.getCached("test")
	if cached == nil {
		t.Error("module should be cached after loading")
	}
}

func TestLoadFileIntegration_ParseErrorSurfaces(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "module_test_err")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(tmpDir)

	modulePath := filepath.Join(tmpDir, "broken.toc")
	if err := os.WriteFile(modulePath, []byte("???"), 0644); err != nil {
		t.Fatal(err)
	}

	loader := NewLoader(stubParse(nil, map[string]bool{modulePath: true}))

	_, err = loader.LoadFile(modulePath)
	if err == nil {
		t.Fatal("expected a parse error")
	}
	modErr, ok := err.(*ModuleError)
	if !ok {
		t.Fatalf("expected *ModuleError, got %T", err)
	}
	if modErr.Code != "M014" {
		t.Errorf("error code = %s, want M014", modErr.Code)
	}
}
