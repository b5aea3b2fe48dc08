// Package module implements module loading and dependency resolution for Tocin.
package module

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/tocin-lang/tocin/internal/ast"
	"github.com/tocin-lang/tocin/internal/check"
	"github.com/tocin-lang/tocin/internal/diag"
	"github.com/tocin-lang/tocin/internal/traits"
)

// ParseFunc turns Tocin source text into a file. The loader never calls a
// concrete lexer/parser directly — surface grammar is out of scope here,
// so the front end is injected the same way internal/ownership is handed
// resolveParams and internal/lower is handed Lowerer.TypeOf.
type ParseFunc func(source, filename string) (*ast.File, []diag.Diagnostic)

// Module is one resolved, parsed compilation unit plus the metadata the
// loader needs to order and validate it against its dependents.
type Module struct {
	// Identity is the canonical module path (e.g., "std/list", "data/tree")
	Identity string

	// FilePath is the absolute path to the module file
	FilePath string

	// File is the parsed module
	File *ast.File

	// Dependencies are the modules this module imports
	Dependencies []string

	// Exports are the symbols exported by this module
	Exports map[string]ast.Node
}

// Loader handles module loading and dependency resolution
type Loader struct {
	// cache stores loaded modules by their identity
	cache map[string]*Module
	mu    sync.RWMutex

	// parse turns source text into a *ast.File; injected so this package
	// never depends on a specific front end.
	parse ParseFunc

	// searchPaths are directories to search for modules
	searchPaths []string

	// stdlibPath is the path to the standard library
	stdlibPath string

	// currentFile is the file currently being loaded (for relative imports)
	currentFile string

	// loadStack tracks the current load chain for cycle detection
	loadStack []string
}

// NewLoader creates a new module loader. parse must not be nil.
func NewLoader(parse ParseFunc) *Loader {
	return &Loader{
		cache:       make(map[string]*Module),
		parse:       parse,
		searchPaths: getDefaultSearchPaths(),
		stdlibPath:  getStdlibPath(),
		loadStack:   []string{},
	}
}

// getDefaultSearchPaths returns the default module search paths
func getDefaultSearchPaths() []string {
	paths := []string{
		".", // Current directory
	}

	// Add TOCIN_MODULE_PATH if set
	if modulePath := os.Getenv("TOCIN_MODULE_PATH"); modulePath != "" {
		paths = append(paths, strings.Split(modulePath, string(os.PathListSeparator))...)
	}

	// Add home directory modules
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".tocin", "modules"))
	}

	return paths
}

// getStdlibPath returns the path to the standard library
func getStdlibPath() string {
	// Check environment variable
	if stdlib := os.Getenv("TOCIN_STDLIB"); stdlib != "" {
		return stdlib
	}

	// Check relative to executable
	if exe, err := os.Executable(); err == nil {
		stdlib := filepath.Join(filepath.Dir(exe), "..", "stdlib")
		if info, err := os.Stat(stdlib); err == nil && info.IsDir() {
			return stdlib
		}
	}

	// Fallback to current directory
	return filepath.Join(".", "stdlib")
}

// Load loads a module by its import path
func (l *Loader) Load(importPath string) (*Module, error) {
	// Normalize the import path
	identity := l.normalizeModulePath(importPath)

	// Check cache
	if mod := l.getCached(identity); mod != nil {
		return mod, nil
	}

	// Check for circular dependency
	if err := l.checkCycle(identity); err != nil {
		return nil, err
	}

	// Add to load stack
	l.pushStack(identity)
	defer l.popStack()

	// Resolve the file path
	filePath, err := l.resolvePath(importPath)
	if err != nil {
		return nil, l.moduleNotFoundError(importPath, err)
	}

	// Parse the module file
	mod, err := l.parseModule(identity, filePath)
	if err != nil {
		return nil, err
	}

	// Load dependencies
	if err := l.loadDependencies(mod); err != nil {
		return nil, err
	}

	// Validate module
	if err := l.validateModule(mod); err != nil {
		return nil, err
	}

	// Cache the module
	l.cacheModule(mod)

	return mod, nil
}

// LoadFile loads a module from a specific file path
func (l *Loader) LoadFile(filePath string) (*Module, error) {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return nil, fmt.Errorf("invalid file path: %w", err)
	}

	// Derive module identity from file path
	identity := l.deriveModuleIdentity(absPath)

	// Set current file for relative imports
	oldFile := l.currentFile
	l.currentFile = absPath
	defer func() { l.currentFile = oldFile }()

	// Check cache
	if mod := l.getCached(identity); mod != nil {
		return mod, nil
	}

	// Parse and load
	mod, err := l.parseModule(identity, absPath)
	if err != nil {
		return nil, err
	}

	// Load dependencies
	if err := l.loadDependencies(mod); err != nil {
		return nil, err
	}

	// Validate
	if err := l.validateModule(mod); err != nil {
		return nil, err
	}

	// Cache
	l.cacheModule(mod)

	return mod, nil
}

// parseModule parses a module file
func (l *Loader) parseModule(identity, filePath string) (*Module, error) {
	// Read the file
	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read module file: %w", err)
	}

	// Parse the file
	f, diags := l.parse(string(content), filePath)
	if hasErrors(diags) {
		return nil, l.parseError(filePath, diags)
	}

	mod := &Module{
		Identity:     identity,
		FilePath:     filePath,
		File:         f,
		Dependencies: l.extractDependencies(f),
		Exports:      l.extractExports(f),
	}

	return mod, nil
}

func hasErrors(diags []diag.Diagnostic) bool {
	for _, d := range diags {
		if d.Severity >= diag.Error {
			return true
		}
	}
	return false
}

// resolvePath resolves an import path to a file path
func (l *Loader) resolvePath(importPath string) (string, error) {
	// Handle relative imports
	if strings.HasPrefix(importPath, "./") || strings.HasPrefix(importPath, "../") {
		if l.currentFile == "" {
			return "", fmt.Errorf("relative import '%s' with no current file", importPath)
		}
		dir := filepath.Dir(l.currentFile)
		path := filepath.Join(dir, importPath)
		if !strings.HasSuffix(path, ".toc") {
			path += ".toc"
		}
		if _, err := os.Stat(path); err == nil {
			return filepath.Abs(path)
		}
		return "", fmt.Errorf("module not found: %s", path)
	}

	// Handle stdlib imports
	if strings.HasPrefix(importPath, "std/") {
		path := filepath.Join(l.stdlibPath, strings.TrimPrefix(importPath, "std/"))
		if !strings.HasSuffix(path, ".toc") {
			path += ".toc"
		}
		if _, err := os.Stat(path); err == nil {
			return filepath.Abs(path)
		}
		return "", fmt.Errorf("stdlib module not found: %s", importPath)
	}

	// Search in search paths
	for _, searchPath := range l.searchPaths {
		path := filepath.Join(searchPath, importPath)
		if !strings.HasSuffix(path, ".toc") {
			path += ".toc"
		}
		if _, err := os.Stat(path); err == nil {
			return filepath.Abs(path)
		}
	}

	return "", fmt.Errorf("module not found in search paths: %s", importPath)
}

// loadDependencies loads all dependencies of a module
func (l *Loader) loadDependencies(mod *Module) error {
	for _, dep := range mod.Dependencies {
		if _, err := l.Load(dep); err != nil {
			return fmt.Errorf("failed to load dependency '%s': %w", dep, err)
		}
	}
	return nil
}

// validateModule validates a module for consistency
func (l *Loader) validateModule(mod *Module) error {
	// Check for duplicate exports
	seen := make(map[string]bool)
	for name := range mod.Exports {
		if seen[name] {
			return l.duplicateExportError(name, mod.Identity)
		}
		seen[name] = true
	}

	// Validate imports reference actual exports
	for _, imp := range mod.File.Imports {
		depMod, err := l.Load(imp.Path)
		if err != nil {
			return err
		}

		for _, sym := range imp.Symbols {
			if _, ok := depMod.Exports[sym.Name]; !ok {
				return l.importNotExportedError(sym.Name, imp.Path, mod.Identity)
			}
		}
	}

	return nil
}

// Helper methods

func (l *Loader) getCached(identity string) *Module {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.cache[identity]
}

func (l *Loader) cacheModule(mod *Module) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cache[mod.Identity] = mod
}

func (l *Loader) checkCycle(identity string) error {
	for i, id := range l.loadStack {
		if id == identity {
			cycle := append(append([]string{}, l.loadStack[i:]...), identity)
			return l.circularDependencyError(cycle)
		}
	}
	return nil
}

func (l *Loader) pushStack(identity string) {
	l.loadStack = append(l.loadStack, identity)
}

func (l *Loader) popStack() {
	if len(l.loadStack) > 0 {
		l.loadStack = l.loadStack[:len(l.loadStack)-1]
	}
}

func (l *Loader) normalizeModulePath(path string) string {
	// Remove .toc extension if present
	path = strings.TrimSuffix(path, ".toc")
	// Normalize separators
	path = strings.ReplaceAll(path, "\\", "/")
	return path
}

func (l *Loader) deriveModuleIdentity(filePath string) string {
	// Remove .toc extension
	identity := strings.TrimSuffix(filepath.Base(filePath), ".toc")

	// For files in known directories, include the directory structure
	for _, searchPath := range l.searchPaths {
		if absSearch, err := filepath.Abs(searchPath); err == nil {
			if strings.HasPrefix(filePath, absSearch) {
				rel, _ := filepath.Rel(absSearch, filePath)
				identity = strings.TrimSuffix(rel, ".toc")
				identity = strings.ReplaceAll(identity, string(filepath.Separator), "/")
				break
			}
		}
	}

	return identity
}

func (l *Loader) isStdlib(identity string) bool {
	return strings.HasPrefix(identity, "std/")
}

func (l *Loader) extractDependencies(f *ast.File) []string {
	deps := make([]string, 0, len(f.Imports))
	for _, imp := range f.Imports {
		deps = append(deps, imp.Path)
	}
	return deps
}

// extractExports collects every top-level function and type declaration
// marked IsExport/Exported. If nothing in the file is marked exported (no
// "export" keyword used anywhere), every top-level declaration is exported
// implicitly — matching what the teacher's loader did for a module with no
// explicit export clause.
func (l *Loader) extractExports(f *ast.File) map[string]ast.Node {
	anyExplicit := false
	for _, fn := range f.Funcs {
		if fn.IsExport {
			anyExplicit = true
			break
		}
	}
	if !anyExplicit {
		for _, td := range f.Types {
			if td.Exported {
				anyExplicit = true
				break
			}
		}
	}

	exports := make(map[string]ast.Node, len(f.Funcs)+len(f.Types))
	for _, fn := range f.Funcs {
		if !anyExplicit || fn.IsExport {
			exports[fn.Name] = fn
		}
	}
	for _, td := range f.Types {
		if !anyExplicit || td.Exported {
			exports[td.Name] = td
		}
	}
	return exports
}

// Error constructors

func (l *Loader) moduleNotFoundError(path string, err error) error {
	return &ModuleError{
		Code:    "M010",
		Message: fmt.Sprintf("module not found: %s", path),
		Path:    path,
		Trace:   l.buildResolutionTrace(),
		Cause:   err,
	}
}

func (l *Loader) circularDependencyError(cycle []string) error {
	return &ModuleError{
		Code:    "M011",
		Message: "circular module dependency detected",
		Cycle:   cycle,
		Trace:   l.buildResolutionTrace(),
	}
}

func (l *Loader) duplicateExportError(name, module string) error {
	return &ModuleError{
		Code:    "M012",
		Message: fmt.Sprintf("duplicate export '%s' in module %s", name, module),
		Path:    module,
	}
}

func (l *Loader) importNotExportedError(item, fromModule, inModule string) error {
	return &ModuleError{
		Code:    "M013",
		Message: fmt.Sprintf("import '%s' not exported by module %s (imported in %s)", item, fromModule, inModule),
		Path:    inModule,
	}
}

func (l *Loader) parseError(path string, diags []diag.Diagnostic) error {
	if len(diags) > 0 {
		return &ModuleError{
			Code:    "M014",
			Message: fmt.Sprintf("parse error in %s: %s", path, diags[0].Message),
			Path:    path,
		}
	}
	return fmt.Errorf("parse error in %s", path)
}

func (l *Loader) buildResolutionTrace() []string {
	trace := make([]string, 0, len(l.loadStack))
	for i, id := range l.loadStack {
		indent := strings.Repeat("  ", i)
		if i == 0 {
			trace = append(trace, fmt.Sprintf("Resolving %s", id))
		} else {
			trace = append(trace, fmt.Sprintf("%s-> import %s", indent, id))
		}
	}
	return trace
}

// ModuleError represents a module loading error with structured information
type ModuleError struct {
	Code    string   // Error code (e.g., M010)
	Message string   // Human-readable message
	Path    string   // Module path that caused the error
	Cycle   []string // For circular dependencies
	Trace   []string // Resolution trace
	Cause   error    // Underlying error
}

func (e *ModuleError) Error() string {
	return e.Message
}

// GetDependencyGraph returns the full dependency graph
func (l *Loader) GetDependencyGraph() map[string][]string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	graph := make(map[string][]string)
	for id, mod := range l.cache {
		graph[id] = mod.Dependencies
	}
	return graph
}

// RegisterDecls registers every trait, impl, and extension mod itself
// declares into registry (traits before impls before extensions, the
// same order internal/pipeline.runCheck uses within a single file, so
// an impl naming a trait this same module declares never races its
// own registration).
func (l *Loader) RegisterDecls(mod *Module, registry *traits.Registry, sink *diag.Sink) {
	c := check.New(registry, sink)
	for _, decl := range mod.File.Traits {
		c.RegisterTraitDecl(decl)
	}
	for _, decl := range mod.File.Impls {
		c.RegisterImplDecl(decl)
	}
	for _, decl := range mod.File.Extensions {
		c.RegisterExtensionDecl(decl)
	}
}

// RegisterProgram registers every cached module's trait/impl/extension
// declarations into registry, visiting modules in TopologicalSort
// order so a module's impls are registered before any module that
// imports it gets a chance to declare its own impl for the same
// target type, matching Load's own dependency-before-dependent order.
func (l *Loader) RegisterProgram(registry *traits.Registry, sink *diag.Sink) error {
	order, err := l.TopologicalSort()
	if err != nil {
		return err
	}
	l.mu.RLock()
	cache := make(map[string]*Module, len(l.cache))
	for id, mod := range l.cache {
		cache[id] = mod
	}
	l.mu.RUnlock()
	for _, id := range order {
		if mod, ok := cache[id]; ok {
			l.RegisterDecls(mod, registry, sink)
		}
	}
	return nil
}

// TopologicalSort returns modules in dependency order
func (l *Loader) TopologicalSort() ([]string, error) {
	graph := l.GetDependencyGraph()

	// Kahn's algorithm: if A depends on B, B must come before A
	reverseGraph := make(map[string][]string)
	inDegree := make(map[string]int)

	for node := range graph {
		reverseGraph[node] = []string{}
		inDegree[node] = 0
	}

	for node, deps := range graph {
		for _, dep := range deps {
			if _, exists := reverseGraph[dep]; !exists {
				reverseGraph[dep] = []string{}
				inDegree[dep] = 0
			}
			reverseGraph[dep] = append(reverseGraph[dep], node)
		}
		inDegree[node] = len(deps)
	}

	queue := []string{}
	for node, degree := range inDegree {
		if degree == 0 {
			queue = append(queue, node)
		}
	}

	result := []string{}
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		result = append(result, node)

		for _, dependent := range reverseGraph[node] {
			inDegree[dependent]--
			if inDegree[dependent] == 0 {
				queue = append(queue, dependent)
			}
		}
	}

	if len(result) != len(graph) {
		return nil, fmt.Errorf("circular dependency detected")
	}

	return result, nil
}

// DumpModules writes a human-readable summary of every cached module to w.
func (l *Loader) DumpModules(w io.Writer) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	fmt.Fprintf(w, "Loaded Modules:\n")
	for id, mod := range l.cache {
		fmt.Fprintf(w, "  %s:\n", id)
		fmt.Fprintf(w, "    File: %s\n", mod.FilePath)
		fmt.Fprintf(w, "    Dependencies: %v\n", mod.Dependencies)
		fmt.Fprintf(w, "    Exports: %v\n", l.getExportNames(mod))
	}
}

func (l *Loader) getExportNames(mod *Module) []string {
	names := make([]string, 0, len(mod.Exports))
	for name := range mod.Exports {
		names = append(names, name)
	}
	return names
}
