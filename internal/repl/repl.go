// Package repl implements an interactive line reader over the middle-end
// pipeline: each line is parsed as a one-function compilation unit, run
// through internal/pipeline.Run, and either its diagnostics or its
// lowered Core form are printed back. There is no execution backend in
// this repository (codegen/JIT/interpreter are Non-goals), so the REPL's
// job stops where the rest of the middle-end stops: at a checked,
// lowered program.
package repl

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/peterh/liner"

	"github.com/tocin-lang/tocin/internal/ast"
	"github.com/tocin-lang/tocin/internal/core"
	"github.com/tocin-lang/tocin/internal/diag"
	"github.com/tocin-lang/tocin/internal/pipeline"
	"github.com/tocin-lang/tocin/internal/traits"
)

var (
	promptColor = color.New(color.FgCyan, color.Bold).SprintFunc()
	dimColor    = color.New(color.Faint).SprintFunc()
)

const historyFile = ".tocin_history"

// ParseLine turns one line of REPL input into a single function
// declaration named "_repl", the same dependency-injection seam
// internal/module.Loader uses for its own ParseFunc — the REPL never
// imports a concrete front end directly.
type ParseLine func(line string) (*ast.FuncDecl, []diag.Diagnostic)

// Config controls what the REPL prints after each line.
type Config struct {
	ShowCore bool // print the lowered Core form for a clean line
}

// REPL reads lines from in (or a liner-backed terminal when in is nil),
// writes results to out, and accumulates nothing across lines: each line
// is its own compilation unit, checked against the one trait registry
// New creates. ParseLine yields only a function declaration, so no line
// adds trait or impl declarations to that registry.
type REPL struct {
	parse  ParseLine
	config Config
	out    io.Writer
	traits *traits.Registry
}

// New creates a REPL. parse must not be nil.
func New(parse ParseLine, config Config, out io.Writer) *REPL {
	return &REPL{
		parse:  parse,
		config: config,
		out:    out,
		traits: traits.NewRegistry(),
	}
}

// Run drives an interactive liner session until EOF or an explicit
// ":quit".
func (r *REPL) Run() error {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	historyPath := historyFilePath()
	if f, err := os.Open(historyPath); err == nil {
		line.ReadHistory(f)
		f.Close()
	}
	defer func() {
		if f, err := os.Create(historyPath); err == nil {
			line.WriteHistory(f)
			f.Close()
		}
	}()

	fmt.Fprintln(r.out, dimColor("tocin middle-end REPL — :quit to exit"))

	for {
		input, err := line.Prompt(promptColor("tocin> "))
		if err != nil { // io.EOF or Ctrl-D/Ctrl-C
			fmt.Fprintln(r.out)
			return nil
		}

		trimmed := strings.TrimSpace(input)
		if trimmed == "" {
			continue
		}
		if trimmed == ":quit" || trimmed == ":q" {
			return nil
		}

		line.AppendHistory(input)
		r.EvalLine(trimmed)
	}
}

// EvalLine parses, checks, analyzes, and lowers one line, printing the
// result to r.out.
func (r *REPL) EvalLine(src string) {
	fn, diags := r.parse(src)
	if hasErrors(diags) {
		r.printDiagnostics(diags)
		return
	}

	f := &ast.File{Funcs: []*ast.FuncDecl{fn}}
	result := pipeline.Run(f, r.traits)
	if len(result.Diagnostics) > 0 {
		r.printDiagnostics(result.Diagnostics)
	}
	if result.Lowered == nil {
		return
	}
	if r.config.ShowCore {
		for _, decl := range result.Lowered.Decls {
			fmt.Fprintf(r.out, "%s = %s\n", decl.Name, core.Pretty(&core.Program{Decls: []core.CoreExpr{decl.Body}}))
		}
	}
}

func (r *REPL) printDiagnostics(diags []diag.Diagnostic) {
	sink := diag.NewSink()
	for _, d := range diags {
		sink.Emit(d)
	}
	fmt.Fprint(r.out, sink.Human())
}

func hasErrors(diags []diag.Diagnostic) bool {
	for _, d := range diags {
		if d.Severity >= diag.Error {
			return true
		}
	}
	return false
}

func historyFilePath() string {
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, historyFile)
	}
	return historyFile
}
