// Command tocinc is the middle-end's driver: it runs one file's parsed
// AST through internal/pipeline and prints either the requested
// intermediate form or the diagnostics that stopped it getting there.
// It never invokes a lexer/parser of its own — that surface grammar is
// out of scope for this repository (see DESIGN.md) — so "parsing" here
// means building a stub ast.File good enough to drive the middle-end
// passes against, exactly like internal/repl and internal/module.Loader
// do via their own injected parse callbacks.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/tocin-lang/tocin/internal/ast"
	"github.com/tocin-lang/tocin/internal/diag"
	"github.com/tocin-lang/tocin/internal/module"
	"github.com/tocin-lang/tocin/internal/pipeline"
	"github.com/tocin-lang/tocin/internal/repl"
	"github.com/tocin-lang/tocin/internal/traits"
)

var (
	red  = color.New(color.FgRed, color.Bold).SprintFunc()
	bold = color.New(color.Bold).SprintFunc()
)

const usage = `usage: tocinc <command> [flags] [file]

commands:
  compile <file>   run a file through the middle-end
  repl             start an interactive REPL

compile flags:
  -emit=ast|typed-ast|ir      what to print (default "ast")
  -error-format=human|json    how to print diagnostics (default "human")

repl flags:
  -repl-show-core              print the lowered Core form for each line

environment:
  TOCIN_MODULE_PATH   colon-separated module search path, consulted by
                       the same resolver compile/repl build per run
`

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		fmt.Fprint(os.Stderr, usage)
		return 2
	}

	switch args[0] {
	case "compile":
		return runCompile(args[1:])
	case "repl":
		return runRepl(args[1:])
	case "-h", "--help", "help":
		fmt.Fprint(os.Stdout, usage)
		return 0
	default:
		fmt.Fprintf(os.Stderr, "%s unknown command %q\n\n", red("error:"), args[0])
		fmt.Fprint(os.Stderr, usage)
		return 2
	}
}

// newResolver builds the module resolver a real front end would hand
// tocinc file paths through. It reads TOCIN_MODULE_PATH/TOCIN_STDLIB the
// same way internal/module.Loader does;
// constructing it here, even though the stub parser never calls Load,
// keeps the search path visible on the CLI surface described alongside
// --emit and --error-format.
func newResolver() *module.Resolver {
	return module.NewResolver()
}

func runCompile(args []string) int {
	fs := flag.NewFlagSet("tocinc compile", flag.ContinueOnError)
	emit := fs.String("emit", "ast", "what to print: ast|typed-ast|ir")
	errorFormat := fs.String("error-format", "human", "how to print diagnostics: human|json")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() == 0 {
		fmt.Fprintf(os.Stderr, "%s missing file argument\n", red("error:"))
		fmt.Fprintln(os.Stderr, "usage: tocinc compile [-emit=ast|typed-ast|ir] [-error-format=human|json] <file.toc>")
		return 2
	}
	return compileFile(fs.Arg(0), *emit, *errorFormat)
}

func runRepl(args []string) int {
	fs := flag.NewFlagSet("tocinc repl", flag.ContinueOnError)
	showCore := fs.Bool("repl-show-core", false, "print the lowered Core form for each line")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	r := repl.New(stubParseLine, repl.Config{ShowCore: *showCore}, os.Stdout)
	if err := r.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", red("error:"), err)
		return 1
	}
	return 0
}

func compileFile(path, emit, errorFormat string) int {
	if _, err := os.Stat(path); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", red("error:"), err)
		return 2
	}

	resolver := newResolver()
	identity, err := resolver.GetModuleIdentity(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", red("error:"), err)
		return 2
	}

	f, diags := stubParseFile(path)
	if hasFatal(diags) {
		printDiagnostics(diags, errorFormat)
		return 2
	}

	switch emit {
	case "ast":
		fmt.Printf("// module %s\n", identity)
		fmt.Println(f.String())
		return 0
	case "typed-ast", "ir":
		result := pipeline.Run(f, traits.NewRegistry())
		printDiagnostics(result.Diagnostics, errorFormat)
		if hasFatal(result.Diagnostics) {
			return 2
		}
		if hasError(result.Diagnostics) {
			return 1
		}
		if emit == "ir" {
			d := diag.New("C001", "IR codegen is not implemented by this middle-end", diag.WithSeverity(diag.Error))
			printDiagnostics([]diag.Diagnostic{d}, errorFormat)
			return 1
		}
		fmt.Println(bold("ok: no diagnostics"))
		return 0
	default:
		fmt.Fprintf(os.Stderr, "%s unknown -emit value %q\n", red("error:"), emit)
		return 2
	}
}

func printDiagnostics(diags []diag.Diagnostic, format string) {
	if len(diags) == 0 {
		return
	}
	sink := diag.NewSink()
	for _, d := range diags {
		sink.Emit(d)
	}
	switch format {
	case "json":
		out, err := sink.ToJSON(false)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s %v\n", red("error:"), err)
			return
		}
		fmt.Println(out)
	default:
		fmt.Print(sink.Human())
	}
}

func hasError(diags []diag.Diagnostic) bool {
	for _, d := range diags {
		if d.Severity >= diag.Error {
			return true
		}
	}
	return false
}

func hasFatal(diags []diag.Diagnostic) bool {
	for _, d := range diags {
		if d.Severity == diag.Fatal {
			return true
		}
	}
	return false
}

// stubParseFile and stubParseLine stand in for the surface grammar this
// repository deliberately does not implement (see DESIGN.md): every file
// compiles to an empty module. Wiring a real front end only means
// supplying a ParseFunc/ParseLine of the same shape.
func stubParseFile(path string) (*ast.File, []diag.Diagnostic) {
	return &ast.File{}, nil
}

func stubParseLine(line string) (*ast.FuncDecl, []diag.Diagnostic) {
	return &ast.FuncDecl{Name: "_repl", Body: &ast.BlockExpr{}}, nil
}
