// Package diag implements diagnostic reporting shared by every
// middle-end pass: a severity-tagged Diagnostic, the Registry describing
// every code in the error table, and a Sink each pass is handed
// explicitly rather than reaching for package-level mutable state.
package diag

import (
	"fmt"
)

// Severity ranks a Diagnostic; higher values are more severe.
type Severity int

const (
	Info Severity = iota
	Warning
	Error
	Fatal
)

func (s Severity) String() string {
	switch s {
	case Info:
		return "INFO"
	case Warning:
		return "WARNING"
	case Error:
		return "ERROR"
	case Fatal:
		return "FATAL"
	default:
		return "UNKNOWN"
	}
}

// Phase names the compilation stage a code belongs to, for the Registry.
type Phase string

const (
	PhaseLex       Phase = "lex"
	PhaseParse     Phase = "parse"
	PhaseCheck     Phase = "check"
	PhaseOwnership Phase = "ownership"
	PhasePattern   Phase = "pattern"
	PhaseLower     Phase = "lower"
	PhaseCodegen   Phase = "codegen"
	PhaseInternal  Phase = "internal"
)

// CodeInfo is the Registry entry for one diagnostic code.
type CodeInfo struct {
	Code        string
	Phase       Phase
	Severity    Severity
	Description string
}

// Registry is the single canonical table of every code in the error
// table (spec.md §7): L### (lexical), S### (syntactic), T001-T009,
// B001-B002, M001, P001-P002, C001-C004. The teacher carried two
// separate, overlapping code tables (internal/errors/codes.go and
// internal/errors/json_encoder.go); this is the one consolidated
// definition (see DESIGN.md).
var Registry = map[string]CodeInfo{
	"L001": {"L001", PhaseLex, Error, "invalid number format"},
	"L002": {"L002", PhaseLex, Error, "unterminated string literal"},
	"L003": {"L003", PhaseLex, Error, "illegal character"},

	"S001": {"S001", PhaseParse, Error, "unexpected token"},
	"S002": {"S002", PhaseParse, Error, "unexpected end of input"},

	"T001": {"T001", PhaseCheck, Error, "type mismatch"},
	"T002": {"T002", PhaseCheck, Error, "undefined variable"},
	"T003": {"T003", PhaseCheck, Error, "undefined function or method"},
	"T004": {"T004", PhaseCheck, Error, "undefined type or trait"},
	"T006": {"T006", PhaseCheck, Error, "invalid operator for operand type"},
	"T007": {"T007", PhaseCheck, Error, "incorrect argument count"},
	"T009": {"T009", PhaseCheck, Error, "cannot infer type"},

	"B001": {"B001", PhaseOwnership, Error, "use after move"},
	"B002": {"B002", PhaseOwnership, Error, "invalid move"},

	"M001": {"M001", PhaseCheck, Error, "duplicate definition"},

	"P001": {"P001", PhasePattern, Error, "non-exhaustive match"},
	"P002": {"P002", PhasePattern, Warning, "unreachable pattern"},

	"C001": {"C001", PhaseCodegen, Error, "unimplemented feature"},
	"C002": {"C002", PhaseCodegen, Error, "code-generation error"},
	"C003": {"C003", PhaseInternal, Fatal, "internal type-check failure"},
	"C004": {"C004", PhaseInternal, Fatal, "internal assertion failed"},
}

// GetCodeInfo looks up a code's Registry entry.
func GetCodeInfo(code string) (CodeInfo, bool) {
	info, ok := Registry[code]
	return info, ok
}

// DefaultSeverity returns the Registry's default severity for a code, or
// Error if the code is unregistered (every call site is still expected
// to pass its own Severity explicitly; this is only a fallback).
func DefaultSeverity(code string) Severity {
	if info, ok := Registry[code]; ok {
		return info.Severity
	}
	return Error
}

func IsLexError(code string) bool   { return hasPrefixPhase(code, PhaseLex) }
func IsParseError(code string) bool { return hasPrefixPhase(code, PhaseParse) }
func IsTypeError(code string) bool  { return hasPrefixPhase(code, PhaseCheck) }

func hasPrefixPhase(code string, phase Phase) bool {
	info, ok := Registry[code]
	return ok && info.Phase == phase
}

// Fix is an optional suggested repair attached to a Diagnostic.
type Fix struct {
	Suggestion string  `json:"suggestion"`
	Confidence float64 `json:"confidence"`
}

// Diagnostic is one reported problem. File, Line and Column may be zero-valued for
// diagnostics not tied to a specific source range (e.g. C004 internal
// assertions raised outside any single file).
type Diagnostic struct {
	Code     string
	Severity Severity
	Message  string
	File     string
	Line     int
	Column   int
	Data     map[string]interface{}
	Fix      *Fix
}

func (d Diagnostic) String() string {
	if d.File != "" {
		return fmt.Sprintf("%s:%d:%d: %s %s: %s", d.File, d.Line, d.Column, d.Severity, d.Code, d.Message)
	}
	return fmt.Sprintf("%s %s: %s", d.Severity, d.Code, d.Message)
}

// New builds a Diagnostic using the Registry's default severity for
// code, unless overridden by one of the With* options.
func New(code, message string, opts ...Option) Diagnostic {
	d := Diagnostic{
		Code:     code,
		Severity: DefaultSeverity(code),
		Message:  message,
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

// Option configures a Diagnostic built via New.
type Option func(*Diagnostic)

func At(file string, line, column int) Option {
	return func(d *Diagnostic) { d.File = file; d.Line = line; d.Column = column }
}

func WithSeverity(sev Severity) Option {
	return func(d *Diagnostic) { d.Severity = sev }
}

func WithData(key string, value interface{}) Option {
	return func(d *Diagnostic) {
		if d.Data == nil {
			d.Data = map[string]interface{}{}
		}
		d.Data[key] = value
	}
}

func WithFix(suggestion string, confidence float64) Option {
	return func(d *Diagnostic) { d.Fix = &Fix{Suggestion: suggestion, Confidence: confidence} }
}
