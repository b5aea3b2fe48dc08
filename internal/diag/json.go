package diag

import (
	"encoding/json"
	"errors"
)

const schema = "tocin.diagnostic/v1"

// wireDiagnostic is the JSON wire shape for a Diagnostic, matching the
// teacher's Report/Encoded struct tag layout. Go's encoding/json already
// sorts map[string]interface{} keys alphabetically, so Data needs no
// extra sorting step to stay deterministic across repeated encodes
// (internal/diag/json_test.go checks this directly).
type wireDiagnostic struct {
	Schema  string                 `json:"schema"`
	Code    string                 `json:"code"`
	Phase   string                 `json:"phase"`
	Severity string                `json:"severity"`
	Message string                 `json:"message"`
	File    string                 `json:"file,omitempty"`
	Line    int                    `json:"line,omitempty"`
	Column  int                    `json:"column,omitempty"`
	Data    map[string]interface{} `json:"data,omitempty"`
	Fix     *Fix                   `json:"fix,omitempty"`
}

func toWire(d Diagnostic) wireDiagnostic {
	phase := ""
	if info, ok := Registry[d.Code]; ok {
		phase = string(info.Phase)
	}
	return wireDiagnostic{
		Schema:   schema,
		Code:     d.Code,
		Phase:    phase,
		Severity: d.Severity.String(),
		Message:  d.Message,
		File:     d.File,
		Line:     d.Line,
		Column:   d.Column,
		Data:     d.Data,
		Fix:      d.Fix,
	}
}

// ToJSON renders d as deterministic JSON: compact=true for a single
// line (one diagnostic per line in a stream), false for indented output.
func (d Diagnostic) ToJSON(compact bool) (string, error) {
	w := toWire(d)
	var data []byte
	var err error
	if compact {
		data, err = json.Marshal(w)
	} else {
		data, err = json.MarshalIndent(w, "", "  ")
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ToJSON renders every diagnostic in s as a JSON array, sorted by
// nothing but emission order (the order passes reported them in).
func (s *Sink) ToJSON(compact bool) (string, error) {
	wire := make([]wireDiagnostic, len(s.diagnostics))
	for i, d := range s.diagnostics {
		wire[i] = toWire(d)
	}
	var data []byte
	var err error
	if compact {
		data, err = json.Marshal(wire)
	} else {
		data, err = json.MarshalIndent(wire, "", "  ")
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// DiagnosticError wraps a Diagnostic as an error so a *Diagnostic can
// survive errors.As() unwrapping through an ordinary Go error return,
// the same pattern as the teacher's ReportError/AsReport/WrapReport.
type DiagnosticError struct {
	D Diagnostic
}

func (e *DiagnosticError) Error() string {
	return e.D.Code + ": " + e.D.Message
}

// AsDiagnostic extracts a Diagnostic from an error chain, if one is
// present.
func AsDiagnostic(err error) (Diagnostic, bool) {
	var de *DiagnosticError
	if errors.As(err, &de) {
		return de.D, true
	}
	return Diagnostic{}, false
}

// WrapDiagnostic wraps d as an error.
func WrapDiagnostic(d Diagnostic) error {
	return &DiagnosticError{D: d}
}
