package diag

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

var (
	fatalColor   = color.New(color.FgRed, color.Bold).SprintFunc()
	errorColor   = color.New(color.FgRed).SprintFunc()
	warningColor = color.New(color.FgYellow).SprintFunc()
	infoColor    = color.New(color.FgCyan).SprintFunc()
	boldColor    = color.New(color.Bold).SprintFunc()
	dimColor     = color.New(color.Faint).SprintFunc()
)

func colorFor(sev Severity) func(a ...interface{}) string {
	switch sev {
	case Fatal:
		return fatalColor
	case Error:
		return errorColor
	case Warning:
		return warningColor
	default:
		return infoColor
	}
}

// Human renders d the way the CLI's --error-format=human prints it:
// severity-colored code and message, dimmed position, and an optional
// fix suggestion on its own line.
func (d Diagnostic) Human() string {
	var b strings.Builder
	paint := colorFor(d.Severity)

	if d.File != "" {
		fmt.Fprintf(&b, "%s ", dimColor(fmt.Sprintf("%s:%d:%d:", d.File, d.Line, d.Column)))
	}
	fmt.Fprintf(&b, "%s %s: %s", paint(d.Severity.String()), boldColor(d.Code), d.Message)

	if d.Fix != nil {
		fmt.Fprintf(&b, "\n  %s %s", dimColor("help:"), d.Fix.Suggestion)
	}
	return b.String()
}

// Human renders every diagnostic in s, one per line (plus any fix
// lines), followed by a summary count by severity.
func (s *Sink) Human() string {
	var b strings.Builder
	for _, d := range s.diagnostics {
		b.WriteString(d.Human())
		b.WriteByte('\n')
	}
	counts := s.CountBySeverity()
	if len(s.diagnostics) > 0 {
		fmt.Fprintf(&b, "%s %d error(s), %d warning(s)\n",
			dimColor("summary:"), counts[Error]+counts[Fatal], counts[Warning])
	}
	return b.String()
}
