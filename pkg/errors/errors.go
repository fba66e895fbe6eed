// Package errors implements the checker's diagnostic channel: a closed
// Kind enumeration (§7), a Severity so precision-loss warnings share the
// channel with hard errors, and source-context caret formatting grounded
// on go-dws's internal/errors.CompilerError.Format.
package errors

import (
	"fmt"
	"strings"

	"github.com/mattn/go-isatty"
)

// Kind is the closed error-kind enumeration from §7 (not type names —
// these are checker-level classifications of what went wrong).
type Kind int

const (
	UnknownVariable Kind = iota
	UnknownProperty
	UnknownMethod
	AmbiguousMethod
	AssignmentIncompatible
	GenericsIncompatible
	NumericPrecisionLoss
	InconvertibleCast
	TupleArityMismatch
	DynamicMapKey
	SpreadOperatorMisuse
	WithParameterMismatch
	ClosureArgumentsMismatch
	ReturnTypeMismatch
	ClosureSharedVariableNotOnLUB
)

func (k Kind) String() string {
	switch k {
	case UnknownVariable:
		return "UnknownVariable"
	case UnknownProperty:
		return "UnknownProperty"
	case UnknownMethod:
		return "UnknownMethod"
	case AmbiguousMethod:
		return "AmbiguousMethod"
	case AssignmentIncompatible:
		return "AssignmentIncompatible"
	case GenericsIncompatible:
		return "GenericsIncompatible"
	case NumericPrecisionLoss:
		return "NumericPrecisionLoss"
	case InconvertibleCast:
		return "InconvertibleCast"
	case TupleArityMismatch:
		return "TupleArityMismatch"
	case DynamicMapKey:
		return "DynamicMapKey"
	case SpreadOperatorMisuse:
		return "SpreadOperatorMisuse"
	case WithParameterMismatch:
		return "WithParameterMismatch"
	case ClosureArgumentsMismatch:
		return "ClosureArgumentsMismatch"
	case ReturnTypeMismatch:
		return "ReturnTypeMismatch"
	case ClosureSharedVariableNotOnLUB:
		return "ClosureSharedVariableNotOnLUB"
	}
	return "Unknown"
}

// Severity distinguishes hard errors from conceptually-recoverable
// warnings (precision loss, ambiguity) sharing the same channel (§7).
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

// Diagnostic is one reported problem.
type Diagnostic struct {
	Kind     Kind
	Severity Severity
	Message  string
	Pos      Position
	RunID    string // correlates diagnostics from one Checker instance, see pkg/checker
}

func (d *Diagnostic) Error() string { return d.Format(false) }

// Format renders d with a source-context line and caret, the same shape
// as go-dws's CompilerError.Format. When color is true ANSI codes are
// emitted (callers typically gate this on isatty.IsTerminal, see
// cmd/groovytypec).
func (d *Diagnostic) Format(color bool) string {
	var sb strings.Builder

	label := "error"
	if d.Severity == SeverityWarning {
		label = "warning"
	}

	file := "<unknown>"
	var line string
	if d.Pos.Source != nil {
		file = d.Pos.Source.DisplayPath()
		lines := d.Pos.Source.Lines()
		if d.Pos.Line >= 1 && d.Pos.Line <= len(lines) {
			line = lines[d.Pos.Line-1]
		}
	}

	sb.WriteString(fmt.Sprintf("%s: %s:%d:%d: %s\n", label, file, d.Pos.Line, d.Pos.Column, d.Message))

	if line != "" {
		lineNumStr := fmt.Sprintf("%4d | ", d.Pos.Line)
		sb.WriteString(lineNumStr)
		sb.WriteString(line)
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat(" ", len(lineNumStr)+max(0, d.Pos.Column-1)))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m")
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// Sink collects diagnostics during a checker run and is the only way the
// checker surfaces problems (§4.H, §6 "an error sink with
// addError(msg, nodeWithPosition)").
type Sink struct {
	diagnostics []*Diagnostic
	runID       string
}

// NewSink creates an empty sink tagged with runID (the checker's
// per-instance correlation id).
func NewSink(runID string) *Sink {
	return &Sink{runID: runID}
}

// Add records d, stamping it with the sink's run id.
func (s *Sink) Add(d *Diagnostic) {
	d.RunID = s.runID
	s.diagnostics = append(s.diagnostics, d)
}

// Diagnostics returns every recorded diagnostic, in discovery order (§5:
// "Error emission order equals discovery order").
func (s *Sink) Diagnostics() []*Diagnostic { return s.diagnostics }

// HasErrors reports whether any recorded diagnostic is SeverityError (§7:
// "a non-empty error list at end of compilation fails the build" —
// warnings alone do not).
func (s *Sink) HasErrors() bool {
	for _, d := range s.diagnostics {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// FormatAll renders every diagnostic, with ANSI color when color is true;
// the caller decides color.
func (s *Sink) FormatAll(color bool) string {
	var sb strings.Builder
	for _, d := range s.diagnostics {
		sb.WriteString(d.Format(color))
	}
	return sb.String()
}

// IsTerminalFD reports whether fd is a terminal, so callers can decide
// color output without importing go-isatty themselves. cmd/groovytypec
// calls isatty directly and does not use it.
func IsTerminalFD(fd uintptr) bool {
	return isatty.IsTerminal(fd)
}
