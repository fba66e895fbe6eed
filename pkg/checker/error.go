package checker

import (
	"fmt"

	"groovystatic/pkg/ast"
	"groovystatic/pkg/errors"
)

// addError reports a hard error at node's position (§4.H: "errors with no
// source location are silently dropped"; ast nodes here always carry one,
// so the drop case never triggers for real tree nodes — only generated
// nodes, which this module never constructs).
func (c *Checker) addError(node ast.Node, kind errors.Kind, format string, args ...interface{}) {
	c.addDiagnostic(node, kind, errors.SeverityError, format, args...)
}

// addWarning reports a conceptually-recoverable diagnostic (precision
// loss, ambiguity) on the same channel (§7).
func (c *Checker) addWarning(node ast.Node, kind errors.Kind, format string, args ...interface{}) {
	c.addDiagnostic(node, kind, errors.SeverityWarning, format, args...)
}

// addPrecisionLoss reports a NumericPrecisionLoss finding, whose severity
// depends on strictPrecisionLoss (set via WithStrictPrecisionLoss, driven
// by pkg/config's strictPrecisionLoss setting).
func (c *Checker) addPrecisionLoss(node ast.Node, format string, args ...interface{}) {
	sev := errors.SeverityWarning
	if c.strictPrecisionLoss {
		sev = errors.SeverityError
	}
	c.addDiagnostic(node, errors.NumericPrecisionLoss, sev, format, args...)
}

func (c *Checker) addDiagnostic(node ast.Node, kind errors.Kind, sev errors.Severity, format string, args ...interface{}) {
	pos := node.Pos()
	msg := fmt.Sprintf(format, args...)
	debugPrintf("// [Checker] %s at %d:%d: %s\n", kind, pos.Line, pos.Column, msg)
	c.sink.Add(&errors.Diagnostic{
		Kind:     kind,
		Severity: sev,
		Message:  msg,
		Pos: errors.Position{
			Line:   pos.Line,
			Column: pos.Column,
			Source: c.source,
		},
	})
}
