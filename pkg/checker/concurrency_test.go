package checker

import (
	"testing"

	"go.uber.org/goleak"

	"groovystatic/pkg/ast"
)

// TestVisitClassSpawnsNoGoroutines guards §5's concurrency contract: a
// Checker instance does all of its work on the calling goroutine.
func TestVisitClassSpawnsNoGoroutines(t *testing.T) {
	defer goleak.VerifyNone(t)

	class := ast.NewClassDecl(pos, "Example")
	m := methodReturning("run", []ast.Statement{
		ast.NewReturnStatement(pos, intLit(1)),
	})
	class.Methods = append(class.Methods, m)

	c := newTestChecker(t, class)
	c.VisitClass()
	c.PerformSecondPass()
}
