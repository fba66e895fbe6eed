package checker

import (
	"testing"

	"github.com/stretchr/testify/require"

	"groovystatic/pkg/ast"
	"groovystatic/pkg/errors"
	"groovystatic/pkg/source"
	"groovystatic/pkg/types"
)

var pos = ast.Position{Line: 1, Column: 1}

func newTestChecker(t *testing.T, class *ast.ClassDecl) *Checker {
	t.Helper()
	src := source.NewSourceFile("test.groovy", "", "")
	return NewChecker(src, class, nil)
}

func intLit(v int) *ast.Literal   { return ast.NewLiteral(pos, ast.IntLit, v) }
func strLit(v string) *ast.Literal { return ast.NewLiteral(pos, ast.StringLit, v) }

func methodReturning(name string, body []ast.Statement) *ast.MethodDecl {
	m := ast.NewMethodDecl(pos, name)
	m.Body = body
	return m
}

// TestSimpleMethodInfersIntReturnType exercises §4.A/§4.B/§6's base path:
// a method with no declared return type infers one from its body.
func TestSimpleMethodInfersIntReturnType(t *testing.T) {
	class := ast.NewClassDecl(pos, "Example")
	m := methodReturning("answer", []ast.Statement{
		ast.NewReturnStatement(pos, intLit(42)),
	})
	class.Methods = append(class.Methods, m)

	c := newTestChecker(t, class)
	c.VisitClass()
	c.PerformSecondPass()

	require.False(t, c.Sink().HasErrors())
	require.True(t, m.ResolvedSignature.ReturnType.Equals(types.Int))
}

// TestUnknownVariableReportsError exercises §4.B's variable-reference
// failure path and §7's diagnostic channel.
func TestUnknownVariableReportsError(t *testing.T) {
	class := ast.NewClassDecl(pos, "Example")
	ref := ast.NewIdentifier(pos, "nope")
	m := methodReturning("broken", []ast.Statement{
		ast.NewExpressionStatement(pos, ref),
	})
	class.Methods = append(class.Methods, m)

	c := newTestChecker(t, class)
	c.VisitClass()
	c.PerformSecondPass()

	diags := c.Sink().Diagnostics()
	require.Len(t, diags, 1)
	require.Equal(t, errors.UnknownVariable, diags[0].Kind)
}

// TestAssignmentWideningIsAllowed exercises §4.C's assignability/widening
// contract: assigning an int literal to a declared long local is fine.
func TestAssignmentWideningIsAllowed(t *testing.T) {
	class := ast.NewClassDecl(pos, "Example")
	decl := ast.NewVarDeclStatement(pos, "x", &ast.TypeRef{Name: "long"}, intLit(5))
	m := methodReturning("run", []ast.Statement{decl})
	class.Methods = append(class.Methods, m)

	c := newTestChecker(t, class)
	c.VisitClass()
	c.PerformSecondPass()

	require.False(t, c.Sink().HasErrors())
}

// TestIncompatibleAssignmentReportsError exercises §4.C's incompatible
// path: assigning a String to a declared int local must fail.
func TestIncompatibleAssignmentReportsError(t *testing.T) {
	class := ast.NewClassDecl(pos, "Example")
	decl := ast.NewVarDeclStatement(pos, "x", &ast.TypeRef{Name: "int"}, strLit("nope"))
	m := methodReturning("run", []ast.Statement{decl})
	class.Methods = append(class.Methods, m)

	c := newTestChecker(t, class)
	c.VisitClass()
	c.PerformSecondPass()

	diags := c.Sink().Diagnostics()
	require.NotEmpty(t, diags)
	require.Equal(t, errors.AssignmentIncompatible, diags[0].Kind)
}

// TestInstanceOfNarrowsVariableType exercises §4.F's flow narrowing: once a
// dynamic parameter has been guarded by `instanceof String`, the narrowed
// candidate is available under the variable's key for the rest of the
// guarded branch.
func TestInstanceOfNarrowsVariableType(t *testing.T) {
	class := ast.NewClassDecl(pos, "Example")
	c := newTestChecker(t, class)

	ref := ast.NewIdentifier(pos, "v")
	cond := ast.NewBinaryExpr(pos, ast.OpInstanceOf, ref, nil)
	cond.InstanceOfType = &ast.TypeRef{Name: "java.lang.String"}

	c.pushIfBranchFrame()
	c.collectInstanceOf(cond)
	cands := c.narrowedCandidates("var:v")
	require.Len(t, cands, 1)
	require.True(t, cands[0].Equals(c.classes.String))
	c.popIfBranchFrame()
}

// TestClosureSharedVariableResolvesOnFirstPass exercises §4.G: a variable
// assigned before a closure is defined, then read from inside the closure,
// resolves against its tracked type without needing the second pass to
// change the outcome.
func TestClosureSharedVariableResolvesOnFirstPass(t *testing.T) {
	class := ast.NewClassDecl(pos, "Example")
	decl := ast.NewVarDeclStatement(pos, "n", nil, intLit(1))

	closureBody := []ast.Statement{
		ast.NewExpressionStatement(pos, ast.NewIdentifier(pos, "n")),
	}
	closure := ast.NewClosureLiteral(pos, nil, closureBody)
	closureStmt := ast.NewExpressionStatement(pos, closure)

	m := methodReturning("run", []ast.Statement{decl, closureStmt})
	class.Methods = append(class.Methods, m)

	c := newTestChecker(t, class)
	c.VisitClass()
	c.PerformSecondPass()

	require.False(t, c.Sink().HasErrors())
}

// TestVisitClassPanicsOnSecondCall guards §8's idempotence invariant.
func TestVisitClassPanicsOnSecondCall(t *testing.T) {
	class := ast.NewClassDecl(pos, "Example")
	c := newTestChecker(t, class)
	c.VisitClass()
	require.Panics(t, func() { c.VisitClass() })
}
