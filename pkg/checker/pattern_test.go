package checker

import (
	"testing"

	"github.com/stretchr/testify/require"

	"groovystatic/pkg/ast"
	"groovystatic/pkg/errors"
)

// TestRegexFindValidatesPatternLiteral exercises §4.B's `=~` contract and
// its dlclark/regexp2-backed pattern validation: a syntactically invalid
// pattern literal on the right-hand side is reported, the valid case is
// not.
func TestRegexFindValidatesPatternLiteral(t *testing.T) {
	class := ast.NewClassDecl(pos, "Example")
	c := newTestChecker(t, class)

	expr := ast.NewBinaryExpr(pos, ast.OpRegexFind, strLit("hello"), strLit("(unterminated"))
	result := c.visitExpression(expr)

	require.True(t, result.Equals(c.classes.Matcher))
	require.Len(t, c.Sink().Diagnostics(), 1)
	require.Equal(t, errors.InconvertibleCast, c.Sink().Diagnostics()[0].Kind)
}

func TestRegexFindAcceptsValidPatternLiteral(t *testing.T) {
	class := ast.NewClassDecl(pos, "Example")
	c := newTestChecker(t, class)

	expr := ast.NewBinaryExpr(pos, ast.OpRegexFind, strLit("hello"), strLit("[a-z]+"))
	c.visitExpression(expr)

	require.Empty(t, c.Sink().Diagnostics())
}

// TestBitwiseNegateOnInvalidStringPatternReportsError exercises the other
// string-to-Pattern path §4.B names (unary bitwise-negate).
func TestBitwiseNegateOnInvalidStringPatternReportsError(t *testing.T) {
	class := ast.NewClassDecl(pos, "Example")
	c := newTestChecker(t, class)

	expr := ast.NewUnaryExpr(pos, ast.OpBitwiseNegate, strLit("["))
	result := c.visitExpression(expr)

	require.True(t, result.Equals(c.classes.Pattern))
	require.Len(t, c.Sink().Diagnostics(), 1)
	require.Equal(t, errors.InconvertibleCast, c.Sink().Diagnostics()[0].Kind)
}
