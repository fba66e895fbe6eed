package checker

import (
	"groovystatic/pkg/ast"
	"groovystatic/pkg/symbols"
	"groovystatic/pkg/types"
)

// visitIf implements §4.F: the condition's instanceof checks populate a
// fresh refinement frame live only for Then; Else runs outside it (this
// module does not attempt to invert instanceof conditions onto Else,
// matching the "only true-branch refinement" framing §4.F gives for
// ternary and carried over here for symmetry). Both branches' assignments
// are tracked and joined via LUB on exit (§4.F "Branch-join").
func (c *Checker) visitIf(s *ast.IfStatement) {
	c.visitExpression(s.Cond)

	c.pushAssignmentFrame()
	c.pushIfBranchFrame()
	c.collectInstanceOf(s.Cond)
	c.visitStatement(s.Then)
	c.popIfBranchFrame()
	if s.Else != nil {
		c.visitStatement(s.Else)
	}
	c.joinAssignmentFrame()
}

func (c *Checker) visitWhile(s *ast.WhileStatement) {
	c.visitExpression(s.Cond)
	c.pushAssignmentFrame()
	c.pushIfBranchFrame()
	c.collectInstanceOf(s.Cond)
	c.visitStatement(s.Body)
	c.popIfBranchFrame()
	c.joinAssignmentFrame()
}

func (c *Checker) visitForEach(s *ast.ForEachStatement) {
	iterType := c.visitExpression(s.Iterable)
	elemType := c.forEachElementType(iterType)
	if s.Declared != nil {
		elemType = c.resolveTypeRef(s.Declared)
	}
	c.forLoopVariableTypes[s.VarName] = elemType
	c.scope.Declare(s.VarName, symbols.Binding{Kind: symbols.Local, Declared: s.Declared})

	c.pushAssignmentFrame()
	c.visitStatement(s.Body)
	c.joinAssignmentFrame()

	delete(c.forLoopVariableTypes, s.VarName)
}

// forEachElementType derives the loop variable's type from an iterable
// receiver: array component type, or a single List/Range/Iterable type
// argument, defaulting to Dynamic for an unparameterized collection.
func (c *Checker) forEachElementType(iterType types.Type) types.Type {
	if arr, ok := iterType.(*types.ArrayType); ok {
		return arr.ElementType
	}
	if cls, ok := asClass(iterType); ok && len(cls.TypeArguments) == 1 {
		return cls.TypeArguments[0]
	}
	return types.Dynamic
}

// collectInstanceOf scans cond (and any top-level && chain) for
// `x instanceof T` and narrows x's key for the duration of the enclosing
// branch (§4.F).
func (c *Checker) collectInstanceOf(cond ast.Expression) {
	bin, ok := cond.(*ast.BinaryExpr)
	if !ok {
		return
	}
	if bin.Op == ast.OpLogicalAnd {
		c.collectInstanceOf(bin.Left)
		c.collectInstanceOf(bin.Right)
		return
	}
	if bin.Op != ast.OpInstanceOf {
		return
	}
	key := narrowingKey(bin.Left)
	narrowed := c.resolveTypeRef(bin.InstanceOfType)
	c.narrowKey(key, narrowed)
}
