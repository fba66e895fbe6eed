package checker

import (
	"groovystatic/pkg/ast"
	"groovystatic/pkg/symbols"
	"groovystatic/pkg/types"
)

// visitStatement dispatches on stmt's variant (§9 "tagged sum type with
// exhaustive pattern matching" — Go's type switch plays that role).
func (c *Checker) visitStatement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.ExpressionStatement:
		c.visitExpression(s.Expr)
	case *ast.VarDeclStatement:
		c.visitVarDecl(s)
	case *ast.BlockStatement:
		for _, inner := range s.Statements {
			c.visitStatement(inner)
		}
	case *ast.IfStatement:
		c.visitIf(s)
	case *ast.WhileStatement:
		c.visitWhile(s)
	case *ast.ForEachStatement:
		c.visitForEach(s)
	case *ast.ReturnStatement:
		if s.Value != nil {
			c.visitExpression(s.Value)
		}
	}
}

func (c *Checker) visitVarDecl(s *ast.VarDeclStatement) {
	declared := c.resolveOptionalTypeRef(s.Declared)
	s.ResolvedType = declared
	c.scope.Declare(s.Name, symbols.Binding{Kind: symbols.Local, Declared: s.Declared})

	if s.Init == nil {
		return
	}
	initType := c.visitExpression(s.Init)
	var effective types.Type
	if s.Declared != nil {
		effective = declared
		c.checkAssignment(s, ast.NewIdentifier(s.Pos(), s.Name), effective, s.Init, initType)
	} else {
		effective = initType
	}
	s.Set(ast.InferredType, effective)
	c.trackAssignment(s.Name, effective)
	c.recordDeclarationWiden(s, effective)
}

// recordDeclarationWiden implements §4.H's widened-declaration-type
// bookkeeping: when a later inference would overwrite INFERRED_TYPE, the
// LUB of old and new is kept as DECLARATION_INFERRED_TYPE (§9 Open
// Question: the narrow type still wins for subsequent compatibility
// checks, per DESIGN.md's recorded decision).
func (c *Checker) recordDeclarationWiden(s *ast.VarDeclStatement, newType types.Type) {
	if prior, ok := s.Get(ast.DeclarationInferredType); ok {
		s.Set(ast.DeclarationInferredType, types.LUB(prior.(types.Type), newType))
	} else {
		s.Set(ast.DeclarationInferredType, newType)
	}
}
