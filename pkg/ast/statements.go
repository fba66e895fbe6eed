package ast

import "groovystatic/pkg/types"

// ExpressionStatement wraps an expression used as a statement.
type ExpressionStatement struct {
	baseStmt
	Expr Expression
}

func NewExpressionStatement(pos Position, expr Expression) *ExpressionStatement {
	s := &ExpressionStatement{Expr: expr}
	s.position = pos
	return s
}

// VarDeclStatement declares a local variable, optionally with a declared
// type (`def x` has Declared == nil) and an optional initializer.
type VarDeclStatement struct {
	baseStmt
	Name     string
	Declared *TypeRef
	Init     Expression

	ResolvedType types.Type // set by the checker after the declared/inferred type is known
}

func NewVarDeclStatement(pos Position, name string, declared *TypeRef, init Expression) *VarDeclStatement {
	s := &VarDeclStatement{Name: name, Declared: declared, Init: init}
	s.position = pos
	return s
}

// BlockStatement is a sequence of statements with its own lexical scope.
type BlockStatement struct {
	baseStmt
	Statements []Statement
}

func NewBlockStatement(pos Position, stmts []Statement) *BlockStatement {
	s := &BlockStatement{Statements: stmts}
	s.position = pos
	return s
}

// IfStatement is `if (Cond) Then [else Else]`; the checker pushes a
// refinement frame for Then only, per §4.F. Else is visited unrefined.
type IfStatement struct {
	baseStmt
	Cond Expression
	Then Statement
	Else Statement // nil if no else
}

func NewIfStatement(pos Position, cond Expression, then, els Statement) *IfStatement {
	s := &IfStatement{Cond: cond, Then: then, Else: els}
	s.position = pos
	return s
}

// WhileStatement is `while (Cond) Body`.
type WhileStatement struct {
	baseStmt
	Cond Expression
	Body Statement
}

func NewWhileStatement(pos Position, cond Expression, body Statement) *WhileStatement {
	s := &WhileStatement{Cond: cond, Body: body}
	s.position = pos
	return s
}

// ForEachStatement is `for (Var in Iterable) Body`, populating
// forLoopVariableTypes for the duration of Body (§3).
type ForEachStatement struct {
	baseStmt
	VarName  string
	Declared *TypeRef
	Iterable Expression
	Body     Statement
}

func NewForEachStatement(pos Position, varName string, iterable Expression, body Statement) *ForEachStatement {
	s := &ForEachStatement{VarName: varName, Iterable: iterable, Body: body}
	s.position = pos
	return s
}

// ReturnStatement is `return [Value]`.
type ReturnStatement struct {
	baseStmt
	Value Expression // nil for a bare `return`
}

func NewReturnStatement(pos Position, value Expression) *ReturnStatement {
	s := &ReturnStatement{Value: value}
	s.position = pos
	return s
}
