// Package returnadder implements only the contract spec.md §1 keeps from
// the real ReturnAdder collaborator: a callback invoked once per return
// statement a method body is considered to produce, including an
// implicit trailing expression return (the language treats the last
// expression-statement of a method/closure body as an implicit return,
// same as Groovy). It does not rewrite the tree or synthesize new nodes;
// it only walks and calls back, since nothing downstream of this module
// consumes a rewritten body.
package returnadder

import "groovystatic/pkg/ast"

// Listener is invoked once per return value discovered in a body, in
// source order. value is nil for a bare `return` with no expression.
type Listener func(value ast.Expression)

// Walk visits body (a method or closure's statement list) and invokes on
// for every explicit return statement, including those nested in blocks,
// if/else branches and loop bodies, plus the implicit return of an
// expression statement in tail position: the last statement of body, or
// the last statement of each if/else branch when body ends in an if. A
// loop body is never in tail position.
func Walk(body []ast.Statement, on Listener) {
	walkStatements(body, on, true)
}

func walkStatements(stmts []ast.Statement, on Listener, tailPosition bool) {
	for i, stmt := range stmts {
		isLast := i == len(stmts)-1
		walkStatement(stmt, on, tailPosition && isLast)
	}
}

func walkStatement(stmt ast.Statement, on Listener, tail bool) {
	switch s := stmt.(type) {
	case *ast.ReturnStatement:
		on(s.Value)
	case *ast.BlockStatement:
		walkStatements(s.Statements, on, tail)
	case *ast.IfStatement:
		walkStatement(s.Then, on, tail)
		if s.Else != nil {
			walkStatement(s.Else, on, tail)
		}
	case *ast.WhileStatement:
		walkStatement(s.Body, on, false)
	case *ast.ForEachStatement:
		walkStatement(s.Body, on, false)
	case *ast.ExpressionStatement:
		if tail {
			on(s.Expr)
		}
	}
}
