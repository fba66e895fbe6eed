package checker

import (
	"groovystatic/pkg/ast"
	"groovystatic/pkg/errors"
	"groovystatic/pkg/returnadder"
	"groovystatic/pkg/symbols"
	"groovystatic/pkg/types"
)

// walkReturns adapts pkg/returnadder's callback contract to this module's
// Listener shape (spec.md §1: "only its callback contract is used").
func walkReturns(body []ast.Statement, onReturn returnadder.Listener) {
	returnadder.Walk(body, onReturn)
}

// analyzeClosureSharedVariables runs a lightweight pre-pass over m's body
// collecting every free variable referenced inside a nested closure
// literal — the "shared variables" §4.G step 1 requires before the main
// body visit begins, so assignment tracking (trackAssignment) knows which
// variables to mirror into closureSharedVariablesAssignmentTypes.
func (c *Checker) analyzeClosureSharedVariables(m *ast.MethodDecl) {
	declaredOutsideClosure := map[string]bool{}
	for _, p := range m.Parameters {
		declaredOutsideClosure[p.Name] = true
	}
	collectDeclarations(m.Body, declaredOutsideClosure)

	shared := map[string]bool{}
	var walkExpr func(ast.Expression)
	var walkStmt func(ast.Statement)

	walkExpr = func(e ast.Expression) {
		switch v := e.(type) {
		case *ast.ClosureLiteral:
			inner := map[string]bool{}
			for _, p := range v.Parameters {
				inner[p.Name] = true
			}
			var innerWalkStmt func(ast.Statement)
			var innerWalkExpr func(ast.Expression)
			innerWalkExpr = func(e ast.Expression) {
				if id, ok := e.(*ast.Identifier); ok {
					if declaredOutsideClosure[id.Name] && !inner[id.Name] {
						shared[id.Name] = true
					}
				}
				walkChildren(e, innerWalkExpr, innerWalkStmt)
			}
			innerWalkStmt = func(s ast.Statement) {
				if decl, ok := s.(*ast.VarDeclStatement); ok {
					inner[decl.Name] = true
				}
				walkChildren2(s, innerWalkExpr, innerWalkStmt)
			}
			for _, s := range v.Body {
				innerWalkStmt(s)
			}
		default:
			walkChildren(e, walkExpr, walkStmt)
		}
	}
	walkStmt = func(s ast.Statement) {
		walkChildren2(s, walkExpr, walkStmt)
	}
	for _, s := range m.Body {
		walkStmt(s)
	}

	c.closureSharedVars = shared
}

// collectDeclarations records every local/parameter name declared directly
// in body (not inside a nested closure), used to distinguish a closure's
// free variables from its own locals.
func collectDeclarations(body []ast.Statement, out map[string]bool) {
	for _, s := range body {
		switch v := s.(type) {
		case *ast.VarDeclStatement:
			out[v.Name] = true
		case *ast.BlockStatement:
			collectDeclarations(v.Statements, out)
		case *ast.IfStatement:
			collectDeclarations([]ast.Statement{v.Then}, out)
			if v.Else != nil {
				collectDeclarations([]ast.Statement{v.Else}, out)
			}
		case *ast.WhileStatement:
			collectDeclarations([]ast.Statement{v.Body}, out)
		case *ast.ForEachStatement:
			out[v.VarName] = true
			collectDeclarations([]ast.Statement{v.Body}, out)
		}
	}
}

// walkChildren visits e's immediate child expressions with exprFn, and any
// statement bodies (closure literals) with stmtFn — a small generic-ish
// helper kept deliberately shallow since the tree has a bounded, known set
// of variants (§9 "tagged sum type with exhaustive switches").
func walkChildren(e ast.Expression, exprFn func(ast.Expression), stmtFn func(ast.Statement)) {
	switch v := e.(type) {
	case *ast.PropertyExpr:
		exprFn(v.Receiver)
	case *ast.IndexExpr:
		exprFn(v.Receiver)
		exprFn(v.Index)
	case *ast.BinaryExpr:
		exprFn(v.Left)
		if v.Right != nil {
			exprFn(v.Right)
		}
	case *ast.UnaryExpr:
		exprFn(v.Operand)
	case *ast.ListLiteral:
		for _, el := range v.Elements {
			exprFn(el)
		}
	case *ast.MapLiteral:
		for _, entry := range v.Entries {
			if entry.Key != nil {
				exprFn(entry.Key)
			}
			exprFn(entry.Value)
		}
	case *ast.RangeLiteral:
		exprFn(v.From)
		exprFn(v.To)
	case *ast.CastExpr:
		exprFn(v.Target)
	case *ast.TernaryExpr:
		exprFn(v.Cond)
		exprFn(v.Then)
		exprFn(v.Else)
	case *ast.MethodCallExpr:
		if v.Receiver != nil {
			exprFn(v.Receiver)
		}
		for _, a := range v.Args {
			exprFn(a)
		}
	case *ast.ConstructorCallExpr:
		for _, a := range v.Args {
			exprFn(a)
		}
	case *ast.TupleExpr:
		for _, t := range v.Targets {
			exprFn(t)
		}
	case *ast.WithBlockExpr:
		exprFn(v.Receiver)
		for _, s := range v.Body {
			stmtFn(s)
		}
	}
}

func walkChildren2(s ast.Statement, exprFn func(ast.Expression), stmtFn func(ast.Statement)) {
	switch v := s.(type) {
	case *ast.ExpressionStatement:
		exprFn(v.Expr)
	case *ast.VarDeclStatement:
		if v.Init != nil {
			exprFn(v.Init)
		}
	case *ast.BlockStatement:
		for _, c := range v.Statements {
			stmtFn(c)
		}
	case *ast.IfStatement:
		exprFn(v.Cond)
		stmtFn(v.Then)
		if v.Else != nil {
			stmtFn(v.Else)
		}
	case *ast.WhileStatement:
		exprFn(v.Cond)
		stmtFn(v.Body)
	case *ast.ForEachStatement:
		exprFn(v.Iterable)
		stmtFn(v.Body)
	case *ast.ReturnStatement:
		if v.Value != nil {
			exprFn(v.Value)
		}
	}
}

// visitClosureLiteral visits a closure body in a child scope with its
// parameters (or implicit `it`) declared. The metadata of shared variables
// is not snapshotted before the body or restored after it.
func (c *Checker) visitClosureLiteral(cl *ast.ClosureLiteral) types.Type {
	savedClosure := c.currentClosure
	savedScope := c.scope
	c.currentClosure = cl
	c.scope = c.scope.Child()
	for _, p := range cl.Parameters {
		c.scope.Declare(p.Name, symbols.Binding{Kind: symbols.Param, Declared: p.Declared})
	}
	if cl.UsesImplicitIt {
		c.scope.Declare("it", symbols.Binding{Kind: symbols.Param})
	}

	for _, s := range cl.Body {
		c.visitStatement(s)
	}

	var returnTypes []types.Type
	walkReturns(cl.Body, func(value ast.Expression) {
		if value == nil || isNullLiteral(value) {
			return
		}
		if t, ok := value.Get(ast.InferredType); ok {
			returnTypes = append(returnTypes, t.(types.Type))
		}
	})

	inferredReturn := types.Dynamic
	if len(returnTypes) > 0 {
		inferredReturn = types.LUB(returnTypes...)
	}
	cl.Set(ast.InferredReturnType, inferredReturn)

	c.currentClosure = savedClosure
	c.scope = savedScope

	closureType := types.NewParameterized(c.classes.Closure, []types.Type{inferredReturn})
	cl.Set(ast.ClosureArguments, cl.Parameters)
	return closureType
}

// resolveDeferredCall re-validates one call site deferred because its
// receiver was a closure-shared variable assigned multiple types (§4.G
// "Second pass").
func (c *Checker) resolveDeferredCall(dc deferredCall) {
	assigned := c.closureSharedAssignments[dc.varKey]
	if len(assigned) < 2 {
		return
	}
	lub := types.LUB(assigned...)
	sig, candidates := c.findMethod(lub, dc.calleeName, dc.formalArgTypes)
	if sig == nil || len(candidates) != 1 {
		c.addError(dc.call, errors.ClosureSharedVariableNotOnLUB,
			"A closure shared variable [%s] has been assigned with various types and the method %s does not exist in the lowest upper bound %s",
			dc.varKey, dc.calleeName, lub.String())
	}
}
