package checker

import "groovystatic/pkg/ast"

// narrowingKey derives the key temporaryIfBranchTypeInformation uses for
// expr: variable identity for a plain variable reference, the source text
// shape otherwise (§3: "key derives from the target variable identity for
// variable expressions, from the source text otherwise").
func narrowingKey(expr ast.Expression) string {
	switch v := expr.(type) {
	case *ast.Identifier:
		return "var:" + v.Name
	case *ast.PropertyExpr:
		return "prop:" + narrowingKey(v.Receiver) + "." + v.Name
	case *ast.ThisExpr:
		return "this"
	default:
		return "expr"
	}
}
