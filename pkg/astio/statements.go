package astio

import (
	"fmt"

	"github.com/tidwall/gjson"

	"groovystatic/pkg/ast"
)

func decodeStatement(v gjson.Result) (ast.Statement, error) {
	kind := v.Get("kind").String()
	pos := decodePos(v)

	switch kind {
	case "expr":
		expr, err := decodeExpression(v.Get("expr"))
		if err != nil {
			return nil, err
		}
		return ast.NewExpressionStatement(pos, expr), nil

	case "varDecl":
		init, err := decodeOptionalExpression(v.Get("init"))
		if err != nil {
			return nil, err
		}
		return ast.NewVarDeclStatement(pos, v.Get("name").String(), decodeTypeRef(v.Get("type")), init), nil

	case "block":
		stmts, err := decodeStatements(v.Get("statements"))
		if err != nil {
			return nil, err
		}
		return ast.NewBlockStatement(pos, stmts), nil

	case "if":
		cond, err := decodeExpression(v.Get("cond"))
		if err != nil {
			return nil, err
		}
		then, err := decodeStatement(v.Get("then"))
		if err != nil {
			return nil, err
		}
		var els ast.Statement
		if elseVal := v.Get("else"); elseVal.Exists() {
			els, err = decodeStatement(elseVal)
			if err != nil {
				return nil, err
			}
		}
		return ast.NewIfStatement(pos, cond, then, els), nil

	case "while":
		cond, err := decodeExpression(v.Get("cond"))
		if err != nil {
			return nil, err
		}
		body, err := decodeStatement(v.Get("body"))
		if err != nil {
			return nil, err
		}
		return ast.NewWhileStatement(pos, cond, body), nil

	case "forEach":
		iterable, err := decodeExpression(v.Get("iterable"))
		if err != nil {
			return nil, err
		}
		body, err := decodeStatement(v.Get("body"))
		if err != nil {
			return nil, err
		}
		stmt := ast.NewForEachStatement(pos, v.Get("varName").String(), iterable, body)
		stmt.Declared = decodeTypeRef(v.Get("type"))
		return stmt, nil

	case "return":
		value, err := decodeOptionalExpression(v.Get("value"))
		if err != nil {
			return nil, err
		}
		return ast.NewReturnStatement(pos, value), nil
	}

	return nil, fmt.Errorf("astio: unknown statement kind %q", kind)
}

func decodeStatements(v gjson.Result) ([]ast.Statement, error) {
	var stmts []ast.Statement
	var err error
	v.ForEach(func(_, s gjson.Result) bool {
		var stmt ast.Statement
		stmt, err = decodeStatement(s)
		if err != nil {
			return false
		}
		stmts = append(stmts, stmt)
		return true
	})
	return stmts, err
}
