package astio

import (
	"fmt"

	"github.com/tidwall/gjson"

	"groovystatic/pkg/ast"
)

var literalKinds = map[string]ast.LiteralKind{
	"int":        ast.IntLit,
	"long":       ast.LongLit,
	"short":      ast.ShortLit,
	"byte":       ast.ByteLit,
	"char":       ast.CharLit,
	"float":      ast.FloatLit,
	"double":     ast.DoubleLit,
	"boolean":    ast.BooleanLit,
	"string":     ast.StringLit,
	"bigInteger": ast.BigIntegerLit,
	"bigDecimal": ast.BigDecimalLit,
	"null":       ast.NullLit,
}

var binaryOps = map[string]ast.BinaryOp{
	"assign":      ast.OpAssign,
	"instanceOf":  ast.OpInstanceOf,
	"add":         ast.OpAdd,
	"sub":         ast.OpSub,
	"mul":         ast.OpMul,
	"div":         ast.OpDiv,
	"mod":         ast.OpMod,
	"power":       ast.OpPower,
	"bitAnd":      ast.OpBitAnd,
	"bitOr":       ast.OpBitOr,
	"bitXor":      ast.OpBitXor,
	"shl":         ast.OpShl,
	"shr":         ast.OpShr,
	"ushr":        ast.OpUShr,
	"eq":          ast.OpEq,
	"ne":          ast.OpNe,
	"lt":          ast.OpLt,
	"le":          ast.OpLe,
	"gt":          ast.OpGt,
	"ge":          ast.OpGe,
	"compareTo":   ast.OpCompareTo,
	"regexFind":   ast.OpRegexFind,
	"logicalAnd":  ast.OpLogicalAnd,
	"logicalOr":   ast.OpLogicalOr,
}

var unaryOps = map[string]ast.UnaryOp{
	"neg":             ast.OpNeg,
	"pos":             ast.OpPos,
	"bitwiseNegate":   ast.OpBitwiseNegate,
}

func decodeOptionalExpression(v gjson.Result) (ast.Expression, error) {
	if !v.Exists() {
		return nil, nil
	}
	return decodeExpression(v)
}

func decodeExpression(v gjson.Result) (ast.Expression, error) {
	kind := v.Get("kind").String()
	pos := decodePos(v)

	switch kind {
	case "identifier":
		return ast.NewIdentifier(pos, v.Get("name").String()), nil

	case "this":
		return ast.NewThisExpr(pos), nil

	case "super":
		return ast.NewSuperExpr(pos), nil

	case "literal":
		litKind, ok := literalKinds[v.Get("litKind").String()]
		if !ok {
			return nil, fmt.Errorf("astio: unknown literal kind %q", v.Get("litKind").String())
		}
		return ast.NewLiteral(pos, litKind, decodeLiteralValue(litKind, v.Get("value"))), nil

	case "property":
		recv, err := decodeExpression(v.Get("receiver"))
		if err != nil {
			return nil, err
		}
		return ast.NewPropertyExpr(pos, recv, v.Get("name").String()), nil

	case "index":
		recv, err := decodeExpression(v.Get("receiver"))
		if err != nil {
			return nil, err
		}
		idx, err := decodeExpression(v.Get("index"))
		if err != nil {
			return nil, err
		}
		return ast.NewIndexExpr(pos, recv, idx), nil

	case "binary":
		op, ok := binaryOps[v.Get("op").String()]
		if !ok {
			return nil, fmt.Errorf("astio: unknown binary op %q", v.Get("op").String())
		}
		left, err := decodeExpression(v.Get("left"))
		if err != nil {
			return nil, err
		}
		if op == ast.OpInstanceOf {
			e := ast.NewBinaryExpr(pos, op, left, nil)
			e.InstanceOfType = decodeTypeRef(v.Get("type"))
			return e, nil
		}
		right, err := decodeExpression(v.Get("right"))
		if err != nil {
			return nil, err
		}
		return ast.NewBinaryExpr(pos, op, left, right), nil

	case "unary":
		op, ok := unaryOps[v.Get("op").String()]
		if !ok {
			return nil, fmt.Errorf("astio: unknown unary op %q", v.Get("op").String())
		}
		operand, err := decodeExpression(v.Get("operand"))
		if err != nil {
			return nil, err
		}
		return ast.NewUnaryExpr(pos, op, operand), nil

	case "list":
		var elems []ast.Expression
		var spread []bool
		var err error
		v.Get("elements").ForEach(func(_, el gjson.Result) bool {
			var e ast.Expression
			e, err = decodeExpression(el.Get("value"))
			if err != nil {
				return false
			}
			elems = append(elems, e)
			spread = append(spread, el.Get("spread").Bool())
			return true
		})
		if err != nil {
			return nil, err
		}
		lit := ast.NewListLiteral(pos, elems)
		lit.Spread = spread
		lit.TypeArg = decodeTypeRef(v.Get("typeArg"))
		return lit, nil

	case "map":
		var entries []ast.MapEntry
		var err error
		v.Get("entries").ForEach(func(_, ent gjson.Result) bool {
			var entry ast.MapEntry
			entry.Spread = ent.Get("spread").Bool()
			if !entry.Spread {
				entry.Key, err = decodeExpression(ent.Get("key"))
				if err != nil {
					return false
				}
			}
			entry.Value, err = decodeExpression(ent.Get("value"))
			if err != nil {
				return false
			}
			entries = append(entries, entry)
			return true
		})
		if err != nil {
			return nil, err
		}
		lit := ast.NewMapLiteral(pos, entries)
		lit.KeyArg = decodeTypeRef(v.Get("keyArg"))
		lit.ValueArg = decodeTypeRef(v.Get("valueArg"))
		return lit, nil

	case "range":
		from, err := decodeExpression(v.Get("from"))
		if err != nil {
			return nil, err
		}
		to, err := decodeExpression(v.Get("to"))
		if err != nil {
			return nil, err
		}
		return ast.NewRangeLiteral(pos, from, to), nil

	case "closure":
		var params []*ast.Parameter
		v.Get("parameters").ForEach(func(_, p gjson.Result) bool {
			params = append(params, decodeParameter(p))
			return true
		})
		body, err := decodeStatements(v.Get("body"))
		if err != nil {
			return nil, err
		}
		cl := ast.NewClosureLiteral(pos, params, body)
		cl.UsesImplicitIt = v.Get("usesImplicitIt").Bool()
		return cl, nil

	case "cast":
		target, err := decodeExpression(v.Get("target"))
		if err != nil {
			return nil, err
		}
		return ast.NewCastExpr(pos, target, decodeTypeRef(v.Get("type")), v.Get("coerce").Bool()), nil

	case "ternary":
		cond, err := decodeExpression(v.Get("cond"))
		if err != nil {
			return nil, err
		}
		then, err := decodeExpression(v.Get("then"))
		if err != nil {
			return nil, err
		}
		els, err := decodeExpression(v.Get("else"))
		if err != nil {
			return nil, err
		}
		return ast.NewTernaryExpr(pos, cond, then, els), nil

	case "methodCall":
		recv, err := decodeOptionalExpression(v.Get("receiver"))
		if err != nil {
			return nil, err
		}
		args, err := decodeExpressions(v.Get("args"))
		if err != nil {
			return nil, err
		}
		return ast.NewMethodCallExpr(pos, recv, v.Get("name").String(), args), nil

	case "constructorCall":
		args, err := decodeExpressions(v.Get("args"))
		if err != nil {
			return nil, err
		}
		return ast.NewConstructorCallExpr(pos, decodeTypeRef(v.Get("type")), args), nil

	case "tuple":
		targets, err := decodeExpressions(v.Get("targets"))
		if err != nil {
			return nil, err
		}
		return ast.NewTupleExpr(pos, targets), nil

	case "with":
		recv, err := decodeExpression(v.Get("receiver"))
		if err != nil {
			return nil, err
		}
		body, err := decodeStatements(v.Get("body"))
		if err != nil {
			return nil, err
		}
		return ast.NewWithBlockExpr(pos, recv, body), nil
	}

	return nil, fmt.Errorf("astio: unknown expression kind %q", kind)
}

func decodeExpressions(v gjson.Result) ([]ast.Expression, error) {
	var exprs []ast.Expression
	var err error
	v.ForEach(func(_, e gjson.Result) bool {
		var expr ast.Expression
		expr, err = decodeExpression(e)
		if err != nil {
			return false
		}
		exprs = append(exprs, expr)
		return true
	})
	return exprs, err
}

func decodeLiteralValue(kind ast.LiteralKind, v gjson.Result) any {
	switch kind {
	case ast.BooleanLit:
		return v.Bool()
	case ast.StringLit, ast.BigIntegerLit, ast.BigDecimalLit:
		return v.String()
	case ast.NullLit:
		return nil
	case ast.FloatLit, ast.DoubleLit:
		return v.Float()
	default:
		return v.Int()
	}
}
