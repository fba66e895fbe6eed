package checker

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"groovystatic/pkg/ast"
	"groovystatic/pkg/classpath"
	"groovystatic/pkg/errors"
	"groovystatic/pkg/symbols"
	"groovystatic/pkg/types"
)

// visitExpression is §4.B's dispatcher: every variant computes a result
// type, which is then stored on the node itself (§4.H, §8's core
// invariant) before being returned to the caller.
func (c *Checker) visitExpression(e ast.Expression) types.Type {
	var result types.Type

	switch v := e.(type) {
	case *ast.Identifier:
		result = c.visitIdentifier(v)
	case *ast.ThisExpr:
		if c.currentClassType != nil {
			result = c.currentClassType
		} else {
			result = types.Dynamic
		}
	case *ast.SuperExpr:
		if c.currentClassType != nil && c.currentClassType.SuperClass != nil {
			result = c.currentClassType.SuperClass
		} else {
			result = types.Dynamic
		}
	case *ast.Literal:
		result = c.visitLiteral(v)
	case *ast.PropertyExpr:
		result = c.visitProperty(v)
	case *ast.IndexExpr:
		result = c.visitIndex(v)
	case *ast.BinaryExpr:
		result = c.visitBinary(v)
	case *ast.UnaryExpr:
		result = c.visitUnary(v)
	case *ast.ListLiteral:
		result = c.visitListLiteral(v)
	case *ast.MapLiteral:
		result = c.visitMapLiteral(v)
	case *ast.RangeLiteral:
		result = c.visitRangeLiteral(v)
	case *ast.ClosureLiteral:
		result = c.visitClosureLiteral(v)
	case *ast.CastExpr:
		result = c.visitCast(v)
	case *ast.TernaryExpr:
		result = c.visitTernary(v)
	case *ast.MethodCallExpr:
		result = c.visitMethodCall(v)
	case *ast.ConstructorCallExpr:
		result = c.visitConstructorCall(v)
	case *ast.TupleExpr:
		for _, t := range v.Targets {
			c.visitExpression(t)
		}
		result = types.Dynamic
	case *ast.WithBlockExpr:
		result = c.visitWithBlock(v)
	default:
		result = types.Dynamic
	}

	e.Set(ast.InferredType, result)
	return result
}

func (c *Checker) visitLiteral(lit *ast.Literal) types.Type {
	switch lit.Kind {
	case ast.IntLit:
		return types.Int
	case ast.LongLit:
		return types.Long
	case ast.ShortLit:
		return types.Short
	case ast.ByteLit:
		return types.Byte
	case ast.CharLit:
		return types.Char
	case ast.FloatLit:
		return types.Float
	case ast.DoubleLit:
		return types.Double
	case ast.BooleanLit:
		return types.Boolean
	case ast.StringLit:
		return c.classes.String
	case ast.BigIntegerLit:
		return c.classes.BigInteger
	case ast.BigDecimalLit:
		return c.classes.BigDecimal
	case ast.NullLit:
		return types.UnknownParameter
	}
	return types.Dynamic
}

// visitIdentifier implements §4.B's "Variable reference": a locally
// resolved name uses its scope binding (refined by assignment tracking and
// instanceof narrowing); a dynamic/undeclared name searches withReceiverList
// then the plugin before failing.
func (c *Checker) visitIdentifier(id *ast.Identifier) types.Type {
	if b, ok := c.scope.Resolve(id.Name); ok && b.Kind != symbols.Dynamic {
		var t types.Type
		if cur, ok := c.currentVarType(id.Name); ok {
			t = cur
		} else if elem, ok := c.forLoopVariableTypes[id.Name]; ok {
			t = elem
		} else {
			t = c.resolveOptionalTypeRef(b.Declared)
		}
		if cands := c.narrowedCandidates("var:" + id.Name); len(cands) > 0 {
			t = cands[len(cands)-1]
		}
		return t
	}

	for _, recv := range c.receivers() {
		if t, ok := c.propertySearch(recv, id.Name); ok {
			return t
		}
	}
	if c.resolver != nil {
		if t := c.resolver.ResolveDynamicVariableType(id.Name); t != nil {
			return t
		}
	}
	c.addError(id, errors.UnknownVariable, "The variable [%s] is undeclared.", id.Name)
	return types.Dynamic
}

var propertyTitleCaser = cases.Title(language.Und)

// capitalizeFirst title-cases s's first rune, used to build a `get`-prefixed
// accessor name out of a bare property name.
func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	return propertyTitleCaser.String(string(runes[0])) + string(runes[1:])
}

// propertySearch looks up name as a field first, then as a zero-arg getter,
// on t's class hierarchy (§4.B "Property / attribute access" /
// §4.D step 3).
func (c *Checker) propertySearch(t types.Type, name string) (types.Type, bool) {
	cls, ok := asClass(t)
	if !ok {
		return nil, false
	}
	if f, ok := cls.LookupField(name); ok {
		if f.ReadOnly {
			return &types.ReadOnlyPropertyType{Underlying: f.Type}, true
		}
		return f.Type, true
	}
	getter := "get" + capitalizeFirst(name)
	if sig, cands := c.findMethod(t, getter, nil); sig != nil {
		return sig.ReturnType, true
	} else if len(cands) > 0 {
		return types.Dynamic, true
	}
	return nil, false
}

// visitProperty implements §4.B "Property / attribute access".
func (c *Checker) visitProperty(p *ast.PropertyExpr) types.Type {
	recv := c.visitExpression(p.Receiver)

	if arr, ok := recv.(*types.ArrayType); ok {
		if p.Name == "length" {
			return types.Int
		}
		_ = arr
	}
	if isListType2(recv, c.classes.List) || isMapType2(recv, c.classes.Map) {
		return types.Dynamic
	}

	if t, ok := c.propertySearch(recv, p.Name); ok {
		return t
	}

	key := narrowingKey(p.Receiver)
	for _, cand := range c.narrowedCandidates(key) {
		if t, ok := c.propertySearch(cand, p.Name); ok {
			return t
		}
	}

	if c.resolver != nil {
		if t := c.resolver.ResolveProperty(recv, p.Name); t != nil {
			return t
		}
	}

	c.addError(p, errors.UnknownProperty, "No such property: %s for class: %s", p.Name, recv.String())
	return types.Dynamic
}

// visitIndex implements §4.B's indexing contract.
func (c *Checker) visitIndex(ix *ast.IndexExpr) types.Type {
	recv := c.visitExpression(ix.Receiver)
	idx := c.visitExpression(ix.Index)

	if recv.Equals(c.classes.String) {
		return c.classes.String
	}
	if arr, ok := recv.(*types.ArrayType); ok {
		return arr.ElementType
	}
	if isListType2(recv, c.classes.List) {
		if cls, ok := asClass(recv); ok {
			if aligned := types.AlignToDeclaration(cls, c.classes.List); aligned != nil && len(aligned.TypeArguments) == 1 {
				return aligned.TypeArguments[0]
			}
		}
		return types.Dynamic
	}
	if isMapType2(recv, c.classes.Map) {
		if cls, ok := asClass(recv); ok {
			if aligned := types.AlignToDeclaration(cls, c.classes.Map); aligned != nil && len(aligned.TypeArguments) == 2 {
				return aligned.TypeArguments[1]
			}
		}
		return types.Dynamic
	}

	if sig, cands := c.findMethod(recv, "getAt", []types.Type{idx}); sig != nil {
		return c.reconstructedReturn(ix, sig, []types.Type{idx})
	} else if len(cands) > 1 {
		return types.Dynamic
	}
	return types.Dynamic
}

func arithmeticMethodName(op ast.BinaryOp) string {
	switch op {
	case ast.OpAdd:
		return "plus"
	case ast.OpSub:
		return "minus"
	case ast.OpMul:
		return "multiply"
	case ast.OpDiv:
		return "div"
	case ast.OpMod:
		return "mod"
	case ast.OpPower:
		return "power"
	case ast.OpBitAnd:
		return "and"
	case ast.OpBitOr:
		return "or"
	case ast.OpBitXor:
		return "xor"
	case ast.OpShl:
		return "leftShift"
	case ast.OpShr:
		return "rightShift"
	case ast.OpUShr:
		return "rightShiftUnsigned"
	}
	return ""
}

func (c *Checker) operatorMethodCall(node ast.Node, leftType, rightType types.Type, methodName string) types.Type {
	t, _ := c.checkCall(node, leftType, methodName, []types.Type{rightType})
	return t
}

// visitBinary implements §4.B "Binary operation" and the numeric promotion
// table.
func (c *Checker) visitBinary(v *ast.BinaryExpr) types.Type {
	switch v.Op {
	case ast.OpAssign:
		leftType := c.visitExpression(v.Left)
		rightType := c.visitExpression(v.Right)
		result := c.checkAssignment(v, v.Left, leftType, v.Right, rightType)
		if id, ok := v.Left.(*ast.Identifier); ok {
			c.trackAssignment(id.Name, rightType)
		}
		return result
	case ast.OpInstanceOf:
		c.visitExpression(v.Left)
		return types.Boolean
	case ast.OpRegexFind:
		c.visitExpression(v.Left)
		c.visitExpression(v.Right)
		c.checkPatternLiteral(v.Right)
		return c.classes.Matcher
	case ast.OpLogicalAnd, ast.OpLogicalOr:
		c.visitExpression(v.Left)
		c.visitExpression(v.Right)
		return types.Boolean
	}

	leftType := c.visitExpression(v.Left)
	rightType := c.visitExpression(v.Right)
	bothNumeric := types.IsNumeric(leftType) && types.IsNumeric(rightType)

	switch v.Op {
	case ast.OpAdd, ast.OpSub, ast.OpMul, ast.OpMod:
		if bothNumeric {
			return types.NumericPromote(leftType, rightType, "")
		}
		return c.operatorMethodCall(v, leftType, rightType, arithmeticMethodName(v.Op))
	case ast.OpDiv:
		if bothNumeric {
			return types.NumericPromote(leftType, rightType, "/")
		}
		return c.operatorMethodCall(v, leftType, rightType, "div")
	case ast.OpPower:
		if bothNumeric {
			return c.classes.Number
		}
		return c.operatorMethodCall(v, leftType, rightType, "power")
	case ast.OpBitAnd, ast.OpBitOr, ast.OpBitXor:
		if bothNumeric {
			return types.PromoteBitwise(leftType, rightType)
		}
		return c.operatorMethodCall(v, leftType, rightType, arithmeticMethodName(v.Op))
	case ast.OpShl, ast.OpShr, ast.OpUShr:
		if types.IsNumeric(leftType) && (types.IsIntCategory(rightType) || types.IsLongCategory(rightType)) {
			return types.PromoteShift(leftType, rightType)
		}
		return c.operatorMethodCall(v, leftType, rightType, arithmeticMethodName(v.Op))
	case ast.OpEq, ast.OpNe, ast.OpLt, ast.OpLe, ast.OpGt, ast.OpGe:
		return types.Boolean
	case ast.OpCompareTo:
		return types.Int
	}
	return types.Dynamic
}

// checkPatternLiteral validates expr against dlclark/regexp2 when it is a
// string constant, for the two spots a string becomes a Pattern/Matcher
// (`=~` and bitwise-negate, §4.B): a syntactically invalid pattern is a
// real static-checking finding, not something resolvable at runtime any
// differently than a cast that can never succeed.
func (c *Checker) checkPatternLiteral(expr ast.Expression) {
	lit, ok := expr.(*ast.Literal)
	if !ok || lit.Kind != ast.StringLit {
		return
	}
	s, ok := lit.Value.(string)
	if !ok {
		return
	}
	if err := classpath.ValidatePattern(s); err != nil {
		c.addError(lit, errors.InconvertibleCast, "Invalid pattern literal: %s", err.Error())
	}
}

// visitUnary implements §4.B's unary contract.
func (c *Checker) visitUnary(v *ast.UnaryExpr) types.Type {
	operand := c.visitExpression(v.Operand)
	switch v.Op {
	case ast.OpNeg, ast.OpPos:
		if types.IsNumeric(operand) {
			return operand
		}
		if isListType2(operand, c.classes.List) {
			return operand
		}
		name := "positive"
		if v.Op == ast.OpNeg {
			name = "negative"
		}
		t, _ := c.checkCall(v, operand, name, nil)
		return t
	case ast.OpBitwiseNegate:
		if operand.Equals(c.classes.String) || operand.Equals(c.classes.GString) {
			c.checkPatternLiteral(v.Operand)
			return c.classes.Pattern
		}
		if types.IsIntCategory(operand) || types.IsLongCategory(operand) {
			return operand
		}
		t, _ := c.checkCall(v, operand, "bitwiseNegate", nil)
		return t
	}
	return types.Dynamic
}

// visitListLiteral implements §4.B "List literal": "return the
// parameterized list type" — typed against the List interface itself
// (§8 scenario 4 states its diagnostic text in terms of List<T>, not a
// particular implementation class), not the ArrayList runtime class.
func (c *Checker) visitListLiteral(lst *ast.ListLiteral) types.Type {
	if lst.TypeArg != nil {
		return types.NewParameterized(c.classes.List, []types.Type{c.resolveTypeRef(lst.TypeArg)})
	}

	var elemTypes []types.Type
	for i, el := range lst.Elements {
		t := c.visitExpression(el)
		if i < len(lst.Spread) && lst.Spread[i] {
			continue // list spread does not type-infer element properties (§9)
		}
		elemTypes = append(elemTypes, t)
	}
	elem := types.Dynamic
	if len(elemTypes) > 0 {
		elem = types.Wrap(types.LUB(elemTypes...))
	}
	return types.NewParameterized(c.classes.List, []types.Type{elem})
}

// visitMapLiteral implements §4.B "Map literal" and the map-spread
// key/value inference asymmetry recorded in DESIGN.md.
func (c *Checker) visitMapLiteral(mp *ast.MapLiteral) types.Type {
	var keyTypes, valTypes []types.Type
	for _, entry := range mp.Entries {
		if entry.Spread {
			vt := c.visitExpression(entry.Value)
			if cls, ok := asClass(vt); ok && cls.IsSubtypeOf(c.classes.Map) {
				if aligned := types.AlignToDeclaration(cls, c.classes.Map); aligned != nil && len(aligned.TypeArguments) == 2 {
					keyTypes = append(keyTypes, aligned.TypeArguments[0])
					valTypes = append(valTypes, aligned.TypeArguments[1])
				}
			}
			continue
		}
		keyTypes = append(keyTypes, c.visitExpression(entry.Key))
		valTypes = append(valTypes, c.visitExpression(entry.Value))
	}

	keyResolved := types.Dynamic
	if mp.KeyArg != nil {
		keyResolved = c.resolveTypeRef(mp.KeyArg)
	} else if len(keyTypes) > 0 {
		keyResolved = types.Wrap(types.LUB(keyTypes...))
	}
	valResolved := types.Dynamic
	if mp.ValueArg != nil {
		valResolved = c.resolveTypeRef(mp.ValueArg)
	} else if len(valTypes) > 0 {
		valResolved = types.Wrap(types.LUB(valTypes...))
	}

	if keyResolved == c.classes.Object && valResolved == c.classes.Object {
		return c.classes.Map
	}
	return types.NewParameterized(c.classes.Map, []types.Type{keyResolved, valResolved})
}

// visitRangeLiteral implements §4.B "Range literal".
func (c *Checker) visitRangeLiteral(r *ast.RangeLiteral) types.Type {
	from := c.visitExpression(r.From)
	to := c.visitExpression(r.To)
	elem := types.Wrap(types.LUB(from, to))
	return types.NewParameterized(c.classes.Range, []types.Type{elem})
}

func isOneCharStringLiteral(e ast.Expression) bool {
	lit, ok := e.(*ast.Literal)
	if !ok || lit.Kind != ast.StringLit {
		return false
	}
	s, ok := lit.Value.(string)
	return ok && len([]rune(s)) == 1
}

// visitCast implements §4.B "Cast".
func (c *Checker) visitCast(cast *ast.CastExpr) types.Type {
	srcType := c.visitExpression(cast.Target)
	targetType := c.resolveTypeRef(cast.Type)

	if cast.Coerce {
		return targetType
	}

	ok := types.Unwrap(targetType) == types.Char && isOneCharStringLiteral(cast.Target)
	ok = ok || (types.IsNumeric(srcType) && types.IsNumeric(targetType))
	ok = ok || (isNullLiteral(cast.Target) && !types.IsPrimitive(targetType))
	ok = ok || types.IsAssignable(srcType, targetType)

	if !ok {
		c.addError(cast, errors.InconvertibleCast, "Cannot cast object with class '%s' to class '%s'", srcType.String(), targetType.String())
	}
	return targetType
}

// visitTernary implements §4.B "Ternary".
func (c *Checker) visitTernary(t *ast.TernaryExpr) types.Type {
	c.visitExpression(t.Cond)

	c.pushIfBranchFrame()
	c.collectInstanceOf(t.Cond)
	thenType := c.visitExpression(t.Then)
	c.popIfBranchFrame()

	elseType := c.visitExpression(t.Else)
	return types.LUB(thenType, elseType)
}

// resolveCallReceiver implements the unqualified-call half of §4.B's
// variable-reference search order: try `this`, then each with-receiver, in
// that order, stopping at the first receiver that yields any candidate.
func (c *Checker) resolveCallReceiver(name string, argTypes []types.Type) (types.Type, *types.Signature, []*types.Signature) {
	if c.currentClassType != nil {
		if sig, cands := c.findMethod(c.currentClassType, name, argTypes); sig != nil || len(cands) > 0 {
			return c.currentClassType, sig, cands
		}
	}
	for _, recv := range c.receivers() {
		if sig, cands := c.findMethod(recv, name, argTypes); sig != nil || len(cands) > 0 {
			return recv, sig, cands
		}
	}
	return c.currentClassType, nil, nil
}

// visitMethodCall implements §4.D's call-site typing, recording a deferred
// second-pass call when the receiver is a closure-shared variable (§4.G).
func (c *Checker) visitMethodCall(m *ast.MethodCallExpr) types.Type {
	argTypes := make([]types.Type, len(m.Args))
	for i, a := range m.Args {
		argTypes[i] = c.visitExpression(a)
	}

	var recv types.Type
	var result types.Type
	if m.Receiver != nil {
		recv = c.visitExpression(m.Receiver)
		result, _ = c.checkCall(m, recv, m.Name, argTypes)
	} else {
		var sig *types.Signature
		var cands []*types.Signature
		recv, sig, cands = c.resolveCallReceiver(m.Name, argTypes)
		switch {
		case sig != nil:
			result = c.reconstructedReturn(m, sig, argTypes)
		case len(cands) > 1:
			c.addWarning(m, errors.AmbiguousMethod, "Reference to method is ambiguous. Cannot resolve which method to invoke for %s due to overlapping prototypes between: %s", m.Name, joinSigStrings(cands))
			result = types.Dynamic
		default:
			c.addError(m, errors.UnknownMethod, "Cannot find matching method %s#%s(%s)", recv.String(), m.Name, joinTypeStrings(argTypes))
			result = types.Dynamic
		}
	}

	if id, ok := m.Receiver.(*ast.Identifier); ok && c.closureSharedVars[id.Name] {
		c.secondPassCalls = append(c.secondPassCalls, deferredCall{
			varKey:         id.Name,
			call:           m,
			calleeName:     m.Name,
			formalArgTypes: argTypes,
		})
	}
	return result
}

// visitConstructorCall implements §4.D step 1's constructor resolution.
func (c *Checker) visitConstructorCall(cc *ast.ConstructorCallExpr) types.Type {
	target := c.resolveTypeRef(cc.Type)
	argTypes := make([]types.Type, len(cc.Args))
	for i, a := range cc.Args {
		argTypes[i] = c.visitExpression(a)
	}

	sig, cands := c.findMethod(target, "<init>", argTypes)
	switch {
	case sig != nil:
		return target
	case len(cands) > 1:
		c.addWarning(cc, errors.AmbiguousMethod, "Reference to constructor is ambiguous for %s due to overlapping prototypes between: %s", target.String(), joinSigStrings(cands))
	default:
		c.addError(cc, errors.UnknownMethod, "No matching constructor found: %s(%s)", target.String(), joinTypeStrings(argTypes))
	}
	return target
}

// visitWithBlock implements the with-receiver block: Receiver is pushed for
// the duration of Body, and the block's own result is its last
// expression-statement's type (Dynamic if the body is empty or ends in a
// non-expression statement).
func (c *Checker) visitWithBlock(w *ast.WithBlockExpr) types.Type {
	recv := c.visitExpression(w.Receiver)
	c.pushReceiver(recv)
	defer c.popReceiver()

	var result types.Type = types.Dynamic
	for i, s := range w.Body {
		c.visitStatement(s)
		if i == len(w.Body)-1 {
			if es, ok := s.(*ast.ExpressionStatement); ok {
				if t, ok := es.Expr.Get(ast.InferredType); ok {
					result = t.(types.Type)
				}
			}
		}
	}
	return result
}
