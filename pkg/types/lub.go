package types

// LUB computes the lowest upper bound of a set of types: the most specific
// common ancestor. An empty list's LUB is the Object root; a single type's
// LUB is itself.
func LUB(ts ...Type) Type {
	var out Type
	first := true
	for _, t := range ts {
		if t == nil {
			continue
		}
		if first {
			out = t
			first = false
			continue
		}
		out = lub2(out, t)
	}
	if out == nil {
		return Dynamic
	}
	return out
}

func lub2(a, b Type) Type {
	if a.Equals(b) {
		return a
	}
	if a == Dynamic || b == Dynamic {
		return Dynamic
	}

	// Numeric pair: promote, then box so the join is always a reference-
	// friendly result (matches the source language reporting "Object" as
	// the join of int and String, but a numeric-looking join for two
	// numeric branches).
	if IsNumeric(a) && IsNumeric(b) {
		return Wrap(NumericPromote(a, b, "+"))
	}

	ca, aIsClass := Unwrap(a).(*ClassType)
	if !aIsClass {
		ca, aIsClass = a.(*ClassType)
	}
	cb, bIsClass := Unwrap(b).(*ClassType)
	if !bIsClass {
		cb, bIsClass = b.(*ClassType)
	}
	if aIsClass && bIsClass {
		if common := commonAncestor(ca, cb); common != nil {
			return common
		}
	}

	if aArr, ok := a.(*ArrayType); ok {
		if bArr, ok := b.(*ArrayType); ok {
			return &ArrayType{ElementType: LUB(aArr.ElementType, bArr.ElementType)}
		}
	}

	return Dynamic
}

// commonAncestor walks both classes' ancestor chains (self-inclusive) and
// returns the first of a's ancestors that b also has. a's ancestors are
// listed depth-first (each superclass chain before the interfaces), so the
// result is the nearest shared superclass when one exists below Object.
func commonAncestor(a, b *ClassType) *ClassType {
	aChain := append([]*ClassType{a}, a.AllSupertypes()...)
	bSet := map[int]bool{b.declHandleOf(): true}
	for _, s := range b.AllSupertypes() {
		bSet[s.declHandleOf()] = true
	}
	for _, c := range aChain {
		if bSet[c.declHandleOf()] {
			return c
		}
	}
	return nil
}

func (c *ClassType) declHandleOf() int { return c.declHandle() }

// NumericPromote implements §4.B's numeric promotion table for the
// arithmetic/additive and multiplicative operator groups. op distinguishes
// division ("/") so BigDecimal/double special-casing applies; all other
// arithmetic operators use the general lattice walk.
func NumericPromote(left, right Type, op string) Type {
	l, r := Unwrap(left), Unwrap(right)

	if op == "/" {
		if IsFloatingCategory(l) || IsFloatingCategory(r) {
			return Double
		}
		if isBigDecimalUnwrapped(left) || isBigDecimalUnwrapped(right) {
			return pick(isBigDecimalUnwrapped(left), left, right) // BigDecimal division stays BigDecimal
		}
	}

	if l == Int && r == Int {
		return Int
	}
	if IsLongCategory(l) && IsLongCategory(r) {
		return Long
	}
	if l == Float && r == Float {
		return Float
	}
	if l == Double && r == Double {
		return Double
	}

	if isBigIntegerUnwrapped(left) && isBigIntegerUnwrapped(right) {
		return left
	}
	if isBigDecimalUnwrapped(left) || isBigDecimalUnwrapped(right) {
		return pick(isBigDecimalUnwrapped(left), left, right)
	}
	if isBigIntegerUnwrapped(left) || isBigIntegerUnwrapped(right) {
		other := right
		if isBigIntegerUnwrapped(left) {
			other = right
		} else {
			other = left
		}
		if !IsIntCategory(Unwrap(other)) && !IsLongCategory(Unwrap(other)) {
			return pick(isBigIntegerUnwrapped(left), left, right) // promote to BigDecimal territory
		}
		return pick(isBigIntegerUnwrapped(left), left, right)
	}

	// Widest-wins walk: double > float > long > int > short > byte > char.
	rank := func(t Type) int {
		switch Unwrap(t) {
		case Double:
			return 7
		case Float:
			return 6
		case Long:
			return 5
		case Int:
			return 4
		case Short:
			return 3
		case Byte:
			return 2
		case Char:
			return 1
		}
		return 0
	}
	lr, rr := rank(left), rank(right)
	if lr == 0 && rr == 0 {
		return dynamicNumber()
	}
	if lr >= rr {
		return Unwrap(left)
	}
	return Unwrap(right)
}

func pick(cond bool, a, b Type) Type {
	if cond {
		return a
	}
	return b
}

func isBigIntegerUnwrapped(t Type) bool { return IsBigInteger(t) }
func isBigDecimalUnwrapped(t Type) bool { return IsBigDecimal(t) }

// dynamicNumber is the fallback "Number" supertype result when neither
// operand ranks as a known numeric primitive/boxed/bignum (should not occur
// once IsNumeric has gated the call, kept as a defensive fallback).
func dynamicNumber() Type { return numberRoot }

// numberRoot is set by classpath.Bootstrap to the java.lang.Number class.
var numberRoot Type = Dynamic

// SetNumberRoot lets the classpath bootstrapper register the Number
// supertype once java.lang.Number exists.
func SetNumberRoot(t Type) { numberRoot = t }

// PromoteBitwise implements §4.B's bitwise/shift promotion: int-pair -> int,
// long-pair -> Long (boxed), bigint-pair -> BigInteger.
func PromoteBitwise(left, right Type) Type {
	l, r := Unwrap(left), Unwrap(right)
	if isBigIntegerUnwrapped(left) && isBigIntegerUnwrapped(right) {
		return left
	}
	if IsLongCategory(l) || IsLongCategory(r) {
		return Wrap(Long)
	}
	return Int
}

// PromoteShift implements §4.B's shift rule: if left is numeric and right
// is int/long category, the result is left's own type.
func PromoteShift(left, right Type) Type {
	if IsNumeric(left) && (IsIntCategory(Unwrap(right)) || IsLongCategory(Unwrap(right))) {
		return left
	}
	return Dynamic
}
