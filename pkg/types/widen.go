package types

// PrecisionLoss describes a narrowing numeric assignment the checker should
// warn about (§4.C): the declared target type cannot represent every value
// of the source type without loss, but the assignment is not an outright
// type error (e.g. assigning a long-typed expression to an int-typed
// variable).
type PrecisionLoss struct {
	From, To Type
}

// CheckWidening reports the precision-loss pair for a primitive-to-primitive
// (or boxed-equivalent) assignment, if narrowing occurs. narrowing is false when
// source/target aren't both numeric primitives or when the conversion is a
// pure widen (no loss).
func CheckWidening(source, target Type) (loss PrecisionLoss, narrowing bool) {
	us, uok1 := Unwrap(source).(*PrimitiveType)
	ut, uok2 := Unwrap(target).(*PrimitiveType)
	if !uok1 || !uok2 || !IsNumeric(us) || !IsNumeric(ut) {
		return PrecisionLoss{}, false
	}
	if us == ut {
		return PrecisionLoss{}, false
	}
	if widens(us, ut) {
		return PrecisionLoss{}, false
	}
	return PrecisionLoss{From: source, To: target}, true
}

// numericRank orders primitive numeric types by representable range; it
// backs Rank.
var numericRank = map[*PrimitiveType]int{
	Byte: 1, Char: 1, Short: 2, Int: 3, Long: 4, Float: 5, Double: 6,
}

// CheckBigNumNarrowing flags assigning a BigInteger/BigDecimal-typed
// expression to a primitive numeric variable, which always loses precision
// or can overflow and is reported the same way as primitive narrowing.
func CheckBigNumNarrowing(source, target Type) (loss PrecisionLoss, narrowing bool) {
	if !IsBigInteger(source) && !IsBigDecimal(source) {
		return PrecisionLoss{}, false
	}
	ut, ok := Unwrap(target).(*PrimitiveType)
	if !ok || !IsNumeric(ut) {
		return PrecisionLoss{}, false
	}
	return PrecisionLoss{From: source, To: target}, true
}

// Rank exposes numericRank for callers that need to compare two numeric
// types' relative width directly. Nothing in this module calls it.
func Rank(t Type) (int, bool) {
	p, ok := Unwrap(t).(*PrimitiveType)
	if !ok {
		return 0, false
	}
	r, ok := numericRank[p]
	return r, ok
}
