package types

// IsAssignable reports whether a value of type source can be used where
// target is expected: the core relation behind both plain assignment
// checking (§4.C) and overload-candidate filtering (§4.D). It is not
// symmetric and does not imply Equals.
func IsAssignable(source, target Type) bool {
	if source == nil || target == nil {
		return false
	}
	if target == Dynamic {
		return true
	}
	if source == Dynamic || source == UnknownParameter {
		return true
	}
	if source.Equals(target) {
		return true
	}

	if ro, ok := source.(*ReadOnlyPropertyType); ok {
		return IsAssignable(ro.Underlying, target)
	}
	if ro, ok := target.(*ReadOnlyPropertyType); ok {
		return IsAssignable(source, ro.Underlying)
	}

	// Primitive <-> primitive: widening conversions only. Narrowing is
	// rejected here; the checker's assignment check accepts numeric pairs
	// separately and reports narrowing as precision loss via CheckWidening.
	if IsPrimitive(source) && IsPrimitive(target) {
		return widens(source.(*PrimitiveType), target.(*PrimitiveType))
	}

	// Primitive/boxed mixed pairs: unwrap both sides and compare as
	// primitives, since autoboxing makes the two interchangeable at
	// assignment time.
	if (IsPrimitive(source) || isBoxed(source)) && (IsPrimitive(target) || isBoxed(target)) {
		us, ut := Unwrap(source), Unwrap(target)
		if up, ok := us.(*PrimitiveType); ok {
			if tp, ok := ut.(*PrimitiveType); ok {
				return up == tp || widens(up, tp)
			}
		}
	}

	sc, sIsClass := source.(*ClassType)
	tc, tIsClass := target.(*ClassType)
	if sIsClass && tIsClass {
		if !sc.IsSubtypeOf(tc) {
			return false
		}
		return genericArgsCompatible(sc, tc)
	}

	// A primitive assigned to its own boxed class's declared type, or to a
	// supertype of it (e.g. int -> Number).
	if IsPrimitive(source) && tIsClass {
		if boxed, ok := wrapOf[source.(*PrimitiveType)]; ok {
			return boxed.IsSubtypeOf(tc)
		}
		return false
	}

	if sArr, ok := source.(*ArrayType); ok {
		if tArr, ok := target.(*ArrayType); ok {
			return IsAssignable(sArr.ElementType, tArr.ElementType) || sArr.ElementType.Equals(tArr.ElementType)
		}
		return false
	}

	if tp, ok := target.(*TypeParameterType); ok {
		if tp.Parameter.Constraint == nil {
			return true
		}
		return IsAssignable(source, tp.Parameter.Constraint)
	}
	if sp, ok := source.(*TypeParameterType); ok {
		if sp.Parameter.Constraint == nil {
			return target == Dynamic
		}
		return IsAssignable(sp.Parameter.Constraint, target)
	}

	return false
}

func isBoxed(t Type) bool {
	c, ok := t.(*ClassType)
	return ok && unwrapOf[c] != nil
}

// genericArgsCompatible compares sc's type arguments against tc's when both
// are instantiations of a related declaration. Invariant by default: List<A>
// is assignable to List<B> only if A equals B, since the language's
// generics are erased and non-variant outside explicit wildcard use. If tc
// carries no type arguments (raw use) the check is skipped.
func genericArgsCompatible(sc, tc *ClassType) bool {
	if len(tc.TypeArguments) == 0 {
		return true
	}
	aligned := alignToDeclaration(sc, tc.Redirect())
	if aligned == nil {
		return len(sc.TypeArguments) == 0
	}
	if len(aligned.TypeArguments) != len(tc.TypeArguments) {
		return false
	}
	for i := range aligned.TypeArguments {
		if !aligned.TypeArguments[i].Equals(tc.TypeArguments[i]) {
			return false
		}
	}
	return true
}

// widens reports whether from can be implicitly widened to to, per the
// standard primitive widening graph: byte -> short -> int -> long -> float
// -> double, and char -> int -> long -> float -> double.
func widens(from, to *PrimitiveType) bool {
	if from == to {
		return true
	}
	reach, ok := wideningTargets[from]
	if !ok {
		return false
	}
	for _, t := range reach {
		if t == to {
			return true
		}
	}
	return false
}

var wideningTargets = map[*PrimitiveType][]*PrimitiveType{
	Byte:  {Short, Int, Long, Float, Double},
	Short: {Int, Long, Float, Double},
	Char:  {Int, Long, Float, Double},
	Int:   {Long, Float, Double},
	Long:  {Float, Double},
	Float: {Double},
}

// Distance scores how good a match source is for a target formal parameter
// type, for overload resolution (§4.D). Lower is better; -1 means
// incompatible. Exact match scores 0; primitive widening, autoboxing, and
// supertype walks each add to the distance so the most specific applicable
// overload wins ties.
func Distance(source, target Type) int {
	if source == nil || target == nil {
		return -1
	}
	if source.Equals(target) {
		return 0
	}
	if source == UnknownParameter {
		if IsPrimitive(target) {
			return -1
		}
		return 1
	}
	if target == Dynamic {
		return 50
	}
	if source == Dynamic {
		return 25
	}

	if IsPrimitive(source) && IsPrimitive(target) {
		if widens(source.(*PrimitiveType), target.(*PrimitiveType)) {
			return 1 + widenSteps(source.(*PrimitiveType), target.(*PrimitiveType))
		}
		return -1
	}

	if (IsPrimitive(source) || isBoxed(source)) && (IsPrimitive(target) || isBoxed(target)) {
		us, ut := Unwrap(source), Unwrap(target)
		up, uok := us.(*PrimitiveType)
		tp, tok := ut.(*PrimitiveType)
		if uok && tok {
			box := 0
			if IsPrimitive(source) != IsPrimitive(target) {
				box = 10 // autoboxing/unboxing costs more than a same-shape widen
			}
			if up == tp {
				return box
			}
			if widens(up, tp) {
				return box + 1 + widenSteps(up, tp)
			}
		}
		return -1
	}

	sc, sIsClass := source.(*ClassType)
	tc, tIsClass := target.(*ClassType)
	if sIsClass && tIsClass {
		if !sc.IsSubtypeOf(tc) {
			return -1
		}
		if !genericArgsCompatible(sc, tc) {
			return -1
		}
		return 2 + superclassSteps(sc, tc)
	}

	if IsPrimitive(source) && tIsClass {
		if boxed, ok := wrapOf[source.(*PrimitiveType)]; ok && boxed.IsSubtypeOf(tc) {
			return 10 + superclassSteps(boxed, tc)
		}
		return -1
	}

	if sArr, ok := source.(*ArrayType); ok {
		if tArr, ok := target.(*ArrayType); ok {
			if sArr.ElementType.Equals(tArr.ElementType) {
				return 0
			}
			d := Distance(sArr.ElementType, tArr.ElementType)
			if d < 0 {
				return -1
			}
			return 1 + d
		}
		return -1
	}

	if tp, ok := target.(*TypeParameterType); ok {
		if tp.Parameter.Constraint == nil || tp.Parameter.Constraint == Dynamic {
			return 15
		}
		d := Distance(source, tp.Parameter.Constraint)
		if d < 0 {
			return -1
		}
		return 15 + d
	}

	return -1
}

func widenSteps(from, to *PrimitiveType) int {
	for i, t := range wideningTargets[from] {
		if t == to {
			return i
		}
	}
	return 0
}

func superclassSteps(sc, tc *ClassType) int {
	if sc.declHandle() == tc.declHandle() {
		return 0
	}
	steps := 1
	for _, s := range sc.AllSupertypes() {
		if s.declHandle() == tc.declHandle() {
			return steps
		}
		steps++
	}
	return steps
}
