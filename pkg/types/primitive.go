package types

// PrimitiveType represents one of the language's primitive (non-reference)
// types, e.g. int, boolean, char. Every primitive has exactly one boxed
// companion, registered in the wrap/unwrap tables below.
type PrimitiveType struct {
	Name string
}

func (p *PrimitiveType) String() string    { return p.Name }
func (p *PrimitiveType) Equals(o Type) bool { return p == o }
func (p *PrimitiveType) typeNode()          {}

// Primitive singletons. These are the only PrimitiveType values that should
// ever be constructed; callers compare by pointer identity.
var (
	Int     = &PrimitiveType{Name: "int"}
	Long    = &PrimitiveType{Name: "long"}
	Short   = &PrimitiveType{Name: "short"}
	Byte    = &PrimitiveType{Name: "byte"}
	Char    = &PrimitiveType{Name: "char"}
	Boolean = &PrimitiveType{Name: "boolean"}
	Float   = &PrimitiveType{Name: "float"}
	Double  = &PrimitiveType{Name: "double"}
	Void    = &PrimitiveType{Name: "void"}
)

// Dynamic is the root "any" type: the Object class acts as both the
// reference-type root and the dynamic escape hatch used when a variable's
// binding could not be resolved to a declared type.
var Dynamic Type

// ReadOnlyProperty marks the type of an accessor-only property so the
// assignment checker can report "Cannot set read-only property" instead of
// a generic assignability failure.
type ReadOnlyPropertyType struct{ Underlying Type }

func (r *ReadOnlyPropertyType) String() string    { return "readonly " + r.Underlying.String() }
func (r *ReadOnlyPropertyType) Equals(o Type) bool { return r == o }
func (r *ReadOnlyPropertyType) typeNode()          {}

// UnknownParameter flags the static type of a literal `null` argument during
// overload matching: it is assignable to any reference type but contributes
// no useful distance information.
var UnknownParameter Type = &unknownParameterType{}

type unknownParameterType struct{}

func (u *unknownParameterType) String() string    { return "<null>" }
func (u *unknownParameterType) Equals(o Type) bool { return u == o }
func (u *unknownParameterType) typeNode()          {}

// boxed companions, registered once the well-known classes exist (see
// classpath.Bootstrap, which calls RegisterBoxing for each pair).
var (
	wrapOf   = map[*PrimitiveType]*ClassType{}
	unwrapOf = map[*ClassType]*PrimitiveType{}
)

// RegisterBoxing records that prim's boxed companion is boxed. Called once
// per primitive by the classpath bootstrapper, which owns the *ClassType
// instances for Integer, Long, etc.
func RegisterBoxing(prim *PrimitiveType, boxed *ClassType) {
	wrapOf[prim] = boxed
	unwrapOf[boxed] = prim
}

// Wrap returns t's boxed companion if t is a primitive with one registered,
// otherwise t unchanged (wrap is total on the registered primitive set and
// the identity elsewhere, matching the source language's behavior of boxing
// only where boxing is meaningful).
func Wrap(t Type) Type {
	if p, ok := t.(*PrimitiveType); ok {
		if boxed, ok := wrapOf[p]; ok {
			return boxed
		}
	}
	return t
}

// Unwrap returns t's primitive companion if t is a registered boxed class,
// otherwise t unchanged.
func Unwrap(t Type) Type {
	if c, ok := t.(*ClassType); ok {
		if prim, ok := unwrapOf[c]; ok {
			return prim
		}
	}
	return t
}

// IsPrimitive reports whether t is one of the primitive singletons above.
func IsPrimitive(t Type) bool {
	_, ok := t.(*PrimitiveType)
	return ok
}

// IsNumeric reports whether t is a primitive numeric type, its boxed
// companion, or one of BigInteger/BigDecimal.
func IsNumeric(t Type) bool {
	u := Unwrap(t)
	switch u {
	case Int, Long, Short, Byte, Float, Double:
		return true
	}
	if c, ok := t.(*ClassType); ok {
		return c.FQN == "java.math.BigInteger" || c.FQN == "java.math.BigDecimal"
	}
	return false
}

// IsIntCategory reports whether t widens no further than int (byte, short,
// char, int and their boxed forms).
func IsIntCategory(t Type) bool {
	switch Unwrap(t) {
	case Byte, Short, Char, Int:
		return true
	}
	return false
}

// IsLongCategory reports whether t is long or its boxed form.
func IsLongCategory(t Type) bool { return Unwrap(t) == Long }

// IsFloatingCategory reports whether t is float/double or boxed forms.
func IsFloatingCategory(t Type) bool {
	u := Unwrap(t)
	return u == Float || u == Double
}

// IsBigInteger / IsBigDecimal test for the two arbitrary-precision classes.
func IsBigInteger(t Type) bool {
	c, ok := t.(*ClassType)
	return ok && c.FQN == "java.math.BigInteger"
}

func IsBigDecimal(t Type) bool {
	c, ok := t.(*ClassType)
	return ok && c.FQN == "java.math.BigDecimal"
}
