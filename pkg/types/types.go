// Package types implements the type descriptor model consumed by the
// checker: primitive/boxed pairs, class and interface descriptors with
// single inheritance plus interfaces, covariant arrays, generic
// placeholders, and the handful of marker types the checker relies on
// (ReadOnlyProperty, UnknownParameter, the Dynamic/Object root).
package types

// Type is the interface implemented by every type descriptor.
type Type interface {
	// String returns a human-readable form, used in diagnostics.
	String() string
	// Equals reports whether this descriptor and other denote the same type.
	Equals(other Type) bool

	// typeNode is a marker method that closes the Type interface over this
	// package: only descriptors defined here can satisfy it.
	typeNode()
}

// Signature describes one callable shape: a constructor or method overload.
type Signature struct {
	DeclaringClass *ClassType // class the signature is declared on (nil for synthesized)
	Name           string
	ParameterTypes []Type
	IsVarargs      bool // last parameter is a varargs (T...) slot
	ReturnType     Type
	TypeParameters []*TypeParameter // method-level generics, if any
	Abstract       bool
}

// LastParamType returns the type of the last fixed parameter slot, or nil.
func (s *Signature) LastParamType() Type {
	if len(s.ParameterTypes) == 0 {
		return nil
	}
	return s.ParameterTypes[len(s.ParameterTypes)-1]
}

func (s *Signature) String() string {
	out := "("
	for i, p := range s.ParameterTypes {
		if i > 0 {
			out += ", "
		}
		if s.IsVarargs && i == len(s.ParameterTypes)-1 {
			if arr, ok := p.(*ArrayType); ok {
				out += arr.ElementType.String() + "..."
				continue
			}
		}
		out += p.String()
	}
	out += ")"
	if s.ReturnType != nil {
		out += " " + s.ReturnType.String()
	}
	return out
}
