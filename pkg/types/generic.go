package types

import "fmt"

// TypeParameter is a declared generic placeholder (the T in class Box<T>,
// or the T in a method's own <T> list). Constraint is nil or the Object
// root when the source declared no bound; both mean unbounded.
type TypeParameter struct {
	Name       string
	Constraint Type
	Index      int
}

func (tp *TypeParameter) String() string {
	if tp.Constraint != nil && tp.Constraint != Dynamic {
		return fmt.Sprintf("%s extends %s", tp.Name, tp.Constraint.String())
	}
	return tp.Name
}

// TypeParameterType is a reference to a TypeParameter used inside a
// generic body (the "T" that appears in a field or parameter type before
// substitution).
type TypeParameterType struct {
	Parameter *TypeParameter
}

func (t *TypeParameterType) String() string { return t.Parameter.Name }

func (t *TypeParameterType) Equals(o Type) bool {
	ot, ok := o.(*TypeParameterType)
	return ok && t.Parameter == ot.Parameter
}

func (t *TypeParameterType) typeNode() {}

// Substitute walks t, replacing every TypeParameterType with its bound
// type from substitutions. Types with no placeholders are returned
// unchanged. This is the single substitution routine used by both class
// instantiation (NewParameterized + Substitute on members) and the
// generics engine's return-type reconstruction (§4.E).
func Substitute(t Type, substitutions map[*TypeParameter]Type) Type {
	if t == nil {
		return nil
	}
	switch v := t.(type) {
	case *TypeParameterType:
		if repl, ok := substitutions[v.Parameter]; ok {
			return repl
		}
		return v
	case *ArrayType:
		return &ArrayType{ElementType: Substitute(v.ElementType, substitutions)}
	case *ClassType:
		if len(v.TypeArguments) == 0 {
			return v
		}
		newArgs := make([]Type, len(v.TypeArguments))
		for i, a := range v.TypeArguments {
			newArgs[i] = Substitute(a, substitutions)
		}
		return NewParameterized(v.Redirect(), newArgs)
	default:
		return t
	}
}

// SubstituteSignature applies Substitute to every parameter/return type in
// sig, used when a call site resolves a generic method or constructor
// against concrete receiver/argument types.
func SubstituteSignature(sig *Signature, substitutions map[*TypeParameter]Type) *Signature {
	if sig == nil {
		return nil
	}
	newParams := make([]Type, len(sig.ParameterTypes))
	for i, p := range sig.ParameterTypes {
		newParams[i] = Substitute(p, substitutions)
	}
	return &Signature{
		DeclaringClass: sig.DeclaringClass,
		Name:           sig.Name,
		ParameterTypes: newParams,
		IsVarargs:      sig.IsVarargs,
		ReturnType:     Substitute(sig.ReturnType, substitutions),
		TypeParameters: sig.TypeParameters,
		Abstract:       sig.Abstract,
	}
}

// ExtractPlaceholders walks t collecting every TypeParameter it mentions,
// in first-encountered order with duplicates removed. Used by the generics
// engine to union bindings found on the receiver with bindings found on a
// method's own return type (§4.E "Placeholder extraction").
func ExtractPlaceholders(t Type) []*TypeParameter {
	var out []*TypeParameter
	seen := map[*TypeParameter]bool{}
	var walk func(Type)
	walk = func(t Type) {
		if t == nil {
			return
		}
		switch v := t.(type) {
		case *TypeParameterType:
			if !seen[v.Parameter] {
				seen[v.Parameter] = true
				out = append(out, v.Parameter)
			}
		case *ArrayType:
			walk(v.ElementType)
		case *ClassType:
			for _, a := range v.TypeArguments {
				walk(a)
			}
		}
	}
	walk(t)
	return out
}

// AlignParameters substitutes receiverBindings (the class's own type
// parameters bound to the receiver's actual type arguments) into a
// method's declared parameter types, producing the concrete parameter
// types a call site compares arguments against (§4.E "Parameter
// alignment").
func AlignParameters(receiver *ClassType, sig *Signature) []Type {
	if receiver == nil || len(receiver.TypeArguments) == 0 || len(receiver.Redirect().TypeParameters) == 0 {
		return sig.ParameterTypes
	}
	substitutions := make(map[*TypeParameter]Type, len(receiver.Redirect().TypeParameters))
	for i, tp := range receiver.Redirect().TypeParameters {
		if i < len(receiver.TypeArguments) {
			substitutions[tp] = receiver.TypeArguments[i]
		}
	}
	out := make([]Type, len(sig.ParameterTypes))
	for i, p := range sig.ParameterTypes {
		out[i] = Substitute(p, substitutions)
	}
	return out
}

// ReconstructReturnType implements §4.E's return-type reconstruction: given
// a resolved signature (possibly still mentioning method-level
// placeholders) and the actual argument types supplied at the call site,
// bind each placeholder by matching arguments against their formal
// parameter types, then substitute the bindings into the declared return
// type. If the raw return type is the Object root and exactly one
// placeholder remains bound, that placeholder's concrete type is returned
// directly (mirrors the teacher's InstantiatedType.Substitute collapsing a
// single-parameter generic body to its argument).
func ReconstructReturnType(sig *Signature, argTypes []Type) Type {
	if sig.ReturnType == nil || len(sig.TypeParameters) == 0 {
		return sig.ReturnType
	}
	bindings := BindTypeParameters(sig, argTypes)
	result := Substitute(sig.ReturnType, bindings)
	if sig.ReturnType == Dynamic && len(bindings) == 1 {
		for _, v := range bindings {
			return v
		}
	}
	return result
}

// BindTypeParameters walks sig's parameters positionwise against argTypes,
// following the superclass/interface chain until each formal's raw type is
// reached, extracting a binding per type parameter mentioned (§4.E
// "Return-type reconstruction" step 1: the binding-extraction half, shared
// by return-type reconstruction and the constraint check).
func BindTypeParameters(sig *Signature, argTypes []Type) map[*TypeParameter]Type {
	bindings := make(map[*TypeParameter]Type)
	for i, formal := range sig.ParameterTypes {
		if i >= len(argTypes) || argTypes[i] == nil {
			continue
		}
		actual := argTypes[i]
		if sig.IsVarargs && i == len(sig.ParameterTypes)-1 {
			if arr, ok := formal.(*ArrayType); ok {
				if argArr, ok := actual.(*ArrayType); ok {
					actual = argArr.ElementType
				}
				formal = arr.ElementType
			}
		}
		bindPlaceholder(formal, actual, bindings)
	}
	return bindings
}

// bindPlaceholder matches actual against formal, following the
// superclass/interface chain until formal's raw type is reached (for
// class-shaped formals), extracting placeholder bindings as it goes.
func bindPlaceholder(formal, actual Type, bindings map[*TypeParameter]Type) {
	switch f := formal.(type) {
	case *TypeParameterType:
		if _, already := bindings[f.Parameter]; !already {
			bindings[f.Parameter] = actual
		}
	case *ArrayType:
		if a, ok := actual.(*ArrayType); ok {
			bindPlaceholder(f.ElementType, a.ElementType, bindings)
		}
	case *ClassType:
		a, ok := actual.(*ClassType)
		if !ok || len(f.TypeArguments) == 0 {
			return
		}
		// Walk actual's hierarchy until we reach an instantiation of the
		// same raw declaration as formal, then bind positionally.
		aligned := alignToDeclaration(a, f.Redirect())
		if aligned == nil {
			return
		}
		for i, farg := range f.TypeArguments {
			if i < len(aligned.TypeArguments) {
				bindPlaceholder(farg, aligned.TypeArguments[i], bindings)
			}
		}
	}
}

// AlignToDeclaration exposes alignToDeclaration for callers outside this
// package (the assignment checker's wildcard-compatibility check).
func AlignToDeclaration(a, decl *ClassType) *ClassType { return alignToDeclaration(a, decl) }

// alignToDeclaration returns a's instantiation aligned to decl, walking a's
// supertype chain if a itself isn't already an instantiation of decl.
func alignToDeclaration(a *ClassType, decl *ClassType) *ClassType {
	if a.Redirect().Handle == decl.Handle {
		return a
	}
	if a.SuperClass != nil {
		if found := alignToDeclaration(a.SuperClass, decl); found != nil {
			return found
		}
	}
	for _, iface := range a.Interfaces {
		if found := alignToDeclaration(iface, decl); found != nil {
			return found
		}
	}
	return nil
}

// CheckGenericConstraints verifies, for each of sig's own type parameters,
// that the type bound to it (found in bindings) is derived from the
// parameter's declared constraint (§4.E "Constraint check"). It returns the
// names of parameters whose binding violates its bound.
func CheckGenericConstraints(sig *Signature, bindings map[*TypeParameter]Type) []string {
	var violations []string
	for _, tp := range sig.TypeParameters {
		bound, ok := bindings[tp]
		if !ok || tp.Constraint == nil || tp.Constraint == Dynamic {
			continue
		}
		if !IsAssignable(bound, tp.Constraint) {
			violations = append(violations, tp.Name)
		}
	}
	return violations
}
