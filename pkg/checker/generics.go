package checker

import (
	"groovystatic/pkg/ast"
	"groovystatic/pkg/errors"
	"groovystatic/pkg/types"
)

// reconstructedReturn wires the generics engine (§4.E) into a resolved
// call's return type: bind sig's own type parameters against argTypes,
// verify each binding against its declared constraint, then substitute the
// bindings into the declared return type.
func (c *Checker) reconstructedReturn(node ast.Node, sig *types.Signature, argTypes []types.Type) types.Type {
	if len(sig.TypeParameters) == 0 {
		return sig.ReturnType
	}
	bindings := types.BindTypeParameters(sig, argTypes)
	c.checkGenericConstraints(node, sig, bindings, argTypes)
	return types.ReconstructReturnType(sig, argTypes)
}

// checkGenericConstraints implements §4.E's "Constraint check": after a
// generic method is selected, each of its own type parameters must be bound
// to a type derived from its declared constraint. A single violated
// parameter is reported as a direct call mismatch; more than one is
// reported as no matching method, mirroring the ambiguity-style wording
// used elsewhere in §4.D/§4.E when more than one thing goes wrong at once.
func (c *Checker) checkGenericConstraints(node ast.Node, sig *types.Signature, bindings map[*types.TypeParameter]types.Type, argTypes []types.Type) {
	violations := types.CheckGenericConstraints(sig, bindings)
	if len(violations) == 0 {
		return
	}
	receiver := "?"
	if sig.DeclaringClass != nil {
		receiver = sig.DeclaringClass.String()
	}
	if len(violations) == 1 {
		c.addError(node, errors.GenericsIncompatible, "Cannot call %s#%s(%s) with arguments [%s]", receiver, sig.Name, joinTypeParamStrings(sig.TypeParameters), joinTypeStrings(argTypes))
		return
	}
	c.addError(node, errors.GenericsIncompatible, "No matching method found for arguments %s", joinTypeStrings(argTypes))
}

func joinTypeParamStrings(tps []*types.TypeParameter) string {
	out := ""
	for i, tp := range tps {
		if i > 0 {
			out += ", "
		}
		out += tp.String()
	}
	return out
}
