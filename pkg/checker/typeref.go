package checker

import (
	"groovystatic/pkg/ast"
	"groovystatic/pkg/types"
)

// resolveOptionalTypeRef resolves ref, or returns types.Dynamic for a nil
// ref (an untyped `def` declaration/parameter/return).
func (c *Checker) resolveOptionalTypeRef(ref *ast.TypeRef) types.Type {
	if ref == nil {
		return types.Dynamic
	}
	return c.resolveTypeRef(ref)
}

// resolveTypeRef maps a syntactic TypeRef to its types.Type, consulting
// primitive keywords, the current class's own type parameters, and the
// classpath registry in that order.
func (c *Checker) resolveTypeRef(ref *ast.TypeRef) types.Type {
	var base types.Type
	switch ref.Name {
	case "int":
		base = types.Int
	case "long":
		base = types.Long
	case "short":
		base = types.Short
	case "byte":
		base = types.Byte
	case "char":
		base = types.Char
	case "boolean":
		base = types.Boolean
	case "float":
		base = types.Float
	case "double":
		base = types.Double
	case "void":
		base = types.Void
	case "def", "Object", "":
		base = types.Dynamic
	default:
		if c.currentClassType != nil {
			for _, tp := range c.currentClassType.TypeParameters {
				if tp.Name == ref.Name {
					base = &types.TypeParameterType{Parameter: tp}
					break
				}
			}
		}
		if base == nil {
			if cls, ok := c.classes.Lookup(ref.Name); ok {
				base = cls
			} else {
				// Unknown class name: treat as a forward-declared user class
				// rather than failing resolution outright (name resolution
				// itself is out of scope; the checker assumes the name was
				// already validated).
				base = c.classes.Declare(ref.Name)
			}
		}
	}

	if len(ref.TypeArgs) > 0 {
		if cls, ok := base.(*types.ClassType); ok {
			args := make([]types.Type, len(ref.TypeArgs))
			for i, a := range ref.TypeArgs {
				args[i] = c.resolveTypeRef(a)
			}
			base = types.NewParameterized(cls.Redirect(), args)
		}
	}

	for i := 0; i < ref.ArrayDepth; i++ {
		base = types.NewArrayType(base)
	}
	return base
}
