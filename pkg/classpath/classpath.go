// Package classpath stands in for the out-of-scope class-file loader: a
// registry of fully-qualified class names to types.ClassType descriptors,
// pre-populated with the handful of builtin classes the checker's
// contracts name directly (Object, the boxed primitives, String, the
// collection/range/closure/regex types, and the two arbitrary-precision
// number classes).
package classpath

import (
	"fmt"

	"github.com/dlclark/regexp2"

	"groovystatic/pkg/types"
)

// Registry is the checker-facing view of the classpath: lookup by FQN plus
// direct handles to the well-known classes referenced by name throughout
// §4.
type Registry struct {
	arena *types.Arena

	Object     *types.ClassType
	Number     *types.ClassType
	String     *types.ClassType
	GString    *types.ClassType
	Comparable *types.ClassType

	ArrayList *types.ClassType
	List      *types.ClassType
	Map       *types.ClassType
	Range     *types.ClassType
	Closure   *types.ClassType

	Pattern *types.ClassType
	Matcher *types.ClassType

	BigInteger *types.ClassType
	BigDecimal *types.ClassType
}

// Bootstrap builds a Registry with every builtin class declared and wired,
// including the boxing registrations (RegisterBoxing) and types.Dynamic's
// concrete value (the Object root).
func Bootstrap() *Registry {
	a := types.NewArena()
	r := &Registry{arena: a}

	r.Object = a.Declare("java.lang.Object")
	types.Dynamic = r.Object

	r.Comparable = a.Declare("java.lang.Comparable")
	r.Comparable.Interface = true
	r.Comparable.TypeParameters = []*types.TypeParameter{{Name: "T", Index: 0}}

	r.Number = a.Declare("java.lang.Number")
	r.Number.SuperClass = r.Object
	r.Number.Abstract = true
	types.SetNumberRoot(r.Number)

	r.String = a.Declare("java.lang.String")
	r.String.SuperClass = r.Object
	r.String.Interfaces = []*types.ClassType{instantiate(r.Comparable, r.String)}

	r.GString = a.Declare("groovy.lang.GString")
	r.GString.SuperClass = r.Object
	r.GString.Interfaces = []*types.ClassType{r.asCharSequence()}

	boxInt := r.boxedNumber("java.lang.Integer")
	boxLong := r.boxedNumber("java.lang.Long")
	boxShort := r.boxedNumber("java.lang.Short")
	boxByte := r.boxedNumber("java.lang.Byte")
	boxFloat := r.boxedNumber("java.lang.Float")
	boxDouble := r.boxedNumber("java.lang.Double")
	boxChar := a.Declare("java.lang.Character")
	boxChar.SuperClass = r.Object
	boxBool := a.Declare("java.lang.Boolean")
	boxBool.SuperClass = r.Object

	types.RegisterBoxing(types.Int, boxInt)
	types.RegisterBoxing(types.Long, boxLong)
	types.RegisterBoxing(types.Short, boxShort)
	types.RegisterBoxing(types.Byte, boxByte)
	types.RegisterBoxing(types.Float, boxFloat)
	types.RegisterBoxing(types.Double, boxDouble)
	types.RegisterBoxing(types.Char, boxChar)
	types.RegisterBoxing(types.Boolean, boxBool)

	r.BigInteger = a.Declare("java.math.BigInteger")
	r.BigInteger.SuperClass = r.Number
	r.BigDecimal = a.Declare("java.math.BigDecimal")
	r.BigDecimal.SuperClass = r.Number

	iterable := a.Declare("java.lang.Iterable")
	iterable.Interface = true
	iterable.TypeParameters = []*types.TypeParameter{{Name: "T", Index: 0}}

	collection := a.Declare("java.util.Collection")
	collection.Interface = true
	collection.TypeParameters = []*types.TypeParameter{{Name: "T", Index: 0}}
	collection.Interfaces = []*types.ClassType{instantiate(iterable, &types.TypeParameterType{Parameter: collection.TypeParameters[0]})}

	r.List = a.Declare("java.util.List")
	r.List.Interface = true
	r.List.TypeParameters = []*types.TypeParameter{{Name: "T", Index: 0}}
	r.List.Interfaces = []*types.ClassType{instantiate(collection, &types.TypeParameterType{Parameter: r.List.TypeParameters[0]})}

	r.ArrayList = a.Declare("java.util.ArrayList")
	r.ArrayList.SuperClass = r.Object
	r.ArrayList.TypeParameters = []*types.TypeParameter{{Name: "T", Index: 0}}
	r.ArrayList.Interfaces = []*types.ClassType{instantiate(r.List, &types.TypeParameterType{Parameter: r.ArrayList.TypeParameters[0]})}

	r.Map = a.Declare("java.util.Map")
	r.Map.Interface = true
	r.Map.TypeParameters = []*types.TypeParameter{{Name: "K", Index: 0}, {Name: "V", Index: 1}}

	r.Range = a.Declare("groovy.lang.Range")
	r.Range.SuperClass = r.Object
	r.Range.TypeParameters = []*types.TypeParameter{{Name: "T", Index: 0}}
	r.Range.Interfaces = []*types.ClassType{instantiate(r.List, &types.TypeParameterType{Parameter: r.Range.TypeParameters[0]})}

	r.Closure = a.Declare("groovy.lang.Closure")
	r.Closure.SuperClass = r.Object
	r.Closure.TypeParameters = []*types.TypeParameter{{Name: "V", Index: 0}}

	r.Pattern = a.Declare("java.util.regex.Pattern")
	r.Pattern.SuperClass = r.Object
	r.Matcher = a.Declare("java.util.regex.Matcher")
	r.Matcher.SuperClass = r.Object

	return r
}

func (r *Registry) asCharSequence() *types.ClassType {
	if cs, ok := r.arena.Lookup("java.lang.CharSequence"); ok {
		return cs
	}
	cs := r.arena.Declare("java.lang.CharSequence")
	cs.Interface = true
	return cs
}

func (r *Registry) boxedNumber(fqn string) *types.ClassType {
	c := r.arena.Declare(fqn)
	c.SuperClass = r.Number
	c.Interfaces = []*types.ClassType{instantiate(r.Comparable, c)}
	return c
}

func instantiate(origin *types.ClassType, arg types.Type) *types.ClassType {
	return types.NewParameterized(origin, []types.Type{arg})
}

// Lookup resolves fqn against the underlying arena, used by the symbol
// table and the test fixture loader for user-declared classes registered
// via Declare.
func (r *Registry) Lookup(fqn string) (*types.ClassType, bool) { return r.arena.Lookup(fqn) }

// Declare registers (or returns the existing) class for fqn — used to add
// user-declared classes (the class under test, its supertypes) to the same
// arena the builtins live in, so handle-based equality works uniformly.
func (r *Registry) Declare(fqn string) *types.ClassType { return r.arena.Declare(fqn) }

// ValidatePattern reports whether s is a syntactically valid regular
// expression, using dlclark/regexp2 (the teacher's own regex engine
// dependency) — consulted by the checker wherever a string literal
// becomes a Pattern or Matcher (`=~` and string-to-Pattern bitwise
// negate, §4.B).
func ValidatePattern(s string) error {
	_, err := regexp2.Compile(s, regexp2.None)
	if err != nil {
		return fmt.Errorf("invalid pattern %q: %w", s, err)
	}
	return nil
}
