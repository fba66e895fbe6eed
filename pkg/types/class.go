package types

import "strings"

// FieldInfo describes one field or property slot on a class.
type FieldInfo struct {
	Type      Type
	ReadOnly  bool // accessor-only property: assignment must fail with ReadOnlyProperty
	Static    bool
	FromClass *ClassType // class that declares it, for access-error messages
}

// ClassType is the canonical descriptor for a reference type: a class,
// interface, or enum. Every reference type carries a Redirect() form equal
// to itself once resolved (construction through an Arena guarantees this:
// the same FQN always yields the same pointer).
type ClassType struct {
	Handle int // arena-assigned identity, used for equality/hashing
	FQN    string

	Interface bool
	Enum      bool
	Abstract  bool

	SuperClass *ClassType
	Interfaces []*ClassType

	// TypeParameters are the class's own declared generic placeholders
	// (e.g. [T] for List<T>). Empty for non-generic classes.
	TypeParameters []*TypeParameter

	// Origin and TypeArguments describe an instantiation: a ClassType for
	// List<String> has Origin pointing at the List<T> declaration and
	// TypeArguments = [String]. The declaration itself has Origin == nil.
	Origin        *ClassType
	TypeArguments []Type

	Fields       map[string]*FieldInfo
	Methods      map[string][]*Signature // overload sets, keyed by method name
	Constructors []*Signature

	EnumConstants []string // declared enum constant names, if Enum
}

// simpleName strips the package prefix from an FQN (java.util.List ->
// List), matching how diagnostic text names types: by their declared
// unqualified identifier, not their fully-qualified classpath entry.
func simpleName(fqn string) string {
	if i := strings.LastIndexByte(fqn, '.'); i >= 0 {
		return fqn[i+1:]
	}
	return fqn
}

// String renders the simple (unqualified) name, with type arguments
// rendered the same way (List<Object>, not java.util.List<java.lang.Object>):
// §6 treats diagnostic text as a stable part of the interface, and the
// language's own source syntax never spells out FQNs either. FQN itself
// remains available for lookups where qualification actually matters.
func (c *ClassType) String() string {
	if len(c.TypeArguments) > 0 {
		parts := make([]string, len(c.TypeArguments))
		for i, a := range c.TypeArguments {
			parts[i] = a.String()
		}
		return simpleName(c.FQN) + "<" + strings.Join(parts, ", ") + ">"
	}
	return simpleName(c.FQN)
}

// Equals compares by arena handle: two ClassType values denote the same
// type iff they share a handle (same declaration) and have structurally
// equal type arguments.
func (c *ClassType) Equals(o Type) bool {
	oc, ok := o.(*ClassType)
	if !ok {
		return false
	}
	if c.declHandle() != oc.declHandle() {
		return false
	}
	if len(c.TypeArguments) != len(oc.TypeArguments) {
		return false
	}
	for i := range c.TypeArguments {
		if !c.TypeArguments[i].Equals(oc.TypeArguments[i]) {
			return false
		}
	}
	return true
}

func (c *ClassType) declHandle() int {
	if c.Origin != nil {
		return c.Origin.Handle
	}
	return c.Handle
}

func (c *ClassType) typeNode() {}

// Redirect returns the canonical resolved form of this class: the
// declaration itself (not an instantiation) with no type arguments. Used
// wherever member lookup needs the raw declaration regardless of which
// parameterized use triggered it.
func (c *ClassType) Redirect() *ClassType {
	if c.Origin != nil {
		return c.Origin
	}
	return c
}

// IsSubtypeOf reports whether target appears in c's
// superclass/interface chain (including c itself) — i.e. whether a value of
// type c "is a" target, ignoring generics variance (callers that care about
// bound type arguments layer that check separately).
func (c *ClassType) IsSubtypeOf(target *ClassType) bool {
	if c == nil || target == nil {
		return false
	}
	if c.declHandle() == target.declHandle() {
		return true
	}
	cur := c.Redirect()
	for cur != nil {
		if cur.declHandle() == target.declHandle() {
			return true
		}
		for _, iface := range cur.Interfaces {
			if iface.IsSubtypeOf(target) {
				return true
			}
		}
		cur = cur.SuperClass
	}
	return false
}

// AllSupertypes returns every ancestor class and interface (not including c
// itself), used by LUB computation to find common ancestors.
func (c *ClassType) AllSupertypes() []*ClassType {
	var out []*ClassType
	seen := map[int]bool{}
	var walk func(*ClassType)
	walk = func(cur *ClassType) {
		if cur == nil {
			return
		}
		decl := cur.Redirect()
		if decl.SuperClass != nil && !seen[decl.SuperClass.declHandle()] {
			seen[decl.SuperClass.declHandle()] = true
			out = append(out, decl.SuperClass)
			walk(decl.SuperClass)
		}
		for _, iface := range decl.Interfaces {
			if !seen[iface.declHandle()] {
				seen[iface.declHandle()] = true
				out = append(out, iface)
				walk(iface)
			}
		}
	}
	walk(c)
	return out
}

// LookupField walks c's hierarchy (self first, then superclasses, then
// interfaces) for a field or property named name.
func (c *ClassType) LookupField(name string) (*FieldInfo, bool) {
	decl := c.Redirect()
	if decl.Fields != nil {
		if f, ok := decl.Fields[name]; ok {
			return f, true
		}
	}
	if decl.SuperClass != nil {
		if f, ok := decl.SuperClass.LookupField(name); ok {
			return f, true
		}
	}
	for _, iface := range decl.Interfaces {
		if f, ok := iface.LookupField(name); ok {
			return f, true
		}
	}
	return nil, false
}

// LookupMethods collects every method named name visible on c, from c
// itself and its full hierarchy (duplicates from repeated interfaces are
// not de-duplicated here; findMethod's distance scoring treats identical
// signatures as redundant candidates, which is harmless).
func (c *ClassType) LookupMethods(name string) []*Signature {
	var out []*Signature
	decl := c.Redirect()
	if decl.Methods != nil {
		out = append(out, decl.Methods[name]...)
	}
	if decl.SuperClass != nil {
		out = append(out, decl.SuperClass.LookupMethods(name)...)
	}
	for _, iface := range decl.Interfaces {
		out = append(out, iface.LookupMethods(name)...)
	}
	return out
}

// NewParameterized returns a ClassType representing origin<args...>,
// without mutating origin.
func NewParameterized(origin *ClassType, args []Type) *ClassType {
	return &ClassType{
		Handle:        origin.Handle,
		FQN:           origin.FQN,
		Interface:     origin.Interface,
		Enum:          origin.Enum,
		Abstract:      origin.Abstract,
		SuperClass:    origin.SuperClass,
		Interfaces:    origin.Interfaces,
		Origin:        origin,
		TypeArguments: args,
		Fields:        origin.Fields,
		Methods:       origin.Methods,
		Constructors:  origin.Constructors,
		EnumConstants: origin.EnumConstants,
	}
}
