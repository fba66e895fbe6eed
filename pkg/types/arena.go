package types

// Arena interns ClassType descriptors by fully-qualified name so that
// cyclic references (a superclass that mentions a subclass in a generic
// bound, two interfaces that reference each other) can be built without
// requiring the whole graph to exist up front: callers register a
// forward-declared class, wire up its fields later, and every other
// descriptor that referenced it by FQN automatically sees the same pointer.
//
// Handle equality (not structural comparison) is what makes cyclic graphs
// safe to walk: Equals on two ClassType values is a handle compare, never a
// recursive structural walk.
type Arena struct {
	byFQN  map[string]*ClassType
	byHand []*ClassType
}

// NewArena creates an empty interning arena.
func NewArena() *Arena {
	return &Arena{byFQN: make(map[string]*ClassType)}
}

// Declare returns the ClassType for fqn, creating an empty forward
// declaration (Handle assigned, no members yet) if this is the first
// mention. Callers that are defining the class should then fill in
// SuperClass/Interfaces/Members on the returned pointer; callers that are
// merely referencing it get the same shared pointer either way.
func (a *Arena) Declare(fqn string) *ClassType {
	if c, ok := a.byFQN[fqn]; ok {
		return c
	}
	c := &ClassType{
		Handle:  len(a.byHand) + 1,
		FQN:     fqn,
		Fields:  make(map[string]*FieldInfo),
		Methods: make(map[string][]*Signature),
	}
	a.byFQN[fqn] = c
	a.byHand = append(a.byHand, c)
	return c
}

// Lookup returns the class registered under fqn, if any.
func (a *Arena) Lookup(fqn string) (*ClassType, bool) {
	c, ok := a.byFQN[fqn]
	return c, ok
}

// All returns every declared class, in declaration order.
func (a *Arena) All() []*ClassType {
	return a.byHand
}
