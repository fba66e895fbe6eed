// Package plugin defines the small capability interface the checker
// consults at fixed fallback points (§6, §9 "Plugin extensibility"). Only
// the interface is in scope here; no concrete plugin factory is
// implemented, matching spec.md §1's "the plugin factory that extends
// resolution (only its interface is consumed)".
package plugin

import (
	"groovystatic/pkg/types"
)

// Resolver is the host-provided extension point. Every method may return a
// nil/zero result to defer to the next resolution strategy; Resolver
// itself may be nil, in which case the checker skips straight past every
// fallback that would have consulted it.
type Resolver interface {
	// ResolveDynamicVariableType resolves an undeclared variable name to a
	// type, when the host knows about script bindings the symbol table
	// does not (§4.B "Variable reference").
	ResolveDynamicVariableType(name string) types.Type

	// ResolveProperty resolves a property access the receiver's own type
	// hierarchy did not satisfy.
	ResolveProperty(receiver types.Type, name string) types.Type

	// FindMethod resolves a call the extension-method registry and the
	// receiver's own methods did not satisfy (§4.D step 6).
	FindMethod(receiver types.Type, name string, args []types.Type) *types.Signature
}

// ExtensionRegistry is the statically-registered pseudo-method table
// consulted before Resolver, keyed by receiver type + name (§4.D step 4,
// the "DGM" extension-method fallback, GLOSSARY "Extension method (DGM)").
type ExtensionRegistry struct {
	byReceiverAndName map[string][]*types.Signature
}

// NewExtensionRegistry creates an empty registry.
func NewExtensionRegistry() *ExtensionRegistry {
	return &ExtensionRegistry{byReceiverAndName: make(map[string][]*types.Signature)}
}

// Register attaches sig as an extension method available on any receiver
// assignable to receiverFQN.
func (r *ExtensionRegistry) Register(receiverFQN, name string, sig *types.Signature) {
	key := receiverFQN + "#" + name
	r.byReceiverAndName[key] = append(r.byReceiverAndName[key], sig)
}

// Lookup returns the extension methods registered for exactly receiverFQN
// under name; the resolver walks the receiver's hierarchy itself, trying
// each ancestor FQN in turn.
func (r *ExtensionRegistry) Lookup(receiverFQN, name string) []*types.Signature {
	return r.byReceiverAndName[receiverFQN+"#"+name]
}
