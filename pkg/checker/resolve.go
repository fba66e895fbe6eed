package checker

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"groovystatic/pkg/ast"
	"groovystatic/pkg/errors"
	"groovystatic/pkg/types"
)

// candidateMatch pairs a signature with its computed distance (§4.D
// "Best-match selection").
type candidateMatch struct {
	sig      *types.Signature
	distance int
}

// findMethod implements §4.D's full resolution order, returning the
// winning signature (nil if none/ambiguous) and every signature that
// shared the minimum distance (len > 1 means ambiguous).
func (c *Checker) findMethod(receiver types.Type, name string, argTypes []types.Type) (*types.Signature, []*types.Signature) {
	var pool []*types.Signature

	if name == "<init>" {
		if cls, ok := types.Unwrap(receiver).(*types.ClassType); ok {
			pool = cls.Constructors
		} else if cls, ok := receiver.(*types.ClassType); ok {
			pool = cls.Constructors
		}
		if len(pool) == 0 && len(argTypes) == 0 {
			return &types.Signature{Name: "<init>", ReturnType: receiver}, []*types.Signature{{Name: "<init>", ReturnType: receiver}}
		}
	} else {
		if cls, ok := asClass(receiver); ok {
			pool = cls.LookupMethods(name)
		}

		if len(pool) == 0 && len(argTypes) == 0 && (strings.HasPrefix(name, "get") || strings.HasPrefix(name, "is")) {
			propName := decapitalizedPropertyName(name)
			if cls, ok := asClass(receiver); ok {
				if f, ok := cls.LookupField(propName); ok {
					return &types.Signature{Name: name, ReturnType: f.Type}, []*types.Signature{{Name: name, ReturnType: f.Type}}
				}
			}
		}
	}

	best := bestMatch(pool, argTypes)
	if len(best) == 1 {
		return best[0].sig, []*types.Signature{best[0].sig}
	}
	if len(best) > 1 {
		sigs := make([]*types.Signature, len(best))
		for i, b := range best {
			sigs[i] = b.sig
		}
		return nil, sigs
	}

	if cls, ok := asClass(receiver); ok {
		extCandidates := c.ext.Lookup(cls.FQN, name)
		for _, anc := range cls.AllSupertypes() {
			extCandidates = append(extCandidates, c.ext.Lookup(anc.FQN, name)...)
		}
		if extBest := bestMatch(extCandidates, argTypes); len(extBest) == 1 {
			return extBest[0].sig, []*types.Signature{extBest[0].sig}
		} else if len(extBest) > 1 {
			sigs := make([]*types.Signature, len(extBest))
			for i, b := range extBest {
				sigs[i] = b.sig
			}
			return nil, sigs
		}
	}

	if cls, ok := asClass(receiver); ok && cls.Redirect() == c.classes.GString {
		if sig, cands := c.findMethod(c.classes.String, name, argTypes); sig != nil || len(cands) > 1 {
			return sig, cands
		}
	}

	if c.resolver != nil {
		if sig := c.resolver.FindMethod(receiver, name, argTypes); sig != nil {
			return sig, []*types.Signature{sig}
		}
	}

	return nil, nil
}

func asClass(t types.Type) (*types.ClassType, bool) {
	if c, ok := t.(*types.ClassType); ok {
		return c, true
	}
	return nil, false
}

var propertyCaser = cases.Lower(language.Und)

// decapitalizedPropertyName implements §4.D step 3's "decapitalizing the
// suffix": strip the get/is prefix and lowercase the first rune, using
// Unicode-correct casing rather than a hand-rolled ASCII lowercase.
func decapitalizedPropertyName(methodName string) string {
	suffix := strings.TrimPrefix(methodName, "get")
	suffix = strings.TrimPrefix(suffix, "is")
	if suffix == "" {
		return suffix
	}
	runes := []rune(suffix)
	first := propertyCaser.String(string(runes[0]))
	return first + string(runes[1:])
}

// bestMatch scores every candidate's applicability to argTypes (auto-boxing
// receivers/arguments implicitly, since Distance already treats primitive/
// boxed pairs as interchangeable) and returns every candidate tied at the
// minimum non-negative distance.
func bestMatch(candidates []*types.Signature, argTypes []types.Type) []candidateMatch {
	var matches []candidateMatch
	for _, sig := range candidates {
		d, ok := matchDistance(sig, argTypes)
		if ok {
			matches = append(matches, candidateMatch{sig: sig, distance: d})
		}
	}
	if len(matches) == 0 {
		return nil
	}
	min := matches[0].distance
	for _, m := range matches[1:] {
		if m.distance < min {
			min = m.distance
		}
	}
	var out []candidateMatch
	for _, m := range matches {
		if m.distance == min {
			out = append(out, m)
		}
	}
	return out
}

// matchDistance implements the two match shapes §4.D names:
// allParametersAndArgumentsMatch and lastArgMatchesVarg, plus the "missing
// vararg slot" distance bump. It sees only the signature and the argument
// types, so a method declared in a supertype of the receiver scores the
// same as one declared on the receiver itself.
func matchDistance(sig *types.Signature, argTypes []types.Type) (int, bool) {
	params := sig.ParameterTypes
	if !sig.IsVarargs {
		if len(params) != len(argTypes) {
			return 0, false
		}
		total := 0
		for i, p := range params {
			d := types.Distance(argTypes[i], p)
			if d < 0 {
				return 0, false
			}
			total += d
		}
		return total, true
	}

	fixed := len(params) - 1
	if len(argTypes) < fixed {
		return 0, false
	}
	total := 0
	for i := 0; i < fixed; i++ {
		d := types.Distance(argTypes[i], params[i])
		if d < 0 {
			return 0, false
		}
		total += d
	}
	elemType := params[fixed]
	if arr, ok := params[fixed].(*types.ArrayType); ok {
		elemType = arr.ElementType
	}
	if len(argTypes) == fixed {
		return total + 1, true // missing vararg slot: distance 1
	}
	for i := fixed; i < len(argTypes); i++ {
		d := types.Distance(argTypes[i], elemType)
		if d < 0 {
			return 0, false
		}
		total += d
	}
	return total + 1, true // vararg fold normalization: exact matches still win
}

// checkCall resolves name(args) against receiver and reports the
// appropriate diagnostic on failure, returning the call's result type
// (best-effort Dynamic on failure, per §7's "best-effort fallback").
func (c *Checker) checkCall(node ast.Node, receiver types.Type, name string, argTypes []types.Type) (types.Type, *types.Signature) {
	sig, candidates := c.findMethod(receiver, name, argTypes)
	if sig != nil {
		return c.reconstructedReturn(node, sig, argTypes), sig
	}
	if len(candidates) > 1 {
		c.addWarning(node, errors.AmbiguousMethod, "Reference to method is ambiguous. Cannot resolve which method to invoke for %s due to overlapping prototypes between: %s", name, joinSigStrings(candidates))
		return types.Dynamic, nil
	}
	c.addError(node, errors.UnknownMethod, "Cannot find matching method %s#%s(%s)", receiver.String(), name, joinTypeStrings(argTypes))
	return types.Dynamic, nil
}

func joinSigStrings(sigs []*types.Signature) string {
	var b strings.Builder
	for i, s := range sigs {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(s.String())
	}
	return b.String()
}

func joinTypeStrings(ts []types.Type) string {
	var b strings.Builder
	for i, t := range ts {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(t.String())
	}
	return b.String()
}

// checkGroovyStyleConstructor implements §4.D's constructor-style literal
// check: success is automatic against Object/dynamic; otherwise a matching
// constructor must exist.
func (c *Checker) checkGroovyStyleConstructor(node ast.Node, target types.Type, argTypes []types.Type) {
	if target == types.Dynamic {
		return
	}
	if sig, candidates := c.findMethod(target, "<init>", argTypes); sig == nil && len(candidates) == 0 {
		c.addError(node, errors.UnknownMethod, "No matching constructor found: %s(%s)", target.String(), joinTypeStrings(argTypes))
	}
}
