// Package checker implements the static type-checking visitor: the core
// described throughout this module. A Checker instance processes exactly
// one class, on a single goroutine. Instances share the classpath registry,
// which VisitClass and type resolution add classes to, so Checkers that
// share a registry do not run concurrently.
package checker

import (
	"sync"

	"github.com/google/uuid"

	"groovystatic/pkg/ast"
	"groovystatic/pkg/classpath"
	"groovystatic/pkg/errors"
	"groovystatic/pkg/plugin"
	"groovystatic/pkg/source"
	"groovystatic/pkg/symbols"
	"groovystatic/pkg/types"
)

var (
	defaultClasspathOnce sync.Once
	defaultClasspath     *classpath.Registry
)

// DefaultClasspath returns the shared builtin-class registry, built once.
// The registry is not read-only after Bootstrap: VisitClass and type
// resolution declare classes into it, and it has no locking.
func DefaultClasspath() *classpath.Registry {
	defaultClasspathOnce.Do(func() { defaultClasspath = classpath.Bootstrap() })
	return defaultClasspath
}

// Checker is the visitor. Construct one per class via NewChecker.
type Checker struct {
	source   *source.SourceFile
	class    *ast.ClassDecl
	resolver plugin.Resolver
	classes  *classpath.Registry
	ext      *plugin.ExtensionRegistry
	sink     *errors.Sink
	runID    string

	methodsToBeVisited map[string]bool // empty means "check all" (§4.A)
	alreadyVisited     map[*ast.MethodDecl]bool

	currentClassType *types.ClassType
	currentMethod    *ast.MethodDecl
	currentClosure   *ast.ClosureLiteral
	scope            *symbols.Scope

	withReceiverList         []types.Type
	lastImplicitItType       types.Type
	ifBranchFrames           []map[string][]types.Type
	assignmentFrames         []map[string][]types.Type
	forLoopVariableTypes     map[string]types.Type
	closureSharedVars        map[string]bool
	closureSharedAssignments map[string][]types.Type
	varCurrentType           map[string]types.Type
	secondPassCalls          []deferredCall

	strictPrecisionLoss bool // promotes NumericPrecisionLoss to SeverityError, see pkg/config

	visited bool // guards against re-calling VisitClass on the same instance (§8 "Idempotence")
}

// NewChecker constructs a Checker for one class. source is used only for
// diagnostic caret formatting; resolver may be nil.
func NewChecker(src *source.SourceFile, class *ast.ClassDecl, resolver plugin.Resolver) *Checker {
	runID := uuid.New().String()
	c := &Checker{
		source:                   src,
		class:                    class,
		resolver:                 resolver,
		classes:                  DefaultClasspath(),
		ext:                      plugin.NewExtensionRegistry(),
		sink:                     errors.NewSink(runID),
		runID:                    runID,
		methodsToBeVisited:       map[string]bool{},
		alreadyVisited:           map[*ast.MethodDecl]bool{},
		forLoopVariableTypes:     map[string]types.Type{},
		closureSharedVars:        map[string]bool{},
		closureSharedAssignments: map[string][]types.Type{},
	}
	return c
}

// WithClasspath overrides the builtin registry (tests that declare extra
// classes use this instead of DefaultClasspath).
func (c *Checker) WithClasspath(r *classpath.Registry) *Checker {
	c.classes = r
	return c
}

// WithExtensions overrides the extension-method (DGM) registry.
func (c *Checker) WithExtensions(r *plugin.ExtensionRegistry) *Checker {
	c.ext = r
	return c
}

// WithStrictPrecisionLoss promotes NumericPrecisionLoss findings to
// SeverityError instead of SeverityWarning, per pkg/config's
// strictPrecisionLoss setting.
func (c *Checker) WithStrictPrecisionLoss(strict bool) *Checker {
	c.strictPrecisionLoss = strict
	return c
}

// Sink exposes the diagnostic sink for callers that need to inspect
// results after VisitClass/PerformSecondPass.
func (c *Checker) Sink() *errors.Sink { return c.sink }

// SetMethodsToBeVisited restricts which methods' bodies are checked; an
// empty/nil set (the zero value) means check all (§4.A).
func (c *Checker) SetMethodsToBeVisited(names map[string]bool) {
	c.methodsToBeVisited = names
}

// shouldVisit reports whether m's body should be checked, per the
// whitelist rule.
func (c *Checker) shouldVisit(m *ast.MethodDecl) bool {
	if len(c.methodsToBeVisited) == 0 {
		return true
	}
	return c.methodsToBeVisited[m.Name]
}

// VisitClass is the primary entry point: walks the whole class (§6).
func (c *Checker) VisitClass() {
	if c.visited {
		panic("checker: VisitClass called twice on the same instance")
	}
	c.visited = true

	c.currentClassType = c.class.Resolved
	if c.currentClassType == nil {
		c.currentClassType = c.classes.Declare(c.class.Name)
		c.class.Resolved = c.currentClassType
	}
	c.wireClassShape()

	for _, ctor := range c.class.Constructors {
		c.preRegisterMethod(ctor)
	}
	for _, m := range c.class.Methods {
		c.preRegisterMethod(m)
	}

	for _, ctor := range c.class.Constructors {
		c.visitMethod(ctor)
	}
	for _, m := range c.class.Methods {
		c.visitMethod(m)
	}
}

// wireClassShape populates currentClassType's hierarchy/generics/fields
// from the declaration the first time a class is visited, so member
// lookup (LookupField/LookupMethods/IsSubtypeOf) sees the full shape
// before any method body is checked.
func (c *Checker) wireClassShape() {
	cls := c.currentClassType
	if cls.SuperClass == nil && c.class.SuperName != "" {
		cls.SuperClass = c.classes.Declare(c.class.SuperName)
	}
	if len(cls.Interfaces) == 0 {
		for _, name := range c.class.InterfaceNames {
			cls.Interfaces = append(cls.Interfaces, c.classes.Declare(name))
		}
	}
	if len(cls.TypeParameters) == 0 {
		for _, name := range c.class.TypeParameters {
			cls.TypeParameters = append(cls.TypeParameters, &types.TypeParameter{Name: name, Constraint: types.Dynamic})
		}
	}
	cls.Interface = c.class.Interface
	cls.Enum = c.class.Enum
	cls.Abstract = c.class.Abstract
	cls.EnumConstants = c.class.EnumConstants

	if cls.Fields == nil {
		cls.Fields = map[string]*types.FieldInfo{}
	}
	for _, f := range c.class.Fields {
		f.Resolved = c.resolveOptionalTypeRef(f.Declared)
		cls.Fields[f.Name] = &types.FieldInfo{
			Type:      f.Resolved,
			ReadOnly:  f.ReadOnly,
			Static:    f.Static,
			FromClass: cls,
		}
	}
}

// preRegisterMethod hoists m's signature onto the class so forward
// references (a method calling another method declared later in the same
// class) resolve during body visiting, mirroring the teacher's
// pre-register-then-hoist pass ordering.
func (c *Checker) preRegisterMethod(m *ast.MethodDecl) {
	if m.ResolvedSignature != nil {
		return
	}
	sig := &types.Signature{
		DeclaringClass: c.currentClassType,
		Name:           m.Name,
		ReturnType:     c.resolveOptionalTypeRef(m.DeclaredReturn),
		Abstract:       m.Abstract,
	}
	for i, p := range m.Parameters {
		pt := c.resolveOptionalTypeRef(p.Declared)
		if p.Varargs {
			pt = types.NewArrayType(pt)
			sig.IsVarargs = true
		}
		p.ResolvedType = pt
		sig.ParameterTypes = append(sig.ParameterTypes, pt)
		_ = i
	}
	for _, tpName := range m.TypeParameters {
		sig.TypeParameters = append(sig.TypeParameters, &types.TypeParameter{Name: tpName, Constraint: types.Dynamic})
	}
	m.ResolvedSignature = sig

	if m.Name == "<init>" {
		c.currentClassType.Constructors = append(c.currentClassType.Constructors, sig)
	} else {
		if c.currentClassType.Methods == nil {
			c.currentClassType.Methods = map[string][]*types.Signature{}
		}
		c.currentClassType.Methods[m.Name] = append(c.currentClassType.Methods[m.Name], sig)
	}
}

// visitMethod visits m's body exactly once, per the whitelist and the
// alreadyVisitedMethods recursion guard (§4.A, §9).
func (c *Checker) visitMethod(m *ast.MethodDecl) {
	if c.alreadyVisited[m] {
		return
	}
	c.alreadyVisited[m] = true
	if !c.shouldVisit(m) {
		return
	}

	savedMethod := c.currentMethod
	savedScope := c.scope
	c.currentMethod = m
	c.scope = symbols.NewScope()
	for _, p := range m.Parameters {
		c.scope.Declare(p.Name, symbols.Binding{Kind: symbols.Param, Declared: p.Declared})
	}

	c.analyzeClosureSharedVariables(m)

	for _, s := range m.Body {
		c.visitStatement(s)
	}

	var returnTypes []types.Type
	walkReturns(m.Body, func(value ast.Expression) {
		if value == nil || isNullLiteral(value) {
			return
		}
		if t, ok := value.Get(ast.InferredType); ok {
			returnTypes = append(returnTypes, t.(types.Type))
		}
	})

	m.ResolvedSignature.ReturnType = coalesceReturnType(m.DeclaredReturn, m.ResolvedSignature.ReturnType, returnTypes)
	m.Set(ast.InferredReturnType, m.ResolvedSignature.ReturnType)

	c.currentMethod = savedMethod
	c.scope = savedScope
}

func isNullLiteral(e ast.Expression) bool {
	lit, ok := e.(*ast.Literal)
	return ok && lit.Kind == ast.NullLit
}

// coalesceReturnType keeps an explicit declared return type, otherwise
// infers LUB(returnTypes) defaulting to types.Dynamic (Object) for an
// empty body (§8: "empty-closure defaults to Object" — for methods with no
// declared type and no returns, Object is likewise the safe default).
func coalesceReturnType(declared *ast.TypeRef, already types.Type, returnTypes []types.Type) types.Type {
	if declared != nil {
		return already
	}
	if len(returnTypes) == 0 {
		return types.Dynamic
	}
	return types.LUB(returnTypes...)
}

// PerformSecondPass must be called after VisitClass for closure-shared
// variable finalization (§4.G "Second pass", §6).
func (c *Checker) PerformSecondPass() {
	for _, dc := range c.secondPassCalls {
		c.resolveDeferredCall(dc)
	}
}
