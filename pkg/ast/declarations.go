package ast

import "groovystatic/pkg/types"

// TypeRef is a syntactic type reference: a class name plus optional
// generic type arguments and array dimension, as it appears in a
// declaration, cast, or instanceof check. The checker resolves it to a
// types.Type via the classpath/symbol table rather than storing the
// resolved type on TypeRef itself.
type TypeRef struct {
	Name       string // fully-qualified or simple class name, or a primitive keyword
	TypeArgs   []*TypeRef
	ArrayDepth int
}

// Parameter is a formal parameter of a method, constructor, or closure.
type Parameter struct {
	Name         string
	Declared     *TypeRef // nil means dynamic (def-style parameter)
	Varargs      bool     // last parameter declared as T...
	ResolvedType types.Type
}

// FieldDecl is a field or property declaration on a class.
type FieldDecl struct {
	metadata
	Name     string
	Declared *TypeRef
	Static   bool
	ReadOnly bool // accessor-only property (no setter)
	Resolved types.Type
	position Position
}

func (f *FieldDecl) Pos() Position { return f.position }

// NewFieldDecl constructs a FieldDecl at pos.
func NewFieldDecl(pos Position, name string) *FieldDecl {
	return &FieldDecl{Name: name, position: pos}
}

// MethodDecl is a method or constructor declaration (Name == "<init>" for
// constructors) with a body of statements.
type MethodDecl struct {
	baseStmt
	Name           string
	Parameters     []*Parameter
	DeclaredReturn *TypeRef // nil means dynamic return
	TypeParameters []string
	Body           []Statement
	Static         bool
	Abstract       bool

	ResolvedSignature *types.Signature
}

// NewMethodDecl constructs a MethodDecl at pos.
func NewMethodDecl(pos Position, name string) *MethodDecl {
	m := &MethodDecl{Name: name}
	m.position = pos
	return m
}

// ClassDecl is the root node the checker visits: one class, its
// supertype/interfaces by name, its declared generic parameters, fields,
// and methods.
type ClassDecl struct {
	baseStmt
	Name           string
	SuperName      string   // empty means Object
	InterfaceNames []string
	TypeParameters []string
	Interface      bool
	Enum           bool
	Abstract       bool
	Fields         []*FieldDecl
	Methods        []*MethodDecl
	Constructors   []*MethodDecl
	EnumConstants  []string

	Resolved *types.ClassType
}

// NewClassDecl constructs a ClassDecl at pos.
func NewClassDecl(pos Position, name string) *ClassDecl {
	c := &ClassDecl{Name: name}
	c.position = pos
	return c
}
