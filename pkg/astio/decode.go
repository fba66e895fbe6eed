// Package astio reads a class declaration from a JSON fixture and writes
// diagnostics back out as JSON. There is no real parser in this module
// (pkg/ast trees are otherwise hand-built by tests); astio is the only
// on-disk ingestion path, grounded on CWBudde-go-dws's use of
// tidwall/gjson and tidwall/sjson rather than a struct-tagged
// encoding/json model, since the tree is union-typed (an "expr" node can
// be any one of a dozen shapes keyed on "kind").
package astio

import (
	"fmt"

	"github.com/tidwall/gjson"

	"groovystatic/pkg/ast"
)

// DecodeClass parses raw JSON into a *ast.ClassDecl. raw is expected to
// hold one top-level object shaped like:
//
//	{"name": "Foo", "super": "Bar", "interfaces": ["Baz"],
//	 "typeParameters": ["T"], "fields": [...], "methods": [...],
//	 "constructors": [...]}
func DecodeClass(raw []byte) (*ast.ClassDecl, error) {
	if !gjson.ValidBytes(raw) {
		return nil, fmt.Errorf("astio: invalid JSON")
	}
	root := gjson.ParseBytes(raw)
	if !root.IsObject() {
		return nil, fmt.Errorf("astio: top-level JSON value must be an object")
	}

	class := ast.NewClassDecl(decodePos(root), root.Get("name").String())
	class.SuperName = root.Get("super").String()
	class.Interface = root.Get("interface").Bool()
	class.Enum = root.Get("enum").Bool()
	class.Abstract = root.Get("abstract").Bool()

	root.Get("interfaces").ForEach(func(_, v gjson.Result) bool {
		class.InterfaceNames = append(class.InterfaceNames, v.String())
		return true
	})
	root.Get("typeParameters").ForEach(func(_, v gjson.Result) bool {
		class.TypeParameters = append(class.TypeParameters, v.String())
		return true
	})
	root.Get("enumConstants").ForEach(func(_, v gjson.Result) bool {
		class.EnumConstants = append(class.EnumConstants, v.String())
		return true
	})

	var err error
	root.Get("fields").ForEach(func(_, v gjson.Result) bool {
		var f *ast.FieldDecl
		f, err = decodeField(v)
		if err != nil {
			return false
		}
		class.Fields = append(class.Fields, f)
		return true
	})
	if err != nil {
		return nil, err
	}

	root.Get("methods").ForEach(func(_, v gjson.Result) bool {
		var m *ast.MethodDecl
		m, err = decodeMethod(v)
		if err != nil {
			return false
		}
		class.Methods = append(class.Methods, m)
		return true
	})
	if err != nil {
		return nil, err
	}

	root.Get("constructors").ForEach(func(_, v gjson.Result) bool {
		var m *ast.MethodDecl
		m, err = decodeMethod(v)
		if err != nil {
			return false
		}
		m.Name = "<init>"
		class.Constructors = append(class.Constructors, m)
		return true
	})
	return class, err
}

func decodePos(v gjson.Result) ast.Position {
	return ast.Position{
		Line:   int(v.Get("line").Int()),
		Column: int(v.Get("column").Int()),
	}
}

func decodeTypeRef(v gjson.Result) *ast.TypeRef {
	if !v.Exists() || v.Type == gjson.Null {
		return nil
	}
	if v.Type == gjson.String {
		return &ast.TypeRef{Name: v.String()}
	}
	ref := &ast.TypeRef{
		Name:       v.Get("name").String(),
		ArrayDepth: int(v.Get("arrayDepth").Int()),
	}
	v.Get("typeArgs").ForEach(func(_, arg gjson.Result) bool {
		ref.TypeArgs = append(ref.TypeArgs, decodeTypeRef(arg))
		return true
	})
	return ref
}

func decodeField(v gjson.Result) (*ast.FieldDecl, error) {
	f := ast.NewFieldDecl(decodePos(v), v.Get("name").String())
	f.Declared = decodeTypeRef(v.Get("type"))
	f.Static = v.Get("static").Bool()
	f.ReadOnly = v.Get("readOnly").Bool()
	return f, nil
}

func decodeParameter(v gjson.Result) *ast.Parameter {
	return &ast.Parameter{
		Name:     v.Get("name").String(),
		Declared: decodeTypeRef(v.Get("type")),
		Varargs:  v.Get("varargs").Bool(),
	}
}

func decodeMethod(v gjson.Result) (*ast.MethodDecl, error) {
	m := ast.NewMethodDecl(decodePos(v), v.Get("name").String())
	m.Static = v.Get("static").Bool()
	m.Abstract = v.Get("abstract").Bool()
	m.DeclaredReturn = decodeTypeRef(v.Get("returnType"))

	v.Get("typeParameters").ForEach(func(_, tp gjson.Result) bool {
		m.TypeParameters = append(m.TypeParameters, tp.String())
		return true
	})
	v.Get("parameters").ForEach(func(_, p gjson.Result) bool {
		m.Parameters = append(m.Parameters, decodeParameter(p))
		return true
	})

	var err error
	v.Get("body").ForEach(func(_, s gjson.Result) bool {
		var stmt ast.Statement
		stmt, err = decodeStatement(s)
		if err != nil {
			return false
		}
		m.Body = append(m.Body, stmt)
		return true
	})
	return m, err
}
