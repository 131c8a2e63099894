// Package dartgen renders a parsed OpenAPI document into a minimal Dart client:
// model classes, list-response wrappers and a URI-building service class.
package dartgen

import (
	"github.com/discoveregypt/apigen/internal/openapi"
)

// primitiveTypes maps OpenAPI type tags to Dart type names. Anything else maps to String.
var primitiveTypes = map[string]string{
	"string":  "String",
	"integer": "int",
	"number":  "double",
	"boolean": "bool",
}

// TypeName returns the Dart type for a schema fragment. It never dereferences
// a reference, so it terminates on any parsed tree.
func TypeName(f *openapi.Fragment) string {
	if f == nil {
		return "String"
	}
	switch f.Kind {
	case openapi.KindReference:
		return f.Ref
	case openapi.KindArray:
		return "List<" + TypeName(f.Items) + ">"
	}
	if t, ok := primitiveTypes[f.Type]; ok {
		return t
	}
	return "String"
}

// Shape is the structural class of a Descriptor; it picks the codec template.
type Shape int

const (
	ShapePrimitive Shape = iota
	ShapeReference
	ShapeList
)

// Descriptor is the resolved Dart type of a field or parameter.
type Descriptor struct {
	Name     string // e.g. "String", "List<Item>"
	Nullable bool
	Shape    Shape
	Elem     *Descriptor // element type, only for ShapeList
}

// Describe resolves a fragment into a Descriptor. Nullable is the negation of required.
func Describe(f *openapi.Fragment, required bool) Descriptor {
	d := describe(f)
	d.Nullable = !required
	return d
}

func describe(f *openapi.Fragment) Descriptor {
	if f != nil {
		switch f.Kind {
		case openapi.KindReference:
			return Descriptor{Name: f.Ref, Shape: ShapeReference}
		case openapi.KindArray:
			elem := describe(f.Items)
			return Descriptor{Name: "List<" + elem.Name + ">", Shape: ShapeList, Elem: &elem}
		}
	}
	return Descriptor{Name: TypeName(f), Shape: ShapePrimitive}
}

// Type returns the declared Dart type, with "?" when nullable.
func (d Descriptor) Type() string {
	if d.Nullable {
		return d.Name + "?"
	}
	return d.Name
}
