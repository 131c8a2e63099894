package dartgen

import (
	"github.com/discoveregypt/apigen/internal/openapi"
)

// ClassKind selects the template used for a component schema.
type ClassKind int

const (
	ClassModel ClassKind = iota
	ClassListResponse
)

// Class is a component schema routed to a renderer.
type Class struct {
	Name     string
	Kind     ClassKind
	Schema   *openapi.Fragment
	ItemType string // element type name, only for ClassListResponse
}

// ListItemType reports whether schema is a list response: a schema whose
// `items` property declares `items` as a reference. The property's own type tag
// is not consulted. It returns the element type name.
func ListItemType(schema *openapi.Fragment) (string, bool) {
	items := schema.Property("items")
	if items == nil || items.Items == nil || items.Items.Kind != openapi.KindReference {
		return "", false
	}
	return items.Items.Ref, true
}

// IsModel reports whether schema renders as a plain model class.
func IsModel(schema *openapi.Fragment) bool {
	if schema == nil || schema.Kind != openapi.KindObject {
		return false
	}
	_, list := ListItemType(schema)
	return !list
}

// Classify routes every component schema to a renderer. Models come first, then
// list responses, each in document order. Schemas matching neither are dropped.
func Classify(doc *openapi.Document) []Class {
	var classes []Class
	for _, s := range doc.Schemas {
		if IsModel(s.Schema) {
			classes = append(classes, Class{Name: s.Name, Kind: ClassModel, Schema: s.Schema})
		}
	}
	for _, s := range doc.Schemas {
		if item, ok := ListItemType(s.Schema); ok {
			classes = append(classes, Class{Name: s.Name, Kind: ClassListResponse, Schema: s.Schema, ItemType: item})
		}
	}
	return classes
}

// Render emits the class source.
func (c Class) Render() string {
	if c.Kind == ClassListResponse {
		return RenderListResponse(c.Name, c.ItemType)
	}
	return RenderModel(c.Name, c.Schema)
}
