package dartgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListItemType(t *testing.T) {
	tests := []struct {
		name   string
		schema string
		want   string
		ok     bool
	}{
		{"list response", `{"type": "object", "properties": {"items": {"type": "array", "items": {"$ref": "#/components/schemas/Item"}}}}`, "Item", true},
		{"untyped wrapper", `{"properties": {"items": {"type": "array", "items": {"$ref": "#/x/Item"}}}}`, "Item", true},
		{"untyped items property", `{"type": "object", "properties": {"items": {"items": {"$ref": "#/components/schemas/Item"}}}}`, "Item", true},
		{"object items property", `{"type": "object", "properties": {"items": {"type": "object", "items": {"$ref": "#/x/Item"}}}}`, "Item", true},
		{"items of primitives", `{"type": "object", "properties": {"items": {"type": "array", "items": {"type": "string"}}}}`, "", false},
		{"items of arrays", `{"type": "object", "properties": {"items": {"type": "array", "items": {"type": "array", "items": {"$ref": "#/x/Item"}}}}}`, "", false},
		{"items is a ref", `{"type": "object", "properties": {"items": {"$ref": "#/x/Item"}}}`, "", false},
		{"no items", `{"type": "object", "properties": {"name": {"type": "string"}}}`, "", false},
		{"no properties", `{"type": "object"}`, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ListItemType(parseSchema(t, tt.schema))
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
	_, ok := ListItemType(nil)
	assert.False(t, ok)
}

func TestClassify(t *testing.T) {
	doc := parseDoc(t, `{"components": {"schemas": {
		"PetPage": {"type": "object", "properties": {"items": {"type": "array", "items": {"$ref": "#/components/schemas/Pet"}}}},
		"Pet": {"type": "object", "properties": {"name": {"type": "string"}}},
		"Basket": {"type": "object", "properties": {"items": {"type": "array", "items": {"type": "string"}}}},
		"Status": {"type": "string"},
		"Ids": {"type": "array", "items": {"type": "integer"}},
		"Loose": {"properties": {"name": {"type": "string"}}},
		"Page": {"type": "object", "properties": {"items": {"items": {"$ref": "#/components/schemas/Pet"}}}}
	}}}`)

	classes := Classify(doc)
	require.Len(t, classes, 4)

	// Models first in document order, then list responses.
	assert.Equal(t, "Pet", classes[0].Name)
	assert.Equal(t, ClassModel, classes[0].Kind)
	assert.Equal(t, "Basket", classes[1].Name, "an items property of primitives is a plain model field")
	assert.Equal(t, ClassModel, classes[1].Kind)
	assert.Equal(t, "PetPage", classes[2].Name)
	assert.Equal(t, ClassListResponse, classes[2].Kind)
	assert.Equal(t, "Pet", classes[2].ItemType)

	assert.Equal(t, "Page", classes[3].Name, "an untyped items property still makes a list response")
	assert.Equal(t, ClassListResponse, classes[3].Kind)
	assert.Equal(t, "Pet", classes[3].ItemType)

	assert.Contains(t, classes[2].Render(), "final List<Pet> items;")
	assert.Contains(t, classes[3].Render(), "class Page {\n  final List<Pet> items;")
	assert.Contains(t, classes[1].Render(), "final List<String>? items;")
}

func TestClassify_EmptyDocument(t *testing.T) {
	assert.Empty(t, Classify(parseDoc(t, `{}`)))
}
