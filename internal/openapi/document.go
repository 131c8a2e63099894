// Package openapi holds the subset of an OpenAPI 3.x document that apigen
// consumes, parsed once into ordered, tagged schema fragments.
package openapi

// Kind identifies which variant of a schema fragment is populated.
type Kind string

const (
	KindPrimitive Kind = "primitive" // string, integer, number, boolean, or anything unrecognized
	KindArray     Kind = "array"     // carries Items
	KindReference Kind = "reference" // carries Ref
	KindObject    Kind = "object"    // type: object
)

// Fragment is one node of a schema tree.
type Fragment struct {
	// Kind selects the populated fields below.
	Kind Kind

	// Type is the raw "type" tag as declared. Empty when absent or not a string.
	Type string

	// Ref is the target schema name, the part of "$ref" after the last "/".
	// Only set when Kind == KindReference.
	Ref string

	// Items is the element schema. Only set when Kind == KindArray.
	Items *Fragment

	// Properties keeps declaration order; it decides emitted field order.
	Properties []Property

	// Required lists property names that must be present.
	Required []string
}

// Property is one named member of an object fragment.
type Property struct {
	Name   string
	Schema *Fragment
}

// IsRequired reports whether name is listed in the fragment's required set.
func (f *Fragment) IsRequired(name string) bool {
	if f == nil {
		return false
	}
	for _, r := range f.Required {
		if r == name {
			return true
		}
	}
	return false
}

// Property returns the schema of the named property, or nil.
func (f *Fragment) Property(name string) *Fragment {
	if f == nil {
		return nil
	}
	for _, p := range f.Properties {
		if p.Name == name {
			return p.Schema
		}
	}
	return nil
}

// StringFragment returns the {type: string} fragment used wherever a schema is
// missing.
func StringFragment() *Fragment {
	return &Fragment{Kind: KindPrimitive, Type: "string"}
}

// NamedSchema is an entry of components.schemas.
type NamedSchema struct {
	Name   string
	Schema *Fragment
}

// Parameter is a declared operation parameter.
type Parameter struct {
	Name   string
	In     string
	Schema *Fragment
}

// Operation is one HTTP operation of a path.
type Operation struct {
	ID         string // operationId, "" when not declared
	Method     string // lower-case HTTP method key, e.g. "get"
	Path       string // path template, e.g. "/items/{id}"
	Parameters []Parameter
}

// PathItem is one entry of the paths object.
type PathItem struct {
	Path string
	// Methods lists every declared method key in document order.
	Methods []string
	// Get is the GET operation, nil when the path declares none.
	Get *Operation
}

// Document is the parsed input. All slices follow document order.
type Document struct {
	Servers []string
	Schemas []NamedSchema
	Paths   []PathItem
}

// ServerURL returns the first declared server URL, or "" when none is declared.
func (d *Document) ServerURL() string {
	if d == nil || len(d.Servers) == 0 {
		return ""
	}
	return d.Servers[0]
}

// Schema returns the named component schema, or nil.
func (d *Document) Schema(name string) *Fragment {
	if d == nil {
		return nil
	}
	for _, s := range d.Schemas {
		if s.Name == name {
			return s.Schema
		}
	}
	return nil
}
