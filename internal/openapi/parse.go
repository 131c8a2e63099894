package openapi

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

var (
	// ErrInvalidJSON is returned when the input is not a single well-formed JSON value.
	ErrInvalidJSON = errors.New("invalid JSON")
	// ErrNotObject is returned when the top-level JSON value is not an object.
	ErrNotObject = errors.New("top-level value is not an object")
)

// ParseFile reads and parses an OpenAPI JSON file. The raw bytes are returned
// alongside the document so callers can digest exactly what was parsed.
func ParseFile(path string) (*Document, []byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading OpenAPI file: %w", err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, data, fmt.Errorf("parsing %s: %w", path, err)
	}
	return doc, data, nil
}

// Parse parses OpenAPI JSON bytes. Only servers, components.schemas and paths
// are consulted; any of them may be absent.
func Parse(data []byte) (*Document, error) {
	root, err := readValue(data)
	if err != nil {
		return nil, err
	}
	if root.Kind() != '{' {
		return nil, ErrNotObject
	}

	top, err := members(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}

	doc := &Document{}

	if raw, ok := lookup(top, "servers"); ok {
		servers, _ := elements(raw)
		for _, s := range servers {
			ms, _ := members(s)
			url, _ := lookup(ms, "url")
			doc.Servers = append(doc.Servers, stringValue(url))
		}
	}

	if raw, ok := lookup(top, "components"); ok {
		comps, _ := members(raw)
		if schemasRaw, ok := lookup(comps, "schemas"); ok {
			schemas, _ := members(schemasRaw)
			for _, s := range schemas {
				doc.Schemas = append(doc.Schemas, NamedSchema{
					Name:   s.name,
					Schema: parseFragment(s.value),
				})
			}
		}
	}

	if raw, ok := lookup(top, "paths"); ok {
		paths, _ := members(raw)
		for _, p := range paths {
			doc.Paths = append(doc.Paths, parsePathItem(p.name, p.value))
		}
	}

	return doc, nil
}

// ParseFragment parses a standalone JSON schema fragment.
func ParseFragment(data []byte) (*Fragment, error) {
	raw, err := readValue(data)
	if err != nil {
		return nil, err
	}
	return parseFragment(raw), nil
}

// readValue decodes exactly one JSON value. Duplicate member names are
// accepted; members() keeps the last value for each name.
func readValue(data []byte) (jsontext.Value, error) {
	dec := jsontext.NewDecoder(bytes.NewReader(data), jsontext.AllowDuplicateNames(true))
	v, err := dec.ReadValue()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	if _, err := dec.ReadToken(); err != io.EOF {
		return nil, fmt.Errorf("%w: unexpected data after top-level value", ErrInvalidJSON)
	}
	return v, nil
}

func parsePathItem(path string, raw jsontext.Value) PathItem {
	item := PathItem{Path: path}
	ms, _ := members(raw)
	for _, m := range ms {
		if !isHTTPMethod(m.name) {
			continue
		}
		item.Methods = append(item.Methods, m.name)
		if m.name == "get" {
			item.Get = parseOperation(m.value, m.name, path)
		}
	}
	return item
}

func parseOperation(raw jsontext.Value, method, path string) *Operation {
	op := &Operation{Method: method, Path: path}
	ms, _ := members(raw)
	if v, ok := lookup(ms, "operationId"); ok {
		op.ID = stringValue(v)
	}
	if v, ok := lookup(ms, "parameters"); ok {
		params, _ := elements(v)
		for _, p := range params {
			pms, _ := members(p)
			name, ok := lookup(pms, "name")
			if !ok {
				// Parameter references are not resolved.
				continue
			}
			param := Parameter{Name: stringValue(name)}
			if in, ok := lookup(pms, "in"); ok {
				param.In = stringValue(in)
			}
			if schema, ok := lookup(pms, "schema"); ok {
				param.Schema = parseFragment(schema)
			} else {
				param.Schema = StringFragment()
			}
			op.Parameters = append(op.Parameters, param)
		}
	}
	return op
}

// parseFragment resolves the variant of a schema node. Anything that is not an
// object degrades to a primitive with no type tag. An "items" member is kept on
// every non-reference node so that untyped list wrappers are still recognized.
func parseFragment(raw jsontext.Value) *Fragment {
	ms, _ := members(raw)

	if ref, ok := lookup(ms, "$ref"); ok {
		return &Fragment{Kind: KindReference, Ref: refName(stringValue(ref))}
	}

	f := &Fragment{Kind: KindPrimitive}
	if t, ok := lookup(ms, "type"); ok {
		f.Type = stringValue(t)
	}
	if items, ok := lookup(ms, "items"); ok {
		f.Items = parseFragment(items)
	}

	switch f.Type {
	case "array":
		f.Kind = KindArray
		if f.Items == nil {
			f.Items = StringFragment()
		}
		return f
	case "object":
		f.Kind = KindObject
	}

	if props, ok := lookup(ms, "properties"); ok {
		pms, _ := members(props)
		for _, p := range pms {
			f.Properties = append(f.Properties, Property{
				Name:   p.name,
				Schema: parseFragment(p.value),
			})
		}
	}
	if req, ok := lookup(ms, "required"); ok {
		var required []string
		if json.Unmarshal(req, &required) == nil {
			f.Required = required
		}
	}
	return f
}

// refName returns the last path segment of a $ref, verbatim.
// "#/components/schemas/Item" → "Item"
func refName(ref string) string {
	return ref[strings.LastIndex(ref, "/")+1:]
}

func isHTTPMethod(m string) bool {
	switch m {
	case "get", "put", "post", "delete", "options", "head", "patch", "trace":
		return true
	}
	return false
}

type member struct {
	name  string
	value jsontext.Value
}

// members decodes the members of a JSON object in declaration order.
// A repeated name keeps its first position and takes the last value.
// A value that is not an object has no members.
func members(raw jsontext.Value) ([]member, error) {
	if raw.Kind() != '{' {
		return nil, nil
	}
	dec := jsontext.NewDecoder(bytes.NewReader(raw), jsontext.AllowDuplicateNames(true))
	if _, err := dec.ReadToken(); err != nil {
		return nil, err
	}
	var out []member
	for dec.PeekKind() == '"' {
		name, err := dec.ReadToken()
		if err != nil {
			return nil, err
		}
		val, err := dec.ReadValue()
		if err != nil {
			return nil, err
		}
		m := member{name: name.String(), value: val.Clone()}
		if i := indexOf(out, m.name); i >= 0 {
			out[i] = m
		} else {
			out = append(out, m)
		}
	}
	if _, err := dec.ReadToken(); err != nil {
		return nil, err
	}
	return out, nil
}

// elements decodes the elements of a JSON array in order.
// A value that is not an array has no elements.
func elements(raw jsontext.Value) ([]jsontext.Value, error) {
	if raw.Kind() != '[' {
		return nil, nil
	}
	dec := jsontext.NewDecoder(bytes.NewReader(raw))
	if _, err := dec.ReadToken(); err != nil {
		return nil, err
	}
	var out []jsontext.Value
	for dec.PeekKind() != ']' {
		val, err := dec.ReadValue()
		if err != nil {
			return nil, err
		}
		out = append(out, val.Clone())
	}
	if _, err := dec.ReadToken(); err != nil {
		return nil, err
	}
	return out, nil
}

func indexOf(ms []member, name string) int {
	for i, m := range ms {
		if m.name == name {
			return i
		}
	}
	return -1
}

func lookup(ms []member, name string) (jsontext.Value, bool) {
	if i := indexOf(ms, name); i >= 0 {
		return ms[i].value, true
	}
	return nil, false
}

// stringValue returns the value of a JSON string, or "" for any other kind.
func stringValue(raw jsontext.Value) string {
	if raw.Kind() != '"' {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}
