package dartgen

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/discoveregypt/apigen/internal/buildcache"
	"github.com/discoveregypt/apigen/internal/diagnostic"
	"github.com/discoveregypt/apigen/internal/openapi"
)

// ModelsFileName is the generated models file.
const ModelsFileName = "models.dart"

// ErrStrict is returned when strict mode turns diagnostics into a failed run.
var ErrStrict = errors.New("generation aborted by strict mode")

// Options configures rendering and generation.
type Options struct {
	// ServiceClass names the service class. Derived from the input path when empty.
	ServiceClass string
	// Source is printed in the file header. Defaults to the input path, relative
	// to the working directory.
	Source string
	// Diagnostics receives tolerated irregularities. May be nil.
	Diagnostics *diagnostic.Collector
	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// Artifacts holds the rendered file contents.
type Artifacts struct {
	Models  string
	Service string
}

// File describes one written output file.
type File struct {
	Name    string
	Path    string
	Changed bool
}

// Result summarizes a Generate run.
type Result struct {
	Digest       string
	ServiceClass string
	Classes      int
	Operations   int
	Files        []File
}

func header(source string) []string {
	return []string{
		"// GENERATED CODE - DO NOT MODIFY BY HAND.",
		"// Source: " + source,
		"",
	}
}

// Render produces both source files in memory. Output depends only on doc and
// opts, so identical input yields byte-identical output.
func Render(doc *openapi.Document, opts Options) Artifacts {
	models := header(opts.Source)
	for _, c := range Classify(doc) {
		models = append(models, c.Render(), "")
	}

	class := opts.ServiceClass
	if class == "" {
		class = serviceClassSuffix
	}
	service := append(header(opts.Source), RenderService(doc, class), "")

	return Artifacts{
		Models:  strings.Join(models, "\n"),
		Service: strings.Join(service, "\n"),
	}
}

// Generate reads the OpenAPI document at inputPath and writes the models file,
// the service file and the digest file into outputDir. Nothing is written when
// the input cannot be parsed.
func Generate(inputPath, outputDir string, opts *Options) (*Result, error) {
	var o Options
	if opts != nil {
		o = *opts
	}
	if o.ServiceClass == "" {
		o.ServiceClass = ServiceClassFromPath(inputPath)
	}
	if o.Source == "" {
		o.Source = defaultSource(inputPath)
	}
	logger := o.Logger
	if logger == nil {
		logger = slog.Default()
	}

	doc, raw, err := openapi.ParseFile(inputPath)
	if err != nil {
		return nil, fmt.Errorf("parsing: %w", err)
	}

	Inspect(doc, o.Diagnostics)
	if o.Diagnostics.HasErrors() {
		return nil, fmt.Errorf("%w: %s", ErrStrict, o.Diagnostics.Summary())
	}

	artifacts := Render(doc, o)
	digest := buildcache.Digest(raw)

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	res := &Result{
		Digest:       digest,
		ServiceClass: o.ServiceClass,
		Classes:      len(Classify(doc)),
		Operations:   countOperations(doc),
	}

	outputs := []struct {
		name string
		data []byte
	}{
		{ModelsFileName, []byte(artifacts.Models)},
		{FileName(o.ServiceClass), []byte(artifacts.Service)},
		{buildcache.DigestFileName, buildcache.DigestFile(digest)},
	}
	for _, out := range outputs {
		path := filepath.Join(outputDir, out.name)
		changed, err := buildcache.WriteFile(path, out.data)
		if err != nil {
			return nil, err
		}
		logger.Debug("wrote generated file", "path", path, "changed", changed)
		res.Files = append(res.Files, File{Name: out.name, Path: path, Changed: changed})
	}

	return res, nil
}

// defaultSource keeps host-specific directories out of the header. A relative
// input path is used as given; an absolute one is made relative to the working
// directory when it lies below it, and reduced to its file name otherwise.
func defaultSource(inputPath string) string {
	if !filepath.IsAbs(inputPath) {
		return filepath.ToSlash(inputPath)
	}
	if cwd, err := os.Getwd(); err == nil {
		rel, err := filepath.Rel(cwd, inputPath)
		if err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return filepath.ToSlash(rel)
		}
	}
	return filepath.Base(inputPath)
}

// OutputNames lists the files Generate writes for a service class.
func OutputNames(serviceClass string) []string {
	return []string{ModelsFileName, FileName(serviceClass), buildcache.DigestFileName}
}

func countOperations(doc *openapi.Document) int {
	n := 0
	for _, item := range doc.Paths {
		if item.Get != nil {
			n++
		}
	}
	return n
}

// Inspect reports what generation silently tolerates. It never changes the
// rendered output.
func Inspect(doc *openapi.Document, c *diagnostic.Collector) {
	if c == nil || doc == nil {
		return
	}

	for _, s := range doc.Schemas {
		loc := []string{"components", "schemas", s.Name}
		if _, ok := ListItemType(s.Schema); ok {
			// Only the element reference of a list response is rendered.
			inspectFragment(c, doc, s.Schema.Property("items").Items, append(loc, "properties", "items", "items"))
			continue
		}
		if !IsModel(s.Schema) {
			c.Info(diagnostic.CategorySchemaSkipped, diagnostic.Pointer(loc...),
				fmt.Sprintf("schema %q is not an object, no class generated", s.Name))
			continue
		}
		for _, p := range s.Schema.Properties {
			inspectFragment(c, doc, p.Schema, append(loc, "properties", p.Name))
		}
	}

	for _, item := range doc.Paths {
		for _, m := range item.Methods {
			if m != "get" {
				c.Info(diagnostic.CategoryMethodIgnored, diagnostic.Pointer("paths", item.Path, m),
					fmt.Sprintf("%s operations are not generated", strings.ToUpper(m)))
			}
		}
		op := item.Get
		if op == nil {
			continue
		}
		loc := []string{"paths", item.Path, "get"}
		if op.ID == "" {
			c.WarnWithHint(diagnostic.CategoryOperationUnnamed, diagnostic.Pointer(loc...),
				fmt.Sprintf("operation has no operationId, using %q", MethodName(op)),
				"declare an operationId to control the generated method name")
		}
		for i, p := range op.Parameters {
			ploc := append(append([]string(nil), loc...), "parameters", strconv.Itoa(i))
			if p.In != "" && p.In != "query" {
				c.Info(diagnostic.CategoryParameterLocation, diagnostic.Pointer(ploc...),
					fmt.Sprintf("%s parameter %q is sent as a query parameter", p.In, p.Name))
			}
			inspectFragment(c, doc, p.Schema, append(ploc, "schema"))
		}
	}
}

func inspectFragment(c *diagnostic.Collector, doc *openapi.Document, f *openapi.Fragment, loc []string) {
	if f == nil {
		return
	}
	// Copy so sibling calls don't share a backing array.
	loc = append([]string(nil), loc...)
	switch f.Kind {
	case openapi.KindReference:
		if doc.Schema(f.Ref) == nil {
			c.Warn(diagnostic.CategoryDanglingRef, diagnostic.Pointer(loc...),
				fmt.Sprintf("reference %q does not name a component schema", f.Ref))
		}
	case openapi.KindArray:
		inspectFragment(c, doc, f.Items, append(loc, "items"))
	case openapi.KindObject:
		c.WarnWithHint(diagnostic.CategoryTypeUnsupported, diagnostic.Pointer(loc...),
			"inline object schema is generated as String",
			"move the object to components.schemas and reference it with $ref")
	default:
		if _, ok := primitiveTypes[f.Type]; ok {
			return
		}
		msg := fmt.Sprintf("type %q is not supported, using String", f.Type)
		if f.Type == "" {
			msg = "no type declared, using String"
		}
		c.Warn(diagnostic.CategoryTypeUnsupported, diagnostic.Pointer(loc...), msg)
	}
}
