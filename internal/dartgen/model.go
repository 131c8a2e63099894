package dartgen

import (
	"fmt"
	"strings"

	"github.com/discoveregypt/apigen/internal/openapi"
)

// RenderModel emits a Dart data class for an object schema: one field, one
// constructor argument, one fromJson entry and one toJson entry per property,
// in declaration order.
func RenderModel(name string, schema *openapi.Fragment) string {
	var fields, ctorArgs, fromJSON, toJSON []string

	var props []openapi.Property
	if schema != nil {
		props = schema.Properties
	}
	for _, p := range props {
		required := schema.IsRequired(p.Name)
		d := Describe(p.Schema, required)

		fields = append(fields, fmt.Sprintf("  final %s %s;", d.Type(), p.Name))
		if required {
			ctorArgs = append(ctorArgs, fmt.Sprintf("    required this.%s,", p.Name))
		} else {
			ctorArgs = append(ctorArgs, fmt.Sprintf("    this.%s,", p.Name))
		}
		fromJSON = append(fromJSON, fmt.Sprintf("      %s: %s,", p.Name, fromJSONExpr(p.Name, d)))
		toJSON = append(toJSON, fmt.Sprintf("      %s: %s,", dartString(p.Name), p.Name))
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "class %s {\n", name)
	writeLines(&sb, fields)
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "  const %s({\n", name)
	writeLines(&sb, ctorArgs)
	sb.WriteString("  });\n")
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "  factory %s.fromJson(Map<String, dynamic> json) {\n", name)
	fmt.Fprintf(&sb, "    return %s(\n", name)
	writeLines(&sb, fromJSON)
	sb.WriteString("    );\n")
	sb.WriteString("  }\n")
	sb.WriteString("\n")
	sb.WriteString("  Map<String, dynamic> toJson() {\n")
	sb.WriteString("    return {\n")
	writeLines(&sb, toJSON)
	sb.WriteString("    };\n")
	sb.WriteString("  }\n")
	sb.WriteString("}")
	return sb.String()
}

// fromJSONExpr returns the Dart expression reading key from `json`.
func fromJSONExpr(key string, d Descriptor) string {
	src := "json[" + dartString(key) + "]"
	switch d.Shape {
	case ShapeList:
		// Absent lists become empty, never null, even when required.
		return fmt.Sprintf("(%s as List<dynamic>? ?? const []).map((e) => %s).toList(growable: false)",
			src, elemExpr(*d.Elem, "e"))
	case ShapeReference:
		return fmt.Sprintf("%s == null ? null : %s.fromJson(%s as Map<String, dynamic>)", src, d.Name, src)
	}
	if d.Name == "double" {
		if d.Nullable {
			return fmt.Sprintf("(%s as num?)?.toDouble()", src)
		}
		return fmt.Sprintf("(%s as num).toDouble()", src)
	}
	return fmt.Sprintf("(%s as %s)", src, d.Type())
}

// elemExpr converts one decoded list element named v.
func elemExpr(d Descriptor, v string) string {
	switch d.Shape {
	case ShapeReference:
		return fmt.Sprintf("%s.fromJson(%s as Map<String, dynamic>)", d.Name, v)
	case ShapeList:
		return fmt.Sprintf("(%s as List<dynamic>).map((e) => %s).toList(growable: false)", v, elemExpr(*d.Elem, "e"))
	}
	return fmt.Sprintf("%s as %s", v, d.Name)
}

func writeLines(sb *strings.Builder, lines []string) {
	for _, l := range lines {
		sb.WriteString(l)
		sb.WriteString("\n")
	}
}

// dartString quotes s as a single-quoted Dart string literal.
func dartString(s string) string {
	return "'" + dartEscape(s) + "'"
}

// dartEscape escapes s for use inside a single-quoted Dart string literal.
func dartEscape(s string) string {
	return dartEscaper.Replace(s)
}

var dartEscaper = strings.NewReplacer(
	`\`, `\\`,
	`'`, `\'`,
	`$`, `\$`,
	"\n", `\n`,
	"\r", `\r`,
)
