package dartgen

import (
	"fmt"
	"strings"

	"github.com/discoveregypt/apigen/internal/openapi"
)

// RenderService emits the service class: a baseUrl holder with one
// `{operationId}Uri` method per GET operation, in path order.
func RenderService(doc *openapi.Document, className string) string {
	var methods []string
	for _, item := range doc.Paths {
		if item.Get == nil {
			continue
		}
		methods = append(methods, renderURIMethod(item.Get))
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "class %s {\n", className)
	sb.WriteString("  final String baseUrl;\n")
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "  const %s({this.baseUrl = %s});\n", className, dartString(doc.ServerURL()))
	for _, m := range methods {
		sb.WriteString("\n")
		sb.WriteString(m)
	}
	sb.WriteString("}")
	return sb.String()
}

// renderURIMethod emits one URI builder. Every declared parameter becomes a
// nullable named argument that lands in the query only when non-null. Path
// templates are concatenated verbatim.
func renderURIMethod(op *openapi.Operation) string {
	var args []string
	var sb strings.Builder
	for _, p := range op.Parameters {
		args = append(args, fmt.Sprintf("%s? %s", TypeName(p.Schema), p.Name))
	}

	params := "()"
	if len(args) > 0 {
		params = "({" + strings.Join(args, ", ") + "})"
	}

	fmt.Fprintf(&sb, "  Uri %sUri%s {\n", MethodName(op), params)
	sb.WriteString("    final queryParams = <String, String>{};\n")
	for _, p := range op.Parameters {
		fmt.Fprintf(&sb, "    if (%s != null) queryParams[%s] = %s.toString();\n", p.Name, dartString(p.Name), p.Name)
	}
	sb.WriteString("    final base = Uri.parse(baseUrl);\n")
	fmt.Fprintf(&sb, "    final normalizedPath = ('${base.path.endsWith('/') ? base.path.substring(0, base.path.length - 1) : base.path}%s').replaceAll('//', '/');\n",
		dartEscape(op.Path))
	sb.WriteString("    return base.replace(path: normalizedPath, queryParameters: queryParams.isEmpty ? null : queryParams);\n")
	sb.WriteString("  }\n")
	return sb.String()
}
