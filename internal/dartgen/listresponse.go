package dartgen

import (
	"fmt"
	"strings"
)

// RenderListResponse emits a wrapper class holding a single required `items`
// list of itemType.
func RenderListResponse(name, itemType string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "class %s {\n", name)
	fmt.Fprintf(&sb, "  final List<%s> items;\n", itemType)
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "  const %s({required this.items});\n", name)
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "  factory %s.fromJson(Map<String, dynamic> json) {\n", name)
	fmt.Fprintf(&sb, "    return %s(\n", name)
	sb.WriteString("      items: (json['items'] as List<dynamic>? ?? const [])\n")
	fmt.Fprintf(&sb, "          .map((e) => %s.fromJson(e as Map<String, dynamic>))\n", itemType)
	sb.WriteString("          .toList(growable: false),\n")
	sb.WriteString("    );\n")
	sb.WriteString("  }\n")
	sb.WriteString("}")
	return sb.String()
}
