package dartgen

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/discoveregypt/apigen/internal/openapi"
)

const serviceClassSuffix = "GeneratedApi"

// nonAlphanumRe matches runs of non-alphanumeric characters.
var nonAlphanumRe = regexp.MustCompile(`[^a-zA-Z0-9]+`)

// dartIdentRe matches a Dart identifier.
var dartIdentRe = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// MethodName returns the operationId, or a name synthesized from method and
// path when the operation declares none.
// GET /users/{id} → getUsers_id
func MethodName(op *openapi.Operation) string {
	if op.ID != "" {
		return op.ID
	}
	cleaned := strings.NewReplacer(
		"/", "_",
		"{", "",
		"}", "",
		"-", "_",
	).Replace(op.Path)
	cleaned = strings.Trim(cleaned, "_")
	return strings.ToLower(op.Method) + capitalize(cleaned)
}

// ServiceClassFromPath derives the service class name from the input file name.
// A trailing "api" word is folded into the suffix.
// "docs/openapi/discovery_api.openapi.json" → "DiscoveryGeneratedApi"
func ServiceClassFromPath(path string) string {
	stem := filepath.Base(path)
	if i := strings.Index(stem, "."); i >= 0 {
		stem = stem[:i]
	}
	words := strings.Fields(nonAlphanumRe.ReplaceAllString(stem, " "))
	for len(words) > 0 && strings.EqualFold(words[len(words)-1], "api") {
		words = words[:len(words)-1]
	}

	title := cases.Title(language.Und)
	var sb strings.Builder
	for _, w := range words {
		sb.WriteString(title.String(w))
	}
	sb.WriteString(serviceClassSuffix)

	name := sb.String()
	if !dartIdentRe.MatchString(name) {
		return serviceClassSuffix
	}
	return name
}

// FileName returns the snake_case Dart file name for a class.
// "DiscoveryGeneratedApi" → "discovery_generated_api.dart"
func FileName(class string) string {
	runes := []rune(class)
	var sb strings.Builder
	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				sb.WriteByte('_')
			}
		}
		sb.WriteRune(r)
	}
	out := nonAlphanumRe.ReplaceAllString(sb.String(), "_")
	out = strings.Trim(out, "_")
	if out == "" {
		out = "service"
	}
	return cases.Lower(language.Und).String(out) + ".dart"
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
