// Package naming converts between the identifier styles used by the
// generators: snake_case and camelCase source names, PascalCase exported
// names, and snake_case protobuf field names.
package naming

import (
	"strings"
	"unicode"
)

// Common initialisms kept fully uppercase in exported Go identifiers.
var initialisms = map[string]string{
	"id":   "ID",
	"url":  "URL",
	"uri":  "URI",
	"api":  "API",
	"uuid": "UUID",
	"json": "JSON",
	"xml":  "XML",
	"html": "HTML",
	"sql":  "SQL",
	"ip":   "IP",
	"http": "HTTP",
}

// splitWords breaks an identifier on underscores, hyphens, spaces, and
// lower-to-upper case boundaries.
func splitWords(s string) []string {
	var words []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			words = append(words, cur.String())
			cur.Reset()
		}
	}
	runes := []rune(s)
	for i, r := range runes {
		switch {
		case r == '_' || r == '-' || r == ' ' || r == '.':
			flush()
		case unicode.IsUpper(r) && i > 0 && (unicode.IsLower(runes[i-1]) ||
			(i+1 < len(runes) && unicode.IsLower(runes[i+1]))):
			flush()
			cur.WriteRune(r)
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return words
}

// ToPascalCase converts any identifier style to an exported PascalCase
// name. Leading digits are prefixed with an underscore so the result is
// always a legal identifier.
func ToPascalCase(s string) string {
	var b strings.Builder
	for _, w := range splitWords(s) {
		lower := strings.ToLower(w)
		if up, ok := initialisms[lower]; ok {
			b.WriteString(up)
			continue
		}
		b.WriteString(strings.ToUpper(lower[:1]))
		b.WriteString(lower[1:])
	}
	out := b.String()
	if out == "" {
		return "Field"
	}
	if out[0] >= '0' && out[0] <= '9' {
		out = "_" + out
	}
	return out
}

// ToSnakeCase converts any identifier style to snake_case.
func ToSnakeCase(s string) string {
	words := splitWords(s)
	for i, w := range words {
		words[i] = strings.ToLower(w)
	}
	return strings.Join(words, "_")
}

// ToLowerCamel converts any identifier style to lowerCamelCase.
func ToLowerCamel(s string) string {
	pascal := ToPascalCase(s)
	if pascal == "" {
		return pascal
	}
	// Lowercase the leading word, keeping a leading initialism whole.
	for _, up := range initialisms {
		if strings.HasPrefix(pascal, up) {
			return strings.ToLower(up) + pascal[len(up):]
		}
	}
	return strings.ToLower(pascal[:1]) + pascal[1:]
}
