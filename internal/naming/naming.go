// Package naming converts JSON keys into Dart identifiers.
package naming

import (
	"strings"

	"github.com/iancoleman/strcase"
	"github.com/mcncl/jsontodart/internal/config"
)

// FormatField converts a JSON key into a field name under the given convention.
func FormatField(jsonKey string, convention config.NamingConvention) string {
	var name string
	switch convention {
	case config.NamingSnakeCase:
		name = strcase.ToSnake(jsonKey)
	case config.NamingPascalCase:
		name = strcase.ToCamel(jsonKey)
	default:
		if isLowerCamel(jsonKey) {
			return Identifier(jsonKey)
		}
		name = strcase.ToLowerCamel(jsonKey)
	}

	// Purely symbolic keys such as "_" or "$" convert to nothing.
	if name == "" {
		return "field"
	}
	return Identifier(name)
}

// reservedWords cannot name a Dart field or parameter.
var reservedWords = map[string]struct{}{
	"assert": {}, "break": {}, "case": {}, "catch": {}, "class": {}, "const": {},
	"continue": {}, "default": {}, "do": {}, "else": {}, "enum": {}, "extends": {},
	"false": {}, "final": {}, "finally": {}, "for": {}, "if": {}, "in": {},
	"is": {}, "new": {}, "null": {}, "rethrow": {}, "return": {}, "super": {},
	"switch": {}, "this": {}, "throw": {}, "true": {}, "try": {}, "var": {},
	"void": {}, "while": {}, "with": {},
}

// Identifier makes name usable as a Dart identifier. Reserved words and names
// starting with a digit get a '$' prefix, which keeps them public.
func Identifier(name string) string {
	if name == "" {
		return name
	}
	if _, reserved := reservedWords[name]; reserved || ('0' <= name[0] && name[0] <= '9') {
		return "$" + name
	}
	return name
}

// isLowerCamel reports whether key already reads as camelCase: a lowercase ASCII
// letter followed by letters and digits only. Such keys keep their acronyms and digits.
func isLowerCamel(key string) bool {
	if key == "" || key[0] < 'a' || key[0] > 'z' {
		return false
	}
	for i := 1; i < len(key); i++ {
		c := key[i]
		if !('a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9') {
			return false
		}
	}
	return true
}

// ClassName derives a class name from a JSON key: the camel-cased key, capitalized.
func ClassName(jsonKey string) string {
	name := strcase.ToCamel(jsonKey)
	if name == "" {
		return "Field"
	}
	return Identifier(name)
}

// FileStem returns the snake_case form used for part directives and file names.
func FileStem(className string) string {
	stem := strcase.ToSnake(className)
	if stem == "" {
		return "generated_class"
	}
	return stem
}

// singularize attempts to convert a plural name to a singular one.
var knownSingulars = map[string]string{
	"series":    "series",
	"status":    "status",
	"analysis":  "analysis",
	"species":   "species",
	"news":      "news",
	"goods":     "goods",
	"children":  "child",
	"people":    "person",
	"men":       "man",
	"women":     "woman",
	"teeth":     "tooth",
	"feet":      "foot",
	"mice":      "mouse",
	"geese":     "goose",
	"data":      "data",
	"media":     "media",
	"addresses": "address",
}

// Singularize converts a plural class name to its singular form using a few
// English rules. Unknown shapes are returned unchanged.
func Singularize(plural string) string {
	if singular, ok := knownSingulars[strings.ToLower(plural)]; ok {
		// Preserve original casing if the first letter was capitalized
		if len(plural) > 0 && strings.ToUpper(plural[:1]) == plural[:1] && len(singular) > 0 {
			return strings.ToUpper(singular[:1]) + singular[1:]
		}
		return singular
	}

	lowerPlural := strings.ToLower(plural)

	if strings.HasSuffix(lowerPlural, "ies") && len(lowerPlural) > 3 {
		return plural[:len(plural)-3] + "y"
	}

	// Avoid removing 's' from words like 'bus', 'gas', 'class', 'address'
	if strings.HasSuffix(lowerPlural, "ss") ||
		strings.HasSuffix(lowerPlural, "us") ||
		strings.HasSuffix(lowerPlural, "is") {
		return plural
	}

	if strings.HasSuffix(lowerPlural, "s") && len(lowerPlural) > 1 {
		return plural[:len(plural)-1]
	}

	return plural
}

// DartString quotes s as a single-quoted Dart string literal.
func DartString(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `'`, `\'`, `$`, `\$`, "\n", `\n`, "\r", `\r`)
	return "'" + r.Replace(s) + "'"
}
