package gen

import (
	"go/token"
	"strings"
	"unicode"

	"pds-generator/internal/schema"
)

// lowerIdent lowercases the leading word or initialism of an exported
// identifier: "UUID" -> "uuid", "ItemRef" -> "itemRef", "FVec3" -> "fVec3".
func lowerIdent(s string) string {
	r := []rune(s)

	n := 0
	for n < len(r) && unicode.IsUpper(r[n]) {
		n++
	}

	switch {
	case n == 0:
		return s
	case n == len(r):
		return strings.ToLower(s)
	case n > 1:
		n--
	}

	for i := range n {
		r[i] = unicode.ToLower(r[i])
	}

	return string(r)
}

// snakeCase turns an identifier into a file name stem: "TestEntityB" ->
// "test_entity_b", "HTTPServer" -> "http_server".
func snakeCase(s string) string {
	r := []rune(s)

	var sb strings.Builder

	for i, c := range r {
		if unicode.IsUpper(c) && i > 0 {
			prev := r[i-1]
			nextLower := i+1 < len(r) && unicode.IsLower(r[i+1])

			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				sb.WriteByte('_')
			}
		}

		sb.WriteRune(unicode.ToLower(c))
	}

	return sb.String()
}

// packageName lowercases name into a Go package name, avoiding keywords.
func packageName(name string) string {
	p := strings.ToLower(name)
	if token.IsKeyword(p) {
		p += "_"
	}

	return p
}

func versionPackage(v *schema.Version) string {
	return packageName(v.Name())
}

// VersionPackage returns the name, and last import path element, of the
// package generated for v.
func VersionPackage(v *schema.Version) string {
	return versionPackage(v)
}
