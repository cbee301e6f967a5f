package match

import (
	"strings"
	"unicode"
)

// NormalizeIdent folds an identifier for fuzzy comparison: separators
// (_, -, space) are dropped and the result is lower case. "OrderID",
// "order_id" and "orderId" all become "orderid".
func NormalizeIdent(s string) string {
	var sb strings.Builder

	sb.Grow(len(s))

	for _, r := range s {
		if !isSeparator(r) {
			sb.WriteRune(unicode.ToLower(r))
		}
	}

	return sb.String()
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == ' '
}
