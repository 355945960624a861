package zdbql

import "strings"

// escapeOrder is the fixed order in which reserved characters are escaped.
// Backslash is not reserved, so substitutions for earlier entries are never
// re-escaped by later ones.
var escapeOrder = []string{
	"\"", ":", "*", "~", "?",
	"!", "%", "&", "(", ")", ",",
	"<", "=", ">", "[", "]", "^",
	"{", "}", " ", "\r", "\n",
	"\t", "\f",
}

// escapeTokens escapes dialect-reserved characters in a free-text value.
// Apostrophes are stripped outright first: they terminate the enclosing SQL
// string and have no working escape in this syntax, so the loss is accepted.
func escapeTokens(s string) string {
	s = strings.ReplaceAll(s, "'", "")
	for _, tok := range escapeOrder {
		s = strings.ReplaceAll(s, tok, "\\"+tok)
	}
	return s
}
