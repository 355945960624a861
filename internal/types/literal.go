package types

// LiteralKind tags the scalar shape carried by a Literal.
type LiteralKind string

const (
	// LiteralText is a free-text value, escaped and double-quoted on render.
	LiteralText LiteralKind = "text"
	// LiteralInt is an integer value, rendered as bare decimal digits.
	LiteralInt LiteralKind = "int"
	// LiteralRegex is a regular-expression pattern, quoted verbatim so its
	// metacharacters survive.
	LiteralRegex LiteralKind = "regex"
	// LiteralRaw is a pre-validated fragment emitted without escaping or
	// quoting.
	LiteralRaw LiteralKind = "raw"
)

// Literal represents a scalar value in the expression tree.
type Literal struct {
	Kind LiteralKind
	Text string // payload for text, regex, and raw kinds
	Int  int64  // payload for the int kind
}
