package types

// Operator represents abstract comparison-operator tokens. The dialect
// syntax each token maps to is owned by the operator table in the root
// package, not by these values.
type Operator string

const (
	// Basic comparison operators.
	EQ Operator = "="
	NE Operator = "!="
	GT Operator = ">"
	GE Operator = ">="
	LT Operator = "<"
	LE Operator = "<="

	// Full-text operators.
	Contains Operator = "CONTAINS"
	Regex    Operator = "REGEX"

	// Membership and range operators.
	IN      Operator = "IN"
	NotIn   Operator = "NOT IN"
	Between Operator = "BETWEEN"
)
