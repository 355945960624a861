package types

// Clause represents one node of a predicate expression tree.
// This is exported from the internal package so subpackages can use it,
// but external users go through the validated root constructors.
type Clause interface {
	IsClause()
}

// LogicOperator represents how clauses are combined.
type LogicOperator string

const (
	AND LogicOperator = "and"
	OR  LogicOperator = "or"
)

// Comparison represents a binary predicate over a column.
// Left must resolve to a ColumnRef; the compiler rejects anything else.
type Comparison struct {
	Left  Clause
	Op    Operator
	Right Clause
}

// BooleanGroup represents an n-ary and/or combination of sub-clauses.
// Child order is preserved in the rendered output.
type BooleanGroup struct {
	Logic   LogicOperator
	Clauses []Clause
}

// Grouping represents a parenthesized scalar list used for membership
// predicates. Elements must be text or integer literals.
type Grouping struct {
	Elems []Literal
}

// TextFragment is pass-through query text inserted verbatim.
type TextFragment struct {
	Text string
}

// Bool is a constant true/false clause.
type Bool struct {
	Value bool
}

// Null is the SQL NULL marker.
type Null struct{}

// Document wraps a structured query object for the count and JSON-query
// compilers. It is not renderable inside a filter expression.
type Document struct {
	Value any
}

// Implement the Clause interface.
func (Literal) IsClause()      {}
func (Bool) IsClause()         {}
func (Null) IsClause()         {}
func (TextFragment) IsClause() {}
func (ColumnRef) IsClause()    {}
func (Comparison) IsClause()   {}
func (BooleanGroup) IsClause() {}
func (Grouping) IsClause()     {}
func (Table) IsClause()        {}
func (Document) IsClause()     {}
