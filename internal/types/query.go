package types

import "fmt"

// Query is the tree root for one compilation: an ordered list of top-level
// clauses plus an optional limit/order specification. Trees are built by
// the host construction layer and never mutated by the compiler.
type Query struct {
	Clauses []Clause
	Limit   *LimitSpec
}

// WithLimit attaches an order/paging specification to the query and
// returns the query for chaining. Replaces any previous specification.
func (q *Query) WithLimit(order OrderBy, offset, limit int) *Query {
	q.Limit = &LimitSpec{OrderBy: order, Offset: offset, Limit: limit}
	return q
}

// Validate performs structural validation on the query tree.
func (q *Query) Validate() error {
	if q == nil || len(q.Clauses) == 0 {
		return ErrEmptyFilter
	}
	for i, c := range q.Clauses {
		if c == nil {
			return InvalidShapeError{Reason: fmt.Sprintf("clause %d is nil", i)}
		}
	}
	return nil
}
