package types

// Direction represents sort direction in an order specification.
type Direction string

const (
	ASC  Direction = "asc"
	DESC Direction = "desc"
)

// OrderBy represents an order specification: either relevance-score
// ordering (Score set, Column ignored) or a named search-indexed column.
type OrderBy struct {
	Column    ColumnRef
	Score     bool
	Direction Direction
}

// LimitSpec carries the pagination and ordering attached to a query.
type LimitSpec struct {
	OrderBy OrderBy
	Offset  int
	Limit   int
}
