package types

// ColumnRef represents a reference to a mapped column bound to a table.
// Indexed marks columns that participate in the search index; only those
// may be named in an order specification.
type ColumnRef struct {
	Table   string
	Name    string
	Indexed bool
}

// AsIndexed returns a copy marked as a member of the search index.
// Schema-built references carry this automatically; hand-built ones need
// it before the column can be named in an order specification.
func (c ColumnRef) AsIndexed() ColumnRef {
	c.Indexed = true
	return c
}
