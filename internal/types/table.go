package types

// Table represents a bound mapped-entity reference. As the first top-level
// clause of a query it establishes the table context; embedded mid-expression
// it renders as its name.
type Table struct {
	Name string
}
