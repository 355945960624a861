package types

import (
	"errors"
	"fmt"
)

// Compilation failures are immediate and non-recoverable; no partial output
// is ever returned. These values are re-exported by the root package so
// callers can branch with errors.Is and errors.As.
var (
	// ErrNoTable reports that no clause established a table context.
	ErrNoTable = errors.New("no filters passed")
	// ErrDifferentTables reports clauses spanning more than one table.
	ErrDifferentTables = errors.New("different tables passed")
	// ErrEmptyFilter reports that nothing remained to render after table
	// extraction.
	ErrEmptyFilter = errors.New("at least one filter clause is required")
	// ErrMisplacedTable reports a table marker after the first position.
	ErrMisplacedTable = errors.New("table can be specified only as first param")
)

// InvalidShapeError reports a node appearing where its variant is
// structurally disallowed.
type InvalidShapeError struct {
	Reason string
}

func (e InvalidShapeError) Error() string {
	return e.Reason
}

// UnsupportedOperatorError reports an operator token with no rendering rule.
type UnsupportedOperatorError struct {
	Operator Operator
}

func (e UnsupportedOperatorError) Error() string {
	return fmt.Sprintf("unsupported binary operator %s", e.Operator)
}

// UnsupportedClauseError reports a node variant with no rendering rule.
// TopLevel distinguishes rejection at query-clause admission from rejection
// inside an expression.
type UnsupportedClauseError struct {
	Clause   string
	TopLevel bool
}

func (e UnsupportedClauseError) Error() string {
	if e.TopLevel {
		return fmt.Sprintf("unsupported filter: %s", e.Clause)
	}
	return fmt.Sprintf("unsupported clause: %s", e.Clause)
}

// InvalidLimitError reports a malformed limit/order specification.
type InvalidLimitError struct {
	Reason string
}

func (e InvalidLimitError) Error() string {
	return e.Reason
}
