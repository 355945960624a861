// Package zdbql compiles predicate expression trees into ZomboDB query
// fragments embedded in SQL.
//
// ZomboDB exposes an Elasticsearch index through PostgreSQL: a filter is
// written as `<table> ==> '<query>'`, relevance as `zdb_score('<table>',
// <table>.ctid)`, and aggregates as `zdb.count('<table>', '<json>')`. The
// package builds the tree with validated constructors, then renders those
// fragments with one of four compilers.
//
// # Basic Usage
//
// Trees can be built directly using the package-level builder functions:
//
//	q := zdbql.Q(
//		zdbql.T("posts"),
//		zdbql.Eq(zdbql.F("posts", "title"), "hello world"),
//	)
//
//	sql, err := zdbql.CompileQuery(q)
//	// sql: posts ==> 'title="hello\ world"'
//
// Relevance ordering and pagination attach to the tree:
//
//	q = q.WithLimit(zdbql.ScoreDesc(), 0, 10)
//	// posts ==> '#limit(_score desc, 0, 10) title="hello\ world"'
//
// # Schema-Validated Usage
//
// For construction-time safety, create a Schema from a DBML project plus
// the table's search-index declarations:
//
//	schema, err := zdbql.NewSchema(project,
//		zdbql.Index{Table: "posts", Columns: []string{"title", "body"}},
//	)
//	if err != nil {
//		return err
//	}
//
//	// These panic if the table/column doesn't exist in the schema
//	posts := schema.T("posts")
//	title := schema.F("posts", "title")
//
// # Compilers
//
// CompileQuery renders a raw boolean filter, CompileScore the relevance
// accessor, CompileCount the count aggregate, and CompileJSONQuery a raw
// JSON query passthrough. Each validates its tree shape and fails fast;
// no partial output is ever returned.
//
// # Output Format
//
// The output of every compiler is a single SQL fragment string, intended
// to be embedded in a larger statement and executed unmodified. The
// postgres subpackage does that embedding over pgx for callers who want
// it.
package zdbql

import "github.com/programWhiz/zdbql/internal/types"

// Clause represents one node of a predicate expression tree.
// This is re-exported from internal/types for use by consumers.
type Clause = types.Clause

// Query is the tree root consumed by the compilers.
type Query = types.Query

// Literal represents a scalar value in the expression tree.
type Literal = types.Literal

// LiteralKind tags the scalar shape carried by a Literal.
type LiteralKind = types.LiteralKind

// Re-export literal kind constants for public API.
const (
	LiteralText  = types.LiteralText
	LiteralInt   = types.LiteralInt
	LiteralRegex = types.LiteralRegex
	LiteralRaw   = types.LiteralRaw
)

// Bool is a constant true/false clause.
type Bool = types.Bool

// Null is the SQL NULL marker.
type Null = types.Null

// TextFragment is pass-through query text inserted verbatim.
type TextFragment = types.TextFragment

// ColumnRef represents a reference to a mapped column bound to a table.
type ColumnRef = types.ColumnRef

// Comparison represents a binary predicate over a column.
type Comparison = types.Comparison

// BooleanGroup represents an n-ary and/or combination of sub-clauses.
type BooleanGroup = types.BooleanGroup

// Grouping represents a parenthesized scalar list for membership predicates.
type Grouping = types.Grouping

// Table represents a bound mapped-entity reference.
type Table = types.Table

// Document wraps a structured query object for the count and JSON-query
// compilers.
type Document = types.Document

// LogicOperator represents how clauses are combined.
type LogicOperator = types.LogicOperator

// Re-export logic operator constants for public API.
const (
	AND = types.AND
	OR  = types.OR
)

// Operator represents abstract comparison-operator tokens.
type Operator = types.Operator

// Re-export operator constants for public API.
const (
	// Basic comparison operators.
	EQ = types.EQ
	NE = types.NE
	GT = types.GT
	GE = types.GE
	LT = types.LT
	LE = types.LE

	// Full-text operators.
	OpContains = types.Contains
	OpRegex    = types.Regex

	// Membership and range operators.
	OpIn      = types.IN
	OpNotIn   = types.NotIn
	OpBetween = types.Between
)

// Direction represents sort direction in an order specification.
type Direction = types.Direction

// Re-export direction constants for public API.
const (
	ASC  = types.ASC
	DESC = types.DESC
)

// OrderBy represents an order specification.
type OrderBy = types.OrderBy

// LimitSpec carries the pagination and ordering attached to a query.
type LimitSpec = types.LimitSpec

// InvalidShapeError reports a node appearing where its variant is
// structurally disallowed.
type InvalidShapeError = types.InvalidShapeError

// UnsupportedOperatorError reports an operator token with no rendering rule.
type UnsupportedOperatorError = types.UnsupportedOperatorError

// UnsupportedClauseError reports a node variant with no rendering rule.
type UnsupportedClauseError = types.UnsupportedClauseError

// InvalidLimitError reports a malformed limit/order specification.
type InvalidLimitError = types.InvalidLimitError

// Re-export sentinel errors for errors.Is branching.
var (
	ErrNoTable         = types.ErrNoTable
	ErrDifferentTables = types.ErrDifferentTables
	ErrEmptyFilter     = types.ErrEmptyFilter
	ErrMisplacedTable  = types.ErrMisplacedTable
)
