package zdbql

import (
	"fmt"

	"github.com/programWhiz/zdbql/internal/types"
)

// The package-level constructors build trees without a schema. Every
// identifier is still charset-checked before it can reach a compiled
// fragment; use a Schema when construction should also verify that the
// table and column actually exist.

// isValidSQLIdentifier reports whether s is safe to splice into a query
// fragment as an identifier: a letter or underscore followed by letters,
// digits, or underscores.
func isValidSQLIdentifier(s string) bool {
	if s == "" {
		return false
	}

	// Must start with letter or underscore
	first := s[0]
	if !((first >= 'a' && first <= 'z') ||
		(first >= 'A' && first <= 'Z') ||
		first == '_') {
		return false
	}

	// Rest must be alphanumeric or underscore
	for i := 1; i < len(s); i++ {
		ch := s[i]
		if !((ch >= 'a' && ch <= 'z') ||
			(ch >= 'A' && ch <= 'Z') ||
			(ch >= '0' && ch <= '9') ||
			ch == '_') {
			return false
		}
	}

	return true
}

// TryT creates a table reference, returning an error if the name is not
// a valid identifier.
func TryT(name string) (types.Table, error) {
	if !isValidSQLIdentifier(name) {
		return types.Table{}, fmt.Errorf("invalid table name: %s", name)
	}
	return types.Table{Name: name}, nil
}

// T creates a table reference.
func T(name string) types.Table {
	t, err := TryT(name)
	if err != nil {
		panic(err)
	}
	return t
}

// TryF creates a column reference bound to a table, returning an error
// if either part is not a valid identifier.
func TryF(table, column string) (types.ColumnRef, error) {
	if !isValidSQLIdentifier(table) {
		return types.ColumnRef{}, fmt.Errorf("invalid table name: %s", table)
	}
	if !isValidSQLIdentifier(column) {
		return types.ColumnRef{}, fmt.Errorf("invalid column name: %s", column)
	}
	return types.ColumnRef{Table: table, Name: column}, nil
}

// F creates a column reference bound to a table.
func F(table, column string) types.ColumnRef {
	f, err := TryF(table, column)
	if err != nil {
		panic(err)
	}
	return f
}

// TryLit creates a literal from a Go scalar, returning an error for
// unsupported types. Strings become quoted, token-escaped text; integers
// render bare.
func TryLit(value any) (types.Literal, error) {
	switch v := value.(type) {
	case string:
		return types.Literal{Kind: types.LiteralText, Text: v}, nil
	case int:
		return types.Literal{Kind: types.LiteralInt, Int: int64(v)}, nil
	case int32:
		return types.Literal{Kind: types.LiteralInt, Int: int64(v)}, nil
	case int64:
		return types.Literal{Kind: types.LiteralInt, Int: v}, nil
	default:
		return types.Literal{}, fmt.Errorf("unsupported literal type %T", value)
	}
}

// Lit creates a literal from a Go scalar.
func Lit(value any) types.Literal {
	l, err := TryLit(value)
	if err != nil {
		panic(err)
	}
	return l
}

// Pattern creates a regular-expression literal. The pattern is rendered
// inside double quotes exactly as given, with no token escaping; the
// caller owns its contents.
func Pattern(p string) types.Literal {
	return types.Literal{Kind: types.LiteralRegex, Text: p}
}

// Raw creates a literal rendered without quoting or escaping. Use for
// already-formed query syntax such as date math or wildcard patterns.
func Raw(s string) types.Literal {
	return types.Literal{Kind: types.LiteralRaw, Text: s}
}

// Text creates a pass-through fragment inserted into the query verbatim.
func Text(s string) types.TextFragment {
	return types.TextFragment{Text: s}
}

// Boolean creates a true/false comparison value.
func Boolean(v bool) types.Bool {
	return types.Bool{Value: v}
}

// NullValue creates the SQL NULL comparison value.
func NullValue() types.Null {
	return types.Null{}
}

// TryC creates a comparison clause, returning an error if the operator
// has no rendering rule or the value is missing.
func TryC(column types.ColumnRef, op types.Operator, value types.Clause) (types.Comparison, error) {
	if _, err := lookupOperator(op); err != nil {
		return types.Comparison{}, err
	}
	if value == nil {
		return types.Comparison{}, fmt.Errorf("comparison value cannot be nil")
	}
	return types.Comparison{Left: column, Op: op, Right: value}, nil
}

// C creates a validated comparison clause.
func C(column types.ColumnRef, op types.Operator, value types.Clause) types.Comparison {
	c, err := TryC(column, op, value)
	if err != nil {
		panic(err)
	}
	return c
}

// TryGroup creates a parenthesized scalar list for membership and range
// predicates, returning an error for empty lists or unsupported element
// types.
func TryGroup(values ...any) (types.Grouping, error) {
	if len(values) == 0 {
		return types.Grouping{}, fmt.Errorf("grouping requires at least one value")
	}
	elems := make([]types.Literal, 0, len(values))
	for _, v := range values {
		lit, err := TryLit(v)
		if err != nil {
			return types.Grouping{}, err
		}
		elems = append(elems, lit)
	}
	return types.Grouping{Elems: elems}, nil
}

// Group creates a parenthesized scalar list.
func Group(values ...any) types.Grouping {
	g, err := TryGroup(values...)
	if err != nil {
		panic(err)
	}
	return g
}

// TryAnd creates an AND clause group, returning an error if empty.
func TryAnd(clauses ...types.Clause) (types.BooleanGroup, error) {
	if len(clauses) == 0 {
		return types.BooleanGroup{}, fmt.Errorf("AND requires at least one clause")
	}
	for i, c := range clauses {
		if c == nil {
			return types.BooleanGroup{}, fmt.Errorf("AND clause %d is nil", i)
		}
	}
	return types.BooleanGroup{Logic: types.AND, Clauses: clauses}, nil
}

// And creates an AND clause group.
func And(clauses ...types.Clause) types.BooleanGroup {
	g, err := TryAnd(clauses...)
	if err != nil {
		panic(err)
	}
	return g
}

// TryOr creates an OR clause group, returning an error if empty.
func TryOr(clauses ...types.Clause) (types.BooleanGroup, error) {
	if len(clauses) == 0 {
		return types.BooleanGroup{}, fmt.Errorf("OR requires at least one clause")
	}
	for i, c := range clauses {
		if c == nil {
			return types.BooleanGroup{}, fmt.Errorf("OR clause %d is nil", i)
		}
	}
	return types.BooleanGroup{Logic: types.OR, Clauses: clauses}, nil
}

// Or creates an OR clause group.
func Or(clauses ...types.Clause) types.BooleanGroup {
	g, err := TryOr(clauses...)
	if err != nil {
		panic(err)
	}
	return g
}

// TryQ assembles a query from top-level clauses, returning an error if
// none are given.
func TryQ(clauses ...types.Clause) (*types.Query, error) {
	q := &types.Query{Clauses: clauses}
	if err := q.Validate(); err != nil {
		return nil, err
	}
	return q, nil
}

// Q assembles a query from top-level clauses.
func Q(clauses ...types.Clause) *types.Query {
	q, err := TryQ(clauses...)
	if err != nil {
		panic(err)
	}
	return q
}

// clauseValue coerces a Go scalar or prebuilt clause into a tree node.
func clauseValue(v any) (types.Clause, error) {
	if c, ok := v.(types.Clause); ok {
		return c, nil
	}
	return TryLit(v)
}

func compare(column types.ColumnRef, op types.Operator, value any) types.Comparison {
	right, err := clauseValue(value)
	if err != nil {
		panic(err)
	}
	return C(column, op, right)
}

// Eq creates an equality comparison against a scalar or prebuilt clause.
func Eq(column types.ColumnRef, value any) types.Comparison {
	return compare(column, types.EQ, value)
}

// Ne creates an inequality comparison.
func Ne(column types.ColumnRef, value any) types.Comparison {
	return compare(column, types.NE, value)
}

// Gt creates a greater-than comparison.
func Gt(column types.ColumnRef, value any) types.Comparison {
	return compare(column, types.GT, value)
}

// Ge creates a greater-or-equal comparison.
func Ge(column types.ColumnRef, value any) types.Comparison {
	return compare(column, types.GE, value)
}

// Lt creates a less-than comparison.
func Lt(column types.ColumnRef, value any) types.Comparison {
	return compare(column, types.LT, value)
}

// Le creates a less-or-equal comparison.
func Le(column types.ColumnRef, value any) types.Comparison {
	return compare(column, types.LE, value)
}

// Contains creates a full-text containment comparison.
func Contains(column types.ColumnRef, value any) types.Comparison {
	return compare(column, types.Contains, value)
}

// Regex creates a regular-expression match comparison.
func Regex(column types.ColumnRef, pattern string) types.Comparison {
	return C(column, types.Regex, Pattern(pattern))
}

// In creates a membership comparison over a scalar list.
func In(column types.ColumnRef, values ...any) types.Comparison {
	group, err := TryGroup(values...)
	if err != nil {
		panic(err)
	}
	return C(column, types.IN, group)
}

// NotIn creates a negated membership comparison over a scalar list.
func NotIn(column types.ColumnRef, values ...any) types.Comparison {
	group, err := TryGroup(values...)
	if err != nil {
		panic(err)
	}
	return C(column, types.NotIn, group)
}

// Between creates an inclusive range comparison.
func Between(column types.ColumnRef, low, high any) types.Comparison {
	group, err := TryGroup(low, high)
	if err != nil {
		panic(err)
	}
	return C(column, types.Between, group)
}

// ScoreAsc orders by ascending relevance score.
func ScoreAsc() types.OrderBy {
	return types.OrderBy{Score: true, Direction: types.ASC}
}

// ScoreDesc orders by descending relevance score.
func ScoreDesc() types.OrderBy {
	return types.OrderBy{Score: true, Direction: types.DESC}
}

// Asc orders by a search-indexed column, ascending.
func Asc(column types.ColumnRef) types.OrderBy {
	return types.OrderBy{Column: column, Direction: types.ASC}
}

// Desc orders by a search-indexed column, descending.
func Desc(column types.ColumnRef) types.OrderBy {
	return types.OrderBy{Column: column, Direction: types.DESC}
}

// Score builds the argument tree for CompileScore.
func Score(table types.Table) *types.Query {
	return &types.Query{Clauses: []types.Clause{table}}
}

// Count builds the argument tree for CompileCount. The document may be
// a *Doc, a map, a slice, or any scalar the JSON encoder supports.
func Count(table types.Table, document any) *types.Query {
	return &types.Query{Clauses: []types.Clause{table, types.Document{Value: document}}}
}

// JSONQuery builds the argument tree for CompileJSONQuery.
func JSONQuery(table types.Table, document any) *types.Query {
	return &types.Query{Clauses: []types.Clause{table, types.Document{Value: document}}}
}
