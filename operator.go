package zdbql

import (
	"fmt"

	"github.com/programWhiz/zdbql/internal/types"
)

// renderFn renders a comparison whose textual form depends on both
// operands. Implementations may recurse into compileClause and may push
// format arguments through the context.
type renderFn func(left types.ColumnRef, right types.Clause, ctx *compileContext) (string, error)

// operatorEntry is one slot of the operator table: either a literal infix
// fragment or a rendering function, never both.
type operatorEntry struct {
	fragment string
	render   renderFn
}

// compareOperators maps abstract operator tokens to dialect syntax.
// Built once at package init and never mutated. Populated in init rather
// than in the declaration so the render functions, which recurse through
// lookupOperator, do not form an initialization cycle.
var compareOperators map[types.Operator]operatorEntry

func init() {
	compareOperators = map[types.Operator]operatorEntry{
		types.EQ:       {fragment: "="},
		types.NE:       {fragment: "<>"},
		types.GT:       {fragment: ">"},
		types.GE:       {fragment: ">="},
		types.LT:       {fragment: "<"},
		types.LE:       {fragment: "<="},
		types.Contains: {fragment: ":"},
		types.IN:       {fragment: ":"},
		types.Regex:    {fragment: ":~"},
		types.Between:  {render: renderBetween},
		types.NotIn:    {render: renderNotIn},
	}
}

// lookupOperator resolves an operator token against the table.
func lookupOperator(op types.Operator) (operatorEntry, error) {
	entry, ok := compareOperators[op]
	if !ok {
		return operatorEntry{}, types.UnsupportedOperatorError{Operator: op}
	}
	return entry, nil
}

// renderBetween renders a range comparison as `col:lo /TO/ hi`. The right
// side must be a two-element scalar grouping.
func renderBetween(left types.ColumnRef, right types.Clause, _ *compileContext) (string, error) {
	g, ok := right.(types.Grouping)
	if !ok || len(g.Elems) != 2 {
		return "", types.InvalidShapeError{Reason: "range comparison requires a two-element grouping"}
	}
	lo, err := compileGroupingElem(g.Elems[0])
	if err != nil {
		return "", err
	}
	hi, err := compileGroupingElem(g.Elems[1])
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s:%s /TO/ %s", left.Name, lo, hi), nil
}

// renderNotIn renders negated membership as `not col:(...)`.
func renderNotIn(left types.ColumnRef, right types.Clause, ctx *compileContext) (string, error) {
	if _, ok := right.(types.Grouping); !ok {
		return "", types.InvalidShapeError{Reason: "membership comparison requires a grouping"}
	}
	inner, err := compileClause(right, ctx)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("not %s:%s", left.Name, inner), nil
}
