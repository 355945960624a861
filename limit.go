package zdbql

import (
	"fmt"

	"github.com/programWhiz/zdbql/internal/types"
)

// scoreColumn is the reserved ordering column exposing the search
// backend's per-row relevance value.
const scoreColumn = "_score"

// compileLimit renders the order/limit prefix:
//
//	#limit(sort_field asc|desc, offset_val, limit_val)
//
// The trailing space is part of the syntax; the prefix sits directly in
// front of the joined filter text.
func compileLimit(spec *types.LimitSpec) (string, error) {
	if spec.Offset < 0 || spec.Limit < 0 {
		return "", types.InvalidLimitError{Reason: "limit offset and limit must be non-negative"}
	}

	order := spec.OrderBy
	var column string
	switch {
	case order.Score:
		column = scoreColumn
	case order.Column.Name != "":
		if !order.Column.Indexed {
			return "", types.InvalidLimitError{Reason: fmt.Sprintf("order column %s is not search-indexed", order.Column.Name)}
		}
		column = order.Column.Name
	default:
		return "", types.InvalidLimitError{Reason: "limit requires an order specification"}
	}

	switch order.Direction {
	case types.ASC, types.DESC:
	default:
		return "", types.InvalidLimitError{Reason: fmt.Sprintf("invalid sort direction %q", string(order.Direction))}
	}

	return fmt.Sprintf("#limit(%s %s, %d, %d) ", column, order.Direction, spec.Offset, spec.Limit), nil
}
