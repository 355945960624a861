package zdbql

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/programWhiz/zdbql/internal/types"
)

// compileContext carries the side state of one compilation: the set of
// referenced tables and the deferred parameter-binding expressions, in
// placeholder occurrence order. Each top-level compile owns a fresh one.
type compileContext struct {
	tables     map[string]bool
	formatArgs []string
}

func newCompileContext() *compileContext {
	return &compileContext{tables: make(map[string]bool)}
}

// addTable records a referenced table.
func (ctx *compileContext) addTable(name string) {
	ctx.tables[name] = true
}

// addFormatArg pushes a deferred binding expression and returns the
// placeholder token that stands in for it.
func (ctx *compileContext) addFormatArg(expr string) string {
	ctx.formatArgs = append(ctx.formatArgs, expr)
	return `"%s"`
}

// table returns the single referenced table, or the matching invariant
// violation.
func (ctx *compileContext) table() (string, error) {
	switch len(ctx.tables) {
	case 0:
		return "", types.ErrNoTable
	case 1:
		for name := range ctx.tables {
			return name, nil
		}
	}
	return "", types.ErrDifferentTables
}

// CompileQuery compiles a raw-query tree into a `<table> ==> '<query>'`
// fragment. A table marker may appear only as the first clause, where it
// establishes the table context and is excluded from the filter text.
// Remaining clauses are joined with " and "; deferred bindings wrap the
// filter in the dialect's format() substitution call.
func CompileQuery(q *types.Query) (string, error) {
	if err := q.Validate(); err != nil {
		return "", err
	}

	ctx := newCompileContext()
	clauses := make([]string, 0, len(q.Clauses))

	for i, c := range q.Clauses {
		include := true

		switch node := c.(type) {
		case types.Comparison:
			// admitted; its table is recorded when the clause renders
		case types.Literal:
			if node.Kind == types.LiteralInt {
				return "", types.UnsupportedClauseError{Clause: "bare integer literal", TopLevel: true}
			}
		case types.Table:
			if i > 0 {
				return "", types.ErrMisplacedTable
			}
			ctx.addTable(node.Name)
			include = false
		case types.BooleanGroup:
		case types.ColumnRef:
		default:
			return "", types.UnsupportedClauseError{Clause: clauseName(c), TopLevel: true}
		}

		if include {
			rendered, err := compileClause(c, ctx)
			if err != nil {
				return "", err
			}
			clauses = append(clauses, rendered)
		}
	}

	if len(clauses) == 0 {
		return "", types.ErrEmptyFilter
	}

	table, err := ctx.table()
	if err != nil {
		return "", err
	}

	prefix := ""
	if q.Limit != nil {
		prefix, err = compileLimit(q.Limit)
		if err != nil {
			return "", err
		}
	}

	filter := prefix + strings.Join(clauses, " and ")
	if len(ctx.formatArgs) > 0 {
		filter = fmt.Sprintf("format('%s', %s)", filter, strings.Join(ctx.formatArgs, ", "))
	}

	return fmt.Sprintf("%s ==> '%s'", table, filter), nil
}

// CompileScore compiles the relevance-score accessor for a table entity:
// `zdb_score('<table>', <table>.ctid)`.
func CompileScore(q *types.Query) (string, error) {
	if q == nil || len(q.Clauses) != 1 {
		return "", types.InvalidShapeError{Reason: "score accessor takes exactly one table argument"}
	}

	tbl, ok := q.Clauses[0].(types.Table)
	if !ok {
		return "", types.InvalidShapeError{Reason: "score accessor argument must be a bound table"}
	}

	return fmt.Sprintf("zdb_score('%s', %s.ctid)", tbl.Name, tbl.Name), nil
}

// CompileCount compiles the count aggregate:
// `zdb.count('<table>', '<json>')`.
func CompileCount(q *types.Query) (string, error) {
	table, jsonText, err := tableAndDocument(q, "zdb.count")
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("zdb.count('%s', '%s')", table, jsonText), nil
}

// CompileJSONQuery compiles a raw JSON query passthrough:
// `<table> ==> '<json>'`.
func CompileJSONQuery(q *types.Query) (string, error) {
	table, jsonText, err := tableAndDocument(q, "JSON query")
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s ==> '%s'", table, jsonText), nil
}

// tableAndDocument unpacks the two-clause (table, document) shape shared
// by the count and JSON-query compilers and serializes the document.
// Embedded single quotes are doubled for the enclosing SQL string.
func tableAndDocument(q *types.Query, what string) (string, string, error) {
	if q == nil || len(q.Clauses) != 2 {
		return "", "", types.InvalidShapeError{Reason: fmt.Sprintf("%s requires a table and a query document", what)}
	}

	tbl, ok := q.Clauses[0].(types.Table)
	if !ok {
		return "", "", types.InvalidShapeError{Reason: fmt.Sprintf("%s first argument must be a bound table", what)}
	}
	doc, ok := q.Clauses[1].(types.Document)
	if !ok {
		return "", "", types.InvalidShapeError{Reason: fmt.Sprintf("%s second argument must be a query document", what)}
	}

	text, err := encodeDocument(doc.Value)
	if err != nil {
		return "", "", err
	}

	return tbl.Name, strings.ReplaceAll(text, "'", "''"), nil
}

// compileClause renders one expression-tree node, accumulating referenced
// tables and deferred bindings through ctx. Nodes are never mutated.
func compileClause(c types.Clause, ctx *compileContext) (string, error) {
	switch node := c.(type) {
	case types.Literal:
		return compileLiteral(node)
	case types.Bool:
		return strconv.FormatBool(node.Value), nil
	case types.TextFragment:
		return node.Text, nil
	case types.Comparison:
		return compileComparison(node, ctx)
	case types.BooleanGroup:
		return compileBooleanGroup(node, ctx)
	case types.ColumnRef:
		// A bare column clause means its runtime value is substituted at
		// execution time: defer a binding that strips the quoting and emit
		// a positional placeholder for the format() wrapper.
		return ctx.addFormatArg(fmt.Sprintf(`replace(%s, '"', '')`, qualifiedColumn(node))), nil
	case types.Grouping:
		return compileGrouping(node)
	case types.Null:
		return "NULL", nil
	case types.Table:
		return node.Name, nil
	}
	return "", types.UnsupportedClauseError{Clause: clauseName(c)}
}

func compileLiteral(lit types.Literal) (string, error) {
	switch lit.Kind {
	case types.LiteralText:
		return `"` + escapeTokens(lit.Text) + `"`, nil
	case types.LiteralRegex:
		// quoted verbatim so the pattern's metacharacters survive
		return `"` + lit.Text + `"`, nil
	case types.LiteralRaw:
		return lit.Text, nil
	case types.LiteralInt:
		return strconv.FormatInt(lit.Int, 10), nil
	}
	return "", types.InvalidShapeError{Reason: fmt.Sprintf("unknown literal kind %q", string(lit.Kind))}
}

func compileComparison(cmp types.Comparison, ctx *compileContext) (string, error) {
	left, ok := cmp.Left.(types.ColumnRef)
	if !ok {
		return "", types.InvalidShapeError{Reason: "comparison left side must be a column reference"}
	}

	entry, err := lookupOperator(cmp.Op)
	if err != nil {
		return "", err
	}

	if left.Table != "" {
		ctx.addTable(left.Table)
	}

	if entry.render != nil {
		return entry.render(left, cmp.Right, ctx)
	}

	right, err := compileClause(cmp.Right, ctx)
	if err != nil {
		return "", err
	}
	return left.Name + entry.fragment + right, nil
}

func compileBooleanGroup(group types.BooleanGroup, ctx *compileContext) (string, error) {
	parts := make([]string, 0, len(group.Clauses))
	for _, c := range group.Clauses {
		part, err := compileClause(c, ctx)
		if err != nil {
			return "", err
		}
		parts = append(parts, part)
	}

	var joiner string
	switch group.Logic {
	case types.AND:
		joiner = " and "
	case types.OR:
		joiner = " or "
	default:
		return "", types.InvalidShapeError{Reason: fmt.Sprintf("unsupported boolean logic %q", string(group.Logic))}
	}

	return "(" + strings.Join(parts, joiner) + ")", nil
}

func compileGrouping(g types.Grouping) (string, error) {
	values := make([]string, 0, len(g.Elems))
	for _, elem := range g.Elems {
		v, err := compileGroupingElem(elem)
		if err != nil {
			return "", err
		}
		values = append(values, v)
	}
	return "(" + strings.Join(values, ",") + ")", nil
}

// compileGroupingElem renders one membership-list scalar. Text elements
// are quoted without escaping; the grouping syntax takes them verbatim.
func compileGroupingElem(elem types.Literal) (string, error) {
	switch elem.Kind {
	case types.LiteralText:
		return `"` + elem.Text + `"`, nil
	case types.LiteralInt:
		return strconv.FormatInt(elem.Int, 10), nil
	}
	return "", types.InvalidShapeError{Reason: "unsupported type for IN"}
}

// qualifiedColumn renders a column's driver-level name.
func qualifiedColumn(col types.ColumnRef) string {
	if col.Table == "" {
		return col.Name
	}
	return col.Table + "." + col.Name
}

func clauseName(c types.Clause) string {
	return fmt.Sprintf("%T", c)
}
