package zdbql_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/programWhiz/zdbql"
)

func TestCompileQuery_SingleComparison(t *testing.T) {
	q := zdbql.Q(zdbql.Eq(zdbql.F("posts", "title"), "hello"))

	sql, err := zdbql.CompileQuery(q)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if sql != `posts ==> 'title="hello"'` {
		t.Errorf("Expected 'posts ==> 'title=\"hello\"'', got '%s'", sql)
	}
}

func TestCompileQuery_GroupedComparison(t *testing.T) {
	q := zdbql.Q(zdbql.And(zdbql.Eq(zdbql.F("posts", "status"), "open")))

	sql, err := zdbql.CompileQuery(q)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if sql != `posts ==> '(status="open")'` {
		t.Errorf("Expected 'posts ==> '(status=\"open\")'', got '%s'", sql)
	}
}

func TestCompileQuery_TextValueEscaped(t *testing.T) {
	q := zdbql.Q(zdbql.Eq(zdbql.F("posts", "title"), "hello world"))

	sql, err := zdbql.CompileQuery(q)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if sql != `posts ==> 'title="hello\ world"'` {
		t.Errorf("Expected reserved characters to be escaped, got '%s'", sql)
	}
}

func TestCompileQuery_Operators(t *testing.T) {
	title := zdbql.F("posts", "title")
	votes := zdbql.F("posts", "votes")
	status := zdbql.F("posts", "status")

	tests := []struct {
		name     string
		clause   zdbql.Clause
		expected string
	}{
		{"Equal", zdbql.Eq(title, "x"), `title="x"`},
		{"NotEqual", zdbql.Ne(title, "x"), `title<>"x"`},
		{"GreaterThan", zdbql.Gt(votes, 5), `votes>5`},
		{"GreaterOrEqual", zdbql.Ge(votes, 5), `votes>=5`},
		{"LessThan", zdbql.Lt(votes, 5), `votes<5`},
		{"LessOrEqual", zdbql.Le(votes, 5), `votes<=5`},
		{"Contains", zdbql.Contains(zdbql.F("posts", "body"), "term"), `body:"term"`},
		{"Regex", zdbql.Regex(title, "^h.llo$"), `title:~"^h.llo$"`},
		{"In", zdbql.In(status, "open", "closed"), `status:("open","closed")`},
		{"NotIn", zdbql.NotIn(status, "open", "closed"), `not status:("open","closed")`},
		{"Between", zdbql.Between(votes, 1, 10), `votes:1 /TO/ 10`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, err := zdbql.CompileQuery(zdbql.Q(tt.clause))
			if err != nil {
				t.Fatalf("Expected no error, got: %v", err)
			}
			expected := "posts ==> '" + tt.expected + "'"
			if sql != expected {
				t.Errorf("Expected '%s', got '%s'", expected, sql)
			}
		})
	}
}

func TestCompileQuery_MixedValueKinds(t *testing.T) {
	tests := []struct {
		name     string
		clause   zdbql.Clause
		expected string
	}{
		{"IntLiteral", zdbql.Eq(zdbql.F("posts", "votes"), 42), `votes=42`},
		{"BoolTrue", zdbql.Eq(zdbql.F("posts", "active"), zdbql.Bool{Value: true}), `active=true`},
		{"BoolFalse", zdbql.Eq(zdbql.F("posts", "active"), zdbql.Bool{Value: false}), `active=false`},
		{"Null", zdbql.Eq(zdbql.F("posts", "deleted_at"), zdbql.Null{}), `deleted_at=NULL`},
		{"RawLiteral", zdbql.Ge(zdbql.F("posts", "created_at"), zdbql.Raw("2020-01-01")), `created_at>=2020-01-01`},
		{"RegexVerbatim", zdbql.Eq(zdbql.F("posts", "title"), zdbql.Pattern("a(b)*c")), `title="a(b)*c"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, err := zdbql.CompileQuery(zdbql.Q(tt.clause))
			if err != nil {
				t.Fatalf("Expected no error, got: %v", err)
			}
			expected := "posts ==> '" + tt.expected + "'"
			if sql != expected {
				t.Errorf("Expected '%s', got '%s'", expected, sql)
			}
		})
	}
}

func TestCompileQuery_MultipleClausesJoinedWithAnd(t *testing.T) {
	q := zdbql.Q(
		zdbql.Eq(zdbql.F("posts", "status"), "open"),
		zdbql.Gt(zdbql.F("posts", "votes"), 10),
	)

	sql, err := zdbql.CompileQuery(q)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if sql != `posts ==> 'status="open" and votes>10'` {
		t.Errorf("Expected clauses joined with ' and ', got '%s'", sql)
	}
}

func TestCompileQuery_BooleanGroups(t *testing.T) {
	status := zdbql.F("posts", "status")

	tests := []struct {
		name     string
		clause   zdbql.Clause
		expected string
	}{
		{
			"Or",
			zdbql.Or(zdbql.Eq(status, "open"), zdbql.Eq(status, "closed")),
			`(status="open" or status="closed")`,
		},
		{
			"And",
			zdbql.And(zdbql.Eq(status, "open"), zdbql.Gt(zdbql.F("posts", "votes"), 5)),
			`(status="open" and votes>5)`,
		},
		{
			"Nested",
			zdbql.And(
				zdbql.Eq(status, "open"),
				zdbql.Or(
					zdbql.Gt(zdbql.F("posts", "votes"), 100),
					zdbql.Eq(zdbql.F("posts", "pinned"), zdbql.Bool{Value: true}),
				),
			),
			`(status="open" and (votes>100 or pinned=true))`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, err := zdbql.CompileQuery(zdbql.Q(tt.clause))
			if err != nil {
				t.Fatalf("Expected no error, got: %v", err)
			}
			expected := "posts ==> '" + tt.expected + "'"
			if sql != expected {
				t.Errorf("Expected '%s', got '%s'", expected, sql)
			}
		})
	}
}

func TestCompileQuery_ChildOrderPreserved(t *testing.T) {
	status := zdbql.F("posts", "status")
	q := zdbql.Q(zdbql.Or(
		zdbql.Eq(status, "c"),
		zdbql.Eq(status, "a"),
		zdbql.Eq(status, "b"),
	))

	sql, err := zdbql.CompileQuery(q)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if sql != `posts ==> '(status="c" or status="a" or status="b")'` {
		t.Errorf("Expected child order to be preserved, got '%s'", sql)
	}
}

func TestCompileQuery_ScoreLimit(t *testing.T) {
	q := zdbql.Q(zdbql.And(zdbql.Eq(zdbql.F("posts", "status"), "open")))
	q.WithLimit(zdbql.ScoreDesc(), 0, 10)

	sql, err := zdbql.CompileQuery(q)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if sql != `posts ==> '#limit(_score desc, 0, 10) (status="open")'` {
		t.Errorf("Expected score-ordered limit prefix, got '%s'", sql)
	}
}

func TestCompileQuery_ColumnLimit(t *testing.T) {
	q := zdbql.Q(zdbql.Eq(zdbql.F("posts", "status"), "open")).
		WithLimit(zdbql.Desc(zdbql.F("posts", "created_at").AsIndexed()), 5, 25)

	sql, err := zdbql.CompileQuery(q)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if sql != `posts ==> '#limit(created_at desc, 5, 25) status="open"'` {
		t.Errorf("Expected column-ordered limit prefix, got '%s'", sql)
	}
}

func TestCompileQuery_UnindexedOrderColumn(t *testing.T) {
	q := zdbql.Q(zdbql.Eq(zdbql.F("posts", "status"), "open")).
		WithLimit(zdbql.Desc(zdbql.F("posts", "created_at")), 0, 10)

	_, err := zdbql.CompileQuery(q)
	if err == nil {
		t.Fatal("Expected error for order column outside the search index")
	}
	var limitErr zdbql.InvalidLimitError
	if !errors.As(err, &limitErr) {
		t.Fatalf("Expected InvalidLimitError, got: %T", err)
	}
}

func TestCompileQuery_TableMarkerFirst(t *testing.T) {
	q := zdbql.Q(
		zdbql.T("posts"),
		zdbql.Eq(zdbql.F("posts", "title"), "x"),
	)

	sql, err := zdbql.CompileQuery(q)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if sql != `posts ==> 'title="x"'` {
		t.Errorf("Expected table marker to be excluded from filter text, got '%s'", sql)
	}
}

func TestCompileQuery_MisplacedTableMarker(t *testing.T) {
	q := zdbql.Q(
		zdbql.Eq(zdbql.F("posts", "title"), "x"),
		zdbql.T("posts"),
	)

	_, err := zdbql.CompileQuery(q)
	if !errors.Is(err, zdbql.ErrMisplacedTable) {
		t.Fatalf("Expected ErrMisplacedTable, got: %v", err)
	}
}

func TestCompileQuery_DifferentTables(t *testing.T) {
	q := zdbql.Q(
		zdbql.Eq(zdbql.F("posts", "title"), "x"),
		zdbql.Eq(zdbql.F("users", "username"), "y"),
	)

	_, err := zdbql.CompileQuery(q)
	if !errors.Is(err, zdbql.ErrDifferentTables) {
		t.Fatalf("Expected ErrDifferentTables, got: %v", err)
	}
}

func TestCompileQuery_NoTableContext(t *testing.T) {
	// A lone text literal renders but establishes no table.
	q := zdbql.Q(zdbql.Lit("abc"))

	_, err := zdbql.CompileQuery(q)
	if !errors.Is(err, zdbql.ErrNoTable) {
		t.Fatalf("Expected ErrNoTable, got: %v", err)
	}
}

func TestCompileQuery_EmptyQuery(t *testing.T) {
	_, err := zdbql.CompileQuery(&zdbql.Query{})
	if !errors.Is(err, zdbql.ErrEmptyFilter) {
		t.Fatalf("Expected ErrEmptyFilter, got: %v", err)
	}
}

func TestCompileQuery_NilQuery(t *testing.T) {
	_, err := zdbql.CompileQuery(nil)
	if !errors.Is(err, zdbql.ErrEmptyFilter) {
		t.Fatalf("Expected ErrEmptyFilter, got: %v", err)
	}
}

func TestCompileQuery_TableMarkerOnly(t *testing.T) {
	// The marker is excluded from the filter text, leaving nothing to render.
	q := zdbql.Q(zdbql.T("posts"))

	_, err := zdbql.CompileQuery(q)
	if !errors.Is(err, zdbql.ErrEmptyFilter) {
		t.Fatalf("Expected ErrEmptyFilter, got: %v", err)
	}
}

func TestCompileQuery_TopLevelIntLiteral(t *testing.T) {
	q := zdbql.Q(zdbql.Lit(5))

	_, err := zdbql.CompileQuery(q)
	if err == nil {
		t.Fatal("Expected error for bare integer literal")
	}
	var unsupported zdbql.UnsupportedClauseError
	if !errors.As(err, &unsupported) {
		t.Fatalf("Expected UnsupportedClauseError, got: %T", err)
	}
	if !unsupported.TopLevel {
		t.Error("Expected rejection at clause admission")
	}
}

func TestCompileQuery_TopLevelFragmentRejected(t *testing.T) {
	q := zdbql.Q(zdbql.Text("raw and dangerous"))

	_, err := zdbql.CompileQuery(q)
	if err == nil {
		t.Fatal("Expected error for top-level text fragment")
	}
	var unsupported zdbql.UnsupportedClauseError
	if !errors.As(err, &unsupported) {
		t.Fatalf("Expected UnsupportedClauseError, got: %T", err)
	}
}

func TestCompileQuery_NestedFragmentAllowed(t *testing.T) {
	q := zdbql.Q(zdbql.And(
		zdbql.Eq(zdbql.F("posts", "status"), "open"),
		zdbql.Text("title:override"),
	))

	sql, err := zdbql.CompileQuery(q)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if sql != `posts ==> '(status="open" and title:override)'` {
		t.Errorf("Expected nested fragment to pass through verbatim, got '%s'", sql)
	}
}

func TestCompileQuery_BadGroupingElement(t *testing.T) {
	group := zdbql.Grouping{Elems: []zdbql.Literal{{Kind: zdbql.LiteralRegex, Text: "x"}}}
	q := zdbql.Q(zdbql.C(zdbql.F("posts", "status"), zdbql.OpIn, group))

	_, err := zdbql.CompileQuery(q)
	if err == nil {
		t.Fatal("Expected error for non-scalar grouping element")
	}
	var shape zdbql.InvalidShapeError
	if !errors.As(err, &shape) {
		t.Fatalf("Expected InvalidShapeError, got: %T", err)
	}
	if !strings.Contains(err.Error(), "unsupported type for IN") {
		t.Errorf("Expected grouping element error, got '%s'", err.Error())
	}
}

func TestCompileQuery_NonColumnLeftSide(t *testing.T) {
	cmp := zdbql.Comparison{
		Left:  zdbql.Lit("title"),
		Op:    zdbql.EQ,
		Right: zdbql.Lit("x"),
	}
	q := zdbql.Q(cmp)

	_, err := zdbql.CompileQuery(q)
	if err == nil {
		t.Fatal("Expected error for non-column left side")
	}
	var shape zdbql.InvalidShapeError
	if !errors.As(err, &shape) {
		t.Fatalf("Expected InvalidShapeError, got: %T", err)
	}
}

func TestCompileQuery_UnknownOperator(t *testing.T) {
	cmp := zdbql.Comparison{
		Left:  zdbql.F("posts", "title"),
		Op:    "LIKE",
		Right: zdbql.Lit("x"),
	}
	q := zdbql.Q(cmp)

	_, err := zdbql.CompileQuery(q)
	if err == nil {
		t.Fatal("Expected error for unknown operator")
	}
	var unsupported zdbql.UnsupportedOperatorError
	if !errors.As(err, &unsupported) {
		t.Fatalf("Expected UnsupportedOperatorError, got: %T", err)
	}
}

func TestCompileQuery_BareColumnBecomesFormatArg(t *testing.T) {
	q := zdbql.Q(
		zdbql.T("posts"),
		zdbql.F("posts", "saved_query"),
	)

	sql, err := zdbql.CompileQuery(q)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	expected := `posts ==> 'format('"%s"', replace(posts.saved_query, '"', ''))'`
	if sql != expected {
		t.Errorf("Expected '%s', got '%s'", expected, sql)
	}
}

func TestCompileQuery_FormatArgsAfterStaticClause(t *testing.T) {
	q := zdbql.Q(
		zdbql.Eq(zdbql.F("posts", "status"), "open"),
		zdbql.F("posts", "saved_query"),
	)

	sql, err := zdbql.CompileQuery(q)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	expected := `posts ==> 'format('status="open" and "%s"', replace(posts.saved_query, '"', ''))'`
	if sql != expected {
		t.Errorf("Expected '%s', got '%s'", expected, sql)
	}
}

func TestCompileQuery_FormatArgOrderMatchesPlaceholders(t *testing.T) {
	q := zdbql.Q(
		zdbql.T("posts"),
		zdbql.F("posts", "first_q"),
		zdbql.F("posts", "second_q"),
	)

	sql, err := zdbql.CompileQuery(q)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	expected := `posts ==> 'format('"%s" and "%s"', replace(posts.first_q, '"', ''), replace(posts.second_q, '"', ''))'`
	if sql != expected {
		t.Errorf("Expected '%s', got '%s'", expected, sql)
	}
}

func TestCompileQuery_LimitPrefixInsideFormat(t *testing.T) {
	q := zdbql.Q(
		zdbql.T("posts"),
		zdbql.F("posts", "saved_query"),
	).WithLimit(zdbql.ScoreAsc(), 0, 5)

	sql, err := zdbql.CompileQuery(q)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	expected := `posts ==> 'format('#limit(_score asc, 0, 5) "%s"', replace(posts.saved_query, '"', ''))'`
	if sql != expected {
		t.Errorf("Expected '%s', got '%s'", expected, sql)
	}
}

func TestCompileScore(t *testing.T) {
	sql, err := zdbql.CompileScore(zdbql.Score(zdbql.T("posts")))
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if sql != "zdb_score('posts', posts.ctid)" {
		t.Errorf("Expected 'zdb_score('posts', posts.ctid)', got '%s'", sql)
	}
}

func TestCompileScore_WrongShape(t *testing.T) {
	tests := []struct {
		name  string
		query *zdbql.Query
	}{
		{"Nil", nil},
		{"Empty", &zdbql.Query{}},
		{"TwoClauses", &zdbql.Query{Clauses: []zdbql.Clause{zdbql.T("posts"), zdbql.T("posts")}}},
		{"NotATable", zdbql.Q(zdbql.Eq(zdbql.F("posts", "title"), "x"))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := zdbql.CompileScore(tt.query)
			if err == nil {
				t.Fatal("Expected error for malformed score tree")
			}
			var shape zdbql.InvalidShapeError
			if !errors.As(err, &shape) {
				t.Errorf("Expected InvalidShapeError, got: %T", err)
			}
		})
	}
}

func TestCompileCount(t *testing.T) {
	q := zdbql.Count(zdbql.T("posts"), map[string]any{"match": "x"})

	sql, err := zdbql.CompileCount(q)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if sql != `zdb.count('posts', '{"match": "x"}')` {
		t.Errorf("Expected 'zdb.count('posts', '{\"match\": \"x\"}')', got '%s'", sql)
	}
}

func TestCompileCount_SingleQuotesDoubled(t *testing.T) {
	q := zdbql.Count(zdbql.T("posts"), map[string]any{"match": "it's"})

	sql, err := zdbql.CompileCount(q)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if sql != `zdb.count('posts', '{"match": "it''s"}')` {
		t.Errorf("Expected embedded quotes doubled, got '%s'", sql)
	}
}

func TestCompileCount_WrongShape(t *testing.T) {
	tests := []struct {
		name  string
		query *zdbql.Query
	}{
		{"Nil", nil},
		{"OneClause", zdbql.Score(zdbql.T("posts"))},
		{"FirstNotTable", &zdbql.Query{Clauses: []zdbql.Clause{
			zdbql.Lit("posts"),
			zdbql.Document{Value: map[string]any{}},
		}}},
		{"SecondNotDocument", &zdbql.Query{Clauses: []zdbql.Clause{
			zdbql.T("posts"),
			zdbql.Lit("x"),
		}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := zdbql.CompileCount(tt.query)
			if err == nil {
				t.Fatal("Expected error for malformed count tree")
			}
			var shape zdbql.InvalidShapeError
			if !errors.As(err, &shape) {
				t.Errorf("Expected InvalidShapeError, got: %T", err)
			}
		})
	}
}

func TestCompileJSONQuery(t *testing.T) {
	doc := zdbql.NewDoc().Set("query_string", zdbql.NewDoc().Set("query", "hello"))
	q := zdbql.JSONQuery(zdbql.T("posts"), doc)

	sql, err := zdbql.CompileJSONQuery(q)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if sql != `posts ==> '{"query_string": {"query": "hello"}}'` {
		t.Errorf("Expected JSON passthrough, got '%s'", sql)
	}
}

func TestCompileJSONQuery_UnsupportedDocument(t *testing.T) {
	q := zdbql.JSONQuery(zdbql.T("posts"), struct{ X int }{X: 1})

	_, err := zdbql.CompileJSONQuery(q)
	if err == nil {
		t.Fatal("Expected error for unsupported document type")
	}
}

func TestCompileQuery_Reusable(t *testing.T) {
	// Compiling the same tree twice yields identical output; the compiler
	// never mutates its input.
	q := zdbql.Q(
		zdbql.T("posts"),
		zdbql.F("posts", "saved_query"),
	)

	first, err := zdbql.CompileQuery(q)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	second, err := zdbql.CompileQuery(q)
	if err != nil {
		t.Fatalf("Expected no error on recompile, got: %v", err)
	}
	if first != second {
		t.Errorf("Expected identical output on recompile, got '%s' then '%s'", first, second)
	}
}
