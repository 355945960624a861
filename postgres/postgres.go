// Package postgres executes compiled search fragments against PostgreSQL.
package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/programWhiz/zdbql"
)

// Querier is the subset of the pgx surface the session needs. Both
// *pgx.Conn and *pgxpool.Pool satisfy it.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Session wraps a connection or pool and runs statements built around
// compiled fragments. The caller owns the connection lifecycle.
type Session struct {
	db Querier
}

// New creates a session over an open connection or pool.
func New(db Querier) *Session {
	return &Session{db: db}
}

// Select compiles the query, embeds it as the WHERE clause of a SELECT
// over the query's table, and runs it. With no columns it selects *.
func (s *Session) Select(ctx context.Context, query *zdbql.Query, columns ...string) (pgx.Rows, error) {
	sql, err := SelectSQL(query, columns...)
	if err != nil {
		return nil, err
	}
	return s.db.Query(ctx, sql)
}

// SelectWithScore is Select with the relevance score appended as the
// final column, aliased zdb_score, and rows ordered by it descending.
func (s *Session) SelectWithScore(ctx context.Context, query *zdbql.Query, columns ...string) (pgx.Rows, error) {
	sql, err := SelectWithScoreSQL(query, columns...)
	if err != nil {
		return nil, err
	}
	return s.db.Query(ctx, sql)
}

// Count runs the zdb.count aggregate for a query document and returns
// the hit count without fetching rows.
func (s *Session) Count(ctx context.Context, table zdbql.Table, document any) (int64, error) {
	expr, err := CountSQL(table, document)
	if err != nil {
		return 0, err
	}

	var count int64
	if err := s.db.QueryRow(ctx, "SELECT "+expr).Scan(&count); err != nil {
		return 0, fmt.Errorf("count query failed: %w", err)
	}
	return count, nil
}

// SelectSQL builds the full SELECT statement for a query without
// executing it, for callers that run statements elsewhere.
func SelectSQL(query *zdbql.Query, columns ...string) (string, error) {
	fragment, err := zdbql.CompileQuery(query)
	if err != nil {
		return "", err
	}

	table, _, err := splitFragment(fragment)
	if err != nil {
		return "", err
	}

	if len(columns) == 0 {
		columns = []string{"*"}
	}

	sql, _, err := statementBuilder().
		Select(columns...).
		From(table).
		Where(fragment).
		ToSql()
	if err != nil {
		return "", fmt.Errorf("building select: %w", err)
	}
	return sql, nil
}

// SelectWithScoreSQL builds the statement SelectWithScore executes.
func SelectWithScoreSQL(query *zdbql.Query, columns ...string) (string, error) {
	fragment, err := zdbql.CompileQuery(query)
	if err != nil {
		return "", err
	}

	table, _, err := splitFragment(fragment)
	if err != nil {
		return "", err
	}

	score, err := zdbql.CompileScore(zdbql.Score(zdbql.T(table)))
	if err != nil {
		return "", err
	}

	cols := make([]string, 0, len(columns)+1)
	if len(columns) == 0 {
		cols = append(cols, "*")
	} else {
		cols = append(cols, columns...)
	}
	cols = append(cols, score+" AS zdb_score")

	sql, _, err := statementBuilder().
		Select(cols...).
		From(table).
		Where(fragment).
		OrderBy(score + " DESC").
		ToSql()
	if err != nil {
		return "", fmt.Errorf("building select: %w", err)
	}
	return sql, nil
}

// CountSQL builds the zdb.count aggregate expression for a table and
// query document. The result is an expression, not a full statement.
func CountSQL(table zdbql.Table, document any) (string, error) {
	return zdbql.CompileCount(zdbql.Count(table, document))
}

// statementBuilder returns the builder all statements are assembled
// with. Fragments carry values inline and may contain literal question
// marks, so the placeholder format must stay Question; other formats
// rewrite every question mark in the statement text.
func statementBuilder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)
}

// splitFragment separates a compiled fragment into its table name and
// quoted search text. Table names are identifier-checked at build time
// and cannot contain spaces, so the first arrow is unambiguous.
func splitFragment(fragment string) (table, search string, err error) {
	table, search, ok := strings.Cut(fragment, " ==> ")
	if !ok {
		return "", "", fmt.Errorf("malformed fragment: %q", fragment)
	}
	return table, search, nil
}
