// Package testing provides test utilities for zdbql.
package testing

import (
	"testing"

	"github.com/zoobzio/dbml"

	"github.com/programWhiz/zdbql"
)

// TestSchema creates a fully-featured schema for testing. Includes
// posts, comments, users, and products tables with search indexes on
// their text columns.
func TestSchema(t *testing.T) *zdbql.Schema {
	t.Helper()

	project := dbml.NewProject("test")

	// Posts table
	posts := dbml.NewTable("posts")
	posts.AddColumn(dbml.NewColumn("id", "bigint"))
	posts.AddColumn(dbml.NewColumn("user_id", "bigint"))
	posts.AddColumn(dbml.NewColumn("title", "varchar"))
	posts.AddColumn(dbml.NewColumn("body", "text"))
	posts.AddColumn(dbml.NewColumn("status", "varchar"))
	posts.AddColumn(dbml.NewColumn("votes", "int"))
	posts.AddColumn(dbml.NewColumn("created_at", "timestamp"))
	project.AddTable(posts)

	// Comments table
	comments := dbml.NewTable("comments")
	comments.AddColumn(dbml.NewColumn("id", "bigint"))
	comments.AddColumn(dbml.NewColumn("post_id", "bigint"))
	comments.AddColumn(dbml.NewColumn("author", "varchar"))
	comments.AddColumn(dbml.NewColumn("body", "text"))
	comments.AddColumn(dbml.NewColumn("created_at", "timestamp"))
	project.AddTable(comments)

	// Users table
	users := dbml.NewTable("users")
	users.AddColumn(dbml.NewColumn("id", "bigint"))
	users.AddColumn(dbml.NewColumn("username", "varchar"))
	users.AddColumn(dbml.NewColumn("email", "varchar"))
	users.AddColumn(dbml.NewColumn("bio", "text"))
	project.AddTable(users)

	// Products table
	products := dbml.NewTable("products")
	products.AddColumn(dbml.NewColumn("id", "bigint"))
	products.AddColumn(dbml.NewColumn("name", "varchar"))
	products.AddColumn(dbml.NewColumn("description", "text"))
	products.AddColumn(dbml.NewColumn("category", "varchar"))
	products.AddColumn(dbml.NewColumn("price", "numeric"))
	project.AddTable(products)

	schema, err := zdbql.NewSchema(project,
		zdbql.Index{Table: "posts", Columns: []string{"title", "body", "created_at"}},
		zdbql.Index{Table: "comments", Columns: []string{"body"}},
		zdbql.Index{Table: "users", Columns: []string{"bio"}},
		zdbql.Index{Table: "products", Columns: []string{"name", "description"}},
	)
	if err != nil {
		t.Fatalf("Failed to create test schema: %v", err)
	}
	return schema
}

// AssertCompiles compiles the query and fails the test on error,
// returning the fragment for further assertions.
func AssertCompiles(t *testing.T, q *zdbql.Query) string {
	t.Helper()
	fragment, err := zdbql.CompileQuery(q)
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	return fragment
}

// AssertSQL compares expected and actual SQL, reporting detailed differences.
func AssertSQL(t *testing.T, expected, actual string) {
	t.Helper()
	if expected != actual {
		t.Errorf("SQL mismatch:\nExpected: %s\nActual:   %s", expected, actual)
	}
}

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("Expected error but got nil")
	}
}

// AssertErrorContains checks that error message contains substring.
func AssertErrorContains(t *testing.T, err error, substr string) {
	t.Helper()
	if err == nil {
		t.Fatalf("Expected error containing %q but got nil", substr)
	}
	if !containsString(err.Error(), substr) {
		t.Errorf("Expected error containing %q, got: %v", substr, err)
	}
}

// AssertPanics verifies that a function panics.
func AssertPanics(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic but function completed normally")
		}
	}()
	fn()
}

// AssertPanicsWithMessage verifies that a function panics with a specific message.
func AssertPanicsWithMessage(t *testing.T, fn func(), substr string) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Errorf("Expected panic containing %q but function completed normally", substr)
			return
		}
		var msg string
		switch v := r.(type) {
		case error:
			msg = v.Error()
		case string:
			msg = v
		default:
			t.Errorf("Panic value is not string or error: %T", r)
			return
		}
		if !containsString(msg, substr) {
			t.Errorf("Expected panic containing %q, got: %s", substr, msg)
		}
	}()
	fn()
}

func containsString(s, substr string) bool {
	return len(s) >= len(substr) && (s == substr || substr == "" ||
		(s != "" && substr != "" && findSubstring(s, substr)))
}

func findSubstring(s, substr string) bool {
	for i := 0; i <= len(s)-len(substr); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}
