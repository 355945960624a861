package zdbql

import (
	"fmt"
	"sort"

	"github.com/programWhiz/zdbql/internal/types"
	"github.com/zoobzio/dbml"
)

// Index declares which columns of a table are covered by its Elasticsearch
// index. Columns named here may be used in #limit order specifications.
type Index struct {
	Table   string
	Columns []string
}

// Schema validates tree construction against a DBML project plus the
// search-index declarations for its tables.
type Schema struct {
	project *dbml.Project
	// Internal indexes for fast validation
	tables  map[string]*dbml.Table
	columns map[string]map[string]*dbml.Column // table -> column -> definition
	indexed map[string]map[string]bool         // table -> column -> in search index
}

// NewSchema creates a Schema from a DBML project. Every Index declaration
// must name a table and columns that exist in the project.
func NewSchema(project *dbml.Project, indexes ...Index) (*Schema, error) {
	if project == nil {
		return nil, fmt.Errorf("project cannot be nil")
	}

	s := &Schema{
		project: project,
		tables:  make(map[string]*dbml.Table),
		columns: make(map[string]map[string]*dbml.Column),
		indexed: make(map[string]map[string]bool),
	}

	// Build indexes for fast validation. Names are charset-checked here
	// so nothing unsafe can enter a compiled fragment later.
	for _, table := range project.Tables {
		if !isValidSQLIdentifier(table.Name) {
			return nil, fmt.Errorf("invalid table name in project: %s", table.Name)
		}
		s.tables[table.Name] = table
		s.columns[table.Name] = make(map[string]*dbml.Column)
		for _, col := range table.Columns {
			if !isValidSQLIdentifier(col.Name) {
				return nil, fmt.Errorf("invalid column name in table '%s': %s", table.Name, col.Name)
			}
			s.columns[table.Name][col.Name] = col
		}
	}

	for _, idx := range indexes {
		cols, ok := s.columns[idx.Table]
		if !ok {
			return nil, fmt.Errorf("index declares unknown table '%s'", idx.Table)
		}
		if s.indexed[idx.Table] == nil {
			s.indexed[idx.Table] = make(map[string]bool)
		}
		for _, name := range idx.Columns {
			if _, ok := cols[name]; !ok {
				return nil, fmt.Errorf("index on table '%s' declares unknown column '%s'", idx.Table, name)
			}
			s.indexed[idx.Table][name] = true
		}
	}

	return s, nil
}

// validateTable checks if a table exists in the schema.
func (s *Schema) validateTable(name string) error {
	if _, ok := s.tables[name]; !ok {
		return fmt.Errorf("table '%s' not found in schema", name)
	}
	return nil
}

// validateColumn checks if a column exists on the named table.
func (s *Schema) validateColumn(table, column string) error {
	cols, ok := s.columns[table]
	if !ok {
		return fmt.Errorf("table '%s' not found in schema", table)
	}
	if _, ok := cols[column]; !ok {
		return fmt.Errorf("column '%s' not found in table '%s'", column, table)
	}
	return nil
}

// TryT creates a validated table reference, returning an error if the
// table is not part of the schema.
func (s *Schema) TryT(name string) (types.Table, error) {
	if err := s.validateTable(name); err != nil {
		return types.Table{}, fmt.Errorf("invalid table: %w", err)
	}
	return types.Table{Name: name}, nil
}

// T creates a validated table reference.
func (s *Schema) T(name string) types.Table {
	t, err := s.TryT(name)
	if err != nil {
		panic(err)
	}
	return t
}

// TryF creates a validated column reference, returning an error if the
// table or column is not part of the schema. Columns covered by the
// table's search index come back marked indexed, which admits them to
// order specifications.
func (s *Schema) TryF(table, column string) (types.ColumnRef, error) {
	if err := s.validateColumn(table, column); err != nil {
		return types.ColumnRef{}, fmt.Errorf("invalid column: %w", err)
	}
	return types.ColumnRef{
		Table:   table,
		Name:    column,
		Indexed: s.indexed[table][column],
	}, nil
}

// F creates a validated column reference.
func (s *Schema) F(table, column string) types.ColumnRef {
	f, err := s.TryF(table, column)
	if err != nil {
		panic(err)
	}
	return f
}

// Tables returns the names of all tables in the schema, sorted.
func (s *Schema) Tables() []string {
	names := make([]string, 0, len(s.tables))
	for name := range s.tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IndexedColumns returns the declared search-index columns for a table,
// sorted. The result is empty when the table has no index declaration.
func (s *Schema) IndexedColumns(table string) []string {
	cols := s.indexed[table]
	names := make([]string, 0, len(cols))
	for name := range cols {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Project returns the underlying DBML project.
func (s *Schema) Project() *dbml.Project {
	return s.project
}
