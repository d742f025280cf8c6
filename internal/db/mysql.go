package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/go-sql-driver/mysql"

	"github.com/schemaforge/schemaforge/internal/parser"
	"github.com/schemaforge/schemaforge/internal/schema"
)

// MySQLExtractor introspects a MySQL database via INFORMATION_SCHEMA.
type MySQLExtractor struct {
	db         *sql.DB
	schemaName string
}

func openMySQL(ctx context.Context, dsn string) (*MySQLExtractor, error) {
	name, err := parseDatabaseName(dsn)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return &MySQLExtractor{db: db, schemaName: name}, nil
}

// Close closes the database connection.
func (e *MySQLExtractor) Close() error {
	return e.db.Close()
}

// ExtractSchemas extracts one canonical schema per table.
func (e *MySQLExtractor) ExtractSchemas(ctx context.Context, tables []string) ([]*schema.Schema, error) {
	names, err := e.tableNames(ctx, tables)
	if err != nil {
		return nil, fmt.Errorf("failed to get table names: %w", err)
	}

	var schemas []*schema.Schema
	for _, name := range names {
		s, err := e.extractTable(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("failed to extract table %s: %w", name, err)
		}
		schemas = append(schemas, s)
	}
	return schemas, nil
}

func (e *MySQLExtractor) tableNames(ctx context.Context, requested []string) ([]string, error) {
	if len(requested) > 0 {
		return requested, nil
	}

	query := `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = ? AND table_type = 'BASE TABLE'
		ORDER BY table_name
	`
	rows, err := e.db.QueryContext(ctx, query, e.schemaName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func (e *MySQLExtractor) extractTable(ctx context.Context, tableName string) (*schema.Schema, error) {
	query := `
		SELECT
			column_name,
			column_type,
			is_nullable,
			column_default,
			column_key,
			extra,
			column_comment,
			COALESCE(character_maximum_length, COALESCE(numeric_precision, 0))
		FROM information_schema.columns
		WHERE table_schema = ? AND table_name = ?
		ORDER BY ordinal_position
	`
	rows, err := e.db.QueryContext(ctx, query, e.schemaName, tableName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	s := &schema.Schema{Name: tableName}
	for rows.Next() {
		var (
			f          schema.Field
			columnType string
			nullable   string
			defaultVal sql.NullString
			columnKey  string
			extra      string
		)
		if err := rows.Scan(&f.Name, &columnType, &nullable, &defaultVal, &columnKey, &extra, &f.Comment, &f.Size); err != nil {
			return nil, err
		}

		f.RawType = columnType
		f.Type = parser.SemanticOf(parser.MySQL, columnType)
		f.Nullable = nullable == "YES"
		f.IsPrimaryKey = columnKey == "PRI"
		f.IsUnique = columnKey == "UNI"
		f.IsAutoIncrement = strings.Contains(extra, "auto_increment")
		f.IsUnsigned = strings.Contains(columnType, "unsigned")
		if defaultVal.Valid {
			f.Default = &defaultVal.String
		}
		f.Ordinal = len(s.Fields)
		s.Fields = append(s.Fields, f)
	}
	return s, rows.Err()
}
