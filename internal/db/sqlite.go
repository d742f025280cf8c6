package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/schemaforge/schemaforge/internal/parser"
	"github.com/schemaforge/schemaforge/internal/schema"
)

// SQLiteExtractor introspects a SQLite database file via PRAGMA queries.
type SQLiteExtractor struct {
	db *sql.DB
}

func openSQLite(ctx context.Context, path string) (*SQLiteExtractor, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return &SQLiteExtractor{db: db}, nil
}

// Close closes the database connection.
func (e *SQLiteExtractor) Close() error {
	return e.db.Close()
}

// ExtractSchemas extracts one canonical schema per table.
func (e *SQLiteExtractor) ExtractSchemas(ctx context.Context, tables []string) ([]*schema.Schema, error) {
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

func (e *SQLiteExtractor) tableNames(ctx context.Context, requested []string) ([]string, error) {
	if len(requested) > 0 {
		return requested, nil
	}

	query := `
		SELECT name
		FROM sqlite_master
		WHERE type = 'table' AND name NOT LIKE 'sqlite_%'
		ORDER BY name
	`
	rows, err := e.db.QueryContext(ctx, query)
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

func (e *SQLiteExtractor) extractTable(ctx context.Context, tableName string) (*schema.Schema, error) {
	quoted := strings.ReplaceAll(tableName, `"`, `""`)
	rows, err := e.db.QueryContext(ctx, fmt.Sprintf(`PRAGMA table_info("%s")`, quoted))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	s := &schema.Schema{Name: tableName}
	for rows.Next() {
		var (
			f          schema.Field
			cid        int
			notNull    int
			pk         int
			defaultVal sql.NullString
		)
		if err := rows.Scan(&cid, &f.Name, &f.RawType, &notNull, &defaultVal, &pk); err != nil {
			return nil, err
		}

		// SQLite allows untyped columns; they carry BLOB affinity.
		if f.RawType == "" {
			f.RawType = "blob"
		}
		f.Type = parser.SemanticOf(parser.SQLite, f.RawType)
		f.Nullable = notNull == 0 && pk == 0
		f.IsPrimaryKey = pk > 0
		if defaultVal.Valid {
			f.Default = &defaultVal.String
		}
		f.Ordinal = len(s.Fields)
		s.Fields = append(s.Fields, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// AUTOINCREMENT is only visible in the stored CREATE TABLE text.
	if err := e.markAutoIncrement(ctx, tableName, s); err != nil {
		return nil, err
	}
	return s, nil
}

func (e *SQLiteExtractor) markAutoIncrement(ctx context.Context, tableName string, s *schema.Schema) error {
	var createSQL sql.NullString
	err := e.db.QueryRowContext(ctx,
		"SELECT sql FROM sqlite_master WHERE type = 'table' AND name = ?",
		tableName,
	).Scan(&createSQL)
	if err == sql.ErrNoRows || !createSQL.Valid {
		return nil
	}
	if err != nil {
		return err
	}
	if !strings.Contains(strings.ToUpper(createSQL.String), "AUTOINCREMENT") {
		return nil
	}

	// Re-parse the stored DDL; the parser already knows where
	// AUTOINCREMENT attaches.
	parsed, err := parser.Parse(createSQL.String, parser.SQLite)
	if err != nil {
		return nil // best effort: PRAGMA data already covers the rest
	}
	for i := range parsed.Fields {
		if parsed.Fields[i].IsAutoIncrement {
			if f := s.Field(parsed.Fields[i].Name); f != nil {
				f.IsAutoIncrement = true
			}
		}
	}
	return nil
}
