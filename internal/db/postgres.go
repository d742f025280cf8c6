package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/schemaforge/schemaforge/internal/parser"
	"github.com/schemaforge/schemaforge/internal/schema"
)

// PostgresExtractor introspects a PostgreSQL database via
// information_schema and the system catalogs.
type PostgresExtractor struct {
	conn       *pgx.Conn
	schemaName string
}

func openPostgres(ctx context.Context, connString string) (*PostgresExtractor, error) {
	conn, err := pgx.Connect(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := conn.Ping(ctx); err != nil {
		_ = conn.Close(ctx)
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return &PostgresExtractor{conn: conn, schemaName: "public"}, nil
}

// Close closes the database connection.
func (e *PostgresExtractor) Close() error {
	return e.conn.Close(context.Background())
}

// ExtractSchemas extracts one canonical schema per table.
func (e *PostgresExtractor) ExtractSchemas(ctx context.Context, tables []string) ([]*schema.Schema, error) {
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

func (e *PostgresExtractor) tableNames(ctx context.Context, requested []string) ([]string, error) {
	if len(requested) > 0 {
		return requested, nil
	}

	query := `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = $1 AND table_type = 'BASE TABLE'
		ORDER BY table_name
	`
	rows, err := e.conn.Query(ctx, query, e.schemaName)
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

func (e *PostgresExtractor) extractTable(ctx context.Context, tableName string) (*schema.Schema, error) {
	query := `
		SELECT
			c.column_name,
			c.udt_name,
			c.is_nullable,
			c.column_default,
			COALESCE(c.character_maximum_length, COALESCE(c.numeric_precision, 0)),
			c.is_identity,
			COALESCE(col_description(pc.oid, c.ordinal_position), '')
		FROM information_schema.columns c
		JOIN pg_class pc ON pc.relname = c.table_name
		JOIN pg_namespace pn ON pn.oid = pc.relnamespace AND pn.nspname = c.table_schema
		WHERE c.table_schema = $1 AND c.table_name = $2
		ORDER BY c.ordinal_position
	`
	rows, err := e.conn.Query(ctx, query, e.schemaName, tableName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	s := &schema.Schema{Name: tableName}
	for rows.Next() {
		var (
			f          schema.Field
			nullable   string
			defaultVal *string
			isIdentity string
		)
		if err := rows.Scan(&f.Name, &f.RawType, &nullable, &defaultVal, &f.Size, &isIdentity, &f.Comment); err != nil {
			return nil, err
		}

		// Array types come back as "_int4" etc. from udt_name.
		if strings.HasPrefix(f.RawType, "_") {
			f.RawType = f.RawType[1:] + "[]"
		}
		f.Type = parser.SemanticOf(parser.Postgres, f.RawType)
		if strings.HasSuffix(f.RawType, "[]") {
			f.Elem = parser.SemanticOf(parser.Postgres, strings.TrimSuffix(f.RawType, "[]"))
			f.Type = schema.Array
		}
		f.Nullable = nullable == "YES"
		f.Default = defaultVal
		f.IsAutoIncrement = isIdentity == "YES" ||
			(defaultVal != nil && strings.HasPrefix(*defaultVal, "nextval("))
		f.Ordinal = len(s.Fields)
		s.Fields = append(s.Fields, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	pk, err := e.primaryKey(ctx, tableName)
	if err != nil {
		return nil, err
	}
	for _, col := range pk {
		if f := s.Field(col); f != nil {
			f.IsPrimaryKey = true
		}
	}
	return s, nil
}

func (e *PostgresExtractor) primaryKey(ctx context.Context, tableName string) ([]string, error) {
	query := `
		SELECT kcu.column_name
		FROM information_schema.table_constraints tc
		JOIN information_schema.key_column_usage kcu
			ON tc.constraint_name = kcu.constraint_name
			AND tc.table_schema = kcu.table_schema
		WHERE tc.table_schema = $1
			AND tc.table_name = $2
			AND tc.constraint_type = 'PRIMARY KEY'
		ORDER BY kcu.ordinal_position
	`
	rows, err := e.conn.Query(ctx, query, e.schemaName, tableName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pk []string
	for rows.Next() {
		var col string
		if err := rows.Scan(&col); err != nil {
			return nil, err
		}
		pk = append(pk, col)
	}
	return pk, rows.Err()
}
