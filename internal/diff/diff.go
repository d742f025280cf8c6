// Package diff computes a minimal, deterministically ordered ALTER
// script that migrates a target table definition to a source (desired)
// definition. The two DDL texts are parsed independently; fields are
// matched by case-insensitive name, never by position.
//
// Statement order is fixed: additions in source declaration order, then
// modifications in source order, then removals in target order. Column
// repositioning (AFTER <col>) is never emitted.
package diff

import (
	"fmt"
	"strings"

	"github.com/schemaforge/schemaforge/internal/detect"
	"github.com/schemaforge/schemaforge/internal/parser"
	"github.com/schemaforge/schemaforge/internal/schema"
)

// Diff parses targetDDL (the current definition) and sourceDDL (the
// desired definition) and returns the ALTER statements that migrate the
// former to the latter. It never fails: unparseable input and identical
// schemas produce a single explanatory comment line instead.
func Diff(targetDDL, sourceDDL string) []string {
	target, terr := parse(targetDDL)
	source, serr := parse(sourceDDL)
	switch {
	case terr != nil && serr != nil:
		return []string{"-- cannot parse either schema; no statements generated"}
	case terr != nil:
		return []string{fmt.Sprintf("-- cannot parse target schema: %v", terr)}
	case serr != nil:
		return []string{fmt.Sprintf("-- cannot parse source schema: %v", serr)}
	}

	var stmts []string
	table := target.Name
	if !strings.EqualFold(target.Name, source.Name) {
		stmts = append(stmts, fmt.Sprintf("-- table name mismatch: target %q, source %q; statements use %q",
			target.Name, source.Name, target.Name))
	}

	// Additions, in source order.
	for i := range source.Fields {
		f := &source.Fields[i]
		if target.Field(f.Name) == nil {
			stmts = append(stmts, fmt.Sprintf("ALTER TABLE `%s` ADD COLUMN %s;", table, columnDef(f)))
		}
	}

	// Modifications, in source order.
	for i := range source.Fields {
		f := &source.Fields[i]
		existing := target.Field(f.Name)
		if existing != nil && changed(existing, f) {
			stmts = append(stmts, fmt.Sprintf("ALTER TABLE `%s` MODIFY COLUMN %s;", table, reconstruct(f)))
		}
	}

	// Removals, in target order.
	for i := range target.Fields {
		f := &target.Fields[i]
		if source.Field(f.Name) == nil {
			stmts = append(stmts, fmt.Sprintf("ALTER TABLE `%s` DROP COLUMN `%s`;", table, f.Name))
		}
	}

	if len(stmts) == 0 {
		return []string{"-- schemas are identical; no changes required"}
	}
	return stmts
}

func parse(ddl string) (*schema.Schema, error) {
	d := parser.MySQL
	switch detect.Detect(ddl) {
	case detect.FormatPostgres:
		d = parser.Postgres
	case detect.FormatSQLite:
		d = parser.SQLite
	}
	return parser.Parse(ddl, d)
}

// changed compares the normalized definitions of two same-named fields:
// case-insensitive type string, nullability, auto-increment, and comment.
func changed(target, source *schema.Field) bool {
	return !strings.EqualFold(target.RawType, source.RawType) ||
		target.Nullable != source.Nullable ||
		target.IsAutoIncrement != source.IsAutoIncrement ||
		target.Comment != source.Comment
}

// columnDef prefers the original column-definition substring so ADD
// statements carry clauses the canonical model does not represent
// (DEFAULT expressions, collations). Reconstruction is the fallback.
func columnDef(f *schema.Field) string {
	if f.RawDef != "" {
		return f.RawDef
	}
	return reconstruct(f)
}

// reconstruct synthesizes a column definition from the normalized field.
// MODIFY statements always reconstruct: the normalized shape is the
// desired one, and the original substring is what is being changed.
func reconstruct(f *schema.Field) string {
	parts := []string{fmt.Sprintf("`%s`", f.Name), f.RawType}
	if f.IsUnsigned {
		parts = append(parts, "UNSIGNED")
	}
	if !f.Nullable {
		parts = append(parts, "NOT NULL")
	}
	if f.IsAutoIncrement {
		parts = append(parts, "AUTO_INCREMENT")
	}
	if f.Default != nil {
		parts = append(parts, "DEFAULT "+*f.Default)
	}
	if f.Comment != "" {
		parts = append(parts, fmt.Sprintf("COMMENT '%s'", strings.ReplaceAll(f.Comment, "'", "''")))
	}
	return strings.Join(parts, " ")
}
