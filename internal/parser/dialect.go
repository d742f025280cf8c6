package parser

import (
	"strings"

	"github.com/schemaforge/schemaforge/internal/schema"
)

// Dialect identifies one of the supported SQL variants.
type Dialect int

const (
	MySQL Dialect = iota
	Postgres
	SQLite
)

// String returns the lowercase dialect name.
func (d Dialect) String() string {
	switch d {
	case Postgres:
		return "postgresql"
	case SQLite:
		return "sqlite"
	default:
		return "mysql"
	}
}

// Per-dialect raw-type → semantic-type tables. Keys are the lowercase base
// type name with any length/precision arguments stripped. Tokens absent
// from the table normalize to Unknown with the raw token preserved.

var mysqlTypes = map[string]schema.SemanticType{
	"tinyint":   schema.Integer,
	"smallint":  schema.Integer,
	"mediumint": schema.Integer,
	"int":       schema.Integer,
	"integer":   schema.Integer,
	"bigint":    schema.Integer,
	"year":      schema.Integer,
	"decimal":   schema.Float,
	"numeric":   schema.Float,
	"float":     schema.Float,
	"double":    schema.Float,
	"real":      schema.Float,
	"char":      schema.String,
	"varchar":   schema.String,
	"tinytext":  schema.String,
	"text":      schema.String,
	"mediumtext": schema.String,
	"longtext":  schema.String,
	"enum":      schema.String,
	"set":       schema.String,
	"json":      schema.String,
	"bool":      schema.Bool,
	"boolean":   schema.Bool,
	"date":      schema.DateTime,
	"datetime":  schema.DateTime,
	"timestamp": schema.DateTime,
	"time":      schema.DateTime,
	"binary":    schema.Binary,
	"varbinary": schema.Binary,
	"tinyblob":  schema.Binary,
	"blob":      schema.Binary,
	"mediumblob": schema.Binary,
	"longblob":  schema.Binary,
	"bit":       schema.Binary,
}

var postgresTypes = map[string]schema.SemanticType{
	"smallint":          schema.Integer,
	"int":               schema.Integer,
	"integer":           schema.Integer,
	"int2":              schema.Integer,
	"int4":              schema.Integer,
	"int8":              schema.Integer,
	"bigint":            schema.Integer,
	"smallserial":       schema.Integer,
	"serial":            schema.Integer,
	"bigserial":         schema.Integer,
	"numeric":           schema.Float,
	"decimal":           schema.Float,
	"real":              schema.Float,
	"double precision":  schema.Float,
	"money":             schema.Float,
	"char":              schema.String,
	"character":         schema.String,
	"bpchar":            schema.String,
	"varchar":           schema.String,
	"character varying": schema.String,
	"text":              schema.String,
	"uuid":              schema.String,
	"json":              schema.String,
	"jsonb":             schema.String,
	"bool":              schema.Bool,
	"boolean":           schema.Bool,
	"date":              schema.DateTime,
	"time":              schema.DateTime,
	"timetz":            schema.DateTime,
	"timestamp":         schema.DateTime,
	"timestamptz":       schema.DateTime,
	"timestamp with time zone":    schema.DateTime,
	"timestamp without time zone": schema.DateTime,
	"bytea":             schema.Binary,
}

var sqliteTypes = map[string]schema.SemanticType{
	"int":       schema.Integer,
	"integer":   schema.Integer,
	"tinyint":   schema.Integer,
	"smallint":  schema.Integer,
	"mediumint": schema.Integer,
	"bigint":    schema.Integer,
	"real":      schema.Float,
	"double":    schema.Float,
	"float":     schema.Float,
	"numeric":   schema.Float,
	"decimal":   schema.Float,
	"char":      schema.String,
	"varchar":   schema.String,
	"nchar":     schema.String,
	"nvarchar":  schema.String,
	"text":      schema.String,
	"clob":      schema.String,
	"bool":      schema.Bool,
	"boolean":   schema.Bool,
	"date":      schema.DateTime,
	"datetime":  schema.DateTime,
	"timestamp": schema.DateTime,
	"blob":      schema.Binary,
}

// SemanticOf maps a raw type token to its semantic type for the given
// dialect. The token may carry length/precision arguments or an array
// suffix; only the base name participates in the lookup.
func SemanticOf(d Dialect, rawType string) schema.SemanticType {
	base := baseTypeName(rawType)
	var table map[string]schema.SemanticType
	switch d {
	case Postgres:
		table = postgresTypes
	case SQLite:
		table = sqliteTypes
	default:
		table = mysqlTypes
	}
	if t, ok := table[base]; ok {
		return t
	}
	return schema.Unknown
}

// baseTypeName lowercases a raw type token and strips argument lists and
// array suffixes: "VARCHAR(50)" → "varchar", "TEXT[]" → "text".
func baseTypeName(rawType string) string {
	s := strings.ToLower(strings.TrimSpace(rawType))
	s = strings.TrimSuffix(s, "[]")
	for trimmed := true; trimmed; {
		trimmed = false
		for _, mod := range []string{" unsigned", " signed", " zerofill"} {
			if strings.HasSuffix(s, mod) {
				s = strings.TrimSuffix(s, mod)
				trimmed = true
			}
		}
	}
	if idx := strings.IndexByte(s, '('); idx >= 0 {
		// Multi-word types keep the words after the argument list too:
		// "character varying(50)" → "character varying".
		rest := ""
		if close := strings.IndexByte(s[idx:], ')'); close >= 0 {
			rest = s[idx+close+1:]
		}
		s = strings.TrimSpace(s[:idx]) + rest
	}
	return strings.TrimSpace(s)
}

// isSerialType reports whether a PostgreSQL type token implies
// auto-increment behavior.
func isSerialType(rawType string) bool {
	switch baseTypeName(rawType) {
	case "serial", "bigserial", "smallserial":
		return true
	}
	return false
}
