// Package parser converts one CREATE TABLE statement into the canonical
// schema model. Each dialect shares a depth-tracked scanner; only the
// identifier quoting, auto-increment spelling, and type tables differ.
//
// Parsing is best effort at the column level: a malformed column
// definition is skipped and the parse continues with a shorter field
// list. Only a missing CREATE TABLE or an unbalanced column list fails
// the whole parse.
package parser

import (
	"errors"
	"strconv"
	"strings"

	"github.com/schemaforge/schemaforge/internal/schema"
)

var (
	// ErrNoCreateTable is returned when the input has no CREATE TABLE
	// statement.
	ErrNoCreateTable = errors.New("no CREATE TABLE statement found")

	// ErrUnbalanced is returned when the column list parenthesis never
	// closes.
	ErrUnbalanced = errors.New("unbalanced parenthesis in column list")
)

// Parse extracts the table name and ordered field list from a single
// CREATE TABLE statement in the given dialect.
func Parse(ddl string, d Dialect) (*schema.Schema, error) {
	name, body, err := tableBody(ddl)
	if err != nil {
		return nil, err
	}

	var fields []schema.Field
	seen := make(map[string]bool)
	var pkCols, uniqueCols []string

	for _, def := range splitColumns(body) {
		if cols, kind, ok := tableConstraint(def); ok {
			switch kind {
			case constraintPrimaryKey:
				pkCols = append(pkCols, cols...)
			case constraintUnique:
				if len(cols) == 1 {
					uniqueCols = append(uniqueCols, cols[0])
				}
			}
			continue
		}

		f, ok := parseColumn(def, d)
		if !ok {
			continue // best-effort: drop the malformed column
		}
		lower := strings.ToLower(f.Name)
		if seen[lower] {
			continue
		}
		seen[lower] = true
		f.Ordinal = len(fields)
		fields = append(fields, f)
	}

	s := &schema.Schema{Name: name, Fields: fields}
	for _, col := range pkCols {
		if f := s.Field(col); f != nil {
			f.IsPrimaryKey = true
			f.Nullable = false
		}
	}
	for _, col := range uniqueCols {
		if f := s.Field(col); f != nil {
			f.IsUnique = true
		}
	}
	return s, nil
}

type constraintKind int

const (
	constraintPrimaryKey constraintKind = iota
	constraintUnique
	constraintOther
)

// tableConstraint recognizes table-level constraint definitions and
// returns the column names they cover. Foreign keys, checks, and plain
// indexes are recognized but not modeled.
func tableConstraint(def string) (cols []string, kind constraintKind, ok bool) {
	cs := &colScanner{s: def}
	word := strings.ToUpper(cs.peekWord())
	switch word {
	case "CONSTRAINT":
		cs.scanWord()
		cs.scanIdent() // constraint name
		return tableConstraint(def[cs.i:])
	case "PRIMARY":
		cs.scanWord()
		if !strings.EqualFold(cs.scanWord(), "KEY") {
			return nil, constraintOther, true
		}
		return groupColumns(cs.scanGroup()), constraintPrimaryKey, true
	case "UNIQUE":
		cs.scanWord()
		// MySQL allows UNIQUE KEY name (cols) / UNIQUE INDEX name (cols).
		if next := strings.ToUpper(cs.peekWord()); next == "KEY" || next == "INDEX" {
			cs.scanWord()
		}
		if cs.peek() != '(' {
			cs.scanIdent() // index name
		}
		return groupColumns(cs.scanGroup()), constraintUnique, true
	case "KEY", "INDEX", "FOREIGN", "CHECK", "FULLTEXT", "SPATIAL", "EXCLUDE":
		return nil, constraintOther, true
	}
	return nil, constraintOther, false
}

// groupColumns splits "(a, `b`, c)" into unquoted column names.
func groupColumns(group string) []string {
	group = strings.TrimPrefix(group, "(")
	group = strings.TrimSuffix(group, ")")
	var cols []string
	for _, part := range strings.Split(group, ",") {
		cs := &colScanner{s: strings.TrimSpace(part)}
		if name := cs.scanIdent(); name != "" {
			cols = append(cols, name)
		}
	}
	return cols
}

// parseColumn scans one column definition: name, type token (with
// arguments and multi-word forms), then constraint flags in any order.
func parseColumn(def string, d Dialect) (schema.Field, bool) {
	cs := &colScanner{s: def}

	name := cs.scanIdent()
	if name == "" {
		return schema.Field{}, false
	}

	rawType, size := scanTypeToken(cs, d)
	if rawType == "" {
		return schema.Field{}, false
	}

	f := schema.Field{
		Name:     name,
		RawType:  rawType,
		Nullable: true,
		Size:     size,
		RawDef:   strings.TrimSpace(def),
	}

	isArray := strings.HasSuffix(rawType, "[]")
	base := SemanticOf(d, rawType)
	if isArray {
		f.Type = schema.Array
		f.Elem = base
	} else {
		f.Type = base
	}
	if d == Postgres && isSerialType(rawType) {
		f.IsAutoIncrement = true
	}

	for !cs.done() {
		switch c := cs.peek(); c {
		case '(', '\'':
			// Stray group or literal with no governing keyword.
			if c == '(' {
				cs.scanGroup()
			} else {
				cs.scanString()
			}
			continue
		}

		word := strings.ToUpper(cs.scanWord())
		switch word {
		case "":
			cs.i++ // unexpected punctuation, skip a byte
		case "PRIMARY":
			if strings.EqualFold(cs.peekWord(), "KEY") {
				cs.scanWord()
				f.IsPrimaryKey = true
				f.Nullable = false
			}
		case "NOT":
			if strings.EqualFold(cs.peekWord(), "NULL") {
				cs.scanWord()
				f.Nullable = false
			}
		case "NULL":
			if !f.IsPrimaryKey {
				f.Nullable = true
			}
		case "UNIQUE":
			f.IsUnique = true
		case "UNSIGNED":
			f.IsUnsigned = true
		case "SIGNED", "ZEROFILL":
			// MySQL numeric display modifiers, not modeled.
		case "AUTO_INCREMENT", "AUTOINCREMENT":
			f.IsAutoIncrement = true
		case "DEFAULT":
			if v, ok := scanDefault(cs); ok {
				f.Default = &v
			}
		case "COMMENT":
			if v, ok := cs.scanString(); ok {
				f.Comment = v
			}
		case "COLLATE":
			cs.scanIdent()
		case "CHARACTER":
			if strings.EqualFold(cs.peekWord(), "SET") {
				cs.scanWord()
				cs.scanIdent()
			}
		case "REFERENCES":
			cs.scanIdent()
			if cs.peek() == '.' {
				cs.i++
				cs.scanIdent()
			}
			cs.scanGroup()
		case "CHECK":
			cs.scanGroup()
		case "ON":
			// ON UPDATE CURRENT_TIMESTAMP, ON DELETE CASCADE, ...
			cs.scanWord()
			cs.scanWord()
			cs.scanGroup()
		case "GENERATED":
			// GENERATED ALWAYS AS (expr) STORED|VIRTUAL
			cs.scanWord() // ALWAYS / BY
			cs.scanWord() // AS / DEFAULT
			cs.scanGroup()
		default:
			// Unrecognized keyword: ignore and continue.
		}
	}

	return f, true
}

// scanTypeToken reads the type name plus any argument list, multi-word
// continuation (DOUBLE PRECISION, CHARACTER VARYING, TIMESTAMP WITH TIME
// ZONE), and PostgreSQL array suffix. Returns the verbatim token and the
// leading length/precision argument when present.
func scanTypeToken(cs *colScanner, d Dialect) (string, int64) {
	word := cs.scanWord()
	if word == "" {
		return "", 0
	}
	token := word

	// Multi-word type names.
	for {
		next := strings.ToUpper(cs.peekWord())
		if next == "PRECISION" || next == "VARYING" {
			token += " " + cs.scanWord()
			continue
		}
		if d == Postgres && (next == "WITH" || next == "WITHOUT") {
			save := cs.i
			w1 := cs.scanWord()
			if strings.EqualFold(cs.peekWord(), "TIME") {
				w2 := cs.scanWord()
				if strings.EqualFold(cs.peekWord(), "ZONE") {
					token += " " + w1 + " " + w2 + " " + cs.scanWord()
					continue
				}
			}
			cs.i = save
		}
		break
	}

	var size int64
	if cs.peek() == '(' {
		group := cs.scanGroup()
		token += group
		size = leadingNumber(group)
	}

	// PostgreSQL array suffix.
	if cs.peek() == '[' {
		cs.i++
		if cs.peek() == ']' {
			cs.i++
			token += "[]"
		}
	}

	return token, size
}

// scanDefault reads the value after DEFAULT: a quoted literal, a
// parenthesized expression, or a bare word optionally followed by an
// argument list (CURRENT_TIMESTAMP(6), now()).
func scanDefault(cs *colScanner) (string, bool) {
	switch cs.peek() {
	case '\'':
		// Keep the quoted form so DEFAULT clauses reconstruct verbatim.
		v, ok := cs.scanString()
		if !ok {
			return "", false
		}
		return "'" + strings.ReplaceAll(v, "'", "''") + "'", true
	case '(':
		return cs.scanGroup(), true
	case 0:
		return "", false
	}
	sign := ""
	if c := cs.peek(); c == '-' || c == '+' {
		sign = string(c)
		cs.i++
	}
	word := sign + cs.scanWord()
	if word == sign {
		return "", false
	}
	if cs.peek() == '.' {
		cs.i++
		word += "." + cs.scanWord()
	}
	if cs.peek() == '(' {
		word += cs.scanGroup()
	}
	return word, true
}

// leadingNumber extracts the first integer from "(50)" or "(10,2)".
func leadingNumber(group string) int64 {
	group = strings.TrimPrefix(group, "(")
	if idx := strings.IndexAny(group, ",)"); idx >= 0 {
		group = group[:idx]
	}
	n, err := strconv.ParseInt(strings.TrimSpace(group), 10, 64)
	if err != nil {
		return 0
	}
	return n
}
