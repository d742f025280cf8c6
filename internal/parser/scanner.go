package parser

import (
	"strings"
)

// The scanner below is deliberately not a full SQL lexer. It tracks just
// enough state to walk one CREATE TABLE statement: parenthesis depth and
// single-quoted literals (with '' escaping), so that commas inside
// DECIMAL(10,2) or ENUM('a,b') never split a column definition.

// tableBody locates the CREATE TABLE statement in ddl and returns the
// table name and the text between the outermost column-list parentheses.
func tableBody(ddl string) (name, body string, err error) {
	upper := strings.ToUpper(ddl)
	idx := strings.Index(upper, "CREATE TABLE")
	if idx < 0 {
		return "", "", ErrNoCreateTable
	}

	rest := ddl[idx+len("CREATE TABLE"):]
	rest = strings.TrimSpace(rest)
	if upperRest := strings.ToUpper(rest); strings.HasPrefix(upperRest, "IF NOT EXISTS") {
		rest = strings.TrimSpace(rest[len("IF NOT EXISTS"):])
	}

	cs := &colScanner{s: rest}
	name = cs.scanIdent()
	if name == "" {
		return "", "", ErrNoCreateTable
	}
	// Schema-qualified names keep the table part only.
	for cs.peek() == '.' {
		cs.i++
		name = cs.scanIdent()
	}

	cs.skipSpace()
	if cs.peek() != '(' {
		return "", "", ErrUnbalanced
	}
	open := cs.i
	depth := 0
	inString := false
	for i := open; i < len(rest); i++ {
		c := rest[i]
		if inString {
			if c == '\'' {
				if i+1 < len(rest) && rest[i+1] == '\'' {
					i++ // escaped quote
					continue
				}
				inString = false
			}
			continue
		}
		switch c {
		case '\'':
			inString = true
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return name, rest[open+1 : i], nil
			}
		}
	}
	return "", "", ErrUnbalanced
}

// splitColumns splits the column-list body on commas at parenthesis depth
// zero, skipping commas inside type arguments, enum literals, and quoted
// strings.
func splitColumns(body string) []string {
	var defs []string
	depth := 0
	inString := false
	start := 0
	for i := 0; i < len(body); i++ {
		c := body[i]
		if inString {
			if c == '\'' {
				if i+1 < len(body) && body[i+1] == '\'' {
					i++
					continue
				}
				inString = false
			}
			continue
		}
		switch c {
		case '\'':
			inString = true
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				defs = append(defs, strings.TrimSpace(body[start:i]))
				start = i + 1
			}
		}
	}
	if tail := strings.TrimSpace(body[start:]); tail != "" {
		defs = append(defs, tail)
	}
	return defs
}

// colScanner walks one column definition left to right.
type colScanner struct {
	s string
	i int
}

func (cs *colScanner) skipSpace() {
	for cs.i < len(cs.s) {
		switch cs.s[cs.i] {
		case ' ', '\t', '\n', '\r':
			cs.i++
		default:
			return
		}
	}
}

func (cs *colScanner) peek() byte {
	cs.skipSpace()
	if cs.i >= len(cs.s) {
		return 0
	}
	return cs.s[cs.i]
}

func (cs *colScanner) done() bool {
	cs.skipSpace()
	return cs.i >= len(cs.s)
}

// scanIdent reads an identifier, stripping backtick, double-quote, or
// bracket quoting. Returns "" when the next token is not an identifier.
func (cs *colScanner) scanIdent() string {
	cs.skipSpace()
	if cs.i >= len(cs.s) {
		return ""
	}
	switch cs.s[cs.i] {
	case '`':
		return cs.scanQuoted('`', '`')
	case '"':
		return cs.scanQuoted('"', '"')
	case '[':
		return cs.scanQuoted('[', ']')
	default:
		return cs.scanWord()
	}
}

func (cs *colScanner) scanQuoted(open, close byte) string {
	cs.i++ // consume opener
	start := cs.i
	for cs.i < len(cs.s) {
		if cs.s[cs.i] == close {
			// Doubled closer is an escaped character.
			if cs.i+1 < len(cs.s) && cs.s[cs.i+1] == close && open == close {
				cs.i += 2
				continue
			}
			name := cs.s[start:cs.i]
			cs.i++
			if open == close {
				name = strings.ReplaceAll(name, string([]byte{close, close}), string(close))
			}
			return name
		}
		cs.i++
	}
	// Unterminated quote: take the rest.
	name := cs.s[start:]
	cs.i = len(cs.s)
	return name
}

// scanWord reads a bare word: letters, digits, underscores.
func (cs *colScanner) scanWord() string {
	cs.skipSpace()
	start := cs.i
	for cs.i < len(cs.s) {
		c := cs.s[cs.i]
		if c == '_' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' {
			cs.i++
			continue
		}
		break
	}
	return cs.s[start:cs.i]
}

// peekWord returns the next bare word without consuming it.
func (cs *colScanner) peekWord() string {
	save := cs.i
	w := cs.scanWord()
	cs.i = save
	return w
}

// scanGroup reads a balanced parenthesized group including the parens,
// honoring quoted literals.
func (cs *colScanner) scanGroup() string {
	cs.skipSpace()
	if cs.i >= len(cs.s) || cs.s[cs.i] != '(' {
		return ""
	}
	start := cs.i
	depth := 0
	inString := false
	for ; cs.i < len(cs.s); cs.i++ {
		c := cs.s[cs.i]
		if inString {
			if c == '\'' {
				if cs.i+1 < len(cs.s) && cs.s[cs.i+1] == '\'' {
					cs.i++
					continue
				}
				inString = false
			}
			continue
		}
		switch c {
		case '\'':
			inString = true
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				cs.i++
				return cs.s[start:cs.i]
			}
		}
	}
	return cs.s[start:]
}

// scanString reads a single-quoted literal, unescaping doubled quotes.
// Returns ok=false when the next token is not a string literal.
func (cs *colScanner) scanString() (string, bool) {
	cs.skipSpace()
	if cs.i >= len(cs.s) || cs.s[cs.i] != '\'' {
		return "", false
	}
	cs.i++
	var b strings.Builder
	for cs.i < len(cs.s) {
		c := cs.s[cs.i]
		if c == '\'' {
			if cs.i+1 < len(cs.s) && cs.s[cs.i+1] == '\'' {
				b.WriteByte('\'')
				cs.i += 2
				continue
			}
			cs.i++
			return b.String(), true
		}
		b.WriteByte(c)
		cs.i++
	}
	return b.String(), true
}
