// Package detect classifies raw text into one of the supported source
// formats using a fixed-priority heuristic chain. Detection never fails;
// text that matches nothing resolves to FormatUnknown.
package detect

import (
	"encoding/json"
	"strings"
)

// Format identifies a supported input format.
type Format int

const (
	FormatUnknown Format = iota
	FormatMySQL
	FormatPostgres
	FormatSQLite
	FormatJSON
	FormatYAML
	FormatTOML
	FormatXML
)

// String returns the lowercase format name used in CLI flags and output.
func (f Format) String() string {
	switch f {
	case FormatMySQL:
		return "mysql"
	case FormatPostgres:
		return "postgresql"
	case FormatSQLite:
		return "sqlite"
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	case FormatTOML:
		return "toml"
	case FormatXML:
		return "xml"
	default:
		return "unknown"
	}
}

// IsDialect reports whether the format is one of the SQL dialects.
func (f Format) IsDialect() bool {
	return f == FormatMySQL || f == FormatPostgres || f == FormatSQLite
}

// dialectCheck pairs a dialect with the markers that identify it.
// The slice order is the detection priority: DDL carrying markers of two
// dialects resolves to whichever entry comes first.
type dialectCheck struct {
	format  Format
	markers []string
}

var dialectChecks = []dialectCheck{
	{FormatPostgres, []string{"SERIAL", "BIGSERIAL", "UUID", "JSONB", "TIMESTAMPTZ", "[]"}},
	{FormatMySQL, []string{"AUTO_INCREMENT", "TINYINT", "COMMENT '", "ENGINE="}},
	{FormatSQLite, []string{"AUTOINCREMENT"}},
}

// Detect classifies text into a Format. It never returns an error;
// ambiguous input resolves to FormatUnknown.
func Detect(text string) Format {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return FormatUnknown
	}

	upper := strings.ToUpper(trimmed)
	if strings.Contains(upper, "CREATE TABLE") {
		for _, check := range dialectChecks {
			for _, marker := range check.markers {
				if strings.Contains(upper, marker) {
					return check.format
				}
			}
		}
		// Plain ANSI-looking DDL defaults to MySQL.
		return FormatMySQL
	}

	if looksLikeJSON(trimmed) {
		return FormatJSON
	}
	if looksLikeYAML(trimmed) {
		return FormatYAML
	}
	if looksLikeTOML(trimmed) {
		return FormatTOML
	}
	if looksLikeXML(trimmed) {
		return FormatXML
	}
	return FormatUnknown
}

func looksLikeJSON(text string) bool {
	if !strings.HasPrefix(text, "{") && !strings.HasPrefix(text, "[") {
		return false
	}
	return json.Valid([]byte(text))
}

// looksLikeYAML checks for "key: value" or "- item" line shapes while
// rejecting XML- and TOML-shaped text.
func looksLikeYAML(text string) bool {
	if strings.HasPrefix(text, "<") {
		return false
	}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			return false // TOML section header
		}
		if strings.HasPrefix(line, "- ") {
			return true
		}
		if idx := strings.Index(line, ": "); idx > 0 {
			return true
		}
		if strings.HasSuffix(line, ":") && !strings.Contains(line, " ") {
			return true
		}
		return false
	}
	return false
}

// looksLikeTOML checks for "[section]" headers or "key = value" lines
// that are not YAML-shaped.
func looksLikeTOML(text string) bool {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			return true
		}
		if idx := strings.Index(line, " = "); idx > 0 && !strings.Contains(line[:idx], ": ") {
			return true
		}
		return false
	}
	return false
}

func looksLikeXML(text string) bool {
	if strings.HasPrefix(text, "<?xml") {
		return true
	}
	return strings.HasPrefix(text, "<") && strings.HasSuffix(text, ">")
}
