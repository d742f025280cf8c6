package schema

import "strings"

// SemanticType is the dialect-independent type variant a source-specific
// type normalizes to.
type SemanticType int

const (
	Unknown SemanticType = iota
	Integer
	Float
	String
	Bool
	DateTime
	Binary
	Object
	Array
)

// String returns the variant name, mainly for diagnostics and tests.
func (t SemanticType) String() string {
	switch t {
	case Integer:
		return "integer"
	case Float:
		return "float"
	case String:
		return "string"
	case Bool:
		return "bool"
	case DateTime:
		return "datetime"
	case Binary:
		return "binary"
	case Object:
		return "object"
	case Array:
		return "array"
	default:
		return "unknown"
	}
}

// Field represents one normalized column or JSON property.
type Field struct {
	Name            string
	RawType         string // source type token, verbatim (e.g. "varchar(50)")
	Type            SemanticType
	Elem            SemanticType // element type for Array fields, Unknown otherwise
	Nullable        bool
	IsPrimaryKey    bool
	IsAutoIncrement bool
	IsUnsigned      bool
	IsUnique        bool
	Default         *string
	Comment         string
	Ordinal         int   // 0-based declaration order
	Size            int64 // declared length/precision, 0 when absent

	// Nested is set iff Type is Object, or Array with Elem == Object.
	Nested *Schema

	// RawDef carries the original column-definition substring so ALTER
	// statements can reuse it instead of a lossy reconstruction.
	RawDef string
}

// Schema is the canonical representation of one table, JSON object, or
// generated message. It is built by exactly one parse call and never
// mutated afterward; generators and the diff engine only read it.
type Schema struct {
	Name   string
	Fields []Field
}

// Field returns the field with the given name under case-insensitive
// comparison, or nil if absent.
func (s *Schema) Field(name string) *Field {
	for i := range s.Fields {
		if strings.EqualFold(s.Fields[i].Name, name) {
			return &s.Fields[i]
		}
	}
	return nil
}

// NamedSchema is a nested object shape registered under a generated
// PascalCase name so identical shapes can be shared by name.
type NamedSchema struct {
	Name string
	Schema
}

// SameShape reports whether two schemas declare the same field names,
// semantic types, and nested shapes in the same order. Used to
// deduplicate nested schemas produced by JSON inference.
func SameShape(a, b *Schema) bool {
	if a == nil || b == nil {
		return a == b
	}
	if len(a.Fields) != len(b.Fields) {
		return false
	}
	for i := range a.Fields {
		fa, fb := &a.Fields[i], &b.Fields[i]
		if fa.Name != fb.Name || fa.Type != fb.Type || fa.Elem != fb.Elem {
			return false
		}
		if (fa.Nested == nil) != (fb.Nested == nil) {
			return false
		}
		if fa.Nested != nil && !SameShape(fa.Nested, fb.Nested) {
			return false
		}
	}
	return true
}
