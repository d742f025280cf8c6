// Package typemap holds the pure lookup tables mapping semantic types to
// output-format type tokens. Mapping is total: every semantic type has a
// token for every target, and unmapped or Unknown types deliberately fall
// back to the target's most permissive scalar (string) rather than
// failing: generated code with a too-wide type beats no code.
package typemap

import "github.com/schemaforge/schemaforge/internal/schema"

// Target identifies an output format with its own type vocabulary.
type Target int

const (
	// Go targets Go struct field types.
	Go Target = iota
	// Proto targets protobuf scalar types.
	Proto
)

// Options selects preferred numeric widths, e.g. "int32" over the
// default "int64".
type Options struct {
	IntWidth   string // Go: int32/int64/int; Proto: int32/int64/sint64/...
	FloatWidth string // Go: float32/float64; Proto: float/double
}

// Map returns the type token for a semantic type in the target format.
// Object and Array map to the empty string: composite types take the
// caller-supplied nested schema name, never a container keyword here.
func Map(t schema.SemanticType, target Target, opts Options) string {
	switch target {
	case Proto:
		return protoToken(t, opts)
	default:
		return goToken(t, opts)
	}
}

// MapField maps a field, folding in the unsigned flag for integer types.
func MapField(f schema.Field, target Target, opts Options) string {
	t := f.Type
	if t == schema.Array {
		t = f.Elem
	}
	tok := Map(t, target, opts)
	if t == schema.Integer && f.IsUnsigned {
		tok = unsignedOf(tok, target)
	}
	return tok
}

func goToken(t schema.SemanticType, opts Options) string {
	switch t {
	case schema.Integer:
		if opts.IntWidth != "" {
			return opts.IntWidth
		}
		return "int64"
	case schema.Float:
		if opts.FloatWidth != "" {
			return opts.FloatWidth
		}
		return "float64"
	case schema.String:
		return "string"
	case schema.Bool:
		return "bool"
	case schema.DateTime:
		return "time.Time"
	case schema.Binary:
		return "[]byte"
	case schema.Object, schema.Array:
		return ""
	default:
		return "string"
	}
}

func protoToken(t schema.SemanticType, opts Options) string {
	switch t {
	case schema.Integer:
		if opts.IntWidth != "" {
			return opts.IntWidth
		}
		return "int64"
	case schema.Float:
		if opts.FloatWidth != "" {
			return opts.FloatWidth
		}
		return "double"
	case schema.String:
		return "string"
	case schema.Bool:
		return "bool"
	case schema.DateTime:
		// Proto has no scalar datetime; RFC 3339 text keeps messages
		// self-describing without a well-known-types import.
		return "string"
	case schema.Binary:
		return "bytes"
	case schema.Object, schema.Array:
		return ""
	default:
		return "string"
	}
}

func unsignedOf(tok string, target Target) string {
	switch tok {
	case "int", "int8", "int16", "int32", "int64":
		return "u" + tok
	}
	if target == Proto {
		switch tok {
		case "sint32", "sfixed32":
			return "uint32"
		case "sint64", "sfixed64":
			return "uint64"
		}
	}
	return tok
}
