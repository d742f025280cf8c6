// Package infer derives a canonical schema from an arbitrary JSON value.
//
// The walk is a single depth-first pass over the token stream, so field
// order always follows key order in the source text and repeated runs
// over the same text produce identical schemas and nested names. Nested
// objects are registered in a flat side list under generated PascalCase
// names; identical shapes share one entry.
package infer

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/schemaforge/schemaforge/internal/naming"
	"github.com/schemaforge/schemaforge/internal/schema"
)

// Result is the outcome of inferring a schema from JSON text.
type Result struct {
	Schema *schema.Schema
	Nested []schema.NamedSchema
}

// Infer parses jsonText and derives a schema named rootName. The root
// value must be an object, or an array whose first non-null element is an
// object.
func Infer(jsonText, rootName string) (*Result, error) {
	v, err := decodeOrdered(jsonText)
	if err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}

	obj, ok := v.(object)
	if !ok {
		if arr, isArr := v.(array); isArr {
			obj, ok = firstObject(arr)
		}
		if !ok {
			return nil, fmt.Errorf("json root must be an object or an array of objects")
		}
	}

	if rootName == "" {
		rootName = "Root"
	}
	reg := &registry{}
	s := buildSchema(naming.ToPascalCase(rootName), obj, reg)
	return &Result{Schema: s, Nested: reg.schemas}, nil
}

// --- ordered JSON value model ---
//
// encoding/json maps lose key order, so the decoder below keeps objects
// as member slices. Numbers stay json.Number so integer vs float is
// decided by the literal text.

type member struct {
	key string
	val any
}

type object []member

type array []any

func decodeOrdered(text string) (any, error) {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()
	v, err := decodeValue(dec)
	if err != nil {
		return nil, err
	}
	// Reject trailing garbage after the first value.
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("unexpected data after JSON value")
	}
	return v, nil
}

func decodeValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			var obj object
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, _ := keyTok.(string)
				val, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				obj = append(obj, member{key: key, val: val})
			}
			if _, err := dec.Token(); err != nil { // consume '}'
				return nil, err
			}
			return obj, nil
		case '[':
			var arr array
			for dec.More() {
				val, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				arr = append(arr, val)
			}
			if _, err := dec.Token(); err != nil { // consume ']'
				return nil, err
			}
			return arr, nil
		}
		return nil, fmt.Errorf("unexpected delimiter %v", t)
	default:
		return tok, nil // string, json.Number, bool, nil
	}
}

func firstObject(arr array) (object, bool) {
	for _, el := range arr {
		if obj, ok := el.(object); ok {
			return obj, true
		}
	}
	return nil, false
}

// --- schema construction ---

// registry collects named nested schemas, deduplicating identical shapes
// and resolving name collisions with a numeric suffix.
type registry struct {
	schemas []schema.NamedSchema
}

// register returns the canonical name for s, adding it when no existing
// entry has the same shape.
func (r *registry) register(base string, s *schema.Schema) string {
	for i := range r.schemas {
		if schema.SameShape(&r.schemas[i].Schema, s) {
			return r.schemas[i].Name
		}
	}
	name := base
	for suffix := 2; r.taken(name); suffix++ {
		name = fmt.Sprintf("%s%d", base, suffix)
	}
	registered := *s
	registered.Name = name
	r.schemas = append(r.schemas, schema.NamedSchema{Name: name, Schema: registered})
	return name
}

func (r *registry) taken(name string) bool {
	for i := range r.schemas {
		if r.schemas[i].Name == name {
			return true
		}
	}
	return false
}

func buildSchema(name string, obj object, reg *registry) *schema.Schema {
	s := &schema.Schema{Name: name}
	seen := make(map[string]bool)
	for _, m := range obj {
		lower := strings.ToLower(m.key)
		if seen[lower] {
			continue
		}
		seen[lower] = true
		f := buildField(m.key, m.val, reg)
		f.Ordinal = len(s.Fields)
		s.Fields = append(s.Fields, f)
	}
	return s
}

func buildField(key string, val any, reg *registry) schema.Field {
	f := schema.Field{Name: key, Nullable: true}
	switch v := val.(type) {
	case nil:
		f.Type = schema.Unknown
		f.RawType = "null"
	case bool:
		f.Type = schema.Bool
		f.RawType = "boolean"
	case string:
		f.Type = schema.String
		f.RawType = "string"
	case json.Number:
		f.Type = numberType(v)
		f.RawType = "number"
	case object:
		f.Type = schema.Object
		f.RawType = "object"
		nested := buildSchema(naming.ToPascalCase(key), v, reg)
		registeredName := reg.register(naming.ToPascalCase(key), nested)
		nested.Name = registeredName
		f.Nested = nested
	case array:
		f.Type = schema.Array
		f.RawType = "array"
		f.Elem, f.Nested = elementType(key, v, reg)
	}
	return f
}

// numberType distinguishes integers from floats by the literal text: no
// fractional or exponent part means Integer.
func numberType(n json.Number) schema.SemanticType {
	s := n.String()
	if strings.ContainsAny(s, ".eE") {
		return schema.Float
	}
	return schema.Integer
}

// elementType infers the array element type from the first non-null
// element. Empty arrays and all-null arrays stay Unknown.
func elementType(key string, arr array, reg *registry) (schema.SemanticType, *schema.Schema) {
	for _, el := range arr {
		if el == nil {
			continue
		}
		f := buildField(key, el, reg)
		if f.Type == schema.Array {
			// Nested arrays flatten to their element type.
			return f.Elem, f.Nested
		}
		return f.Type, f.Nested
	}
	return schema.Unknown, nil
}
