package generate

import (
	"fmt"
	"strings"

	"github.com/schemaforge/schemaforge/internal/naming"
	"github.com/schemaforge/schemaforge/internal/schema"
	"github.com/schemaforge/schemaforge/internal/typemap"
)

// NestedMode selects where generated nested messages are placed.
type NestedMode int

const (
	// NestedInline nests messages inside their parent message.
	NestedInline NestedMode = iota
	// NestedSeparate emits nested messages as top-level siblings.
	NestedSeparate
)

// ProtoOptions configures protobuf message generation.
type ProtoOptions struct {
	// Name overrides the schema's own name for the root message.
	Name string

	// Package, when set, emits a package statement.
	Package string

	// Syntax is "proto3" (default) or "proto2".
	Syntax string

	// NestedMode places nested messages inline or as siblings.
	NestedMode NestedMode

	// IntWidth and FloatWidth select numeric field types (default
	// int64 / double).
	IntWidth   string
	FloatWidth string
}

// Proto renders s (plus any named nested schemas) as a .proto document.
//
// Field numbers are assigned sequentially from 1 in declaration order.
// They are positional: reordering fields and regenerating produces
// different numbers, so generated messages from two independent runs are
// only wire-compatible when the field order did not change.
func Proto(s *schema.Schema, nested []schema.NamedSchema, opts ProtoOptions) string {
	syntax := opts.Syntax
	if syntax == "" {
		syntax = "proto3"
	}
	name := opts.Name
	if name == "" {
		name = naming.ToPascalCase(s.Name)
	}
	mapOpts := typemap.Options{IntWidth: opts.IntWidth, FloatWidth: opts.FloatWidth}

	var b strings.Builder
	fmt.Fprintf(&b, "syntax = %q;\n\n", syntax)
	if opts.Package != "" {
		fmt.Fprintf(&b, "package %s;\n\n", opts.Package)
	}

	writeMessage(&b, name, s, nested, syntax, opts.NestedMode, mapOpts, 0)

	if opts.NestedMode == NestedSeparate {
		for i := range nested {
			b.WriteString("\n")
			writeMessage(&b, nested[i].Name, &nested[i].Schema, nested, syntax, opts.NestedMode, mapOpts, 0)
		}
	}
	return b.String()
}

func writeMessage(b *strings.Builder, name string, s *schema.Schema, nested []schema.NamedSchema, syntax string, mode NestedMode, mapOpts typemap.Options, depth int) {
	indent := strings.Repeat("  ", depth)
	fmt.Fprintf(b, "%smessage %s {\n", indent, name)

	if mode == NestedInline && depth == 0 {
		// Inline mode nests every registered message inside the root.
		for i := range nested {
			writeMessage(b, nested[i].Name, &nested[i].Schema, nil, syntax, NestedSeparate, mapOpts, depth+1)
			if i < len(nested)-1 || len(s.Fields) > 0 {
				b.WriteString("\n")
			}
		}
	}

	fieldIndent := indent + "  "
	for i := range s.Fields {
		f := &s.Fields[i]
		label := ""
		if f.Type == schema.Array {
			label = "repeated "
		} else if syntax == "proto2" {
			label = "optional "
		}
		fmt.Fprintf(b, "%s%s%s %s = %d;", fieldIndent, label, protoFieldType(f, mapOpts), naming.ToSnakeCase(f.Name), i+1)
		if f.Comment != "" {
			fmt.Fprintf(b, " // %s", f.Comment)
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(b, "%s}\n", indent)
}

func protoFieldType(f *schema.Field, mapOpts typemap.Options) string {
	if f.Nested != nil {
		return f.Nested.Name
	}
	tok := typemap.MapField(*f, typemap.Proto, mapOpts)
	if tok == "" {
		tok = "string"
	}
	return tok
}
