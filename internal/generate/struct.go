// Package generate renders a canonical schema as Go struct definitions or
// protobuf message definitions. Output is deterministic: the same schema
// and options always produce byte-identical text.
package generate

import (
	"fmt"
	"strings"

	"github.com/schemaforge/schemaforge/internal/naming"
	"github.com/schemaforge/schemaforge/internal/schema"
	"github.com/schemaforge/schemaforge/internal/typemap"
)

// StructOptions configures Go struct generation.
type StructOptions struct {
	// Name overrides the schema's own name for the root struct.
	Name string

	// Package, when set, emits a package clause and any needed imports.
	Package string

	// TableNameMethod emits a TableName() accessor returning the source
	// table name.
	TableNameMethod bool

	// InlineNested embeds nested object types as anonymous structs
	// instead of separate top-level definitions.
	InlineNested bool

	// IntWidth and FloatWidth select numeric field types (default
	// int64 / float64).
	IntWidth   string
	FloatWidth string
}

// Struct renders s (plus any named nested schemas) as Go source text.
func Struct(s *schema.Schema, nested []schema.NamedSchema, opts StructOptions) string {
	name := opts.Name
	if name == "" {
		name = naming.ToPascalCase(s.Name)
	}
	mapOpts := typemap.Options{IntWidth: opts.IntWidth, FloatWidth: opts.FloatWidth}

	var body strings.Builder
	writeStructType(&body, name, s, nested, opts, mapOpts, 0)
	body.WriteString("}\n")

	if opts.TableNameMethod {
		fmt.Fprintf(&body, "\nfunc (%s) TableName() string {\n\treturn %q\n}\n", name, s.Name)
	}

	if !opts.InlineNested {
		for i := range nested {
			ns := &nested[i]
			body.WriteString("\n")
			writeStructType(&body, ns.Name, &ns.Schema, nested, opts, mapOpts, 0)
			body.WriteString("}\n")
		}
	}

	var out strings.Builder
	if opts.Package != "" {
		fmt.Fprintf(&out, "package %s\n\n", opts.Package)
		if strings.Contains(body.String(), "time.Time") {
			out.WriteString("import \"time\"\n\n")
		}
	}
	out.WriteString(body.String())
	return out.String()
}

// writeStructType writes "type Name struct {" plus the field block,
// leaving the closing brace to the caller so inline nesting can reuse it.
func writeStructType(b *strings.Builder, name string, s *schema.Schema, nested []schema.NamedSchema, opts StructOptions, mapOpts typemap.Options, depth int) {
	indent := strings.Repeat("\t", depth)
	fmt.Fprintf(b, "%stype %s struct {\n", indent, name)
	writeFields(b, s, opts, mapOpts, depth+1)
}

func writeFields(b *strings.Builder, s *schema.Schema, opts StructOptions, mapOpts typemap.Options, depth int) {
	indent := strings.Repeat("\t", depth)

	nameW, typeW := 0, 0
	resolved := make([]string, len(s.Fields))
	exported := make([]string, len(s.Fields))
	for i := range s.Fields {
		f := &s.Fields[i]
		exported[i] = naming.ToPascalCase(f.Name)
		resolved[i] = fieldType(f, opts, mapOpts)
		if f.Nested != nil && opts.InlineNested {
			continue // inline structs are excluded from column alignment
		}
		if len(exported[i]) > nameW {
			nameW = len(exported[i])
		}
		if len(resolved[i]) > typeW {
			typeW = len(resolved[i])
		}
	}

	for i := range s.Fields {
		f := &s.Fields[i]
		tag := fieldTag(f)

		if f.Nested != nil && opts.InlineNested {
			prefix := ""
			if f.Type == schema.Array {
				prefix = "[]"
			}
			fmt.Fprintf(b, "%s%s %sstruct {\n", indent, exported[i], prefix)
			writeFields(b, f.Nested, opts, mapOpts, depth+1)
			fmt.Fprintf(b, "%s} %s", indent, tag)
		} else {
			fmt.Fprintf(b, "%s%-*s %-*s %s", indent, nameW, exported[i], typeW, resolved[i], tag)
		}
		if f.Comment != "" {
			fmt.Fprintf(b, " // %s", f.Comment)
		}
		b.WriteString("\n")
	}
}

// fieldType resolves the Go type of a field, using the nested schema's
// generated name for composite types.
func fieldType(f *schema.Field, opts StructOptions, mapOpts typemap.Options) string {
	if f.Nested != nil {
		if f.Type == schema.Array {
			return "[]" + f.Nested.Name
		}
		return f.Nested.Name
	}
	if f.Type == schema.Array {
		elem := typemap.MapField(*f, typemap.Go, mapOpts)
		if elem == "" {
			elem = "any"
		}
		return "[]" + elem
	}
	return typemap.MapField(*f, typemap.Go, mapOpts)
}

// fieldTag builds the combined json + gorm struct tag.
func fieldTag(f *schema.Field) string {
	var gorm []string
	gorm = append(gorm, "column:"+f.Name)
	if f.IsPrimaryKey {
		gorm = append(gorm, "primaryKey")
	}
	if f.IsAutoIncrement {
		gorm = append(gorm, "autoIncrement")
	}
	if !f.Nullable && !f.IsPrimaryKey {
		gorm = append(gorm, "not null")
	}
	if f.IsUnique {
		gorm = append(gorm, "unique")
	}
	if f.Size > 0 && f.Type == schema.String {
		gorm = append(gorm, fmt.Sprintf("size:%d", f.Size))
	}
	return fmt.Sprintf("`json:%q gorm:%q`", f.Name, strings.Join(gorm, ";"))
}
