package typemap

import (
	"testing"

	"github.com/schemaforge/schemaforge/internal/schema"
)

func TestMapGo(t *testing.T) {
	tests := []struct {
		semantic schema.SemanticType
		opts     Options
		want     string
	}{
		{schema.Integer, Options{}, "int64"},
		{schema.Integer, Options{IntWidth: "int32"}, "int32"},
		{schema.Float, Options{}, "float64"},
		{schema.Float, Options{FloatWidth: "float32"}, "float32"},
		{schema.String, Options{}, "string"},
		{schema.Bool, Options{}, "bool"},
		{schema.DateTime, Options{}, "time.Time"},
		{schema.Binary, Options{}, "[]byte"},
		{schema.Unknown, Options{}, "string"},
		{schema.Object, Options{}, ""},
		{schema.Array, Options{}, ""},
	}

	for _, tt := range tests {
		if got := Map(tt.semantic, Go, tt.opts); got != tt.want {
			t.Errorf("Map(%v, Go, %+v) = %q, want %q", tt.semantic, tt.opts, got, tt.want)
		}
	}
}

func TestMapProto(t *testing.T) {
	tests := []struct {
		semantic schema.SemanticType
		opts     Options
		want     string
	}{
		{schema.Integer, Options{}, "int64"},
		{schema.Integer, Options{IntWidth: "sint32"}, "sint32"},
		{schema.Float, Options{}, "double"},
		{schema.Float, Options{FloatWidth: "float"}, "float"},
		{schema.String, Options{}, "string"},
		{schema.Bool, Options{}, "bool"},
		{schema.DateTime, Options{}, "string"},
		{schema.Binary, Options{}, "bytes"},
		{schema.Unknown, Options{}, "string"},
	}

	for _, tt := range tests {
		if got := Map(tt.semantic, Proto, tt.opts); got != tt.want {
			t.Errorf("Map(%v, Proto, %+v) = %q, want %q", tt.semantic, tt.opts, got, tt.want)
		}
	}
}

func TestMapFieldUnsigned(t *testing.T) {
	tests := []struct {
		name   string
		field  schema.Field
		target Target
		opts   Options
		want   string
	}{
		{
			name:   "unsigned int64 go",
			field:  schema.Field{Type: schema.Integer, IsUnsigned: true},
			target: Go,
			want:   "uint64",
		},
		{
			name:   "unsigned int32 go",
			field:  schema.Field{Type: schema.Integer, IsUnsigned: true},
			target: Go,
			opts:   Options{IntWidth: "int32"},
			want:   "uint32",
		},
		{
			name:   "unsigned proto sint64",
			field:  schema.Field{Type: schema.Integer, IsUnsigned: true},
			target: Proto,
			opts:   Options{IntWidth: "sint64"},
			want:   "uint64",
		},
		{
			name:   "unsigned ignored for strings",
			field:  schema.Field{Type: schema.String, IsUnsigned: true},
			target: Go,
			want:   "string",
		},
		{
			name:   "array folds to element type",
			field:  schema.Field{Type: schema.Array, Elem: schema.Integer},
			target: Go,
			want:   "int64",
		},
		{
			name:   "unsigned array element",
			field:  schema.Field{Type: schema.Array, Elem: schema.Integer, IsUnsigned: true},
			target: Go,
			want:   "uint64",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MapField(tt.field, tt.target, tt.opts); got != tt.want {
				t.Errorf("MapField() = %q, want %q", got, tt.want)
			}
		})
	}
}
