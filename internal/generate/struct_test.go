package generate

import (
	"strings"
	"testing"

	"github.com/schemaforge/schemaforge/internal/schema"
)

func usersSchema() *schema.Schema {
	return &schema.Schema{
		Name: "users",
		Fields: []schema.Field{
			{Name: "id", Type: schema.Integer, IsPrimaryKey: true, IsAutoIncrement: true, Ordinal: 0},
			{Name: "name", Type: schema.String, Size: 50, Ordinal: 1},
			{Name: "created_at", Type: schema.DateTime, Nullable: true, Ordinal: 2},
		},
	}
}

func TestStruct(t *testing.T) {
	got := Struct(usersSchema(), nil, StructOptions{})
	want := "type Users struct {\n" +
		"\tID        int64     `json:\"id\" gorm:\"column:id;primaryKey;autoIncrement\"`\n" +
		"\tName      string    `json:\"name\" gorm:\"column:name;not null;size:50\"`\n" +
		"\tCreatedAt time.Time `json:\"created_at\" gorm:\"column:created_at\"`\n" +
		"}\n"
	if got != want {
		t.Errorf("Struct() =\n%s\nwant:\n%s", got, want)
	}
}

func TestStructPackageAndImport(t *testing.T) {
	got := Struct(usersSchema(), nil, StructOptions{Package: "models"})
	if !strings.HasPrefix(got, "package models\n\nimport \"time\"\n\n") {
		t.Errorf("missing package header or time import:\n%s", got)
	}
}

func TestStructNoTimeImportWithoutDateTime(t *testing.T) {
	s := &schema.Schema{Name: "t", Fields: []schema.Field{
		{Name: "id", Type: schema.Integer, Nullable: true},
	}}
	got := Struct(s, nil, StructOptions{Package: "models"})
	if strings.Contains(got, "import") {
		t.Errorf("unexpected import without time.Time fields:\n%s", got)
	}
}

func TestStructTableNameMethod(t *testing.T) {
	got := Struct(usersSchema(), nil, StructOptions{TableNameMethod: true})
	want := "\nfunc (Users) TableName() string {\n\treturn \"users\"\n}\n"
	if !strings.Contains(got, want) {
		t.Errorf("missing TableName method:\n%s", got)
	}
}

func TestStructNameOverride(t *testing.T) {
	got := Struct(usersSchema(), nil, StructOptions{Name: "Account"})
	if !strings.HasPrefix(got, "type Account struct {") {
		t.Errorf("name override not applied:\n%s", got)
	}
}

func TestStructComment(t *testing.T) {
	s := &schema.Schema{Name: "t", Fields: []schema.Field{
		{Name: "state", Type: schema.String, Nullable: true, Comment: "lifecycle state"},
	}}
	got := Struct(s, nil, StructOptions{})
	if !strings.Contains(got, "`json:\"state\" gorm:\"column:state\"` // lifecycle state\n") {
		t.Errorf("comment not carried through:\n%s", got)
	}
}

func personSchema() (*schema.Schema, []schema.NamedSchema) {
	addr := schema.Schema{
		Name: "Address",
		Fields: []schema.Field{
			{Name: "street", Type: schema.String, Nullable: true},
		},
	}
	s := &schema.Schema{
		Name: "person",
		Fields: []schema.Field{
			{Name: "name", Type: schema.String, Nullable: true, Ordinal: 0},
			{Name: "address", Type: schema.Object, Nullable: true, Nested: &addr, Ordinal: 1},
		},
	}
	return s, []schema.NamedSchema{{Name: "Address", Schema: addr}}
}

func TestStructNestedSeparate(t *testing.T) {
	s, nested := personSchema()
	got := Struct(s, nested, StructOptions{})
	want := "type Person struct {\n" +
		"\tName    string  `json:\"name\" gorm:\"column:name\"`\n" +
		"\tAddress Address `json:\"address\" gorm:\"column:address\"`\n" +
		"}\n" +
		"\n" +
		"type Address struct {\n" +
		"\tStreet string `json:\"street\" gorm:\"column:street\"`\n" +
		"}\n"
	if got != want {
		t.Errorf("Struct() =\n%s\nwant:\n%s", got, want)
	}
}

func TestStructNestedInline(t *testing.T) {
	s, nested := personSchema()
	got := Struct(s, nested, StructOptions{InlineNested: true})
	want := "type Person struct {\n" +
		"\tName string `json:\"name\" gorm:\"column:name\"`\n" +
		"\tAddress struct {\n" +
		"\t\tStreet string `json:\"street\" gorm:\"column:street\"`\n" +
		"\t} `json:\"address\" gorm:\"column:address\"`\n" +
		"}\n"
	if got != want {
		t.Errorf("Struct() =\n%s\nwant:\n%s", got, want)
	}
}

func TestStructArrayOfNested(t *testing.T) {
	item := schema.Schema{Name: "Items", Fields: []schema.Field{
		{Name: "n", Type: schema.Integer, Nullable: true},
	}}
	s := &schema.Schema{Name: "order", Fields: []schema.Field{
		{Name: "items", Type: schema.Array, Elem: schema.Object, Nullable: true, Nested: &item},
	}}
	got := Struct(s, []schema.NamedSchema{{Name: "Items", Schema: item}}, StructOptions{})
	if !strings.Contains(got, "Items []Items `json:\"items\" gorm:\"column:items\"`") {
		t.Errorf("array-of-nested field wrong:\n%s", got)
	}
}

func TestStructScalarArray(t *testing.T) {
	s := &schema.Schema{Name: "t", Fields: []schema.Field{
		{Name: "tags", Type: schema.Array, Elem: schema.String, Nullable: true},
	}}
	got := Struct(s, nil, StructOptions{})
	if !strings.Contains(got, "Tags []string") {
		t.Errorf("scalar array field wrong:\n%s", got)
	}
}

func TestStructDeterministic(t *testing.T) {
	s, nested := personSchema()
	first := Struct(s, nested, StructOptions{Package: "models"})
	for i := 0; i < 5; i++ {
		if again := Struct(s, nested, StructOptions{Package: "models"}); again != first {
			t.Fatal("repeated generation produced different output")
		}
	}
}
