package detect

import "testing"

func TestDetect(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Format
	}{
		{
			name: "mysql auto_increment",
			text: "CREATE TABLE users (id INT AUTO_INCREMENT, name VARCHAR(50))",
			want: FormatMySQL,
		},
		{
			name: "mysql engine clause",
			text: "CREATE TABLE t (id INT) ENGINE=InnoDB",
			want: FormatMySQL,
		},
		{
			name: "postgres serial",
			text: "CREATE TABLE accounts (id SERIAL PRIMARY KEY, email TEXT)",
			want: FormatPostgres,
		},
		{
			name: "postgres array suffix",
			text: "CREATE TABLE t (tags TEXT[])",
			want: FormatPostgres,
		},
		{
			name: "postgres wins over mysql markers",
			text: "CREATE TABLE t (id BIGSERIAL, flags TINYINT)",
			want: FormatPostgres,
		},
		{
			name: "sqlite autoincrement",
			text: "CREATE TABLE notes (id INTEGER PRIMARY KEY AUTOINCREMENT)",
			want: FormatSQLite,
		},
		{
			name: "plain ddl defaults to mysql",
			text: "CREATE TABLE t (id INT, name TEXT)",
			want: FormatMySQL,
		},
		{
			name: "json object",
			text: `{"name": "test", "age": 3}`,
			want: FormatJSON,
		},
		{
			name: "json array",
			text: `[{"a": 1}]`,
			want: FormatJSON,
		},
		{
			name: "yaml mapping",
			text: "name: test\nage: 3",
			want: FormatYAML,
		},
		{
			name: "yaml sequence",
			text: "- one\n- two",
			want: FormatYAML,
		},
		{
			name: "toml section header",
			text: "[server]\nhost = \"localhost\"",
			want: FormatTOML,
		},
		{
			name: "toml key value",
			text: "host = \"localhost\"\nport = 8080",
			want: FormatTOML,
		},
		{
			name: "xml declaration",
			text: `<?xml version="1.0"?><root/>`,
			want: FormatXML,
		},
		{
			name: "xml element",
			text: "<root><a>1</a></root>",
			want: FormatXML,
		},
		{
			name: "empty input",
			text: "",
			want: FormatUnknown,
		},
		{
			name: "plain prose",
			text: "hello world",
			want: FormatUnknown,
		},
		{
			name: "invalid json stays unknown",
			text: "{not json",
			want: FormatUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Detect(tt.text); got != tt.want {
				t.Errorf("Detect() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFormatString(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{FormatMySQL, "mysql"},
		{FormatPostgres, "postgresql"},
		{FormatSQLite, "sqlite"},
		{FormatJSON, "json"},
		{FormatYAML, "yaml"},
		{FormatTOML, "toml"},
		{FormatXML, "xml"},
		{FormatUnknown, "unknown"},
	}

	for _, tt := range tests {
		if got := tt.format.String(); got != tt.want {
			t.Errorf("Format(%d).String() = %q, want %q", int(tt.format), got, tt.want)
		}
	}
}

func TestIsDialect(t *testing.T) {
	dialects := []Format{FormatMySQL, FormatPostgres, FormatSQLite}
	for _, f := range dialects {
		if !f.IsDialect() {
			t.Errorf("%v.IsDialect() = false, want true", f)
		}
	}
	others := []Format{FormatUnknown, FormatJSON, FormatYAML, FormatTOML, FormatXML}
	for _, f := range others {
		if f.IsDialect() {
			t.Errorf("%v.IsDialect() = true, want false", f)
		}
	}
}
