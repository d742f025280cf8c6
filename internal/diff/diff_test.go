package diff

import (
	"strings"
	"testing"
)

func TestDiffAddModifyDrop(t *testing.T) {
	target := `CREATE TABLE users (
		id INT NOT NULL,
		name VARCHAR(50),
		legacy TEXT
	);`
	source := `CREATE TABLE users (
		id INT NOT NULL,
		name VARCHAR(100) NOT NULL,
		age INT
	);`

	got := Diff(target, source)
	want := []string{
		"ALTER TABLE `users` ADD COLUMN age INT;",
		"ALTER TABLE `users` MODIFY COLUMN `name` VARCHAR(100) NOT NULL;",
		"ALTER TABLE `users` DROP COLUMN `legacy`;",
	}
	if len(got) != len(want) {
		t.Fatalf("Diff() = %v, want %d statements", got, len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("stmt[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestDiffOrderAdditionsFirst(t *testing.T) {
	target := "CREATE TABLE t (a INT, b INT)"
	source := "CREATE TABLE t (a TEXT, c INT)"

	got := Diff(target, source)
	if len(got) != 3 {
		t.Fatalf("Diff() = %v, want 3 statements", got)
	}
	if !strings.Contains(got[0], "ADD COLUMN") {
		t.Errorf("stmt[0] = %q, want an ADD", got[0])
	}
	if !strings.Contains(got[1], "MODIFY COLUMN") {
		t.Errorf("stmt[1] = %q, want a MODIFY", got[1])
	}
	if !strings.Contains(got[2], "DROP COLUMN") {
		t.Errorf("stmt[2] = %q, want a DROP", got[2])
	}
}

func TestDiffIdentical(t *testing.T) {
	ddl := "CREATE TABLE t (id INT NOT NULL, name VARCHAR(50))"
	got := Diff(ddl, ddl)
	if len(got) != 1 || !strings.HasPrefix(got[0], "--") {
		t.Errorf("Diff(x, x) = %v, want a single comment line", got)
	}
	if !strings.Contains(got[0], "identical") {
		t.Errorf("comment = %q, want identical-schemas note", got[0])
	}
}

func TestDiffCaseInsensitiveMatching(t *testing.T) {
	got := Diff("CREATE TABLE t (ID INT)", "CREATE TABLE t (id int)")
	if len(got) != 1 || !strings.Contains(got[0], "identical") {
		t.Errorf("case-only differences should be a no-op, got %v", got)
	}
}

func TestDiffAddPreservesOriginalDefinition(t *testing.T) {
	target := "CREATE TABLE t (id INT)"
	source := "CREATE TABLE t (id INT, note VARCHAR(20) DEFAULT 'n/a' COMMENT 'freeform')"

	got := Diff(target, source)
	want := "ALTER TABLE `t` ADD COLUMN note VARCHAR(20) DEFAULT 'n/a' COMMENT 'freeform';"
	if len(got) != 1 || got[0] != want {
		t.Errorf("Diff() = %v, want [%q]", got, want)
	}
}

func TestDiffModifyReconstruction(t *testing.T) {
	target := "CREATE TABLE t (n INT)"
	source := "CREATE TABLE t (n BIGINT UNSIGNED NOT NULL DEFAULT 0 COMMENT 'count')"

	got := Diff(target, source)
	want := "ALTER TABLE `t` MODIFY COLUMN `n` BIGINT UNSIGNED NOT NULL DEFAULT 0 COMMENT 'count';"
	if len(got) != 1 || got[0] != want {
		t.Errorf("Diff() = %v, want [%q]", got, want)
	}
}

func TestDiffTableNameMismatch(t *testing.T) {
	got := Diff("CREATE TABLE old_users (id INT)", "CREATE TABLE users (id INT, age INT)")
	if len(got) != 2 {
		t.Fatalf("Diff() = %v, want mismatch comment plus one ADD", got)
	}
	if !strings.HasPrefix(got[0], "-- table name mismatch") {
		t.Errorf("stmt[0] = %q, want mismatch comment", got[0])
	}
	if !strings.Contains(got[1], "ALTER TABLE `old_users` ADD COLUMN") {
		t.Errorf("stmt[1] = %q, want ADD against target table name", got[1])
	}
}

func TestDiffUnparseableInput(t *testing.T) {
	tests := []struct {
		name     string
		target   string
		source   string
		wantText string
	}{
		{"both invalid", "nope", "nada", "cannot parse either schema"},
		{"target invalid", "nope", "CREATE TABLE t (id INT)", "cannot parse target schema"},
		{"source invalid", "CREATE TABLE t (id INT)", "nope", "cannot parse source schema"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Diff(tt.target, tt.source)
			if len(got) != 1 || !strings.Contains(got[0], tt.wantText) {
				t.Errorf("Diff() = %v, want comment containing %q", got, tt.wantText)
			}
		})
	}
}

func TestDiffCrossDialect(t *testing.T) {
	target := "CREATE TABLE t (id SERIAL PRIMARY KEY)"
	source := "CREATE TABLE t (id INT AUTO_INCREMENT, email VARCHAR(100))"

	got := Diff(target, source)
	// SERIAL parses as auto-increment, so only the type and the new column
	// differ; each DDL is detected and parsed in its own dialect.
	var adds int
	for _, stmt := range got {
		if strings.Contains(stmt, "ADD COLUMN email") {
			adds++
		}
	}
	if adds != 1 {
		t.Errorf("Diff() = %v, want exactly one email ADD", got)
	}
}
