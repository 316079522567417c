package patient

import (
	"os"
	"regexp"
	"strings"
	"testing"
)

// patientsDDL extracts the patients CREATE TABLE body from the initial
// migration so the selected columns can be checked against the schema.
func patientsDDL(t *testing.T) string {
	t.Helper()
	sql, err := os.ReadFile("../../../migrations/0001_init.sql")
	if err != nil {
		t.Fatalf("read initial migration: %v", err)
	}
	m := regexp.MustCompile(`(?s)CREATE TABLE IF NOT EXISTS patients \((.*?)\);`).FindSubmatch(sql)
	if m == nil {
		t.Fatal("initial migration does not create the patients table")
	}
	return string(m[1])
}

func TestPatientColumnsExistInSchema(t *testing.T) {
	ddl := patientsDDL(t)

	for _, col := range strings.Split(patientCols, ",") {
		col = strings.TrimPrefix(strings.TrimSpace(col), "p.")
		if !strings.Contains(ddl, col) {
			t.Errorf("column %q is selected by the repository but missing from the patients table", col)
		}
	}
}

func TestPatientTextColumnsNotNullable(t *testing.T) {
	ddl := patientsDDL(t)

	// These scan into plain strings; a NULL would fail every read.
	for _, col := range []string{"phone", "email", "address"} {
		re := regexp.MustCompile(col + `\s+\S+\s+NOT NULL DEFAULT ''`)
		if !re.MatchString(ddl) {
			t.Errorf("column %q must be NOT NULL DEFAULT '' in the patients table", col)
		}
	}
}
