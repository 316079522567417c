package admission

import (
	"os"
	"regexp"
	"testing"
)

func TestObservationColumnNotNullable(t *testing.T) {
	sql, err := os.ReadFile("../../../migrations/0001_init.sql")
	if err != nil {
		t.Fatalf("read initial migration: %v", err)
	}
	m := regexp.MustCompile(`(?s)CREATE TABLE IF NOT EXISTS admissions \((.*?)\n\);`).FindSubmatch(sql)
	if m == nil {
		t.Fatal("initial migration does not create the admissions table")
	}

	// observation scans into a plain string; a NULL would fail every read.
	if !regexp.MustCompile(`observation\s+TEXT NOT NULL DEFAULT ''`).Match(m[1]) {
		t.Errorf("observation must be NOT NULL DEFAULT '' in the admissions table:\n%s", m[1])
	}
}
