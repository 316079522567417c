package db

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestHealthReportJSON(t *testing.T) {
	report := healthReport{
		Status:        "healthy",
		TotalConns:    10,
		IdleConns:     5,
		AcquiredConns: 5,
		MaxConns:      20,
	}

	out, err := json.Marshal(report)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	body := string(out)

	for _, want := range []string{`"status":"healthy"`, `"totalConns":10`, `"idleConns":5`, `"acquiredConns":5`, `"maxConns":20`} {
		if !strings.Contains(body, want) {
			t.Errorf("expected %s in %s", want, body)
		}
	}
	if strings.Contains(body, `"error"`) {
		t.Errorf("error field should be omitted when empty: %s", body)
	}
}

func TestHealthReportIncludesError(t *testing.T) {
	report := healthReport{Status: "unhealthy", Error: "connection refused"}

	out, err := json.Marshal(report)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(out), `"error":"connection refused"`) {
		t.Errorf("expected error field, got %s", out)
	}
}
