package discharge

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func setup(repo Repository) *echo.Echo {
	e := echo.New()
	svc := NewService(repo, &admissionChoices{}, &doctorChoices{})
	NewHandler(svc).RegisterRoutes(e.Group("/api/v1"))
	return e
}

func TestInRangeRequiresBothDates(t *testing.T) {
	e := setup(newMockRepo())

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/discharges/in-range?from=2024-03-01", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestInRangeEmptyListNotNull(t *testing.T) {
	e := setup(newMockRepo())

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet,
		"/api/v1/discharges/in-range?from=2024-03-01&to=2024-03-31", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var env struct {
		Data json.RawMessage `json:"datos"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("unmarshal envelope: %v", err)
	}
	if string(env.Data) != "[]" {
		t.Errorf("datos = %s, want []", env.Data)
	}
}

func TestFormDataUnknownEditIDIs404(t *testing.T) {
	e := setup(newMockRepo())

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/discharges/form-data?id=77", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}
