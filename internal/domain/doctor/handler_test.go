package doctor

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestDisabledWithOpenAdmissionsEmptyListNotNull(t *testing.T) {
	e := echo.New()
	NewHandler(NewService(newStubRepo())).RegisterRoutes(e.Group("/api/v1"))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/doctors/disabled-with-open-admissions", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var env struct {
		Code int             `json:"codigo"`
		Data json.RawMessage `json:"datos"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("unmarshal envelope: %v", err)
	}
	if string(env.Data) != "[]" {
		t.Errorf("datos = %s, want []", env.Data)
	}
}

func TestSubstituteDischargesEnvelope(t *testing.T) {
	repo := newStubRepo()
	repo.substitutes = []SubstituteDischargeRow{{DischargeID: 4, DischargingDoctorID: 2, AdmittingDoctorID: 1}}
	e := echo.New()
	NewHandler(NewService(repo)).RegisterRoutes(e.Group("/api/v1"))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/doctors/substitute-discharges", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var env struct {
		Data struct {
			Items []SubstituteDischargeRow `json:"items"`
			Total int                      `json:"totalCount"`
		} `json:"datos"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("unmarshal envelope: %v", err)
	}
	if env.Data.Total != 1 || len(env.Data.Items) != 1 {
		t.Fatalf("total = %d, items = %d, want 1/1", env.Data.Total, len(env.Data.Items))
	}
	if env.Data.Items[0].DischargingDoctorID == env.Data.Items[0].AdmittingDoctorID {
		t.Error("substitute row has matching admitting and discharging doctors")
	}
}

func TestGetUnknownDoctorIs404(t *testing.T) {
	e := echo.New()
	NewHandler(NewService(newStubRepo())).RegisterRoutes(e.Group("/api/v1"))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/doctors/12", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}
