package respond

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/hospadmin/hospadmin/internal/platform/apperr"
)

func invoke(t *testing.T, fn func(echo.Context) error) (*httptest.ResponseRecorder, Envelope) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := fn(c); err != nil {
		t.Fatalf("respond returned error: %v", err)
	}

	var env Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("invalid envelope JSON: %v", err)
	}
	return rec, env
}

func TestOK(t *testing.T) {
	rec, env := invoke(t, func(c echo.Context) error {
		return OK(c, map[string]int{"id": 7})
	})

	if rec.Code != http.StatusOK || env.Code != http.StatusOK {
		t.Errorf("status = %d, codigo = %d", rec.Code, env.Code)
	}
	if env.Messages == nil || len(env.Messages) != 0 {
		t.Errorf("expected empty mensajes array, got %v", env.Messages)
	}
	if env.Data == nil {
		t.Error("expected datos to be set")
	}
}

func TestNotFound(t *testing.T) {
	rec, env := invoke(t, NotFound)

	if rec.Code != http.StatusNotFound || env.Code != http.StatusNotFound {
		t.Errorf("status = %d, codigo = %d", rec.Code, env.Code)
	}
	if env.Data != nil {
		t.Errorf("expected null datos, got %v", env.Data)
	}
	if len(env.Messages) != 1 {
		t.Errorf("expected one message, got %v", env.Messages)
	}
}

func TestErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", apperr.New(apperr.NotFound, "gone"), http.StatusNotFound},
		{"validation", apperr.New(apperr.Validation, "bad amount"), http.StatusBadRequest},
		{"dependency", apperr.New(apperr.Dependency, "allocation down"), http.StatusBadGateway},
		{"transient", apperr.New(apperr.Transient, "timed out"), http.StatusServiceUnavailable},
		{"store", apperr.New(apperr.Store, "db down"), http.StatusInternalServerError},
		{"untagged", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, env := invoke(t, func(c echo.Context) error {
				return Error(c, tt.err)
			})
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
			if env.Code != tt.want {
				t.Errorf("codigo = %d, want %d", env.Code, tt.want)
			}
			if env.Data != nil {
				t.Error("error envelope must carry null datos")
			}
			if len(env.Messages) == 0 {
				t.Error("error envelope must carry a message")
			}
		})
	}
}
