// Package respond writes the uniform response envelope every endpoint uses.
// The wire field names (codigo, datos, mensajes) are a fixed contract with
// existing API consumers and must not change.
package respond

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hospadmin/hospadmin/internal/platform/apperr"
)

// Envelope wraps every response body. Code mirrors the HTTP status.
type Envelope struct {
	Code     int         `json:"codigo"`
	Data     interface{} `json:"datos"`
	Messages []string    `json:"mensajes"`
}

// OK writes a successful envelope around data.
func OK(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, Envelope{
		Code:     http.StatusOK,
		Data:     data,
		Messages: []string{},
	})
}

// NotFound writes the not-found envelope used when a single-item fetch
// yields nothing and no other error was recorded.
func NotFound(c echo.Context) error {
	return c.JSON(http.StatusNotFound, Envelope{
		Code:     http.StatusNotFound,
		Messages: []string{"element not found"},
	})
}

// Error classifies err and writes the matching envelope. Views never return
// partial results: on any failure datos is null.
func Error(c echo.Context, err error) error {
	status := statusFor(apperr.KindOf(err))
	return c.JSON(status, Envelope{
		Code:     status,
		Messages: []string{err.Error()},
	})
}

func statusFor(kind apperr.Kind) int {
	switch kind {
	case apperr.NotFound:
		return http.StatusNotFound
	case apperr.Validation:
		return http.StatusBadRequest
	case apperr.Dependency:
		return http.StatusBadGateway
	case apperr.Transient:
		return http.StatusServiceUnavailable
	case apperr.Store:
		return http.StatusInternalServerError
	}
	return http.StatusInternalServerError
}
