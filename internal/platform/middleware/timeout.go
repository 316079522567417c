package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/hospadmin/hospadmin/pkg/respond"
)

// RequestTimeout sets a context deadline on each request. When the deadline
// passes before the handler finishes, the request context is cancelled and a
// 504 envelope is returned. Handlers observe the cancellation through the
// request context.
func RequestTimeout(timeout time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx, cancel := context.WithTimeout(c.Request().Context(), timeout)
			defer cancel()

			c.SetRequest(c.Request().WithContext(ctx))

			done := make(chan error, 1)
			go func() {
				done <- next(c)
			}()

			select {
			case err := <-done:
				return err
			case <-ctx.Done():
				if ctx.Err() == context.DeadlineExceeded {
					if !c.Response().Committed {
						return c.JSON(http.StatusGatewayTimeout, respond.Envelope{
							Code:     http.StatusGatewayTimeout,
							Messages: []string{"request processing exceeded the allowed time limit"},
						})
					}
					return nil
				}
				return ctx.Err()
			}
		}
	}
}
