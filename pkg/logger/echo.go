package logger

import (
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// EchoMiddleware attaches a request-scoped logger (with a request id) to the
// request context and logs one line per completed request.
func EchoMiddleware(base zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			req := c.Request()

			reqID := req.Header.Get(echo.HeaderXRequestID)
			if reqID == "" {
				reqID = uuid.NewString()
			}
			c.Response().Header().Set(echo.HeaderXRequestID, reqID)

			child := base.With().
				Str(FieldRequestID, reqID).
				Str(FieldMethod, req.Method).
				Str(FieldPath, req.URL.Path).
				Str(FieldClientIP, c.RealIP()).
				Logger()
			c.SetRequest(req.WithContext(WithLogger(req.Context(), child)))

			if err := next(c); err != nil {
				c.Error(err)
			}

			child.Info().
				Int(FieldStatus, c.Response().Status).
				Int64(FieldLatency, time.Since(start).Milliseconds()).
				Msg("request completed")
			return nil
		}
	}
}
