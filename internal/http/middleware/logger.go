package middleware

import (
	"io"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.opentelemetry.io/otel/trace"

	"sitrack/internal/logging"
)

// Logger is a middleware that logs each HTTP request as one JSON line.
// Fields:
// - request_id (taken from context locals set by RequestID middleware)
// - method
// - path
// - status
// - latency (in milliseconds, as float)
// - user_id when the request was authenticated
// - trace_id when a span is recording the request
func Logger(log *logging.Logger) fiber.Handler {
	if log == nil {
		log = logging.Default()
	}

	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			// The error handler has not written the response yet.
			status = statusOf(err)
		}

		data := map[string]any{
			"request_id": RequestIDFrom(c),
			"method":     c.Method(),
			"path":       c.Path(),
			"status":     status,
			"latency":    float64(time.Since(start).Microseconds()) / 1000,
			"level":      levelFor(status),
		}
		if claims := ClaimsFrom(c); claims != nil {
			data["user_id"] = claims.Subject
		}
		if sc := trace.SpanContextFromContext(c.UserContext()); sc.HasTraceID() {
			data["trace_id"] = sc.TraceID().String()
		}
		log.Log(data)

		return err
	}
}

// LoggerWithWriter is Logger writing to w with timestamps in loc.
func LoggerWithWriter(w io.Writer, loc *time.Location) fiber.Handler {
	return Logger(logging.New(w, loc))
}

func levelFor(status int) string {
	switch {
	case status >= fiber.StatusInternalServerError:
		return "error"
	case status >= fiber.StatusBadRequest:
		return "warn"
	default:
		return "info"
	}
}

func statusOf(err error) int {
	if fe, ok := err.(*fiber.Error); ok {
		return fe.Code
	}
	return fiber.StatusInternalServerError
}
